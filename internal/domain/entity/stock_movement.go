package entity

import (
	"time"

	"github.com/seu-usuario/lanchonete-pro/internal/domain"
	"github.com/shopspring/decimal"
)

// MovementKind classifica um movimento de estoque. Os valores são os
// persistidos na tabela stock_movements — nada de classificar por
// substring: todo tipo mapeia explicitamente para um sinal.
type MovementKind string

const (
	// Entradas (+)
	MovementEntradaCompra MovementKind = "Entrada Compra"
	MovementEntradaAjuste MovementKind = "Entrada Ajuste"
	MovementProducao      MovementKind = "Produção"
	MovementEstornoVenda  MovementKind = "Estorno de Venda"

	// Saídas (−)
	MovementSaidaVenda   MovementKind = "Saída Venda"
	MovementSaidaPerda   MovementKind = "Saída Perda"
	MovementSaidaConsumo MovementKind = "Saída Consumo Interno"

	// Ajuste de inventário: quantidade assinada, aplicada como está.
	// Representa contagemFísica − estoqueDerivado no momento do ajuste.
	MovementAjusteInventario MovementKind = "Ajuste de Inventário"
)

// StockMovement é uma entrada imutável do razão de estoque.
// Correções nunca editam um movimento: geram um movimento novo.
type StockMovement struct {
	ID        string
	ProductID string
	Kind      MovementKind
	Quantity  int64 // magnitude positiva, exceto Ajuste de Inventário (assinada)
	UnitCost  *decimal.Decimal
	Origin    string // referência livre: "Venda #abc123", nota de compra...
	Notes     string
	CreatedAt time.Time
}

// IsEntry informa se o tipo soma no estoque. Ajuste de inventário não é
// entrada nem saída: a própria quantidade carrega o sinal.
func (k MovementKind) IsEntry() bool {
	switch k {
	case MovementEntradaCompra, MovementEntradaAjuste, MovementProducao, MovementEstornoVenda:
		return true
	}
	return false
}

// IsExit informa se o tipo subtrai do estoque.
func (k MovementKind) IsExit() bool {
	switch k {
	case MovementSaidaVenda, MovementSaidaPerda, MovementSaidaConsumo:
		return true
	}
	return false
}

// Valid informa se o tipo é conhecido.
func (k MovementKind) Valid() bool {
	return k.IsEntry() || k.IsExit() || k == MovementAjusteInventario
}

// SignedQuantity devolve o efeito assinado do movimento sobre o estoque.
// Mapeamento total: tipo desconhecido é erro, nunca um fallthrough
// silencioso. Ajuste de inventário passa a quantidade como está,
// positiva ou negativa (regra única, sem a assimetria do app original).
func (m StockMovement) SignedQuantity() (int64, error) {
	switch {
	case m.Kind == MovementAjusteInventario:
		return m.Quantity, nil
	case m.Kind.IsEntry():
		return m.Quantity, nil
	case m.Kind.IsExit():
		return -m.Quantity, nil
	}
	return 0, domain.ErrUnknownMovement
}

// DerivedStock dobra uma lista de movimentos de UM produto e devolve o
// estoque atual. Os movimentos devem vir de uma única leitura
// consistente; o chamador é responsável por filtrar por produto.
func DerivedStock(movements []StockMovement) (int64, error) {
	var total int64
	for _, m := range movements {
		signed, err := m.SignedQuantity()
		if err != nil {
			return 0, err
		}
		total += signed
	}
	return total, nil
}
