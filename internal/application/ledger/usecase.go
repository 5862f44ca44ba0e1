package ledger

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/seu-usuario/lanchonete-pro/internal/application/dto"
	"github.com/seu-usuario/lanchonete-pro/internal/domain"
	"github.com/seu-usuario/lanchonete-pro/internal/domain/costing"
	"github.com/seu-usuario/lanchonete-pro/internal/domain/entity"
	"github.com/seu-usuario/lanchonete-pro/internal/domain/repository"
)

// MovementUseCase é o razão de estoque: registra eventos imutáveis de
// mudança de estoque e responde "qual o estoque atual" dobrando o
// histórico. Não existe mutação direta de Product: estoque é sempre
// recomputado.
type MovementUseCase struct {
	movRepo     repository.MovementRepository
	productRepo repository.ProductRepository
}

// NewMovementUseCase constrói o caso de uso.
func NewMovementUseCase(movRepo repository.MovementRepository, productRepo repository.ProductRepository) *MovementUseCase {
	return &MovementUseCase{movRepo: movRepo, productRepo: productRepo}
}

// Record valida e grava um movimento. Falha com ErrValidation antes de
// qualquer chamada remota quando:
//   - o tipo é desconhecido;
//   - quantity <= 0 para entradas/saídas;
//   - quantity == 0 para Ajuste de Inventário (único tipo assinado).
func (uc *MovementUseCase) Record(ctx context.Context, in dto.RegisterMovementRequest) (*dto.MovementResponse, error) {
	kind := entity.MovementKind(in.Kind)
	if !kind.Valid() {
		return nil, fmt.Errorf("%w: movement_type %q", domain.ErrValidation, in.Kind)
	}
	if in.ProductID == "" {
		return nil, fmt.Errorf("%w: product_id obrigatório", domain.ErrValidation)
	}
	if kind == entity.MovementAjusteInventario {
		if in.Quantity == 0 {
			return nil, fmt.Errorf("%w: ajuste exige quantidade não nula", domain.ErrValidation)
		}
	} else if in.Quantity <= 0 {
		return nil, fmt.Errorf("%w: quantidade deve ser positiva", domain.ErrValidation)
	}

	product, err := uc.productRepo.GetByID(in.ProductID)
	if err != nil {
		return nil, domain.NewPersistError("record_movement", "get_product", false, err)
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}

	mov := &entity.StockMovement{
		ID:        uuid.New().String(),
		ProductID: in.ProductID,
		Kind:      kind,
		Quantity:  in.Quantity,
		UnitCost:  in.UnitCost,
		Origin:    in.Origin,
		Notes:     in.Notes,
		CreatedAt: time.Now(),
	}
	if err := uc.movRepo.Create(mov); err != nil {
		return nil, domain.NewPersistError("record_movement", "insert_movement", false, err)
	}

	// Entrada de compra com custo informado recalcula o custo médio
	// ponderado do cadastro. Falha aqui não invalida o movimento já
	// gravado: o razão é a fonte de verdade, o custo é derivado.
	if kind == entity.MovementEntradaCompra && in.UnitCost != nil {
		if err := uc.updateAverageCost(product, in.Quantity, *in.UnitCost); err != nil {
			return toMovementResponse(mov), domain.NewPersistError("record_movement", "update_cost", true, err)
		}
	}
	return toMovementResponse(mov), nil
}

// updateAverageCost aplica o custo médio ponderado usando o estoque
// derivado ANTES da entrada recém-gravada.
func (uc *MovementUseCase) updateAverageCost(product *entity.Product, entryQty int64, entryCost decimal.Decimal) error {
	stockAfter, err := uc.movRepo.SumByProduct(product.ID)
	if err != nil {
		return err
	}
	stockBefore := decimal.NewFromInt(stockAfter - entryQty)
	product.Cost = costing.WeightedAverage(stockBefore, product.Cost, decimal.NewFromInt(entryQty), entryCost)
	return uc.productRepo.Update(product)
}

// RecordAdjustment registra a diferença entre a contagem física e o
// estoque derivado como UM movimento "Ajuste de Inventário" assinado
// (quantidade = contagem − derivado). Contagem igual ao derivado não
// gera movimento.
func (uc *MovementUseCase) RecordAdjustment(ctx context.Context, productID string, physicalCount int64, notes string) (*dto.MovementResponse, error) {
	derived, err := uc.DerivedStock(ctx, productID)
	if err != nil {
		return nil, err
	}
	diff := physicalCount - derived
	if diff == 0 {
		return nil, fmt.Errorf("%w: contagem igual ao estoque derivado", domain.ErrValidation)
	}
	return uc.Record(ctx, dto.RegisterMovementRequest{
		ProductID: productID,
		Kind:      string(entity.MovementAjusteInventario),
		Quantity:  diff,
		Origin:    "Contagem de inventário",
		Notes:     notes,
	})
}

// DerivedStock devolve o estoque atual do produto. A soma vem de uma
// única leitura consistente no repositório (um agregado SQL): nenhum
// movimento inserido no meio da dobra é contado parcialmente.
func (uc *MovementUseCase) DerivedStock(ctx context.Context, productID string) (int64, error) {
	if productID == "" {
		return 0, fmt.Errorf("%w: product_id obrigatório", domain.ErrValidation)
	}
	stock, err := uc.movRepo.SumByProduct(productID)
	if err != nil {
		return 0, domain.NewPersistError("derived_stock", "sum_movements", false, err)
	}
	return stock, nil
}

// ListByProduct lista o extrato de movimentos de um produto.
func (uc *MovementUseCase) ListByProduct(ctx context.Context, productID string, from, to *time.Time, limit, offset int) ([]*dto.MovementResponse, error) {
	movs, err := uc.movRepo.ListByProduct(productID, from, to, limit, offset)
	if err != nil {
		return nil, domain.NewPersistError("list_movements", "query", false, err)
	}
	out := make([]*dto.MovementResponse, 0, len(movs))
	for _, m := range movs {
		out = append(out, toMovementResponse(m))
	}
	return out, nil
}

func toMovementResponse(m *entity.StockMovement) *dto.MovementResponse {
	return &dto.MovementResponse{
		ID:        m.ID,
		ProductID: m.ProductID,
		Kind:      string(m.Kind),
		Quantity:  m.Quantity,
		UnitCost:  m.UnitCost,
		Origin:    m.Origin,
		Notes:     m.Notes,
		CreatedAt: m.CreatedAt,
	}
}
