package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Tipos de produto.
const (
	ProductTypeFinal  = "Produto Final"
	ProductTypeInsumo = "Insumo"
)

// Product representa um produto ou insumo da lanchonete.
// O estoque atual NUNCA é armazenado aqui: é sempre derivado do
// histórico de movimentos (ver StockMovement e DerivedStock).
type Product struct {
	ID        string
	Category  string // texto livre no banco, igual ao schema original
	Name      string
	Type      string // Produto Final | Insumo
	Unit      string // un, kg, l...
	Price     decimal.Decimal // preço de venda
	Cost      decimal.Decimal // custo unitário
	MinStock  int64           // limiar de estoque mínimo para alertas
	ImageURL  string
	Active    bool
	CreatedAt time.Time
}
