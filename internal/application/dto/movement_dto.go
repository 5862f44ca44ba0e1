package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// RegisterMovementRequest entrada para registrar um movimento de estoque.
// Quantity é magnitude positiva para todos os tipos, exceto
// "Ajuste de Inventário", que aceita qualquer valor assinado não nulo.
type RegisterMovementRequest struct {
	ProductID string           `json:"product_id" validate:"required,uuid"`
	Kind      string           `json:"movement_type" validate:"required"`
	Quantity  int64            `json:"quantity" validate:"required"`
	UnitCost  *decimal.Decimal `json:"unit_cost"`
	Origin    string           `json:"origin" validate:"max=200"`
	Notes     string           `json:"notes" validate:"max=500"`
}

// MovementResponse saída de um movimento.
type MovementResponse struct {
	ID        string           `json:"id"`
	ProductID string           `json:"product_id"`
	Kind      string           `json:"movement_type"`
	Quantity  int64            `json:"quantity"`
	UnitCost  *decimal.Decimal `json:"unit_cost,omitempty"`
	Origin    string           `json:"origin,omitempty"`
	Notes     string           `json:"notes,omitempty"`
	CreatedAt time.Time        `json:"created_at"`
}

// StockResponse estoque derivado de um produto.
type StockResponse struct {
	ProductID string `json:"product_id"`
	Stock     int64  `json:"stock"`
}
