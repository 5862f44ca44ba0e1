package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// SaleItemRequest uma linha do carrinho.
type SaleItemRequest struct {
	ProductID string          `json:"product_id" validate:"required,uuid"`
	Quantity  int64           `json:"quantity" validate:"required,gt=0"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	UnitCost  decimal.Decimal `json:"unit_cost"`
}

// CreateSaleRequest entrada para criar uma venda.
type CreateSaleRequest struct {
	Items         []SaleItemRequest `json:"items" validate:"required,min=1,dive"`
	PaymentMethod string            `json:"payment_method" validate:"required"`
	Discount      decimal.Decimal   `json:"discount_value"`
	// EmployeeID marca a venda como consumo de funcionário (origem
	// "funcionario") e gera o débito de refeição correspondente.
	EmployeeID string `json:"employee_id" validate:"omitempty,uuid"`
}

// SaleItemResponse linha de venda persistida.
type SaleItemResponse struct {
	ProductID  string          `json:"product_id"`
	Quantity   int64           `json:"quantity"`
	UnitPrice  decimal.Decimal `json:"unit_price"`
	UnitCost   decimal.Decimal `json:"unit_cost"`
	TotalValue decimal.Decimal `json:"total_value"`
}

// SaleResponse saída de uma venda com itens.
type SaleResponse struct {
	ID            string             `json:"id"`
	SaleDatetime  time.Time          `json:"sale_datetime"`
	Channel       string             `json:"channel"`
	Status        string             `json:"status"`
	PaymentMethod string             `json:"payment_method"`
	Origin        string             `json:"origin"`
	GrossValue    decimal.Decimal    `json:"gross_value"`
	DiscountValue decimal.Decimal    `json:"discount_value"`
	NetValue      decimal.Decimal    `json:"net_value"`
	TotalCost     decimal.Decimal    `json:"total_cost"`
	EmployeeID    string             `json:"employee_id,omitempty"`
	Items         []SaleItemResponse `json:"items"`
}
