package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateProductRequest entrada para criar um produto.
type CreateProductRequest struct {
	Name     string          `json:"name" validate:"required,min=1,max=200"`
	Category string          `json:"category" validate:"required,max=100"`
	Type     string          `json:"type" validate:"required"`
	Unit     string          `json:"unit" validate:"required,max=20"`
	Price    decimal.Decimal `json:"price"`
	Cost     decimal.Decimal `json:"cost"`
	MinStock int64           `json:"min_stock" validate:"min=0"`
	ImageURL string          `json:"image_url"`
}

// UpdateProductRequest entrada para atualizar um produto (campos opcionais).
type UpdateProductRequest struct {
	Name     *string          `json:"name" validate:"omitempty,min=1,max=200"`
	Category *string          `json:"category" validate:"omitempty,max=100"`
	Unit     *string          `json:"unit" validate:"omitempty,max=20"`
	Price    *decimal.Decimal `json:"price"`
	Cost     *decimal.Decimal `json:"cost"`
	MinStock *int64           `json:"min_stock" validate:"omitempty,min=0"`
	Active   *bool            `json:"active"`
}

// ProductResponse saída de um produto. Stock é derivado, nunca lido de
// uma coluna.
type ProductResponse struct {
	ID        string          `json:"id"`
	Name      string          `json:"name"`
	Category  string          `json:"category"`
	Type      string          `json:"type"`
	Unit      string          `json:"unit"`
	Price     decimal.Decimal `json:"price"`
	Cost      decimal.Decimal `json:"cost"`
	MinStock  int64           `json:"min_stock"`
	Active    bool            `json:"active"`
	CreatedAt time.Time       `json:"created_at"`
}

// ProductListResponse lista paginada de produtos.
type ProductListResponse struct {
	Items []ProductResponse `json:"items"`
	Page  PageResponse      `json:"page"`
}
