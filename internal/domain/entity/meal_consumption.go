package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// MealConsumption é um débito de refeição de funcionário contra o limite
// diário. Append-only: cancelamento é soft (flag), nunca delete, e não
// toca o razão de estoque.
type MealConsumption struct {
	ID            string
	EmployeeID    string
	MealDate      time.Time // somente a data importa (truncada no dia)
	Value         decimal.Decimal
	Description   string
	RelatedSaleID string // preenchido quando o débito veio de uma venda
	Canceled      bool
	CreatedAt     time.Time
}
