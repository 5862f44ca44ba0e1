package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Categorias de despesa.
const (
	ExpenseAluguel = "Aluguel"
	ExpenseEnergia = "Energia"
	ExpenseInsumos = "Insumos"
	ExpenseFolha   = "Folha"
	ExpenseOutros  = "Outros"
)

// Classificação fixa/variável.
const (
	ExpenseFixed    = "Fixa"
	ExpenseVariable = "Variável"
)

// Expense é uma saída de caixa com ciclo de vida binário
// (ativa/cancelada). Cancelamento é soft, nunca delete.
type Expense struct {
	ID              string
	ExpenseDate     time.Time
	Category        string
	Description     string
	Value           decimal.Decimal
	PaymentMethod   string
	FixedOrVariable string
	Canceled        bool
	CreatedAt       time.Time
}
