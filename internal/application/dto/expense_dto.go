package dto

import "github.com/shopspring/decimal"

// RegisterExpenseRequest entrada para registrar uma despesa.
type RegisterExpenseRequest struct {
	ExpenseDate     string          `json:"expense_date" validate:"required,datetime=2006-01-02"`
	Category        string          `json:"category" validate:"required"`
	Description     string          `json:"description" validate:"max=300"`
	Value           decimal.Decimal `json:"value"`
	PaymentMethod   string          `json:"payment_method"`
	FixedOrVariable string          `json:"fixed_or_variable" validate:"omitempty,oneof=Fixa Variável"`
}

// ExpenseSummaryResponse total de despesas ativas num período.
type ExpenseSummaryResponse struct {
	From  string          `json:"from"`
	To    string          `json:"to"`
	Total decimal.Decimal `json:"total"`
}
