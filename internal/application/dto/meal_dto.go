package dto

import "github.com/shopspring/decimal"

// RegisterMealRequest entrada para registrar um consumo de refeição.
type RegisterMealRequest struct {
	EmployeeID  string          `json:"employee_id" validate:"required,uuid"`
	MealDate    string          `json:"meal_date" validate:"required,datetime=2006-01-02"`
	Value       decimal.Decimal `json:"value"`
	Description string          `json:"description" validate:"max=300"`
}

// MealBalanceResponse saldo diário de um funcionário.
type MealBalanceResponse struct {
	EmployeeID string          `json:"employee_id"`
	MealDate   string          `json:"meal_date"`
	DailyLimit decimal.Decimal `json:"daily_limit"`
	Consumed   decimal.Decimal `json:"consumed"`
	Balance    decimal.Decimal `json:"balance"`
}
