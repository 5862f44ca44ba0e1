package entity

import "github.com/shopspring/decimal"

// Employee representa um funcionário com direito a refeição diária.
type Employee struct {
	ID             string
	Name           string
	Role           string
	DailyMealLimit decimal.Decimal // teto diário de consumo (soft limit)
	Active         bool
}
