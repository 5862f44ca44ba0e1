package repository

import (
	"time"

	"github.com/seu-usuario/lanchonete-pro/internal/domain/entity"
	"github.com/shopspring/decimal"
)

// MealRepository define o porto de persistência de refeições de
// funcionário (employee_meals). Append-only com soft-cancel.
type MealRepository interface {
	Create(meal *entity.MealConsumption) error
	GetByID(id string) (*entity.MealConsumption, error)
	// MarkCanceled seta canceled=true. Idempotente: cancelar de novo
	// não tem efeito. Devolve false quando o id não existe.
	MarkCanceled(id string) (bool, error)
	// MarkCanceledBySale cancela o consumo vinculado a uma venda
	// (usado no cancelamento de venda de funcionário).
	MarkCanceledBySale(saleID string) error
	// SumActiveByDay soma os consumos não cancelados do funcionário no dia.
	SumActiveByDay(employeeID string, day time.Time) (decimal.Decimal, error)
	List(limit, offset int) ([]*entity.MealConsumption, error)
}
