package repository

import (
	"time"

	"github.com/seu-usuario/lanchonete-pro/internal/domain/entity"
	"github.com/shopspring/decimal"
)

// ExpenseRepository define o porto de persistência de despesas.
type ExpenseRepository interface {
	Create(expense *entity.Expense) error
	GetByID(id string) (*entity.Expense, error)
	// MarkCanceled seta canceled=true (soft-cancel, idempotente).
	// Devolve false quando o id não existe.
	MarkCanceled(id string) (bool, error)
	// SumByPeriod soma as despesas não canceladas no intervalo [from, to].
	SumByPeriod(from, to time.Time) (decimal.Decimal, error)
	List(from, to *time.Time, limit, offset int) ([]*entity.Expense, error)
}
