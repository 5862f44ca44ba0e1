package expenses

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/seu-usuario/lanchonete-pro/internal/application/dto"
	"github.com/seu-usuario/lanchonete-pro/internal/domain"
	"github.com/seu-usuario/lanchonete-pro/internal/domain/entity"
	"github.com/seu-usuario/lanchonete-pro/internal/domain/repository"
)

// ExpenseUseCase é o razão de despesas: registros append-only com
// ciclo de vida binário (ativa/cancelada) e soma por período para
// relatórios.
type ExpenseUseCase struct {
	repo repository.ExpenseRepository
}

// NewExpenseUseCase constrói o caso de uso.
func NewExpenseUseCase(repo repository.ExpenseRepository) *ExpenseUseCase {
	return &ExpenseUseCase{repo: repo}
}

const expenseDateLayout = "2006-01-02"

// Record registra uma despesa.
func (uc *ExpenseUseCase) Record(ctx context.Context, in dto.RegisterExpenseRequest) (string, error) {
	if in.Category == "" {
		return "", fmt.Errorf("%w: categoria obrigatória", domain.ErrValidation)
	}
	if !in.Value.IsPositive() {
		return "", fmt.Errorf("%w: valor deve ser positivo", domain.ErrValidation)
	}
	day, err := time.Parse(expenseDateLayout, in.ExpenseDate)
	if err != nil {
		return "", fmt.Errorf("%w: expense_date inválida (%s)", domain.ErrValidation, in.ExpenseDate)
	}
	fixedOrVariable := in.FixedOrVariable
	if fixedOrVariable == "" {
		fixedOrVariable = entity.ExpenseVariable
	}

	expense := &entity.Expense{
		ID:              uuid.New().String(),
		ExpenseDate:     day,
		Category:        in.Category,
		Description:     in.Description,
		Value:           in.Value,
		PaymentMethod:   in.PaymentMethod,
		FixedOrVariable: fixedOrVariable,
		CreatedAt:       time.Now(),
	}
	if err := uc.repo.Create(expense); err != nil {
		return "", domain.NewPersistError("record_expense", "insert_expense", false, err)
	}
	return expense.ID, nil
}

// Cancel faz o soft-cancel de uma despesa. Idempotente.
func (uc *ExpenseUseCase) Cancel(ctx context.Context, id string) error {
	if id == "" {
		return fmt.Errorf("%w: id obrigatório", domain.ErrValidation)
	}
	found, err := uc.repo.MarkCanceled(id)
	if err != nil {
		return domain.NewPersistError("cancel_expense", "update_canceled", false, err)
	}
	if !found {
		return fmt.Errorf("%w: despesa %s", domain.ErrNotFound, id)
	}
	return nil
}

// SumByPeriod soma as despesas ativas em [from, to].
func (uc *ExpenseUseCase) SumByPeriod(ctx context.Context, fromStr, toStr string) (*dto.ExpenseSummaryResponse, error) {
	from, err := time.Parse(expenseDateLayout, fromStr)
	if err != nil {
		return nil, fmt.Errorf("%w: from inválido (%s)", domain.ErrValidation, fromStr)
	}
	to, err := time.Parse(expenseDateLayout, toStr)
	if err != nil {
		return nil, fmt.Errorf("%w: to inválido (%s)", domain.ErrValidation, toStr)
	}
	if to.Before(from) {
		return nil, fmt.Errorf("%w: período invertido", domain.ErrValidation)
	}
	total, err := uc.repo.SumByPeriod(from, to)
	if err != nil {
		return nil, domain.NewPersistError("sum_expenses", "sum", false, err)
	}
	return &dto.ExpenseSummaryResponse{From: fromStr, To: toStr, Total: total}, nil
}
