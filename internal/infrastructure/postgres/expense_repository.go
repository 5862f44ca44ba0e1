package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/seu-usuario/lanchonete-pro/internal/domain/entity"
	"github.com/seu-usuario/lanchonete-pro/internal/domain/repository"
)

var _ repository.ExpenseRepository = (*ExpenseRepo)(nil)

const expenseColumns = `id, expense_date, category, description, value, payment_method, fixed_or_variable, canceled, created_at`

// ExpenseRepo implementação do porto ExpenseRepository sobre PostgreSQL
// (usável com pool ou tx).
type ExpenseRepo struct {
	q Querier
}

// NewExpenseRepository constrói o adaptador de persistência de despesas.
// Passar pool ou tx (Querier).
func NewExpenseRepository(q Querier) *ExpenseRepo {
	return &ExpenseRepo{q: q}
}

// Create persiste uma despesa.
func (r *ExpenseRepo) Create(expense *entity.Expense) error {
	query := `
		INSERT INTO expenses (id, expense_date, category, description, value, payment_method, fixed_or_variable, canceled, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	_, err := r.q.Exec(context.Background(), query,
		expense.ID, expense.ExpenseDate, expense.Category, expense.Description, expense.Value,
		expense.PaymentMethod, expense.FixedOrVariable, expense.Canceled, expense.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert expense: %w", err)
	}
	return nil
}

// GetByID obtém uma despesa por ID.
func (r *ExpenseRepo) GetByID(id string) (*entity.Expense, error) {
	query := `SELECT ` + expenseColumns + ` FROM expenses WHERE id = $1`
	var e entity.Expense
	err := r.q.QueryRow(context.Background(), query, id).Scan(
		&e.ID, &e.ExpenseDate, &e.Category, &e.Description, &e.Value,
		&e.PaymentMethod, &e.FixedOrVariable, &e.Canceled, &e.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get expense: %w", err)
	}
	return &e, nil
}

// MarkCanceled seta canceled=true (soft-cancel, idempotente). Devolve
// false quando o id não existe.
func (r *ExpenseRepo) MarkCanceled(id string) (bool, error) {
	cmd, err := r.q.Exec(context.Background(),
		`UPDATE expenses SET canceled = true WHERE id = $1`, id,
	)
	if err != nil {
		return false, fmt.Errorf("cancel expense: %w", err)
	}
	return cmd.RowsAffected() > 0, nil
}

// SumByPeriod soma as despesas não canceladas no intervalo [from, to].
func (r *ExpenseRepo) SumByPeriod(from, to time.Time) (decimal.Decimal, error) {
	query := `
		SELECT COALESCE(SUM(value), 0)
		FROM expenses
		WHERE expense_date >= $1::date AND expense_date <= $2::date AND canceled = false`
	var total decimal.Decimal
	if err := r.q.QueryRow(context.Background(), query, from, to).Scan(&total); err != nil {
		return decimal.Zero, fmt.Errorf("sum expenses: %w", err)
	}
	return total, nil
}

// List carrega uma página de despesas, da mais recente à mais antiga,
// com filtro opcional de período (limit <= 0 retorna tudo).
func (r *ExpenseRepo) List(from, to *time.Time, limit, offset int) ([]*entity.Expense, error) {
	query := `SELECT ` + expenseColumns + ` FROM expenses`
	args := []any{}
	where := ""
	if from != nil {
		args = append(args, *from)
		where = fmt.Sprintf(` WHERE expense_date >= $%d::date`, len(args))
	}
	if to != nil {
		args = append(args, *to)
		if where == "" {
			where = fmt.Sprintf(` WHERE expense_date <= $%d::date`, len(args))
		} else {
			where += fmt.Sprintf(` AND expense_date <= $%d::date`, len(args))
		}
	}
	query += where + ` ORDER BY expense_date DESC`
	if limit > 0 {
		args = append(args, limit, offset)
		query += fmt.Sprintf(` LIMIT $%d OFFSET $%d`, len(args)-1, len(args))
	}
	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list expenses: %w", err)
	}
	defer rows.Close()
	var list []*entity.Expense
	for rows.Next() {
		var e entity.Expense
		if err := rows.Scan(&e.ID, &e.ExpenseDate, &e.Category, &e.Description, &e.Value,
			&e.PaymentMethod, &e.FixedOrVariable, &e.Canceled, &e.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan expense: %w", err)
		}
		list = append(list, &e)
	}
	return list, rows.Err()
}
