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

var _ repository.MealRepository = (*MealRepo)(nil)

const mealColumns = `id, employee_id, meal_date, value, description, related_sale_id, canceled, created_at`

// MealRepo implementação do porto MealRepository sobre PostgreSQL
// (usável com pool ou tx).
type MealRepo struct {
	q Querier
}

// NewMealRepository constrói o adaptador de persistência de refeições.
// Passar pool ou tx (Querier).
func NewMealRepository(q Querier) *MealRepo {
	return &MealRepo{q: q}
}

// Create persiste um consumo de refeição.
func (r *MealRepo) Create(meal *entity.MealConsumption) error {
	query := `
		INSERT INTO employee_meals (id, employee_id, meal_date, value, description, related_sale_id, canceled, created_at)
		VALUES ($1, $2, $3, $4, $5, NULLIF($6, ''), $7, $8)`
	_, err := r.q.Exec(context.Background(), query,
		meal.ID, meal.EmployeeID, meal.MealDate, meal.Value, meal.Description,
		meal.RelatedSaleID, meal.Canceled, meal.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert employee meal: %w", err)
	}
	return nil
}

// GetByID obtém um consumo por ID.
func (r *MealRepo) GetByID(id string) (*entity.MealConsumption, error) {
	query := `SELECT ` + mealColumns + ` FROM employee_meals WHERE id = $1`
	var m entity.MealConsumption
	var relatedSaleID *string
	err := r.q.QueryRow(context.Background(), query, id).Scan(
		&m.ID, &m.EmployeeID, &m.MealDate, &m.Value, &m.Description, &relatedSaleID, &m.Canceled, &m.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get employee meal: %w", err)
	}
	if relatedSaleID != nil {
		m.RelatedSaleID = *relatedSaleID
	}
	return &m, nil
}

// MarkCanceled seta canceled=true. Idempotente: o UPDATE em um registro
// já cancelado não muda nada. Devolve false quando o id não existe.
func (r *MealRepo) MarkCanceled(id string) (bool, error) {
	cmd, err := r.q.Exec(context.Background(),
		`UPDATE employee_meals SET canceled = true WHERE id = $1`, id,
	)
	if err != nil {
		return false, fmt.Errorf("cancel employee meal: %w", err)
	}
	return cmd.RowsAffected() > 0, nil
}

// MarkCanceledBySale cancela o consumo vinculado a uma venda.
func (r *MealRepo) MarkCanceledBySale(saleID string) error {
	_, err := r.q.Exec(context.Background(),
		`UPDATE employee_meals SET canceled = true WHERE related_sale_id = $1`, saleID,
	)
	if err != nil {
		return fmt.Errorf("cancel employee meal by sale: %w", err)
	}
	return nil
}

// SumActiveByDay soma os consumos não cancelados do funcionário no dia.
func (r *MealRepo) SumActiveByDay(employeeID string, day time.Time) (decimal.Decimal, error) {
	query := `
		SELECT COALESCE(SUM(value), 0)
		FROM employee_meals
		WHERE employee_id = $1 AND meal_date = $2::date AND canceled = false`
	var total decimal.Decimal
	if err := r.q.QueryRow(context.Background(), query, employeeID, day).Scan(&total); err != nil {
		return decimal.Zero, fmt.Errorf("sum employee meals: %w", err)
	}
	return total, nil
}

// List carrega uma página de consumos, do mais recente ao mais antigo
// (limit <= 0 retorna tudo).
func (r *MealRepo) List(limit, offset int) ([]*entity.MealConsumption, error) {
	query := `SELECT ` + mealColumns + ` FROM employee_meals ORDER BY created_at DESC`
	args := []any{}
	if limit > 0 {
		query += ` LIMIT $1 OFFSET $2`
		args = append(args, limit, offset)
	}
	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list employee meals: %w", err)
	}
	defer rows.Close()
	var list []*entity.MealConsumption
	for rows.Next() {
		var m entity.MealConsumption
		var relatedSaleID *string
		if err := rows.Scan(&m.ID, &m.EmployeeID, &m.MealDate, &m.Value, &m.Description, &relatedSaleID, &m.Canceled, &m.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan employee meal: %w", err)
		}
		if relatedSaleID != nil {
			m.RelatedSaleID = *relatedSaleID
		}
		list = append(list, &m)
	}
	return list, rows.Err()
}
