package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/seu-usuario/lanchonete-pro/internal/domain/entity"
	"github.com/seu-usuario/lanchonete-pro/internal/domain/repository"
)

var _ repository.MovementRepository = (*MovementRepo)(nil)

const movementColumns = `id, product_id, movement_type, quantity, unit_cost, origin, notes, created_at`

// MovementRepo implementação do porto MovementRepository sobre
// PostgreSQL (usável com pool ou tx). O razão é append-only: este
// adaptador só insere e lê, nunca atualiza ou apaga.
type MovementRepo struct {
	q Querier
}

// NewMovementRepository constrói o adaptador de persistência do razão.
// Passar pool ou tx (Querier).
func NewMovementRepository(q Querier) *MovementRepo {
	return &MovementRepo{q: q}
}

// Create insere um movimento no razão.
func (r *MovementRepo) Create(movement *entity.StockMovement) error {
	query := `
		INSERT INTO stock_movements (id, product_id, movement_type, quantity, unit_cost, origin, notes, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := r.q.Exec(context.Background(), query,
		movement.ID, movement.ProductID, string(movement.Kind), movement.Quantity,
		movement.UnitCost, movement.Origin, movement.Notes, movement.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert stock movement: %w", err)
	}
	return nil
}

// GetByID obtém um movimento por ID.
func (r *MovementRepo) GetByID(id string) (*entity.StockMovement, error) {
	query := `SELECT ` + movementColumns + ` FROM stock_movements WHERE id = $1`
	var m entity.StockMovement
	err := r.q.QueryRow(context.Background(), query, id).Scan(
		&m.ID, &m.ProductID, &m.Kind, &m.Quantity, &m.UnitCost, &m.Origin, &m.Notes, &m.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get stock movement: %w", err)
	}
	return &m, nil
}

// List carrega uma página de movimentos, do mais recente ao mais antigo
// (limit <= 0 retorna tudo).
func (r *MovementRepo) List(limit, offset int) ([]*entity.StockMovement, error) {
	query := `SELECT ` + movementColumns + ` FROM stock_movements ORDER BY created_at DESC`
	args := []any{}
	if limit > 0 {
		query += ` LIMIT $1 OFFSET $2`
		args = append(args, limit, offset)
	}
	return r.queryMovements(query, args...)
}

// ListByProduct lista os movimentos de um produto, com filtro opcional
// de período e paginação opcional.
func (r *MovementRepo) ListByProduct(productID string, from, to *time.Time, limit, offset int) ([]*entity.StockMovement, error) {
	query := `SELECT ` + movementColumns + ` FROM stock_movements WHERE product_id = $1`
	args := []any{productID}
	if from != nil {
		args = append(args, *from)
		query += fmt.Sprintf(` AND created_at >= $%d`, len(args))
	}
	if to != nil {
		args = append(args, *to)
		query += fmt.Sprintf(` AND created_at <= $%d`, len(args))
	}
	query += ` ORDER BY created_at DESC`
	if limit > 0 {
		args = append(args, limit, offset)
		query += fmt.Sprintf(` LIMIT $%d OFFSET $%d`, len(args)-1, len(args))
	}
	return r.queryMovements(query, args...)
}

// SumByProduct devolve o estoque derivado do produto em UM agregado SQL:
// entradas somam, saídas subtraem, ajuste de inventário passa a
// quantidade assinada como está. Mesma regra de sinal de
// entity.SignedQuantity.
func (r *MovementRepo) SumByProduct(productID string) (int64, error) {
	query := `
		SELECT COALESCE(SUM(CASE
			WHEN movement_type IN ('Entrada Compra', 'Entrada Ajuste', 'Produção', 'Estorno de Venda') THEN quantity
			WHEN movement_type IN ('Saída Venda', 'Saída Perda', 'Saída Consumo Interno') THEN -quantity
			WHEN movement_type = 'Ajuste de Inventário' THEN quantity
			ELSE 0
		END), 0)
		FROM stock_movements WHERE product_id = $1`
	var total int64
	if err := r.q.QueryRow(context.Background(), query, productID).Scan(&total); err != nil {
		return 0, fmt.Errorf("sum stock movements: %w", err)
	}
	return total, nil
}

func (r *MovementRepo) queryMovements(query string, args ...any) ([]*entity.StockMovement, error) {
	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list stock movements: %w", err)
	}
	defer rows.Close()
	var list []*entity.StockMovement
	for rows.Next() {
		var m entity.StockMovement
		if err := rows.Scan(&m.ID, &m.ProductID, &m.Kind, &m.Quantity, &m.UnitCost, &m.Origin, &m.Notes, &m.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan stock movement: %w", err)
		}
		list = append(list, &m)
	}
	return list, rows.Err()
}
