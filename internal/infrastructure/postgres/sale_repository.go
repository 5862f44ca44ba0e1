package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/seu-usuario/lanchonete-pro/internal/domain/entity"
	"github.com/seu-usuario/lanchonete-pro/internal/domain/repository"
)

var _ repository.SaleRepository = (*SaleRepo)(nil)

const saleColumns = `id, sale_datetime, channel, status, payment_method, origin, gross_value, discount_value, net_value, total_cost, canceled, employee_id`

// SaleRepo implementação do porto SaleRepository sobre PostgreSQL
// (usável com pool ou tx).
type SaleRepo struct {
	q Querier
}

// NewSaleRepository constrói o adaptador de persistência de vendas.
// Passar pool ou tx (Querier).
func NewSaleRepository(q Querier) *SaleRepo {
	return &SaleRepo{q: q}
}

// Create persiste o cabeçalho da venda.
func (r *SaleRepo) Create(sale *entity.Sale) error {
	query := `
		INSERT INTO sales (id, sale_datetime, channel, status, payment_method, origin, gross_value, discount_value, net_value, total_cost, canceled, employee_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, NULLIF($12, ''))`
	_, err := r.q.Exec(context.Background(), query,
		sale.ID, sale.SaleDatetime, sale.Channel, sale.Status, sale.PaymentMethod, sale.Origin,
		sale.GrossValue, sale.DiscountValue, sale.NetValue, sale.TotalCost, sale.Canceled, sale.EmployeeID,
	)
	if err != nil {
		return fmt.Errorf("insert sale: %w", err)
	}
	return nil
}

// CreateItem persiste uma linha da venda.
func (r *SaleRepo) CreateItem(item *entity.SaleItem) error {
	query := `
		INSERT INTO sale_items (id, sale_id, product_id, quantity, unit_price, unit_cost, total_value)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err := r.q.Exec(context.Background(), query,
		item.ID, item.SaleID, item.ProductID, item.Quantity, item.UnitPrice, item.UnitCost, item.TotalValue,
	)
	if err != nil {
		return fmt.Errorf("insert sale item: %w", err)
	}
	return nil
}

// GetByID obtém o cabeçalho de uma venda (sem itens).
func (r *SaleRepo) GetByID(id string) (*entity.Sale, error) {
	query := `SELECT ` + saleColumns + ` FROM sales WHERE id = $1`
	var s entity.Sale
	var employeeID *string
	err := r.q.QueryRow(context.Background(), query, id).Scan(
		&s.ID, &s.SaleDatetime, &s.Channel, &s.Status, &s.PaymentMethod, &s.Origin,
		&s.GrossValue, &s.DiscountValue, &s.NetValue, &s.TotalCost, &s.Canceled, &employeeID,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get sale: %w", err)
	}
	if employeeID != nil {
		s.EmployeeID = *employeeID
	}
	return &s, nil
}

// GetItems obtém as linhas de uma venda.
func (r *SaleRepo) GetItems(saleID string) ([]*entity.SaleItem, error) {
	query := `
		SELECT id, sale_id, product_id, quantity, unit_price, unit_cost, total_value
		FROM sale_items WHERE sale_id = $1 ORDER BY id`
	rows, err := r.q.Query(context.Background(), query, saleID)
	if err != nil {
		return nil, fmt.Errorf("list sale items: %w", err)
	}
	defer rows.Close()
	var items []*entity.SaleItem
	for rows.Next() {
		var it entity.SaleItem
		if err := rows.Scan(&it.ID, &it.SaleID, &it.ProductID, &it.Quantity, &it.UnitPrice, &it.UnitCost, &it.TotalValue); err != nil {
			return nil, fmt.Errorf("scan sale item: %w", err)
		}
		items = append(items, &it)
	}
	return items, rows.Err()
}

// MarkCanceled faz a transição condicional Fechada→Cancelada. O WHERE
// com o status atual é o guarda de concorrência: só UMA sessão consegue
// a transição; as demais recebem false.
func (r *SaleRepo) MarkCanceled(id string) (bool, error) {
	cmd, err := r.q.Exec(context.Background(),
		`UPDATE sales SET status = $2, canceled = true WHERE id = $1 AND status = $3`,
		id, entity.SaleStatusCancelada, entity.SaleStatusFechada,
	)
	if err != nil {
		return false, fmt.Errorf("cancel sale: %w", err)
	}
	return cmd.RowsAffected() > 0, nil
}

// List carrega uma página de vendas (cabeçalhos), da mais recente à
// mais antiga (limit <= 0 retorna tudo).
func (r *SaleRepo) List(limit, offset int) ([]*entity.Sale, error) {
	query := `SELECT ` + saleColumns + ` FROM sales ORDER BY sale_datetime DESC`
	args := []any{}
	if limit > 0 {
		query += ` LIMIT $1 OFFSET $2`
		args = append(args, limit, offset)
	}
	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list sales: %w", err)
	}
	defer rows.Close()
	var list []*entity.Sale
	for rows.Next() {
		var s entity.Sale
		var employeeID *string
		if err := rows.Scan(&s.ID, &s.SaleDatetime, &s.Channel, &s.Status, &s.PaymentMethod, &s.Origin,
			&s.GrossValue, &s.DiscountValue, &s.NetValue, &s.TotalCost, &s.Canceled, &employeeID); err != nil {
			return nil, fmt.Errorf("scan sale: %w", err)
		}
		if employeeID != nil {
			s.EmployeeID = *employeeID
		}
		list = append(list, &s)
	}
	return list, rows.Err()
}
