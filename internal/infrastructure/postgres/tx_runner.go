package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/seu-usuario/lanchonete-pro/internal/application/sales"
	"github.com/seu-usuario/lanchonete-pro/internal/domain/repository"
)

// Garantia em tempo de compilação de que TxRunner satisfaz o porto.
var _ sales.TxRunner = (*TxRunner)(nil)

// TxRunner executa callbacks dentro de uma transação PostgreSQL.
// É a garantia de atomicidade do coordenador de vendas: cabeçalho,
// itens, movimentos e débito de refeição ou entram juntos ou não entram.
type TxRunner struct {
	pool *pgxpool.Pool
}

// NewTxRunner constrói o runner com o pool.
func NewTxRunner(pool *pgxpool.Pool) *TxRunner {
	return &TxRunner{pool: pool}
}

// Run inicia uma transação, executa fn com repositórios atados à tx e
// faz Commit ou Rollback.
func (r *TxRunner) Run(ctx context.Context, fn func(
	saleRepo repository.SaleRepository,
	movRepo repository.MovementRepository,
	mealRepo repository.MealRepository,
) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	saleRepo := NewSaleRepository(tx)
	movRepo := NewMovementRepository(tx)
	mealRepo := NewMealRepository(tx)

	if err := fn(saleRepo, movRepo, mealRepo); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}
