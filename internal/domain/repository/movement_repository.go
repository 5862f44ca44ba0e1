package repository

import (
	"time"

	"github.com/seu-usuario/lanchonete-pro/internal/domain/entity"
)

// MovementRepository define o porto de persistência do razão de estoque.
// O razão é append-only: não há Update nem Delete de movimentos.
type MovementRepository interface {
	Create(movement *entity.StockMovement) error
	GetByID(id string) (*entity.StockMovement, error)
	// List carrega uma página de movimentos, do mais recente ao mais antigo.
	List(limit, offset int) ([]*entity.StockMovement, error)
	ListByProduct(productID string, from, to *time.Time, limit, offset int) ([]*entity.StockMovement, error)
	// SumByProduct devolve o estoque derivado do produto calculado pelo
	// banco em UMA leitura consistente (um único agregado SQL).
	SumByProduct(productID string) (int64, error)
}
