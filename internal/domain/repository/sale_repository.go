package repository

import "github.com/seu-usuario/lanchonete-pro/internal/domain/entity"

// SaleRepository define o porto de persistência de vendas e seus itens.
type SaleRepository interface {
	Create(sale *entity.Sale) error
	CreateItem(item *entity.SaleItem) error
	GetByID(id string) (*entity.Sale, error)
	GetItems(saleID string) ([]*entity.SaleItem, error)
	// MarkCanceled faz a transição condicional Fechada→Cancelada
	// (UPDATE ... WHERE status = 'Fechada'). Devolve false quando a
	// condição não casou — outra sessão chegou primeiro.
	MarkCanceled(id string) (bool, error)
	List(limit, offset int) ([]*entity.Sale, error)
}
