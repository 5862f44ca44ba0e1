package repository

import "github.com/seu-usuario/lanchonete-pro/internal/domain/entity"

// ProductRepository define o porto de persistência para Product (DIP).
type ProductRepository interface {
	Create(product *entity.Product) error
	GetByID(id string) (*entity.Product, error)
	Update(product *entity.Product) error
	// List carrega uma página de produtos ordenada por id (carga em
	// lotes de tamanho fixo, como o app original).
	List(onlyActive bool, limit, offset int) ([]*entity.Product, error)
	// ListIDs devolve o conjunto de ids presentes no armazenamento
	// autoritativo (usado pela reconciliação).
	ListIDs() (map[string]struct{}, error)
	// Exists verifica a presença de UM id imediatamente antes de um
	// insert de reparo (guarda da reconciliação).
	Exists(id string) (bool, error)
}
