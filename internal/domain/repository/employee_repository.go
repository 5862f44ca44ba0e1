package repository

import "github.com/seu-usuario/lanchonete-pro/internal/domain/entity"

// EmployeeRepository dá acesso de leitura aos funcionários. O CRUD de
// perfil fica fora do núcleo; aqui só o necessário para refeições.
type EmployeeRepository interface {
	GetByID(id string) (*entity.Employee, error)
	ListActive() ([]*entity.Employee, error)
}
