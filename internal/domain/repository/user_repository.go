package repository

import "github.com/seu-usuario/lanchonete-pro/internal/domain/entity"

// UserRepository define o porto de persistência para AppUser (DIP).
type UserRepository interface {
	Create(user *entity.AppUser) error
	FindByUsername(username string) (*entity.AppUser, error)
	UpdatePassword(id, passwordHash string) error
}
