package entity

import "time"

// Papéis válidos para AppUser (mesmos valores da tabela app_users).
const (
	RoleAdmin = "admin"
	RoleVenda = "venda"
)

// AppUser representa um usuário do sistema (login do PDV).
type AppUser struct {
	ID           string
	Username     string
	PasswordHash string // bcrypt, nunca plano no domínio depois de persistir
	Role         string // admin | venda
	CreatedAt    time.Time
}
