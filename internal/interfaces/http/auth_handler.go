package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/seu-usuario/lanchonete-pro/internal/application/auth"
	"github.com/seu-usuario/lanchonete-pro/internal/application/dto"
)

// AuthHandler cuida de login e gestão de usuários do PDV.
type AuthHandler struct {
	uc *auth.AuthUseCase
}

// NewAuthHandler constrói o handler de auth.
func NewAuthHandler(uc *auth.AuthUseCase) *AuthHandler {
	return &AuthHandler{uc: uc}
}

// Login godoc
// @Summary      Iniciar sessão
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body  dto.LoginRequest  true  "username, password"
// @Success      200   {object}  dto.LoginResponse
// @Failure      401   {object}  dto.ErrorResponse
// @Router       /api/auth/login [post]
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var in dto.LoginRequest
	if !parseBody(c, &in) {
		return nil
	}
	out, err := h.uc.Login(in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// CreateUser godoc
// @Summary      Criar usuário do PDV (admin)
// @Tags         auth
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Success      201  {object}  dto.UserResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/auth/users [post]
func (h *AuthHandler) CreateUser(c *fiber.Ctx) error {
	var in struct {
		Username string `json:"username" validate:"required,min=1,max=100"`
		Password string `json:"password" validate:"required,min=8"`
		Role     string `json:"role" validate:"omitempty,oneof=admin venda"`
	}
	if !parseBody(c, &in) {
		return nil
	}
	user, err := h.uc.CreateUser(in.Username, in.Password, in.Role)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(user)
}

// ChangePassword godoc
// @Summary      Trocar a própria senha
// @Tags         auth
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Success      204
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/auth/password [put]
func (h *AuthHandler) ChangePassword(c *fiber.Ctx) error {
	var in struct {
		NewPassword string `json:"new_password" validate:"required,min=8"`
	}
	if !parseBody(c, &in) {
		return nil
	}
	if err := h.uc.ChangePassword(GetUserID(c), in.NewPassword); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
