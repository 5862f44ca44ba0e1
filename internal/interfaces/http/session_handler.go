package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/seu-usuario/lanchonete-pro/internal/application/dto"
	"github.com/seu-usuario/lanchonete-pro/internal/application/session"
)

// SessionHandler expõe a recarga do snapshot da sessão e as leituras de
// cache (protegido).
type SessionHandler struct {
	sess *session.Session
}

// NewSessionHandler constrói o handler.
func NewSessionHandler(sess *session.Session) *SessionHandler {
	return &SessionHandler{sess: sess}
}

// Refresh godoc
// @Summary      Recarregar o snapshot da sessão
// @Description  Relê todas as coleções do armazenamento. Falhas de coleções individuais são agregadas no erro.
// @Tags         session
// @Security     Bearer
// @Produce      json
// @Success      204
// @Failure      500  {object}  dto.ErrorResponse
// @Router       /api/session/refresh [post]
func (h *SessionHandler) Refresh(c *fiber.Ctx) error {
	if err := h.sess.Refresh(c.Context()); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// CachedStock godoc
// @Summary      Estoque derivado a partir do snapshot da sessão
// @Description  Dobra o cache local de movimentos; resposta rápida para a UI, não autoritativa.
// @Tags         session
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID do produto"
// @Success      200  {object}  dto.StockResponse
// @Router       /api/session/stock/{id} [get]
func (h *SessionHandler) CachedStock(c *fiber.Ctx) error {
	productID := c.Params("id")
	stock, err := h.sess.CachedStock(productID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.StockResponse{ProductID: productID, Stock: stock})
}
