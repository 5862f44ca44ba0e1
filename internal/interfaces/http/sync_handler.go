package http

import (
	"context"

	"github.com/gofiber/fiber/v2"

	"github.com/seu-usuario/lanchonete-pro/internal/application/session"
	"github.com/seu-usuario/lanchonete-pro/internal/application/sync"
)

// SyncHandler cuida da passada de reconciliação de produtos
// (protegido, admin).
type SyncHandler struct {
	uc   *sync.ProductSyncUseCase
	sess *session.Session
}

// NewSyncHandler constrói o handler.
func NewSyncHandler(uc *sync.ProductSyncUseCase, sess *session.Session) *SyncHandler {
	return &SyncHandler{uc: uc, sess: sess}
}

// Run godoc
// @Summary      Reconciliar produtos
// @Description  Compara o snapshot da sessão com o armazenamento autoritativo e re-envia (insert-only) os produtos ausentes.
// @Tags         sync
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.SyncResultResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/sync/products [post]
func (h *SyncHandler) Run(c *fiber.Ctx) error {
	local := h.sess.Products()
	var out any
	err := h.sess.RunExclusive(c.Context(), func(ctx context.Context) error {
		result, err := h.uc.Sync(ctx, local)
		out = result
		return err
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}
