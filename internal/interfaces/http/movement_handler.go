package http

import (
	"context"

	"github.com/gofiber/fiber/v2"

	"github.com/seu-usuario/lanchonete-pro/internal/application/dto"
	"github.com/seu-usuario/lanchonete-pro/internal/application/ledger"
	"github.com/seu-usuario/lanchonete-pro/internal/application/session"
)

// MovementHandler cuida do registro de movimentos do razão de estoque
// (protegido).
type MovementHandler struct {
	uc   *ledger.MovementUseCase
	sess *session.Session
}

// NewMovementHandler constrói o handler.
func NewMovementHandler(uc *ledger.MovementUseCase, sess *session.Session) *MovementHandler {
	return &MovementHandler{uc: uc, sess: sess}
}

// Register godoc
// @Summary      Registrar movimento de estoque
// @Description  Entradas e saídas usam quantidade positiva; "Ajuste de Inventário" aceita quantidade assinada não nula.
// @Tags         movements
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.RegisterMovementRequest  true  "product_id, movement_type, quantity, unit_cost (entradas)"
// @Success      201   {object}  dto.MovementResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/movements [post]
func (h *MovementHandler) Register(c *fiber.Ctx) error {
	var in dto.RegisterMovementRequest
	if !parseBody(c, &in) {
		return nil
	}
	var out *dto.MovementResponse
	err := h.sess.RunExclusive(c.Context(), func(ctx context.Context) error {
		var err error
		out, err = h.uc.Record(ctx, in)
		return err
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// RegisterAdjustment godoc
// @Summary      Registrar ajuste de inventário por contagem física
// @Description  Grava UM movimento assinado com a diferença contagem − estoque derivado.
// @Tags         movements
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Success      201  {object}  dto.MovementResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/movements/adjustment [post]
func (h *MovementHandler) RegisterAdjustment(c *fiber.Ctx) error {
	var in struct {
		ProductID     string `json:"product_id" validate:"required,uuid"`
		PhysicalCount int64  `json:"physical_count" validate:"min=0"`
		Notes         string `json:"notes" validate:"max=500"`
	}
	if !parseBody(c, &in) {
		return nil
	}
	var out *dto.MovementResponse
	err := h.sess.RunExclusive(c.Context(), func(ctx context.Context) error {
		var err error
		out, err = h.uc.RecordAdjustment(ctx, in.ProductID, in.PhysicalCount, in.Notes)
		return err
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}
