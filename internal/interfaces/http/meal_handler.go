package http

import (
	"context"

	"github.com/gofiber/fiber/v2"

	"github.com/seu-usuario/lanchonete-pro/internal/application/dto"
	"github.com/seu-usuario/lanchonete-pro/internal/application/meals"
	"github.com/seu-usuario/lanchonete-pro/internal/application/session"
)

// MealHandler cuida dos consumos de refeição de funcionário (protegido).
type MealHandler struct {
	uc   *meals.MealUseCase
	sess *session.Session
}

// NewMealHandler constrói o handler.
func NewMealHandler(uc *meals.MealUseCase, sess *session.Session) *MealHandler {
	return &MealHandler{uc: uc, sess: sess}
}

// Record godoc
// @Summary      Registrar consumo de refeição avulso
// @Tags         meals
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.RegisterMealRequest  true  "employee_id, meal_date, value"
// @Success      201   {object}  map[string]string
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/meals [post]
func (h *MealHandler) Record(c *fiber.Ctx) error {
	var in dto.RegisterMealRequest
	if !parseBody(c, &in) {
		return nil
	}
	var id string
	err := h.sess.RunExclusive(c.Context(), func(ctx context.Context) error {
		var err error
		id, err = h.uc.Record(ctx, in)
		return err
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"id": id})
}

// Cancel godoc
// @Summary      Cancelar consumo de refeição
// @Description  Soft-cancel idempotente. Não toca o razão de estoque.
// @Tags         meals
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID do consumo"
// @Success      204
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/meals/{id}/cancel [post]
func (h *MealHandler) Cancel(c *fiber.Ctx) error {
	err := h.sess.RunExclusive(c.Context(), func(ctx context.Context) error {
		return h.uc.Cancel(ctx, c.Params("id"))
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// Balance godoc
// @Summary      Saldo diário de refeição do funcionário
// @Description  limite diário − soma dos consumos ativos do dia. Pode ser negativo.
// @Tags         meals
// @Security     Bearer
// @Produce      json
// @Param        employee_id  query  string  true  "ID do funcionário"
// @Param        meal_date    query  string  true  "data (YYYY-MM-DD)"
// @Success      200  {object}  dto.MealBalanceResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/meals/balance [get]
func (h *MealHandler) Balance(c *fiber.Ctx) error {
	out, err := h.uc.DailyBalance(c.Context(), c.Query("employee_id"), c.Query("meal_date"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}
