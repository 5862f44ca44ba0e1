package http

import (
	"context"

	"github.com/gofiber/fiber/v2"

	"github.com/seu-usuario/lanchonete-pro/internal/application/dto"
	"github.com/seu-usuario/lanchonete-pro/internal/application/expenses"
	"github.com/seu-usuario/lanchonete-pro/internal/application/session"
)

// ExpenseHandler cuida do razão de despesas (protegido).
type ExpenseHandler struct {
	uc   *expenses.ExpenseUseCase
	sess *session.Session
}

// NewExpenseHandler constrói o handler.
func NewExpenseHandler(uc *expenses.ExpenseUseCase, sess *session.Session) *ExpenseHandler {
	return &ExpenseHandler{uc: uc, sess: sess}
}

// Record godoc
// @Summary      Registrar despesa
// @Tags         expenses
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.RegisterExpenseRequest  true  "expense_date, category, value"
// @Success      201   {object}  map[string]string
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/expenses [post]
func (h *ExpenseHandler) Record(c *fiber.Ctx) error {
	var in dto.RegisterExpenseRequest
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
// @Summary      Cancelar despesa
// @Description  Soft-cancel idempotente: a despesa cancelada sai das somas por período.
// @Tags         expenses
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID da despesa"
// @Success      204
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/expenses/{id}/cancel [post]
func (h *ExpenseHandler) Cancel(c *fiber.Ctx) error {
	err := h.sess.RunExclusive(c.Context(), func(ctx context.Context) error {
		return h.uc.Cancel(ctx, c.Params("id"))
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// Summary godoc
// @Summary      Total de despesas ativas no período
// @Tags         expenses
// @Security     Bearer
// @Produce      json
// @Param        from  query  string  true  "início (YYYY-MM-DD)"
// @Param        to    query  string  true  "fim (YYYY-MM-DD)"
// @Success      200  {object}  dto.ExpenseSummaryResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/expenses/summary [get]
func (h *ExpenseHandler) Summary(c *fiber.Ctx) error {
	out, err := h.uc.SumByPeriod(c.Context(), c.Query("from"), c.Query("to"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}
