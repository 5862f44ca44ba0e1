package http

import (
	"context"

	"github.com/gofiber/fiber/v2"

	"github.com/seu-usuario/lanchonete-pro/internal/application/dto"
	"github.com/seu-usuario/lanchonete-pro/internal/application/sales"
	"github.com/seu-usuario/lanchonete-pro/internal/application/session"
)

// SaleHandler cuida da criação e do cancelamento de vendas (protegido).
type SaleHandler struct {
	uc   *sales.SaleUseCase
	sess *session.Session
}

// NewSaleHandler constrói o handler.
func NewSaleHandler(uc *sales.SaleUseCase, sess *session.Session) *SaleHandler {
	return &SaleHandler{uc: uc, sess: sess}
}

// Create godoc
// @Summary      Criar venda
// @Description  Grava cabeçalho, itens, movimentos de saída e (origem funcionário) o débito de refeição numa única transação.
// @Tags         sales
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateSaleRequest  true  "itens, forma de pagamento, desconto, employee_id (opcional)"
// @Success      201   {object}  dto.SaleResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/sales [post]
func (h *SaleHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateSaleRequest
	if !parseBody(c, &in) {
		return nil
	}
	var out *dto.SaleResponse
	err := h.sess.RunExclusive(c.Context(), func(ctx context.Context) error {
		var err error
		out, err = h.uc.Create(ctx, in)
		return err
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// GetByID godoc
// @Summary      Obter venda com itens
// @Tags         sales
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID da venda"
// @Success      200  {object}  dto.SaleResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/sales/{id} [get]
func (h *SaleHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.Get(c.Context(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Cancel godoc
// @Summary      Cancelar venda
// @Description  Idempotente: venda já cancelada devolve sucesso sem escrita. O estorno devolve o estoque por movimentos, nunca apagando o histórico.
// @Tags         sales
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID da venda"
// @Success      200  {object}  map[string]bool
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/sales/{id}/cancel [post]
func (h *SaleHandler) Cancel(c *fiber.Ctx) error {
	var canceled bool
	err := h.sess.RunExclusive(c.Context(), func(ctx context.Context) error {
		var err error
		canceled, err = h.uc.Cancel(ctx, c.Params("id"))
		return err
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"canceled": canceled})
}
