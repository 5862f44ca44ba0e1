package http

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/seu-usuario/lanchonete-pro/internal/application/dto"
	"github.com/seu-usuario/lanchonete-pro/internal/application/ledger"
	"github.com/seu-usuario/lanchonete-pro/internal/application/session"
	"github.com/seu-usuario/lanchonete-pro/internal/application/usecase"
)

// ProductHandler cuida do cadastro de produtos e das consultas de
// estoque derivado (protegido).
type ProductHandler struct {
	uc       *usecase.ProductUseCase
	ledgerUC *ledger.MovementUseCase
	sess     *session.Session
}

// NewProductHandler constrói o handler.
func NewProductHandler(uc *usecase.ProductUseCase, ledgerUC *ledger.MovementUseCase, sess *session.Session) *ProductHandler {
	return &ProductHandler{uc: uc, ledgerUC: ledgerUC, sess: sess}
}

// Create godoc
// @Summary      Criar produto
// @Tags         products
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateProductRequest  true  "dados do produto"
// @Success      201   {object}  dto.ProductResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/products [post]
func (h *ProductHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateProductRequest
	if !parseBody(c, &in) {
		return nil
	}
	var out *dto.ProductResponse
	err := h.sess.RunExclusive(c.Context(), func(ctx context.Context) error {
		var err error
		out, err = h.uc.Create(in)
		return err
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// GetByID godoc
// @Summary      Obter produto
// @Tags         products
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID do produto"
// @Success      200  {object}  dto.ProductResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/products/{id} [get]
func (h *ProductHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.GetByID(c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Update godoc
// @Summary      Atualizar produto
// @Tags         products
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID do produto"
// @Param        body  body  dto.UpdateProductRequest  true  "campos a alterar"
// @Success      200   {object}  dto.ProductResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/products/{id} [put]
func (h *ProductHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateProductRequest
	if !parseBody(c, &in) {
		return nil
	}
	var out *dto.ProductResponse
	err := h.sess.RunExclusive(c.Context(), func(ctx context.Context) error {
		var err error
		out, err = h.uc.Update(c.Params("id"), in)
		return err
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// List godoc
// @Summary      Listar produtos ativos
// @Tags         products
// @Security     Bearer
// @Produce      json
// @Param        limit   query  int  false  "tamanho da página"
// @Param        offset  query  int  false  "deslocamento"
// @Success      200  {object}  dto.ProductListResponse
// @Router       /api/products [get]
func (h *ProductHandler) List(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "paginação inválida"})
	}
	out, err := h.uc.List(page)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Stock godoc
// @Summary      Estoque derivado do produto
// @Description  Soma assinada de todos os movimentos do produto, calculada em uma única leitura consistente.
// @Tags         products
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID do produto"
// @Success      200  {object}  dto.StockResponse
// @Router       /api/products/{id}/stock [get]
func (h *ProductHandler) Stock(c *fiber.Ctx) error {
	productID := c.Params("id")
	stock, err := h.ledgerUC.DerivedStock(c.Context(), productID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.StockResponse{ProductID: productID, Stock: stock})
}

// Movements godoc
// @Summary      Extrato de movimentos do produto
// @Tags         products
// @Security     Bearer
// @Produce      json
// @Param        id    path   string  true   "ID do produto"
// @Param        from  query  string  false  "início (RFC 3339)"
// @Param        to    query  string  false  "fim (RFC 3339)"
// @Success      200  {array}  dto.MovementResponse
// @Router       /api/products/{id}/movements [get]
func (h *ProductHandler) Movements(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "paginação inválida"})
	}
	page.DefaultPage()

	var from, to *time.Time
	if v := c.Query("from"); v != "" {
		t, err := time.Parse(time.RFC3339, v)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "from inválido"})
		}
		from = &t
	}
	if v := c.Query("to"); v != "" {
		t, err := time.Parse(time.RFC3339, v)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "to inválido"})
		}
		to = &t
	}

	out, err := h.ledgerUC.ListByProduct(c.Context(), c.Params("id"), from, to, page.Limit, page.Offset)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}
