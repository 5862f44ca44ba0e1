package usecase

import (
	"time"

	"github.com/google/uuid"

	"github.com/seu-usuario/lanchonete-pro/internal/application/dto"
	"github.com/seu-usuario/lanchonete-pro/internal/domain"
	"github.com/seu-usuario/lanchonete-pro/internal/domain/entity"
	"github.com/seu-usuario/lanchonete-pro/internal/domain/repository"
)

// ProductUseCase CRUD de produtos. Estoque nunca é gravado aqui: é
// derivado dos movimentos.
type ProductUseCase struct {
	repo repository.ProductRepository
}

// NewProductUseCase constrói o caso de uso.
func NewProductUseCase(repo repository.ProductRepository) *ProductUseCase {
	return &ProductUseCase{repo: repo}
}

// Create cria um produto ativo.
func (uc *ProductUseCase) Create(in dto.CreateProductRequest) (*dto.ProductResponse, error) {
	if in.Name == "" {
		return nil, domain.ErrValidation
	}
	if in.Type != entity.ProductTypeFinal && in.Type != entity.ProductTypeInsumo {
		return nil, domain.ErrValidation
	}
	if in.Price.IsNegative() || in.Cost.IsNegative() || in.MinStock < 0 {
		return nil, domain.ErrValidation
	}
	product := &entity.Product{
		ID:        uuid.New().String(),
		Category:  in.Category,
		Name:      in.Name,
		Type:      in.Type,
		Unit:      in.Unit,
		Price:     in.Price,
		Cost:      in.Cost,
		MinStock:  in.MinStock,
		ImageURL:  in.ImageURL,
		Active:    true,
		CreatedAt: time.Now(),
	}
	if err := uc.repo.Create(product); err != nil {
		return nil, err
	}
	return toProductResponse(product), nil
}

// GetByID obtém um produto por id.
func (uc *ProductUseCase) GetByID(id string) (*dto.ProductResponse, error) {
	product, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}
	return toProductResponse(product), nil
}

// Update atualiza campos do cadastro. Estoque não entra aqui.
func (uc *ProductUseCase) Update(id string, in dto.UpdateProductRequest) (*dto.ProductResponse, error) {
	product, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}
	if in.Name != nil {
		product.Name = *in.Name
	}
	if in.Category != nil {
		product.Category = *in.Category
	}
	if in.Unit != nil {
		product.Unit = *in.Unit
	}
	if in.Price != nil {
		if in.Price.IsNegative() {
			return nil, domain.ErrValidation
		}
		product.Price = *in.Price
	}
	if in.Cost != nil {
		if in.Cost.IsNegative() {
			return nil, domain.ErrValidation
		}
		product.Cost = *in.Cost
	}
	if in.MinStock != nil {
		product.MinStock = *in.MinStock
	}
	if in.Active != nil {
		product.Active = *in.Active
	}
	if err := uc.repo.Update(product); err != nil {
		return nil, err
	}
	return toProductResponse(product), nil
}

// List lista produtos ativos paginados.
func (uc *ProductUseCase) List(page dto.PageRequest) (*dto.ProductListResponse, error) {
	page.DefaultPage()
	products, err := uc.repo.List(true, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	resp := &dto.ProductListResponse{
		Items: make([]dto.ProductResponse, 0, len(products)),
		Page:  dto.PageResponse{Limit: page.Limit, Offset: page.Offset},
	}
	for _, p := range products {
		resp.Items = append(resp.Items, *toProductResponse(p))
	}
	return resp, nil
}

func toProductResponse(p *entity.Product) *dto.ProductResponse {
	return &dto.ProductResponse{
		ID:        p.ID,
		Name:      p.Name,
		Category:  p.Category,
		Type:      p.Type,
		Unit:      p.Unit,
		Price:     p.Price,
		Cost:      p.Cost,
		MinStock:  p.MinStock,
		Active:    p.Active,
		CreatedAt: p.CreatedAt,
	}
}
