package sales

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/seu-usuario/lanchonete-pro/internal/application/dto"
	"github.com/seu-usuario/lanchonete-pro/internal/domain"
	"github.com/seu-usuario/lanchonete-pro/internal/domain/entity"
	"github.com/seu-usuario/lanchonete-pro/internal/domain/repository"
)

// SaleUseCase coordena a criação e o cancelamento de vendas. Cabeçalho,
// itens, movimentos de saída e (para funcionário) o débito de refeição
// são gravados numa única transação; o cancelamento nunca apaga
// histórico: emite um estorno por item original e vira o status uma
// única vez, com update condicional.
type SaleUseCase struct {
	txRunner     TxRunner
	productRepo  repository.ProductRepository
	employeeRepo repository.EmployeeRepository
	saleRepo     repository.SaleRepository
}

// NewSaleUseCase constrói o coordenador.
func NewSaleUseCase(
	txRunner TxRunner,
	productRepo repository.ProductRepository,
	employeeRepo repository.EmployeeRepository,
	saleRepo repository.SaleRepository,
) *SaleUseCase {
	return &SaleUseCase{
		txRunner:     txRunner,
		productRepo:  productRepo,
		employeeRepo: employeeRepo,
		saleRepo:     saleRepo,
	}
}

// Create cria a venda como unidade lógica: valida tudo antes de tocar o
// banco, depois grava cabeçalho (status Fechada), itens, um movimento
// de saída por item e, quando origem = funcionário, o débito de
// refeição — tudo na mesma transação. Qualquer passo falhando, o
// rollback garante que nada fica gravado (nunca um cabeçalho Fechada
// sem itens e sem movimentos).
func (uc *SaleUseCase) Create(ctx context.Context, in dto.CreateSaleRequest) (*dto.SaleResponse, error) {
	if len(in.Items) == 0 {
		return nil, fmt.Errorf("%w: venda sem itens", domain.ErrValidation)
	}
	if in.PaymentMethod == "" {
		return nil, fmt.Errorf("%w: forma de pagamento obrigatória", domain.ErrValidation)
	}
	if in.Discount.IsNegative() {
		return nil, fmt.Errorf("%w: desconto não pode ser negativo", domain.ErrValidation)
	}

	origin := entity.SaleOriginCliente
	if in.EmployeeID != "" || in.PaymentMethod == entity.PaymentFuncionario {
		origin = entity.SaleOriginFuncionario
	}
	if origin == entity.SaleOriginFuncionario && in.EmployeeID == "" {
		return nil, fmt.Errorf("%w: venda de funcionário exige employee_id", domain.ErrValidation)
	}

	// Validação de produtos e preços fora da transação (só leitura).
	productsByID := make(map[string]*entity.Product)
	for i := range in.Items {
		item := &in.Items[i]
		if item.Quantity <= 0 {
			return nil, fmt.Errorf("%w: quantidade deve ser positiva", domain.ErrValidation)
		}
		if item.UnitPrice.IsNegative() || item.UnitCost.IsNegative() {
			return nil, fmt.Errorf("%w: preço e custo não podem ser negativos", domain.ErrValidation)
		}
		product, err := uc.productRepo.GetByID(item.ProductID)
		if err != nil {
			return nil, domain.NewPersistError("create_sale", "get_product", false, err)
		}
		if product == nil {
			return nil, fmt.Errorf("%w: produto %s", domain.ErrNotFound, item.ProductID)
		}
		// Preço/custo zerados herdam os do cadastro.
		if item.UnitPrice.IsZero() {
			item.UnitPrice = product.Price
		}
		if item.UnitCost.IsZero() {
			item.UnitCost = product.Cost
		}
		productsByID[item.ProductID] = product
	}

	var employee *entity.Employee
	if origin == entity.SaleOriginFuncionario {
		var err error
		employee, err = uc.employeeRepo.GetByID(in.EmployeeID)
		if err != nil {
			return nil, domain.NewPersistError("create_sale", "get_employee", false, err)
		}
		if employee == nil {
			return nil, fmt.Errorf("%w: funcionário %s", domain.ErrNotFound, in.EmployeeID)
		}
	}

	// Totais.
	var gross, totalCost decimal.Decimal
	for _, item := range in.Items {
		qty := decimal.NewFromInt(item.Quantity)
		gross = gross.Add(item.UnitPrice.Mul(qty))
		totalCost = totalCost.Add(item.UnitCost.Mul(qty))
	}
	net := gross.Sub(in.Discount)

	now := time.Now()
	sale := &entity.Sale{
		ID:            uuid.New().String(),
		SaleDatetime:  now,
		Channel:       entity.SaleChannelBalcao,
		Status:        entity.SaleStatusFechada,
		PaymentMethod: in.PaymentMethod,
		Origin:        origin,
		GrossValue:    gross,
		DiscountValue: in.Discount,
		NetValue:      net,
		TotalCost:     totalCost,
		EmployeeID:    in.EmployeeID,
	}

	exitKind := entity.MovementSaidaVenda
	if origin == entity.SaleOriginFuncionario {
		exitKind = entity.MovementSaidaConsumo
	}

	var items []*entity.SaleItem
	step := "begin_tx"
	err := uc.txRunner.Run(ctx, func(
		saleRepo repository.SaleRepository,
		movRepo repository.MovementRepository,
		mealRepo repository.MealRepository,
	) error {
		step = "insert_sale"
		if err := saleRepo.Create(sale); err != nil {
			return err
		}
		for _, reqItem := range in.Items {
			step = "insert_items"
			item := &entity.SaleItem{
				ID:         uuid.New().String(),
				SaleID:     sale.ID,
				ProductID:  reqItem.ProductID,
				Quantity:   reqItem.Quantity,
				UnitPrice:  reqItem.UnitPrice,
				UnitCost:   reqItem.UnitCost,
				TotalValue: reqItem.UnitPrice.Mul(decimal.NewFromInt(reqItem.Quantity)),
			}
			if err := saleRepo.CreateItem(item); err != nil {
				return err
			}
			items = append(items, item)

			step = "insert_movements"
			cost := reqItem.UnitCost
			mov := &entity.StockMovement{
				ID:        uuid.New().String(),
				ProductID: reqItem.ProductID,
				Kind:      exitKind,
				Quantity:  reqItem.Quantity,
				UnitCost:  &cost,
				Origin:    saleOriginTag(sale.ID, origin),
				CreatedAt: now,
			}
			if err := movRepo.Create(mov); err != nil {
				return err
			}
		}
		if origin == entity.SaleOriginFuncionario {
			step = "insert_meal"
			meal := &entity.MealConsumption{
				ID:            uuid.New().String(),
				EmployeeID:    in.EmployeeID,
				MealDate:      now,
				Value:         net,
				Description:   fmt.Sprintf("Refeição — venda #%s", shortID(sale.ID)),
				RelatedSaleID: sale.ID,
				CreatedAt:     now,
			}
			if err := mealRepo.Create(meal); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		// Rollback já desfez os passos anteriores: nada ficou gravado.
		return nil, domain.NewPersistError("create_sale", step, false, err)
	}

	sale.Items = make([]entity.SaleItem, 0, len(items))
	for _, it := range items {
		sale.Items = append(sale.Items, *it)
	}
	return toSaleResponse(sale), nil
}

// Cancel cancela uma venda de forma idempotente. Já cancelada devolve
// sucesso sem nenhuma escrita. Caso contrário, vira o status com update
// condicional (só quando ainda Fechada) e grava UM estorno por item
// original, na mesma transação. Duas sessões concorrentes: só a que
// ganhar o update condicional emite estornos; a outra recebe
// ErrConflict.
func (uc *SaleUseCase) Cancel(ctx context.Context, saleID string) (bool, error) {
	if saleID == "" {
		return false, fmt.Errorf("%w: id de venda obrigatório", domain.ErrValidation)
	}
	sale, err := uc.saleRepo.GetByID(saleID)
	if err != nil {
		return false, domain.NewPersistError("cancel_sale", "get_sale", false, err)
	}
	if sale == nil {
		return false, fmt.Errorf("%w: venda %s", domain.ErrNotFound, saleID)
	}
	if sale.Status == entity.SaleStatusCancelada {
		return true, nil
	}
	if sale.Status != entity.SaleStatusFechada {
		return false, fmt.Errorf("%w: venda em status %q não pode ser cancelada", domain.ErrConflict, sale.Status)
	}

	step := "begin_tx"
	err = uc.txRunner.Run(ctx, func(
		saleRepo repository.SaleRepository,
		movRepo repository.MovementRepository,
		mealRepo repository.MealRepository,
	) error {
		// Compare-and-swap: só uma sessão consegue Fechada→Cancelada.
		step = "mark_canceled"
		flipped, err := saleRepo.MarkCanceled(saleID)
		if err != nil {
			return err
		}
		if !flipped {
			return fmt.Errorf("%w: venda %s já cancelada por outra sessão", domain.ErrConflict, saleID)
		}

		step = "get_items"
		items, err := saleRepo.GetItems(saleID)
		if err != nil {
			return err
		}
		now := time.Now()
		for _, item := range items {
			step = "insert_reversals"
			mov := &entity.StockMovement{
				ID:        uuid.New().String(),
				ProductID: item.ProductID,
				Kind:      entity.MovementEstornoVenda,
				Quantity:  item.Quantity,
				Origin:    fmt.Sprintf("Estorno Venda #%s", shortID(saleID)),
				Notes:     "Venda cancelada pelo usuário",
				CreatedAt: now,
			}
			if err := movRepo.Create(mov); err != nil {
				return err
			}
		}
		if sale.Origin == entity.SaleOriginFuncionario {
			step = "cancel_meal"
			if err := mealRepo.MarkCanceledBySale(saleID); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, domain.ErrConflict) {
			return false, err
		}
		return false, domain.NewPersistError("cancel_sale", step, false, err)
	}
	return true, nil
}

// Get devolve uma venda com itens.
func (uc *SaleUseCase) Get(ctx context.Context, saleID string) (*dto.SaleResponse, error) {
	sale, err := uc.saleRepo.GetByID(saleID)
	if err != nil {
		return nil, domain.NewPersistError("get_sale", "get_sale", false, err)
	}
	if sale == nil {
		return nil, domain.ErrNotFound
	}
	items, err := uc.saleRepo.GetItems(saleID)
	if err != nil {
		return nil, domain.NewPersistError("get_sale", "get_items", false, err)
	}
	sale.Items = make([]entity.SaleItem, 0, len(items))
	for _, it := range items {
		sale.Items = append(sale.Items, *it)
	}
	return toSaleResponse(sale), nil
}

// saleOriginTag é a referência gravada no movimento de saída.
func saleOriginTag(saleID, origin string) string {
	return fmt.Sprintf("Venda #%s (%s)", shortID(saleID), origin)
}

func shortID(id string) string {
	if len(id) > 6 {
		return id[:6]
	}
	return id
}

func toSaleResponse(s *entity.Sale) *dto.SaleResponse {
	resp := &dto.SaleResponse{
		ID:            s.ID,
		SaleDatetime:  s.SaleDatetime,
		Channel:       s.Channel,
		Status:        s.Status,
		PaymentMethod: s.PaymentMethod,
		Origin:        s.Origin,
		GrossValue:    s.GrossValue,
		DiscountValue: s.DiscountValue,
		NetValue:      s.NetValue,
		TotalCost:     s.TotalCost,
		EmployeeID:    s.EmployeeID,
		Items:         make([]dto.SaleItemResponse, 0, len(s.Items)),
	}
	for _, it := range s.Items {
		resp.Items = append(resp.Items, dto.SaleItemResponse{
			ProductID:  it.ProductID,
			Quantity:   it.Quantity,
			UnitPrice:  it.UnitPrice,
			UnitCost:   it.UnitCost,
			TotalValue: it.TotalValue,
		})
	}
	return resp
}
