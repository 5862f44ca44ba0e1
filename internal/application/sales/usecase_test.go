package sales_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/seu-usuario/lanchonete-pro/internal/application/dto"
	"github.com/seu-usuario/lanchonete-pro/internal/application/sales"
	"github.com/seu-usuario/lanchonete-pro/internal/domain"
	"github.com/seu-usuario/lanchonete-pro/internal/domain/entity"
	"github.com/seu-usuario/lanchonete-pro/internal/domain/repository"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes em memória com semântica transacional
// ──────────────────────────────────────────────────────────────────────────────

// store é o estado compartilhado. O fakeTxRunner clona o estado, roda o
// callback sobre o clone e só copia de volta no "commit" — espelhando o
// rollback da transação real.
type store struct {
	sales     []entity.Sale
	items     []entity.SaleItem
	movements []entity.StockMovement
	meals     []entity.MealConsumption

	// failOn injeta falha no passo indicado: "create_sale",
	// "create_item", "create_movement", "create_meal".
	failOn string
}

var errInjected = errors.New("falha injetada")

func (s *store) clone() *store {
	cp := &store{failOn: s.failOn}
	cp.sales = append(cp.sales, s.sales...)
	cp.items = append(cp.items, s.items...)
	cp.movements = append(cp.movements, s.movements...)
	cp.meals = append(cp.meals, s.meals...)
	return cp
}

type storeSaleRepo struct{ s *store }

func (r *storeSaleRepo) Create(sale *entity.Sale) error {
	if r.s.failOn == "create_sale" {
		return errInjected
	}
	r.s.sales = append(r.s.sales, *sale)
	return nil
}

func (r *storeSaleRepo) CreateItem(item *entity.SaleItem) error {
	if r.s.failOn == "create_item" {
		return errInjected
	}
	r.s.items = append(r.s.items, *item)
	return nil
}

func (r *storeSaleRepo) GetByID(id string) (*entity.Sale, error) {
	for i := range r.s.sales {
		if r.s.sales[i].ID == id {
			cp := r.s.sales[i]
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *storeSaleRepo) GetItems(saleID string) ([]*entity.SaleItem, error) {
	var out []*entity.SaleItem
	for i := range r.s.items {
		if r.s.items[i].SaleID == saleID {
			cp := r.s.items[i]
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (r *storeSaleRepo) MarkCanceled(id string) (bool, error) {
	for i := range r.s.sales {
		if r.s.sales[i].ID == id && r.s.sales[i].Status == entity.SaleStatusFechada {
			r.s.sales[i].Status = entity.SaleStatusCancelada
			r.s.sales[i].Canceled = true
			return true, nil
		}
	}
	return false, nil
}

func (r *storeSaleRepo) List(limit, offset int) ([]*entity.Sale, error) {
	var out []*entity.Sale
	for i := range r.s.sales {
		cp := r.s.sales[i]
		out = append(out, &cp)
	}
	return out, nil
}

type storeMovementRepo struct{ s *store }

func (r *storeMovementRepo) Create(m *entity.StockMovement) error {
	if r.s.failOn == "create_movement" {
		return errInjected
	}
	r.s.movements = append(r.s.movements, *m)
	return nil
}

func (r *storeMovementRepo) GetByID(id string) (*entity.StockMovement, error) { return nil, nil }

func (r *storeMovementRepo) List(limit, offset int) ([]*entity.StockMovement, error) {
	var out []*entity.StockMovement
	for i := range r.s.movements {
		cp := r.s.movements[i]
		out = append(out, &cp)
	}
	return out, nil
}

func (r *storeMovementRepo) ListByProduct(productID string, from, to *time.Time, limit, offset int) ([]*entity.StockMovement, error) {
	var out []*entity.StockMovement
	for i := range r.s.movements {
		if r.s.movements[i].ProductID == productID {
			cp := r.s.movements[i]
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (r *storeMovementRepo) SumByProduct(productID string) (int64, error) {
	var movs []entity.StockMovement
	for _, m := range r.s.movements {
		if m.ProductID == productID {
			movs = append(movs, m)
		}
	}
	return entity.DerivedStock(movs)
}

type storeMealRepo struct{ s *store }

func (r *storeMealRepo) Create(m *entity.MealConsumption) error {
	if r.s.failOn == "create_meal" {
		return errInjected
	}
	r.s.meals = append(r.s.meals, *m)
	return nil
}

func (r *storeMealRepo) GetByID(id string) (*entity.MealConsumption, error) { return nil, nil }

func (r *storeMealRepo) MarkCanceled(id string) (bool, error) {
	for i := range r.s.meals {
		if r.s.meals[i].ID == id {
			r.s.meals[i].Canceled = true
			return true, nil
		}
	}
	return false, nil
}

func (r *storeMealRepo) MarkCanceledBySale(saleID string) error {
	for i := range r.s.meals {
		if r.s.meals[i].RelatedSaleID == saleID {
			r.s.meals[i].Canceled = true
		}
	}
	return nil
}

func (r *storeMealRepo) SumActiveByDay(employeeID string, day time.Time) (decimal.Decimal, error) {
	total := decimal.Zero
	for _, m := range r.s.meals {
		if m.EmployeeID == employeeID && !m.Canceled && sameDay(m.MealDate, day) {
			total = total.Add(m.Value)
		}
	}
	return total, nil
}

func (r *storeMealRepo) List(limit, offset int) ([]*entity.MealConsumption, error) {
	var out []*entity.MealConsumption
	for i := range r.s.meals {
		cp := r.s.meals[i]
		out = append(out, &cp)
	}
	return out, nil
}

func sameDay(a, b time.Time) bool {
	return a.Year() == b.Year() && a.YearDay() == b.YearDay()
}

// fakeTxRunner roda o callback sobre um clone e só faz merge no commit.
type fakeTxRunner struct {
	s *store
	// beforeTx simula outra sessão agindo entre a leitura do cabeçalho
	// e o início da transação.
	beforeTx func(s *store)
}

func (f *fakeTxRunner) Run(ctx context.Context, fn func(
	saleRepo repository.SaleRepository,
	movRepo repository.MovementRepository,
	mealRepo repository.MealRepository,
) error) error {
	if f.beforeTx != nil {
		f.beforeTx(f.s)
	}
	tx := f.s.clone()
	err := fn(&storeSaleRepo{s: tx}, &storeMovementRepo{s: tx}, &storeMealRepo{s: tx})
	if err != nil {
		return err // rollback: clone descartado
	}
	*f.s = *tx
	return nil
}

// Produtos e funcionários (fora da transação).

type fakeProductRepo struct{ products map[string]*entity.Product }

func (f *fakeProductRepo) Create(p *entity.Product) error { f.products[p.ID] = p; return nil }
func (f *fakeProductRepo) GetByID(id string) (*entity.Product, error) {
	p, ok := f.products[id]
	if !ok {
		return nil, nil
	}
	cp := *p
	return &cp, nil
}
func (f *fakeProductRepo) Update(p *entity.Product) error { f.products[p.ID] = p; return nil }
func (f *fakeProductRepo) List(onlyActive bool, limit, offset int) ([]*entity.Product, error) {
	return nil, nil
}
func (f *fakeProductRepo) ListIDs() (map[string]struct{}, error) { return nil, nil }
func (f *fakeProductRepo) Exists(id string) (bool, error)        { _, ok := f.products[id]; return ok, nil }

type fakeEmployeeRepo struct{ employees map[string]*entity.Employee }

func (f *fakeEmployeeRepo) GetByID(id string) (*entity.Employee, error) {
	e, ok := f.employees[id]
	if !ok {
		return nil, nil
	}
	cp := *e
	return &cp, nil
}
func (f *fakeEmployeeRepo) ListActive() ([]*entity.Employee, error) { return nil, nil }

// ──────────────────────────────────────────────────────────────────────────────
// Fixture
// ──────────────────────────────────────────────────────────────────────────────

const (
	coxinhaID    = "11111111-1111-1111-1111-111111111111"
	refriID      = "22222222-2222-2222-2222-222222222222"
	funcionarioX = "33333333-3333-3333-3333-333333333333"
)

func fixture() (*sales.SaleUseCase, *store, *fakeTxRunner) {
	s := &store{}
	runner := &fakeTxRunner{s: s}
	productRepo := &fakeProductRepo{products: map[string]*entity.Product{
		coxinhaID: {ID: coxinhaID, Name: "Coxinha", Price: decimal.NewFromInt(10), Cost: decimal.NewFromInt(4), Active: true},
		refriID:   {ID: refriID, Name: "Refrigerante", Price: decimal.NewFromInt(5), Cost: decimal.NewFromInt(2), Active: true},
	}}
	employeeRepo := &fakeEmployeeRepo{employees: map[string]*entity.Employee{
		funcionarioX: {ID: funcionarioX, Name: "Maria", DailyMealLimit: decimal.NewFromInt(20), Active: true},
	}}
	uc := sales.NewSaleUseCase(runner, productRepo, employeeRepo, &storeSaleRepo{s: s})
	return uc, s, runner
}

func stockOf(t *testing.T, s *store, productID string) int64 {
	t.Helper()
	var movs []entity.StockMovement
	for _, m := range s.movements {
		if m.ProductID == productID {
			movs = append(movs, m)
		}
	}
	stock, err := entity.DerivedStock(movs)
	require.NoError(t, err)
	return stock
}

// ──────────────────────────────────────────────────────────────────────────────
// Criação de venda
// ──────────────────────────────────────────────────────────────────────────────

// Venda de 2 coxinhas + 2 refris: gross = 2*10 + 2*5 = 30, sem desconto
// net = 30, e o estoque de cada produto cai pela quantidade vendida.
func TestCreate_VendaFechadaComTotaisEMovimentos(t *testing.T) {
	uc, s, _ := fixture()

	out, err := uc.Create(context.Background(), dto.CreateSaleRequest{
		PaymentMethod: entity.PaymentPix,
		Items: []dto.SaleItemRequest{
			{ProductID: coxinhaID, Quantity: 2},
			{ProductID: refriID, Quantity: 2},
		},
	})
	require.NoError(t, err)

	assert.Equal(t, entity.SaleStatusFechada, out.Status)
	assert.Equal(t, entity.SaleOriginCliente, out.Origin)
	assert.True(t, out.GrossValue.Equal(decimal.NewFromInt(30)), "gross esperado 30, obtido %s", out.GrossValue)
	assert.True(t, out.NetValue.Equal(decimal.NewFromInt(30)))
	assert.True(t, out.TotalCost.Equal(decimal.NewFromInt(12)), "custo total 2*4 + 2*2 = 12")
	require.Len(t, out.Items, 2)

	require.Len(t, s.sales, 1)
	require.Len(t, s.items, 2)
	require.Len(t, s.movements, 2, "um movimento de saída por item")
	assert.Equal(t, int64(-2), stockOf(t, s, coxinhaID))
	assert.Equal(t, int64(-2), stockOf(t, s, refriID))
	for _, m := range s.movements {
		assert.Equal(t, entity.MovementSaidaVenda, m.Kind)
	}
	assert.Empty(t, s.meals, "venda de cliente não gera débito de refeição")
}

func TestCreate_DescontoAplicadoNoLiquido(t *testing.T) {
	uc, _, _ := fixture()
	out, err := uc.Create(context.Background(), dto.CreateSaleRequest{
		PaymentMethod: entity.PaymentDinheiro,
		Discount:      decimal.NewFromInt(5),
		Items:         []dto.SaleItemRequest{{ProductID: coxinhaID, Quantity: 3}},
	})
	require.NoError(t, err)
	assert.True(t, out.GrossValue.Equal(decimal.NewFromInt(30)))
	assert.True(t, out.NetValue.Equal(decimal.NewFromInt(25)))
}

func TestCreate_SemItensRejeitada(t *testing.T) {
	uc, s, _ := fixture()
	_, err := uc.Create(context.Background(), dto.CreateSaleRequest{
		PaymentMethod: entity.PaymentPix,
	})
	require.ErrorIs(t, err, domain.ErrValidation)
	assert.Empty(t, s.sales)
}

func TestCreate_PagamentoFuncionarioExigeEmployeeID(t *testing.T) {
	uc, _, _ := fixture()
	_, err := uc.Create(context.Background(), dto.CreateSaleRequest{
		PaymentMethod: entity.PaymentFuncionario,
		Items:         []dto.SaleItemRequest{{ProductID: coxinhaID, Quantity: 1}},
	})
	require.ErrorIs(t, err, domain.ErrValidation)
}

// Venda de funcionário: origem funcionario, saída como consumo interno
// e débito de refeição com o valor líquido, amarrado à venda.
func TestCreate_VendaFuncionarioGeraDebitoDeRefeicao(t *testing.T) {
	uc, s, _ := fixture()

	out, err := uc.Create(context.Background(), dto.CreateSaleRequest{
		PaymentMethod: entity.PaymentFuncionario,
		EmployeeID:    funcionarioX,
		Items:         []dto.SaleItemRequest{{ProductID: coxinhaID, Quantity: 1}},
	})
	require.NoError(t, err)
	assert.Equal(t, entity.SaleOriginFuncionario, out.Origin)

	require.Len(t, s.meals, 1)
	meal := s.meals[0]
	assert.Equal(t, funcionarioX, meal.EmployeeID)
	assert.Equal(t, out.ID, meal.RelatedSaleID)
	assert.True(t, meal.Value.Equal(out.NetValue), "débito deve usar o valor líquido")
	assert.False(t, meal.Canceled)

	require.Len(t, s.movements, 1)
	assert.Equal(t, entity.MovementSaidaConsumo, s.movements[0].Kind)
}

// Falha no insert de item: rollback — NADA persiste (nem o cabeçalho).
func TestCreate_FalhaNoItemNaoDeixaNadaGravado(t *testing.T) {
	uc, s, _ := fixture()
	s.failOn = "create_item"

	_, err := uc.Create(context.Background(), dto.CreateSaleRequest{
		PaymentMethod: entity.PaymentPix,
		Items:         []dto.SaleItemRequest{{ProductID: coxinhaID, Quantity: 1}},
	})
	require.Error(t, err)

	var pErr *domain.PersistError
	require.ErrorAs(t, err, &pErr)
	assert.Equal(t, "insert_items", pErr.Step)
	assert.False(t, pErr.Partial, "rollback garante escrita nenhuma")

	assert.Empty(t, s.sales, "cabeçalho não pode sobrar sem itens")
	assert.Empty(t, s.items)
	assert.Empty(t, s.movements)
}

func TestCreate_FalhaNoMovimentoNaoDeixaNadaGravado(t *testing.T) {
	uc, s, _ := fixture()
	s.failOn = "create_movement"

	_, err := uc.Create(context.Background(), dto.CreateSaleRequest{
		PaymentMethod: entity.PaymentPix,
		Items:         []dto.SaleItemRequest{{ProductID: coxinhaID, Quantity: 1}},
	})
	require.Error(t, err)
	assert.Empty(t, s.sales)
	assert.Empty(t, s.movements)
}

// ──────────────────────────────────────────────────────────────────────────────
// Cancelamento
// ──────────────────────────────────────────────────────────────────────────────

func createSale(t *testing.T, uc *sales.SaleUseCase, employeeID string) *dto.SaleResponse {
	t.Helper()
	req := dto.CreateSaleRequest{
		PaymentMethod: entity.PaymentPix,
		Items: []dto.SaleItemRequest{
			{ProductID: coxinhaID, Quantity: 2},
			{ProductID: refriID, Quantity: 1},
		},
	}
	if employeeID != "" {
		req.PaymentMethod = entity.PaymentFuncionario
		req.EmployeeID = employeeID
	}
	out, err := uc.Create(context.Background(), req)
	require.NoError(t, err)
	return out
}

// Cancelar restaura o estoque por estornos, nunca apagando os
// movimentos originais.
func TestCancel_EmiteUmEstornoPorItemERestauraEstoque(t *testing.T) {
	uc, s, _ := fixture()
	sale := createSale(t, uc, "")
	assert.Equal(t, int64(-2), stockOf(t, s, coxinhaID))

	ok, err := uc.Cancel(context.Background(), sale.ID)
	require.NoError(t, err)
	assert.True(t, ok)

	assert.Equal(t, entity.SaleStatusCancelada, s.sales[0].Status)
	assert.True(t, s.sales[0].Canceled)

	var reversals int
	for _, m := range s.movements {
		if m.Kind == entity.MovementEstornoVenda {
			reversals++
		}
	}
	assert.Equal(t, 2, reversals, "um estorno por item original")
	assert.Len(t, s.movements, 4, "os movimentos originais permanecem")
	assert.Equal(t, int64(0), stockOf(t, s, coxinhaID), "estoque restaurado")
	assert.Equal(t, int64(0), stockOf(t, s, refriID))
}

// Idempotência: o segundo cancelamento devolve sucesso sem emitir um
// segundo conjunto de estornos.
func TestCancel_Idempotente(t *testing.T) {
	uc, s, _ := fixture()
	sale := createSale(t, uc, "")

	ok, err := uc.Cancel(context.Background(), sale.ID)
	require.NoError(t, err)
	require.True(t, ok)
	countAfterFirst := len(s.movements)

	ok, err = uc.Cancel(context.Background(), sale.ID)
	require.NoError(t, err)
	assert.True(t, ok, "já cancelada é sucesso, não erro")
	assert.Len(t, s.movements, countAfterFirst, "nenhum estorno adicional")
}

// Duas sessões correndo: a perdedora do update condicional recebe
// ErrConflict e não emite estornos.
func TestCancel_ConcorrenteRecebeConflito(t *testing.T) {
	uc, s, runner := fixture()
	sale := createSale(t, uc, "")

	// Outra sessão cancela entre a leitura do cabeçalho e a transação.
	runner.beforeTx = func(st *store) {
		for i := range st.sales {
			if st.sales[i].ID == sale.ID {
				st.sales[i].Status = entity.SaleStatusCancelada
				st.sales[i].Canceled = true
			}
		}
	}

	_, err := uc.Cancel(context.Background(), sale.ID)
	require.ErrorIs(t, err, domain.ErrConflict)

	var reversals int
	for _, m := range s.movements {
		if m.Kind == entity.MovementEstornoVenda {
			reversals++
		}
	}
	assert.Zero(t, reversals, "a sessão perdedora não pode emitir estornos")
}

func TestCancel_VendaInexistente(t *testing.T) {
	uc, _, _ := fixture()
	_, err := uc.Cancel(context.Background(), "99999999-9999-9999-9999-999999999999")
	require.ErrorIs(t, err, domain.ErrNotFound)
}

// Cancelar venda de funcionário também cancela o débito de refeição.
func TestCancel_VendaFuncionarioCancelaRefeicao(t *testing.T) {
	uc, s, _ := fixture()
	sale := createSale(t, uc, funcionarioX)
	require.Len(t, s.meals, 1)
	require.False(t, s.meals[0].Canceled)

	ok, err := uc.Cancel(context.Background(), sale.ID)
	require.NoError(t, err)
	require.True(t, ok)
	assert.True(t, s.meals[0].Canceled, "o débito amarrado à venda deve ser cancelado")
}

// Falha ao emitir estornos: rollback total — o status segue Fechada e
// nenhum estorno parcial sobra.
func TestCancel_FalhaNoEstornoRetrocedeTudo(t *testing.T) {
	uc, s, _ := fixture()
	sale := createSale(t, uc, "")
	s.failOn = "create_movement"

	_, err := uc.Cancel(context.Background(), sale.ID)
	require.Error(t, err)
	require.NotErrorIs(t, err, domain.ErrConflict)

	assert.Equal(t, entity.SaleStatusFechada, s.sales[0].Status, "status não pode virar sem os estornos")
	var reversals int
	for _, m := range s.movements {
		if m.Kind == entity.MovementEstornoVenda {
			reversals++
		}
	}
	assert.Zero(t, reversals)
}
