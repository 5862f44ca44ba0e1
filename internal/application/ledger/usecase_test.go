package ledger_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/seu-usuario/lanchonete-pro/internal/application/dto"
	"github.com/seu-usuario/lanchonete-pro/internal/application/ledger"
	"github.com/seu-usuario/lanchonete-pro/internal/domain"
	"github.com/seu-usuario/lanchonete-pro/internal/domain/entity"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes em memória
// ──────────────────────────────────────────────────────────────────────────────

type fakeMovementRepo struct {
	movements []entity.StockMovement
}

func (f *fakeMovementRepo) Create(m *entity.StockMovement) error {
	f.movements = append(f.movements, *m)
	return nil
}

func (f *fakeMovementRepo) GetByID(id string) (*entity.StockMovement, error) {
	for i := range f.movements {
		if f.movements[i].ID == id {
			m := f.movements[i]
			return &m, nil
		}
	}
	return nil, nil
}

func (f *fakeMovementRepo) List(limit, offset int) ([]*entity.StockMovement, error) {
	out := make([]*entity.StockMovement, 0, len(f.movements))
	for i := range f.movements {
		m := f.movements[i]
		out = append(out, &m)
	}
	return out, nil
}

func (f *fakeMovementRepo) ListByProduct(productID string, from, to *time.Time, limit, offset int) ([]*entity.StockMovement, error) {
	var out []*entity.StockMovement
	for i := range f.movements {
		if f.movements[i].ProductID == productID {
			m := f.movements[i]
			out = append(out, &m)
		}
	}
	return out, nil
}

func (f *fakeMovementRepo) SumByProduct(productID string) (int64, error) {
	var movs []entity.StockMovement
	for _, m := range f.movements {
		if m.ProductID == productID {
			movs = append(movs, m)
		}
	}
	return entity.DerivedStock(movs)
}

type fakeProductRepo struct {
	products map[string]*entity.Product
}

func newFakeProductRepo(products ...*entity.Product) *fakeProductRepo {
	f := &fakeProductRepo{products: make(map[string]*entity.Product)}
	for _, p := range products {
		cp := *p
		f.products[p.ID] = &cp
	}
	return f
}

func (f *fakeProductRepo) Create(p *entity.Product) error {
	if _, ok := f.products[p.ID]; ok {
		return domain.ErrDuplicate
	}
	cp := *p
	f.products[p.ID] = &cp
	return nil
}

func (f *fakeProductRepo) GetByID(id string) (*entity.Product, error) {
	p, ok := f.products[id]
	if !ok {
		return nil, nil
	}
	cp := *p
	return &cp, nil
}

func (f *fakeProductRepo) Update(p *entity.Product) error {
	cp := *p
	f.products[p.ID] = &cp
	return nil
}

func (f *fakeProductRepo) List(onlyActive bool, limit, offset int) ([]*entity.Product, error) {
	var out []*entity.Product
	for _, p := range f.products {
		if onlyActive && !p.Active {
			continue
		}
		cp := *p
		out = append(out, &cp)
	}
	return out, nil
}

func (f *fakeProductRepo) ListIDs() (map[string]struct{}, error) {
	out := make(map[string]struct{}, len(f.products))
	for id := range f.products {
		out[id] = struct{}{}
	}
	return out, nil
}

func (f *fakeProductRepo) Exists(id string) (bool, error) {
	_, ok := f.products[id]
	return ok, nil
}

const productID = "11111111-1111-1111-1111-111111111111"

func newUseCase() (*ledger.MovementUseCase, *fakeMovementRepo, *fakeProductRepo) {
	movRepo := &fakeMovementRepo{}
	productRepo := newFakeProductRepo(&entity.Product{
		ID:     productID,
		Name:   "Coxinha",
		Type:   entity.ProductTypeFinal,
		Price:  decimal.NewFromInt(8),
		Cost:   decimal.NewFromInt(3),
		Active: true,
	})
	return ledger.NewMovementUseCase(movRepo, productRepo), movRepo, productRepo
}

// ──────────────────────────────────────────────────────────────────────────────
// Validação de fronteira
// ──────────────────────────────────────────────────────────────────────────────

func TestRecord_QuantidadeZeroRejeitada(t *testing.T) {
	uc, movRepo, _ := newUseCase()
	_, err := uc.Record(context.Background(), dto.RegisterMovementRequest{
		ProductID: productID,
		Kind:      string(entity.MovementEntradaCompra),
		Quantity:  0,
	})
	require.ErrorIs(t, err, domain.ErrValidation)
	assert.Empty(t, movRepo.movements, "nada deve ser gravado")
}

func TestRecord_QuantidadeNegativaRejeitadaParaEntrada(t *testing.T) {
	uc, movRepo, _ := newUseCase()
	_, err := uc.Record(context.Background(), dto.RegisterMovementRequest{
		ProductID: productID,
		Kind:      string(entity.MovementSaidaVenda),
		Quantity:  -1,
	})
	require.ErrorIs(t, err, domain.ErrValidation)
	assert.Empty(t, movRepo.movements)
}

func TestRecord_QuantidadePositivaAceita(t *testing.T) {
	uc, movRepo, _ := newUseCase()
	out, err := uc.Record(context.Background(), dto.RegisterMovementRequest{
		ProductID: productID,
		Kind:      string(entity.MovementEntradaCompra),
		Quantity:  5,
	})
	require.NoError(t, err)
	assert.Equal(t, int64(5), out.Quantity)
	require.Len(t, movRepo.movements, 1)

	stock, err := uc.DerivedStock(context.Background(), productID)
	require.NoError(t, err)
	assert.Equal(t, int64(5), stock)
}

func TestRecord_TipoDesconhecidoRejeitado(t *testing.T) {
	uc, _, _ := newUseCase()
	_, err := uc.Record(context.Background(), dto.RegisterMovementRequest{
		ProductID: productID,
		Kind:      "Saída Marciana",
		Quantity:  1,
	})
	require.ErrorIs(t, err, domain.ErrValidation)
}

func TestRecord_ProdutoInexistente(t *testing.T) {
	uc, _, _ := newUseCase()
	_, err := uc.Record(context.Background(), dto.RegisterMovementRequest{
		ProductID: "22222222-2222-2222-2222-222222222222",
		Kind:      string(entity.MovementEntradaCompra),
		Quantity:  1,
	})
	require.ErrorIs(t, err, domain.ErrNotFound)
}

// Ajuste aceita quantidade negativa, mas nunca zero.
func TestRecord_AjusteAssinado(t *testing.T) {
	uc, _, _ := newUseCase()

	_, err := uc.Record(context.Background(), dto.RegisterMovementRequest{
		ProductID: productID,
		Kind:      string(entity.MovementAjusteInventario),
		Quantity:  0,
	})
	require.ErrorIs(t, err, domain.ErrValidation, "ajuste com quantidade zero deve falhar")

	out, err := uc.Record(context.Background(), dto.RegisterMovementRequest{
		ProductID: productID,
		Kind:      string(entity.MovementAjusteInventario),
		Quantity:  -4,
	})
	require.NoError(t, err)
	assert.Equal(t, int64(-4), out.Quantity)
}

// ──────────────────────────────────────────────────────────────────────────────
// Ajuste por contagem física
// ──────────────────────────────────────────────────────────────────────────────

// Estoque derivado 10, contagem física 7 → UM movimento de −3.
func TestRecordAdjustment_ContagemMenorQueDerivado(t *testing.T) {
	uc, movRepo, _ := newUseCase()
	_, err := uc.Record(context.Background(), dto.RegisterMovementRequest{
		ProductID: productID,
		Kind:      string(entity.MovementEntradaCompra),
		Quantity:  10,
	})
	require.NoError(t, err)

	out, err := uc.RecordAdjustment(context.Background(), productID, 7, "contagem mensal")
	require.NoError(t, err)
	assert.Equal(t, string(entity.MovementAjusteInventario), out.Kind)
	assert.Equal(t, int64(-3), out.Quantity, "ajuste deve ser contagem − derivado")
	require.Len(t, movRepo.movements, 2)

	stock, err := uc.DerivedStock(context.Background(), productID)
	require.NoError(t, err)
	assert.Equal(t, int64(7), stock, "depois do ajuste o derivado iguala a contagem")
}

func TestRecordAdjustment_ContagemIgualNaoGeraMovimento(t *testing.T) {
	uc, movRepo, _ := newUseCase()
	_, err := uc.RecordAdjustment(context.Background(), productID, 0, "")
	require.ErrorIs(t, err, domain.ErrValidation)
	assert.Empty(t, movRepo.movements)
}

// ──────────────────────────────────────────────────────────────────────────────
// Custo médio ponderado em entradas de compra
// ──────────────────────────────────────────────────────────────────────────────

func TestRecord_EntradaCompraAtualizaCustoMedio(t *testing.T) {
	uc, _, productRepo := newUseCase()

	// Estoque inicial: 10 unidades a custo 3.
	cost := decimal.NewFromInt(3)
	_, err := uc.Record(context.Background(), dto.RegisterMovementRequest{
		ProductID: productID,
		Kind:      string(entity.MovementEntradaCompra),
		Quantity:  10,
		UnitCost:  &cost,
	})
	require.NoError(t, err)

	// Nova compra: 10 unidades a custo 5 → média (10*3 + 10*5)/20 = 4.
	newCost := decimal.NewFromInt(5)
	_, err = uc.Record(context.Background(), dto.RegisterMovementRequest{
		ProductID: productID,
		Kind:      string(entity.MovementEntradaCompra),
		Quantity:  10,
		UnitCost:  &newCost,
	})
	require.NoError(t, err)

	p, err := productRepo.GetByID(productID)
	require.NoError(t, err)
	assert.True(t, p.Cost.Equal(decimal.NewFromInt(4)),
		"custo médio esperado 4, obtido %s", p.Cost)
}
