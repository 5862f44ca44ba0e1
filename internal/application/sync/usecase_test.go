package sync_test

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/seu-usuario/lanchonete-pro/internal/application/sync"
	"github.com/seu-usuario/lanchonete-pro/internal/domain/entity"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fake em memória
// ──────────────────────────────────────────────────────────────────────────────

type fakeProductRepo struct {
	products map[string]*entity.Product

	// beforeExists simula outro processo agindo entre a listagem do
	// lote e a guarda por insert.
	beforeExists func(f *fakeProductRepo, id string)
	createErr    map[string]error
	creates      int
}

func newFakeRepo(ids ...string) *fakeProductRepo {
	f := &fakeProductRepo{products: make(map[string]*entity.Product), createErr: make(map[string]error)}
	for _, id := range ids {
		f.products[id] = &entity.Product{ID: id, Active: true}
	}
	return f
}

func (f *fakeProductRepo) Create(p *entity.Product) error {
	if err := f.createErr[p.ID]; err != nil {
		return err
	}
	f.creates++
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

func (f *fakeProductRepo) Update(p *entity.Product) error { return nil }

func (f *fakeProductRepo) List(onlyActive bool, limit, offset int) ([]*entity.Product, error) {
	return nil, nil
}

func (f *fakeProductRepo) ListIDs() (map[string]struct{}, error) {
	out := make(map[string]struct{}, len(f.products))
	for id := range f.products {
		out[id] = struct{}{}
	}
	return out, nil
}

func (f *fakeProductRepo) Exists(id string) (bool, error) {
	if f.beforeExists != nil {
		f.beforeExists(f, id)
	}
	_, ok := f.products[id]
	return ok, nil
}

func product(id string) entity.Product {
	return entity.Product{ID: id, Name: "p-" + id, Active: true}
}

// ──────────────────────────────────────────────────────────────────────────────
// Reconciliação
// ──────────────────────────────────────────────────────────────────────────────

// Produtos locais ausentes do remoto são re-enviados; os presentes são
// pulados sem escrita.
func TestSync_ReenviaSomenteAusentes(t *testing.T) {
	repo := newFakeRepo("a")
	uc := sync.NewProductSyncUseCase(repo, zerolog.Nop())

	result, err := uc.Sync(context.Background(), []entity.Product{
		product("a"), product("b"), product("c"),
	})
	require.NoError(t, err)

	assert.Equal(t, 3, result.Checked)
	assert.Equal(t, 2, result.Pushed)
	assert.Equal(t, 1, result.Skipped)
	assert.Empty(t, result.Errors)
	assert.Equal(t, 2, repo.creates)
	assert.Contains(t, repo.products, "b")
	assert.Contains(t, repo.products, "c")
}

func TestSync_TudoPresenteNaoEscreveNada(t *testing.T) {
	repo := newFakeRepo("a", "b")
	uc := sync.NewProductSyncUseCase(repo, zerolog.Nop())

	result, err := uc.Sync(context.Background(), []entity.Product{product("a"), product("b")})
	require.NoError(t, err)
	assert.Equal(t, 2, result.Skipped)
	assert.Zero(t, result.Pushed)
	assert.Zero(t, repo.creates, "passada sem ausências é somente leitura")
}

// A guarda é por insert: se o id surge remotamente DEPOIS da listagem
// do lote, a re-checagem imediatamente antes do insert o pula.
func TestSync_GuardaPorInsertDetectaCorridaNoMeioDaPassada(t *testing.T) {
	repo := newFakeRepo()
	uc := sync.NewProductSyncUseCase(repo, zerolog.Nop())

	// Outro processo insere "b" no meio da passada.
	repo.beforeExists = func(f *fakeProductRepo, id string) {
		if id == "b" {
			f.products["b"] = &entity.Product{ID: "b"}
		}
	}

	result, err := uc.Sync(context.Background(), []entity.Product{product("a"), product("b")})
	require.NoError(t, err)
	assert.Equal(t, 1, result.Pushed, "somente \"a\" deve ser inserido")
	assert.Equal(t, 1, result.Skipped, "\"b\" foi detectado pela guarda")
	assert.Equal(t, 1, repo.creates)
}

// Falha num insert não derruba a passada: o erro é agregado e os demais
// produtos continuam sendo processados.
func TestSync_ErroIsoladoNaoInterrompeAPassada(t *testing.T) {
	repo := newFakeRepo()
	repo.createErr["b"] = errors.New("conexão perdida")
	uc := sync.NewProductSyncUseCase(repo, zerolog.Nop())

	result, err := uc.Sync(context.Background(), []entity.Product{
		product("a"), product("b"), product("c"),
	})
	require.NoError(t, err)
	assert.Equal(t, 2, result.Pushed)
	require.Len(t, result.Errors, 1)
	assert.Contains(t, result.Errors[0], "b")
	assert.Contains(t, repo.products, "c", "o erro em \"b\" não pode impedir \"c\"")
}

func TestSync_IgnoraIDVazio(t *testing.T) {
	repo := newFakeRepo()
	uc := sync.NewProductSyncUseCase(repo, zerolog.Nop())

	result, err := uc.Sync(context.Background(), []entity.Product{{ID: ""}})
	require.NoError(t, err)
	assert.Zero(t, result.Pushed)
	assert.Zero(t, repo.creates)
}
