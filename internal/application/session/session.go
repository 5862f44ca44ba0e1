package session

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/rs/zerolog"

	"github.com/seu-usuario/lanchonete-pro/internal/domain"
	"github.com/seu-usuario/lanchonete-pro/internal/domain/entity"
	"github.com/seu-usuario/lanchonete-pro/internal/domain/repository"
)

// pageSize tamanho fixo de lote na carga paginada de produtos.
const pageSize = 50

// Repos agrupa os portos de leitura usados na recarga completa.
type Repos struct {
	Products  repository.ProductRepository
	Movements repository.MovementRepository
	Sales     repository.SaleRepository
	Expenses  repository.ExpenseRepository
	Employees repository.EmployeeRepository
	Meals     repository.MealRepository
}

// Session é o objeto explícito de estado por sessão: guarda o cache das
// coleções e a flag de ocupado que serializa mutações disparadas pelo
// usuário. Substitui o contexto global do app original — é instanciado
// uma vez por sessão e passado por referência, sem singleton ambiente.
//
// O cache é uma otimização de leitura; a fonte de verdade é sempre o
// armazenamento. Não há lock distribuído: sessões diferentes podem
// competir (os movimentos toleram isso, o cancelamento de venda usa
// update condicional).
type Session struct {
	busy   sync.Mutex   // serializa mutações da MESMA sessão
	dataMu sync.RWMutex // protege o snapshot abaixo

	repos Repos
	log   zerolog.Logger

	products  []entity.Product
	movements []entity.StockMovement
	sales     []entity.Sale
	expenses  []entity.Expense
	employees []entity.Employee
	meals     []entity.MealConsumption
}

// New constrói a sessão com o cache vazio.
func New(repos Repos, log zerolog.Logger) *Session {
	return &Session{repos: repos, log: log}
}

// RunExclusive executa uma mutação sob a flag de ocupado e, ao final,
// faz a recarga completa. Uma segunda mutação disparada enquanto a
// primeira (ou a recarga dela) está em voo recebe ErrBusy — exclusão
// mútua de sessão, não lock distribuído.
func (s *Session) RunExclusive(ctx context.Context, fn func(ctx context.Context) error) error {
	if !s.busy.TryLock() {
		return domain.ErrBusy
	}
	defer s.busy.Unlock()

	if err := fn(ctx); err != nil {
		return err
	}
	// Modelo de consistência por recarga completa: depois de qualquer
	// mutação, as coleções relevantes são relidas por inteiro.
	if err := s.Refresh(ctx); err != nil {
		s.log.Warn().Err(err).Msg("recarga pós-mutação incompleta")
	}
	return nil
}

// Refresh recarrega todas as coleções. As falhas são isoladas por
// coleção: uma busca que falhar é registrada e agregada no erro de
// retorno, mas não impede as demais de carregar.
func (s *Session) Refresh(ctx context.Context) error {
	var errs []error

	products, err := s.loadProducts()
	if err != nil {
		s.log.Error().Err(err).Msg("recarga de produtos falhou")
		errs = append(errs, fmt.Errorf("products: %w", err))
	}

	movements, err := s.repos.Movements.List(0, 0)
	if err != nil {
		s.log.Error().Err(err).Msg("recarga de movimentos falhou")
		errs = append(errs, fmt.Errorf("movements: %w", err))
	}

	sales, err := s.repos.Sales.List(0, 0)
	if err != nil {
		s.log.Error().Err(err).Msg("recarga de vendas falhou")
		errs = append(errs, fmt.Errorf("sales: %w", err))
	}

	expenses, err := s.repos.Expenses.List(nil, nil, 0, 0)
	if err != nil {
		s.log.Error().Err(err).Msg("recarga de despesas falhou")
		errs = append(errs, fmt.Errorf("expenses: %w", err))
	}

	employees, err := s.repos.Employees.ListActive()
	if err != nil {
		s.log.Error().Err(err).Msg("recarga de funcionários falhou")
		errs = append(errs, fmt.Errorf("employees: %w", err))
	}

	meals, err := s.repos.Meals.List(0, 0)
	if err != nil {
		s.log.Error().Err(err).Msg("recarga de refeições falhou")
		errs = append(errs, fmt.Errorf("meals: %w", err))
	}

	s.dataMu.Lock()
	if products != nil {
		s.products = products
	}
	if movements != nil {
		s.movements = deref(movements)
	}
	if sales != nil {
		s.sales = deref(sales)
	}
	if expenses != nil {
		s.expenses = deref(expenses)
	}
	if employees != nil {
		s.employees = deref(employees)
	}
	if meals != nil {
		s.meals = deref(meals)
	}
	s.dataMu.Unlock()

	return errors.Join(errs...)
}

// loadProducts carrega produtos em lotes de tamanho fixo até esgotar,
// como o app original fazia com range() no cliente.
func (s *Session) loadProducts() ([]entity.Product, error) {
	var all []entity.Product
	offset := 0
	for {
		page, err := s.repos.Products.List(true, pageSize, offset)
		if err != nil {
			return nil, err
		}
		for _, p := range page {
			all = append(all, *p)
		}
		if len(page) < pageSize {
			return all, nil
		}
		offset += pageSize
	}
}

// Products devolve uma cópia do snapshot de produtos.
func (s *Session) Products() []entity.Product {
	s.dataMu.RLock()
	defer s.dataMu.RUnlock()
	out := make([]entity.Product, len(s.products))
	copy(out, s.products)
	return out
}

// Movements devolve uma cópia do snapshot de movimentos.
func (s *Session) Movements() []entity.StockMovement {
	s.dataMu.RLock()
	defer s.dataMu.RUnlock()
	out := make([]entity.StockMovement, len(s.movements))
	copy(out, s.movements)
	return out
}

// Sales devolve uma cópia do snapshot de vendas.
func (s *Session) Sales() []entity.Sale {
	s.dataMu.RLock()
	defer s.dataMu.RUnlock()
	out := make([]entity.Sale, len(s.sales))
	copy(out, s.sales)
	return out
}

// Expenses devolve uma cópia do snapshot de despesas.
func (s *Session) Expenses() []entity.Expense {
	s.dataMu.RLock()
	defer s.dataMu.RUnlock()
	out := make([]entity.Expense, len(s.expenses))
	copy(out, s.expenses)
	return out
}

// Employees devolve uma cópia do snapshot de funcionários.
func (s *Session) Employees() []entity.Employee {
	s.dataMu.RLock()
	defer s.dataMu.RUnlock()
	out := make([]entity.Employee, len(s.employees))
	copy(out, s.employees)
	return out
}

// Meals devolve uma cópia do snapshot de refeições.
func (s *Session) Meals() []entity.MealConsumption {
	s.dataMu.RLock()
	defer s.dataMu.RUnlock()
	out := make([]entity.MealConsumption, len(s.meals))
	copy(out, s.meals)
	return out
}

// CachedStock dobra o snapshot local de movimentos do produto. É a
// resposta rápida para a UI; a fonte autoritativa continua sendo
// MovementUseCase.DerivedStock. A dobra roda sobre UMA cópia tirada sob
// lock: nenhum movimento concorrente é contado pela metade.
func (s *Session) CachedStock(productID string) (int64, error) {
	s.dataMu.RLock()
	var movs []entity.StockMovement
	for _, m := range s.movements {
		if m.ProductID == productID {
			movs = append(movs, m)
		}
	}
	s.dataMu.RUnlock()
	return entity.DerivedStock(movs)
}

func deref[T any](in []*T) []T {
	out := make([]T, 0, len(in))
	for _, v := range in {
		out = append(out, *v)
	}
	return out
}
