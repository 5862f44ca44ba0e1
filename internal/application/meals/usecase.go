package meals

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/seu-usuario/lanchonete-pro/internal/application/dto"
	"github.com/seu-usuario/lanchonete-pro/internal/domain"
	"github.com/seu-usuario/lanchonete-pro/internal/domain/entity"
	"github.com/seu-usuario/lanchonete-pro/internal/domain/repository"
)

// MealUseCase é o razão de refeições de funcionário: débitos
// append-only contra o limite diário, com soft-cancel. Cancelar um
// consumo nunca toca o razão de estoque.
type MealUseCase struct {
	mealRepo     repository.MealRepository
	employeeRepo repository.EmployeeRepository
}

// NewMealUseCase constrói o caso de uso.
func NewMealUseCase(mealRepo repository.MealRepository, employeeRepo repository.EmployeeRepository) *MealUseCase {
	return &MealUseCase{mealRepo: mealRepo, employeeRepo: employeeRepo}
}

const mealDateLayout = "2006-01-02"

// Record registra um consumo avulso (não vindo de venda).
func (uc *MealUseCase) Record(ctx context.Context, in dto.RegisterMealRequest) (string, error) {
	if in.EmployeeID == "" {
		return "", fmt.Errorf("%w: employee_id obrigatório", domain.ErrValidation)
	}
	if !in.Value.IsPositive() {
		return "", fmt.Errorf("%w: valor deve ser positivo", domain.ErrValidation)
	}
	day, err := time.Parse(mealDateLayout, in.MealDate)
	if err != nil {
		return "", fmt.Errorf("%w: meal_date inválida (%s)", domain.ErrValidation, in.MealDate)
	}

	employee, err := uc.employeeRepo.GetByID(in.EmployeeID)
	if err != nil {
		return "", domain.NewPersistError("record_meal", "get_employee", false, err)
	}
	if employee == nil {
		return "", fmt.Errorf("%w: funcionário %s", domain.ErrNotFound, in.EmployeeID)
	}

	meal := &entity.MealConsumption{
		ID:          uuid.New().String(),
		EmployeeID:  in.EmployeeID,
		MealDate:    day,
		Value:       in.Value,
		Description: in.Description,
		CreatedAt:   time.Now(),
	}
	if err := uc.mealRepo.Create(meal); err != nil {
		return "", domain.NewPersistError("record_meal", "insert_meal", false, err)
	}
	return meal.ID, nil
}

// Cancel faz o soft-cancel de um consumo. Idempotente: cancelar o que
// já está cancelado devolve sucesso sem escrita adicional.
func (uc *MealUseCase) Cancel(ctx context.Context, id string) error {
	if id == "" {
		return fmt.Errorf("%w: id obrigatório", domain.ErrValidation)
	}
	found, err := uc.mealRepo.MarkCanceled(id)
	if err != nil {
		return domain.NewPersistError("cancel_meal", "update_canceled", false, err)
	}
	if !found {
		return fmt.Errorf("%w: consumo %s", domain.ErrNotFound, id)
	}
	return nil
}

// DailyBalance devolve limite − Σ(consumos ativos do dia). Pode ficar
// negativo: o limite é orientativo, não bloqueante.
func (uc *MealUseCase) DailyBalance(ctx context.Context, employeeID, mealDate string) (*dto.MealBalanceResponse, error) {
	day, err := time.Parse(mealDateLayout, mealDate)
	if err != nil {
		return nil, fmt.Errorf("%w: meal_date inválida (%s)", domain.ErrValidation, mealDate)
	}
	employee, err := uc.employeeRepo.GetByID(employeeID)
	if err != nil {
		return nil, domain.NewPersistError("meal_balance", "get_employee", false, err)
	}
	if employee == nil {
		return nil, fmt.Errorf("%w: funcionário %s", domain.ErrNotFound, employeeID)
	}
	// Uma única leitura consistente do conjunto de consumos do dia.
	consumed, err := uc.mealRepo.SumActiveByDay(employeeID, day)
	if err != nil {
		return nil, domain.NewPersistError("meal_balance", "sum_meals", false, err)
	}
	return &dto.MealBalanceResponse{
		EmployeeID: employeeID,
		MealDate:   mealDate,
		DailyLimit: employee.DailyMealLimit,
		Consumed:   consumed,
		Balance:    employee.DailyMealLimit.Sub(consumed),
	}, nil
}

// ActiveTotal soma os valores não cancelados de uma lista de consumos
// (dobra em memória usada pelo cache da sessão).
func ActiveTotal(meals []entity.MealConsumption) decimal.Decimal {
	total := decimal.Zero
	for _, m := range meals {
		if !m.Canceled {
			total = total.Add(m.Value)
		}
	}
	return total
}
