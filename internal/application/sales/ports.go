package sales

import (
	"context"

	"github.com/seu-usuario/lanchonete-pro/internal/domain/repository"
)

// TxRunner executa uma função dentro de uma transação de BD, passando
// repositórios atados a essa transação. Garante que cabeçalho, itens,
// movimentos e o débito de refeição de uma venda formam UMA unidade
// lógica: qualquer passo falhando desfaz todos os anteriores.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		saleRepo repository.SaleRepository,
		movRepo repository.MovementRepository,
		mealRepo repository.MealRepository,
	) error) error
}
