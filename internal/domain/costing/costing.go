package costing

import "github.com/shopspring/decimal"

// WeightedAverage recalcula o custo médio ponderado de um produto após
// uma entrada de compra (serviço de domínio).
// NovoCusto = ((EstoqueAtual * CustoAtual) + (QtdEntrada * CustoEntrada)) / (EstoqueAtual + QtdEntrada)
func WeightedAverage(currentStock, currentCost, entryQty, entryCost decimal.Decimal) decimal.Decimal {
	sum := currentStock.Add(entryQty)
	if sum.LessThanOrEqual(decimal.Zero) {
		return decimal.Zero
	}
	num := currentStock.Mul(currentCost).Add(entryQty.Mul(entryCost))
	return num.Div(sum)
}
