package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Status de venda. Transições permitidas: Aberta→Fechada (na criação,
// o coordenador já grava Fechada) e Fechada→Cancelada (uma única vez).
const (
	SaleStatusAberta    = "Aberta"
	SaleStatusFechada   = "Fechada"
	SaleStatusCancelada = "Cancelada"
)

// Formas de pagamento.
const (
	PaymentDinheiro    = "Dinheiro"
	PaymentDebito      = "Débito"
	PaymentCredito     = "Crédito"
	PaymentPix         = "Pix"
	PaymentVR          = "VR"
	PaymentFuncionario = "Funcionário"
)

// Origem da venda.
const (
	SaleOriginCliente     = "cliente"
	SaleOriginFuncionario = "funcionario"
)

// SaleChannelBalcao é o único canal de venda da lanchonete hoje.
const SaleChannelBalcao = "Balcão"

// Sale é o cabeçalho de uma venda. Nunca é editado depois de criado,
// exceto a transição condicional de status no cancelamento.
type Sale struct {
	ID            string
	SaleDatetime  time.Time
	Channel       string
	Status        string
	PaymentMethod string
	Origin        string // cliente | funcionario
	GrossValue    decimal.Decimal
	DiscountValue decimal.Decimal
	NetValue      decimal.Decimal
	TotalCost     decimal.Decimal
	Canceled      bool
	EmployeeID    string // vazio quando origem = cliente
	Items         []SaleItem
}

// SaleItem é uma linha de venda: criada uma vez, nunca alterada.
type SaleItem struct {
	ID         string
	SaleID     string
	ProductID  string
	Quantity   int64
	UnitPrice  decimal.Decimal
	UnitCost   decimal.Decimal
	TotalValue decimal.Decimal
}
