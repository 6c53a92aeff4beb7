package prestacao

import (
	"github.com/shopspring/decimal"

	"github.com/sigescola/sigescola-api/internal/domain/entity"
)

// Epsilon é a tolerância de conferência de valores em reais. O valor confere
// quando |restante| < 0.01, isto é, diferenças abaixo de um centavo.
var Epsilon = decimal.NewFromFloat(0.01)

// Reconciliation é o resultado da conferência de valores do processo:
// Subtotal  = Σ quantidade × preço do vencedor
// Net       = Subtotal − Discount
// Target    = |valor do lançamento|
// Remaining = Target − Net
// A conferência é consultiva: um processo pode ser gravado sem bater, após
// confirmação explícita do usuário.
type Reconciliation struct {
	Subtotal  decimal.Decimal
	Discount  decimal.Decimal
	Net       decimal.Decimal
	Target    decimal.Decimal
	Remaining decimal.Decimal
	Matched   bool
}

// Reconcile calcula a conferência a partir dos itens, desconto e valor alvo.
func Reconcile(items []entity.AccountabilityItem, discount, target decimal.Decimal) Reconciliation {
	subtotal := decimal.Zero
	for _, it := range items {
		subtotal = subtotal.Add(it.Subtotal())
	}
	net := subtotal.Sub(discount)
	return Reconciliation{
		Subtotal:  subtotal,
		Discount:  discount,
		Net:       net,
		Target:    target,
		Remaining: target.Sub(net),
		Matched:   IsMatched(subtotal, discount, target),
	}
}

// IsMatched informa se |(subtotal − desconto) − alvo| < Epsilon.
func IsMatched(subtotal, discount, target decimal.Decimal) bool {
	return target.Sub(subtotal.Sub(discount)).Abs().LessThan(Epsilon)
}

// ReconcileDraft aplica a conferência ao rascunho, usando o valor absoluto do
// lançamento base como alvo.
func ReconcileDraft(d *Draft, discount decimal.Decimal) Reconciliation {
	return Reconcile(d.Items(), discount, d.Entry().TargetValue())
}
