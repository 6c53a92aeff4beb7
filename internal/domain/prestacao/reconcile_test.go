package prestacao_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sigescola/sigescola-api/internal/domain/entity"
	"github.com/sigescola/sigescola-api/internal/domain/prestacao"
)

func d(v string) decimal.Decimal {
	out, err := decimal.NewFromString(v)
	if err != nil {
		panic(err)
	}
	return out
}

func TestIsMatched_ToleranciaDeUmCentavo(t *testing.T) {
	cases := []struct {
		name     string
		subtotal string
		discount string
		target   string
		matched  bool
	}{
		{"valores exatos", "1000.00", "0", "1000.00", true},
		{"diferença abaixo da tolerância", "1000.009", "0", "1000.00", true},
		{"diferença na borda da tolerância", "1000.01", "0", "1000.00", false},
		{"diferença acima da tolerância", "1000.02", "0", "1000.00", false},
		{"desconto fecha a conta", "1050.00", "50.00", "1000.00", true},
		{"desconto insuficiente", "1050.00", "40.00", "1000.00", false},
		{"líquido abaixo do alvo", "999.50", "0", "1000.00", false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := prestacao.IsMatched(d(tc.subtotal), d(tc.discount), d(tc.target))
			assert.Equal(t, tc.matched, got)
		})
	}
}

func TestReconcile_CalculaSubtotalLiquidoERestante(t *testing.T) {
	items := []entity.AccountabilityItem{
		{Quantity: d("50"), WinnerUnitPrice: d("5.50")},  // 275,00
		{Quantity: d("10"), WinnerUnitPrice: d("8.00")},  // 80,00
		{Quantity: d("3"), WinnerUnitPrice: d("12.345")}, // 37,035
	}

	rec := prestacao.Reconcile(items, d("10.00"), d("382.04"))

	assert.True(t, rec.Subtotal.Equal(d("392.035")), "subtotal = Σ(qtd × preço unitário)")
	assert.True(t, rec.Net.Equal(d("382.035")), "líquido = subtotal − desconto")
	assert.True(t, rec.Remaining.Equal(d("0.005")), "restante = alvo − líquido")
	assert.True(t, rec.Matched)
}

// O alvo de conciliação de um lançamento de saída é sempre o valor absoluto:
// despesas são persistidas negativas.
func TestReconcile_AlvoUsaValorAbsolutoDoLancamento(t *testing.T) {
	entry := &entity.FinancialEntry{
		ID:    "lanc-1",
		Type:  entity.EntryTypeSaida,
		Value: d("-275.00"),
	}
	draft, err := prestacao.NewDraft(entry)
	require.NoError(t, err)
	draft.AddItem("Arroz", d("50"), "kg", d("5.50"))

	rec := prestacao.ReconcileDraft(draft, decimal.Zero)
	assert.True(t, rec.Target.Equal(d("275.00")))
	assert.True(t, rec.Matched)
}

func TestReconcile_SemItensNaoConcilia(t *testing.T) {
	rec := prestacao.Reconcile(nil, decimal.Zero, d("100.00"))
	assert.True(t, rec.Subtotal.IsZero())
	assert.False(t, rec.Matched)
}
