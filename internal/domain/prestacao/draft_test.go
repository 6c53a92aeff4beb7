package prestacao_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sigescola/sigescola-api/internal/domain"
	"github.com/sigescola/sigescola-api/internal/domain/entity"
	"github.com/sigescola/sigescola-api/internal/domain/prestacao"
)

func newExpenseEntry() *entity.FinancialEntry {
	return &entity.FinancialEntry{
		ID:           "lanc-1",
		SupplierID:   "forn-vencedor",
		SupplierName: "Mercado Central LTDA",
		Type:         entity.EntryTypeSaida,
		Value:        decimal.NewFromFloat(-275.00),
	}
}

func newDraft(t *testing.T) *prestacao.Draft {
	t.Helper()
	d, err := prestacao.NewDraft(newExpenseEntry())
	require.NoError(t, err)
	return d
}

func TestNewDraft_RejeitaLancamentoDeEntrada(t *testing.T) {
	_, err := prestacao.NewDraft(&entity.FinancialEntry{Type: entity.EntryTypeEntrada})
	assert.ErrorIs(t, err, domain.ErrEntryNotExpense)
}

// ──────────────────────────────────────────────────────────────────────────────
// Paridade entre as três listas de itens
// ──────────────────────────────────────────────────────────────────────────────

// A propriedade central do comparador: para todo slot concorrente, a lista de
// linhas materializada tem o mesmo comprimento e a mesma ordem dos itens do
// vencedor, antes e depois de qualquer inclusão, remoção ou edição.
func TestDraft_ParidadeAposAdicionarERemover(t *testing.T) {
	d := newDraft(t)

	idArroz := d.AddItem("Arroz", decimal.NewFromInt(50), "kg", decimal.NewFromFloat(5.50))
	idFeijao := d.AddItem("Feijão", decimal.NewFromInt(20), "kg", decimal.NewFromFloat(8.00))
	d.AddItem("Óleo", decimal.NewFromInt(10), "un", decimal.NewFromFloat(7.90))

	require.True(t, d.Aligned())
	for slot := 0; slot < prestacao.CompetitorSlots; slot++ {
		require.Len(t, d.CompetitorItems(slot), 3)
	}

	require.NoError(t, d.RemoveItem(idFeijao))
	require.True(t, d.Aligned())
	for slot := 0; slot < prestacao.CompetitorSlots; slot++ {
		items := d.CompetitorItems(slot)
		require.Len(t, items, 2)
		// Ordem preservada: Arroz continua primeiro.
		assert.Equal(t, idArroz, items[0].ItemID)
		assert.Equal(t, "Arroz", items[0].Description)
	}
}

func TestDraft_EdicaoDoVencedorEspelhadaNosConcorrentes(t *testing.T) {
	d := newDraft(t)
	id := d.AddItem("Arroz", decimal.NewFromInt(50), "kg", decimal.NewFromFloat(5.50))

	require.NoError(t, d.SetCompetitorPrice(0, id, decimal.NewFromFloat(5.90)))
	require.NoError(t, d.UpdateItem(id, "Arroz Tipo 1", decimal.NewFromInt(60), "kg", decimal.NewFromFloat(5.40)))

	for slot := 0; slot < prestacao.CompetitorSlots; slot++ {
		it := d.CompetitorItems(slot)[0]
		assert.Equal(t, "Arroz Tipo 1", it.Description, "descrição espelhada no slot %d", slot)
		assert.True(t, it.Quantity.Equal(decimal.NewFromInt(60)), "quantidade espelhada no slot %d", slot)
	}
	// O preço do concorrente não é tocado pela edição do item do vencedor.
	assert.True(t, d.CompetitorItems(0)[0].UnitPrice.Equal(decimal.NewFromFloat(5.90)))
	assert.True(t, d.CompetitorItems(1)[0].UnitPrice.IsZero())
}

func TestDraft_RemoverUltimoItemFalha(t *testing.T) {
	d := newDraft(t)
	id := d.AddItem("Arroz", decimal.NewFromInt(1), "kg", decimal.NewFromFloat(5.50))
	assert.ErrorIs(t, d.RemoveItem(id), domain.ErrLastItem)
}

func TestDraft_RemoverItemDesconhecidoFalha(t *testing.T) {
	d := newDraft(t)
	d.AddItem("Arroz", decimal.NewFromInt(1), "kg", decimal.NewFromFloat(5.50))
	assert.ErrorIs(t, d.RemoveItem("nao-existe"), domain.ErrUnknownItem)
}

func TestDraft_PrecoParaItemDesconhecidoFalha(t *testing.T) {
	d := newDraft(t)
	assert.ErrorIs(t, d.SetCompetitorPrice(0, "nao-existe", decimal.NewFromInt(1)), domain.ErrUnknownItem)
}

// ──────────────────────────────────────────────────────────────────────────────
// Seleção de fornecedores proponentes
// ──────────────────────────────────────────────────────────────────────────────

func TestDraft_RejeitaFornecedorVencedorComoConcorrente(t *testing.T) {
	d := newDraft(t)
	err := d.SetCompetitorSupplier(0, entity.Supplier{ID: "forn-vencedor", Name: "Mercado Central LTDA"})
	assert.ErrorIs(t, err, domain.ErrSupplierIsWinner)
}

func TestDraft_RejeitaFornecedorRepetidoNoOutroSlot(t *testing.T) {
	d := newDraft(t)
	require.NoError(t, d.SetCompetitorSupplier(0, entity.Supplier{ID: "forn-a", Name: "Fornecedor A"}))

	err := d.SetCompetitorSupplier(1, entity.Supplier{ID: "forn-a", Name: "Fornecedor A"})
	assert.ErrorIs(t, err, domain.ErrSupplierAlreadyChosen)

	// Re-selecionar o mesmo fornecedor no próprio slot é permitido.
	assert.NoError(t, d.SetCompetitorSupplier(0, entity.Supplier{ID: "forn-a", Name: "Fornecedor A"}))
}

// Após qualquer sequência válida de seleções, os ids de concorrentes nunca
// coincidem entre si nem com o vencedor.
func TestDraft_SelecoesValidasMantemFornecedoresDistintos(t *testing.T) {
	d := newDraft(t)
	require.NoError(t, d.SetCompetitorSupplier(0, entity.Supplier{ID: "forn-a"}))
	require.NoError(t, d.SetCompetitorSupplier(1, entity.Supplier{ID: "forn-b"}))
	require.NoError(t, d.SetCompetitorSupplier(0, entity.Supplier{ID: "forn-c"}))

	a := d.Competitor(0).SupplierID
	b := d.Competitor(1).SupplierID
	assert.NotEqual(t, a, b)
	assert.NotEqual(t, a, "forn-vencedor")
	assert.NotEqual(t, b, "forn-vencedor")
}

func TestDraft_ValidateExigeDoisProponentes(t *testing.T) {
	d := newDraft(t)
	d.AddItem("Arroz", decimal.NewFromInt(50), "kg", decimal.NewFromFloat(5.50))

	assert.ErrorIs(t, d.Validate(), domain.ErrCompetitorsMissing)

	require.NoError(t, d.SetCompetitorSupplier(0, entity.Supplier{ID: "forn-a"}))
	assert.ErrorIs(t, d.Validate(), domain.ErrCompetitorsMissing)

	require.NoError(t, d.SetCompetitorSupplier(1, entity.Supplier{ID: "forn-b"}))
	assert.NoError(t, d.Validate())
}

// ──────────────────────────────────────────────────────────────────────────────
// Importação em massa dentro do rascunho
// ──────────────────────────────────────────────────────────────────────────────

// A paridade vale inclusive durante a importação em massa: os preços dos
// concorrentes entram posicionalmente nos slots 1 e 2 e o alinhamento
// estrutural se mantém.
func TestDraft_ImportRowsMantemParidadeEAtribuicaoPosicional(t *testing.T) {
	d := newDraft(t)
	d.AddItem("Item manual", decimal.NewFromInt(1), "un", decimal.NewFromFloat(10))

	rows := []prestacao.ImportedRow{
		{
			Description:     "Arroz Parboilizado Tipo 1",
			Quantity:        decimal.NewFromInt(50),
			Unit:            "kg",
			WinnerUnitPrice: decimal.NewFromFloat(5.50),
			CompetitorPrices: [2]decimal.Decimal{
				decimal.NewFromFloat(5.90),
				decimal.NewFromFloat(6.15),
			},
		},
	}
	d.ImportRows(rows)

	require.True(t, d.Aligned())
	require.Len(t, d.Items(), 2)

	c1 := d.CompetitorItems(0)
	c2 := d.CompetitorItems(1)
	require.Len(t, c1, 2)
	require.Len(t, c2, 2)
	assert.True(t, c1[1].UnitPrice.Equal(decimal.NewFromFloat(5.90)), "slot 1 recebe o preço do concorrente 1")
	assert.True(t, c2[1].UnitPrice.Equal(decimal.NewFromFloat(6.15)), "slot 2 recebe o preço do concorrente 2")
	// O item manual pré-existente não é tocado.
	assert.True(t, c1[0].UnitPrice.IsZero())
}

func TestDraft_SubtotalETotaisDosConcorrentes(t *testing.T) {
	d := newDraft(t)
	id1 := d.AddItem("Arroz", decimal.NewFromInt(50), "kg", decimal.NewFromFloat(5.50))
	id2 := d.AddItem("Feijão", decimal.NewFromInt(10), "kg", decimal.NewFromFloat(8.00))

	require.NoError(t, d.SetCompetitorPrice(0, id1, decimal.NewFromFloat(5.90)))
	require.NoError(t, d.SetCompetitorPrice(0, id2, decimal.NewFromFloat(8.20)))

	assert.True(t, d.Subtotal().Equal(decimal.NewFromFloat(355.00)), "50×5,50 + 10×8,00")
	assert.True(t, d.CompetitorTotal(0).Equal(decimal.NewFromFloat(377.00)), "50×5,90 + 10×8,20")
	assert.True(t, d.CompetitorTotal(1).IsZero())
}
