package prestacao_test

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sigescola/sigescola-api/internal/application/dto"
	appprestacao "github.com/sigescola/sigescola-api/internal/application/prestacao"
	"github.com/sigescola/sigescola-api/internal/domain"
	"github.com/sigescola/sigescola-api/internal/domain/entity"
	"github.com/sigescola/sigescola-api/internal/domain/repository"
	"github.com/sigescola/sigescola-api/internal/domain/visibility"
)

// fakeEntryRepo repositório de lançamentos em memória para os testes.
type fakeEntryRepo struct {
	entries     map[string]*entity.FinancialEntry
	statuses    map[string]string
	processRepo *fakeProcessRepo
}

func newFakeEntryRepo(entries ...*entity.FinancialEntry) *fakeEntryRepo {
	r := &fakeEntryRepo{entries: map[string]*entity.FinancialEntry{}, statuses: map[string]string{}}
	for _, e := range entries {
		r.entries[e.ID] = e
	}
	return r
}

func (r *fakeEntryRepo) Create(entry *entity.FinancialEntry) error { r.entries[entry.ID] = entry; return nil }
func (r *fakeEntryRepo) GetByID(id string) (*entity.FinancialEntry, error) {
	return r.entries[id], nil
}
func (r *fakeEntryRepo) Update(entry *entity.FinancialEntry) error { r.entries[entry.ID] = entry; return nil }
func (r *fakeEntryRepo) UpdateStatus(id, status string) error {
	r.statuses[id] = status
	if e, ok := r.entries[id]; ok {
		e.Status = status
	}
	return nil
}
func (r *fakeEntryRepo) List(repository.EntryFilter, int, int) ([]*entity.FinancialEntry, error) {
	return nil, nil
}
func (r *fakeEntryRepo) ListWithoutProcess(filter repository.EntryFilter, limit, offset int) ([]*entity.FinancialEntry, error) {
	var out []*entity.FinancialEntry
	for _, e := range r.entries {
		if e.Type != entity.EntryTypeSaida || !filter.Scope.Allows(e.SchoolID) {
			continue
		}
		if r.processRepo != nil && r.processRepo.hasProcessForEntry(e.ID) {
			continue
		}
		out = append(out, e)
	}
	return out, nil
}
func (r *fakeEntryRepo) Delete(id string) error { delete(r.entries, id); return nil }

// fakeProcessRepo repositório de processos em memória.
type fakeProcessRepo struct {
	processes map[string]*entity.AccountabilityProcess
	items     map[string][]entity.AccountabilityItem
	quotes    map[string][]entity.AccountabilityQuote
	entryRepo *fakeEntryRepo
}

func newFakeProcessRepo(entryRepo *fakeEntryRepo) *fakeProcessRepo {
	r := &fakeProcessRepo{
		processes: map[string]*entity.AccountabilityProcess{},
		items:     map[string][]entity.AccountabilityItem{},
		quotes:    map[string][]entity.AccountabilityQuote{},
		entryRepo: entryRepo,
	}
	entryRepo.processRepo = r
	return r
}

func (r *fakeProcessRepo) hasProcessForEntry(entryID string) bool {
	for _, p := range r.processes {
		if p.FinancialEntryID == entryID {
			return true
		}
	}
	return false
}

func (r *fakeProcessRepo) Create(p *entity.AccountabilityProcess) error {
	for _, existing := range r.processes {
		if existing.FinancialEntryID == p.FinancialEntryID {
			return domain.ErrEntryAlreadyProcessed
		}
	}
	r.processes[p.ID] = p
	return nil
}
func (r *fakeProcessRepo) Update(p *entity.AccountabilityProcess) error {
	r.processes[p.ID] = p
	return nil
}
func (r *fakeProcessRepo) ReplaceItems(processID string, items []entity.AccountabilityItem) error {
	r.items[processID] = items
	return nil
}
func (r *fakeProcessRepo) ReplaceQuotes(processID string, quotes []entity.AccountabilityQuote) error {
	r.quotes[processID] = quotes
	return nil
}
func (r *fakeProcessRepo) GetByID(id string) (*entity.AccountabilityProcess, error) {
	p := r.processes[id]
	if p == nil {
		return nil, nil
	}
	return r.withAggregates(p), nil
}
func (r *fakeProcessRepo) GetByEntryID(entryID string) (*entity.AccountabilityProcess, error) {
	for _, p := range r.processes {
		if p.FinancialEntryID == entryID {
			return r.withAggregates(p), nil
		}
	}
	return nil, nil
}
func (r *fakeProcessRepo) GetByReportToken(token string) (*entity.AccountabilityProcess, error) {
	for _, p := range r.processes {
		if p.ReportToken == token {
			return r.withAggregates(p), nil
		}
	}
	return nil, nil
}
func (r *fakeProcessRepo) List(scope visibility.Scope, status string, limit, offset int) ([]*entity.AccountabilityProcess, error) {
	var out []*entity.AccountabilityProcess
	for _, p := range r.processes {
		if scope.Allows(p.SchoolID) && (status == "" || p.Status == status) {
			out = append(out, p)
		}
	}
	return out, nil
}
func (r *fakeProcessRepo) Delete(id string) error { delete(r.processes, id); return nil }

func (r *fakeProcessRepo) withAggregates(p *entity.AccountabilityProcess) *entity.AccountabilityProcess {
	clone := *p
	clone.Items = r.items[p.ID]
	clone.Quotes = r.quotes[p.ID]
	clone.Entry = r.entryRepo.entries[p.FinancialEntryID]
	return &clone
}

// fakeTxRunner passa os repos direto, sem transação real.
type fakeTxRunner struct {
	entryRepo   *fakeEntryRepo
	processRepo *fakeProcessRepo
}

func (r *fakeTxRunner) Run(_ context.Context, fn func(
	entryRepo repository.FinancialEntryRepository,
	processRepo repository.AccountabilityRepository,
) error) error {
	return fn(r.entryRepo, r.processRepo)
}

func expenseEntry() *entity.FinancialEntry {
	return &entity.FinancialEntry{
		ID:           "lanc-1",
		SchoolID:     "esc-1",
		SupplierID:   "forn-vencedor",
		SupplierName: "Mercado Central LTDA",
		Type:         entity.EntryTypeSaida,
		Status:       entity.StatusPago,
		Value:        decimal.RequireFromString("-275.00"),
	}
}

func saveRequest() dto.SaveProcessRequest {
	return dto.SaveProcessRequest{
		FinancialEntryID: "lanc-1",
		Status:           entity.ProcessEmAndamento,
		Items: []dto.ProcessItemDTO{
			{Description: "Arroz", Quantity: decimal.NewFromInt(50), Unit: "kg", WinnerUnitPrice: decimal.RequireFromString("5.50")},
		},
		Competitors: [2]dto.CompetitorDTO{
			{SupplierID: "forn-a", SupplierName: "Fornecedor A"},
			{SupplierID: "forn-b", SupplierName: "Fornecedor B"},
		},
	}
}

func newSaveUseCase(entry *entity.FinancialEntry) (*appprestacao.SaveProcessUseCase, *fakeEntryRepo, *fakeProcessRepo) {
	entryRepo := newFakeEntryRepo(entry)
	processRepo := newFakeProcessRepo(entryRepo)
	runner := &fakeTxRunner{entryRepo: entryRepo, processRepo: processRepo}
	return appprestacao.NewSaveProcessUseCase(runner, entryRepo, processRepo), entryRepo, processRepo
}

func TestSave_CriaProcessoComTresCotacoes(t *testing.T) {
	uc, _, processRepo := newSaveUseCase(expenseEntry())

	resp, err := uc.Save(context.Background(), visibility.All(), saveRequest())
	require.NoError(t, err)

	require.Len(t, processRepo.processes, 1)
	require.Len(t, resp.Quotes, 3)
	assert.True(t, resp.Quotes[0].IsWinner)
	assert.Equal(t, "Mercado Central LTDA", resp.Quotes[0].SupplierName)
	assert.False(t, resp.Quotes[1].IsWinner)
	assert.False(t, resp.Quotes[2].IsWinner)

	// Conferência bate: 50 × 5,50 = 275,00 contra o alvo |−275,00|.
	require.NotNil(t, resp.Reconciliation)
	assert.True(t, resp.Reconciliation.Matched)
	assert.NotEmpty(t, resp.Checklist, "checklist padrão com os cinco critérios")
}

func TestSave_DivergenciaExigeConfirmacao(t *testing.T) {
	uc, _, _ := newSaveUseCase(expenseEntry())

	in := saveRequest()
	in.Items[0].WinnerUnitPrice = decimal.RequireFromString("5.00") // 250,00 ≠ 275,00
	_, err := uc.Save(context.Background(), visibility.All(), in)
	assert.ErrorIs(t, err, domain.ErrValueMismatch)

	// Com a confirmação explícita o salvamento divergente é aceito.
	in.ConfirmMismatch = true
	resp, err := uc.Save(context.Background(), visibility.All(), in)
	require.NoError(t, err)
	assert.False(t, resp.Reconciliation.Matched)
}

func TestSave_RejeitaConcorrenteIgualAoVencedor(t *testing.T) {
	uc, _, _ := newSaveUseCase(expenseEntry())

	in := saveRequest()
	in.Competitors[1].SupplierID = "forn-vencedor"
	_, err := uc.Save(context.Background(), visibility.All(), in)
	assert.ErrorIs(t, err, domain.ErrSupplierIsWinner)
}

func TestSave_RejeitaConcorrentesRepetidos(t *testing.T) {
	uc, _, _ := newSaveUseCase(expenseEntry())

	in := saveRequest()
	in.Competitors[1].SupplierID = "forn-a"
	_, err := uc.Save(context.Background(), visibility.All(), in)
	assert.ErrorIs(t, err, domain.ErrSupplierAlreadyChosen)
}

func TestSave_RejeitaProponenteAusente(t *testing.T) {
	uc, _, _ := newSaveUseCase(expenseEntry())

	in := saveRequest()
	in.Competitors[1] = dto.CompetitorDTO{}
	_, err := uc.Save(context.Background(), visibility.All(), in)
	assert.ErrorIs(t, err, domain.ErrCompetitorsMissing)
}

func TestSave_RejeitaLancamentoDeEntrada(t *testing.T) {
	entry := expenseEntry()
	entry.Type = entity.EntryTypeEntrada
	entry.Value = entry.Value.Abs()
	uc, _, _ := newSaveUseCase(entry)

	_, err := uc.Save(context.Background(), visibility.All(), saveRequest())
	assert.ErrorIs(t, err, domain.ErrEntryNotExpense)
}

func TestSave_ForaDoEscopoViraNotFound(t *testing.T) {
	uc, _, _ := newSaveUseCase(expenseEntry())

	_, err := uc.Save(context.Background(), visibility.School("outra-escola"), saveRequest())
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestSave_ConcluidoConsolidaLancamento(t *testing.T) {
	uc, entryRepo, _ := newSaveUseCase(expenseEntry())

	in := saveRequest()
	in.Status = entity.ProcessConcluido
	_, err := uc.Save(context.Background(), visibility.All(), in)
	require.NoError(t, err)
	assert.Equal(t, entity.StatusConsolidado, entryRepo.statuses["lanc-1"])
}

func TestSave_ReabrirProcessoDevolveLancamentoParaPago(t *testing.T) {
	uc, entryRepo, _ := newSaveUseCase(expenseEntry())

	in := saveRequest()
	in.Status = entity.ProcessConcluido
	_, err := uc.Save(context.Background(), visibility.All(), in)
	require.NoError(t, err)

	in.Status = entity.ProcessEmAndamento
	_, err = uc.Save(context.Background(), visibility.All(), in)
	require.NoError(t, err)
	assert.Equal(t, entity.StatusPago, entryRepo.statuses["lanc-1"])
}

func TestSave_EdicaoPreservaIDEToken(t *testing.T) {
	uc, _, processRepo := newSaveUseCase(expenseEntry())

	first, err := uc.Save(context.Background(), visibility.All(), saveRequest())
	require.NoError(t, err)

	second, err := uc.Save(context.Background(), visibility.All(), saveRequest())
	require.NoError(t, err)

	assert.Equal(t, first.ID, second.ID, "segundo salvamento edita o mesmo processo")
	require.Len(t, processRepo.processes, 1)
	assert.NotEmpty(t, processRepo.processes[first.ID].ReportToken)
}

func TestSave_PrecosDosConcorrentesPorIdDeItem(t *testing.T) {
	uc, _, _ := newSaveUseCase(expenseEntry())

	in := saveRequest()
	in.Items[0].ID = "item-1"
	in.Competitors[0].Prices = map[string]decimal.Decimal{"item-1": decimal.RequireFromString("5.90")}
	resp, err := uc.Save(context.Background(), visibility.All(), in)
	require.NoError(t, err)

	comp1 := resp.Quotes[1]
	require.Len(t, comp1.Items, 1)
	assert.Equal(t, "item-1", comp1.Items[0].ItemID)
	assert.True(t, comp1.Items[0].UnitPrice.Equal(decimal.RequireFromString("5.90")))
	assert.True(t, comp1.TotalValue.Equal(decimal.RequireFromString("295.00")), "50 × 5,90")
	// Preço não informado no outro concorrente vale zero, linha alinhada.
	require.Len(t, resp.Quotes[2].Items, 1)
	assert.True(t, resp.Quotes[2].Items[0].UnitPrice.IsZero())
}
