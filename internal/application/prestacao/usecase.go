package prestacao

import (
	"context"
	"fmt"

	"github.com/sigescola/sigescola-api/internal/application/dto"
	"github.com/sigescola/sigescola-api/internal/application/financeiro"
	"github.com/sigescola/sigescola-api/internal/domain"
	"github.com/sigescola/sigescola-api/internal/domain/entity"
	"github.com/sigescola/sigescola-api/internal/domain/prestacao"
	"github.com/sigescola/sigescola-api/internal/domain/repository"
	"github.com/sigescola/sigescola-api/internal/domain/visibility"
)

// PrestacaoUseCase consultas e operações do processo de prestação de contas
// fora do salvamento transacional (SaveProcessUseCase).
type PrestacaoUseCase struct {
	txRunner    TxRunner
	entryRepo   repository.FinancialEntryRepository
	processRepo repository.AccountabilityRepository
	schoolRepo  repository.SchoolRepository
	reports     ReportGenerator
	invoices    InvoiceParser
	publicURL   string
}

// NewPrestacaoUseCase constrói o caso de uso. publicURL é a base dos links de
// validação impressos no documento.
func NewPrestacaoUseCase(
	txRunner TxRunner,
	entryRepo repository.FinancialEntryRepository,
	processRepo repository.AccountabilityRepository,
	schoolRepo repository.SchoolRepository,
	reports ReportGenerator,
	invoices InvoiceParser,
	publicURL string,
) *PrestacaoUseCase {
	return &PrestacaoUseCase{
		txRunner:    txRunner,
		entryRepo:   entryRepo,
		processRepo: processRepo,
		schoolRepo:  schoolRepo,
		reports:     reports,
		invoices:    invoices,
		publicURL:   publicURL,
	}
}

// AvailableEntries devolve os lançamentos de saída do escopo ainda sem
// processo, candidatos do seletor.
func (uc *PrestacaoUseCase) AvailableEntries(scope visibility.Scope, in dto.EntryFilterRequest) ([]dto.EntryResponse, error) {
	in.DefaultPage()
	filter := repository.EntryFilter{
		Scope:    scope,
		SchoolID: in.SchoolID,
		Search:   in.Search,
	}
	entries, err := uc.entryRepo.ListWithoutProcess(filter, in.Limit, in.Offset)
	if err != nil {
		return nil, err
	}
	out := make([]dto.EntryResponse, 0, len(entries))
	for _, entry := range entries {
		out = append(out, *financeiro.ToEntryResponse(entry))
	}
	return out, nil
}

// List devolve os processos do escopo (listagem leve, sem agregados).
func (uc *PrestacaoUseCase) List(scope visibility.Scope, status string, page dto.PageRequest) ([]dto.ProcessResponse, error) {
	page.DefaultPage()
	processes, err := uc.processRepo.List(scope, status, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	out := make([]dto.ProcessResponse, 0, len(processes))
	for _, process := range processes {
		out = append(out, *ToProcessResponse(process))
	}
	return out, nil
}

// Get devolve o processo completo com a conferência de valores recalculada.
func (uc *PrestacaoUseCase) Get(scope visibility.Scope, id string) (*dto.ProcessResponse, error) {
	process, err := uc.loadScoped(scope, id)
	if err != nil {
		return nil, err
	}
	return ToProcessResponse(process), nil
}

// GetByEntry devolve o processo de um lançamento, se existir.
func (uc *PrestacaoUseCase) GetByEntry(scope visibility.Scope, entryID string) (*dto.ProcessResponse, error) {
	process, err := uc.processRepo.GetByEntryID(entryID)
	if err != nil {
		return nil, err
	}
	if process == nil || !scope.Allows(process.SchoolID) {
		return nil, domain.ErrNotFound
	}
	return ToProcessResponse(process), nil
}

// Delete exclui o processo. Lançamento consolidado volta para Pago na mesma
// transação: a exclusão da prestação desfaz a consolidação, nunca deixa o
// status órfão.
func (uc *PrestacaoUseCase) Delete(ctx context.Context, scope visibility.Scope, id string) error {
	process, err := uc.loadScoped(scope, id)
	if err != nil {
		return err
	}
	return uc.txRunner.Run(ctx, func(
		entryRepo repository.FinancialEntryRepository,
		processRepo repository.AccountabilityRepository,
	) error {
		if err := processRepo.Delete(id); err != nil {
			return err
		}
		if process.Entry != nil && process.Entry.Status == entity.StatusConsolidado {
			return entryRepo.UpdateStatus(process.FinancialEntryID, entity.StatusPago)
		}
		return nil
	})
}

// ImportItems interpreta o texto colado ou o conteúdo do CSV e devolve as
// linhas aceitas para revisão, sem tocar em nada persistido.
func (uc *PrestacaoUseCase) ImportItems(in dto.ImportItemsRequest) (*dto.ImportItemsResponse, error) {
	rows, err := prestacao.ParseTable(in.Text)
	if err != nil {
		return nil, err
	}
	out := &dto.ImportItemsResponse{Rows: make([]dto.ImportedRowDTO, 0, len(rows))}
	for _, row := range rows {
		out.Rows = append(out.Rows, dto.ImportedRowDTO{
			Description:      row.Description,
			Quantity:         row.Quantity,
			Unit:             row.Unit,
			WinnerUnitPrice:  row.WinnerUnitPrice,
			CompetitorPrices: row.CompetitorPrices,
		})
	}
	return out, nil
}

// ImportInvoice interpreta o XML de NF-e/NFS-e enviado e devolve as linhas
// de importação com os preços concorrentes sugeridos.
func (uc *PrestacaoUseCase) ImportInvoice(xmlContent []byte) (*dto.ImportItemsResponse, error) {
	rows, err := uc.invoices.ParseInvoice(xmlContent)
	if err != nil {
		return nil, err
	}
	out := &dto.ImportItemsResponse{Rows: make([]dto.ImportedRowDTO, 0, len(rows))}
	for _, row := range rows {
		out.Rows = append(out.Rows, dto.ImportedRowDTO{
			Description:      row.Description,
			Quantity:         row.Quantity,
			Unit:             row.Unit,
			WinnerUnitPrice:  row.WinnerUnitPrice,
			CompetitorPrices: row.CompetitorPrices,
		})
	}
	return out, nil
}

// CSVTemplate devolve o modelo de importação e o nome de arquivo sugerido.
func (uc *PrestacaoUseCase) CSVTemplate() ([]byte, string) {
	return prestacao.CSVTemplate(), prestacao.CSVTemplateFilename
}

// Report gera o PDF de Consolidação da Pesquisa de Preços do processo.
func (uc *PrestacaoUseCase) Report(scope visibility.Scope, id string) ([]byte, error) {
	process, err := uc.loadScoped(scope, id)
	if err != nil {
		return nil, err
	}
	school, err := uc.schoolRepo.GetByID(process.SchoolID)
	if err != nil {
		return nil, err
	}
	validationURL := fmt.Sprintf("%s/validar?t=%s", uc.publicURL, process.ReportToken)
	return uc.reports.ConsolidationReport(process, school, validationURL)
}

// ValidateToken é a consulta pública do QR do documento impresso: confirma
// que o processo existe e devolve um resumo sem dados sensíveis.
func (uc *PrestacaoUseCase) ValidateToken(token string) (*dto.ReportValidationResponse, error) {
	if token == "" {
		return &dto.ReportValidationResponse{Valid: false}, nil
	}
	process, err := uc.processRepo.GetByReportToken(token)
	if err != nil {
		return nil, err
	}
	if process == nil {
		return &dto.ReportValidationResponse{Valid: false}, nil
	}
	resp := &dto.ReportValidationResponse{
		Valid:     true,
		ProcessID: process.ID,
		Status:    process.Status,
		UpdatedAt: process.UpdatedAt,
	}
	if process.Entry != nil {
		resp.SchoolName = process.Entry.SchoolName
		resp.Description = process.Entry.Description
	}
	return resp, nil
}

func (uc *PrestacaoUseCase) loadScoped(scope visibility.Scope, id string) (*entity.AccountabilityProcess, error) {
	process, err := uc.processRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if process == nil || !scope.Allows(process.SchoolID) {
		return nil, domain.ErrNotFound
	}
	return process, nil
}

// ToProcessResponse converte o processo para o DTO, recalculando a
// conferência de valores quando o lançamento está carregado.
func ToProcessResponse(p *entity.AccountabilityProcess) *dto.ProcessResponse {
	resp := &dto.ProcessResponse{
		ID:               p.ID,
		FinancialEntryID: p.FinancialEntryID,
		SchoolID:         p.SchoolID,
		Status:           p.Status,
		Discount:         p.Discount,
		ChecklistNotes:   p.ChecklistNotes,
		Attachments:      financeiro.AttachmentsToDTO(p.Attachments),
		CreatedAt:        p.CreatedAt,
		UpdatedAt:        p.UpdatedAt,
	}
	for _, item := range prestacao.NormalizeChecklist(p.Checklist) {
		resp.Checklist = append(resp.Checklist, dto.ChecklistItemDTO{ID: item.ID, Label: item.Label, Checked: item.Checked})
	}
	for _, item := range p.Items {
		resp.Items = append(resp.Items, dto.ProcessItemDTO{
			ID:              item.ID,
			Description:     item.Description,
			Quantity:        item.Quantity,
			Unit:            item.Unit,
			WinnerUnitPrice: item.WinnerUnitPrice,
		})
	}
	for _, quote := range p.Quotes {
		q := dto.QuoteDTO{
			ID:           quote.ID,
			SupplierID:   quote.SupplierID,
			SupplierName: quote.SupplierName,
			SupplierCNPJ: quote.SupplierCNPJ,
			IsWinner:     quote.IsWinner,
			TotalValue:   quote.TotalValue,
		}
		for _, line := range quote.Items {
			q.Items = append(q.Items, dto.QuoteItemDTO{
				ItemID:      line.ItemID,
				Description: line.Description,
				Quantity:    line.Quantity,
				Unit:        line.Unit,
				UnitPrice:   line.UnitPrice,
			})
		}
		resp.Quotes = append(resp.Quotes, q)
	}
	if p.Entry != nil {
		resp.Entry = financeiro.ToEntryResponse(p.Entry)
		rec := prestacao.Reconcile(p.Items, p.Discount, p.Entry.TargetValue())
		resp.Reconciliation = &dto.ReconciliationDTO{
			Subtotal:  rec.Subtotal,
			Discount:  rec.Discount,
			Net:       rec.Net,
			Target:    rec.Target,
			Remaining: rec.Remaining,
			Matched:   rec.Matched,
		}
	}
	return resp
}
