package prestacao

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/sigescola/sigescola-api/internal/application/dto"
	"github.com/sigescola/sigescola-api/internal/domain"
	"github.com/sigescola/sigescola-api/internal/domain/entity"
	"github.com/sigescola/sigescola-api/internal/domain/prestacao"
	"github.com/sigescola/sigescola-api/internal/domain/repository"
	"github.com/sigescola/sigescola-api/internal/domain/visibility"
)

// SaveProcessUseCase salva o processo de prestação de contas completo em uma
// transação: cabeçalho, itens do vencedor, três cotações e o status do
// lançamento.
type SaveProcessUseCase struct {
	txRunner    TxRunner
	entryRepo   repository.FinancialEntryRepository
	processRepo repository.AccountabilityRepository
}

// NewSaveProcessUseCase constrói o caso de uso.
func NewSaveProcessUseCase(
	txRunner TxRunner,
	entryRepo repository.FinancialEntryRepository,
	processRepo repository.AccountabilityRepository,
) *SaveProcessUseCase {
	return &SaveProcessUseCase{txRunner: txRunner, entryRepo: entryRepo, processRepo: processRepo}
}

// Save cria ou regrava o processo do lançamento. Valida os invariantes do
// comparador (dois proponentes distintos, nenhum igual ao vencedor), roda a
// conferência de valores e exige ConfirmMismatch para salvar divergente.
// Com status Concluído o lançamento vira Consolidado na mesma transação.
func (uc *SaveProcessUseCase) Save(ctx context.Context, scope visibility.Scope, in dto.SaveProcessRequest) (*dto.ProcessResponse, error) {
	entry, err := uc.entryRepo.GetByID(in.FinancialEntryID)
	if err != nil {
		return nil, err
	}
	if entry == nil || !scope.Allows(entry.SchoolID) {
		return nil, domain.ErrNotFound
	}
	if !entry.IsExpense() {
		return nil, domain.ErrEntryNotExpense
	}
	if len(in.Items) == 0 {
		return nil, domain.ErrInvalidInput
	}
	if err := validateCompetitors(entry, in.Competitors); err != nil {
		return nil, err
	}

	items := itemsFromRequest(in.Items)
	rec := prestacao.Reconcile(items, in.Discount, entry.TargetValue())
	if !rec.Matched && !in.ConfirmMismatch {
		return nil, domain.ErrValueMismatch
	}

	status := in.Status
	if status == "" {
		status = entity.ProcessEmAndamento
	}
	if status != entity.ProcessEmAndamento && status != entity.ProcessConcluido {
		return nil, domain.ErrInvalidInput
	}

	existing, err := uc.processRepo.GetByEntryID(entry.ID)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	process := &entity.AccountabilityProcess{
		FinancialEntryID: entry.ID,
		SchoolID:         entry.SchoolID,
		Status:           status,
		Discount:         in.Discount,
		Checklist:        checklistFromRequest(in.Checklist),
		ChecklistNotes:   in.ChecklistNotes,
		Attachments:      attachmentsFromDTO(in.Attachments),
		CreatedAt:        now,
		UpdatedAt:        now,
	}
	if existing != nil {
		process.ID = existing.ID
		process.ReportToken = existing.ReportToken
		process.CreatedAt = existing.CreatedAt
	} else {
		process.ID = uuid.New().String()
		process.ReportToken = uuid.New().String()
	}

	quotes := buildQuotes(entry, items, in.Competitors)

	err = uc.txRunner.Run(ctx, func(
		entryRepo repository.FinancialEntryRepository,
		processRepo repository.AccountabilityRepository,
	) error {
		if existing == nil {
			if err := processRepo.Create(process); err != nil {
				return err
			}
		} else {
			if err := processRepo.Update(process); err != nil {
				return err
			}
		}
		if err := processRepo.ReplaceItems(process.ID, items); err != nil {
			return err
		}
		if err := processRepo.ReplaceQuotes(process.ID, quotes); err != nil {
			return err
		}
		// Concluído consolida o lançamento; reabrir um processo concluído
		// devolve o lançamento para Pago.
		switch {
		case status == entity.ProcessConcluido && entry.Status != entity.StatusConsolidado:
			return entryRepo.UpdateStatus(entry.ID, entity.StatusConsolidado)
		case status == entity.ProcessEmAndamento && entry.Status == entity.StatusConsolidado:
			return entryRepo.UpdateStatus(entry.ID, entity.StatusPago)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	saved, err := uc.processRepo.GetByID(process.ID)
	if err != nil {
		return nil, err
	}
	return ToProcessResponse(saved), nil
}

// validateCompetitors aplica as regras do comparador: dois proponentes com
// fornecedor escolhido, distintos entre si e nenhum igual ao vencedor.
func validateCompetitors(entry *entity.FinancialEntry, competitors [2]dto.CompetitorDTO) error {
	for _, c := range competitors {
		if c.SupplierID == "" && c.SupplierName == "" {
			return domain.ErrCompetitorsMissing
		}
		if c.SupplierID != "" && c.SupplierID == entry.SupplierID {
			return domain.ErrSupplierIsWinner
		}
	}
	a, b := competitors[0], competitors[1]
	if a.SupplierID != "" && a.SupplierID == b.SupplierID {
		return domain.ErrSupplierAlreadyChosen
	}
	if a.SupplierID == "" && b.SupplierID == "" && a.SupplierName == b.SupplierName {
		return domain.ErrSupplierAlreadyChosen
	}
	return nil
}

func itemsFromRequest(in []dto.ProcessItemDTO) []entity.AccountabilityItem {
	items := make([]entity.AccountabilityItem, 0, len(in))
	for _, item := range in {
		id := item.ID
		if id == "" {
			id = uuid.New().String()
		}
		unit := item.Unit
		if unit == "" {
			unit = "Unid."
		}
		items = append(items, entity.AccountabilityItem{
			ID:              id,
			Description:     item.Description,
			Quantity:        item.Quantity,
			Unit:            unit,
			WinnerUnitPrice: item.WinnerUnitPrice,
		})
	}
	return items
}

// buildQuotes monta as três cotações: a do vencedor a partir dos itens e as
// dos concorrentes a partir dos mapas de preço por id de item. Preço ausente
// vale zero, as linhas permanecem alinhadas uma a uma com os itens.
func buildQuotes(entry *entity.FinancialEntry, items []entity.AccountabilityItem, competitors [2]dto.CompetitorDTO) []entity.AccountabilityQuote {
	winner := entity.AccountabilityQuote{
		ID:           uuid.New().String(),
		SupplierID:   entry.SupplierID,
		SupplierName: entry.SupplierName,
		SupplierCNPJ: entry.SupplierCNPJ,
		IsWinner:     true,
	}
	for _, item := range items {
		winner.Items = append(winner.Items, entity.AccountabilityQuoteItem{
			ID:          uuid.New().String(),
			ItemID:      item.ID,
			Description: item.Description,
			Quantity:    item.Quantity,
			Unit:        item.Unit,
			UnitPrice:   item.WinnerUnitPrice,
		})
		winner.TotalValue = winner.TotalValue.Add(item.Subtotal())
	}

	quotes := []entity.AccountabilityQuote{winner}
	for _, c := range competitors {
		quote := entity.AccountabilityQuote{
			ID:           uuid.New().String(),
			SupplierID:   c.SupplierID,
			SupplierName: c.SupplierName,
			SupplierCNPJ: c.SupplierCNPJ,
		}
		for _, item := range items {
			price := decimal.Zero
			if c.Prices != nil {
				price = c.Prices[item.ID]
			}
			quote.Items = append(quote.Items, entity.AccountabilityQuoteItem{
				ID:          uuid.New().String(),
				ItemID:      item.ID,
				Description: item.Description,
				Quantity:    item.Quantity,
				Unit:        item.Unit,
				UnitPrice:   price,
			})
			quote.TotalValue = quote.TotalValue.Add(item.Quantity.Mul(price))
		}
		quotes = append(quotes, quote)
	}
	return quotes
}

func checklistFromRequest(in []dto.ChecklistItemDTO) []entity.ChecklistItem {
	persisted := make([]entity.ChecklistItem, 0, len(in))
	for _, item := range in {
		persisted = append(persisted, entity.ChecklistItem{ID: item.ID, Label: item.Label, Checked: item.Checked})
	}
	return prestacao.NormalizeChecklist(persisted)
}

func attachmentsFromDTO(in []dto.AttachmentDTO) []entity.Attachment {
	if len(in) == 0 {
		return nil
	}
	out := make([]entity.Attachment, 0, len(in))
	for _, a := range in {
		id := a.ID
		if id == "" {
			id = uuid.New().String()
		}
		out = append(out, entity.Attachment{
			ID:       id,
			Name:     a.Name,
			URL:      a.URL,
			Type:     a.Type,
			Size:     a.Size,
			Category: a.Category,
		})
	}
	return out
}
