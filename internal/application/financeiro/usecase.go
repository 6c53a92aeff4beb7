package financeiro

import (
	"time"

	"github.com/sigescola/sigescola-api/internal/application/dto"
	"github.com/sigescola/sigescola-api/internal/domain"
	"github.com/sigescola/sigescola-api/internal/domain/entity"
	"github.com/sigescola/sigescola-api/internal/domain/repository"
	"github.com/sigescola/sigescola-api/internal/domain/visibility"
)

// FinanceiroUseCase casos de uso do livro financeiro: lançamentos de entrada
// e saída, estorno e exclusão.
type FinanceiroUseCase struct {
	entryRepo   repository.FinancialEntryRepository
	processRepo repository.AccountabilityRepository
}

// NewFinanceiroUseCase constrói o caso de uso.
func NewFinanceiroUseCase(entryRepo repository.FinancialEntryRepository, processRepo repository.AccountabilityRepository) *FinanceiroUseCase {
	return &FinanceiroUseCase{entryRepo: entryRepo, processRepo: processRepo}
}

// List devolve os lançamentos do escopo com os filtros pedidos.
func (uc *FinanceiroUseCase) List(scope visibility.Scope, in dto.EntryFilterRequest) ([]dto.EntryResponse, error) {
	in.DefaultPage()
	filter := repository.EntryFilter{
		Scope:     scope,
		SchoolID:  in.SchoolID,
		ProgramID: in.ProgramID,
		RubricID:  in.RubricID,
		Status:    in.Status,
		Type:      in.Type,
		Nature:    in.Nature,
		From:      parseFilterDate(in.From),
		To:        parseFilterDate(in.To),
		Search:    in.Search,
	}
	entries, err := uc.entryRepo.List(filter, in.Limit, in.Offset)
	if err != nil {
		return nil, err
	}
	out := make([]dto.EntryResponse, 0, len(entries))
	for _, entry := range entries {
		out = append(out, *ToEntryResponse(entry))
	}
	return out, nil
}

// parseFilterDate aceita YYYY-MM-DD ou RFC3339; valor vazio ou inválido vira
// nil (filtro ignorado, nunca erro).
func parseFilterDate(s string) *time.Time {
	if s == "" {
		return nil
	}
	if t, err := time.Parse("2006-01-02", s); err == nil {
		return &t
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return &t
	}
	return nil
}

// Get devolve um lançamento do escopo.
func (uc *FinanceiroUseCase) Get(scope visibility.Scope, id string) (*dto.EntryResponse, error) {
	entry, err := uc.entryRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if entry == nil || !scope.Allows(entry.SchoolID) {
		return nil, domain.ErrNotFound
	}
	return ToEntryResponse(entry), nil
}

// Create persiste um lançamento novo. O valor chega positivo e o sinal é
// derivado do tipo: Saída armazena negativo, Entrada positivo.
func (uc *FinanceiroUseCase) Create(scope visibility.Scope, in dto.EntryRequest) (*dto.EntryResponse, error) {
	if !scope.Allows(in.SchoolID) {
		return nil, domain.ErrForbidden
	}
	if in.Description == "" || in.SchoolID == "" || in.Value.IsZero() {
		return nil, domain.ErrInvalidInput
	}
	entry, err := entryFromRequest(in)
	if err != nil {
		return nil, err
	}
	now := time.Now()
	entry.CreatedAt = now
	entry.UpdatedAt = now
	if entry.Status == "" {
		entry.Status = entity.StatusPendente
	}
	if err := uc.entryRepo.Create(entry); err != nil {
		return nil, err
	}
	return uc.Get(scope, entry.ID)
}

// Update regrava um lançamento do escopo, reaplicando o invariante de sinal.
// Lançamento consolidado não é editável: a prestação de contas já foi
// concluída sobre os valores atuais.
func (uc *FinanceiroUseCase) Update(scope visibility.Scope, id string, in dto.EntryRequest) (*dto.EntryResponse, error) {
	current, err := uc.entryRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if current == nil || !scope.Allows(current.SchoolID) {
		return nil, domain.ErrNotFound
	}
	if current.Status == entity.StatusConsolidado {
		return nil, domain.ErrConflict
	}
	if !scope.Allows(in.SchoolID) {
		return nil, domain.ErrForbidden
	}
	entry, err := entryFromRequest(in)
	if err != nil {
		return nil, err
	}
	entry.ID = id
	entry.CreatedAt = current.CreatedAt
	if entry.Status == "" {
		entry.Status = current.Status
	}
	if err := uc.entryRepo.Update(entry); err != nil {
		return nil, err
	}
	return uc.Get(scope, id)
}

// ToggleEstorno alterna o lançamento entre Estornado e Pendente (exclusão
// lógica, disponível a todos os perfis com escrita). Lançamento consolidado
// não pode ser estornado.
func (uc *FinanceiroUseCase) ToggleEstorno(scope visibility.Scope, id string) (*dto.EntryResponse, error) {
	entry, err := uc.entryRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if entry == nil || !scope.Allows(entry.SchoolID) {
		return nil, domain.ErrNotFound
	}
	if entry.Status == entity.StatusConsolidado {
		return nil, domain.ErrConflict
	}
	status := entity.StatusEstornado
	if entry.Status == entity.StatusEstornado {
		status = entity.StatusPendente
	}
	if err := uc.entryRepo.UpdateStatus(id, status); err != nil {
		return nil, err
	}
	return uc.Get(scope, id)
}

// HardDelete exclui o lançamento definitivamente. Só Administrador chega
// aqui (o middleware barra os demais) e o lançamento não pode ter processo
// de prestação de contas.
func (uc *FinanceiroUseCase) HardDelete(id string) error {
	entry, err := uc.entryRepo.GetByID(id)
	if err != nil {
		return err
	}
	if entry == nil {
		return domain.ErrNotFound
	}
	process, err := uc.processRepo.GetByEntryID(id)
	if err != nil {
		return err
	}
	if process != nil {
		return domain.ErrConflict
	}
	return uc.entryRepo.Delete(id)
}

func entryFromRequest(in dto.EntryRequest) (*entity.FinancialEntry, error) {
	value := in.Value.Abs()
	switch in.Type {
	case entity.EntryTypeSaida:
		value = value.Neg()
	case entity.EntryTypeEntrada:
		// positivo
	default:
		return nil, domain.ErrInvalidInput
	}
	entry := &entity.FinancialEntry{
		SchoolID:        in.SchoolID,
		ProgramID:       in.ProgramID,
		RubricID:        in.RubricID,
		SupplierID:      in.SupplierID,
		Description:     in.Description,
		Value:           value,
		Type:            in.Type,
		Status:          in.Status,
		Nature:          in.Nature,
		Category:        in.Category,
		Date:            in.Date,
		InvoiceDate:     in.InvoiceDate,
		PaymentDate:     in.PaymentDate,
		DocumentNumber:  in.DocumentNumber,
		AuthNumber:      in.AuthNumber,
		BankAccountID:   in.BankAccountID,
		PaymentMethodID: in.PaymentMethodID,
		Attachments:     attachmentsFromDTO(in.Attachments),
		UpdatedAt:       time.Now(),
	}
	return entry, nil
}

func attachmentsFromDTO(in []dto.AttachmentDTO) []entity.Attachment {
	if len(in) == 0 {
		return nil
	}
	out := make([]entity.Attachment, 0, len(in))
	for _, a := range in {
		out = append(out, entity.Attachment{
			ID:       a.ID,
			Name:     a.Name,
			URL:      a.URL,
			Type:     a.Type,
			Size:     a.Size,
			Category: a.Category,
		})
	}
	return out
}

// ToEntryResponse converte a entidade para o DTO de resposta.
func ToEntryResponse(e *entity.FinancialEntry) *dto.EntryResponse {
	return &dto.EntryResponse{
		ID:              e.ID,
		SchoolID:        e.SchoolID,
		SchoolName:      e.SchoolName,
		ProgramID:       e.ProgramID,
		ProgramName:     e.ProgramName,
		RubricID:        e.RubricID,
		RubricName:      e.RubricName,
		SupplierID:      e.SupplierID,
		SupplierName:    e.SupplierName,
		SupplierCNPJ:    e.SupplierCNPJ,
		Description:     e.Description,
		Value:           e.Value,
		Type:            e.Type,
		Status:          e.Status,
		Nature:          e.Nature,
		Category:        e.Category,
		Date:            e.Date,
		InvoiceDate:     e.InvoiceDate,
		PaymentDate:     e.PaymentDate,
		DocumentNumber:  e.DocumentNumber,
		AuthNumber:      e.AuthNumber,
		BankAccountID:   e.BankAccountID,
		PaymentMethodID: e.PaymentMethodID,
		Attachments:     AttachmentsToDTO(e.Attachments),
		CreatedAt:       e.CreatedAt,
		UpdatedAt:       e.UpdatedAt,
	}
}

// AttachmentsToDTO converte anexos da entidade para o DTO.
func AttachmentsToDTO(in []entity.Attachment) []dto.AttachmentDTO {
	if len(in) == 0 {
		return nil
	}
	out := make([]dto.AttachmentDTO, 0, len(in))
	for _, a := range in {
		out = append(out, dto.AttachmentDTO{
			ID:       a.ID,
			Name:     a.Name,
			URL:      a.URL,
			Type:     a.Type,
			Size:     a.Size,
			Category: a.Category,
		})
	}
	return out
}
