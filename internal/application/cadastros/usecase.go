// Package cadastros cobre os cadastros de apoio da prestação de contas:
// fornecedores, escolas, programas de repasse e rubricas.
package cadastros

import (
	"strings"

	"github.com/google/uuid"

	"github.com/sigescola/sigescola-api/internal/application/dto"
	"github.com/sigescola/sigescola-api/internal/domain"
	"github.com/sigescola/sigescola-api/internal/domain/entity"
	"github.com/sigescola/sigescola-api/internal/domain/repository"
	"github.com/sigescola/sigescola-api/internal/domain/visibility"
)

// CadastrosUseCase orquestra os cadastros de apoio.
type CadastrosUseCase struct {
	supplierRepo repository.SupplierRepository
	schoolRepo   repository.SchoolRepository
	programRepo  repository.ProgramRepository
}

// NewCadastrosUseCase constrói o caso de uso.
func NewCadastrosUseCase(
	supplierRepo repository.SupplierRepository,
	schoolRepo repository.SchoolRepository,
	programRepo repository.ProgramRepository,
) *CadastrosUseCase {
	return &CadastrosUseCase{supplierRepo: supplierRepo, schoolRepo: schoolRepo, programRepo: programRepo}
}

// CreateSupplier cadastra um fornecedor. CNPJ é único.
func (uc *CadastrosUseCase) CreateSupplier(in dto.SupplierRequest) (*dto.SupplierResponse, error) {
	if strings.TrimSpace(in.Name) == "" || strings.TrimSpace(in.CNPJ) == "" {
		return nil, domain.ErrInvalidInput
	}
	s := supplierFromRequest(in)
	s.ID = uuid.New().String()
	if err := uc.supplierRepo.Create(s); err != nil {
		return nil, err
	}
	return toSupplierResponse(s), nil
}

// GetSupplier busca um fornecedor pelo ID.
func (uc *CadastrosUseCase) GetSupplier(id string) (*dto.SupplierResponse, error) {
	s, err := uc.supplierRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if s == nil {
		return nil, domain.ErrNotFound
	}
	return toSupplierResponse(s), nil
}

// UpdateSupplier atualiza os dados de um fornecedor.
func (uc *CadastrosUseCase) UpdateSupplier(id string, in dto.SupplierRequest) (*dto.SupplierResponse, error) {
	if strings.TrimSpace(in.Name) == "" || strings.TrimSpace(in.CNPJ) == "" {
		return nil, domain.ErrInvalidInput
	}
	current, err := uc.supplierRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if current == nil {
		return nil, domain.ErrNotFound
	}
	s := supplierFromRequest(in)
	s.ID = current.ID
	if err := uc.supplierRepo.Update(s); err != nil {
		return nil, err
	}
	return toSupplierResponse(s), nil
}

// ListSuppliers lista fornecedores, com busca opcional por nome ou CNPJ.
func (uc *CadastrosUseCase) ListSuppliers(search string, page dto.PageRequest) ([]dto.SupplierResponse, error) {
	page.DefaultPage()
	suppliers, err := uc.supplierRepo.List(strings.TrimSpace(search), page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	out := make([]dto.SupplierResponse, 0, len(suppliers))
	for _, s := range suppliers {
		out = append(out, *toSupplierResponse(s))
	}
	return out, nil
}

// DeleteSupplier remove um fornecedor do cadastro.
func (uc *CadastrosUseCase) DeleteSupplier(id string) error {
	s, err := uc.supplierRepo.GetByID(id)
	if err != nil {
		return err
	}
	if s == nil {
		return domain.ErrNotFound
	}
	return uc.supplierRepo.Delete(id)
}

// ListSchools lista as escolas visíveis no escopo do usuário.
func (uc *CadastrosUseCase) ListSchools(scope visibility.Scope) ([]dto.SchoolResponse, error) {
	schools, err := uc.schoolRepo.List(scope)
	if err != nil {
		return nil, err
	}
	out := make([]dto.SchoolResponse, 0, len(schools))
	for _, s := range schools {
		out = append(out, *toSchoolResponse(s))
	}
	return out, nil
}

// GetSchool busca uma escola do escopo pelo ID.
func (uc *CadastrosUseCase) GetSchool(scope visibility.Scope, id string) (*dto.SchoolResponse, error) {
	s, err := uc.schoolRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if s == nil || !scope.Allows(s.ID) {
		return nil, domain.ErrNotFound
	}
	return toSchoolResponse(s), nil
}

// ListPrograms lista os programas de repasse.
func (uc *CadastrosUseCase) ListPrograms() ([]dto.ProgramResponse, error) {
	programs, err := uc.programRepo.List()
	if err != nil {
		return nil, err
	}
	out := make([]dto.ProgramResponse, 0, len(programs))
	for _, p := range programs {
		out = append(out, dto.ProgramResponse{ID: p.ID, Name: p.Name, Description: p.Description})
	}
	return out, nil
}

// ListRubrics lista as rubricas de um programa.
func (uc *CadastrosUseCase) ListRubrics(programID string) ([]dto.RubricResponse, error) {
	if programID == "" {
		return nil, domain.ErrInvalidInput
	}
	rubrics, err := uc.programRepo.ListRubricsByProgram(programID)
	if err != nil {
		return nil, err
	}
	out := make([]dto.RubricResponse, 0, len(rubrics))
	for _, r := range rubrics {
		out = append(out, dto.RubricResponse{
			ID:            r.ID,
			ProgramID:     r.ProgramID,
			Name:          r.Name,
			DefaultNature: r.DefaultNature,
			SchoolID:      r.SchoolID,
		})
	}
	return out, nil
}

func supplierFromRequest(in dto.SupplierRequest) *entity.Supplier {
	s := &entity.Supplier{
		Name:     strings.TrimSpace(in.Name),
		CNPJ:     strings.TrimSpace(in.CNPJ),
		Email:    strings.TrimSpace(in.Email),
		Phone:    strings.TrimSpace(in.Phone),
		CEP:      strings.TrimSpace(in.CEP),
		Address:  strings.TrimSpace(in.Address),
		City:     strings.TrimSpace(in.City),
		UF:       strings.ToUpper(strings.TrimSpace(in.UF)),
		StampURL: in.StampURL,
	}
	if in.BankInfo != nil {
		s.BankInfo = &entity.BankInfo{Bank: in.BankInfo.Bank, Agency: in.BankInfo.Agency, Account: in.BankInfo.Account}
	}
	return s
}

func toSupplierResponse(s *entity.Supplier) *dto.SupplierResponse {
	out := &dto.SupplierResponse{
		ID:       s.ID,
		Name:     s.Name,
		CNPJ:     s.CNPJ,
		Email:    s.Email,
		Phone:    s.Phone,
		CEP:      s.CEP,
		Address:  s.Address,
		City:     s.City,
		UF:       s.UF,
		StampURL: s.StampURL,
	}
	if s.BankInfo != nil {
		out.BankInfo = &dto.BankInfoDTO{Bank: s.BankInfo.Bank, Agency: s.BankInfo.Agency, Account: s.BankInfo.Account}
	}
	return out
}

func toSchoolResponse(s *entity.School) *dto.SchoolResponse {
	return &dto.SchoolResponse{
		ID:              s.ID,
		Name:            s.Name,
		INEP:            s.INEP,
		CNPJ:            s.CNPJ,
		ConselhoEscolar: s.ConselhoEscolar,
		Director:        s.Director,
		City:            s.City,
		UF:              s.UF,
		GEE:             s.GEE,
		ImageURL:        s.ImageURL,
	}
}
