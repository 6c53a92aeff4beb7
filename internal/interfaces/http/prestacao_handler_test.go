package http_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appprestacao "github.com/sigescola/sigescola-api/internal/application/prestacao"
	"github.com/sigescola/sigescola-api/internal/domain/entity"
	"github.com/sigescola/sigescola-api/internal/domain/visibility"
	apphttp "github.com/sigescola/sigescola-api/internal/interfaces/http"
)

// fakeProcessRepo guarda processos em memória, indexados pelo token do QR.
// Só os métodos usados pela validação pública têm comportamento real.
type fakeProcessRepo struct {
	byToken map[string]*entity.AccountabilityProcess
}

func (f *fakeProcessRepo) Create(*entity.AccountabilityProcess) error               { return nil }
func (f *fakeProcessRepo) Update(*entity.AccountabilityProcess) error               { return nil }
func (f *fakeProcessRepo) ReplaceItems(string, []entity.AccountabilityItem) error   { return nil }
func (f *fakeProcessRepo) ReplaceQuotes(string, []entity.AccountabilityQuote) error { return nil }
func (f *fakeProcessRepo) GetByID(string) (*entity.AccountabilityProcess, error)    { return nil, nil }
func (f *fakeProcessRepo) GetByEntryID(string) (*entity.AccountabilityProcess, error) {
	return nil, nil
}
func (f *fakeProcessRepo) GetByReportToken(token string) (*entity.AccountabilityProcess, error) {
	return f.byToken[token], nil
}
func (f *fakeProcessRepo) List(visibility.Scope, string, int, int) ([]*entity.AccountabilityProcess, error) {
	return nil, nil
}
func (f *fakeProcessRepo) Delete(string) error { return nil }

func buildValidateApp(repo *fakeProcessRepo) *fiber.App {
	uc := appprestacao.NewPrestacaoUseCase(nil, nil, repo, nil, nil, nil, "https://sigescola.example.com")
	handler := apphttp.NewPrestacaoHandler(uc, nil)
	app := fiber.New()
	app.Get("/validar", handler.Validate)
	return app
}

// A rota pública /validar confirma um documento impresso autêntico sem exigir token de acesso.
func TestValidate_TokenConhecidoDevolveResumo(t *testing.T) {
	repo := &fakeProcessRepo{byToken: map[string]*entity.AccountabilityProcess{
		"tok-123": {
			ID:        "proc-1",
			Status:    entity.ProcessConcluido,
			UpdatedAt: time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC),
			Entry: &entity.FinancialEntry{
				SchoolName:  "EM Professora Ana Lima",
				Description: "Compra de gêneros alimentícios",
			},
		},
	}}
	app := buildValidateApp(repo)

	req := httptest.NewRequest(http.MethodGet, "/validar?t=tok-123", nil)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var body struct {
		Valid       bool   `json:"valid"`
		ProcessID   string `json:"process_id"`
		SchoolName  string `json:"school_name"`
		Description string `json:"description"`
		Status      string `json:"status"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.True(t, body.Valid)
	assert.Equal(t, "proc-1", body.ProcessID)
	assert.Equal(t, "EM Professora Ana Lima", body.SchoolName)
	assert.Equal(t, "Compra de gêneros alimentícios", body.Description)
	assert.Equal(t, entity.ProcessConcluido, body.Status)
}

func TestValidate_TokenDesconhecidoNaoValida(t *testing.T) {
	app := buildValidateApp(&fakeProcessRepo{byToken: map[string]*entity.AccountabilityProcess{}})

	req := httptest.NewRequest(http.MethodGet, "/validar?t=nao-existe", nil)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var body map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, false, body["valid"])
	assert.NotContains(t, body, "process_id")
}

func TestValidate_SemTokenNaoValida(t *testing.T) {
	app := buildValidateApp(&fakeProcessRepo{byToken: map[string]*entity.AccountabilityProcess{}})

	req := httptest.NewRequest(http.MethodGet, "/validar", nil)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var body map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, false, body["valid"])
}
