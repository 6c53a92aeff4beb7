package http_test

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sigescola/sigescola-api/internal/domain/entity"
	"github.com/sigescola/sigescola-api/internal/domain/visibility"
	apphttp "github.com/sigescola/sigescola-api/internal/interfaces/http"
	pkgjwt "github.com/sigescola/sigescola-api/pkg/jwt"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de teste
// ──────────────────────────────────────────────────────────────────────────────

const (
	testJWTSecret = "test-secret-key-for-unit-tests"
	testUserID    = "00000000-0000-0000-0000-000000000001"
	testSchoolID  = "00000000-0000-0000-0000-000000000002"
	testIssuer    = "sigescola-test"
	testExpMin    = 60
)

// buildTestApp constrói uma aplicação Fiber mínima com:
//   - AuthMiddleware para parsear o JWT e carregar os locals
//   - RequireRole para autorizar o acesso
//   - Um handler dummy que devolve 200 se passar pelos middlewares
func buildTestApp(allowedRoles ...string) *fiber.App {
	app := fiber.New(fiber.Config{
		// Silenciar erros internos nos testes
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
		},
	})
	// Rota protegida: JWT + RBAC
	app.Get("/protected",
		apphttp.AuthMiddleware(testJWTSecret),
		apphttp.RequireRole(allowedRoles...),
		func(c *fiber.Ctx) error {
			return c.Status(fiber.StatusOK).JSON(fiber.Map{
				"ok":   true,
				"role": apphttp.GetRole(c),
			})
		},
	)
	return app
}

// tokenForRole gera um JWT com o perfil indicado.
func tokenForRole(t *testing.T, role string) string {
	t.Helper()
	tok, err := pkgjwt.Generate(testJWTSecret, testUserID, role, testSchoolID, testIssuer, testExpMin)
	require.NoError(t, err, "deve gerar um token JWT válido")
	return "Bearer " + tok
}

// doRequest dispara uma requisição GET /protected e devolve a resposta.
func doRequest(t *testing.T, app *fiber.App, authHeader string) *http.Response {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

// ──────────────────────────────────────────────────────────────────────────────
// Testes RequireRole
// ──────────────────────────────────────────────────────────────────────────────

// Caso 1: o usuário tem o perfil exigido → deve passar (HTTP 200).
func TestRequireRole_AdministradorAcessaRotaAdministrador(t *testing.T) {
	app := buildTestApp(entity.RoleAdministrador)
	resp := doRequest(t, app, tokenForRole(t, entity.RoleAdministrador))
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode,
		"Administrador deve acessar rota restrita a Administrador")

	var body map[string]interface{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, true, body["ok"], "a resposta deve incluir ok:true")
	assert.Equal(t, entity.RoleAdministrador, body["role"])
}

// Caso 1b: o usuário tem um dos perfis permitidos (multi-perfil) → HTTP 200.
func TestRequireRole_DiretorAcessaRotaDeEditores(t *testing.T) {
	app := buildTestApp(entity.RoleAdministrador, entity.RoleOperador, entity.RoleDiretor)
	resp := doRequest(t, app, tokenForRole(t, entity.RoleDiretor))
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode,
		"Diretor deve acessar rota que permite Administrador, Operador ou Diretor")
}

// Caso 2: perfil diferente do exigido → HTTP 403 Forbidden.
func TestRequireRole_ClienteBloqueadoEmRotaDaSecretaria(t *testing.T) {
	app := buildTestApp(entity.RoleAdministrador, entity.RoleOperador)
	resp := doRequest(t, app, tokenForRole(t, entity.RoleCliente))
	defer resp.Body.Close()

	assert.Equal(t, http.StatusForbidden, resp.StatusCode,
		"Cliente não deve acessar rota restrita à secretaria")

	body, _ := io.ReadAll(resp.Body)
	assert.Contains(t, string(body), "FORBIDDEN",
		"a resposta de erro deve incluir o código FORBIDDEN")
}

// Caso 2b: Técnico GEE bloqueado em rota só de Diretor → HTTP 403.
func TestRequireRole_TecnicoBloqueadoEmRotaDeDiretor(t *testing.T) {
	app := buildTestApp(entity.RoleDiretor)
	resp := doRequest(t, app, tokenForRole(t, entity.RoleTecnicoGEE))
	defer resp.Body.Close()

	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
}

// Caso 3: token sem claim de perfil → HTTP 401 MISSING_ROLE.
func TestRequireRole_TokenSemPerfil_Retorna401(t *testing.T) {
	app := buildTestApp(entity.RoleAdministrador)
	tok, err := pkgjwt.Generate(testJWTSecret, testUserID, "", testSchoolID, testIssuer, testExpMin)
	require.NoError(t, err)

	resp := doRequest(t, app, "Bearer "+tok)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode,
		"token sem perfil deve retornar 401")

	body, _ := io.ReadAll(resp.Body)
	assert.Contains(t, string(body), "MISSING_ROLE",
		"a resposta deve indicar o código MISSING_ROLE")
}

// Caso 4: sem header Authorization → HTTP 401 MISSING_TOKEN.
func TestRequireRole_SemAuthHeader_Retorna401(t *testing.T) {
	app := buildTestApp(entity.RoleAdministrador)
	resp := doRequest(t, app, "") // sem header
	defer resp.Body.Close()

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

// Caso 5: token inválido / malformado → HTTP 401 INVALID_TOKEN.
func TestRequireRole_TokenInvalido_Retorna401(t *testing.T) {
	app := buildTestApp(entity.RoleAdministrador)
	resp := doRequest(t, app, "Bearer token.invalido.aqui")
	defer resp.Body.Close()

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

// ──────────────────────────────────────────────────────────────────────────────
// Testes AuthMiddleware — extração dos claims do token
// ──────────────────────────────────────────────────────────────────────────────

func TestAuthMiddleware_ExtraiClaims(t *testing.T) {
	app := fiber.New()
	app.Get("/me", apphttp.AuthMiddleware(testJWTSecret), func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"user_id":   apphttp.GetUserID(c),
			"role":      apphttp.GetRole(c),
			"school_id": apphttp.GetSchoolID(c),
		})
	})

	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	req.Header.Set("Authorization", tokenForRole(t, entity.RoleDiretor))
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var body map[string]string
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, testUserID, body["user_id"])
	assert.Equal(t, entity.RoleDiretor, body["role"])
	assert.Equal(t, testSchoolID, body["school_id"])
}

// ──────────────────────────────────────────────────────────────────────────────
// Testes ScopeMiddleware — escopo de visibilidade da sessão
// ──────────────────────────────────────────────────────────────────────────────

// stubUserSource devolve um usuário fixo para o cálculo de escopo do Técnico GEE.
type stubUserSource struct {
	user *entity.User
	err  error
}

func (s *stubUserSource) User(userID string) (*entity.User, error) { return s.user, s.err }

func buildScopeApp(users *stubUserSource) *fiber.App {
	app := fiber.New()
	app.Get("/scope",
		apphttp.AuthMiddleware(testJWTSecret),
		apphttp.ScopeMiddleware(users),
		func(c *fiber.Ctx) error {
			scope := apphttp.GetScope(c)
			return c.JSON(fiber.Map{
				"kind":    int(scope.Kind()),
				"schools": scope.SchoolIDs(),
			})
		},
	)
	return app
}

func TestScopeMiddleware_DiretorEnxergaApenasSuaEscola(t *testing.T) {
	app := buildScopeApp(&stubUserSource{})

	req := httptest.NewRequest(http.MethodGet, "/scope", nil)
	req.Header.Set("Authorization", tokenForRole(t, entity.RoleDiretor))
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	var body struct {
		Kind    int      `json:"kind"`
		Schools []string `json:"schools"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, int(visibility.KindSchool), body.Kind)
	assert.Equal(t, []string{testSchoolID}, body.Schools)
}

func TestScopeMiddleware_TecnicoUsaEscolasAtribuidas(t *testing.T) {
	app := buildScopeApp(&stubUserSource{user: &entity.User{
		ID:              testUserID,
		Role:            entity.RoleTecnicoGEE,
		AssignedSchools: []string{"esc-1", "esc-2"},
	}})

	req := httptest.NewRequest(http.MethodGet, "/scope", nil)
	req.Header.Set("Authorization", tokenForRole(t, entity.RoleTecnicoGEE))
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	var body struct {
		Kind    int      `json:"kind"`
		Schools []string `json:"schools"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, int(visibility.KindSchools), body.Kind)
	assert.Equal(t, []string{"esc-1", "esc-2"}, body.Schools)
}

// ──────────────────────────────────────────────────────────────────────────────
// Testes pkg/jwt — integridade do generate/parse com role e school
// ──────────────────────────────────────────────────────────────────────────────

func TestJWT_GenerateAndParse_ComRoleEEscola(t *testing.T) {
	tok, err := pkgjwt.Generate(testJWTSecret, testUserID, entity.RoleDiretor, testSchoolID, testIssuer, testExpMin)
	require.NoError(t, err)
	require.NotEmpty(t, tok)

	userID, role, schoolID, err := pkgjwt.Parse(testJWTSecret, tok)
	require.NoError(t, err)

	assert.Equal(t, testUserID, userID)
	assert.Equal(t, entity.RoleDiretor, role)
	assert.Equal(t, testSchoolID, schoolID)
}

func TestJWT_TokenExpirado_RetornaErro(t *testing.T) {
	// Token com expiração -1 minuto (já expirado)
	tok, err := pkgjwt.Generate(testJWTSecret, testUserID, entity.RoleAdministrador, testSchoolID, testIssuer, -1)
	require.NoError(t, err)

	_, _, _, err = pkgjwt.Parse(testJWTSecret, tok)
	assert.Error(t, err, "token expirado deve retornar erro")
}

func TestJWT_SecretIncorreto_RetornaErro(t *testing.T) {
	tok, err := pkgjwt.Generate(testJWTSecret, testUserID, entity.RoleAdministrador, testSchoolID, testIssuer, testExpMin)
	require.NoError(t, err)

	_, _, _, err = pkgjwt.Parse("outro-secret-completamente-diferente", tok)
	assert.Error(t, err, "secret incorreto deve invalidar o token")
}
