package http

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/sigescola/sigescola-api/internal/application/dto"
	"github.com/sigescola/sigescola-api/internal/domain/entity"
	"github.com/sigescola/sigescola-api/internal/domain/visibility"
	"github.com/sigescola/sigescola-api/pkg/jwt"
)

// Locals keys para os claims e o escopo no Fiber.
const (
	LocalUserID   = "user_id"
	LocalRole     = "role"
	LocalSchoolID = "school_id"
	LocalScope    = "scope"
)

// AuthMiddleware valida o Bearer Token JWT e extrai UserID, Role e SchoolID para c.Locals.
func AuthMiddleware(jwtSecret string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get("Authorization")
		if authHeader == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "MISSING_TOKEN", Message: "header Authorization obrigatório"})
		}
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "INVALID_TOKEN", Message: "formato: Bearer <token>"})
		}
		tokenString := strings.TrimSpace(parts[1])
		if tokenString == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "MISSING_TOKEN", Message: "token vazio"})
		}
		userID, role, schoolID, err := jwt.Parse(jwtSecret, tokenString)
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "INVALID_TOKEN", Message: "token inválido ou expirado"})
		}
		c.Locals(LocalUserID, userID)
		c.Locals(LocalRole, role)
		c.Locals(LocalSchoolID, schoolID)
		return c.Next()
	}
}

// RequireRole autoriza apenas os perfis indicados. Deve ser usado DEPOIS de
// AuthMiddleware (lê o role de c.Locals).
func RequireRole(roles ...string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		role := GetRole(c)
		if role == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "MISSING_ROLE", Message: "token sem perfil de acesso"})
		}
		for _, allowed := range roles {
			if role == allowed {
				return c.Next()
			}
		}
		return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Code: "FORBIDDEN", Message: "perfil sem permissão para esta operação"})
	}
}

// userSource é o contrato mínimo para carregar o usuário ao montar o escopo.
// A interface evita o import circular com o caso de uso de auth.
type userSource interface {
	User(userID string) (*entity.User, error)
}

// ScopeMiddleware calcula o escopo de visibilidade da sessão e o guarda em
// c.Locals. Para os perfis com escola no token o cálculo é local; o Técnico
// GEE precisa da lista de escolas atribuídas, que vem da base.
func ScopeMiddleware(users userSource) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var scope visibility.Scope
		switch GetRole(c) {
		case entity.RoleAdministrador, entity.RoleOperador:
			scope = visibility.All()
		case entity.RoleDiretor, entity.RoleCliente:
			schoolID := GetSchoolID(c)
			if schoolID == "" {
				scope = visibility.None()
			} else {
				scope = visibility.School(schoolID)
			}
		case entity.RoleTecnicoGEE:
			user, err := users.User(GetUserID(c))
			if err != nil {
				return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "INVALID_TOKEN", Message: "usuário do token não encontrado"})
			}
			scope = visibility.ForUser(user)
		default:
			scope = visibility.None()
		}
		c.Locals(LocalScope, scope)
		return c.Next()
	}
}

// GetUserID devolve o UserID do contexto (depois do middleware de auth).
func GetUserID(c *fiber.Ctx) string {
	v := c.Locals(LocalUserID)
	if v == nil {
		return ""
	}
	s, _ := v.(string)
	return s
}

// GetRole devolve o perfil do contexto (depois do middleware de auth).
func GetRole(c *fiber.Ctx) string {
	v := c.Locals(LocalRole)
	if v == nil {
		return ""
	}
	s, _ := v.(string)
	return s
}

// GetSchoolID devolve a escola do token (vazio para perfis sem escola fixa).
func GetSchoolID(c *fiber.Ctx) string {
	v := c.Locals(LocalSchoolID)
	if v == nil {
		return ""
	}
	s, _ := v.(string)
	return s
}

// GetScope devolve o escopo de visibilidade da sessão (depois do ScopeMiddleware).
// Sem escopo no contexto devolve None: nunca degradar para acesso total.
func GetScope(c *fiber.Ctx) visibility.Scope {
	v := c.Locals(LocalScope)
	if v == nil {
		return visibility.None()
	}
	s, ok := v.(visibility.Scope)
	if !ok {
		return visibility.None()
	}
	return s
}
