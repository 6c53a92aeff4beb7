package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/sigescola/sigescola-api/internal/application/auth"
	"github.com/sigescola/sigescola-api/internal/application/cadastros"
	"github.com/sigescola/sigescola-api/internal/application/cofre"
	"github.com/sigescola/sigescola-api/internal/application/financeiro"
	"github.com/sigescola/sigescola-api/internal/application/notificacoes"
	"github.com/sigescola/sigescola-api/internal/application/prestacao"
	"github.com/sigescola/sigescola-api/internal/domain/entity"
)

// RouterDeps dependências para o router.
type RouterDeps struct {
	AuthUC       *auth.AuthUseCase
	FinanceiroUC *financeiro.FinanceiroUseCase
	PrestacaoUC  *prestacao.PrestacaoUseCase
	SaveProcess  *prestacao.SaveProcessUseCase
	CofreUC      *cofre.CofreUseCase
	CadastrosUC  *cadastros.CadastrosUseCase
	NotificUC    *notificacoes.NotificacoesUseCase
	Storage      uploader
	JWTSecret    string
}

// Router registra as rotas da API.
func Router(app *fiber.App, deps RouterDeps) {
	authHandler := NewAuthHandler(deps.AuthUC)
	financeiroHandler := NewFinanceiroHandler(deps.FinanceiroUC)
	prestacaoHandler := NewPrestacaoHandler(deps.PrestacaoUC, deps.SaveProcess)
	cofreHandler := NewCofreHandler(deps.CofreUC)
	cadastrosHandler := NewCadastrosHandler(deps.CadastrosUC)

	// Validação pública do documento impresso (acessada pelo QR, sem token)
	app.Get("/validar", prestacaoHandler.Validate)

	api := app.Group("/api")

	// Auth (público)
	authGroup := api.Group("/auth")
	authGroup.Post("/register", authHandler.Register)
	authGroup.Post("/login", authHandler.Login)

	// Rotas protegidas: Bearer Token + escopo de visibilidade por sessão
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret), ScopeMiddleware(deps.AuthUC))

	protected.Get("/auth/me", authHandler.Profile)

	// Perfis que editam a prestação de contas da escola
	editores := RequireRole(entity.RoleAdministrador, entity.RoleOperador, entity.RoleDiretor)
	// Perfis da secretaria (cadastros globais)
	secretaria := RequireRole(entity.RoleAdministrador, entity.RoleOperador)

	// Lançamentos financeiros
	lancamentos := protected.Group("/lancamentos")
	lancamentos.Get("/", financeiroHandler.List)
	lancamentos.Post("/", editores, financeiroHandler.Create)
	lancamentos.Get("/:id", financeiroHandler.Get)
	lancamentos.Put("/:id", editores, financeiroHandler.Update)
	lancamentos.Post("/:id/estorno", editores, financeiroHandler.ToggleEstorno)
	lancamentos.Delete("/:id", RequireRole(entity.RoleAdministrador), financeiroHandler.HardDelete)

	// Prestação de contas
	prestacoes := protected.Group("/prestacoes")
	prestacoes.Get("/", prestacaoHandler.List)
	prestacoes.Post("/", editores, prestacaoHandler.Save)
	prestacoes.Get("/lancamentos-disponiveis", prestacaoHandler.AvailableEntries)
	prestacoes.Get("/modelo-csv", prestacaoHandler.CSVTemplate)
	prestacoes.Post("/importar", editores, prestacaoHandler.ImportItems)
	prestacoes.Post("/importar-xml", editores, prestacaoHandler.ImportInvoice)
	prestacoes.Get("/por-lancamento/:entryID", prestacaoHandler.GetByEntry)
	prestacoes.Get("/:id", prestacaoHandler.Get)
	prestacoes.Get("/:id/consolidacao", prestacaoHandler.Report)
	prestacoes.Delete("/:id", editores, prestacaoHandler.Delete)

	// Cofre de documentos: leitura para todos os perfis do escopo; a
	// conferência é feita pela secretaria e pelos técnicos da GEE
	cofreGroup := protected.Group("/cofre")
	cofreGroup.Get("/documentos/:attachmentID/conferencia", cofreHandler.GetChecklist)
	cofreGroup.Put("/documentos/:attachmentID/conferencia",
		RequireRole(entity.RoleAdministrador, entity.RoleOperador, entity.RoleTecnicoGEE),
		cofreHandler.SaveChecklist)
	cofreGroup.Get("/:schoolID", cofreHandler.ListDocuments)

	// Cadastros de apoio
	fornecedores := protected.Group("/fornecedores")
	fornecedores.Get("/", cadastrosHandler.ListSuppliers)
	fornecedores.Post("/", secretaria, cadastrosHandler.CreateSupplier)
	fornecedores.Get("/:id", cadastrosHandler.GetSupplier)
	fornecedores.Put("/:id", secretaria, cadastrosHandler.UpdateSupplier)
	fornecedores.Delete("/:id", secretaria, cadastrosHandler.DeleteSupplier)

	escolas := protected.Group("/escolas")
	escolas.Get("/", cadastrosHandler.ListSchools)
	escolas.Get("/:id", cadastrosHandler.GetSchool)

	programas := protected.Group("/programas")
	programas.Get("/", cadastrosHandler.ListPrograms)
	programas.Get("/:id/rubricas", cadastrosHandler.ListRubrics)

	// Avisos do sino do painel
	notificHandler := NewNotificacoesHandler(deps.NotificUC)
	notificacoesGroup := protected.Group("/notificacoes")
	notificacoesGroup.Get("/", notificHandler.List)
	notificacoesGroup.Post("/", secretaria, notificHandler.Create)
	notificacoesGroup.Post("/lidas", notificHandler.MarkAllRead)
	notificacoesGroup.Post("/:id/lida", notificHandler.MarkRead)

	// Upload de anexos
	if deps.Storage != nil {
		storageHandler := NewStorageHandler(deps.Storage)
		protected.Post("/documentos/upload", editores, storageHandler.Upload)
	}
}
