package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/registro-clientes/internal/application/usecase"
)

// Roles reconocidos en el claim "role" del JWT.
const (
	RoleAdmin    = "admin"
	RoleOperador = "operador"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	CustomerUC *usecase.CustomerUseCase
	AuditUC    *usecase.AuditUseCase
	JWTSecret  string
	// ExportDir directorio al que se confinan las exportaciones pedidas por HTTP.
	ExportDir string
}

// Router registra las rutas de la API. Todas requieren Bearer Token.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api", AuthMiddleware(deps.JWTSecret))
	anyRole := RequireRole(RoleAdmin, RoleOperador)
	adminOnly := RequireRole(RoleAdmin)

	customers := api.Group("/customers", anyRole)
	customerHandler := NewCustomerHandler(deps.CustomerUC)
	customers.Post("/", customerHandler.Create)
	customers.Get("/", customerHandler.List)
	customers.Delete("/", adminOnly, customerHandler.Clear)
	customers.Get("/stats", customerHandler.Stats)
	customers.Get("/recent", customerHandler.Recent)
	customers.Get("/phone/:phone", customerHandler.GetByPhone)
	customers.Get("/:id", customerHandler.Get)
	customers.Delete("/:id", customerHandler.Remove)

	audit := api.Group("/audit", anyRole)
	auditHandler := NewAuditHandler(deps.AuditUC, deps.ExportDir)
	audit.Get("/logs", auditHandler.Logs)
	audit.Get("/stats", auditHandler.Stats)
	audit.Post("/export", adminOnly, auditHandler.Export)
}
