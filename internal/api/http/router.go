package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/recruiting-pipeline/internal/api/http/handlers"
	"github.com/spec-kit/recruiting-pipeline/internal/auth"
	"github.com/spec-kit/recruiting-pipeline/internal/domain"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health         *handlers.HealthHandler
	Staff          *handlers.StaffHandler
	Clients        *handlers.ClientsHandler
	Jobs           *handlers.JobsHandler
	Candidates     *handlers.CandidatesHandler
	Reports        *handlers.ReportsHandler
	Invoices       *handlers.InvoicesHandler
	Activity       *handlers.ActivityHandler
	AuthMiddleware *auth.AuthMiddleware
}

// RegisterRoutes wires HTTP routes.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)
	app.Get("/health/metrics", cfg.Health.Metrics)

	app.Post("/auth/login", cfg.Staff.Login)

	api := app.Group("", cfg.AuthMiddleware.Handle)
	api.Post("/auth/password/change", cfg.Staff.ChangePassword)

	adminOnly := auth.RequireDesignation(domain.DesignationAdmin)
	financeOnly := auth.RequireDesignation(domain.DesignationAdmin, domain.DesignationFinance)

	staffGroup := api.Group("/staff", adminOnly)
	staffGroup.Post("/", cfg.Staff.CreateStaff)
	staffGroup.Get("/", cfg.Staff.ListStaff)
	staffGroup.Get("/:id", cfg.Staff.GetStaff)
	staffGroup.Put("/:id", cfg.Staff.UpdateStaff)

	clientsGroup := api.Group("/clients")
	clientsGroup.Post("/", adminOnly, cfg.Clients.CreateClient)
	clientsGroup.Put("/:id", adminOnly, cfg.Clients.UpdateClient)
	clientsGroup.Get("/", cfg.Clients.ListClients)
	clientsGroup.Get("/:id", cfg.Clients.GetClient)

	jobsGroup := api.Group("/jobs")
	jobsGroup.Post("/", cfg.Jobs.CreateJob)
	jobsGroup.Get("/", cfg.Jobs.ListJobs)
	jobsGroup.Get("/:id", cfg.Jobs.GetJob)
	jobsGroup.Put("/:id", cfg.Jobs.UpdateJob)

	candidatesGroup := api.Group("/candidates")
	candidatesGroup.Post("/", cfg.Candidates.CreateCandidate)
	candidatesGroup.Get("/", cfg.Candidates.ListCandidates)
	candidatesGroup.Get("/:id", cfg.Candidates.GetCandidate)
	candidatesGroup.Post("/:id/status", cfg.Candidates.ChangeStatus)
	candidatesGroup.Patch("/:id/fields", cfg.Candidates.UpdateFields)

	reportsGroup := api.Group("/reports")
	reportsGroup.Get("/pipeline", cfg.Reports.Pipeline)
	reportsGroup.Get("/pipeline/drilldown", cfg.Reports.Drilldown)
	reportsGroup.Get("/recruiters", cfg.Reports.Recruiters)

	invoicesGroup := api.Group("/invoices", financeOnly)
	invoicesGroup.Post("/", cfg.Invoices.CreateInvoice)
	invoicesGroup.Get("/", cfg.Invoices.ListInvoices)
	invoicesGroup.Get("/:id", cfg.Invoices.GetInvoice)
	invoicesGroup.Patch("/:id/status", cfg.Invoices.UpdateStatus)

	api.Get("/activity", adminOnly, cfg.Activity.ListActivity)
}
