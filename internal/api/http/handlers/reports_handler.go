package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/recruiting-pipeline/internal/api/dto"
	"github.com/spec-kit/recruiting-pipeline/internal/auth"
	"github.com/spec-kit/recruiting-pipeline/internal/report"
	"github.com/spec-kit/recruiting-pipeline/internal/service"
	apperrors "github.com/spec-kit/recruiting-pipeline/pkg/util/errorutil"
)

// ReportsHandler serves dashboard report endpoints.
type ReportsHandler struct {
	service *service.ReportService
}

// NewReportsHandler constructs handler.
func NewReportsHandler(reportService *service.ReportService) *ReportsHandler {
	return &ReportsHandler{service: reportService}
}

// Pipeline GET /reports/pipeline.
func (h *ReportsHandler) Pipeline(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("staff required")
	}
	query, err := parseReportQuery(c)
	if err != nil {
		return err
	}
	out, err := h.service.PipelineReport(c.Context(), principal.Staff, query)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": out})
}

// Recruiters GET /reports/recruiters.
func (h *ReportsHandler) Recruiters(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("staff required")
	}
	query, err := parseReportQuery(c)
	if err != nil {
		return err
	}
	out, err := h.service.RecruiterReport(c.Context(), principal.Staff, query)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": out})
}

// Drilldown GET /reports/pipeline/drilldown.
func (h *ReportsHandler) Drilldown(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("staff required")
	}
	bucket := c.Query("bucket")
	if bucket == "" {
		return apperrors.NewValidationError("bucket required", nil)
	}
	query, err := parseReportQuery(c)
	if err != nil {
		return err
	}
	candidates, err := h.service.Drilldown(c.Context(), principal.Staff, query, c.Query("job_id"), bucket)
	if err != nil {
		return err
	}
	items := make([]dto.CandidateResponse, 0, len(candidates))
	for i := range candidates {
		items = append(items, candidateResponse(&candidates[i]))
	}
	return c.JSON(fiber.Map{"data": items})
}

func parseReportQuery(c *fiber.Ctx) (service.ReportQuery, error) {
	query := service.ReportQuery{
		From:           parseDate(c.Query("from")),
		To:             parseDate(c.Query("to")),
		DatesReceived:  splitCSV(c.Query("dates_received")),
		ClientNames:    splitCSV(c.Query("clients")),
		JobTitles:      splitCSV(c.Query("job_titles")),
		RecruiterNames: splitCSV(c.Query("recruiters")),
		OwnOnly:        c.QueryBool("own_only"),
	}
	switch mode := c.Query("mode"); mode {
	case "", string(report.ModeCreation):
		query.Mode = report.ModeCreation
	case string(report.ModeStatus):
		query.Mode = report.ModeStatus
	default:
		return service.ReportQuery{}, apperrors.NewValidationError("unknown temporal mode", map[string]any{"mode": mode})
	}
	return query, nil
}
