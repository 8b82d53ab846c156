package handlers

import (
	"net/http"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/recruiting-pipeline/internal/api/dto"
	"github.com/spec-kit/recruiting-pipeline/internal/auth"
	"github.com/spec-kit/recruiting-pipeline/internal/domain"
	"github.com/spec-kit/recruiting-pipeline/internal/service"
	apperrors "github.com/spec-kit/recruiting-pipeline/pkg/util/errorutil"
)

// JobsHandler manages job endpoints.
type JobsHandler struct {
	service *service.JobService
}

// NewJobsHandler constructs handler.
func NewJobsHandler(jobService *service.JobService) *JobsHandler {
	return &JobsHandler{service: jobService}
}

// CreateJob POST /jobs.
func (h *JobsHandler) CreateJob(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("staff required")
	}
	var req dto.CreateJobRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	job, err := h.service.CreateJob(c.Context(), principal.Staff, service.JobCreateInput{
		Title:         req.Title,
		ClientID:      req.ClientID,
		RecruiterIDs:  req.RecruiterIDs,
		NoOfPositions: req.NoOfPositions,
	})
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": jobResponse(job)})
}

// UpdateJob PUT /jobs/:id.
func (h *JobsHandler) UpdateJob(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("staff required")
	}
	var req dto.UpdateJobRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	job, err := h.service.UpdateJob(c.Context(), principal.Staff, c.Params("id"), service.JobUpdateInput{
		Title:         req.Title,
		RecruiterIDs:  req.RecruiterIDs,
		Status:        req.Status,
		NoOfPositions: req.NoOfPositions,
	})
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": jobResponse(job)})
}

// GetJob GET /jobs/:id.
func (h *JobsHandler) GetJob(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("staff required")
	}
	job, err := h.service.GetJob(c.Context(), principal.Staff, c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": jobResponse(job)})
}

// ListJobs GET /jobs.
func (h *JobsHandler) ListJobs(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("staff required")
	}
	filters := service.JobListFilters{}
	if clientID := c.Query("client_id"); clientID != "" {
		filters.ClientID = &clientID
	}
	if statusStr := c.Query("status"); statusStr != "" {
		for _, part := range splitCSV(statusStr) {
			filters.Statuses = append(filters.Statuses, domain.JobStatus(strings.ToUpper(part)))
		}
	}
	if search := c.Query("search"); search != "" {
		filters.SearchTerm = &search
	}
	filters.CreatedFrom = parseDate(c.Query("created_from"))
	filters.CreatedTo = parseDate(c.Query("created_to"))

	page := parseInt(c.Query("page"), 1)
	pageSize := parseInt(c.Query("page_size"), 50)
	filters.Offset = (page - 1) * pageSize
	filters.Limit = pageSize

	jobs, err := h.service.ListJobs(c.Context(), principal.Staff, filters)
	if err != nil {
		return err
	}
	items := make([]dto.JobResponse, 0, len(jobs))
	for i := range jobs {
		items = append(items, jobResponse(&jobs[i]))
	}
	return c.JSON(fiber.Map{"data": items})
}

func jobResponse(job *domain.Job) dto.JobResponse {
	return dto.JobResponse{
		ID:            job.ID,
		Title:         job.Title,
		ClientID:      job.ClientID,
		CreatedByID:   job.CreatedByID,
		RecruiterIDs:  job.RecruiterIDs,
		Status:        job.Status,
		NoOfPositions: job.NoOfPositions,
		CreatedAt:     job.CreatedAt,
		UpdatedAt:     job.UpdatedAt,
	}
}
