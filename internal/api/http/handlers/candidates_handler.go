package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/recruiting-pipeline/internal/api/dto"
	"github.com/spec-kit/recruiting-pipeline/internal/auth"
	"github.com/spec-kit/recruiting-pipeline/internal/domain"
	"github.com/spec-kit/recruiting-pipeline/internal/service"
	apperrors "github.com/spec-kit/recruiting-pipeline/pkg/util/errorutil"
)

// CandidatesHandler manages candidate pipeline endpoints.
type CandidatesHandler struct {
	service *service.CandidateService
}

// NewCandidatesHandler constructs handler.
func NewCandidatesHandler(candidateService *service.CandidateService) *CandidatesHandler {
	return &CandidatesHandler{service: candidateService}
}

// CreateCandidate POST /candidates.
func (h *CandidatesHandler) CreateCandidate(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("staff required")
	}
	var req dto.CreateCandidateRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if req.JobID == "" {
		return apperrors.NewValidationError("job_id required", nil)
	}
	candidate, err := h.service.CreateCandidate(c.Context(), principal.Staff, service.CandidateCreateInput{
		JobID:         req.JobID,
		Status:        req.Status,
		DynamicFields: req.DynamicFields,
	})
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": candidateResponse(candidate)})
}

// ChangeStatus POST /candidates/:id/status.
func (h *CandidatesHandler) ChangeStatus(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("staff required")
	}
	var req dto.ChangeStatusRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if req.Status == "" {
		return apperrors.NewValidationError("status required", nil)
	}
	candidate, err := h.service.ChangeStatus(c.Context(), principal.Staff, c.Params("id"), service.StatusChangeInput{
		Status:          req.Status,
		Comment:         req.Comment,
		RejectionReason: req.RejectionReason,
		Actor:           req.Actor,
		JoiningDate:     req.JoiningDate,
		SelectionDate:   req.SelectionDate,
	})
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": candidateResponse(candidate)})
}

// UpdateFields PATCH /candidates/:id/fields.
func (h *CandidatesHandler) UpdateFields(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("staff required")
	}
	var req dto.UpdateFieldsRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	candidate, err := h.service.UpdateDynamicFields(c.Context(), principal.Staff, c.Params("id"), req.DynamicFields)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": candidateResponse(candidate)})
}

// GetCandidate GET /candidates/:id.
func (h *CandidatesHandler) GetCandidate(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("staff required")
	}
	candidate, err := h.service.GetCandidate(c.Context(), principal.Staff, c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": candidateResponse(candidate)})
}

// ListCandidates GET /candidates.
func (h *CandidatesHandler) ListCandidates(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("staff required")
	}
	filters := service.CandidateListFilters{}
	if jobID := c.Query("job_id"); jobID != "" {
		filters.JobID = &jobID
	}
	if statusStr := c.Query("status"); statusStr != "" {
		status, valid := domain.NormalizeStatus(statusStr)
		if !valid {
			return apperrors.NewValidationError("unknown status", map[string]any{"status": statusStr})
		}
		filters.Status = &status
	}
	filters.CreatedFrom = parseDate(c.Query("created_from"))
	filters.CreatedTo = parseDate(c.Query("created_to"))
	filters.OwnOnly = c.QueryBool("own_only")

	page := parseInt(c.Query("page"), 1)
	pageSize := parseInt(c.Query("page_size"), 50)
	filters.Offset = (page - 1) * pageSize
	filters.Limit = pageSize

	candidates, err := h.service.ListCandidates(c.Context(), principal.Staff, filters)
	if err != nil {
		return err
	}
	items := make([]dto.CandidateResponse, 0, len(candidates))
	for i := range candidates {
		items = append(items, candidateResponse(&candidates[i]))
	}
	return c.JSON(fiber.Map{"data": items})
}

func candidateResponse(candidate *domain.Candidate) dto.CandidateResponse {
	history := make([]dto.StatusHistoryItem, 0, len(candidate.StatusHistory))
	for _, entry := range candidate.StatusHistory {
		history = append(history, dto.StatusHistoryItem{
			Status:          entry.Status,
			Timestamp:       entry.Timestamp,
			Comment:         entry.Comment,
			RejectionReason: entry.RejectionReason,
			ChangedByID:     entry.ChangedByID,
		})
	}
	return dto.CandidateResponse{
		ID:            candidate.ID,
		JobID:         candidate.JobID,
		CreatedByID:   candidate.CreatedByID,
		Status:        candidate.Status,
		StatusHistory: history,
		RejectedBy:    candidate.RejectedBy,
		DroppedBy:     candidate.DroppedBy,
		JoiningDate:   candidate.JoiningDate,
		SelectionDate: candidate.SelectionDate,
		DynamicFields: candidate.DynamicFields,
		CreatedAt:     candidate.CreatedAt,
		UpdatedAt:     candidate.UpdatedAt,
	}
}
