package handlers

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/recruiting-pipeline/internal/api/dto"
	"github.com/spec-kit/recruiting-pipeline/internal/auth"
	"github.com/spec-kit/recruiting-pipeline/internal/domain"
	"github.com/spec-kit/recruiting-pipeline/internal/repository"
	"github.com/spec-kit/recruiting-pipeline/internal/service"
	apperrors "github.com/spec-kit/recruiting-pipeline/pkg/util/errorutil"
)

// ActivityHandler serves the audit trail.
type ActivityHandler struct {
	service *service.ActivityService
}

// NewActivityHandler constructs handler.
func NewActivityHandler(activityService *service.ActivityService) *ActivityHandler {
	return &ActivityHandler{service: activityService}
}

// ListActivity GET /activity.
func (h *ActivityHandler) ListActivity(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("staff required")
	}
	filter := repository.ActivityFilter{}
	if typeStr := c.Query("type"); typeStr != "" {
		activityType := domain.ActivityType(strings.ToUpper(typeStr))
		filter.Type = &activityType
	}
	if actorID := c.Query("actor_id"); actorID != "" {
		filter.ActorID = &actorID
	}
	if subjectID := c.Query("subject_id"); subjectID != "" {
		filter.SubjectID = &subjectID
	}
	if jobID := c.Query("job_id"); jobID != "" {
		filter.JobID = &jobID
	}
	filter.CreatedFrom = parseDate(c.Query("created_from"))
	filter.CreatedTo = parseDate(c.Query("created_to"))

	page := parseInt(c.Query("page"), 1)
	pageSize := parseInt(c.Query("page_size"), 50)
	filter.Offset = (page - 1) * pageSize
	filter.Limit = pageSize

	entries, err := h.service.ListActivity(c.Context(), principal.Staff, filter)
	if err != nil {
		return err
	}
	items := make([]dto.ActivityResponse, 0, len(entries))
	for _, entry := range entries {
		items = append(items, dto.ActivityResponse{
			ID:        entry.ID,
			Type:      entry.Type,
			ActorID:   entry.ActorID,
			SubjectID: entry.SubjectID,
			JobID:     entry.JobID,
			Detail:    entry.Detail,
			CreatedAt: entry.CreatedAt,
		})
	}
	return c.JSON(fiber.Map{"data": items})
}
