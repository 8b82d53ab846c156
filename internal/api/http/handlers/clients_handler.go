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

// ClientsHandler manages client endpoints.
type ClientsHandler struct {
	service *service.JobService
}

// NewClientsHandler constructs handler.
func NewClientsHandler(jobService *service.JobService) *ClientsHandler {
	return &ClientsHandler{service: jobService}
}

// CreateClient POST /clients.
func (h *ClientsHandler) CreateClient(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("staff required")
	}
	var req dto.CreateClientRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	client, err := h.service.CreateClient(c.Context(), principal.Staff, service.ClientInput{
		CompanyName:         req.CompanyName,
		PayoutOption:        req.PayoutOption,
		AgreementPercentage: req.AgreementPercentage,
		FlatPayAmount:       req.FlatPayAmount,
		BillingSites:        req.BillingSites,
	})
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": clientResponse(client)})
}

// UpdateClient PUT /clients/:id.
func (h *ClientsHandler) UpdateClient(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("staff required")
	}
	var req dto.CreateClientRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	client, err := h.service.UpdateClient(c.Context(), principal.Staff, c.Params("id"), service.ClientInput{
		CompanyName:         req.CompanyName,
		PayoutOption:        req.PayoutOption,
		AgreementPercentage: req.AgreementPercentage,
		FlatPayAmount:       req.FlatPayAmount,
		BillingSites:        req.BillingSites,
	})
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": clientResponse(client)})
}

// GetClient GET /clients/:id.
func (h *ClientsHandler) GetClient(c *fiber.Ctx) error {
	client, err := h.service.GetClient(c.Context(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": clientResponse(client)})
}

// ListClients GET /clients.
func (h *ClientsHandler) ListClients(c *fiber.Ctx) error {
	clients, err := h.service.ListClients(c.Context())
	if err != nil {
		return err
	}
	items := make([]dto.ClientResponse, 0, len(clients))
	for i := range clients {
		items = append(items, clientResponse(&clients[i]))
	}
	return c.JSON(fiber.Map{"data": items})
}

func clientResponse(client *domain.Client) dto.ClientResponse {
	return dto.ClientResponse{
		ID:                  client.ID,
		CompanyName:         client.CompanyName,
		PayoutOption:        client.PayoutOption,
		AgreementPercentage: client.AgreementPercentage,
		FlatPayAmount:       client.FlatPayAmount,
		BillingSites:        client.BillingSites,
		CreatedAt:           client.CreatedAt,
		UpdatedAt:           client.UpdatedAt,
	}
}
