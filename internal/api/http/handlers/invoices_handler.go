package handlers

import (
	"net/http"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/recruiting-pipeline/internal/api/dto"
	"github.com/spec-kit/recruiting-pipeline/internal/auth"
	"github.com/spec-kit/recruiting-pipeline/internal/domain"
	"github.com/spec-kit/recruiting-pipeline/internal/repository"
	"github.com/spec-kit/recruiting-pipeline/internal/service"
	apperrors "github.com/spec-kit/recruiting-pipeline/pkg/util/errorutil"
)

// InvoicesHandler manages invoicing endpoints.
type InvoicesHandler struct {
	service *service.InvoiceService
}

// NewInvoicesHandler constructs handler.
func NewInvoicesHandler(invoiceService *service.InvoiceService) *InvoicesHandler {
	return &InvoicesHandler{service: invoiceService}
}

// CreateInvoice POST /invoices.
func (h *InvoicesHandler) CreateInvoice(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("staff required")
	}
	var req dto.CreateInvoiceRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if req.ClientID == "" {
		return apperrors.NewValidationError("client_id required", nil)
	}
	invoice, err := h.service.CreateInvoice(c.Context(), principal.Staff, service.InvoiceCreateInput{
		ClientID:            req.ClientID,
		CandidateIDs:        req.CandidateIDs,
		BillingSiteIndex:    req.BillingSiteIndex,
		PayoutOption:        req.PayoutOption,
		AgreementPercentage: req.AgreementPercentage,
		FlatPayAmount:       req.FlatPayAmount,
	})
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": invoiceResponse(invoice)})
}

// UpdateStatus PATCH /invoices/:id/status.
func (h *InvoicesHandler) UpdateStatus(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("staff required")
	}
	var req dto.UpdateInvoiceStatusRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	invoice, err := h.service.UpdateStatus(c.Context(), principal.Staff, c.Params("id"), req.Status)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": invoiceResponse(invoice)})
}

// GetInvoice GET /invoices/:id.
func (h *InvoicesHandler) GetInvoice(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("staff required")
	}
	invoice, err := h.service.GetInvoice(c.Context(), principal.Staff, c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": invoiceResponse(invoice)})
}

// ListInvoices GET /invoices.
func (h *InvoicesHandler) ListInvoices(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("staff required")
	}
	filter := repository.InvoiceFilter{}
	if clientID := c.Query("client_id"); clientID != "" {
		filter.ClientID = &clientID
	}
	if statusStr := c.Query("status"); statusStr != "" {
		status := domain.InvoiceStatus(strings.ToUpper(statusStr))
		filter.Status = &status
	}
	filter.CreatedFrom = parseDate(c.Query("created_from"))
	filter.CreatedTo = parseDate(c.Query("created_to"))

	page := parseInt(c.Query("page"), 1)
	pageSize := parseInt(c.Query("page_size"), 50)
	filter.Offset = (page - 1) * pageSize
	filter.Limit = pageSize

	invoices, err := h.service.ListInvoices(c.Context(), principal.Staff, filter)
	if err != nil {
		return err
	}
	items := make([]dto.InvoiceResponse, 0, len(invoices))
	for i := range invoices {
		items = append(items, invoiceResponse(&invoices[i]))
	}
	return c.JSON(fiber.Map{"data": items})
}

func invoiceResponse(invoice *domain.Invoice) dto.InvoiceResponse {
	return dto.InvoiceResponse{
		ID:                  invoice.ID,
		Number:              invoice.Number,
		ClientID:            invoice.ClientID,
		Lines:               invoice.Lines,
		PayoutOption:        invoice.PayoutOption,
		AgreementPercentage: invoice.AgreementPercentage,
		FlatPayAmount:       invoice.FlatPayAmount,
		BillingState:        invoice.BillingState,
		GSTNumber:           invoice.GSTNumber,
		Subtotal:            invoice.Subtotal,
		CGST:                invoice.CGST,
		SGST:                invoice.SGST,
		IGST:                invoice.IGST,
		GrandTotal:          invoice.GrandTotal,
		AmountInWords:       invoice.AmountInWords,
		Status:              invoice.Status,
		CreatedAt:           invoice.CreatedAt,
		UpdatedAt:           invoice.UpdatedAt,
	}
}
