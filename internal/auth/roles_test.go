package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/recruiting-pipeline/internal/domain"
	apperrors "github.com/spec-kit/recruiting-pipeline/pkg/util/errorutil"
)

// guardApp wires the designation guard behind a principal-injecting handler
// and an error handler that renders the mapped status, as the server does.
func guardApp(principal *Principal, guard fiber.Handler) *fiber.App {
	app := fiber.New(fiber.Config{
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			de := apperrors.ToDomainError(err)
			return c.Status(de.HTTPStatus).JSON(fiber.Map{"code": de.Code})
		},
	})
	app.Get("/guarded",
		func(c *fiber.Ctx) error {
			if principal != nil {
				c.Locals(principalKey, principal)
			}
			return c.Next()
		},
		guard,
		func(c *fiber.Ctx) error { return c.SendStatus(http.StatusNoContent) },
	)
	return app
}

func TestRequireDesignationStatusCodes(t *testing.T) {
	adminPrincipal := &Principal{
		Staff:       &domain.StaffUser{ID: "stf-1", Designation: domain.DesignationAdmin, Active: true},
		Designation: domain.DesignationAdmin,
	}
	recruiterPrincipal := &Principal{
		Staff:       &domain.StaffUser{ID: "stf-2", Designation: domain.DesignationRecruiter, Active: true},
		Designation: domain.DesignationRecruiter,
	}

	tests := []struct {
		name       string
		principal  *Principal
		guard      fiber.Handler
		wantStatus int
	}{
		{"no principal is unauthorized", nil, RequireDesignation(domain.DesignationAdmin), http.StatusUnauthorized},
		{"wrong designation is forbidden", recruiterPrincipal, RequireDesignation(domain.DesignationAdmin), http.StatusForbidden},
		{"allowed designation passes", adminPrincipal, RequireDesignation(domain.DesignationAdmin), http.StatusNoContent},
		{"no designations means auth only", recruiterPrincipal, RequireDesignation(), http.StatusNoContent},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app := guardApp(tt.principal, tt.guard)
			resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/guarded", nil))
			require.NoError(t, err)
			assert.Equal(t, tt.wantStatus, resp.StatusCode)
		})
	}
}
