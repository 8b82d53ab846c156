package auth

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/recruiting-pipeline/internal/domain"
	apperrors "github.com/spec-kit/recruiting-pipeline/pkg/util/errorutil"
)

// RequireDesignation ensures the principal holds one of the allowed
// designations. With no arguments it only requires authentication.
func RequireDesignation(allowed ...domain.Designation) fiber.Handler {
	allowedSet := make(map[domain.Designation]struct{}, len(allowed))
	for _, designation := range allowed {
		allowedSet[designation] = struct{}{}
	}

	return func(c *fiber.Ctx) error {
		principal, ok := PrincipalFromContext(c)
		if !ok || principal.Staff == nil {
			return apperrors.NewUnauthorized("authentication required")
		}
		if len(allowedSet) == 0 {
			return c.Next()
		}
		if _, exists := allowedSet[principal.Designation]; !exists {
			return apperrors.NewForbidden("insufficient designation")
		}
		return c.Next()
	}
}
