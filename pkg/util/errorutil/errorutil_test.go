package errorutil

import (
	"errors"
	"net/http"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
)

func TestToDomainError(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantCode   string
		wantStatus int
	}{
		{"domain error passes through", NewForbidden("insufficient designation"), "FORBIDDEN", http.StatusForbidden},
		{"unauthorized keeps status", NewUnauthorized("authentication required"), "UNAUTHORIZED", http.StatusUnauthorized},
		{"missing row becomes not found", pgx.ErrNoRows, "NOT_FOUND", http.StatusNotFound},
		{"fiber not found keeps status", fiber.ErrNotFound, "NOT_FOUND", http.StatusNotFound},
		{"fiber forbidden keeps status", fiber.NewError(http.StatusForbidden, "insufficient designation"), "FORBIDDEN", http.StatusForbidden},
		{"fiber payload too large is a request failure", fiber.ErrRequestEntityTooLarge, "REQUEST_FAILED", http.StatusRequestEntityTooLarge},
		{"unknown error becomes internal", errors.New("boom"), "INTERNAL_ERROR", http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			de := ToDomainError(tt.err)
			assert.Equal(t, tt.wantCode, de.Code)
			assert.Equal(t, tt.wantStatus, de.HTTPStatus)
		})
	}
}

func TestToDomainErrorNil(t *testing.T) {
	assert.Nil(t, ToDomainError(nil))
}
