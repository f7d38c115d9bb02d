package apperr

import (
	"errors"
	"fmt"
	"testing"

	"github.com/gofiber/fiber/v2"
)

func TestStatusCode(t *testing.T) {
	tests := []struct {
		err  error
		want int
	}{
		{ErrNotFound, fiber.StatusNotFound},
		{NotFoundf("project %s", "p1"), fiber.StatusNotFound},
		{Forbiddenf("no"), fiber.StatusForbidden},
		{ErrUnauthorized, fiber.StatusUnauthorized},
		{ErrDuplicateEmail, fiber.StatusConflict},
		{Validationf("bad field"), fiber.StatusBadRequest},
		{errors.New("disk on fire"), fiber.StatusInternalServerError},
		{fmt.Errorf("wrapped: %w", ErrForbidden), fiber.StatusForbidden},
	}

	for _, tt := range tests {
		if got := StatusCode(tt.err); got != tt.want {
			t.Errorf("StatusCode(%v) = %d, want %d", tt.err, got, tt.want)
		}
	}
}

func TestWrappersKeepSentinelAndDetail(t *testing.T) {
	err := NotFoundf("stage %s not found", "s1")
	if !errors.Is(err, ErrNotFound) {
		t.Error("wrapped error lost its sentinel")
	}
	if err.Error() != "not found: stage s1 not found" {
		t.Errorf("message = %q", err.Error())
	}
}
