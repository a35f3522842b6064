package apperr_test

import (
	"errors"
	"fmt"
	"io"
	"net/http/httptest"
	"testing"

	"order-menu/core/apperr"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatus(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"Validation", apperr.Validation("Items must be an array"), fiber.StatusBadRequest},
		{"Wrapped validation", fmt.Errorf("decode: %w", apperr.Validation("bad")), fiber.StatusBadRequest},
		{"NotFound", apperr.NotFound("Order not found"), fiber.StatusNotFound},
		{"Storage", apperr.Storage(errors.New("connection reset")), fiber.StatusInternalServerError},
		{"Plain", errors.New("boom"), fiber.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, apperr.Status(tt.err))
		})
	}
}

func TestStorage(t *testing.T) {
	assert.Nil(t, apperr.Storage(nil))

	cause := errors.New("deadlock")
	wrapped := apperr.Storage(cause)
	assert.ErrorIs(t, wrapped, cause)
	assert.Equal(t, "deadlock", wrapped.Error())
	assert.Same(t, wrapped, apperr.Storage(wrapped))
}

func TestRespond(t *testing.T) {
	app := fiber.New()
	app.Get("/", func(c *fiber.Ctx) error {
		return apperr.Respond(c, apperr.NotFound("Order not found"))
	})

	resp, err := app.Test(httptest.NewRequest("GET", "/", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)

	body, _ := io.ReadAll(resp.Body)
	assert.JSONEq(t, `{"error":"Order not found"}`, string(body))
}
