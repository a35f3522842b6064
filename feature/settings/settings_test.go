package settings_test

import (
	"context"
	"encoding/json"
	"io"
	"net/http/httptest"
	"strings"
	"testing"

	"order-menu/core/database"
	"order-menu/feature/settings"
	"order-menu/feature/settings/models"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func setup(t *testing.T) (*settings.Service, *fiber.App) {
	t.Helper()
	db, err := database.Connect(database.Config{Driver: database.DriverSQLite, Name: ":memory:"})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.Setting{}))
	t.Cleanup(func() { _ = database.Close(db) })

	feature := settings.NewFeature(db, zap.NewNop())
	app := fiber.New()
	require.NoError(t, feature.Load(app.Group("/api")))
	return feature.Service(), app
}

func do(t *testing.T, app *fiber.App, method, body string) (int, string) {
	t.Helper()
	var r io.Reader
	if body != "" {
		r = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, "/api/settings/hiddenRestaurants", r)
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	require.NoError(t, err)
	raw, _ := io.ReadAll(resp.Body)
	return resp.StatusCode, string(raw)
}

func TestHiddenRestaurants_GetBeforePut(t *testing.T) {
	_, app := setup(t)

	status, body := do(t, app, "GET", "")
	assert.Equal(t, fiber.StatusOK, status)
	assert.JSONEq(t, `{"restaurants":[]}`, body)
}

func TestHiddenRestaurants_PutThenGet(t *testing.T) {
	_, app := setup(t)

	status, body := do(t, app, "PUT", `{"restaurants":["A","B"]}`)
	require.Equal(t, fiber.StatusOK, status)
	assert.JSONEq(t, `{"success":true,"message":"Hidden restaurants saved"}`, body)

	_, body = do(t, app, "GET", "")
	assert.JSONEq(t, `{"restaurants":["A","B"]}`, body)

	do(t, app, "PUT", `{"restaurants":[]}`)
	_, body = do(t, app, "GET", "")
	assert.JSONEq(t, `{"restaurants":[]}`, body)
}

func TestHiddenRestaurants_Validation(t *testing.T) {
	_, app := setup(t)

	for _, payload := range []string{`{}`, `{"restaurants":"A"}`, `{"restaurants":{"A":true}}`, `not json`} {
		status, body := do(t, app, "PUT", payload)
		assert.Equal(t, fiber.StatusBadRequest, status, payload)
		assert.JSONEq(t, `{"error":"Restaurants must be an array"}`, body)
	}
}

func TestService_SeedDoesNotClobber(t *testing.T) {
	svc, _ := setup(t)
	ctx := context.Background()

	require.NoError(t, svc.Seed(ctx, models.HiddenRestaurantsKey, database.JSON(`[]`)))
	require.NoError(t, svc.SetHiddenRestaurants(ctx, database.JSON(`["Noodle Bar"]`)))
	require.NoError(t, svc.Seed(ctx, models.HiddenRestaurantsKey, database.JSON(`[]`)))

	value, err := svc.FetchOrdered(ctx)
	require.NoError(t, err)
	var names []string
	require.NoError(t, json.Unmarshal(value, &names))
	assert.Equal(t, []string{"Noodle Bar"}, names)

	_, found, err := svc.Get(ctx, "unknown")
	require.NoError(t, err)
	assert.False(t, found)
}
