package menu_test

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http/httptest"
	"strings"
	"testing"

	"order-menu/core/database"
	"order-menu/core/reconcile"
	"order-menu/feature/menu"
	"order-menu/feature/menu/models"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func setup(t *testing.T) (*gorm.DB, *menu.Service, *fiber.App) {
	t.Helper()
	db, err := database.Connect(database.Config{Driver: database.DriverSQLite, Name: ":memory:"})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.Item{}))
	t.Cleanup(func() { _ = database.Close(db) })

	feature := menu.NewFeature(db, reconcile.New(db, zap.NewNop()), zap.NewNop())
	app := fiber.New()
	require.True(t, feature.IsEnabled())
	require.NoError(t, feature.Load(app.Group("/api")))
	return db, feature.Service(), app
}

func post(t *testing.T, app *fiber.App, url, body string) (int, map[string]any) {
	t.Helper()
	req := httptest.NewRequest("POST", url, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	raw, _ := io.ReadAll(resp.Body)
	out := map[string]any{}
	require.NoError(t, json.Unmarshal(raw, &out), string(raw))
	return resp.StatusCode, out
}

func list(t *testing.T, app *fiber.App) []models.Item {
	t.Helper()
	resp, err := app.Test(httptest.NewRequest("GET", "/api/menu-items", nil))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	var body menu.ListResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	return body.Items
}

func itemsJSON(from, to int) string {
	parts := make([]string, 0, to-from+1)
	for i := from; i <= to; i++ {
		parts = append(parts, fmt.Sprintf(`{"id":%d,"name":"dish %d","tag":"Noodle Bar","price":%d}`, i, i, i*3))
	}
	return "[" + strings.Join(parts, ",") + "]"
}

func TestHandleSave_ReplacesMenu(t *testing.T) {
	_, _, app := setup(t)

	status, body := post(t, app, "/api/menu-items", `{"items":`+itemsJSON(1, 5)+`}`)
	require.Equal(t, fiber.StatusOK, status)
	assert.Equal(t, true, body["success"])
	assert.Equal(t, "Saved 5 menu items", body["message"])

	status, _ = post(t, app, "/api/menu-items", `{"items":[{"id":"2","name":"Beef Noodles","category":"Mains","image":"data:image/png;base64,AAAA"}]}`)
	require.Equal(t, fiber.StatusOK, status)

	items := list(t, app)
	require.Len(t, items, 1)
	assert.Equal(t, 2, items[0].ID)
	assert.Equal(t, "Beef Noodles", items[0].Name)
	require.NotNil(t, items[0].Category)
	assert.Equal(t, "Mains", *items[0].Category)
	assert.Nil(t, items[0].Tag)
	assert.Equal(t, models.DefaultCountry, items[0].Country)
}

func TestHandleSave_MigrationBatchesAccumulate(t *testing.T) {
	_, _, app := setup(t)

	status, _ := post(t, app, "/api/menu-items?migration=true", `{"items":`+itemsJSON(1, 10)+`}`)
	require.Equal(t, fiber.StatusOK, status)
	status, _ = post(t, app, "/api/menu-items", `{"items":`+itemsJSON(11, 20)+`,"migration":true}`)
	require.Equal(t, fiber.StatusOK, status)

	items := list(t, app)
	require.Len(t, items, 20)
	for i, item := range items {
		assert.Equal(t, i+1, item.ID)
	}
	require.NotNil(t, items[4].Price)
	assert.Equal(t, "15", *items[4].Price)
}

func TestHandleSave_BlankValuesStoredEmpty(t *testing.T) {
	_, _, app := setup(t)

	status, _ := post(t, app, "/api/menu-items", `{"items":[{"id":1,"name":false,"tag":0,"price":0,"country":false},{"id":2,"name":0,"category":""}]}`)
	require.Equal(t, fiber.StatusOK, status)

	items := list(t, app)
	require.Len(t, items, 2)
	for _, item := range items {
		assert.Equal(t, "", item.Name)
		assert.Nil(t, item.Tag)
		assert.Nil(t, item.Price)
		assert.Nil(t, item.Category)
		assert.Equal(t, models.DefaultCountry, item.Country)
	}
}

func TestHandleSave_MigrationFlagMustBeTrue(t *testing.T) {
	_, _, app := setup(t)

	post(t, app, "/api/menu-items", `{"items":`+itemsJSON(1, 3)+`}`)
	post(t, app, "/api/menu-items", `{"items":`+itemsJSON(4, 4)+`,"migration":"yes"}`)

	assert.Len(t, list(t, app), 1)
}

func TestHandleSave_ReassignsInvalidAndDuplicateIDs(t *testing.T) {
	_, _, app := setup(t)

	status, body := post(t, app, "/api/menu-items", `{"items":[
		{"id":7,"name":"first"},
		{"id":7,"name":"second"},
		{"id":2147483648,"name":"too big"},
		{"id":"firestore-abc","name":"document id"},
		{"name":""}
	]}`)
	require.Equal(t, fiber.StatusOK, status)
	assert.Equal(t, "Saved 5 menu items", body["message"])

	items := list(t, app)
	require.Len(t, items, 5)
	assert.Equal(t, 7, items[0].ID)
	assert.Equal(t, "first", items[0].Name)

	seen := map[int]bool{}
	for _, item := range items {
		assert.False(t, seen[item.ID])
		seen[item.ID] = true
	}
}

func TestHandleSave_Validation(t *testing.T) {
	_, _, app := setup(t)

	tests := []struct {
		name string
		body string
	}{
		{"Missing items", `{}`},
		{"Object items", `{"items":{"id":1}}`},
		{"String items", `{"items":"[]"}`},
		{"Scalar elements", `{"items":[1,2]}`},
		{"Malformed body", `{"items":[`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status, body := post(t, app, "/api/menu-items", tt.body)
			assert.Equal(t, fiber.StatusBadRequest, status)
			assert.Contains(t, body["error"], "Items must be an array")
		})
	}
}

func TestHandleSave_EmptyBatchClearsMenu(t *testing.T) {
	_, _, app := setup(t)

	post(t, app, "/api/menu-items", `{"items":`+itemsJSON(1, 3)+`}`)
	status, body := post(t, app, "/api/menu-items", `{"items":[]}`)
	require.Equal(t, fiber.StatusOK, status)
	assert.Equal(t, "Saved 0 menu items", body["message"])
	assert.Empty(t, list(t, app))
}

func TestHandleList_StorageError(t *testing.T) {
	db, _, app := setup(t)
	require.NoError(t, db.Migrator().DropTable(&models.Item{}))

	resp, err := app.Test(httptest.NewRequest("GET", "/api/menu-items", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusInternalServerError, resp.StatusCode)
}

func TestService_Fetch(t *testing.T) {
	_, svc, _ := setup(t)
	ctx := context.Background()

	_, err := svc.Apply(ctx, []models.Input{{ID: 3, Name: "c"}, {ID: 1, Name: "a"}}, reconcile.DeleteAll)
	require.NoError(t, err)

	ordered, err := svc.FetchOrdered(ctx)
	require.NoError(t, err)
	require.Len(t, ordered, 2)
	assert.Equal(t, "a", ordered[0].Name)

	unordered, err := svc.FetchUnordered(ctx)
	require.NoError(t, err)
	assert.Len(t, unordered, 2)
}
