package rest

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"reflect"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/labstack/echo/v4"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/mealdex/recipedex/internal/infra/database"
	"github.com/mealdex/recipedex/internal/infra/repository"
	"github.com/mealdex/recipedex/internal/usecase"
)

var testRecipes = []map[string]any{
	{
		"title":        "Porridge",
		"recipe":       "Boil the oats in milk.",
		"views_number": 0,
		"cooking_time": 20,
		"ingredients": []any{
			map[string]any{"title": "Oats"},
			map[string]any{"title": "Milk"},
			map[string]any{"title": "Salt (to taste)"},
		},
	},
	{
		"title":        "Porridge with butter",
		"recipe":       "Take the porridge. Add butter.",
		"views_number": 1,
		"cooking_time": 21,
		"ingredients": []any{
			map[string]any{"title": "Porridge"},
			map[string]any{"title": "Butter"},
		},
	},
}

var dbSeq atomic.Int64

func newTestServer(t *testing.T) *echo.Echo {
	t.Helper()
	dsn := fmt.Sprintf("file:rest%d?mode=memory&cache=shared", dbSeq.Add(1))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{TranslateError: true})
	if err != nil {
		t.Fatalf("failed to open sqlite database: %v", err)
	}
	if err := database.Migrate(db); err != nil {
		t.Fatalf("failed to migrate schema: %v", err)
	}
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			sqlDB.Close()
		}
	})

	handler := NewHandler(usecase.NewRecipeUsecase(repository.NewRecipeRepository(db)))
	e := echo.New()
	handler.RegisterRoutes(e)
	return e
}

func do(t *testing.T, e *echo.Echo, method, target string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("failed to encode request body: %v", err)
		}
		reader = bytes.NewReader(encoded)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, target, reader)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	res := httptest.NewRecorder()
	e.ServeHTTP(res, req)
	return res
}

func seed(t *testing.T, e *echo.Echo) {
	t.Helper()
	for _, recipe := range testRecipes {
		res := do(t, e, http.MethodPost, "/recipes/", recipe)
		if res.Code != http.StatusOK {
			t.Fatalf("seeding failed with status %d: %s", res.Code, res.Body.String())
		}
	}
}

// normalize re-encodes a value through JSON so fixture literals and
// decoded responses compare with the same scalar types.
func normalize(t *testing.T, v any) any {
	t.Helper()
	encoded, err := json.Marshal(v)
	if err != nil {
		t.Fatalf("failed to marshal: %v", err)
	}
	var out any
	if err := json.Unmarshal(encoded, &out); err != nil {
		t.Fatalf("failed to unmarshal: %v", err)
	}
	return out
}

func TestListEmpty(t *testing.T) {
	e := newTestServer(t)

	res := do(t, e, http.MethodGet, "/recipes/", nil)
	if res.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", res.Code)
	}

	var content []any
	if err := json.Unmarshal(res.Body.Bytes(), &content); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if len(content) != 0 {
		t.Fatalf("expected an empty array, got %v", content)
	}
}

func TestListWithData(t *testing.T) {
	e := newTestServer(t)
	seed(t, e)

	res := do(t, e, http.MethodGet, "/recipes/", nil)
	if res.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", res.Code)
	}

	var content []map[string]any
	if err := json.Unmarshal(res.Body.Bytes(), &content); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if len(content) != len(testRecipes) {
		t.Fatalf("expected %d summaries, got %d", len(testRecipes), len(content))
	}

	for i, summary := range content {
		if _, ok := summary["id"]; ok {
			t.Errorf("summary %d must not expose an id", i)
		}
		expected := map[string]any{
			"title":        testRecipes[i]["title"],
			"cooking_time": testRecipes[i]["cooking_time"],
			"views_number": testRecipes[i]["views_number"],
		}
		if !reflect.DeepEqual(normalize(t, summary), normalize(t, expected)) {
			t.Errorf("summary %d mismatch: got %v want %v", i, summary, expected)
		}
	}
}

func TestCreateRecipe(t *testing.T) {
	e := newTestServer(t)

	res := do(t, e, http.MethodPost, "/recipes/", testRecipes[0])
	if res.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d: %s", res.Code, res.Body.String())
	}

	var content map[string]any
	if err := json.Unmarshal(res.Body.Bytes(), &content); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if _, ok := content["id"]; !ok {
		t.Fatalf("expected the minted id in the create response")
	}
	delete(content, "id")
	if !reflect.DeepEqual(content, normalize(t, testRecipes[0])) {
		t.Errorf("create response mismatch: got %v want %v", content, testRecipes[0])
	}
}

func TestCreateAppliesDefaults(t *testing.T) {
	e := newTestServer(t)

	payload := map[string]any{
		"title":       "Tea",
		"recipe":      "Steep the leaves.",
		"ingredients": []any{map[string]any{"title": "Leaves"}},
	}
	res := do(t, e, http.MethodPost, "/recipes/", payload)
	if res.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d: %s", res.Code, res.Body.String())
	}

	var content map[string]any
	if err := json.Unmarshal(res.Body.Bytes(), &content); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if content["cooking_time"] != float64(10) {
		t.Errorf("expected cooking_time default 10, got %v", content["cooking_time"])
	}
	if content["views_number"] != float64(0) {
		t.Errorf("expected views_number default 0, got %v", content["views_number"])
	}
}

func TestCreateValidationError(t *testing.T) {
	e := newTestServer(t)

	payload := map[string]any{
		"title":  strings.Repeat("Bad Title", 20),
		"recipe": "Good recipe",
	}
	res := do(t, e, http.MethodPost, "/recipes/", payload)
	if res.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422 got %d", res.Code)
	}

	var content map[string]any
	if err := json.Unmarshal(res.Body.Bytes(), &content); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	detail, err := json.Marshal(content["detail"])
	if err != nil {
		t.Fatalf("failed to re-encode detail: %v", err)
	}
	if !bytes.Contains(detail, []byte("100 characters")) {
		t.Errorf("expected the length rule in the detail, got %s", detail)
	}

	// nothing may reach the store on a validation failure
	list := do(t, e, http.MethodGet, "/recipes/", nil)
	var summaries []any
	if err := json.Unmarshal(list.Body.Bytes(), &summaries); err != nil {
		t.Fatalf("failed to decode list: %v", err)
	}
	if len(summaries) != 0 {
		t.Errorf("expected no persisted rows, got %d", len(summaries))
	}
}

func TestGetRecipeByID(t *testing.T) {
	e := newTestServer(t)
	seed(t, e)

	res := do(t, e, http.MethodGet, "/recipes/1", nil)
	if res.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", res.Code)
	}

	var content map[string]any
	if err := json.Unmarshal(res.Body.Bytes(), &content); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if content["id"] != float64(1) {
		t.Fatalf("expected id 1, got %v", content["id"])
	}
	if _, ok := content["views_number"]; ok {
		t.Errorf("the detail view must omit views_number")
	}

	expected := map[string]any{}
	for key, val := range testRecipes[0] {
		if key != "views_number" {
			expected[key] = val
		}
	}
	delete(content, "id")
	if !reflect.DeepEqual(content, normalize(t, expected)) {
		t.Errorf("detail mismatch: got %v want %v", content, expected)
	}
}

func TestGetRecipeByWrongID(t *testing.T) {
	e := newTestServer(t)
	seed(t, e)

	res := do(t, e, http.MethodGet, "/recipes/9", nil)
	if res.Code != http.StatusNotFound {
		t.Fatalf("expected 404 got %d", res.Code)
	}

	var content map[string]any
	if err := json.Unmarshal(res.Body.Bytes(), &content); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	detail, _ := content["detail"].(string)
	if !bytes.Contains([]byte(detail), []byte("id=9")) {
		t.Errorf("expected the missing id in the detail, got %q", detail)
	}
	if content["path"] != "/recipes/9" {
		t.Errorf("expected the request path in the envelope, got %v", content["path"])
	}
}

func TestGetRecipeByNonIntegerID(t *testing.T) {
	e := newTestServer(t)
	seed(t, e)

	res := do(t, e, http.MethodGet, "/recipes/X", nil)
	if res.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422 got %d", res.Code)
	}

	var content map[string]any
	if err := json.Unmarshal(res.Body.Bytes(), &content); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	detail, err := json.Marshal(content["detail"])
	if err != nil {
		t.Fatalf("failed to re-encode detail: %v", err)
	}
	if !bytes.Contains(detail, []byte("valid integer")) {
		t.Errorf("expected an integer parsing violation, got %s", detail)
	}
}

func TestRepeatedGetIsIdempotent(t *testing.T) {
	e := newTestServer(t)
	seed(t, e)

	first := do(t, e, http.MethodGet, "/recipes/2", nil)
	second := do(t, e, http.MethodGet, "/recipes/2", nil)
	if first.Code != http.StatusOK || second.Code != http.StatusOK {
		t.Fatalf("expected 200s, got %d and %d", first.Code, second.Code)
	}
	if !bytes.Equal(first.Body.Bytes(), second.Body.Bytes()) {
		t.Errorf("expected identical responses, got %s vs %s", first.Body.String(), second.Body.String())
	}
}
