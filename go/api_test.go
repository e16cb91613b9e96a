package storefrontserver

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	cartcatalog "github.com/Apurer/exotica-pets/internal/domains/cart/adapters/catalog"
	cartmapper "github.com/Apurer/exotica-pets/internal/domains/cart/adapters/http/mapper"
	cartmemory "github.com/Apurer/exotica-pets/internal/domains/cart/adapters/memory"
	cartapp "github.com/Apurer/exotica-pets/internal/domains/cart/application"
	catalogmapper "github.com/Apurer/exotica-pets/internal/domains/catalog/adapters/http/mapper"
	catalogmemory "github.com/Apurer/exotica-pets/internal/domains/catalog/adapters/memory"
	catalogworkflows "github.com/Apurer/exotica-pets/internal/domains/catalog/adapters/workflows"
	catalogapp "github.com/Apurer/exotica-pets/internal/domains/catalog/application"
	catalogtypes "github.com/Apurer/exotica-pets/internal/domains/catalog/application/types"
	catalogdomain "github.com/Apurer/exotica-pets/internal/domains/catalog/domain"
	catalogports "github.com/Apurer/exotica-pets/internal/domains/catalog/ports"
	apierrors "github.com/Apurer/exotica-pets/internal/shared/errors"
)

type testApp struct {
	router  *gin.Engine
	catalog *catalogmemory.Repository
}

func newTestApp(t *testing.T) *testApp {
	t.Helper()
	gin.SetMode(gin.TestMode)

	catalogRepo := catalogmemory.NewRepository()
	for _, a := range []*catalogdomain.Animal{
		{ID: "leopard-gecko", Name: "Gecko Leopardo", Species: "Eublepharis macularius", Category: catalogdomain.CategoryReptiles,
			CareLevel: catalogdomain.CareLevelEasy, Size: catalogdomain.SizeSmall, Price: decimal.RequireFromString("45.50"), InStock: true, StockQuantity: 2},
		{ID: "ball-python", Name: "Pitón Bola", Species: "Python regius", Category: catalogdomain.CategoryReptiles,
			CareLevel: catalogdomain.CareLevelIntermediate, Size: catalogdomain.SizeMedium, Price: decimal.NewFromInt(320), InStock: true, StockQuantity: 5},
		{ID: "veiled-chameleon", Name: "Camaleón Velado", Species: "Chamaeleo calyptratus", Category: catalogdomain.CategoryReptiles,
			CareLevel: catalogdomain.CareLevelAdvanced, Size: catalogdomain.SizeMedium, Price: decimal.NewFromInt(180), InStock: false, StockQuantity: 0},
		{ID: "lovebird", Name: "Agapornis", Species: "Agapornis roseicollis", Category: catalogdomain.CategoryBirds,
			CareLevel: catalogdomain.CareLevelEasy, Size: catalogdomain.SizeSmall, Price: decimal.NewFromInt(120), InStock: true, StockQuantity: 4},
	} {
		_, err := catalogRepo.Save(context.Background(), a)
		require.NoError(t, err)
	}
	catalogService := catalogapp.NewService(catalogRepo, catalogapp.WithImportLedger(catalogmemory.NewImportLedger()))
	cartService := cartapp.NewService(cartmemory.NewRepository(), cartcatalog.NewReader(catalogRepo))

	handlers := ApiHandleFunctions{
		CatalogAPI: NewCatalogAPI(catalogService, catalogworkflows.NewInlineCatalogWorkflows(catalogService)),
		CartAPI:    NewCartAPI(cartService),
	}
	router := NewRouterWithGinEngine(gin.New(), handlers)
	return &testApp{router: router, catalog: catalogRepo}
}

func (a *testApp) do(t *testing.T, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	a.router.ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out), rec.Body.String())
	return out
}

func (a *testApp) openCart(t *testing.T) string {
	t.Helper()
	rec := a.do(t, http.MethodPost, "/v1/carts", nil)
	require.Equal(t, http.StatusCreated, rec.Code)
	cart := decode[cartmapper.Cart](t, rec)
	assert.Equal(t, "/v1/carts/"+cart.ID, rec.Header().Get("Location"))
	return cart.ID
}

func TestListAnimals_Filters(t *testing.T) {
	app := newTestApp(t)

	rec := app.do(t, http.MethodGet, "/v1/animals?category=reptiles&priceRange=0-50", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	list := decode[catalogmapper.AnimalList](t, rec)
	require.Len(t, list.Items, 1)
	assert.Equal(t, "leopard-gecko", list.Items[0].ID)
	assert.Equal(t, "45.50", list.Items[0].Price)
	assert.Len(t, list.ActiveFilters, 2)

	rec = app.do(t, http.MethodGet, "/v1/animals?q=REGIUS", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	list = decode[catalogmapper.AnimalList](t, rec)
	require.Len(t, list.Items, 1)
	assert.Equal(t, "ball-python", list.Items[0].ID)

	rec = app.do(t, http.MethodGet, "/v1/animals?category=dragons", nil)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, apierrors.ContentTypeProblemJSON, rec.Header().Get("Content-Type"))
}

func TestGetAnimal(t *testing.T) {
	app := newTestApp(t)

	rec := app.do(t, http.MethodGet, "/v1/animals/veiled-chameleon", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	animal := decode[catalogmapper.Animal](t, rec)
	assert.False(t, animal.Purchasable)
	assert.Equal(t, "Avanzado", animal.CareLevelLabel)

	rec = app.do(t, http.MethodGet, "/v1/animals/unicorn", nil)
	require.Equal(t, http.StatusNotFound, rec.Code)
	problem := decode[apierrors.ProblemDetail](t, rec)
	assert.Equal(t, apierrors.TypeNotFound, problem.Type)
}

func TestUpsertAndDeleteAnimal(t *testing.T) {
	app := newTestApp(t)

	rec := app.do(t, http.MethodPut, "/v1/animals", map[string]any{
		"id": "axolotl", "name": "Ajolote", "category": "Anfibios", "price": "80",
		"careLevel": "intermediate", "size": "small", "inStock": true, "stockQuantity": 6,
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	animal := decode[catalogmapper.Animal](t, rec)
	assert.Equal(t, "amphibians", animal.Category)
	assert.Equal(t, "80.00", animal.Price)

	rec = app.do(t, http.MethodPut, "/v1/animals", map[string]any{"id": "x", "name": "X", "category": "dragons", "price": 1, "careLevel": "easy", "size": "small"})
	require.Equal(t, http.StatusBadRequest, rec.Code)
	problem := decode[apierrors.ProblemDetail](t, rec)
	assert.Equal(t, apierrors.TypeValidation, problem.Type)
	assert.Contains(t, problem.Extensions["fields"], "category")

	rec = app.do(t, http.MethodDelete, "/v1/animals/axolotl", nil)
	assert.Equal(t, http.StatusNoContent, rec.Code)
	rec = app.do(t, http.MethodDelete, "/v1/animals/axolotl", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestUpsertAnimalRejectsSubCentPrices(t *testing.T) {
	app := newTestApp(t)

	for _, price := range []any{"0.005", 0.005} {
		rec := app.do(t, http.MethodPut, "/v1/animals", map[string]any{
			"id": "feeder-cricket", "name": "Grillo", "category": "mammals", "price": price,
			"careLevel": "easy", "size": "small", "inStock": true, "stockQuantity": 3,
		})
		require.Equal(t, http.StatusBadRequest, rec.Code, rec.Body.String())
		problem := decode[apierrors.ProblemDetail](t, rec)
		assert.Equal(t, apierrors.TypeValidation, problem.Type)
		assert.Contains(t, problem.Extensions["fields"], "price")
	}

	rec := app.do(t, http.MethodGet, "/v1/animals/feeder-cricket", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestListFilters(t *testing.T) {
	app := newTestApp(t)
	rec := app.do(t, http.MethodGet, "/v1/catalog/filters", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	options := decode[catalogmapper.FilterOptions](t, rec)
	assert.Len(t, options.Categories, 5)
	assert.Len(t, options.PriceRanges, 4)
}

func TestImportCatalog_IdempotencyHeader(t *testing.T) {
	app := newTestApp(t)
	body := map[string]any{
		"animals": []map[string]any{
			{"id": "discus", "name": "Pez Disco", "category": "fish", "price": "95", "careLevel": "Avanzado", "size": "Pequeño", "inStock": true, "stockQuantity": 8},
			{"id": "", "name": "broken", "category": "fish", "price": "1", "careLevel": "easy", "size": "small"},
		},
	}
	req := func(payload any) *httptest.ResponseRecorder {
		raw, err := json.Marshal(payload)
		require.NoError(t, err)
		r := httptest.NewRequest(http.MethodPost, "/v1/catalog/import", bytes.NewReader(raw))
		r.Header.Set("Content-Type", "application/json")
		r.Header.Set("Idempotency-Key", "batch-1")
		rec := httptest.NewRecorder()
		app.router.ServeHTTP(rec, r)
		return rec
	}

	rec := req(body)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	result := decode[catalogmapper.ImportResponse](t, rec)
	assert.Equal(t, []string{"discus"}, result.Imported)
	require.Len(t, result.Rejected, 1)
	assert.Equal(t, 1, result.Rejected[0].Index)
	assert.False(t, result.Replayed)

	rec = req(body)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "true", rec.Header().Get("Idempotent-Replayed"))

	body["animals"] = body["animals"].([]map[string]any)[:1]
	rec = req(body)
	require.Equal(t, http.StatusConflict, rec.Code)
	problem := decode[apierrors.ProblemDetail](t, rec)
	assert.Equal(t, apierrors.TypeConflict, problem.Type)
}

func TestCartFlow(t *testing.T) {
	app := newTestApp(t)
	id := app.openCart(t)
	base := "/v1/carts/" + id

	rec := app.do(t, http.MethodPost, base+"/items", map[string]string{"animalId": "leopard-gecko"})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	rec = app.do(t, http.MethodPost, base+"/items", map[string]string{"animalId": "lovebird"})
	require.Equal(t, http.StatusOK, rec.Code)
	rec = app.do(t, http.MethodPost, base+"/items", map[string]string{"animalId": "leopard-gecko"})
	require.Equal(t, http.StatusOK, rec.Code)

	cart := decode[cartmapper.Cart](t, rec)
	require.Len(t, cart.Lines, 2)
	assert.Equal(t, "leopard-gecko", cart.Lines[0].Animal.ID)
	assert.Equal(t, 2, cart.Lines[0].Quantity)
	assert.Equal(t, "91.00", cart.Lines[0].Subtotal)
	assert.False(t, cart.Lines[0].CanIncrement)
	assert.Equal(t, "211.00", cart.TotalPrice)
	assert.Equal(t, 3, cart.TotalItemCount)
	assert.Equal(t, 2, cart.DistinctItems)

	rec = app.do(t, http.MethodPut, base+"/items/leopard-gecko", map[string]int{"quantity": 3})
	require.Equal(t, http.StatusConflict, rec.Code)
	assert.Equal(t, apierrors.TypeStockLimit, decode[apierrors.ProblemDetail](t, rec).Type)

	rec = app.do(t, http.MethodPut, base+"/items/leopard-gecko", map[string]int{"quantity": 0})
	require.Equal(t, http.StatusOK, rec.Code)
	cart = decode[cartmapper.Cart](t, rec)
	require.Len(t, cart.Lines, 1)
	assert.Equal(t, "lovebird", cart.Lines[0].Animal.ID)

	rec = app.do(t, http.MethodDelete, base+"/items/lovebird", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, decode[cartmapper.Cart](t, rec).Empty)

	rec = app.do(t, http.MethodGet, base, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "0.00", decode[cartmapper.Cart](t, rec).TotalPrice)
}

func TestCartAddItem_OutOfStock(t *testing.T) {
	app := newTestApp(t)
	base := "/v1/carts/" + app.openCart(t)

	rec := app.do(t, http.MethodPost, base+"/items", map[string]string{"animalId": "veiled-chameleon"})
	require.Equal(t, http.StatusConflict, rec.Code)
	assert.Equal(t, apierrors.TypeOutOfStock, decode[apierrors.ProblemDetail](t, rec).Type)

	rec = app.do(t, http.MethodPost, base+"/items", map[string]string{"animalId": "unicorn"})
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = app.do(t, http.MethodPost, base+"/items", map[string]string{})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = app.do(t, http.MethodGet, base, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, decode[cartmapper.Cart](t, rec).Lines)
}

func TestCartScope(t *testing.T) {
	app := newTestApp(t)

	rec := app.do(t, http.MethodGet, "/v1/carts/not-a-uuid", nil)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, apierrors.TypeValidation, decode[apierrors.ProblemDetail](t, rec).Type)

	rec = app.do(t, http.MethodGet, "/v1/carts/6f1c2b9e-8a5d-4c3e-9b7a-1d2e3f4a5b6c", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	id := app.openCart(t)
	rec = app.do(t, http.MethodDelete, "/v1/carts/"+id, nil)
	require.Equal(t, http.StatusNoContent, rec.Code)
	rec = app.do(t, http.MethodGet, "/v1/carts/"+id, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestCartHandlerWithoutScope(t *testing.T) {
	gin.SetMode(gin.TestMode)
	api := NewCartAPI(cartapp.NewService(cartmemory.NewRepository(), nil))
	router := gin.New()
	router.GET("/unscoped", api.GetCart)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/unscoped", nil))
	require.Equal(t, http.StatusInternalServerError, rec.Code)
	problem := decode[apierrors.ProblemDetail](t, rec)
	assert.Equal(t, apierrors.TypeCartScope, problem.Type)
}

func TestHealth(t *testing.T) {
	app := newTestApp(t)
	rec := app.do(t, http.MethodGet, "/healthz", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	rec = app.do(t, http.MethodGet, "/metrics", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestUnknownRoutesAnswerProblems(t *testing.T) {
	app := newTestApp(t)

	rec := app.do(t, http.MethodPatch, "/v1/animals", nil)
	require.Equal(t, http.StatusMethodNotAllowed, rec.Code)
	assert.Equal(t, apierrors.TypeNoMethod, decode[apierrors.ProblemDetail](t, rec).Type)

	rec = app.do(t, http.MethodGet, "/v1/aquariums", nil)
	require.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, apierrors.TypeNotFound, decode[apierrors.ProblemDetail](t, rec).Type)
}

type brokenCatalog struct {
	catalogports.Service
}

func (brokenCatalog) Filters(context.Context) (*catalogtypes.FilterOptions, error) {
	return nil, errors.New("terrarium database on fire")
}

func TestRoutersKeepTheirOwnLogger(t *testing.T) {
	gin.SetMode(gin.TestMode)
	build := func(buf *bytes.Buffer) *gin.Engine {
		return NewRouterWithGinEngine(gin.New(), ApiHandleFunctions{
			CatalogAPI: NewCatalogAPI(brokenCatalog{}, nil),
			Logger:     slog.New(slog.NewJSONHandler(buf, nil)),
		})
	}
	var firstLog, secondLog bytes.Buffer
	first := build(&firstLog)
	second := build(&secondLog)

	rec := httptest.NewRecorder()
	first.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/v1/catalog/filters", nil))
	require.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.NotContains(t, rec.Body.String(), "on fire")
	assert.Contains(t, firstLog.String(), "terrarium database on fire")
	assert.Empty(t, secondLog.String())

	rec = httptest.NewRecorder()
	second.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/v1/catalog/filters", nil))
	require.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Contains(t, secondLog.String(), "terrarium database on fire")
}
