package storefrontserver

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
)

// Route is the information for every URI.
type Route struct {
	// Name is the name of this Route.
	Name string
	// Method is the string for the HTTP method. ex) GET, POST etc..
	Method string
	// Pattern is the pattern of the URI.
	Pattern string
	// Middleware runs before HandlerFunc, in order.
	Middleware []gin.HandlerFunc
	// HandlerFunc is the handler function of this route.
	HandlerFunc gin.HandlerFunc
}

// NewRouter returns a new router.
func NewRouter(handleFunctions ApiHandleFunctions) *gin.Engine {
	return NewRouterWithGinEngine(gin.Default(), handleFunctions)
}

// NewRouterWithGinEngine add routes to existing gin engine.
// Unknown routes, unsupported methods and panics answer with problem documents.
func NewRouterWithGinEngine(router *gin.Engine, handleFunctions ApiHandleFunctions) *gin.Engine {
	responder := newResponder(handleFunctions.Logger)
	handleFunctions.CatalogAPI.useResponder(responder)
	handleFunctions.CartAPI.useResponder(responder)
	router.HandleMethodNotAllowed = true
	router.NoRoute(responder.NoRoute)
	router.NoMethod(responder.NoMethod)
	router.Use(responder.Recovery())
	for _, route := range getRoutes(handleFunctions) {
		if route.HandlerFunc == nil {
			route.HandlerFunc = DefaultHandleFunc
		}
		handlers := append(append([]gin.HandlerFunc{}, route.Middleware...), route.HandlerFunc)
		router.Handle(route.Method, route.Pattern, handlers...)
	}
	return router
}

// DefaultHandleFunc is the default handler for not yet implemented routes.
func DefaultHandleFunc(c *gin.Context) {
	c.String(http.StatusNotImplemented, "501 not implemented")
}

// ApiHandleFunctions groups the handlers of every API section.
type ApiHandleFunctions struct {
	// Routes for the catalog part of the API
	CatalogAPI CatalogAPI
	// Routes for the cart part of the API
	CartAPI CartAPI
	// Metrics serves /metrics when set.
	Metrics http.Handler
	// Logger receives unexpected handler failures.
	Logger *slog.Logger
}

func getRoutes(handleFunctions ApiHandleFunctions) []Route {
	scope := []gin.HandlerFunc{handleFunctions.CartAPI.Scope}
	routes := []Route{
		{
			"ListAnimals",
			http.MethodGet,
			"/v1/animals",
			nil,
			handleFunctions.CatalogAPI.ListAnimals,
		},
		{
			"GetAnimal",
			http.MethodGet,
			"/v1/animals/:animalId",
			nil,
			handleFunctions.CatalogAPI.GetAnimal,
		},
		{
			"UpsertAnimal",
			http.MethodPut,
			"/v1/animals",
			nil,
			handleFunctions.CatalogAPI.UpsertAnimal,
		},
		{
			"DeleteAnimal",
			http.MethodDelete,
			"/v1/animals/:animalId",
			nil,
			handleFunctions.CatalogAPI.DeleteAnimal,
		},
		{
			"ListFilters",
			http.MethodGet,
			"/v1/catalog/filters",
			nil,
			handleFunctions.CatalogAPI.ListFilters,
		},
		{
			"ImportCatalog",
			http.MethodPost,
			"/v1/catalog/import",
			nil,
			handleFunctions.CatalogAPI.ImportCatalog,
		},
		{
			"OpenCart",
			http.MethodPost,
			"/v1/carts",
			nil,
			handleFunctions.CartAPI.OpenCart,
		},
		{
			"GetCart",
			http.MethodGet,
			"/v1/carts/:cartId",
			scope,
			handleFunctions.CartAPI.GetCart,
		},
		{
			"CloseCart",
			http.MethodDelete,
			"/v1/carts/:cartId",
			scope,
			handleFunctions.CartAPI.CloseCart,
		},
		{
			"AddCartItem",
			http.MethodPost,
			"/v1/carts/:cartId/items",
			scope,
			handleFunctions.CartAPI.AddItem,
		},
		{
			"ClearCart",
			http.MethodDelete,
			"/v1/carts/:cartId/items",
			scope,
			handleFunctions.CartAPI.ClearCart,
		},
		{
			"SetCartItemQuantity",
			http.MethodPut,
			"/v1/carts/:cartId/items/:animalId",
			scope,
			handleFunctions.CartAPI.SetQuantity,
		},
		{
			"RemoveCartItem",
			http.MethodDelete,
			"/v1/carts/:cartId/items/:animalId",
			scope,
			handleFunctions.CartAPI.RemoveItem,
		},
		{
			"Health",
			http.MethodGet,
			"/healthz",
			nil,
			Health,
		},
	}
	if handleFunctions.Metrics != nil {
		routes = append(routes, Route{"Metrics", http.MethodGet, "/metrics", nil, gin.WrapH(handleFunctions.Metrics)})
	}
	return routes
}

// Get /healthz
func Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
