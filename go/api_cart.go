package storefrontserver

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/oapi-codegen/runtime"

	cartmapper "github.com/Apurer/exotica-pets/internal/domains/cart/adapters/http/mapper"
	cartapp "github.com/Apurer/exotica-pets/internal/domains/cart/application"
	carttypes "github.com/Apurer/exotica-pets/internal/domains/cart/application/types"
	cartports "github.com/Apurer/exotica-pets/internal/domains/cart/ports"
	apierrors "github.com/Apurer/exotica-pets/internal/shared/errors"
)

const cartScopeKey = "storefront.cart"

// CartAPI wires HTTP transport with the cart bounded context service.
type CartAPI struct {
	problemWriter
	service cartports.Service
}

// NewCartAPI creates a CartAPI backed by the provided service.
func NewCartAPI(service cartports.Service) CartAPI {
	return CartAPI{service: service}
}

// Scope validates the cartId path parameter, loads the session and makes it available
// to the handlers of the /v1/carts/:cartId group.
func (api *CartAPI) Scope(c *gin.Context) {
	var raw string
	err := runtime.BindStyledParameterWithOptions("simple", "cartId", c.Param("cartId"), &raw,
		runtime.BindStyledParameterOptions{ParamLocation: runtime.ParamLocationPath, Explode: false, Required: true})
	if err != nil {
		api.respondError(c, http.StatusBadRequest, fmt.Errorf("invalid format for parameter cartId: %w", err))
		return
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		api.respondProblem(c, apierrors.NewValidationProblem(map[string]string{"cartId": "must be a UUID"}).WithDetail(err.Error()))
		return
	}
	view, err := api.service.Get(c.Request.Context(), carttypes.CartIdentifier{ID: id.String()})
	if err != nil {
		api.respondServiceError(c, err)
		return
	}
	c.Set(cartScopeKey, view)
	c.Next()
}

func scopedCart(c *gin.Context) (*carttypes.CartView, error) {
	value, ok := c.Get(cartScopeKey)
	if !ok {
		return nil, cartapp.ErrCartScopeMissing
	}
	view, ok := value.(*carttypes.CartView)
	if !ok || view == nil {
		return nil, cartapp.ErrCartScopeMissing
	}
	return view, nil
}

// Post /v1/carts
// Opens an empty cart session
func (api *CartAPI) OpenCart(c *gin.Context) {
	view, err := api.service.Open(c.Request.Context())
	if err != nil {
		api.respondServiceError(c, err)
		return
	}
	c.Header("Location", "/v1/carts/"+view.ID)
	c.JSON(http.StatusCreated, cartmapper.FromView(view))
}

// Get /v1/carts/:cartId
// Returns the cart with its derived totals
func (api *CartAPI) GetCart(c *gin.Context) {
	view, err := scopedCart(c)
	if err != nil {
		api.respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, cartmapper.FromView(view))
}

// Delete /v1/carts/:cartId
// Ends the cart session
func (api *CartAPI) CloseCart(c *gin.Context) {
	view, err := scopedCart(c)
	if err != nil {
		api.respondServiceError(c, err)
		return
	}
	if err := api.service.Close(c.Request.Context(), carttypes.CartIdentifier{ID: view.ID}); err != nil {
		api.respondServiceError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// Post /v1/carts/:cartId/items
// Adds one unit of an animal
func (api *CartAPI) AddItem(c *gin.Context) {
	view, err := scopedCart(c)
	if err != nil {
		api.respondServiceError(c, err)
		return
	}
	var payload cartmapper.AddItemRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		api.respondError(c, http.StatusBadRequest, err)
		return
	}
	updated, err := api.service.AddItem(c.Request.Context(), carttypes.AddItemInput{CartID: view.ID, AnimalID: payload.AnimalID})
	if err != nil {
		api.respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, cartmapper.FromView(updated))
}

// Delete /v1/carts/:cartId/items
// Empties the cart
func (api *CartAPI) ClearCart(c *gin.Context) {
	view, err := scopedCart(c)
	if err != nil {
		api.respondServiceError(c, err)
		return
	}
	updated, err := api.service.Clear(c.Request.Context(), carttypes.CartIdentifier{ID: view.ID})
	if err != nil {
		api.respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, cartmapper.FromView(updated))
}

// Put /v1/carts/:cartId/items/:animalId
// Overwrites the quantity of a line
func (api *CartAPI) SetQuantity(c *gin.Context) {
	view, err := scopedCart(c)
	if err != nil {
		api.respondServiceError(c, err)
		return
	}
	var payload cartmapper.QuantityRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		api.respondError(c, http.StatusBadRequest, err)
		return
	}
	input := carttypes.SetQuantityInput{CartID: view.ID, AnimalID: c.Param("animalId"), Quantity: *payload.Quantity}
	updated, err := api.service.SetQuantity(c.Request.Context(), input)
	if err != nil {
		api.respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, cartmapper.FromView(updated))
}

// Delete /v1/carts/:cartId/items/:animalId
// Removes a line
func (api *CartAPI) RemoveItem(c *gin.Context) {
	view, err := scopedCart(c)
	if err != nil {
		api.respondServiceError(c, err)
		return
	}
	updated, err := api.service.RemoveItem(c.Request.Context(), carttypes.ItemIdentifier{CartID: view.ID, AnimalID: c.Param("animalId")})
	if err != nil {
		api.respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, cartmapper.FromView(updated))
}
