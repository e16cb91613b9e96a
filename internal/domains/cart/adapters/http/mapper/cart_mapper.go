package mapper

import (
	"time"

	"github.com/shopspring/decimal"

	carttypes "github.com/Apurer/exotica-pets/internal/domains/cart/application/types"
	catalogmapper "github.com/Apurer/exotica-pets/internal/domains/catalog/adapters/http/mapper"
)

// AddItemRequest is the body of an add-to-cart call.
type AddItemRequest struct {
	AnimalID string `json:"animalId" binding:"required"`
}

// QuantityRequest overwrites the quantity of a line. Zero or below removes it.
type QuantityRequest struct {
	Quantity *int `json:"quantity" binding:"required"`
}

// CartLine is one row of the cart dialog.
type CartLine struct {
	Animal       catalogmapper.Animal `json:"animal"`
	Quantity     int                  `json:"quantity"`
	Subtotal     string               `json:"subtotal"`
	CanIncrement bool                 `json:"canIncrement"`
	CanDecrement bool                 `json:"canDecrement"`
}

// Cart is the HTTP representation of a cart session.
type Cart struct {
	ID             string     `json:"id"`
	Lines          []CartLine `json:"lines"`
	DistinctItems  int        `json:"distinctItems"`
	TotalItemCount int        `json:"totalItemCount"`
	TotalPrice     string     `json:"totalPrice"`
	Empty          bool       `json:"empty"`
	CreatedAt      time.Time  `json:"createdAt"`
	UpdatedAt      time.Time  `json:"updatedAt"`
}

// FromView converts the derived cart state.
func FromView(v *carttypes.CartView) Cart {
	if v == nil {
		return Cart{Lines: []CartLine{}, TotalPrice: catalogmapper.FormatPrice(decimal.Zero), Empty: true}
	}
	out := Cart{
		ID:             v.ID,
		Lines:          make([]CartLine, 0, len(v.Lines)),
		DistinctItems:  v.DistinctItems,
		TotalItemCount: v.TotalItemCount,
		TotalPrice:     catalogmapper.FormatPrice(v.TotalPrice),
		Empty:          len(v.Lines) == 0,
		CreatedAt:      v.CreatedAt,
		UpdatedAt:      v.UpdatedAt,
	}
	for i := range v.Lines {
		line := v.Lines[i]
		out.Lines = append(out.Lines, CartLine{
			Animal:       catalogmapper.FromDomainAnimal(&line.Animal),
			Quantity:     line.Quantity,
			Subtotal:     catalogmapper.FormatPrice(line.Subtotal),
			CanIncrement: line.CanIncrement,
			CanDecrement: line.CanDecrement,
		})
	}
	return out
}
