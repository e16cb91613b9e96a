package types

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/Apurer/exotica-pets/internal/domains/cart/domain"
	catalogdomain "github.com/Apurer/exotica-pets/internal/domains/catalog/domain"
)

// LineView is a cart line with the values the cart dialog derives from it.
type LineView struct {
	Animal       catalogdomain.Animal
	Quantity     int
	Subtotal     decimal.Decimal
	CanIncrement bool
	CanDecrement bool
}

// CartView is the re-derived state returned after every cart operation.
type CartView struct {
	ID             string
	Lines          []LineView
	DistinctItems  int
	TotalItemCount int
	TotalPrice     decimal.Decimal
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// NewCartView derives the view of a cart.
func NewCartView(c *domain.Cart) *CartView {
	if c == nil {
		return nil
	}
	view := &CartView{
		ID:             c.ID,
		Lines:          make([]LineView, 0, len(c.Lines)),
		DistinctItems:  c.Len(),
		TotalItemCount: c.TotalItemCount(),
		TotalPrice:     c.TotalPrice(),
		CreatedAt:      c.CreatedAt,
		UpdatedAt:      c.UpdatedAt,
	}
	for _, l := range c.Lines {
		view.Lines = append(view.Lines, LineView{
			Animal:       l.Animal,
			Quantity:     l.Quantity,
			Subtotal:     l.Subtotal(),
			CanIncrement: l.Quantity < l.Animal.StockQuantity,
			CanDecrement: l.Quantity > 1,
		})
	}
	return view
}
