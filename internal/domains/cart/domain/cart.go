package domain

import (
	"errors"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	catalogdomain "github.com/Apurer/exotica-pets/internal/domains/catalog/domain"
)

var ErrEmptyCartID = errors.New("cart id is required")

// Line is one animal held in the cart. The animal is a copy taken on the first add.
type Line struct {
	Animal   catalogdomain.Animal
	Quantity int
}

// Subtotal is price times quantity.
func (l Line) Subtotal() decimal.Decimal {
	return l.Animal.Price.Mul(decimal.NewFromInt(int64(l.Quantity)))
}

// Cart owns the ordered lines of one shopping session.
// At most one line exists per animal id and every line has Quantity >= 1.
type Cart struct {
	ID        string
	Lines     []Line
	CreatedAt time.Time
	UpdatedAt time.Time
}

// NewCart returns an empty cart.
func NewCart(id string, now time.Time) (*Cart, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return nil, ErrEmptyCartID
	}
	return &Cart{ID: id, CreatedAt: now, UpdatedAt: now}, nil
}

// Add increments the line for the animal or appends a new line with quantity 1.
// Stock is not consulted.
func (c *Cart) Add(animal catalogdomain.Animal) {
	if i := c.index(animal.ID); i >= 0 {
		c.Lines[i].Quantity++
		return
	}
	c.Lines = append(c.Lines, Line{Animal: animal, Quantity: 1})
}

// Remove deletes the line for animalID; absent ids are ignored.
func (c *Cart) Remove(animalID string) {
	i := c.index(animalID)
	if i < 0 {
		return
	}
	c.Lines = append(c.Lines[:i], c.Lines[i+1:]...)
}

// SetQuantity overwrites the quantity of an existing line. quantity <= 0 removes the line;
// absent ids are ignored since only Add creates lines.
func (c *Cart) SetQuantity(animalID string, quantity int) {
	if quantity <= 0 {
		c.Remove(animalID)
		return
	}
	if i := c.index(animalID); i >= 0 {
		c.Lines[i].Quantity = quantity
	}
}

// Clear empties the cart.
func (c *Cart) Clear() {
	c.Lines = nil
}

// TotalPrice sums price times quantity over all lines.
func (c *Cart) TotalPrice() decimal.Decimal {
	total := decimal.Zero
	for _, l := range c.Lines {
		total = total.Add(l.Subtotal())
	}
	return total
}

// TotalItemCount sums the quantities of all lines.
func (c *Cart) TotalItemCount() int {
	n := 0
	for _, l := range c.Lines {
		n += l.Quantity
	}
	return n
}

// Len is the number of distinct animals in the cart.
func (c *Cart) Len() int { return len(c.Lines) }

// Line returns the line for animalID.
func (c *Cart) Line(animalID string) (Line, bool) {
	if i := c.index(animalID); i >= 0 {
		return c.Lines[i], true
	}
	return Line{}, false
}

// Touch records a mutation time.
func (c *Cart) Touch(now time.Time) {
	c.UpdatedAt = now
}

// Clone returns a deep copy.
func (c *Cart) Clone() *Cart {
	if c == nil {
		return nil
	}
	copy := *c
	copy.Lines = append([]Line(nil), c.Lines...)
	return &copy
}

func (c *Cart) index(animalID string) int {
	for i := range c.Lines {
		if c.Lines[i].Animal.ID == animalID {
			return i
		}
	}
	return -1
}
