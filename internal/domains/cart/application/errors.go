package application

import (
	"errors"
	"fmt"

	"github.com/Apurer/exotica-pets/internal/domains/cart/domain"
	"github.com/Apurer/exotica-pets/internal/domains/cart/ports"
)

var (
	// ErrInvalidInput signals the request violated a domain invariant.
	ErrInvalidInput = errors.New("invalid cart input")
	// ErrCartNotFound is returned for unknown or expired cart sessions.
	ErrCartNotFound = ports.ErrNotFound
	// ErrOutOfStock rejects adding an animal that is unavailable or has no units left.
	ErrOutOfStock = errors.New("animal is out of stock")
	// ErrExceedsStock rejects a quantity above the units on hand.
	ErrExceedsStock = errors.New("quantity exceeds available stock")
	// ErrCartScopeMissing is a usage error: cart state was read before the cart scope was established.
	ErrCartScopeMissing = errors.New("cart scope not initialized")
)

func mapError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, domain.ErrEmptyCartID) {
		return fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}
	return err
}
