package types

// CartIdentifier addresses one cart session.
type CartIdentifier struct {
	ID string
}

// ItemIdentifier addresses one line of a cart.
type ItemIdentifier struct {
	CartID   string
	AnimalID string
}

// AddItemInput adds one unit of a catalog animal.
type AddItemInput struct {
	CartID   string
	AnimalID string
}

// SetQuantityInput overwrites a line quantity; zero or below removes the line.
type SetQuantityInput struct {
	CartID   string
	AnimalID string
	Quantity int
}
