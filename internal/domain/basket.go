package domain

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// ErrEmptyBasket is returned when a checkout is attempted
// against a basket with no items.
var ErrEmptyBasket = errors.New("basket is empty")

// Basket is the transient collection of selected items awaiting checkout.
// It is mutable until deleted; checkout consumes it.
type Basket struct {
	OwnerID string
	Items   []BasketItem
}

type BasketItem struct {
	ProductID uuid.UUID
	Price     Money
	Quantity  int32

	CreatedAt time.Time
}
