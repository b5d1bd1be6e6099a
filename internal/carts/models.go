package carts

import (
	"errors"
	"time"

	"github.com/ariefcatur/go-realtime-catalog.git/internal/catalog"
)

var (
	ErrCartNotFound = errors.New("cart not found")
	ErrItemNotFound = errors.New("line item not found in cart")
)

// LineItem: referensi product + quantity. Paling banyak satu line item
// per product di dalam satu cart.
type LineItem struct {
	ProductID string `json:"product"`
	Quantity  int    `json:"quantity"`
}

type Cart struct {
	ID        string     `json:"id"`
	Items     []LineItem `json:"products"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
}

// ExpandedItem: line item dengan product di-resolve untuk display.
// Product nil kalau product-nya sudah dihapus dari catalog (dangling
// reference dibiarkan, tidak ada cascade cleanup).
type ExpandedItem struct {
	Product  *catalog.Product `json:"product"`
	Quantity int              `json:"quantity"`
}

type ExpandedCart struct {
	ID    string         `json:"id"`
	Items []ExpandedItem `json:"products"`
}
