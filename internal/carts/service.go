package carts

import (
	"context"
	"sync"

	"github.com/ariefcatur/go-realtime-catalog.git/internal/catalog"
)

// Store adalah kontrak persistence yang dibutuhkan aggregator.
type Store interface {
	Create(ctx context.Context) (Cart, error)
	Get(ctx context.Context, id string) (Cart, error)
	GetExpanded(ctx context.Context, id string) (ExpandedCart, error)
	SaveItems(ctx context.Context, cartID string, items []LineItem) (Cart, error)
}

type ProductGetter interface {
	Get(ctx context.Context, id string) (catalog.Product, error)
}

// Service menegakkan semantik line item di atas Store.
// Semua mutasi ke satu cart diserialisasi lewat lock per cart id, supaya
// read-modify-write dua request concurrent tidak saling menimpa.
type Service struct {
	store    Store
	products ProductGetter

	locks sync.Map // cart id -> *sync.Mutex; entry tidak pernah dibuang
}

func NewService(store Store, products ProductGetter) *Service {
	return &Service{store: store, products: products}
}

func (s *Service) lock(cartID string) func() {
	v, _ := s.locks.LoadOrStore(cartID, &sync.Mutex{})
	mu := v.(*sync.Mutex)
	mu.Lock()
	return mu.Unlock
}

func (s *Service) Create(ctx context.Context) (Cart, error) {
	return s.store.Create(ctx)
}

func (s *Service) Get(ctx context.Context, cartID string) (Cart, error) {
	return s.store.Get(ctx, cartID)
}

// GetExpanded: join read-side, tidak membawa invariant apa pun.
func (s *Service) GetExpanded(ctx context.Context, cartID string) (ExpandedCart, error) {
	return s.store.GetExpanded(ctx, cartID)
}

// AddItem menambah product ke cart: kalau line item-nya sudah ada,
// quantity naik 1; kalau belum, append line item baru dengan quantity 1.
func (s *Service) AddItem(ctx context.Context, cartID, productID string) (Cart, error) {
	defer s.lock(cartID)()

	cart, err := s.store.Get(ctx, cartID)
	if err != nil {
		return Cart{}, err
	}
	if _, err := s.products.Get(ctx, productID); err != nil {
		return Cart{}, err
	}

	found := false
	for i := range cart.Items {
		if cart.Items[i].ProductID == productID {
			cart.Items[i].Quantity++
			found = true
			break
		}
	}
	if !found {
		cart.Items = append(cart.Items, LineItem{ProductID: productID, Quantity: 1})
	}
	return s.store.SaveItems(ctx, cartID, cart.Items)
}

// SetQuantity menimpa quantity line item yang sudah ada. Nilainya tidak
// divalidasi (nol/negatif ikut tersimpan, mengikuti behavior lama).
func (s *Service) SetQuantity(ctx context.Context, cartID, productID string, quantity int) (Cart, error) {
	defer s.lock(cartID)()

	cart, err := s.store.Get(ctx, cartID)
	if err != nil {
		return Cart{}, err
	}
	found := false
	for i := range cart.Items {
		if cart.Items[i].ProductID == productID {
			cart.Items[i].Quantity = quantity
			found = true
			break
		}
	}
	if !found {
		return Cart{}, ErrItemNotFound
	}
	return s.store.SaveItems(ctx, cartID, cart.Items)
}

// RemoveItem membuang line item product tsb; no-op kalau tidak ada.
func (s *Service) RemoveItem(ctx context.Context, cartID, productID string) (Cart, error) {
	defer s.lock(cartID)()

	cart, err := s.store.Get(ctx, cartID)
	if err != nil {
		return Cart{}, err
	}
	kept := cart.Items[:0]
	for _, it := range cart.Items {
		if it.ProductID != productID {
			kept = append(kept, it)
		}
	}
	return s.store.SaveItems(ctx, cartID, kept)
}

// ReplaceItems menimpa seluruh line item dengan data dari caller, tanpa
// validasi per item.
func (s *Service) ReplaceItems(ctx context.Context, cartID string, items []LineItem) (Cart, error) {
	defer s.lock(cartID)()

	if _, err := s.store.Get(ctx, cartID); err != nil {
		return Cart{}, err
	}
	return s.store.SaveItems(ctx, cartID, items)
}

func (s *Service) Clear(ctx context.Context, cartID string) (Cart, error) {
	defer s.lock(cartID)()

	if _, err := s.store.Get(ctx, cartID); err != nil {
		return Cart{}, err
	}
	return s.store.SaveItems(ctx, cartID, nil)
}
