// Package basket owns the authoritative local basket and keeps it in sync
// with the remote basket resource.
package basket

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync"

	"github.com/AhmaadMostafa/Talabat-FrontEnd/internal/domain"
	"github.com/AhmaadMostafa/Talabat-FrontEnd/internal/storage"
)

// API is the slice of the storefront client the store needs.
type API interface {
	Basket(ctx context.Context, id string) (*domain.Basket, error)
	SetBasket(ctx context.Context, basket *domain.Basket) (*domain.Basket, error)
	DeleteBasket(ctx context.Context, id string) error
}

var ErrNoBasket = errors.New("no basket")

// Store is the single writer of the basket and of the durable basket id.
// Every mutation holds mu across its remote round-trip, so two mutations
// issued back-to-back cannot both read the same in-memory snapshot and
// clobber each other on resolution.
type Store struct {
	mu     sync.Mutex
	api    API
	state  storage.Store
	basket *domain.Basket
	totals domain.BasketTotals
}

func NewStore(api API, state storage.Store) *Store {
	return &Store{api: api, state: state}
}

// Load restores the basket on startup: if a durable basket id exists, the
// remote basket is re-fetched. Failures degrade to "no basket" so the caller
// is never blocked; they are logged, not raised.
func (s *Store) Load(ctx context.Context) {
	id, err := s.state.Get(ctx, storage.KeyBasketID)
	if errors.Is(err, storage.ErrNotFound) {
		return
	}
	if err != nil {
		log.Printf("load basket id: %v", err)
		return
	}
	s.Fetch(ctx, id)
}

// Fetch replaces local state with the remote basket. A fetch failure leaves
// the current state untouched and is only logged.
func (s *Store) Fetch(ctx context.Context, id string) {
	basket, err := s.api.Basket(ctx, id)
	if err != nil {
		log.Printf("fetch basket %s: %v", id, err)
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.replace(basket)
}

// AddItem puts quantity units of the product into the basket, creating the
// basket (with a fresh id) if none exists and merging into an existing line
// for the same product. The mutation is durable only once persist succeeds.
func (s *Store) AddItem(ctx context.Context, product *domain.Product, quantity int) error {
	if quantity < 1 {
		quantity = 1
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	basket := s.basket.Clone()
	if basket == nil {
		basket = domain.NewBasket()
	}

	if item := basket.Item(product.ID); item != nil {
		item.Quantity += quantity
	} else {
		basket.Items = append(basket.Items, domain.BasketItem{
			ID:          product.ID,
			ProductName: product.Name,
			Price:       product.Price,
			Quantity:    quantity,
			PictureURL:  product.PictureURL,
			Brand:       product.Brand,
			Category:    product.Category,
		})
	}

	return s.persist(ctx, basket)
}

// IncrementItem raises the matching item's quantity by one.
func (s *Store) IncrementItem(ctx context.Context, productID int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	basket := s.basket.Clone()
	if basket == nil {
		return ErrNoBasket
	}
	item := basket.Item(productID)
	if item == nil {
		return fmt.Errorf("increment item %d: not in basket", productID)
	}
	item.Quantity++
	return s.persist(ctx, basket)
}

// DecrementItem lowers the matching item's quantity by one. Quantity never
// drops below one: decrementing at one removes the item instead.
func (s *Store) DecrementItem(ctx context.Context, productID int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	basket := s.basket.Clone()
	if basket == nil {
		return ErrNoBasket
	}
	item := basket.Item(productID)
	if item == nil {
		return fmt.Errorf("decrement item %d: not in basket", productID)
	}
	if item.Quantity <= 1 {
		return s.removeLocked(ctx, basket, productID)
	}
	item.Quantity--
	return s.persist(ctx, basket)
}

// RemoveItem drops the item entirely. Removing the last item deletes the
// remote basket and clears all local state including the durable id; that
// delete surfaces its failure to the caller.
func (s *Store) RemoveItem(ctx context.Context, productID int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	basket := s.basket.Clone()
	if basket == nil {
		return ErrNoBasket
	}
	return s.removeLocked(ctx, basket, productID)
}

func (s *Store) removeLocked(ctx context.Context, basket *domain.Basket, productID int64) error {
	kept := basket.Items[:0]
	for _, item := range basket.Items {
		if item.ID != productID {
			kept = append(kept, item)
		}
	}
	basket.Items = kept

	if len(basket.Items) > 0 {
		return s.persist(ctx, basket)
	}

	if err := s.api.DeleteBasket(ctx, basket.ID); err != nil {
		return fmt.Errorf("delete basket: %w", err)
	}
	s.clearLocked(ctx)
	return nil
}

// persist is the single write path: it upserts the basket remotely, adopts
// the server's representation, recomputes totals and records the durable id.
// Callers must hold mu. On failure local state is not replaced, so nothing
// looks durable that is not.
func (s *Store) persist(ctx context.Context, basket *domain.Basket) error {
	updated, err := s.api.SetBasket(ctx, basket)
	if err != nil {
		return fmt.Errorf("persist basket: %w", err)
	}

	s.replace(updated)
	if err := s.state.Set(ctx, storage.KeyBasketID, updated.ID); err != nil {
		return fmt.Errorf("persist basket id: %w", err)
	}
	return nil
}

// replace swaps in a new basket and recomputes totals. Callers hold mu.
func (s *Store) replace(basket *domain.Basket) {
	s.basket = basket
	s.totals = basket.Totals()
}

// Adopt replaces local state with a representation the server already
// returned elsewhere (e.g. from the payment-intent endpoint), without
// re-persisting it.
func (s *Store) Adopt(basket *domain.Basket) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.replace(basket.Clone())
}

// SetBasket persists a caller-modified basket through the single write path,
// e.g. after checkout stamps a delivery method onto it.
func (s *Store) SetBasket(ctx context.Context, basket *domain.Basket) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.persist(ctx, basket.Clone())
}

// Clear discards the basket and the durable id without contacting the
// server. Used after order creation, when the remote basket is torn down
// server-side.
func (s *Store) Clear(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.clearLocked(ctx)
}

func (s *Store) clearLocked(ctx context.Context) {
	s.basket = nil
	s.totals = domain.BasketTotals{}
	if err := s.state.Delete(ctx, storage.KeyBasketID); err != nil {
		log.Printf("clear basket id: %v", err)
	}
}

// Basket returns a copy of the current basket, or nil when absent.
func (s *Store) Basket() *domain.Basket {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.basket.Clone()
}

// Totals returns the totals derived at the last state change.
func (s *Store) Totals() domain.BasketTotals {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.totals
}
