package cart

import (
	"encoding/json"
	"sync"

	"go.uber.org/zap"

	"github.com/trendythreads/storefront/internal/domain"
	"github.com/trendythreads/storefront/internal/storage"
)

// Quantity bound applied when an item carries no stock figure
const defaultMaxQuantity = 99

// Store holds the shopper's cart: a persisted list of items keyed by
// the (id, size, color) variant triple. Every mutation rewrites the
// whole persisted list and then notifies subscribers, who re-read the
// store themselves (the notification carries no payload).
type Store struct {
	mu      sync.Mutex
	items   []domain.CartItem
	storage *storage.Store
	logger  *zap.Logger

	subMu   sync.Mutex
	subs    map[int]func()
	nextSub int
}

// NewStore creates a cart store hydrated from persisted storage.
// A missing or corrupt document yields an empty cart; corruption is
// logged but never surfaced to callers.
func NewStore(st *storage.Store, logger *zap.Logger) *Store {
	s := &Store{
		storage: st,
		logger:  logger,
		subs:    make(map[int]func()),
	}
	s.items = s.hydrate()
	return s
}

func (s *Store) hydrate() []domain.CartItem {
	data, err := s.storage.Read(storage.KeyCart)
	if err != nil || data == nil {
		return nil
	}

	var items []domain.CartItem
	if err := json.Unmarshal(data, &items); err != nil {
		s.logger.Warn("Discarding corrupt cart data",
			zap.Error(err),
		)
		return nil
	}
	return items
}

// Add merges item into the cart. An existing entry for the same
// (id, size, color) variant has its quantity incremented by
// item.Quantity; otherwise the item is appended unchanged.
func (s *Store) Add(item domain.CartItem) {
	s.mu.Lock()
	merged := false
	for i := range s.items {
		if s.items[i].SameVariant(item.ID, item.Size, item.Color) {
			s.items[i].Quantity += item.Quantity
			merged = true
			break
		}
	}
	if !merged {
		s.items = append(s.items, item)
	}
	s.persist()
	s.mu.Unlock()

	s.notify()
}

// Remove drops the entry matching the (id, size, color) triple. An
// empty size or color matches only entries where that dimension is
// likewise absent.
func (s *Store) Remove(id, size, color string) {
	s.mu.Lock()
	kept := s.items[:0]
	for _, it := range s.items {
		if !it.SameVariant(id, size, color) {
			kept = append(kept, it)
		}
	}
	s.items = kept
	s.persist()
	s.mu.Unlock()

	s.notify()
}

// UpdateQuantity applies delta to the matching entry's quantity,
// clamped to [1, stock] (or [1, 99] when the item carries no stock
// figure). Non-matching entries pass through unchanged.
func (s *Store) UpdateQuantity(id string, delta int, size, color string) {
	s.mu.Lock()
	for i := range s.items {
		if !s.items[i].SameVariant(id, size, color) {
			continue
		}

		max := defaultMaxQuantity
		if s.items[i].Stock != nil {
			max = *s.items[i].Stock
		}
		// A zero or negative stock figure must not push the quantity
		// below the floor of one.
		if max < 1 {
			max = 1
		}

		q := s.items[i].Quantity + delta
		if q < 1 {
			q = 1
		}
		if q > max {
			q = max
		}
		s.items[i].Quantity = q
	}
	s.persist()
	s.mu.Unlock()

	s.notify()
}

// Clear empties the cart
func (s *Store) Clear() {
	s.mu.Lock()
	s.items = nil
	s.persist()
	s.mu.Unlock()

	s.notify()
}

// Items returns a copy of the cart contents in insertion order
func (s *Store) Items() []domain.CartItem {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]domain.CartItem, len(s.items))
	copy(out, s.items)
	return out
}

// Total returns the sum of price*quantity over all entries. A missing
// price counts as 0 and a missing quantity as 1.
func (s *Store) Total() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()

	total := 0.0
	for _, it := range s.items {
		q := it.Quantity
		if q <= 0 {
			q = 1
		}
		total += it.Price * float64(q)
	}
	return total
}

// ItemCount returns the sum of quantities (missing quantity counts as 1)
func (s *Store) ItemCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	count := 0
	for _, it := range s.items {
		q := it.Quantity
		if q <= 0 {
			q = 1
		}
		count += q
	}
	return count
}

// Subscribe registers fn to run after every mutation. The returned
// function cancels the subscription. Header badges and other count
// displays register here instead of listening for a global event.
func (s *Store) Subscribe(fn func()) func() {
	s.subMu.Lock()
	id := s.nextSub
	s.nextSub++
	s.subs[id] = fn
	s.subMu.Unlock()

	return func() {
		s.subMu.Lock()
		delete(s.subs, id)
		s.subMu.Unlock()
	}
}

// persist is called with s.mu held
func (s *Store) persist() {
	data, err := json.Marshal(s.items)
	if err != nil {
		s.logger.Error("Failed to encode cart", zap.Error(err))
		return
	}
	if err := s.storage.Write(storage.KeyCart, data); err != nil {
		s.logger.Error("Failed to persist cart", zap.Error(err))
	}
}

func (s *Store) notify() {
	s.subMu.Lock()
	fns := make([]func(), 0, len(s.subs))
	for _, fn := range s.subs {
		fns = append(fns, fn)
	}
	s.subMu.Unlock()

	for _, fn := range fns {
		fn()
	}
}
