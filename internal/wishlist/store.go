package wishlist

import (
	"encoding/json"
	"sync"

	"go.uber.org/zap"

	"github.com/trendythreads/storefront/internal/domain"
	"github.com/trendythreads/storefront/internal/storage"
)

// Store holds the shopper's wishlist: a persisted list with set
// semantics over the product ID. Every mutation rewrites the full
// persisted list synchronously; expected sizes are tens of items, so
// there is no batching or debouncing.
//
// Clear is not confirmation-gated here. The calling UI is responsible
// for obtaining a yes/no decision before invoking it.
type Store struct {
	mu      sync.Mutex
	items   []domain.WishlistItem
	storage *storage.Store
	logger  *zap.Logger

	subMu   sync.Mutex
	subs    map[int]func()
	nextSub int
}

// NewStore creates a wishlist store hydrated from persisted storage.
// Missing or corrupt data yields an empty list; corruption is logged
// and never surfaced.
func NewStore(st *storage.Store, logger *zap.Logger) *Store {
	s := &Store{
		storage: st,
		logger:  logger,
		subs:    make(map[int]func()),
	}
	s.items = s.hydrate()
	return s
}

func (s *Store) hydrate() []domain.WishlistItem {
	data, err := s.storage.Read(storage.KeyWishlist)
	if err != nil || data == nil {
		return nil
	}

	var items []domain.WishlistItem
	if err := json.Unmarshal(data, &items); err != nil {
		s.logger.Warn("Discarding corrupt wishlist data",
			zap.Error(err),
		)
		return nil
	}
	return items
}

// Add appends item unless an entry with the same ID already exists,
// in which case it is a no-op.
func (s *Store) Add(item domain.WishlistItem) {
	s.mu.Lock()
	for _, it := range s.items {
		if it.ID == item.ID {
			s.mu.Unlock()
			return
		}
	}
	s.items = append(s.items, item)
	s.persist()
	s.mu.Unlock()

	s.notify()
}

// Remove drops the entry with the given ID
func (s *Store) Remove(id string) {
	s.mu.Lock()
	kept := s.items[:0]
	for _, it := range s.items {
		if it.ID != id {
			kept = append(kept, it)
		}
	}
	s.items = kept
	s.persist()
	s.mu.Unlock()

	s.notify()
}

// Contains reports whether an entry with the given ID exists
func (s *Store) Contains(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, it := range s.items {
		if it.ID == id {
			return true
		}
	}
	return false
}

// Clear empties the wishlist
func (s *Store) Clear() {
	s.mu.Lock()
	s.items = nil
	s.persist()
	s.mu.Unlock()

	s.notify()
}

// Count returns the number of wishlist entries
func (s *Store) Count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.items)
}

// Items returns a copy of the wishlist contents in insertion order
func (s *Store) Items() []domain.WishlistItem {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]domain.WishlistItem, len(s.items))
	copy(out, s.items)
	return out
}

// Subscribe registers fn to run after every mutation. The returned
// function cancels the subscription.
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
		s.logger.Error("Failed to encode wishlist", zap.Error(err))
		return
	}
	if err := s.storage.Write(storage.KeyWishlist, data); err != nil {
		s.logger.Error("Failed to persist wishlist", zap.Error(err))
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
