package cart

import "sync"

// Store holds one cart per active session, keyed by session token. Each
// staff terminal drives its own cart sequentially; the store only guards
// the map itself plus handing out cart pointers.
type Store struct {
	mu    sync.Mutex
	carts map[string]*Cart
}

// NewStore returns an empty session cart store.
func NewStore() *Store {
	return &Store{carts: make(map[string]*Cart)}
}

// Get returns the cart for the given session token, creating an empty one
// on first use.
func (s *Store) Get(token string) *Cart {
	s.mu.Lock()
	defer s.mu.Unlock()

	c, ok := s.carts[token]
	if !ok {
		c = New()
		s.carts[token] = c
	}
	return c
}

// Drop discards the cart for the given session token, if any.
func (s *Store) Drop(token string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.carts, token)
}
