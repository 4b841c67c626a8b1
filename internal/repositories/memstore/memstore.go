// Package memstore is an in-memory repositories.Store used by the service
// tests. It reproduces the storage contract the workflows rely on: atomic
// scopes commit or roll back as a whole (copy-on-write snapshots), scopes
// against the same store are serialized by a mutex the way the database
// serializes transactions touching the same rows, and commit failures can be
// injected to exercise the retry paths.
package memstore

import (
	"context"
	"sync"

	"github.com/YhormT/kelis-backend/internal/models"
	"github.com/YhormT/kelis-backend/internal/repositories"
)

type Store struct {
	mu sync.Mutex
	st *state

	// failCommits makes the next n atomic scopes fail at commit with
	// failErr after running their callback, discarding all effects.
	failCommits int
	failErr     error
}

func New() *Store {
	return &Store{st: newState()}
}

// FailNextCommits arranges for the next n atomic scopes to roll back and
// return err, simulating transient storage failures at commit time.
func (s *Store) FailNextCommits(n int, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failCommits = n
	s.failErr = err
}

// Atomic runs fn against a private copy of the state and publishes the copy
// only if fn succeeds and no commit fault is pending.
func (s *Store) Atomic(ctx context.Context, fn func(repositories.Store) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	work := s.st.clone()
	if err := fn(&view{st: work}); err != nil {
		return err
	}
	if s.failCommits > 0 {
		s.failCommits--
		return s.failErr
	}
	s.st = work
	return nil
}

// view exposes the repository methods over one state instance without
// locking; it is only ever used while the owning Store's mutex is held.
type view struct {
	st *state
}

// Atomic on a view runs fn directly: the enclosing scope already owns the
// transaction.
func (v *view) Atomic(ctx context.Context, fn func(repositories.Store) error) error {
	return fn(v)
}

// locked returns a view over the live state; the caller must hold mu via the
// returned unlock func. Non-transactional calls behave like single-statement
// scopes.
func (s *Store) locked() (*view, func()) {
	s.mu.Lock()
	return &view{st: s.st}, s.mu.Unlock
}

type state struct {
	users      map[uint]models.User
	products   map[uint]models.Product
	carts      map[uint]models.Cart
	cartItems  map[uint]models.CartItem
	orders     map[uint]models.Order
	orderItems map[uint]models.OrderItem
	topUps     map[uint]models.TopUp
	entries    []models.Transaction
	reserved   map[string]bool
	sms        map[uint]models.SmsMessage
	nextID     uint
}

func newState() *state {
	return &state{
		users:      map[uint]models.User{},
		products:   map[uint]models.Product{},
		carts:      map[uint]models.Cart{},
		cartItems:  map[uint]models.CartItem{},
		orders:     map[uint]models.Order{},
		orderItems: map[uint]models.OrderItem{},
		topUps:     map[uint]models.TopUp{},
		reserved:   map[string]bool{},
		sms:        map[uint]models.SmsMessage{},
	}
}

func (st *state) clone() *state {
	c := newState()
	for k, v := range st.users {
		c.users[k] = v
	}
	for k, v := range st.products {
		c.products[k] = v
	}
	for k, v := range st.carts {
		c.carts[k] = v
	}
	for k, v := range st.cartItems {
		c.cartItems[k] = v
	}
	for k, v := range st.orders {
		c.orders[k] = v
	}
	for k, v := range st.orderItems {
		c.orderItems[k] = v
	}
	for k, v := range st.topUps {
		c.topUps[k] = v
	}
	for k, v := range st.sms {
		c.sms[k] = v
	}
	for k, v := range st.reserved {
		c.reserved[k] = v
	}
	c.entries = append(c.entries, st.entries...)
	c.nextID = st.nextID
	return c
}

func (st *state) id() uint {
	st.nextID++
	return st.nextID
}
