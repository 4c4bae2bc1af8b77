package repo

import (
	"context"
	"sync"

	"shopfront/shared/pkg/models"
)

// UsersMemory checks and inserts under one lock, so concurrent signups for the
// same email cannot both succeed.
type UsersMemory struct {
	mu    sync.RWMutex
	users map[string]models.User
}

func NewUsersMemory() *UsersMemory {
	return &UsersMemory{users: make(map[string]models.User)}
}

func (r *UsersMemory) Find(_ context.Context, email string) (models.User, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	u, ok := r.users[email]
	return u, ok, nil
}

func (r *UsersMemory) Create(_ context.Context, u models.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.users[u.Email]; ok {
		return ErrDuplicate
	}
	r.users[u.Email] = u
	return nil
}

type OrdersMemory struct {
	mu     sync.Mutex
	orders []models.Order
}

func NewOrdersMemory() *OrdersMemory {
	return &OrdersMemory{}
}

func (r *OrdersMemory) Append(_ context.Context, o models.Order) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.orders = append(r.orders, o)
	return nil
}

// Orders returns a copy of everything appended so far. It exists for tests and
// local inspection; the storefront never reads orders back.
func (r *OrdersMemory) Orders() []models.Order {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]models.Order, len(r.orders))
	copy(out, r.orders)
	return out
}
