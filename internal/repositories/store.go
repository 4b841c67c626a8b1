// Package repositories provides the data access layer. All persistence goes
// through the Store interface so workflows can run against Postgres in
// production and an in-memory implementation in tests.
package repositories

import (
	"context"
	"time"

	"github.com/YhormT/kelis-backend/internal/models"
)

// EntryFilter narrows ledger entry listings. Nil fields are ignored; the
// date range is inclusive on both ends.
type EntryFilter struct {
	UserID    *uint
	StartDate *time.Time
	EndDate   *time.Time
	Type      string
}

// OrderFilter narrows order listings for the admin views.
type OrderFilter struct {
	UserID     *uint
	Status     string
	ItemStatus string
	StartDate  *time.Time
	EndDate    *time.Time
	Limit      int
	Offset     int
}

// TopUpFilter narrows top-up listings.
type TopUpFilter struct {
	StartDate *time.Time
	EndDate   *time.Time
	Status    string
}

// Store bundles every repository behind one transactional boundary.
//
// Atomic runs fn against a store bound to a single storage transaction:
// everything fn does commits together or rolls back together. Scopes are
// never nested; a workflow opens exactly one.
type Store interface {
	Atomic(ctx context.Context, fn func(Store) error) error

	// Users
	GetUser(ctx context.Context, id uint) (*models.User, error)
	// GetUserForUpdate reads the user while locking the row for the rest of
	// the current atomic scope, so a balance check and the debit that follows
	// it cannot interleave with a concurrent scope's.
	GetUserForUpdate(ctx context.Context, id uint) (*models.User, error)
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
	CreateUser(ctx context.Context, user *models.User) error
	// IncrementBalance atomically adds amount to the user's wallet balance
	// and returns the resulting value in the same storage statement. It is
	// the single serialization point for concurrent balance changes.
	IncrementBalance(ctx context.Context, userID uint, amount float64) (float64, error)

	// Ledger
	CreateEntry(ctx context.Context, entry *models.Transaction) error
	// FindEntryByReference returns (nil, nil) when no matching entry exists.
	FindEntryByReference(ctx context.Context, userID uint, entryType, reference string) (*models.Transaction, error)
	ListEntries(ctx context.Context, f EntryFilter) ([]models.Transaction, error)
	// ReserveOperation claims (operationType, reference) for exactly one
	// caller. It returns false when the key was already taken.
	ReserveOperation(ctx context.Context, operationType, reference string) (bool, error)

	// Carts
	// CartWithItems returns (nil, nil) when the user has no cart yet.
	CartWithItems(ctx context.Context, userID uint) (*models.Cart, error)
	GetOrCreateCart(ctx context.Context, userID uint) (*models.Cart, error)
	AddCartItem(ctx context.Context, item *models.CartItem) error
	RemoveCartItem(ctx context.Context, cartID, itemID uint) error
	SetCartMobileNumber(ctx context.Context, cartID uint, mobileNumber string) error
	ClearCartItems(ctx context.Context, cartID uint) error

	// Orders
	CreateOrder(ctx context.Context, order *models.Order) error
	GetOrder(ctx context.Context, id uint) (*models.Order, error)
	OrderItemByID(ctx context.Context, id uint) (*models.OrderItem, error)
	UpdateOrderItemStatus(ctx context.Context, itemID uint, status string) error
	UpdateOrderItemsStatus(ctx context.Context, orderID uint, status string) (int64, error)
	UpdateOrderStatus(ctx context.Context, orderID uint, status string) error
	ListOrders(ctx context.Context, f OrderFilter) ([]models.Order, error)
	CountOrders(ctx context.Context) (int64, error)
	CountOrdersByItemStatus(ctx context.Context, status string) (int64, error)

	// Top-ups
	CreateTopUp(ctx context.Context, topUp *models.TopUp) error
	TopUpByID(ctx context.Context, id uint) (*models.TopUp, error)
	TopUpByReference(ctx context.Context, referenceID string) (*models.TopUp, error)
	SetTopUpStatus(ctx context.Context, id uint, status string) error
	ListTopUps(ctx context.Context, f TopUpFilter) ([]models.TopUp, error)

	// Inbound SMS
	CreateSms(ctx context.Context, msg *models.SmsMessage) error
	UnprocessedSmsByReference(ctx context.Context, reference string) (*models.SmsMessage, error)
	MarkSmsProcessed(ctx context.Context, id uint) error

	// Products (catalog collaborator surface, read plus seed)
	GetProduct(ctx context.Context, id uint) (*models.Product, error)
	CreateProduct(ctx context.Context, product *models.Product) error
}
