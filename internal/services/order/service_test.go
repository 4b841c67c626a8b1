package order

import (
	"context"
	"fmt"
	"sync"
	"testing"

	errs "github.com/YhormT/kelis-backend/internal/errors"
	"github.com/YhormT/kelis-backend/internal/models"
	"github.com/YhormT/kelis-backend/internal/repositories"
	"github.com/YhormT/kelis-backend/internal/repositories/memstore"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fixture struct {
	store   *memstore.Store
	service *Service
	user    *models.User
	product *models.Product
}

// newFixture seeds one user with the given balance and one product in the
// catalog.
func newFixture(t *testing.T, balance, price float64) *fixture {
	t.Helper()
	store := memstore.New()
	user := &models.User{Name: "Kofi", Email: "kofi@example.com", WalletBalance: balance}
	require.NoError(t, store.CreateUser(context.Background(), user))
	product := &models.Product{Name: "Data Bundle 5GB", Price: price}
	require.NoError(t, store.CreateProduct(context.Background(), product))
	return &fixture{
		store:   store,
		service: NewService(store),
		user:    user,
		product: product,
	}
}

func (f *fixture) fillCart(t *testing.T, quantity int) {
	t.Helper()
	cart, err := f.store.GetOrCreateCart(context.Background(), f.user.ID)
	require.NoError(t, err)
	require.NoError(t, f.store.AddCartItem(context.Background(), &models.CartItem{
		CartID:    cart.ID,
		ProductID: f.product.ID,
		Quantity:  quantity,
	}))
}

func (f *fixture) entriesOfType(t *testing.T, entryType string) []models.Transaction {
	t.Helper()
	entries, err := f.store.ListEntries(context.Background(), repositories.EntryFilter{
		UserID: &f.user.ID,
		Type:   entryType,
	})
	require.NoError(t, err)
	return entries
}

func (f *fixture) balance(t *testing.T) float64 {
	t.Helper()
	user, err := f.store.GetUser(context.Background(), f.user.ID)
	require.NoError(t, err)
	return user.WalletBalance
}

func TestSubmitCart_EmptyCart(t *testing.T) {
	f := newFixture(t, 100, 10)

	_, err := f.service.SubmitCart(context.Background(), f.user.ID, "")
	require.ErrorIs(t, err, errs.ErrCartEmpty)
}

func TestSubmitCart_InsufficientBalance(t *testing.T) {
	f := newFixture(t, 50, 30)
	f.fillCart(t, 2) // total 60 against balance 50

	_, err := f.service.SubmitCart(context.Background(), f.user.ID, "")
	require.ErrorIs(t, err, errs.ErrInsufficientBalance)

	// The whole scope rolled back: no order, no entry, cart intact.
	assert.Equal(t, 50.0, f.balance(t))
	assert.Empty(t, f.entriesOfType(t, models.EntryTypeOrder))
	cart, err := f.store.CartWithItems(context.Background(), f.user.ID)
	require.NoError(t, err)
	require.NotNil(t, cart)
	assert.Len(t, cart.Items, 1)
}

func TestSubmitCart_Success(t *testing.T) {
	f := newFixture(t, 100, 40)
	f.fillCart(t, 2) // total 80

	order, err := f.service.SubmitCart(context.Background(), f.user.ID, "0241234567")
	require.NoError(t, err)
	require.NotNil(t, order)
	require.Len(t, order.Items, 1)
	assert.Equal(t, models.StatusPending, order.Items[0].Status)
	assert.Equal(t, "0241234567", order.MobileNumber)

	assert.Equal(t, 20.0, f.balance(t))

	entries := f.entriesOfType(t, models.EntryTypeOrder)
	require.Len(t, entries, 1)
	assert.Equal(t, -80.0, entries[0].Amount)
	assert.Equal(t, 100.0, entries[0].PreviousBalance)
	assert.Equal(t, 20.0, entries[0].Balance)
	assert.Equal(t, fmt.Sprintf("order:%d", order.ID), entries[0].Reference)

	cart, err := f.store.CartWithItems(context.Background(), f.user.ID)
	require.NoError(t, err)
	require.NotNil(t, cart)
	assert.Empty(t, cart.Items, "submission must clear the cart")
}

func TestSubmitCart_ConcurrentSubmissionsSpendOnce(t *testing.T) {
	f := newFixture(t, 100, 100)
	f.fillCart(t, 1)

	var wg sync.WaitGroup
	results := make([]error, 2)
	for i := 0; i < 2; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, results[i] = f.service.SubmitCart(context.Background(), f.user.ID, "")
		}(i)
	}
	wg.Wait()

	var successes int
	for _, err := range results {
		if err == nil {
			successes++
		} else {
			assert.ErrorIs(t, err, errs.ErrCartEmpty)
		}
	}
	assert.Equal(t, 1, successes, "exactly one submission may win")
	assert.Equal(t, 0.0, f.balance(t))
	assert.Len(t, f.entriesOfType(t, models.EntryTypeOrder), 1)
}

func TestUpdateItemStatus_InvalidStatus(t *testing.T) {
	f := newFixture(t, 100, 10)

	_, err := f.service.UpdateItemStatus(context.Background(), 1, "Shipped")
	require.ErrorIs(t, err, errs.ErrInvalidOrderStatus)
}

func TestUpdateItemStatus_TransitionRules(t *testing.T) {
	f := newFixture(t, 100, 10)
	f.fillCart(t, 1)
	order, err := f.service.SubmitCart(context.Background(), f.user.ID, "")
	require.NoError(t, err)
	itemID := order.Items[0].ID

	_, err = f.service.UpdateItemStatus(context.Background(), itemID, models.StatusCompleted)
	require.NoError(t, err)

	// Completed is terminal.
	_, err = f.service.UpdateItemStatus(context.Background(), itemID, models.StatusCancelled)
	require.ErrorIs(t, err, errs.ErrInvalidStatusTransition)
	_, err = f.service.UpdateItemStatus(context.Background(), itemID, models.StatusCompleted)
	require.ErrorIs(t, err, errs.ErrInvalidStatusTransition)
}

func TestUpdateItemStatus_CancelRefundsOnce(t *testing.T) {
	f := newFixture(t, 100, 30)
	f.fillCart(t, 2) // total 60
	order, err := f.service.SubmitCart(context.Background(), f.user.ID, "")
	require.NoError(t, err)
	itemID := order.Items[0].ID
	require.Equal(t, 40.0, f.balance(t))

	// "Canceled" is accepted and normalized.
	item, err := f.service.UpdateItemStatus(context.Background(), itemID, "Canceled")
	require.NoError(t, err)
	assert.Equal(t, models.StatusCancelled, item.Status)
	assert.Equal(t, 100.0, f.balance(t))

	// Re-cancelling is a silent no-op for the refund.
	_, err = f.service.UpdateItemStatus(context.Background(), itemID, models.StatusCancelled)
	require.NoError(t, err)
	assert.Equal(t, 100.0, f.balance(t))

	refunds := f.entriesOfType(t, models.EntryTypeOrderItemRefund)
	require.Len(t, refunds, 1)
	assert.Equal(t, 60.0, refunds[0].Amount)
	assert.Equal(t, fmt.Sprintf("orderItem:%d", itemID), refunds[0].Reference)

	// The zero-amount status entry is written on every call.
	statusEntries := f.entriesOfType(t, models.EntryTypeOrderItemStatus)
	assert.Len(t, statusEntries, 2)
	for _, e := range statusEntries {
		assert.Zero(t, e.Amount)
	}
}

func TestUpdateOrderItemsStatus_CancelRefundsOriginalDebit(t *testing.T) {
	f := newFixture(t, 100, 100)
	f.fillCart(t, 1)
	order, err := f.service.SubmitCart(context.Background(), f.user.ID, "")
	require.NoError(t, err)
	require.Equal(t, 0.0, f.balance(t))

	// Reprice the product after the sale; the refund must still match the
	// original debit, not the new price.
	f.product.Price = 250
	require.NoError(t, f.store.CreateProduct(context.Background(), f.product))

	result, err := f.service.UpdateOrderItemsStatus(context.Background(), order.ID, models.StatusCancelled)
	require.NoError(t, err)
	assert.Equal(t, int64(1), result.UpdatedCount)
	assert.Equal(t, 100.0, result.RefundAmount)
	assert.Equal(t, 100.0, f.balance(t))

	refunds := f.entriesOfType(t, models.EntryTypeOrderItemsRefund)
	require.Len(t, refunds, 1)
	assert.Equal(t, 100.0, refunds[0].Amount)
	assert.Equal(t, fmt.Sprintf("order_items_refund:%d", order.ID), refunds[0].Reference)

	// Second cancellation: no further refund, no further entries.
	result, err = f.service.UpdateOrderItemsStatus(context.Background(), order.ID, models.StatusCancelled)
	require.NoError(t, err)
	assert.Zero(t, result.RefundAmount)
	assert.Equal(t, 100.0, f.balance(t))
	assert.Len(t, f.entriesOfType(t, models.EntryTypeOrderItemsRefund), 1)
	assert.Len(t, f.entriesOfType(t, models.EntryTypeOrderItemsStatus), 1)
}

func TestUpdateOrderItemsStatus_OrderNotFound(t *testing.T) {
	f := newFixture(t, 100, 10)

	_, err := f.service.UpdateOrderItemsStatus(context.Background(), 99, models.StatusCancelled)
	require.ErrorIs(t, err, errs.ErrOrderNotFound)
}

func TestProcessOrder(t *testing.T) {
	f := newFixture(t, 100, 10)
	f.fillCart(t, 1)
	order, err := f.service.SubmitCart(context.Background(), f.user.ID, "")
	require.NoError(t, err)

	_, err = f.service.ProcessOrder(context.Background(), order.ID, models.StatusCancelled)
	require.ErrorIs(t, err, errs.ErrInvalidOrderStatus, "cancellation must go through the bulk item path")

	processed, err := f.service.ProcessOrder(context.Background(), order.ID, models.StatusProcessing)
	require.NoError(t, err)
	assert.Equal(t, models.StatusProcessing, processed.Status)

	statusEntries := f.entriesOfType(t, models.EntryTypeOrderStatus)
	require.Len(t, statusEntries, 1)
	assert.Zero(t, statusEntries[0].Amount)
	assert.Equal(t, 90.0, f.balance(t), "status changes must not move money")
}

func TestListAndStats(t *testing.T) {
	f := newFixture(t, 1000, 10)
	for i := 0; i < 3; i++ {
		f.fillCart(t, 1)
		_, err := f.service.SubmitCart(context.Background(), f.user.ID, "")
		require.NoError(t, err)
	}

	orders, err := f.service.History(context.Background(), f.user.ID)
	require.NoError(t, err)
	assert.Len(t, orders, 3)

	completed, err := f.service.CompletedOrders(context.Background(), f.user.ID)
	require.NoError(t, err)
	assert.Empty(t, completed)

	paged, err := f.service.List(context.Background(), repositories.OrderFilter{Limit: 2})
	require.NoError(t, err)
	assert.Len(t, paged, 2)

	_, err = f.service.List(context.Background(), repositories.OrderFilter{ItemStatus: "Bogus"})
	require.ErrorIs(t, err, errs.ErrInvalidOrderStatus)

	stats, err := f.service.GetStats(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(3), stats.Total)
	assert.Equal(t, int64(3), stats.Pending)
	assert.Zero(t, stats.Processing)
	assert.Zero(t, stats.Completed)
}
