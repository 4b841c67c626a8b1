package transaction

import (
	"context"
	"testing"
	"time"

	"github.com/YhormT/kelis-backend/internal/models"
	"github.com/YhormT/kelis-backend/internal/repositories/memstore"
	"github.com/YhormT/kelis-backend/internal/services/ledger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seedLedger(t *testing.T) (*memstore.Store, *models.User) {
	t.Helper()
	store := memstore.New()
	user := &models.User{Name: "Yaw", Email: "yaw@example.com"}
	require.NoError(t, store.CreateUser(context.Background(), user))

	svc := ledger.NewService(store)
	appends := []struct {
		amount    float64
		entryType string
	}{
		{100, models.EntryTypeTopUpApproved},
		{-40, models.EntryTypeOrder},
		{-30, models.EntryTypeLoanDeduction},
		{10, models.EntryTypeLoanRepayment},
	}
	for _, a := range appends {
		_, err := svc.Append(context.Background(), user.ID, a.amount, a.entryType, "", "")
		require.NoError(t, err)
	}
	return store, user
}

func TestBalanceSummary(t *testing.T) {
	store, user := seedLedger(t)
	svc := NewService(store, nil)

	summary, err := svc.BalanceSummary(context.Background(), user.ID)
	require.NoError(t, err)

	assert.Equal(t, 40.0, summary.CurrentBalance)
	assert.Equal(t, 4, summary.TransactionCount)
	assert.Equal(t, 100.0, summary.Statistics.TotalTopUps)
	assert.Equal(t, 40.0, summary.Statistics.TotalOrders)
	assert.Equal(t, 10.0, summary.Statistics.TotalLoanRepayments)
	assert.Equal(t, 30.0, summary.Statistics.TotalLoanDeductions)
	assert.Equal(t, -20.0, summary.Statistics.TotalLoanBalance)
}

func TestBalanceSummary_NoEntries(t *testing.T) {
	store := memstore.New()
	user := &models.User{Name: "Yaw", Email: "yaw@example.com"}
	require.NoError(t, store.CreateUser(context.Background(), user))
	svc := NewService(store, nil)

	summary, err := svc.BalanceSummary(context.Background(), user.ID)
	require.NoError(t, err)
	assert.Zero(t, summary.CurrentBalance)
	assert.Zero(t, summary.TransactionCount)
}

func TestUserTransactions_NewestFirstAndFiltered(t *testing.T) {
	store, user := seedLedger(t)
	svc := NewService(store, nil)

	entries, err := svc.UserTransactions(context.Background(), user.ID, Filter{})
	require.NoError(t, err)
	require.Len(t, entries, 4)
	assert.Equal(t, models.EntryTypeLoanRepayment, entries[0].Type, "newest entry comes first")
	assert.Equal(t, models.EntryTypeTopUpApproved, entries[3].Type)

	orders, err := svc.UserTransactions(context.Background(), user.ID, Filter{Type: models.EntryTypeOrder})
	require.NoError(t, err)
	require.Len(t, orders, 1)
	assert.Equal(t, -40.0, orders[0].Amount)

	past := time.Now().Add(-time.Hour)
	none, err := svc.UserTransactions(context.Background(), user.ID, Filter{EndDate: &past})
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestAllTransactions(t *testing.T) {
	store, user := seedLedger(t)
	other := &models.User{Name: "Afia", Email: "afia@example.com"}
	require.NoError(t, store.CreateUser(context.Background(), other))
	_, err := ledger.NewService(store).Append(context.Background(), other.ID, 500, models.EntryTypeTopUpApproved, "", "")
	require.NoError(t, err)

	svc := NewService(store, nil)

	all, err := svc.AllTransactions(context.Background(), nil, Filter{})
	require.NoError(t, err)
	assert.Len(t, all, 5)

	mine, err := svc.AllTransactions(context.Background(), &user.ID, Filter{})
	require.NoError(t, err)
	assert.Len(t, mine, 4)
}
