package ledger

import (
	"context"
	"testing"

	errs "github.com/YhormT/kelis-backend/internal/errors"
	"github.com/YhormT/kelis-backend/internal/models"
	"github.com/YhormT/kelis-backend/internal/repositories"
	"github.com/YhormT/kelis-backend/internal/repositories/memstore"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seedUser(t *testing.T, store repositories.Store, balance float64) *models.User {
	t.Helper()
	user := &models.User{Name: "Ama", Email: "ama@example.com", WalletBalance: balance}
	require.NoError(t, store.CreateUser(context.Background(), user))
	return user
}

func TestAppend_RecordsBalances(t *testing.T) {
	store := memstore.New()
	user := seedUser(t, store, 50)
	svc := NewService(store)

	entry, err := svc.Append(context.Background(), user.ID, 25, models.EntryTypeTopUpApproved, "credit", "topup:1")
	require.NoError(t, err)

	assert.Equal(t, 25.0, entry.Amount)
	assert.Equal(t, 50.0, entry.PreviousBalance)
	assert.Equal(t, 75.0, entry.Balance)
	assert.Equal(t, entry.Balance, entry.PreviousBalance+entry.Amount)

	updated, err := store.GetUser(context.Background(), user.ID)
	require.NoError(t, err)
	assert.Equal(t, 75.0, updated.WalletBalance)
}

func TestAppend_SignedAmounts(t *testing.T) {
	store := memstore.New()
	user := seedUser(t, store, 100)
	svc := NewService(store)

	tests := []struct {
		name        string
		amount      float64
		wantBalance float64
	}{
		{"debit", -40, 60},
		{"credit", 15, 75},
		{"informational", 0, 75},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			entry, err := svc.Append(context.Background(), user.ID, tt.amount, models.EntryTypeOrder, "", "")
			require.NoError(t, err)
			assert.Equal(t, tt.wantBalance, entry.Balance)
			assert.Equal(t, entry.Balance, entry.PreviousBalance+entry.Amount)
		})
	}
}

func TestAppend_UserNotFound(t *testing.T) {
	store := memstore.New()
	svc := NewService(store)

	_, err := svc.Append(context.Background(), 42, 10, models.EntryTypeTopUpApproved, "", "")
	require.ErrorIs(t, err, errs.ErrUserNotFound)

	entries, err := store.ListEntries(context.Background(), repositories.EntryFilter{})
	require.NoError(t, err)
	assert.Empty(t, entries, "a failed append must not leave an entry behind")
}

func TestAppend_ReplayReconstructsBalance(t *testing.T) {
	store := memstore.New()
	user := seedUser(t, store, 0)
	svc := NewService(store)

	amounts := []float64{100, -30, -20, 45, 0, -5}
	for _, amount := range amounts {
		_, err := svc.Append(context.Background(), user.ID, amount, models.EntryTypeOrder, "", "")
		require.NoError(t, err)
	}

	entries, err := store.ListEntries(context.Background(), repositories.EntryFilter{UserID: &user.ID})
	require.NoError(t, err)
	require.Len(t, entries, len(amounts))

	// Entries come back newest first; replay in creation order.
	var replayed float64
	for i := len(entries) - 1; i >= 0; i-- {
		e := entries[i]
		assert.Equal(t, replayed, e.PreviousBalance)
		replayed += e.Amount
		assert.Equal(t, replayed, e.Balance)
	}

	updated, err := store.GetUser(context.Background(), user.ID)
	require.NoError(t, err)
	assert.Equal(t, replayed, updated.WalletBalance)
	assert.Equal(t, entries[0].Balance, updated.WalletBalance)
}
