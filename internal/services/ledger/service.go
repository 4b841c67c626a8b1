// Package ledger owns every wallet balance change. A balance moves only by
// appending an entry: the user's cached balance is atomically incremented and
// read back in one storage statement, and an immutable log row is written
// with the pre- and post-entry balances. Replaying a user's entries in
// creation order reconstructs the live balance.
package ledger

import (
	"context"
	"fmt"

	"github.com/YhormT/kelis-backend/internal/models"
	"github.com/YhormT/kelis-backend/internal/repositories"
)

// Store is the persistence surface an append needs. Both the full
// repositories.Store and any transaction-bound view of it satisfy this.
type Store interface {
	IncrementBalance(ctx context.Context, userID uint, amount float64) (float64, error)
	CreateEntry(ctx context.Context, entry *models.Transaction) error
}

// Append writes one ledger entry inside the caller's atomic scope. The
// caller is responsible for the scope; Append itself never opens one, so a
// workflow's debit or credit commits and rolls back together with the rest
// of its work.
//
// Amount is signed: positive credits the wallet, negative debits it, zero
// records an informational entry with no monetary effect. Idempotency is the
// caller's concern; Append always writes.
func Append(ctx context.Context, store Store, userID uint, amount float64, entryType, description, reference string) (*models.Transaction, error) {
	newBalance, err := store.IncrementBalance(ctx, userID, amount)
	if err != nil {
		return nil, err
	}

	entry := &models.Transaction{
		UserID:          userID,
		Amount:          amount,
		Balance:         newBalance,
		PreviousBalance: newBalance - amount,
		Type:            entryType,
		Description:     description,
		Reference:       reference,
	}
	if err := store.CreateEntry(ctx, entry); err != nil {
		return nil, fmt.Errorf("failed to record ledger entry: %w", err)
	}
	return entry, nil
}

// Service appends entries outside any existing scope, opening its own.
type Service struct {
	store repositories.Store
}

func NewService(store repositories.Store) *Service {
	return &Service{store: store}
}

// Append opens one atomic scope and writes the entry in it. Use the
// package-level Append from inside an existing scope instead; scopes are
// never nested.
func (s *Service) Append(ctx context.Context, userID uint, amount float64, entryType, description, reference string) (*models.Transaction, error) {
	var entry *models.Transaction
	err := s.store.Atomic(ctx, func(tx repositories.Store) error {
		var err error
		entry, err = Append(ctx, tx, userID, amount, entryType, description, reference)
		return err
	})
	if err != nil {
		return nil, err
	}
	return entry, nil
}
