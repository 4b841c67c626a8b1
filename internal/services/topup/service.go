// Package topup implements the top-up workflow: the manual request/approval
// state machine and SMS-driven auto-verification, both crediting the wallet
// through the ledger. The two mutation flows run under a bounded retry with
// backoff that re-validates everything on every attempt, so a retry after a
// concurrent success fails closed instead of double-crediting.
package topup

import (
	"context"
	"fmt"
	"log"
	"time"

	errs "github.com/YhormT/kelis-backend/internal/errors"
	"github.com/YhormT/kelis-backend/internal/models"
	"github.com/YhormT/kelis-backend/internal/repositories"
	"github.com/YhormT/kelis-backend/internal/services/ledger"
)

const (
	DefaultMaxRetries   = 3
	DefaultRetryBackoff = 100 * time.Millisecond
)

// Config holds retry tuning for the mutation flows.
type Config struct {
	MaxRetries   int
	RetryBackoff time.Duration
}

// AutoTopUpResult is returned by a successful SMS auto-verification.
type AutoTopUpResult struct {
	TopUpID    uint    `json:"topUpId"`
	Amount     float64 `json:"amount"`
	NewBalance float64 `json:"newBalance"`
	Reference  string  `json:"reference"`
}

type Service struct {
	store  repositories.Store
	config Config
}

func NewService(store repositories.Store, config Config) *Service {
	if config.MaxRetries == 0 {
		config.MaxRetries = DefaultMaxRetries
	}
	if config.RetryBackoff == 0 {
		config.RetryBackoff = DefaultRetryBackoff
	}
	return &Service{store: store, config: config}
}

// Create records a Pending top-up request. No money moves yet; the zero
// amount TOPUP_REQUEST entry only marks the request in the audit log.
func (s *Service) Create(ctx context.Context, userID uint, referenceID string, amount float64, submittedBy string) (*models.TopUp, error) {
	if amount <= 0 {
		return nil, errs.ErrInvalidAmount
	}

	var topUp *models.TopUp
	err := s.store.Atomic(ctx, func(tx repositories.Store) error {
		if _, err := tx.TopUpByReference(ctx, referenceID); err == nil {
			return errs.ErrDuplicateReference
		} else if !errs.IsNotFound(err) {
			return err
		}

		user, err := tx.GetUser(ctx, userID)
		if err != nil {
			return err
		}

		topUp = &models.TopUp{
			UserID:      userID,
			ReferenceID: referenceID,
			Amount:      amount,
			Status:      models.TopUpStatusPending,
			SubmittedBy: submittedBy,
		}
		if err := tx.CreateTopUp(ctx, topUp); err != nil {
			return err
		}

		_, err = ledger.Append(ctx, tx, userID, 0, models.EntryTypeTopUpRequest,
			fmt.Sprintf("%s with transaction id %s has requested a top-up of GHS %v", user.Name, referenceID, amount),
			fmt.Sprintf("topup:%d", topUp.ID))
		return err
	})
	if err != nil {
		return nil, err
	}
	return topUp, nil
}

// UpdateStatus approves or rejects a pending top-up. Approval credits the
// wallet; rejection only logs. Either way the top-up reaches its terminal
// status in the same scope as the ledger entry, so no decided top-up can be
// missing its entry or vice versa.
func (s *Service) UpdateStatus(ctx context.Context, topUpID uint, status string) (*models.TopUp, error) {
	if status != models.TopUpStatusApproved && status != models.TopUpStatusRejected {
		return nil, errs.ErrInvalidTopUpStatus
	}

	var topUp *models.TopUp
	err := s.withRetry(ctx, "update top-up status", func() error {
		return s.store.Atomic(ctx, func(tx repositories.Store) error {
			t, err := tx.TopUpByID(ctx, topUpID)
			if err != nil {
				return err
			}
			if t.Final() {
				return errs.ErrTopUpAlreadyFinal
			}

			reference := fmt.Sprintf("topup:%d", t.ID)
			if status == models.TopUpStatusApproved {
				_, err = ledger.Append(ctx, tx, t.UserID, t.Amount, models.EntryTypeTopUpApproved,
					fmt.Sprintf("Top-up amount of GHS %v has been approved successfully with transaction ID %s", t.Amount, t.ReferenceID),
					reference)
			} else {
				_, err = ledger.Append(ctx, tx, t.UserID, 0, models.EntryTypeTopUpRejected,
					fmt.Sprintf("Top-up amount of GHS %v has been rejected with transaction ID %s", t.Amount, t.ReferenceID),
					reference)
			}
			if err != nil {
				return err
			}

			if err := tx.SetTopUpStatus(ctx, t.ID, status); err != nil {
				return err
			}
			t.Status = status
			topUp = t
			return nil
		})
	})
	if err != nil {
		return nil, err
	}
	return topUp, nil
}

// VerifyAndAutoTopUp credits a wallet directly from a parsed mobile-money
// SMS: the top-up is created already Approved, the wallet is credited and
// the SMS record is consumed, all in one scope. Every retry attempt
// revalidates the SMS record and the reference from scratch.
func (s *Service) VerifyAndAutoTopUp(ctx context.Context, userID uint, referenceID string) (*AutoTopUpResult, error) {
	var result *AutoTopUpResult
	err := s.withRetry(ctx, "auto top-up", func() error {
		return s.store.Atomic(ctx, func(tx repositories.Store) error {
			sms, err := tx.UnprocessedSmsByReference(ctx, referenceID)
			if err != nil {
				return err
			}
			if sms.Amount == nil {
				return errs.ErrSmsAmountMissing
			}

			if _, err := tx.TopUpByReference(ctx, referenceID); err == nil {
				return errs.ErrDuplicateReference
			} else if !errs.IsNotFound(err) {
				return err
			}

			if _, err := tx.GetUser(ctx, userID); err != nil {
				return err
			}

			amount := *sms.Amount
			topUp := &models.TopUp{
				UserID:      userID,
				ReferenceID: referenceID,
				Amount:      amount,
				Status:      models.TopUpStatusApproved,
				SubmittedBy: models.TopUpSubmitterAutoSMS,
			}
			if err := tx.CreateTopUp(ctx, topUp); err != nil {
				return err
			}

			entry, err := ledger.Append(ctx, tx, userID, amount, models.EntryTypeTopUpApproved,
				fmt.Sprintf("Auto top-up via SMS verification - Ref: %s for GHS %v", referenceID, amount),
				fmt.Sprintf("topup:%d", topUp.ID))
			if err != nil {
				return err
			}

			if err := tx.MarkSmsProcessed(ctx, sms.ID); err != nil {
				return err
			}

			result = &AutoTopUpResult{
				TopUpID:    topUp.ID,
				Amount:     amount,
				NewBalance: entry.Balance,
				Reference:  referenceID,
			}
			return nil
		})
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// List returns top-ups matching the filter, newest first.
func (s *Service) List(ctx context.Context, f repositories.TopUpFilter) ([]models.TopUp, error) {
	return s.store.ListTopUps(ctx, f)
}

// withRetry runs fn up to MaxRetries+1 times, backing off 100ms, 200ms,
// 300ms between attempts. Domain errors are surfaced immediately: they mean
// a precondition failed, not that storage hiccuped. Exhaustion collapses the
// cause into the single fatal ErrOperationFailed.
func (s *Service) withRetry(ctx context.Context, op string, fn func() error) error {
	var err error
	for attempt := 1; ; attempt++ {
		err = fn()
		if err == nil {
			return nil
		}
		if errs.IsDomain(err) {
			return err
		}
		if attempt > s.config.MaxRetries {
			break
		}
		log.Printf("%s attempt %d failed: %v", op, attempt, err)
		time.Sleep(s.config.RetryBackoff * time.Duration(attempt))
	}
	log.Printf("%s failed after %d attempts: %v", op, s.config.MaxRetries+1, err)
	return errs.ErrOperationFailed
}
