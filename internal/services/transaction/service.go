// Package transaction is the read-only query and audit layer over the
// ledger. It never writes: the balance it reports is derived from the latest
// entry, because the log, not the cached balance column, is the display
// source of truth.
package transaction

import (
	"context"
	"log"
	"math"
	"time"

	"github.com/YhormT/kelis-backend/internal/models"
	"github.com/YhormT/kelis-backend/internal/repositories"
	"github.com/YhormT/kelis-backend/internal/repositories/cache"
)

const summaryCacheTTL = 30 * time.Second

// Filter narrows a transaction listing. The date range is inclusive.
type Filter struct {
	StartDate *time.Time
	EndDate   *time.Time
	Type      string
}

// Statistics aggregates signed entry totals per type; orders and loan
// deductions are reported as absolute values for display.
type Statistics struct {
	TotalTopUps         float64 `json:"totalTopups"`
	TotalOrders         float64 `json:"totalOrders"`
	TotalLoanRepayments float64 `json:"totalLoanRepayments"`
	TotalLoanDeductions float64 `json:"totalLoanDeductions"`
	TotalLoanBalance    float64 `json:"totalLoanBalance"`
}

// BalanceSummary is recomputed from the full entry set on every uncached
// call; there is no persisted aggregate to drift out of sync with the log.
type BalanceSummary struct {
	CurrentBalance   float64    `json:"currentBalance"`
	Statistics       Statistics `json:"statistics"`
	TransactionCount int        `json:"transactionCount"`
}

type Service struct {
	store repositories.Store
	cache *cache.Service
}

// NewService creates the query service. The cache is optional; a nil cache
// just means every summary call scans the log.
func NewService(store repositories.Store, cacheSvc *cache.Service) *Service {
	return &Service{store: store, cache: cacheSvc}
}

// UserTransactions returns one user's ledger entries, newest first.
func (s *Service) UserTransactions(ctx context.Context, userID uint, f Filter) ([]models.Transaction, error) {
	return s.store.ListEntries(ctx, repositories.EntryFilter{
		UserID:    &userID,
		StartDate: f.StartDate,
		EndDate:   f.EndDate,
		Type:      f.Type,
	})
}

// AllTransactions returns ledger entries across users for the admin audit
// views, optionally narrowed to one user.
func (s *Service) AllTransactions(ctx context.Context, userID *uint, f Filter) ([]models.Transaction, error) {
	return s.store.ListEntries(ctx, repositories.EntryFilter{
		UserID:    userID,
		StartDate: f.StartDate,
		EndDate:   f.EndDate,
		Type:      f.Type,
	})
}

// BalanceSummary derives the user's displayed balance and per-type totals
// from the ledger. Results are cached briefly; staleness is bounded by the
// TTL rather than chased with invalidation.
func (s *Service) BalanceSummary(ctx context.Context, userID uint) (*BalanceSummary, error) {
	var cacheKey string
	if s.cache != nil {
		cacheKey = s.cache.Key("transactions", "summary", userID)
		var cached BalanceSummary
		if found, err := s.cache.Get(ctx, cacheKey, &cached); err == nil && found {
			return &cached, nil
		}
	}

	entries, err := s.store.ListEntries(ctx, repositories.EntryFilter{UserID: &userID})
	if err != nil {
		return nil, err
	}

	summary := &BalanceSummary{TransactionCount: len(entries)}
	if len(entries) > 0 {
		// Entries are newest first; the latest one carries the live balance.
		summary.CurrentBalance = entries[0].Balance
	}

	var topUps, orders, loanRepayments, loanDeductions float64
	for _, e := range entries {
		switch e.Type {
		case models.EntryTypeTopUpApproved:
			topUps += e.Amount
		case models.EntryTypeOrder:
			orders += e.Amount
		case models.EntryTypeLoanRepayment:
			loanRepayments += e.Amount
		case models.EntryTypeLoanDeduction:
			loanDeductions += e.Amount
		}
	}
	summary.Statistics = Statistics{
		TotalTopUps:         topUps,
		TotalOrders:         math.Abs(orders),
		TotalLoanRepayments: loanRepayments,
		TotalLoanDeductions: math.Abs(loanDeductions),
		TotalLoanBalance:    loanDeductions + loanRepayments,
	}

	if s.cache != nil {
		if err := s.cache.SetWithTTL(ctx, cacheKey, summary, summaryCacheTTL); err != nil {
			log.Printf("failed to cache balance summary for user %d: %v", userID, err)
		}
	}
	return summary, nil
}
