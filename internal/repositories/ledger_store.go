package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/YhormT/kelis-backend/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

func (s *gormStore) CreateEntry(ctx context.Context, entry *models.Transaction) error {
	if err := s.db.WithContext(ctx).Create(entry).Error; err != nil {
		return fmt.Errorf("failed to create ledger entry: %w", err)
	}
	return nil
}

func (s *gormStore) FindEntryByReference(ctx context.Context, userID uint, entryType, reference string) (*models.Transaction, error) {
	var entry models.Transaction
	err := s.db.WithContext(ctx).
		Where("user_id = ? AND type = ? AND reference = ?", userID, entryType, reference).
		Order("id ASC").
		First(&entry).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find ledger entry: %w", err)
	}
	return &entry, nil
}

func (s *gormStore) ListEntries(ctx context.Context, f EntryFilter) ([]models.Transaction, error) {
	q := s.db.WithContext(ctx).Model(&models.Transaction{}).Preload("User")
	if f.UserID != nil {
		q = q.Where("user_id = ?", *f.UserID)
	}
	if f.StartDate != nil {
		q = q.Where("created_at >= ?", *f.StartDate)
	}
	if f.EndDate != nil {
		q = q.Where("created_at <= ?", *f.EndDate)
	}
	if f.Type != "" {
		q = q.Where("type = ?", f.Type)
	}

	var entries []models.Transaction
	if err := q.Order("created_at DESC, id DESC").Find(&entries).Error; err != nil {
		return nil, fmt.Errorf("failed to list ledger entries: %w", err)
	}
	return entries, nil
}

// ReserveOperation inserts the idempotency key with ON CONFLICT DO NOTHING;
// zero rows affected means another scope already holds the reservation.
func (s *gormStore) ReserveOperation(ctx context.Context, operationType, reference string) (bool, error) {
	key := models.IdempotencyKey{OperationType: operationType, Reference: reference}
	res := s.db.WithContext(ctx).Clauses(clause.OnConflict{DoNothing: true}).Create(&key)
	if res.Error != nil {
		return false, fmt.Errorf("failed to reserve operation: %w", res.Error)
	}
	return res.RowsAffected == 1, nil
}
