package repositories

import (
	"context"
	"errors"
	"fmt"

	errs "github.com/YhormT/kelis-backend/internal/errors"
	"github.com/YhormT/kelis-backend/internal/models"

	"gorm.io/gorm"
)

func (s *gormStore) CreateTopUp(ctx context.Context, topUp *models.TopUp) error {
	if err := s.db.WithContext(ctx).Create(topUp).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return errs.ErrDuplicateReference
		}
		return fmt.Errorf("failed to create top-up: %w", err)
	}
	return nil
}

func (s *gormStore) TopUpByID(ctx context.Context, id uint) (*models.TopUp, error) {
	var topUp models.TopUp
	if err := s.db.WithContext(ctx).First(&topUp, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.ErrTopUpNotFound
		}
		return nil, fmt.Errorf("failed to get top-up: %w", err)
	}
	return &topUp, nil
}

func (s *gormStore) TopUpByReference(ctx context.Context, referenceID string) (*models.TopUp, error) {
	var topUp models.TopUp
	err := s.db.WithContext(ctx).
		Where("reference_id = ?", referenceID).
		First(&topUp).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.ErrTopUpNotFound
		}
		return nil, fmt.Errorf("failed to get top-up by reference: %w", err)
	}
	return &topUp, nil
}

func (s *gormStore) SetTopUpStatus(ctx context.Context, id uint, status string) error {
	res := s.db.WithContext(ctx).
		Model(&models.TopUp{}).
		Where("id = ?", id).
		Update("status", status)
	if res.Error != nil {
		return fmt.Errorf("failed to set top-up status: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return errs.ErrTopUpNotFound
	}
	return nil
}

func (s *gormStore) ListTopUps(ctx context.Context, f TopUpFilter) ([]models.TopUp, error) {
	q := s.db.WithContext(ctx).Model(&models.TopUp{}).Preload("User")
	if f.StartDate != nil {
		q = q.Where("created_at >= ?", *f.StartDate)
	}
	if f.EndDate != nil {
		q = q.Where("created_at <= ?", *f.EndDate)
	}
	if f.Status != "" {
		q = q.Where("status = ?", f.Status)
	}

	var topUps []models.TopUp
	if err := q.Order("created_at DESC").Find(&topUps).Error; err != nil {
		return nil, fmt.Errorf("failed to list top-ups: %w", err)
	}
	return topUps, nil
}
