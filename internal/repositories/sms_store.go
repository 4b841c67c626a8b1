package repositories

import (
	"context"
	"errors"
	"fmt"

	errs "github.com/YhormT/kelis-backend/internal/errors"
	"github.com/YhormT/kelis-backend/internal/models"

	"gorm.io/gorm"
)

func (s *gormStore) CreateSms(ctx context.Context, msg *models.SmsMessage) error {
	if err := s.db.WithContext(ctx).Create(msg).Error; err != nil {
		return fmt.Errorf("failed to create sms record: %w", err)
	}
	return nil
}

func (s *gormStore) UnprocessedSmsByReference(ctx context.Context, reference string) (*models.SmsMessage, error) {
	var msg models.SmsMessage
	err := s.db.WithContext(ctx).
		Where("reference = ? AND processed = ?", reference, false).
		Order("id ASC").
		First(&msg).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.ErrSmsNotFound
		}
		return nil, fmt.Errorf("failed to find sms record: %w", err)
	}
	return &msg, nil
}

func (s *gormStore) MarkSmsProcessed(ctx context.Context, id uint) error {
	res := s.db.WithContext(ctx).
		Model(&models.SmsMessage{}).
		Where("id = ?", id).
		Update("processed", true)
	if res.Error != nil {
		return fmt.Errorf("failed to mark sms processed: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return errs.ErrSmsNotFound
	}
	return nil
}
