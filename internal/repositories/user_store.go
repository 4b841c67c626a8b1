package repositories

import (
	"context"
	"errors"
	"fmt"

	errs "github.com/YhormT/kelis-backend/internal/errors"
	"github.com/YhormT/kelis-backend/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

func (s *gormStore) GetUser(ctx context.Context, id uint) (*models.User, error) {
	var user models.User
	if err := s.db.WithContext(ctx).First(&user, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	return &user, nil
}

// GetUserForUpdate takes a row lock (SELECT ... FOR UPDATE) held until the
// scope commits or rolls back.
func (s *gormStore) GetUserForUpdate(ctx context.Context, id uint) (*models.User, error) {
	var user models.User
	err := s.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&user, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to lock user: %w", err)
	}
	return &user, nil
}

func (s *gormStore) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	if err := s.db.WithContext(ctx).Where("email = ?", email).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to get user by email: %w", err)
	}
	return &user, nil
}

func (s *gormStore) CreateUser(ctx context.Context, user *models.User) error {
	if err := s.db.WithContext(ctx).Create(user).Error; err != nil {
		return fmt.Errorf("failed to create user: %w", err)
	}
	return nil
}

// IncrementBalance adds amount to the wallet balance and reads the result
// back in a single UPDATE ... RETURNING statement. Doing both in one
// statement lets the database order concurrent increments; there is no
// read-then-write window to lose.
func (s *gormStore) IncrementBalance(ctx context.Context, userID uint, amount float64) (float64, error) {
	var balance float64
	res := s.db.WithContext(ctx).Raw(
		`UPDATE users
		 SET wallet_balance = wallet_balance + ?, updated_at = NOW()
		 WHERE id = ? AND deleted_at IS NULL
		 RETURNING wallet_balance`,
		amount, userID,
	).Scan(&balance)
	if res.Error != nil {
		return 0, fmt.Errorf("failed to increment balance: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return 0, errs.ErrUserNotFound
	}
	return balance, nil
}
