package repositories

import (
	"context"
	"errors"
	"fmt"

	errs "github.com/YhormT/kelis-backend/internal/errors"
	"github.com/YhormT/kelis-backend/internal/models"

	"gorm.io/gorm"
)

func (s *gormStore) CartWithItems(ctx context.Context, userID uint) (*models.Cart, error) {
	var cart models.Cart
	err := s.db.WithContext(ctx).
		Preload("Items.Product").
		Where("user_id = ?", userID).
		First(&cart).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to load cart: %w", err)
	}
	return &cart, nil
}

func (s *gormStore) GetOrCreateCart(ctx context.Context, userID uint) (*models.Cart, error) {
	var cart models.Cart
	err := s.db.WithContext(ctx).
		Where(models.Cart{UserID: userID}).
		FirstOrCreate(&cart).Error
	if err != nil {
		return nil, fmt.Errorf("failed to get or create cart: %w", err)
	}
	return &cart, nil
}

func (s *gormStore) AddCartItem(ctx context.Context, item *models.CartItem) error {
	if err := s.db.WithContext(ctx).Create(item).Error; err != nil {
		return fmt.Errorf("failed to add cart item: %w", err)
	}
	return nil
}

func (s *gormStore) RemoveCartItem(ctx context.Context, cartID, itemID uint) error {
	res := s.db.WithContext(ctx).
		Where("cart_id = ?", cartID).
		Delete(&models.CartItem{}, itemID)
	if res.Error != nil {
		return fmt.Errorf("failed to remove cart item: %w", res.Error)
	}
	return nil
}

func (s *gormStore) SetCartMobileNumber(ctx context.Context, cartID uint, mobileNumber string) error {
	err := s.db.WithContext(ctx).
		Model(&models.Cart{}).
		Where("id = ?", cartID).
		Update("mobile_number", mobileNumber).Error
	if err != nil {
		return fmt.Errorf("failed to set cart mobile number: %w", err)
	}
	return nil
}

func (s *gormStore) ClearCartItems(ctx context.Context, cartID uint) error {
	err := s.db.WithContext(ctx).
		Where("cart_id = ?", cartID).
		Delete(&models.CartItem{}).Error
	if err != nil {
		return fmt.Errorf("failed to clear cart items: %w", err)
	}
	return nil
}

func (s *gormStore) GetProduct(ctx context.Context, id uint) (*models.Product, error) {
	var product models.Product
	if err := s.db.WithContext(ctx).First(&product, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.ErrProductNotFound
		}
		return nil, fmt.Errorf("failed to get product: %w", err)
	}
	return &product, nil
}

func (s *gormStore) CreateProduct(ctx context.Context, product *models.Product) error {
	if err := s.db.WithContext(ctx).Create(product).Error; err != nil {
		return fmt.Errorf("failed to create product: %w", err)
	}
	return nil
}
