package repositories

import (
	"context"
	"errors"
	"fmt"

	errs "github.com/YhormT/kelis-backend/internal/errors"
	"github.com/YhormT/kelis-backend/internal/models"

	"gorm.io/gorm"
)

func (s *gormStore) CreateOrder(ctx context.Context, order *models.Order) error {
	if err := s.db.WithContext(ctx).Create(order).Error; err != nil {
		return fmt.Errorf("failed to create order: %w", err)
	}
	return nil
}

func (s *gormStore) GetOrder(ctx context.Context, id uint) (*models.Order, error) {
	var order models.Order
	err := s.db.WithContext(ctx).
		Preload("Items.Product").
		Preload("User").
		First(&order, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.ErrOrderNotFound
		}
		return nil, fmt.Errorf("failed to get order: %w", err)
	}
	return &order, nil
}

func (s *gormStore) OrderItemByID(ctx context.Context, id uint) (*models.OrderItem, error) {
	var item models.OrderItem
	err := s.db.WithContext(ctx).
		Preload("Order").
		Preload("Product").
		First(&item, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.ErrOrderItemNotFound
		}
		return nil, fmt.Errorf("failed to get order item: %w", err)
	}
	return &item, nil
}

func (s *gormStore) UpdateOrderItemStatus(ctx context.Context, itemID uint, status string) error {
	res := s.db.WithContext(ctx).
		Model(&models.OrderItem{}).
		Where("id = ?", itemID).
		Update("status", status)
	if res.Error != nil {
		return fmt.Errorf("failed to update order item status: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return errs.ErrOrderItemNotFound
	}
	return nil
}

func (s *gormStore) UpdateOrderItemsStatus(ctx context.Context, orderID uint, status string) (int64, error) {
	res := s.db.WithContext(ctx).
		Model(&models.OrderItem{}).
		Where("order_id = ?", orderID).
		Update("status", status)
	if res.Error != nil {
		return 0, fmt.Errorf("failed to update order items status: %w", res.Error)
	}
	return res.RowsAffected, nil
}

func (s *gormStore) UpdateOrderStatus(ctx context.Context, orderID uint, status string) error {
	res := s.db.WithContext(ctx).
		Model(&models.Order{}).
		Where("id = ?", orderID).
		Update("status", status)
	if res.Error != nil {
		return fmt.Errorf("failed to update order status: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return errs.ErrOrderNotFound
	}
	return nil
}

func (s *gormStore) ListOrders(ctx context.Context, f OrderFilter) ([]models.Order, error) {
	q := s.db.WithContext(ctx).Model(&models.Order{}).
		Preload("Items.Product").
		Preload("User")
	if f.UserID != nil {
		q = q.Where("user_id = ?", *f.UserID)
	}
	if f.Status != "" {
		q = q.Where("status = ?", f.Status)
	}
	if f.StartDate != nil {
		q = q.Where("created_at >= ?", *f.StartDate)
	}
	if f.EndDate != nil {
		q = q.Where("created_at <= ?", *f.EndDate)
	}
	if f.ItemStatus != "" {
		q = q.Where("id IN (?)",
			s.db.Model(&models.OrderItem{}).Select("order_id").Where("status = ?", f.ItemStatus))
	}
	if f.Limit > 0 {
		q = q.Limit(f.Limit).Offset(f.Offset)
	}

	var orders []models.Order
	if err := q.Order("created_at DESC").Find(&orders).Error; err != nil {
		return nil, fmt.Errorf("failed to list orders: %w", err)
	}
	return orders, nil
}

func (s *gormStore) CountOrders(ctx context.Context) (int64, error) {
	var count int64
	if err := s.db.WithContext(ctx).Model(&models.Order{}).Count(&count).Error; err != nil {
		return 0, fmt.Errorf("failed to count orders: %w", err)
	}
	return count, nil
}

func (s *gormStore) CountOrdersByItemStatus(ctx context.Context, status string) (int64, error) {
	var count int64
	err := s.db.WithContext(ctx).
		Model(&models.OrderItem{}).
		Where("status = ?", status).
		Distinct("order_id").
		Count(&count).Error
	if err != nil {
		return 0, fmt.Errorf("failed to count orders by item status: %w", err)
	}
	return count, nil
}
