// Package order drives the order workflow: converting a cart into an order
// by debiting the wallet, and moving order items through their statuses with
// exactly-once cancellation refunds.
package order

import (
	"context"
	"fmt"
	"math"

	errs "github.com/YhormT/kelis-backend/internal/errors"
	"github.com/YhormT/kelis-backend/internal/models"
	"github.com/YhormT/kelis-backend/internal/repositories"
	"github.com/YhormT/kelis-backend/internal/services/ledger"
)

// BulkStatusResult reports the outcome of an order-wide status change.
type BulkStatusResult struct {
	UpdatedCount int64   `json:"updatedCount"`
	RefundAmount float64 `json:"refundAmount,omitempty"`
}

// Stats are the dashboard counters over order items.
type Stats struct {
	Total      int64 `json:"total"`
	Pending    int64 `json:"pending"`
	Processing int64 `json:"processing"`
	Completed  int64 `json:"completed"`
}

type Service struct {
	store repositories.Store
}

func NewService(store repositories.Store) *Service {
	return &Service{store: store}
}

// SubmitCart turns the user's cart into an order in one atomic scope: price
// the cart, check the balance, create the order and its items, debit the
// wallet, clear the cart. The balance check holds the user row lock so two
// concurrent submissions cannot both spend the same funds.
func (s *Service) SubmitCart(ctx context.Context, userID uint, mobileNumber string) (*models.Order, error) {
	var order *models.Order
	err := s.store.Atomic(ctx, func(tx repositories.Store) error {
		cart, err := tx.CartWithItems(ctx, userID)
		if err != nil {
			return err
		}
		if cart == nil || len(cart.Items) == 0 {
			return errs.ErrCartEmpty
		}

		// The price snapshot read inside this scope is what the order is
		// charged at; later catalog changes do not affect it.
		var totalPrice float64
		for _, item := range cart.Items {
			if item.Product == nil {
				return errs.ErrProductNotFound
			}
			totalPrice += item.Product.Price * float64(item.Quantity)
		}

		user, err := tx.GetUserForUpdate(ctx, userID)
		if err != nil {
			return err
		}
		if user.WalletBalance < totalPrice {
			return errs.ErrInsufficientBalance
		}

		if mobileNumber != "" && cart.MobileNumber == "" {
			if err := tx.SetCartMobileNumber(ctx, cart.ID, mobileNumber); err != nil {
				return err
			}
			cart.MobileNumber = mobileNumber
		}

		order = &models.Order{
			UserID:       userID,
			MobileNumber: cart.MobileNumber,
		}
		for _, item := range cart.Items {
			order.Items = append(order.Items, models.OrderItem{
				ProductID:    item.ProductID,
				Quantity:     item.Quantity,
				MobileNumber: item.MobileNumber,
				Status:       models.StatusPending,
				Product:      item.Product,
			})
		}
		if err := tx.CreateOrder(ctx, order); err != nil {
			return err
		}

		_, err = ledger.Append(ctx, tx, userID, -totalPrice, models.EntryTypeOrder,
			fmt.Sprintf("Order #%d placed with %d items", order.ID, len(order.Items)),
			fmt.Sprintf("order:%d", order.ID))
		if err != nil {
			return err
		}

		return tx.ClearCartItems(ctx, cart.ID)
	})
	if err != nil {
		return nil, err
	}
	return order, nil
}

// UpdateItemStatus moves one order item to a new status. Cancelling issues
// the item refund exactly once; the zero-amount status entry is written on
// every call.
func (s *Service) UpdateItemStatus(ctx context.Context, itemID uint, status string) (*models.OrderItem, error) {
	normalized, ok := models.NormalizeStatus(status)
	if !ok {
		return nil, errs.ErrInvalidOrderStatus
	}

	var item *models.OrderItem
	err := s.store.Atomic(ctx, func(tx repositories.Store) error {
		var err error
		item, err = tx.OrderItemByID(ctx, itemID)
		if err != nil {
			return err
		}
		if item.Order == nil || item.Product == nil {
			return errs.ErrOrderItemNotFound
		}
		if !models.CanTransition(item.Status, normalized) {
			return errs.ErrInvalidStatusTransition
		}
		if err := tx.UpdateOrderItemStatus(ctx, itemID, normalized); err != nil {
			return err
		}

		userID := item.Order.UserID
		reference := fmt.Sprintf("orderItem:%d", itemID)

		if normalized == models.StatusCancelled {
			reserved, err := tx.ReserveOperation(ctx, models.EntryTypeOrderItemRefund, reference)
			if err != nil {
				return err
			}
			if reserved {
				refund := item.Product.Price * float64(item.Quantity)
				_, err = ledger.Append(ctx, tx, userID, refund, models.EntryTypeOrderItemRefund,
					fmt.Sprintf("Order item #%d (%s) refunded", itemID, item.Product.Name),
					reference)
				if err != nil {
					return err
				}
			}
		}

		// Informational; duplicates across repeated calls are acceptable.
		_, err = ledger.Append(ctx, tx, userID, 0, models.EntryTypeOrderItemStatus,
			fmt.Sprintf("Order item #%d (%s) status changed to %s", itemID, item.Product.Name, normalized),
			reference)
		if err != nil {
			return err
		}

		item.Status = normalized
		return nil
	})
	if err != nil {
		return nil, err
	}
	return item, nil
}

// UpdateOrderItemsStatus applies one status to every item of an order. A
// cancellation refunds the order exactly once under an order-scoped key,
// reversing the original ORDER debit when that entry can be found so the
// refund cannot drift from what was charged; recomputing from current prices
// is only the fallback. The bulk status entry is also idempotency-checked,
// unlike the single-item one.
func (s *Service) UpdateOrderItemsStatus(ctx context.Context, orderID uint, status string) (*BulkStatusResult, error) {
	normalized, ok := models.NormalizeStatus(status)
	if !ok {
		return nil, errs.ErrInvalidOrderStatus
	}

	result := &BulkStatusResult{}
	err := s.store.Atomic(ctx, func(tx repositories.Store) error {
		order, err := tx.GetOrder(ctx, orderID)
		if err != nil {
			return err
		}

		if normalized == models.StatusCancelled {
			refundRef := fmt.Sprintf("order_items_refund:%d", orderID)
			reserved, err := tx.ReserveOperation(ctx, models.EntryTypeOrderItemsRefund, refundRef)
			if err != nil {
				return err
			}
			if reserved {
				refund := order.TotalPrice()
				original, err := tx.FindEntryByReference(ctx, order.UserID, models.EntryTypeOrder,
					fmt.Sprintf("order:%d", orderID))
				if err != nil {
					return err
				}
				if original != nil && original.Amount < 0 {
					refund = math.Abs(original.Amount)
				}
				if refund > 0 {
					_, err = ledger.Append(ctx, tx, order.UserID, refund, models.EntryTypeOrderItemsRefund,
						fmt.Sprintf("All items in order #%d refunded (Amount: %v)", orderID, refund),
						refundRef)
					if err != nil {
						return err
					}
					result.RefundAmount = refund
				}
			}
		}

		count, err := tx.UpdateOrderItemsStatus(ctx, orderID, normalized)
		if err != nil {
			return err
		}
		result.UpdatedCount = count

		statusRef := fmt.Sprintf("order_status:%d:%s", orderID, normalized)
		reserved, err := tx.ReserveOperation(ctx, models.EntryTypeOrderItemsStatus, statusRef)
		if err != nil {
			return err
		}
		if reserved {
			_, err = ledger.Append(ctx, tx, order.UserID, 0, models.EntryTypeOrderItemsStatus,
				fmt.Sprintf("All items in order #%d status changed to %s", orderID, normalized),
				statusRef)
			if err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// ProcessOrder sets the order header status and records a zero-amount status
// entry. Cancellation goes through UpdateOrderItemsStatus, not here.
func (s *Service) ProcessOrder(ctx context.Context, orderID uint, status string) (*models.Order, error) {
	switch status {
	case models.StatusPending, models.StatusProcessing, models.StatusCompleted:
	default:
		return nil, errs.ErrInvalidOrderStatus
	}

	var order *models.Order
	err := s.store.Atomic(ctx, func(tx repositories.Store) error {
		if err := tx.UpdateOrderStatus(ctx, orderID, status); err != nil {
			return err
		}
		var err error
		order, err = tx.GetOrder(ctx, orderID)
		if err != nil {
			return err
		}
		_, err = ledger.Append(ctx, tx, order.UserID, 0, models.EntryTypeOrderStatus,
			fmt.Sprintf("Order #%d status changed to %s", orderID, status),
			fmt.Sprintf("order:%d", orderID))
		return err
	})
	if err != nil {
		return nil, err
	}
	return order, nil
}

func (s *Service) GetOrder(ctx context.Context, id uint) (*models.Order, error) {
	return s.store.GetOrder(ctx, id)
}

// History returns the user's orders, newest first.
func (s *Service) History(ctx context.Context, userID uint) ([]models.Order, error) {
	return s.store.ListOrders(ctx, repositories.OrderFilter{UserID: &userID})
}

// CompletedOrders returns the user's completed orders, newest first.
func (s *Service) CompletedOrders(ctx context.Context, userID uint) ([]models.Order, error) {
	return s.store.ListOrders(ctx, repositories.OrderFilter{
		UserID: &userID,
		Status: models.StatusCompleted,
	})
}

// List returns orders for the admin views with optional filters.
func (s *Service) List(ctx context.Context, f repositories.OrderFilter) ([]models.Order, error) {
	if f.ItemStatus != "" {
		normalized, ok := models.NormalizeStatus(f.ItemStatus)
		if !ok {
			return nil, errs.ErrInvalidOrderStatus
		}
		f.ItemStatus = normalized
	}
	return s.store.ListOrders(ctx, f)
}

// Stats returns the dashboard counters.
func (s *Service) GetStats(ctx context.Context) (*Stats, error) {
	total, err := s.store.CountOrders(ctx)
	if err != nil {
		return nil, err
	}
	pending, err := s.store.CountOrdersByItemStatus(ctx, models.StatusPending)
	if err != nil {
		return nil, err
	}
	processing, err := s.store.CountOrdersByItemStatus(ctx, models.StatusProcessing)
	if err != nil {
		return nil, err
	}
	completed, err := s.store.CountOrdersByItemStatus(ctx, models.StatusCompleted)
	if err != nil {
		return nil, err
	}
	return &Stats{
		Total:      total,
		Pending:    pending,
		Processing: processing,
		Completed:  completed,
	}, nil
}
