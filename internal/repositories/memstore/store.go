package memstore

import (
	"context"

	"github.com/YhormT/kelis-backend/internal/models"
	"github.com/YhormT/kelis-backend/internal/repositories"
)

// Interface guard.
var _ repositories.Store = (*Store)(nil)

func (s *Store) GetUser(ctx context.Context, id uint) (*models.User, error) {
	v, unlock := s.locked()
	defer unlock()
	return v.GetUser(ctx, id)
}

func (s *Store) GetUserForUpdate(ctx context.Context, id uint) (*models.User, error) {
	v, unlock := s.locked()
	defer unlock()
	return v.GetUserForUpdate(ctx, id)
}

func (s *Store) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	v, unlock := s.locked()
	defer unlock()
	return v.GetUserByEmail(ctx, email)
}

func (s *Store) CreateUser(ctx context.Context, user *models.User) error {
	v, unlock := s.locked()
	defer unlock()
	return v.CreateUser(ctx, user)
}

func (s *Store) IncrementBalance(ctx context.Context, userID uint, amount float64) (float64, error) {
	v, unlock := s.locked()
	defer unlock()
	return v.IncrementBalance(ctx, userID, amount)
}

func (s *Store) CreateEntry(ctx context.Context, entry *models.Transaction) error {
	v, unlock := s.locked()
	defer unlock()
	return v.CreateEntry(ctx, entry)
}

func (s *Store) FindEntryByReference(ctx context.Context, userID uint, entryType, reference string) (*models.Transaction, error) {
	v, unlock := s.locked()
	defer unlock()
	return v.FindEntryByReference(ctx, userID, entryType, reference)
}

func (s *Store) ListEntries(ctx context.Context, f repositories.EntryFilter) ([]models.Transaction, error) {
	v, unlock := s.locked()
	defer unlock()
	return v.ListEntries(ctx, f)
}

func (s *Store) ReserveOperation(ctx context.Context, operationType, reference string) (bool, error) {
	v, unlock := s.locked()
	defer unlock()
	return v.ReserveOperation(ctx, operationType, reference)
}

func (s *Store) CartWithItems(ctx context.Context, userID uint) (*models.Cart, error) {
	v, unlock := s.locked()
	defer unlock()
	return v.CartWithItems(ctx, userID)
}

func (s *Store) GetOrCreateCart(ctx context.Context, userID uint) (*models.Cart, error) {
	v, unlock := s.locked()
	defer unlock()
	return v.GetOrCreateCart(ctx, userID)
}

func (s *Store) AddCartItem(ctx context.Context, item *models.CartItem) error {
	v, unlock := s.locked()
	defer unlock()
	return v.AddCartItem(ctx, item)
}

func (s *Store) RemoveCartItem(ctx context.Context, cartID, itemID uint) error {
	v, unlock := s.locked()
	defer unlock()
	return v.RemoveCartItem(ctx, cartID, itemID)
}

func (s *Store) SetCartMobileNumber(ctx context.Context, cartID uint, mobileNumber string) error {
	v, unlock := s.locked()
	defer unlock()
	return v.SetCartMobileNumber(ctx, cartID, mobileNumber)
}

func (s *Store) ClearCartItems(ctx context.Context, cartID uint) error {
	v, unlock := s.locked()
	defer unlock()
	return v.ClearCartItems(ctx, cartID)
}

func (s *Store) CreateOrder(ctx context.Context, order *models.Order) error {
	v, unlock := s.locked()
	defer unlock()
	return v.CreateOrder(ctx, order)
}

func (s *Store) GetOrder(ctx context.Context, id uint) (*models.Order, error) {
	v, unlock := s.locked()
	defer unlock()
	return v.GetOrder(ctx, id)
}

func (s *Store) OrderItemByID(ctx context.Context, id uint) (*models.OrderItem, error) {
	v, unlock := s.locked()
	defer unlock()
	return v.OrderItemByID(ctx, id)
}

func (s *Store) UpdateOrderItemStatus(ctx context.Context, itemID uint, status string) error {
	v, unlock := s.locked()
	defer unlock()
	return v.UpdateOrderItemStatus(ctx, itemID, status)
}

func (s *Store) UpdateOrderItemsStatus(ctx context.Context, orderID uint, status string) (int64, error) {
	v, unlock := s.locked()
	defer unlock()
	return v.UpdateOrderItemsStatus(ctx, orderID, status)
}

func (s *Store) UpdateOrderStatus(ctx context.Context, orderID uint, status string) error {
	v, unlock := s.locked()
	defer unlock()
	return v.UpdateOrderStatus(ctx, orderID, status)
}

func (s *Store) ListOrders(ctx context.Context, f repositories.OrderFilter) ([]models.Order, error) {
	v, unlock := s.locked()
	defer unlock()
	return v.ListOrders(ctx, f)
}

func (s *Store) CountOrders(ctx context.Context) (int64, error) {
	v, unlock := s.locked()
	defer unlock()
	return v.CountOrders(ctx)
}

func (s *Store) CountOrdersByItemStatus(ctx context.Context, status string) (int64, error) {
	v, unlock := s.locked()
	defer unlock()
	return v.CountOrdersByItemStatus(ctx, status)
}

func (s *Store) CreateTopUp(ctx context.Context, topUp *models.TopUp) error {
	v, unlock := s.locked()
	defer unlock()
	return v.CreateTopUp(ctx, topUp)
}

func (s *Store) TopUpByID(ctx context.Context, id uint) (*models.TopUp, error) {
	v, unlock := s.locked()
	defer unlock()
	return v.TopUpByID(ctx, id)
}

func (s *Store) TopUpByReference(ctx context.Context, referenceID string) (*models.TopUp, error) {
	v, unlock := s.locked()
	defer unlock()
	return v.TopUpByReference(ctx, referenceID)
}

func (s *Store) SetTopUpStatus(ctx context.Context, id uint, status string) error {
	v, unlock := s.locked()
	defer unlock()
	return v.SetTopUpStatus(ctx, id, status)
}

func (s *Store) ListTopUps(ctx context.Context, f repositories.TopUpFilter) ([]models.TopUp, error) {
	v, unlock := s.locked()
	defer unlock()
	return v.ListTopUps(ctx, f)
}

func (s *Store) CreateSms(ctx context.Context, msg *models.SmsMessage) error {
	v, unlock := s.locked()
	defer unlock()
	return v.CreateSms(ctx, msg)
}

func (s *Store) UnprocessedSmsByReference(ctx context.Context, reference string) (*models.SmsMessage, error) {
	v, unlock := s.locked()
	defer unlock()
	return v.UnprocessedSmsByReference(ctx, reference)
}

func (s *Store) MarkSmsProcessed(ctx context.Context, id uint) error {
	v, unlock := s.locked()
	defer unlock()
	return v.MarkSmsProcessed(ctx, id)
}

func (s *Store) GetProduct(ctx context.Context, id uint) (*models.Product, error) {
	v, unlock := s.locked()
	defer unlock()
	return v.GetProduct(ctx, id)
}

func (s *Store) CreateProduct(ctx context.Context, product *models.Product) error {
	v, unlock := s.locked()
	defer unlock()
	return v.CreateProduct(ctx, product)
}
