package memstore

import (
	"context"
	"sort"
	"time"

	errs "github.com/YhormT/kelis-backend/internal/errors"
	"github.com/YhormT/kelis-backend/internal/models"
	"github.com/YhormT/kelis-backend/internal/repositories"
)

// Users

func (v *view) GetUser(ctx context.Context, id uint) (*models.User, error) {
	u, ok := v.st.users[id]
	if !ok {
		return nil, errs.ErrUserNotFound
	}
	return &u, nil
}

// GetUserForUpdate is plain GetUser here; the store mutex already serializes
// whole scopes.
func (v *view) GetUserForUpdate(ctx context.Context, id uint) (*models.User, error) {
	return v.GetUser(ctx, id)
}

func (v *view) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	for _, u := range v.st.users {
		if u.Email == email {
			u := u
			return &u, nil
		}
	}
	return nil, errs.ErrUserNotFound
}

func (v *view) CreateUser(ctx context.Context, user *models.User) error {
	if user.ID == 0 {
		user.ID = v.st.id()
	}
	if user.CreatedAt.IsZero() {
		user.CreatedAt = time.Now()
	}
	v.st.users[user.ID] = *user
	return nil
}

func (v *view) IncrementBalance(ctx context.Context, userID uint, amount float64) (float64, error) {
	u, ok := v.st.users[userID]
	if !ok {
		return 0, errs.ErrUserNotFound
	}
	u.WalletBalance += amount
	v.st.users[userID] = u
	return u.WalletBalance, nil
}

// Ledger

func (v *view) CreateEntry(ctx context.Context, entry *models.Transaction) error {
	if entry.ID == 0 {
		entry.ID = v.st.id()
	}
	if entry.CreatedAt.IsZero() {
		entry.CreatedAt = time.Now()
	}
	v.st.entries = append(v.st.entries, *entry)
	return nil
}

func (v *view) FindEntryByReference(ctx context.Context, userID uint, entryType, reference string) (*models.Transaction, error) {
	for _, e := range v.st.entries {
		if e.UserID == userID && e.Type == entryType && e.Reference == reference {
			e := e
			return &e, nil
		}
	}
	return nil, nil
}

func (v *view) ListEntries(ctx context.Context, f repositories.EntryFilter) ([]models.Transaction, error) {
	var out []models.Transaction
	for _, e := range v.st.entries {
		if f.UserID != nil && e.UserID != *f.UserID {
			continue
		}
		if f.Type != "" && e.Type != f.Type {
			continue
		}
		if f.StartDate != nil && e.CreatedAt.Before(*f.StartDate) {
			continue
		}
		if f.EndDate != nil && e.CreatedAt.After(*f.EndDate) {
			continue
		}
		out = append(out, e)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].ID > out[j].ID
		}
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}

func (v *view) ReserveOperation(ctx context.Context, operationType, reference string) (bool, error) {
	key := operationType + "|" + reference
	if v.st.reserved[key] {
		return false, nil
	}
	v.st.reserved[key] = true
	return true, nil
}

// Carts

func (v *view) CartWithItems(ctx context.Context, userID uint) (*models.Cart, error) {
	for _, c := range v.st.carts {
		if c.UserID == userID {
			cart := c
			cart.Items = v.cartItems(cart.ID)
			return &cart, nil
		}
	}
	return nil, nil
}

func (v *view) cartItems(cartID uint) []models.CartItem {
	var items []models.CartItem
	for _, it := range v.st.cartItems {
		if it.CartID == cartID {
			if p, ok := v.st.products[it.ProductID]; ok {
				p := p
				it.Product = &p
			}
			items = append(items, it)
		}
	}
	sort.Slice(items, func(i, j int) bool { return items[i].ID < items[j].ID })
	return items
}

func (v *view) GetOrCreateCart(ctx context.Context, userID uint) (*models.Cart, error) {
	for _, c := range v.st.carts {
		if c.UserID == userID {
			c := c
			return &c, nil
		}
	}
	cart := models.Cart{ID: v.st.id(), UserID: userID, CreatedAt: time.Now()}
	v.st.carts[cart.ID] = cart
	return &cart, nil
}

func (v *view) AddCartItem(ctx context.Context, item *models.CartItem) error {
	if item.ID == 0 {
		item.ID = v.st.id()
	}
	if item.CreatedAt.IsZero() {
		item.CreatedAt = time.Now()
	}
	stored := *item
	stored.Product = nil
	v.st.cartItems[stored.ID] = stored
	return nil
}

func (v *view) RemoveCartItem(ctx context.Context, cartID, itemID uint) error {
	if it, ok := v.st.cartItems[itemID]; ok && it.CartID == cartID {
		delete(v.st.cartItems, itemID)
	}
	return nil
}

func (v *view) SetCartMobileNumber(ctx context.Context, cartID uint, mobileNumber string) error {
	c, ok := v.st.carts[cartID]
	if !ok {
		return nil
	}
	c.MobileNumber = mobileNumber
	v.st.carts[cartID] = c
	return nil
}

func (v *view) ClearCartItems(ctx context.Context, cartID uint) error {
	for id, it := range v.st.cartItems {
		if it.CartID == cartID {
			delete(v.st.cartItems, id)
		}
	}
	return nil
}

// Orders

func (v *view) CreateOrder(ctx context.Context, order *models.Order) error {
	if order.ID == 0 {
		order.ID = v.st.id()
	}
	if order.Status == "" {
		order.Status = models.StatusPending
	}
	if order.CreatedAt.IsZero() {
		order.CreatedAt = time.Now()
	}
	stored := *order
	stored.Items = nil
	stored.User = nil
	v.st.orders[stored.ID] = stored

	for i := range order.Items {
		item := &order.Items[i]
		if item.ID == 0 {
			item.ID = v.st.id()
		}
		item.OrderID = order.ID
		if item.Status == "" {
			item.Status = models.StatusPending
		}
		if item.CreatedAt.IsZero() {
			item.CreatedAt = order.CreatedAt
		}
		storedItem := *item
		storedItem.Product = nil
		storedItem.Order = nil
		v.st.orderItems[storedItem.ID] = storedItem
	}
	return nil
}

func (v *view) GetOrder(ctx context.Context, id uint) (*models.Order, error) {
	o, ok := v.st.orders[id]
	if !ok {
		return nil, errs.ErrOrderNotFound
	}
	order := o
	order.Items = v.orderItems(order.ID)
	if u, ok := v.st.users[order.UserID]; ok {
		u := u
		order.User = &u
	}
	return &order, nil
}

func (v *view) orderItems(orderID uint) []models.OrderItem {
	var items []models.OrderItem
	for _, it := range v.st.orderItems {
		if it.OrderID == orderID {
			if p, ok := v.st.products[it.ProductID]; ok {
				p := p
				it.Product = &p
			}
			items = append(items, it)
		}
	}
	sort.Slice(items, func(i, j int) bool { return items[i].ID < items[j].ID })
	return items
}

func (v *view) OrderItemByID(ctx context.Context, id uint) (*models.OrderItem, error) {
	it, ok := v.st.orderItems[id]
	if !ok {
		return nil, errs.ErrOrderItemNotFound
	}
	item := it
	if p, ok := v.st.products[item.ProductID]; ok {
		p := p
		item.Product = &p
	}
	if o, ok := v.st.orders[item.OrderID]; ok {
		o := o
		item.Order = &o
	}
	return &item, nil
}

func (v *view) UpdateOrderItemStatus(ctx context.Context, itemID uint, status string) error {
	it, ok := v.st.orderItems[itemID]
	if !ok {
		return errs.ErrOrderItemNotFound
	}
	it.Status = status
	v.st.orderItems[itemID] = it
	return nil
}

func (v *view) UpdateOrderItemsStatus(ctx context.Context, orderID uint, status string) (int64, error) {
	var count int64
	for id, it := range v.st.orderItems {
		if it.OrderID == orderID {
			it.Status = status
			v.st.orderItems[id] = it
			count++
		}
	}
	return count, nil
}

func (v *view) UpdateOrderStatus(ctx context.Context, orderID uint, status string) error {
	o, ok := v.st.orders[orderID]
	if !ok {
		return errs.ErrOrderNotFound
	}
	o.Status = status
	v.st.orders[orderID] = o
	return nil
}

func (v *view) ListOrders(ctx context.Context, f repositories.OrderFilter) ([]models.Order, error) {
	var out []models.Order
	for id := range v.st.orders {
		order, _ := v.GetOrder(ctx, id)
		if f.UserID != nil && order.UserID != *f.UserID {
			continue
		}
		if f.Status != "" && order.Status != f.Status {
			continue
		}
		if f.StartDate != nil && order.CreatedAt.Before(*f.StartDate) {
			continue
		}
		if f.EndDate != nil && order.CreatedAt.After(*f.EndDate) {
			continue
		}
		if f.ItemStatus != "" {
			match := false
			for _, it := range order.Items {
				if it.Status == f.ItemStatus {
					match = true
					break
				}
			}
			if !match {
				continue
			}
		}
		out = append(out, *order)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].ID > out[j].ID
		}
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	if f.Limit > 0 {
		if f.Offset >= len(out) {
			return nil, nil
		}
		end := f.Offset + f.Limit
		if end > len(out) {
			end = len(out)
		}
		out = out[f.Offset:end]
	}
	return out, nil
}

func (v *view) CountOrders(ctx context.Context) (int64, error) {
	return int64(len(v.st.orders)), nil
}

func (v *view) CountOrdersByItemStatus(ctx context.Context, status string) (int64, error) {
	seen := map[uint]bool{}
	for _, it := range v.st.orderItems {
		if it.Status == status {
			seen[it.OrderID] = true
		}
	}
	return int64(len(seen)), nil
}

// Top-ups

func (v *view) CreateTopUp(ctx context.Context, topUp *models.TopUp) error {
	for _, t := range v.st.topUps {
		if t.ReferenceID == topUp.ReferenceID {
			return errs.ErrDuplicateReference
		}
	}
	if topUp.ID == 0 {
		topUp.ID = v.st.id()
	}
	if topUp.Status == "" {
		topUp.Status = models.TopUpStatusPending
	}
	if topUp.CreatedAt.IsZero() {
		topUp.CreatedAt = time.Now()
	}
	stored := *topUp
	stored.User = nil
	v.st.topUps[stored.ID] = stored
	return nil
}

func (v *view) TopUpByID(ctx context.Context, id uint) (*models.TopUp, error) {
	t, ok := v.st.topUps[id]
	if !ok {
		return nil, errs.ErrTopUpNotFound
	}
	return &t, nil
}

func (v *view) TopUpByReference(ctx context.Context, referenceID string) (*models.TopUp, error) {
	for _, t := range v.st.topUps {
		if t.ReferenceID == referenceID {
			t := t
			return &t, nil
		}
	}
	return nil, errs.ErrTopUpNotFound
}

func (v *view) SetTopUpStatus(ctx context.Context, id uint, status string) error {
	t, ok := v.st.topUps[id]
	if !ok {
		return errs.ErrTopUpNotFound
	}
	t.Status = status
	v.st.topUps[id] = t
	return nil
}

func (v *view) ListTopUps(ctx context.Context, f repositories.TopUpFilter) ([]models.TopUp, error) {
	var out []models.TopUp
	for _, t := range v.st.topUps {
		if f.Status != "" && t.Status != f.Status {
			continue
		}
		if f.StartDate != nil && t.CreatedAt.Before(*f.StartDate) {
			continue
		}
		if f.EndDate != nil && t.CreatedAt.After(*f.EndDate) {
			continue
		}
		out = append(out, t)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].ID > out[j].ID
		}
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}

// Inbound SMS

func (v *view) CreateSms(ctx context.Context, msg *models.SmsMessage) error {
	if msg.ID == 0 {
		msg.ID = v.st.id()
	}
	if msg.CreatedAt.IsZero() {
		msg.CreatedAt = time.Now()
	}
	v.st.sms[msg.ID] = *msg
	return nil
}

func (v *view) UnprocessedSmsByReference(ctx context.Context, reference string) (*models.SmsMessage, error) {
	var found *models.SmsMessage
	for _, m := range v.st.sms {
		if m.Reference == reference && !m.Processed {
			m := m
			if found == nil || m.ID < found.ID {
				found = &m
			}
		}
	}
	if found == nil {
		return nil, errs.ErrSmsNotFound
	}
	return found, nil
}

func (v *view) MarkSmsProcessed(ctx context.Context, id uint) error {
	m, ok := v.st.sms[id]
	if !ok {
		return errs.ErrSmsNotFound
	}
	m.Processed = true
	v.st.sms[id] = m
	return nil
}

// Products

func (v *view) GetProduct(ctx context.Context, id uint) (*models.Product, error) {
	p, ok := v.st.products[id]
	if !ok {
		return nil, errs.ErrProductNotFound
	}
	return &p, nil
}

func (v *view) CreateProduct(ctx context.Context, product *models.Product) error {
	if product.ID == 0 {
		product.ID = v.st.id()
	}
	v.st.products[product.ID] = *product
	return nil
}
