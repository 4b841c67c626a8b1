package handlers

import (
	"log"
	"time"

	errs "github.com/YhormT/kelis-backend/internal/errors"
	"github.com/YhormT/kelis-backend/internal/repositories"
	"github.com/YhormT/kelis-backend/internal/services/order"
	"github.com/YhormT/kelis-backend/internal/utils"

	"github.com/gofiber/fiber/v2"
)

type OrderHandler struct {
	orderService *order.Service
}

func NewOrderHandler(orderService *order.Service) *OrderHandler {
	return &OrderHandler{orderService: orderService}
}

// Submit turns the caller's cart into an order, debiting the wallet.
func (h *OrderHandler) Submit(c *fiber.Ctx) error {
	claims, err := utils.GetUserClaims(c)
	if err != nil {
		return utils.Unauthorized(c, "invalid claims")
	}

	var input struct {
		MobileNumber string `json:"mobileNumber"`
	}
	// Body is optional; the cart may already carry the number.
	_ = c.BodyParser(&input)

	o, err := h.orderService.SubmitCart(c.Context(), claims.UserID, input.MobileNumber)
	if err != nil {
		if errs.IsDomain(err) {
			return utils.DomainError(c, err)
		}
		log.Printf("order submission failed for user %d: %v", claims.UserID, err)
		return utils.InternalError(c, "failed to submit order")
	}

	return utils.Created(c, o)
}

// UpdateItemStatus transitions a single order item; cancellation refunds the
// item exactly once.
func (h *OrderHandler) UpdateItemStatus(c *fiber.Ctx) error {
	itemID, err := c.ParamsInt("itemId")
	if err != nil || itemID <= 0 {
		return utils.BadRequest(c, "invalid item id")
	}

	var input struct {
		Status string `json:"status"`
	}
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "invalid request body")
	}

	item, err := h.orderService.UpdateItemStatus(c.Context(), uint(itemID), input.Status)
	if err != nil {
		if errs.IsDomain(err) {
			return utils.DomainError(c, err)
		}
		log.Printf("item status update failed for item %d: %v", itemID, err)
		return utils.InternalError(c, "failed to update item status")
	}

	return utils.Success(c, item)
}

// UpdateItemsStatus transitions every item in an order; cancellation refunds
// the whole order exactly once.
func (h *OrderHandler) UpdateItemsStatus(c *fiber.Ctx) error {
	orderID, err := c.ParamsInt("orderId")
	if err != nil || orderID <= 0 {
		return utils.BadRequest(c, "invalid order id")
	}

	var input struct {
		Status string `json:"status"`
	}
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "invalid request body")
	}

	result, err := h.orderService.UpdateOrderItemsStatus(c.Context(), uint(orderID), input.Status)
	if err != nil {
		if errs.IsDomain(err) {
			return utils.DomainError(c, err)
		}
		log.Printf("bulk status update failed for order %d: %v", orderID, err)
		return utils.InternalError(c, "failed to update order items")
	}

	return utils.Success(c, fiber.Map{
		"updatedCount": result.UpdatedCount,
		"refundAmount": result.RefundAmount,
	})
}

// Process moves the order header through its fulfilment statuses.
func (h *OrderHandler) Process(c *fiber.Ctx) error {
	orderID, err := c.ParamsInt("orderId")
	if err != nil || orderID <= 0 {
		return utils.BadRequest(c, "invalid order id")
	}

	var input struct {
		Status string `json:"status"`
	}
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "invalid request body")
	}

	o, err := h.orderService.ProcessOrder(c.Context(), uint(orderID), input.Status)
	if err != nil {
		if errs.IsDomain(err) {
			return utils.DomainError(c, err)
		}
		log.Printf("order processing failed for order %d: %v", orderID, err)
		return utils.InternalError(c, "failed to process order")
	}

	return utils.Success(c, o)
}

// Get returns one order with its items and products.
func (h *OrderHandler) Get(c *fiber.Ctx) error {
	orderID, err := c.ParamsInt("orderId")
	if err != nil || orderID <= 0 {
		return utils.BadRequest(c, "invalid order id")
	}

	o, err := h.orderService.GetOrder(c.Context(), uint(orderID))
	if err != nil {
		if errs.IsDomain(err) {
			return utils.DomainError(c, err)
		}
		log.Printf("order lookup failed for order %d: %v", orderID, err)
		return utils.InternalError(c, "failed to load order")
	}

	return utils.Success(c, o)
}

// History returns the caller's orders, newest first.
func (h *OrderHandler) History(c *fiber.Ctx) error {
	claims, err := utils.GetUserClaims(c)
	if err != nil {
		return utils.Unauthorized(c, "invalid claims")
	}

	orders, err := h.orderService.History(c.Context(), claims.UserID)
	if err != nil {
		log.Printf("order history failed for user %d: %v", claims.UserID, err)
		return utils.InternalError(c, "failed to load order history")
	}

	return utils.Success(c, orders)
}

// Completed returns the caller's completed orders.
func (h *OrderHandler) Completed(c *fiber.Ctx) error {
	claims, err := utils.GetUserClaims(c)
	if err != nil {
		return utils.Unauthorized(c, "invalid claims")
	}

	orders, err := h.orderService.CompletedOrders(c.Context(), claims.UserID)
	if err != nil {
		log.Printf("completed orders failed for user %d: %v", claims.UserID, err)
		return utils.InternalError(c, "failed to load completed orders")
	}

	return utils.Success(c, orders)
}

// List is the paginated admin listing with user, status and date filters.
func (h *OrderHandler) List(c *fiber.Ctx) error {
	f := repositories.OrderFilter{
		Status:     c.Query("status"),
		ItemStatus: c.Query("itemStatus"),
		Limit:      c.QueryInt("limit", 50),
		Offset:     c.QueryInt("offset", 0),
	}
	if userID := c.QueryInt("userId", 0); userID > 0 {
		id := uint(userID)
		f.UserID = &id
	}
	if start, err := time.Parse("2006-01-02", c.Query("startDate")); err == nil {
		f.StartDate = &start
	}
	if end, err := time.Parse("2006-01-02", c.Query("endDate")); err == nil {
		end = end.Add(24*time.Hour - time.Nanosecond)
		f.EndDate = &end
	}

	orders, err := h.orderService.List(c.Context(), f)
	if err != nil {
		if errs.IsDomain(err) {
			return utils.DomainError(c, err)
		}
		log.Printf("order listing failed: %v", err)
		return utils.InternalError(c, "failed to list orders")
	}

	return utils.Success(c, fiber.Map{
		"orders": orders,
		"limit":  f.Limit,
		"offset": f.Offset,
	})
}

// Stats returns order counters for the admin dashboard.
func (h *OrderHandler) Stats(c *fiber.Ctx) error {
	stats, err := h.orderService.GetStats(c.Context())
	if err != nil {
		log.Printf("order stats failed: %v", err)
		return utils.InternalError(c, "failed to load order stats")
	}

	return utils.Success(c, stats)
}
