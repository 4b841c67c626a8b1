package handlers

import (
	"log"

	errs "github.com/YhormT/kelis-backend/internal/errors"
	"github.com/YhormT/kelis-backend/internal/models"
	"github.com/YhormT/kelis-backend/internal/repositories"
	"github.com/YhormT/kelis-backend/internal/utils"

	"github.com/gofiber/fiber/v2"
)

// CartHandler exposes the cart staging area that order submission consumes.
type CartHandler struct {
	store repositories.Store
}

func NewCartHandler(store repositories.Store) *CartHandler {
	return &CartHandler{store: store}
}

// GetCart returns the caller's cart with items, or an empty cart if none
// exists yet.
func (h *CartHandler) GetCart(c *fiber.Ctx) error {
	claims, err := utils.GetUserClaims(c)
	if err != nil {
		return utils.Unauthorized(c, "invalid claims")
	}

	cart, err := h.store.CartWithItems(c.Context(), claims.UserID)
	if err != nil {
		log.Printf("cart lookup failed for user %d: %v", claims.UserID, err)
		return utils.InternalError(c, "failed to load cart")
	}
	if cart == nil {
		return utils.Success(c, fiber.Map{"items": []models.CartItem{}})
	}
	return utils.Success(c, cart)
}

// AddItem puts a product into the caller's cart, creating the cart on first
// use.
func (h *CartHandler) AddItem(c *fiber.Ctx) error {
	claims, err := utils.GetUserClaims(c)
	if err != nil {
		return utils.Unauthorized(c, "invalid claims")
	}

	var input struct {
		ProductID    uint   `json:"productId"`
		Quantity     int    `json:"quantity"`
		MobileNumber string `json:"mobileNumber"`
	}
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "invalid request body")
	}
	if input.ProductID == 0 {
		return utils.BadRequest(c, "productId is required")
	}
	if input.Quantity <= 0 {
		input.Quantity = 1
	}

	if _, err := h.store.GetProduct(c.Context(), input.ProductID); err != nil {
		if errs.IsDomain(err) {
			return utils.DomainError(c, err)
		}
		log.Printf("product lookup failed: %v", err)
		return utils.InternalError(c, "failed to add item")
	}

	cart, err := h.store.GetOrCreateCart(c.Context(), claims.UserID)
	if err != nil {
		log.Printf("cart creation failed for user %d: %v", claims.UserID, err)
		return utils.InternalError(c, "failed to add item")
	}

	item := &models.CartItem{
		CartID:       cart.ID,
		ProductID:    input.ProductID,
		Quantity:     input.Quantity,
		MobileNumber: input.MobileNumber,
	}
	if err := h.store.AddCartItem(c.Context(), item); err != nil {
		log.Printf("cart item insert failed: %v", err)
		return utils.InternalError(c, "failed to add item")
	}

	return utils.Created(c, item)
}

// RemoveItem deletes one cart item by id.
func (h *CartHandler) RemoveItem(c *fiber.Ctx) error {
	claims, err := utils.GetUserClaims(c)
	if err != nil {
		return utils.Unauthorized(c, "invalid claims")
	}

	itemID, err := c.ParamsInt("itemId")
	if err != nil || itemID <= 0 {
		return utils.BadRequest(c, "invalid item id")
	}

	cart, err := h.store.CartWithItems(c.Context(), claims.UserID)
	if err != nil {
		log.Printf("cart lookup failed for user %d: %v", claims.UserID, err)
		return utils.InternalError(c, "failed to remove item")
	}
	if cart == nil {
		return utils.NotFound(c, "cart is empty")
	}

	if err := h.store.RemoveCartItem(c.Context(), cart.ID, uint(itemID)); err != nil {
		if errs.IsDomain(err) {
			return utils.DomainError(c, err)
		}
		log.Printf("cart item removal failed: %v", err)
		return utils.InternalError(c, "failed to remove item")
	}

	return utils.Success(c, fiber.Map{"message": "item removed"})
}

// SetMobileNumber records the delivery number on the cart before submission.
func (h *CartHandler) SetMobileNumber(c *fiber.Ctx) error {
	claims, err := utils.GetUserClaims(c)
	if err != nil {
		return utils.Unauthorized(c, "invalid claims")
	}

	var input struct {
		MobileNumber string `json:"mobileNumber"`
	}
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "invalid request body")
	}
	if input.MobileNumber == "" {
		return utils.BadRequest(c, "mobileNumber is required")
	}

	cart, err := h.store.GetOrCreateCart(c.Context(), claims.UserID)
	if err != nil {
		log.Printf("cart creation failed for user %d: %v", claims.UserID, err)
		return utils.InternalError(c, "failed to update cart")
	}
	if err := h.store.SetCartMobileNumber(c.Context(), cart.ID, input.MobileNumber); err != nil {
		log.Printf("cart update failed: %v", err)
		return utils.InternalError(c, "failed to update cart")
	}

	return utils.Success(c, fiber.Map{"message": "mobile number updated"})
}
