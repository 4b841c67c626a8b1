package handlers

import (
	"log"
	"time"

	errs "github.com/YhormT/kelis-backend/internal/errors"
	"github.com/YhormT/kelis-backend/internal/repositories"
	"github.com/YhormT/kelis-backend/internal/services/topup"
	"github.com/YhormT/kelis-backend/internal/utils"

	"github.com/gofiber/fiber/v2"
)

type TopUpHandler struct {
	topUpService *topup.Service
}

func NewTopUpHandler(topUpService *topup.Service) *TopUpHandler {
	return &TopUpHandler{topUpService: topUpService}
}

// Create submits a pending top-up request for admin review.
func (h *TopUpHandler) Create(c *fiber.Ctx) error {
	claims, err := utils.GetUserClaims(c)
	if err != nil {
		return utils.Unauthorized(c, "invalid claims")
	}

	var input struct {
		ReferenceID string  `json:"referenceId"`
		Amount      float64 `json:"amount"`
	}
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "invalid request body")
	}
	if input.ReferenceID == "" {
		return utils.BadRequest(c, "referenceId is required")
	}

	t, err := h.topUpService.Create(c.Context(), claims.UserID, input.ReferenceID, input.Amount, claims.Email)
	if err != nil {
		if errs.IsDomain(err) {
			return utils.DomainError(c, err)
		}
		log.Printf("top-up creation failed for user %d: %v", claims.UserID, err)
		return utils.InternalError(c, "failed to create top-up")
	}

	return utils.Created(c, t)
}

// UpdateStatus approves or rejects a pending top-up (admin).
func (h *TopUpHandler) UpdateStatus(c *fiber.Ctx) error {
	topUpID, err := c.ParamsInt("topupId")
	if err != nil || topUpID <= 0 {
		return utils.BadRequest(c, "invalid top-up id")
	}

	var input struct {
		Status string `json:"status"`
	}
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "invalid request body")
	}

	t, err := h.topUpService.UpdateStatus(c.Context(), uint(topUpID), input.Status)
	if err != nil {
		if errs.IsDomain(err) {
			return utils.DomainError(c, err)
		}
		log.Printf("top-up status update failed for %d: %v", topUpID, err)
		return utils.InternalError(c, "failed to update top-up")
	}

	return utils.Success(c, t)
}

// VerifySms credits the wallet immediately when an unprocessed SMS record
// matches the submitted reference.
func (h *TopUpHandler) VerifySms(c *fiber.Ctx) error {
	claims, err := utils.GetUserClaims(c)
	if err != nil {
		return utils.Unauthorized(c, "invalid claims")
	}

	var input struct {
		ReferenceID string `json:"referenceId"`
	}
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "invalid request body")
	}
	if input.ReferenceID == "" {
		return utils.BadRequest(c, "referenceId is required")
	}

	result, err := h.topUpService.VerifyAndAutoTopUp(c.Context(), claims.UserID, input.ReferenceID)
	if err != nil {
		if errs.IsDomain(err) {
			return utils.DomainError(c, err)
		}
		log.Printf("auto top-up failed for user %d: %v", claims.UserID, err)
		return utils.InternalError(c, "failed to verify top-up")
	}

	return utils.Success(c, result)
}

// List returns top-ups filtered by status and date range (admin).
func (h *TopUpHandler) List(c *fiber.Ctx) error {
	f := repositories.TopUpFilter{Status: c.Query("status")}
	if start, err := time.Parse("2006-01-02", c.Query("startDate")); err == nil {
		f.StartDate = &start
	}
	if end, err := time.Parse("2006-01-02", c.Query("endDate")); err == nil {
		end = end.Add(24*time.Hour - time.Nanosecond)
		f.EndDate = &end
	}

	topUps, err := h.topUpService.List(c.Context(), f)
	if err != nil {
		log.Printf("top-up listing failed: %v", err)
		return utils.InternalError(c, "failed to list top-ups")
	}

	return utils.Success(c, topUps)
}
