package handlers

import (
	"log"

	"github.com/YhormT/kelis-backend/internal/models"
	"github.com/YhormT/kelis-backend/internal/repositories"
	"github.com/YhormT/kelis-backend/internal/utils"

	"github.com/gofiber/fiber/v2"
)

// SmsHandler ingests already-parsed payment notification records. The
// gateway that parses raw provider messages lives outside this service.
type SmsHandler struct {
	store repositories.Store
}

func NewSmsHandler(store repositories.Store) *SmsHandler {
	return &SmsHandler{store: store}
}

// Ingest stores one parsed SMS record for later reference verification.
func (h *SmsHandler) Ingest(c *fiber.Ctx) error {
	var input struct {
		Sender    string   `json:"sender"`
		Body      string   `json:"body"`
		Reference string   `json:"reference"`
		Amount    *float64 `json:"amount"`
	}
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "invalid request body")
	}
	if input.Reference == "" {
		return utils.BadRequest(c, "reference is required")
	}

	msg := &models.SmsMessage{
		Sender:    input.Sender,
		Body:      input.Body,
		Reference: input.Reference,
		Amount:    input.Amount,
	}
	if err := h.store.CreateSms(c.Context(), msg); err != nil {
		log.Printf("sms ingestion failed for reference %s: %v", input.Reference, err)
		return utils.InternalError(c, "failed to store sms record")
	}

	return utils.Created(c, fiber.Map{"id": msg.ID})
}
