package handlers

import (
	"fmt"
	"log"
	"time"

	errs "github.com/YhormT/kelis-backend/internal/errors"
	"github.com/YhormT/kelis-backend/internal/models"
	"github.com/YhormT/kelis-backend/internal/services/ledger"
	"github.com/YhormT/kelis-backend/internal/services/transaction"
	"github.com/YhormT/kelis-backend/internal/utils"

	"github.com/gofiber/fiber/v2"
)

type TransactionHandler struct {
	txService     *transaction.Service
	ledgerService *ledger.Service
}

func NewTransactionHandler(txService *transaction.Service, ledgerService *ledger.Service) *TransactionHandler {
	return &TransactionHandler{txService: txService, ledgerService: ledgerService}
}

func parseEntryFilter(c *fiber.Ctx) transaction.Filter {
	f := transaction.Filter{Type: c.Query("type")}
	if start, err := time.Parse("2006-01-02", c.Query("startDate")); err == nil {
		f.StartDate = &start
	}
	if end, err := time.Parse("2006-01-02", c.Query("endDate")); err == nil {
		end = end.Add(24*time.Hour - time.Nanosecond)
		f.EndDate = &end
	}
	return f
}

// Mine lists the caller's ledger entries, newest first.
func (h *TransactionHandler) Mine(c *fiber.Ctx) error {
	claims, err := utils.GetUserClaims(c)
	if err != nil {
		return utils.Unauthorized(c, "invalid claims")
	}

	entries, err := h.txService.UserTransactions(c.Context(), claims.UserID, parseEntryFilter(c))
	if err != nil {
		log.Printf("transaction listing failed for user %d: %v", claims.UserID, err)
		return utils.InternalError(c, "failed to list transactions")
	}

	return utils.Success(c, entries)
}

// All is the admin audit listing across users, optionally narrowed to one.
func (h *TransactionHandler) All(c *fiber.Ctx) error {
	var userID *uint
	if id := c.QueryInt("userId", 0); id > 0 {
		u := uint(id)
		userID = &u
	}

	entries, err := h.txService.AllTransactions(c.Context(), userID, parseEntryFilter(c))
	if err != nil {
		log.Printf("audit listing failed: %v", err)
		return utils.InternalError(c, "failed to list transactions")
	}

	return utils.Success(c, entries)
}

// Summary returns the caller's balance and per-type totals derived from the
// ledger.
func (h *TransactionHandler) Summary(c *fiber.Ctx) error {
	claims, err := utils.GetUserClaims(c)
	if err != nil {
		return utils.Unauthorized(c, "invalid claims")
	}

	summary, err := h.txService.BalanceSummary(c.Context(), claims.UserID)
	if err != nil {
		log.Printf("balance summary failed for user %d: %v", claims.UserID, err)
		return utils.InternalError(c, "failed to load balance summary")
	}

	return utils.Success(c, summary)
}

// LoanAdjust appends a loan repayment or deduction entry to a user's ledger
// (admin). Repayments credit; deductions debit.
func (h *TransactionHandler) LoanAdjust(c *fiber.Ctx) error {
	var input struct {
		UserID      uint    `json:"userId"`
		Amount      float64 `json:"amount"`
		Type        string  `json:"type"`
		Description string  `json:"description"`
	}
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "invalid request body")
	}
	if input.UserID == 0 {
		return utils.BadRequest(c, "userId is required")
	}
	if input.Amount <= 0 {
		return utils.BadRequest(c, "amount must be greater than 0")
	}

	amount := input.Amount
	switch input.Type {
	case models.EntryTypeLoanRepayment:
		// credit as-is
	case models.EntryTypeLoanDeduction:
		amount = -amount
	default:
		return utils.BadRequest(c, "type must be LOAN_REPAYMENT or LOAN_DEDUCTION")
	}

	description := input.Description
	if description == "" {
		description = fmt.Sprintf("Loan adjustment of GHS %v", input.Amount)
	}
	reference := fmt.Sprintf("loan:%s:%d", input.Type, time.Now().UnixNano())

	entry, err := h.ledgerService.Append(c.Context(), input.UserID, amount, input.Type, description, reference)
	if err != nil {
		if errs.IsDomain(err) {
			return utils.DomainError(c, err)
		}
		log.Printf("loan adjustment failed for user %d: %v", input.UserID, err)
		return utils.InternalError(c, "failed to adjust loan")
	}

	return utils.Created(c, entry)
}
