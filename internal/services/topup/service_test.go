package topup

import (
	"context"
	"errors"
	"testing"
	"time"

	errs "github.com/YhormT/kelis-backend/internal/errors"
	"github.com/YhormT/kelis-backend/internal/models"
	"github.com/YhormT/kelis-backend/internal/repositories"
	"github.com/YhormT/kelis-backend/internal/repositories/memstore"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var errStorage = errors.New("connection reset")

type fixture struct {
	store   *memstore.Store
	service *Service
	user    *models.User
}

func newFixture(t *testing.T, balance float64) *fixture {
	t.Helper()
	store := memstore.New()
	user := &models.User{Name: "Esi", Email: "esi@example.com", WalletBalance: balance}
	require.NoError(t, store.CreateUser(context.Background(), user))
	return &fixture{
		store:   store,
		service: NewService(store, Config{RetryBackoff: time.Millisecond}),
		user:    user,
	}
}

func (f *fixture) entriesOfType(t *testing.T, entryType string) []models.Transaction {
	t.Helper()
	entries, err := f.store.ListEntries(context.Background(), repositories.EntryFilter{
		UserID: &f.user.ID,
		Type:   entryType,
	})
	require.NoError(t, err)
	return entries
}

func (f *fixture) balance(t *testing.T) float64 {
	t.Helper()
	user, err := f.store.GetUser(context.Background(), f.user.ID)
	require.NoError(t, err)
	return user.WalletBalance
}

func TestCreate_Success(t *testing.T) {
	f := newFixture(t, 0)

	topUp, err := f.service.Create(context.Background(), f.user.ID, "MP123456", 200, f.user.Email)
	require.NoError(t, err)
	assert.Equal(t, models.TopUpStatusPending, topUp.Status)
	assert.Equal(t, 200.0, topUp.Amount)

	// Requesting moves no money; the request entry is informational.
	assert.Equal(t, 0.0, f.balance(t))
	requests := f.entriesOfType(t, models.EntryTypeTopUpRequest)
	require.Len(t, requests, 1)
	assert.Zero(t, requests[0].Amount)
}

func TestCreate_Validation(t *testing.T) {
	f := newFixture(t, 0)

	_, err := f.service.Create(context.Background(), f.user.ID, "MP1", 0, "")
	require.ErrorIs(t, err, errs.ErrInvalidAmount)
	_, err = f.service.Create(context.Background(), f.user.ID, "MP1", -5, "")
	require.ErrorIs(t, err, errs.ErrInvalidAmount)
	_, err = f.service.Create(context.Background(), 99, "MP1", 50, "")
	require.ErrorIs(t, err, errs.ErrUserNotFound)
}

func TestCreate_DuplicateReference(t *testing.T) {
	f := newFixture(t, 0)

	_, err := f.service.Create(context.Background(), f.user.ID, "MP123456", 200, "")
	require.NoError(t, err)

	_, err = f.service.Create(context.Background(), f.user.ID, "MP123456", 300, "")
	require.ErrorIs(t, err, errs.ErrDuplicateReference)
	assert.True(t, errs.IsConflict(err))

	topUps, err := f.service.List(context.Background(), repositories.TopUpFilter{})
	require.NoError(t, err)
	assert.Len(t, topUps, 1, "the duplicate must leave no row behind")
	assert.Len(t, f.entriesOfType(t, models.EntryTypeTopUpRequest), 1)
}

func TestUpdateStatus_Approve(t *testing.T) {
	f := newFixture(t, 50)
	topUp, err := f.service.Create(context.Background(), f.user.ID, "MP1", 200, "")
	require.NoError(t, err)

	updated, err := f.service.UpdateStatus(context.Background(), topUp.ID, models.TopUpStatusApproved)
	require.NoError(t, err)
	assert.Equal(t, models.TopUpStatusApproved, updated.Status)
	assert.Equal(t, 250.0, f.balance(t))

	credits := f.entriesOfType(t, models.EntryTypeTopUpApproved)
	require.Len(t, credits, 1)
	assert.Equal(t, 200.0, credits[0].Amount)
	assert.Equal(t, 50.0, credits[0].PreviousBalance)
	assert.Equal(t, 250.0, credits[0].Balance)
}

func TestUpdateStatus_Reject(t *testing.T) {
	f := newFixture(t, 50)
	topUp, err := f.service.Create(context.Background(), f.user.ID, "MP1", 200, "")
	require.NoError(t, err)

	updated, err := f.service.UpdateStatus(context.Background(), topUp.ID, models.TopUpStatusRejected)
	require.NoError(t, err)
	assert.Equal(t, models.TopUpStatusRejected, updated.Status)
	assert.Equal(t, 50.0, f.balance(t), "rejection must not move money")

	rejections := f.entriesOfType(t, models.EntryTypeTopUpRejected)
	require.Len(t, rejections, 1)
	assert.Zero(t, rejections[0].Amount)
}

func TestUpdateStatus_TerminalOnceDecided(t *testing.T) {
	f := newFixture(t, 0)
	topUp, err := f.service.Create(context.Background(), f.user.ID, "MP1", 200, "")
	require.NoError(t, err)

	_, err = f.service.UpdateStatus(context.Background(), topUp.ID, models.TopUpStatusApproved)
	require.NoError(t, err)

	// A second decision of either kind is rejected and credits nothing.
	_, err = f.service.UpdateStatus(context.Background(), topUp.ID, models.TopUpStatusApproved)
	require.ErrorIs(t, err, errs.ErrTopUpAlreadyFinal)
	_, err = f.service.UpdateStatus(context.Background(), topUp.ID, models.TopUpStatusRejected)
	require.ErrorIs(t, err, errs.ErrTopUpAlreadyFinal)

	assert.Equal(t, 200.0, f.balance(t))
	assert.Len(t, f.entriesOfType(t, models.EntryTypeTopUpApproved), 1)
}

func TestUpdateStatus_InvalidInputs(t *testing.T) {
	f := newFixture(t, 0)

	_, err := f.service.UpdateStatus(context.Background(), 1, "Maybe")
	require.ErrorIs(t, err, errs.ErrInvalidTopUpStatus)
	_, err = f.service.UpdateStatus(context.Background(), 99, models.TopUpStatusApproved)
	require.ErrorIs(t, err, errs.ErrTopUpNotFound)
}

func TestUpdateStatus_RetriesTransientFailure(t *testing.T) {
	f := newFixture(t, 0)
	topUp, err := f.service.Create(context.Background(), f.user.ID, "MP1", 200, "")
	require.NoError(t, err)

	f.store.FailNextCommits(1, errStorage)

	updated, err := f.service.UpdateStatus(context.Background(), topUp.ID, models.TopUpStatusApproved)
	require.NoError(t, err)
	assert.Equal(t, models.TopUpStatusApproved, updated.Status)

	// The failed first attempt left nothing behind; the retry credited once.
	assert.Equal(t, 200.0, f.balance(t))
	assert.Len(t, f.entriesOfType(t, models.EntryTypeTopUpApproved), 1)
}

func TestUpdateStatus_RetryExhaustion(t *testing.T) {
	f := newFixture(t, 0)
	topUp, err := f.service.Create(context.Background(), f.user.ID, "MP1", 200, "")
	require.NoError(t, err)

	f.store.FailNextCommits(10, errStorage)

	_, err = f.service.UpdateStatus(context.Background(), topUp.ID, models.TopUpStatusApproved)
	require.ErrorIs(t, err, errs.ErrOperationFailed)

	assert.Equal(t, 0.0, f.balance(t))
	assert.Empty(t, f.entriesOfType(t, models.EntryTypeTopUpApproved))
	persisted, err := f.store.TopUpByID(context.Background(), topUp.ID)
	require.NoError(t, err)
	assert.Equal(t, models.TopUpStatusPending, persisted.Status)
}

func seedSms(t *testing.T, store *memstore.Store, reference string, amount *float64) {
	t.Helper()
	require.NoError(t, store.CreateSms(context.Background(), &models.SmsMessage{
		Sender:    "MobileMoney",
		Body:      "Payment received",
		Reference: reference,
		Amount:    amount,
	}))
}

func TestVerifyAndAutoTopUp_Success(t *testing.T) {
	f := newFixture(t, 10)
	amount := 150.0
	seedSms(t, f.store, "MM789", &amount)

	result, err := f.service.VerifyAndAutoTopUp(context.Background(), f.user.ID, "MM789")
	require.NoError(t, err)
	assert.Equal(t, 150.0, result.Amount)
	assert.Equal(t, 160.0, result.NewBalance)
	assert.Equal(t, "MM789", result.Reference)
	assert.Equal(t, 160.0, f.balance(t))

	topUp, err := f.store.TopUpByID(context.Background(), result.TopUpID)
	require.NoError(t, err)
	assert.Equal(t, models.TopUpStatusApproved, topUp.Status)
	assert.Equal(t, models.TopUpSubmitterAutoSMS, topUp.SubmittedBy)

	// The SMS record is consumed; verifying again finds nothing.
	_, err = f.service.VerifyAndAutoTopUp(context.Background(), f.user.ID, "MM789")
	require.ErrorIs(t, err, errs.ErrSmsNotFound)
	assert.Equal(t, 160.0, f.balance(t))
}

func TestVerifyAndAutoTopUp_Failures(t *testing.T) {
	f := newFixture(t, 0)

	_, err := f.service.VerifyAndAutoTopUp(context.Background(), f.user.ID, "UNKNOWN")
	require.ErrorIs(t, err, errs.ErrSmsNotFound)

	seedSms(t, f.store, "NOAMT", nil)
	_, err = f.service.VerifyAndAutoTopUp(context.Background(), f.user.ID, "NOAMT")
	require.ErrorIs(t, err, errs.ErrSmsAmountMissing)

	// A reference already claimed by a manual top-up is rejected even with a
	// fresh SMS record.
	amount := 75.0
	seedSms(t, f.store, "TAKEN", &amount)
	_, err = f.service.Create(context.Background(), f.user.ID, "TAKEN", 75, "")
	require.NoError(t, err)
	_, err = f.service.VerifyAndAutoTopUp(context.Background(), f.user.ID, "TAKEN")
	require.ErrorIs(t, err, errs.ErrDuplicateReference)

	assert.Equal(t, 0.0, f.balance(t))
}

func TestVerifyAndAutoTopUp_RetriesTransientFailure(t *testing.T) {
	f := newFixture(t, 0)
	amount := 90.0
	seedSms(t, f.store, "MM1", &amount)

	f.store.FailNextCommits(1, errStorage)

	result, err := f.service.VerifyAndAutoTopUp(context.Background(), f.user.ID, "MM1")
	require.NoError(t, err)
	assert.Equal(t, 90.0, result.NewBalance)

	// Exactly one credit and one top-up despite the retried attempt.
	assert.Len(t, f.entriesOfType(t, models.EntryTypeTopUpApproved), 1)
	topUps, err := f.service.List(context.Background(), repositories.TopUpFilter{})
	require.NoError(t, err)
	assert.Len(t, topUps, 1)
}

func TestList_Filters(t *testing.T) {
	f := newFixture(t, 0)
	first, err := f.service.Create(context.Background(), f.user.ID, "MP1", 100, "")
	require.NoError(t, err)
	_, err = f.service.Create(context.Background(), f.user.ID, "MP2", 200, "")
	require.NoError(t, err)
	_, err = f.service.UpdateStatus(context.Background(), first.ID, models.TopUpStatusApproved)
	require.NoError(t, err)

	approved, err := f.service.List(context.Background(), repositories.TopUpFilter{Status: models.TopUpStatusApproved})
	require.NoError(t, err)
	require.Len(t, approved, 1)
	assert.Equal(t, "MP1", approved[0].ReferenceID)

	all, err := f.service.List(context.Background(), repositories.TopUpFilter{})
	require.NoError(t, err)
	assert.Len(t, all, 2)
}
