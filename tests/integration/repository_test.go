package integration

import (
	"context"
	"testing"
	"time"

	"github.com/audiozoom/backend/internal/domain/audiorequest"
	"github.com/audiozoom/backend/internal/domain/finance"
	"github.com/audiozoom/backend/internal/domain/identity"
	"github.com/audiozoom/backend/internal/domain/messaging"
	"github.com/audiozoom/backend/internal/domain/shared"
	"github.com/audiozoom/backend/internal/infrastructure/config"
	"github.com/audiozoom/backend/internal/infrastructure/persistence"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newAudioRequest(t *testing.T, requester, creator *identity.User, optionID uuid.UUID) *audiorequest.AudioRequest {
	t.Helper()
	req, err := audiorequest.NewAudioRequest(audiorequest.NewAudioRequestInput{
		RequesterID:     &requester.ID,
		CreatorID:       creator.ID,
		PricingOptionID: optionID,
		PricingDetails: audiorequest.PricingDetails{
			Title: "Birthday shout-out",
			Price: decimal.RequireFromString("25"),
			Type:  "personal",
		},
		DeliveryDays:   3,
		RequestDetails: "Say happy birthday to Sam",
		PaymentMethod:  audiorequest.PaymentMethodStripe,
	})
	require.NoError(t, err)
	return req
}

func TestUserRepository_Postgres(t *testing.T) {
	tdb := NewTestDB(t)
	ctx := context.Background()
	users := persistence.NewGormUserRepository(tdb.DB)

	alice := tdb.CreateUser("alice")

	found, err := users.FindByEmail(ctx, alice.Email)
	require.NoError(t, err)
	assert.Equal(t, alice.ID, found.ID)
	assert.True(t, found.VerifyPassword("password1"))

	dup, err := identity.NewUser(alice.Email, "password2", "Other")
	require.NoError(t, err)
	assert.ErrorIs(t, users.Create(ctx, dup), shared.ErrAlreadyExists)

	_, err = users.FindByID(ctx, uuid.New())
	assert.ErrorIs(t, err, shared.ErrNotFound)
}

func TestAudioRequestRepository_Postgres(t *testing.T) {
	tdb := NewTestDB(t)
	ctx := context.Background()
	repo := persistence.NewGormAudioRequestRepository(tdb.DB)

	fan := tdb.CreateUser("fan")
	creator := tdb.CreateUser("creator")
	optionID := uuid.New()

	older := newAudioRequest(t, fan, creator, optionID)
	newer := newAudioRequest(t, fan, creator, optionID)
	newer.CreatedAt = older.CreatedAt.Add(time.Second)
	require.NoError(t, repo.Create(ctx, older))
	require.NoError(t, repo.Create(ctx, newer))

	t.Run("latest awaiting payment", func(t *testing.T) {
		got, err := repo.FindLatestAwaitingPayment(ctx, fan.ID, creator.ID, optionID)
		require.NoError(t, err)
		assert.Equal(t, newer.ID, got.ID)
		assert.True(t, decimal.RequireFromString("25").Equal(got.PricingDetails.Price))

		require.True(t, got.MarkPaid("pi_1", audiorequest.PaymentMethodStripe))
		require.NoError(t, repo.Update(ctx, got))

		got, err = repo.FindLatestAwaitingPayment(ctx, fan.ID, creator.ID, optionID)
		require.NoError(t, err)
		assert.Equal(t, older.ID, got.ID)

		_, err = repo.FindLatestAwaitingPayment(ctx, fan.ID, creator.ID, uuid.New())
		assert.ErrorIs(t, err, shared.ErrNotFound)
	})

	t.Run("listings", func(t *testing.T) {
		mine, err := repo.FindByRequester(ctx, fan.ID)
		require.NoError(t, err)
		require.Len(t, mine, 2)
		assert.Equal(t, newer.ID, mine[0].ID)

		incoming, err := repo.FindByCreator(ctx, creator.ID)
		require.NoError(t, err)
		assert.Len(t, incoming, 2)
	})

	t.Run("overdue", func(t *testing.T) {
		overdue, err := repo.FindOverdue(ctx, time.Now())
		require.NoError(t, err)
		assert.Empty(t, overdue)

		overdue, err = repo.FindOverdue(ctx, time.Now().AddDate(0, 0, 4))
		require.NoError(t, err)
		assert.Len(t, overdue, 2)
	})
}

func TestMessageRepository_Postgres(t *testing.T) {
	tdb := NewTestDB(t)
	ctx := context.Background()
	repo := persistence.NewGormMessageRepository(tdb.DB)

	alice := tdb.CreateUser("alice")
	bob := tdb.CreateUser("bob")

	for _, content := range []string{"hi", "are you there?"} {
		m, err := messaging.NewMessage(alice.ID, bob.ID, content)
		require.NoError(t, err)
		require.NoError(t, repo.Create(ctx, m))
	}
	request, err := messaging.NewAudioRequestMessage(bob.ID, alice.ID, "New audio request", decimal.RequireFromString("12.50"))
	require.NoError(t, err)
	require.NoError(t, repo.Create(ctx, request))

	unread, err := repo.CountUnread(ctx, bob.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(2), unread)

	inbox, err := repo.FindInbox(ctx, alice.ID)
	require.NoError(t, err)
	require.Len(t, inbox, 1)
	require.NotNil(t, inbox[0].RequestDetails)
	assert.Equal(t, messaging.MessageTypeAudioRequest, inbox[0].Type)
	assert.True(t, decimal.RequireFromString("12.5").Equal(inbox[0].RequestDetails.Price))

	changed, err := repo.MarkAllRead(ctx, bob.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(2), changed)

	changed, err = repo.MarkAllRead(ctx, bob.ID)
	require.NoError(t, err)
	assert.Zero(t, changed)

	require.NoError(t, repo.Delete(ctx, request.ID))
	_, err = repo.FindByID(ctx, request.ID)
	assert.ErrorIs(t, err, shared.ErrNotFound)
}

func TestRevenueReporter_Postgres(t *testing.T) {
	tdb := NewTestDB(t)
	ctx := context.Background()
	payments := persistence.NewGormPaymentRepository(tdb.DB)

	day1 := time.Date(2024, 3, 1, 23, 30, 0, 0, time.UTC)
	day2 := time.Date(2024, 3, 2, 9, 0, 0, 0, time.UTC)
	seed := func(orderID string, amount int64, method finance.PaymentMethod, at time.Time, complete bool) {
		p, err := finance.NewPendingPayment(finance.NewPaymentInput{OrderID: orderID, Method: method, Amount: amount})
		require.NoError(t, err)
		p.CreatedAt = at
		if complete {
			_, err = p.Complete("", at)
			require.NoError(t, err)
		}
		require.NoError(t, payments.Create(ctx, p))
	}
	seed("pi_a", 10000, finance.PaymentMethodStripe, day1, true)
	seed("order_b", 2500, finance.PaymentMethodPayPal, day1, true)
	seed("pi_c", 1000, finance.PaymentMethodStripe, day2, true)
	seed("pi_d", 9999, finance.PaymentMethodStripe, day2, false)

	reporter := persistence.NewSQLRevenueReporter(sqlx.NewDb(tdb.SqlDB, "postgres"), config.DriverPostgres)

	totals, err := reporter.Totals(ctx, finance.RevenuePeriod{})
	require.NoError(t, err)
	assert.Equal(t, finance.RevenueTotals{TotalAmount: 13500, TotalPlatformFee: 5400, TotalCreatorAmount: 8100, Count: 3}, totals)

	byMethod, err := reporter.ByMethod(ctx, finance.RevenuePeriod{})
	require.NoError(t, err)
	require.Len(t, byMethod, 2)
	assert.Equal(t, finance.PaymentMethodPayPal, byMethod[0].Method)

	daily, err := reporter.Daily(ctx, finance.RevenuePeriod{})
	require.NoError(t, err)
	require.Len(t, daily, 2)
	assert.Equal(t, "2024-03-01", daily[0].Date)
	assert.Equal(t, int64(12500), daily[0].TotalAmount)
	assert.Equal(t, "2024-03-02", daily[1].Date)

	onlyDay2, err := reporter.Totals(ctx, finance.RevenuePeriod{Start: time.Date(2024, 3, 2, 0, 0, 0, 0, time.UTC)})
	require.NoError(t, err)
	assert.Equal(t, int64(1), onlyDay2.Count)
}
