package audiorequest

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRequest(t *testing.T) (*AudioRequest, uuid.UUID, uuid.UUID) {
	t.Helper()
	requester := uuid.New()
	creator := uuid.New()
	r, err := NewAudioRequest(NewAudioRequestInput{
		RequesterID:     &requester,
		RequesterName:   "Fan",
		CreatorID:       creator,
		PricingOptionID: uuid.New(),
		PricingDetails:  PricingDetails{Title: "Shout-out", Price: decimal.NewFromInt(25), Type: "personal"},
		DeliveryDays:    3,
		RequestDetails:  " Say hi to Sam ",
		PaymentMethod:   PaymentMethodStripe,
	})
	require.NoError(t, err)
	return r, requester, creator
}

func TestNewAudioRequest(t *testing.T) {
	r, requester, creator := newTestRequest(t)

	assert.Equal(t, StatusPending, r.Status)
	assert.Equal(t, PaymentStatusPending, r.PaymentStatus)
	assert.Equal(t, "Say hi to Sam", r.RequestDetails)
	assert.Equal(t, r.CreatedAt.AddDate(0, 0, 3), r.ExpectedDeliveryDate)
	assert.True(t, r.CanView(requester))
	assert.True(t, r.CanView(creator))
	assert.False(t, r.CanView(uuid.New()))

	events := r.GetDomainEvents()
	require.Len(t, events, 1)
	assert.Equal(t, EventTypeAudioRequestCreated, events[0].EventType())

	t.Run("validates input", func(t *testing.T) {
		_, err := NewAudioRequest(NewAudioRequestInput{RequesterID: &requester, PaymentMethod: PaymentMethodPayPal})
		assert.ErrorIs(t, err, ErrDetailsRequired)

		_, err = NewAudioRequest(NewAudioRequestInput{RequesterID: &requester, RequestDetails: "x", PaymentMethod: "cash"})
		assert.ErrorIs(t, err, ErrInvalidPaymentMethod)

		_, err = NewAudioRequest(NewAudioRequestInput{RequestDetails: "x", PaymentMethod: PaymentMethodOther, RequesterName: "Guest"})
		assert.ErrorIs(t, err, ErrRequesterRequired)
	})

	t.Run("guest requests are creator only", func(t *testing.T) {
		g, err := NewAudioRequest(NewAudioRequestInput{
			RequesterName:  "Guest",
			RequesterEmail: "Guest@Example.com",
			CreatorID:      creator,
			RequestDetails: "hello",
			PaymentMethod:  PaymentMethodPayPal,
		})
		require.NoError(t, err)
		assert.True(t, g.IsGuest())
		assert.Equal(t, "guest@example.com", g.RequesterEmail)
		assert.Equal(t, g.CreatedAt.AddDate(0, 0, 7), g.ExpectedDeliveryDate)
		assert.True(t, g.CanView(creator))
		assert.False(t, g.CanView(requester))
	})
}

func TestAudioRequest_ChangeStatus(t *testing.T) {
	now := time.Now()

	t.Run("creator only", func(t *testing.T) {
		r, requester, _ := newTestRequest(t)
		assert.ErrorIs(t, r.ChangeStatus(requester, StatusAccepted, now), ErrNotCreator)
	})

	t.Run("rejects unknown targets", func(t *testing.T) {
		r, _, creator := newTestRequest(t)
		assert.ErrorIs(t, r.ChangeStatus(creator, "shipped", now), ErrInvalidStatus)
		assert.ErrorIs(t, r.ChangeStatus(creator, StatusRefunded, now), ErrInvalidStatus)
		assert.ErrorIs(t, r.ChangeStatus(creator, StatusPending, now), ErrInvalidStatus)
	})

	t.Run("accept then complete", func(t *testing.T) {
		r, _, creator := newTestRequest(t)
		r.ClearDomainEvents()

		require.NoError(t, r.ChangeStatus(creator, StatusAccepted, now))
		require.NoError(t, r.ChangeStatus(creator, StatusCompleted, now))
		assert.Equal(t, StatusCompleted, r.Status)
		require.NotNil(t, r.CompletedDate)

		events := r.GetDomainEvents()
		require.Len(t, events, 2)
		changed := events[1].(*AudioRequestStatusChangedEvent)
		assert.Equal(t, StatusAccepted, changed.OldStatus)
		assert.Equal(t, StatusCompleted, changed.NewStatus)
	})

	t.Run("terminal states are locked", func(t *testing.T) {
		for _, terminal := range []Status{StatusRejected, StatusCancelled, StatusCompleted} {
			r, _, creator := newTestRequest(t)
			require.NoError(t, r.ChangeStatus(creator, terminal, now))
			assert.ErrorIs(t, r.ChangeStatus(creator, StatusAccepted, now), ErrStatusLocked, terminal)
			assert.NoError(t, r.ChangeStatus(creator, terminal, now), "same status is a no-op")
		}
	})
}

func TestAudioRequest_CompleteWithAudio(t *testing.T) {
	r, requester, creator := newTestRequest(t)
	audio := CompletedAudio{URL: "https://cdn/a.mp3", Duration: 12.5, FileSize: 2048, FileName: "a.mp3"}

	assert.ErrorIs(t, r.CompleteWithAudio(requester, audio, time.Now()), ErrNotCreator)
	require.NoError(t, r.CompleteWithAudio(creator, audio, time.Now()))
	assert.Equal(t, StatusCompleted, r.Status)
	require.NotNil(t, r.CompletedAudio)
	assert.Equal(t, 12.5, r.CompletedAudio.Duration)

	rejected, _, c2 := newTestRequest(t)
	require.NoError(t, rejected.ChangeStatus(c2, StatusRejected, time.Now()))
	assert.ErrorIs(t, rejected.CompleteWithAudio(c2, audio, time.Now()), ErrStatusLocked)
}

func TestAudioRequest_Payment(t *testing.T) {
	r, _, _ := newTestRequest(t)

	assert.True(t, r.MarkPaid("pi_1", PaymentMethodStripe))
	assert.Equal(t, PaymentStatusPaid, r.PaymentStatus)
	assert.Equal(t, "pi_1", r.PaymentID)
	assert.False(t, r.MarkPaid("pi_2", PaymentMethodStripe))
	assert.Equal(t, "pi_1", r.PaymentID)

	assert.True(t, r.Refund())
	assert.Equal(t, StatusRefunded, r.Status)
	assert.Equal(t, PaymentStatusRefunded, r.PaymentStatus)
	assert.False(t, r.Refund())
}

func TestAudioRequest_IsOverdueAndPublic(t *testing.T) {
	r, _, _ := newTestRequest(t)
	r.RequesterEmail = "fan@example.com"
	r.PaymentID = "pi_1"

	assert.False(t, r.IsOverdue(r.CreatedAt.Add(time.Hour)))
	assert.True(t, r.IsOverdue(r.ExpectedDeliveryDate.Add(time.Minute)))

	pub := r.Public()
	assert.Empty(t, pub.RequesterEmail)
	assert.Empty(t, pub.PaymentID)
	assert.Equal(t, "pi_1", r.PaymentID)
}

func TestJSONColumns(t *testing.T) {
	audio := CompletedAudio{URL: "u", Duration: 3, FileSize: 10, FileName: "f"}
	raw, err := audio.Value()
	require.NoError(t, err)

	var scanned CompletedAudio
	require.NoError(t, scanned.Scan(raw))
	assert.Equal(t, audio, scanned)

	var details PricingDetails
	require.NoError(t, details.Scan(`{"title":"T","price":"9.99","type":"business"}`))
	assert.Equal(t, "9.99", details.Price.StringFixed(2))
}
