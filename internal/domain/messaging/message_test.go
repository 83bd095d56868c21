package messaging

import (
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewMessage(t *testing.T) {
	sender, recipient := uuid.New(), uuid.New()

	m, err := NewMessage(sender, recipient, "  hi there ")
	require.NoError(t, err)
	assert.Equal(t, "hi there", m.Content)
	assert.Equal(t, MessageTypeGeneral, m.Type)
	assert.False(t, m.Read)
	assert.Nil(t, m.RequestDetails)
	require.Len(t, m.GetDomainEvents(), 1)

	_, err = NewMessage(sender, recipient, "   ")
	assert.ErrorIs(t, err, ErrContentRequired)

	_, err = NewMessage(sender, uuid.Nil, "hi")
	assert.ErrorIs(t, err, ErrRecipientRequired)
}

func TestNewAudioRequestMessage(t *testing.T) {
	m, err := NewAudioRequestMessage(uuid.New(), uuid.New(), "New request", decimal.NewFromInt(25))
	require.NoError(t, err)
	assert.Equal(t, MessageTypeAudioRequest, m.Type)
	require.NotNil(t, m.RequestDetails)
	assert.Equal(t, RequestStatusPending, m.RequestDetails.Status)
	assert.True(t, m.RequestDetails.Price.Equal(decimal.NewFromInt(25)))
}

func TestMessage_MarkReadAndDelete(t *testing.T) {
	sender, recipient := uuid.New(), uuid.New()
	m, err := NewMessage(sender, recipient, "hi")
	require.NoError(t, err)

	assert.ErrorIs(t, m.MarkRead(sender), ErrNotRecipient)
	require.NoError(t, m.MarkRead(recipient))
	assert.True(t, m.Read)
	assert.Equal(t, 2, m.Version)
	require.NoError(t, m.MarkRead(recipient))
	assert.Equal(t, 2, m.Version)

	assert.True(t, m.CanDelete(sender))
	assert.True(t, m.CanDelete(recipient))
	assert.False(t, m.CanDelete(uuid.New()))
}

func TestRequestDetails_Scan(t *testing.T) {
	var d RequestDetails
	require.NoError(t, d.Scan([]byte(`{"price":"12.50","status":"ACCEPTED"}`)))
	assert.Equal(t, RequestStatusAccepted, d.Status)
	assert.Equal(t, "12.50", d.Price.StringFixed(2))
}
