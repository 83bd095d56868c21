package persistence

import (
	"context"
	"testing"

	"github.com/audiozoom/backend/internal/domain/request"
	"github.com/audiozoom/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGormRequestRepository(t *testing.T) {
	ctx := context.Background()
	repo := NewGormRequestRepository(newTestDB(t))
	alice, bob, carol := uuid.New(), uuid.New(), uuid.New()

	req, err := request.NewRequest(alice, bob, "Narrate my poem", decimal.RequireFromString("12.345"))
	require.NoError(t, err)
	require.NoError(t, repo.Create(ctx, req))

	other, err := request.NewRequest(carol, alice, "Voicemail greeting", decimal.NewFromInt(5))
	require.NoError(t, err)
	require.NoError(t, repo.Create(ctx, other))

	found, err := repo.FindByID(ctx, req.ID)
	require.NoError(t, err)
	assert.Equal(t, "12.35", found.Price.StringFixed(2))
	assert.Equal(t, "USD", found.PaymentDetails.Currency)
	assert.Equal(t, request.StatusPending, found.Status)

	forAlice, err := repo.FindByParticipant(ctx, alice)
	require.NoError(t, err)
	assert.Len(t, forAlice, 2)

	forBob, err := repo.FindByParticipant(ctx, bob)
	require.NoError(t, err)
	assert.Len(t, forBob, 1)

	_, err = repo.FindByID(ctx, uuid.New())
	assert.ErrorIs(t, err, shared.ErrNotFound)
}
