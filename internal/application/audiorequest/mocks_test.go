package audiorequest

import (
	"context"
	"io"
	"time"

	"github.com/audiozoom/backend/internal/domain/audiorequest"
	"github.com/audiozoom/backend/internal/domain/identity"
	"github.com/audiozoom/backend/internal/domain/messaging"
	"github.com/audiozoom/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

type MockAudioRequestRepository struct {
	mock.Mock
}

func (m *MockAudioRequestRepository) Create(ctx context.Context, r *audiorequest.AudioRequest) error {
	return m.Called(ctx, r).Error(0)
}

func (m *MockAudioRequestRepository) Update(ctx context.Context, r *audiorequest.AudioRequest) error {
	return m.Called(ctx, r).Error(0)
}

func (m *MockAudioRequestRepository) FindByID(ctx context.Context, id uuid.UUID) (*audiorequest.AudioRequest, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*audiorequest.AudioRequest), args.Error(1)
}

func (m *MockAudioRequestRepository) FindByRequester(ctx context.Context, requesterID uuid.UUID) ([]*audiorequest.AudioRequest, error) {
	args := m.Called(ctx, requesterID)
	return args.Get(0).([]*audiorequest.AudioRequest), args.Error(1)
}

func (m *MockAudioRequestRepository) FindByCreator(ctx context.Context, creatorID uuid.UUID) ([]*audiorequest.AudioRequest, error) {
	args := m.Called(ctx, creatorID)
	return args.Get(0).([]*audiorequest.AudioRequest), args.Error(1)
}

func (m *MockAudioRequestRepository) FindPublicCompleted(ctx context.Context, creatorID uuid.UUID, limit int) ([]*audiorequest.AudioRequest, error) {
	args := m.Called(ctx, creatorID, limit)
	return args.Get(0).([]*audiorequest.AudioRequest), args.Error(1)
}

func (m *MockAudioRequestRepository) FindLatestAwaitingPayment(ctx context.Context, requesterID, creatorID, pricingOptionID uuid.UUID) (*audiorequest.AudioRequest, error) {
	args := m.Called(ctx, requesterID, creatorID, pricingOptionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*audiorequest.AudioRequest), args.Error(1)
}

func (m *MockAudioRequestRepository) FindOverdue(ctx context.Context, now time.Time) ([]*audiorequest.AudioRequest, error) {
	args := m.Called(ctx, now)
	return args.Get(0).([]*audiorequest.AudioRequest), args.Error(1)
}

type MockUserRepository struct {
	identity.UserRepository
	mock.Mock
}

func (m *MockUserRepository) FindByID(ctx context.Context, id uuid.UUID) (*identity.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*identity.User), args.Error(1)
}

func (m *MockUserRepository) FindByIDs(ctx context.Context, ids []uuid.UUID) ([]*identity.User, error) {
	args := m.Called(ctx, ids)
	return args.Get(0).([]*identity.User), args.Error(1)
}

type MockMessageRepository struct {
	messaging.MessageRepository
	mock.Mock
}

func (m *MockMessageRepository) Create(ctx context.Context, msg *messaging.Message) error {
	return m.Called(ctx, msg).Error(0)
}

type MockEventPublisher struct {
	mock.Mock
}

func (m *MockEventPublisher) Publish(ctx context.Context, events ...shared.DomainEvent) error {
	return m.Called(ctx, events).Error(0)
}

type MockProber struct {
	mock.Mock
}

func (m *MockProber) ProbeDuration(ctx context.Context, r io.ReadSeeker, filename string) (int, error) {
	args := m.Called(ctx, r, filename)
	return args.Int(0), args.Error(1)
}
