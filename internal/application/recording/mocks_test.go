package recording

import (
	"context"

	"github.com/audiozoom/backend/internal/domain/identity"
	"github.com/audiozoom/backend/internal/domain/messaging"
	"github.com/audiozoom/backend/internal/domain/recording"
	"github.com/audiozoom/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

type MockRecordingRepository struct {
	mock.Mock
}

func (m *MockRecordingRepository) Create(ctx context.Context, rec *recording.Recording) error {
	return m.Called(ctx, rec).Error(0)
}

func (m *MockRecordingRepository) Update(ctx context.Context, rec *recording.Recording) error {
	return m.Called(ctx, rec).Error(0)
}

func (m *MockRecordingRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}

func (m *MockRecordingRepository) FindByID(ctx context.Context, id uuid.UUID) (*recording.Recording, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*recording.Recording), args.Error(1)
}

func (m *MockRecordingRepository) FindByUser(ctx context.Context, userID uuid.UUID, publicOnly bool) ([]*recording.Recording, error) {
	args := m.Called(ctx, userID, publicOnly)
	return args.Get(0).([]*recording.Recording), args.Error(1)
}

func (m *MockRecordingRepository) TopCreators(ctx context.Context, limit int) ([]recording.CreatorRecordingCount, error) {
	args := m.Called(ctx, limit)
	return args.Get(0).([]recording.CreatorRecordingCount), args.Error(1)
}

// MockUserRepository embeds the interface; only lookups used for sharing are mocked
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

func (m *MockUserRepository) FindByEmail(ctx context.Context, email string) (*identity.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*identity.User), args.Error(1)
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
