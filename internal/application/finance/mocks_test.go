package finance

import (
	"context"
	"net/http"
	"time"

	"github.com/audiozoom/backend/internal/domain/audiorequest"
	"github.com/audiozoom/backend/internal/domain/finance"
	"github.com/audiozoom/backend/internal/domain/identity"
	"github.com/audiozoom/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

type MockPaymentRepository struct {
	mock.Mock
}

func (m *MockPaymentRepository) Create(ctx context.Context, p *finance.Payment) error {
	return m.Called(ctx, p).Error(0)
}

func (m *MockPaymentRepository) Update(ctx context.Context, p *finance.Payment) error {
	return m.Called(ctx, p).Error(0)
}

func (m *MockPaymentRepository) FindByID(ctx context.Context, id uuid.UUID) (*finance.Payment, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*finance.Payment), args.Error(1)
}

func (m *MockPaymentRepository) FindByOrderID(ctx context.Context, orderID string) (*finance.Payment, error) {
	args := m.Called(ctx, orderID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*finance.Payment), args.Error(1)
}

func (m *MockPaymentRepository) FindByTransferID(ctx context.Context, transferID string) (*finance.Payment, error) {
	args := m.Called(ctx, transferID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*finance.Payment), args.Error(1)
}

func (m *MockPaymentRepository) FindStalePending(ctx context.Context, before time.Time, limit int) ([]*finance.Payment, error) {
	args := m.Called(ctx, before, limit)
	return args.Get(0).([]*finance.Payment), args.Error(1)
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

func (m *MockUserRepository) Update(ctx context.Context, u *identity.User) error {
	return m.Called(ctx, u).Error(0)
}

type MockAudioRequestRepository struct {
	audiorequest.AudioRequestRepository
	mock.Mock
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

func (m *MockAudioRequestRepository) FindLatestAwaitingPayment(ctx context.Context, requesterID, creatorID, pricingOptionID uuid.UUID) (*audiorequest.AudioRequest, error) {
	args := m.Called(ctx, requesterID, creatorID, pricingOptionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*audiorequest.AudioRequest), args.Error(1)
}

type MockStripeGateway struct {
	mock.Mock
}

func (m *MockStripeGateway) CreateConnectedAccount(ctx context.Context, req finance.ConnectedAccountRequest) (string, error) {
	args := m.Called(ctx, req)
	return args.String(0), args.Error(1)
}

func (m *MockStripeGateway) CreateOnboardingLink(ctx context.Context, req finance.OnboardingLinkRequest) (string, error) {
	args := m.Called(ctx, req)
	return args.String(0), args.Error(1)
}

func (m *MockStripeGateway) CreatePaymentIntent(ctx context.Context, req finance.PaymentIntentRequest) (*finance.PaymentIntent, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*finance.PaymentIntent), args.Error(1)
}

func (m *MockStripeGateway) ParseWebhook(payload []byte, signature string) (*finance.PaymentEvent, error) {
	args := m.Called(payload, signature)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*finance.PaymentEvent), args.Error(1)
}

type MockPayPalGateway struct {
	mock.Mock
}

func (m *MockPayPalGateway) CreateOrder(ctx context.Context, req finance.PayPalOrderRequest) (*finance.PayPalOrder, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*finance.PayPalOrder), args.Error(1)
}

func (m *MockPayPalGateway) ParseWebhook(ctx context.Context, headers http.Header, payload []byte) (*finance.PaymentEvent, error) {
	args := m.Called(ctx, headers, payload)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*finance.PaymentEvent), args.Error(1)
}

type MockEventPublisher struct {
	mock.Mock
}

func (m *MockEventPublisher) Publish(ctx context.Context, events ...shared.DomainEvent) error {
	return m.Called(ctx, events).Error(0)
}

type MockRevenueReporter struct {
	mock.Mock
}

func (m *MockRevenueReporter) Totals(ctx context.Context, period finance.RevenuePeriod) (finance.RevenueTotals, error) {
	args := m.Called(ctx, period)
	return args.Get(0).(finance.RevenueTotals), args.Error(1)
}

func (m *MockRevenueReporter) ByMethod(ctx context.Context, period finance.RevenuePeriod) ([]finance.MethodRevenue, error) {
	args := m.Called(ctx, period)
	return args.Get(0).([]finance.MethodRevenue), args.Error(1)
}

func (m *MockRevenueReporter) Daily(ctx context.Context, period finance.RevenuePeriod) ([]finance.DailyRevenue, error) {
	args := m.Called(ctx, period)
	return args.Get(0).([]finance.DailyRevenue), args.Error(1)
}
