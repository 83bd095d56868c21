package audiorequest

import (
	"context"
	"errors"
	"io"
	"time"

	"github.com/audiozoom/backend/internal/domain/audiorequest"
	"github.com/audiozoom/backend/internal/domain/identity"
	"github.com/audiozoom/backend/internal/domain/shared"
	"github.com/audiozoom/backend/internal/infrastructure/telemetry"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

const (
	deliveriesFolder   = "audio-requests"
	publicShowcaseSize = 10
)

// Request placement errors
var (
	ErrInvalidCreator       = shared.NewDomainError("INVALID_CREATOR", "Creator not found or does not accept requests")
	ErrInvalidPricingOption = shared.NewDomainError("INVALID_PRICING_OPTION", "Pricing option not found or not active")
)

// DurationProber reads the playing time of an audio file in seconds
type DurationProber interface {
	ProbeDuration(ctx context.Context, r io.ReadSeeker, filename string) (int, error)
}

// AudioRequestService handles personalized audio requests from placement to delivery
type AudioRequestService struct {
	requestRepo audiorequest.AudioRequestRepository
	userRepo    identity.UserRepository
	storage     shared.ObjectStorage
	prober      DurationProber
	publisher   shared.EventPublisher
	metrics     *telemetry.Metrics
	logger      *zap.Logger
	now         func() time.Time
}

// NewAudioRequestService creates a new AudioRequestService. prober may be nil,
// in which case delivered audio has no duration.
func NewAudioRequestService(
	requestRepo audiorequest.AudioRequestRepository,
	userRepo identity.UserRepository,
	storage shared.ObjectStorage,
	prober DurationProber,
	publisher shared.EventPublisher,
	metrics *telemetry.Metrics,
	logger *zap.Logger,
) *AudioRequestService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AudioRequestService{
		requestRepo: requestRepo,
		userRepo:    userRepo,
		storage:     storage,
		prober:      prober,
		publisher:   publisher,
		metrics:     metrics,
		logger:      logger,
		now:         time.Now,
	}
}

// Create places a request with a creator. The creator must accept requests
// and the pricing option must be active; its title, price and type are
// copied onto the request.
func (s *AudioRequestService) Create(ctx context.Context, input CreateInput) (*AudioRequestResult, error) {
	creator, err := s.userRepo.FindByID(ctx, input.CreatorID)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, ErrInvalidCreator
		}
		return nil, err
	}
	if !creator.AcceptsRequests {
		return nil, ErrInvalidCreator
	}
	option, err := creator.FindPricingOption(input.PricingOptionID)
	if err != nil || !option.IsActive {
		return nil, ErrInvalidPricingOption
	}
	if input.RequesterID != nil && input.RequesterName == "" {
		requester, err := s.userRepo.FindByID(ctx, *input.RequesterID)
		if err != nil {
			return nil, err
		}
		input.RequesterName = requester.Name
	}

	req, err := audiorequest.NewAudioRequest(audiorequest.NewAudioRequestInput{
		RequesterID:     input.RequesterID,
		RequesterEmail:  input.RequesterEmail,
		RequesterName:   input.RequesterName,
		CreatorID:       creator.ID,
		PricingOptionID: option.ID,
		PricingDetails: audiorequest.PricingDetails{
			Title: option.Title,
			Price: option.Price,
			Type:  string(option.Type),
		},
		DeliveryDays:   option.DeliveryTime,
		RequestDetails: input.RequestDetails,
		Occasion:       input.Occasion,
		ForWhom:        input.ForWhom,
		Pronunciation:  input.Pronunciation,
		IsPublic:       input.IsPublic,
		PaymentMethod:  input.PaymentMethod,
	})
	if err != nil {
		return nil, err
	}
	if err := s.requestRepo.Create(ctx, req); err != nil {
		s.logger.Error("Failed to save audio request", zap.Error(err))
		return nil, err
	}
	s.publish(ctx, req)

	s.logger.Info("Audio request placed",
		zap.String("request_id", req.ID.String()),
		zap.String("creator_id", creator.ID.String()),
		zap.Bool("guest", req.IsGuest()))
	result := ToAudioRequestResult(req)
	return &result, nil
}

// ListAsRequester returns the caller's own requests with creator summaries
func (s *AudioRequestService) ListAsRequester(ctx context.Context, userID uuid.UUID) ([]AudioRequestResult, error) {
	reqs, err := s.requestRepo.FindByRequester(ctx, userID)
	if err != nil {
		return nil, err
	}
	ids := make([]uuid.UUID, len(reqs))
	for i, r := range reqs {
		ids[i] = r.CreatorID
	}
	summaries, err := identity.LoadSummaries(ctx, s.userRepo, ids)
	if err != nil {
		return nil, err
	}
	results := make([]AudioRequestResult, len(reqs))
	for i, r := range reqs {
		results[i] = ToAudioRequestResult(r)
		results[i].Creator = summaryOf(summaries, r.CreatorID)
	}
	return results, nil
}

// ListAsCreator returns requests addressed to the caller with requester summaries
func (s *AudioRequestService) ListAsCreator(ctx context.Context, userID uuid.UUID) ([]AudioRequestResult, error) {
	reqs, err := s.requestRepo.FindByCreator(ctx, userID)
	if err != nil {
		return nil, err
	}
	ids := make([]uuid.UUID, 0, len(reqs))
	for _, r := range reqs {
		if r.RequesterID != nil {
			ids = append(ids, *r.RequesterID)
		}
	}
	summaries, err := identity.LoadSummaries(ctx, s.userRepo, ids)
	if err != nil {
		return nil, err
	}
	results := make([]AudioRequestResult, len(reqs))
	for i, r := range reqs {
		results[i] = ToAudioRequestResult(r)
		if r.RequesterID != nil {
			results[i].Requester = summaryOf(summaries, *r.RequesterID)
		}
	}
	return results, nil
}

// Get returns one request to its requester or creator
func (s *AudioRequestService) Get(ctx context.Context, userID, requestID uuid.UUID) (*AudioRequestResult, error) {
	req, err := s.load(ctx, requestID)
	if err != nil {
		return nil, err
	}
	if !req.CanView(userID) {
		return nil, audiorequest.ErrNotParticipant
	}

	ids := []uuid.UUID{req.CreatorID}
	if req.RequesterID != nil {
		ids = append(ids, *req.RequesterID)
	}
	summaries, err := identity.LoadSummaries(ctx, s.userRepo, ids)
	if err != nil {
		return nil, err
	}
	result := ToAudioRequestResult(req)
	result.Creator = summaryOf(summaries, req.CreatorID)
	if req.RequesterID != nil {
		result.Requester = summaryOf(summaries, *req.RequesterID)
	}
	return &result, nil
}

// ChangeStatus moves a request to accepted, rejected, completed or cancelled.
// Only the creator may do so and closed requests stay closed.
func (s *AudioRequestService) ChangeStatus(ctx context.Context, userID, requestID uuid.UUID, status audiorequest.Status) (*AudioRequestResult, error) {
	if !status.IsCreatorTarget() {
		return nil, audiorequest.ErrInvalidStatus
	}
	req, err := s.load(ctx, requestID)
	if err != nil {
		return nil, err
	}
	if err := req.ChangeStatus(userID, status, s.now()); err != nil {
		return nil, err
	}
	if err := s.requestRepo.Update(ctx, req); err != nil {
		return nil, err
	}
	s.publish(ctx, req)

	result := ToAudioRequestResult(req)
	return &result, nil
}

// Deliver stores the creator's audio and completes the request. Duration
// probing is best effort.
func (s *AudioRequestService) Deliver(ctx context.Context, input DeliverInput) (*AudioRequestResult, error) {
	req, err := s.load(ctx, input.RequestID)
	if err != nil {
		return nil, err
	}
	if !req.IsCreator(input.CreatorID) {
		return nil, audiorequest.ErrNotCreator
	}

	ctx, span := telemetry.StartSpan(ctx, "audio_request.deliver")
	defer func() { telemetry.EndSpan(span, err) }()

	var duration int
	if s.prober != nil {
		if duration, err = s.prober.ProbeDuration(ctx, input.Audio.Body, input.Audio.Filename); err != nil {
			s.logger.Debug("Audio duration unavailable", zap.String("request_id", req.ID.String()), zap.Error(err))
			duration, err = 0, nil
		}
	}

	key := shared.NewObjectKey(deliveriesFolder, input.Audio.Filename)
	url, err := s.storage.Upload(ctx, key, input.Audio.Body, input.Audio.Size, input.Audio.ContentType)
	if err != nil {
		s.logger.Error("Failed to store delivered audio", zap.String("request_id", req.ID.String()), zap.Error(err))
		return nil, err
	}
	s.metrics.RecordUpload(deliveriesFolder, input.Audio.Size)

	var previous string
	if req.CompletedAudio != nil {
		previous = req.CompletedAudio.URL
	}
	err = req.CompleteWithAudio(input.CreatorID, audiorequest.CompletedAudio{
		URL:       url,
		ObjectKey: key,
		Duration:  float64(duration),
		FileSize:  input.Audio.Size,
		FileName:  input.Audio.Filename,
	}, s.now())
	if err != nil {
		s.deleteObject(ctx, url)
		return nil, err
	}
	if err = s.requestRepo.Update(ctx, req); err != nil {
		s.deleteObject(ctx, url)
		return nil, err
	}
	if previous != "" && previous != url {
		s.deleteObject(ctx, previous)
	}
	s.publish(ctx, req)

	s.logger.Info("Audio request delivered", zap.String("request_id", req.ID.String()), zap.Int("duration", duration))
	result := ToAudioRequestResult(req)
	return &result, nil
}

// PublicCompleted returns a creator's completed public requests without
// the requester's email or payment reference
func (s *AudioRequestService) PublicCompleted(ctx context.Context, creatorID uuid.UUID) ([]AudioRequestResult, error) {
	reqs, err := s.requestRepo.FindPublicCompleted(ctx, creatorID, publicShowcaseSize)
	if err != nil {
		return nil, err
	}
	results := make([]AudioRequestResult, len(reqs))
	for i, r := range reqs {
		results[i] = ToAudioRequestResult(r.Public())
	}
	return results, nil
}

func (s *AudioRequestService) load(ctx context.Context, id uuid.UUID) (*audiorequest.AudioRequest, error) {
	req, err := s.requestRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, audiorequest.ErrAudioRequestNotFound
		}
		return nil, err
	}
	return req, nil
}

func (s *AudioRequestService) publish(ctx context.Context, req *audiorequest.AudioRequest) {
	events := req.GetDomainEvents()
	req.ClearDomainEvents()
	if s.publisher == nil || len(events) == 0 {
		return
	}
	if err := s.publisher.Publish(ctx, events...); err != nil {
		s.logger.Warn("Failed to publish audio request events", zap.String("request_id", req.ID.String()), zap.Error(err))
	}
}

func (s *AudioRequestService) deleteObject(ctx context.Context, url string) {
	if err := s.storage.Delete(ctx, url); err != nil {
		s.logger.Warn("Failed to delete stored object", zap.String("url", url), zap.Error(err))
	}
}
