package recording

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/audiozoom/backend/internal/domain/identity"
	"github.com/audiozoom/backend/internal/domain/messaging"
	"github.com/audiozoom/backend/internal/domain/recording"
	"github.com/audiozoom/backend/internal/domain/shared"
	"github.com/audiozoom/backend/internal/infrastructure/telemetry"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Storage folders
const (
	audioFolder   = "audio"
	artworkFolder = "artwork"
)

// ErrInvalidShareType is returned for share types other than "message"
var ErrInvalidShareType = shared.NewDomainError("INVALID_SHARE_TYPE", "Unsupported share type")

// RecordingService handles recording uploads, metadata and sharing
type RecordingService struct {
	recordingRepo recording.RecordingRepository
	userRepo      identity.UserRepository
	messageRepo   messaging.MessageRepository
	storage       shared.ObjectStorage
	publisher     shared.EventPublisher
	metrics       *telemetry.Metrics
	logger        *zap.Logger
}

// NewRecordingService creates a new RecordingService
func NewRecordingService(
	recordingRepo recording.RecordingRepository,
	userRepo identity.UserRepository,
	messageRepo messaging.MessageRepository,
	storage shared.ObjectStorage,
	publisher shared.EventPublisher,
	metrics *telemetry.Metrics,
	logger *zap.Logger,
) *RecordingService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &RecordingService{
		recordingRepo: recordingRepo,
		userRepo:      userRepo,
		messageRepo:   messageRepo,
		storage:       storage,
		publisher:     publisher,
		metrics:       metrics,
		logger:        logger,
	}
}

// List returns the caller's recordings, newest first
func (s *RecordingService) List(ctx context.Context, userID uuid.UUID) ([]RecordingResult, error) {
	recs, err := s.recordingRepo.FindByUser(ctx, userID, false)
	if err != nil {
		return nil, err
	}
	return ToRecordingResults(recs), nil
}

// ListByUser returns another user's recordings. Private ones are only
// included when the viewer owns them.
func (s *RecordingService) ListByUser(ctx context.Context, viewerID, ownerID uuid.UUID) ([]RecordingResult, error) {
	recs, err := s.recordingRepo.FindByUser(ctx, ownerID, viewerID != ownerID)
	if err != nil {
		return nil, err
	}
	return ToRecordingResults(recs), nil
}

// Upload stores the audio file, creates the recording and optionally shares it
func (s *RecordingService) Upload(ctx context.Context, input UploadInput) (*RecordingResult, error) {
	if input.ShareType != "" && input.ShareType != ShareTypeMessage {
		return nil, ErrInvalidShareType
	}
	if strings.TrimSpace(input.Title) == "" {
		return nil, recording.ErrTitleRequired
	}

	ctx, span := telemetry.StartSpan(ctx, "recording.upload")
	var err error
	defer func() { telemetry.EndSpan(span, err) }()

	key := shared.NewObjectKey(audioFolder, input.Audio.Filename)
	url, err := s.storage.Upload(ctx, key, input.Audio.Body, input.Audio.Size, input.Audio.ContentType)
	if err != nil {
		s.logger.Error("Failed to store recording", zap.String("user_id", input.UserID.String()), zap.Error(err))
		return nil, err
	}
	s.metrics.RecordUpload(audioFolder, input.Audio.Size)

	rec, err := recording.NewRecording(recording.NewRecordingInput{
		UserID:      input.UserID,
		Title:       input.Title,
		Description: input.Description,
		URL:         url,
		ObjectKey:   key,
	})
	if err != nil {
		s.deleteObject(ctx, url)
		return nil, err
	}
	if err = s.recordingRepo.Create(ctx, rec); err != nil {
		s.deleteObject(ctx, url)
		return nil, err
	}

	if input.ShareWith != "" {
		if shareErr := s.share(ctx, rec, input.ShareWith); shareErr != nil {
			s.logger.Warn("Failed to share recording",
				zap.String("recording_id", rec.ID.String()),
				zap.Error(shareErr))
		}
	}
	publishEvents(ctx, s.publisher, s.logger, &rec.BaseAggregateRoot)

	s.logger.Info("Recording uploaded",
		zap.String("recording_id", rec.ID.String()),
		zap.String("user_id", input.UserID.String()))
	result := ToRecordingResult(rec)
	return &result, nil
}

// share sends the recording to the user identified by target. Unknown
// targets are skipped.
func (s *RecordingService) share(ctx context.Context, rec *recording.Recording, target string) error {
	recipient, err := s.resolveUser(ctx, target)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			s.logger.Info("Share target not found", zap.String("recording_id", rec.ID.String()))
			return nil
		}
		return err
	}

	msg, err := messaging.NewMessage(rec.UserID, recipient.ID, fmt.Sprintf("Shared a recording with you: %s", rec.Title))
	if err != nil {
		return err
	}
	msg.AttachRecording(rec.ID)
	if err := s.messageRepo.Create(ctx, msg); err != nil {
		return err
	}
	publishEvents(ctx, s.publisher, s.logger, &msg.BaseAggregateRoot)

	rec.MarkShared(recipient.ID)
	return s.recordingRepo.Update(ctx, rec)
}

func (s *RecordingService) resolveUser(ctx context.Context, target string) (*identity.User, error) {
	target = strings.TrimSpace(target)
	if id, err := uuid.Parse(target); err == nil {
		return s.userRepo.FindByID(ctx, id)
	}
	if strings.Contains(target, "@") {
		return s.userRepo.FindByEmail(ctx, strings.ToLower(target))
	}
	return nil, shared.ErrNotFound
}

// Update changes title, description or visibility. Owner only.
func (s *RecordingService) Update(ctx context.Context, userID, recordingID uuid.UUID, input UpdateInput) (*RecordingResult, error) {
	rec, err := s.loadOwned(ctx, userID, recordingID)
	if err != nil {
		return nil, err
	}
	if err := rec.Update(input.Title, input.Description, input.IsPublic); err != nil {
		return nil, err
	}
	if err := s.recordingRepo.Update(ctx, rec); err != nil {
		return nil, err
	}
	result := ToRecordingResult(rec)
	return &result, nil
}

// ReplaceArtwork stores new artwork for a recording and deletes the old image
func (s *RecordingService) ReplaceArtwork(ctx context.Context, userID, recordingID uuid.UUID, artwork shared.FileUpload) (*RecordingResult, error) {
	rec, err := s.loadOwned(ctx, userID, recordingID)
	if err != nil {
		return nil, err
	}

	key := shared.NewObjectKey(artworkFolder, artwork.Filename)
	url, err := s.storage.Upload(ctx, key, artwork.Body, artwork.Size, artwork.ContentType)
	if err != nil {
		return nil, err
	}
	s.metrics.RecordUpload(artworkFolder, artwork.Size)

	old := rec.ReplaceArtwork(url, key)
	if err := s.recordingRepo.Update(ctx, rec); err != nil {
		s.deleteObject(ctx, url)
		return nil, err
	}
	if old != "" {
		s.deleteObject(ctx, old)
	}
	result := ToRecordingResult(rec)
	return &result, nil
}

// Delete removes a recording and its stored objects. Owner only.
func (s *RecordingService) Delete(ctx context.Context, userID, recordingID uuid.UUID) error {
	rec, err := s.loadOwned(ctx, userID, recordingID)
	if err != nil {
		return err
	}
	if err := s.recordingRepo.Delete(ctx, rec.ID); err != nil {
		return err
	}
	for _, url := range rec.ObjectURLs() {
		s.deleteObject(ctx, url)
	}
	s.logger.Info("Recording deleted", zap.String("recording_id", rec.ID.String()))
	return nil
}

func (s *RecordingService) loadOwned(ctx context.Context, userID, recordingID uuid.UUID) (*recording.Recording, error) {
	rec, err := s.recordingRepo.FindByID(ctx, recordingID)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, recording.ErrRecordingNotFound
		}
		return nil, err
	}
	if !rec.IsOwnedBy(userID) {
		return nil, recording.ErrNotOwner
	}
	return rec, nil
}

func (s *RecordingService) deleteObject(ctx context.Context, url string) {
	if err := s.storage.Delete(ctx, url); err != nil {
		s.logger.Warn("Failed to delete stored object", zap.String("url", url), zap.Error(err))
	}
}

func publishEvents(ctx context.Context, publisher shared.EventPublisher, logger *zap.Logger, root *shared.BaseAggregateRoot) {
	events := root.GetDomainEvents()
	root.ClearDomainEvents()
	if publisher == nil || len(events) == 0 {
		return
	}
	if err := publisher.Publish(ctx, events...); err != nil {
		logger.Warn("Failed to publish domain events", zap.Int("count", len(events)), zap.Error(err))
	}
}
