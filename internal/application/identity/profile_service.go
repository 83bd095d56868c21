package identity

import (
	"context"
	"errors"
	"strings"

	"github.com/audiozoom/backend/internal/domain/identity"
	"github.com/audiozoom/backend/internal/domain/recording"
	"github.com/audiozoom/backend/internal/domain/shared"
	"github.com/audiozoom/backend/internal/infrastructure/telemetry"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

const (
	featuredCreatorsLimit = 8
	searchResultsLimit    = 10
	picturesFolder        = "pictures"
)

// ErrSearchQueryRequired is returned by Search for an empty query
var ErrSearchQueryRequired = shared.NewDomainError("INVALID_QUERY", "Search query is required")

// ProfileService manages profiles, media links, pricing options and payout settings
type ProfileService struct {
	userRepo      identity.UserRepository
	recordingRepo recording.RecordingRepository
	storage       shared.ObjectStorage
	publisher     shared.EventPublisher
	metrics       *telemetry.Metrics
	logger        *zap.Logger
}

// NewProfileService creates a new ProfileService
func NewProfileService(
	userRepo identity.UserRepository,
	recordingRepo recording.RecordingRepository,
	storage shared.ObjectStorage,
	publisher shared.EventPublisher,
	metrics *telemetry.Metrics,
	logger *zap.Logger,
) *ProfileService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ProfileService{
		userRepo:      userRepo,
		recordingRepo: recordingRepo,
		storage:       storage,
		publisher:     publisher,
		metrics:       metrics,
		logger:        logger,
	}
}

// GetProfile returns the caller's own profile
func (s *ProfileService) GetProfile(ctx context.Context, userID uuid.UUID) (*UserProfile, error) {
	user, err := s.load(ctx, userID)
	if err != nil {
		return nil, err
	}
	return ToUserProfile(user), nil
}

// UpdateProfile applies a profile form. A new picture replaces the stored one
// and the old object is deleted once the profile is saved.
func (s *ProfileService) UpdateProfile(ctx context.Context, userID uuid.UUID, input UpdateProfileInput) (*UserProfile, error) {
	user, err := s.load(ctx, userID)
	if err != nil {
		return nil, err
	}
	if err := user.UpdateProfile(input.ProfileUpdate); err != nil {
		return nil, err
	}

	var newURL, oldURL string
	if input.Picture != nil {
		key := shared.NewObjectKey(picturesFolder, input.Picture.Filename)
		newURL, err = s.storage.Upload(ctx, key, input.Picture.Body, input.Picture.Size, input.Picture.ContentType)
		if err != nil {
			s.logger.Error("Failed to upload profile picture", zap.String("user_id", userID.String()), zap.Error(err))
			return nil, err
		}
		s.metrics.RecordUpload(picturesFolder, input.Picture.Size)
		oldURL = user.SetPicture(newURL)
	}

	if err := s.userRepo.Update(ctx, user); err != nil {
		if newURL != "" {
			s.deleteObject(ctx, newURL)
		}
		return nil, err
	}
	if oldURL != "" {
		s.deleteObject(ctx, oldURL)
	}
	publishEvents(ctx, s.publisher, s.logger, &user.BaseAggregateRoot)
	return ToUserProfile(user), nil
}

// FeaturedCreators returns users with the most recordings
func (s *ProfileService) FeaturedCreators(ctx context.Context) ([]FeaturedCreator, error) {
	counts, err := s.recordingRepo.TopCreators(ctx, featuredCreatorsLimit)
	if err != nil {
		return nil, err
	}
	ids := make([]uuid.UUID, len(counts))
	for i, c := range counts {
		ids[i] = c.UserID
	}
	users, err := s.userRepo.FindByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	byID := make(map[uuid.UUID]*identity.User, len(users))
	for _, u := range users {
		byID[u.ID] = u
	}

	featured := make([]FeaturedCreator, 0, len(counts))
	for _, c := range counts {
		u, ok := byID[c.UserID]
		if !ok {
			continue
		}
		featured = append(featured, FeaturedCreator{
			ID:              u.ID,
			Username:        u.Name,
			Bio:             u.Bio,
			Avatar:          u.Picture,
			RecordingsCount: c.Count,
		})
	}
	return featured, nil
}

// Search finds users by name or display name
func (s *ProfileService) Search(ctx context.Context, query string) ([]SearchResult, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, ErrSearchQueryRequired
	}
	users, err := s.userRepo.Search(ctx, query, searchResultsLimit)
	if err != nil {
		return nil, err
	}
	results := make([]SearchResult, len(users))
	for i, u := range users {
		results[i] = SearchResult{
			ID:                u.ID,
			Name:              u.Name,
			DisplayName:       u.DisplayName,
			Picture:           u.Picture,
			Bio:               u.Bio,
			Profession:        u.Profession,
			HasPricingOptions: u.HasPricingOptions(),
		}
	}
	return results, nil
}

// GetPublicProfile resolves a user by id or, failing that, by display name.
// Both lookups run concurrently; the id match wins.
func (s *ProfileService) GetPublicProfile(ctx context.Context, viewerID uuid.UUID, idOrName string) (*PublicProfile, error) {
	var byID, byName *identity.User

	g, gctx := errgroup.WithContext(ctx)
	if id, err := uuid.Parse(idOrName); err == nil {
		g.Go(func() error {
			u, err := s.userRepo.FindByID(gctx, id)
			if err != nil && !errors.Is(err, shared.ErrNotFound) {
				return err
			}
			byID = u
			return nil
		})
	}
	g.Go(func() error {
		u, err := s.userRepo.FindByDisplayName(gctx, idOrName)
		if err != nil && !errors.Is(err, shared.ErrNotFound) {
			return err
		}
		byName = u
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	user := byID
	if user == nil {
		user = byName
	}
	if user == nil {
		return nil, ErrUserNotFound
	}
	return ToPublicProfile(user, user.ID == viewerID), nil
}

// AddMediaLink appends a media link to the caller's profile
func (s *ProfileService) AddMediaLink(ctx context.Context, userID uuid.UUID, input identity.MediaLinkInput) (*identity.MediaLink, error) {
	var link *identity.MediaLink
	_, err := s.mutate(ctx, userID, func(u *identity.User) (err error) {
		link, err = u.AddMediaLink(input)
		return err
	})
	return link, err
}

// UpdateMediaLink applies a partial update to one media link
func (s *ProfileService) UpdateMediaLink(ctx context.Context, userID, linkID uuid.UUID, input identity.MediaLinkInput) (*identity.MediaLink, error) {
	var link *identity.MediaLink
	_, err := s.mutate(ctx, userID, func(u *identity.User) (err error) {
		link, err = u.UpdateMediaLink(linkID, input)
		return err
	})
	return link, err
}

// RemoveMediaLink deletes one media link
func (s *ProfileService) RemoveMediaLink(ctx context.Context, userID, linkID uuid.UUID) error {
	_, err := s.mutate(ctx, userID, func(u *identity.User) error {
		return u.RemoveMediaLink(linkID)
	})
	return err
}

// ReorderMediaLinks rearranges media links; every link must be listed once
func (s *ProfileService) ReorderMediaLinks(ctx context.Context, userID uuid.UUID, ids []uuid.UUID) (identity.MediaLinks, error) {
	user, err := s.mutate(ctx, userID, func(u *identity.User) error {
		return u.ReorderMediaLinks(ids)
	})
	if err != nil {
		return nil, err
	}
	return user.MediaLinks, nil
}

// AddPricingOption appends a pricing option with defaults applied
func (s *ProfileService) AddPricingOption(ctx context.Context, userID uuid.UUID, input identity.PricingOptionInput) (*identity.PricingOption, error) {
	var opt *identity.PricingOption
	_, err := s.mutate(ctx, userID, func(u *identity.User) (err error) {
		opt, err = u.AddPricingOption(input)
		return err
	})
	return opt, err
}

// UpdatePricingOption applies a partial update to one pricing option
func (s *ProfileService) UpdatePricingOption(ctx context.Context, userID, optionID uuid.UUID, input identity.PricingOptionInput) (*identity.PricingOption, error) {
	var opt *identity.PricingOption
	_, err := s.mutate(ctx, userID, func(u *identity.User) (err error) {
		opt, err = u.UpdatePricingOption(optionID, input)
		return err
	})
	return opt, err
}

// RemovePricingOption deletes one pricing option
func (s *ProfileService) RemovePricingOption(ctx context.Context, userID, optionID uuid.UUID) error {
	_, err := s.mutate(ctx, userID, func(u *identity.User) error {
		return u.RemovePricingOption(optionID)
	})
	return err
}

// ReorderPricingOptions rearranges pricing options; every option must be listed once
func (s *ProfileService) ReorderPricingOptions(ctx context.Context, userID uuid.UUID, ids []uuid.UUID) (identity.PricingOptions, error) {
	user, err := s.mutate(ctx, userID, func(u *identity.User) error {
		return u.ReorderPricingOptions(ids)
	})
	if err != nil {
		return nil, err
	}
	return user.PricingOptions, nil
}

// ReplacePricingOptions swaps the whole pricing option list
func (s *ProfileService) ReplacePricingOptions(ctx context.Context, userID uuid.UUID, inputs []identity.PricingOptionInput) (identity.PricingOptions, error) {
	var options identity.PricingOptions
	_, err := s.mutate(ctx, userID, func(u *identity.User) (err error) {
		options, err = u.ReplacePricingOptions(inputs)
		return err
	})
	return options, err
}

// UpdateRequestsInfo merges changes into the requests info block
func (s *ProfileService) UpdateRequestsInfo(ctx context.Context, userID uuid.UUID, update identity.RequestsInfoUpdate) (*identity.RequestsInfo, error) {
	user, err := s.mutate(ctx, userID, func(u *identity.User) error {
		return u.UpdateRequestsInfo(update)
	})
	if err != nil {
		return nil, err
	}
	return &user.RequestsInfo, nil
}

// UpdatePaymentSettings replaces payout settings
func (s *ProfileService) UpdatePaymentSettings(ctx context.Context, userID uuid.UUID, update identity.PaymentSettingsUpdate) (*identity.PaymentSettings, error) {
	user, err := s.mutate(ctx, userID, func(u *identity.User) error {
		return u.UpdatePaymentSettings(update)
	})
	if err != nil {
		return nil, err
	}
	return &user.PaymentSettings, nil
}

// mutate loads the user, applies fn and persists the result
func (s *ProfileService) mutate(ctx context.Context, userID uuid.UUID, fn func(*identity.User) error) (*identity.User, error) {
	user, err := s.load(ctx, userID)
	if err != nil {
		return nil, err
	}
	if err := fn(user); err != nil {
		return nil, err
	}
	if err := s.userRepo.Update(ctx, user); err != nil {
		s.logger.Error("Failed to save profile", zap.String("user_id", userID.String()), zap.Error(err))
		return nil, err
	}
	publishEvents(ctx, s.publisher, s.logger, &user.BaseAggregateRoot)
	return user, nil
}

func (s *ProfileService) load(ctx context.Context, userID uuid.UUID) (*identity.User, error) {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return user, nil
}

func (s *ProfileService) deleteObject(ctx context.Context, url string) {
	if err := s.storage.Delete(ctx, url); err != nil {
		s.logger.Warn("Failed to delete stored object", zap.String("url", url), zap.Error(err))
	}
}
