package service

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/boddenberg/bankup-app-go/internal/domain"
	"github.com/boddenberg/bankup-app-go/internal/infra/observability"
	"github.com/boddenberg/bankup-app-go/internal/port"

	"go.opentelemetry.io/otel"
	"go.uber.org/zap"
)

var profileTracer = otel.Tracer("service/profile")

const profileCacheKey = "profile"

// ProfileService reads and writes the user profile and keeps the display
// cache (name, avatar) in sync.
type ProfileService struct {
	api     port.ProfileAPI
	store   port.SessionStore
	cache   port.Cache[any]
	metrics *observability.Metrics
	logger  *zap.Logger
}

// NewProfileService creates a new profile service.
func NewProfileService(api port.ProfileAPI, store port.SessionStore, cache port.Cache[any], metrics *observability.Metrics, logger *zap.Logger) *ProfileService {
	return &ProfileService{
		api:     api,
		store:   store,
		cache:   cache,
		metrics: metrics,
		logger:  logger,
	}
}

// Get returns the profile, from the cache when fresh.
func (s *ProfileService) Get(ctx context.Context) (*domain.User, error) {
	ctx, span := profileTracer.Start(ctx, "ProfileService.Get")
	defer span.End()

	if cached, ok := s.cache.Get(profileCacheKey); ok {
		if u, ok := cached.(*domain.User); ok {
			s.metrics.IncrCacheHit(profileCacheKey)
			return u, nil
		}
	}
	s.metrics.IncrCacheMiss(profileCacheKey)

	u, err := s.api.GetProfile(ctx)
	if err != nil {
		return nil, err
	}
	if err := s.remember(ctx, u); err != nil {
		return nil, err
	}
	return u, nil
}

// DisplayName is the name shown in the prompt: cache, then the session
// display cache, then a profile fetch. Errors degrade to "".
func (s *ProfileService) DisplayName(ctx context.Context) string {
	if cached, ok := s.cache.Get(profileCacheKey); ok {
		if u, ok := cached.(*domain.User); ok {
			return u.Name
		}
	}
	if name, _, err := s.store.Display(ctx); err == nil && name != "" {
		return name
	}
	token, err := s.store.Token(ctx)
	if err != nil || token == "" {
		return ""
	}
	u, err := s.Get(ctx)
	if err != nil {
		s.logger.Debug("display name unavailable", zap.Error(err))
		return ""
	}
	return u.Name
}

// Complete sends the profile completion form. It creates the profile when
// the server has none yet and updates it otherwise.
func (s *ProfileService) Complete(ctx context.Context, form domain.ProfileForm) (*domain.User, error) {
	ctx, span := profileTracer.Start(ctx, "ProfileService.Complete")
	defer span.End()

	in, err := form.ToCompletionInput()
	if err != nil {
		return nil, err
	}

	existing, err := s.api.GetProfile(ctx)
	if err != nil && !isNotFound(err) {
		return nil, err
	}

	var u *domain.User
	if existing != nil && existing.Name != "" {
		u, err = s.api.UpdateProfile(ctx, in)
	} else {
		u, err = s.api.CreateProfile(ctx, in)
	}
	if err != nil {
		return nil, err
	}

	if err := s.store.SetProfileComplete(ctx, true); err != nil {
		return nil, fmt.Errorf("save profile_complete: %w", err)
	}
	if err := s.remember(ctx, u); err != nil {
		return nil, err
	}

	s.logger.Info("profile completed", zap.Int64("user_id", u.ID))
	return u, nil
}

// Update sends the edit-profile form.
func (s *ProfileService) Update(ctx context.Context, form domain.ProfileForm) (*domain.User, error) {
	ctx, span := profileTracer.Start(ctx, "ProfileService.Update")
	defer span.End()

	in, err := form.ToEditInput()
	if err != nil {
		return nil, err
	}

	u, err := s.api.UpdateProfile(ctx, in)
	if err != nil {
		return nil, err
	}

	if u.IsComplete() {
		if err := s.store.SetProfileComplete(ctx, true); err != nil {
			return nil, fmt.Errorf("save profile_complete: %w", err)
		}
	}
	if err := s.remember(ctx, u); err != nil {
		return nil, err
	}
	return u, nil
}

// Forget drops the cached profile, e.g. on logout.
func (s *ProfileService) Forget() {
	s.cache.Delete(profileCacheKey)
}

func (s *ProfileService) remember(ctx context.Context, u *domain.User) error {
	s.cache.Set(profileCacheKey, u)
	if err := s.store.SaveUser(ctx, u); err != nil {
		return fmt.Errorf("save user: %w", err)
	}
	if err := s.store.SaveDisplay(ctx, u.Name, u.Avatar); err != nil {
		return fmt.Errorf("save display cache: %w", err)
	}
	return nil
}

func isNotFound(err error) bool {
	var apiErr *domain.ErrAPI
	return errors.As(err, &apiErr) && apiErr.Status == http.StatusNotFound
}
