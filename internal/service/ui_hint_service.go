package service

import (
	"context"
	"regexp"
	"time"

	"go.uber.org/zap"

	"github.com/noah-isme/sma-schedule-engine/internal/dto"
	appErrors "github.com/noah-isme/sma-schedule-engine/pkg/errors"
)

var hintKeyPattern = regexp.MustCompile(`^[a-z0-9][a-z0-9_.-]{0,63}$`)

type uiHintStore interface {
	Seen(ctx context.Context, subject, key string) (bool, error)
	MarkSeen(ctx context.Context, subject, key string, seen bool, ttl time.Duration) error
}

// UIHintService remembers which one-time hints a user has dismissed.
type UIHintService struct {
	store  uiHintStore
	ttl    time.Duration
	logger *zap.Logger
}

// NewUIHintService constructs the service. A zero ttl keeps flags forever.
func NewUIHintService(store uiHintStore, ttl time.Duration, logger *zap.Logger) *UIHintService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &UIHintService{store: store, ttl: ttl, logger: logger}
}

func validateHint(subject, key string) error {
	if subject == "" {
		return appErrors.Clone(appErrors.ErrValidation, "hint subject is required")
	}
	if !hintKeyPattern.MatchString(key) {
		return appErrors.Clone(appErrors.ErrValidation, "hint key must be lowercase alphanumeric")
	}
	return nil
}

// Get reports whether subject has seen the hint. Store failures read as unseen.
func (s *UIHintService) Get(ctx context.Context, subject, key string) (*dto.UIHintResponse, error) {
	if err := validateHint(subject, key); err != nil {
		return nil, err
	}
	seen, err := s.store.Seen(ctx, subject, key)
	if err != nil {
		s.logger.Warn("ui hint lookup failed", zap.String("key", key), zap.Error(err))
		seen = false
	}
	return &dto.UIHintResponse{Key: key, Subject: subject, Seen: seen}, nil
}

// Set records or clears a hint dismissal.
func (s *UIHintService) Set(ctx context.Context, key string, req dto.UIHintRequest) (*dto.UIHintResponse, error) {
	if err := validateHint(req.Subject, key); err != nil {
		return nil, err
	}
	if err := s.store.MarkSeen(ctx, req.Subject, key, req.Seen, s.ttl); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrUpstream.Code, appErrors.ErrUpstream.Status, "failed to store ui hint")
	}
	return &dto.UIHintResponse{Key: key, Subject: req.Subject, Seen: req.Seen}, nil
}
