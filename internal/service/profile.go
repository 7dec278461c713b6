package service

import (
	"context"
	"strings"

	"go.uber.org/zap"
)

// FallbackDisplayName is used when neither a profile nor an email is known.
const FallbackDisplayName = "User"

// ProfileRepository defines the persistence operations
// required by the profile service.
type ProfileRepository interface {
	// DisplayName returns the stored name and whether a profile exists.
	DisplayName(ctx context.Context, userID string) (string, bool, error)
	// EnsureProfile creates the profile if it does not exist yet.
	EnsureProfile(ctx context.Context, userID, displayName string) error
}

// ProfileService resolves the display names snapshotted into new cards.
type ProfileService struct {
	// repo performs the data-layer operations.
	repo ProfileRepository
	log  *zap.Logger
}

// NewProfileService constructs a new ProfileService using the provided
// repository. A nil logger discards profile store failures.
func NewProfileService(repo ProfileRepository, log *zap.Logger) *ProfileService {
	if log == nil {
		log = zap.NewNop()
	}
	return &ProfileService{repo: repo, log: log}
}

// DisplayName returns the user's display name. A user without a profile
// gets one named after the local part of their email.
//
// Profile store failures never block the caller: they are logged and the
// name falls back to the email, then FallbackDisplayName.
func (s *ProfileService) DisplayName(ctx context.Context, userID, email string) string {
	name, ok, err := s.repo.DisplayName(ctx, userID)
	if err != nil {
		s.log.Warn("failed to load profile", zap.String("user", userID), zap.Error(err))
		ok = false
	}
	if ok && strings.TrimSpace(name) != "" {
		return name
	}

	fromEmail := nameFromEmail(email)
	if ok {
		return fromEmail
	}
	if err := s.repo.EnsureProfile(ctx, userID, fromEmail); err != nil {
		s.log.Warn("failed to create profile", zap.String("user", userID), zap.Error(err))
		if email = strings.TrimSpace(email); email != "" {
			return email
		}
		return FallbackDisplayName
	}
	return fromEmail
}

func nameFromEmail(email string) string {
	local, _, _ := strings.Cut(email, "@")
	if local = strings.TrimSpace(local); local != "" {
		return local
	}
	return FallbackDisplayName
}
