package service

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/ucspstream/streaming-api/internal/core/access"
	"github.com/ucspstream/streaming-api/internal/core/domain"
	"github.com/ucspstream/streaming-api/internal/core/ports"
)

// UserService covers profile management and admin user administration.
type UserService struct {
	repo   ports.UserRepository
	logger zerolog.Logger
}

func NewUserService(repo ports.UserRepository, logger zerolog.Logger) *UserService {
	return &UserService{repo: repo, logger: logger}
}

// Profile returns the public view of a user record. Owner or admin.
func (s *UserService) Profile(ctx context.Context, claims *domain.Claims, userID string) (*domain.User, error) {
	if userID == "" && claims != nil {
		userID = claims.UserID
	}
	if err := access.Decide(claims, access.OpReadProfile, userID); err != nil {
		return nil, err
	}

	user, err := s.repo.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	return user.Public(), nil
}

// UpdateProfile replaces the user-editable profile fields. Owner or admin.
// The stored profile picture reference is preserved; it changes only through
// SetProfilePicture.
func (s *UserService) UpdateProfile(ctx context.Context, claims *domain.Claims, userID string, profile domain.Profile) (*domain.User, error) {
	if userID == "" && claims != nil {
		userID = claims.UserID
	}
	if err := access.Decide(claims, access.OpUpdateProfile, userID); err != nil {
		return nil, err
	}

	current, err := s.repo.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	profile.ProfilePicture = current.Profile.ProfilePicture

	if err := s.repo.UpdateProfile(ctx, userID, profile); err != nil {
		return nil, err
	}

	current.Profile = profile
	return current.Public(), nil
}

// SetProfilePicture stores ref as the user's picture; an empty ref removes
// it. Owner only; admins edit profile fields but not pictures.
func (s *UserService) SetProfilePicture(ctx context.Context, claims *domain.Claims, userID, ref string) (*domain.User, error) {
	if userID == "" && claims != nil {
		userID = claims.UserID
	}
	if err := access.Decide(claims, access.OpUpdateProfile, userID); err != nil {
		return nil, err
	}
	if claims.UserID != userID {
		return nil, domain.ErrForbidden
	}

	current, err := s.repo.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	profile := current.Profile
	profile.ProfilePicture = ref
	if err := s.repo.UpdateProfile(ctx, userID, profile); err != nil {
		return nil, err
	}

	current.Profile = profile
	return current.Public(), nil
}

// ListUsers returns every non-admin account, hashes stripped. Admin only.
func (s *UserService) ListUsers(ctx context.Context, claims *domain.Claims) ([]*domain.User, error) {
	if err := access.Decide(claims, access.OpManageUsers, ""); err != nil {
		return nil, err
	}

	users, err := s.repo.ListNonAdmin(ctx)
	if err != nil {
		return nil, err
	}

	public := make([]*domain.User, 0, len(users))
	for _, u := range users {
		public = append(public, u.Public())
	}
	return public, nil
}

// SetUserStatus activates or deactivates an account. Admin only. A
// deactivated account is locked out of every operation, including login.
func (s *UserService) SetUserStatus(ctx context.Context, claims *domain.Claims, userID, status string) error {
	if err := access.Decide(claims, access.OpManageUsers, ""); err != nil {
		return err
	}
	if !domain.ValidUserStatus(status) {
		return fmt.Errorf("%w: %q", domain.ErrInvalidUserStatus, status)
	}

	if _, err := s.repo.FindByID(ctx, userID); err != nil {
		return err
	}
	if err := s.repo.UpdateStatus(ctx, userID, status); err != nil {
		return err
	}

	s.logger.Info().
		Str("user_id", userID).
		Str("status", status).
		Str("admin_id", claims.UserID).
		Msg("user status updated")

	return nil
}
