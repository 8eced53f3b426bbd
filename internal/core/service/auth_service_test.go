package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"github.com/ucspstream/streaming-api/internal/core/domain"
)

// ---------------------------------------------------------------------------
// In-memory stub repository
// ---------------------------------------------------------------------------

type stubUserRepo struct {
	users map[string]*domain.User // keyed by id
}

func newStubUserRepo() *stubUserRepo {
	return &stubUserRepo{users: make(map[string]*domain.User)}
}

func cloneUser(u *domain.User) *domain.User {
	if u == nil {
		return nil
	}
	clone := *u
	return &clone
}

func (r *stubUserRepo) Create(_ context.Context, user *domain.User) (*domain.User, error) {
	for _, u := range r.users {
		if u.Email == user.Email {
			return nil, domain.ErrDuplicateEmail
		}
	}
	r.users[user.ID] = cloneUser(user)
	return cloneUser(user), nil
}

func (r *stubUserRepo) FindByEmail(_ context.Context, email string) (*domain.User, error) {
	for _, u := range r.users {
		if u.Email == email {
			return cloneUser(u), nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *stubUserRepo) FindByID(_ context.Context, id string) (*domain.User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	return cloneUser(u), nil
}

func (r *stubUserRepo) ListNonAdmin(_ context.Context) ([]*domain.User, error) {
	var out []*domain.User
	for _, u := range r.users {
		if u.Role != domain.RoleAdmin {
			out = append(out, cloneUser(u))
		}
	}
	return out, nil
}

func (r *stubUserRepo) UpdateStatus(_ context.Context, id, status string) error {
	u, ok := r.users[id]
	if !ok {
		return domain.ErrUserNotFound
	}
	u.Status = status
	return nil
}

func (r *stubUserRepo) UpdateProfile(_ context.Context, id string, profile domain.Profile) error {
	u, ok := r.users[id]
	if !ok {
		return domain.ErrUserNotFound
	}
	u.Profile = profile
	return nil
}

// seedUser inserts a user with a real bcrypt hash and returns it.
func seedUser(t *testing.T, repo *stubUserRepo, id, email, password, role, status string) *domain.User {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("hash password: %v", err)
	}
	u := &domain.User{
		ID:           id,
		Username:     id,
		Email:        email,
		PasswordHash: string(hash),
		Role:         role,
		Status:       status,
		CreatedAt:    time.Now().UTC(),
	}
	repo.users[id] = u
	return u
}

// ---------------------------------------------------------------------------
// Register
// ---------------------------------------------------------------------------

func TestAuthService_Register_Success(t *testing.T) {
	repo := newStubUserRepo()
	svc := NewAuthService(repo, "secret", time.Hour)

	token, user, err := svc.Register(context.Background(), "alice", "alice@example.com", "pass123", domain.RoleArtist)
	if err != nil {
		t.Fatalf("Register returned error: %v", err)
	}
	if token == "" {
		t.Fatalf("expected a token")
	}
	if user.ID == "" {
		t.Fatalf("expected an assigned id")
	}
	if user.Status != domain.UserStatusActive {
		t.Fatalf("expected active status, got %q", user.Status)
	}
	if user.PasswordHash != "" {
		t.Fatalf("password hash leaked in public user")
	}

	stored := repo.users[user.ID]
	if stored == nil || stored.PasswordHash == "" {
		t.Fatalf("expected hashed password persisted")
	}
	if stored.PasswordHash == "pass123" {
		t.Fatalf("password stored in plaintext")
	}
}

func TestAuthService_Register_AdminRoleRejected(t *testing.T) {
	svc := NewAuthService(newStubUserRepo(), "secret", time.Hour)

	_, _, err := svc.Register(context.Background(), "mallory", "m@example.com", "pass123", domain.RoleAdmin)
	if !errors.Is(err, domain.ErrInvalidRole) {
		t.Fatalf("expected ErrInvalidRole, got %v", err)
	}
}

func TestAuthService_Register_DuplicateEmail(t *testing.T) {
	repo := newStubUserRepo()
	svc := NewAuthService(repo, "secret", time.Hour)

	if _, _, err := svc.Register(context.Background(), "alice", "alice@example.com", "pass123", domain.RoleClient); err != nil {
		t.Fatalf("first registration failed: %v", err)
	}
	_, _, err := svc.Register(context.Background(), "alice2", "alice@example.com", "other", domain.RoleClient)
	if !errors.Is(err, domain.ErrDuplicateEmail) {
		t.Fatalf("expected ErrDuplicateEmail, got %v", err)
	}
}

// ---------------------------------------------------------------------------
// Login
// ---------------------------------------------------------------------------

func TestAuthService_Login_InvalidCredentials(t *testing.T) {
	repo := newStubUserRepo()
	seedUser(t, repo, "u1", "bob@example.com", "correct", domain.RoleClient, domain.UserStatusActive)
	svc := NewAuthService(repo, "secret", time.Hour)

	if _, _, err := svc.Login(context.Background(), "bob@example.com", "wrong"); !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("wrong password: expected ErrInvalidCredentials, got %v", err)
	}
	if _, _, err := svc.Login(context.Background(), "nobody@example.com", "correct"); !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("unknown email: expected ErrInvalidCredentials, got %v", err)
	}
}

func TestAuthService_Login_InactiveAccountLockedOut(t *testing.T) {
	repo := newStubUserRepo()
	seedUser(t, repo, "u1", "bob@example.com", "correct", domain.RoleClient, domain.UserStatusInactive)
	svc := NewAuthService(repo, "secret", time.Hour)

	_, _, err := svc.Login(context.Background(), "bob@example.com", "correct")
	if !errors.Is(err, domain.ErrAccountInactive) {
		t.Fatalf("expected ErrAccountInactive even with correct password, got %v", err)
	}
}

func TestAuthService_RegisterLogin_ClaimsRoundTrip(t *testing.T) {
	repo := newStubUserRepo()
	svc := NewAuthService(repo, "secret", time.Hour)

	_, registered, err := svc.Register(context.Background(), "carol", "carol@example.com", "pass123", domain.RoleArtist)
	if err != nil {
		t.Fatalf("Register failed: %v", err)
	}

	token, _, err := svc.Login(context.Background(), "carol@example.com", "pass123")
	if err != nil {
		t.Fatalf("Login failed: %v", err)
	}

	mc := jwt.MapClaims{}
	if _, err := jwt.ParseWithClaims(token, mc, func(*jwt.Token) (interface{}, error) {
		return []byte("secret"), nil
	}); err != nil {
		t.Fatalf("parse token: %v", err)
	}
	if mc["user_id"] != registered.ID {
		t.Fatalf("token user_id = %v, want %s", mc["user_id"], registered.ID)
	}
	if mc["role"] != domain.RoleArtist {
		t.Fatalf("token role = %v, want artist", mc["role"])
	}
}

// ---------------------------------------------------------------------------
// Verify
// ---------------------------------------------------------------------------

func TestAuthService_Verify_ReflectsCurrentAccountStatus(t *testing.T) {
	repo := newStubUserRepo()
	svc := NewAuthService(repo, "secret", time.Hour)

	token, user, err := svc.Register(context.Background(), "dave", "dave@example.com", "pass123", domain.RoleClient)
	if err != nil {
		t.Fatalf("Register failed: %v", err)
	}

	claims, err := svc.Verify(context.Background(), token)
	if err != nil {
		t.Fatalf("Verify failed: %v", err)
	}
	if !claims.Active || claims.UserID != user.ID || claims.Role != domain.RoleClient {
		t.Fatalf("unexpected claims: %+v", claims)
	}

	// Deactivation takes effect before token expiry.
	repo.users[user.ID].Status = domain.UserStatusInactive
	claims, err = svc.Verify(context.Background(), token)
	if err != nil {
		t.Fatalf("Verify after deactivation failed: %v", err)
	}
	if claims.Active {
		t.Fatalf("expected Active=false after deactivation")
	}
}

func TestAuthService_Verify_BadToken(t *testing.T) {
	svc := NewAuthService(newStubUserRepo(), "secret", time.Hour)

	if _, err := svc.Verify(context.Background(), "not-a-token"); !errors.Is(err, domain.ErrUnauthenticated) {
		t.Fatalf("expected ErrUnauthenticated, got %v", err)
	}

	other := NewAuthService(newStubUserRepo(), "other-secret", time.Hour)
	token, _, err := other.Register(context.Background(), "eve", "eve@example.com", "pass123", domain.RoleClient)
	if err != nil {
		t.Fatalf("Register failed: %v", err)
	}
	if _, err := svc.Verify(context.Background(), token); !errors.Is(err, domain.ErrUnauthenticated) {
		t.Fatalf("wrong secret: expected ErrUnauthenticated, got %v", err)
	}
}

func TestAuthService_Verify_ExpiredToken(t *testing.T) {
	repo := newStubUserRepo()
	seedUser(t, repo, "u1", "frank@example.com", "pass123", domain.RoleClient, domain.UserStatusActive)
	svc := NewAuthService(repo, "secret", time.Hour)

	expired := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id": "u1",
		"role":    domain.RoleClient,
		"exp":     time.Now().Add(-time.Minute).Unix(),
	})
	token, err := expired.SignedString([]byte("secret"))
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}

	if _, err := svc.Verify(context.Background(), token); !errors.Is(err, domain.ErrUnauthenticated) {
		t.Fatalf("expected ErrUnauthenticated for expired token, got %v", err)
	}
}
