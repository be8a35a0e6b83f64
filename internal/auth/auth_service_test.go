package auth

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/faeflux/faeflux-one/model"
)

type fakeUserStore struct {
	byID        map[uint]*model.User
	lastLoginID uint
}

func newFakeUserStore(users ...*model.User) *fakeUserStore {
	store := &fakeUserStore{byID: map[uint]*model.User{}}
	for _, user := range users {
		store.byID[user.ID] = user
	}
	return store
}

func (s *fakeUserStore) GetUserByEmail(ctx context.Context, email string) (*model.User, error) {
	for _, user := range s.byID {
		if user.Email == email {
			return user, nil
		}
	}
	return nil, errors.New("user not found")
}

func (s *fakeUserStore) GetUserByID(ctx context.Context, userID uint) (*model.User, error) {
	user, ok := s.byID[userID]
	if !ok {
		return nil, errors.New("user not found")
	}
	return user, nil
}

func (s *fakeUserStore) TouchLastLogin(ctx context.Context, userID uint, when time.Time) error {
	s.lastLoginID = userID
	return nil
}

func newLoginFixture(t *testing.T, active bool) (*AuthService, *fakeUserStore, *model.User) {
	t.Helper()
	hash, err := HashPassword("s3cret!pass")
	if err != nil {
		t.Fatalf("hash password: %v", err)
	}
	user := &model.User{
		ID:             7,
		Email:          "jamie@example.com",
		HashedPassword: hash,
		Role:           model.RoleAnalyst,
		IsActive:       active,
	}
	store := newFakeUserStore(user)
	return NewAuthService(store, newTestTokenService(t)), store, user
}

func TestLoginSuccess(t *testing.T) {
	svc, store, user := newLoginFixture(t, true)

	result, err := svc.Login(context.Background(), user.Email, "s3cret!pass")
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if result.AccessToken == "" || result.RefreshToken == "" {
		t.Error("login did not issue both tokens")
	}
	if result.User.ID != user.ID {
		t.Errorf("wrong user returned: %d", result.User.ID)
	}
	if store.lastLoginID != user.ID {
		t.Error("last login not recorded")
	}

	claims, err := svc.tokens.Verify(result.AccessToken, TokenTypeAccess)
	if err != nil {
		t.Fatalf("verify issued access token: %v", err)
	}
	if claims.UserID() != user.ID {
		t.Errorf("access token subject %d, want %d", claims.UserID(), user.ID)
	}
	if _, err := svc.tokens.Verify(result.RefreshToken, TokenTypeRefresh); err != nil {
		t.Fatalf("verify issued refresh token: %v", err)
	}
}

func TestLoginWrongPassword(t *testing.T) {
	svc, _, user := newLoginFixture(t, true)
	if _, err := svc.Login(context.Background(), user.Email, "wrong"); !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestLoginUnknownEmail(t *testing.T) {
	svc, _, _ := newLoginFixture(t, true)
	if _, err := svc.Login(context.Background(), "ghost@example.com", "s3cret!pass"); !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestLoginInactiveUser(t *testing.T) {
	svc, _, user := newLoginFixture(t, false)
	if _, err := svc.Login(context.Background(), user.Email, "s3cret!pass"); !errors.Is(err, ErrUserInactive) {
		t.Errorf("expected ErrUserInactive, got %v", err)
	}
}

func TestRefreshIssuesNewAccessToken(t *testing.T) {
	svc, _, user := newLoginFixture(t, true)
	ctx := context.Background()

	result, err := svc.Login(ctx, user.Email, "s3cret!pass")
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	accessToken, err := svc.Refresh(ctx, result.RefreshToken)
	if err != nil {
		t.Fatalf("refresh: %v", err)
	}
	claims, err := svc.tokens.Verify(accessToken, TokenTypeAccess)
	if err != nil {
		t.Fatalf("verify refreshed token: %v", err)
	}
	if claims.UserID() != user.ID {
		t.Errorf("refreshed token subject %d, want %d", claims.UserID(), user.ID)
	}
}

func TestRefreshRejectsAccessToken(t *testing.T) {
	svc, _, user := newLoginFixture(t, true)
	ctx := context.Background()

	result, err := svc.Login(ctx, user.Email, "s3cret!pass")
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if _, err := svc.Refresh(ctx, result.AccessToken); !errors.Is(err, ErrTokenInvalid) {
		t.Errorf("expected ErrTokenInvalid, got %v", err)
	}
}

func TestRefreshRejectsDeactivatedUser(t *testing.T) {
	svc, _, user := newLoginFixture(t, true)
	ctx := context.Background()

	result, err := svc.Login(ctx, user.Email, "s3cret!pass")
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	user.IsActive = false
	if _, err := svc.Refresh(ctx, result.RefreshToken); !errors.Is(err, ErrTokenInvalid) {
		t.Errorf("expected ErrTokenInvalid, got %v", err)
	}
}
