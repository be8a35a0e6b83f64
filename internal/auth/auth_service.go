package auth

import (
	"context"
	"log/slog"
	"time"

	"github.com/faeflux/faeflux-one/model"
)

// UserStore is the subset of the user service the authentication flow needs.
type UserStore interface {
	GetUserByEmail(ctx context.Context, email string) (*model.User, error)
	GetUserByID(ctx context.Context, userID uint) (*model.User, error)
	TouchLastLogin(ctx context.Context, userID uint, when time.Time) error
}

type AuthService struct {
	users  UserStore
	tokens *TokenService
}

func NewAuthService(users UserStore, tokens *TokenService) *AuthService {
	return &AuthService{
		users:  users,
		tokens: tokens,
	}
}

type LoginResult struct {
	User         *model.User
	AccessToken  string
	RefreshToken string
}

// Login checks credentials and issues an access/refresh token pair.
// Unknown email and wrong password both map to ErrInvalidCredentials so the
// response cannot be used to probe which accounts exist.
func (s *AuthService) Login(ctx context.Context, email string, password string) (*LoginResult, error) {
	user, err := s.users.GetUserByEmail(ctx, email)
	if err != nil || user == nil {
		return nil, ErrInvalidCredentials
	}
	if !CheckPassword(password, user.HashedPassword) {
		return nil, ErrInvalidCredentials
	}
	if !user.IsActive {
		return nil, ErrUserInactive
	}

	if err := s.users.TouchLastLogin(ctx, user.ID, time.Now()); err != nil {
		return nil, err
	}

	accessToken, err := s.tokens.IssueAccessToken(user)
	if err != nil {
		return nil, err
	}
	refreshToken, err := s.tokens.IssueRefreshToken(user)
	if err != nil {
		return nil, err
	}
	return &LoginResult{
		User:         user,
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
	}, nil
}

// Refresh exchanges a valid refresh token for a new access token. The
// subject must still exist and be active.
func (s *AuthService) Refresh(ctx context.Context, refreshToken string) (string, error) {
	claims, err := s.tokens.Verify(refreshToken, TokenTypeRefresh)
	if err != nil {
		return "", ErrTokenInvalid
	}
	userID := claims.UserID()
	if userID == 0 {
		return "", ErrTokenInvalid
	}
	user, err := s.users.GetUserByID(ctx, userID)
	if err != nil || user == nil {
		slog.Warn("Refresh token for unknown user", "userId", userID)
		return "", ErrTokenInvalid
	}
	if !user.IsActive {
		return "", ErrTokenInvalid
	}
	return s.tokens.IssueAccessToken(user)
}
