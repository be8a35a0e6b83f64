package users

import (
	"context"
	"errors"
	"net/mail"
	"time"

	"github.com/faeflux/faeflux-one/internal/auth"
	"github.com/faeflux/faeflux-one/model"
	"gorm.io/gorm"
)

type CreateUserOptions struct {
	Email    string
	Password string
	FullName string
	Role     model.UserRole
	SiteID   *uint
}

// UserPatch carries an explicit field-by-field delta; only non-nil fields
// are applied.
type UserPatch struct {
	Email    *string         `json:"email"`
	FullName *string         `json:"fullName"`
	IsActive *bool           `json:"isActive"`
	Role     *model.UserRole `json:"role"`
	SiteID   *uint           `json:"siteId"`
}

type UserService struct {
	userRepo UserRepository
}

func NewUserService(userRepo UserRepository) *UserService {
	return &UserService{userRepo: userRepo}
}

func (s *UserService) GetUserByID(ctx context.Context, userID uint) (*model.User, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrUserNotFound
	}
	return user, err
}

func (s *UserService) GetUserByEmail(ctx context.Context, email string) (*model.User, error) {
	if _, err := mail.ParseAddress(email); err != nil {
		return nil, ErrUserNotFound
	}
	user, err := s.userRepo.GetByEmail(ctx, email)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrUserNotFound
	}
	return user, err
}

func (s *UserService) ListUsers(ctx context.Context, skip int, limit int) ([]*model.User, error) {
	return s.userRepo.List(ctx, skip, limit)
}

// CreateUser hashes the password and inserts the user. A duplicate email
// surfaces as ErrEmailRegistered via the unique index on email.
func (s *UserService) CreateUser(ctx context.Context, opts CreateUserOptions) (*model.User, error) {
	if _, err := mail.ParseAddress(opts.Email); err != nil {
		return nil, err
	}
	passwordHash, err := auth.HashPassword(opts.Password)
	if err != nil {
		return nil, err
	}

	role := opts.Role
	if role == "" {
		role = model.RoleViewer
	}
	user := model.User{
		Email:          opts.Email,
		FullName:       opts.FullName,
		HashedPassword: passwordHash,
		Role:           role,
		IsActive:       true,
		SiteID:         opts.SiteID,
	}
	if err := s.userRepo.Create(ctx, &user); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrEmailRegistered
		}
		return nil, err
	}
	return &user, nil
}

// UpdateUser applies only the fields explicitly present in patch.
func (s *UserService) UpdateUser(ctx context.Context, userID uint, patch UserPatch) (*model.User, error) {
	columns := map[string]interface{}{}
	if patch.Email != nil {
		if _, err := mail.ParseAddress(*patch.Email); err != nil {
			return nil, err
		}
		columns["email"] = *patch.Email
	}
	if patch.FullName != nil {
		columns["full_name"] = *patch.FullName
	}
	if patch.IsActive != nil {
		columns["is_active"] = *patch.IsActive
	}
	if patch.Role != nil {
		columns["role"] = *patch.Role
	}
	if patch.SiteID != nil {
		columns["site_id"] = *patch.SiteID
	}
	if len(columns) > 0 {
		affected, err := s.userRepo.Updates(ctx, userID, columns)
		if err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return nil, ErrEmailRegistered
			}
			return nil, err
		}
		if affected == 0 {
			return nil, ErrUserNotFound
		}
	}
	return s.GetUserByID(ctx, userID)
}

// DeleteUser removes a user. Deleting the acting subject's own account is
// forbidden regardless of role.
func (s *UserService) DeleteUser(ctx context.Context, userID uint, actorID uint) error {
	if userID == actorID {
		return ErrSelfDeletion
	}
	affected, err := s.userRepo.Delete(ctx, userID)
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrUserNotFound
	}
	return nil
}

// TouchLastLogin records a successful login timestamp.
func (s *UserService) TouchLastLogin(ctx context.Context, userID uint, when time.Time) error {
	_, err := s.userRepo.Updates(ctx, userID, map[string]interface{}{"last_login": when})
	return err
}
