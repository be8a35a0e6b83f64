package users

import (
	"context"
	"errors"
	"testing"

	"github.com/faeflux/faeflux-one/internal/auth"
	"github.com/faeflux/faeflux-one/model"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("access pool: %v", err)
	}
	// a second connection would see a different in-memory database
	sqlDB.SetMaxOpenConns(1)
	if err := model.AutoMigrate(db); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

func newTestUserService(t *testing.T) *UserService {
	t.Helper()
	return NewUserService(NewUserRepository(newTestDB(t)))
}

func TestCreateUserDefaults(t *testing.T) {
	svc := newTestUserService(t)
	ctx := context.Background()

	user, err := svc.CreateUser(ctx, CreateUserOptions{
		Email:    "jamie@example.com",
		Password: "s3cret!pass",
		FullName: "Jamie Doe",
	})
	if err != nil {
		t.Fatalf("create user: %v", err)
	}
	if user.ID == 0 {
		t.Error("user id not assigned")
	}
	if user.Role != model.RoleViewer {
		t.Errorf("default role should be viewer, got %q", user.Role)
	}
	if !user.IsActive {
		t.Error("new user should be active")
	}
	if user.HashedPassword == "s3cret!pass" {
		t.Error("password stored in clear")
	}
	if !auth.CheckPassword("s3cret!pass", user.HashedPassword) {
		t.Error("stored hash does not verify the original password")
	}
}

func TestCreateUserDuplicateEmail(t *testing.T) {
	svc := newTestUserService(t)
	ctx := context.Background()

	opts := CreateUserOptions{Email: "jamie@example.com", Password: "s3cret!pass"}
	if _, err := svc.CreateUser(ctx, opts); err != nil {
		t.Fatalf("first create: %v", err)
	}
	if _, err := svc.CreateUser(ctx, opts); !errors.Is(err, ErrEmailRegistered) {
		t.Fatalf("expected ErrEmailRegistered, got %v", err)
	}
}

func TestCreateUserRejectsBadEmail(t *testing.T) {
	svc := newTestUserService(t)
	if _, err := svc.CreateUser(context.Background(), CreateUserOptions{Email: "not-an-email", Password: "x"}); err == nil {
		t.Error("malformed email accepted")
	}
}

func TestGetUserByEmail(t *testing.T) {
	svc := newTestUserService(t)
	ctx := context.Background()

	created, err := svc.CreateUser(ctx, CreateUserOptions{Email: "jamie@example.com", Password: "s3cret!pass"})
	if err != nil {
		t.Fatalf("create user: %v", err)
	}
	found, err := svc.GetUserByEmail(ctx, "jamie@example.com")
	if err != nil {
		t.Fatalf("get by email: %v", err)
	}
	if found.ID != created.ID {
		t.Errorf("id mismatch: %d vs %d", found.ID, created.ID)
	}
	if _, err := svc.GetUserByEmail(ctx, "ghost@example.com"); !errors.Is(err, ErrUserNotFound) {
		t.Errorf("expected ErrUserNotFound, got %v", err)
	}
	if _, err := svc.GetUserByEmail(ctx, "not-an-email"); !errors.Is(err, ErrUserNotFound) {
		t.Errorf("malformed email should resolve to ErrUserNotFound, got %v", err)
	}
}

func TestUpdateUserPartialPatch(t *testing.T) {
	svc := newTestUserService(t)
	ctx := context.Background()

	created, err := svc.CreateUser(ctx, CreateUserOptions{
		Email:    "jamie@example.com",
		Password: "s3cret!pass",
		FullName: "Jamie Doe",
		Role:     model.RoleAnalyst,
	})
	if err != nil {
		t.Fatalf("create user: %v", err)
	}

	fullName := "Jamie Q. Doe"
	updated, err := svc.UpdateUser(ctx, created.ID, UserPatch{FullName: &fullName})
	if err != nil {
		t.Fatalf("update user: %v", err)
	}
	if updated.FullName != fullName {
		t.Errorf("full name not updated, got %q", updated.FullName)
	}
	if updated.Role != model.RoleAnalyst {
		t.Errorf("untouched role changed to %q", updated.Role)
	}
	if updated.Email != created.Email {
		t.Errorf("untouched email changed to %q", updated.Email)
	}

	inactive := false
	updated, err = svc.UpdateUser(ctx, created.ID, UserPatch{IsActive: &inactive})
	if err != nil {
		t.Fatalf("deactivate user: %v", err)
	}
	if updated.IsActive {
		t.Error("explicit false not applied")
	}

	if _, err := svc.UpdateUser(ctx, 999999, UserPatch{FullName: &fullName}); !errors.Is(err, ErrUserNotFound) {
		t.Errorf("expected ErrUserNotFound, got %v", err)
	}
}

func TestDeleteUser(t *testing.T) {
	svc := newTestUserService(t)
	ctx := context.Background()

	victim, err := svc.CreateUser(ctx, CreateUserOptions{Email: "victim@example.com", Password: "s3cret!pass"})
	if err != nil {
		t.Fatalf("create user: %v", err)
	}
	actor, err := svc.CreateUser(ctx, CreateUserOptions{Email: "admin@example.com", Password: "s3cret!pass", Role: model.RoleAdmin})
	if err != nil {
		t.Fatalf("create actor: %v", err)
	}

	if err := svc.DeleteUser(ctx, actor.ID, actor.ID); !errors.Is(err, ErrSelfDeletion) {
		t.Fatalf("expected ErrSelfDeletion, got %v", err)
	}
	if _, err := svc.GetUserByID(ctx, actor.ID); err != nil {
		t.Fatalf("actor should survive self-deletion attempt: %v", err)
	}

	if err := svc.DeleteUser(ctx, victim.ID, actor.ID); err != nil {
		t.Fatalf("delete user: %v", err)
	}
	if _, err := svc.GetUserByID(ctx, victim.ID); !errors.Is(err, ErrUserNotFound) {
		t.Errorf("deleted user still resolvable: %v", err)
	}
	if err := svc.DeleteUser(ctx, victim.ID, actor.ID); !errors.Is(err, ErrUserNotFound) {
		t.Errorf("expected ErrUserNotFound, got %v", err)
	}
}
