package repository

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/AbrahamLara/chat-app-backend/internal/domain/chat"
	"github.com/AbrahamLara/chat-app-backend/internal/domain/user"
	apperrors "github.com/AbrahamLara/chat-app-backend/pkg/errors"
)

// setupTestDB opens a per-test in-memory database. The shared cache keeps
// the schema visible across pooled connections.
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger:         gormlogger.Default.LogMode(gormlogger.Silent),
		TranslateError: true,
	})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}
	if err := db.AutoMigrate(&user.User{}, &chat.Chat{}, &chat.UserChat{}, &chat.Message{}, &chat.MessageRecipient{}); err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}
	return db
}

func newTestUser(name, email string) *user.User {
	return &user.User{
		ID:        uuid.New(),
		Name:      name,
		Email:     email,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}
}

func TestUserRepositoryDuplicateEmail(t *testing.T) {
	repo := NewUserRepository(setupTestDB(t))
	ctx := context.Background()

	if err := repo.Create(ctx, newTestUser("A", "a@x.com")); err != nil {
		t.Fatalf("first create failed: %v", err)
	}
	err := repo.Create(ctx, newTestUser("B", "a@x.com"))
	if !errors.Is(err, apperrors.ErrAlreadyExists) {
		t.Fatalf("expected ErrAlreadyExists, got %v", err)
	}

	fetched, err := repo.GetByEmail(ctx, "a@x.com")
	if err != nil {
		t.Fatalf("lookup failed: %v", err)
	}
	if fetched.Name != "A" {
		t.Errorf("duplicate insert altered the original row: %q", fetched.Name)
	}
}

func TestUserRepositorySetPassword(t *testing.T) {
	repo := NewUserRepository(setupTestDB(t))
	ctx := context.Background()

	u := newTestUser("A", "a@x.com")
	if err := repo.Create(ctx, u); err != nil {
		t.Fatalf("create failed: %v", err)
	}

	if err := repo.SetPassword(ctx, u.ID, "hashed"); err != nil {
		t.Fatalf("set password failed: %v", err)
	}
	fetched, _ := repo.GetByID(ctx, u.ID)
	if fetched.Password != "hashed" {
		t.Errorf("password not persisted: %q", fetched.Password)
	}

	if err := repo.SetPassword(ctx, uuid.New(), "hashed"); !errors.Is(err, apperrors.ErrNotFound) {
		t.Errorf("expected ErrNotFound for unknown id, got %v", err)
	}
}

func TestUserRepositoryDelete(t *testing.T) {
	repo := NewUserRepository(setupTestDB(t))
	ctx := context.Background()

	u := newTestUser("A", "a@x.com")
	if err := repo.Create(ctx, u); err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if err := repo.Delete(ctx, u.ID); err != nil {
		t.Fatalf("delete failed: %v", err)
	}
	if _, err := repo.GetByID(ctx, u.ID); !errors.Is(err, apperrors.ErrNotFound) {
		t.Errorf("expected ErrNotFound after delete, got %v", err)
	}
	if err := repo.Delete(ctx, u.ID); !errors.Is(err, apperrors.ErrNotFound) {
		t.Errorf("expected ErrNotFound on second delete, got %v", err)
	}
}

func TestUserRepositoryList(t *testing.T) {
	repo := NewUserRepository(setupTestDB(t))
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		if err := repo.Create(ctx, newTestUser(fmt.Sprintf("user-%d", i), fmt.Sprintf("u%d@x.com", i))); err != nil {
			t.Fatalf("create failed: %v", err)
		}
	}

	users, err := repo.ListUsers(ctx)
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(users) != 3 {
		t.Errorf("expected 3 users, got %d", len(users))
	}
}
