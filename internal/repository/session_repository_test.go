package repository

import (
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/madiluxe/madiluxe-api/internal/models"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
)

func setupSessionRepositoryTest(t *testing.T) (*GormSessionRepository, *gorm.DB) {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	if err := db.AutoMigrate(&models.Admin{}, &models.AdminSession{}); err != nil {
		t.Fatalf("migrate admin/session failed: %v", err)
	}
	return NewSessionRepository(db), db
}

func createSessionAdmin(t *testing.T, db *gorm.DB, email string) *models.Admin {
	t.Helper()
	admin := &models.Admin{
		Email:        email,
		Name:         "Test Admin",
		Role:         "admin",
		PasswordHash: "x",
		IsActive:     true,
	}
	if err := db.Create(admin).Error; err != nil {
		t.Fatalf("create admin failed: %v", err)
	}
	return admin
}

func TestSessionGetByTokenPreloadsAdmin(t *testing.T) {
	repo, db := setupSessionRepositoryTest(t)
	admin := createSessionAdmin(t, db, "token@example.com")

	session := &models.AdminSession{
		AdminID:      admin.ID,
		SessionToken: "tok-preload",
		ExpiresAt:    time.Now().Add(time.Hour),
	}
	if err := repo.Create(session); err != nil {
		t.Fatalf("create session failed: %v", err)
	}

	got, err := repo.GetByToken("tok-preload")
	if err != nil {
		t.Fatalf("get by token failed: %v", err)
	}
	if got == nil {
		t.Fatalf("expected session, got nil")
	}
	if got.Admin.Email != "token@example.com" {
		t.Fatalf("preloaded admin email want token@example.com got %s", got.Admin.Email)
	}

	missing, err := repo.GetByToken("never-issued")
	if err != nil {
		t.Fatalf("get missing token failed: %v", err)
	}
	if missing != nil {
		t.Fatalf("expected nil for unknown token, got %+v", missing)
	}
}

func TestSessionDeleteByTokenIdempotent(t *testing.T) {
	repo, db := setupSessionRepositoryTest(t)
	admin := createSessionAdmin(t, db, "delete@example.com")

	session := &models.AdminSession{
		AdminID:      admin.ID,
		SessionToken: "tok-delete",
		ExpiresAt:    time.Now().Add(time.Hour),
	}
	if err := repo.Create(session); err != nil {
		t.Fatalf("create session failed: %v", err)
	}

	if err := repo.DeleteByToken("tok-delete"); err != nil {
		t.Fatalf("delete token failed: %v", err)
	}
	if err := repo.DeleteByToken("tok-delete"); err != nil {
		t.Fatalf("second delete should be idempotent: %v", err)
	}

	got, err := repo.GetByToken("tok-delete")
	if err != nil {
		t.Fatalf("get deleted token failed: %v", err)
	}
	if got != nil {
		t.Fatalf("expected nil after delete, got %+v", got)
	}
}

func TestSessionDeleteExpiredRespectsLimit(t *testing.T) {
	repo, db := setupSessionRepositoryTest(t)
	admin := createSessionAdmin(t, db, "sweep@example.com")

	now := time.Now()
	for i := 0; i < 3; i++ {
		session := &models.AdminSession{
			AdminID:      admin.ID,
			SessionToken: fmt.Sprintf("tok-expired-%d", i),
			ExpiresAt:    now.Add(-time.Hour),
		}
		if err := repo.Create(session); err != nil {
			t.Fatalf("create expired session failed: %v", err)
		}
	}
	alive := &models.AdminSession{
		AdminID:      admin.ID,
		SessionToken: "tok-alive",
		ExpiresAt:    now.Add(time.Hour),
	}
	if err := repo.Create(alive); err != nil {
		t.Fatalf("create alive session failed: %v", err)
	}

	deleted, err := repo.DeleteExpired(now, 2)
	if err != nil {
		t.Fatalf("first sweep failed: %v", err)
	}
	if deleted != 2 {
		t.Fatalf("first sweep deleted want 2 got %d", deleted)
	}

	deleted, err = repo.DeleteExpired(now, 2)
	if err != nil {
		t.Fatalf("second sweep failed: %v", err)
	}
	if deleted != 1 {
		t.Fatalf("second sweep deleted want 1 got %d", deleted)
	}

	got, err := repo.GetByToken("tok-alive")
	if err != nil {
		t.Fatalf("get alive token failed: %v", err)
	}
	if got == nil {
		t.Fatalf("alive session should survive sweep")
	}
}
