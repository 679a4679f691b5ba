package admin

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/madiluxe/madiluxe-api/internal/authz"
	"github.com/madiluxe/madiluxe-api/internal/config"
	"github.com/madiluxe/madiluxe-api/internal/models"
	"github.com/madiluxe/madiluxe-api/internal/provider"
	"github.com/madiluxe/madiluxe-api/internal/repository"
	"github.com/madiluxe/madiluxe-api/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/glebarez/sqlite"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type envelope struct {
	StatusCode int             `json:"status_code"`
	Msg        string          `json:"msg"`
	Data       json.RawMessage `json:"data"`
}

func setupAdminHandlerTest(t *testing.T) (*gin.Engine, *gorm.DB) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	if err := db.AutoMigrate(
		&models.Admin{},
		&models.AdminSession{},
		&models.Category{},
		&models.Product{},
		&models.Customer{},
		&models.Order{},
		&models.Integration{},
		&models.SEOSetting{},
	); err != nil {
		t.Fatalf("migrate models failed: %v", err)
	}
	authzService, err := authz.NewService(db)
	if err != nil {
		t.Fatalf("new authz service failed: %v", err)
	}
	if err := authzService.EnsureBuiltinPolicies(); err != nil {
		t.Fatalf("ensure builtin policies failed: %v", err)
	}

	cfg := &config.Config{}
	cfg.Session.ExpireHours = 1
	container := &provider.Container{
		Config:         cfg,
		AuthzService:   authzService,
		AuthService:    service.NewAuthService(cfg, repository.NewAdminRepository(db), repository.NewSessionRepository(db)),
		GatewayService: service.NewGatewayService(repository.NewGatewayRepository(db), authzService),
	}
	h := New(container)

	r := gin.New()
	r.POST("/api/v1/admin/login", h.Login)
	r.POST("/api/v1/admin/verify", h.Verify)
	r.POST("/api/v1/admin/logout", h.Logout)
	r.POST("/api/v1/admin/query", h.Query)
	return r, db
}

func seedHandlerAdmin(t *testing.T, db *gorm.DB, email, password, role string) *models.Admin {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("hash password failed: %v", err)
	}
	admin := &models.Admin{
		Email:        email,
		Name:         "Handler Admin",
		Role:         role,
		PasswordHash: string(hash),
		IsActive:     true,
	}
	if err := db.Create(admin).Error; err != nil {
		t.Fatalf("create admin failed: %v", err)
	}
	return admin
}

func postJSON(t *testing.T, r *gin.Engine, path, body string) envelope {
	t.Helper()
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("%s http status want 200 got %d: %s", path, w.Code, w.Body.String())
	}
	var resp envelope
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("%s unmarshal response failed: %v", path, err)
	}
	return resp
}

func loginToken(t *testing.T, r *gin.Engine, email, password string) string {
	t.Helper()
	resp := postJSON(t, r, "/api/v1/admin/login", fmt.Sprintf(`{"email":%q,"password":%q}`, email, password))
	if resp.StatusCode != 0 {
		t.Fatalf("login status_code want 0 got %d (%s)", resp.StatusCode, resp.Msg)
	}
	var data struct {
		SessionToken string `json:"session_token"`
	}
	if err := json.Unmarshal(resp.Data, &data); err != nil {
		t.Fatalf("unmarshal login data failed: %v", err)
	}
	if len(data.SessionToken) != 64 {
		t.Fatalf("session token length want 64 got %d", len(data.SessionToken))
	}
	return data.SessionToken
}

func TestLoginVerifyLogoutFlow(t *testing.T) {
	r, db := setupAdminHandlerTest(t)
	seedHandlerAdmin(t, db, "owner@madiluxe.com", "secret123", "admin")

	token := loginToken(t, r, "owner@madiluxe.com", "secret123")

	resp := postJSON(t, r, "/api/v1/admin/verify", fmt.Sprintf(`{"session_token":%q}`, token))
	if resp.StatusCode != 0 {
		t.Fatalf("verify status_code want 0 got %d", resp.StatusCode)
	}
	var verifyData struct {
		Admin struct {
			Email string `json:"email"`
			Role  string `json:"role"`
		} `json:"admin"`
	}
	if err := json.Unmarshal(resp.Data, &verifyData); err != nil {
		t.Fatalf("unmarshal verify data failed: %v", err)
	}
	if verifyData.Admin.Email != "owner@madiluxe.com" || verifyData.Admin.Role != "admin" {
		t.Fatalf("verify admin payload unexpected: %+v", verifyData.Admin)
	}

	resp = postJSON(t, r, "/api/v1/admin/logout", fmt.Sprintf(`{"session_token":%q}`, token))
	if resp.StatusCode != 0 {
		t.Fatalf("logout status_code want 0 got %d", resp.StatusCode)
	}

	resp = postJSON(t, r, "/api/v1/admin/verify", fmt.Sprintf(`{"session_token":%q}`, token))
	if resp.StatusCode != 401 {
		t.Fatalf("verify after logout status_code want 401 got %d", resp.StatusCode)
	}

	// 重复登出与坏请求体都返回成功
	resp = postJSON(t, r, "/api/v1/admin/logout", fmt.Sprintf(`{"session_token":%q}`, token))
	if resp.StatusCode != 0 {
		t.Fatalf("repeat logout status_code want 0 got %d", resp.StatusCode)
	}
	resp = postJSON(t, r, "/api/v1/admin/logout", "not-json")
	if resp.StatusCode != 0 {
		t.Fatalf("malformed logout status_code want 0 got %d", resp.StatusCode)
	}
}

func TestLoginRejectsMissingAndWrongCredentials(t *testing.T) {
	r, db := setupAdminHandlerTest(t)
	seedHandlerAdmin(t, db, "owner@madiluxe.com", "secret123", "admin")

	resp := postJSON(t, r, "/api/v1/admin/login", `{"email":"owner@madiluxe.com"}`)
	if resp.StatusCode != 400 {
		t.Fatalf("missing password status_code want 400 got %d", resp.StatusCode)
	}

	resp = postJSON(t, r, "/api/v1/admin/login", `{"email":"owner@madiluxe.com","password":"wrong"}`)
	if resp.StatusCode != 401 {
		t.Fatalf("wrong password status_code want 401 got %d", resp.StatusCode)
	}
	if resp.Msg != "invalid credentials" {
		t.Fatalf("wrong password msg want invalid credentials got %s", resp.Msg)
	}
}

func TestQueryRoundTrip(t *testing.T) {
	r, db := setupAdminHandlerTest(t)
	seedHandlerAdmin(t, db, "owner@madiluxe.com", "secret123", "admin")
	token := loginToken(t, r, "owner@madiluxe.com", "secret123")

	resp := postJSON(t, r, "/api/v1/admin/query", fmt.Sprintf(
		`{"session_token":%q,"query":"categories","action":"insert","data":{"slug":"sofas","name":"Sofas","is_active":true}}`,
		token,
	))
	if resp.StatusCode != 0 {
		t.Fatalf("insert status_code want 0 got %d (%s)", resp.StatusCode, resp.Msg)
	}

	resp = postJSON(t, r, "/api/v1/admin/query", fmt.Sprintf(
		`{"session_token":%q,"query":"categories","action":"select","filters":{"slug":"sofas"}}`,
		token,
	))
	if resp.StatusCode != 0 {
		t.Fatalf("select status_code want 0 got %d (%s)", resp.StatusCode, resp.Msg)
	}
	var rows []models.Category
	if err := json.Unmarshal(resp.Data, &rows); err != nil {
		t.Fatalf("unmarshal select data failed: %v", err)
	}
	if len(rows) != 1 || rows[0].Name != "Sofas" {
		t.Fatalf("select want one Sofas row got %+v", rows)
	}
}

func TestQueryRejectsInvalidSessionAndRole(t *testing.T) {
	r, db := setupAdminHandlerTest(t)
	seedHandlerAdmin(t, db, "sales@madiluxe.com", "secret123", "sales")

	resp := postJSON(t, r, "/api/v1/admin/query", `{"session_token":"never-issued","query":"categories","action":"select"}`)
	if resp.StatusCode != 401 {
		t.Fatalf("invalid session status_code want 401 got %d", resp.StatusCode)
	}

	token := loginToken(t, r, "sales@madiluxe.com", "secret123")
	resp = postJSON(t, r, "/api/v1/admin/query", fmt.Sprintf(
		`{"session_token":%q,"query":"categories","action":"insert","data":{"slug":"x","name":"X"}}`,
		token,
	))
	if resp.StatusCode != 403 {
		t.Fatalf("sales write categories status_code want 403 got %d", resp.StatusCode)
	}

	resp = postJSON(t, r, "/api/v1/admin/query", fmt.Sprintf(
		`{"session_token":%q,"query":"wallets","action":"select"}`,
		token,
	))
	if resp.StatusCode != 400 {
		t.Fatalf("unknown resource status_code want 400 got %d", resp.StatusCode)
	}
}
