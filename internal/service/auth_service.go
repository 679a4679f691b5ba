package service

import (
	"crypto/rand"
	"encoding/hex"
	"strings"
	"time"

	"github.com/madiluxe/madiluxe-api/internal/config"
	"github.com/madiluxe/madiluxe-api/internal/logger"
	"github.com/madiluxe/madiluxe-api/internal/models"
	"github.com/madiluxe/madiluxe-api/internal/repository"

	"golang.org/x/crypto/bcrypt"
)

const sessionTokenBytes = 32

// AuthService 认证服务
// 登录签发数据库会话行，校验时按令牌回查，登出无条件删除。
type AuthService struct {
	cfg         *config.Config
	adminRepo   repository.AdminRepository
	sessionRepo repository.SessionRepository
}

// NewAuthService 创建认证服务实例
func NewAuthService(cfg *config.Config, adminRepo repository.AdminRepository, sessionRepo repository.SessionRepository) *AuthService {
	return &AuthService{
		cfg:         cfg,
		adminRepo:   adminRepo,
		sessionRepo: sessionRepo,
	}
}

// HashPassword 使用 bcrypt 加密密码
func (s *AuthService) HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// VerifyPassword 验证密码
func (s *AuthService) VerifyPassword(hashedPassword, password string) error {
	return bcrypt.CompareHashAndPassword([]byte(hashedPassword), []byte(password))
}

// Login 管理员登录
// 邮箱未注册、密码不符、账号停用一律返回 ErrInvalidCredentials，不区分原因。
func (s *AuthService) Login(email, password string) (*models.Admin, string, time.Time, error) {
	normalized := strings.ToLower(strings.TrimSpace(email))
	if normalized == "" || password == "" {
		return nil, "", time.Time{}, ErrInvalidCredentials
	}

	admin, err := s.adminRepo.GetByEmail(normalized)
	if err != nil {
		return nil, "", time.Time{}, err
	}
	if admin == nil || !admin.IsActive {
		return nil, "", time.Time{}, ErrInvalidCredentials
	}

	if err := s.VerifyPassword(admin.PasswordHash, password); err != nil {
		return nil, "", time.Time{}, ErrInvalidCredentials
	}

	token, err := newSessionToken()
	if err != nil {
		return nil, "", time.Time{}, err
	}

	expireHours := 24
	if s.cfg != nil && s.cfg.Session.ExpireHours > 0 {
		expireHours = s.cfg.Session.ExpireHours
	}
	expiresAt := time.Now().Add(time.Duration(expireHours) * time.Hour)

	session := models.AdminSession{
		AdminID:      admin.ID,
		SessionToken: token,
		ExpiresAt:    expiresAt,
	}
	if err := s.sessionRepo.Create(&session); err != nil {
		return nil, "", time.Time{}, err
	}

	now := time.Now()
	if err := s.adminRepo.UpdateLastLogin(admin.ID, now); err != nil {
		logger.Warnw("update_last_login_failed", "admin_id", admin.ID, "error", err)
	}
	admin.LastLoginAt = &now

	return admin, token, expiresAt, nil
}

// Verify 校验会话令牌
// 令牌为空、不存在、已过期、管理员停用均返回 ErrInvalidSession。
func (s *AuthService) Verify(token string) (*models.Admin, error) {
	trimmed := strings.TrimSpace(token)
	if trimmed == "" {
		return nil, ErrInvalidSession
	}

	session, err := s.sessionRepo.GetByToken(trimmed)
	if err != nil {
		return nil, err
	}
	if session == nil {
		return nil, ErrInvalidSession
	}
	if session.Expired(time.Now()) {
		return nil, ErrInvalidSession
	}
	if session.Admin.ID == "" || !session.Admin.IsActive {
		return nil, ErrInvalidSession
	}

	admin := session.Admin
	return &admin, nil
}

// Logout 登出（幂等）
// 令牌是否有效不影响结果，已删除或不存在的会话同样返回成功。
func (s *AuthService) Logout(token string) error {
	trimmed := strings.TrimSpace(token)
	if trimmed == "" {
		return nil
	}
	return s.sessionRepo.DeleteByToken(trimmed)
}

// SweepExpiredSessions 清理过期会话，返回删除行数
func (s *AuthService) SweepExpiredSessions(batchSize int) (int64, error) {
	return s.sessionRepo.DeleteExpired(time.Now(), batchSize)
}

// newSessionToken 生成 64 位十六进制随机令牌
func newSessionToken() (string, error) {
	buf := make([]byte, sessionTokenBytes)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return hex.EncodeToString(buf), nil
}
