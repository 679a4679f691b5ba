package repository

import (
	"errors"
	"time"

	"github.com/madiluxe/madiluxe-api/internal/models"

	"gorm.io/gorm"
)

// SessionRepository 管理员会话数据访问接口
type SessionRepository interface {
	Create(session *models.AdminSession) error
	GetByToken(token string) (*models.AdminSession, error)
	DeleteByToken(token string) error
	DeleteExpired(before time.Time, limit int) (int64, error)
}

// GormSessionRepository GORM 实现
type GormSessionRepository struct {
	db *gorm.DB
}

// NewSessionRepository 创建会话仓库
func NewSessionRepository(db *gorm.DB) *GormSessionRepository {
	return &GormSessionRepository{db: db}
}

// Create 创建会话
func (r *GormSessionRepository) Create(session *models.AdminSession) error {
	return r.db.Create(session).Error
}

// GetByToken 根据令牌获取会话（带管理员信息）
func (r *GormSessionRepository) GetByToken(token string) (*models.AdminSession, error) {
	var session models.AdminSession
	if err := r.db.Preload("Admin").Where("session_token = ?", token).First(&session).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &session, nil
}

// DeleteByToken 删除指定令牌的会话（幂等）
func (r *GormSessionRepository) DeleteByToken(token string) error {
	return r.db.Where("session_token = ?", token).Delete(&models.AdminSession{}).Error
}

// DeleteExpired 批量清理已过期会话，返回删除行数
func (r *GormSessionRepository) DeleteExpired(before time.Time, limit int) (int64, error) {
	if limit <= 0 {
		limit = 500
	}
	var ids []uint
	if err := r.db.Model(&models.AdminSession{}).
		Where("expires_at <= ?", before).
		Order("id ASC").
		Limit(limit).
		Pluck("id", &ids).Error; err != nil {
		return 0, err
	}
	if len(ids) == 0 {
		return 0, nil
	}
	result := r.db.Where("id IN ?", ids).Delete(&models.AdminSession{})
	return result.RowsAffected, result.Error
}
