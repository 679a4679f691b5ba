package worker

import (
	"context"
	"errors"
	"time"

	"github.com/madiluxe/madiluxe-api/internal/config"
	"github.com/madiluxe/madiluxe-api/internal/logger"
	"github.com/madiluxe/madiluxe-api/internal/queue"

	"github.com/hibiken/asynq"
)

const defaultSessionSweepInterval = time.Hour

// Service 异步队列服务
type Service struct {
	name      string
	server    *asynq.Server
	mux       *asynq.ServeMux
	consumer  *Consumer
	sweepCfg  config.SessionConfig
}

// NewService 创建异步队列服务
func NewService(cfg *config.QueueConfig, consumer *Consumer) (*Service, error) {
	if cfg == nil || !cfg.Enabled {
		return nil, errors.New("queue disabled")
	}
	if consumer == nil {
		return nil, errors.New("consumer is nil")
	}
	opt, serverCfg := queue.BuildServerConfig(cfg)
	server := asynq.NewServer(opt, serverCfg)
	mux := asynq.NewServeMux()
	consumer.Register(mux)
	svc := &Service{
		name:     "worker",
		server:   server,
		mux:      mux,
		consumer: consumer,
	}
	if consumer.Container != nil && consumer.Config != nil {
		svc.sweepCfg = consumer.Config.Session
	}
	return svc, nil
}

// Name 服务名称
func (s *Service) Name() string {
	if s == nil || s.name == "" {
		return "worker"
	}
	return s.name
}

// Start 启动服务
func (s *Service) Start(ctx context.Context) error {
	if s == nil || s.server == nil || s.mux == nil {
		return errors.New("worker not initialized")
	}
	if s.consumer != nil && s.consumer.AuthService != nil {
		go s.runSessionSweepLoop(ctx)
	}
	return s.server.Run(s.mux)
}

// Stop 停止服务
func (s *Service) Stop(ctx context.Context) error {
	if s == nil || s.server == nil {
		return nil
	}
	_ = ctx
	s.server.Shutdown()
	return nil
}

// runSessionSweepLoop 周期清理过期管理员会话
func (s *Service) runSessionSweepLoop(ctx context.Context) {
	if s == nil || s.consumer == nil || s.consumer.AuthService == nil {
		return
	}
	interval := defaultSessionSweepInterval
	if s.sweepCfg.SweepIntervalMin > 0 {
		interval = time.Duration(s.sweepCfg.SweepIntervalMin) * time.Minute
	}
	batchSize := s.sweepCfg.SweepBatchSize

	runOnce := func() {
		deleted, err := s.consumer.AuthService.SweepExpiredSessions(batchSize)
		if err != nil {
			logger.Warnw("worker_session_sweep_failed", "error", err)
			return
		}
		if deleted > 0 {
			logger.Infow("worker_session_sweep_done", "deleted", deleted)
		}
	}
	runOnce()

	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			runOnce()
		}
	}
}
