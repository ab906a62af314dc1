package cron

import (
	log "log/slog"

	"github.com/robfig/cron/v3"
)

type Manager struct {
	engine   *cron.Cron
	schedule string
	syncJob  cron.Job
}

func NewCronManager(syncJob cron.Job, schedule string) *Manager {
	return &Manager{
		engine:   cron.New(),
		schedule: schedule,
		syncJob:  syncJob,
	}
}

// RegisterJobs 注册定时任务
func (s *Manager) RegisterJobs() error {
	if _, err := s.engine.AddJob(s.schedule, s.syncJob); err != nil {
		return err
	}
	return nil
}

func (s *Manager) Start() {
	log.Info("Cron 定时任务引擎启动", "schedule", s.schedule)
	s.engine.Start()
}

func (s *Manager) Stop() {
	log.Info("Cron 定时任务引擎停止")
	s.engine.Stop()
}
