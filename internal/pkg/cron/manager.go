package cron

import (
	"Neuron/internal/job"
	log "log/slog"

	"github.com/robfig/cron/v3"
)

type Manager struct {
	engine            *cron.Cron
	dailyMetricJob    *job.DailyMetricJob
	authorBehaviorJob *job.AuthorBehaviorJob
	intelligence7d    *job.IntelligenceJob
	intelligence30d   *job.IntelligenceJob
	intelligence90d   *job.IntelligenceJob
}

func NewCronManager(
	dailyMetricJob *job.DailyMetricJob,
	authorBehaviorJob *job.AuthorBehaviorJob,
	intelligence7d *job.IntelligenceJob,
	intelligence30d *job.IntelligenceJob,
	intelligence90d *job.IntelligenceJob,
) *Manager {
	return &Manager{
		engine:            cron.New(cron.WithSeconds()),
		dailyMetricJob:    dailyMetricJob,
		authorBehaviorJob: authorBehaviorJob,
		intelligence7d:    intelligence7d,
		intelligence30d:   intelligence30d,
		intelligence90d:   intelligence90d,
	}
}

// RegisterJobs 注册定时任务。日层与作者层每天凌晨跑，
// 情报层按窗口长短错峰：7 天每天、30 天每周、90 天每月
func (s *Manager) RegisterJobs() error {
	if _, err := s.engine.AddJob("0 30 0 * * *", s.dailyMetricJob); err != nil {
		return err
	}
	if _, err := s.engine.AddJob("0 45 0 * * *", s.authorBehaviorJob); err != nil {
		return err
	}
	if _, err := s.engine.AddJob("0 0 3 * * *", s.intelligence7d); err != nil {
		return err
	}
	if _, err := s.engine.AddJob("0 0 4 * * 1", s.intelligence30d); err != nil {
		return err
	}
	if _, err := s.engine.AddJob("0 0 5 1 * *", s.intelligence90d); err != nil {
		return err
	}
	return nil
}

func (s *Manager) Start() {
	log.Info("Cron 定时任务引擎启动")
	s.engine.Start()
}

func (s *Manager) Stop() {
	log.Info("Cron 定时任务引擎停止")
	s.engine.Stop()
}
