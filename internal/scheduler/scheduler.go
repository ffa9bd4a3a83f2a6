// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package scheduler runs periodic maintenance: the nightly audit log
// retention purge.
package scheduler

import (
	"context"
	"log/slog"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/smartwarga/smartwarga-go/internal/service"
)

// Scheduler handles scheduled maintenance tasks.
type Scheduler struct {
	cron           *cron.Cron
	audit          *service.AuditService
	auditRetention time.Duration
	logger         *slog.Logger
}

// New creates a new scheduler instance.
func New(audit *service.AuditService, auditRetention time.Duration, logger *slog.Logger) *Scheduler {
	return &Scheduler{
		cron:           cron.New(),
		audit:          audit,
		auditRetention: auditRetention,
		logger:         logger,
	}
}

// Start registers the jobs and begins the scheduler. The audit purge runs
// every night at 03:00 server time.
func (s *Scheduler) Start() error {
	_, err := s.cron.AddFunc("0 3 * * *", s.purgeAuditLog)
	if err != nil {
		return err
	}

	s.cron.Start()
	s.logger.Info("scheduler started", "jobs", len(s.cron.Entries()))
	return nil
}

// Stop gracefully stops the scheduler, waiting for running jobs.
func (s *Scheduler) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
	s.logger.Info("scheduler stopped")
}

// PurgeAuditLogNow runs the retention purge immediately.
func (s *Scheduler) PurgeAuditLogNow() {
	s.purgeAuditLog()
}

func (s *Scheduler) purgeAuditLog() {
	if s.auditRetention <= 0 {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	purged, err := s.audit.PurgeOlderThan(ctx, s.auditRetention)
	if err != nil {
		s.logger.Error("audit retention purge failed", "error", err)
		return
	}

	if purged > 0 {
		s.logger.Info("audit retention purge completed",
			"purged", purged,
			"retention", s.auditRetention,
		)
	}
}
