// Package scheduler runs the daily warranty sweep: every warranty's
// stored status label is refreshed from its dates so list endpoints and
// notifications read a current band without recomputing it per row.
package scheduler

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"github.com/propdesk/propdesk/internal/core/stats"
	"github.com/propdesk/propdesk/internal/core/warranty"
)

type WarrantyStore interface {
	ListEverything(ctx context.Context) ([]*warranty.Warranty, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status string) error
}

type Scheduler struct {
	cron      *cron.Cron
	store     WarrantyStore
	log       *zap.Logger
	isRunning bool

	// Now is swapped for a fixed clock in tests.
	Now func() time.Time
}

func NewScheduler(store WarrantyStore, log *zap.Logger) *Scheduler {
	return &Scheduler{
		cron:  cron.New(),
		store: store,
		log:   log,
		Now:   time.Now,
	}
}

// Start registers the sweep at the given HH:MM and starts the cron loop.
func (s *Scheduler) Start(runTime string) error {
	if s.isRunning {
		return nil
	}

	spec, err := parseDailyRunTime(runTime)
	if err != nil {
		return err
	}

	_, err = s.cron.AddFunc(spec, func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
		defer cancel()
		if err := s.SweepWarranties(ctx); err != nil {
			s.log.Error("warranty sweep failed", zap.Error(err))
		}
	})
	if err != nil {
		return err
	}

	s.cron.Start()
	s.isRunning = true
	s.log.Info("scheduler started", zap.String("run_time", runTime), zap.String("cron", spec))
	return nil
}

func (s *Scheduler) Stop() {
	if s.isRunning {
		s.cron.Stop()
		s.isRunning = false
		s.log.Info("scheduler stopped")
	}
}

// SweepWarranties refreshes the stored status label of every warranty
// whose derived band has moved. Rows with inconsistent dates are logged
// and skipped; one bad row never aborts the sweep.
func (s *Scheduler) SweepWarranties(ctx context.Context) error {
	now := s.Now()

	warranties, err := s.store.ListEverything(ctx)
	if err != nil {
		return err
	}

	updated := 0
	skipped := 0
	for _, w := range warranties {
		band, err := stats.WarrantyExpiry(w, now)
		if err != nil {
			skipped++
			s.log.Warn("skipping warranty with inconsistent dates",
				zap.String("warranty_id", w.ID.String()),
				zap.Error(err))
			continue
		}
		if w.Status == string(band) {
			continue
		}
		if err := s.store.UpdateStatus(ctx, w.ID, string(band)); err != nil {
			s.log.Error("failed to update warranty status",
				zap.String("warranty_id", w.ID.String()),
				zap.Error(err))
			continue
		}
		updated++
	}

	s.log.Info("warranty sweep complete",
		zap.Int("total", len(warranties)),
		zap.Int("updated", updated),
		zap.Int("skipped", skipped))
	return nil
}

// parseDailyRunTime turns "HH:MM" into a daily cron spec.
func parseDailyRunTime(runTime string) (string, error) {
	parts := strings.Split(runTime, ":")
	if len(parts) != 2 {
		return "", fmt.Errorf("invalid run time %q, expected HH:MM", runTime)
	}
	hour, err := strconv.Atoi(parts[0])
	if err != nil || hour < 0 || hour > 23 {
		return "", fmt.Errorf("invalid hour in run time %q", runTime)
	}
	minute, err := strconv.Atoi(parts[1])
	if err != nil || minute < 0 || minute > 59 {
		return "", fmt.Errorf("invalid minute in run time %q", runTime)
	}
	return fmt.Sprintf("%d %d * * *", minute, hour), nil
}
