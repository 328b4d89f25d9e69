// Package scheduler runs the periodic low-stock scan.
package scheduler

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"

	"backoffice/internal/domain/alerts"
	"backoffice/pkg/logger"
)

// Scanner notifies suppliers of low and out-of-stock items.
type Scanner interface {
	ScanAndNotify(ctx context.Context, branch string) (*alerts.ScanReport, error)
}

// Gauges receives scan totals (metrics).
type Gauges interface {
	SetAlertItems(branch string, low, out int)
}

// Config controls when and where the scan runs.
type Config struct {
	// Spec is a five-field cron expression.
	Spec       string
	Branch     string
	JobTimeout time.Duration
}

// Scheduler manages scheduled tasks.
type Scheduler struct {
	cron    *cron.Cron
	scanner Scanner
	gauges  Gauges
	cfg     Config
	log     *logger.Logger
}

// New creates a scheduler. gauges may be nil.
func New(cfg Config, scanner Scanner, gauges Gauges, log *logger.Logger) *Scheduler {
	if log == nil {
		log = logger.NewNop()
	}
	if cfg.JobTimeout <= 0 {
		cfg.JobTimeout = 2 * time.Minute
	}
	return &Scheduler{
		cron:    cron.New(),
		scanner: scanner,
		gauges:  gauges,
		cfg:     cfg,
		log:     log.WithComponent("scheduler"),
	}
}

// Start registers the scan and starts the cron loop.
func (s *Scheduler) Start() error {
	if _, err := s.cron.AddFunc(s.cfg.Spec, s.scan); err != nil {
		return fmt.Errorf("schedule low-stock scan %q: %w", s.cfg.Spec, err)
	}
	s.log.Infow("starting scheduler", "spec", s.cfg.Spec, "branch", s.cfg.Branch)
	s.cron.Start()
	return nil
}

// Stop stops the cron loop and waits for a running scan to finish or ctx to end.
func (s *Scheduler) Stop(ctx context.Context) {
	s.log.Info("stopping scheduler")
	select {
	case <-s.cron.Stop().Done():
	case <-ctx.Done():
		s.log.Warn("scheduler stop timed out with a scan still running")
	}
}

func (s *Scheduler) scan() {
	ctx, cancel := context.WithTimeout(context.Background(), s.cfg.JobTimeout)
	defer cancel()
	ctx = logger.WithLogger(ctx, s.log)

	started := time.Now()
	if err := s.RunOnce(ctx); err != nil {
		s.log.Errorw("low-stock scan failed", "error", err, "elapsed", time.Since(started))
	}
}

// RunOnce performs a single scan.
func (s *Scheduler) RunOnce(ctx context.Context) error {
	report, err := s.scanner.ScanAndNotify(ctx, s.cfg.Branch)
	if err != nil {
		return err
	}
	if s.gauges != nil {
		s.gauges.SetAlertItems(s.cfg.Branch, report.LowStock, report.OutOfStock)
	}
	return nil
}
