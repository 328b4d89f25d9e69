package scheduler

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"backoffice/internal/domain/alerts"
)

type stubScanner struct {
	report *alerts.ScanReport
	err    error
	branch string
}

func (s *stubScanner) ScanAndNotify(_ context.Context, branch string) (*alerts.ScanReport, error) {
	s.branch = branch
	return s.report, s.err
}

type gaugeSpy struct {
	branch   string
	low, out int
}

func (g *gaugeSpy) SetAlertItems(branch string, low, out int) {
	g.branch, g.low, g.out = branch, low, out
}

func TestRunOnce_RecordsGauges(t *testing.T) {
	scanner := &stubScanner{report: &alerts.ScanReport{LowStock: 4, OutOfStock: 2}}
	gauges := &gaugeSpy{}
	s := New(Config{Spec: "0 7 * * *", Branch: "main"}, scanner, gauges, nil)

	require.NoError(t, s.RunOnce(context.Background()))
	assert.Equal(t, "main", scanner.branch)
	assert.Equal(t, &gaugeSpy{branch: "main", low: 4, out: 2}, gauges)
}

func TestRunOnce_Error(t *testing.T) {
	s := New(Config{Spec: "0 7 * * *"}, &stubScanner{err: errors.New("db down")}, nil, nil)
	assert.Error(t, s.RunOnce(context.Background()))
}

func TestStart_InvalidSpec(t *testing.T) {
	s := New(Config{Spec: "every morning"}, &stubScanner{}, nil, nil)
	assert.Error(t, s.Start())
}

func TestStartStop(t *testing.T) {
	s := New(Config{Spec: "@every 1h"}, &stubScanner{report: &alerts.ScanReport{}}, nil, nil)
	require.NoError(t, s.Start())
	s.Stop(context.Background())
}
