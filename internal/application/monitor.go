package application

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"lci-gateway/internal/domain"
	"lci-gateway/pkg/lci"
)

type MonitorConfig struct {
	Interval    time.Duration
	Concurrency int
	Alerts      domain.AlertConfig
}

// Monitor polls every supported device on a fixed interval, publishes what it
// read and notifies on alert transitions.
type Monitor struct {
	client    *lci.Client
	registry  ThingRegistry
	publisher Publisher
	notifier  Notifier
	cfg       MonitorConfig
	logger    *slog.Logger

	last map[string]domain.DeviceSnapshot
}

func NewMonitor(
	client *lci.Client,
	registry ThingRegistry,
	publisher Publisher,
	notifier Notifier,
	cfg MonitorConfig,
	logger *slog.Logger,
) *Monitor {
	return &Monitor{
		client:    client,
		registry:  registry,
		publisher: publisher,
		notifier:  notifier,
		cfg:       cfg,
		logger:    logger,
	}
}

// Run discovers Things, then polls until ctx is cancelled. It always returns
// a non-nil error; ctx.Err() on a clean shutdown.
func (m *Monitor) Run(ctx context.Context) error {
	if err := m.registry.Sync(ctx); err != nil {
		return fmt.Errorf("initial discovery: %w", err)
	}

	m.logger.Info("monitor ready", "interval", m.cfg.Interval, "things", len(m.registry.Things()))

	ticker := time.NewTicker(m.cfg.Interval)
	defer ticker.Stop()

	for {
		if err := m.Poll(ctx); err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			m.logger.Error("polling devices", "error", err)
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
		}
	}
}

// Poll reads every known device once, publishes the snapshots and sends
// alerts for changes since the previous Poll.
func (m *Monitor) Poll(ctx context.Context) error {
	snaps, err := ReadSnapshots(ctx, m.client, m.registry.Things(), m.cfg.Concurrency)
	if err != nil {
		return fmt.Errorf("reading snapshots: %w", err)
	}

	cur := make(map[string]domain.DeviceSnapshot, len(snaps))
	for _, snap := range snaps {
		cur[snap.UID] = snap

		if len(snap.Errors) > 0 {
			m.logger.Warn("partial read", "device", snap.Label, "errors", snap.Errors)
		}
		if err := m.publisher.Publish(ctx, snap); err != nil {
			m.logger.Error("publishing snapshot", "device", snap.Label, "error", err)
		}
	}

	for _, alert := range domain.DetectAlerts(m.last, cur, m.cfg.Alerts) {
		m.logger.Warn("alert", "kind", alert.Kind, "device", alert.Label, "message", alert.Message)
		if err := m.notifier.Notify(ctx, alert.Label, alert.Message); err != nil {
			m.logger.Error("notifying alert", "error", err)
		}
	}

	m.last = cur
	m.logger.Debug("poll complete", "devices", len(snaps))
	return nil
}
