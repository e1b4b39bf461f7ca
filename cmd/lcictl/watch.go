package main

import (
	"fmt"

	"github.com/urfave/cli/v2"

	"lci-gateway/internal/application"
	"lci-gateway/internal/domain"
	"lci-gateway/internal/infra"
	"lci-gateway/internal/infra/gateway"
	"lci-gateway/internal/infra/mqtt"
	"lci-gateway/internal/infra/pushover"
)

func watchCommand(e *env) *cli.Command {
	return &cli.Command{
		Name:  "watch",
		Usage: "poll every device, publish to MQTT and push alerts",
		Flags: []cli.Flag{
			&cli.DurationFlag{Name: "interval", Usage: "poll interval (default from config)"},
		},
		Action: func(c *cli.Context) error {
			ctx := c.Context
			cfg := e.cfg
			logger := e.logger

			interval := cfg.WatchInterval()
			if c.IsSet("interval") {
				interval = c.Duration("interval")
			}
			if interval <= 0 {
				return fmt.Errorf("interval must be positive, got %s", interval)
			}

			registry := gateway.NewRegistry(e.client, infra.DefaultRetryConfig(), logger.With("component", "registry"))
			// New devices paired while watching show up on the next rediscovery.
			registry.StartPeriodicSync(ctx, 10*interval)

			var publisher application.Publisher = &application.NoopPublisher{}
			if cfg.MQTT.Enabled {
				p, err := mqtt.NewPublisher(mqtt.Config{
					Broker:      cfg.MQTT.Broker,
					Username:    cfg.MQTT.Username,
					Password:    cfg.MQTT.Password,
					TopicPrefix: cfg.MQTT.TopicPrefix,
					ClientID:    cfg.MQTT.ClientID,
				}, logger)
				if err != nil {
					return err
				}
				defer p.Close()
				publisher = p
			}

			var notifier application.Notifier = &application.NoopNotifier{}
			if cfg.Pushover.Enabled {
				notifier = pushover.NewClient(cfg.Pushover.Token, cfg.Pushover.UserKey)
			}

			monitor := application.NewMonitor(e.client, registry, publisher, notifier, application.MonitorConfig{
				Interval:    interval,
				Concurrency: cfg.Watch.Concurrency,
				Alerts:      domain.AlertConfig{TankLow: cfg.Watch.TankLow},
			}, logger.With("component", "monitor"))

			logger.Info("starting lci monitor",
				"gateway", cfg.Gateway.URL,
				"interval", interval,
				"mqtt", cfg.MQTT.Enabled,
				"pushover", cfg.Pushover.Enabled,
			)

			return monitor.Run(ctx)
		},
	}
}
