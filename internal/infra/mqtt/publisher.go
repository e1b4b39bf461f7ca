package mqtt

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	pahomqtt "github.com/eclipse/paho.mqtt.golang"
	"github.com/gosimple/slug"

	"lci-gateway/internal/domain"
)

type Config struct {
	Broker      string
	Username    string
	Password    string
	TopicPrefix string
	ClientID    string
}

// Publisher writes device snapshots as retained JSON to
// <prefix>/<label-slug>/state and keeps <prefix>/bridge/state current.
type Publisher struct {
	client pahomqtt.Client
	prefix string
	logger *slog.Logger
}

func NewPublisher(cfg Config, logger *slog.Logger) (*Publisher, error) {
	p := &Publisher{
		prefix: cfg.TopicPrefix,
		logger: logger.With("component", "mqtt"),
	}

	opts := pahomqtt.NewClientOptions().
		AddBroker(cfg.Broker).
		SetClientID(cfg.ClientID).
		SetAutoReconnect(true).
		SetConnectRetry(true).
		SetConnectRetryInterval(5 * time.Second).
		SetWill(BridgeTopic(cfg.TopicPrefix), "offline", 1, true).
		SetOnConnectHandler(func(c pahomqtt.Client) {
			p.logger.Info("MQTT connected", "broker", cfg.Broker)
			c.Publish(BridgeTopic(p.prefix), 1, true, "online")
		}).
		SetConnectionLostHandler(func(_ pahomqtt.Client, err error) {
			p.logger.Warn("MQTT connection lost", "err", err)
		})

	if cfg.Username != "" {
		opts.SetUsername(cfg.Username)
		opts.SetPassword(cfg.Password)
	}

	client := pahomqtt.NewClient(opts)
	token := client.Connect()
	if !token.WaitTimeout(10 * time.Second) {
		return nil, fmt.Errorf("mqtt connect timeout")
	}
	if err := token.Error(); err != nil {
		return nil, fmt.Errorf("mqtt connect: %w", err)
	}

	p.client = client
	return p, nil
}

func (p *Publisher) Publish(ctx context.Context, snap domain.DeviceSnapshot) error {
	payload, err := StatePayload(snap)
	if err != nil {
		return err
	}

	topic := StateTopic(p.prefix, snap.Label)
	token := p.client.Publish(topic, 1, true, payload)

	select {
	case <-token.Done():
		if err := token.Error(); err != nil {
			return fmt.Errorf("publishing %s: %w", topic, err)
		}
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Close marks the bridge offline and disconnects.
func (p *Publisher) Close() {
	token := p.client.Publish(BridgeTopic(p.prefix), 1, true, "offline")
	token.WaitTimeout(2 * time.Second)
	p.client.Disconnect(1000)
	p.logger.Info("MQTT publisher stopped")
}

func BridgeTopic(prefix string) string {
	return prefix + "/bridge/state"
}

func StateTopic(prefix, label string) string {
	name := slug.Make(label)
	if name == "" {
		name = "unnamed"
	}
	return prefix + "/" + name + "/state"
}

type statePayload struct {
	UID    string            `json:"uid"`
	Label  string            `json:"label"`
	Type   string            `json:"type"`
	Online string            `json:"online,omitempty"`
	Values map[string]any    `json:"values"`
	Errors map[string]string `json:"errors,omitempty"`
	ReadAt string            `json:"read_at"`
}

func StatePayload(snap domain.DeviceSnapshot) ([]byte, error) {
	data, err := json.Marshal(statePayload{
		UID:    snap.UID,
		Label:  snap.Label,
		Type:   snap.Type.String(),
		Online: snap.Online,
		Values: snap.Values,
		Errors: snap.Errors,
		ReadAt: snap.ReadAt.UTC().Format(time.RFC3339),
	})
	if err != nil {
		return nil, fmt.Errorf("encoding %s state: %w", snap.Label, err)
	}
	return data, nil
}
