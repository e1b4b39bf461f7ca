package application

import (
	"context"

	"lci-gateway/internal/domain"
)

type Notifier interface {
	Notify(ctx context.Context, title, message string) error
}

type NoopNotifier struct{}

func (n *NoopNotifier) Notify(_ context.Context, _, _ string) error {
	return nil
}

// Publisher ships each snapshot somewhere other processes can read it.
type Publisher interface {
	Publish(ctx context.Context, snap domain.DeviceSnapshot) error
}

type NoopPublisher struct{}

func (p *NoopPublisher) Publish(_ context.Context, _ domain.DeviceSnapshot) error {
	return nil
}
