package application

import (
	"context"

	"lci-gateway/pkg/lci"
)

type ThingRegistry interface {
	Sync(ctx context.Context) error
	Things() []lci.Thing
}
