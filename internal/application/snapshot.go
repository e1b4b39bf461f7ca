package application

import (
	"context"
	"errors"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"

	"lci-gateway/internal/domain"
	"lci-gateway/pkg/lci"
)

var ErrUnsupportedDevice = errors.New("unsupported device type")

type onliner interface {
	Online(ctx context.Context) (lci.OnlineState, error)
}

// ReadSnapshot reads every field of a supported device. A field that fails
// to read is recorded in the snapshot's Errors; only an unsupported type or
// a cancelled context fails the whole read.
func ReadSnapshot(ctx context.Context, client *lci.Client, thing lci.Thing) (domain.DeviceSnapshot, error) {
	snap := domain.NewDeviceSnapshot(thing, time.Now())

	var dev onliner
	switch thing.Type() {
	case lci.DeviceTypeDimmer:
		d, err := lci.NewDimmer(client, thing)
		if err != nil {
			return snap, err
		}
		dev = d
		p, err := d.Brightness(ctx)
		snap.Record(domain.KeyBrightness, p.Value(), err)

	case lci.DeviceTypeSwitch:
		s, err := lci.NewSwitch(client, thing)
		if err != nil {
			return snap, err
		}
		dev = s
		state, err := s.State(ctx)
		snap.Record(domain.KeyState, state.Value(), err)
		fault, err := s.Fault(ctx)
		snap.Record(domain.KeyFault, fault, err)
		current, err := s.RelayCurrent(ctx)
		snap.Record(domain.KeyRelayCurrent, current, err)

	case lci.DeviceTypeTank:
		tk, err := lci.NewTank(client, thing)
		if err != nil {
			return snap, err
		}
		dev = tk
		level, err := tk.Level(ctx)
		snap.Record(domain.KeyLevel, level.Value(), err)

	case lci.DeviceTypeGenerator:
		g, err := lci.NewGenerator(client, thing)
		if err != nil {
			return snap, err
		}
		dev = g
		state, err := g.State(ctx)
		snap.Record(domain.KeyState, state.Value(), err)

	case lci.DeviceTypeHvac:
		h, err := lci.NewHVAC(client, thing)
		if err != nil {
			return snap, err
		}
		dev = h
		readHVAC(ctx, h, &snap)

	default:
		return snap, fmt.Errorf("%w: %s", ErrUnsupportedDevice, thing.Type())
	}

	online, err := dev.Online(ctx)
	if err != nil {
		snap.Errors["online"] = err.Error()
	} else {
		snap.Online = online.Value()
	}

	if err := ctx.Err(); err != nil {
		return snap, err
	}
	return snap, nil
}

func readHVAC(ctx context.Context, h *lci.HVAC, snap *domain.DeviceSnapshot) {
	status, err := h.Status(ctx)
	snap.Record(domain.KeyStatus, status.Value(), err)

	temps := []struct {
		key  string
		read func(context.Context) (float64, error)
	}{
		{domain.KeyOutsideTemperature, h.OutsideTemperature},
		{domain.KeyInsideTemperature, h.InsideTemperature},
		{domain.KeyHighTemperature, h.HighTemperature},
		{domain.KeyLowTemperature, h.LowTemperature},
	}
	for _, temp := range temps {
		v, err := temp.read(ctx)
		snap.Record(temp.key, v, err)
	}

	fan, err := h.FanMode(ctx)
	snap.Record(domain.KeyFanMode, fan.Value(), err)
	mode, err := h.Mode(ctx)
	snap.Record(domain.KeyMode, mode.Value(), err)
}

// ReadSnapshots reads every supported Thing, at most limit at a time.
// Unsupported Things are skipped. Results keep the order of things.
func ReadSnapshots(ctx context.Context, client *lci.Client, things []lci.Thing, limit int) ([]domain.DeviceSnapshot, error) {
	results := make([]*domain.DeviceSnapshot, len(things))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(max(limit, 1))

	for i, thing := range things {
		g.Go(func() error {
			snap, err := ReadSnapshot(gctx, client, thing)
			if errors.Is(err, ErrUnsupportedDevice) {
				return nil
			}
			if err != nil {
				return fmt.Errorf("reading %s: %w", thing.Label, err)
			}
			results[i] = &snap
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	snaps := make([]domain.DeviceSnapshot, 0, len(things))
	for _, s := range results {
		if s != nil {
			snaps = append(snaps, *s)
		}
	}
	return snaps, nil
}
