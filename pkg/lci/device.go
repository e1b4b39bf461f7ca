package lci

import (
	"context"
	"strconv"
)

// device is the part every wrapper shares: it owns a Thing of a known type
// and reads and writes that Thing's fields through the client.
type device struct {
	client *Client
	thing  Thing
	kind   DeviceType
}

func newDevice(client *Client, thing Thing, want DeviceType) (device, error) {
	if got := thing.Type(); got != want {
		return device{}, &DeviceTypeError{Expected: want, Actual: got}
	}
	return device{client: client, thing: thing, kind: want}, nil
}

// Label is the device's display name.
func (d *device) Label() string { return d.thing.Label }

func (d *device) UID() string { return d.thing.UID }

func (d *device) Type() DeviceType { return d.kind }

// Thing returns a copy of the Thing backing the device.
func (d *device) Thing() Thing { return d.thing.Clone() }

// Online reads whether the gateway can currently reach the device.
func (d *device) Online(ctx context.Context) (OnlineState, error) {
	return readField(ctx, d, "online", ParseOnlineState)
}

func (d *device) wrap(op string, err error) error {
	return &DeviceError{Device: d.kind, Label: d.thing.Label, Op: op, Err: err}
}

// readField reads field and decodes it. Transport and decode failures are
// both wrapped in a DeviceError naming the field.
func readField[T any](ctx context.Context, d *device, field string, decode func(string) (T, error)) (T, error) {
	var zero T
	raw, err := d.client.getField(ctx, &d.thing, field)
	if err != nil {
		return zero, d.wrap("read "+field, err)
	}
	v, err := decode(raw)
	if err != nil {
		return zero, d.wrap("read "+field, err)
	}
	return v, nil
}

func (d *device) writeField(ctx context.Context, field, value string) error {
	if err := d.client.setField(ctx, &d.thing, field, value); err != nil {
		return d.wrap("write "+field, err)
	}
	return nil
}

// writeEnum writes the wire form of value, refusing values outside the
// vocabulary without contacting the gateway.
func writeEnum[T enum](ctx context.Context, d *device, field string, vocab vocabulary[T], value T) error {
	wire, err := vocab.wire(value)
	if err != nil {
		return d.wrap("write "+field, err)
	}
	return d.writeField(ctx, field, wire)
}

func writePercentage(ctx context.Context, d *device, field string, n int) error {
	if _, err := NewPercentage(n); err != nil {
		return d.wrap("write "+field, err)
	}
	return d.writeField(ctx, field, strconv.Itoa(n))
}
