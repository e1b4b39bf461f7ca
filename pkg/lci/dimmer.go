package lci

import "context"

// Dimmer is a dimmable light.
type Dimmer struct {
	device
}

func NewDimmer(client *Client, thing Thing) (*Dimmer, error) {
	d, err := newDevice(client, thing, DeviceTypeDimmer)
	if err != nil {
		return nil, err
	}
	return &Dimmer{device: d}, nil
}

// Brightness reads the current brightness. Zero means off.
func (d *Dimmer) Brightness(ctx context.Context) (Percentage, error) {
	return readField(ctx, &d.device, "dimmer", parsePercentage)
}

// SetBrightness sets the brightness to n percent. Values outside 0-100 are
// rejected without contacting the gateway.
func (d *Dimmer) SetBrightness(ctx context.Context, n int) error {
	return writePercentage(ctx, &d.device, "dimmer", n)
}

// On turns the light on at full brightness.
func (d *Dimmer) On(ctx context.Context) error {
	return d.writeField(ctx, "dimmer", SwitchOn.Value())
}

func (d *Dimmer) Off(ctx context.Context) error {
	return d.writeField(ctx, "dimmer", SwitchOff.Value())
}
