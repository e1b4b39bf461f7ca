package lci

import "context"

// Tank is a holding tank level sensor (fresh, grey, black or fuel).
type Tank struct {
	device
}

func NewTank(client *Client, thing Thing) (*Tank, error) {
	d, err := newDevice(client, thing, DeviceTypeTank)
	if err != nil {
		return nil, err
	}
	return &Tank{device: d}, nil
}

// Level reads how full the tank is.
func (t *Tank) Level(ctx context.Context) (Percentage, error) {
	return readField(ctx, &t.device, "tank_level", parsePercentage)
}
