package lci

import "context"

// Switch is a relay-controlled load such as a water pump or water heater.
type Switch struct {
	device
}

func NewSwitch(client *Client, thing Thing) (*Switch, error) {
	d, err := newDevice(client, thing, DeviceTypeSwitch)
	if err != nil {
		return nil, err
	}
	return &Switch{device: d}, nil
}

func (s *Switch) State(ctx context.Context) (SwitchState, error) {
	return readField(ctx, &s.device, "switch", ParseSwitchState)
}

// Fault reports whether the relay has flagged a fault.
func (s *Switch) Fault(ctx context.Context) (bool, error) {
	return readField(ctx, &s.device, "fault", func(v string) (bool, error) {
		state, err := ParseSwitchState(v)
		return state == SwitchOn, err
	})
}

// RelayCurrent reads the current drawn through the relay, in amps.
func (s *Switch) RelayCurrent(ctx context.Context) (float64, error) {
	return readField(ctx, &s.device, "current", parseNumber)
}

func (s *Switch) Set(ctx context.Context, state SwitchState) error {
	return writeEnum(ctx, &s.device, "switch", switchStates, state)
}

func (s *Switch) On(ctx context.Context) error { return s.Set(ctx, SwitchOn) }

func (s *Switch) Off(ctx context.Context) error { return s.Set(ctx, SwitchOff) }
