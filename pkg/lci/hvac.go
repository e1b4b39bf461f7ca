package lci

import (
	"context"
	"strconv"
)

const (
	fieldHvacStatus         = "status"
	fieldOutsideTemperature = "outside_temperature"
	fieldInsideTemperature  = "inside_temperature"
	fieldHighTemperature    = "high_temperature"
	fieldLowTemperature     = "low_temperature"
	fieldHvacFanMode        = "fan_mode"
	fieldHvacMode           = "hvac_mode"
)

// HVAC is a climate zone: air conditioner, heat pump and furnace controlled
// by one thermostat. Temperatures are in the gateway's configured unit.
type HVAC struct {
	device
}

func NewHVAC(client *Client, thing Thing) (*HVAC, error) {
	d, err := newDevice(client, thing, DeviceTypeHvac)
	if err != nil {
		return nil, err
	}
	return &HVAC{device: d}, nil
}

func (h *HVAC) Status(ctx context.Context) (HvacStatus, error) {
	return readField(ctx, &h.device, fieldHvacStatus, ParseHvacStatus)
}

func (h *HVAC) OutsideTemperature(ctx context.Context) (float64, error) {
	return readField(ctx, &h.device, fieldOutsideTemperature, parseNumber)
}

func (h *HVAC) InsideTemperature(ctx context.Context) (float64, error) {
	return readField(ctx, &h.device, fieldInsideTemperature, parseNumber)
}

// HighTemperature is the cooling set point.
func (h *HVAC) HighTemperature(ctx context.Context) (float64, error) {
	return readField(ctx, &h.device, fieldHighTemperature, parseNumber)
}

// LowTemperature is the heating set point.
func (h *HVAC) LowTemperature(ctx context.Context) (float64, error) {
	return readField(ctx, &h.device, fieldLowTemperature, parseNumber)
}

func (h *HVAC) FanMode(ctx context.Context) (HvacFanMode, error) {
	return readField(ctx, &h.device, fieldHvacFanMode, ParseHvacFanMode)
}

func (h *HVAC) Mode(ctx context.Context) (HvacMode, error) {
	return readField(ctx, &h.device, fieldHvacMode, ParseHvacMode)
}

func (h *HVAC) SetHighTemperature(ctx context.Context, temp int) error {
	return h.writeField(ctx, fieldHighTemperature, strconv.Itoa(temp))
}

func (h *HVAC) SetLowTemperature(ctx context.Context, temp int) error {
	return h.writeField(ctx, fieldLowTemperature, strconv.Itoa(temp))
}

func (h *HVAC) SetFanMode(ctx context.Context, mode HvacFanMode) error {
	return writeEnum(ctx, &h.device, fieldHvacFanMode, hvacFanModes, mode)
}

func (h *HVAC) SetMode(ctx context.Context, mode HvacMode) error {
	return writeEnum(ctx, &h.device, fieldHvacMode, hvacModes, mode)
}
