package domain

import (
	"time"

	"lci-gateway/pkg/lci"
)

// Snapshot value keys. Enum values are stored in their wire form.
const (
	KeyBrightness         = "brightness"
	KeyLevel              = "level"
	KeyState              = "state"
	KeyFault              = "fault"
	KeyRelayCurrent       = "relay_current"
	KeyStatus             = "status"
	KeyOutsideTemperature = "outside_temperature"
	KeyInsideTemperature  = "inside_temperature"
	KeyHighTemperature    = "high_temperature"
	KeyLowTemperature     = "low_temperature"
	KeyFanMode            = "fan_mode"
	KeyMode               = "mode"
)

// DeviceSnapshot is everything read from one device in a single poll.
// A field that could not be read is absent from Values and present in Errors.
type DeviceSnapshot struct {
	UID    string            `json:"uid"`
	Label  string            `json:"label"`
	Type   lci.DeviceType    `json:"-"`
	Online string            `json:"online,omitempty"`
	Values map[string]any    `json:"values"`
	Errors map[string]string `json:"errors,omitempty"`
	ReadAt time.Time         `json:"read_at"`
}

func NewDeviceSnapshot(thing lci.Thing, readAt time.Time) DeviceSnapshot {
	return DeviceSnapshot{
		UID:    thing.UID,
		Label:  thing.Label,
		Type:   thing.Type(),
		Values: map[string]any{},
		Errors: map[string]string{},
		ReadAt: readAt,
	}
}

// Record stores v under key, or err if the read failed.
func (s *DeviceSnapshot) Record(key string, v any, err error) {
	if err != nil {
		s.Errors[key] = err.Error()
		return
	}
	s.Values[key] = v
}

func (s DeviceSnapshot) Text(key string) (string, bool) {
	v, ok := s.Values[key].(string)
	return v, ok
}

func (s DeviceSnapshot) Int(key string) (int, bool) {
	v, ok := s.Values[key].(int)
	return v, ok
}

func (s DeviceSnapshot) Bool(key string) (bool, bool) {
	v, ok := s.Values[key].(bool)
	return v, ok
}

func (s DeviceSnapshot) IsOffline() bool {
	return s.Online == lci.Offline.Value()
}
