package lci

import (
	"math"
	"strconv"
	"strings"
)

// OnlineState is whether the gateway can reach a device.
type OnlineState int

const (
	Offline OnlineState = iota
	Online
	// Locked is reported by the gateway; its meaning is undocumented.
	Locked
)

var onlineStates = vocabulary[OnlineState]{
	kind: "online state",
	terms: []term[OnlineState]{
		{Offline, "OFF", "Offline"},
		{Online, "ON", "Online"},
		{Locked, "LOCKED", "Locked"},
	},
}

// ParseOnlineState accepts "OFF", "ON" and "LOCKED" in any case.
func ParseOnlineState(s string) (OnlineState, error) {
	return onlineStates.parse(s)
}

func (s OnlineState) String() string { return onlineStates.label(s) }

// Value is the gateway's representation of s.
func (s OnlineState) Value() string {
	v, _ := onlineStates.wire(s)
	return v
}

// Percentage is an integer between 0 and 100 inclusive.
type Percentage struct {
	value uint8
}

// NewPercentage validates n.
func NewPercentage(n int) (Percentage, error) {
	if n < 0 || n > 100 {
		return Percentage{}, &RangeError{Value: n, Min: 0, Max: 100}
	}
	return Percentage{value: uint8(n)}, nil
}

func (p Percentage) Value() int { return int(p.value) }

func (p Percentage) String() string { return strconv.Itoa(int(p.value)) + "%" }

// parsePercentage accepts "55" and "55.0"; fractional values are rounded.
func parsePercentage(s string) (Percentage, error) {
	f, err := parseNumber(s)
	if err != nil {
		return Percentage{}, err
	}
	p, err := NewPercentage(int(math.Round(f)))
	if err != nil {
		return Percentage{}, &ParseError{Value: s, Err: err}
	}
	return p, nil
}

// parseNumber parses a numeric state. Quantity items carry a unit after the
// number ("72 °F"), which is ignored.
func parseNumber(s string) (float64, error) {
	num, _, _ := strings.Cut(strings.TrimSpace(s), " ")
	f, err := strconv.ParseFloat(num, 64)
	if err != nil {
		return 0, &ParseError{Value: s, Err: err}
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, &ParseError{Value: s, Err: strconv.ErrRange}
	}
	return f, nil
}
