package lci

import (
	"errors"
	"fmt"
)

// ErrUnexpectedStatus is wrapped by GetError and SetError when the gateway
// answers with a non-2xx status code.
var ErrUnexpectedStatus = errors.New("unexpected http status")

// Stage identifies which step of a gateway read failed.
type Stage string

const (
	StageRequest Stage = "request"
	StageRead    Stage = "read"
	StageStatus  Stage = "status"
	StageDecode  Stage = "decode"
)

// GetError is returned when a read from the gateway fails.
type GetError struct {
	URL        string
	Stage      Stage
	StatusCode int
	Err        error
}

func (e *GetError) Error() string {
	switch e.Stage {
	case StageRequest:
		return fmt.Sprintf("gateway could not be reached at %s: %v", e.URL, e.Err)
	case StageRead:
		return fmt.Sprintf("reading response from %s: %v", e.URL, e.Err)
	case StageStatus:
		return fmt.Sprintf("gateway returned status %d for %s", e.StatusCode, e.URL)
	default:
		return fmt.Sprintf("parsing response from %s: %v", e.URL, e.Err)
	}
}

func (e *GetError) Unwrap() error { return e.Err }

// SetError is returned when a write to the gateway fails. StatusCode is zero
// when the request never got a response.
type SetError struct {
	URL        string
	StatusCode int
	Err        error
}

func (e *SetError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("gateway returned status %d for %s", e.StatusCode, e.URL)
	}
	return fmt.Sprintf("sending request to %s: %v", e.URL, e.Err)
}

func (e *SetError) Unwrap() error { return e.Err }

// UnknownValueError reports a string outside the vocabulary of Kind.
type UnknownValueError struct {
	Kind  string
	Value string
}

func (e *UnknownValueError) Error() string {
	return fmt.Sprintf("value %q is not a known %s", e.Value, e.Kind)
}

// ParseError reports a field value that is not a valid number.
type ParseError struct {
	Value string
	Err   error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parsing %q: %v", e.Value, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

// RangeError reports a value outside [Min, Max]. Setters return it before
// any request is made.
type RangeError struct {
	Value int
	Min   int
	Max   int
}

func (e *RangeError) Error() string {
	return fmt.Sprintf("value %d out of range [%d, %d]", e.Value, e.Min, e.Max)
}

// DeviceTypeError is returned by wrapper constructors when the Thing resolves
// to a different device type.
type DeviceTypeError struct {
	Expected DeviceType
	Actual   DeviceType
}

func (e *DeviceTypeError) Error() string {
	return fmt.Sprintf("thing is a %s device, want %s", e.Actual, e.Expected)
}

// DeviceError wraps every failure of a device wrapper operation with the
// device it happened on.
type DeviceError struct {
	Device DeviceType
	Label  string
	Op     string
	Err    error
}

func (e *DeviceError) Error() string {
	return fmt.Sprintf("%s %q: %s: %v", e.Device, e.Label, e.Op, e.Err)
}

func (e *DeviceError) Unwrap() error { return e.Err }
