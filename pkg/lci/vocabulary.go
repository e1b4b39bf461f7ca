package lci

import (
	"fmt"
	"strings"
)

type enum interface {
	~int
}

type term[T enum] struct {
	value T
	wire  string
	label string
}

// vocabulary is the fixed mapping between an enum, the upper-case strings
// the gateway uses, and display labels.
type vocabulary[T enum] struct {
	kind  string
	terms []term[T]
}

// parse matches s against the wire strings ignoring case.
func (v vocabulary[T]) parse(s string) (T, error) {
	for _, t := range v.terms {
		if strings.EqualFold(s, t.wire) {
			return t.value, nil
		}
	}
	var zero T
	return zero, &UnknownValueError{Kind: v.kind, Value: s}
}

func (v vocabulary[T]) lookup(value T) (term[T], bool) {
	for _, t := range v.terms {
		if t.value == value {
			return t, true
		}
	}
	return term[T]{}, false
}

func (v vocabulary[T]) wire(value T) (string, error) {
	t, ok := v.lookup(value)
	if !ok {
		return "", &UnknownValueError{Kind: v.kind, Value: fmt.Sprint(int(value))}
	}
	return t.wire, nil
}

func (v vocabulary[T]) label(value T) string {
	if t, ok := v.lookup(value); ok {
		return t.label
	}
	return fmt.Sprintf("%s(%d)", v.kind, int(value))
}

func (v vocabulary[T]) values() []T {
	out := make([]T, 0, len(v.terms))
	for _, t := range v.terms {
		out = append(out, t.value)
	}
	return out
}
