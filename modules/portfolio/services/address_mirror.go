package services

import "net/url"

// AddressMirror reflects the active selection into a shareable address
// parameter. Writes replace the current value in place; they never add
// a history entry.
type AddressMirror interface {
	// Read returns the parameter value, "" when absent.
	Read(name string) string
	// Write sets the parameter; an empty value removes it.
	Write(name, value string)
}

// ValuesMirror mirrors the selection into a url.Values instance, usually
// the query string of the request being answered.
type ValuesMirror struct {
	values url.Values
}

func NewValuesMirror(values url.Values) *ValuesMirror {
	return &ValuesMirror{values: values}
}

func (m *ValuesMirror) Read(name string) string {
	return m.values.Get(name)
}

func (m *ValuesMirror) Write(name, value string) {
	if value == "" {
		m.values.Del(name)
		return
	}
	m.values.Set(name, value)
}

// NoopMirror is used when no addressable context exists, e.g. background
// jobs and tests.
type NoopMirror struct{}

func (NoopMirror) Read(name string) string  { return "" }
func (NoopMirror) Write(name, value string) {}
