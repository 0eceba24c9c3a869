package mocks

import "parking/infras/otel"

// scope forwards traced errors to its Otel so tests can assert on them.
type scope struct {
	owner *Otel
}

func (s scope) TraceError(err error) {
	if err == nil || s.owner == nil {
		return
	}

	s.owner.mu.Lock()
	s.owner.errs = append(s.owner.errs, err)
	s.owner.mu.Unlock()
}

func (s scope) TraceIfError(err error) { s.TraceError(err) }

func (scope) AddEvent(string)              {}
func (scope) End()                         {}
func (scope) SetAttribute(string, any)     {}
func (scope) SetAttributes(map[string]any) {}

// NewScope returns a scope not attached to any Otel.
func NewScope() otel.Scope {
	return scope{}
}
