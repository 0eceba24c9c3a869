package mocks

import (
	"context"
	"parking/infras/otel"
	"sync"
)

// Otel is an in-memory tracer that remembers the spans it opened and the errors traced on them.
type Otel struct {
	mu    sync.Mutex
	spans []string
	errs  []error
}

func NewOtel() *Otel {
	return &Otel{}
}

func (o *Otel) NewScope(ctx context.Context, _, spanName string) (context.Context, otel.Scope) {
	o.mu.Lock()
	o.spans = append(o.spans, spanName)
	o.mu.Unlock()

	return ctx, scope{owner: o}
}

func (o *Otel) Shutdown(context.Context) error {
	return nil
}

func (o *Otel) Spans() []string {
	o.mu.Lock()
	defer o.mu.Unlock()

	return append([]string(nil), o.spans...)
}

func (o *Otel) Errors() []error {
	o.mu.Lock()
	defer o.mu.Unlock()

	return append([]error(nil), o.errs...)
}
