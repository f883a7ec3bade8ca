package mocks

import (
	"context"
	"sync"

	"homestay/infras/otel"
)

type otelImpl struct{}

// NewScope implements otel.Otel.
func (o *otelImpl) NewScope(ctx context.Context, _, _ string) (context.Context, otel.Scope) {
	return ctx, NewScope()
}

// Shutdown implements otel.Otel.
func (o *otelImpl) Shutdown(_ context.Context) error {
	return nil
}

// NewOtel returns a tracer whose scopes discard everything.
func NewOtel() otel.Otel {
	return &otelImpl{}
}

// Recorder is an otel.Otel that keeps every scope it opens.
type Recorder struct {
	mu     sync.Mutex
	scopes []*Scope
}

func NewRecorder() *Recorder {
	return &Recorder{}
}

// NewScope implements otel.Otel.
func (r *Recorder) NewScope(ctx context.Context, _, name string) (context.Context, otel.Scope) {
	s := &Scope{Name: name}

	r.mu.Lock()
	r.scopes = append(r.scopes, s)
	r.mu.Unlock()

	return ctx, s
}

// Shutdown implements otel.Otel.
func (r *Recorder) Shutdown(_ context.Context) error {
	return nil
}

// Last returns the most recent scope opened under name, or nil.
func (r *Recorder) Last(name string) *Scope {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i := len(r.scopes) - 1; i >= 0; i-- {
		if r.scopes[i].Name == name {
			return r.scopes[i]
		}
	}

	return nil
}
