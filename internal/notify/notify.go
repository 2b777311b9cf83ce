// Package notify delivers session notifications to the operator across the
// configured sinks (desktop and Bark push).
package notify

import (
	"context"

	"golang.org/x/sync/errgroup"
)

// Notification is one message to deliver.
type Notification struct {
	Title   string
	Message string
	Status  string
	Sound   string
}

// Sink delivers a notification over one surface.
type Sink interface {
	Name() string
	Send(ctx context.Context, n Notification) error
}

// Notifier fans a notification out to all sinks concurrently.
type Notifier struct {
	sinks []Sink
}

// NewNotifier returns a Notifier over the given sinks. Nil sinks are
// ignored so callers can pass conditionally-constructed sinks directly.
func NewNotifier(sinks ...Sink) *Notifier {
	var active []Sink
	for _, s := range sinks {
		if s != nil {
			active = append(active, s)
		}
	}
	return &Notifier{sinks: active}
}

// Sinks returns the names of the active sinks.
func (nf *Notifier) Sinks() []string {
	names := make([]string, 0, len(nf.sinks))
	for _, s := range nf.sinks {
		names = append(names, s.Name())
	}
	return names
}

// Send delivers n to every sink. All sinks are attempted even when one
// fails; the first error is returned after all deliveries complete. A
// plain errgroup is used rather than WithContext so a failing sink does
// not cancel the others mid-delivery.
func (nf *Notifier) Send(ctx context.Context, n Notification) error {
	var g errgroup.Group
	for _, sink := range nf.sinks {
		sink := sink
		g.Go(func() error {
			return sink.Send(ctx, n)
		})
	}
	return g.Wait()
}
