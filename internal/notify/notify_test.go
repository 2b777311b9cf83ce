package notify

import (
	"context"
	"errors"
	"sync"
	"testing"
)

// fakeSink records deliveries and optionally fails.
type fakeSink struct {
	name string
	err  error

	mu   sync.Mutex
	sent []Notification
}

func (f *fakeSink) Name() string { return f.name }

func (f *fakeSink) Send(ctx context.Context, n Notification) error {
	f.mu.Lock()
	f.sent = append(f.sent, n)
	f.mu.Unlock()
	return f.err
}

func TestNotifier_FansOutToAllSinks(t *testing.T) {
	a := &fakeSink{name: "a"}
	b := &fakeSink{name: "b"}
	nf := NewNotifier(a, b)

	n := Notification{Title: "Claude Code", Message: "task completed", Status: "success"}
	if err := nf.Send(context.Background(), n); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(a.sent) != 1 || len(b.sent) != 1 {
		t.Errorf("deliveries = %d/%d, want 1/1", len(a.sent), len(b.sent))
	}
	if a.sent[0].Message != "task completed" {
		t.Errorf("Message = %q", a.sent[0].Message)
	}
}

func TestNotifier_AttemptsAllSinksOnFailure(t *testing.T) {
	failing := &fakeSink{name: "failing", err: errors.New("push server down")}
	working := &fakeSink{name: "working"}
	nf := NewNotifier(failing, working)

	err := nf.Send(context.Background(), Notification{Title: "t", Message: "m"})
	if err == nil {
		t.Fatal("expected an error from the failing sink")
	}
	if len(working.sent) != 1 {
		t.Errorf("working sink deliveries = %d, want 1 despite other sink failing", len(working.sent))
	}
}

func TestNotifier_IgnoresNilSinks(t *testing.T) {
	nf := NewNotifier(nil, &fakeSink{name: "only"}, nil)

	if got := nf.Sinks(); len(got) != 1 || got[0] != "only" {
		t.Errorf("Sinks = %v, want [only]", got)
	}
}

func TestNotifier_NoSinks(t *testing.T) {
	nf := NewNotifier()
	if err := nf.Send(context.Background(), Notification{}); err != nil {
		t.Errorf("unexpected error with no sinks: %v", err)
	}
}
