package notify

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestNewPush_NilWithoutDeviceKey(t *testing.T) {
	if p := NewPush("https://api.day.app", "", "claude-bell"); p != nil {
		t.Error("expected nil Push when no device key is configured")
	}
}

func TestPush_Send(t *testing.T) {
	var gotPath string
	var gotPayload barkPayload

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		if err := json.NewDecoder(r.Body).Decode(&gotPayload); err != nil {
			t.Errorf("decode body: %v", err)
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	p := NewPush(srv.URL+"/", "device-key-123", "claude-bell")
	n := Notification{
		Title:   "Claude Code · myproj",
		Message: "fix the login bug\n2 files changed",
		Status:  "success",
		Sound:   "glass",
	}
	if err := p.Send(context.Background(), n); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if gotPath != "/device-key-123" {
		t.Errorf("path = %q, want %q", gotPath, "/device-key-123")
	}
	if gotPayload.Title != n.Title {
		t.Errorf("title = %q, want %q", gotPayload.Title, n.Title)
	}
	if gotPayload.Body != n.Message {
		t.Errorf("body = %q, want %q", gotPayload.Body, n.Message)
	}
	if gotPayload.Sound != "glass" {
		t.Errorf("sound = %q, want %q", gotPayload.Sound, "glass")
	}
	if gotPayload.Group != "claude-bell" {
		t.Errorf("group = %q, want %q", gotPayload.Group, "claude-bell")
	}
}

func TestPush_SendServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "bad key", http.StatusBadRequest)
	}))
	defer srv.Close()

	p := NewPush(srv.URL, "bad-key", "")
	err := p.Send(context.Background(), Notification{Title: "t", Message: "m"})
	if err == nil {
		t.Fatal("expected an error for a non-2xx response")
	}
}

func TestPush_SendUnreachable(t *testing.T) {
	// Closed server: connection refused.
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close()

	p := NewPush(srv.URL, "key", "")
	if err := p.Send(context.Background(), Notification{}); err == nil {
		t.Fatal("expected an error for an unreachable server")
	}
}
