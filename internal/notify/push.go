package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// pushTimeout bounds the fire-and-forget POST so a slow push server can
// never outlive the calling hook's own deadline.
const pushTimeout = 10 * time.Second

// Push sends notifications to a Bark server. Delivery is fire-and-forget:
// a failure is reported to the caller but must never block or crash the
// hook path.
type Push struct {
	server    string
	deviceKey string
	group     string
	client    *http.Client
}

// NewPush returns a Bark push sink, or nil when no device key is
// configured. Returning nil lets callers pass the result straight to
// NewNotifier.
func NewPush(server, deviceKey, group string) *Push {
	if deviceKey == "" {
		return nil
	}
	return &Push{
		server:    strings.TrimRight(server, "/"),
		deviceKey: deviceKey,
		group:     group,
		client:    &http.Client{Timeout: pushTimeout},
	}
}

func (p *Push) Name() string { return "push" }

// barkPayload is the JSON body of a Bark push request.
type barkPayload struct {
	Title string `json:"title"`
	Body  string `json:"body"`
	Sound string `json:"sound,omitempty"`
	Group string `json:"group,omitempty"`
}

// Send POSTs the notification to server/deviceKey.
func (p *Push) Send(ctx context.Context, n Notification) error {
	body, err := json.Marshal(barkPayload{
		Title: n.Title,
		Body:  n.Message,
		Sound: n.Sound,
		Group: p.group,
	})
	if err != nil {
		return fmt.Errorf("marshal push payload: %w", err)
	}

	url := p.server + "/" + p.deviceKey
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("create push request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json; charset=utf-8")

	resp, err := p.client.Do(req)
	if err != nil {
		return fmt.Errorf("push request: %w", err)
	}
	defer resp.Body.Close()

	// Drain so the connection can be reused.
	_, _ = io.Copy(io.Discard, resp.Body)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("push server returned %d", resp.StatusCode)
	}
	return nil
}
