// Package poller implements the applicant-side status watcher: a
// recurring check against the public beneficiary status endpoint that
// fires a one-time callback when the stored status transitions.
package poller

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"sync"
	"time"
)

// Status is the projection served by GET /api/beneficiaries/status.
type Status struct {
	Exists bool   `json:"exists"`
	Status string `json:"status"`
	Reason string `json:"reason"`
}

// ChangeFunc receives the previously observed status and the new one.
type ChangeFunc func(previous, current Status)

type Watcher struct {
	client   *http.Client
	baseURL  string
	email    string
	interval time.Duration
	onChange ChangeFunc

	mu       sync.Mutex
	inFlight bool
	last     *Status
}

func New(baseURL, email string, interval time.Duration, onChange ChangeFunc) *Watcher {
	return &Watcher{
		client:   &http.Client{Timeout: 10 * time.Second},
		baseURL:  baseURL,
		email:    email,
		interval: interval,
		onChange: onChange,
	}
}

// SetClient overrides the HTTP client, mainly for tests.
func (w *Watcher) SetClient(client *http.Client) {
	w.client = client
}

// Run polls until ctx is cancelled. A poll still in flight when the
// next tick arrives suppresses that tick, so requests never overlap.
func (w *Watcher) Run(ctx context.Context) {
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			go w.Poll(ctx)
		}
	}
}

// Poll performs a single status check. It is safe to call concurrently;
// overlapping calls are dropped.
func (w *Watcher) Poll(ctx context.Context) {
	w.mu.Lock()
	if w.inFlight {
		w.mu.Unlock()
		return
	}
	w.inFlight = true
	w.mu.Unlock()

	defer func() {
		w.mu.Lock()
		w.inFlight = false
		w.mu.Unlock()
	}()

	current, err := w.fetch(ctx)
	if err != nil {
		// Transient failures are ignored; the next tick retries.
		return
	}

	w.mu.Lock()
	previous := w.last
	changed := previous != nil && previous.Status != current.Status
	w.last = &current
	w.mu.Unlock()

	if changed && w.onChange != nil {
		w.onChange(*previous, current)
	}
}

// Last reports the most recently observed status.
func (w *Watcher) Last() (Status, bool) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.last == nil {
		return Status{}, false
	}
	return *w.last, true
}

func (w *Watcher) fetch(ctx context.Context) (Status, error) {
	endpoint := fmt.Sprintf("%s/api/beneficiaries/status?email=%s", w.baseURL, url.QueryEscape(w.email))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return Status{}, fmt.Errorf("build status request: %w", err)
	}

	resp, err := w.client.Do(req)
	if err != nil {
		return Status{}, fmt.Errorf("fetch status: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return Status{}, fmt.Errorf("unexpected status code %d", resp.StatusCode)
	}

	var status Status
	if err := json.NewDecoder(resp.Body).Decode(&status); err != nil {
		return Status{}, fmt.Errorf("decode status response: %w", err)
	}

	return status, nil
}
