package handlers

import (
	"math/rand/v2"
	"net/http"
	"time"
)

const (
	flakyMinDelay = 1 * time.Second
	flakyMaxDelay = 7 * time.Second
)

// RootHandler serves the greeting and the deliberately unreliable endpoint
// used to exercise client retries and dashboards.
type RootHandler struct {
	delay func() time.Duration
	fail  func() bool
}

// RootOption configures a RootHandler.
type RootOption func(*RootHandler)

// WithFlakyDelay overrides how long /flaky waits before answering.
func WithFlakyDelay(delay func() time.Duration) RootOption {
	return func(h *RootHandler) {
		h.delay = delay
	}
}

// WithFlakyFailure overrides the coin flip that decides whether /flaky fails.
func WithFlakyFailure(fail func() bool) RootOption {
	return func(h *RootHandler) {
		h.fail = fail
	}
}

// NewRootHandler creates a RootHandler. By default /flaky waits a whole
// number of seconds between 1 and 7 and fails half the time.
func NewRootHandler(opts ...RootOption) *RootHandler {
	h := &RootHandler{
		delay: randomDelay,
		fail:  func() bool { return rand.IntN(2) == 0 },
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// Hello handles GET /.
func (h *RootHandler) Hello(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = w.Write([]byte("Hello, World!"))
}

// Flaky handles GET /flaky. It answers 200 or 500 with an empty body after
// the configured delay. If the client goes away first, nothing is written.
func (h *RootHandler) Flaky(w http.ResponseWriter, r *http.Request) {
	timer := time.NewTimer(h.delay())
	defer timer.Stop()

	select {
	case <-timer.C:
	case <-r.Context().Done():
		return
	}

	if h.fail() {
		w.WriteHeader(http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusOK)
}

func randomDelay() time.Duration {
	seconds := int64(flakyMinDelay/time.Second) + rand.Int64N(int64((flakyMaxDelay-flakyMinDelay)/time.Second)+1)
	return time.Duration(seconds) * time.Second
}
