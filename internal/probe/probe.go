// Package probe implements the bounded-time liveness check against a
// server endpoint. A probe only confirms that the WebSocket handshake
// completed or failed within the deadline; it says nothing about
// game-protocol availability.
package probe

import (
	"context"
	"net/url"
	"time"

	"github.com/coder/websocket"

	"github.com/BobTheBuilderB/Eaglerserver-list/internal/logger"
)

// DefaultTimeout bounds a single probe attempt.
const DefaultTimeout = 3 * time.Second

// Outcome is the single terminal state of one probe invocation.
type Outcome string

const (
	// Online means the handshake completed before the deadline.
	Online Outcome = "online"
	// Unreachable means the dial failed before the deadline.
	Unreachable Outcome = "unreachable"
	// TimedOut means the deadline fired first.
	TimedOut Outcome = "timeout"
	// Invalid means the address could not even be turned into a
	// connection attempt (bad URL or wrong scheme).
	Invalid Outcome = "invalid"
)

// Result reports one probe invocation.
type Result struct {
	Outcome   Outcome       `json:"outcome"`
	Latency   time.Duration `json:"-"`
	LatencyMs int64         `json:"latencyMs"`
	CheckedAt time.Time     `json:"checkedAt"`
}

// Prober issues independent, concurrency-safe liveness checks. It
// never mutates the entry store; results go back to the caller only.
type Prober struct {
	timeout time.Duration
	logger  logger.Logger
}

// New creates a prober with the given per-attempt timeout.
func New(timeout time.Duration, log logger.Logger) *Prober {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Prober{timeout: timeout, logger: log}
}

// Probe attempts one WebSocket handshake against address and reports
// exactly one outcome. The context deadline doubles as the probe
// timer, so open, error and timeout are mutually exclusive by
// construction and the first to occur wins.
func (p *Prober) Probe(ctx context.Context, address string) Result {
	now := time.Now()

	u, err := url.Parse(address)
	if err != nil || (u.Scheme != "wss" && u.Scheme != "ws") || u.Host == "" {
		p.logger.Debug("probe address rejected before dial",
			logger.String("address", address))
		return Result{Outcome: Invalid, CheckedAt: now}
	}

	dialCtx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	conn, _, err := websocket.Dial(dialCtx, address, nil)
	latency := time.Since(now)

	if err != nil {
		outcome := Unreachable
		if dialCtx.Err() != nil {
			outcome = TimedOut
		}
		p.logger.Debug("probe failed",
			logger.String("address", address),
			logger.String("outcome", string(outcome)),
			logger.Duration("after", latency),
			logger.Error(err))
		return Result{Outcome: outcome, Latency: latency, LatencyMs: latency.Milliseconds(), CheckedAt: now}
	}

	// The handshake is the whole signal; close straight away and
	// suppress any close-time error.
	_ = conn.Close(websocket.StatusNormalClosure, "liveness probe")

	p.logger.Debug("probe succeeded",
		logger.String("address", address),
		logger.Duration("latency", latency))
	return Result{Outcome: Online, Latency: latency, LatencyMs: latency.Milliseconds(), CheckedAt: now}
}
