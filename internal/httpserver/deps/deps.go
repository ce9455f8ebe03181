package deps

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/BobTheBuilderB/Eaglerserver-list/internal/logger"
	"github.com/BobTheBuilderB/Eaglerserver-list/internal/probe"
	"github.com/BobTheBuilderB/Eaglerserver-list/internal/store"
)

// Prober is the on-demand liveness check handlers invoke for a single
// entry.
type Prober interface {
	Probe(ctx context.Context, address string) probe.Result
}

type Deps struct {
	Logger    logger.Logger
	StartTime time.Time
	Version   string
	Commit    string
	BuildDate string
	GoVersion string
	TimeNow   func() time.Time // for testing, defaults to time.Now

	Store        *store.Store       // the entry directory
	Prober       Prober             // single-entry liveness check
	StatusCache  *probe.StatusCache // latest sweep results
	SweepTrigger chan struct{}      // channel to trigger a manual probe sweep

	RedisClient *redis.Client // nil unless the redis storage backend is active

	AllowedCIDRS []string // IPs allowed to access operational endpoints
	TrustProxy   bool     // true if running behind a trusted reverse proxy (e.g., cloudflared)

	ProbeRateBurst     int // probe endpoint token bucket size
	ProbeRatePerMinute int // probe endpoint refill rate
}

// Now returns TimeNow() if set, else time.Now().
func (d Deps) Now() time.Time {
	if d.TimeNow != nil {
		return d.TimeNow()
	}
	return time.Now()
}
