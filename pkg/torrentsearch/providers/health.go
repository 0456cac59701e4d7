package providers

import (
	"context"
	"net/http"

	"github.com/amaumene/torrentfind/pkg/httputil"
	"github.com/amaumene/torrentfind/pkg/ratelimiter"
)

// HealthChecker is implemented by adapters that can probe their upstream.
type HealthChecker interface {
	Health(ctx context.Context) error
}

// Pinger is implemented by raw clients that can reach their site root.
type Pinger interface {
	Ping(ctx context.Context) error
}

func ping(ctx context.Context, client *http.Client, rl ratelimiter.RateLimiter, target string) error {
	if err := rl.Wait(ctx); err != nil {
		return err
	}
	resp, err := httputil.Get(ctx, client, target)
	if err != nil {
		return err
	}
	return resp.Body.Close()
}

// healthOf pings client when it supports it. Clients that cannot be probed
// are reported healthy.
func healthOf(ctx context.Context, client any) error {
	if p, ok := client.(Pinger); ok {
		return p.Ping(ctx)
	}
	return nil
}
