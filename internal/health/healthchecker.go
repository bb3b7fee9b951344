// Package health aggregates component health checks.
package health

import (
	"context"

	"github.com/rs/zerolog"
)

// Component is a named health pinger.
type Component struct {
	Name   string
	Pinger Pinger
}

// Status is the outcome of probing one component.
type Status struct {
	Name string
	Err  error
}

// Healthy reports whether the component probe succeeded.
func (s Status) Healthy() bool { return s.Err == nil }

// Check probes every component once and returns their statuses in order.
// A nil pinger is reported as healthy (the component is not configured).
func Check(ctx context.Context, log zerolog.Logger, components ...Component) []Status {
	out := make([]Status, 0, len(components))
	for _, c := range components {
		var err error
		if c.Pinger != nil {
			err = c.Pinger.HealthPing(ctx)
		}
		if err != nil {
			log.Error().Stack().Str("component", c.Name).Err(err).Msg("health check failed")
		} else {
			log.Debug().Str("component", c.Name).Msg("health check ok")
		}
		out = append(out, Status{Name: c.Name, Err: err})
	}
	return out
}

// AllHealthy reports whether every status in the set is healthy.
func AllHealthy(statuses []Status) bool {
	for _, s := range statuses {
		if !s.Healthy() {
			return false
		}
	}
	return true
}
