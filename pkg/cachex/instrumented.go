package cachex

import (
	"context"
	"errors"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var cacheLookupsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name: "usersapi_cache_lookups_total",
		Help: "Cache lookups by result (hit, miss, error)",
	},
	[]string{"result"},
)

// Instrumented counts lookup results of the wrapped Cache.
type Instrumented struct {
	Cache
}

// Instrument wraps c with Prometheus lookup counters.
func Instrument(c Cache) *Instrumented {
	return &Instrumented{Cache: c}
}

func (i *Instrumented) Get(ctx context.Context, key string) ([]byte, error) {
	val, err := i.Cache.Get(ctx, key)
	switch {
	case err == nil:
		cacheLookupsTotal.WithLabelValues("hit").Inc()
	case errors.Is(err, ErrMiss):
		cacheLookupsTotal.WithLabelValues("miss").Inc()
	default:
		cacheLookupsTotal.WithLabelValues("error").Inc()
	}
	return val, err
}
