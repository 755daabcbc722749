package http

import (
	"net/http"
	"time"

	"github.com/aussiebroadwan/usersapi/internal/users/store"
	"github.com/aussiebroadwan/usersapi/pkg/cachex"
	"github.com/aussiebroadwan/usersapi/pkg/httpx"
	"github.com/aussiebroadwan/usersapi/pkg/usersdk"
)

// HealthHandler serves the liveness and readiness checks. Both name the
// database driver and cache transport the process was started with.
type HealthHandler struct {
	Started time.Time
	Version string
	Store   store.Store
	Cache   cachex.Cache
}

func (h *HealthHandler) report(status string) usersdk.HealthResponse {
	return usersdk.HealthResponse{
		Status:   status,
		Uptime:   time.Since(h.Started).Truncate(time.Second).String(),
		Version:  h.Version,
		Database: store.Driver(h.Store),
		Cache:    cachex.Backend(h.Cache),
	}
}

// HandleLivez godoc
//
//	@Summary		Liveness Check
//	@Description	Reports uptime, version and the configured database and cache backends
//	@Description	Answers 200 whenever the process is serving; dependencies are not contacted
//	@Tags			Health
//	@Produce		json
//	@Success		200	{object}	usersdk.HealthResponse	"status, uptime, version, backends"
//	@Router			/livez [get].
func (h *HealthHandler) HandleLivez(w http.ResponseWriter, r *http.Request) {
	httpx.WriteJSON(w, http.StatusOK, h.report("ok"))
}

// HandleReadyz godoc
//
//	@Summary		Readiness Check
//	@Description	Pings the database and the cache; either failing marks the service degraded
//	@Tags			Health
//	@Produce		json
//	@Success		200	{object}	usersdk.HealthResponse	"all dependencies reachable"
//	@Failure		503	{object}	usersdk.HealthResponse	"degraded, checks name the failing dependency"
//	@Router			/readyz [get].
func (h *HealthHandler) HandleReadyz(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	checks := &usersdk.HealthChecks{Database: "ok", Cache: "ok"}
	code := http.StatusOK

	if err := h.Store.Ping(ctx); err != nil {
		checks.Database = "error: " + err.Error()
		code = http.StatusServiceUnavailable
	}
	if err := h.Cache.Ping(ctx); err != nil {
		checks.Cache = "error: " + err.Error()
		code = http.StatusServiceUnavailable
	}

	resp := h.report("ok")
	if code != http.StatusOK {
		resp.Status = "degraded"
	}
	resp.Checks = checks
	httpx.WriteJSON(w, code, resp)
}
