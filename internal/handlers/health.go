package handlers

import (
	"net/http"
	"time"

	applog "bakery/internal/log"
)

type healthResponse struct {
	Status   string    `json:"status"`
	Database string    `json:"database"`
	Time     time.Time `json:"time"`
}

// Health reports process liveness together with the reachability of the
// catalog database. An unreachable database turns the probe into a 503; a
// process started without one still answers ok.
func Health(w http.ResponseWriter, r *http.Request) {
	resp := healthResponse{Status: "ok", Database: "unconfigured", Time: time.Now().UTC()}
	status := http.StatusOK

	if s, err := catalogStore(); err == nil {
		resp.Database = "ok"
		if err := s.Ping(r.Context()); err != nil {
			applog.Error(r.Context(), "health check database ping failed", "error", err)
			resp.Status = "degraded"
			resp.Database = "unreachable"
			status = http.StatusServiceUnavailable
		}
	}

	applog.Debug(r.Context(), "health check", "status", resp.Status, "database", resp.Database)
	writeJSON(w, status, resp)
}
