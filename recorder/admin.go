package recorder

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/tailscale/tailsql/server/tailsql"
	"tailscale.com/tsweb"
)

// FrameStats is the JSON body served at the debug db-stats route.
type FrameStats struct {
	FrameCount    int64 `json:"frame_count"`
	InboundCount  int64 `json:"inbound_count"`
	OutboundCount int64 `json:"outbound_count"`
}

// Stats computes the current frame counts, used by both the debug route
// and anything else that wants a cheap summary.
func (r *Recorder) Stats() (FrameStats, error) {
	var s FrameStats
	if err := r.db.QueryRow(`SELECT COUNT(*) FROM frames`).Scan(&s.FrameCount); err != nil {
		return s, fmt.Errorf("recorder: count frames: %w", err)
	}
	if err := r.db.QueryRow(`SELECT COUNT(*) FROM frames WHERE direction = ?`, string(DirectionInbound)).Scan(&s.InboundCount); err != nil {
		return s, fmt.Errorf("recorder: count inbound frames: %w", err)
	}
	if err := r.db.QueryRow(`SELECT COUNT(*) FROM frames WHERE direction = ?`, string(DirectionOutbound)).Scan(&s.OutboundCount); err != nil {
		return s, fmt.Errorf("recorder: count outbound frames: %w", err)
	}
	return s, nil
}

// AttachAdminRoutes mounts a live SQL browser over the frame log plus a
// JSON stats route, identical in shape to the teacher repo's
// db.AttachAdminRoutes (tsweb.Debugger + tailsql.NewServer).
func (r *Recorder) AttachAdminRoutes(mux *http.ServeMux) error {
	debug := tsweb.Debugger(mux)

	tsql, err := tailsql.NewServer(tailsql.Options{
		RoutePrefix: "/debug/tailsql/",
	})
	if err != nil {
		return fmt.Errorf("recorder: create tailsql server: %w", err)
	}
	tsql.SetDB("sqlite://frames.db", r.db, &tailsql.DBOptions{
		Label: "Recorder Frame Log",
	})
	debug.Handle("tailsql/", "SQL live debugging", tsql.NewMux())

	debug.Handle("db-stats", "Recorder frame counts (JSON)", http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		stats, err := r.Stats()
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		if err := json.NewEncoder(w).Encode(stats); err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
		}
	}))

	return nil
}
