package handlers

import (
	"log/slog"
	nethttp "net/http"
	"time"

	domainspots "github.com/preston-bernstein/iss-spotter/internal/domain/spots"
	"github.com/preston-bernstein/iss-spotter/internal/poller"
	"github.com/preston-bernstein/iss-spotter/internal/timeutil"
)

type nowFunc func() time.Time

// SpotsService is the read side the handlers need.
type SpotsService interface {
	Spots() domainspots.SpotsResponse
	Current(day *domainspots.DayTime) (domainspots.Spot, bool)
	Upcoming(day *domainspots.DayTime) (domainspots.Spot, bool)
}

// Handler wires HTTP routes to the spots service.
type Handler struct {
	svc      SpotsService
	logger   *slog.Logger
	now      nowFunc
	statusFn func() poller.Status
}

// NewHandler constructs a Handler with defaults.
func NewHandler(svc SpotsService, logger *slog.Logger, statusFn func() poller.Status) *Handler {
	return &Handler{
		svc:      svc,
		logger:   logger,
		now:      time.Now,
		statusFn: statusFn,
	}
}

type currentResponse struct {
	Visible bool             `json:"visible"`
	Spot    domainspots.Spot `json:"spot"`
	EndsIn  int64            `json:"endsInSeconds"`
}

type upcomingResponse struct {
	Spot     domainspots.Spot `json:"spot"`
	StartsIn int64            `json:"startsInSeconds"`
}

// Health reports the service health.
func (h *Handler) Health(w nethttp.ResponseWriter, r *nethttp.Request) {
	if err := r.Context().Err(); err != nil {
		writeError(w, r, nethttp.StatusServiceUnavailable, "shutting down", h.logger)
		return
	}
	writeJSON(w, nethttp.StatusOK, map[string]string{"status": "ok"}, h.logger)
}

// Ready reports readiness for traffic (e.g., for Kubernetes probes).
func (h *Handler) Ready(w nethttp.ResponseWriter, r *nethttp.Request) {
	if h.statusFn == nil {
		writeJSON(w, nethttp.StatusOK, map[string]string{"status": "ready"}, h.logger)
		return
	}
	status := h.statusFn()
	if status.IsReady() {
		writeJSON(w, nethttp.StatusOK, map[string]string{"status": "ready"}, h.logger)
		return
	}
	msg := status.LastError
	if msg == "" {
		msg = "not ready"
	}
	writeError(w, r, nethttp.StatusServiceUnavailable, msg, h.logger)
}

// Spots returns the latest delivered list. Before the first delivery it
// answers 503 with the loading sentinel.
func (h *Handler) Spots(w nethttp.ResponseWriter, r *nethttp.Request) {
	resp := h.svc.Spots()
	if resp.FetchedAt.IsZero() {
		writeError(w, r, nethttp.StatusServiceUnavailable, poller.Loading, h.logger)
		return
	}
	if resp.Spots == nil {
		resp.Spots = []domainspots.Spot{}
	}

	logger := loggerFromContext(r, h.logger)
	if logger != nil {
		logger.Info("served spots", "count", len(resp.Spots))
	}
	writeJSON(w, nethttp.StatusOK, resp, h.logger)
}

// Current returns the pass in view right now.
func (h *Handler) Current(w nethttp.ResponseWriter, r *nethttp.Request) {
	day, err := parseDayTime(r.URL.Query())
	if err != nil {
		writeError(w, r, nethttp.StatusBadRequest, err.Error(), h.logger)
		return
	}

	spot, ok := h.svc.Current(day)
	if !ok {
		writeError(w, r, nethttp.StatusNotFound, "no pass visible now", h.logger)
		return
	}
	writeJSON(w, nethttp.StatusOK, currentResponse{
		Visible: true,
		Spot:    spot,
		EndsIn:  timeutil.WholeSeconds(spot.End().Sub(h.now())),
	}, h.logger)
}

// Upcoming returns the next pass that has not started yet.
func (h *Handler) Upcoming(w nethttp.ResponseWriter, r *nethttp.Request) {
	day, err := parseDayTime(r.URL.Query())
	if err != nil {
		writeError(w, r, nethttp.StatusBadRequest, err.Error(), h.logger)
		return
	}

	spot, ok := h.svc.Upcoming(day)
	if !ok {
		writeError(w, r, nethttp.StatusNotFound, "no upcoming pass", h.logger)
		return
	}
	writeJSON(w, nethttp.StatusOK, upcomingResponse{
		Spot:     spot,
		StartsIn: timeutil.WholeSeconds(spot.Until(h.now())),
	}, h.logger)
}
