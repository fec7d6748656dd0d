package schedule

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"broadcast-scheduler/internal/platform/metrics"

	"github.com/go-chi/chi/v5"
)

const reportContentType = "text/plain; charset=utf-8"

// Handler exposes scheduler HTTP endpoints using go-chi.
type Handler struct {
	svc     *Service
	log     *slog.Logger
	metrics *metrics.Metrics
}

// NewHandler returns a Handler that uses the given Service, Logger, and optional Metrics.
// Metrics may be nil to disable metric recording (e.g. in tests).
func NewHandler(svc *Service, log *slog.Logger, m *metrics.Metrics) *Handler {
	return &Handler{svc: svc, log: log, metrics: m}
}

// Routes registers every endpoint on r.
func (h *Handler) Routes(r chi.Router) {
	r.Route("/days/{date}", func(r chi.Router) {
		r.Get("/", h.GetDay)
		r.Get("/report", h.GetReport)
		r.Post("/fill", h.FillGaps)
		r.Post("/items", h.AddContent)
		r.Delete("/items/{id}", h.RemoveContent)
	})
	r.Get("/weeks/{date}", h.GetWeek)
	r.Post("/coverage/{date}", h.EnsureCoverage)
	r.Post("/events", h.AddEvent)
	r.Route("/events/{id}", func(r chi.Router) {
		r.Get("/", h.GetEvent)
		r.Delete("/", h.DeleteEvent)
		r.Post("/reschedule", h.RescheduleEvent)
		r.Post("/hosts", h.AddHost)
		r.Delete("/hosts", h.RemoveHost)
		r.Post("/guest", h.AddGuest)
		r.Delete("/guest", h.RemoveGuest)
	})
}

// GetDay handles GET /days/{date}.
func (h *Handler) GetDay(w http.ResponseWriter, r *http.Request) {
	date, ok := h.dateParam(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, h.dayResponse(h.svc.GetDay(date)))
}

// GetReport handles GET /days/{date}/report.
func (h *Handler) GetReport(w http.ResponseWriter, r *http.Request) {
	date, ok := h.dateParam(w, r)
	if !ok {
		return
	}
	w.Header().Set("Content-Type", reportContentType)
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(BuildDayReport(h.svc.GetDay(date))))
}

// GetWeek handles GET /weeks/{date}?days=N.
func (h *Handler) GetWeek(w http.ResponseWriter, r *http.Request) {
	date, ok := h.dateParam(w, r)
	if !ok {
		return
	}
	n, ok := h.daysQuery(w, r)
	if !ok {
		return
	}
	days := h.svc.GetWeek(date, n)
	out := make([]dayResponse, 0, len(days))
	for _, d := range days {
		out = append(out, h.dayResponse(d))
	}
	writeJSON(w, http.StatusOK, out)
}

// AddContent handles POST /days/{date}/items.
func (h *Handler) AddContent(w http.ResponseWriter, r *http.Request) {
	date, ok := h.dateParam(w, r)
	if !ok {
		return
	}
	item, ok := h.decodeItem(w, r)
	if !ok {
		return
	}

	stored, err := h.svc.AddContent(date, item)
	if err != nil {
		h.writeServiceError(w, "add content", err)
		return
	}

	h.log.Debug("content added",
		slog.String("date", date.String()),
		slog.String("id", string(stored.ID)),
		slog.String("kind", string(stored.Kind)))
	if h.metrics != nil {
		h.metrics.IncItemsAdded()
	}
	writeJSON(w, http.StatusCreated, newItemResponse(stored))
}

// RemoveContent handles DELETE /days/{date}/items/{id}.
func (h *Handler) RemoveContent(w http.ResponseWriter, r *http.Request) {
	date, ok := h.dateParam(w, r)
	if !ok {
		return
	}
	id := ItemID(chi.URLParam(r, "id"))
	if !h.svc.RemoveContent(date, id) {
		w.WriteHeader(http.StatusNotFound)
		return
	}
	h.log.Debug("content removed", slog.String("date", date.String()), slog.String("id", string(id)))
	w.WriteHeader(http.StatusNoContent)
}

// FillGaps handles POST /days/{date}/fill.
func (h *Handler) FillGaps(w http.ResponseWriter, r *http.Request) {
	date, ok := h.dateParam(w, r)
	if !ok {
		return
	}
	created := h.svc.FillGapsWithMusic(date)

	h.log.Info("gaps filled", slog.String("date", date.String()), slog.Int("created", len(created)))
	if h.metrics != nil {
		h.metrics.AddFillerGenerated(len(created))
	}
	writeJSON(w, http.StatusOK, map[string]any{"created": newItemResponses(created)})
}

// EnsureCoverage handles POST /coverage/{date}?days=N.
func (h *Handler) EnsureCoverage(w http.ResponseWriter, r *http.Request) {
	date, ok := h.dateParam(w, r)
	if !ok {
		return
	}
	n, ok := h.daysQuery(w, r)
	if !ok {
		return
	}
	created := h.svc.EnsureCoverage(date, n)

	h.log.Info("coverage ensured",
		slog.String("start", date.String()),
		slog.Int("days", n),
		slog.Int("created", created))
	if h.metrics != nil {
		h.metrics.AddFillerGenerated(created)
	}
	writeJSON(w, http.StatusOK, map[string]int{"created": created})
}

// AddEvent handles POST /events.
func (h *Handler) AddEvent(w http.ResponseWriter, r *http.Request) {
	item, ok := h.decodeItem(w, r)
	if !ok {
		return
	}
	stored, err := h.svc.AddEvent(item)
	if err != nil {
		h.writeServiceError(w, "add event", err)
		return
	}

	date := h.svc.DateOf(stored.Start)
	h.log.Info("event added",
		slog.String("date", date.String()),
		slog.String("id", string(stored.ID)),
		slog.String("kind", string(stored.Kind)))
	if h.metrics != nil {
		h.metrics.IncItemsAdded()
	}
	writeJSON(w, http.StatusCreated, eventResponse{Date: date.String(), Item: newItemResponse(stored)})
}

// GetEvent handles GET /events/{id}.
func (h *Handler) GetEvent(w http.ResponseWriter, r *http.Request) {
	date, it, err := h.svc.GetItem(ItemID(chi.URLParam(r, "id")))
	if err != nil {
		h.writeServiceError(w, "get event", err)
		return
	}
	writeJSON(w, http.StatusOK, eventResponse{Date: date.String(), Item: newItemResponse(it)})
}

// DeleteEvent handles DELETE /events/{id}.
func (h *Handler) DeleteEvent(w http.ResponseWriter, r *http.Request) {
	id := ItemID(chi.URLParam(r, "id"))
	if !h.svc.DeleteEvent(id) {
		w.WriteHeader(http.StatusNotFound)
		return
	}
	h.log.Info("event deleted", slog.String("id", string(id)))
	w.WriteHeader(http.StatusNoContent)
}

// RescheduleEvent handles POST /events/{id}/reschedule.
// Body: { "start": "2026-10-14T15:00:00+02:00" }.
func (h *Handler) RescheduleEvent(w http.ResponseWriter, r *http.Request) {
	id := ItemID(chi.URLParam(r, "id"))

	var req rescheduleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.log.Debug("invalid reschedule body", slog.String("error", err.Error()))
		w.WriteHeader(http.StatusBadRequest)
		return
	}
	start, err := parseInstant(req.Start, h.svc.Location())
	if err != nil {
		h.log.Debug("invalid reschedule start", slog.String("error", err.Error()))
		w.WriteHeader(http.StatusBadRequest)
		return
	}

	moved, err := h.svc.RescheduleEvent(id, start)
	if err != nil {
		h.writeServiceError(w, "reschedule event", err)
		return
	}

	date := h.svc.DateOf(moved.Start)
	h.log.Info("event rescheduled",
		slog.String("id", string(id)),
		slog.String("date", date.String()),
		slog.Time("start", moved.Start))
	writeJSON(w, http.StatusOK, eventResponse{Date: date.String(), Item: newItemResponse(moved)})
}

// AddHost handles POST /events/{id}/hosts.
func (h *Handler) AddHost(w http.ResponseWriter, r *http.Request) {
	h.updateLive(w, r, "add host", h.svc.AddHost)
}

// RemoveHost handles DELETE /events/{id}/hosts.
func (h *Handler) RemoveHost(w http.ResponseWriter, r *http.Request) {
	h.updateLive(w, r, "remove host", h.svc.RemoveHost)
}

// AddGuest handles POST /events/{id}/guest.
func (h *Handler) AddGuest(w http.ResponseWriter, r *http.Request) {
	h.updateLive(w, r, "add guest", h.svc.AddGuest)
}

// RemoveGuest handles DELETE /events/{id}/guest.
func (h *Handler) RemoveGuest(w http.ResponseWriter, r *http.Request) {
	h.updateLive(w, r, "remove guest", h.svc.RemoveGuest)
}

func (h *Handler) updateLive(w http.ResponseWriter, r *http.Request, op string, fn func(ItemID) (Item, error)) {
	id := ItemID(chi.URLParam(r, "id"))
	it, err := fn(id)
	if err != nil {
		h.writeServiceError(w, op, err)
		return
	}
	h.log.Debug("live session updated",
		slog.String("operation", op),
		slog.String("id", string(id)),
		slog.Int("host_count", it.Live.HostCount))
	writeJSON(w, http.StatusOK, newItemResponse(it))
}

func (h *Handler) dayResponse(d DaySchedule) dayResponse {
	bounds := d.Date.Window(h.svc.Location())
	return dayResponse{
		Date:           d.Date.String(),
		Items:          newItemResponses(d.Items),
		CoveredSeconds: int64(covered(d.Items, bounds).Seconds()),
		LengthSeconds:  int64(bounds.End.Sub(bounds.Start).Seconds()),
	}
}

func (h *Handler) dateParam(w http.ResponseWriter, r *http.Request) (Date, bool) {
	date, err := ParseDate(chi.URLParam(r, "date"))
	if err != nil {
		h.log.Debug("invalid date", slog.String("error", err.Error()))
		w.WriteHeader(http.StatusBadRequest)
		return Date{}, false
	}
	return date, true
}

// daysQuery reads the optional days query parameter; 0 means the default span.
// Values above the service's MaxSpanDays are rejected.
func (h *Handler) daysQuery(w http.ResponseWriter, r *http.Request) (int, bool) {
	s := r.URL.Query().Get("days")
	if s == "" {
		return DefaultCoverageDays, true
	}
	n, err := strconv.Atoi(s)
	if err != nil || n < 0 || n > h.svc.MaxSpanDays() {
		h.log.Debug("invalid days query", slog.String("days", s), slog.Int("max", h.svc.MaxSpanDays()))
		w.WriteHeader(http.StatusBadRequest)
		return 0, false
	}
	if n == 0 {
		n = DefaultCoverageDays
	}
	return n, true
}

func (h *Handler) decodeItem(w http.ResponseWriter, r *http.Request) (Item, bool) {
	var req itemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.log.Debug("invalid item body", slog.String("error", err.Error()))
		w.WriteHeader(http.StatusBadRequest)
		return Item{}, false
	}
	item, err := req.toItem(h.svc.Location())
	if err != nil {
		h.log.Debug("invalid item times", slog.String("error", err.Error()))
		w.WriteHeader(http.StatusBadRequest)
		return Item{}, false
	}
	return item, true
}

func (h *Handler) writeServiceError(w http.ResponseWriter, op string, err error) {
	kind := ErrorKind(err)
	resp := errorResponse{Error: err.Error(), Kind: kind}

	var status int
	switch kind {
	case ErrorKindNotFound:
		status = http.StatusNotFound
	case ErrorKindWrongKind:
		status = http.StatusConflict
	case ErrorKindConflict:
		status = http.StatusConflict
		if h.metrics != nil {
			h.metrics.IncConflicts()
		}
	case ErrorKindValidation:
		status = http.StatusUnprocessableEntity
		var vErr *ValidationError
		if errors.As(err, &vErr) {
			resp.Fields = vErr.FieldErrors
		}
	default:
		h.log.Error(op+" failed", slog.String("error", err.Error()))
		writeJSON(w, http.StatusInternalServerError, resp)
		return
	}

	h.log.Info(op+" rejected",
		slog.String("error_kind", kind),
		slog.String("error", err.Error()))
	writeJSON(w, status, resp)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
