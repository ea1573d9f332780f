package handler

import (
	"net/http"
	"time"

	"github.com/julienschmidt/httprouter"

	"hotelbooker/internal/calendar/service"
	httputil "hotelbooker/pkg/http"
	"hotelbooker/pkg/logger"
	"hotelbooker/pkg/model"
)

type CalendarHandler struct {
	service service.CalendarService
	log     *logger.Logger
	now     func() time.Time
}

func NewCalendarHandler(service service.CalendarService, log *logger.Logger) *CalendarHandler {
	return &CalendarHandler{
		service: service,
		log:     log,
		now:     time.Now,
	}
}

// Grid serves the calendar view. The anchor date defaults to today and
// the view mode to weekly; room type and status filters narrow the rows.
func (h *CalendarHandler) Grid(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	anchor, view, err := h.extractWindow(r)
	if err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "Grid", "operation", "WriteError", "error", writeErr)
		}
		return
	}

	query := r.URL.Query()
	filter := model.RoomFilter{
		Type:   query.Get("type"),
		Status: query.Get("status"),
	}

	grid, err := h.service.Grid(r.Context(), anchor, view, filter)
	if err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "Grid", "operation", "WriteError", "error", writeErr)
		}
		return
	}

	if err := httputil.WriteSuccess(w, grid); err != nil {
		h.log.Error("failed to write success response", "handler", "Grid", "operation", "WriteSuccess", "error", err)
	}
}

func (h *CalendarHandler) Occupancy(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	anchor, view, err := h.extractWindow(r)
	if err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "Occupancy", "operation", "WriteError", "error", writeErr)
		}
		return
	}

	stats, err := h.service.Occupancy(r.Context(), anchor, view)
	if err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "Occupancy", "operation", "WriteError", "error", writeErr)
		}
		return
	}

	if err := httputil.WriteSuccess(w, stats); err != nil {
		h.log.Error("failed to write success response", "handler", "Occupancy", "operation", "WriteSuccess", "error", err)
	}
}

func (h *CalendarHandler) extractWindow(r *http.Request) (time.Time, model.ViewMode, error) {
	anchor, err := httputil.ExtractDate(r, "date")
	if err != nil {
		return time.Time{}, "", err
	}
	if anchor.IsZero() {
		anchor = h.now().UTC()
	}

	view := model.ViewMode(r.URL.Query().Get("view"))
	if view == "" {
		view = model.ViewWeekly
	}
	if !view.Valid() {
		return time.Time{}, "", httputil.InvalidQuery("view", string(view))
	}

	return anchor, view, nil
}

func (h *CalendarHandler) RegisterRoutes(router *httprouter.Router) {
	router.GET("/api/v1/calendar", h.Grid)
	router.GET("/api/v1/calendar/occupancy", h.Occupancy)
}
