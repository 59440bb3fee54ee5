package employeehandler

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"timetrack/internal/domain/advance"
	"timetrack/internal/domain/employee"
	"timetrack/internal/domain/timesheet"
	"timetrack/internal/transport/http/api"
	"timetrack/internal/transport/http/middleware"
	"timetrack/internal/transport/http/shared"
)

type Handler struct {
	Employees  *employee.Store
	Advances   *advance.Store
	Timesheets *timesheet.Service
}

func NewHandler(employees *employee.Store, advances *advance.Store, timesheets *timesheet.Service) *Handler {
	return &Handler{Employees: employees, Advances: advances, Timesheets: timesheets}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/employees", func(r chi.Router) {
		r.Get("/", h.handleList)
		r.Get("/{employeeID}", h.handleGet)
		r.Get("/{employeeID}/conflicts", h.handleConflicts)
		r.Get("/{employeeID}/advances", h.handleAdvances)
	})
}

func (h *Handler) handleList(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())
	if _, ok := middleware.GetIdentity(r.Context()); !ok {
		api.Fail(w, http.StatusUnauthorized, "unauthorized", "authentication required", requestID)
		return
	}

	page := shared.ParsePagination(r, 50, 200)
	employees, err := h.Employees.List(r.Context(), page.Limit, page.Offset)
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "employee_list_failed", "failed to list employees", requestID)
		return
	}
	total, err := h.Employees.Count(r.Context())
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "employee_list_failed", "failed to list employees", requestID)
		return
	}

	api.Success(w, map[string]any{
		"items":  employees,
		"total":  total,
		"limit":  page.Limit,
		"offset": page.Offset,
	}, requestID)
}

func (h *Handler) handleGet(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())
	if _, ok := middleware.GetIdentity(r.Context()); !ok {
		api.Fail(w, http.StatusUnauthorized, "unauthorized", "authentication required", requestID)
		return
	}

	emp, err := h.Employees.Get(r.Context(), chi.URLParam(r, "employeeID"))
	if err != nil {
		if errors.Is(err, employee.ErrNotFound) {
			api.Fail(w, http.StatusNotFound, "not_found", "employee not found", requestID)
			return
		}
		api.Fail(w, http.StatusInternalServerError, "employee_get_failed", "failed to load employee", requestID)
		return
	}
	api.Success(w, emp, requestID)
}

// handleConflicts answers whether the employee already has an entry on a
// given date, across every timesheet. Used by clients before saving.
func (h *Handler) handleConflicts(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())
	if _, ok := middleware.GetIdentity(r.Context()); !ok {
		api.Fail(w, http.StatusUnauthorized, "unauthorized", "authentication required", requestID)
		return
	}

	v := shared.NewValidator()
	date, ok := v.Date("date", r.URL.Query().Get("date"))
	if !ok {
		v.Reject(w, requestID)
		return
	}

	conflicts, err := h.Timesheets.FindConflicts(r.Context(), chi.URLParam(r, "employeeID"), date, "")
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "conflict_check_failed", "failed to check conflicts", requestID)
		return
	}

	api.Success(w, map[string]any{
		"date":      timesheet.DateKey(date),
		"hasEntry":  len(conflicts) > 0,
		"conflicts": conflicts,
	}, requestID)
}

func (h *Handler) handleAdvances(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())
	if _, ok := middleware.GetIdentity(r.Context()); !ok {
		api.Fail(w, http.StatusUnauthorized, "unauthorized", "authentication required", requestID)
		return
	}

	advances, err := h.Advances.ListByEmployee(r.Context(), chi.URLParam(r, "employeeID"))
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "advance_list_failed", "failed to list advances", requestID)
		return
	}
	api.Success(w, advances, requestID)
}
