package timesheethandler

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"timetrack/internal/domain/audit"
	"timetrack/internal/domain/employee"
	"timetrack/internal/domain/timesheet"
	"timetrack/internal/identity"
	"timetrack/internal/transport/http/api"
	"timetrack/internal/transport/http/middleware"
	"timetrack/internal/transport/http/shared"
)

type Handler struct {
	Service   *timesheet.Service
	Employees *employee.Store
	Audit     *audit.Service
}

func NewHandler(service *timesheet.Service, employees *employee.Store, auditSvc *audit.Service) *Handler {
	return &Handler{Service: service, Employees: employees, Audit: auditSvc}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/timesheets", func(r chi.Router) {
		r.Get("/", h.handleList)
		r.Post("/", h.handleCreate)
		r.Get("/{timesheetID}", h.handleGet)
		r.Delete("/{timesheetID}", h.handleDelete)

		r.Post("/{timesheetID}/submit", h.handleSubmit)
		r.Post("/{timesheetID}/assign", h.handleAssign)
		r.Post("/{timesheetID}/approve", h.handleApprove)
		r.Post("/{timesheetID}/reject", h.handleReject)
		r.Post("/{timesheetID}/clarify", h.handleClarify)
		r.Post("/{timesheetID}/reopen", h.handleReopen)

		r.Put("/{timesheetID}/entries/{date}", h.handleSaveEntry)
		r.Delete("/{timesheetID}/entries/{date}", h.handleDeleteEntry)

		r.Get("/{timesheetID}/export.pdf", h.handleExportPDF)
		r.Get("/{timesheetID}/export.csv", h.handleExportCSV)
	})
}

// failDomain translates domain errors into the envelope the clients
// expect. Conflicts carry the full list of colliding entries so the
// user can resolve them by hand.
func failDomain(w http.ResponseWriter, err error, requestID string) {
	var validation *timesheet.ValidationError
	if errors.As(err, &validation) {
		shared.FailValidation(w, requestID, []shared.ValidationIssue{
			{Field: validation.Field, Reason: validation.Reason},
		})
		return
	}

	var conflict *timesheet.ConflictError
	if errors.As(err, &conflict) {
		api.FailWithDetails(w, http.StatusConflict, "duplicate_entry",
			"an entry already exists for this employee and date",
			map[string]any{"conflicts": conflict.Conflicts}, requestID)
		return
	}

	switch {
	case errors.Is(err, timesheet.ErrNotFound):
		api.Fail(w, http.StatusNotFound, "not_found", "timesheet not found", requestID)
	case errors.Is(err, timesheet.ErrEntryNotFound):
		api.Fail(w, http.StatusNotFound, "entry_not_found", "daily entry not found", requestID)
	case errors.Is(err, timesheet.ErrPermissionDenied):
		api.Fail(w, http.StatusForbidden, "forbidden", "you cannot modify this timesheet", requestID)
	case errors.Is(err, timesheet.ErrDuplicateDate):
		api.Fail(w, http.StatusConflict, "duplicate_entry", "an entry already exists for this employee and date", requestID)
	case errors.Is(err, timesheet.ErrInvalidTransition):
		api.Fail(w, http.StatusConflict, "invalid_transition", "this status change is not allowed", requestID)
	case errors.Is(err, timesheet.ErrNotDeletable):
		api.Fail(w, http.StatusConflict, "not_deletable", "only draft or rejected timesheets may be deleted", requestID)
	default:
		api.Fail(w, http.StatusInternalServerError, "internal_error", "request failed", requestID)
	}
}

func (h *Handler) record(r *http.Request, action, entityID string, details any) {
	actor, _ := middleware.GetIdentity(r.Context())
	requestID := middleware.GetRequestID(r.Context())
	if err := h.Audit.Record(r.Context(), actor, action, "timesheet", entityID, requestID, shared.ClientIP(r), details); err != nil {
		slog.Warn("audit "+action+" failed", "err", err, "requestId", requestID)
	}
}

func (h *Handler) handleList(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())
	if _, ok := middleware.GetIdentity(r.Context()); !ok {
		api.Fail(w, http.StatusUnauthorized, "unauthorized", "authentication required", requestID)
		return
	}

	page := shared.ParsePagination(r, 50, 200)
	items, total, err := h.Service.List(r.Context(), r.URL.Query().Get("employeeId"), page.Limit, page.Offset)
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "timesheet_list_failed", "failed to list timesheets", requestID)
		return
	}

	api.Success(w, map[string]any{
		"items":  items,
		"total":  total,
		"limit":  page.Limit,
		"offset": page.Offset,
	}, requestID)
}

func (h *Handler) handleCreate(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())
	actor, ok := middleware.GetIdentity(r.Context())
	if !ok {
		api.Fail(w, http.StatusUnauthorized, "unauthorized", "authentication required", requestID)
		return
	}

	var input timesheet.CreateInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", requestID)
		return
	}

	ts, err := h.Service.Create(r.Context(), input, actor)
	if err != nil {
		failDomain(w, err, requestID)
		return
	}

	h.record(r, "timesheet.create", ts.ID, input)
	api.Created(w, ts, requestID)
}

func (h *Handler) handleGet(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())
	if _, ok := middleware.GetIdentity(r.Context()); !ok {
		api.Fail(w, http.StatusUnauthorized, "unauthorized", "authentication required", requestID)
		return
	}

	ts, err := h.Service.Get(r.Context(), chi.URLParam(r, "timesheetID"))
	if err != nil {
		failDomain(w, err, requestID)
		return
	}
	api.Success(w, ts, requestID)
}

func (h *Handler) handleDelete(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())
	actor, ok := middleware.GetIdentity(r.Context())
	if !ok {
		api.Fail(w, http.StatusUnauthorized, "unauthorized", "authentication required", requestID)
		return
	}

	id := chi.URLParam(r, "timesheetID")
	if err := h.Service.Delete(r.Context(), id, actor); err != nil {
		failDomain(w, err, requestID)
		return
	}

	h.record(r, "timesheet.delete", id, nil)
	api.Success(w, map[string]string{"id": id, "deleted": "true"}, requestID)
}

func (h *Handler) handleSaveEntry(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())
	actor, ok := middleware.GetIdentity(r.Context())
	if !ok {
		api.Fail(w, http.StatusUnauthorized, "unauthorized", "authentication required", requestID)
		return
	}

	v := shared.NewValidator()
	entryDate, ok := v.Date("date", chi.URLParam(r, "date"))
	if !ok {
		v.Reject(w, requestID)
		return
	}

	var input timesheet.EntryInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", requestID)
		return
	}
	if input.Date.IsZero() {
		input.Date = entryDate
	}

	id := chi.URLParam(r, "timesheetID")
	entry, err := h.Service.SaveEntry(r.Context(), id, entryDate, input, actor)
	if err != nil {
		failDomain(w, err, requestID)
		return
	}

	h.record(r, "timesheet.entry.save", id, map[string]any{
		"date":        timesheet.DateKey(entry.EntryDate),
		"status":      entry.Status,
		"dailySalary": entry.DailySalary,
	})
	api.Success(w, entry, requestID)
}

func (h *Handler) handleDeleteEntry(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())
	actor, ok := middleware.GetIdentity(r.Context())
	if !ok {
		api.Fail(w, http.StatusUnauthorized, "unauthorized", "authentication required", requestID)
		return
	}

	v := shared.NewValidator()
	entryDate, ok := v.Date("date", chi.URLParam(r, "date"))
	if !ok {
		v.Reject(w, requestID)
		return
	}

	id := chi.URLParam(r, "timesheetID")
	if err := h.Service.DeleteEntry(r.Context(), id, entryDate, actor); err != nil {
		failDomain(w, err, requestID)
		return
	}

	h.record(r, "timesheet.entry.delete", id, map[string]string{"date": timesheet.DateKey(entryDate)})
	api.Success(w, map[string]string{"date": timesheet.DateKey(entryDate), "deleted": "true"}, requestID)
}

type assignRequest struct {
	AssigneeID   string `json:"assigneeId"`
	AssigneeName string `json:"assigneeName"`
}

type reasonRequest struct {
	Reason string `json:"reason"`
	Note   string `json:"note"`
}

// transition handles the workflow actions that take no payload.
func (h *Handler) transition(w http.ResponseWriter, r *http.Request, action string,
	apply func(id string, actor identity.Identity) (timesheet.Timesheet, error)) {
	requestID := middleware.GetRequestID(r.Context())
	actor, ok := middleware.GetIdentity(r.Context())
	if !ok {
		api.Fail(w, http.StatusUnauthorized, "unauthorized", "authentication required", requestID)
		return
	}

	id := chi.URLParam(r, "timesheetID")
	ts, err := apply(id, actor)
	if err != nil {
		failDomain(w, err, requestID)
		return
	}

	h.record(r, action, id, map[string]string{"status": string(ts.Status)})
	api.Success(w, ts, requestID)
}

func (h *Handler) handleSubmit(w http.ResponseWriter, r *http.Request) {
	h.transition(w, r, "timesheet.submit", func(id string, actor identity.Identity) (timesheet.Timesheet, error) {
		return h.Service.Submit(r.Context(), id, actor)
	})
}

func (h *Handler) handleAssign(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())
	actor, ok := middleware.GetIdentity(r.Context())
	if !ok {
		api.Fail(w, http.StatusUnauthorized, "unauthorized", "authentication required", requestID)
		return
	}

	var payload assignRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", requestID)
		return
	}
	v := shared.NewValidator()
	v.Required("assigneeId", payload.AssigneeID, "assigneeId is required")
	if v.Reject(w, requestID) {
		return
	}

	id := chi.URLParam(r, "timesheetID")
	ts, err := h.Service.Assign(r.Context(), id, payload.AssigneeID, payload.AssigneeName, actor)
	if err != nil {
		failDomain(w, err, requestID)
		return
	}

	h.record(r, "timesheet.assign", id, payload)
	api.Success(w, ts, requestID)
}

func (h *Handler) handleApprove(w http.ResponseWriter, r *http.Request) {
	h.transition(w, r, "timesheet.approve", func(id string, actor identity.Identity) (timesheet.Timesheet, error) {
		return h.Service.Approve(r.Context(), id, actor)
	})
}

func (h *Handler) handleReject(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())
	actor, ok := middleware.GetIdentity(r.Context())
	if !ok {
		api.Fail(w, http.StatusUnauthorized, "unauthorized", "authentication required", requestID)
		return
	}

	var payload reasonRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", requestID)
		return
	}

	id := chi.URLParam(r, "timesheetID")
	ts, err := h.Service.Reject(r.Context(), id, payload.Reason, actor)
	if err != nil {
		failDomain(w, err, requestID)
		return
	}

	h.record(r, "timesheet.reject", id, payload)
	api.Success(w, ts, requestID)
}

func (h *Handler) handleClarify(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())
	actor, ok := middleware.GetIdentity(r.Context())
	if !ok {
		api.Fail(w, http.StatusUnauthorized, "unauthorized", "authentication required", requestID)
		return
	}

	var payload reasonRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", requestID)
		return
	}

	id := chi.URLParam(r, "timesheetID")
	ts, err := h.Service.RequestClarification(r.Context(), id, payload.Note, actor)
	if err != nil {
		failDomain(w, err, requestID)
		return
	}

	h.record(r, "timesheet.clarify", id, payload)
	api.Success(w, ts, requestID)
}

func (h *Handler) handleReopen(w http.ResponseWriter, r *http.Request) {
	h.transition(w, r, "timesheet.reopen", func(id string, actor identity.Identity) (timesheet.Timesheet, error) {
		return h.Service.Reopen(r.Context(), id, actor)
	})
}

func (h *Handler) handleExportPDF(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())
	if _, ok := middleware.GetIdentity(r.Context()); !ok {
		api.Fail(w, http.StatusUnauthorized, "unauthorized", "authentication required", requestID)
		return
	}

	ts, err := h.Service.Get(r.Context(), chi.URLParam(r, "timesheetID"))
	if err != nil {
		failDomain(w, err, requestID)
		return
	}
	emp, err := h.Employees.Get(r.Context(), ts.EmployeeID)
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "export_failed", "failed to load employee for export", requestID)
		return
	}

	doc := timesheet.BuildPDF(ts, emp)
	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=timesheet-%s.pdf", ts.ID))
	if err := doc.Output(w); err != nil {
		slog.Warn("pdf export write failed", "err", err, "requestId", requestID)
	}
}

func (h *Handler) handleExportCSV(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())
	if _, ok := middleware.GetIdentity(r.Context()); !ok {
		api.Fail(w, http.StatusUnauthorized, "unauthorized", "authentication required", requestID)
		return
	}

	ts, err := h.Service.Get(r.Context(), chi.URLParam(r, "timesheetID"))
	if err != nil {
		failDomain(w, err, requestID)
		return
	}

	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=timesheet-%s.csv", ts.ID))
	if err := timesheet.WriteCSV(w, ts); err != nil {
		slog.Warn("csv export write failed", "err", err, "requestId", requestID)
	}
}
