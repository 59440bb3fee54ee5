package timesheethandler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"timetrack/internal/domain/audit"
	"timetrack/internal/domain/employee"
	"timetrack/internal/domain/timesheet"
	"timetrack/internal/identity"
	"timetrack/internal/transport/http/middleware"
)

type memStore struct {
	sheets  map[string]timesheet.Timesheet
	entries map[string]map[string]timesheet.DailyEntry
	nextID  int
}

func newMemStore() *memStore {
	return &memStore{
		sheets:  map[string]timesheet.Timesheet{},
		entries: map[string]map[string]timesheet.DailyEntry{},
	}
}

func (m *memStore) CreateTimesheet(_ context.Context, ts timesheet.Timesheet) (string, error) {
	m.nextID++
	ts.ID = "ts-" + string(rune('0'+m.nextID))
	ts.CreatedAt = time.Now()
	ts.UpdatedAt = ts.CreatedAt
	m.sheets[ts.ID] = ts
	m.entries[ts.ID] = map[string]timesheet.DailyEntry{}
	return ts.ID, nil
}

func (m *memStore) GetTimesheet(_ context.Context, id string) (timesheet.Timesheet, error) {
	ts, ok := m.sheets[id]
	if !ok {
		return timesheet.Timesheet{}, timesheet.ErrNotFound
	}
	return ts, nil
}

func (m *memStore) ListTimesheets(_ context.Context, employeeID string, _, _ int) ([]timesheet.Timesheet, error) {
	var out []timesheet.Timesheet
	for _, ts := range m.sheets {
		if employeeID == "" || ts.EmployeeID == employeeID {
			out = append(out, ts)
		}
	}
	return out, nil
}

func (m *memStore) CountTimesheets(ctx context.Context, employeeID string) (int, error) {
	sheets, _ := m.ListTimesheets(ctx, employeeID, 0, 0)
	return len(sheets), nil
}

func (m *memStore) UpdateTimesheetStatus(_ context.Context, ts timesheet.Timesheet) error {
	if _, ok := m.sheets[ts.ID]; !ok {
		return timesheet.ErrNotFound
	}
	m.sheets[ts.ID] = ts
	return nil
}

func (m *memStore) DeleteTimesheet(_ context.Context, id string) error {
	if _, ok := m.sheets[id]; !ok {
		return timesheet.ErrNotFound
	}
	delete(m.sheets, id)
	delete(m.entries, id)
	return nil
}

func (m *memStore) ListEntries(_ context.Context, timesheetID string) ([]timesheet.DailyEntry, error) {
	var out []timesheet.DailyEntry
	for _, entry := range m.entries[timesheetID] {
		out = append(out, entry)
	}
	return out, nil
}

func (m *memStore) GetEntry(_ context.Context, timesheetID string, date time.Time) (timesheet.DailyEntry, error) {
	entry, ok := m.entries[timesheetID][timesheet.DateKey(date)]
	if !ok {
		return timesheet.DailyEntry{}, timesheet.ErrEntryNotFound
	}
	return entry, nil
}

func (m *memStore) FindEntriesByDate(_ context.Context, employeeID string, date time.Time, excludeTimesheetID string) ([]timesheet.Conflict, error) {
	var conflicts []timesheet.Conflict
	key := timesheet.DateKey(date)
	for tsID, entries := range m.entries {
		if tsID == excludeTimesheetID {
			continue
		}
		if entry, ok := entries[key]; ok && entry.EmployeeID == employeeID {
			conflicts = append(conflicts, timesheet.Conflict{TimesheetID: tsID, Entry: entry})
		}
	}
	return conflicts, nil
}

func (m *memStore) SaveEntry(_ context.Context, entry timesheet.DailyEntry, replaceDate *time.Time) error {
	if replaceDate != nil {
		delete(m.entries[entry.TimesheetID], timesheet.DateKey(*replaceDate))
	}
	if m.entries[entry.TimesheetID] == nil {
		m.entries[entry.TimesheetID] = map[string]timesheet.DailyEntry{}
	}
	m.entries[entry.TimesheetID][timesheet.DateKey(entry.EntryDate)] = entry
	return nil
}

func (m *memStore) DeleteEntry(_ context.Context, timesheetID string, date time.Time) error {
	if _, ok := m.entries[timesheetID][timesheet.DateKey(date)]; !ok {
		return timesheet.ErrEntryNotFound
	}
	delete(m.entries[timesheetID], timesheet.DateKey(date))
	return nil
}

type staticDirectory struct {
	employees map[string]employee.Employee
}

func (d *staticDirectory) Get(_ context.Context, id string) (employee.Employee, error) {
	emp, ok := d.employees[id]
	if !ok {
		return employee.Employee{}, employee.ErrNotFound
	}
	return emp, nil
}

type auditSink struct {
	events int
}

func (a *auditSink) Exec(context.Context, string, ...any) (pgconn.CommandTag, error) {
	a.events++
	return pgconn.NewCommandTag("INSERT 0 1"), nil
}

var (
	testCreator = identity.Identity{UserID: "u1", AuthID: "u1", DisplayName: "Priya Menon", Email: "priya@example.com", Role: "user"}
	testAdmin   = identity.Identity{UserID: "adm1", AuthID: "adm1", DisplayName: "Site Admin", Email: "admin@example.com", Role: "admin"}
)

type testEnv struct {
	router *chi.Mux
	store  *memStore
	sink   *auditSink
}

func newTestEnv() *testEnv {
	store := newMemStore()
	directory := &staticDirectory{employees: map[string]employee.Employee{
		"emp-1": {ID: "emp-1", Name: "Ravi Kumar", MonthlySalary: 9000, JobRole: "Technician"},
	}}
	sink := &auditSink{}

	service := timesheet.NewService(store, directory, nil)
	handler := NewHandler(service, nil, audit.New(sink))

	router := chi.NewRouter()
	router.Route("/api/v1", func(r chi.Router) {
		handler.RegisterRoutes(r)
	})
	return &testEnv{router: router, store: store, sink: sink}
}

func (e *testEnv) do(t *testing.T, method, path string, body any, actor *identity.Identity) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal body: %v", err)
		}
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	if actor != nil {
		req = req.WithContext(middleware.WithIdentity(req.Context(), *actor))
	}
	rec := httptest.NewRecorder()
	e.router.ServeHTTP(rec, req)
	return rec
}

type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   *struct {
		Code    string          `json:"code"`
		Message string          `json:"message"`
		Details json.RawMessage `json:"details"`
	} `json:"error"`
}

func decodeEnvelope(t *testing.T, rec *httptest.ResponseRecorder) envelope {
	t.Helper()
	var env envelope
	if err := json.Unmarshal(rec.Body.Bytes(), &env); err != nil {
		t.Fatalf("decode envelope: %v (%s)", err, rec.Body.String())
	}
	return env
}

func TestUnauthenticatedRequestRejected(t *testing.T) {
	env := newTestEnv()
	rec := env.do(t, http.MethodPost, "/api/v1/timesheets", map[string]string{"employeeId": "emp-1", "periodKey": "2024-03"}, nil)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
}

func TestCreateAndSaveEntryJourney(t *testing.T) {
	env := newTestEnv()

	rec := env.do(t, http.MethodPost, "/api/v1/timesheets", map[string]string{"employeeId": "emp-1", "periodKey": "2024-03"}, &testCreator)
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d (%s)", rec.Code, rec.Body.String())
	}
	created := decodeEnvelope(t, rec)
	var ts timesheet.Timesheet
	if err := json.Unmarshal(created.Data, &ts); err != nil {
		t.Fatalf("decode timesheet: %v", err)
	}
	if ts.Status != timesheet.StatusDraft {
		t.Fatalf("expected draft status, got %s", ts.Status)
	}

	rec = env.do(t, http.MethodPut, "/api/v1/timesheets/"+ts.ID+"/entries/2024-03-11",
		map[string]any{"status": "present"}, &testCreator)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d (%s)", rec.Code, rec.Body.String())
	}
	saved := decodeEnvelope(t, rec)
	var entry timesheet.DailyEntry
	if err := json.Unmarshal(saved.Data, &entry); err != nil {
		t.Fatalf("decode entry: %v", err)
	}
	if entry.DailySalary != 300 {
		t.Fatalf("expected daily salary 300 for 9000 monthly, got %v", entry.DailySalary)
	}
	if entry.ClientName != timesheet.DefaultClientName {
		t.Fatalf("expected default client name, got %q", entry.ClientName)
	}
	if env.sink.events == 0 {
		t.Fatal("expected audit events for create and entry save")
	}
}

func TestSaveEntryDuplicateAcrossTimesheets(t *testing.T) {
	env := newTestEnv()

	first := decodeEnvelope(t, env.do(t, http.MethodPost, "/api/v1/timesheets", map[string]string{"employeeId": "emp-1", "periodKey": "2024-03"}, &testCreator))
	var tsA timesheet.Timesheet
	_ = json.Unmarshal(first.Data, &tsA)
	second := decodeEnvelope(t, env.do(t, http.MethodPost, "/api/v1/timesheets", map[string]string{"employeeId": "emp-1", "periodKey": "2024-03"}, &testCreator))
	var tsB timesheet.Timesheet
	_ = json.Unmarshal(second.Data, &tsB)

	rec := env.do(t, http.MethodPut, "/api/v1/timesheets/"+tsA.ID+"/entries/2024-03-11", map[string]any{"status": "present"}, &testCreator)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected first save to pass, got %d (%s)", rec.Code, rec.Body.String())
	}

	rec = env.do(t, http.MethodPut, "/api/v1/timesheets/"+tsB.ID+"/entries/2024-03-11", map[string]any{"status": "present"}, &testCreator)
	if rec.Code != http.StatusConflict {
		t.Fatalf("expected 409 for duplicate date, got %d (%s)", rec.Code, rec.Body.String())
	}
	dup := decodeEnvelope(t, rec)
	if dup.Error == nil || dup.Error.Code != "duplicate_entry" {
		t.Fatalf("expected duplicate_entry code, got %+v", dup.Error)
	}
	var details struct {
		Conflicts []timesheet.Conflict `json:"conflicts"`
	}
	if err := json.Unmarshal(dup.Error.Details, &details); err != nil {
		t.Fatalf("decode conflict details: %v", err)
	}
	if len(details.Conflicts) != 1 || details.Conflicts[0].TimesheetID != tsA.ID {
		t.Fatalf("expected one conflict pointing at %s, got %+v", tsA.ID, details.Conflicts)
	}
}

func TestSubmittedTimesheetLockedForCreator(t *testing.T) {
	env := newTestEnv()

	created := decodeEnvelope(t, env.do(t, http.MethodPost, "/api/v1/timesheets", map[string]string{"employeeId": "emp-1", "periodKey": "2024-03"}, &testCreator))
	var ts timesheet.Timesheet
	_ = json.Unmarshal(created.Data, &ts)

	rec := env.do(t, http.MethodPost, "/api/v1/timesheets/"+ts.ID+"/submit", nil, &testCreator)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected submit to pass, got %d (%s)", rec.Code, rec.Body.String())
	}

	rec = env.do(t, http.MethodPut, "/api/v1/timesheets/"+ts.ID+"/entries/2024-03-12", map[string]any{"status": "present"}, &testCreator)
	if rec.Code != http.StatusForbidden {
		t.Fatalf("expected 403 for submitted sheet without assignment, got %d", rec.Code)
	}

	// Admins can still edit while the sheet is in review.
	rec = env.do(t, http.MethodPut, "/api/v1/timesheets/"+ts.ID+"/entries/2024-03-12", map[string]any{"status": "present"}, &testAdmin)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected admin edit to pass, got %d (%s)", rec.Code, rec.Body.String())
	}
}

func TestInvalidTransitionConflict(t *testing.T) {
	env := newTestEnv()

	created := decodeEnvelope(t, env.do(t, http.MethodPost, "/api/v1/timesheets", map[string]string{"employeeId": "emp-1", "periodKey": "2024-03"}, &testCreator))
	var ts timesheet.Timesheet
	_ = json.Unmarshal(created.Data, &ts)

	rec := env.do(t, http.MethodPost, "/api/v1/timesheets/"+ts.ID+"/approve", nil, &testAdmin)
	if rec.Code != http.StatusConflict {
		t.Fatalf("expected 409 approving a draft, got %d (%s)", rec.Code, rec.Body.String())
	}
	env2 := decodeEnvelope(t, rec)
	if env2.Error == nil || env2.Error.Code != "invalid_transition" {
		t.Fatalf("expected invalid_transition code, got %+v", env2.Error)
	}
}

func TestApprovedTimesheetNotDeletable(t *testing.T) {
	env := newTestEnv()

	created := decodeEnvelope(t, env.do(t, http.MethodPost, "/api/v1/timesheets", map[string]string{"employeeId": "emp-1", "periodKey": "2024-03"}, &testCreator))
	var ts timesheet.Timesheet
	_ = json.Unmarshal(created.Data, &ts)

	stored := env.store.sheets[ts.ID]
	stored.Status = timesheet.StatusApproved
	env.store.sheets[ts.ID] = stored

	// Approved is terminal for everyone, so the permission check fires
	// before the deletable check.
	rec := env.do(t, http.MethodDelete, "/api/v1/timesheets/"+ts.ID, nil, &testAdmin)
	if rec.Code != http.StatusForbidden {
		t.Fatalf("expected 403 deleting an approved sheet, got %d", rec.Code)
	}

	rec = env.do(t, http.MethodDelete, "/api/v1/timesheets/"+ts.ID+"/entries/2024-03-11", nil, &testAdmin)
	if rec.Code != http.StatusForbidden {
		t.Fatalf("expected 403 editing an approved sheet, got %d", rec.Code)
	}
}

func TestDraftTimesheetDeletable(t *testing.T) {
	env := newTestEnv()

	created := decodeEnvelope(t, env.do(t, http.MethodPost, "/api/v1/timesheets", map[string]string{"employeeId": "emp-1", "periodKey": "2024-03"}, &testCreator))
	var ts timesheet.Timesheet
	_ = json.Unmarshal(created.Data, &ts)

	rec := env.do(t, http.MethodDelete, "/api/v1/timesheets/"+ts.ID, nil, &testCreator)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 deleting a draft, got %d (%s)", rec.Code, rec.Body.String())
	}

	rec = env.do(t, http.MethodGet, "/api/v1/timesheets/"+ts.ID, nil, &testCreator)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404 after delete, got %d", rec.Code)
	}
}
