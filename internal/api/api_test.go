package api

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/Primadeb/pri2025Study/internal/models"
	"github.com/Primadeb/pri2025Study/internal/store"
	"github.com/Primadeb/pri2025Study/internal/study"
	"github.com/Primadeb/pri2025Study/internal/timer"
)

type testServer struct {
	handler http.Handler
	svc     *study.Service
	engine  *timer.Engine
}

func setupServer(t *testing.T, apiKey string) *testServer {
	t.Helper()
	db, err := store.Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("failed to open test db: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	svc := study.NewService(store.NewSessionStore(db), store.NewDeadlineStore(db), store.NewSettingsStore(db), logger)
	engine := timer.New(timer.Config{Study: 2 * time.Second, Break: time.Second})

	return &testServer{
		handler: NewRouter(db, svc, engine, apiKey, logger),
		svc:     svc,
		engine:  engine,
	}
}

func (s *testServer) do(t *testing.T, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	rec := httptest.NewRecorder()
	s.handler.ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	if err := json.NewDecoder(bytes.NewReader(rec.Body.Bytes())).Decode(&v); err != nil {
		t.Fatalf("decode response %q: %v", rec.Body.String(), err)
	}
	return v
}

func TestHealth(t *testing.T) {
	s := setupServer(t, "")
	rec := s.do(t, http.MethodGet, "/health", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	resp := decode[models.HealthResponse](t, rec)
	if resp.Status != "ok" || resp.DB.Status != "ok" {
		t.Errorf("unexpected health %+v", resp)
	}
	if rec.Header().Get("X-Request-ID") == "" {
		t.Error("expected X-Request-ID header")
	}
}

func TestLogin(t *testing.T) {
	s := setupServer(t, "")

	rec := s.do(t, http.MethodPost, "/login", `{"email":"a@uni.edu","password":"pw"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	rec = s.do(t, http.MethodPost, "/login", `{"email":"a@uni.edu","password":""}`)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
}

func TestAddMinutesAndWeekly(t *testing.T) {
	s := setupServer(t, "")
	monday := time.Date(2024, time.January, 1, 9, 0, 0, 0, time.UTC)

	s.svc.SetClock(func() time.Time { return monday })
	for _, body := range []string{`{"minutes":45}`, `{"text":"15"}`} {
		rec := s.do(t, http.MethodPost, "/sessions", body)
		if rec.Code != http.StatusCreated {
			t.Fatalf("POST /sessions %s: expected 201, got %d: %s", body, rec.Code, rec.Body.String())
		}
	}
	s.svc.SetClock(func() time.Time { return monday.AddDate(0, 0, 3) })
	if rec := s.do(t, http.MethodPost, "/sessions", `{"minutes":20}`); rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}

	t.Run("non-numeric text is skipped", func(t *testing.T) {
		rec := s.do(t, http.MethodPost, "/sessions", `{"text":"later"}`)
		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", rec.Code)
		}
		resp := decode[models.AddMinutesResponse](t, rec)
		if !resp.Skipped || resp.WeeklyTotal != 80 {
			t.Errorf("unexpected response %+v", resp)
		}
	})

	t.Run("negative minutes are skipped", func(t *testing.T) {
		rec := s.do(t, http.MethodPost, "/sessions", `{"minutes":-20}`)
		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
		}
		resp := decode[models.AddMinutesResponse](t, rec)
		if !resp.Skipped || resp.Session != nil || resp.WeeklyTotal != 80 {
			t.Errorf("unexpected response %+v", resp)
		}
	})

	t.Run("more than a day rejected", func(t *testing.T) {
		rec := s.do(t, http.MethodPost, "/sessions", `{"minutes":1441}`)
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
	})

	rec := s.do(t, http.MethodGet, "/weekly", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	weekly := decode[models.WeeklyResponse](t, rec)
	want := []int{60, 0, 0, 20, 0, 0, 0}
	for i, m := range want {
		if weekly.Days[i].Minutes != m {
			t.Errorf("day %d: expected %d, got %d", i, m, weekly.Days[i].Minutes)
		}
	}
	if weekly.MaxDay != 60 || weekly.WeeklyTotal != 80 || weekly.DailyAverage != 11 {
		t.Errorf("unexpected weekly summary %+v", weekly)
	}

	list := decode[map[string][]models.StudySession](t, s.do(t, http.MethodGet, "/sessions?limit=2", ""))
	if len(list["sessions"]) != 2 {
		t.Errorf("expected 2 sessions, got %d", len(list["sessions"]))
	}
}

func TestQuickAddUsesSettings(t *testing.T) {
	s := setupServer(t, "")

	rec := s.do(t, http.MethodPut, "/settings", `{"quickAddMinutes":20,"focusTimeMinutes":40}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	rec = s.do(t, http.MethodPost, "/sessions/quick", "")
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}
	resp := decode[models.AddMinutesResponse](t, rec)
	if resp.Session == nil || resp.Session.Minutes != 20 || resp.WeeklyTotal != 20 {
		t.Errorf("unexpected quick add %+v", resp)
	}
}

func TestSettingsValidation(t *testing.T) {
	s := setupServer(t, "")

	rec := s.do(t, http.MethodGet, "/settings", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if got := decode[models.Settings](t, rec); got != models.DefaultSettings() {
		t.Errorf("expected defaults, got %+v", got)
	}

	tests := []struct {
		name string
		body string
	}{
		{"zero quick add", `{"quickAddMinutes":0,"focusTimeMinutes":30}`},
		{"focus too long", `{"quickAddMinutes":30,"focusTimeMinutes":900}`},
		{"unknown field", `{"quickAddMinutes":30,"focusTimeMinutes":30,"x":1}`},
		{"not json", `nope`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := s.do(t, http.MethodPut, "/settings", tt.body)
			if rec.Code != http.StatusBadRequest {
				t.Errorf("expected 400, got %d", rec.Code)
			}
		})
	}
}

func TestDeadlines(t *testing.T) {
	s := setupServer(t, "")

	rec := s.do(t, http.MethodPost, "/deadlines", `{"title":"","dueText":""}`)
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}
	blank := decode[models.Deadline](t, rec)
	if blank.Title != "Untitled" || blank.DueText != "TBD" {
		t.Fatalf("expected placeholders, got %+v", blank)
	}

	rec = s.do(t, http.MethodPost, "/deadlines", `{"title":"Essay","dueText":"2025-05-01"}`)
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}

	list := decode[map[string][]models.Deadline](t, s.do(t, http.MethodGet, "/deadlines", ""))
	if len(list["deadlines"]) != 2 || list["deadlines"][0].Title != "Essay" {
		t.Fatalf("expected newest first, got %+v", list)
	}

	if rec := s.do(t, http.MethodDelete, "/deadlines/"+itoa(blank.ID), ""); rec.Code != http.StatusNoContent {
		t.Fatalf("expected 204, got %d", rec.Code)
	}
	if rec := s.do(t, http.MethodDelete, "/deadlines/"+itoa(blank.ID), ""); rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
	if rec := s.do(t, http.MethodDelete, "/deadlines/abc", ""); rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestTimerIntents(t *testing.T) {
	s := setupServer(t, "")

	resp := decode[models.TimerResponse](t, s.do(t, http.MethodPost, "/timer/start", ""))
	if !resp.Running || resp.Phase != "study" || resp.RemainingSeconds != 2 {
		t.Fatalf("after start: %+v", resp)
	}

	s.engine.Tick(time.Now())
	s.engine.Tick(time.Now())
	resp = decode[models.TimerResponse](t, s.do(t, http.MethodGet, "/timer", ""))
	if resp.Phase != "break" || resp.RemainingSeconds != 1 || resp.Clock != "00:01" {
		t.Fatalf("after two ticks: %+v", resp)
	}

	resp = decode[models.TimerResponse](t, s.do(t, http.MethodPost, "/timer/skip", ""))
	if resp.Phase != "study" || !resp.Running {
		t.Fatalf("after skip: %+v", resp)
	}

	resp = decode[models.TimerResponse](t, s.do(t, http.MethodPost, "/timer/pause", ""))
	if resp.Running {
		t.Fatalf("after pause: %+v", resp)
	}

	resp = decode[models.TimerResponse](t, s.do(t, http.MethodPost, "/timer/reset", ""))
	if resp.Running || resp.Phase != "study" || resp.RemainingSeconds != 2 {
		t.Fatalf("after reset: %+v", resp)
	}
}

func TestDashboard(t *testing.T) {
	s := setupServer(t, "")
	if _, err := s.svc.AddDeadline(t.Context(), "Exam", "Monday"); err != nil {
		t.Fatal(err)
	}

	rec := s.do(t, http.MethodGet, "/dashboard", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	resp := decode[models.DashboardResponse](t, rec)
	if resp.TodayLabel == "" || len(resp.Deadlines) != 1 || resp.Settings != models.DefaultSettings() {
		t.Errorf("unexpected dashboard %+v", resp)
	}
}

func TestBearerAuth(t *testing.T) {
	s := setupServer(t, "secret")

	if rec := s.do(t, http.MethodGet, "/weekly", ""); rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
	if rec := s.do(t, http.MethodGet, "/health", ""); rec.Code != http.StatusOK {
		t.Fatalf("health should stay open, got %d", rec.Code)
	}

	req := httptest.NewRequest(http.MethodGet, "/weekly", nil)
	req.Header.Set("Authorization", "Bearer secret")
	rec := httptest.NewRecorder()
	s.handler.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 with token, got %d", rec.Code)
	}
}

func TestMetricsEndpoint(t *testing.T) {
	s := setupServer(t, "")
	s.do(t, http.MethodGet, "/weekly", "")

	rec := s.do(t, http.MethodGet, "/metrics", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "studytime_http_requests_total") {
		t.Error("expected request counter in exposition")
	}
}

func itoa(id int64) string {
	return strconv.FormatInt(id, 10)
}
