package router

import (
	"context"
	"encoding/json"
	"hrreminder/internal/application/dto"
	"hrreminder/internal/application/service"
	"hrreminder/internal/domain/reminder"
	"hrreminder/internal/infrastructure/database/sqlite"
	"hrreminder/internal/infrastructure/scheduler"
	"hrreminder/internal/interfaces/api/handler"
	"hrreminder/internal/pkg/logger"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testApp struct {
	e         *echo.Echo
	scheduler service.SchedulerService
}

func newTestApp(t *testing.T) *testApp {
	t.Helper()
	log := logger.Nop()
	db, err := sqlite.NewDB(":memory:", "silent")
	require.NoError(t, err)
	t.Cleanup(func() { _ = sqlite.CloseDB(db) })

	candidateRepo := sqlite.NewCandidateRepository(db)
	cfg := service.SchedulerConfig{
		Reminder:     reminder.Config{NowWindow: time.Minute, Horizon: 30 * time.Minute, BucketSize: 5 * time.Minute, Location: time.UTC},
		PollInterval: time.Hour,
	}
	schedulerSvc := service.NewSchedulerService(scheduler.NewScheduler(log), candidateRepo, nil, cfg, log)
	t.Cleanup(schedulerSvc.Stop)

	sessionSvc := service.NewSessionService(sqlite.NewSessionRepository(db), schedulerSvc, log)
	candidateSvc := service.NewCandidateService(candidateRepo, time.UTC, log)

	e := NewRouter(&Config{
		SessionHandler:   handler.NewSessionHandler(sessionSvc, log),
		CandidateHandler: handler.NewCandidateHandler(candidateSvc, log),
		Logger:           log,
	})
	return &testApp{e: e, scheduler: schedulerSvc}
}

func (a *testApp) do(t *testing.T, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	a.e.ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &v), rec.Body.String())
	return v
}

func TestRouter_Healthz(t *testing.T) {
	app := newTestApp(t)
	rec := app.do(t, http.MethodGet, "/healthz", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "ok", rec.Body.String())
}

func TestRouter_ReminderFlow(t *testing.T) {
	app := newTestApp(t)

	rec := app.do(t, http.MethodPost, "/api/sessions", `{"username":"hr.ana"}`)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	session := decode[dto.SessionResponse](t, rec)
	require.NotEmpty(t, session.ID)

	rec = app.do(t, http.MethodPost, "/api/candidates", `{"name":"Alice","job_id":"job-1"}`)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	candidate := decode[dto.CandidateResponse](t, rec)

	start := time.Now().UTC().Add(10 * time.Minute)
	body := `{"date":"` + start.Format("2006-01-02") + `","time":"` + start.Format("15:04") + `","interviewers":["ana"]}`
	rec = app.do(t, http.MethodPut, "/api/candidates/"+itoa(candidate.ID)+"/interview", body)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	scheduled := decode[dto.CandidateResponse](t, rec)
	require.NotNil(t, scheduled.Interview)
	assert.Equal(t, "approved", scheduled.Status)

	rec = app.do(t, http.MethodGet, "/api/sessions/"+session.ID+"/reminder", "")
	assert.Equal(t, http.StatusNoContent, rec.Code)

	_, fired, err := app.scheduler.Tick(context.Background(), session.ID)
	require.NoError(t, err)
	require.True(t, fired)

	rec = app.do(t, http.MethodGet, "/api/sessions/"+session.ID+"/reminder", "")
	require.Equal(t, http.StatusOK, rec.Code)
	active := decode[dto.ReminderResponse](t, rec)
	assert.Equal(t, "upcoming", active.Kind)
	assert.Equal(t, candidate.ID, active.CandidateID)
	assert.Equal(t, 10, active.MinutesBefore)
	assert.Equal(t, []string{"ana"}, active.Interviewers)

	rec = app.do(t, http.MethodDelete, "/api/sessions/"+session.ID+"/reminder", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, decode[dto.DismissResponse](t, rec).Dismissed)

	rec = app.do(t, http.MethodDelete, "/api/sessions/"+session.ID, "")
	assert.Equal(t, http.StatusNoContent, rec.Code)
	rec = app.do(t, http.MethodGet, "/api/sessions/"+session.ID+"/reminder", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestRouter_Agenda(t *testing.T) {
	app := newTestApp(t)
	var ids []string
	for _, name := range []string{"Alice", "Bob"} {
		rec := app.do(t, http.MethodPost, "/api/candidates", `{"name":"`+name+`","job_id":"job-1"}`)
		require.Equal(t, http.StatusCreated, rec.Code)
		ids = append(ids, itoa(decode[dto.CandidateResponse](t, rec).ID))
	}

	rec := app.do(t, http.MethodPost, "/api/interviews/bulk",
		`{"candidate_ids":[`+strings.Join(ids, ",")+`],"interview":{"date":"2099-01-02","time":"10:00","interviewers":["ana","bruno"],"notes":"x"}}`)
	require.Equal(t, http.StatusNoContent, rec.Code, rec.Body.String())

	rec = app.do(t, http.MethodGet, "/api/interviews?mode=upcoming&interviewer=bruno", "")
	require.Equal(t, http.StatusOK, rec.Code)
	items := decode[[]dto.AgendaItem](t, rec)
	require.Len(t, items, 2)
	assert.Equal(t, "scheduled", string(items[0].State))
	assert.Empty(t, items[0].Notes)

	rec = app.do(t, http.MethodPost, "/api/candidates/"+ids[0]+"/interview/no-show", `{"no_show":true}`)
	require.Equal(t, http.StatusNoContent, rec.Code)

	rec = app.do(t, http.MethodPost, "/api/interviews/bulk-cancel", `{"candidate_ids":[`+ids[1]+`]}`)
	require.Equal(t, http.StatusNoContent, rec.Code)

	rec = app.do(t, http.MethodGet, "/api/interviews", "")
	require.Equal(t, http.StatusOK, rec.Code)
	items = decode[[]dto.AgendaItem](t, rec)
	require.Len(t, items, 1)
	assert.Equal(t, "no_show", string(items[0].State))

	rec = app.do(t, http.MethodDelete, "/api/candidates/"+ids[0]+"/interview", "")
	assert.Equal(t, http.StatusNoContent, rec.Code)

	rec = app.do(t, http.MethodGet, "/api/candidates", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, decode[[]dto.CandidateResponse](t, rec), 2)
}

func TestRouter_ErrorMapping(t *testing.T) {
	app := newTestApp(t)
	rec := app.do(t, http.MethodPost, "/api/candidates", `{"name":"Alice"}`)
	require.Equal(t, http.StatusCreated, rec.Code)
	id := itoa(decode[dto.CandidateResponse](t, rec).ID)

	tests := []struct {
		name   string
		method string
		path   string
		body   string
		want   int
	}{
		{name: "unknown session", method: http.MethodGet, path: "/api/sessions/nope", want: http.StatusNotFound},
		{name: "empty username", method: http.MethodPost, path: "/api/sessions", body: `{"username":""}`, want: http.StatusBadRequest},
		{name: "malformed body", method: http.MethodPost, path: "/api/sessions", body: `{"username":`, want: http.StatusBadRequest},
		{name: "unknown candidate", method: http.MethodGet, path: "/api/candidates/999", want: http.StatusNotFound},
		{name: "non numeric id", method: http.MethodGet, path: "/api/candidates/abc", want: http.StatusBadRequest},
		{name: "bad date", method: http.MethodPut, path: "/api/candidates/" + id + "/interview", body: `{"date":"tomorrow","time":"10:00","interviewers":["ana"]}`, want: http.StatusBadRequest},
		{name: "no interview to flag", method: http.MethodPost, path: "/api/candidates/" + id + "/interview/no-show", body: `{"no_show":true}`, want: http.StatusNotFound},
		{name: "bad agenda mode", method: http.MethodGet, path: "/api/interviews?mode=later", want: http.StatusBadRequest},
		{name: "empty bulk", method: http.MethodPost, path: "/api/interviews/bulk-cancel", body: `{"candidate_ids":[]}`, want: http.StatusBadRequest},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := app.do(t, tt.method, tt.path, tt.body)
			assert.Equal(t, tt.want, rec.Code, rec.Body.String())
			assert.NotEmpty(t, decode[handler.ErrorResponse](t, rec).Error)
		})
	}
}

func itoa(id uint) string {
	return strconv.FormatUint(uint64(id), 10)
}
