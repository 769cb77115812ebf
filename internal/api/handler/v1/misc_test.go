package v1

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/km-silat/km-silat-api/internal/api/handler/v1/response"
	"github.com/km-silat/km-silat-api/internal/domain"
	"github.com/km-silat/km-silat-api/internal/service"
)

type stubScheduleService struct {
	lastID int
}

func (s *stubScheduleService) ListSchedule(context.Context) ([]domain.ScheduleEntry, error) {
	return []domain.ScheduleEntry{{ID: 0, DayName: "Minggu", Status: domain.ScheduleStatusRest}}, nil
}

func (s *stubScheduleService) UpdateSchedule(_ context.Context, id int, update domain.ScheduleUpdate) (domain.ScheduleEntry, error) {
	s.lastID = id
	if id < 0 || id >= domain.ScheduleDays {
		return domain.ScheduleEntry{}, service.ErrInvalidScheduleID
	}
	return domain.ScheduleEntry{ID: id, DayName: domain.DayNames[id], Status: *update.Status}, nil
}

func TestScheduleHandler(t *testing.T) {
	svc := &stubScheduleService{}
	h := NewScheduleHandler(svc)
	r := newTestRouter()
	r.GET("/schedule", h.HandleListSchedule)
	r.PUT("/schedule/:id", h.HandleUpdateSchedule)

	rec := performRequest(r, http.MethodGet, "/schedule", "")
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = performRequest(r, http.MethodPut, "/schedule/3", `{"status":"Latihan","time":"16:00"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	entry := decodeBody[domain.ScheduleEntry](t, rec)
	assert.Equal(t, "Rabu", entry.DayName)
	assert.Equal(t, domain.ScheduleStatusTraining, entry.Status)

	rec = performRequest(r, http.MethodPut, "/schedule/9", `{"status":"Latihan"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, 9, svc.lastID)

	rec = performRequest(r, http.MethodPut, "/schedule/senin", `{"status":"Latihan"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

type stubCounter struct {
	count int64
	err   error
}

func (s stubCounter) CountCategories(context.Context) (int64, error) {
	return s.count, s.err
}

func (s stubCounter) GetStats(context.Context) (domain.Stats, error) {
	return domain.Stats{TotalMembers: s.count, TotalMaterials: s.count * 2}, s.err
}

func TestHealthHandlers(t *testing.T) {
	r := newTestRouter()
	r.GET("/", HandleHealthcheck)
	r.GET("/db-health", NewHealthHandler(stubCounter{count: 3}).HandleDBHealth)
	r.GET("/db-health-down", NewHealthHandler(stubCounter{err: errors.New("dial tcp: refused")}).HandleDBHealth)

	rec := performRequest(r, http.MethodGet, "/", "")
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = performRequest(r, http.MethodGet, "/db-health", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, response.DBHealth{Status: "ok", Categories: 3}, decodeBody[response.DBHealth](t, rec))

	rec = performRequest(r, http.MethodGet, "/db-health-down", "")
	require.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, "error", decodeBody[response.DBHealth](t, rec).Status)
	assert.NotContains(t, rec.Body.String(), "refused")
}

func TestStatsHandler(t *testing.T) {
	r := newTestRouter()
	r.GET("/stats", NewStatsHandler(stubCounter{count: 4}).HandleGetStats)
	r.GET("/stats-down", NewStatsHandler(stubCounter{err: errors.New("boom")}).HandleGetStats)

	rec := performRequest(r, http.MethodGet, "/stats", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"total_members":4,"total_materials":8}`, rec.Body.String())

	rec = performRequest(r, http.MethodGet, "/stats-down", "")
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}
