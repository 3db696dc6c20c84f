package progress_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/2beens/fitprogress/internal/progress"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

type handlerMocks struct {
	service  *MockentriesService
	renderer *MockchartRenderer
	cache    *MockchartCache
}

func newTestRouter(t *testing.T) (*mux.Router, handlerMocks) {
	ctrl := gomock.NewController(t)
	mocks := handlerMocks{
		service:  NewMockentriesService(ctrl),
		renderer: NewMockchartRenderer(ctrl),
		cache:    NewMockchartCache(ctrl),
	}
	r := mux.NewRouter()
	progress.NewHandler(mocks.service, mocks.renderer, mocks.cache).SetupRoutes(r)
	return r, mocks
}

func TestHandler_HandleSave(t *testing.T) {
	r, mocks := newTestRouter(t)

	body := []byte(`{"date":"2025-07-06","weight":73.8,"waist":31.4,"calories":1825,"protein":150,"phase":"cutting"}`)
	req, err := http.NewRequest("POST", "/entries", bytes.NewBuffer(body))
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")

	mocks.service.EXPECT().
		Save(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, entry progress.Entry) (*progress.Entry, bool, error) {
			assert.Equal(t, "2025-07-06", entry.DateKey())
			assert.Equal(t, progress.PhaseCutting, entry.Phase)
			require.NotNil(t, entry.Calories)
			assert.Equal(t, 1825, *entry.Calories)
			entry.ID = 12
			return &entry, true, nil
		})

	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, req)
	require.Equal(t, http.StatusCreated, rr.Code)

	var saved progress.Entry
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &saved))
	assert.Equal(t, 12, saved.ID)
	assert.Equal(t, 73.8, *saved.Weight)
}

func TestHandler_HandleSave_Updated(t *testing.T) {
	r, mocks := newTestRouter(t)

	req, err := http.NewRequest("POST", "/entries", bytes.NewBufferString(`{"date":"2025-07-06","weight":74}`))
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")

	mocks.service.EXPECT().
		Save(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, entry progress.Entry) (*progress.Entry, bool, error) {
			return &entry, false, nil
		})

	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, req)
	assert.Equal(t, http.StatusOK, rr.Code)
}

func TestHandler_HandleSave_BadRequest(t *testing.T) {
	r, _ := newTestRouter(t)

	for _, tc := range []struct {
		name        string
		contentType string
		body        string
	}{
		{name: "content type", contentType: "text/plain", body: `{"date":"2025-07-06"}`},
		{name: "invalid json", contentType: "application/json", body: `{"date":`},
		{name: "missing date", contentType: "application/json", body: `{"weight":80}`},
		{name: "unknown phase", contentType: "application/json", body: `{"date":"2025-07-06","phase":"maintenance"}`},
		{name: "negative weight", contentType: "application/json", body: `{"date":"2025-07-06","weight":-3}`},
	} {
		t.Run(tc.name, func(t *testing.T) {
			req, err := http.NewRequest("POST", "/entries", bytes.NewBufferString(tc.body))
			require.NoError(t, err)
			req.Header.Set("Content-Type", tc.contentType)

			rr := httptest.NewRecorder()
			r.ServeHTTP(rr, req)
			assert.Equal(t, http.StatusBadRequest, rr.Code)
		})
	}
}

func TestHandler_HandleGet(t *testing.T) {
	r, mocks := newTestRouter(t)

	date := time.Date(2025, 7, 6, 0, 0, 0, 0, time.UTC)
	mocks.service.EXPECT().
		Get(gomock.Any(), date).
		Return(&progress.Entry{ID: 3, Date: date, Phase: progress.PhaseBulking}, nil)
	mocks.service.EXPECT().
		Get(gomock.Any(), date.AddDate(0, 0, 1)).
		Return(nil, progress.ErrEntryNotFound)

	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, httptest.NewRequest("GET", "/entries/2025-07-06", nil))
	require.Equal(t, http.StatusOK, rr.Code)

	var entry progress.Entry
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &entry))
	assert.Equal(t, 3, entry.ID)
	assert.Equal(t, progress.PhaseBulking, entry.Phase)

	rr = httptest.NewRecorder()
	r.ServeHTTP(rr, httptest.NewRequest("GET", "/entries/2025-07-07", nil))
	assert.Equal(t, http.StatusNotFound, rr.Code)

	rr = httptest.NewRecorder()
	r.ServeHTTP(rr, httptest.NewRequest("GET", "/entries/yesterday", nil))
	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestHandler_HandleDelete(t *testing.T) {
	r, mocks := newTestRouter(t)

	date := time.Date(2025, 7, 6, 0, 0, 0, 0, time.UTC)
	gomock.InOrder(
		mocks.service.EXPECT().Delete(gomock.Any(), date).Return(nil),
		mocks.service.EXPECT().Delete(gomock.Any(), date).Return(progress.ErrEntryNotFound),
	)

	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, httptest.NewRequest("DELETE", "/entries/2025-07-06", nil))
	assert.Equal(t, http.StatusNoContent, rr.Code)

	rr = httptest.NewRecorder()
	r.ServeHTTP(rr, httptest.NewRequest("DELETE", "/entries/2025-07-06", nil))
	assert.Equal(t, http.StatusNotFound, rr.Code)
}

func TestHandler_HandleList(t *testing.T) {
	r, mocks := newTestRouter(t)

	mocks.service.EXPECT().
		List(gomock.Any(), gomock.Any(), "squat").
		DoAndReturn(func(_ context.Context, params progress.EntryParams, _ string) ([]progress.Entry, error) {
			assert.Equal(t, progress.PhaseBulking, params.Phase)
			require.NotNil(t, params.From)
			assert.Equal(t, "2025-01-01", params.From.Format(progress.DateLayout))
			assert.Nil(t, params.To)
			return []progress.Entry{
				{ID: 2, Date: time.Date(2025, 1, 5, 0, 0, 0, 0, time.UTC)},
				{ID: 1, Date: time.Date(2025, 1, 2, 0, 0, 0, 0, time.UTC)},
			}, nil
		})

	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, httptest.NewRequest("GET", "/entries?phase=Bulking&q=squat&from=2025-01-01", nil))
	require.Equal(t, http.StatusOK, rr.Code)

	var entries []progress.Entry
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &entries))
	require.Len(t, entries, 2)
	assert.Equal(t, 2, entries[0].ID)

	rr = httptest.NewRecorder()
	r.ServeHTTP(rr, httptest.NewRequest("GET", "/entries?phase=resting", nil))
	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestHandler_HandleClear(t *testing.T) {
	r, mocks := newTestRouter(t)
	mocks.service.EXPECT().Clear(gomock.Any()).Return(int64(7), nil)

	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, httptest.NewRequest("DELETE", "/entries", nil))
	require.Equal(t, http.StatusOK, rr.Code)

	var resp progress.ClearResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	assert.Equal(t, int64(7), resp.Deleted)
}

func TestHandler_HandleDashboard(t *testing.T) {
	r, mocks := newTestRouter(t)

	gomock.InOrder(
		mocks.service.EXPECT().Dashboard(gomock.Any()).Return(&progress.Summary{
			TotalEntries:  4,
			CurrentPhase:  progress.PhaseBulking,
			PhaseDuration: 3,
		}, nil),
		mocks.service.EXPECT().Dashboard(gomock.Any()).Return(nil, errors.New("db down")),
	)

	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, httptest.NewRequest("GET", "/dashboard", nil))
	require.Equal(t, http.StatusOK, rr.Code)

	var summary progress.Summary
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &summary))
	assert.Equal(t, 4, summary.TotalEntries)
	assert.Equal(t, 3, summary.PhaseDuration)

	rr = httptest.NewRecorder()
	r.ServeHTTP(rr, httptest.NewRequest("GET", "/dashboard", nil))
	assert.Equal(t, http.StatusInternalServerError, rr.Code)
}

func TestHandler_HandleExport(t *testing.T) {
	r, mocks := newTestRouter(t)
	mocks.service.EXPECT().
		Export(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, w io.Writer) error {
			_, err := w.Write([]byte(`{"entries":[]}`))
			return err
		})

	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, httptest.NewRequest("GET", "/export", nil))
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "application/json", rr.Header().Get("Content-Type"))
	assert.Contains(t, rr.Header().Get("Content-Disposition"), "fitness-tracker-backup-")
	assert.Equal(t, `{"entries":[]}`, rr.Body.String())
}

func TestHandler_HandleChart(t *testing.T) {
	r, mocks := newTestRouter(t)

	entries := []progress.Entry{
		{ID: 1, Date: time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC), Phase: progress.PhaseCutting},
	}
	png := []byte("\x89PNG\r\n\x1a\nfake")
	key := progress.ChartCacheKey("progress", entries)

	mocks.service.EXPECT().List(gomock.Any(), progress.EntryParams{}, "").Return(entries, nil).Times(2)
	gomock.InOrder(
		mocks.cache.EXPECT().Get(key).Return(nil, false),
		mocks.renderer.EXPECT().RenderChart(gomock.Any(), "progress", entries).Return(png, nil),
		mocks.cache.EXPECT().Set(key, png),
		mocks.cache.EXPECT().Get(key).Return(png, true),
	)

	for i := 0; i < 2; i++ {
		rr := httptest.NewRecorder()
		r.ServeHTTP(rr, httptest.NewRequest("GET", "/charts/progress.png", nil))
		require.Equal(t, http.StatusOK, rr.Code)
		assert.Equal(t, "image/png", rr.Header().Get("Content-Type"))
		assert.Equal(t, png, rr.Body.Bytes())
	}

	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, httptest.NewRequest("GET", "/charts/pie.png", nil))
	assert.Equal(t, http.StatusNotFound, rr.Code)
}

func TestHandler_HandleChart_NotEnoughData(t *testing.T) {
	r, mocks := newTestRouter(t)

	mocks.service.EXPECT().List(gomock.Any(), gomock.Any(), "").Return(nil, nil)
	mocks.cache.EXPECT().Get(gomock.Any()).Return(nil, false)
	mocks.renderer.EXPECT().
		RenderChart(gomock.Any(), "nutrition", gomock.Any()).
		Return(nil, progress.ErrNotEnoughData)

	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, httptest.NewRequest("GET", "/charts/nutrition.png", nil))
	assert.Equal(t, http.StatusNotFound, rr.Code)
}

func TestChartCacheKey(t *testing.T) {
	updated := time.Date(2025, 1, 1, 10, 0, 0, 0, time.UTC)
	entries := []progress.Entry{{ID: 1, Date: updated, UpdatedAt: updated}}

	key := progress.ChartCacheKey("progress", entries)
	assert.Equal(t, key, progress.ChartCacheKey("progress", entries))
	assert.NotEqual(t, key, progress.ChartCacheKey("phases", entries))

	entries[0].UpdatedAt = updated.Add(time.Minute)
	assert.NotEqual(t, key, progress.ChartCacheKey("progress", entries))
}
