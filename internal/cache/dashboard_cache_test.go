package cache

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/go-redis/redismock/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/2beens/fitprogress/internal/progress"
)

func testSummary() *progress.Summary {
	return &progress.Summary{
		CurrentWeight: progress.Float(75.5),
		CurrentPhase:  progress.PhaseCutting,
		WeeklyEntries: 3,
		TotalEntries:  10,
		PhaseCounts: map[progress.Phase]int{
			progress.PhaseCutting: 7,
			progress.PhaseBulking: 3,
		},
		Recent:      []progress.Entry{},
		GeneratedAt: time.Date(2025, 6, 22, 10, 0, 0, 0, time.UTC),
	}
}

func TestDashboardCache_Get(t *testing.T) {
	db, mock := redismock.NewClientMock()
	c := NewDashboardCache(db, 0)
	assert.Equal(t, DefaultDashboardTTL, c.ttl)

	ctx := context.Background()
	mock.ExpectGet(dashboardKey).SetErr(redis.Nil)
	summary, err := c.Get(ctx)
	require.NoError(t, err)
	assert.Nil(t, summary)

	summaryBytes, err := json.Marshal(testSummary())
	require.NoError(t, err)
	mock.ExpectGet(dashboardKey).SetVal(string(summaryBytes))
	summary, err = c.Get(ctx)
	require.NoError(t, err)
	require.NotNil(t, summary)
	assert.Equal(t, 75.5, *summary.CurrentWeight)
	assert.Equal(t, progress.PhaseCutting, summary.CurrentPhase)
	assert.Equal(t, 7, summary.PhaseCounts[progress.PhaseCutting])
	assert.Equal(t, 10, summary.TotalEntries)
	assert.True(t, testSummary().GeneratedAt.Equal(summary.GeneratedAt))

	mock.ExpectGet(dashboardKey).SetVal("{broken")
	summary, err = c.Get(ctx)
	require.Error(t, err)
	assert.Nil(t, summary)

	mock.ExpectGet(dashboardKey).SetErr(errors.New("connection refused"))
	_, err = c.Get(ctx)
	require.EqualError(t, err, "get fitprogress::dashboard: connection refused")

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestDashboardCache_Set(t *testing.T) {
	db, mock := redismock.NewClientMock()
	c := NewDashboardCache(db, time.Minute)

	summaryBytes, err := json.Marshal(testSummary())
	require.NoError(t, err)

	mock.ExpectSet(dashboardKey, summaryBytes, time.Minute).SetVal("OK")
	require.NoError(t, c.Set(context.Background(), testSummary()))

	mock.ExpectSet(dashboardKey, summaryBytes, time.Minute).SetErr(errors.New("oom"))
	require.Error(t, c.Set(context.Background(), testSummary()))

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestDashboardCache_Invalidate(t *testing.T) {
	db, mock := redismock.NewClientMock()
	c := NewDashboardCache(db, time.Minute)

	mock.ExpectDel(dashboardKey).SetVal(1)
	require.NoError(t, c.Invalidate(context.Background()))

	mock.ExpectDel(dashboardKey).SetErr(errors.New("timeout"))
	require.Error(t, c.Invalidate(context.Background()))

	require.NoError(t, mock.ExpectationsWereMet())
}
