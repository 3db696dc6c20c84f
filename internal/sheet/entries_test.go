package sheet

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/2beens/fitprogress/internal/progress"
)

func TestToEntries(t *testing.T) {
	frame, err := Open(writeWorkbook(t, "Tracker", trackerRows()), "")
	require.NoError(t, err)

	entries, err := ToEntries(frame)
	require.NoError(t, err)
	require.Len(t, entries, 3)

	first := entries[0]
	assert.Equal(t, day(2025, 6, 22), first.Date)
	require.NotNil(t, first.Weight)
	assert.Equal(t, 75.5, *first.Weight)
	require.NotNil(t, first.Waist)
	assert.Equal(t, 33.0, *first.Waist)
	require.NotNil(t, first.Calories)
	assert.Equal(t, 2200, *first.Calories)
	require.NotNil(t, first.Protein)
	assert.Equal(t, 180, *first.Protein)
	assert.Equal(t, "Push day", first.TrainingNotes)
	assert.Equal(t, "Good", first.Mood)
	assert.Equal(t, progress.PhaseCutting, first.Phase)

	assert.Empty(t, entries[1].TrainingNotes)
	assert.Empty(t, entries[2].Mood)
	assert.Equal(t, progress.PhaseBulking, entries[2].Phase)
}

func TestToEntries_SkipsRowsWithoutDate(t *testing.T) {
	frame := &Frame{
		Columns: []string{"date", "WEIGHT", "calories", "phase"},
		Rows: [][]any{
			{nil, 80.0, 2000.0, "cutting"},
			{"2025-06-22", "79.5", 1999.6, "bulking"},
			{"", 79.0, nil, nil},
		},
	}

	entries, err := ToEntries(frame)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, day(2025, 6, 22), entries[0].Date)
	assert.Equal(t, 79.5, *entries[0].Weight)
	assert.Equal(t, 2000, *entries[0].Calories)
	assert.Nil(t, entries[0].Waist)
	assert.Equal(t, progress.PhaseBulking, entries[0].Phase)
}

func TestToEntries_InvalidPhase(t *testing.T) {
	frame := &Frame{
		Columns: []string{"Date", "Phase"},
		Rows: [][]any{
			{day(2025, 6, 22), "Cutting"},
			{day(2025, 6, 23), "Maintenance"},
		},
	}

	entries, err := ToEntries(frame)
	require.ErrorIs(t, err, progress.ErrInvalidPhase)
	assert.Contains(t, err.Error(), "row 3")
	assert.Nil(t, entries)
}

func TestToEntries_InvalidNumber(t *testing.T) {
	frame := &Frame{
		Columns: []string{"Date", "Weight (kg)"},
		Rows: [][]any{
			{day(2025, 6, 22), "heavy"},
		},
	}

	_, err := ToEntries(frame)
	require.Error(t, err)
	assert.Contains(t, err.Error(), `row 2, column "Weight (kg)"`)
}

func TestToEntries_NoDateColumn(t *testing.T) {
	_, err := ToEntries(&Frame{Columns: []string{"Weight"}})
	require.ErrorIs(t, err, ErrColumnNotFound)
}

func TestNormalizeHeader(t *testing.T) {
	assert.Equal(t, "weight", normalizeHeader(" Weight (kg) "))
	assert.Equal(t, "training notes", normalizeHeader("Training_Notes"))
	assert.Equal(t, "training notes", normalizeHeader("Training   Notes"))
	assert.Equal(t, "date", normalizeHeader("DATE"))
}
