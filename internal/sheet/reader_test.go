package sheet

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func TestOpen(t *testing.T) {
	path := writeWorkbook(t, "Tracker", trackerRows())

	frame, err := Open(path, "")
	require.NoError(t, err)
	require.NotNil(t, frame)

	assert.Equal(t, "Tracker", frame.Sheet)
	rows, cols := frame.Shape()
	assert.Equal(t, 3, rows)
	assert.Equal(t, 8, cols)
	assert.Equal(t, []string{"Date", "Weight (kg)", "Waist (in)", "Calories", "Protein", "Training Notes", "Mood", "Phase"}, frame.Columns)

	assert.Equal(t, day(2025, 6, 22), frame.Rows[0][0])
	assert.Equal(t, day(2025, 8, 4), frame.Rows[2][0])
	assert.Equal(t, 75.5, frame.Rows[0][1])
	assert.Equal(t, float64(2200), frame.Rows[0][3])
	assert.Equal(t, "Cutting", frame.Rows[0][7])
	assert.Nil(t, frame.Rows[1][5])
	assert.Nil(t, frame.Rows[2][6])

	assert.Equal(t, []string{
		DTypeDatetime, DTypeFloat64, DTypeFloat64, DTypeInt64, DTypeInt64, DTypeObject, DTypeObject, DTypeObject,
	}, frame.DTypes())
	assert.Equal(t, []int{0, 0, 0, 0, 0, 1, 1, 0}, frame.NullCounts())
}

func TestOpen_NamedSheet(t *testing.T) {
	path := writeWorkbook(t, "Tracker", trackerRows())

	frame, err := Open(path, "Tracker")
	require.NoError(t, err)
	assert.Equal(t, "Tracker", frame.Sheet)

	frame, err = Open(path, "Missing")
	require.Error(t, err)
	assert.Nil(t, frame)
	assert.Contains(t, err.Error(), `sheet "Missing" not found`)
}

func TestOpen_MissingFile(t *testing.T) {
	frame, err := Open(filepath.Join(t.TempDir(), "nope.xlsx"), "")
	require.Error(t, err)
	assert.Nil(t, frame)
	assert.True(t, errors.Is(err, os.ErrNotExist))
}

func TestOpen_BoolCells(t *testing.T) {
	path := writeWorkbook(t, "Sheet1", [][]any{
		{"Day", "Trained", "Sets"},
		{"Mon", true, 1},
		{"Tue", false, 0},
	})

	frame, err := Open(path, "")
	require.NoError(t, err)
	require.Len(t, frame.Rows, 2)

	assert.Equal(t, true, frame.Rows[0][1])
	assert.Equal(t, false, frame.Rows[1][1])
	assert.Equal(t, float64(1), frame.Rows[0][2])
	assert.Equal(t, float64(0), frame.Rows[1][2])
	assert.Equal(t, []string{DTypeObject, DTypeBool, DTypeInt64}, frame.DTypes())
}

func TestBuildFrame(t *testing.T) {
	rows := [][]string{
		{"Date", "", "Phase"},
		{"2025-06-22", "1"},
		{},
		{"45831", "2.5", "Bulking", "extra"},
	}
	read := func(raw string, _, _ int) (any, error) {
		return parseValue(raw), nil
	}

	frame, err := buildFrame("Data", rows, read, false)
	require.NoError(t, err)

	assert.Equal(t, []string{"Date", "Unnamed: 1", "Phase", "Unnamed: 3"}, frame.Columns)
	require.Len(t, frame.Rows, 2)
	assert.Equal(t, []any{day(2025, 6, 22), float64(1), nil, nil}, frame.Rows[0])
	assert.Equal(t, []any{day(2025, 6, 23), 2.5, "Bulking", "extra"}, frame.Rows[1])
}

func TestBuildFrame_ReaderError(t *testing.T) {
	readErr := errors.New("broken cell")
	read := func(raw string, col, row int) (any, error) {
		if row == 3 {
			return nil, readErr
		}
		return raw, nil
	}

	_, err := buildFrame("Data", [][]string{{"a"}, {"1"}, {"2"}}, read, false)
	require.ErrorIs(t, err, readErr)
}

func TestBuildFrame_Empty(t *testing.T) {
	frame, err := buildFrame("Empty", nil, nil, false)
	require.NoError(t, err)
	rows, cols := frame.Shape()
	assert.Zero(t, rows)
	assert.Zero(t, cols)
}

func TestParseValue(t *testing.T) {
	assert.Nil(t, parseValue("  "))
	assert.Equal(t, 12.5, parseValue("12.5"))
	assert.Equal(t, day(2025, 6, 22), parseValue("2025-06-22"))
	assert.Equal(t, day(2025, 6, 22), parseValue("06/22/2025"))
	assert.Equal(t, true, parseValue("TRUE"))
	assert.Equal(t, false, parseValue("false"))
	assert.Equal(t, "Cutting", parseValue(" Cutting "))
}

func TestToDate(t *testing.T) {
	assert.Equal(t, day(2025, 6, 22), toDate(float64(45830), false))
	assert.Equal(t, "text", toDate("text", false))
	assert.Nil(t, toDate(nil, false))

	serial, err := excelize.ExcelDateToTime(1, true)
	require.NoError(t, err)
	assert.Equal(t, serial.UTC(), toDate(float64(1), true))
}

func TestFromValues(t *testing.T) {
	frame, err := FromValues("Sheet1", []string{"Date", "Weight", "Phase"}, [][]any{
		{"2025-06-22", "75.5", "Cutting"},
		{"2025-06-23"},
		{},
	})
	require.NoError(t, err)

	assert.Equal(t, []string{"Date", "Weight", "Phase"}, frame.Columns)
	require.Len(t, frame.Rows, 2)
	assert.Equal(t, []any{day(2025, 6, 22), 75.5, "Cutting"}, frame.Rows[0])
	assert.Equal(t, []any{day(2025, 6, 23), nil, nil}, frame.Rows[1])
}
