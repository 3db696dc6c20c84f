package sheet

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

var ErrColumnNotFound = errors.New("column not found")

// Column data types, as reported by DTypes.
const (
	DTypeInt64    = "int64"
	DTypeFloat64  = "float64"
	DTypeDatetime = "datetime"
	DTypeBool     = "bool"
	DTypeObject   = "object"
	DTypeEmpty    = "empty"
)

// Frame is a spreadsheet table. Cell values are nil, float64, string, time.Time or bool.
type Frame struct {
	Sheet   string
	Columns []string
	Rows    [][]any
}

// Shape returns (rows, columns).
func (f *Frame) Shape() (int, int) {
	return len(f.Rows), len(f.Columns)
}

// Head returns a frame with the first n rows.
func (f *Frame) Head(n int) *Frame {
	if n < 0 {
		n = 0
	}
	if n > len(f.Rows) {
		n = len(f.Rows)
	}
	return &Frame{
		Sheet:   f.Sheet,
		Columns: f.Columns,
		Rows:    f.Rows[:n],
	}
}

// Column returns the index of the named column, matched case-insensitively.
func (f *Frame) Column(name string) (int, error) {
	for i, c := range f.Columns {
		if strings.EqualFold(strings.TrimSpace(c), strings.TrimSpace(name)) {
			return i, nil
		}
	}
	return -1, fmt.Errorf("%w: %s", ErrColumnNotFound, name)
}

// Values returns the cells of column col.
func (f *Frame) Values(col int) []any {
	values := make([]any, len(f.Rows))
	for i, row := range f.Rows {
		values[i] = row[col]
	}
	return values
}

func (f *Frame) DTypes() []string {
	dtypes := make([]string, len(f.Columns))
	for col := range f.Columns {
		dtypes[col] = dtypeOf(f.Values(col))
	}
	return dtypes
}

func dtypeOf(values []any) string {
	var floats, ints, times, bools, others, nulls int
	for _, v := range values {
		switch typed := v.(type) {
		case nil:
			nulls++
		case float64:
			if typed == float64(int64(typed)) {
				ints++
			} else {
				floats++
			}
		case time.Time:
			times++
		case bool:
			bools++
		default:
			others++
		}
	}

	switch nonNull := len(values) - nulls; {
	case nonNull == 0:
		return DTypeEmpty
	case others > 0:
		return DTypeObject
	case times == nonNull:
		return DTypeDatetime
	case bools == nonNull:
		return DTypeBool
	case ints == nonNull && nulls == 0:
		return DTypeInt64
	case ints+floats == nonNull:
		// missing values turn integer columns into floats
		return DTypeFloat64
	default:
		return DTypeObject
	}
}

// NullCounts returns the number of empty cells, one entry per column.
func (f *Frame) NullCounts() []int {
	counts := make([]int, len(f.Columns))
	for _, row := range f.Rows {
		for col, v := range row {
			if v == nil {
				counts[col]++
			}
		}
	}
	return counts
}

// Unique returns the distinct values of column col, in first-seen order. Empty cells are included once.
func (f *Frame) Unique(col int) []any {
	seen := make(map[any]bool)
	unique := make([]any, 0)
	for _, row := range f.Rows {
		v := row[col]
		key := v
		if t, ok := v.(time.Time); ok {
			key = t.UnixNano()
		}
		if seen[key] {
			continue
		}
		seen[key] = true
		unique = append(unique, v)
	}
	return unique
}

// DateRange returns the earliest and latest dates of column col. ok is false when the column has no dates.
func (f *Frame) DateRange(col int) (start, end time.Time, ok bool) {
	for _, row := range f.Rows {
		t, isTime := row[col].(time.Time)
		if !isTime {
			continue
		}
		if !ok || t.Before(start) {
			start = t
		}
		if !ok || t.After(end) {
			end = t
		}
		ok = true
	}
	return start, end, ok
}

// Floats returns the numeric cells of column col.
func (f *Frame) Floats(col int) []float64 {
	values := make([]float64, 0, len(f.Rows))
	for _, row := range f.Rows {
		if v, ok := row[col].(float64); ok {
			values = append(values, v)
		}
	}
	return values
}
