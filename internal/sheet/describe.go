package sheet

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/2beens/fitprogress/internal/trend"
)

const timestampLayout = "2006-01-02 15:04:05"

type DescribeOptions struct {
	HeadRows    int
	PhaseColumn string
	DateColumn  string
}

func DefaultDescribeOptions() DescribeOptions {
	return DescribeOptions{
		HeadRows:    5,
		PhaseColumn: "Phase",
		DateColumn:  "Date",
	}
}

// reportWriter keeps the first write error, so the report can be written without checking every line.
type reportWriter struct {
	w   io.Writer
	err error
}

func (rw *reportWriter) printf(format string, args ...any) {
	if rw.err != nil {
		return
	}
	_, rw.err = fmt.Fprintf(rw.w, format, args...)
}

func (rw *reportWriter) table(rows [][]string) {
	if rw.err != nil {
		return
	}
	tw := tabwriter.NewWriter(rw.w, 0, 0, 2, ' ', 0)
	for _, row := range rows {
		if _, err := fmt.Fprintln(tw, strings.Join(row, "\t")); err != nil {
			rw.err = err
			return
		}
	}
	rw.err = tw.Flush()
}

// Describe prints an overview of the frame: shape, columns, first rows, column types, null counts,
// unique phases, the date range and summary statistics of numeric columns.
func Describe(w io.Writer, frame *Frame, opts DescribeOptions) error {
	if opts.HeadRows <= 0 {
		opts.HeadRows = 5
	}
	rw := &reportWriter{w: w}
	dtypes := frame.DTypes()
	rows, cols := frame.Shape()

	rw.printf("Dataset Info:\n")
	rw.printf("Shape: (%d, %d)\n", rows, cols)
	rw.printf("Columns: %s\n", quotedList(frame.Columns, ", "))

	rw.printf("\nFirst few rows:\n")
	head := frame.Head(opts.HeadRows)
	headTable := [][]string{append([]string{""}, frame.Columns...)}
	for i, row := range head.Rows {
		line := []string{strconv.Itoa(i)}
		for col, v := range row {
			line = append(line, FormatValue(v, dtypes[col]))
		}
		headTable = append(headTable, line)
	}
	rw.table(headTable)

	rw.printf("\nData types:\n")
	dtypeTable := make([][]string, 0, cols)
	for col, name := range frame.Columns {
		dtypeTable = append(dtypeTable, []string{name, dtypes[col]})
	}
	rw.table(dtypeTable)

	rw.printf("\nNull values count:\n")
	nullTable := make([][]string, 0, cols)
	for col, count := range frame.NullCounts() {
		nullTable = append(nullTable, []string{frame.Columns[col], strconv.Itoa(count)})
	}
	rw.table(nullTable)
	if rw.err != nil {
		return rw.err
	}

	phaseCol, err := frame.Column(opts.PhaseColumn)
	if err != nil {
		return err
	}
	rw.printf("\nUnique phases:\n")
	unique := frame.Unique(phaseCol)
	uniqueStrings := make([]string, len(unique))
	for i, v := range unique {
		uniqueStrings[i] = FormatValue(v, dtypes[phaseCol])
	}
	rw.printf("%s\n", quotedList(uniqueStrings, " "))
	if rw.err != nil {
		return rw.err
	}

	dateCol, err := frame.Column(opts.DateColumn)
	if err != nil {
		return err
	}
	rw.printf("\nDate range:\n")
	if start, end, ok := frame.DateRange(dateCol); ok {
		rw.printf("Start date: %s\n", start.Format(timestampLayout))
		rw.printf("End date: %s\n", end.Format(timestampLayout))
	} else {
		rw.printf("Start date: NaT\n")
		rw.printf("End date: NaT\n")
	}

	statsTable := [][]string{{"", "count", "mean", "std", "min", "max"}}
	for col, name := range frame.Columns {
		if dtypes[col] != DTypeInt64 && dtypes[col] != DTypeFloat64 {
			continue
		}
		stats := trend.Describe(frame.Floats(col))
		statsTable = append(statsTable, []string{
			name,
			strconv.Itoa(stats.Count),
			formatStat(stats.Mean),
			formatStat(stats.Std),
			formatStat(stats.Min),
			formatStat(stats.Max),
		})
	}
	if len(statsTable) > 1 {
		rw.printf("\nSummary statistics:\n")
		rw.table(statsTable)
	}

	return rw.err
}

// FormatValue renders a cell the way the report prints it.
func FormatValue(v any, dtype string) string {
	switch typed := v.(type) {
	case nil:
		if dtype == DTypeDatetime {
			return "NaT"
		}
		return "NaN"
	case float64:
		s := strconv.FormatFloat(typed, 'f', -1, 64)
		if dtype == DTypeFloat64 && !strings.ContainsAny(s, ".eE") {
			s += ".0"
		}
		return s
	case time.Time:
		if typed.Hour() == 0 && typed.Minute() == 0 && typed.Second() == 0 {
			return typed.Format("2006-01-02")
		}
		return typed.Format(timestampLayout)
	case bool:
		if typed {
			return "True"
		}
		return "False"
	default:
		return fmt.Sprint(typed)
	}
}

func formatStat(v float64) string {
	return strconv.FormatFloat(v, 'f', 6, 64)
}

func quotedList(values []string, sep string) string {
	quoted := make([]string, len(values))
	for i, v := range values {
		if v == "NaN" {
			quoted[i] = "nan"
			continue
		}
		quoted[i] = "'" + v + "'"
	}
	return "[" + strings.Join(quoted, sep) + "]"
}
