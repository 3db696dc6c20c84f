package sheet

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	log "github.com/sirupsen/logrus"
	"github.com/xuri/excelize/v2"
)

var dateLayouts = []string{
	"2006-01-02",
	"2006-01-02 15:04:05",
	time.RFC3339,
	"01/02/2006",
	"1/2/2006",
	"02.01.2006",
}

// Open reads a worksheet into a Frame. The first row is the header. An empty sheetName selects the
// first sheet of the workbook.
func Open(path, sheetName string) (_ *Frame, err error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("open workbook: %w", err)
	}
	defer func() {
		if closeErr := f.Close(); closeErr != nil {
			log.Errorf("close workbook %s: %s", path, closeErr)
		}
	}()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("workbook %s has no sheets", path)
	}
	if sheetName == "" {
		sheetName = sheets[0]
	} else if !contains(sheets, sheetName) {
		return nil, fmt.Errorf("sheet %q not found in %s, available: %v", sheetName, path, sheets)
	}

	rows, err := f.GetRows(sheetName, excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, fmt.Errorf("read rows of %s: %w", sheetName, err)
	}

	date1904 := false
	if props, err := f.GetWorkbookProps(); err == nil && props.Date1904 != nil {
		date1904 = *props.Date1904
	}

	return buildFrame(sheetName, rows, func(raw string, col, row int) (any, error) {
		return cellValue(f, sheetName, raw, col, row)
	}, date1904)
}

type cellReader func(raw string, col, row int) (any, error)

func buildFrame(sheetName string, rows [][]string, read cellReader, date1904 bool) (*Frame, error) {
	frame := &Frame{
		Sheet:   sheetName,
		Columns: make([]string, 0),
		Rows:    make([][]any, 0),
	}
	if len(rows) == 0 {
		return frame, nil
	}

	width := 0
	for _, row := range rows {
		if len(row) > width {
			width = len(row)
		}
	}

	header := rows[0]
	for i := 0; i < width; i++ {
		name := ""
		if i < len(header) {
			name = strings.TrimSpace(header[i])
		}
		if name == "" {
			name = fmt.Sprintf("Unnamed: %d", i)
		}
		frame.Columns = append(frame.Columns, name)
	}

	for r, row := range rows[1:] {
		if isBlank(row) {
			continue
		}
		values := make([]any, width)
		for c, raw := range row {
			// rows are 1-based and the header is row 1
			v, err := read(raw, c, r+2)
			if err != nil {
				return nil, err
			}
			if isDateColumn(frame.Columns[c]) {
				v = toDate(v, date1904)
			}
			values[c] = v
		}
		frame.Rows = append(frame.Rows, values)
	}

	return frame, nil
}

// cellValue types a raw cell value. Boolean cells come as "0" / "1" raw values, so their cell type is
// checked.
func cellValue(f *excelize.File, sheetName, raw string, col, row int) (any, error) {
	if raw == "0" || raw == "1" {
		cell, err := excelize.CoordinatesToCellName(col+1, row)
		if err != nil {
			return nil, err
		}
		cellType, err := f.GetCellType(sheetName, cell)
		if err != nil {
			return nil, fmt.Errorf("cell type %s: %w", cell, err)
		}
		if cellType == excelize.CellTypeBool {
			return raw == "1", nil
		}
	}
	return parseValue(raw), nil
}

// parseValue converts a raw cell string into a number, date, bool or string.
func parseValue(raw string) any {
	s := strings.TrimSpace(raw)
	if s == "" {
		return nil
	}
	if v, err := strconv.ParseFloat(s, 64); err == nil {
		return v
	}
	if t, ok := parseDate(s); ok {
		return t
	}
	switch strings.ToUpper(s) {
	case "TRUE":
		return true
	case "FALSE":
		return false
	}
	return s
}

func parseDate(s string) (time.Time, bool) {
	for _, layout := range dateLayouts {
		if t, err := time.ParseInLocation(layout, s, time.UTC); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// toDate converts Excel serial numbers in date columns to dates.
func toDate(v any, date1904 bool) any {
	serial, ok := v.(float64)
	if !ok {
		return v
	}
	t, err := excelize.ExcelDateToTime(serial, date1904)
	if err != nil {
		return v
	}
	return t.UTC()
}

func isDateColumn(name string) bool {
	return strings.Contains(strings.ToLower(name), "date")
}

func isBlank(row []string) bool {
	for _, v := range row {
		if strings.TrimSpace(v) != "" {
			return false
		}
	}
	return true
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}

// FromValues builds a frame from cell values delivered as text, e.g. by the Google Sheets API.
// header names the columns; rows shorter than the header are padded with nil.
func FromValues(sheetName string, header []string, rows [][]any) (*Frame, error) {
	raw := make([][]string, 0, len(rows)+1)
	raw = append(raw, header)
	for _, row := range rows {
		line := make([]string, len(row))
		for i, v := range row {
			if v != nil {
				line[i] = fmt.Sprint(v)
			}
		}
		raw = append(raw, line)
	}
	return buildFrame(sheetName, raw, func(raw string, _, _ int) (any, error) {
		return parseValue(raw), nil
	}, false)
}
