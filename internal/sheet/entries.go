package sheet

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/2beens/fitprogress/internal/progress"
)

type entryField int

const (
	fieldDate entryField = iota
	fieldWeight
	fieldWaist
	fieldCalories
	fieldProtein
	fieldTrainingNotes
	fieldMood
	fieldPhase
)

var entryFieldNames = map[string]entryField{
	"date":           fieldDate,
	"weight":         fieldWeight,
	"waist":          fieldWaist,
	"calories":       fieldCalories,
	"protein":        fieldProtein,
	"training notes": fieldTrainingNotes,
	"notes":          fieldTrainingNotes,
	"mood":           fieldMood,
	"phase":          fieldPhase,
}

// normalizeHeader turns "Weight (kg)" into "weight" and "training_notes" into "training notes".
func normalizeHeader(header string) string {
	h := strings.ToLower(strings.TrimSpace(header))
	if i := strings.Index(h, "("); i > 0 {
		h = strings.TrimSpace(h[:i])
	}
	h = strings.ReplaceAll(h, "_", " ")
	return strings.Join(strings.Fields(h), " ")
}

// ToEntries maps the tracker columns of the frame to entries. Rows without a date are skipped.
func ToEntries(frame *Frame) ([]progress.Entry, error) {
	fieldCols := make(map[entryField]int)
	for col, header := range frame.Columns {
		field, ok := entryFieldNames[normalizeHeader(header)]
		if !ok {
			continue
		}
		if _, taken := fieldCols[field]; !taken {
			fieldCols[field] = col
		}
	}
	dateCol, ok := fieldCols[fieldDate]
	if !ok {
		return nil, fmt.Errorf("%w: date", ErrColumnNotFound)
	}

	entries := make([]progress.Entry, 0, len(frame.Rows))
	for i, row := range frame.Rows {
		// header is row 1 in the sheet
		sheetRow := i + 2

		date, err := cellDate(row[dateCol])
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", sheetRow, err)
		}
		if date.IsZero() {
			continue
		}

		entry := progress.Entry{Date: date}
		for field, col := range fieldCols {
			v := row[col]
			switch field {
			case fieldWeight:
				entry.Weight, err = cellFloat(v)
			case fieldWaist:
				entry.Waist, err = cellFloat(v)
			case fieldCalories:
				entry.Calories, err = cellInt(v)
			case fieldProtein:
				entry.Protein, err = cellInt(v)
			case fieldTrainingNotes:
				entry.TrainingNotes = cellString(v)
			case fieldMood:
				entry.Mood = cellString(v)
			case fieldPhase:
				entry.Phase, err = progress.ParsePhase(cellString(v))
			}
			if err != nil {
				return nil, fmt.Errorf("row %d, column %q: %w", sheetRow, frame.Columns[col], err)
			}
		}
		entries = append(entries, entry)
	}

	return entries, nil
}

func cellDate(v any) (time.Time, error) {
	switch typed := v.(type) {
	case nil:
		return time.Time{}, nil
	case time.Time:
		return progress.Day(typed), nil
	case string:
		if strings.TrimSpace(typed) == "" {
			return time.Time{}, nil
		}
		if d, ok := parseDate(typed); ok {
			return progress.Day(d), nil
		}
		return time.Time{}, fmt.Errorf("invalid date %q", typed)
	default:
		return time.Time{}, fmt.Errorf("invalid date %v", typed)
	}
}

func cellFloat(v any) (*float64, error) {
	switch typed := v.(type) {
	case nil:
		return nil, nil
	case float64:
		return progress.Float(typed), nil
	case string:
		s := strings.TrimSpace(typed)
		if s == "" {
			return nil, nil
		}
		f, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid number %q", typed)
		}
		return progress.Float(f), nil
	default:
		return nil, fmt.Errorf("invalid number %v", typed)
	}
}

func cellInt(v any) (*int, error) {
	f, err := cellFloat(v)
	if err != nil || f == nil {
		return nil, err
	}
	return progress.Int(int(math.Round(*f))), nil
}

func cellString(v any) string {
	switch typed := v.(type) {
	case nil:
		return ""
	case string:
		return strings.TrimSpace(typed)
	case float64:
		return strconv.FormatFloat(typed, 'f', -1, 64)
	case time.Time:
		return typed.Format(progress.DateLayout)
	default:
		return fmt.Sprint(typed)
	}
}
