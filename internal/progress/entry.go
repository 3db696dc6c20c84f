package progress

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"
)

const DateLayout = "2006-01-02"

var (
	ErrEntryNotFound  = errors.New("entry not found")
	ErrLengthMismatch = errors.New("series length mismatch")
	ErrInvalidPhase   = errors.New("invalid phase")
	ErrNotEnoughData  = errors.New("not enough data")
)

// Phase is a training / diet period label.
//   - Cutting
//   - Bulking
type Phase string

const (
	PhaseCutting Phase = "Cutting"
	PhaseBulking Phase = "Bulking"
)

// Phases lists all known phases, in the order they are charted.
var Phases = []Phase{PhaseCutting, PhaseBulking}

func (p Phase) String() string {
	return string(p)
}

func (p Phase) IsValid() bool {
	switch p {
	case PhaseCutting, PhaseBulking:
		return true
	default:
		return false
	}
}

// ParsePhase is case-insensitive. Empty input means "no phase" and is not an error.
func ParsePhase(s string) (Phase, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return "", nil
	}
	for _, p := range Phases {
		if strings.EqualFold(s, string(p)) {
			return p, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidPhase, s)
}

// Entry is a single day in the tracker. Nil metrics were not recorded that day.
type Entry struct {
	ID            int       `json:"id,omitempty"`
	Date          time.Time `json:"date"`
	Weight        *float64  `json:"weight"`
	Waist         *float64  `json:"waist"`
	Calories      *int      `json:"calories"`
	Protein       *int      `json:"protein"`
	Mood          string    `json:"mood,omitempty"`
	Phase         Phase     `json:"phase,omitempty"`
	TrainingNotes string    `json:"trainingNotes,omitempty"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
}

func (e Entry) DateKey() string {
	return e.Date.Format(DateLayout)
}

func (e Entry) Validate() error {
	if e.Date.IsZero() {
		return errors.New("entry date empty")
	}
	if e.Phase != "" && !e.Phase.IsValid() {
		return fmt.Errorf("%w: %q", ErrInvalidPhase, e.Phase)
	}
	if e.Weight != nil && *e.Weight < 0 {
		return errors.New("weight must not be negative")
	}
	if e.Waist != nil && *e.Waist < 0 {
		return errors.New("waist must not be negative")
	}
	if e.Calories != nil && *e.Calories < 0 {
		return errors.New("calories must not be negative")
	}
	if e.Protein != nil && *e.Protein < 0 {
		return errors.New("protein must not be negative")
	}
	return nil
}

// MarshalJSON writes the date as YYYY-MM-DD.
func (e Entry) MarshalJSON() ([]byte, error) {
	type alias Entry
	return json.Marshal(struct {
		alias
		Date string `json:"date"`
	}{
		alias: alias(e),
		Date:  e.DateKey(),
	})
}

// UnmarshalJSON accepts YYYY-MM-DD and RFC 3339 dates.
func (e *Entry) UnmarshalJSON(data []byte) error {
	type alias Entry
	aux := struct {
		*alias
		Date string `json:"date"`
	}{
		alias: (*alias)(e),
	}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}

	if aux.Date == "" {
		e.Date = time.Time{}
		return nil
	}
	if d, err := time.Parse(time.RFC3339, aux.Date); err == nil {
		e.Date = Day(d)
		return nil
	}
	d, err := ParseDate(aux.Date)
	if err != nil {
		return err
	}
	e.Date = d
	return nil
}

// ParseDate parses a YYYY-MM-DD date into UTC midnight.
func ParseDate(s string) (time.Time, error) {
	d, err := time.ParseInLocation(DateLayout, strings.TrimSpace(s), time.UTC)
	if err != nil {
		return time.Time{}, fmt.Errorf("parse date %q: %w", s, err)
	}
	return d, nil
}

// Day truncates t to its calendar day in UTC.
func Day(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func Float(v float64) *float64 {
	return &v
}

func Int(v int) *int {
	return &v
}
