package sheetsync

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/attribute"
	"google.golang.org/api/option"
	"google.golang.org/api/sheets/v4"

	"github.com/2beens/fitprogress/internal/progress"
	"github.com/2beens/fitprogress/internal/sheet"
	"github.com/2beens/fitprogress/internal/telemetry/metrics"
	"github.com/2beens/fitprogress/internal/telemetry/tracing"
)

const (
	DefaultReadRange = "Sheet1!A:H"
	// user entered values are parsed by sheets, so dates and numbers keep their types
	valueInputOption = "USER_ENTERED"
	insertDataOption = "INSERT_ROWS"
)

// Header is the column layout of the tracker sheet.
var Header = []string{"Date", "Weight", "Waist", "Calories", "Protein", "Training Notes", "Mood", "Phase"}

type SyncResult struct {
	Existing     int    `json:"existing"`
	Appended     int    `json:"appended"`
	UpdatedRange string `json:"updatedRange,omitempty"`
}

type Service struct {
	sheets        *sheets.Service
	spreadsheetID string
	readRange     string
	metrics       *metrics.Manager
}

// NewService creates the sheets client. Credentials and endpoint come from opts,
// e.g. option.WithCredentialsJSON.
func NewService(
	ctx context.Context,
	spreadsheetID, readRange string,
	metricsManager *metrics.Manager,
	opts ...option.ClientOption,
) (*Service, error) {
	if spreadsheetID == "" {
		return nil, errors.New("spreadsheet id not set")
	}
	if readRange == "" {
		readRange = DefaultReadRange
	}

	sheetsService, err := sheets.NewService(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("unable to create sheets client: %w", err)
	}

	return &Service{
		sheets:        sheetsService,
		spreadsheetID: spreadsheetID,
		readRange:     readRange,
		metrics:       metricsManager,
	}, nil
}

func (s *Service) SheetURL() string {
	return "https://docs.google.com/spreadsheets/d/" + s.spreadsheetID
}

func (s *Service) read(ctx context.Context) ([][]any, error) {
	resp, err := s.sheets.Spreadsheets.Values.
		Get(s.spreadsheetID, s.readRange).
		Context(ctx).
		Do()
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", s.readRange, err)
	}
	return resp.Values, nil
}

// Sync appends the entries whose dates are not in the sheet yet.
func (s *Service) Sync(ctx context.Context, entries []progress.Entry) (_ SyncResult, err error) {
	ctx, span := tracing.GlobalSheetsSyncTracer.Start(ctx, "sheetsync.sync")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	start := time.Now()
	defer func() {
		if s.metrics != nil {
			s.metrics.HistSheetsSyncDuration.Observe(time.Since(start).Seconds())
		}
	}()

	existing, err := s.read(ctx)
	if err != nil {
		return SyncResult{}, err
	}

	result := SyncResult{}
	if len(existing) > 0 {
		result.Existing = len(existing) - 1
	}

	rows := RowsToSync(existing, entries)
	span.SetAttributes(
		attribute.Int("existing", result.Existing),
		attribute.Int("missing", len(rows)),
	)
	if len(rows) == 0 {
		log.Debugf("sheets sync: nothing to append, %d rows already present", result.Existing)
		return result, nil
	}

	values := rows
	if len(existing) == 0 {
		header := make([]any, len(Header))
		for i, h := range Header {
			header[i] = h
		}
		values = append([][]any{header}, rows...)
	}

	resp, err := s.sheets.Spreadsheets.Values.
		Append(s.spreadsheetID, s.readRange, &sheets.ValueRange{Values: values}).
		ValueInputOption(valueInputOption).
		InsertDataOption(insertDataOption).
		Context(ctx).
		Do()
	if err != nil {
		return SyncResult{}, fmt.Errorf("append %d rows: %w", len(values), err)
	}

	result.Appended = len(rows)
	if resp.Updates != nil {
		result.UpdatedRange = resp.Updates.UpdatedRange
	}
	if s.metrics != nil {
		s.metrics.CounterSheetRowsSynced.Add(float64(len(rows)))
	}
	log.Printf("sheets sync: appended %d rows [%s]", result.Appended, result.UpdatedRange)

	return result, nil
}

// Pull reads the sheet back into entries. The first row is the header; columns are taken by position.
func (s *Service) Pull(ctx context.Context) (_ []progress.Entry, err error) {
	ctx, span := tracing.GlobalSheetsSyncTracer.Start(ctx, "sheetsync.pull")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	values, err := s.read(ctx)
	if err != nil {
		return nil, err
	}
	if len(values) <= 1 {
		return []progress.Entry{}, nil
	}

	frame, err := sheet.FromValues(s.readRange, Header, values[1:])
	if err != nil {
		return nil, err
	}
	entries, err := sheet.ToEntries(frame)
	if err != nil {
		return nil, fmt.Errorf("sheet %s: %w", s.readRange, err)
	}

	span.SetAttributes(attribute.Int("entries", len(entries)))
	return entries, nil
}

// RowsToSync returns the sheet rows for entries whose date is not in existing yet.
// existing is the sheet content with its header row; dates are read from the first column.
func RowsToSync(existing [][]any, entries []progress.Entry) [][]any {
	existingDates := make(map[string]bool)
	if len(existing) > 1 {
		for _, row := range existing[1:] {
			if len(row) == 0 || row[0] == nil {
				continue
			}
			existingDates[normalizeDate(fmt.Sprint(row[0]))] = true
		}
	}

	missing := make([]progress.Entry, 0, len(entries))
	for _, e := range entries {
		if existingDates[e.DateKey()] {
			continue
		}
		existingDates[e.DateKey()] = true
		missing = append(missing, e)
	}
	sort.SliceStable(missing, func(i, j int) bool {
		return missing[i].Date.Before(missing[j].Date)
	})

	rows := make([][]any, 0, len(missing))
	for _, e := range missing {
		rows = append(rows, entryRow(e))
	}
	return rows
}

func entryRow(e progress.Entry) []any {
	return []any{
		e.DateKey(),
		floatCell(e.Weight),
		floatCell(e.Waist),
		intCell(e.Calories),
		intCell(e.Protein),
		e.TrainingNotes,
		e.Mood,
		e.Phase.String(),
	}
}

func floatCell(v *float64) any {
	if v == nil {
		return ""
	}
	return *v
}

func intCell(v *int) any {
	if v == nil {
		return ""
	}
	return *v
}

// normalizeDate turns dates typed by hand, like 2025-6-2, into YYYY-MM-DD.
func normalizeDate(s string) string {
	s = strings.TrimSpace(s)
	if d, err := progress.ParseDate(s); err == nil {
		return d.Format(progress.DateLayout)
	}
	parts := strings.Split(s, "-")
	if len(parts) != 3 {
		return s
	}
	nums := make([]int, 3)
	for i, p := range parts {
		n, err := strconv.Atoi(p)
		if err != nil {
			return s
		}
		nums[i] = n
	}
	return time.Date(nums[0], time.Month(nums[1]), nums[2], 0, 0, 0, 0, time.UTC).Format(progress.DateLayout)
}
