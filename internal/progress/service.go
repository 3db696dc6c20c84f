package progress

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/2beens/fitprogress/internal/telemetry/metrics"
	"github.com/2beens/fitprogress/internal/telemetry/tracing"

	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/attribute"
)

type entriesRepo interface {
	Upsert(ctx context.Context, entry Entry) (_ *Entry, created bool, err error)
	Get(ctx context.Context, date time.Time) (*Entry, error)
	Delete(ctx context.Context, date time.Time) error
	DeleteAll(ctx context.Context) (int64, error)
	ListAll(ctx context.Context, params EntryParams) ([]Entry, error)
}

// DashboardCache keeps the last computed summary. Get returns nil, nil on a miss.
type DashboardCache interface {
	Get(ctx context.Context) (*Summary, error)
	Set(ctx context.Context, summary *Summary) error
	Invalidate(ctx context.Context) error
}

type ExportData struct {
	Entries    []Entry   `json:"entries"`
	ExportedAt time.Time `json:"exportedAt"`
}

type Service struct {
	repo           entriesRepo
	dashboardCache DashboardCache
	metrics        *metrics.Manager
	now            func() time.Time
}

func NewService(
	repo entriesRepo,
	dashboardCache DashboardCache,
	metricsManager *metrics.Manager,
) *Service {
	return &Service{
		repo:           repo,
		dashboardCache: dashboardCache,
		metrics:        metricsManager,
		now: func() time.Time {
			return time.Now().UTC()
		},
	}
}

// Save creates the entry for its date, or replaces the existing one.
func (s *Service) Save(ctx context.Context, entry Entry) (_ *Entry, created bool, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.progress.save")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	if err := entry.Validate(); err != nil {
		return nil, false, err
	}
	entry.Date = Day(entry.Date)
	span.SetAttributes(attribute.String("date", entry.DateKey()))

	saved, created, err := s.repo.Upsert(ctx, entry)
	if err != nil {
		return nil, false, fmt.Errorf("upsert: %w", err)
	}

	op := "updated"
	if created {
		op = "created"
	}
	s.metrics.CounterEntriesSaved.WithLabelValues(op).Inc()
	s.invalidateDashboard(ctx)

	return saved, created, nil
}

func (s *Service) Get(ctx context.Context, date time.Time) (_ *Entry, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.progress.get")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	entry, err := s.repo.Get(ctx, Day(date))
	if err != nil {
		return nil, fmt.Errorf("get entry %s: %w", date.Format(DateLayout), err)
	}
	return entry, nil
}

func (s *Service) Delete(ctx context.Context, date time.Time) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.progress.delete")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	if err := s.repo.Delete(ctx, Day(date)); err != nil {
		return fmt.Errorf("delete entry %s: %w", date.Format(DateLayout), err)
	}
	s.metrics.CounterEntriesDeleted.Inc()
	s.invalidateDashboard(ctx)
	return nil
}

// List returns entries matching params and the free text search term, newest first.
func (s *Service) List(ctx context.Context, params EntryParams, search string) (_ []Entry, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.progress.list")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.String("search", search))

	entries, err := s.repo.ListAll(ctx, params)
	if err != nil {
		return nil, fmt.Errorf("list entries: %w", err)
	}
	return Search(entries, search), nil
}

func (s *Service) Dashboard(ctx context.Context) (_ *Summary, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.progress.dashboard")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	cached, err := s.dashboardCache.Get(ctx)
	if err != nil {
		log.Errorf("get cached dashboard: %s", err)
	}
	if cached != nil {
		span.SetAttributes(attribute.Bool("cached", true))
		return cached, nil
	}

	entries, err := s.repo.ListAll(ctx, EntryParams{})
	if err != nil {
		return nil, fmt.Errorf("list entries: %w", err)
	}

	summary := Summarize(entries, s.now())
	if err := s.dashboardCache.Set(ctx, &summary); err != nil {
		log.Errorf("cache dashboard: %s", err)
	}

	return &summary, nil
}

// Export writes all entries as a JSON document.
func (s *Service) Export(ctx context.Context, w io.Writer) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.progress.export")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	entries, err := s.repo.ListAll(ctx, EntryParams{})
	if err != nil {
		return fmt.Errorf("list entries: %w", err)
	}
	span.SetAttributes(attribute.Int("count", len(entries)))

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(ExportData{
		Entries:    entries,
		ExportedAt: s.now(),
	}); err != nil {
		return fmt.Errorf("encode export: %w", err)
	}
	return nil
}

// Clear deletes all entries.
func (s *Service) Clear(ctx context.Context) (_ int64, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.progress.clear")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	deleted, err := s.repo.DeleteAll(ctx)
	if err != nil {
		return 0, fmt.Errorf("delete all: %w", err)
	}
	s.metrics.CounterEntriesDeleted.Add(float64(deleted))
	s.invalidateDashboard(ctx)
	return deleted, nil
}

func (s *Service) invalidateDashboard(ctx context.Context) {
	if err := s.dashboardCache.Invalidate(ctx); err != nil {
		log.Errorf("invalidate dashboard cache: %s", err)
	}
}
