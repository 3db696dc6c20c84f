package progress

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/2beens/fitprogress/internal/telemetry/tracing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.opentelemetry.io/otel/attribute"
)

type EntryParams struct {
	Phase Phase
	From  *time.Time
	To    *time.Time
}

type Repo struct {
	db *pgxpool.Pool
}

func NewRepo(db *pgxpool.Pool) *Repo {
	return &Repo{
		db: db,
	}
}

// Upsert stores the entry, replacing an existing one with the same date.
// Returns the stored entry and whether it was newly created.
func (r *Repo) Upsert(ctx context.Context, entry Entry) (_ *Entry, created bool, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.progress.upsert")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.String("date", entry.DateKey()))

	now := time.Now().UTC()
	err = r.db.QueryRow(
		ctx,
		`INSERT INTO progress_entry
				(date, weight, waist, calories, protein, mood, phase, training_notes, created_at, updated_at)
				VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $9)
			ON CONFLICT (date) DO UPDATE SET
				weight = EXCLUDED.weight,
				waist = EXCLUDED.waist,
				calories = EXCLUDED.calories,
				protein = EXCLUDED.protein,
				mood = EXCLUDED.mood,
				phase = EXCLUDED.phase,
				training_notes = EXCLUDED.training_notes,
				updated_at = EXCLUDED.updated_at
			RETURNING id, created_at, updated_at, (xmax = 0) AS inserted;`,
		Day(entry.Date), entry.Weight, entry.Waist, entry.Calories, entry.Protein,
		entry.Mood, string(entry.Phase), entry.TrainingNotes, now,
	).Scan(&entry.ID, &entry.CreatedAt, &entry.UpdatedAt, &created)
	if err != nil {
		return nil, false, fmt.Errorf("upsert entry: %w", err)
	}

	span.SetAttributes(attribute.Int("entry.id", entry.ID))
	span.SetAttributes(attribute.Bool("created", created))

	entry.Date = Day(entry.Date)
	return &entry, created, nil
}

func (r *Repo) Get(ctx context.Context, date time.Time) (_ *Entry, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.progress.get")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.String("date", date.Format(DateLayout)))

	rows, err := r.db.Query(
		ctx,
		`SELECT id, date, weight, waist, calories, protein, mood, phase, training_notes, created_at, updated_at
			FROM progress_entry
			WHERE date = $1;`,
		Day(date),
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	entries, err := r.rows2entries(rows)
	if err != nil {
		return nil, err
	}

	if len(entries) != 1 {
		return nil, ErrEntryNotFound
	}

	return &entries[0], nil
}

func (r *Repo) Delete(ctx context.Context, date time.Time) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.progress.delete")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.String("date", date.Format(DateLayout)))

	tag, err := r.db.Exec(ctx, `DELETE FROM progress_entry WHERE date = $1`, Day(date))
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrEntryNotFound
	}
	return nil
}

// DeleteAll removes every entry and returns how many were removed.
func (r *Repo) DeleteAll(ctx context.Context) (_ int64, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.progress.deleteall")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	tag, err := r.db.Exec(ctx, `DELETE FROM progress_entry`)
	if err != nil {
		return 0, err
	}
	span.SetAttributes(attribute.Int64("deleted", tag.RowsAffected()))
	return tag.RowsAffected(), nil
}

// ListAll returns all entries matching params, newest first.
func (r *Repo) ListAll(ctx context.Context, params EntryParams) (_ []Entry, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.progress.listall")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.String("phase", string(params.Phase)))
	if params.From != nil {
		span.SetAttributes(attribute.String("from", params.From.String()))
	}
	if params.To != nil {
		span.SetAttributes(attribute.String("to", params.To.String()))
	}

	rows, err := r.db.Query(
		ctx,
		`SELECT id, date, weight, waist, calories, protein, mood, phase, training_notes, created_at, updated_at
			FROM progress_entry
				WHERE ($1::text = '' OR phase = $1)
				AND ($2::date IS NULL OR date >= $2)
				AND ($3::date IS NULL OR date <= $3)
			ORDER BY date DESC;`,
		string(params.Phase), params.From, params.To,
	)
	if err != nil {
		return nil, fmt.Errorf("query: %w", err)
	}
	defer rows.Close()

	entries, err := r.rows2entries(rows)
	if err != nil {
		return nil, fmt.Errorf("rows2entries: %w", err)
	}
	span.SetAttributes(attribute.Int("count", len(entries)))
	return entries, nil
}

func (r *Repo) rows2entries(rows pgx.Rows) ([]Entry, error) {
	entries := make([]Entry, 0)
	for rows.Next() {
		var e Entry
		var phase string
		if err := rows.Scan(
			&e.ID, &e.Date, &e.Weight, &e.Waist, &e.Calories, &e.Protein,
			&e.Mood, &phase, &e.TrainingNotes, &e.CreatedAt, &e.UpdatedAt,
		); err != nil {
			return nil, err
		}
		e.Phase = Phase(phase)
		entries = append(entries, e)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return entries, nil
}

// IsNotFound reports whether err means the entry does not exist.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrEntryNotFound) || errors.Is(err, pgx.ErrNoRows)
}
