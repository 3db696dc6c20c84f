package progress

import (
	"context"
	"sync"
	"time"
)

type repoMock struct {
	mutex   sync.Mutex
	entries map[string]Entry
	lastID  int
}

func NewMockEntriesRepo() *repoMock {
	return &repoMock{
		entries: make(map[string]Entry),
	}
}

func (r *repoMock) Upsert(_ context.Context, entry Entry) (*Entry, bool, error) {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	now := time.Now().UTC()
	entry.Date = Day(entry.Date)
	existing, found := r.entries[entry.DateKey()]
	if found {
		entry.ID = existing.ID
		entry.CreatedAt = existing.CreatedAt
	} else {
		r.lastID++
		entry.ID = r.lastID
		entry.CreatedAt = now
	}
	entry.UpdatedAt = now
	r.entries[entry.DateKey()] = entry
	return &entry, !found, nil
}

func (r *repoMock) Get(_ context.Context, date time.Time) (*Entry, error) {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	entry, ok := r.entries[date.Format(DateLayout)]
	if !ok {
		return nil, ErrEntryNotFound
	}
	return &entry, nil
}

func (r *repoMock) Delete(_ context.Context, date time.Time) error {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	key := date.Format(DateLayout)
	if _, ok := r.entries[key]; !ok {
		return ErrEntryNotFound
	}
	delete(r.entries, key)
	return nil
}

func (r *repoMock) DeleteAll(context.Context) (int64, error) {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	deleted := int64(len(r.entries))
	r.entries = make(map[string]Entry)
	return deleted, nil
}

func (r *repoMock) ListAll(_ context.Context, params EntryParams) ([]Entry, error) {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	entries := make([]Entry, 0, len(r.entries))
	for _, e := range r.entries {
		if params.Phase != "" && e.Phase != params.Phase {
			continue
		}
		if params.From != nil && e.Date.Before(Day(*params.From)) {
			continue
		}
		if params.To != nil && e.Date.After(Day(*params.To)) {
			continue
		}
		entries = append(entries, e)
	}
	SortByDateDesc(entries)
	return entries, nil
}

type dashboardCacheMock struct {
	mutex   sync.Mutex
	summary *Summary
}

func NewMockDashboardCache() *dashboardCacheMock {
	return &dashboardCacheMock{}
}

func (c *dashboardCacheMock) Get(context.Context) (*Summary, error) {
	c.mutex.Lock()
	defer c.mutex.Unlock()
	return c.summary, nil
}

func (c *dashboardCacheMock) Set(_ context.Context, summary *Summary) error {
	c.mutex.Lock()
	defer c.mutex.Unlock()
	c.summary = summary
	return nil
}

func (c *dashboardCacheMock) Invalidate(context.Context) error {
	c.mutex.Lock()
	defer c.mutex.Unlock()
	c.summary = nil
	return nil
}
