package progress

import (
	"math"
	"sort"
	"strconv"
	"strings"
	"time"
)

const recentEntriesCount = 5

// Summary is the dashboard view over all entries.
type Summary struct {
	CurrentWeight *float64      `json:"currentWeight"`
	CurrentWaist  *float64      `json:"currentWaist"`
	CurrentPhase  Phase         `json:"currentPhase,omitempty"`
	WeightChange  *float64      `json:"weightChange"`
	WaistChange   *float64      `json:"waistChange"`
	PhaseDuration int           `json:"phaseDuration"`
	WeeklyEntries int           `json:"weeklyEntries"`
	TotalEntries  int           `json:"totalEntries"`
	PhaseCounts   map[Phase]int `json:"phaseCounts"`
	Recent        []Entry       `json:"recent"`
	GeneratedAt   time.Time     `json:"generatedAt"`
}

// SortByDateDesc sorts entries newest first, in place.
func SortByDateDesc(entries []Entry) {
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Date.After(entries[j].Date)
	})
}

// Summarize computes the dashboard summary. Changes compare the latest entry with the one before it,
// and are only set when both entries recorded the metric.
func Summarize(entries []Entry, now time.Time) Summary {
	sorted := append([]Entry(nil), entries...)
	SortByDateDesc(sorted)

	summary := Summary{
		TotalEntries: len(sorted),
		PhaseCounts: map[Phase]int{
			PhaseCutting: 0,
			PhaseBulking: 0,
		},
		Recent:      make([]Entry, 0, recentEntriesCount),
		GeneratedAt: now,
	}

	for _, e := range sorted {
		if e.Phase != "" {
			summary.PhaseCounts[e.Phase]++
		}
	}

	weekAgo := now.AddDate(0, 0, -7)
	for _, e := range sorted {
		if !e.Date.Before(weekAgo) {
			summary.WeeklyEntries++
		}
	}

	if len(sorted) == 0 {
		return summary
	}

	latest := sorted[0]
	summary.CurrentWeight = latest.Weight
	summary.CurrentWaist = latest.Waist
	summary.CurrentPhase = latest.Phase

	if len(sorted) >= 2 {
		previous := sorted[1]
		if latest.Weight != nil && previous.Weight != nil {
			summary.WeightChange = Float(round1(*latest.Weight - *previous.Weight))
		}
		if latest.Waist != nil && previous.Waist != nil {
			summary.WaistChange = Float(round1(*latest.Waist - *previous.Waist))
		}
	}

	if latest.Phase != "" {
		summary.PhaseDuration = summary.PhaseCounts[latest.Phase]
	}

	n := recentEntriesCount
	if len(sorted) < n {
		n = len(sorted)
	}
	summary.Recent = append(summary.Recent, sorted[:n]...)

	return summary
}

// FilterByPhase returns the entries of the given phase; an empty phase matches everything.
func FilterByPhase(entries []Entry, phase Phase) []Entry {
	filtered := make([]Entry, 0, len(entries))
	for _, e := range entries {
		if phase == "" || e.Phase == phase {
			filtered = append(filtered, e)
		}
	}
	return filtered
}

// Search does a case-insensitive match of term against the entry's rendered fields.
func Search(entries []Entry, term string) []Entry {
	term = strings.ToLower(strings.TrimSpace(term))
	if term == "" {
		return entries
	}

	found := make([]Entry, 0)
	for _, e := range entries {
		if strings.Contains(searchText(e), term) {
			found = append(found, e)
		}
	}
	return found
}

func searchText(e Entry) string {
	parts := []string{e.DateKey(), string(e.Phase), e.Mood, e.TrainingNotes}
	if e.Weight != nil {
		parts = append(parts, strconv.FormatFloat(*e.Weight, 'f', -1, 64)+" kg")
	}
	if e.Waist != nil {
		parts = append(parts, strconv.FormatFloat(*e.Waist, 'f', -1, 64)+"\"")
	}
	if e.Calories != nil {
		parts = append(parts, strconv.Itoa(*e.Calories))
	}
	if e.Protein != nil {
		parts = append(parts, strconv.Itoa(*e.Protein)+"g")
	}
	return strings.ToLower(strings.Join(parts, " "))
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
