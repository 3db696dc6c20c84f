package progress

import (
	"fmt"
	"sort"
	"time"
)

// Measurement is a body measurement row: weight in kilograms, waist in inches.
type Measurement struct {
	Date   time.Time `json:"date"`
	Weight float64   `json:"weight"`
	Waist  float64   `json:"waist"`
	Phase  Phase     `json:"phase"`
}

type Table []Measurement

// NewTable builds a table out of parallel columns. All columns must have the same length.
func NewTable(dates []string, weights, waists []float64, phases []string) (Table, error) {
	n := len(dates)
	if len(weights) != n || len(waists) != n || len(phases) != n {
		return nil, fmt.Errorf(
			"%w: dates=%d weights=%d waists=%d phases=%d",
			ErrLengthMismatch, len(dates), len(weights), len(waists), len(phases),
		)
	}

	table := make(Table, 0, n)
	for i := 0; i < n; i++ {
		date, err := ParseDate(dates[i])
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i, err)
		}
		phase, err := ParsePhase(phases[i])
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i, err)
		}
		if phase == "" {
			return nil, fmt.Errorf("row %d: %w: phase empty", i, ErrInvalidPhase)
		}
		table = append(table, Measurement{
			Date:   date,
			Weight: weights[i],
			Waist:  waists[i],
			Phase:  phase,
		})
	}

	return table, nil
}

// Subset returns the rows of the given phase, in their original order.
func (t Table) Subset(phase Phase) Table {
	subset := make(Table, 0)
	for _, m := range t {
		if m.Phase == phase {
			subset = append(subset, m)
		}
	}
	return subset
}

// SplitByPhase returns one subset per phase present in the table.
func (t Table) SplitByPhase() map[Phase]Table {
	split := make(map[Phase]Table)
	for _, m := range t {
		split[m.Phase] = append(split[m.Phase], m)
	}
	return split
}

func (t Table) Dates() []time.Time {
	dates := make([]time.Time, len(t))
	for i, m := range t {
		dates[i] = m.Date
	}
	return dates
}

func (t Table) Weights() []float64 {
	weights := make([]float64, len(t))
	for i, m := range t {
		weights[i] = m.Weight
	}
	return weights
}

func (t Table) Waists() []float64 {
	waists := make([]float64, len(t))
	for i, m := range t {
		waists[i] = m.Waist
	}
	return waists
}

// IntakeSeries holds parallel daily calories / protein (grams) values of one phase.
type IntakeSeries struct {
	Phase    Phase     `json:"phase"`
	Calories []float64 `json:"calories"`
	Protein  []float64 `json:"protein"`
}

func NewIntakeSeries(phase Phase, calories, protein []float64) (IntakeSeries, error) {
	if len(calories) != len(protein) {
		return IntakeSeries{}, fmt.Errorf(
			"%w: %s calories=%d protein=%d",
			ErrLengthMismatch, phase, len(calories), len(protein),
		)
	}
	return IntakeSeries{
		Phase:    phase,
		Calories: calories,
		Protein:  protein,
	}, nil
}

func (s IntakeSeries) Len() int {
	return len(s.Calories)
}

// TableFromEntries keeps entries that have weight, waist and phase, oldest first.
func TableFromEntries(entries []Entry) Table {
	table := make(Table, 0, len(entries))
	for _, e := range entries {
		if e.Weight == nil || e.Waist == nil || e.Phase == "" {
			continue
		}
		table = append(table, Measurement{
			Date:   e.Date,
			Weight: *e.Weight,
			Waist:  *e.Waist,
			Phase:  e.Phase,
		})
	}
	sort.SliceStable(table, func(i, j int) bool {
		return table[i].Date.Before(table[j].Date)
	})
	return table
}

// IntakeFromEntries groups entries with both calories and protein recorded by phase.
// Phases without any such entry are omitted.
func IntakeFromEntries(entries []Entry) []IntakeSeries {
	byPhase := make(map[Phase]*IntakeSeries)
	for _, e := range entries {
		if e.Calories == nil || e.Protein == nil || e.Phase == "" {
			continue
		}
		s, ok := byPhase[e.Phase]
		if !ok {
			s = &IntakeSeries{Phase: e.Phase}
			byPhase[e.Phase] = s
		}
		s.Calories = append(s.Calories, float64(*e.Calories))
		s.Protein = append(s.Protein, float64(*e.Protein))
	}

	series := make([]IntakeSeries, 0, len(byPhase))
	for _, p := range Phases {
		if s, ok := byPhase[p]; ok {
			series = append(series, *s)
		}
	}
	return series
}
