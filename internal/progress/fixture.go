package progress

// Weekly check-ins of one cutting -> bulking cycle, used when charts are rendered
// without a data source.
var (
	sampleDates = []string{
		"2025-06-22", "2025-06-29", "2025-07-06", "2025-07-13", "2025-07-20", "2025-07-27", "2025-08-03",
		"2025-08-10", "2025-08-17", "2025-08-24", "2025-08-31", "2025-09-07", "2025-09-14", "2025-09-21",
		"2025-09-28", "2025-10-05", "2025-10-12", "2025-10-19", "2025-10-26", "2025-11-02", "2025-11-09",
		"2025-11-16", "2025-11-23", "2025-11-30", "2025-12-07", "2025-12-14", "2025-12-21", "2025-12-28",
		"2026-01-04", "2026-01-11", "2026-01-18",
	}
	sampleWeights = []float64{
		75.0, 74.2, 73.8, 73.1, 72.6, 72.0, 72.5, 73.2, 74.1, 74.8, 75.6, 76.2, 76.9, 77.4, 78.1, 78.7,
		79.2, 79.8, 80.3, 80.9, 81.4, 81.8, 82.2, 82.6, 83.0, 83.3, 83.6, 83.9, 84.1, 84.4, 84.6,
	}
	sampleWaists = []float64{
		32.0, 31.7, 31.4, 31.0, 30.8, 30.5, 30.7, 31.0, 31.3, 31.6, 31.9, 32.1, 32.4, 32.6, 32.9, 33.1,
		33.3, 33.5, 33.7, 33.9, 34.0, 34.2, 34.3, 34.4, 34.5, 34.6, 34.7, 34.8, 34.9, 35.0, 35.1,
	}

	sampleCuttingCalories = []float64{1850, 1900, 1825, 1875, 1800, 1850, 1900}
	sampleCuttingProtein  = []float64{155, 160, 150, 158, 145, 152, 165}
	sampleBulkingCalories = []float64{
		2800, 2900, 2750, 2850, 2950, 3000, 2920, 2880, 2950, 3100, 2850, 2900,
		2950, 3050, 2800, 2900, 2850, 2950, 3000, 2880, 2920, 2850, 2900, 2950,
	}
	sampleBulkingProtein = []float64{
		180, 190, 175, 185, 195, 200, 188, 182, 195, 210, 185, 190,
		195, 205, 180, 190, 185, 195, 200, 182, 188, 185, 190, 195,
	}
)

// samplePhases: the first 7 check-ins are cutting, the remaining 24 bulking.
func samplePhases() []string {
	phases := make([]string, len(sampleDates))
	for i := range phases {
		if i < 7 {
			phases[i] = string(PhaseCutting)
		} else {
			phases[i] = string(PhaseBulking)
		}
	}
	return phases
}

// SampleTable returns the 31 weekly measurements of the sample cycle.
func SampleTable() Table {
	table, err := NewTable(sampleDates, sampleWeights, sampleWaists, samplePhases())
	if err != nil {
		// static data, can only fail on a programming error
		panic(err)
	}
	return table
}

// SampleIntake returns the calories / protein series of the sample cycle, cutting first.
func SampleIntake() []IntakeSeries {
	return []IntakeSeries{
		{
			Phase:    PhaseCutting,
			Calories: append([]float64(nil), sampleCuttingCalories...),
			Protein:  append([]float64(nil), sampleCuttingProtein...),
		},
		{
			Phase:    PhaseBulking,
			Calories: append([]float64(nil), sampleBulkingCalories...),
			Protein:  append([]float64(nil), sampleBulkingProtein...),
		},
	}
}
