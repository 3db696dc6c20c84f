package charts

import (
	"github.com/2beens/fitprogress/internal/progress"

	"github.com/wcharczuk/go-chart/v2/drawing"
)

const (
	DefaultWidth  = 1024
	DefaultHeight = 640
)

var (
	colorTeal    = drawing.ColorFromHex("1FB8CD")
	colorOrange  = drawing.ColorFromHex("FFC185")
	colorSlate   = drawing.ColorFromHex("5D878F")
	colorMustard = drawing.ColorFromHex("D2BA4C")
	colorRed     = drawing.ColorFromHex("DB4545")
)

// zoneAlpha is roughly 10% opacity.
const zoneAlpha = 26

func weightColor(phase progress.Phase) drawing.Color {
	if phase == progress.PhaseBulking {
		return colorOrange
	}
	return colorTeal
}

func waistColor(phase progress.Phase) drawing.Color {
	if phase == progress.PhaseBulking {
		return colorMustard
	}
	return colorSlate
}

func intakeColor(phase progress.Phase) drawing.Color {
	return weightColor(phase)
}

func phaseBarColor(phase progress.Phase) drawing.Color {
	if phase == progress.PhaseBulking {
		return colorRed
	}
	return colorSlate
}
