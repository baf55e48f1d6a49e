// Package convert translates race times between short course (25m pool) and
// long course (50m pool) using the British Swimming equivalent-time model.
//
// A shorter pool means more wall turns, each worth a small time advantage
// captured by an empirical per-stroke, per-distance turn factor. The forward
// formula subtracts the turn benefit from a long-course time; the inverse is
// the exact algebraic solution of the forward formula treated as a quadratic
// in the unknown long-course time, so round trips reproduce the input.
package convert

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Stroke identifies a competitive stroke in the turn-factor table.
type Stroke string

const (
	Free   Stroke = "FREE"
	Back   Stroke = "BACK"
	Breast Stroke = "BREAST"
	Fly    Stroke = "FLY"
	Medley Stroke = "IM"
)

// Course identifiers accepted by GetTimeForCourse.
const (
	CourseLC = "LC"
	CourseSC = "SC"
)

// turnFactors holds the empirical correction constants keyed by distance in
// meters, then stroke. 50m and 100m share factors; longer distances cover
// progressively fewer strokes because not every stroke is contested at every
// distance. A missing entry means no established conversion exists and both
// directions leave the time unchanged.
var turnFactors = map[int]map[Stroke]float64{
	50: {
		Free:   42.245,
		Back:   40.5,
		Breast: 63.616,
		Fly:    38.269,
	},
	100: {
		Free:   42.245,
		Back:   40.5,
		Breast: 63.616,
		Fly:    38.269,
	},
	200: {
		Free:   43.786,
		Back:   41.98,
		Breast: 66.598,
		Fly:    39.76,
		Medley: 49.7,
	},
	400: {
		Free:   44.233,
		Medley: 55.366,
	},
	800: {
		Free: 45.525,
	},
	1500: {
		Free: 46.221,
	},
}

// Result carries a conversion outcome. Converted is false when a guard fired
// and Seconds is the unchanged input.
type Result struct {
	Seconds   float64
	Converted bool
}

func unchanged(seconds float64) Result {
	return Result{Seconds: seconds}
}

// turnFactor returns the correction constant for the pair, if one exists.
func turnFactor(distanceM int, stroke Stroke) (float64, bool) {
	strokes, ok := turnFactors[distanceM]
	if !ok {
		return 0, false
	}
	tf, ok := strokes[stroke]
	return tf, ok
}

// numTurnFactor scales the per-length correction by the number of extra
// turns a 25m pool adds over the distance.
func numTurnFactor(distanceM int) float64 {
	d := float64(distanceM) / 100
	return d * d * 2
}

// LCToSC converts a long-course time to its short-course equivalent.
// Non-positive inputs, pairs without a turn factor, and corrections that
// would produce a non-positive time all return the input unchanged.
func LCToSC(lcSeconds float64, distanceM int, stroke Stroke) Result {
	if lcSeconds <= 0 {
		return unchanged(lcSeconds)
	}
	tf, ok := turnFactor(distanceM, stroke)
	if !ok {
		return unchanged(lcSeconds)
	}
	sc := lcSeconds - (tf/lcSeconds)*numTurnFactor(distanceM)
	if sc <= 0 {
		return unchanged(lcSeconds)
	}
	return Result{Seconds: sc, Converted: true}
}

// SCToLC converts a short-course time to its long-course equivalent via the
// quadratic inverse of LCToSC. The result must be positive and no faster
// than the input (a long-course swim is never quicker than the same
// performance short course); otherwise the input is returned unchanged.
func SCToLC(scSeconds float64, distanceM int, stroke Stroke) Result {
	if scSeconds <= 0 {
		return unchanged(scSeconds)
	}
	tf, ok := turnFactor(distanceM, stroke)
	if !ok {
		return unchanged(scSeconds)
	}
	discriminant := scSeconds*scSeconds + 4*tf*numTurnFactor(distanceM)
	if discriminant < 0 {
		return unchanged(scSeconds)
	}
	lc := (scSeconds + math.Sqrt(discriminant)) / 2
	if lc <= 0 || lc < scSeconds {
		return unchanged(scSeconds)
	}
	return Result{Seconds: lc, Converted: true}
}

// GetTimeForCourse selects the recorded time for the desired course type:
// "LC" and "SC" pick that course's time; anything else returns whichever is
// recorded, long course preferred. A nil return means no time is recorded.
func GetTimeForCourse(lc, sc *float64, desired string) *float64 {
	switch strings.ToUpper(strings.TrimSpace(desired)) {
	case CourseLC:
		return lc
	case CourseSC:
		return sc
	default:
		if lc != nil {
			return lc
		}
		return sc
	}
}

// FormatSeconds renders a time as mm:ss.hh, dropping the minute part for
// times under a minute ("58.59", "1:01.38").
func FormatSeconds(seconds float64) string {
	if seconds < 0 {
		return ""
	}
	minutes := int(seconds) / 60
	rest := seconds - float64(minutes*60)
	if minutes == 0 {
		return fmt.Sprintf("%.2f", rest)
	}
	return fmt.Sprintf("%d:%05.2f", minutes, rest)
}

// ParseRaceTime parses "mm:ss.hh" or plain seconds into seconds.
func ParseRaceTime(text string) (float64, error) {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return 0, fmt.Errorf("parse race time: empty input")
	}
	parts := strings.Split(trimmed, ":")
	if len(parts) > 2 {
		return 0, fmt.Errorf("parse race time: %q has too many colon segments", text)
	}

	secs, err := strconv.ParseFloat(parts[len(parts)-1], 64)
	if err != nil || secs < 0 {
		return 0, fmt.Errorf("parse race time: invalid seconds in %q", text)
	}
	if len(parts) == 1 {
		return secs, nil
	}
	if secs >= 60 {
		return 0, fmt.Errorf("parse race time: seconds out of range in %q", text)
	}
	minutes, err := strconv.Atoi(parts[0])
	if err != nil || minutes < 0 {
		return 0, fmt.Errorf("parse race time: invalid minutes in %q", text)
	}
	return float64(minutes)*60 + secs, nil
}
