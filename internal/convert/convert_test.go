package convert

import (
	"math"
	"testing"
)

func TestLCToSC100Free(t *testing.T) {
	got := LCToSC(60.0, 100, Free)
	if !got.Converted {
		t.Fatal("LCToSC(60.0, 100, FREE) should convert")
	}
	if math.Abs(got.Seconds-58.59) > 0.1 {
		t.Errorf("LCToSC(60.0, 100, FREE) = %.4f, want ≈ 58.59", got.Seconds)
	}
}

func TestSCToLC100Free(t *testing.T) {
	got := SCToLC(60.0, 100, Free)
	if !got.Converted {
		t.Fatal("SCToLC(60.0, 100, FREE) should convert")
	}
	if math.Abs(got.Seconds-61.38) > 0.1 {
		t.Errorf("SCToLC(60.0, 100, FREE) = %.4f, want ≈ 61.38", got.Seconds)
	}
}

// Each direction must be the exact algebraic inverse of the other wherever
// no guard fires.
func TestRoundTripAcrossTable(t *testing.T) {
	times := []float64{25.0, 60.0, 124.37, 310.5, 1050.2}

	for distance, strokes := range turnFactors {
		for stroke := range strokes {
			for _, seconds := range times {
				sc := LCToSC(seconds, distance, stroke)
				if !sc.Converted {
					// Correction exceeded the time itself; identity is the
					// contract there, not a round trip.
					continue
				}
				back := SCToLC(sc.Seconds, distance, stroke)
				if math.Abs(back.Seconds-seconds) > 0.01 {
					t.Errorf("SCToLC(LCToSC(%.2f)) = %.4f for %dm %s, want within 0.01",
						seconds, back.Seconds, distance, stroke)
				}

				lc := SCToLC(seconds, distance, stroke)
				forth := LCToSC(lc.Seconds, distance, stroke)
				if math.Abs(forth.Seconds-seconds) > 0.01 {
					t.Errorf("LCToSC(SCToLC(%.2f)) = %.4f for %dm %s, want within 0.01",
						seconds, forth.Seconds, distance, stroke)
				}
			}
		}
	}
}

func TestMonotonicityAcrossTable(t *testing.T) {
	for distance, strokes := range turnFactors {
		for stroke := range strokes {
			seconds := 90.0
			if sc := LCToSC(seconds, distance, stroke); sc.Converted && sc.Seconds > seconds {
				t.Errorf("LCToSC(%.1f, %d, %s) = %.4f, short course must not be slower",
					seconds, distance, stroke, sc.Seconds)
			}
			if lc := SCToLC(seconds, distance, stroke); lc.Converted && lc.Seconds < seconds {
				t.Errorf("SCToLC(%.1f, %d, %s) = %.4f, long course must not be faster",
					seconds, distance, stroke, lc.Seconds)
			}
		}
	}
}

func TestIdentityWithoutTurnFactor(t *testing.T) {
	tests := []struct {
		name     string
		distance int
		stroke   Stroke
	}{
		{"400 backstroke is not contested", 400, Back},
		{"400 breaststroke is not contested", 400, Breast},
		{"800 medley is not contested", 800, Medley},
		{"unknown distance", 75, Free},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := LCToSC(100.0, tt.distance, tt.stroke); got.Converted || got.Seconds != 100.0 {
				t.Errorf("LCToSC = %+v, want unchanged input", got)
			}
			if got := SCToLC(100.0, tt.distance, tt.stroke); got.Converted || got.Seconds != 100.0 {
				t.Errorf("SCToLC = %+v, want unchanged input", got)
			}
		})
	}
}

func TestConversionGuards(t *testing.T) {
	if got := LCToSC(0, 100, Free); got.Converted {
		t.Errorf("LCToSC(0) = %+v, want unchanged", got)
	}
	if got := LCToSC(-5, 100, Free); got.Converted || got.Seconds != -5 {
		t.Errorf("LCToSC(-5) = %+v, want unchanged", got)
	}
	if got := SCToLC(0, 100, Free); got.Converted {
		t.Errorf("SCToLC(0) = %+v, want unchanged", got)
	}

	// An extreme short input makes the correction exceed the time itself.
	if got := LCToSC(0.5, 1500, Free); got.Converted || got.Seconds != 0.5 {
		t.Errorf("LCToSC(0.5, 1500, FREE) = %+v, want unchanged on non-positive result", got)
	}
}

func TestGetTimeForCourse(t *testing.T) {
	lc := 61.38
	sc := 58.59

	tests := []struct {
		name    string
		lc, sc  *float64
		desired string
		want    *float64
	}{
		{"explicit LC", &lc, &sc, "LC", &lc},
		{"explicit SC", &lc, &sc, "SC", &sc},
		{"lowercase course", &lc, &sc, "sc", &sc},
		{"default prefers LC", &lc, &sc, "", &lc},
		{"default falls back to SC", nil, &sc, "", &sc},
		{"desired LC but absent", nil, &sc, "LC", nil},
		{"nothing recorded", nil, nil, "", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := GetTimeForCourse(tt.lc, tt.sc, tt.desired); got != tt.want {
				t.Errorf("GetTimeForCourse = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestFormatSeconds(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		{58.59, "58.59"},
		{61.38, "1:01.38"},
		{5.2, "5.20"},
		{600, "10:00.00"},
		{124.375, "2:04.38"},
		{-1, ""},
	}

	for _, tt := range tests {
		if got := FormatSeconds(tt.in); got != tt.want {
			t.Errorf("FormatSeconds(%v) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestParseRaceTime(t *testing.T) {
	tests := []struct {
		in      string
		want    float64
		wantErr bool
	}{
		{"58.59", 58.59, false},
		{"1:01.38", 61.38, false},
		{" 2:04.38 ", 124.38, false},
		{"45", 45, false},
		{"1:75.00", 0, true},
		{"1:02:03", 0, true},
		{"abc", 0, true},
		{"", 0, true},
	}

	for _, tt := range tests {
		got, err := ParseRaceTime(tt.in)
		if tt.wantErr {
			if err == nil {
				t.Errorf("ParseRaceTime(%q) = %v, want error", tt.in, got)
			}
			continue
		}
		if err != nil {
			t.Errorf("ParseRaceTime(%q) error: %v", tt.in, err)
			continue
		}
		if math.Abs(got-tt.want) > 1e-9 {
			t.Errorf("ParseRaceTime(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}
