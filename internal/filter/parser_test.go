package filter

import (
	"testing"
	"time"
)

func TestParseDateRangeSameMonth(t *testing.T) {
	from, to, err := ParseDateRange("Nov 1-15")
	if err != nil {
		t.Fatalf("ParseDateRange: %v", err)
	}
	if from.Month() != time.November || from.Day() != 1 {
		t.Errorf("from = %v, want Nov 1", from)
	}
	if to.Month() != time.November || to.Day() != 15 {
		t.Errorf("to = %v, want Nov 15", to)
	}
	if to.Hour() != 23 || to.Minute() != 59 || to.Second() != 59 {
		t.Errorf("to = %v, want end of day", to)
	}
	if !to.After(*from) {
		t.Errorf("window inverted: %v .. %v", from, to)
	}
}

func TestParseDateRangeCrossMonth(t *testing.T) {
	from, to, err := ParseDateRange("Nov 20 - Dec 6")
	if err != nil {
		t.Fatalf("ParseDateRange: %v", err)
	}
	if from.Month() != time.November || from.Day() != 20 {
		t.Errorf("from = %v, want Nov 20", from)
	}
	if to.Month() != time.December || to.Day() != 6 {
		t.Errorf("to = %v, want Dec 6", to)
	}
	if !to.After(*from) {
		t.Errorf("window inverted: %v .. %v", from, to)
	}
}

func TestParseDateRangeEndMonthRollsToNextYear(t *testing.T) {
	from, to, err := ParseDateRange("December 20 - January 6")
	if err != nil {
		t.Fatalf("ParseDateRange: %v", err)
	}
	if to.Year() != from.Year()+1 {
		t.Errorf("end year = %d, want %d", to.Year(), from.Year()+1)
	}
}

func TestParseDateRangeWholeMonth(t *testing.T) {
	from, to, err := ParseDateRange("Nov")
	if err != nil {
		t.Fatalf("ParseDateRange: %v", err)
	}
	if from.Day() != 1 {
		t.Errorf("from = %v, want first of month", from)
	}
	if to.Month() != time.November || to.Day() != 30 {
		t.Errorf("to = %v, want Nov 30", to)
	}
}

func TestParseDateRangeErrors(t *testing.T) {
	tests := []string{
		"",
		"Nov 15-1",
		"Nov 32-33",
		"sometime soon",
		"13 1-5",
	}

	for _, input := range tests {
		if _, _, err := ParseDateRange(input); err == nil {
			t.Errorf("ParseDateRange(%q) succeeded, want error", input)
		}
	}
}
