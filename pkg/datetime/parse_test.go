package datetime

import (
	"testing"
)

func TestOffsetDate(t *testing.T) {
	tests := []struct {
		name     string
		date     string
		months   int
		expected string
	}{
		{
			name:     "Forward within year",
			date:     "2026-03",
			months:   4,
			expected: "2026-07",
		},
		{
			name:     "Forward across year boundary",
			date:     "2026-11",
			months:   3,
			expected: "2027-02",
		},
		{
			name:     "Backward",
			date:     "2026-01",
			months:   -1,
			expected: "2025-12",
		},
		{
			name:     "Zero offset",
			date:     "2026-06",
			months:   0,
			expected: "2026-06",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := OffsetDate(tt.date, DateTimeLayout, tt.months)
			if err != nil {
				t.Fatalf("OffsetDate() error = %v", err)
			}
			if result != tt.expected {
				t.Errorf("OffsetDate(%s, %d) = %s, expected %s", tt.date, tt.months, result, tt.expected)
			}
		})
	}
}

func TestOffsetDateInvalid(t *testing.T) {
	if _, err := OffsetDate("not-a-date", DateTimeLayout, 1); err == nil {
		t.Error("OffsetDate() should fail on an unparseable date")
	}
}

func TestMonthLabel(t *testing.T) {
	reference := MustParseTime(DateTimeLayout, "2026-08")
	if label := MonthLabel(reference, 0); label != "2026-08" {
		t.Errorf("MonthLabel(ref, 0) = %s, expected 2026-08", label)
	}
	if label := MonthLabel(reference, 17); label != "2028-01" {
		t.Errorf("MonthLabel(ref, 17) = %s, expected 2028-01", label)
	}
}

func TestDateBeforeDate(t *testing.T) {
	before, err := DateBeforeDate("2026-01", "2026-02")
	if err != nil {
		t.Fatalf("DateBeforeDate() error = %v", err)
	}
	if !before {
		t.Error("2026-01 should be before 2026-02")
	}

	same, err := DateBeforeDate("2026-02", "2026-02")
	if err != nil {
		t.Fatalf("DateBeforeDate() error = %v", err)
	}
	if same {
		t.Error("a date should not be before itself")
	}
}

func TestMustParseTimePanics(t *testing.T) {
	defer func() {
		if r := recover(); r == nil {
			t.Error("MustParseTime should panic on invalid input")
		}
	}()
	_ = MustParseTime(DateTimeLayout, "bogus")
}
