package datetime

import (
	"testing"
)

func TestMustParseTime(t *testing.T) {
	tests := []struct {
		name     string
		layout   string
		dateStr  string
		expected string
	}{
		{
			name:     "Valid month date",
			layout:   DateTimeLayout,
			dateStr:  "2026-01",
			expected: "2026-01",
		},
		{
			name:     "Valid day date",
			layout:   DayLayout,
			dateStr:  "2026-08-15",
			expected: "2026-08-15",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := MustParseTime(tt.layout, tt.dateStr)
			if result.Format(tt.layout) != tt.expected {
				t.Errorf("MustParseTime() = %s, expected %s", result.Format(tt.layout), tt.expected)
			}
		})
	}
}

func TestMustParseTimePanic(t *testing.T) {
	defer func() {
		if r := recover(); r == nil {
			t.Errorf("Expected MustParseTime to panic with invalid date")
		}
	}()

	MustParseTime(DateTimeLayout, "invalid-date")
}

func TestOffsetDate(t *testing.T) {
	tests := []struct {
		name     string
		date     string
		months   int
		expected string
		wantErr  bool
	}{
		{
			name:     "Full loan term",
			date:     "2026-01",
			months:   360,
			expected: "2056-01",
		},
		{
			name:     "Cross year boundary forward",
			date:     "2026-06",
			months:   8,
			expected: "2027-02",
		},
		{
			name:     "Backward offset",
			date:     "2026-01",
			months:   -24,
			expected: "2024-01",
		},
		{
			name:     "Zero months",
			date:     "2026-06",
			months:   0,
			expected: "2026-06",
		},
		{
			name:    "Invalid date",
			date:    "not-a-date",
			months:  1,
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := OffsetDate(tt.date, DateTimeLayout, tt.months)
			if tt.wantErr {
				if err == nil {
					t.Errorf("OffsetDate() expected error but got none")
				}
				return
			}
			if err != nil {
				t.Errorf("OffsetDate() error = %v", err)
				return
			}
			if result != tt.expected {
				t.Errorf("OffsetDate() = %v, expected %v", result, tt.expected)
			}
		})
	}
}

func TestValidDay(t *testing.T) {
	tests := []struct {
		name     string
		date     string
		expected bool
	}{
		{"Valid day", "2026-08-29", true},
		{"Month only", "2026-08", false},
		{"Out of range day", "2026-02-30", false},
		{"Garbage", "yesterday", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ValidDay(tt.date); got != tt.expected {
				t.Errorf("ValidDay(%q) = %v, expected %v", tt.date, got, tt.expected)
			}
		})
	}
}
