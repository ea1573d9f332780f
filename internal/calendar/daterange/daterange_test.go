package daterange

import (
	"testing"
	"time"

	"hotelbooker/pkg/model"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestDateOf(t *testing.T) {
	tests := []struct {
		name  string
		input time.Time
		want  time.Time
	}{
		{
			name:  "strips time of day",
			input: time.Date(2024, 10, 16, 14, 30, 45, 123, time.UTC),
			want:  date(2024, 10, 16),
		},
		{
			name:  "converts non-UTC location",
			input: time.Date(2024, 10, 16, 1, 0, 0, 0, time.FixedZone("UTC+3", 3*3600)),
			want:  date(2024, 10, 15),
		},
		{
			name:  "already midnight UTC",
			input: date(2024, 10, 16),
			want:  date(2024, 10, 16),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := DateOf(tt.input); !got.Equal(tt.want) {
				t.Errorf("DateOf() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestParseDate(t *testing.T) {
	got, err := ParseDate("2024-10-16")
	if err != nil {
		t.Fatalf("ParseDate() unexpected error: %v", err)
	}
	if !got.Equal(date(2024, 10, 16)) {
		t.Errorf("ParseDate() = %v, want %v", got, date(2024, 10, 16))
	}

	if _, err := ParseDate("16/10/2024"); err == nil {
		t.Error("ParseDate() expected error for non-ISO format")
	}
	if _, err := ParseDate(""); err == nil {
		t.Error("ParseDate() expected error for empty string")
	}
}

func TestSpanDaily(t *testing.T) {
	dates, err := Span(date(2024, 10, 16), model.ViewDaily)
	if err != nil {
		t.Fatalf("Span() unexpected error: %v", err)
	}
	if len(dates) != 1 {
		t.Fatalf("Span(daily) returned %d dates, want 1", len(dates))
	}
	if !dates[0].Equal(date(2024, 10, 16)) {
		t.Errorf("Span(daily)[0] = %v, want anchor", dates[0])
	}
}

func TestSpanWeekly(t *testing.T) {
	tests := []struct {
		name      string
		anchor    time.Time
		wantStart time.Time
		wantEnd   time.Time
	}{
		{
			name:      "wednesday anchor snaps to containing week",
			anchor:    date(2024, 10, 16),
			wantStart: date(2024, 10, 13),
			wantEnd:   date(2024, 10, 19),
		},
		{
			name:      "sunday anchor starts its own week",
			anchor:    date(2024, 10, 13),
			wantStart: date(2024, 10, 13),
			wantEnd:   date(2024, 10, 19),
		},
		{
			name:      "saturday anchor ends its week",
			anchor:    date(2024, 10, 19),
			wantStart: date(2024, 10, 13),
			wantEnd:   date(2024, 10, 19),
		},
		{
			name:      "week crossing a month boundary",
			anchor:    date(2024, 10, 1),
			wantStart: date(2024, 9, 29),
			wantEnd:   date(2024, 10, 5),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dates, err := Span(tt.anchor, model.ViewWeekly)
			if err != nil {
				t.Fatalf("Span() unexpected error: %v", err)
			}
			if len(dates) != 7 {
				t.Fatalf("Span(weekly) returned %d dates, want 7", len(dates))
			}
			if !dates[0].Equal(tt.wantStart) {
				t.Errorf("week start = %v, want %v", dates[0], tt.wantStart)
			}
			if !dates[6].Equal(tt.wantEnd) {
				t.Errorf("week end = %v, want %v", dates[6], tt.wantEnd)
			}
			for i := 1; i < len(dates); i++ {
				if !dates[i].Equal(dates[i-1].AddDate(0, 0, 1)) {
					t.Errorf("dates not consecutive at index %d", i)
				}
			}
		})
	}
}

func TestSpanMonthly(t *testing.T) {
	tests := []struct {
		name   string
		anchor time.Time
		want   int
	}{
		{"leap february", date(2024, 2, 15), 29},
		{"regular february", date(2023, 2, 15), 28},
		{"thirty-one day month", date(2024, 10, 16), 31},
		{"thirty day month", date(2024, 11, 1), 30},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dates, err := Span(tt.anchor, model.ViewMonthly)
			if err != nil {
				t.Fatalf("Span() unexpected error: %v", err)
			}
			if len(dates) != tt.want {
				t.Fatalf("Span(monthly) returned %d dates, want %d", len(dates), tt.want)
			}
			first := time.Date(tt.anchor.Year(), tt.anchor.Month(), 1, 0, 0, 0, 0, time.UTC)
			if !dates[0].Equal(first) {
				t.Errorf("month start = %v, want %v", dates[0], first)
			}
		})
	}
}

func TestSpanUnknownView(t *testing.T) {
	if _, err := Span(date(2024, 10, 16), model.ViewMode("yearly")); err == nil {
		t.Error("Span() expected error for unknown view mode")
	}
}

func TestRangeOverlaps(t *testing.T) {
	base := NewRange(date(2024, 10, 14), date(2024, 10, 17))

	tests := []struct {
		name  string
		other Range
		want  bool
	}{
		{"identical range", NewRange(date(2024, 10, 14), date(2024, 10, 17)), true},
		{"partial overlap at tail", NewRange(date(2024, 10, 16), date(2024, 10, 20)), true},
		{"partial overlap at head", NewRange(date(2024, 10, 12), date(2024, 10, 15)), true},
		{"fully contained", NewRange(date(2024, 10, 15), date(2024, 10, 16)), true},
		{"fully containing", NewRange(date(2024, 10, 10), date(2024, 10, 25)), true},
		{"back-to-back after", NewRange(date(2024, 10, 17), date(2024, 10, 20)), false},
		{"back-to-back before", NewRange(date(2024, 10, 10), date(2024, 10, 14)), false},
		{"disjoint", NewRange(date(2024, 11, 1), date(2024, 11, 5)), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := base.Overlaps(tt.other); got != tt.want {
				t.Errorf("Overlaps(%v, %v) = %v, want %v", base, tt.other, got, tt.want)
			}
			if got := tt.other.Overlaps(base); got != tt.want {
				t.Errorf("Overlaps is not symmetric for %v and %v", base, tt.other)
			}
		})
	}
}

func TestRangeCovers(t *testing.T) {
	r := NewRange(date(2024, 10, 14), date(2024, 10, 17))

	tests := []struct {
		name string
		d    time.Time
		want bool
	}{
		{"check-in night is occupied", date(2024, 10, 14), true},
		{"middle night", date(2024, 10, 15), true},
		{"last night", date(2024, 10, 16), true},
		{"check-out day is free", date(2024, 10, 17), false},
		{"before range", date(2024, 10, 13), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := r.Covers(tt.d); got != tt.want {
				t.Errorf("Covers(%v) = %v, want %v", tt.d, got, tt.want)
			}
		})
	}
}

func TestRangeNights(t *testing.T) {
	tests := []struct {
		name  string
		r     Range
		want  int
		valid bool
	}{
		{"three nights", NewRange(date(2024, 10, 14), date(2024, 10, 17)), 3, true},
		{"single night", NewRange(date(2024, 10, 14), date(2024, 10, 15)), 1, true},
		{"zero-length is invalid", NewRange(date(2024, 10, 14), date(2024, 10, 14)), 0, false},
		{"across month boundary", NewRange(date(2024, 10, 30), date(2024, 11, 2)), 3, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.r.Nights(); got != tt.want {
				t.Errorf("Nights() = %d, want %d", got, tt.want)
			}
			if got := tt.r.Valid(); got != tt.valid {
				t.Errorf("Valid() = %v, want %v", got, tt.valid)
			}
		})
	}
}

func TestRangeShift(t *testing.T) {
	r := NewRange(date(2024, 10, 14), date(2024, 10, 17))
	shifted := r.Shift(date(2024, 10, 20))

	if !shifted.Start.Equal(date(2024, 10, 20)) {
		t.Errorf("Shift start = %v, want 2024-10-20", shifted.Start)
	}
	if !shifted.End.Equal(date(2024, 10, 23)) {
		t.Errorf("Shift end = %v, want 2024-10-23", shifted.End)
	}
	if shifted.Nights() != r.Nights() {
		t.Errorf("Shift changed length: got %d nights, want %d", shifted.Nights(), r.Nights())
	}
}
