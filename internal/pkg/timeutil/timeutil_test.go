package timeutil

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"
)

func TestCalculateAge(t *testing.T) {
	birth := Date(1999, time.June, 15, time.UTC)

	tests := []struct {
		name  string
		today time.Time
		want  int
	}{
		{"day before birthday", Date(2024, time.June, 14, time.UTC), 24},
		{"on birthday", Date(2024, time.June, 15, time.UTC), 25},
		{"earlier month", Date(2024, time.May, 30, time.UTC), 24},
		{"later month", Date(2024, time.July, 1, time.UTC), 25},
		{"same day of birth", birth, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CalculateAge(birth, tt.today); got != tt.want {
				t.Fatalf("CalculateAge = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestCalculateAge_LeapDay(t *testing.T) {
	birth := Date(2000, time.February, 29, time.UTC)

	if got := CalculateAge(birth, Date(2023, time.February, 28, time.UTC)); got != 22 {
		t.Fatalf("expected 22 on Feb 28, got %d", got)
	}
	if got := CalculateAge(birth, Date(2023, time.March, 1, time.UTC)); got != 23 {
		t.Fatalf("expected 23 on Mar 1, got %d", got)
	}
}

func TestNextNewYearAndDaysUntil(t *testing.T) {
	now := time.Date(2024, time.December, 30, 12, 0, 0, 0, time.UTC)

	ny := NextNewYear(now)
	if !ny.Equal(Date(2025, time.January, 1, time.UTC)) {
		t.Fatalf("unexpected next new year: %s", ny)
	}
	if got := DaysUntil(ny, now); got != 1 {
		t.Fatalf("expected 1 day, got %d", got)
	}
	if got := DaysUntil(Date(2024, time.January, 1, time.UTC), now); got != -365 {
		t.Fatalf("expected -365 for a past date, got %d", got)
	}
}

func TestRunClock_StopsOnCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	base := time.Date(2024, time.June, 14, 10, 0, 0, 0, time.UTC)
	calls := 0
	now := func() time.Time {
		calls++
		if calls == 3 {
			cancel()
		}
		return base.Add(time.Duration(calls-1) * time.Second)
	}

	var buf bytes.Buffer
	if err := RunClock(ctx, &buf, time.Millisecond, now); err != nil {
		t.Fatalf("RunClock: %v", err)
	}

	out := buf.String()
	if !strings.HasPrefix(out, "\rCurrent Time: 2024-06-14 10:00:00") {
		t.Fatalf("unexpected start of output: %q", out)
	}
	if !strings.Contains(out, "\rCurrent Time: 2024-06-14 10:00:02") {
		t.Fatalf("expected third tick in output: %q", out)
	}
	if !strings.HasSuffix(out, "\nTime updating stopped. Goodbye!\n") {
		t.Fatalf("expected goodbye line, got %q", out)
	}
	if n := strings.Count(out, "Current Time:"); n < 3 {
		t.Fatalf("expected at least 3 ticks, got %d", n)
	}
}

func TestRunClock_InvalidInterval(t *testing.T) {
	if err := RunClock(context.Background(), &bytes.Buffer{}, 0, nil); err == nil {
		t.Fatal("expected error for zero interval")
	}
}
