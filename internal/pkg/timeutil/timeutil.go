// Package timeutil holds the date and time helpers of the datetime lesson.
package timeutil

import (
	"context"
	"fmt"
	"io"
	"math"
	"time"
)

const (
	// ClockLayout is the layout of the live clock and of log timestamps.
	ClockLayout = "2006-01-02 15:04:05"
	// DisplayLayout is the slash-separated layout shown by the datetime lesson.
	DisplayLayout = "2006/01/02 15:04:05"
)

// CalculateAge returns whole years between birth and today. A birthday that
// has not happened yet this year does not count.
func CalculateAge(birth, today time.Time) int {
	age := today.Year() - birth.Year()
	if today.Month() < birth.Month() ||
		(today.Month() == birth.Month() && today.Day() < birth.Day()) {
		age--
	}
	return age
}

// Date is a convenience for a midnight time in loc.
func Date(year int, month time.Month, day int, loc *time.Location) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, loc)
}

// NextNewYear returns midnight of the next January 1st after now.
func NextNewYear(now time.Time) time.Time {
	return time.Date(now.Year()+1, time.January, 1, 0, 0, 0, 0, now.Location())
}

// DaysUntil returns the whole days from now to target, floored, so a target
// in the past gives a negative number.
func DaysUntil(target, now time.Time) int {
	return int(math.Floor(target.Sub(now).Hours() / 24))
}

// RunClock prints the current time, rewriting the same line, once per
// interval until ctx is cancelled.
func RunClock(ctx context.Context, w io.Writer, interval time.Duration, now func() time.Time) error {
	if interval <= 0 {
		return fmt.Errorf("clock interval must be positive, got %s", interval)
	}
	if now == nil {
		now = time.Now
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		if _, err := fmt.Fprintf(w, "\rCurrent Time: %s", now().Format(ClockLayout)); err != nil {
			return err
		}

		select {
		case <-ctx.Done():
			_, err := fmt.Fprint(w, "\nTime updating stopped. Goodbye!\n")
			return err
		case <-ticker.C:
		}
	}
}
