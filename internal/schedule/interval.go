// Package schedule holds the court availability and conflict arithmetic.
// Times are wall-clock "HH:MM" strings within a single day, converted to
// minutes since midnight. Intervals are half-open: [start, end).
package schedule

import (
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"
)

var (
	ErrBadClock     = errors.New("invalid clock time, expected HH:MM")
	ErrInvalidRange = errors.New("end time must be after start time")
)

const minutesPerDay = 24 * 60

// ParseClock converts "HH:MM" to minutes since midnight.
func ParseClock(s string) (int, error) {
	parts := strings.Split(s, ":")
	if len(parts) != 2 {
		return 0, fmt.Errorf("%w: %q", ErrBadClock, s)
	}
	h, err := strconv.Atoi(parts[0])
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrBadClock, s)
	}
	m, err := strconv.Atoi(parts[1])
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrBadClock, s)
	}
	if h < 0 || m < 0 || m > 59 {
		return 0, fmt.Errorf("%w: %q", ErrBadClock, s)
	}
	total := h*60 + m
	if total > minutesPerDay {
		return 0, fmt.Errorf("%w: %q", ErrBadClock, s)
	}
	return total, nil
}

// FormatClock is the inverse of ParseClock.
func FormatClock(minutes int) string {
	return fmt.Sprintf("%02d:%02d", minutes/60, minutes%60)
}

// Interval is a half-open [Start, End) window in minutes since midnight.
type Interval struct {
	Start int
	End   int
}

// NewInterval parses the two clock strings and rejects empty or inverted
// ranges. Cross-midnight windows are not supported.
func NewInterval(start, end string) (Interval, error) {
	s, err := ParseClock(start)
	if err != nil {
		return Interval{}, err
	}
	e, err := ParseClock(end)
	if err != nil {
		return Interval{}, err
	}
	if e <= s {
		return Interval{}, fmt.Errorf("%w: %s-%s", ErrInvalidRange, start, end)
	}
	return Interval{Start: s, End: e}, nil
}

// Overlaps reports whether the two half-open intervals share any instant.
// A booking ending at 10:00 does not conflict with one starting at 10:00.
func (i Interval) Overlaps(o Interval) bool {
	return i.Start < o.End && o.Start < i.End
}

// Hours returns the interval length in fractional hours (90 min -> 1.5).
func (i Interval) Hours() float64 {
	return float64(i.End-i.Start) / 60
}

func (i Interval) String() string {
	return FormatClock(i.Start) + "-" + FormatClock(i.End)
}

// Free returns the slots that overlap none of the booked intervals, ordered
// by start time ascending. A slot partially covered by a booking is excluded
// entirely. No configured slots yields an empty result, not an error.
func Free(slots, booked []Interval) []Interval {
	free := make([]Interval, 0, len(slots))
	for _, slot := range slots {
		taken := false
		for _, b := range booked {
			if slot.Overlaps(b) {
				taken = true
				break
			}
		}
		if !taken {
			free = append(free, slot)
		}
	}
	sort.Slice(free, func(a, b int) bool { return free[a].Start < free[b].Start })
	return free
}
