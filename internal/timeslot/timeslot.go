package timeslot

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// MinutesPerDay is the roll applied to overnight intervals.
const MinutesPerDay = 1440

var (
	ErrBadFormat = errors.New("bad time format")

	timeRe  = regexp.MustCompile(`^\d{2}:\d{2}$`)
	rangeRe = regexp.MustCompile(`^\d{2}:\d{2}-\d{2}:\d{2}$`)
)

// ToMinutes parses a strict HH:MM string into minutes since midnight.
func ToMinutes(text string) (int, error) {
	if !timeRe.MatchString(text) {
		return 0, fmt.Errorf("%w: %q", ErrBadFormat, text)
	}
	parts := strings.SplitN(text, ":", 2)
	h, _ := strconv.Atoi(parts[0])
	m, _ := strconv.Atoi(parts[1])
	return h*60 + m, nil
}

// ToText formats minutes since midnight as HH:MM, reducing modulo one day
// so rolled overnight end values render as wall-clock times.
func ToText(minutes int) string {
	minutes %= MinutesPerDay
	return fmt.Sprintf("%02d:%02d", minutes/60, minutes%60)
}

// Overlaps reports whether two half-open intervals [a1,a2) and [b1,b2)
// share any minute. Touching endpoints do not overlap.
func Overlaps(a1, a2, b1, b2 int) bool {
	return !(a2 <= b1 || b2 <= a1)
}

// OverlapsWrapped reports whether two stored intervals share any minute of
// the day, accounting for ends rolled past midnight: the tail of an
// overnight interval lands in the morning of the next day, so each interval
// is also compared against the other shifted by a full day.
func OverlapsWrapped(a1, a2, b1, b2 int) bool {
	return Overlaps(a1, a2, b1, b2) ||
		Overlaps(a1, a2, b1+MinutesPerDay, b2+MinutesPerDay) ||
		Overlaps(a1+MinutesPerDay, a2+MinutesPerDay, b1, b2)
}

// ParseRange parses "HH:MM-HH:MM" into start and end minutes. An end at or
// before the start denotes an overnight interval and is rolled forward by a
// full day, so end > start always holds for the returned pair.
func ParseRange(text string) (int, int, error) {
	if !rangeRe.MatchString(text) {
		return 0, 0, fmt.Errorf("%w: %q", ErrBadFormat, text)
	}
	parts := strings.SplitN(text, "-", 2)
	start, err := ToMinutes(parts[0])
	if err != nil {
		return 0, 0, err
	}
	end, err := ToMinutes(parts[1])
	if err != nil {
		return 0, 0, err
	}
	if end <= start {
		end += MinutesPerDay
	}
	return start, end, nil
}
