package services

import "time"

// DateOnly truncates a timestamp to its calendar date at UTC midnight. All
// cycle arithmetic runs on normalized dates so hour offsets never skew
// day-difference math.
func DateOnly(value time.Time) time.Time {
	year, month, day := value.Date()
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

// ParseDay parses a YYYY-MM-DD date string.
func ParseDay(value string) (time.Time, error) {
	parsed, err := time.Parse(time.DateOnly, value)
	if err != nil {
		return time.Time{}, err
	}
	return DateOnly(parsed), nil
}

// DaysBetween returns the whole-day difference (to minus from) on
// normalized dates.
func DaysBetween(from time.Time, to time.Time) int {
	return int(DateOnly(to).Sub(DateOnly(from)).Hours() / 24)
}
