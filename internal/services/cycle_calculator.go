package services

import (
	"fmt"
	"math"
	"sort"
	"time"
)

const (
	PhaseMenses     = "Menses"
	PhaseFollicular = "Follicular"
	PhaseLuteal     = "Luteal"
	PhaseNextCycle  = "Next Cycle"
)

// CycleCalculator turns the raw period log and profile parameters into
// day-of-cycle, phase and next-period estimates.
type CycleCalculator struct {
	profiles ProfileReader
	periods  PeriodReader
	now      func() time.Time
}

func NewCycleCalculator(profiles ProfileReader, periods PeriodReader) *CycleCalculator {
	return &CycleCalculator{profiles: profiles, periods: periods, now: time.Now}
}

// WithNow overrides the clock, for tests.
func (calc *CycleCalculator) WithNow(now func() time.Time) *CycleCalculator {
	calc.now = now
	return calc
}

// DayOfCycle is 1-indexed: a period's own start date is cycle day 1. The
// anchor is the most recent period start on or before the target date,
// selected explicitly by max start date so the result does not depend on
// the collaborator's ordering. With no usable record the profile's last
// period start anchors the cycle.
func (calc *CycleCalculator) DayOfCycle(userID uint, targetDate time.Time) (int, error) {
	profile, found, err := calc.profiles.FindByUserID(userID)
	if err != nil {
		return 0, fmt.Errorf("load profile: %w", err)
	}
	if !found {
		return 0, ErrProfileNotFound
	}

	records, err := calc.periods.ListByUser(userID)
	if err != nil {
		return 0, fmt.Errorf("list periods: %w", err)
	}

	target := DateOnly(targetDate)
	var anchor time.Time
	for _, record := range records {
		start := DateOnly(record.StartDate)
		if start.After(target) {
			continue
		}
		if anchor.IsZero() || start.After(anchor) {
			anchor = start
		}
	}

	if anchor.IsZero() {
		if profile.LastPeriodStart == nil {
			return 0, ErrNoCycleAnchor
		}
		anchor = DateOnly(*profile.LastPeriodStart)
	}

	return DaysBetween(anchor, target) + 1, nil
}

// CyclePhase labels a cycle day. No upper bound is enforced on the day:
// anything past the cycle length is the next cycle. With a very early
// ovulation day the follicular branch can be unreachable; that matches the
// source behaviour and is deliberately not corrected.
func CyclePhase(dayOfCycle int, cycleLength int, lutealLength int) string {
	ovulationDay := cycleLength - lutealLength - 1

	switch {
	case dayOfCycle <= 5:
		return PhaseMenses
	case dayOfCycle <= ovulationDay:
		return PhaseFollicular
	case dayOfCycle <= cycleLength:
		return PhaseLuteal
	default:
		return PhaseNextCycle
	}
}

// NextPeriodDate predicts the next period start. With fewer than three
// logged periods it falls back to the profile cycle length; otherwise it
// uses the rounded mean of consecutive start-date deltas over the whole
// history. Whole-history averaging is a known simplification kept on
// purpose.
func (calc *CycleCalculator) NextPeriodDate(userID uint) (time.Time, error) {
	profile, found, err := calc.profiles.FindByUserID(userID)
	if err != nil {
		return time.Time{}, fmt.Errorf("load profile: %w", err)
	}
	if !found {
		return time.Time{}, ErrProfileNotFound
	}

	starts, err := calc.sortedPeriodStarts(userID)
	if err != nil {
		return time.Time{}, err
	}
	if len(starts) == 0 {
		return time.Time{}, ErrNoPeriodRecords
	}

	predictedLength := float64(profile.CycleLength)
	if len(starts) >= 3 {
		predictedLength = meanFloat(startDeltas(starts))
	}

	latest := starts[len(starts)-1]
	return latest.AddDate(0, 0, int(math.Round(predictedLength))), nil
}

// DaysUntilNextPeriod clamps at zero. The second return value is false
// when the estimate is unknown for lack of data; that is an explicit
// optional, not an error.
func (calc *CycleCalculator) DaysUntilNextPeriod(userID uint) (int, bool) {
	nextStart, err := calc.NextPeriodDate(userID)
	if err != nil {
		return 0, false
	}

	days := DaysBetween(calc.now(), nextStart)
	if days < 0 {
		days = 0
	}
	return days, true
}

type CycleStatistics struct {
	TotalPeriods       int     `json:"total_periods"`
	AverageCycleLength float64 `json:"average_cycle_length"`
	CurrentCycleLength *int    `json:"current_cycle_length"`
	MinCycleLength     *int    `json:"min_cycle_length,omitempty"`
	MaxCycleLength     *int    `json:"max_cycle_length,omitempty"`
}

// Statistics reports cycle aggregates over the whole period history. With
// fewer than two records only the profile's nominal cycle length is
// available.
func (calc *CycleCalculator) Statistics(userID uint) (CycleStatistics, error) {
	profile, found, err := calc.profiles.FindByUserID(userID)
	if err != nil {
		return CycleStatistics{}, fmt.Errorf("load profile: %w", err)
	}
	if !found {
		return CycleStatistics{}, ErrProfileNotFound
	}

	starts, err := calc.sortedPeriodStarts(userID)
	if err != nil {
		return CycleStatistics{}, err
	}

	if len(starts) < 2 {
		return CycleStatistics{
			TotalPeriods:       len(starts),
			AverageCycleLength: float64(profile.CycleLength),
		}, nil
	}

	deltas := startDeltas(starts)
	average := math.Round(meanFloat(deltas)*10) / 10
	minLength := deltas[0]
	maxLength := deltas[0]
	for _, delta := range deltas[1:] {
		if delta < minLength {
			minLength = delta
		}
		if delta > maxLength {
			maxLength = delta
		}
	}

	current := DaysBetween(starts[len(starts)-1], calc.now())
	return CycleStatistics{
		TotalPeriods:       len(starts),
		AverageCycleLength: average,
		CurrentCycleLength: &current,
		MinCycleLength:     &minLength,
		MaxCycleLength:     &maxLength,
	}, nil
}

func (calc *CycleCalculator) sortedPeriodStarts(userID uint) ([]time.Time, error) {
	records, err := calc.periods.ListByUser(userID)
	if err != nil {
		return nil, fmt.Errorf("list periods: %w", err)
	}

	starts := make([]time.Time, 0, len(records))
	for _, record := range records {
		starts = append(starts, DateOnly(record.StartDate))
	}
	sort.Slice(starts, func(i, j int) bool { return starts[i].Before(starts[j]) })
	return starts, nil
}

func startDeltas(starts []time.Time) []int {
	deltas := make([]int, 0, len(starts)-1)
	for i := 1; i < len(starts); i++ {
		deltas = append(deltas, DaysBetween(starts[i-1], starts[i]))
	}
	return deltas
}

func meanFloat(values []int) float64 {
	if len(values) == 0 {
		return 0
	}
	var total int
	for _, value := range values {
		total += value
	}
	return float64(total) / float64(len(values))
}
