package services

import "errors"

var (
	ErrProfileNotFound  = errors.New("cycle profile not found")
	ErrNoCycleAnchor    = errors.New("no period records or last period start found")
	ErrNoPeriodRecords  = errors.New("no period records found")
	ErrModelNotFound    = errors.New("no trained model found")
	ErrInsufficientData = errors.New("not enough observations")
)

// IsDataGap reports whether err is an expected data-availability condition
// (missing profile, anchor, model, or too little history) rather than a
// real failure. Predictions degrade on these instead of aborting.
func IsDataGap(err error) bool {
	return errors.Is(err, ErrProfileNotFound) ||
		errors.Is(err, ErrNoCycleAnchor) ||
		errors.Is(err, ErrNoPeriodRecords) ||
		errors.Is(err, ErrModelNotFound) ||
		errors.Is(err, ErrInsufficientData)
}
