package timeutil

import (
	"time"
)

// Bogota is the business timezone (UTC-5, no DST). Purchase dates and the
// daily follow-up email both run on Bogota local time.
var Bogota *time.Location

func init() {
	var err error
	Bogota, err = time.LoadLocation("America/Bogota")
	if err != nil {
		// Fallback: create fixed zone if America/Bogota not available
		Bogota = time.FixedZone("COT", -5*60*60)
	}
}

// Now returns the current time in Bogota local time.
func Now() time.Time {
	return time.Now().In(Bogota)
}

// Today returns the current date truncated to midnight Bogota time.
func Today() time.Time {
	now := Now()
	return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, Bogota)
}

// DaysUntil returns the whole days from today (Bogota) until t. Negative if
// t is in the past.
func DaysUntil(t time.Time) int {
	target := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, Bogota)
	return int(target.Sub(Today()).Hours() / 24)
}

// Common layouts for date formatting
const (
	DateLayout     = "2006-01-02"
	DateTimeLayout = "2006-01-02 15:04:05"
	DisplayLayout  = "02 Jan 2006"
)
