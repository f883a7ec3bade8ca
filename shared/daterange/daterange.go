// Package daterange models a half-open stay [CheckIn, CheckOut) measured in whole nights.
package daterange

import (
	"errors"
	"fmt"
	"time"

	"homestay/shared/constant"
	"homestay/shared/timezone"
)

var ErrEmptyRange = errors.New("check-out must be after check-in")

const day = 24 * time.Hour

type DateRange struct {
	CheckIn  time.Time
	CheckOut time.Time
}

// New truncates both ends to their calendar date.
func New(checkIn, checkOut time.Time) DateRange {
	return DateRange{
		CheckIn:  timezone.CalendarDate(checkIn),
		CheckOut: timezone.CalendarDate(checkOut),
	}
}

// Parse reads two YYYY-MM-DD strings.
func Parse(checkIn, checkOut string) (DateRange, error) {
	in, err := time.Parse(constant.CalendarFormat, checkIn)
	if err != nil {
		return DateRange{}, fmt.Errorf("parse check-in: %w", err)
	}

	out, err := time.Parse(constant.CalendarFormat, checkOut)
	if err != nil {
		return DateRange{}, fmt.Errorf("parse check-out: %w", err)
	}

	return New(in, out), nil
}

// Nights may be zero or negative for a malformed range.
func (r DateRange) Nights() int {
	return int(r.CheckOut.Sub(r.CheckIn) / day)
}

func (r DateRange) Validate() error {
	if r.Nights() <= 0 {
		return ErrEmptyRange
	}

	return nil
}

// Overlaps treats both ranges as half-open, so a check-out and a check-in on the same
// day do not collide.
func (r DateRange) Overlaps(other DateRange) bool {
	return r.CheckIn.Before(other.CheckOut) && r.CheckOut.After(other.CheckIn)
}

// Contains reports whether the night starting on d belongs to the stay.
func (r DateRange) Contains(d time.Time) bool {
	d = timezone.CalendarDate(d)

	return !d.Before(r.CheckIn) && d.Before(r.CheckOut)
}

func (r DateRange) String() string {
	return r.CheckIn.Format(constant.CalendarFormat) + "/" + r.CheckOut.Format(constant.CalendarFormat)
}
