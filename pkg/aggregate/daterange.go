// Package aggregate provides the filter / group-by / top-N helpers used by
// report screens. All functions are pure: they never modify their input.
package aggregate

import (
	"fmt"
	"time"
)

// DateLayout is the ISO-8601 calendar date format used for record dates.
const DateLayout = "2006-01-02"

// DateRange is an inclusive range of ISO-8601 dates. An empty bound is open.
// Comparison is lexicographic, which matches chronological order for this layout.
type DateRange struct {
	From string `json:"from,omitempty"`
	To   string `json:"to,omitempty"`
}

// NewDateRange validates both bounds and their order.
func NewDateRange(from, to string) (DateRange, error) {
	r := DateRange{From: from, To: to}
	return r, r.Validate()
}

// Validate checks the date format and that From is not after To.
func (r DateRange) Validate() error {
	if r.From != "" {
		if _, err := time.Parse(DateLayout, r.From); err != nil {
			return fmt.Errorf("invalid from date %q: expected YYYY-MM-DD", r.From)
		}
	}
	if r.To != "" {
		if _, err := time.Parse(DateLayout, r.To); err != nil {
			return fmt.Errorf("invalid to date %q: expected YYYY-MM-DD", r.To)
		}
	}
	if r.From != "" && r.To != "" && r.From > r.To {
		return fmt.Errorf("from date %s is after to date %s", r.From, r.To)
	}
	return nil
}

// Contains reports whether date lies within the range, bounds included.
func (r DateRange) Contains(date string) bool {
	if r.From != "" && date < r.From {
		return false
	}
	if r.To != "" && date > r.To {
		return false
	}
	return true
}

// IsOpen reports whether neither bound is set.
func (r DateRange) IsOpen() bool {
	return r.From == "" && r.To == ""
}

// Times converts the range to a half-open time interval [from, to+1day) in UTC.
// Open bounds are returned as nil.
func (r DateRange) Times() (from, to *time.Time) {
	if r.From != "" {
		if t, err := time.Parse(DateLayout, r.From); err == nil {
			from = &t
		}
	}
	if r.To != "" {
		if t, err := time.Parse(DateLayout, r.To); err == nil {
			end := t.AddDate(0, 0, 1)
			to = &end
		}
	}
	return from, to
}

// LastDays returns the inclusive range of n days ending on today.
func LastDays(today time.Time, n int) DateRange {
	if n < 1 {
		n = 1
	}
	return DateRange{
		From: today.AddDate(0, 0, -(n - 1)).Format(DateLayout),
		To:   today.Format(DateLayout),
	}
}
