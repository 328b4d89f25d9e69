package dto

import (
	"backoffice/internal/domain/reports"
	"backoffice/pkg/aggregate"
)

// ReportQuery holds the common report parameters. Empty dates default to
// the last 30 days.
type ReportQuery struct {
	From   string `form:"from" binding:"omitempty,isodate"`
	To     string `form:"to" binding:"omitempty,isodate"`
	Branch string `form:"branch"`
	Limit  int    `form:"limit" binding:"omitempty,min=0"`
}

func (q ReportQuery) ToFilter(defaultRange aggregate.DateRange) reports.Filter {
	r := aggregate.DateRange{From: q.From, To: q.To}
	if r.IsOpen() {
		r = defaultRange
	}
	return reports.Filter{Range: r, Branch: q.Branch, Limit: q.Limit}
}
