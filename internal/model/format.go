package model

import (
	"fmt"
	"time"

	"github.com/dustin/go-humanize"
)

// InputDateLayout is the layout of date inputs on the forms
const InputDateLayout = "2006-01-02"

// FormatDate renders a date as "January 2nd, 2006", or "unknown" when absent
func FormatDate(t *time.Time) string {
	if t == nil || t.IsZero() {
		return "unknown"
	}
	return fmt.Sprintf("%s %s, %d", t.Month(), humanize.Ordinal(t.Day()), t.Year())
}

// FormatInputDate renders a date as YYYY-MM-DD, or "" when absent
func FormatInputDate(t *time.Time) string {
	if t == nil || t.IsZero() {
		return ""
	}
	return t.Format(InputDateLayout)
}
