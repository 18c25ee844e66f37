package utils

import (
	"fmt"
	"time"
)

const (
	dateLayout     = "02/01/2006"
	dateTimeLayout = "02/01/2006 15:04"
)

// FormatDateTime renders a timestamp in the dd/mm/yyyy HH:MM display format
func FormatDateTime(t time.Time) string {
	return t.Format(dateTimeLayout)
}

// RelativeTime renders the time elapsed since createdAt as a short label
// ("agora", "há 5 minutos", ...). Timestamps older than a week render as
// the absolute date.
func RelativeTime(createdAt, now time.Time) string {
	diff := now.Sub(createdAt)

	switch {
	case diff < time.Minute:
		return "agora"
	case diff < time.Hour:
		return elapsed(int(diff.Minutes()), "minuto")
	case diff < 24*time.Hour:
		return elapsed(int(diff.Hours()), "hora")
	case diff < 7*24*time.Hour:
		return elapsed(int(diff.Hours()/24), "dia")
	default:
		return createdAt.Format(dateLayout)
	}
}

// elapsed pluralizes the unit for any count other than exactly one.
func elapsed(n int, unit string) string {
	if n == 1 {
		return fmt.Sprintf("há 1 %s", unit)
	}
	return fmt.Sprintf("há %d %ss", n, unit)
}
