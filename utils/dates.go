// utils/dates.go
package utils

import "time"

const (
	DateLayout  = "2006-01-02"
	ClockLayout = "15:04:05"
)

func DateString(t time.Time) string {
	return t.Format(DateLayout)
}

func ClockString(t time.Time) string {
	return t.Format(ClockLayout)
}
