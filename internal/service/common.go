package service

import (
	"strings"
	"time"
)

const dateLayout = "2006-01-02"

func normalizeName(name string) string {
	return strings.TrimSpace(strings.ToLower(name))
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// ParseDate parses a YYYY-MM-DD calendar date in local time.
func ParseDate(v string) (time.Time, error) {
	return time.ParseInLocation(dateLayout, strings.TrimSpace(v), time.Local)
}

func FormatDate(t time.Time) string {
	return t.Format(dateLayout)
}
