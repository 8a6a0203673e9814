// Package filter resolves list-filter tokens into store predicates.
package filter

import (
	"strings"
	"time"

	"schedly/cmd/internal/domain/entity"
)

type Kind int

const (
	KindNone Kind = iota
	KindWindow
	KindSessionType
	KindStatus
)

// Filter is a resolved token. For KindWindow, From/Until are epoch millis and
// Until == 0 means the window is open-ended.
type Filter struct {
	Kind        Kind
	From        int64
	Until       int64
	SessionType entity.SessionType
	Status      entity.Status
}

// Resolve interprets a filter token against the given clock. Interpretations
// are tried in priority order: time window, session type, status. Unknown
// tokens resolve to no filter at all.
func Resolve(token string, now time.Time) Filter {
	token = strings.ToLower(strings.TrimSpace(token))

	switch token {
	case "today":
		from, until := DayWindow(now)
		return Filter{Kind: KindWindow, From: from, Until: until}
	case "week":
		return Filter{Kind: KindWindow, From: WeekStart(now)}
	case "month":
		return Filter{Kind: KindWindow, From: MonthStart(now)}
	}

	if t := entity.SessionType(token); t.Valid() {
		return Filter{Kind: KindSessionType, SessionType: t}
	}
	if s := entity.Status(token); s.Valid() {
		return Filter{Kind: KindStatus, Status: s}
	}
	return Filter{Kind: KindNone}
}

// DayWindow returns the half-open interval [start of now's day, start of the
// next day) in now's location.
func DayWindow(now time.Time) (from, until int64) {
	start := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	return start.UnixMilli(), start.AddDate(0, 0, 1).UnixMilli()
}

// WeekStart returns the most recent Sunday at 00:00 in now's location. When
// now is a Sunday the week starts that same day.
func WeekStart(now time.Time) int64 {
	start := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	start = start.AddDate(0, 0, -int(start.Weekday()))
	return start.UnixMilli()
}

// MonthStart returns the first day of now's month at 00:00 in now's location.
func MonthStart(now time.Time) int64 {
	return time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location()).UnixMilli()
}
