package filter_test

import (
	"testing"
	"time"

	"schedly/cmd/internal/domain/entity"
	"schedly/cmd/internal/domain/filter"

	"github.com/stretchr/testify/assert"
)

// 2023-01-01 was a Sunday.
var (
	sunday    = time.Date(2023, time.January, 1, 15, 30, 0, 0, time.UTC)
	wednesday = time.Date(2023, time.January, 4, 9, 0, 0, 0, time.UTC)
)

func TestResolveToday(t *testing.T) {
	now := time.Date(2023, time.June, 15, 10, 0, 0, 0, time.UTC)
	f := filter.Resolve("today", now)

	assert.Equal(t, filter.KindWindow, f.Kind)
	assert.Equal(t, time.Date(2023, time.June, 15, 0, 0, 0, 0, time.UTC).UnixMilli(), f.From)
	assert.Equal(t, time.Date(2023, time.June, 16, 0, 0, 0, 0, time.UTC).UnixMilli(), f.Until)

	// 23:59:59 today is inside the window, midnight tomorrow is not.
	lastSecond := time.Date(2023, time.June, 15, 23, 59, 59, 0, time.UTC).UnixMilli()
	midnight := time.Date(2023, time.June, 16, 0, 0, 0, 0, time.UTC).UnixMilli()
	assert.True(t, lastSecond >= f.From && lastSecond < f.Until)
	assert.False(t, midnight < f.Until)
}

func TestResolveWeek(t *testing.T) {
	t.Run("midweek goes back to sunday", func(t *testing.T) {
		f := filter.Resolve("week", wednesday)
		assert.Equal(t, filter.KindWindow, f.Kind)
		assert.Equal(t, time.Date(2023, time.January, 1, 0, 0, 0, 0, time.UTC).UnixMilli(), f.From)
		assert.Zero(t, f.Until)
	})

	t.Run("on a sunday the week starts today", func(t *testing.T) {
		f := filter.Resolve("week", sunday)
		assert.Equal(t, time.Date(2023, time.January, 1, 0, 0, 0, 0, time.UTC).UnixMilli(), f.From)
	})
}

func TestResolveMonth(t *testing.T) {
	now := time.Date(2023, time.June, 15, 10, 0, 0, 0, time.UTC)
	f := filter.Resolve("month", now)

	assert.Equal(t, filter.KindWindow, f.Kind)
	assert.Equal(t, time.Date(2023, time.June, 1, 0, 0, 0, 0, time.UTC).UnixMilli(), f.From)
	assert.Zero(t, f.Until)
}

func TestResolveSessionTypeAndStatus(t *testing.T) {
	f := filter.Resolve("meeting", wednesday)
	assert.Equal(t, filter.KindSessionType, f.Kind)
	assert.Equal(t, entity.SessionMeeting, f.SessionType)

	f = filter.Resolve("confirmed", wednesday)
	assert.Equal(t, filter.KindStatus, f.Kind)
	assert.Equal(t, entity.StatusConfirmed, f.Status)

	// Tokens are trimmed and case-folded.
	f = filter.Resolve("  Canceled ", wednesday)
	assert.Equal(t, filter.KindStatus, f.Kind)
	assert.Equal(t, entity.StatusCanceled, f.Status)
}

func TestResolveUnknownToken(t *testing.T) {
	for _, token := range []string{"", "tomorrow", "banana", "123"} {
		f := filter.Resolve(token, wednesday)
		assert.Equal(t, filter.KindNone, f.Kind, "token %q", token)
	}
}
