package utils_test

import (
	"testing"
	"time"

	"schedly/cmd/internal/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatDuration(t *testing.T) {
	tests := []struct {
		minutes int
		want    string
	}{
		{45, "45m"},
		{60, "1h"},
		{90, "1h 30m"},
		{120, "2h"},
		{1, "1m"},
		{1440, "24h"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, utils.FormatDuration(tt.minutes))
	}
}

func TestParseBirthDate(t *testing.T) {
	t.Run("both input formats normalize to the same date", func(t *testing.T) {
		legacy, err := utils.ParseBirthDate("15/08/1985")
		require.NoError(t, err)
		iso, err := utils.ParseBirthDate("1985-08-15")
		require.NoError(t, err)

		assert.Equal(t, "1985-08-15", legacy)
		assert.Equal(t, legacy, iso)
	})

	t.Run("surrounding whitespace is tolerated", func(t *testing.T) {
		got, err := utils.ParseBirthDate(" 01/02/2000 ")
		require.NoError(t, err)
		assert.Equal(t, "2000-02-01", got)
	})

	t.Run("garbage is rejected", func(t *testing.T) {
		for _, in := range []string{"", "15-08-1985", "1985/08/15", "yesterday"} {
			_, err := utils.ParseBirthDate(in)
			assert.Error(t, err, "input %q", in)
		}
	})
}

func TestCombineDateTime(t *testing.T) {
	millis, err := utils.CombineDateTime("2023-06-15", "14:30")
	require.NoError(t, err)

	got := time.UnixMilli(millis).In(time.Local)
	assert.Equal(t, 2023, got.Year())
	assert.Equal(t, time.June, got.Month())
	assert.Equal(t, 15, got.Day())
	assert.Equal(t, 14, got.Hour())
	assert.Equal(t, 30, got.Minute())

	_, err = utils.CombineDateTime("15/06/2023", "14:30")
	assert.Error(t, err)
	_, err = utils.CombineDateTime("2023-06-15", "2pm")
	assert.Error(t, err)
}

func TestNormalizeEmail(t *testing.T) {
	got, err := utils.NormalizeEmail("  Ana.Silva@Example.COM ")
	require.NoError(t, err)
	assert.Equal(t, "ana.silva@example.com", got)

	_, err = utils.NormalizeEmail("not-an-email")
	assert.Error(t, err)
}

func TestSanitize(t *testing.T) {
	req := struct {
		Name  string
		Tags  []string
		Count int
	}{Name: "  padded  ", Tags: []string{" a ", "b"}, Count: 3}

	utils.Sanitize(&req)
	assert.Equal(t, "padded", req.Name)
	assert.Equal(t, []string{"a", "b"}, req.Tags)
	assert.Equal(t, 3, req.Count)
}
