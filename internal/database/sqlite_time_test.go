package database

import (
	"sort"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSQLiteTime(t *testing.T) {
	t.Run("round trip keeps nanoseconds", func(t *testing.T) {
		now := time.Date(2024, 3, 1, 10, 20, 30, 123456789, time.UTC)
		parsed, err := ParseSQLiteTime(FormatSQLiteTime(now))
		require.NoError(t, err)
		assert.True(t, now.Equal(parsed))
	})

	t.Run("non UTC input is stored as UTC", func(t *testing.T) {
		local := time.Date(2024, 3, 1, 10, 0, 0, 0, time.FixedZone("BRT", -3*3600))
		assert.Equal(t, "2024-03-01T13:00:00.000000000Z", FormatSQLiteTime(local))
	})

	t.Run("text order matches time order", func(t *testing.T) {
		base := time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)
		times := []time.Time{
			base.Add(120 * time.Millisecond),
			base.Add(100 * time.Millisecond),
			base.Add(time.Second),
			base,
		}
		texts := make([]string, len(times))
		for i, tm := range times {
			texts[i] = FormatSQLiteTime(tm)
		}
		sort.Strings(texts)

		assert.Equal(t, FormatSQLiteTime(base), texts[0])
		assert.Equal(t, FormatSQLiteTime(base.Add(100*time.Millisecond)), texts[1])
		assert.Equal(t, FormatSQLiteTime(base.Add(120*time.Millisecond)), texts[2])
		assert.Equal(t, FormatSQLiteTime(base.Add(time.Second)), texts[3])
	})

	t.Run("invalid", func(t *testing.T) {
		_, err := ParseSQLiteTime("yesterday")
		assert.ErrorContains(t, err, "invalid timestamp")
	})
}
