package calendar

import (
	"testing"
	"time"
	_ "time/tzdata"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/teemow/google-workspace-mcp/internal/workspace"
)

func TestTimeRange(t *testing.T) {
	berlin, err := time.LoadLocation("Europe/Berlin")
	require.NoError(t, err)
	now := time.Date(2025, 3, 10, 15, 30, 0, 0, berlin)

	tests := []struct {
		name    string
		date    string
		days    int
		loc     *time.Location
		wantMin string
		wantMax string
	}{
		{"explicit date utc", "2025-01-01", 3, time.UTC, "2025-01-01T00:00:00Z", "2025-01-04T00:00:00Z"},
		{"explicit date local midnight", "2025-01-01", 1, berlin, "2024-12-31T23:00:00Z", "2025-01-01T23:00:00Z"},
		{"today", "", 1, berlin, "2025-03-09T23:00:00Z", "2025-03-10T23:00:00Z"},
		{"dst change keeps calendar days", "2025-03-29", 2, berlin, "2025-03-28T23:00:00Z", "2025-03-30T22:00:00Z"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			from, to, err := TimeRange(tt.date, tt.days, now, tt.loc)
			require.NoError(t, err)
			assert.Equal(t, tt.wantMin, FormatTime(from))
			assert.Equal(t, tt.wantMax, FormatTime(to))
		})
	}
}

func TestTimeRange_ThreeDaysWide(t *testing.T) {
	from, to, err := TimeRange("2025-01-01", 3, time.Now(), time.Local)
	require.NoError(t, err)

	assert.Equal(t, 0, from.Hour())
	assert.Equal(t, 0, from.Minute())
	assert.Equal(t, from.AddDate(0, 0, 3), to)
}

func TestTimeRange_Invalid(t *testing.T) {
	tests := []struct {
		name string
		date string
		days int
	}{
		{"zero days", "2025-01-01", 0},
		{"negative days", "2025-01-01", -2},
		{"wrong layout", "01/02/2025", 1},
		{"datetime instead of date", "2025-01-01T10:00:00Z", 1},
		{"impossible date", "2025-02-30", 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := TimeRange(tt.date, tt.days, time.Now(), time.UTC)
			require.Error(t, err)
			assert.True(t, workspace.IsKind(err, workspace.KindValidation))
		})
	}
}
