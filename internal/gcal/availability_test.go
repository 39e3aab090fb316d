//nolint:testpackage // Tests require internal access for thorough testing
package gcal

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/api/calendar/v3"

	daycal "github.com/avelis/dayplan/internal/calendar"
)

func at(t *testing.T, clock string) time.Time {
	t.Helper()
	parsed, err := time.Parse("2006-01-02 15:04", "2026-03-09 "+clock)
	require.NoError(t, err)
	return parsed
}

func TestInvertBusy(t *testing.T) {
	dayStart := at(t, "09:00")
	dayEnd := at(t, "18:00")

	tests := []struct {
		name string
		busy []daycal.Window
		want []daycal.Window
	}{
		{
			name: "no busy periods yields the whole day",
			busy: nil,
			want: []daycal.Window{{Start: dayStart, End: dayEnd}},
		},
		{
			name: "single meeting splits the day",
			busy: []daycal.Window{{Start: at(t, "11:00"), End: at(t, "12:00")}},
			want: []daycal.Window{
				{Start: dayStart, End: at(t, "11:00")},
				{Start: at(t, "12:00"), End: dayEnd},
			},
		},
		{
			name: "meeting at day start trims the first window",
			busy: []daycal.Window{{Start: at(t, "09:00"), End: at(t, "09:30")}},
			want: []daycal.Window{{Start: at(t, "09:30"), End: dayEnd}},
		},
		{
			name: "overlapping meetings merge",
			busy: []daycal.Window{
				{Start: at(t, "10:00"), End: at(t, "11:30")},
				{Start: at(t, "11:00"), End: at(t, "12:00")},
			},
			want: []daycal.Window{
				{Start: dayStart, End: at(t, "10:00")},
				{Start: at(t, "12:00"), End: dayEnd},
			},
		},
		{
			name: "out of order input is sorted first",
			busy: []daycal.Window{
				{Start: at(t, "14:00"), End: at(t, "15:00")},
				{Start: at(t, "10:00"), End: at(t, "11:00")},
			},
			want: []daycal.Window{
				{Start: dayStart, End: at(t, "10:00")},
				{Start: at(t, "11:00"), End: at(t, "14:00")},
				{Start: at(t, "15:00"), End: dayEnd},
			},
		},
		{
			name: "busy spilling past day end is clamped",
			busy: []daycal.Window{{Start: at(t, "17:00"), End: at(t, "19:00")}},
			want: []daycal.Window{{Start: dayStart, End: at(t, "17:00")}},
		},
		{
			name: "busy before day start is ignored",
			busy: []daycal.Window{{Start: at(t, "07:00"), End: at(t, "08:00")}},
			want: []daycal.Window{{Start: dayStart, End: dayEnd}},
		},
		{
			name: "busy after day end is ignored",
			busy: []daycal.Window{{Start: at(t, "19:00"), End: at(t, "20:00")}},
			want: []daycal.Window{{Start: dayStart, End: dayEnd}},
		},
		{
			name: "fully booked day yields no windows",
			busy: []daycal.Window{{Start: at(t, "08:00"), End: at(t, "19:00")}},
			want: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := invertBusy(tt.busy, dayStart, dayEnd)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseBusy(t *testing.T) {
	periods := []*calendar.TimePeriod{
		{Start: "2026-03-09T11:00:00Z", End: "2026-03-09T12:00:00Z"},
	}

	busy, err := parseBusy(periods)
	require.NoError(t, err)
	require.Len(t, busy, 1)
	assert.Equal(t, time.Date(2026, 3, 9, 11, 0, 0, 0, time.UTC), busy[0].Start)
	assert.Equal(t, time.Date(2026, 3, 9, 12, 0, 0, 0, time.UTC), busy[0].End)
}

func TestParseBusyRejectsBadTimestamps(t *testing.T) {
	_, err := parseBusy([]*calendar.TimePeriod{{Start: "noon", End: "2026-03-09T12:00:00Z"}})
	require.Error(t, err)
	_, err = parseBusy([]*calendar.TimePeriod{{Start: "2026-03-09T11:00:00Z", End: "later"}})
	require.Error(t, err)
}
