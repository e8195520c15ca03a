package schedule

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func hm(t *testing.T, s string) TimeOfDay {
	t.Helper()
	v, err := ParseTimeOfDay(s)
	require.NoError(t, err)
	return v
}

func ptr(v TimeOfDay) *TimeOfDay { return &v }

func TestParseTimeOfDay(t *testing.T) {
	tests := []struct {
		in      string
		want    TimeOfDay
		wantErr bool
	}{
		{"09:00", 540, false},
		{"20:30", 1230, false},
		{"00:00", 0, false},
		{"23:59", 1439, false},
		{"24:00", 0, true},
		{"9:5", 0, true},
		{"12", 0, true},
		{"ab:cd", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseTimeOfDay(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.in, got.String())
		})
	}
}

func TestTimeOfDayOfRoundsUp(t *testing.T) {
	assert.Equal(t, TimeOfDay(8*60), TimeOfDayOf(time.Date(2026, 1, 1, 8, 0, 0, 0, time.UTC)))
	assert.Equal(t, TimeOfDay(8*60+1), TimeOfDayOf(time.Date(2026, 1, 1, 8, 0, 1, 0, time.UTC)))
}

func TestDayScheduleValidate(t *testing.T) {
	base := DaySchedule{Weekday: time.Monday, Active: true, Open: 540, Close: 1230}
	require.NoError(t, base.Validate())

	inverted := base
	inverted.Open, inverted.Close = 1230, 540
	assert.Error(t, inverted.Validate())

	halfLunch := base
	halfLunch.LunchStart = ptr(720)
	assert.Error(t, halfLunch.Validate())

	outside := base
	outside.LunchStart, outside.LunchEnd = ptr(480), ptr(560)
	assert.Error(t, outside.Validate())

	untilClose := base
	untilClose.LunchStart, untilClose.LunchEnd = ptr(720), ptr(1230)
	assert.Error(t, untilClose.Validate())

	ok := base
	ok.LunchStart, ok.LunchEnd = ptr(720), ptr(780)
	assert.NoError(t, ok.Validate())
}

func TestWindowsSplitByLunch(t *testing.T) {
	ds := DaySchedule{
		Weekday:    time.Tuesday,
		Active:     true,
		Open:       hm(t, "09:00"),
		Close:      hm(t, "20:30"),
		LunchStart: ptr(hm(t, "12:00")),
		LunchEnd:   ptr(hm(t, "13:00")),
	}

	assert.Equal(t, []Window{
		{Start: hm(t, "09:00"), End: hm(t, "12:00")},
		{Start: hm(t, "13:00"), End: hm(t, "20:30")},
	}, ds.Windows())

	assert.True(t, ds.Contains(hm(t, "11:30"), 30))
	assert.False(t, ds.Contains(hm(t, "11:45"), 30))
	assert.False(t, ds.Contains(hm(t, "20:15"), 30))
}

func TestWindowsNeverEmitsEmptyWindow(t *testing.T) {
	ds := DaySchedule{
		Weekday:    time.Friday,
		Active:     true,
		Open:       hm(t, "09:00"),
		Close:      hm(t, "18:00"),
		LunchStart: ptr(hm(t, "17:00")),
		LunchEnd:   ptr(hm(t, "18:00")),
	}

	assert.Equal(t, []Window{{Start: hm(t, "09:00"), End: hm(t, "17:00")}}, ds.Windows())
}

func TestCalendarScheduleFor(t *testing.T) {
	cal, err := NewCalendar([]DaySchedule{
		{Weekday: time.Monday, Active: true, Open: 540, Close: 1080},
		{Weekday: time.Sunday, Active: false, Open: 540, Close: 720},
		{Weekday: time.Sunday, Active: false, Open: 600, Close: 720},
	})
	require.NoError(t, err)

	monday, ok := cal.ScheduleForDate(time.Date(2026, 3, 9, 0, 0, 0, 0, time.UTC))
	require.True(t, ok)
	assert.Equal(t, time.Monday, monday.Weekday)

	_, ok = cal.ScheduleFor(time.Sunday)
	assert.False(t, ok, "inactive schedules close the day")

	_, ok = cal.ScheduleFor(time.Wednesday)
	assert.False(t, ok)

	assert.Len(t, cal.Days(), 1)
}

func TestCalendarRejectsDuplicateActiveWeekday(t *testing.T) {
	_, err := NewCalendar([]DaySchedule{
		{Weekday: time.Monday, Active: true, Open: 540, Close: 1080},
		{Weekday: time.Monday, Active: true, Open: 600, Close: 1000},
	})
	assert.Error(t, err)
}

func TestParseDateIsCivil(t *testing.T) {
	d, err := ParseDate("2026-03-10")
	require.NoError(t, err)

	assert.Equal(t, time.Tuesday, d.Weekday())
	assert.True(t, SameDay(d, time.Date(2026, 3, 10, 23, 0, 0, 0, time.FixedZone("BRT", -3*3600))))
	assert.Equal(t, "2026-03-10", FormatDate(d))
}
