package appointment

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BruksfildServices01/barbershop-scheduling/internal/domain/schedule"
	"github.com/BruksfildServices01/barbershop-scheduling/internal/httperr"
)

var now = time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)

func TestCanTransition(t *testing.T) {
	tests := []struct {
		from, to Status
		allowed  bool
	}{
		{StatusPending, StatusConfirmed, true},
		{StatusPending, StatusCompleted, true},
		{StatusPending, StatusCancelled, true},
		{StatusConfirmed, StatusCompleted, true},
		{StatusConfirmed, StatusCancelled, true},
		{StatusConfirmed, StatusPending, false},
		{StatusModified, StatusConfirmed, true},
		{StatusCompleted, StatusCancelled, false},
		{StatusCancelled, StatusPending, false},
	}

	for _, tt := range tests {
		t.Run(string(tt.from)+"->"+string(tt.to), func(t *testing.T) {
			err := CanTransition(tt.from, tt.to)
			if tt.allowed {
				assert.NoError(t, err)
			} else {
				assert.True(t, httperr.IsBusiness(err, "invalid_state"))
			}
		})
	}

	assert.True(t, httperr.IsKind(CanTransition(StatusPending, "archived"), httperr.KindValidation))
}

func TestStatusOccupies(t *testing.T) {
	assert.True(t, StatusPending.Occupies())
	assert.True(t, StatusConfirmed.Occupies())
	assert.True(t, StatusModified.Occupies())
	assert.False(t, StatusCompleted.Occupies())
	assert.False(t, StatusCancelled.Occupies())
	assert.Equal(t, StatusPending, InitialStatus())
}

func TestCancelAndCompleteStamp(t *testing.T) {
	ap := &Appointment{Status: StatusPending}
	require.NoError(t, Cancel(ap, now))
	assert.Equal(t, StatusCancelled, ap.Status)
	require.NotNil(t, ap.CancelledAt)

	assert.Error(t, Complete(ap, now), "terminal")

	done := &Appointment{Status: StatusConfirmed}
	require.NoError(t, Complete(done, now))
	require.NotNil(t, done.CompletedAt)
}

func TestApplyEditMarksModified(t *testing.T) {
	ap := &Appointment{ID: 1, StaffID: 7, Start: 600, DurationMin: 30, Status: StatusConfirmed}
	start := schedule.TimeOfDay(660)

	core, err := ApplyEdit(ap, Changes{Start: &start}, now)
	require.NoError(t, err)
	assert.True(t, core)
	assert.Equal(t, StatusModified, ap.Status)
	assert.Equal(t, start, ap.Start)
}

func TestApplyEditNotesOnlyKeepsStatus(t *testing.T) {
	ap := &Appointment{ID: 1, Status: StatusPending}
	notes := "cliente pediu máquina 2"

	core, err := ApplyEdit(ap, Changes{Notes: &notes}, now)
	require.NoError(t, err)
	assert.False(t, core)
	assert.Equal(t, StatusPending, ap.Status)
}

func TestApplyEditExplicitCancelSkipsMarker(t *testing.T) {
	ap := &Appointment{ID: 1, StaffID: 7, Start: 600, Status: StatusConfirmed}
	start := schedule.TimeOfDay(700)
	cancelled := StatusCancelled

	_, err := ApplyEdit(ap, Changes{Start: &start, Status: &cancelled}, now)
	require.NoError(t, err)
	assert.Equal(t, StatusCancelled, ap.Status)
	assert.NotNil(t, ap.CancelledAt)
}

func TestApplyEditRejectsTerminal(t *testing.T) {
	ap := &Appointment{ID: 1, Status: StatusCompleted}
	notes := "x"

	_, err := ApplyEdit(ap, Changes{Notes: &notes}, now)
	assert.True(t, httperr.IsBusiness(err, "invalid_state"))
}

func TestOccupantsSkipReleasedStatuses(t *testing.T) {
	day := schedule.DateOf(now)
	apps := []Appointment{
		{ID: 1, StaffID: 7, Date: day, Start: 600, DurationMin: 30, Status: StatusConfirmed},
		{ID: 2, StaffID: 7, Date: day, Start: 630, DurationMin: 30, Status: StatusCancelled},
		{ID: 3, StaffID: 7, Date: day, Start: 660, DurationMin: 30, Status: StatusCompleted},
	}

	occ := Occupants(apps)
	require.Len(t, occ, 1)
	assert.Equal(t, uint(1), occ[0].ID)
}
