package availability

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BruksfildServices01/barbershop-scheduling/internal/domain/appointment"
	"github.com/BruksfildServices01/barbershop-scheduling/internal/domain/block"
	"github.com/BruksfildServices01/barbershop-scheduling/internal/httperr"
)

func candidate(start string, duration int) Candidate {
	return Candidate{Input: input(tuesday, duration), Start: hm(start)}
}

func TestCheckCandidateFree(t *testing.T) {
	calc := calculatorAt(tuesday.Add(8 * time.Hour))

	chk, err := calc.CheckCandidate(candidate("10:00", 30), Snapshot{Calendar: weekCalendar(t)})
	require.NoError(t, err)
	assert.True(t, chk.OK())
	assert.False(t, chk.HasOverlap())
}

func TestCheckCandidateOverlapIsWarning(t *testing.T) {
	calc := calculatorAt(tuesday.Add(8 * time.Hour))
	snap := Snapshot{
		Calendar:     weekCalendar(t),
		Appointments: []appointment.Appointment{booking(4, "10:15", 30, appointment.StatusConfirmed)},
	}

	chk, err := calc.CheckCandidate(candidate("10:00", 30), snap)
	require.NoError(t, err)
	assert.True(t, chk.OK())
	require.Len(t, chk.Conflicts, 1)
	assert.Equal(t, uint(4), chk.Conflicts[0].ID)

	// Encostado no fim não conta.
	chk, err = calc.CheckCandidate(candidate("09:45", 30), snap)
	require.NoError(t, err)
	assert.False(t, chk.HasOverlap())
}

func TestCheckCandidateSelfExclusion(t *testing.T) {
	calc := calculatorAt(tuesday.Add(8 * time.Hour))
	snap := Snapshot{
		Calendar:     weekCalendar(t),
		Appointments: []appointment.Appointment{booking(4, "10:00", 30, appointment.StatusConfirmed)},
	}

	cand := candidate("10:15", 30)
	cand.ExcludeID = 4

	chk, err := calc.CheckCandidate(cand, snap)
	require.NoError(t, err)
	assert.False(t, chk.HasOverlap())
}

func TestCheckCandidateHardRejections(t *testing.T) {
	calc := calculatorAt(tuesday.Add(8 * time.Hour))
	blocks := block.NewRegistry([]block.Block{
		{ID: 1, StaffID: staffID, Kind: block.KindHourRange, Date: tuesday, Start: ptr(hm("15:00")), End: ptr(hm("16:00"))},
		{ID: 2, StaffID: staffID, Kind: block.KindFullDay, Date: wednesday},
	})
	snap := Snapshot{Calendar: weekCalendar(t), Blocks: blocks}

	tests := []struct {
		name string
		cand Candidate
		code string
	}{
		{"lunch", candidate("11:45", 30), "outside_working_hours"},
		{"after close", candidate("20:15", 30), "outside_working_hours"},
		{"hour block", candidate("14:45", 30), "staff_time_blocked"},
		{"full day", Candidate{Input: input(wednesday, 30), Start: hm("10:00")}, "staff_day_blocked"},
		{"closed", Candidate{Input: input(sunday, 30), Start: hm("10:00")}, "closed_day"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			chk, err := calc.CheckCandidate(tt.cand, snap)
			require.NoError(t, err)
			assert.False(t, chk.OK())
			assert.True(t, httperr.IsBusiness(chk.Err, tt.code), "got %v", chk.Err)
		})
	}
}

func TestCheckCandidateLeadTime(t *testing.T) {
	calc := calculatorAt(tuesday.Add(10 * time.Hour))

	cand := candidate("10:15", 30)
	chk, err := calc.CheckCandidate(cand, Snapshot{Calendar: weekCalendar(t)})
	require.NoError(t, err)
	assert.True(t, chk.OK(), "manual entry may be registered late")

	cand.EnforceLeadTime = true
	chk, err = calc.CheckCandidate(cand, Snapshot{Calendar: weekCalendar(t)})
	require.NoError(t, err)
	assert.True(t, httperr.IsBusiness(chk.Err, "appointment_in_past"))

	cand.Start = hm("10:30")
	chk, err = calc.CheckCandidate(cand, Snapshot{Calendar: weekCalendar(t)})
	require.NoError(t, err)
	assert.True(t, chk.OK())
}
