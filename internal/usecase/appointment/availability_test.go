package appointment

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BruksfildServices01/barbershop-scheduling/internal/domain/availability"
	"github.com/BruksfildServices01/barbershop-scheduling/internal/domain/block"
	"github.com/BruksfildServices01/barbershop-scheduling/internal/httperr"
)

func TestGetAvailabilityPublic(t *testing.T) {
	f := newFixture(t)
	f.book(t, f.joao.ID, "10:00")

	out, err := NewGetAvailability(f.deps).Execute(ctx, AvailabilityInput{
		BranchID:  f.branch.ID,
		StaffID:   f.joao.ID,
		ServiceID: f.cut.ID,
		Date:      tuesday,
	})
	require.NoError(t, err)

	assert.Equal(t, 30, out.DurationMin)
	assert.Len(t, out.Slots, 20)
	assert.Equal(t, hm("09:00"), out.Slots[0])
	assert.NotContains(t, out.Slots, hm("10:00"))
	assert.Contains(t, out.Slots, hm("10:30"))
}

func TestGetAvailabilityRegularIsScopedToSelf(t *testing.T) {
	f := newFixture(t)

	out, err := NewGetAvailability(f.deps).Execute(ctx, AvailabilityInput{
		Actor:     f.regular,
		ServiceID: f.cut.ID,
		Date:      tuesday,
	})
	require.NoError(t, err)
	assert.Equal(t, f.joao.ID, out.StaffID)

	other := uint(999)
	_, err = NewGetAvailability(f.deps).Execute(ctx, AvailabilityInput{
		Actor:     f.regular,
		BranchID:  other,
		ServiceID: f.cut.ID,
		Date:      tuesday,
	})
	assert.True(t, httperr.IsKind(err, httperr.KindForbidden))
}

func TestGetAvailabilityChecksSpecialty(t *testing.T) {
	f := newFixture(t)

	_, err := NewGetAvailability(f.deps).Execute(ctx, AvailabilityInput{
		BranchID:  f.branch.ID,
		StaffID:   f.maria.ID,
		ServiceID: f.cut.ID,
		Date:      tuesday,
	})
	assert.True(t, httperr.IsBusiness(err, "service_not_offered_by_staff"))
}

func TestGetAvailabilityFullDayBlockReason(t *testing.T) {
	f := newFixture(t)
	day, _ := parseDate(tuesday)
	require.NoError(t, f.repo.CreateBlock(ctx, &block.Block{StaffID: f.joao.ID, Kind: block.KindFullDay, Date: day}))

	out, err := NewGetAvailability(f.deps).Execute(ctx, AvailabilityInput{
		BranchID:  f.branch.ID,
		StaffID:   f.joao.ID,
		ServiceID: f.cut.ID,
		Date:      tuesday,
	})
	require.NoError(t, err)
	assert.Empty(t, out.Slots)
	assert.Equal(t, availability.ReasonFullDayBlock, out.Reason)
}

func TestGetAvailabilityRejectsBadDate(t *testing.T) {
	f := newFixture(t)

	_, err := NewGetAvailability(f.deps).Execute(ctx, AvailabilityInput{
		BranchID: f.branch.ID, StaffID: f.joao.ID, ServiceID: f.cut.ID, Date: "10/03/2026",
	})
	assert.True(t, httperr.IsBusiness(err, "invalid_date"))
}

func TestValidateBookingCandidate(t *testing.T) {
	f := newFixture(t)
	existing := f.book(t, f.joao.ID, "10:00")
	uc := NewValidateBookingCandidate(f.deps)

	res, err := uc.Execute(ctx, CandidateInput{
		Actor: f.admin, BranchID: f.branch.ID, StaffID: f.joao.ID, ServiceID: f.cut.ID, Date: tuesday, Time: "10:15",
	})
	require.NoError(t, err)
	assert.True(t, res.OK)
	require.NotNil(t, res.OverlapWarning)
	assert.Equal(t, []uint{existing.ID}, res.OverlapWarning.AppointmentIDs)

	res, err = uc.Execute(ctx, CandidateInput{
		Actor: f.admin, BranchID: f.branch.ID, StaffID: f.joao.ID, ServiceID: f.cut.ID, Date: tuesday, Time: "12:00",
	})
	require.NoError(t, err)
	assert.False(t, res.OK)
	assert.Equal(t, "outside_working_hours", res.Reason)

	res, err = uc.Execute(ctx, CandidateInput{
		Actor: f.admin, BranchID: f.branch.ID, StaffID: f.joao.ID, DurationMin: 30, Date: tuesday, Time: "10:15",
		ExcludeID: existing.ID,
	})
	require.NoError(t, err)
	assert.True(t, res.OK)
	assert.Nil(t, res.OverlapWarning)
}
