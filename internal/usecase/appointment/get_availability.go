package appointment

import (
	"context"
	"time"

	"github.com/BruksfildServices01/barbershop-scheduling/internal/domain/actor"
	"github.com/BruksfildServices01/barbershop-scheduling/internal/domain/availability"
	"github.com/BruksfildServices01/barbershop-scheduling/internal/domain/schedule"
	"github.com/BruksfildServices01/barbershop-scheduling/internal/httperr"
	"github.com/BruksfildServices01/barbershop-scheduling/internal/metrics"
	"github.com/BruksfildServices01/barbershop-scheduling/internal/timezone"
)

// ======================================================
// INPUT / OUTPUT
// ======================================================

// AvailabilityInput: ServiceID define a duração; sem serviço, DurationMin.
// Actor nil = consulta pública.
type AvailabilityInput struct {
	Actor       *actor.Actor
	BranchID    uint
	StaffID     uint
	ServiceID   uint
	DurationMin int
	Date        string
}

type AvailabilityOutput struct {
	BranchID    uint
	StaffID     uint
	Date        time.Time
	DurationMin int
	Slots       []schedule.TimeOfDay
	Reason      availability.Reason
}

// ======================================================
// USE CASE
// ======================================================

type GetAvailability struct {
	deps Deps
}

func NewGetAvailability(deps Deps) *GetAvailability {
	return &GetAvailability{deps: deps}
}

func (uc *GetAvailability) Execute(
	ctx context.Context,
	in AvailabilityInput,
) (*AvailabilityOutput, error) {

	date, err := parseDate(in.Date)
	if err != nil {
		return nil, err
	}

	branch, err := uc.deps.resolveBranch(ctx, in.Actor, in.BranchID)
	if err != nil {
		return nil, err
	}

	staffID, err := resolveStaffID(in.Actor, in.StaffID)
	if err != nil {
		return nil, err
	}

	duration := in.DurationMin
	if in.ServiceID != 0 {
		svc, err := uc.deps.resolveService(ctx, branch.ID, in.ServiceID)
		if err != nil {
			return nil, err
		}
		duration = svc.DurationMin
	}
	if duration <= 0 {
		return nil, httperr.ErrValidation("invalid_duration")
	}

	if _, err := uc.deps.resolveStaff(ctx, branch.ID, staffID, in.ServiceID); err != nil {
		return nil, err
	}

	snap, err := uc.deps.snapshot(ctx, branch.ID, staffID, date)
	if err != nil {
		return nil, err
	}

	res, err := uc.deps.calculator(branch).AvailableSlots(availability.Input{
		BranchID:    branch.ID,
		StaffID:     staffID,
		Date:        date,
		DurationMin: duration,
		Location:    timezone.Location(branch.Timezone),
	}, snap)
	if err != nil {
		return nil, err
	}

	metrics.IncSlotQuery(string(res.Reason))
	uc.deps.Log.Debug().
		Uint("branch_id", branch.ID).
		Uint("staff_id", staffID).
		Str("date", schedule.FormatDate(date)).
		Int("slots", len(res.Slots)).
		Str("reason", string(res.Reason)).
		Msg("availability computed")

	return &AvailabilityOutput{
		BranchID:    branch.ID,
		StaffID:     staffID,
		Date:        date,
		DurationMin: duration,
		Slots:       res.Slots,
		Reason:      res.Reason,
	}, nil
}
