package appointment

import (
	"context"

	"github.com/BruksfildServices01/barbershop-scheduling/internal/audit"
	"github.com/BruksfildServices01/barbershop-scheduling/internal/domain/actor"
	domain "github.com/BruksfildServices01/barbershop-scheduling/internal/domain/appointment"
	"github.com/BruksfildServices01/barbershop-scheduling/internal/domain/shop"
	"github.com/BruksfildServices01/barbershop-scheduling/internal/httperr"
	"github.com/BruksfildServices01/barbershop-scheduling/internal/metrics"
)

// ======================================================
// INPUT / OUTPUT
// ======================================================

// EditAppointmentInput: campos nil não mudam. Status explícito só admin.
type EditAppointmentInput struct {
	Actor         *actor.Actor
	AppointmentID uint

	Date          *string
	Time          *string
	StaffID       *uint
	ServiceID     *uint
	Notes         *string
	PriceOverride *float64
	Status        *string

	Strict bool
}

type EditAppointmentOutput struct {
	Appointment    *domain.Appointment
	OverlapWarning *OverlapWarning
}

// ======================================================
// USE CASE
// ======================================================

type EditAppointment struct {
	deps Deps
}

func NewEditAppointment(deps Deps) *EditAppointment {
	return &EditAppointment{deps: deps}
}

func (uc *EditAppointment) Execute(
	ctx context.Context,
	in EditAppointmentInput,
) (*EditAppointmentOutput, error) {

	if in.Actor == nil {
		return nil, httperr.ErrForbidden("actor_required")
	}

	current, err := uc.deps.Repo.GetAppointment(ctx, in.AppointmentID)
	if err != nil {
		return nil, err
	}
	if err := authorize(in.Actor, current); err != nil {
		return nil, err
	}

	branch, err := uc.deps.Repo.GetBranchByID(ctx, current.BranchID)
	if err != nil {
		return nil, err
	}

	changes, err := uc.buildChanges(ctx, in, branch, current)
	if err != nil {
		return nil, err
	}

	// --------------------------------------------------
	// Aplica numa cópia; o original vira a condição da escrita
	// --------------------------------------------------
	edited := *current
	if _, err := domain.ApplyEdit(&edited, changes, uc.deps.now(branch)); err != nil {
		return nil, err
	}

	out := &EditAppointmentOutput{Appointment: &edited}

	needsCheck := changes.TouchesSchedule() && edited.Status.Occupies()
	if needsCheck {
		unlock, err := domain.LockAll(ctx, uc.deps.Locker,
			domain.LockKey(current.StaffID, current.Date),
			domain.LockKey(edited.StaffID, edited.Date),
		)
		if err != nil {
			return nil, err
		}
		defer unlock()

		chk, err := uc.deps.checkCandidate(ctx, branch, edited.StaffID, edited.Date, edited.Start, edited.DurationMin, edited.ID, false)
		if err != nil {
			return nil, err
		}
		if !chk.OK() {
			return nil, chk.Err
		}
		if chk.HasOverlap() {
			if in.Strict || uc.deps.Policy.StrictOverlap {
				return nil, httperr.ErrOverlap("time_conflict")
			}
			out.OverlapWarning = resultFromCheck(chk).OverlapWarning
			metrics.IncOverlapWarning()
		}
	}

	if err := uc.deps.Repo.UpdateAppointment(ctx, &edited, current.Status); err != nil {
		return nil, err
	}

	uc.deps.Audit.Dispatch(audit.Event{
		BranchID: edited.BranchID,
		StaffID:  actorID(in.Actor),
		Action:   "appointment_updated",
		Entity:   "appointment",
		EntityID: &edited.ID,
		Metadata: map[string]any{
			"from_status": current.Status,
			"to_status":   edited.Status,
			"rescheduled": changes.TouchesSchedule(),
		},
	})

	return out, nil
}

// buildChanges valida a entrada e resolve profissional/serviço novos.
func (uc *EditAppointment) buildChanges(
	ctx context.Context,
	in EditAppointmentInput,
	branch *shop.Branch,
	current *domain.Appointment,
) (domain.Changes, error) {

	var c domain.Changes

	if in.Date != nil {
		d, err := parseDate(*in.Date)
		if err != nil {
			return c, err
		}
		c.Date = &d
	}
	if in.Time != nil {
		t, err := parseTime(*in.Time)
		if err != nil {
			return c, err
		}
		c.Start = &t
	}
	if in.Status != nil {
		if !in.Actor.IsAdmin() {
			return c, httperr.ErrForbidden("status_edit_admin_only")
		}
		st, err := domain.ParseStatus(*in.Status)
		if err != nil {
			return c, err
		}
		c.Status = &st
	}
	if in.PriceOverride != nil {
		if !in.Actor.IsAdmin() {
			return c, httperr.ErrForbidden("price_override_admin_only")
		}
		if *in.PriceOverride < 0 {
			return c, httperr.ErrValidation("invalid_price")
		}
		c.PriceOverride = in.PriceOverride
	}
	c.Notes = in.Notes

	staffID := current.StaffID
	if in.StaffID != nil && *in.StaffID != current.StaffID {
		if !in.Actor.IsAdmin() {
			return c, httperr.ErrForbidden("staff_out_of_scope")
		}
		staffID = *in.StaffID
		c.StaffID = &staffID
	}

	serviceID := current.ServiceID
	if in.ServiceID != nil && *in.ServiceID != current.ServiceID {
		svc, err := uc.deps.resolveService(ctx, branch.ID, *in.ServiceID)
		if err != nil {
			return c, err
		}
		serviceID = svc.ID
		c.ServiceID = &serviceID
		c.ServiceName = &svc.Name
		dur := svc.DurationMin
		c.DurationMin = &dur
	}

	if c.StaffID != nil || c.ServiceID != nil {
		if _, err := uc.deps.resolveStaff(ctx, branch.ID, staffID, serviceID); err != nil {
			return c, err
		}
	}

	return c, nil
}

// authorize: comuns só mexem nos próprios agendamentos da própria filial.
func authorize(who *actor.Actor, ap *domain.Appointment) error {
	if _, err := who.ScopeBranch(ap.BranchID); err != nil {
		return err
	}
	if !who.IsAdmin() && ap.StaffID != who.ID {
		return httperr.ErrForbidden("staff_out_of_scope")
	}
	return nil
}

