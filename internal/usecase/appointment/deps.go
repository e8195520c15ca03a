package appointment

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/BruksfildServices01/barbershop-scheduling/internal/audit"
	"github.com/BruksfildServices01/barbershop-scheduling/internal/domain/actor"
	domain "github.com/BruksfildServices01/barbershop-scheduling/internal/domain/appointment"
	"github.com/BruksfildServices01/barbershop-scheduling/internal/domain/availability"
	"github.com/BruksfildServices01/barbershop-scheduling/internal/domain/block"
	"github.com/BruksfildServices01/barbershop-scheduling/internal/domain/schedule"
	"github.com/BruksfildServices01/barbershop-scheduling/internal/domain/shop"
	"github.com/BruksfildServices01/barbershop-scheduling/internal/httperr"
	"github.com/BruksfildServices01/barbershop-scheduling/internal/timezone"
)

// ======================================================
// DEPENDENCIES
// ======================================================

// Policy é a parte da política de agendamento que os casos de uso aplicam.
type Policy struct {
	LeadTime            time.Duration
	StrictOverlap       bool
	PublicStrictOverlap bool
}

type Deps struct {
	Repo   domain.Repository
	Locker domain.Locker
	Clock  timezone.Clock
	Audit  *audit.Dispatcher
	Log    zerolog.Logger
	Policy Policy
}

func (d Deps) clock() timezone.Clock {
	if d.Clock == nil {
		return timezone.SystemClock{}
	}
	return d.Clock
}

// calculator usa a antecedência da filial quando configurada.
func (d Deps) calculator(branch *shop.Branch) *availability.Calculator {
	lead := d.Policy.LeadTime
	if branch != nil && branch.MinAdvanceMinutes > 0 {
		lead = time.Duration(branch.MinAdvanceMinutes) * time.Minute
	}
	return availability.NewCalculator(d.clock(), availability.Policy{LeadTime: lead})
}

func (d Deps) now(branch *shop.Branch) time.Time {
	return timezone.NowIn(d.clock(), branch.Timezone)
}

// ======================================================
// SNAPSHOT
// ======================================================

// snapshot lê expediente, bloqueios e agendamentos do profissional na data.
// As leituras não são transacionais entre si; a escrita revalida sob lock.
func (d Deps) snapshot(
	ctx context.Context,
	branchID uint,
	staffID uint,
	date time.Time,
) (availability.Snapshot, error) {

	days, err := d.Repo.ListDaySchedules(ctx, branchID)
	if err != nil {
		return availability.Snapshot{}, err
	}
	cal, err := schedule.NewCalendar(days)
	if err != nil {
		return availability.Snapshot{}, err
	}

	blocks, err := d.Repo.ListBlocks(ctx, staffID, date, date.AddDate(0, 0, 1))
	if err != nil {
		return availability.Snapshot{}, err
	}

	apps, err := d.Repo.ListAppointments(ctx, domain.Filter{
		StaffID: &staffID,
		Date:    &date,
	})
	if err != nil {
		return availability.Snapshot{}, err
	}

	return availability.Snapshot{
		Calendar:     cal,
		Blocks:       block.NewRegistry(blocks),
		Appointments: apps,
	}, nil
}

// ======================================================
// RESOLUTION
// ======================================================

// resolveBranch aplica o escopo do ator; sem ator (público) vale o pedido.
func (d Deps) resolveBranch(ctx context.Context, who *actor.Actor, requested uint) (*shop.Branch, error) {
	branchID := requested
	if who != nil {
		id, err := who.ScopeBranch(requested)
		if err != nil {
			return nil, err
		}
		branchID = id
	}
	if branchID == 0 {
		return nil, httperr.ErrValidation("missing_branch")
	}
	return d.Repo.GetBranchByID(ctx, branchID)
}

func resolveStaffID(who *actor.Actor, requested uint) (uint, error) {
	if who == nil {
		if requested == 0 {
			return 0, httperr.ErrValidation("missing_staff")
		}
		return requested, nil
	}
	return who.ScopeStaff(requested)
}

// resolveStaff garante profissional ativo, da filial e apto ao serviço.
func (d Deps) resolveStaff(
	ctx context.Context,
	branchID uint,
	staffID uint,
	serviceID uint,
) (*shop.StaffMember, error) {

	staff, err := d.Repo.GetStaff(ctx, staffID)
	if err != nil {
		return nil, err
	}
	if !staff.Active {
		return nil, httperr.ErrBusiness("staff_inactive")
	}
	if !staff.WorksAt(branchID) {
		return nil, httperr.ErrBusiness("staff_not_in_branch")
	}
	if serviceID != 0 && !staff.CanPerform(serviceID) {
		return nil, httperr.ErrBusiness("service_not_offered_by_staff")
	}
	return staff, nil
}

func (d Deps) resolveService(ctx context.Context, branchID, serviceID uint) (*shop.Service, error) {
	if serviceID == 0 {
		return nil, httperr.ErrValidation("missing_service")
	}
	svc, err := d.Repo.GetService(ctx, branchID, serviceID)
	if err != nil {
		return nil, err
	}
	if !svc.Active {
		return nil, httperr.ErrBusiness("service_inactive")
	}
	if svc.DurationMin <= 0 {
		return nil, httperr.ErrBusiness("invalid_duration")
	}
	return svc, nil
}

// ======================================================
// PARSING
// ======================================================

func parseDate(s string) (time.Time, error) {
	if s == "" {
		return time.Time{}, httperr.ErrValidation("missing_date")
	}
	d, err := schedule.ParseDate(s)
	if err != nil {
		return time.Time{}, httperr.ErrValidation("invalid_date")
	}
	return d, nil
}

func parseTime(s string) (schedule.TimeOfDay, error) {
	if s == "" {
		return 0, httperr.ErrValidation("missing_time")
	}
	t, err := schedule.ParseTimeOfDay(s)
	if err != nil {
		return 0, httperr.ErrValidation("invalid_time")
	}
	return t, nil
}

func actorID(who *actor.Actor) *uint {
	if who == nil {
		return nil
	}
	id := who.ID
	return &id
}
