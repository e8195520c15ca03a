package appointment

import (
	"context"
	"time"

	"github.com/BruksfildServices01/barbershop-scheduling/internal/domain/actor"
	domain "github.com/BruksfildServices01/barbershop-scheduling/internal/domain/appointment"
	"github.com/BruksfildServices01/barbershop-scheduling/internal/dto"
)

type ListAppointmentsByDate struct {
	repo domain.Repository
}

func NewListAppointmentsByDate(
	repo domain.Repository,
) *ListAppointmentsByDate {
	return &ListAppointmentsByDate{
		repo: repo,
	}
}

// Execute: staffID 0 (só admin) lista a filial inteira.
func (uc *ListAppointmentsByDate) Execute(
	ctx context.Context,
	who *actor.Actor,
	branchID uint,
	staffID uint,
	date string,
) ([]dto.AppointmentDTO, error) {

	day, err := parseDate(date)
	if err != nil {
		return nil, err
	}

	next := day.AddDate(0, 0, 1)
	return listPeriod(ctx, uc.repo, who, branchID, staffID, day, next)
}

func listPeriod(
	ctx context.Context,
	repo domain.AppointmentStore,
	who *actor.Actor,
	branchID uint,
	staffID uint,
	from time.Time,
	to time.Time,
) ([]dto.AppointmentDTO, error) {

	branch, err := who.ScopeBranch(branchID)
	if err != nil {
		return nil, err
	}

	f := domain.Filter{BranchID: &branch, From: &from, To: &to}
	if !who.IsAdmin() || staffID != 0 {
		staff, err := who.ScopeStaff(staffID)
		if err != nil {
			return nil, err
		}
		f.StaffID = &staff
	}

	apps, err := repo.ListAppointments(ctx, f)
	if err != nil {
		return nil, err
	}
	return dto.FromAppointments(apps), nil
}
