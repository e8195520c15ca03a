package appointment

import (
	"context"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/BruksfildServices01/barbershop-scheduling/internal/domain/actor"
	domain "github.com/BruksfildServices01/barbershop-scheduling/internal/domain/appointment"
	"github.com/BruksfildServices01/barbershop-scheduling/internal/domain/schedule"
	"github.com/BruksfildServices01/barbershop-scheduling/internal/domain/shop"
	"github.com/BruksfildServices01/barbershop-scheduling/internal/infra/lock"
	"github.com/BruksfildServices01/barbershop-scheduling/internal/infra/repository"
	"github.com/BruksfildServices01/barbershop-scheduling/internal/timezone"
)

// Terça, 10/03/2026, 08:00 UTC.
var (
	ctx     = context.Background()
	now     = time.Date(2026, 3, 10, 8, 0, 0, 0, time.UTC)
	tuesday = "2026-03-10"
)

type fixture struct {
	repo    *repository.MemoryRepository
	deps    Deps
	branch  shop.Branch
	cut     shop.Service
	beard   shop.Service
	joao    shop.StaffMember
	maria   shop.StaffMember
	admin   *actor.Actor
	regular *actor.Actor
}

func hm(s string) schedule.TimeOfDay {
	t, err := schedule.ParseTimeOfDay(s)
	if err != nil {
		panic(err)
	}
	return t
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	repo := repository.NewMemoryRepository()
	f := &fixture{repo: repo}

	f.branch = repo.AddBranch(shop.Branch{Name: "Centro", Slug: "centro", Timezone: "UTC"})
	f.cut = repo.AddService(shop.Service{BranchID: f.branch.ID, Name: "Corte", DurationMin: 30, Price: 40, Active: true})
	f.beard = repo.AddService(shop.Service{BranchID: f.branch.ID, Name: "Barba", DurationMin: 45, Price: 30, Active: true})

	branchID := f.branch.ID
	f.joao = repo.AddStaff(shop.StaffMember{Name: "João", BranchID: &branchID, Role: actor.RoleRegular, Active: true})
	f.maria = repo.AddStaff(shop.StaffMember{
		Name: "Maria", BranchID: &branchID, Role: actor.RoleRegular, Active: true,
		Specialties: []uint{f.beard.ID},
	})

	ls, le := hm("12:00"), hm("13:00")
	var days []schedule.DaySchedule
	for wd := time.Monday; wd <= time.Saturday; wd++ {
		days = append(days, schedule.DaySchedule{
			Weekday: wd, Active: true, Open: hm("09:00"), Close: hm("20:30"),
			LunchStart: &ls, LunchEnd: &le,
		})
	}
	require.NoError(t, repo.ReplaceDaySchedules(ctx, f.branch.ID, days))

	f.admin = &actor.Actor{ID: 900, Role: actor.RoleAdmin}
	f.regular = &actor.Actor{ID: f.joao.ID, Role: actor.RoleRegular, BranchID: &branchID}

	f.deps = Deps{
		Repo:   repo,
		Locker: lock.NewLocalLocker(),
		Clock:  timezone.FixedClock{At: now},
		Log:    zerolog.Nop(),
		Policy: Policy{LeadTime: 30 * time.Minute, PublicStrictOverlap: true},
	}
	return f
}

// book cria um corte manual pelo admin.
func (f *fixture) book(t *testing.T, staffID uint, at string) *domain.Appointment {
	t.Helper()
	return f.bookService(t, staffID, f.cut.ID, at)
}

// bookService cria um agendamento manual pelo admin para o serviço dado.
func (f *fixture) bookService(t *testing.T, staffID, serviceID uint, at string) *domain.Appointment {
	t.Helper()
	out, err := NewCreateAppointment(f.deps).Execute(ctx, CreateAppointmentInput{
		Actor:      f.admin,
		BranchID:   f.branch.ID,
		StaffID:    staffID,
		ClientName: "Cliente " + at,
		ServiceID:  serviceID,
		Date:       tuesday,
		Time:       at,
	})
	require.NoError(t, err)
	return out.Appointment
}
