package repository

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domain "github.com/BruksfildServices01/barbershop-scheduling/internal/domain/appointment"
	"github.com/BruksfildServices01/barbershop-scheduling/internal/domain/block"
	"github.com/BruksfildServices01/barbershop-scheduling/internal/domain/schedule"
	"github.com/BruksfildServices01/barbershop-scheduling/internal/httperr"
)

var (
	ctx = context.Background()
	day = time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)
)

func TestMemoryConditionalStatusWrite(t *testing.T) {
	repo := NewMemoryRepository()
	ap := &domain.Appointment{BranchID: 1, StaffID: 2, Date: day, Start: 600, DurationMin: 30, Status: domain.StatusPending}
	require.NoError(t, repo.CreateAppointment(ctx, ap))

	updated, err := repo.UpdateAppointmentStatus(ctx, ap.ID, domain.StatusPending, domain.StatusCompleted, day)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusCompleted, updated.Status)
	require.NotNil(t, updated.CompletedAt)

	_, err = repo.UpdateAppointmentStatus(ctx, ap.ID, domain.StatusPending, domain.StatusCancelled, day)
	assert.True(t, httperr.IsKind(err, httperr.KindConflict))
}

func TestMemoryUpdateAppointmentExpectsStatus(t *testing.T) {
	repo := NewMemoryRepository()
	ap := &domain.Appointment{BranchID: 1, StaffID: 2, Date: day, Start: 600, DurationMin: 30, Status: domain.StatusConfirmed}
	require.NoError(t, repo.CreateAppointment(ctx, ap))

	edit := *ap
	edit.Start = 660
	edit.Status = domain.StatusModified
	assert.True(t, httperr.IsKind(repo.UpdateAppointment(ctx, &edit, domain.StatusPending), httperr.KindConflict))
	require.NoError(t, repo.UpdateAppointment(ctx, &edit, domain.StatusConfirmed))

	got, err := repo.GetAppointment(ctx, ap.ID)
	require.NoError(t, err)
	assert.Equal(t, schedule.TimeOfDay(660), got.Start)
}

func TestMemoryListFilters(t *testing.T) {
	repo := NewMemoryRepository()
	for i, d := range []time.Time{day, day.AddDate(0, 0, 1), day.AddDate(0, 1, 0)} {
		require.NoError(t, repo.CreateAppointment(ctx, &domain.Appointment{
			BranchID: 1, StaffID: 2, Date: d, Start: schedule.TimeOfDay(600 - i), DurationMin: 30, Status: domain.StatusPending,
		}))
	}

	from, to := day, day.AddDate(0, 0, 2)
	apps, err := repo.ListAppointments(ctx, domain.Filter{From: &from, To: &to})
	require.NoError(t, err)
	assert.Len(t, apps, 2)

	apps, err = repo.ListAppointments(ctx, domain.Filter{Date: &day})
	require.NoError(t, err)
	assert.Len(t, apps, 1)
}

func TestMemoryBlocksRange(t *testing.T) {
	repo := NewMemoryRepository()
	start, end := schedule.TimeOfDay(780), schedule.TimeOfDay(840)

	require.NoError(t, repo.CreateBlock(ctx, &block.Block{StaffID: 2, Kind: block.KindFullDay, Date: day}))
	require.NoError(t, repo.CreateBlock(ctx, &block.Block{StaffID: 2, Kind: block.KindFullDay, Date: day.AddDate(0, 0, 7)}))
	require.NoError(t, repo.CreateBlock(ctx, &block.Block{
		StaffID: 2, Kind: block.KindRecurringRest, Start: &start, End: &end, Weekdays: block.Weekdays(time.Tuesday),
	}))

	got, err := repo.ListBlocks(ctx, 2, day, day.AddDate(0, 0, 1))
	require.NoError(t, err)
	assert.Len(t, got, 2)
}

func TestMemoryClientIsReused(t *testing.T) {
	repo := NewMemoryRepository()

	a, err := repo.GetOrCreateClient(ctx, 1, "Ana", "1199", "")
	require.NoError(t, err)
	b, err := repo.GetOrCreateClient(ctx, 1, "Ana Maria", "1199", "")
	require.NoError(t, err)
	assert.Equal(t, a, b)
}
