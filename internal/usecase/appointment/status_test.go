package appointment

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domain "github.com/BruksfildServices01/barbershop-scheduling/internal/domain/appointment"
	"github.com/BruksfildServices01/barbershop-scheduling/internal/domain/block"
	"github.com/BruksfildServices01/barbershop-scheduling/internal/httperr"
	"github.com/BruksfildServices01/barbershop-scheduling/internal/infra/repository"
)

func TestChangeStatusTransitions(t *testing.T) {
	f := newFixture(t)
	ap := f.book(t, f.joao.ID, "10:00")
	uc := NewChangeStatus(f.deps)

	done, err := uc.Execute(ctx, f.regular, ap.ID, domain.StatusCompleted)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusCompleted, done.Status)
	assert.NotNil(t, done.CompletedAt)

	_, err = uc.Execute(ctx, f.regular, ap.ID, domain.StatusCancelled)
	assert.True(t, httperr.IsBusiness(err, "invalid_state"))
}

// racingRepo simula outro ator mudando o status entre a leitura e a escrita.
type racingRepo struct {
	*repository.MemoryRepository
}

func (r racingRepo) UpdateAppointmentStatus(
	ctx context.Context,
	id uint,
	from domain.Status,
	to domain.Status,
	now time.Time,
) (*domain.Appointment, error) {
	if _, err := r.MemoryRepository.UpdateAppointmentStatus(ctx, id, from, domain.StatusCancelled, now); err != nil {
		return nil, err
	}
	return r.MemoryRepository.UpdateAppointmentStatus(ctx, id, from, to, now)
}

func TestMoveStatusCommits(t *testing.T) {
	f := newFixture(t)
	a := f.book(t, f.joao.ID, "10:00")
	b := f.book(t, f.joao.ID, "11:00")

	out, err := NewMoveStatus(f.deps).Execute(ctx, MoveStatusInput{
		BoardInput:    BoardInput{Actor: f.regular, Date: tuesday},
		AppointmentID: b.ID,
		Target:        "confirmed",
		Position:      0,
	})
	require.NoError(t, err)
	assert.True(t, out.Result.Committed)

	cols := out.Board.Columns
	require.Len(t, cols[domain.StatusPending], 1)
	assert.Equal(t, a.ID, cols[domain.StatusPending][0].ID)
	require.Len(t, cols[domain.StatusConfirmed], 1)
	assert.Equal(t, b.ID, cols[domain.StatusConfirmed][0].ID)
}

func TestMoveStatusRollsBackOnConflict(t *testing.T) {
	f := newFixture(t)
	ap := f.book(t, f.joao.ID, "10:00")
	f.deps.Repo = racingRepo{f.repo}

	out, err := NewMoveStatus(f.deps).Execute(ctx, MoveStatusInput{
		BoardInput:    BoardInput{Actor: f.admin, BranchID: f.branch.ID, Date: tuesday},
		AppointmentID: ap.ID,
		Target:        "completed",
	})
	assert.True(t, httperr.IsBusiness(err, "commit_conflict"))
	require.NotNil(t, out)
	assert.True(t, out.Result.RolledBack)

	pending := out.Board.Columns[domain.StatusPending]
	require.Len(t, pending, 1)
	assert.Equal(t, ap.ID, pending[0].ID)
	assert.Empty(t, out.Board.Columns[domain.StatusCompleted])
}

func TestMoveStatusRejectsBlockedDay(t *testing.T) {
	f := newFixture(t)
	ap := f.book(t, f.joao.ID, "10:00")
	day, _ := parseDate(tuesday)
	require.NoError(t, f.repo.CreateBlock(ctx, &block.Block{StaffID: f.joao.ID, Kind: block.KindFullDay, Date: day}))

	out, err := NewMoveStatus(f.deps).Execute(ctx, MoveStatusInput{
		BoardInput:    BoardInput{Actor: f.regular, Date: tuesday},
		AppointmentID: ap.ID,
		Target:        "confirmed",
	})
	assert.True(t, httperr.IsBusiness(err, "staff_day_blocked"))
	assert.False(t, out.Result.Applied)

	stored, err := f.repo.GetAppointment(ctx, ap.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusPending, stored.Status)
}

func TestMoveStatusOutsideOwnBoard(t *testing.T) {
	f := newFixture(t)
	theirs := f.bookService(t, f.maria.ID, f.beard.ID, "10:00")

	_, err := NewMoveStatus(f.deps).Execute(ctx, MoveStatusInput{
		BoardInput:    BoardInput{Actor: f.regular, Date: tuesday},
		AppointmentID: theirs.ID,
		Target:        "confirmed",
	})
	assert.True(t, httperr.IsKind(err, httperr.KindNotFound))
}

func TestGetBoardAndLists(t *testing.T) {
	f := newFixture(t)
	f.book(t, f.joao.ID, "10:00")
	f.bookService(t, f.maria.ID, f.beard.ID, "11:00")

	b, err := NewGetBoard(f.deps).Execute(ctx, BoardInput{Actor: f.admin, BranchID: f.branch.ID, Date: tuesday})
	require.NoError(t, err)
	assert.Len(t, b.Columns[domain.StatusPending], 2)

	mine, err := NewListAppointmentsByDate(f.repo).Execute(ctx, f.regular, 0, 0, tuesday)
	require.NoError(t, err)
	require.Len(t, mine, 1)
	assert.Equal(t, "10:00", mine[0].StartTime)
	assert.Equal(t, "10:30", mine[0].EndTime)

	month, err := NewListAppointmentsByMonth(f.repo).Execute(ctx, f.admin, f.branch.ID, 0, 2026, 3)
	require.NoError(t, err)
	assert.Len(t, month, 2)

	_, err = NewListAppointmentsByMonth(f.repo).Execute(ctx, f.admin, f.branch.ID, 0, 2026, 13)
	assert.True(t, httperr.IsKind(err, httperr.KindValidation))
}
