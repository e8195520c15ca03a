package board

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/BruksfildServices01/barbershop-scheduling/internal/domain/appointment"
	"github.com/BruksfildServices01/barbershop-scheduling/internal/domain/block"
	"github.com/BruksfildServices01/barbershop-scheduling/internal/domain/schedule"
	"github.com/BruksfildServices01/barbershop-scheduling/internal/httperr"
	"github.com/BruksfildServices01/barbershop-scheduling/internal/timezone"
)

var day = time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)

type committerMock struct {
	mock.Mock
}

func (m *committerMock) UpdateAppointmentStatus(
	ctx context.Context,
	id uint,
	from appointment.Status,
	to appointment.Status,
	now time.Time,
) (*appointment.Appointment, error) {
	args := m.Called(ctx, id, from, to, now)
	ap, _ := args.Get(0).(*appointment.Appointment)
	return ap, args.Error(1)
}

type loaderMock struct {
	mock.Mock
}

func (m *loaderMock) LoadBoard(ctx context.Context) ([]appointment.Appointment, error) {
	args := m.Called(ctx)
	apps, _ := args.Get(0).([]appointment.Appointment)
	return apps, args.Error(1)
}

type staticBlocks struct {
	reg *block.Registry
}

func (s staticBlocks) BlocksFor(context.Context, uint, time.Time) (*block.Registry, error) {
	return s.reg, nil
}

func item(id uint, start int, st appointment.Status) appointment.Appointment {
	return appointment.Appointment{
		ID:          id,
		BranchID:    1,
		StaffID:     7,
		Date:        day,
		Start:       schedule.TimeOfDay(start),
		DurationMin: 30,
		Status:      st,
	}
}

func fixture() []appointment.Appointment {
	return []appointment.Appointment{
		item(1, 540, appointment.StatusPending),
		item(2, 570, appointment.StatusPending),
		item(3, 600, appointment.StatusModified),
		item(4, 630, appointment.StatusConfirmed),
		item(5, 660, appointment.StatusCancelled),
	}
}

func newManager(c Committer, l Loader, b BlockSource) *Manager {
	return NewManager(New(fixture()), c, l, b, timezone.FixedClock{At: day.Add(8 * time.Hour)}, zerolog.Nop())
}

func TestNewGroupsModifiedAsPending(t *testing.T) {
	b := New(fixture())

	snap := b.Snapshot()
	assert.Equal(t, []uint{1, 2, 3}, snap[appointment.StatusPending])
	assert.Equal(t, []uint{4}, snap[appointment.StatusConfirmed])
	assert.Empty(t, snap[appointment.StatusCompleted])
	assert.Equal(t, []uint{5}, snap[appointment.StatusCancelled])
}

func TestFailedCommitRollsBack(t *testing.T) {
	c := new(committerMock)
	c.On("UpdateAppointmentStatus", mock.Anything, uint(2), appointment.StatusPending, appointment.StatusCompleted, mock.Anything).
		Return(nil, errors.New("connection reset"))

	m := newManager(c, nil, nil)
	before := m.Snapshot()

	res, err := m.ApplyStatusMove(context.Background(), 2, appointment.StatusCompleted, 0)
	require.Error(t, err)
	assert.Equal(t, MoveResult{Applied: true, RolledBack: true}, res)
	assert.Equal(t, before, m.Snapshot())

	col := m.Columns()[appointment.StatusPending]
	assert.Equal(t, appointment.StatusPending, col[1].Status)
	c.AssertExpectations(t)
}

func TestCommitConflictPropagatesKind(t *testing.T) {
	c := new(committerMock)
	c.On("UpdateAppointmentStatus", mock.Anything, uint(4), appointment.StatusConfirmed, appointment.StatusCancelled, mock.Anything).
		Return(nil, httperr.ErrConflict("status_changed"))

	m := newManager(c, nil, nil)
	before := m.Snapshot()

	res, err := m.ApplyStatusMove(context.Background(), 4, appointment.StatusCancelled, -1)
	assert.True(t, res.RolledBack)
	assert.True(t, httperr.IsKind(err, httperr.KindConflict))
	assert.Equal(t, before, m.Snapshot())
}

func TestSuccessfulMoveCommitsAndRefreshes(t *testing.T) {
	committed := item(1, 540, appointment.StatusConfirmed)

	c := new(committerMock)
	c.On("UpdateAppointmentStatus", mock.Anything, uint(1), appointment.StatusPending, appointment.StatusConfirmed, mock.Anything).
		Return(&committed, nil)

	durable := fixture()
	durable[0] = committed
	l := new(loaderMock)
	l.On("LoadBoard", mock.Anything).Return(durable, nil).Once()

	m := newManager(c, l, nil)

	res, err := m.ApplyStatusMove(context.Background(), 1, appointment.StatusConfirmed, 0)
	require.NoError(t, err)
	assert.Equal(t, MoveResult{Applied: true, Committed: true}, res)

	snap := m.Snapshot()
	assert.Equal(t, []uint{2, 3}, snap[appointment.StatusPending])
	assert.Equal(t, []uint{1, 4}, snap[appointment.StatusConfirmed])
	c.AssertExpectations(t)
	l.AssertExpectations(t)
}

func TestRefreshFailureKeepsCommittedState(t *testing.T) {
	committed := item(1, 540, appointment.StatusConfirmed)

	c := new(committerMock)
	c.On("UpdateAppointmentStatus", mock.Anything, uint(1), appointment.StatusPending, appointment.StatusConfirmed, mock.Anything).
		Return(&committed, nil)
	l := new(loaderMock)
	l.On("LoadBoard", mock.Anything).Return(nil, errors.New("db down"))

	m := newManager(c, l, nil)

	res, err := m.ApplyStatusMove(context.Background(), 1, appointment.StatusConfirmed, -1)
	require.NoError(t, err)
	assert.True(t, res.Committed)
	assert.Equal(t, []uint{4, 1}, m.Snapshot()[appointment.StatusConfirmed])
}

func TestSameColumnIsLocalReorder(t *testing.T) {
	c := new(committerMock)
	m := newManager(c, nil, nil)

	res, err := m.ApplyStatusMove(context.Background(), 3, appointment.StatusPending, 0)
	require.NoError(t, err)
	assert.Equal(t, MoveResult{Applied: true}, res)
	assert.Equal(t, []uint{3, 1, 2}, m.Snapshot()[appointment.StatusPending])
	c.AssertNotCalled(t, "UpdateAppointmentStatus", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestIllegalTransitionRejectedWithoutMutation(t *testing.T) {
	c := new(committerMock)
	m := newManager(c, nil, nil)
	before := m.Snapshot()

	res, err := m.ApplyStatusMove(context.Background(), 5, appointment.StatusPending, 0)
	assert.True(t, httperr.IsBusiness(err, "invalid_state"))
	assert.False(t, res.Applied)
	assert.Equal(t, before, m.Snapshot())
}

func TestBlocksRejectMove(t *testing.T) {
	start := schedule.TimeOfDay(560)
	end := schedule.TimeOfDay(620)

	tests := []struct {
		name  string
		block block.Block
		id    uint
		code  string
	}{
		{
			name:  "full day",
			block: block.Block{ID: 1, StaffID: 7, Kind: block.KindFullDay, Date: day},
			id:    1,
			code:  "staff_day_blocked",
		},
		{
			name:  "start inside hour range",
			block: block.Block{ID: 2, StaffID: 7, Kind: block.KindHourRange, Date: day, Start: &start, End: &end},
			id:    2,
			code:  "staff_time_blocked",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := new(committerMock)
			m := newManager(c, nil, staticBlocks{reg: block.NewRegistry([]block.Block{tt.block})})
			before := m.Snapshot()

			res, err := m.ApplyStatusMove(context.Background(), tt.id, appointment.StatusConfirmed, 0)
			assert.True(t, httperr.IsBusiness(err, tt.code))
			assert.False(t, res.Applied)
			assert.Equal(t, before, m.Snapshot())
			c.AssertNotCalled(t, "UpdateAppointmentStatus", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
		})
	}
}

func TestCancelAllowedOnBlockedDay(t *testing.T) {
	c := new(committerMock)
	c.On("UpdateAppointmentStatus", mock.Anything, uint(1), appointment.StatusPending, appointment.StatusCancelled, mock.Anything).
		Return(nil, nil)

	blocked := staticBlocks{reg: block.NewRegistry([]block.Block{
		{ID: 1, StaffID: 7, Kind: block.KindFullDay, Date: day},
	})}
	m := newManager(c, nil, blocked)

	res, err := m.ApplyStatusMove(context.Background(), 1, appointment.StatusCancelled, 0)
	require.NoError(t, err)
	assert.Equal(t, MoveResult{Applied: true, Committed: true}, res)
	assert.Equal(t, []uint{1, 5}, m.Snapshot()[appointment.StatusCancelled])
	c.AssertExpectations(t)
}

func TestUnknownAppointmentAndColumn(t *testing.T) {
	m := newManager(new(committerMock), nil, nil)

	_, err := m.ApplyStatusMove(context.Background(), 99, appointment.StatusConfirmed, 0)
	assert.True(t, httperr.IsKind(err, httperr.KindNotFound))

	_, err = m.ApplyStatusMove(context.Background(), 1, appointment.StatusModified, 0)
	assert.True(t, httperr.IsKind(err, httperr.KindValidation))
}

func TestConcurrentMovesRollBackIndependently(t *testing.T) {
	release := make(chan struct{})
	started := make(chan struct{})

	c := new(committerMock)
	c.On("UpdateAppointmentStatus", mock.Anything, uint(1), appointment.StatusPending, appointment.StatusCompleted, mock.Anything).
		Run(func(mock.Arguments) {
			close(started)
			<-release
		}).
		Return(nil, httperr.ErrConflict("status_changed"))

	ok := item(2, 570, appointment.StatusConfirmed)
	c.On("UpdateAppointmentStatus", mock.Anything, uint(2), appointment.StatusPending, appointment.StatusConfirmed, mock.Anything).
		Return(&ok, nil)

	m := newManager(c, nil, nil)

	var (
		wg    sync.WaitGroup
		first MoveResult
		ferr  error
	)
	wg.Add(1)
	go func() {
		defer wg.Done()
		first, ferr = m.ApplyStatusMove(context.Background(), 1, appointment.StatusCompleted, 0)
	}()
	<-started

	// Optimistic state visible while the commit is pending.
	assert.Equal(t, []uint{1}, m.Snapshot()[appointment.StatusCompleted])

	_, err := m.ApplyStatusMove(context.Background(), 1, appointment.StatusCancelled, 0)
	assert.True(t, httperr.IsBusiness(err, "move_in_flight"))

	res, err := m.ApplyStatusMove(context.Background(), 2, appointment.StatusConfirmed, -1)
	require.NoError(t, err)
	assert.True(t, res.Committed)

	close(release)
	wg.Wait()

	assert.True(t, first.RolledBack)
	assert.Error(t, ferr)

	snap := m.Snapshot()
	assert.Equal(t, []uint{1, 3}, snap[appointment.StatusPending])
	assert.Equal(t, []uint{4, 2}, snap[appointment.StatusConfirmed])
	assert.Empty(t, snap[appointment.StatusCompleted])
}

func TestRefreshRefusesWhileMoveInFlight(t *testing.T) {
	release := make(chan struct{})
	started := make(chan struct{})

	c := new(committerMock)
	c.On("UpdateAppointmentStatus", mock.Anything, uint(1), appointment.StatusPending, appointment.StatusCancelled, mock.Anything).
		Run(func(mock.Arguments) {
			close(started)
			<-release
		}).
		Return(nil, errors.New("timeout"))

	l := new(loaderMock)
	l.On("LoadBoard", mock.Anything).Return(fixture(), nil)

	m := newManager(c, l, nil)

	done := make(chan struct{})
	go func() {
		defer close(done)
		_, _ = m.ApplyStatusMove(context.Background(), 1, appointment.StatusCancelled, 0)
	}()
	<-started

	err := m.Refresh(context.Background())
	assert.True(t, httperr.IsBusiness(err, "move_in_flight"))

	close(release)
	<-done

	require.NoError(t, m.Refresh(context.Background()))
	assert.Equal(t, New(fixture()).Snapshot(), m.Snapshot())
}
