package block

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/BruksfildServices01/barbershop-scheduling/internal/audit"
	"github.com/BruksfildServices01/barbershop-scheduling/internal/domain/actor"
	domain "github.com/BruksfildServices01/barbershop-scheduling/internal/domain/appointment"
	"github.com/BruksfildServices01/barbershop-scheduling/internal/domain/block"
	"github.com/BruksfildServices01/barbershop-scheduling/internal/domain/overlap"
	"github.com/BruksfildServices01/barbershop-scheduling/internal/domain/schedule"
	"github.com/BruksfildServices01/barbershop-scheduling/internal/httperr"
)

type Deps struct {
	Repo   domain.Repository
	Locker domain.Locker
	Audit  *audit.Dispatcher
	Log    zerolog.Logger
}

// ======================================================
// CREATE
// ======================================================

type CreateBlockInput struct {
	Actor    *actor.Actor
	StaffID  uint
	Kind     string
	Date     string
	Start    string
	End      string
	Weekdays []int
	Reason   string
}

// CreateBlockOutput lista os agendamentos ativos que o bloqueio passa a cobrir.
type CreateBlockOutput struct {
	Block    *block.Block
	Affected []uint
}

type CreateBlock struct {
	deps Deps
}

func NewCreateBlock(deps Deps) *CreateBlock {
	return &CreateBlock{deps: deps}
}

func (uc *CreateBlock) Execute(ctx context.Context, in CreateBlockInput) (*CreateBlockOutput, error) {
	if in.Actor == nil {
		return nil, httperr.ErrForbidden("actor_required")
	}

	staffID, err := in.Actor.ScopeStaff(in.StaffID)
	if err != nil {
		return nil, err
	}
	staff, err := uc.deps.Repo.GetStaff(ctx, staffID)
	if err != nil {
		return nil, err
	}
	if staff.BranchID == nil {
		return nil, httperr.ErrBusiness("staff_not_in_branch")
	}
	branchID, err := in.Actor.ScopeBranch(*staff.BranchID)
	if err != nil {
		return nil, err
	}

	b, err := parseBlock(in)
	if err != nil {
		return nil, err
	}
	b.StaffID = staffID
	b.BranchID = branchID

	if err := b.Validate(); err != nil {
		return nil, httperr.ErrValidation("invalid_block")
	}

	// 1️⃣ bloqueio datado disputa o mesmo lock das reservas
	if b.Kind != block.KindRecurringRest {
		unlock, err := uc.deps.Locker.Lock(ctx, domain.LockKey(staffID, b.Date))
		if err != nil {
			return nil, err
		}
		defer unlock()
	}

	// 2️⃣ grava
	if err := uc.deps.Repo.CreateBlock(ctx, &b); err != nil {
		return nil, err
	}

	// 3️⃣ agendamentos já marcados que ficaram cobertos
	affected, err := uc.affected(ctx, b)
	if err != nil {
		return nil, err
	}
	if len(affected) > 0 {
		uc.deps.Log.Warn().
			Uint("block_id", b.ID).
			Uint("staff_id", staffID).
			Int("affected", len(affected)).
			Msg("block covers active appointments")
	}

	uc.deps.Audit.Dispatch(audit.Event{
		BranchID: branchID,
		StaffID:  actorID(in.Actor),
		Action:   "block_created",
		Entity:   "block",
		EntityID: &b.ID,
		Metadata: map[string]any{
			"kind":     b.Kind,
			"staff_id": staffID,
			"affected": affected,
		},
	})

	return &CreateBlockOutput{Block: &b, Affected: affected}, nil
}

func (uc *CreateBlock) affected(ctx context.Context, b block.Block) ([]uint, error) {
	if b.Kind == block.KindRecurringRest {
		return nil, nil
	}

	apps, err := uc.deps.Repo.ListAppointments(ctx, domain.Filter{
		StaffID: &b.StaffID,
		Date:    &b.Date,
	})
	if err != nil {
		return nil, err
	}

	var ids []uint
	iv, ranged := b.Interval()
	for _, ap := range domain.Occupants(apps) {
		if !ranged || overlap.Overlaps(iv, ap.Interval) {
			ids = append(ids, ap.ID)
		}
	}
	return ids, nil
}

func parseBlock(in CreateBlockInput) (block.Block, error) {
	b := block.Block{Kind: block.Kind(in.Kind), Reason: in.Reason}
	if !b.Kind.Valid() {
		return b, httperr.ErrValidation("invalid_block_kind")
	}

	if b.Kind != block.KindRecurringRest {
		if in.Date == "" {
			return b, httperr.ErrValidation("missing_date")
		}
		d, err := schedule.ParseDate(in.Date)
		if err != nil {
			return b, httperr.ErrValidation("invalid_date")
		}
		b.Date = d
	}

	if b.Kind != block.KindFullDay {
		start, err := schedule.ParseTimeOfDay(in.Start)
		if err != nil {
			return b, httperr.ErrValidation("invalid_time")
		}
		end, err := schedule.ParseTimeOfDay(in.End)
		if err != nil {
			return b, httperr.ErrValidation("invalid_time")
		}
		b.Start, b.End = &start, &end
	}

	if b.Kind == block.KindRecurringRest {
		days := make([]time.Weekday, 0, len(in.Weekdays))
		for _, d := range in.Weekdays {
			if d < 0 || d > 6 {
				return b, httperr.ErrValidation("invalid_weekday")
			}
			days = append(days, time.Weekday(d))
		}
		b.Weekdays = block.Weekdays(days...)
	}

	return b, nil
}

// ======================================================
// LIST
// ======================================================

type ListBlocks struct {
	repo domain.Repository
}

func NewListBlocks(repo domain.Repository) *ListBlocks {
	return &ListBlocks{repo: repo}
}

// Execute lista os bloqueios do profissional entre from e to (datas
// YYYY-MM-DD, to exclusivo). Descansos recorrentes sempre entram.
func (uc *ListBlocks) Execute(
	ctx context.Context,
	who *actor.Actor,
	staffID uint,
	from string,
	to string,
) ([]block.Block, error) {

	if who == nil {
		return nil, httperr.ErrForbidden("actor_required")
	}
	id, err := who.ScopeStaff(staffID)
	if err != nil {
		return nil, err
	}
	if err := uc.checkBranch(ctx, who, id); err != nil {
		return nil, err
	}

	start, err := optionalDate(from)
	if err != nil {
		return nil, err
	}
	end, err := optionalDate(to)
	if err != nil {
		return nil, err
	}
	if !start.IsZero() && !end.IsZero() && !start.Before(end) {
		return nil, httperr.ErrValidation("invalid_range")
	}

	return uc.repo.ListBlocks(ctx, id, start, end)
}

func (uc *ListBlocks) checkBranch(ctx context.Context, who *actor.Actor, staffID uint) error {
	staff, err := uc.repo.GetStaff(ctx, staffID)
	if err != nil {
		return err
	}
	if staff.BranchID == nil {
		return nil
	}
	_, err = who.ScopeBranch(*staff.BranchID)
	return err
}

func optionalDate(s string) (time.Time, error) {
	if s == "" {
		return time.Time{}, nil
	}
	d, err := schedule.ParseDate(s)
	if err != nil {
		return time.Time{}, httperr.ErrValidation("invalid_date")
	}
	return d, nil
}

// ======================================================
// DELETE
// ======================================================

type DeleteBlock struct {
	deps Deps
}

func NewDeleteBlock(deps Deps) *DeleteBlock {
	return &DeleteBlock{deps: deps}
}

func (uc *DeleteBlock) Execute(ctx context.Context, who *actor.Actor, blockID uint) error {
	if who == nil {
		return httperr.ErrForbidden("actor_required")
	}

	b, err := uc.deps.Repo.GetBlock(ctx, blockID)
	if err != nil {
		return err
	}
	if _, err := who.ScopeBranch(b.BranchID); err != nil {
		return err
	}
	if !who.IsAdmin() && b.StaffID != who.ID {
		return httperr.ErrForbidden("staff_out_of_scope")
	}

	if err := uc.deps.Repo.DeleteBlock(ctx, blockID); err != nil {
		return err
	}

	uc.deps.Audit.Dispatch(audit.Event{
		BranchID: b.BranchID,
		StaffID:  actorID(who),
		Action:   "block_deleted",
		Entity:   "block",
		EntityID: &b.ID,
	})
	return nil
}

func actorID(who *actor.Actor) *uint {
	id := who.ID
	return &id
}
