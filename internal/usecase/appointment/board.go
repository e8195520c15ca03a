package appointment

import (
	"context"
	"time"

	"github.com/BruksfildServices01/barbershop-scheduling/internal/audit"
	"github.com/BruksfildServices01/barbershop-scheduling/internal/domain/actor"
	domain "github.com/BruksfildServices01/barbershop-scheduling/internal/domain/appointment"
	"github.com/BruksfildServices01/barbershop-scheduling/internal/domain/block"
	"github.com/BruksfildServices01/barbershop-scheduling/internal/domain/board"
	"github.com/BruksfildServices01/barbershop-scheduling/internal/httperr"
	"github.com/BruksfildServices01/barbershop-scheduling/internal/metrics"
)

// ======================================================
// ADAPTERS
// ======================================================

// storeLoader relê o quadro de uma filial/data (e profissional, se houver).
type storeLoader struct {
	repo   domain.AppointmentStore
	filter domain.Filter
}

func (l storeLoader) LoadBoard(ctx context.Context) ([]domain.Appointment, error) {
	return l.repo.ListAppointments(ctx, l.filter)
}

type storeBlocks struct {
	repo domain.BlockStore
}

func (s storeBlocks) BlocksFor(ctx context.Context, staffID uint, date time.Time) (*block.Registry, error) {
	blocks, err := s.repo.ListBlocks(ctx, staffID, date, date.AddDate(0, 0, 1))
	if err != nil {
		return nil, err
	}
	return block.NewRegistry(blocks), nil
}

// ======================================================
// INPUT / OUTPUT
// ======================================================

type BoardInput struct {
	Actor    *actor.Actor
	BranchID uint
	// StaffID 0 (admin) mostra a filial inteira.
	StaffID uint
	Date    string
}

type BoardOutput struct {
	Date    time.Time
	Columns map[domain.Status][]domain.Appointment
}

type MoveStatusInput struct {
	BoardInput
	AppointmentID uint
	Target        string
	// Position na coluna de destino; negativa = fim.
	Position int
}

type MoveStatusOutput struct {
	Result board.MoveResult
	Board  BoardOutput
}

// ======================================================
// GET BOARD
// ======================================================

type GetBoard struct {
	deps Deps
}

func NewGetBoard(deps Deps) *GetBoard {
	return &GetBoard{deps: deps}
}

func (uc *GetBoard) Execute(ctx context.Context, in BoardInput) (*BoardOutput, error) {
	date, loader, err := uc.deps.boardLoader(in)
	if err != nil {
		return nil, err
	}

	apps, err := loader.LoadBoard(ctx)
	if err != nil {
		return nil, err
	}

	b := board.New(apps)
	cols := make(map[domain.Status][]domain.Appointment, len(board.Columns))
	for _, c := range board.Columns {
		cols[c] = b.Column(c)
	}
	return &BoardOutput{Date: date, Columns: cols}, nil
}

// boardLoader resolve o escopo do ator e monta o filtro do quadro.
func (d Deps) boardLoader(in BoardInput) (time.Time, storeLoader, error) {
	if in.Actor == nil {
		return time.Time{}, storeLoader{}, httperr.ErrForbidden("actor_required")
	}

	date, err := parseDate(in.Date)
	if err != nil {
		return time.Time{}, storeLoader{}, err
	}

	branchID, err := in.Actor.ScopeBranch(in.BranchID)
	if err != nil {
		return time.Time{}, storeLoader{}, err
	}

	f := domain.Filter{BranchID: &branchID, Date: &date}
	if !in.Actor.IsAdmin() || in.StaffID != 0 {
		staffID, err := in.Actor.ScopeStaff(in.StaffID)
		if err != nil {
			return time.Time{}, storeLoader{}, err
		}
		f.StaffID = &staffID
	}

	return date, storeLoader{repo: d.Repo, filter: f}, nil
}

// ======================================================
// MOVE STATUS
// ======================================================

type MoveStatus struct {
	deps Deps
}

func NewMoveStatus(deps Deps) *MoveStatus {
	return &MoveStatus{deps: deps}
}

// Execute carrega o quadro durável, aplica o movimento pelo Manager
// (otimista, grava, reconcilia ou desfaz) e devolve o quadro resultante.
func (uc *MoveStatus) Execute(ctx context.Context, in MoveStatusInput) (*MoveStatusOutput, error) {
	target, err := domain.ParseStatus(in.Target)
	if err != nil {
		return nil, err
	}

	date, loader, err := uc.deps.boardLoader(in.BoardInput)
	if err != nil {
		return nil, err
	}

	apps, err := loader.LoadBoard(ctx)
	if err != nil {
		return nil, err
	}

	mgr := board.NewManager(
		board.New(apps),
		uc.deps.Repo,
		loader,
		storeBlocks{repo: uc.deps.Repo},
		uc.deps.clock(),
		uc.deps.Log,
	)

	res, err := mgr.ApplyStatusMove(ctx, in.AppointmentID, target, in.Position)
	metrics.IncBoardMove(moveOutcome(res, err))

	out := &MoveStatusOutput{
		Result: res,
		Board:  BoardOutput{Date: date, Columns: mgr.Columns()},
	}

	if err != nil {
		if res.RolledBack && httperr.IsConflict(err) {
			return out, httperr.ErrConflict("commit_conflict")
		}
		return out, err
	}

	if res.Committed {
		var branchID uint
		if loader.filter.BranchID != nil {
			branchID = *loader.filter.BranchID
		}
		uc.deps.Audit.Dispatch(audit.Event{
			BranchID: branchID,
			StaffID:  actorID(in.Actor),
			Action:   "appointment_moved",
			Entity:   "appointment",
			EntityID: &in.AppointmentID,
			Metadata: map[string]any{"to": target},
		})
	}

	return out, nil
}

func moveOutcome(res board.MoveResult, err error) string {
	switch {
	case res.RolledBack:
		return "rolled_back"
	case err != nil:
		return "rejected"
	case res.Committed:
		return "committed"
	default:
		return "reorder"
	}
}
