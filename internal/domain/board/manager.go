package board

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/BruksfildServices01/barbershop-scheduling/internal/domain/appointment"
	"github.com/BruksfildServices01/barbershop-scheduling/internal/domain/block"
	"github.com/BruksfildServices01/barbershop-scheduling/internal/httperr"
	"github.com/BruksfildServices01/barbershop-scheduling/internal/timezone"
)

// Committer grava a transição; deve falhar se o status remoto já não for from.
type Committer interface {
	UpdateAppointmentStatus(
		ctx context.Context,
		id uint,
		from appointment.Status,
		to appointment.Status,
		now time.Time,
	) (*appointment.Appointment, error)
}

// Loader relê o estado durável do quadro.
type Loader interface {
	LoadBoard(ctx context.Context) ([]appointment.Appointment, error)
}

// BlockSource resolve os bloqueios de um profissional numa data.
type BlockSource interface {
	BlocksFor(ctx context.Context, staffID uint, date time.Time) (*block.Registry, error)
}

type MoveResult struct {
	Applied    bool
	Committed  bool
	RolledBack bool
}

// Manager é o único que muta o Board: aplica local, grava remoto e
// reconcilia ou desfaz.
type Manager struct {
	mu       sync.Mutex
	board    *Board
	inFlight map[uint]struct{}

	committer Committer
	loader    Loader
	blocks    BlockSource
	clock     timezone.Clock
	log       zerolog.Logger
}

func NewManager(
	board *Board,
	committer Committer,
	loader Loader,
	blocks BlockSource,
	clock timezone.Clock,
	log zerolog.Logger,
) *Manager {
	if board == nil {
		board = New(nil)
	}
	if clock == nil {
		clock = timezone.SystemClock{}
	}
	return &Manager{
		board:     board,
		inFlight:  make(map[uint]struct{}),
		committer: committer,
		loader:    loader,
		blocks:    blocks,
		clock:     clock,
		log:       log,
	}
}

// Snapshot devolve o agrupamento atual em IDs.
func (m *Manager) Snapshot() map[appointment.Status][]uint {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.board.Snapshot()
}

// Columns devolve uma cópia das colunas.
func (m *Manager) Columns() map[appointment.Status][]appointment.Appointment {
	m.mu.Lock()
	defer m.mu.Unlock()

	out := make(map[appointment.Status][]appointment.Appointment, len(Columns))
	for _, c := range Columns {
		out[c] = m.board.Column(c)
	}
	return out
}

// ApplyStatusMove move o agendamento para a coluna target na posição dada
// (negativa = fim). Mesma coluna só reordena, sem gravação remota.
func (m *Manager) ApplyStatusMove(
	ctx context.Context,
	id uint,
	target appointment.Status,
	position int,
) (MoveResult, error) {

	if !IsColumn(target) {
		return MoveResult{}, httperr.ErrValidation("invalid_status")
	}

	// ===============================
	// RESOLVE SOURCE
	// ===============================
	m.mu.Lock()
	src, idx, ok := m.board.Locate(id)
	if !ok {
		m.mu.Unlock()
		return MoveResult{}, httperr.ErrNotFound("appointment_not_found")
	}
	if _, busy := m.inFlight[id]; busy {
		m.mu.Unlock()
		return MoveResult{}, httperr.ErrConflict("move_in_flight")
	}

	if src == target {
		ap := m.board.remove(src, idx)
		m.board.insert(src, position, ap)
		m.mu.Unlock()
		return MoveResult{Applied: true}, nil
	}

	current := m.board.get(src, idx)
	m.mu.Unlock()

	if err := appointment.CanTransition(current.Status, target); err != nil {
		return MoveResult{}, err
	}

	// ===============================
	// BLOCK CHECKS
	// ===============================
	// Cancelar libera o horário, então vale mesmo em dia bloqueado.
	if target != appointment.StatusCancelled {
		if err := m.checkBlocks(ctx, current); err != nil {
			return MoveResult{}, err
		}
	}

	// ===============================
	// OPTIMISTIC APPLY
	// ===============================
	m.mu.Lock()
	src, idx, ok = m.board.Locate(id)
	if !ok {
		m.mu.Unlock()
		return MoveResult{}, httperr.ErrNotFound("appointment_not_found")
	}
	if _, busy := m.inFlight[id]; busy {
		m.mu.Unlock()
		return MoveResult{}, httperr.ErrConflict("move_in_flight")
	}

	prior := m.board.remove(src, idx)
	moved := prior
	moved.Status = target
	m.board.insert(target, position, moved)
	m.inFlight[id] = struct{}{}
	m.mu.Unlock()

	// ===============================
	// REMOTE COMMIT
	// ===============================
	updated, err := m.committer.UpdateAppointmentStatus(ctx, id, prior.Status, target, m.clock.Now())
	if err != nil {
		m.rollback(id, src, idx, prior)
		m.log.Warn().
			Err(err).
			Uint("appointment_id", id).
			Str("from", string(prior.Status)).
			Str("to", string(target)).
			Msg("board move rolled back")
		return MoveResult{Applied: true, RolledBack: true}, err
	}

	// ===============================
	// RECONCILE
	// ===============================
	m.mu.Lock()
	delete(m.inFlight, id)
	if col, at, found := m.board.Locate(id); found && updated != nil {
		if ColumnFor(updated.Status) == col {
			m.board.replace(col, at, *updated)
		} else {
			m.board.remove(col, at)
			m.board.insert(ColumnFor(updated.Status), -1, *updated)
		}
	}
	pending := len(m.inFlight)
	m.mu.Unlock()

	if pending == 0 && m.loader != nil {
		if err := m.Refresh(ctx); err != nil {
			m.log.Warn().Err(err).Uint("appointment_id", id).Msg("board refresh after move failed")
		}
	}

	return MoveResult{Applied: true, Committed: true}, nil
}

func (m *Manager) checkBlocks(ctx context.Context, ap appointment.Appointment) error {
	if m.blocks == nil {
		return nil
	}

	reg, err := m.blocks.BlocksFor(ctx, ap.StaffID, ap.Date)
	if err != nil {
		return err
	}
	if reg.FullDayBlocked(ap.StaffID, ap.Date) {
		return httperr.ErrBusiness("staff_day_blocked")
	}
	if _, hit := reg.BlockAt(ap.StaffID, ap.Date, ap.Interval()); hit {
		return httperr.ErrBusiness("staff_time_blocked")
	}
	return nil
}

// rollback devolve o item à coluna de origem, na posição anterior,
// com o status anterior.
func (m *Manager) rollback(id uint, src appointment.Status, idx int, prior appointment.Appointment) {
	m.mu.Lock()
	defer m.mu.Unlock()

	delete(m.inFlight, id)
	if col, at, found := m.board.Locate(id); found {
		m.board.remove(col, at)
	}
	m.board.insert(src, idx, prior)
}

// Refresh substitui o quadro pelo estado durável. Não roda com
// movimentos pendentes para não apagar um apply ainda sem resposta.
func (m *Manager) Refresh(ctx context.Context) error {
	if m.loader == nil {
		return nil
	}

	apps, err := m.loader.LoadBoard(ctx)
	if err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if len(m.inFlight) > 0 {
		return httperr.ErrConflict("move_in_flight")
	}
	m.board = New(apps)
	return nil
}
