package appointment

import (
	"context"

	"github.com/BruksfildServices01/barbershop-scheduling/internal/audit"
	"github.com/BruksfildServices01/barbershop-scheduling/internal/domain/actor"
	domain "github.com/BruksfildServices01/barbershop-scheduling/internal/domain/appointment"
)

// ChangeStatus confirma, conclui ou cancela um agendamento fora do quadro,
// com a mesma tabela de transições e escrita condicional.
type ChangeStatus struct {
	deps Deps
}

func NewChangeStatus(deps Deps) *ChangeStatus {
	return &ChangeStatus{deps: deps}
}

func (uc *ChangeStatus) Execute(
	ctx context.Context,
	who *actor.Actor,
	appointmentID uint,
	target domain.Status,
) (*domain.Appointment, error) {

	ap, err := uc.deps.Repo.GetAppointment(ctx, appointmentID)
	if err != nil {
		return nil, err
	}
	if err := authorize(who, ap); err != nil {
		return nil, err
	}

	branch, err := uc.deps.Repo.GetBranchByID(ctx, ap.BranchID)
	if err != nil {
		return nil, err
	}

	from := ap.Status
	now := uc.deps.now(branch)
	if err := domain.ApplyStatus(ap, target, now); err != nil {
		return nil, err
	}

	updated, err := uc.deps.Repo.UpdateAppointmentStatus(ctx, ap.ID, from, target, now)
	if err != nil {
		return nil, err
	}

	uc.deps.Audit.Dispatch(audit.Event{
		BranchID: updated.BranchID,
		StaffID:  actorID(who),
		Action:   "appointment_" + string(target),
		Entity:   "appointment",
		EntityID: &updated.ID,
		Metadata: map[string]any{"from": from},
	})

	return updated, nil
}
