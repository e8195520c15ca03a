package appointment

import (
	"context"
	"strings"

	"github.com/BruksfildServices01/barbershop-scheduling/internal/audit"
	"github.com/BruksfildServices01/barbershop-scheduling/internal/domain/actor"
	domain "github.com/BruksfildServices01/barbershop-scheduling/internal/domain/appointment"
	"github.com/BruksfildServices01/barbershop-scheduling/internal/httperr"
	"github.com/BruksfildServices01/barbershop-scheduling/internal/metrics"
	"github.com/BruksfildServices01/barbershop-scheduling/internal/validators"
)

// ======================================================
// INPUT / OUTPUT
// ======================================================

// CreateAppointmentInput: Actor nil é o agendamento público pelo link
// da filial (sempre estrito e com antecedência mínima).
type CreateAppointmentInput struct {
	Actor    *actor.Actor
	BranchID uint
	StaffID  uint

	ClientName  string
	ClientPhone string
	ClientEmail string

	ServiceID uint

	Date  string
	Time  string
	Notes string

	PriceOverride *float64
	// Strict transforma o aviso de sobreposição em rejeição.
	Strict bool
}

type CreateAppointmentOutput struct {
	Appointment    *domain.Appointment
	OverlapWarning *OverlapWarning
}

// ======================================================
// USE CASE
// ======================================================

type CreateAppointment struct {
	deps Deps
}

func NewCreateAppointment(deps Deps) *CreateAppointment {
	return &CreateAppointment{deps: deps}
}

// ======================================================
// EXECUTE
// ======================================================

func (uc *CreateAppointment) Execute(
	ctx context.Context,
	in CreateAppointmentInput,
) (*CreateAppointmentOutput, error) {

	public := in.Actor == nil

	// --------------------------------------------------
	// 1️⃣ Entrada
	// --------------------------------------------------
	if strings.TrimSpace(in.ClientName) == "" {
		return nil, httperr.ErrValidation("missing_client_name")
	}
	phone := validators.NormalizePhone(in.ClientPhone)
	if public && phone == "" {
		return nil, httperr.ErrValidation("missing_client_phone")
	}
	if phone != "" && !validators.IsPhoneValid(phone) {
		return nil, httperr.ErrValidation("invalid_client_phone")
	}
	if !public && in.PriceOverride != nil && !in.Actor.IsAdmin() {
		return nil, httperr.ErrForbidden("price_override_admin_only")
	}
	if in.PriceOverride != nil && *in.PriceOverride < 0 {
		return nil, httperr.ErrValidation("invalid_price")
	}

	date, err := parseDate(in.Date)
	if err != nil {
		return nil, err
	}
	start, err := parseTime(in.Time)
	if err != nil {
		return nil, err
	}

	// --------------------------------------------------
	// 2️⃣ Filial / profissional / serviço
	// --------------------------------------------------
	branch, err := uc.deps.resolveBranch(ctx, in.Actor, in.BranchID)
	if err != nil {
		return nil, err
	}
	staffID, err := resolveStaffID(in.Actor, in.StaffID)
	if err != nil {
		return nil, err
	}
	svc, err := uc.deps.resolveService(ctx, branch.ID, in.ServiceID)
	if err != nil {
		return nil, err
	}
	if _, err := uc.deps.resolveStaff(ctx, branch.ID, staffID, svc.ID); err != nil {
		return nil, err
	}

	strict := in.Strict || uc.deps.Policy.StrictOverlap
	if public {
		strict = strict || uc.deps.Policy.PublicStrictOverlap
	}

	// --------------------------------------------------
	// 3️⃣ Lock (profissional, data) + revalidação
	// --------------------------------------------------
	unlock, err := uc.deps.Locker.Lock(ctx, domain.LockKey(staffID, date))
	if err != nil {
		metrics.IncBookingCommit("busy")
		return nil, err
	}
	defer unlock()

	chk, err := uc.deps.checkCandidate(ctx, branch, staffID, date, start, svc.DurationMin, 0, public)
	if err != nil {
		return nil, err
	}
	if !chk.OK() {
		metrics.IncBookingCommit("rejected")
		return nil, chk.Err
	}
	if chk.HasOverlap() && strict {
		metrics.IncBookingCommit("overlap")
		return nil, httperr.ErrOverlap("time_conflict")
	}

	// --------------------------------------------------
	// 4️⃣ Cliente (get or create)
	// --------------------------------------------------
	clientID, err := uc.deps.Repo.GetOrCreateClient(
		ctx,
		branch.ID,
		strings.TrimSpace(in.ClientName),
		phone,
		validators.NormalizeEmail(in.ClientEmail),
	)
	if err != nil {
		return nil, err
	}

	// --------------------------------------------------
	// 5️⃣ Criação (status inicial centralizado)
	// --------------------------------------------------
	ap := &domain.Appointment{
		BranchID:      branch.ID,
		StaffID:       staffID,
		ServiceID:     svc.ID,
		ServiceName:   svc.Name,
		ClientID:      clientID,
		ClientName:    strings.TrimSpace(in.ClientName),
		Date:          date,
		Start:         start,
		DurationMin:   svc.DurationMin,
		Status:        domain.InitialStatus(),
		Notes:         in.Notes,
		PriceOverride: in.PriceOverride,
	}

	if err := uc.deps.Repo.CreateAppointment(ctx, ap); err != nil {
		if httperr.IsConflict(err) {
			metrics.IncBookingCommit("conflict")
			return nil, httperr.ErrConflict("commit_conflict")
		}
		return nil, err
	}
	metrics.IncBookingCommit("created")

	out := &CreateAppointmentOutput{Appointment: ap}
	if chk.HasOverlap() {
		out.OverlapWarning = resultFromCheck(chk).OverlapWarning
		metrics.IncOverlapWarning()
		uc.deps.Log.Warn().
			Uint("appointment_id", ap.ID).
			Uints("overlaps", out.OverlapWarning.AppointmentIDs).
			Msg("appointment created over existing booking")
	}

	// --------------------------------------------------
	// 6️⃣ Auditoria
	// --------------------------------------------------
	action := "appointment_created"
	if public {
		action = "public_appointment_created"
	}
	uc.deps.Audit.Dispatch(audit.Event{
		BranchID: branch.ID,
		StaffID:  actorID(in.Actor),
		Action:   action,
		Entity:   "appointment",
		EntityID: &ap.ID,
		Metadata: map[string]any{
			"staff_id": staffID,
			"date":     in.Date,
			"time":     in.Time,
			"overlap":  chk.HasOverlap(),
		},
	})

	return out, nil
}
