package appointment

import (
	"context"
	"errors"
	"time"

	"github.com/BruksfildServices01/barbershop-scheduling/internal/domain/actor"
	"github.com/BruksfildServices01/barbershop-scheduling/internal/domain/availability"
	"github.com/BruksfildServices01/barbershop-scheduling/internal/domain/schedule"
	"github.com/BruksfildServices01/barbershop-scheduling/internal/domain/shop"
	"github.com/BruksfildServices01/barbershop-scheduling/internal/httperr"
	"github.com/BruksfildServices01/barbershop-scheduling/internal/timezone"
)

// ======================================================
// INPUT / OUTPUT
// ======================================================

type CandidateInput struct {
	Actor       *actor.Actor
	BranchID    uint
	StaffID     uint
	ServiceID   uint
	DurationMin int
	Date        string
	Time        string
	// ExcludeID ignora o próprio agendamento ao validar uma edição.
	ExcludeID       uint
	EnforceLeadTime bool
}

// OverlapWarning lista os agendamentos que o candidato cruza.
type OverlapWarning struct {
	AppointmentIDs []uint
}

type CandidateResult struct {
	OK             bool
	Reason         string
	OverlapWarning *OverlapWarning
}

// ======================================================
// USE CASE
// ======================================================

type ValidateBookingCandidate struct {
	deps Deps
}

func NewValidateBookingCandidate(deps Deps) *ValidateBookingCandidate {
	return &ValidateBookingCandidate{deps: deps}
}

// Execute não grava nada; rejeição de negócio vem em Reason, não em erro.
func (uc *ValidateBookingCandidate) Execute(
	ctx context.Context,
	in CandidateInput,
) (*CandidateResult, error) {

	date, err := parseDate(in.Date)
	if err != nil {
		return nil, err
	}
	start, err := parseTime(in.Time)
	if err != nil {
		return nil, err
	}

	branch, err := uc.deps.resolveBranch(ctx, in.Actor, in.BranchID)
	if err != nil {
		return nil, err
	}
	staffID, err := resolveStaffID(in.Actor, in.StaffID)
	if err != nil {
		return nil, err
	}

	duration := in.DurationMin
	if in.ServiceID != 0 {
		svc, err := uc.deps.resolveService(ctx, branch.ID, in.ServiceID)
		if err != nil {
			return nil, err
		}
		duration = svc.DurationMin
	}

	if _, err := uc.deps.resolveStaff(ctx, branch.ID, staffID, in.ServiceID); err != nil {
		return candidateRejection(err)
	}

	chk, err := uc.deps.checkCandidate(ctx, branch, staffID, date, start, duration, in.ExcludeID, in.EnforceLeadTime)
	if err != nil {
		return nil, err
	}
	if !chk.OK() {
		return candidateRejection(chk.Err)
	}

	return resultFromCheck(chk), nil
}

// checkCandidate relê o estado atual e revalida o horário.
func (d Deps) checkCandidate(
	ctx context.Context,
	branch *shop.Branch,
	staffID uint,
	date time.Time,
	start schedule.TimeOfDay,
	duration int,
	excludeID uint,
	enforceLead bool,
) (availability.Check, error) {

	snap, err := d.snapshot(ctx, branch.ID, staffID, date)
	if err != nil {
		return availability.Check{}, err
	}

	return d.calculator(branch).CheckCandidate(availability.Candidate{
		Input: availability.Input{
			BranchID:    branch.ID,
			StaffID:     staffID,
			Date:        date,
			DurationMin: duration,
			Location:    timezone.Location(branch.Timezone),
		},
		Start:           start,
		ExcludeID:       excludeID,
		EnforceLeadTime: enforceLead,
	}, snap)
}

func resultFromCheck(chk availability.Check) *CandidateResult {
	out := &CandidateResult{OK: true}
	if chk.HasOverlap() {
		ids := make([]uint, 0, len(chk.Conflicts))
		for _, c := range chk.Conflicts {
			ids = append(ids, c.ID)
		}
		out.OverlapWarning = &OverlapWarning{AppointmentIDs: ids}
	}
	return out
}

func candidateRejection(err error) (*CandidateResult, error) {
	var be httperr.BusinessError
	if errors.As(err, &be) && be.Kind != httperr.KindNotFound {
		return &CandidateResult{OK: false, Reason: be.Code}, nil
	}
	return nil, err
}
