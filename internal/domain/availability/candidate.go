package availability

import (
	"github.com/BruksfildServices01/barbershop-scheduling/internal/domain/overlap"
	"github.com/BruksfildServices01/barbershop-scheduling/internal/domain/schedule"
	"github.com/BruksfildServices01/barbershop-scheduling/internal/httperr"
)

// Candidate é um horário escolhido manualmente ou vindo de um slot.
type Candidate struct {
	Input
	Start schedule.TimeOfDay
	// ExcludeID ignora a própria ocupação numa edição.
	ExcludeID uint
	// EnforceLeadTime aplica a antecedência mínima (agendamento público).
	EnforceLeadTime bool
}

// Check é o veredito sobre um candidato. Err é a rejeição dura;
// Conflicts é só aviso de sobreposição com outros agendamentos.
type Check struct {
	Err       error
	Conflicts []overlap.Occupant
}

func (c Check) OK() bool {
	return c.Err == nil
}

func (c Check) HasOverlap() bool {
	return len(c.Conflicts) > 0
}

// CheckCandidate revalida um horário contra o estado atual. Dia fechado,
// bloqueio e fora do expediente rejeitam; sobreposição só avisa.
func (c *Calculator) CheckCandidate(cand Candidate, snap Snapshot) (Check, error) {
	if err := cand.Input.validate(); err != nil {
		return Check{}, err
	}
	if cand.Start < 0 || cand.Start.Add(cand.DurationMin) > schedule.MinutesPerDay {
		return Check{}, httperr.ErrValidation("invalid_time")
	}

	d, reason := c.resolveDay(cand.Input, snap, cand.EnforceLeadTime)
	switch reason {
	case ReasonFullDayBlock:
		return Check{Err: httperr.ErrClosedDay("staff_day_blocked")}, nil
	case ReasonClosed:
		return Check{Err: httperr.ErrClosedDay("closed_day")}, nil
	case ReasonPastDate, ReasonLeadTime:
		return Check{Err: httperr.ErrBusiness("appointment_in_past")}, nil
	}

	if d.hasFloor && cand.Start < d.floor {
		return Check{Err: httperr.ErrBusiness("appointment_in_past")}, nil
	}

	if !d.schedule.Contains(cand.Start, cand.DurationMin) {
		return Check{Err: httperr.ErrBusiness("outside_working_hours")}, nil
	}

	date := schedule.DateOf(cand.Date)
	iv := overlap.Interval{Start: cand.Start, Duration: cand.DurationMin}

	if overlap.AnyOverlap(iv, snap.Blocks.Intervals(cand.StaffID, date)) {
		return Check{Err: httperr.ErrBusiness("staff_time_blocked")}, nil
	}

	conflicts := overlap.Conflicts(iv, snap.occupants(), overlap.Scope{
		StaffID:   cand.StaffID,
		Date:      date,
		ExcludeID: cand.ExcludeID,
	})
	return Check{Conflicts: conflicts}, nil
}
