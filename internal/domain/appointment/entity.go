package appointment

import (
	"time"

	"github.com/BruksfildServices01/barbershop-scheduling/internal/domain/overlap"
	"github.com/BruksfildServices01/barbershop-scheduling/internal/domain/schedule"
	"github.com/BruksfildServices01/barbershop-scheduling/internal/httperr"
)

// Appointment é o valor de domínio; a duração é copiada do serviço na criação.
type Appointment struct {
	ID            uint
	BranchID      uint
	StaffID       uint
	ServiceID     uint
	ServiceName   string
	ClientID      uint
	ClientName    string
	Date          time.Time
	Start         schedule.TimeOfDay
	DurationMin   int
	Status        Status
	Notes         string
	PriceOverride *float64
	CancelledAt   *time.Time
	CompletedAt   *time.Time
}

func (a Appointment) Interval() overlap.Interval {
	return overlap.Interval{Start: a.Start, Duration: a.DurationMin}
}

func (a Appointment) End() schedule.TimeOfDay {
	return a.Start.Add(a.DurationMin)
}

func (a Appointment) Occupant() overlap.Occupant {
	return overlap.Occupant{
		ID:       a.ID,
		StaffID:  a.StaffID,
		Date:     a.Date,
		Interval: a.Interval(),
	}
}

// Occupants converte só os agendamentos que ainda ocupam horário.
func Occupants(apps []Appointment) []overlap.Occupant {
	out := make([]overlap.Occupant, 0, len(apps))
	for _, a := range apps {
		if a.Status.Occupies() {
			out = append(out, a.Occupant())
		}
	}
	return out
}

// ===============================
// Domain Actions
// ===============================

// ApplyStatus valida a transição e carimba os horários de conclusão/cancelamento.
func ApplyStatus(ap *Appointment, to Status, now time.Time) error {
	if err := CanTransition(ap.Status, to); err != nil {
		return err
	}
	stamp(ap, to, now)
	return nil
}

func stamp(ap *Appointment, to Status, now time.Time) {
	ap.Status = to
	switch to {
	case StatusCancelled:
		ap.CancelledAt = &now
	case StatusCompleted:
		ap.CompletedAt = &now
	}
}

func Cancel(ap *Appointment, now time.Time) error {
	return ApplyStatus(ap, StatusCancelled, now)
}

func Complete(ap *Appointment, now time.Time) error {
	return ApplyStatus(ap, StatusCompleted, now)
}

func Confirm(ap *Appointment, now time.Time) error {
	return ApplyStatus(ap, StatusConfirmed, now)
}

// Changes é uma edição parcial. Status explícito é exclusivo do admin.
type Changes struct {
	Date          *time.Time
	Start         *schedule.TimeOfDay
	StaffID       *uint
	ServiceID     *uint
	ServiceName   *string
	DurationMin   *int
	Notes         *string
	PriceOverride *float64
	Status        *Status
}

// TouchesSchedule indica se a edição mexe no horário ocupado.
func (c Changes) TouchesSchedule() bool {
	return c.Date != nil || c.Start != nil || c.StaffID != nil || c.DurationMin != nil
}

// ApplyEdit aplica a edição e devolve se campos centrais mudaram. Pendentes e
// confirmados editados viram "modified", salvo cancelamento explícito.
func ApplyEdit(ap *Appointment, c Changes, now time.Time) (bool, error) {
	if ap.Status.Terminal() && c.Status == nil {
		return false, httperr.ErrBusiness("invalid_state")
	}
	if c.DurationMin != nil && *c.DurationMin <= 0 {
		return false, httperr.ErrValidation("invalid_duration")
	}

	core := false
	if c.Date != nil && !schedule.SameDay(*c.Date, ap.Date) {
		ap.Date = schedule.DateOf(*c.Date)
		core = true
	}
	if c.Start != nil && *c.Start != ap.Start {
		ap.Start = *c.Start
		core = true
	}
	if c.StaffID != nil && *c.StaffID != ap.StaffID {
		ap.StaffID = *c.StaffID
		core = true
	}
	if c.ServiceID != nil && *c.ServiceID != ap.ServiceID {
		ap.ServiceID = *c.ServiceID
		core = true
	}
	if c.ServiceName != nil {
		ap.ServiceName = *c.ServiceName
	}
	if c.DurationMin != nil && *c.DurationMin != ap.DurationMin {
		ap.DurationMin = *c.DurationMin
		core = true
	}
	if c.Notes != nil {
		ap.Notes = *c.Notes
	}
	if c.PriceOverride != nil {
		ap.PriceOverride = c.PriceOverride
	}

	if c.Status != nil {
		if !c.Status.Valid() {
			return core, httperr.ErrValidation("invalid_status")
		}
		if *c.Status != ap.Status {
			stamp(ap, *c.Status, now)
		}
		return core, nil
	}

	if core && (ap.Status == StatusPending || ap.Status == StatusConfirmed) {
		ap.Status = StatusModified
	}
	return core, nil
}
