// Package availability calcula os horários livres de um profissional numa data.
package availability

import (
	"sort"
	"time"

	"github.com/BruksfildServices01/barbershop-scheduling/internal/domain/appointment"
	"github.com/BruksfildServices01/barbershop-scheduling/internal/domain/block"
	"github.com/BruksfildServices01/barbershop-scheduling/internal/domain/overlap"
	"github.com/BruksfildServices01/barbershop-scheduling/internal/domain/schedule"
	"github.com/BruksfildServices01/barbershop-scheduling/internal/httperr"
	"github.com/BruksfildServices01/barbershop-scheduling/internal/timezone"
)

// DefaultLeadTime é a antecedência mínima para horários de hoje.
const DefaultLeadTime = 30 * time.Minute

// Reason explica uma lista vazia sem transformar o caso em erro.
type Reason string

const (
	ReasonFullDayBlock Reason = "full_day_block"
	ReasonClosed       Reason = "closed"
	ReasonPastDate     Reason = "past_date"
	ReasonLeadTime     Reason = "lead_time"
	ReasonFullyBooked  Reason = "fully_booked"
)

type Input struct {
	BranchID    uint
	StaffID     uint
	Date        time.Time
	DurationMin int
	// Location é o fuso da filial; nil usa UTC.
	Location *time.Location
}

func (in Input) validate() error {
	switch {
	case in.BranchID == 0:
		return httperr.ErrValidation("missing_branch")
	case in.StaffID == 0:
		return httperr.ErrValidation("missing_staff")
	case in.Date.IsZero():
		return httperr.ErrValidation("missing_date")
	case in.DurationMin <= 0:
		return httperr.ErrValidation("invalid_duration")
	}
	return nil
}

// Snapshot é a leitura consistente usada numa única consulta.
type Snapshot struct {
	Calendar     *schedule.Calendar
	Blocks       *block.Registry
	Appointments []appointment.Appointment
}

func (s Snapshot) occupants() []overlap.Occupant {
	return appointment.Occupants(s.Appointments)
}

type Policy struct {
	LeadTime time.Duration
}

type Result struct {
	Slots  []schedule.TimeOfDay
	Reason Reason
}

func (r Result) Empty() bool {
	return len(r.Slots) == 0
}

// Calculator não guarda estado entre chamadas; pode ser compartilhado.
type Calculator struct {
	clock  timezone.Clock
	policy Policy
}

func NewCalculator(clock timezone.Clock, policy Policy) *Calculator {
	if clock == nil {
		clock = timezone.SystemClock{}
	}
	if policy.LeadTime < 0 {
		policy.LeadTime = 0
	}
	return &Calculator{clock: clock, policy: policy}
}

func (c *Calculator) Policy() Policy {
	return c.policy
}

// day é o contexto resolvido de uma data: expediente e piso de antecedência.
type day struct {
	schedule schedule.DaySchedule
	floor    schedule.TimeOfDay
	hasFloor bool
}

// resolveDay aplica as regras que esvaziam o dia inteiro. Sem enforceTime
// datas passadas e antecedência não contam (lançamento manual).
func (c *Calculator) resolveDay(in Input, snap Snapshot, enforceTime bool) (day, Reason) {
	loc := in.Location
	if loc == nil {
		loc = time.UTC
	}
	now := c.clock.Now().In(loc)
	today := schedule.DateOf(now)
	date := schedule.DateOf(in.Date)

	if enforceTime && date.Before(today) {
		return day{}, ReasonPastDate
	}
	if snap.Blocks.FullDayBlocked(in.StaffID, date) {
		return day{}, ReasonFullDayBlock
	}

	ds, ok := snap.Calendar.ScheduleForDate(date)
	if !ok || !ds.Active {
		return day{}, ReasonClosed
	}

	d := day{schedule: ds}
	if enforceTime && date.Equal(today) {
		d.floor = schedule.TimeOfDayOf(now).Add(leadMinutes(c.policy.LeadTime))
		d.hasFloor = true
		if d.floor > ds.Close {
			return day{}, ReasonLeadTime
		}
	}
	return d, ""
}

func leadMinutes(d time.Duration) int {
	m := int(d / time.Minute)
	if d%time.Minute != 0 {
		m++
	}
	return m
}

// AvailableSlots devolve os inícios livres em ordem crescente. Lista vazia
// vem com Reason; erro só para entrada inválida.
func (c *Calculator) AvailableSlots(in Input, snap Snapshot) (Result, error) {
	if err := in.validate(); err != nil {
		return Result{}, err
	}

	d, reason := c.resolveDay(in, snap, true)
	if reason != "" {
		return Result{Reason: reason}, nil
	}

	date := schedule.DateOf(in.Date)
	dur := in.DurationMin
	occupied := snap.occupants()
	blocked := snap.Blocks.Intervals(in.StaffID, date)
	scope := overlap.Scope{StaffID: in.StaffID, Date: date}

	free := func(start schedule.TimeOfDay) bool {
		iv := overlap.Interval{Start: start, Duration: dur}
		return !overlap.IsOccupied(iv, occupied, scope) && !overlap.AnyOverlap(iv, blocked)
	}

	var (
		slots   []schedule.TimeOfDay
		emitted []overlap.Interval
		fits    bool
	)

	windows := d.schedule.Windows()
	for _, w := range windows {
		start := w.Start
		if d.hasFloor && d.floor > start {
			steps := (int(d.floor-start) + dur - 1) / dur
			start = start.Add(steps * dur)
		}

		for t := start; t.Add(dur) <= w.End; t = t.Add(dur) {
			fits = true
			if free(t) {
				slots = append(slots, t)
				emitted = append(emitted, overlap.Interval{Start: t, Duration: dur})
			}
		}
	}

	// Último horário teórico do dia, mesmo fora do passo da grade.
	if len(windows) > 0 {
		last := windows[len(windows)-1]
		tail := last.End.Add(-dur)
		tailIv := overlap.Interval{Start: tail, Duration: dur}
		if tail >= last.Start &&
			(!d.hasFloor || tail >= d.floor) &&
			!overlap.AnyOverlap(tailIv, emitted) {
			fits = true
			if free(tail) {
				slots = append(slots, tail)
			}
		}
	}

	sort.Slice(slots, func(i, j int) bool { return slots[i] < slots[j] })

	if len(slots) == 0 {
		if d.hasFloor && !fits {
			return Result{Reason: ReasonLeadTime}, nil
		}
		return Result{Reason: ReasonFullyBooked}, nil
	}
	return Result{Slots: slots}, nil
}
