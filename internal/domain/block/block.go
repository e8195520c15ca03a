package block

import (
	"errors"
	"fmt"
	"time"

	"github.com/BruksfildServices01/barbershop-scheduling/internal/domain/overlap"
	"github.com/BruksfildServices01/barbershop-scheduling/internal/domain/schedule"
)

type Kind string

const (
	KindFullDay       Kind = "full_day"
	KindHourRange     Kind = "hour_range"
	KindRecurringRest Kind = "recurring_rest"
)

func (k Kind) Valid() bool {
	switch k {
	case KindFullDay, KindHourRange, KindRecurringRest:
		return true
	}
	return false
}

// WeekdayMask guarda os dias da semana do descanso recorrente; bit i = time.Weekday(i).
type WeekdayMask uint8

func Weekdays(days ...time.Weekday) WeekdayMask {
	var m WeekdayMask
	for _, d := range days {
		if d >= time.Sunday && d <= time.Saturday {
			m |= 1 << uint(d)
		}
	}
	return m
}

func (m WeekdayMask) Has(d time.Weekday) bool {
	return d >= time.Sunday && d <= time.Saturday && m&(1<<uint(d)) != 0
}

// Days devolve o seletor como vetor de 7 posições (domingo primeiro).
func (m WeekdayMask) Days() [7]bool {
	var out [7]bool
	for d := time.Sunday; d <= time.Saturday; d++ {
		out[d] = m.Has(d)
	}
	return out
}

func MaskFromDays(days [7]bool) WeekdayMask {
	var m WeekdayMask
	for i, on := range days {
		if on {
			m |= 1 << uint(i)
		}
	}
	return m
}

// Block é uma indisponibilidade do profissional.
// Dia inteiro e faixa de horas têm Date; descanso recorrente tem Weekdays.
type Block struct {
	ID       uint
	StaffID  uint
	BranchID uint
	Kind     Kind
	Date     time.Time
	Start    *schedule.TimeOfDay
	End      *schedule.TimeOfDay
	Weekdays WeekdayMask
	Reason   string
}

func (b Block) Validate() error {
	if b.StaffID == 0 {
		return errors.New("block needs a staff member")
	}

	switch b.Kind {
	case KindFullDay:
		if b.Date.IsZero() {
			return errors.New("full-day block needs a date")
		}
		if b.Start != nil || b.End != nil {
			return errors.New("full-day block must not carry hours")
		}
	case KindHourRange:
		if b.Date.IsZero() {
			return errors.New("hour-range block needs a date")
		}
		if err := b.validateHours(); err != nil {
			return err
		}
	case KindRecurringRest:
		if b.Weekdays == 0 {
			return errors.New("recurring rest needs at least one weekday")
		}
		if err := b.validateHours(); err != nil {
			return err
		}
	default:
		return fmt.Errorf("unknown block kind %q", b.Kind)
	}
	return nil
}

func (b Block) validateHours() error {
	if b.Start == nil || b.End == nil {
		return errors.New("block needs start and end")
	}
	if *b.Start >= *b.End {
		return fmt.Errorf("block start %s must be before end %s", *b.Start, *b.End)
	}
	return nil
}

// AppliesTo resolve se o bloqueio vale para a data (mesmo dia civil ou
// dia da semana marcado no descanso recorrente).
func (b Block) AppliesTo(date time.Time) bool {
	if b.Kind == KindRecurringRest {
		return b.Weekdays.Has(date.Weekday())
	}
	return schedule.SameDay(b.Date, date)
}

func (b Block) IsFullDay() bool {
	return b.Kind == KindFullDay
}

// Interval devolve a faixa bloqueada; falso para bloqueio de dia inteiro.
func (b Block) Interval() (overlap.Interval, bool) {
	if b.IsFullDay() || b.Start == nil || b.End == nil {
		return overlap.Interval{}, false
	}
	return overlap.Interval{Start: *b.Start, Duration: int(*b.End - *b.Start)}, true
}
