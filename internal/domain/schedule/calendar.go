package schedule

import (
	"errors"
	"fmt"
	"sort"
	"time"
)

// DaySchedule é o expediente de uma filial num dia da semana
// (0=domingo, mesma numeração de time.Weekday em todo o sistema).
type DaySchedule struct {
	Weekday    time.Weekday
	Active     bool
	Open       TimeOfDay
	Close      TimeOfDay
	LunchStart *TimeOfDay
	LunchEnd   *TimeOfDay
}

// Window é um intervalo aberto à direita [Start, End).
type Window struct {
	Start TimeOfDay
	End   TimeOfDay
}

func (w Window) Minutes() int {
	return int(w.End - w.Start)
}

func (d DaySchedule) HasLunch() bool {
	return d.LunchStart != nil && d.LunchEnd != nil
}

func (d DaySchedule) Validate() error {
	if d.Weekday < time.Sunday || d.Weekday > time.Saturday {
		return fmt.Errorf("weekday %d out of range", d.Weekday)
	}
	if d.Open < 0 || d.Close > MinutesPerDay {
		return errors.New("opening hours out of range")
	}
	if d.Open >= d.Close {
		return fmt.Errorf("open %s must be before close %s", d.Open, d.Close)
	}
	if (d.LunchStart == nil) != (d.LunchEnd == nil) {
		return errors.New("lunch window needs both start and end")
	}
	if d.HasLunch() {
		ls, le := *d.LunchStart, *d.LunchEnd
		if ls >= le {
			return fmt.Errorf("lunch start %s must be before lunch end %s", ls, le)
		}
		if ls < d.Open || ls >= d.Close || le >= d.Close {
			return errors.New("lunch window must lie within opening hours")
		}
	}
	return nil
}

// Windows divide o expediente pelo almoço. Janelas vazias nunca são emitidas.
func (d DaySchedule) Windows() []Window {
	if !d.HasLunch() {
		return []Window{{Start: d.Open, End: d.Close}}
	}

	out := make([]Window, 0, 2)
	for _, w := range []Window{
		{Start: d.Open, End: *d.LunchStart},
		{Start: *d.LunchEnd, End: d.Close},
	} {
		if w.End > w.Start {
			out = append(out, w)
		}
	}
	return out
}

// Contains indica se [start, start+minutes) cabe inteiro numa janela de trabalho.
func (d DaySchedule) Contains(start TimeOfDay, minutes int) bool {
	end := start.Add(minutes)
	for _, w := range d.Windows() {
		if start >= w.Start && end <= w.End {
			return true
		}
	}
	return false
}

// Calendar resolve o expediente ativo de uma filial por dia da semana.
type Calendar struct {
	days map[time.Weekday]DaySchedule
}

// NewCalendar valida os expedientes; no máximo um ativo por dia da semana.
func NewCalendar(schedules []DaySchedule) (*Calendar, error) {
	c := &Calendar{days: make(map[time.Weekday]DaySchedule, 7)}

	for _, ds := range schedules {
		if !ds.Active {
			continue
		}
		if err := ds.Validate(); err != nil {
			return nil, fmt.Errorf("weekday %d: %w", ds.Weekday, err)
		}
		if _, dup := c.days[ds.Weekday]; dup {
			return nil, fmt.Errorf("weekday %d: more than one active schedule", ds.Weekday)
		}
		c.days[ds.Weekday] = ds
	}

	return c, nil
}

func (c *Calendar) ScheduleFor(weekday time.Weekday) (DaySchedule, bool) {
	if c == nil {
		return DaySchedule{}, false
	}
	ds, ok := c.days[weekday]
	return ds, ok
}

func (c *Calendar) ScheduleForDate(date time.Time) (DaySchedule, bool) {
	return c.ScheduleFor(date.Weekday())
}

// Days devolve os expedientes ativos ordenados por dia da semana.
func (c *Calendar) Days() []DaySchedule {
	out := make([]DaySchedule, 0, len(c.days))
	for _, ds := range c.days {
		out = append(out, ds)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Weekday < out[j].Weekday })
	return out
}
