// Package overlap decide sobreposição de intervalos meio-abertos [início, fim).
package overlap

import (
	"time"

	"github.com/BruksfildServices01/barbershop-scheduling/internal/domain/schedule"
)

type Interval struct {
	Start    schedule.TimeOfDay
	Duration int
}

func (i Interval) End() schedule.TimeOfDay {
	return i.Start.Add(i.Duration)
}

// Overlaps: [s1, s1+d1) e [s2, s2+d2) se cruzam sse s1 < s2+d2 && s2 < s1+d1.
// Horários encostados (fim == início) não contam, e intervalo vazio nunca ocupa.
func Overlaps(a, b Interval) bool {
	if a.Duration <= 0 || b.Duration <= 0 {
		return false
	}
	return a.Start < b.End() && b.Start < a.End()
}

// Contains indica se o instante t está dentro de [Start, End).
func (i Interval) Contains(t schedule.TimeOfDay) bool {
	return t >= i.Start && t < i.End()
}

// Occupant é uma ocupação de agenda de um profissional numa data.
type Occupant struct {
	ID      uint
	StaffID uint
	Date    time.Time
	Interval
}

// Scope filtra as ocupações antes do teste. ExcludeID remove a própria
// ocupação numa edição.
type Scope struct {
	StaffID   uint
	Date      time.Time
	ExcludeID uint
}

func (s Scope) includes(o Occupant) bool {
	if o.StaffID != s.StaffID || !schedule.SameDay(o.Date, s.Date) {
		return false
	}
	return s.ExcludeID == 0 || o.ID != s.ExcludeID
}

func IsOccupied(candidate Interval, occupied []Occupant, scope Scope) bool {
	for _, o := range occupied {
		if scope.includes(o) && Overlaps(candidate, o.Interval) {
			return true
		}
	}
	return false
}

// Conflicts devolve as ocupações que cruzam o candidato, na ordem recebida.
func Conflicts(candidate Interval, occupied []Occupant, scope Scope) []Occupant {
	var out []Occupant
	for _, o := range occupied {
		if scope.includes(o) && Overlaps(candidate, o.Interval) {
			out = append(out, o)
		}
	}
	return out
}

// AnyOverlap testa contra intervalos já filtrados (bloqueios do dia, slots emitidos).
func AnyOverlap(candidate Interval, intervals []Interval) bool {
	for _, iv := range intervals {
		if Overlaps(candidate, iv) {
			return true
		}
	}
	return false
}
