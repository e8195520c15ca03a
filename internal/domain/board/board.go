// Package board mantém o quadro de status (coluna → agendamentos em ordem).
package board

import (
	"github.com/BruksfildServices01/barbershop-scheduling/internal/domain/appointment"
)

// Columns na ordem de exibição.
var Columns = []appointment.Status{
	appointment.StatusPending,
	appointment.StatusConfirmed,
	appointment.StatusCompleted,
	appointment.StatusCancelled,
}

// ColumnFor agrupa "modified" em pendentes: precisa ser reconfirmado.
func ColumnFor(s appointment.Status) appointment.Status {
	if s == appointment.StatusModified {
		return appointment.StatusPending
	}
	return s
}

func IsColumn(s appointment.Status) bool {
	for _, c := range Columns {
		if c == s {
			return true
		}
	}
	return false
}

// Board não é seguro para uso concorrente; quem muta é o Manager.
type Board struct {
	columns map[appointment.Status][]appointment.Appointment
}

func New(apps []appointment.Appointment) *Board {
	b := &Board{columns: make(map[appointment.Status][]appointment.Appointment, len(Columns))}
	for _, c := range Columns {
		b.columns[c] = nil
	}
	for _, ap := range apps {
		col := ColumnFor(ap.Status)
		if !IsColumn(col) {
			continue
		}
		b.columns[col] = append(b.columns[col], ap)
	}
	return b
}

// Column devolve uma cópia da coluna.
func (b *Board) Column(s appointment.Status) []appointment.Appointment {
	src := b.columns[s]
	out := make([]appointment.Appointment, len(src))
	copy(out, src)
	return out
}

// Snapshot resume o agrupamento em IDs; usado para comparar estados.
func (b *Board) Snapshot() map[appointment.Status][]uint {
	out := make(map[appointment.Status][]uint, len(Columns))
	for _, c := range Columns {
		ids := make([]uint, 0, len(b.columns[c]))
		for _, ap := range b.columns[c] {
			ids = append(ids, ap.ID)
		}
		out[c] = ids
	}
	return out
}

func (b *Board) Locate(id uint) (appointment.Status, int, bool) {
	for _, c := range Columns {
		for i, ap := range b.columns[c] {
			if ap.ID == id {
				return c, i, true
			}
		}
	}
	return "", -1, false
}

func (b *Board) get(col appointment.Status, idx int) appointment.Appointment {
	return b.columns[col][idx]
}

func (b *Board) remove(col appointment.Status, idx int) appointment.Appointment {
	items := b.columns[col]
	ap := items[idx]
	b.columns[col] = append(items[:idx:idx], items[idx+1:]...)
	return ap
}

// insert coloca na posição; fora do intervalo (ou negativa) vai para o fim.
func (b *Board) insert(col appointment.Status, idx int, ap appointment.Appointment) int {
	items := b.columns[col]
	if idx < 0 || idx > len(items) {
		idx = len(items)
	}
	items = append(items, appointment.Appointment{})
	copy(items[idx+1:], items[idx:])
	items[idx] = ap
	b.columns[col] = items
	return idx
}

func (b *Board) replace(col appointment.Status, idx int, ap appointment.Appointment) {
	b.columns[col][idx] = ap
}
