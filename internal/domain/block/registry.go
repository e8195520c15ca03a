package block

import (
	"sort"
	"time"

	"github.com/BruksfildServices01/barbershop-scheduling/internal/domain/overlap"
)

// Registry resolve os bloqueios efetivos de um profissional numa data.
type Registry struct {
	blocks []Block
}

func NewRegistry(blocks []Block) *Registry {
	cp := make([]Block, len(blocks))
	copy(cp, blocks)
	return &Registry{blocks: cp}
}

// BlocksFor: bloqueios datados do dia + descansos recorrentes do dia da semana.
// Dia inteiro vem primeiro; o resto por horário de início.
func (r *Registry) BlocksFor(staffID uint, date time.Time) []Block {
	if r == nil {
		return nil
	}

	var out []Block
	for _, b := range r.blocks {
		if b.StaffID == staffID && b.AppliesTo(date) {
			out = append(out, b)
		}
	}

	sort.SliceStable(out, func(i, j int) bool {
		if out[i].IsFullDay() != out[j].IsFullDay() {
			return out[i].IsFullDay()
		}
		si, _ := out[i].Interval()
		sj, _ := out[j].Interval()
		return si.Start < sj.Start
	})
	return out
}

func (r *Registry) FullDayBlocked(staffID uint, date time.Time) bool {
	for _, b := range r.BlocksFor(staffID, date) {
		if b.IsFullDay() {
			return true
		}
	}
	return false
}

func (r *Registry) Intervals(staffID uint, date time.Time) []overlap.Interval {
	var out []overlap.Interval
	for _, b := range r.BlocksFor(staffID, date) {
		if iv, ok := b.Interval(); ok {
			out = append(out, iv)
		}
	}
	return out
}

// BlockAt devolve o bloqueio de faixa que contém o horário, se houver.
func (r *Registry) BlockAt(staffID uint, date time.Time, iv overlap.Interval) (Block, bool) {
	for _, b := range r.BlocksFor(staffID, date) {
		if biv, ok := b.Interval(); ok && biv.Contains(iv.Start) {
			return b, true
		}
	}
	return Block{}, false
}
