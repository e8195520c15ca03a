package repository

import (
	"context"
	"sort"
	"sync"
	"time"

	domain "github.com/BruksfildServices01/barbershop-scheduling/internal/domain/appointment"
	"github.com/BruksfildServices01/barbershop-scheduling/internal/domain/block"
	"github.com/BruksfildServices01/barbershop-scheduling/internal/domain/schedule"
	"github.com/BruksfildServices01/barbershop-scheduling/internal/domain/shop"
	"github.com/BruksfildServices01/barbershop-scheduling/internal/httperr"
)

// MemoryRepository guarda tudo em memória, com as mesmas escritas
// condicionais do gorm. Usado em testes e em execução local sem banco.
type MemoryRepository struct {
	mu sync.RWMutex

	nextID uint

	branches     map[uint]shop.Branch
	services     map[uint]shop.Service
	staff        map[uint]shop.StaffMember
	clients      map[uint]memClient
	schedules    map[uint][]schedule.DaySchedule
	blocks       map[uint]block.Block
	appointments map[uint]domain.Appointment
}

type memClient struct {
	BranchID uint
	Name     string
	Phone    string
	Email    string
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{
		branches:     make(map[uint]shop.Branch),
		services:     make(map[uint]shop.Service),
		staff:        make(map[uint]shop.StaffMember),
		clients:      make(map[uint]memClient),
		schedules:    make(map[uint][]schedule.DaySchedule),
		blocks:       make(map[uint]block.Block),
		appointments: make(map[uint]domain.Appointment),
	}
}

func (r *MemoryRepository) id() uint {
	r.nextID++
	return r.nextID
}

// --------------------------------------------------
// Seed
// --------------------------------------------------

func (r *MemoryRepository) AddBranch(b shop.Branch) shop.Branch {
	r.mu.Lock()
	defer r.mu.Unlock()
	if b.ID == 0 {
		b.ID = r.id()
	}
	r.branches[b.ID] = b
	return b
}

func (r *MemoryRepository) AddService(s shop.Service) shop.Service {
	r.mu.Lock()
	defer r.mu.Unlock()
	if s.ID == 0 {
		s.ID = r.id()
	}
	r.services[s.ID] = s
	return s
}

func (r *MemoryRepository) AddStaff(s shop.StaffMember) shop.StaffMember {
	r.mu.Lock()
	defer r.mu.Unlock()
	if s.ID == 0 {
		s.ID = r.id()
	}
	r.staff[s.ID] = s
	return s
}

// --------------------------------------------------
// Appointment
// --------------------------------------------------

func (r *MemoryRepository) ListAppointments(
	_ context.Context,
	f domain.Filter,
) ([]domain.Appointment, error) {

	r.mu.RLock()
	defer r.mu.RUnlock()

	var out []domain.Appointment
	for _, ap := range r.appointments {
		if f.BranchID != nil && ap.BranchID != *f.BranchID {
			continue
		}
		if f.StaffID != nil && ap.StaffID != *f.StaffID {
			continue
		}
		if f.Date != nil && !schedule.SameDay(ap.Date, *f.Date) {
			continue
		}
		if f.From != nil && ap.Date.Before(schedule.DateOf(*f.From)) {
			continue
		}
		if f.To != nil && !ap.Date.Before(schedule.DateOf(*f.To)) {
			continue
		}
		out = append(out, r.withClient(ap))
	}

	sort.Slice(out, func(i, j int) bool {
		if !out[i].Date.Equal(out[j].Date) {
			return out[i].Date.Before(out[j].Date)
		}
		if out[i].Start != out[j].Start {
			return out[i].Start < out[j].Start
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}

func (r *MemoryRepository) withClient(ap domain.Appointment) domain.Appointment {
	if c, ok := r.clients[ap.ClientID]; ok {
		ap.ClientName = c.Name
	}
	return ap
}

func (r *MemoryRepository) GetAppointment(_ context.Context, id uint) (*domain.Appointment, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	ap, ok := r.appointments[id]
	if !ok {
		return nil, httperr.ErrNotFound("appointment_not_found")
	}
	ap = r.withClient(ap)
	return &ap, nil
}

func (r *MemoryRepository) CreateAppointment(_ context.Context, ap *domain.Appointment) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	ap.ID = r.id()
	ap.Date = schedule.DateOf(ap.Date)
	r.appointments[ap.ID] = *ap
	return nil
}

func (r *MemoryRepository) UpdateAppointment(
	_ context.Context,
	ap *domain.Appointment,
	expected domain.Status,
) error {

	r.mu.Lock()
	defer r.mu.Unlock()

	cur, ok := r.appointments[ap.ID]
	if !ok {
		return httperr.ErrNotFound("appointment_not_found")
	}
	if cur.Status != expected {
		return httperr.ErrConflict("status_changed")
	}
	r.appointments[ap.ID] = *ap
	return nil
}

func (r *MemoryRepository) UpdateAppointmentStatus(
	_ context.Context,
	id uint,
	from domain.Status,
	to domain.Status,
	now time.Time,
) (*domain.Appointment, error) {

	r.mu.Lock()
	defer r.mu.Unlock()

	ap, ok := r.appointments[id]
	if !ok || ap.Status != from {
		return nil, httperr.ErrConflict("status_changed")
	}

	ap.Status = to
	switch to {
	case domain.StatusCancelled:
		ap.CancelledAt = &now
	case domain.StatusCompleted:
		ap.CompletedAt = &now
	}
	r.appointments[id] = ap

	ap = r.withClient(ap)
	return &ap, nil
}

// --------------------------------------------------
// Block
// --------------------------------------------------

func (r *MemoryRepository) ListBlocks(
	_ context.Context,
	staffID uint,
	from time.Time,
	to time.Time,
) ([]block.Block, error) {

	r.mu.RLock()
	defer r.mu.RUnlock()

	var out []block.Block
	for _, b := range r.blocks {
		if b.StaffID != staffID {
			continue
		}
		if b.Kind != block.KindRecurringRest {
			if !from.IsZero() && b.Date.Before(schedule.DateOf(from)) {
				continue
			}
			if !to.IsZero() && !b.Date.Before(schedule.DateOf(to)) {
				continue
			}
		}
		out = append(out, b)
	}

	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *MemoryRepository) CreateBlock(_ context.Context, b *block.Block) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	b.ID = r.id()
	r.blocks[b.ID] = *b
	return nil
}

func (r *MemoryRepository) GetBlock(_ context.Context, id uint) (*block.Block, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	b, ok := r.blocks[id]
	if !ok {
		return nil, httperr.ErrNotFound("block_not_found")
	}
	return &b, nil
}

func (r *MemoryRepository) DeleteBlock(_ context.Context, id uint) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.blocks[id]; !ok {
		return httperr.ErrNotFound("block_not_found")
	}
	delete(r.blocks, id)
	return nil
}

// --------------------------------------------------
// DaySchedule
// --------------------------------------------------

func (r *MemoryRepository) ListDaySchedules(_ context.Context, branchID uint) ([]schedule.DaySchedule, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	src := r.schedules[branchID]
	out := make([]schedule.DaySchedule, len(src))
	copy(out, src)
	return out, nil
}

func (r *MemoryRepository) ReplaceDaySchedules(_ context.Context, branchID uint, days []schedule.DaySchedule) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	cp := make([]schedule.DaySchedule, len(days))
	copy(cp, days)
	r.schedules[branchID] = cp
	return nil
}

// --------------------------------------------------
// Catalog
// --------------------------------------------------

func (r *MemoryRepository) GetBranchByID(_ context.Context, id uint) (*shop.Branch, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	b, ok := r.branches[id]
	if !ok {
		return nil, httperr.ErrNotFound("branch_not_found")
	}
	return &b, nil
}

func (r *MemoryRepository) GetBranchBySlug(_ context.Context, slug string) (*shop.Branch, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, b := range r.branches {
		if b.Slug == slug {
			return &b, nil
		}
	}
	return nil, httperr.ErrNotFound("branch_not_found")
}

func (r *MemoryRepository) GetService(_ context.Context, branchID, serviceID uint) (*shop.Service, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	s, ok := r.services[serviceID]
	if !ok || s.BranchID != branchID {
		return nil, httperr.ErrNotFound("service_not_found")
	}
	return &s, nil
}

func (r *MemoryRepository) GetStaff(_ context.Context, id uint) (*shop.StaffMember, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	s, ok := r.staff[id]
	if !ok {
		return nil, httperr.ErrNotFound("staff_not_found")
	}
	return &s, nil
}

func (r *MemoryRepository) GetOrCreateClient(
	_ context.Context,
	branchID uint,
	name string,
	phone string,
	email string,
) (uint, error) {

	r.mu.Lock()
	defer r.mu.Unlock()

	for id, c := range r.clients {
		if c.BranchID == branchID && c.Phone == phone {
			return id, nil
		}
	}

	id := r.id()
	r.clients[id] = memClient{BranchID: branchID, Name: name, Phone: phone, Email: email}
	return id, nil
}

var _ domain.Repository = (*MemoryRepository)(nil)
