package repository

import (
	"fmt"
	"time"

	domain "github.com/BruksfildServices01/barbershop-scheduling/internal/domain/appointment"
	"github.com/BruksfildServices01/barbershop-scheduling/internal/domain/actor"
	"github.com/BruksfildServices01/barbershop-scheduling/internal/domain/block"
	"github.com/BruksfildServices01/barbershop-scheduling/internal/domain/schedule"
	"github.com/BruksfildServices01/barbershop-scheduling/internal/domain/shop"
	"github.com/BruksfildServices01/barbershop-scheduling/internal/models"
)

// --------------------------------------------------
// Appointment
// --------------------------------------------------

func toDomainAppointment(m models.Appointment) (domain.Appointment, error) {
	date, err := schedule.ParseDate(m.Date)
	if err != nil {
		return domain.Appointment{}, fmt.Errorf("appointment %d: bad date %q: %w", m.ID, m.Date, err)
	}
	start, err := schedule.ParseTimeOfDay(m.StartTime)
	if err != nil {
		return domain.Appointment{}, fmt.Errorf("appointment %d: %w", m.ID, err)
	}

	return domain.Appointment{
		ID:            m.ID,
		BranchID:      m.BranchID,
		StaffID:       m.StaffID,
		ServiceID:     m.ServiceID,
		ServiceName:   m.ServiceName,
		ClientID:      m.ClientID,
		ClientName:    m.Client.Name,
		Date:          date,
		Start:         start,
		DurationMin:   m.DurationMin,
		Status:        domain.Status(m.Status),
		Notes:         m.Notes,
		PriceOverride: m.PriceOverride,
		CancelledAt:   m.CancelledAt,
		CompletedAt:   m.CompletedAt,
	}, nil
}

func toDomainAppointments(rows []models.Appointment) ([]domain.Appointment, error) {
	out := make([]domain.Appointment, 0, len(rows))
	for _, r := range rows {
		ap, err := toDomainAppointment(r)
		if err != nil {
			return nil, err
		}
		out = append(out, ap)
	}
	return out, nil
}

func fromDomainAppointment(ap domain.Appointment) models.Appointment {
	return models.Appointment{
		ID:            ap.ID,
		BranchID:      ap.BranchID,
		StaffID:       ap.StaffID,
		ClientID:      ap.ClientID,
		ServiceID:     ap.ServiceID,
		ServiceName:   ap.ServiceName,
		DurationMin:   ap.DurationMin,
		Date:          schedule.FormatDate(ap.Date),
		StartTime:     ap.Start.String(),
		Status:        string(ap.Status),
		Notes:         ap.Notes,
		PriceOverride: ap.PriceOverride,
		CancelledAt:   ap.CancelledAt,
		CompletedAt:   ap.CompletedAt,
	}
}

// --------------------------------------------------
// Block
// --------------------------------------------------

func toDomainBlock(m models.Block) (block.Block, error) {
	b := block.Block{
		ID:       m.ID,
		StaffID:  m.StaffID,
		BranchID: m.BranchID,
		Kind:     block.Kind(m.Kind),
		Weekdays: block.WeekdayMask(m.Weekdays),
		Reason:   m.Reason,
	}

	if m.Date != "" {
		d, err := schedule.ParseDate(m.Date)
		if err != nil {
			return block.Block{}, fmt.Errorf("block %d: bad date %q: %w", m.ID, m.Date, err)
		}
		b.Date = d
	}

	var err error
	if b.Start, err = optionalTime(m.StartTime); err != nil {
		return block.Block{}, fmt.Errorf("block %d: %w", m.ID, err)
	}
	if b.End, err = optionalTime(m.EndTime); err != nil {
		return block.Block{}, fmt.Errorf("block %d: %w", m.ID, err)
	}
	return b, nil
}

func fromDomainBlock(b block.Block) models.Block {
	m := models.Block{
		ID:        b.ID,
		StaffID:   b.StaffID,
		BranchID:  b.BranchID,
		Kind:      string(b.Kind),
		Weekdays:  uint8(b.Weekdays),
		Reason:    b.Reason,
		StartTime: formatOptional(b.Start),
		EndTime:   formatOptional(b.End),
	}
	if b.Kind != block.KindRecurringRest && !b.Date.IsZero() {
		m.Date = schedule.FormatDate(b.Date)
	}
	return m
}

// --------------------------------------------------
// DaySchedule
// --------------------------------------------------

func toDomainDaySchedule(m models.DaySchedule) (schedule.DaySchedule, error) {
	ds := schedule.DaySchedule{
		Weekday: time.Weekday(m.Weekday),
		Active:  m.Active,
	}

	if m.StartTime == "" || m.EndTime == "" {
		// Dia sem horário só pode estar inativo.
		ds.Active = false
		return ds, nil
	}

	var err error
	if ds.Open, err = schedule.ParseTimeOfDay(m.StartTime); err != nil {
		return ds, err
	}
	if ds.Close, err = schedule.ParseTimeOfDay(m.EndTime); err != nil {
		return ds, err
	}
	if ds.LunchStart, err = optionalTime(m.LunchStart); err != nil {
		return ds, err
	}
	if ds.LunchEnd, err = optionalTime(m.LunchEnd); err != nil {
		return ds, err
	}
	return ds, nil
}

func fromDomainDaySchedule(branchID uint, ds schedule.DaySchedule) models.DaySchedule {
	m := models.DaySchedule{
		BranchID:   branchID,
		Weekday:    int(ds.Weekday),
		Active:     ds.Active,
		LunchStart: formatOptional(ds.LunchStart),
		LunchEnd:   formatOptional(ds.LunchEnd),
	}
	if ds.Close > ds.Open {
		m.StartTime = ds.Open.String()
		m.EndTime = ds.Close.String()
	}
	return m
}

// --------------------------------------------------
// Catalog
// --------------------------------------------------

func toDomainBranch(m models.Branch) shop.Branch {
	return shop.Branch{
		ID:                m.ID,
		Name:              m.Name,
		Slug:              m.Slug,
		Timezone:          m.Timezone,
		MinAdvanceMinutes: m.MinAdvanceMinutes,
	}
}

func toDomainService(m models.Service) shop.Service {
	return shop.Service{
		ID:          m.ID,
		BranchID:    m.BranchID,
		Name:        m.Name,
		DurationMin: m.DurationMin,
		Price:       m.Price,
		Active:      m.Active,
	}
}

func toDomainStaff(m models.Staff) shop.StaffMember {
	s := shop.StaffMember{
		ID:       m.ID,
		Name:     m.Name,
		BranchID: m.BranchID,
		Role:     actor.Role(m.Role),
		Active:   m.Active,
	}
	for _, svc := range m.Services {
		s.Specialties = append(s.Specialties, svc.ID)
	}
	return s
}

// --------------------------------------------------
// helpers
// --------------------------------------------------

func optionalTime(hm string) (*schedule.TimeOfDay, error) {
	if hm == "" {
		return nil, nil
	}
	t, err := schedule.ParseTimeOfDay(hm)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func formatOptional(t *schedule.TimeOfDay) string {
	if t == nil {
		return ""
	}
	return t.String()
}
