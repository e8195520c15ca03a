package dto

import (
	domain "github.com/BruksfildServices01/barbershop-scheduling/internal/domain/appointment"
	"github.com/BruksfildServices01/barbershop-scheduling/internal/domain/schedule"
)

type AppointmentDTO struct {
	ID            uint     `json:"id"`
	BranchID      uint     `json:"branch_id"`
	StaffID       uint     `json:"staff_id"`
	ServiceID     uint     `json:"service_id"`
	ServiceName   string   `json:"service_name"`
	ClientID      uint     `json:"client_id"`
	ClientName    string   `json:"client_name"`
	Date          string   `json:"date"`
	StartTime     string   `json:"start_time"`
	EndTime       string   `json:"end_time"`
	DurationMin   int      `json:"duration_min"`
	Status        string   `json:"status"`
	Notes         string   `json:"notes,omitempty"`
	PriceOverride *float64 `json:"price_override,omitempty"`
}

func FromAppointment(ap domain.Appointment) AppointmentDTO {
	return AppointmentDTO{
		ID:            ap.ID,
		BranchID:      ap.BranchID,
		StaffID:       ap.StaffID,
		ServiceID:     ap.ServiceID,
		ServiceName:   ap.ServiceName,
		ClientID:      ap.ClientID,
		ClientName:    ap.ClientName,
		Date:          schedule.FormatDate(ap.Date),
		StartTime:     ap.Start.String(),
		EndTime:       ap.End().String(),
		DurationMin:   ap.DurationMin,
		Status:        string(ap.Status),
		Notes:         ap.Notes,
		PriceOverride: ap.PriceOverride,
	}
}

func FromAppointments(apps []domain.Appointment) []AppointmentDTO {
	out := make([]AppointmentDTO, 0, len(apps))
	for _, ap := range apps {
		out = append(out, FromAppointment(ap))
	}
	return out
}

type OverlapWarningDTO struct {
	Message        string `json:"message"`
	AppointmentIDs []uint `json:"appointment_ids"`
}

type AvailabilityDTO struct {
	Date        string   `json:"date"`
	StaffID     uint     `json:"staff_id"`
	DurationMin int      `json:"duration_min"`
	Slots       []string `json:"slots"`
	Reason      string   `json:"reason,omitempty"`
}

func Slots(slots []schedule.TimeOfDay) []string {
	out := make([]string, 0, len(slots))
	for _, s := range slots {
		out = append(out, s.String())
	}
	return out
}

type BoardDTO struct {
	Date    string                      `json:"date"`
	Columns map[string][]AppointmentDTO `json:"columns"`
}

func Board(date string, cols map[domain.Status][]domain.Appointment) BoardDTO {
	out := BoardDTO{Date: date, Columns: make(map[string][]AppointmentDTO, len(cols))}
	for st, apps := range cols {
		out.Columns[string(st)] = FromAppointments(apps)
	}
	return out
}
