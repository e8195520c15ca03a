package repository

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	domain "github.com/BruksfildServices01/barbershop-scheduling/internal/domain/appointment"
	"github.com/BruksfildServices01/barbershop-scheduling/internal/domain/schedule"
	"github.com/BruksfildServices01/barbershop-scheduling/internal/httperr"
	"github.com/BruksfildServices01/barbershop-scheduling/internal/models"
)

type AppointmentGormRepository struct {
	db *gorm.DB
}

func NewAppointmentGormRepository(db *gorm.DB) *AppointmentGormRepository {
	return &AppointmentGormRepository{db: db}
}

// --------------------------------------------------
// Appointment (leitura)
// --------------------------------------------------

func (r *AppointmentGormRepository) ListAppointments(
	ctx context.Context,
	f domain.Filter,
) ([]domain.Appointment, error) {

	q := r.db.WithContext(ctx).
		Preload("Client").
		Model(&models.Appointment{})

	if f.BranchID != nil {
		q = q.Where("branch_id = ?", *f.BranchID)
	}
	if f.StaffID != nil {
		q = q.Where("staff_id = ?", *f.StaffID)
	}
	if f.Date != nil {
		q = q.Where("date = ?", schedule.FormatDate(*f.Date))
	}
	if f.From != nil {
		q = q.Where("date >= ?", schedule.FormatDate(*f.From))
	}
	if f.To != nil {
		q = q.Where("date < ?", schedule.FormatDate(*f.To))
	}

	var rows []models.Appointment
	if err := q.Order("date ASC, start_time ASC, id ASC").Find(&rows).Error; err != nil {
		return nil, err
	}

	return toDomainAppointments(rows)
}

func (r *AppointmentGormRepository) GetAppointment(
	ctx context.Context,
	id uint,
) (*domain.Appointment, error) {

	var row models.Appointment
	err := r.db.WithContext(ctx).
		Preload("Client").
		First(&row, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, httperr.ErrNotFound("appointment_not_found")
	}
	if err != nil {
		return nil, err
	}

	ap, err := toDomainAppointment(row)
	if err != nil {
		return nil, err
	}
	return &ap, nil
}

// --------------------------------------------------
// Appointment (escrita)
// --------------------------------------------------

func (r *AppointmentGormRepository) CreateAppointment(
	ctx context.Context,
	ap *domain.Appointment,
) error {

	row := fromDomainAppointment(*ap)
	if err := r.db.WithContext(ctx).Omit("Client", "Branch", "Staff", "Service").Create(&row).Error; err != nil {
		if httperr.IsStoreConflict(err) {
			return httperr.ErrConflict("commit_conflict")
		}
		return err
	}

	ap.ID = row.ID
	return nil
}

// UpdateAppointment grava a edição só se o status ainda for o lido.
func (r *AppointmentGormRepository) UpdateAppointment(
	ctx context.Context,
	ap *domain.Appointment,
	expected domain.Status,
) error {

	row := fromDomainAppointment(*ap)

	res := r.db.WithContext(ctx).
		Model(&models.Appointment{}).
		Where("id = ? AND status = ?", ap.ID, string(expected)).
		Updates(map[string]any{
			"staff_id":       row.StaffID,
			"service_id":     row.ServiceID,
			"service_name":   row.ServiceName,
			"duration_min":   row.DurationMin,
			"date":           row.Date,
			"start_time":     row.StartTime,
			"status":         row.Status,
			"notes":          row.Notes,
			"price_override": row.PriceOverride,
			"cancelled_at":   row.CancelledAt,
			"completed_at":   row.CompletedAt,
		})

	if res.Error != nil {
		if httperr.IsStoreConflict(res.Error) {
			return httperr.ErrConflict("commit_conflict")
		}
		return res.Error
	}
	if res.RowsAffected == 0 {
		return httperr.ErrConflict("status_changed")
	}
	return nil
}

// UpdateAppointmentStatus é a escrita condicional usada pelo quadro e
// pelas ações de confirmar/concluir/cancelar.
func (r *AppointmentGormRepository) UpdateAppointmentStatus(
	ctx context.Context,
	id uint,
	from domain.Status,
	to domain.Status,
	now time.Time,
) (*domain.Appointment, error) {

	updates := map[string]any{"status": string(to)}
	switch to {
	case domain.StatusCancelled:
		updates["cancelled_at"] = now
	case domain.StatusCompleted:
		updates["completed_at"] = now
	}

	res := r.db.WithContext(ctx).
		Model(&models.Appointment{}).
		Where("id = ? AND status = ?", id, string(from)).
		Updates(updates)

	if res.Error != nil {
		if httperr.IsStoreConflict(res.Error) {
			return nil, httperr.ErrConflict("commit_conflict")
		}
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, httperr.ErrConflict("status_changed")
	}

	return r.GetAppointment(ctx, id)
}

// Compile-time check
var _ domain.Repository = (*AppointmentGormRepository)(nil)
