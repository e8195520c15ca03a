package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/BruksfildServices01/barbershop-scheduling/internal/domain/schedule"
	"github.com/BruksfildServices01/barbershop-scheduling/internal/models"
)

// --------------------------------------------------
// DaySchedule
// --------------------------------------------------

func (r *AppointmentGormRepository) ListDaySchedules(
	ctx context.Context,
	branchID uint,
) ([]schedule.DaySchedule, error) {

	var rows []models.DaySchedule
	if err := r.db.WithContext(ctx).
		Where("branch_id = ?", branchID).
		Order("weekday ASC").
		Find(&rows).Error; err != nil {
		return nil, err
	}

	out := make([]schedule.DaySchedule, 0, len(rows))
	for _, row := range rows {
		ds, err := toDomainDaySchedule(row)
		if err != nil {
			return nil, err
		}
		out = append(out, ds)
	}
	return out, nil
}

// ReplaceDaySchedules troca a semana inteira numa transação.
func (r *AppointmentGormRepository) ReplaceDaySchedules(
	ctx context.Context,
	branchID uint,
	days []schedule.DaySchedule,
) error {

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.
			Where("branch_id = ?", branchID).
			Delete(&models.DaySchedule{}).Error; err != nil {
			return err
		}

		if len(days) == 0 {
			return nil
		}

		rows := make([]models.DaySchedule, 0, len(days))
		for _, ds := range days {
			rows = append(rows, fromDomainDaySchedule(branchID, ds))
		}
		return tx.Create(&rows).Error
	})
}
