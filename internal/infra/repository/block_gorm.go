package repository

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/BruksfildServices01/barbershop-scheduling/internal/domain/block"
	"github.com/BruksfildServices01/barbershop-scheduling/internal/domain/schedule"
	"github.com/BruksfildServices01/barbershop-scheduling/internal/httperr"
	"github.com/BruksfildServices01/barbershop-scheduling/internal/models"
)

// --------------------------------------------------
// Block
// --------------------------------------------------

// ListBlocks: datados em [from, to) mais todos os descansos recorrentes.
// from/to zerados não limitam.
func (r *AppointmentGormRepository) ListBlocks(
	ctx context.Context,
	staffID uint,
	from time.Time,
	to time.Time,
) ([]block.Block, error) {

	dated := r.db.Where("kind <> ?", string(block.KindRecurringRest))
	if !from.IsZero() {
		dated = dated.Where("date >= ?", schedule.FormatDate(from))
	}
	if !to.IsZero() {
		dated = dated.Where("date < ?", schedule.FormatDate(to))
	}

	var rows []models.Block
	if err := r.db.WithContext(ctx).
		Where("staff_id = ?", staffID).
		Where(dated.Or("kind = ?", string(block.KindRecurringRest))).
		Order("date ASC, start_time ASC, id ASC").
		Find(&rows).Error; err != nil {
		return nil, err
	}

	out := make([]block.Block, 0, len(rows))
	for _, row := range rows {
		b, err := toDomainBlock(row)
		if err != nil {
			return nil, err
		}
		out = append(out, b)
	}
	return out, nil
}

func (r *AppointmentGormRepository) CreateBlock(
	ctx context.Context,
	b *block.Block,
) error {

	row := fromDomainBlock(*b)
	if err := r.db.WithContext(ctx).Create(&row).Error; err != nil {
		return err
	}
	b.ID = row.ID
	return nil
}

func (r *AppointmentGormRepository) GetBlock(
	ctx context.Context,
	id uint,
) (*block.Block, error) {

	var row models.Block
	err := r.db.WithContext(ctx).First(&row, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, httperr.ErrNotFound("block_not_found")
	}
	if err != nil {
		return nil, err
	}

	b, err := toDomainBlock(row)
	if err != nil {
		return nil, err
	}
	return &b, nil
}

func (r *AppointmentGormRepository) DeleteBlock(
	ctx context.Context,
	id uint,
) error {

	res := r.db.WithContext(ctx).Delete(&models.Block{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return httperr.ErrNotFound("block_not_found")
	}
	return nil
}
