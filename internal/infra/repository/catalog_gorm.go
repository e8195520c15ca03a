package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/BruksfildServices01/barbershop-scheduling/internal/domain/shop"
	"github.com/BruksfildServices01/barbershop-scheduling/internal/httperr"
	"github.com/BruksfildServices01/barbershop-scheduling/internal/models"
)

// --------------------------------------------------
// Branch
// --------------------------------------------------

func (r *AppointmentGormRepository) GetBranchByID(
	ctx context.Context,
	id uint,
) (*shop.Branch, error) {

	var row models.Branch
	if err := r.db.WithContext(ctx).First(&row, id).Error; err != nil {
		return nil, notFound(err, "branch_not_found")
	}
	b := toDomainBranch(row)
	return &b, nil
}

func (r *AppointmentGormRepository) GetBranchBySlug(
	ctx context.Context,
	slug string,
) (*shop.Branch, error) {

	var row models.Branch
	if err := r.db.WithContext(ctx).
		Where("slug = ?", slug).
		First(&row).Error; err != nil {
		return nil, notFound(err, "branch_not_found")
	}
	b := toDomainBranch(row)
	return &b, nil
}

// --------------------------------------------------
// Service
// --------------------------------------------------

func (r *AppointmentGormRepository) GetService(
	ctx context.Context,
	branchID uint,
	serviceID uint,
) (*shop.Service, error) {

	var row models.Service
	if err := r.db.WithContext(ctx).
		Where("id = ? AND branch_id = ?", serviceID, branchID).
		First(&row).Error; err != nil {
		return nil, notFound(err, "service_not_found")
	}
	s := toDomainService(row)
	return &s, nil
}

// --------------------------------------------------
// Staff
// --------------------------------------------------

func (r *AppointmentGormRepository) GetStaff(
	ctx context.Context,
	id uint,
) (*shop.StaffMember, error) {

	var row models.Staff
	if err := r.db.WithContext(ctx).
		Preload("Services").
		First(&row, id).Error; err != nil {
		return nil, notFound(err, "staff_not_found")
	}
	s := toDomainStaff(row)
	return &s, nil
}

// --------------------------------------------------
// Client
// --------------------------------------------------

func (r *AppointmentGormRepository) GetOrCreateClient(
	ctx context.Context,
	branchID uint,
	name string,
	phone string,
	email string,
) (uint, error) {

	var client models.Client
	err := r.db.WithContext(ctx).
		Where("branch_id = ? AND phone = ?", branchID, phone).
		First(&client).Error

	if err == nil {
		return client.ID, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return 0, err
	}

	client = models.Client{
		BranchID: branchID,
		Name:     name,
		Phone:    phone,
		Email:    email,
	}

	if err := r.db.WithContext(ctx).Create(&client).Error; err != nil {
		return 0, err
	}

	return client.ID, nil
}

func notFound(err error, code string) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return httperr.ErrNotFound(code)
	}
	return err
}
