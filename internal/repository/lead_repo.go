package repository

import (
	"context"

	"leadbook/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type LeadRepository interface {
	Create(ctx context.Context, l *model.Lead) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Lead, error)
	Save(ctx context.Context, l *model.Lead) error
	Delete(ctx context.Context, id uuid.UUID) error
	ListAll(ctx context.Context) ([]model.Lead, error)
	ListByAddedBy(ctx context.Context, username string) ([]model.Lead, error)
	CountAll(ctx context.Context) (int64, error)
	CountByAddedBy(ctx context.Context, username string) (int64, error)
	// DistinctSchools returns the distinct school values across all leads,
	// unfiltered — empty strings included; the caller cleans them up.
	DistinctSchools(ctx context.Context) ([]string, error)
}

type leadRepo struct{ db *gorm.DB }

func NewLeadRepository(db *gorm.DB) LeadRepository { return &leadRepo{db: db} }

func (r *leadRepo) Create(ctx context.Context, l *model.Lead) error {
	return r.db.WithContext(ctx).Create(l).Error
}

func (r *leadRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Lead, error) {
	var l model.Lead
	err := r.db.WithContext(ctx).First(&l, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &l, nil
}

func (r *leadRepo) Save(ctx context.Context, l *model.Lead) error {
	return r.db.WithContext(ctx).Save(l).Error
}

func (r *leadRepo) Delete(ctx context.Context, id uuid.UUID) error {
	res := r.db.WithContext(ctx).Delete(&model.Lead{}, "id = ?", id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *leadRepo) ListAll(ctx context.Context) ([]model.Lead, error) {
	var leads []model.Lead
	err := r.db.WithContext(ctx).Order("created_at DESC").Find(&leads).Error
	return leads, err
}

func (r *leadRepo) ListByAddedBy(ctx context.Context, username string) ([]model.Lead, error) {
	var leads []model.Lead
	err := r.db.WithContext(ctx).
		Where("added_by = ?", username).
		Order("created_at DESC").
		Find(&leads).Error
	return leads, err
}

func (r *leadRepo) CountAll(ctx context.Context) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&model.Lead{}).Count(&n).Error
	return n, err
}

func (r *leadRepo) CountByAddedBy(ctx context.Context, username string) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&model.Lead{}).Where("added_by = ?", username).Count(&n).Error
	return n, err
}

func (r *leadRepo) DistinctSchools(ctx context.Context) ([]string, error) {
	var schools []string
	err := r.db.WithContext(ctx).Model(&model.Lead{}).Distinct("school").Pluck("school", &schools).Error
	return schools, err
}
