package vacation

import (
	"context"
	"database/sql"
	"time"

	"gorm.io/gorm"
)

//go:generate mockgen -source=vacation_repo.go -destination=mock/vacation_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Create(ctx context.Context, v *Vacation) error
	FindPageByPersonnel(ctx context.Context, personnelID string, page, pageSize int) ([]Vacation, error)
	CountByPersonnel(ctx context.Context, personnelID string) (int64, error)
	// DeleteByIDAndPersonnel removes the vacation only when it belongs to the
	// given personnel; it reports whether a row actually matched.
	DeleteByIDAndPersonnel(ctx context.Context, personnelID, id string) (bool, error)
	HasActiveAt(ctx context.Context, personnelID string, at time.Time) (bool, error)
}

type repository struct {
	db *gorm.DB
	tx *sql.Tx
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *sql.Tx) Repository {
	return &repository{db: r.db, tx: tx}
}

func (r *repository) Create(ctx context.Context, v *Vacation) error {
	return r.db.WithContext(ctx).Create(v).Error
}

func (r *repository) FindPageByPersonnel(ctx context.Context, personnelID string, page, pageSize int) ([]Vacation, error) {
	var rows []Vacation
	err := r.db.WithContext(ctx).
		Where("personnel_id = ?", personnelID).
		Order("start_date DESC").
		Offset((page - 1) * pageSize).
		Limit(pageSize).
		Find(&rows).Error
	return rows, err
}

func (r *repository) CountByPersonnel(ctx context.Context, personnelID string) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&Vacation{}).
		Where("personnel_id = ?", personnelID).
		Count(&count).Error
	return count, err
}

func (r *repository) DeleteByIDAndPersonnel(ctx context.Context, personnelID, id string) (bool, error) {
	res := r.db.WithContext(ctx).
		Where("personnel_id = ?", personnelID).
		Delete(&Vacation{}, "id = ?", id)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

func (r *repository) HasActiveAt(ctx context.Context, personnelID string, at time.Time) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&Vacation{}).
		Where("personnel_id = ?", personnelID).
		Where("start_date <= ?", at).
		Where("end_date >= ?", at).
		Count(&count).Error
	return count > 0, err
}
