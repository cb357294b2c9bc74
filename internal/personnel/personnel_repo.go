package personnel

import (
	"context"
	"database/sql"

	"gorm.io/gorm"
)

//go:generate mockgen -source=personnel_repo.go -destination=mock/personnel_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Create(ctx context.Context, p *Personnel) error
	FindByID(ctx context.Context, id string) (*Personnel, error)
	FindByUserName(ctx context.Context, userName string) (*Personnel, error)
	FindPage(ctx context.Context, page, pageSize int) ([]Personnel, error)
	CountAll(ctx context.Context) (int64, error)
	Update(ctx context.Context, p *Personnel) error
	SetActive(ctx context.Context, id string, active bool) error
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

func (r *repository) Create(ctx context.Context, p *Personnel) error {
	return r.db.WithContext(ctx).Create(p).Error
}

func (r *repository) FindByID(ctx context.Context, id string) (*Personnel, error) {
	var p Personnel
	err := r.db.WithContext(ctx).First(&p, "id = ?", id).Error
	return &p, err
}

func (r *repository) FindByUserName(ctx context.Context, userName string) (*Personnel, error) {
	var p Personnel
	err := r.db.WithContext(ctx).First(&p, "user_name = ?", userName).Error
	return &p, err
}

func (r *repository) FindPage(ctx context.Context, page, pageSize int) ([]Personnel, error) {
	var rows []Personnel
	err := r.db.WithContext(ctx).
		Order("id ASC").
		Offset((page - 1) * pageSize).
		Limit(pageSize).
		Find(&rows).Error
	return rows, err
}

func (r *repository) CountAll(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&Personnel{}).Count(&count).Error
	return count, err
}

func (r *repository) Update(ctx context.Context, p *Personnel) error {
	return r.db.WithContext(ctx).Save(p).Error
}

func (r *repository) SetActive(ctx context.Context, id string, active bool) error {
	res := r.db.WithContext(ctx).
		Model(&Personnel{}).
		Where("id = ?", id).
		Update("is_active", active)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
