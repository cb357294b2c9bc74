package attendance

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// EventWithUser is the flattened (user, event) pair the aggregator consumes.
type EventWithUser struct {
	PersonnelID uuid.UUID
	UserName    string
	ReasonType  ReasonType
	EntryAt     time.Time
	ExitAt      *time.Time
}

//go:generate mockgen -source=attendance_repo.go -destination=mock/attendance_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Append(ctx context.Context, e *EntryExitEvent) error
	Update(ctx context.Context, e *EntryExitEvent) error
	CountByPersonnel(ctx context.Context, personnelID string) (int64, error)
	// FindLatestOnDay returns the most recently created non-deleted event whose
	// entry or exit falls on the given calendar day.
	FindLatestOnDay(ctx context.Context, personnelID string, day time.Time) (*EntryExitEvent, error)
	// FindInRange returns non-deleted events whose entry instant lies in the
	// half-open range [begin, end), joined with the owning user name. An empty
	// userName matches everyone.
	FindInRange(ctx context.Context, begin, end time.Time, userName string) ([]EventWithUser, error)
	FindPageByPersonnel(ctx context.Context, personnelID string, page, pageSize int) ([]EntryExitEvent, error)
	CountPageByPersonnel(ctx context.Context, personnelID string) (int64, error)
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

func (r *repository) Append(ctx context.Context, e *EntryExitEvent) error {
	return r.db.WithContext(ctx).Create(e).Error
}

func (r *repository) Update(ctx context.Context, e *EntryExitEvent) error {
	return r.db.WithContext(ctx).Save(e).Error
}

func (r *repository) CountByPersonnel(ctx context.Context, personnelID string) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&EntryExitEvent{}).
		Where("personnel_id = ?", personnelID).
		Count(&count).Error
	return count, err
}

func (r *repository) FindLatestOnDay(ctx context.Context, personnelID string, day time.Time) (*EntryExitEvent, error) {
	d := day.Format("2006-01-02")
	var e EntryExitEvent
	err := r.db.WithContext(ctx).
		Where("personnel_id = ?", personnelID).
		Where("DATE(entry_at) = ? OR DATE(exit_at) = ?", d, d).
		Order("created_at DESC").
		First(&e).Error
	return &e, err
}

func (r *repository) FindInRange(ctx context.Context, begin, end time.Time, userName string) ([]EventWithUser, error) {
	q := r.db.WithContext(ctx).
		Model(&EntryExitEvent{}).
		Select("entry_exit_events.personnel_id, personnels.user_name, entry_exit_events.reason_type, entry_exit_events.entry_at, entry_exit_events.exit_at").
		Joins("JOIN personnels ON personnels.id = entry_exit_events.personnel_id").
		Where("entry_exit_events.entry_at >= ?", begin).
		Where("entry_exit_events.entry_at < ?", end).
		Where("entry_exit_events.deleted_at IS NULL")

	if userName != "" {
		q = q.Where("personnels.user_name = ?", userName)
	}

	var rows []EventWithUser
	err := q.Scan(&rows).Error
	return rows, err
}

func (r *repository) FindPageByPersonnel(ctx context.Context, personnelID string, page, pageSize int) ([]EntryExitEvent, error) {
	var rows []EntryExitEvent
	err := r.db.WithContext(ctx).
		Where("personnel_id = ?", personnelID).
		Order("entry_at DESC").
		Offset((page - 1) * pageSize).
		Limit(pageSize).
		Find(&rows).Error
	return rows, err
}

func (r *repository) CountPageByPersonnel(ctx context.Context, personnelID string) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&EntryExitEvent{}).
		Where("personnel_id = ?", personnelID).
		Count(&count).Error
	return count, err
}
