package vacation

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Vacation struct {
	ID          uuid.UUID `gorm:"column:id;type:uuid;primaryKey;default:gen_random_uuid()"`
	PersonnelID uuid.UUID `gorm:"column:personnel_id;type:uuid;not null;index:idx_vacations_personnel_dates"`

	StartDate time.Time `gorm:"column:start_date;type:date;not null;index:idx_vacations_personnel_dates"`
	EndDate   time.Time `gorm:"column:end_date;type:date;not null;index:idx_vacations_personnel_dates"`

	CreatedAt time.Time      `gorm:"column:created_at;autoCreateTime"`
	DeletedAt gorm.DeletedAt `gorm:"column:deleted_at;index"`
}

func (Vacation) TableName() string {
	return "vacations"
}
