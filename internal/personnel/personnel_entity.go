package personnel

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Personnel struct {
	ID        uuid.UUID      `gorm:"column:id;type:uuid;primaryKey;default:gen_random_uuid()"`
	UserName  string         `gorm:"column:user_name;type:varchar(100);not null;uniqueIndex:uq_personnel_user_name"`
	FullName  string         `gorm:"column:full_name;type:varchar(255)"`
	Password  string         `gorm:"column:password;type:text;not null"`
	IsActive  bool           `gorm:"column:is_active;not null;default:true"`
	CreatedAt time.Time      `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time      `gorm:"column:updated_at;autoUpdateTime"`
	DeletedAt gorm.DeletedAt `gorm:"column:deleted_at;index"`
}

func (Personnel) TableName() string {
	return "personnels"
}
