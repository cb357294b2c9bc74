package attendance

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	StatusOpen   = "OPEN"
	StatusClosed = "CLOSED"
)

// ReasonType categorizes an attendance interval. WorkHour is the default
// category opened on login; the others are pauses the user clocks into.
type ReasonType int16

const (
	ReasonWorkHour ReasonType = 0
	ReasonMeal     ReasonType = 1
	ReasonBreak    ReasonType = 2
)

func (r ReasonType) String() string {
	switch r {
	case ReasonWorkHour:
		return "WORK_HOUR"
	case ReasonMeal:
		return "MEAL"
	case ReasonBreak:
		return "BREAK"
	default:
		return "UNKNOWN"
	}
}

func (r ReasonType) Valid() bool {
	switch r {
	case ReasonWorkHour, ReasonMeal, ReasonBreak:
		return true
	default:
		return false
	}
}

// EntryExitEvent is one attendance interval. The log is append-only: events
// are opened, later closed (exit_at set, status CLOSED) or soft-deleted, never
// physically removed. A nil exit_at means the interval is still open.
type EntryExitEvent struct {
	ID          uuid.UUID      `gorm:"column:id;type:uuid;primaryKey;default:gen_random_uuid()"`
	PersonnelID uuid.UUID      `gorm:"column:personnel_id;type:uuid;not null;index:idx_events_personnel_entry"`
	ReasonType  ReasonType     `gorm:"column:reason_type;type:smallint;not null;default:0"`
	EntryAt     time.Time      `gorm:"column:entry_at;type:timestamptz;not null;index:idx_events_personnel_entry"`
	ExitAt      *time.Time     `gorm:"column:exit_at;type:timestamptz"`
	Status      string         `gorm:"column:status;type:varchar(10);not null;default:OPEN"`
	CreatedAt   time.Time      `gorm:"column:created_at;type:timestamptz;not null"`
	DeletedAt   gorm.DeletedAt `gorm:"column:deleted_at;index"`
}

func (EntryExitEvent) TableName() string {
	return "entry_exit_events"
}
