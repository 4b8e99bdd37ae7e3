package entity

import (
	"time"

	"gorm.io/datatypes"
)

// SyncRun is one audit record per sync attempt, success or failure.
type SyncRun struct {
	ID         uint           `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	StartedAt  time.Time      `gorm:"column:started_at" json:"started_at"`
	DurationMS int64          `gorm:"column:duration_ms" json:"duration_ms"`
	RowCount   int            `gorm:"column:row_count" json:"row_count"`
	Status     string         `gorm:"column:status" json:"status"` // "ok" or the fault kind
	Detail     datatypes.JSON `gorm:"column:detail" json:"detail,omitempty"`
}

func (SyncRun) TableName() string {
	return "sync_runs"
}
