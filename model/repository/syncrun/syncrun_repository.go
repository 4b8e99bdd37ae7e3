package syncrun

import (
	"gorm.io/gorm"

	entity "libas.GO/model/entity"
)

// SyncRunRepository appends to the sync_runs audit table.
type SyncRunRepository struct {
	db *gorm.DB
}

func NewSyncRunRepository(db *gorm.DB) *SyncRunRepository {
	return &SyncRunRepository{db: db}
}

// Record appends one run. Audit writes are best-effort for callers; the error
// is returned so they can log it without failing the sync itself.
func (r *SyncRunRepository) Record(run *entity.SyncRun) error {
	return r.db.Create(run).Error
}

// Latest returns the most recent runs, newest first.
func (r *SyncRunRepository) Latest(limit int) ([]entity.SyncRun, error) {
	runs := make([]entity.SyncRun, 0, limit)
	err := r.db.Order("id DESC").Limit(limit).Find(&runs).Error
	return runs, err
}
