package sync

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	gosync "sync"
	"time"

	"libas.GO/core/fault"
	entity "libas.GO/model/entity"
	itemRepo "libas.GO/model/repository/item"
	syncrunRepo "libas.GO/model/repository/syncrun"
)

// ErrDisabled is returned when the deploy has no Busy source available
// (ALLOW_SYNC unset). The serving layer maps it to 403.
var ErrDisabled = errors.New("sync is disabled on this deployment (set ALLOW_SYNC=1)")

// Result summarizes a successful sync.
type Result struct {
	Rows      int           `json:"rows"`
	SavedTo   string        `json:"saved_to"`
	StartedAt time.Time     `json:"started_at"`
	Duration  time.Duration `json:"-"`
}

// Service drives extract → normalize → replace-all. At most one sync runs at
// a time; a request arriving mid-sync is rejected, not queued.
type Service struct {
	extractor Extractor
	items     *itemRepo.ItemRepository
	runs      *syncrunRepo.SyncRunRepository
	savedTo   string
	enabled   bool

	mu gosync.Mutex
}

func NewService(ex Extractor, items *itemRepo.ItemRepository, runs *syncrunRepo.SyncRunRepository, savedTo string, enabled bool) *Service {
	return &Service{extractor: ex, items: items, runs: runs, savedTo: savedTo, enabled: enabled}
}

// Sync runs one full extraction and atomically replaces the cache contents.
// Any stage failure aborts the remaining stages; the previous cache contents
// stay queryable.
func (s *Service) Sync(ctx context.Context) (*Result, error) {
	if !s.enabled {
		return nil, ErrDisabled
	}
	if !s.mu.TryLock() {
		return nil, fault.New(fault.Busy, "sync", "sync already in progress")
	}
	defer s.mu.Unlock()

	started := time.Now()
	res, err := s.run(ctx, started)
	s.record(started, res, err)
	return res, err
}

func (s *Service) run(ctx context.Context, started time.Time) (*Result, error) {
	raw, err := s.extractor.Extract(ctx)
	if err != nil {
		return nil, err
	}
	items, err := Normalize(raw)
	if err != nil {
		return nil, err
	}
	if err := s.items.ReplaceAll(items); err != nil {
		return nil, fault.Wrap(fault.Storage, "store", err)
	}
	return &Result{
		Rows:      len(items),
		SavedTo:   s.savedTo,
		StartedAt: started,
		Duration:  time.Since(started),
	}, nil
}

// record appends an audit row for the attempt. Audit failures are logged,
// never raised past this point.
func (s *Service) record(started time.Time, res *Result, syncErr error) {
	if s.runs == nil {
		return
	}
	run := &entity.SyncRun{
		StartedAt:  started,
		DurationMS: time.Since(started).Milliseconds(),
	}
	if syncErr != nil {
		run.Status = string(fault.KindOf(syncErr))
		if run.Status == "" {
			run.Status = "error"
		}
		detail, _ := json.Marshal(map[string]string{"error": syncErr.Error()})
		run.Detail = detail
	} else {
		run.Status = "ok"
		run.RowCount = res.Rows
		detail, _ := json.Marshal(map[string]string{"saved_to": res.SavedTo})
		run.Detail = detail
	}
	if err := s.runs.Record(run); err != nil {
		log.Printf("sync: failed to record run: %v", err)
	}
}
