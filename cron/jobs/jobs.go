// Package jobs holds the scheduled sync and publish jobs. Each run opens its
// own cache handle so the scheduler can live in a process without the server.
package jobs

import (
	"context"
	"log"

	"gorm.io/gorm"

	"libas.GO/config"
	"libas.GO/core/ghub"
	"libas.GO/cron"
	itemRepo "libas.GO/model/repository/item"
	syncrunRepo "libas.GO/model/repository/syncrun"
	exportService "libas.GO/service/export"
	syncService "libas.GO/service/sync"
)

func init() {
	cron.Register("syncjob", config.SyncSchedule(), SyncJob)
	cron.Register("publishjob", config.PublishSchedule(), PublishJob)
}

// SyncJob runs one Busy extraction into the local cache.
func SyncJob(args ...string) {
	config.LoadAppConfig()
	if !config.AppConfig.AllowSync {
		log.Println("syncjob: skipped, sync disabled (ALLOW_SYNC unset)")
		return
	}
	db, err := config.NewCacheDB(config.AppConfig.CachePath)
	if err != nil {
		log.Printf("syncjob: open cache: %v", err)
		return
	}
	defer closeDB(db)

	svc := syncService.NewService(
		syncService.NewBusyExtractor(config.BusyConfigFromEnv()),
		itemRepo.NewItemRepository(db),
		syncrunRepo.NewSyncRunRepository(db),
		config.AppConfig.CachePath,
		true,
	)
	res, err := svc.Sync(context.Background())
	if err != nil {
		log.Printf("syncjob: failed: %v", err)
		return
	}
	log.Printf("syncjob: %d rows -> %s in %s", res.Rows, res.SavedTo, res.Duration)
}

// PublishJob exports the cache snapshot and pushes items.json upstream.
func PublishJob(args ...string) {
	config.LoadAppConfig()
	db, err := config.NewCacheDB(config.AppConfig.CachePath)
	if err != nil {
		log.Printf("publishjob: open cache: %v", err)
		return
	}
	defer closeDB(db)

	var publisher exportService.Publisher
	if gh := ghub.NewFromEnv(); gh.Configured() {
		publisher = gh
	}
	svc := exportService.NewService(itemRepo.NewItemRepository(db), publisher, config.AppConfig.JSONPath)
	res, err := svc.Export(context.Background())
	if err != nil {
		log.Printf("publishjob: %v", err)
		return
	}
	if res.Uploaded {
		log.Printf("publishjob: %d items -> %s (published %s)", res.Rows, res.Path, res.URL)
	} else {
		log.Printf("publishjob: %d items -> %s (no publisher configured)", res.Rows, res.Path)
	}
}

func closeDB(db *gorm.DB) {
	if sqlDB, err := db.DB(); err == nil {
		sqlDB.Close()
	}
}
