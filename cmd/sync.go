package cmd

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"libas.GO/config"
	itemRepo "libas.GO/model/repository/item"
	syncrunRepo "libas.GO/model/repository/syncrun"
	syncService "libas.GO/service/sync"
)

var syncCmd = &cobra.Command{
	Use:   "busy:sync",
	Short: "Pull the item snapshot from Busy into the local cache",
	Run: func(cmd *cobra.Command, args []string) {
		config.LoadAppConfig()

		db, err := config.NewCacheDB(config.AppConfig.CachePath)
		if err != nil {
			fmt.Printf("Failed to open cache: %v\n", err)
			return
		}

		// CLI runs bypass the ALLOW_SYNC gate: invoking busy:sync on a box
		// without the driver just fails on connect.
		svc := syncService.NewService(
			syncService.NewBusyExtractor(config.BusyConfigFromEnv()),
			itemRepo.NewItemRepository(db),
			syncrunRepo.NewSyncRunRepository(db),
			config.AppConfig.CachePath,
			true,
		)
		res, err := svc.Sync(context.Background())
		if err != nil {
			fmt.Printf("Sync failed: %v\n", err)
			return
		}
		fmt.Printf("Sync completed: %d rows -> %s (%s)\n",
			res.Rows, res.SavedTo, res.Duration.Round(time.Millisecond))
	},
}

func init() {
	rootCmd.AddCommand(syncCmd)
}
