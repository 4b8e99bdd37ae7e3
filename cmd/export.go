package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"libas.GO/config"
	"libas.GO/core/ghub"
	itemRepo "libas.GO/model/repository/item"
	exportService "libas.GO/service/export"
)

var exportSkipUpload bool

var exportCmd = &cobra.Command{
	Use:   "items:export",
	Short: "Export the cached items to items.json and publish it",
	Run: func(cmd *cobra.Command, args []string) {
		config.LoadAppConfig()

		db, err := config.NewCacheDB(config.AppConfig.CachePath)
		if err != nil {
			fmt.Printf("Failed to open cache: %v\n", err)
			return
		}

		var publisher exportService.Publisher
		if !exportSkipUpload {
			if gh := ghub.NewFromEnv(); gh.Configured() {
				publisher = gh
			} else {
				fmt.Println("GitHub publisher not configured, writing local file only")
			}
		}

		svc := exportService.NewService(itemRepo.NewItemRepository(db), publisher, config.AppConfig.JSONPath)
		res, err := svc.Export(context.Background())
		if err != nil {
			fmt.Printf("Export failed: %v\n", err)
			if res != nil {
				fmt.Printf("Local snapshot still written: %s (%d items)\n", res.Path, res.Rows)
			}
			return
		}
		if res.Uploaded {
			fmt.Printf("Exported %d items to %s and published to %s\n", res.Rows, res.Path, res.URL)
		} else {
			fmt.Printf("Exported %d items to %s\n", res.Rows, res.Path)
		}
	},
}

func init() {
	exportCmd.Flags().BoolVar(&exportSkipUpload, "local-only", false, "Skip the GitHub upload")
	rootCmd.AddCommand(exportCmd)
}
