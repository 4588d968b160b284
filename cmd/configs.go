package cmd

import (
	"context"
	"fmt"
	"time"

	"circuit-manager/core/config"
	"circuit-manager/core/database"
	"circuit-manager/core/logger"
	"circuit-manager/core/provider"
	"circuit-manager/core/storage"
	"circuit-manager/feature/circuits"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// configsCmd lists provider API configurations and their schedule state.
var configsCmd = &cobra.Command{
	Use:   "configs",
	Short: "List provider API configurations",
	Long:  `Lists every provider API configuration with its sync schedule, last run status, and whether it is currently due.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()

		cfg, err := config.LoadConfig(".")
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}

		logg, err := logger.New(&cfg.Log)
		if err != nil {
			return fmt.Errorf("failed to create logger: %w", err)
		}

		db, err := database.Connect(cfg.Database)
		if err != nil {
			return fmt.Errorf("failed to connect to database: %w", err)
		}

		client, err := storage.NewClient(cfg.Storage)
		if err != nil {
			return fmt.Errorf("failed to create storage client: %w", err)
		}

		svc := circuits.NewFeature(db, client, cfg.Storage.Bucket, logg, cfg.Sync).Service()

		rows, err := svc.Configs(ctx)
		if err != nil {
			logg.Error("Failed to list configurations", zap.Error(err))
			return err
		}

		if len(rows) == 0 {
			fmt.Println("No provider API configurations found.")
			return nil
		}

		now := time.Now()
		fmt.Println("\n--- Provider API Configurations ---")
		for _, row := range rows {
			engineCfg := provider.APIConfig{
				Enabled:  row.SyncEnabled,
				Interval: time.Duration(row.SyncIntervalHours) * time.Hour,
				LastRun:  row.LastSync,
			}

			lastSync := "never"
			if row.LastSync != nil {
				lastSync = row.LastSync.Format(time.RFC3339)
			}

			fmt.Printf("[%d] provider %d / %s\n", row.ID, row.ProviderID, row.ProviderType)
			fmt.Printf("    endpoint:  %s\n", row.APIEndpoint)
			fmt.Printf("    enabled:   %v (every %dh)\n", row.SyncEnabled, row.SyncIntervalHours)
			fmt.Printf("    last sync: %s [%s] %s\n", lastSync, row.SyncStatus, row.SyncMessage)
			fmt.Printf("    due:       %v\n", engineCfg.Due(now))
		}
		fmt.Println("-----------------------------------")
		return nil
	},
}

func init() {
	RootCmd.AddCommand(configsCmd)
}
