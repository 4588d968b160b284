package cmd

import (
	"context"
	"fmt"

	"circuit-manager/core/config"
	"circuit-manager/core/database"
	"circuit-manager/core/logger"
	"circuit-manager/core/provider"
	"circuit-manager/core/storage"
	"circuit-manager/feature/circuits"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	// Flags for sync command
	syncConfigID uint
	syncAll      bool
	syncTestOnly bool
)

// syncCmd runs provider synchronization from the command line.
var syncCmd = &cobra.Command{
	Use:   "sync",
	Short: "Run provider synchronization",
	Long: `Run circuit synchronization against carrier APIs.

Examples:
  # Sync one configuration, regardless of its schedule
  sync --config 3

  # Test a configuration's credentials without syncing
  sync --config 3 --test

  # Sync every enabled configuration whose interval has elapsed
  sync --all`,
	RunE: runSync,
}

func init() {
	syncCmd.Flags().UintVar(&syncConfigID, "config", 0, "Configuration ID to sync")
	syncCmd.Flags().BoolVar(&syncAll, "all", false, "Sync every due configuration")
	syncCmd.Flags().BoolVar(&syncTestOnly, "test", false, "Only test the connection, do not sync")

	RootCmd.AddCommand(syncCmd)
}

func runSync(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	if syncConfigID == 0 && !syncAll {
		return fmt.Errorf("either --config or --all is required")
	}
	if syncTestOnly && syncConfigID == 0 {
		return fmt.Errorf("--test requires --config")
	}

	// Load configuration
	cfg, err := config.LoadConfig(".")
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	// Initialize logger
	l, err := logger.New(&cfg.Log)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}

	// Connect to database
	db, err := database.Connect(cfg.Database)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}

	// Connect to storage
	client, err := storage.NewClient(cfg.Storage)
	if err != nil {
		return fmt.Errorf("failed to connect to storage: %w", err)
	}

	svc := circuits.NewFeature(db, client, cfg.Storage.Bucket, l, cfg.Sync).Service()

	if syncTestOnly {
		l.Info("Testing provider connection", zap.Uint("config_id", syncConfigID))
		result, err := svc.TestConnection(ctx, syncConfigID)
		if err != nil {
			return fmt.Errorf("connection test failed: %w", err)
		}
		if result.Success {
			fmt.Printf("Connection OK: %s\n", result.Message)
			return nil
		}
		return fmt.Errorf("connection test failed: %s", result.Message)
	}

	if syncAll {
		l.Info("Syncing all due configurations")
		summaries, err := svc.SyncDue(ctx)
		if err != nil {
			return fmt.Errorf("bulk sync failed: %w", err)
		}
		if len(summaries) == 0 {
			l.Info("No configurations were due")
			return nil
		}
		for _, s := range summaries {
			printRunSummary(s)
		}
		return nil
	}

	l.Info("Syncing configuration", zap.Uint("config_id", syncConfigID))
	summary, err := svc.Sync(ctx, syncConfigID)
	if err != nil {
		return fmt.Errorf("sync failed: %w", err)
	}
	printRunSummary(summary)
	return nil
}

// printRunSummary prints a formatted run summary to the console.
func printRunSummary(s *provider.RunSummary) {
	fmt.Println("\n--- Sync Run Summary ---")
	fmt.Printf("Config:      %d (%s)\n", s.ConfigID, s.ProviderType)
	fmt.Printf("Status:      %s\n", s.Status)
	fmt.Printf("Message:     %s\n", s.Message())
	fmt.Printf("Records:     %d total, %d synced, %d skipped, %d failed\n",
		s.Total, s.Synced, s.Skipped, s.Failed)
	fmt.Printf("Duration:    %s\n", s.FinishedAt.Sub(s.StartedAt))

	if len(s.Warnings) > 0 {
		fmt.Println("\nWarnings:")
		for _, w := range s.Warnings {
			fmt.Printf("- %s\n", w)
		}
	}

	if len(s.Errors) > 0 {
		fmt.Println("\nRecord errors:")
		for _, e := range s.Errors {
			fmt.Printf("- %s\n", e)
		}
	}
	fmt.Println("------------------------")
}
