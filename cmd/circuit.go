package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strconv"

	"circuit-manager/core/config"
	"circuit-manager/core/database"
	"circuit-manager/core/logger"
	"circuit-manager/core/storage"
	"circuit-manager/feature/circuits"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// circuitDetailCmd represents the top-level circuit command
var circuitDetailCmd = &cobra.Command{
	Use:   "circuit [id]",
	Short: "View a circuit and its synced carrier data",
	Long:  `Shows a circuit together with the cost, ticket and path data the synchronization engine has collected for it.`,
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		runCircuitDetail(cmd.Context(), args[0])
	},
}

func init() {
	RootCmd.AddCommand(circuitDetailCmd)
}

func runCircuitDetail(ctx context.Context, arg string) {
	id, err := strconv.ParseUint(arg, 10, 32)
	if err != nil {
		fmt.Printf("Invalid circuit id %q\n", arg)
		os.Exit(1)
	}

	cfg, err := config.LoadConfig(".")
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}

	logg, err := logger.New(&cfg.Log)
	if err != nil {
		fmt.Printf("Failed to create logger: %v\n", err)
		os.Exit(1)
	}

	db, err := database.Connect(cfg.Database)
	if err != nil {
		logg.Fatal("Failed to connect to database", zap.Error(err))
	}

	client, err := storage.NewClient(cfg.Storage)
	if err != nil {
		logg.Fatal("Failed to create storage client", zap.Error(err))
	}

	svc := circuits.NewFeature(db, client, cfg.Storage.Bucket, logg, cfg.Sync).Service()

	circuit, err := svc.Circuit(ctx, uint(id))
	if err != nil {
		logg.Fatal("Failed to load circuit", zap.Error(err))
	}

	// Pretty Console Output
	fmt.Println("\n--- Circuit Detail View ---")
	fmt.Printf("ID:             %d\n", circuit.ID)
	fmt.Printf("CID:            %s\n", circuit.CID)
	fmt.Printf("Name:           %s\n", circuit.Name)
	fmt.Printf("Status:         %s\n", circuit.Status)
	fmt.Println("---------------------------")

	cost, err := svc.CircuitCost(ctx, uint(id))
	switch {
	case errors.Is(err, circuits.ErrNotFound):
		fmt.Println("Cost:           not synced")
	case err != nil:
		logg.Fatal("Failed to load cost", zap.Error(err))
	default:
		fmt.Printf("Cost:           NRC %s, MRC %s %s (account %s)\n",
			formatCharge(cost.NRC), formatCharge(cost.MRC), cost.Currency, cost.BillingAccount)
	}

	tickets, err := svc.CircuitTickets(ctx, uint(id))
	if err != nil {
		logg.Fatal("Failed to load tickets", zap.Error(err))
	}
	fmt.Printf("Tickets:        %d\n", len(tickets))
	for _, tk := range tickets {
		fmt.Printf("- [%s/%s] %s: %s\n", tk.Status, tk.Priority, tk.TicketNumber, tk.Subject)
	}

	path, err := svc.CircuitPath(ctx, uint(id))
	switch {
	case errors.Is(err, circuits.ErrNotFound):
		fmt.Println("Path:           not synced")
	case err != nil:
		logg.Fatal("Failed to load path", zap.Error(err))
	default:
		fmt.Printf("Path:           archive %s (sha %.12s)\n", path.ArchiveKey, path.PayloadSHA)
	}

	contracts, err := svc.CircuitContracts(ctx, uint(id))
	if err != nil {
		logg.Fatal("Failed to load contracts", zap.Error(err))
	}
	fmt.Printf("Contracts:      %d\n", len(contracts))
	for _, ct := range contracts {
		fmt.Printf("- %s (since %s)\n", ct.ContractNumber, ct.StartDate.Format("2006-01-02"))
	}
	fmt.Println("---------------------------")
}

func formatCharge(v *float64) string {
	if v == nil {
		return "n/a"
	}
	return fmt.Sprintf("%.2f", *v)
}
