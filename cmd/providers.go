package cmd

import (
	"fmt"

	"circuit-manager/core/provider"

	"github.com/spf13/cobra"

	_ "circuit-manager/feature/providers/lumen"
)

// providersCmd lists the compiled-in provider adapter types.
var providersCmd = &cobra.Command{
	Use:   "providers",
	Short: "List registered provider types",
	Long:  `Lists the provider adapter types this build supports. A configuration's provider_type must be one of these.`,
	Run: func(cmd *cobra.Command, args []string) {
		keys := provider.RegisteredKeys()
		if len(keys) == 0 {
			fmt.Println("No provider adapters registered.")
			return
		}
		for _, key := range keys {
			fmt.Println(key)
		}
	},
}

func init() {
	RootCmd.AddCommand(providersCmd)
}
