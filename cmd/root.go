package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/genomebank/taxofetch/internal/config"
)

var cfg *config.Config

var rootCmd = &cobra.Command{
	Use:   "taxofetch",
	Short: "Resolve species lists to NCBI reference genome assemblies",
	Long:  "Matches target species names against NCBI's RefSeq and GenBank assembly catalogs, falling back to a genus-level proxy when a species has no assembly, and emits an audit report plus a download script.",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		c, err := config.Load()
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
		cfg = c

		if err := config.InitLogger(cfg.Log); err != nil {
			return fmt.Errorf("init logger: %w", err)
		}

		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		_ = zap.L().Sync()
	},
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
