package main

import (
	"os"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/LucasDotTrade/lucas-brain/internal/config"
)

var cfg *config.Config

var rootCmd = &cobra.Command{
	Use:   "lucas",
	Short: "Trade document package validation engine",
	Long:  "Validates export document packages against UCP 600-style cross-reference rules: extracts structured fields from each document, compares them across the package, and issues a GO/WAIT/NO_GO verdict.",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		c, err := config.Load()
		if err != nil {
			return eris.Wrap(err, "cmd: load config")
		}
		cfg = c

		if err := config.InitLogger(cfg.Log); err != nil {
			return eris.Wrap(err, "cmd: init logger")
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
