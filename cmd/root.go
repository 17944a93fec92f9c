package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/Up-Bizz/ContactVerifier/internal/config"
)

var cfg *config.Config

var rootCmd = &cobra.Command{
	Use:   "contact-verifier",
	Short: "Verify decision-maker contact details against their source pages",
	Long:  "Loads each record's source URL in a headless browser and checks whether the person's name, phone number and job title actually appear on the page, with OCR and translation fallbacks.",
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
