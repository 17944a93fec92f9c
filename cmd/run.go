package main

import (
	"os/signal"
	"syscall"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/Up-Bizz/ContactVerifier/internal/batch"
	"github.com/Up-Bizz/ContactVerifier/internal/browser"
	"github.com/Up-Bizz/ContactVerifier/internal/ocr"
	"github.com/Up-Bizz/ContactVerifier/internal/verify"
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Verify all unprocessed records",
	Long:  "Processes records one at a time until none are left. Interrupted runs resume where they stopped.",
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		st, err := initStore(ctx)
		if err != nil {
			return err
		}
		defer st.Close()

		session, err := browser.New(ctx, cfg.Browser)
		if err != nil {
			return eris.Wrap(err, "start browser")
		}
		defer session.Close()

		recognizer, err := ocr.NewRecognizer(cfg.OCR)
		if err != nil {
			return eris.Wrap(err, "init recognizer")
		}

		verifier := verify.NewVerifier(cfg.Verify, session, recognizer, session)
		runner := batch.New(st, verifier)

		summary, err := runner.Run(ctx)
		if err != nil {
			return eris.Wrap(err, "batch run")
		}

		zap.L().Info("verification complete",
			zap.Int("processed", summary.Processed),
			zap.Int("errors", summary.Errors),
			zap.Int("names_found", summary.NamesFound),
		)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(runCmd)
}
