package main

import (
	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/Up-Bizz/ContactVerifier/internal/ingest"
	"github.com/Up-Bizz/ContactVerifier/internal/store"
)

var exportOutPath string

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export all records with their verification results",
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx := cmd.Context()

		st, err := initStore(ctx)
		if err != nil {
			return err
		}
		defer st.Close()

		recs, err := st.ListRecords(ctx, store.RecordFilter{})
		if err != nil {
			return eris.Wrap(err, "list records")
		}

		if err := ingest.ExportFile(exportOutPath, recs); err != nil {
			return eris.Wrap(err, "write export")
		}

		zap.L().Info("export complete",
			zap.String("file", exportOutPath),
			zap.Int("records", len(recs)),
		)
		return nil
	},
}

func init() {
	exportCmd.Flags().StringVar(&exportOutPath, "out", "", "output path ending in .csv or .xlsx (required)")
	_ = exportCmd.MarkFlagRequired("out")
	rootCmd.AddCommand(exportCmd)
}
