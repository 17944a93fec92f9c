package main

import (
	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/Up-Bizz/ContactVerifier/internal/ingest"
)

var importFilePath string

var importCmd = &cobra.Command{
	Use:   "import",
	Short: "Import contact records from a CSV or XLSX file",
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx := cmd.Context()

		st, err := initStore(ctx)
		if err != nil {
			return err
		}
		defer st.Close()

		recs, err := ingest.LoadFile(importFilePath)
		if err != nil {
			return eris.Wrap(err, "load input file")
		}

		inserted, err := st.InsertRecords(ctx, recs)
		if err != nil {
			return eris.Wrap(err, "insert records")
		}

		zap.L().Info("import complete",
			zap.String("file", importFilePath),
			zap.Int("read", len(recs)),
			zap.Int("inserted", inserted),
			zap.Int("duplicates_skipped", len(recs)-inserted),
		)
		return nil
	},
}

func init() {
	importCmd.Flags().StringVar(&importFilePath, "file", "", "path to CSV or XLSX file (required)")
	_ = importCmd.MarkFlagRequired("file")
	rootCmd.AddCommand(importCmd)
}
