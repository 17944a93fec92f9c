package main

import (
	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/Up-Bizz/ContactVerifier/internal/split"
)

var (
	splitFilePath string
	splitOutDir   string
	splitParts    int
	splitToCSV    bool
)

var splitCmd = &cobra.Command{
	Use:   "split",
	Short: "Split an input file into parts for parallel manual runs",
	RunE: func(cmd *cobra.Command, _ []string) error {
		written, err := split.File(splitFilePath, splitOutDir, splitParts, splitToCSV)
		if err != nil {
			return eris.Wrap(err, "split file")
		}

		zap.L().Info("split complete",
			zap.String("input", splitFilePath),
			zap.Strings("parts", written),
		)
		return nil
	},
}

func init() {
	splitCmd.Flags().StringVar(&splitFilePath, "file", "", "path to CSV or XLSX file (required)")
	splitCmd.Flags().StringVar(&splitOutDir, "out-dir", "data", "directory for the part files")
	splitCmd.Flags().IntVar(&splitParts, "parts", 3, "number of parts")
	splitCmd.Flags().BoolVar(&splitToCSV, "csv", false, "write parts as CSV regardless of input format")
	_ = splitCmd.MarkFlagRequired("file")
	rootCmd.AddCommand(splitCmd)
}
