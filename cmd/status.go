package main

import (
	"fmt"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"

	"github.com/Up-Bizz/ContactVerifier/internal/model"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show batch progress",
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx := cmd.Context()

		st, err := initStore(ctx)
		if err != nil {
			return err
		}
		defer st.Close()

		counts, err := st.CountByStatus(ctx)
		if err != nil {
			return eris.Wrap(err, "count records")
		}

		total := 0
		for _, status := range []model.RecordStatus{
			model.StatusNotProcessed,
			model.StatusProcessing,
			model.StatusProcessed,
			model.StatusError,
		} {
			n := counts[status]
			total += n
			fmt.Printf("%-15s %d\n", status, n)
		}
		fmt.Printf("%-15s %d\n", "total", total)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(statusCmd)
}
