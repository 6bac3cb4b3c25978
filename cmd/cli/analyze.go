package main

import (
	"os"

	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(analyzeCmd)
}

var analyzeCmd = &cobra.Command{
	Use:   "analyze <product-url>",
	Short: "Fetches a product page through the scraping proxy and prints its verdict.",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		report, err := newService().Analyze(cmd.Context(), args[0], limit)
		if err != nil {
			return err
		}
		return render(os.Stdout, report, asJSON)
	},
}
