package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/AnuroopSrivastava/Verdictify/internal/parser"
)

var productID string

func init() {
	inspectCmd.Flags().StringVar(&productID, "id", "", "product id to report (defaults to the file name)")
	rootCmd.AddCommand(inspectCmd)
}

// inspect runs the pipeline over a page saved to disk, no proxy involved.
var inspectCmd = &cobra.Command{
	Use:   "inspect <page.html>",
	Short: "Analyzes a saved product page offline.",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		f, err := os.Open(args[0])
		if err != nil {
			return err
		}
		defer f.Close()

		page, err := parser.Parse(f, "text/html")
		if err != nil {
			return fmt.Errorf("parse %s: %w", args[0], err)
		}

		svc := newService()
		n, err := svc.CoerceLimit(limit)
		if err != nil {
			return err
		}
		id := productID
		if id == "" {
			id = args[0]
		}
		return render(os.Stdout, svc.AnalyzePage(page, id, n), asJSON)
	},
}
