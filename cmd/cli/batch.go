package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/AnuroopSrivastava/Verdictify/internal/ioformats"
)

var (
	batchInput       string
	batchOutput      string
	batchConcurrency int
)

func init() {
	batchCmd.Flags().StringVar(&batchInput, "input", "", "input file (csv with 'url' and optional 'limit' columns, or ndjson)")
	batchCmd.Flags().StringVar(&batchOutput, "output", "", "output NDJSON file (default stdout)")
	batchCmd.Flags().IntVar(&batchConcurrency, "concurrency", 0, "worker concurrency (default $BATCH_CONCURRENCY)")
	_ = batchCmd.MarkFlagRequired("input")
	rootCmd.AddCommand(batchCmd)
}

var batchCmd = &cobra.Command{
	Use:   "batch",
	Short: "Analyzes every product listed in a CSV or NDJSON file.",
	RunE: func(cmd *cobra.Command, args []string) error {
		jobs, err := ioformats.ReadJobs(batchInput)
		if err != nil {
			return fmt.Errorf("read input: %w", err)
		}
		for i := range jobs {
			if jobs[i].Limit == 0 {
				jobs[i].Limit = limit
			}
		}

		concurrency := batchConcurrency
		if concurrency <= 0 {
			concurrency = cfg.BatchConcurrency
		}
		results := newService().AnalyzeBatch(cmd.Context(), jobs, concurrency)

		w := os.Stdout
		if batchOutput != "" {
			f, err := os.Create(batchOutput)
			if err != nil {
				return fmt.Errorf("create output: %w", err)
			}
			defer f.Close()
			w = f
		}
		lgr.Infof("analyzed %d products", len(results))
		return ioformats.WriteNDJSON(w, results)
	},
}
