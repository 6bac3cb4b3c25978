package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/AnuroopSrivastava/Verdictify/internal/analyzer"
	"github.com/AnuroopSrivastava/Verdictify/internal/config"
	"github.com/AnuroopSrivastava/Verdictify/internal/crawler"
	"github.com/AnuroopSrivastava/Verdictify/pkg/logger"
)

var (
	cfg *config.Config
	lgr *logger.Logger

	limit  int
	asJSON bool
	tuning string
)

var rootCmd = &cobra.Command{
	Use:   "verdictify",
	Short: "verdictify turns a Myntra product page into a buying verdict.",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		cfg, err = config.Load()
		if err != nil {
			return err
		}
		if tuning != "" {
			t, err := config.LoadTuning(tuning)
			if err != nil {
				return err
			}
			cfg.Tuning = t
		}
		lgr = logger.NewWithLevel(cfg.LogLevel)
		return nil
	},
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().IntVar(&limit, "limit", 0, "maximum number of reviews to harvest (0 = default)")
	rootCmd.PersistentFlags().BoolVar(&asJSON, "json", false, "print the report as JSON")
	rootCmd.PersistentFlags().StringVar(&tuning, "tuning", "", "YAML file overriding thresholds (default $TUNING_FILE)")
}

func newService() *analyzer.Service {
	return analyzer.New(crawler.NewProxyClient(cfg.Scraper, lgr), cfg.SiteHost, cfg.Tuning, lgr)
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
