package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/okian/nora/internal/smoke"
	"github.com/okian/nora/pkg/logger"
)

func newSmokeCmd() *cobra.Command {
	cfg := smoke.Config{}
	cmd := &cobra.Command{
		Use:   "smoke",
		Short: "Drive a freshly started server through the matching scenarios",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := logger.InitWriter(cmd.ErrOrStderr()); err != nil {
				return err
			}
			if cfg.Verbose {
				_ = logger.SetLevelString("debug")
			}
			stats, err := smoke.Run(cmd.Context(), &cfg)
			if err != nil {
				return err
			}
			_, err = fmt.Fprintf(cmd.OutOrStdout(), "%d/%d steps passed, %d requests in %s\n",
				stats.Passed, stats.Steps, stats.Requests, stats.Duration)
			return err
		},
	}
	cmd.Flags().StringVar(&cfg.BaseURL, "url", smoke.DefaultBaseURL, "base URL of the service")
	cmd.Flags().DurationVar(&cfg.Timeout, "timeout", smoke.DefaultTimeout, "HTTP request timeout")
	cmd.Flags().IntVar(&cfg.Parallel, "parallel", smoke.DefaultParallel, "concurrent duplicate submissions")
	cmd.Flags().BoolVar(&cfg.Mobile, "mobile", false, "send navigation intents as the mobile device class")
	cmd.Flags().BoolVar(&cfg.Verbose, "verbose", false, "log every response body")
	return cmd
}
