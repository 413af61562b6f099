package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"snip/internal/health"
)

func newHealthCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "health",
		Short: "Check the environment the export pipeline depends on",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			logger, err := ctx.ensureLogger()
			if err != nil {
				return err
			}
			handle, err := ctx.engineHandle()
			if err != nil {
				return err
			}

			reporter := health.NewReporter(cfg, handle, logger)
			results := reporter.Results(cmd.Context())

			rows := make([][]string, 0, len(results))
			for _, result := range results {
				status := "ok"
				if !result.Passed {
					status = "FAILED"
				}
				rows = append(rows, []string{result.Name, status, result.Detail})
			}

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, renderTable([]string{"Check", "Status", "Detail"}, rows))
			if !health.Ready(results) {
				return fmt.Errorf("one or more health checks failed")
			}
			return nil
		},
	}
}
