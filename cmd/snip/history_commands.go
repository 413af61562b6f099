package main

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"snip/internal/history"
	"snip/internal/timecode"
)

func newHistoryCommand(ctx *commandContext) *cobra.Command {
	historyCmd := &cobra.Command{
		Use:   "history",
		Short: "Inspect recorded export jobs",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runHistoryList(ctx, cmd, 20)
		},
	}

	var limit int
	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List recorded export jobs, newest first",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runHistoryList(ctx, cmd, limit)
		},
	}
	listCmd.Flags().IntVarP(&limit, "limit", "n", 20, "Maximum number of jobs to show (0 for all)")

	var clearAll bool
	clearCmd := &cobra.Command{
		Use:   "clear",
		Short: "Remove finished export jobs from the journal",
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := ctx.openStore()
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			removed, err := store.Clear(cmd.Context(), clearAll)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Removed %d job(s)\n", removed)
			return nil
		},
	}
	clearCmd.Flags().BoolVar(&clearAll, "all", false, "Also remove pending and in-flight jobs")

	historyCmd.AddCommand(listCmd)
	historyCmd.AddCommand(clearCmd)
	return historyCmd
}

func runHistoryList(ctx *commandContext, cmd *cobra.Command, limit int) error {
	store, err := ctx.openStore()
	if err != nil {
		return err
	}
	defer func() { _ = store.Close() }()

	jobs, err := store.List(cmd.Context(), limit)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if len(jobs) == 0 {
		fmt.Fprintln(out, "No export jobs recorded")
		return nil
	}

	rows := make([][]string, 0, len(jobs))
	for _, job := range jobs {
		rows = append(rows, []string{
			shortID(job.ID),
			job.SourceName,
			fmt.Sprintf("%s-%s", timecode.FormatDisplay(job.StartSeconds), timecode.FormatDisplay(job.EndSeconds)),
			string(job.Status),
			historyOutcome(job),
			job.UpdatedAt.Local().Format(time.DateTime),
		})
	}
	fmt.Fprintln(out, renderTable([]string{"ID", "Source", "Range", "Status", "Outcome", "Updated"}, rows))
	return nil
}

func historyOutcome(job *history.Job) string {
	switch job.Status {
	case history.StatusCompleted:
		return job.ArtifactName
	case history.StatusFailed, history.StatusRejected:
		return job.ErrorMessage
	default:
		return fmt.Sprintf("%d%%", job.ProgressPercent)
	}
}

func shortID(id string) string {
	if i := strings.IndexByte(id, '-'); i > 0 {
		return id[:i]
	}
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
