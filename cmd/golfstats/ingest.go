package main

import (
	"fmt"
	"golf-journey/internal/service"
	"io"
	"strconv"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

var importCmd = &cobra.Command{
	Use:   "import FILE...",
	Short: "Import Garmin scorecard-detail JSON dumps into the database",
	Args:  cobra.MinimumNArgs(1),
	RunE: withApp(func(cmd *cobra.Command, args []string, a *app) error {
		rep, err := a.ingest.ImportFiles(cmd.Context(), args)
		if err != nil {
			return err
		}
		return render(cmd.OutOrStdout(), rep, func(w io.Writer) { importTable(w, rep) })
	}),
}

var syncCmd = &cobra.Command{
	Use:   "sync SCORECARD_ID...",
	Short: "Fetch scorecards from Garmin Connect by id (needs GARMIN_API_TOKEN)",
	Args:  cobra.MinimumNArgs(1),
	RunE: withApp(func(cmd *cobra.Command, args []string, a *app) error {
		ids := make([]int64, len(args))
		for i, arg := range args {
			id, err := strconv.ParseInt(arg, 10, 64)
			if err != nil || id <= 0 {
				return fmt.Errorf("invalid scorecard id %q", arg)
			}
			ids[i] = id
		}

		rep, err := a.ingest.SyncScorecards(cmd.Context(), ids)
		if err != nil {
			return err
		}
		return render(cmd.OutOrStdout(), rep, func(w io.Writer) { importTable(w, rep) })
	}),
}

func init() {
	rootCmd.AddCommand(importCmd)
	rootCmd.AddCommand(syncCmd)
}

func importTable(out io.Writer, rep *service.ImportReport) {
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "DOCUMENTS\tSCORECARDS\tSNAPSHOTS\tREJECTED\n")
	fmt.Fprintf(w, "%d\t%d\t%d\t%d\n", rep.Documents, rep.Scorecards, rep.Snapshots, len(rep.Rejected))
	w.Flush()

	if rep.RateLimit != nil && rep.RateLimit.Throttled > 0 {
		fmt.Fprintf(out, "Garmin throttled %d request(s), last Retry-After %s\n", rep.RateLimit.Throttled, rep.RateLimit.RetryAfter)
	}
	if len(rep.Rejected) > 0 {
		fmt.Fprintln(out)
		excludedTable(out, rep.Rejected)
	}
}
