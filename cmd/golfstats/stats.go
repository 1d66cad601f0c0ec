package main

import (
	"bytes"
	"fmt"
	"golf-journey/internal/domain"
	"golf-journey/internal/report"
	"io"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

var (
	courseID       int
	holesCompleted int
	showOutcomes   bool
	chartPath      string
	xlsxPath       string
)

func filter() domain.RoundFilter {
	return domain.RoundFilter{CourseID: courseID, HolesCompleted: holesCompleted}
}

var parsCmd = &cobra.Command{
	Use:   "pars",
	Short: "Show the par of every hole of a course layout",
	RunE: withApp(func(cmd *cobra.Command, _ []string, a *app) error {
		table, err := a.stats.HolePars(cmd.Context(), courseID, holesCompleted)
		if err != nil {
			return err
		}
		return render(cmd.OutOrStdout(), table, func(out io.Writer) {
			w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "HOLE\tPAR")
			for _, hp := range table.Pars {
				fmt.Fprintf(w, "%d\t%d\n", hp.Hole, hp.Par)
			}
			w.Flush()
		})
	}),
}

var puttingCmd = &cobra.Command{
	Use:   "putting",
	Short: "Average putts per hole",
	RunE: withApp(func(cmd *cobra.Command, _ []string, a *app) error {
		table, err := a.stats.PuttingAverage(cmd.Context(), filter())
		if err != nil {
			return err
		}
		return render(cmd.OutOrStdout(), table, func(out io.Writer) {
			w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "HOLE\tAVG PUTTS\tROUNDS")
			for _, r := range table.Rows {
				fmt.Fprintf(w, "%d\t%.2f\t%d\n", r.Hole, r.Average, r.Observations)
			}
			w.Flush()
			writeExcluded(out, table.Excluded)
		})
	}),
}

var scoringCmd = &cobra.Command{
	Use:   "scoring",
	Short: "Average strokes per hole next to the hole's par",
	RunE: withApp(func(cmd *cobra.Command, _ []string, a *app) error {
		table, err := a.stats.ScoringAverage(cmd.Context(), filter())
		if err != nil {
			return err
		}
		return render(cmd.OutOrStdout(), table, func(out io.Writer) {
			w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "HOLE\tPAR\tAVG STROKES\tROUNDS")
			for _, r := range table.Rows {
				fmt.Fprintf(w, "%d\t%s\t%.2f\t%d\n", r.Hole, optInt(r.Par), r.AverageStrokes, r.Observations)
			}
			w.Flush()
			writeExcluded(out, table.Excluded)
		})
	}),
}

var fairwaysCmd = &cobra.Command{
	Use:   "fairways",
	Short: "Fairway accuracy per hole (--outcomes for the raw breakdown)",
	RunE: withApp(func(cmd *cobra.Command, _ []string, a *app) error {
		if showOutcomes {
			counts, err := a.stats.FairwayOutcomes(cmd.Context(), filter())
			if err != nil {
				return err
			}
			return render(cmd.OutOrStdout(), counts, func(out io.Writer) {
				w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
				fmt.Fprintln(w, "HOLE\tOUTCOME\tCOUNT")
				for _, c := range counts {
					fmt.Fprintf(w, "%d\t%s\t%d\n", c.Hole, c.Outcome, c.Count)
				}
				w.Flush()
			})
		}

		table, err := a.stats.FairwayAccuracy(cmd.Context(), filter())
		if err != nil {
			return err
		}
		return render(cmd.OutOrStdout(), table, func(out io.Writer) {
			w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "HOLE\tHITS\tATTEMPTS\tACCURACY")
			for _, r := range table.Rows {
				fmt.Fprintf(w, "%d\t%d\t%d\t%s\n", r.Hole, r.Hits, r.Attempts, percent(r.Accuracy))
			}
			w.Flush()
			writeExcluded(out, table.Excluded)
		})
	}),
}

var girCmd = &cobra.Command{
	Use:   "gir",
	Short: "Greens in regulation per hole",
	RunE: withApp(func(cmd *cobra.Command, _ []string, a *app) error {
		table, err := a.stats.GreensInRegulation(cmd.Context(), filter())
		if err != nil {
			return err
		}
		return render(cmd.OutOrStdout(), table, func(out io.Writer) {
			w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "HOLE\tHITS\tATTEMPTS\tGIR")
			for _, r := range table.Rows {
				fmt.Fprintf(w, "%d\t%d\t%d\t%s\n", r.Hole, r.Hits, r.Attempts, percent(r.HitPercentage))
			}
			w.Flush()
			writeExcluded(out, table.Excluded)
		})
	}),
}

var trendCmd = &cobra.Command{
	Use:   "trend",
	Short: "Strokes and putts per round over time (--chart to save a PNG)",
	RunE: withApp(func(cmd *cobra.Command, _ []string, a *app) error {
		trend, err := a.stats.RoundTrend(cmd.Context(), filter())
		if err != nil {
			return err
		}

		if chartPath != "" {
			png, err := report.RenderTrendChart(trend)
			if err != nil {
				return fmt.Errorf("failed to render chart: %w", err)
			}
			if err := os.WriteFile(chartPath, png, 0o644); err != nil {
				return fmt.Errorf("failed to write chart: %w", err)
			}
			a.logger.Info().Str("path", chartPath).Msg("trend chart written")
		}

		return render(cmd.OutOrStdout(), trend, func(out io.Writer) {
			w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "DATE\tSCORECARD\tHOLES\tSTROKES\tPUTTS\tPUTTS/HOLE")
			for _, p := range trend.Points {
				fmt.Fprintf(w, "%s\t%s\t%d/%d\t%d\t%d\t%.2f\n",
					p.StartTime.Format("2006-01-02"), p.ScorecardID, p.HolesPlayed, p.HolesCompleted, p.Strokes, p.Putts, p.PuttsPerHole)
			}
			w.Flush()
			fmt.Fprintf(out, "\nmean strokes %.2f, std dev %.2f\n", trend.MeanStrokes, trend.StdDevStrokes)
		})
	}),
}

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "All per-hole statistics side by side (--xlsx to save a workbook)",
	RunE: withApp(func(cmd *cobra.Command, _ []string, a *app) error {
		rep, err := a.stats.CourseReport(cmd.Context(), filter())
		if err != nil {
			return err
		}

		if xlsxPath != "" {
			trend, err := a.stats.RoundTrend(cmd.Context(), filter())
			if err != nil {
				return err
			}
			var buf bytes.Buffer
			if err := report.WriteXLSX(&buf, rep, trend); err != nil {
				return err
			}
			if err := os.WriteFile(xlsxPath, buf.Bytes(), 0o644); err != nil {
				return fmt.Errorf("failed to write workbook: %w", err)
			}
			a.logger.Info().Str("path", xlsxPath).Msg("report workbook written")
		}

		return render(cmd.OutOrStdout(), rep, func(out io.Writer) { reportTable(out, rep) })
	}),
}

func reportTable(out io.Writer, rep *report.CourseReport) {
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "HOLE\tPAR\tAVG STROKES\tAVG PUTTS\tFAIRWAY\tGIR")
	for _, r := range rep.Rows {
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\t%s\n",
			r.Hole, optInt(r.Par), optFloat(r.AverageStrokes, 2), optFloat(r.AveragePutts, 2),
			optPercent(r.FairwayAccuracy), optPercent(r.GIRPercentage))
	}
	w.Flush()
	writeExcluded(out, rep.Excluded)
}

func writeExcluded(out io.Writer, excluded []*domain.MalformedRecordError) {
	if len(excluded) == 0 {
		return
	}
	fmt.Fprintln(out)
	excludedTable(out, excluded)
}

func addFilterFlags(cmd *cobra.Command) {
	cmd.Flags().IntVarP(&courseID, "course", "c", 0, "Garmin course id")
	cmd.Flags().IntVar(&holesCompleted, "holes", 0, "Layout length to restrict to (0 = every layout)")
	_ = cmd.MarkFlagRequired("course")
}

func init() {
	for _, cmd := range []*cobra.Command{parsCmd, puttingCmd, scoringCmd, fairwaysCmd, girCmd, trendCmd, reportCmd} {
		addFilterFlags(cmd)
		rootCmd.AddCommand(cmd)
	}
	fairwaysCmd.Flags().BoolVar(&showOutcomes, "outcomes", false, "List raw outcome counts instead of accuracy")
	trendCmd.Flags().StringVar(&chartPath, "chart", "", "Write a PNG line chart to this path")
	reportCmd.Flags().StringVar(&xlsxPath, "xlsx", "", "Write an Excel workbook to this path")
}
