package main

import (
	"encoding/json"
	"fmt"
	"golf-journey/internal/domain"
	"io"
	"strconv"
	"text/tabwriter"

	"gopkg.in/yaml.v3"
)

// render writes v in the --format encoding; table output is drawn by table.
func render(out io.Writer, v any, table func(io.Writer)) error {
	switch format {
	case "json":
		encoder := json.NewEncoder(out)
		encoder.SetIndent("", "  ")
		return encoder.Encode(v)
	case "yaml":
		encoder := yaml.NewEncoder(out)
		encoder.SetIndent(2)
		if err := encoder.Encode(v); err != nil {
			return err
		}
		return encoder.Close()
	case "table", "":
		table(out)
		return nil
	default:
		return fmt.Errorf("unknown format %q (table, json, yaml)", format)
	}
}

func excludedTable(out io.Writer, excluded []*domain.MalformedRecordError) {
	fmt.Fprintf(out, "Excluded %d malformed observation(s):\n", len(excluded))
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "SCORECARD\tHOLE\tFIELD\tREASON")
	for _, e := range excluded {
		hole := "-"
		if e.Hole > 0 {
			hole = strconv.Itoa(e.Hole)
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", e.ScorecardID, hole, e.Field, e.Reason)
	}
	w.Flush()
}

func optInt(v *int) string {
	if v == nil {
		return "-"
	}
	return strconv.Itoa(*v)
}

func optFloat(v *float64, precision int) string {
	if v == nil {
		return "-"
	}
	return strconv.FormatFloat(*v, 'f', precision, 64)
}

func percent(v float64) string {
	return strconv.FormatFloat(v*100, 'f', 1, 64) + "%"
}

func optPercent(v *float64) string {
	if v == nil {
		return "-"
	}
	return percent(*v)
}
