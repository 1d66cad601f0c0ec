package report

import (
	"fmt"
	"golf-journey/internal/analytics"
	"io"

	"github.com/xuri/excelize/v2"
)

const (
	holesSheet  = "Holes"
	roundsSheet = "Rounds"
)

var (
	holesHeader  = []interface{}{"Hole", "Par", "Avg Putts", "Avg Strokes", "Fairway Hits", "Fairway Attempts", "Fairway Accuracy", "GIR Hits", "GIR Attempts", "GIR %"}
	roundsHeader = []interface{}{"Scorecard", "Start Time", "Holes Completed", "Holes Played", "Strokes", "Putts", "Putts/Hole"}
)

// WriteXLSX writes the report as a workbook with a Holes sheet and, when
// trend is non-nil, a Rounds sheet.
func WriteXLSX(w io.Writer, rep *CourseReport, trend *analytics.Trend) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName(f.GetSheetName(f.GetActiveSheetIndex()), holesSheet); err != nil {
		return fmt.Errorf("failed to name sheet: %w", err)
	}
	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return fmt.Errorf("failed to create header style: %w", err)
	}

	rows := make([][]interface{}, 0, len(rep.Rows))
	for _, r := range rep.Rows {
		rows = append(rows, []interface{}{
			r.Hole, cellInt(r.Par), cellFloat(r.AveragePutts), cellFloat(r.AverageStrokes),
			cellInt(r.FairwayHits), cellInt(r.FairwayAttempts), cellFloat(r.FairwayAccuracy),
			cellInt(r.GIRHits), cellInt(r.GIRAttempts), cellFloat(r.GIRPercentage),
		})
	}
	if err := writeSheet(f, holesSheet, holesHeader, rows, bold); err != nil {
		return err
	}

	if trend != nil {
		if _, err := f.NewSheet(roundsSheet); err != nil {
			return fmt.Errorf("failed to add sheet: %w", err)
		}
		rows = rows[:0]
		for _, p := range trend.Points {
			rows = append(rows, []interface{}{
				p.ScorecardID, p.StartTime.UTC().Format("2006-01-02 15:04"), p.HolesCompleted,
				p.HolesPlayed, p.Strokes, p.Putts, p.PuttsPerHole,
			})
		}
		if err := writeSheet(f, roundsSheet, roundsHeader, rows, bold); err != nil {
			return err
		}
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("failed to write workbook: %w", err)
	}
	return nil
}

func writeSheet(f *excelize.File, sheet string, header []interface{}, rows [][]interface{}, headerStyle int) error {
	if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
		return fmt.Errorf("failed to write %s header: %w", sheet, err)
	}
	last, err := excelize.CoordinatesToCellName(len(header), 1)
	if err != nil {
		return err
	}
	if err := f.SetCellStyle(sheet, "A1", last, headerStyle); err != nil {
		return fmt.Errorf("failed to style %s header: %w", sheet, err)
	}

	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return fmt.Errorf("failed to write %s row %d: %w", sheet, i+2, err)
		}
	}
	return nil
}

// Absent values become empty cells.
func cellInt(v *int) interface{} {
	if v == nil {
		return ""
	}
	return *v
}

func cellFloat(v *float64) interface{} {
	if v == nil {
		return ""
	}
	return *v
}
