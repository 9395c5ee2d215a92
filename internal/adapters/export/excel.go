// Package export renders candidate lists as spreadsheets.
package export

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"github.com/okian/talentdesk/internal/domain/locale"
	"github.com/okian/talentdesk/internal/domain/model"
	"github.com/okian/talentdesk/internal/domain/pipeline"
)

// ContentType is the media type of the workbook CandidatesXLSX writes.
const ContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

var columns = []struct {
	label string
	width float64
}{
	{"export.col.name", 28},
	{"export.col.email", 32},
	{"export.col.title", 26},
	{"export.col.stage", 16},
	{"export.col.source", 16},
	{"export.col.aiScore", 10},
	{"export.col.appliedAt", 14},
}

// CandidatesXLSX writes candidates in their given order to w, with a second
// sheet counting them per stage. Labels follow loc; sheets are right to left
// for rtl locales.
func CandidatesXLSX(w io.Writer, candidates []model.Candidate, loc locale.Locale) error {
	f := excelize.NewFile()
	defer f.Close()

	list := loc.Label("export.sheet.candidates")
	summary := loc.Label("export.sheet.summary")
	if err := f.SetSheetName("Sheet1", list); err != nil {
		return fmt.Errorf("rename sheet: %w", err)
	}
	if _, err := f.NewSheet(summary); err != nil {
		return fmt.Errorf("add summary sheet: %w", err)
	}

	header, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Color: "FFFFFF"},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"4472C4"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	})
	if err != nil {
		return fmt.Errorf("header style: %w", err)
	}

	if err := writeCandidates(f, list, header, candidates, loc); err != nil {
		return err
	}
	if err := writeSummary(f, summary, header, candidates, loc); err != nil {
		return err
	}
	if loc.Direction == locale.RTL {
		rtl := true
		for _, sheet := range []string{list, summary} {
			if err := f.SetSheetView(sheet, 0, &excelize.ViewOptions{RightToLeft: &rtl}); err != nil {
				return fmt.Errorf("sheet direction: %w", err)
			}
		}
	}
	if err := f.Write(w); err != nil {
		return fmt.Errorf("write workbook: %w", err)
	}
	return nil
}

func writeCandidates(f *excelize.File, sheet string, header int, candidates []model.Candidate, loc locale.Locale) error {
	for i, c := range columns {
		col, _ := excelize.ColumnNumberToName(i + 1)
		if err := f.SetColWidth(sheet, col, col, c.width); err != nil {
			return err
		}
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		if err := f.SetCellValue(sheet, cell, loc.Label(c.label)); err != nil {
			return err
		}
	}
	last, _ := excelize.CoordinatesToCellName(len(columns), 1)
	if err := f.SetCellStyle(sheet, "A1", last, header); err != nil {
		return err
	}

	for i, c := range candidates {
		row := []any{
			c.FullName(),
			c.Email,
			c.JobTitle,
			loc.Label("stage." + string(c.Stage)),
			loc.Label("source." + string(c.Source)),
			c.AIScore,
			c.AppliedAt.Format("2006-01-02"),
		}
		cell, _ := excelize.CoordinatesToCellName(1, i+2)
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return fmt.Errorf("row %d: %w", i+2, err)
		}
	}

	if len(candidates) > 0 {
		end, _ := excelize.CoordinatesToCellName(len(columns), len(candidates)+1)
		if err := f.AutoFilter(sheet, "A1:"+end, nil); err != nil {
			return fmt.Errorf("auto filter: %w", err)
		}
	}
	return f.SetPanes(sheet, &excelize.Panes{
		Freeze:      true,
		YSplit:      1,
		TopLeftCell: "A2",
		ActivePane:  "bottomLeft",
	})
}

func writeSummary(f *excelize.File, sheet string, header int, candidates []model.Candidate, loc locale.Locale) error {
	if err := f.SetColWidth(sheet, "A", "A", 20); err != nil {
		return err
	}
	head := []any{loc.Label("export.col.stage"), loc.Label("export.col.count")}
	if err := f.SetSheetRow(sheet, "A1", &head); err != nil {
		return err
	}
	if err := f.SetCellStyle(sheet, "A1", "B1", header); err != nil {
		return err
	}
	counts := pipeline.Counts(candidates)
	for i, st := range model.Stages {
		row := []any{loc.Label("stage." + string(st)), counts[st]}
		cell, _ := excelize.CoordinatesToCellName(1, i+2)
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return err
		}
	}
	total, _ := excelize.CoordinatesToCellName(2, len(model.Stages)+2)
	return f.SetCellFormula(sheet, total, fmt.Sprintf("SUM(B2:B%d)", len(model.Stages)+1))
}
