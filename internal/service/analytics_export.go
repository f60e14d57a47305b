package service

import (
	"bytes"
	"fmt"
	"sort"
	"time"

	"skillpath_backend/internal/model"

	"github.com/xuri/excelize/v2"
)

const (
	summarySheet   = "Summary"
	skillGapsSheet = "Skill Gaps"
)

// ExportSummaryXLSX renders the analytics summary as an xlsx workbook.
func ExportSummaryXLSX(summary *model.AnalyticsSummary, generatedAt time.Time) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	f.SetSheetName("Sheet1", summarySheet)
	if _, err := f.NewSheet(skillGapsSheet); err != nil {
		return nil, err
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Color: "FFFFFF"},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"4472C4"}, Pattern: 1},
	})
	if err != nil {
		return nil, err
	}

	if err := writeSummarySheet(f, summary, generatedAt, headerStyle); err != nil {
		return nil, fmt.Errorf("summary sheet: %w", err)
	}
	if err := writeSkillGapsSheet(f, summary.TopSkillGaps, headerStyle); err != nil {
		return nil, fmt.Errorf("skill gaps sheet: %w", err)
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func writeSummarySheet(f *excelize.File, summary *model.AnalyticsSummary, generatedAt time.Time, headerStyle int) error {
	f.SetColWidth(summarySheet, "A", "A", 28)
	f.SetColWidth(summarySheet, "B", "B", 24)

	rows := [][]interface{}{
		{"Metric", "Value"},
		{"Generated", generatedAt.Format("2006-01-02 15:04:05")},
		{"Total employees", summary.TotalEmployees},
		{"Assessments completed", summary.AssessmentsCompleted},
	}

	statuses := make([]string, 0, len(summary.LearningStatus))
	for status := range summary.LearningStatus {
		statuses = append(statuses, status)
	}
	sort.Strings(statuses)
	for _, status := range statuses {
		rows = append(rows, []interface{}{"Learning " + status, summary.LearningStatus[status]})
	}

	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(summarySheet, cell, &row); err != nil {
			return err
		}
	}
	return f.SetCellStyle(summarySheet, "A1", "B1", headerStyle)
}

func writeSkillGapsSheet(f *excelize.File, gaps []model.SkillGap, headerStyle int) error {
	f.SetColWidth(skillGapsSheet, "A", "A", 8)
	f.SetColWidth(skillGapsSheet, "B", "B", 30)
	f.SetColWidth(skillGapsSheet, "C", "C", 18)

	if err := f.SetSheetRow(skillGapsSheet, "A1", &[]interface{}{"Rank", "Skill", "Results < 70"}); err != nil {
		return err
	}
	for i, gap := range gaps {
		cell := fmt.Sprintf("A%d", i+2)
		if err := f.SetSheetRow(skillGapsSheet, cell, &[]interface{}{i + 1, gap.Skill, gap.Count}); err != nil {
			return err
		}
	}
	return f.SetCellStyle(skillGapsSheet, "A1", "C1", headerStyle)
}
