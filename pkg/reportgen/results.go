// Package reportgen builds the admin-facing spreadsheet exports.
package reportgen

import (
	"fmt"
	"time"

	"github.com/xuri/excelize/v2"
)

const resultsSheet = "Results"

// ResultRow is one line of the results export.
type ResultRow struct {
	ResultID          int64
	ExamID            int64
	Email             string
	TotalMarks        float64
	TotalRight        int
	TotalWrong        int
	TotalSkip         int
	TotalNegativeMark float64
	ObtainMarks       float64
	Status            string
	CreatedAt         time.Time
}

// ResultsWorkbook renders the rows into an XLSX workbook and returns its
// bytes.
func ResultsWorkbook(rows []ResultRow) ([]byte, error) {
	file := excelize.NewFile()
	defer file.Close()

	index, err := file.NewSheet(resultsSheet)
	if err != nil {
		return nil, err
	}

	headers := []string{"Result ID", "Exam ID", "Email", "Total Marks", "Right", "Wrong", "Skipped", "Negative Mark", "Obtained", "Status", "Graded At"}
	for col, header := range headers {
		cell, err := excelize.CoordinatesToCellName(col+1, 1)
		if err != nil {
			return nil, err
		}
		if err := file.SetCellValue(resultsSheet, cell, header); err != nil {
			return nil, err
		}
	}

	for i, row := range rows {
		values := []interface{}{
			row.ResultID,
			row.ExamID,
			row.Email,
			row.TotalMarks,
			row.TotalRight,
			row.TotalWrong,
			row.TotalSkip,
			row.TotalNegativeMark,
			row.ObtainMarks,
			row.Status,
			row.CreatedAt.Format(time.RFC3339),
		}
		for col, value := range values {
			cell, err := excelize.CoordinatesToCellName(col+1, i+2)
			if err != nil {
				return nil, err
			}
			if err := file.SetCellValue(resultsSheet, cell, value); err != nil {
				return nil, err
			}
		}
	}

	file.SetActiveSheet(index)
	if err := file.DeleteSheet("Sheet1"); err != nil {
		return nil, fmt.Errorf("failed to drop default sheet: %w", err)
	}

	buffer, err := file.WriteToBuffer()
	if err != nil {
		return nil, err
	}

	return buffer.Bytes(), nil
}
