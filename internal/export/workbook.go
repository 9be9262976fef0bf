// Package export writes report traces as spreadsheets.
package export

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"

	"quiz-submission-service/internal/app"
)

const sheet = "Report"

var header = []interface{}{"Question", "Order", "Prompt", "Your selection", "Correct answer(s)", "Correct", "Awarded", "Marks"}

// WriteReport writes one row per question followed by a totals row.
func WriteReport(w io.Writer, report app.QuizReport) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		return fmt.Errorf("rename sheet: %w", err)
	}
	if err := f.SetSheetRow(sheet, "A1", &[]interface{}{"Username", report.Username, "Quiz ID", report.QuizID, "Submitted", yesNo(report.IsSubmitted)}); err != nil {
		return err
	}
	if err := f.SetSheetRow(sheet, "A3", &header); err != nil {
		return err
	}

	row := 4
	for i, qr := range report.Questions {
		selection := "Not answered"
		if qr.Answered {
			selection = joinOrNone(qr.Selected)
		}
		cell, err := excelize.CoordinatesToCellName(1, row)
		if err != nil {
			return err
		}
		values := []interface{}{
			fmt.Sprintf("Q%d", i+1),
			qr.Order,
			qr.Text,
			selection,
			joinOrNone(qr.Correct),
			yesNo(qr.IsRight),
			qr.Awarded,
			qr.Marks,
		}
		if err := f.SetSheetRow(sheet, cell, &values); err != nil {
			return err
		}
		row++
	}

	cell, err := excelize.CoordinatesToCellName(1, row+1)
	if err != nil {
		return err
	}
	if err := f.SetSheetRow(sheet, cell, &[]interface{}{"Stored score", report.Score, "Total possible", report.TotalPossible}); err != nil {
		return err
	}

	if _, err := f.WriteTo(w); err != nil {
		return fmt.Errorf("write workbook: %w", err)
	}
	return nil
}

func joinOrNone(nums []int) string {
	if len(nums) == 0 {
		return "none"
	}
	parts := make([]string, len(nums))
	for i, n := range nums {
		parts[i] = strconv.Itoa(n)
	}
	return strings.Join(parts, ", ")
}

func yesNo(v bool) string {
	if v {
		return "Yes"
	}
	return "No"
}
