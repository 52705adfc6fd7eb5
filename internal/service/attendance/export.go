package attendance

import (
	"context"
	"fmt"

	"github.com/davomat/davomat-backend-go/internal/domain/attendance"
	"github.com/xuri/excelize/v2"
)

const (
	boardSheet = "Board"
	statsSheet = "Stats"
)

var boardHeader = []interface{}{
	"Employee code", "Full name", "Position", "Department", "Status",
	"Entry", "Exit", "Late", "Late minutes", "Comment",
}

// Export implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) Export(ctx context.Context, filter attendance.BoardFilter) ([]byte, error) {
	board, err := s.Board(ctx, filter)
	if err != nil {
		return nil, err
	}

	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	if err := f.SetSheetName("Sheet1", boardSheet); err != nil {
		return nil, fmt.Errorf("failed to name sheet: %w", err)
	}

	if err := writeBoardSheet(f, board); err != nil {
		return nil, err
	}
	if err := writeStatsSheet(f, board); err != nil {
		return nil, err
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("failed to write workbook: %w", err)
	}
	return buf.Bytes(), nil
}

func writeBoardSheet(f *excelize.File, board attendance.BoardResponse) error {
	if err := f.SetSheetRow(boardSheet, "A1", &boardHeader); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}

	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return fmt.Errorf("failed to create style: %w", err)
	}
	if err := f.SetRowStyle(boardSheet, 1, 1, bold); err != nil {
		return fmt.Errorf("failed to style header: %w", err)
	}

	for i, row := range board.Employees {
		department := ""
		if row.DepartmentName != nil {
			department = *row.DepartmentName
		}
		late := "no"
		if row.IsLate {
			late = "yes"
		}

		cells := []interface{}{
			row.EmployeeCode, row.FullName, row.Position, department, string(row.Status),
			row.EntryTime, row.ExitTime, late, row.LateMinutes, row.Comment,
		}
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(boardSheet, cell, &cells); err != nil {
			return fmt.Errorf("failed to write row %d: %w", i+2, err)
		}
	}

	return f.SetColWidth(boardSheet, "A", "J", 16)
}

func writeStatsSheet(f *excelize.File, board attendance.BoardResponse) error {
	if _, err := f.NewSheet(statsSheet); err != nil {
		return fmt.Errorf("failed to create stats sheet: %w", err)
	}

	rows := [][]interface{}{
		{"Date", board.Date, ""},
		{"Category", "Count", "Percentage"},
		{"Total", board.Stats.Total, 100},
		{string(attendance.StatusWorking), board.Stats.Working.Count, board.Stats.Working.Percentage},
		{string(attendance.StatusOutside), board.Stats.Outside.Count, board.Stats.Outside.Percentage},
		{string(attendance.StatusAbsent), board.Stats.Absent.Count, board.Stats.Absent.Percentage},
		{attendance.FilterLate, board.Stats.Late.Count, board.Stats.Late.Percentage},
	}
	if board.Stats.Total == 0 {
		rows[2][2] = 0
	}

	for i := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(statsSheet, cell, &rows[i]); err != nil {
			return fmt.Errorf("failed to write stats row: %w", err)
		}
	}
	return nil
}
