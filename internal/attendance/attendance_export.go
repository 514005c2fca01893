package attendance

import (
	"time"

	"github.com/xuri/excelize/v2"
)

const (
	swipesSheet   = "Swipes"
	sessionsSheet = "Sessions"
)

// buildWorkbook renders the swipe log and the paired sessions with their total.
func buildWorkbook(rows []Attendance) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", swipesSheet); err != nil {
		return nil, err
	}
	if err := f.SetSheetRow(swipesSheet, "A1", &[]any{"Type", "Timestamp (UTC)"}); err != nil {
		return nil, err
	}
	for i, r := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return nil, err
		}
		if err := f.SetSheetRow(swipesSheet, cell, &[]any{r.Type, r.Timestamp.UTC().Format(time.RFC3339)}); err != nil {
			return nil, err
		}
	}

	if _, err := f.NewSheet(sessionsSheet); err != nil {
		return nil, err
	}
	if err := f.SetSheetRow(sessionsSheet, "A1", &[]any{"In", "Out", "Hours"}); err != nil {
		return nil, err
	}

	sessions := PairSessions(rows)
	var total float64
	for i, s := range sessions {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return nil, err
		}
		hours := s.Hours()
		total += hours
		if err := f.SetSheetRow(sessionsSheet, cell, &[]any{
			s.In.UTC().Format(time.RFC3339),
			s.Out.UTC().Format(time.RFC3339),
			hours,
		}); err != nil {
			return nil, err
		}
	}

	totalCell, err := excelize.CoordinatesToCellName(1, len(sessions)+2)
	if err != nil {
		return nil, err
	}
	if err := f.SetSheetRow(sessionsSheet, totalCell, &[]any{"Total", "", total}); err != nil {
		return nil, err
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
