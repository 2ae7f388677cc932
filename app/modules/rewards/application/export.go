package rewardsservice

import (
	"context"
	"fmt"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/adiljzcoe/sadaqah-rewards-hub-sub001/internal/observability/attr"
)

const exportSheet = "Leaderboard"

// ExportLeaderboard writes the top limit standings to an XLSX workbook with
// rank detail per row. limit <= 0 exports the whole board.
func (s *RewardsService) ExportLeaderboard(ctx context.Context, limit int) ([]byte, error) {
	standings := s.leaderboard.Top(limit)

	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", exportSheet); err != nil {
		return nil, fmt.Errorf("ExportLeaderboard: %w", err)
	}

	headers := []string{"Position", "Account", "Points", "Rank", "First Reached"}
	for col, header := range headers {
		cell, err := excelize.CoordinatesToCellName(col+1, 1)
		if err != nil {
			return nil, fmt.Errorf("ExportLeaderboard: %w", err)
		}
		if err := f.SetCellValue(exportSheet, cell, header); err != nil {
			return nil, fmt.Errorf("ExportLeaderboard: %w", err)
		}
	}

	for i, st := range standings {
		status := s.rules.Ranks.Resolve(st.Points)
		values := []interface{}{
			st.Position,
			string(st.AccountID),
			int64(st.Points),
			status.Rank.Name,
			st.FirstReachedAt.Format(time.RFC3339),
		}
		for col, value := range values {
			cell, err := excelize.CoordinatesToCellName(col+1, i+2)
			if err != nil {
				return nil, fmt.Errorf("ExportLeaderboard: %w", err)
			}
			if err := f.SetCellValue(exportSheet, cell, value); err != nil {
				return nil, fmt.Errorf("ExportLeaderboard: %w", err)
			}
		}
	}

	buffer, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("ExportLeaderboard: %w", err)
	}

	s.logger.InfoContext(ctx, "Leaderboard exported",
		attr.Int("rows", len(standings)),
	)
	return buffer.Bytes(), nil
}
