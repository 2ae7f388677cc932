package rewardsservice

import (
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"

	rewardsdomain "github.com/adiljzcoe/sadaqah-rewards-hub-sub001/app/modules/rewards/domain"
	"github.com/adiljzcoe/sadaqah-rewards-hub-sub001/internal/observability/attr"
)

// importColumns maps header names to row positions. Headers are matched
// case-insensitively so hand-edited workbooks import cleanly.
var importColumns = []string{"event_id", "account_id", "action_type", "base_points", "occurred_at"}

// ImportActionEvents reads an XLSX workbook of historical action events and
// replays each row through the normal processing path, so every import row
// gets the same streak, multiplier, and idempotency treatment as live
// traffic. Rows already in the ledger count as duplicates, not errors.
func (s *RewardsService) ImportActionEvents(ctx context.Context, r io.Reader) (*ImportReport, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("ImportActionEvents: failed to open XLSX file: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("ImportActionEvents: XLSX file has no sheets")
	}

	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("ImportActionEvents: failed to read sheet %q: %w", sheets[0], err)
	}
	if len(rows) < 2 {
		return nil, fmt.Errorf("ImportActionEvents: sheet %q has no data rows", sheets[0])
	}

	columns, err := mapImportHeader(rows[0])
	if err != nil {
		return nil, fmt.Errorf("ImportActionEvents: %w", err)
	}

	report := &ImportReport{}
	for i, row := range rows[1:] {
		report.Rows++

		event, err := parseImportRow(row, columns)
		if err != nil {
			s.logger.WarnContext(ctx, "Skipping malformed import row",
				attr.Int("row", i+2),
				attr.Error(err),
			)
			report.Rejected++
			continue
		}

		result, err := s.ProcessActionEvent(ctx, event)
		if err != nil {
			return nil, fmt.Errorf("ImportActionEvents: row %d: %w", i+2, err)
		}
		switch {
		case result.IsSuccess():
			report.Applied++
		case result.Failure != nil && result.Failure.Duplicate:
			report.Duplicates++
		default:
			report.Rejected++
		}
	}

	s.logger.InfoContext(ctx, "Action event import finished",
		attr.Int("rows", report.Rows),
		attr.Int("applied", report.Applied),
		attr.Int("duplicates", report.Duplicates),
		attr.Int("rejected", report.Rejected),
	)
	return report, nil
}

func mapImportHeader(header []string) (map[string]int, error) {
	columns := make(map[string]int, len(header))
	for i, name := range header {
		columns[strings.ToLower(strings.TrimSpace(name))] = i
	}
	for _, required := range importColumns {
		if _, ok := columns[required]; !ok {
			return nil, fmt.Errorf("missing column %q", required)
		}
	}
	return columns, nil
}

func parseImportRow(row []string, columns map[string]int) (rewardsdomain.ActionEvent, error) {
	cell := func(name string) string {
		idx := columns[name]
		if idx >= len(row) {
			return ""
		}
		return strings.TrimSpace(row[idx])
	}

	basePoints, err := strconv.ParseInt(cell("base_points"), 10, 64)
	if err != nil {
		return rewardsdomain.ActionEvent{}, fmt.Errorf("base_points: %w", err)
	}

	occurredAt, err := time.Parse(time.RFC3339, cell("occurred_at"))
	if err != nil {
		return rewardsdomain.ActionEvent{}, fmt.Errorf("occurred_at: %w", err)
	}

	return rewardsdomain.ActionEvent{
		EventID:    cell("event_id"),
		AccountID:  rewardsdomain.AccountID(cell("account_id")),
		ActionType: rewardsdomain.ActionType(cell("action_type")),
		BasePoints: rewardsdomain.Points(basePoints),
		OccurredAt: occurredAt,
	}, nil
}
