package redirect

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"

	"helpcenter/internal/observability/metrics"
)

// maxImportRows bounds a single import so one upload cannot hold a request for minutes.
const maxImportRows = 10000

// RowError reports a rejected CSV line. Line is 1-based and counts the header.
type RowError struct {
	Line    int    `json:"line"`
	Message string `json:"message"`
}

// ImportReport summarises an import. Rejected rows do not abort the import.
type ImportReport struct {
	Created int        `json:"created"`
	Updated int        `json:"updated"`
	Errors  []RowError `json:"errors"`
}

// ErrImportTooLarge is returned when the file has more than maxImportRows rows.
var ErrImportTooLarge = fmt.Errorf("import too large: must be at most %d rows", maxImportRows)

// Import reads "from,to[,status]" rows from r and upserts every valid one.
// A first row whose first field is "from" is treated as a header.
// Blank lines are skipped. Malformed CSV stops the import with an error.
func (s *Service) Import(ctx context.Context, r io.Reader) (*ImportReport, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true
	reader.Comment = '#'

	report := &ImportReport{Errors: []RowError{}}
	first := true
	rows := 0
	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return report, fmt.Errorf("read csv: %w", err)
		}
		line, _ := reader.FieldPos(0)

		if first {
			first = false
			if isHeader(record) {
				continue
			}
		}
		rows++
		if rows > maxImportRows {
			return report, ErrImportTooLarge
		}
		if err := ctx.Err(); err != nil {
			return report, err
		}

		in, err := parseRow(record)
		if err != nil {
			report.Errors = append(report.Errors, RowError{Line: line, Message: err.Error()})
			continue
		}
		redirect, err := build(in)
		if err != nil {
			report.Errors = append(report.Errors, RowError{Line: line, Message: err.Error()})
			continue
		}

		created, err := s.Repo.Upsert(ctx, redirect)
		if err != nil {
			return report, fmt.Errorf("upsert redirect line %d: %w", line, err)
		}
		if created {
			report.Created++
		} else {
			report.Updated++
		}
	}

	metrics.RecordRedirectImport(report.Created, report.Updated, len(report.Errors))
	s.logger().InfoContext(ctx, "redirect import finished",
		slog.Int("created", report.Created),
		slog.Int("updated", report.Updated),
		slog.Int("rejected", len(report.Errors)))
	return report, nil
}

func isHeader(record []string) bool {
	return len(record) > 0 && strings.EqualFold(strings.TrimSpace(record[0]), "from")
}

func parseRow(record []string) (Input, error) {
	if len(record) < 2 || len(record) > 3 {
		return Input{}, fmt.Errorf("expected 2 or 3 fields, got %d", len(record))
	}
	in := Input{
		FromPath: strings.TrimSpace(record[0]),
		ToPath:   strings.TrimSpace(record[1]),
	}
	if len(record) == 3 && strings.TrimSpace(record[2]) != "" {
		code, err := strconv.Atoi(strings.TrimSpace(record[2]))
		if err != nil {
			return Input{}, fmt.Errorf("invalid status %q", record[2])
		}
		in.StatusCode = code
	}
	return in, nil
}
