package service

import (
	"bytes"
	"context"
	"strings"

	"github.com/bytedance/sonic"
	"github.com/google/uuid"

	"schoolku_backend/internals/features/school/schedules/dto"
	helper "schoolku_backend/internals/helpers"
)

var csvHeader = []string{
	"Title", "Type", "Date", "Start Time", "End Time",
	"Subject", "Teacher", "Location", "Status", "Description",
}

// Export renders every schedule matching f as csv or json and returns the
// body, its content type and a download filename.
func (s *ScheduleService) Export(ctx context.Context, tenantID uuid.UUID, f ListFilter, format string) ([]byte, string, string, error) {
	format = strings.ToLower(strings.TrimSpace(format))
	if format == "" {
		format = "csv"
	}
	if format != "csv" && format != "json" {
		return nil, "", "", helper.ErrValidation("validation failed",
			helper.FieldError{Field: "format", Message: "format must be csv or json"})
	}

	rows, err := s.exportRows(ctx, tenantID, f)
	if err != nil {
		return nil, "", "", err
	}

	name := "schedules-" + s.Now().Format("20060102")
	if format == "json" {
		b, err := sonic.Marshal(rows)
		if err != nil {
			return nil, "", "", helper.ErrInternal("failed to export schedules", err)
		}
		return b, "application/json", name + ".json", nil
	}
	return renderCSV(rows), "text/csv; charset=utf-8", name + ".csv", nil
}

// exportRows pages through List until every matching row is read.
func (s *ScheduleService) exportRows(ctx context.Context, tenantID uuid.UUID, f ListFilter) ([]dto.ScheduleResponse, error) {
	batch := s.ExportBatch
	if batch < 1 {
		batch = helper.ExportOpts.MaxLimit
	}
	p := helper.Params{Page: 1, Limit: batch, SortBy: "date", SortOrder: "asc"}
	var out []dto.ScheduleResponse
	for {
		rows, total, err := s.List(ctx, tenantID, f, p)
		if err != nil {
			return nil, err
		}
		out = append(out, rows...)
		if len(rows) < batch || int64(len(out)) >= total {
			break
		}
		p.Page++
	}
	if out == nil {
		out = []dto.ScheduleResponse{}
	}
	return out, nil
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

// renderCSV quotes every field, doubling embedded quotes.
func renderCSV(rows []dto.ScheduleResponse) []byte {
	var buf bytes.Buffer
	writeRecord(&buf, csvHeader)
	for _, r := range rows {
		writeRecord(&buf, []string{
			r.Title,
			string(r.Type),
			r.Date.Format("2006-01-02"),
			r.StartTime.HM(),
			r.EndTime.HM(),
			deref(r.SubjectName),
			r.TeacherName,
			deref(r.Location),
			string(r.Status),
			deref(r.Description),
		})
	}
	return buf.Bytes()
}

func writeRecord(buf *bytes.Buffer, fields []string) {
	for i, f := range fields {
		if i > 0 {
			buf.WriteByte(',')
		}
		buf.WriteByte('"')
		buf.WriteString(strings.ReplaceAll(f, `"`, `""`))
		buf.WriteByte('"')
	}
	buf.WriteByte('\n')
}
