package summary_test

import (
	"testing"
	"time"

	"github.com/ganot/worklog/internal/model"
	"github.com/ganot/worklog/internal/summary"
)

func eastern(t *testing.T) *time.Location {
	t.Helper()
	loc, err := summary.Eastern()
	if err != nil {
		t.Fatalf("Eastern: %v", err)
	}
	return loc
}

func ticketAt(ts time.Time, number string) model.Record {
	return model.Record{Timestamp: ts, Kind: model.KindTicket, TicketNumber: number}
}

func TestHourLabel(t *testing.T) {
	tests := []struct {
		hour int
		want string
	}{
		{8, "8:00–9:00"},
		{9, "9:00–10:00"},
		{17, "17:00–18:00"},
	}
	for _, tt := range tests {
		got := summary.HourLabel(tt.hour)
		if got != tt.want {
			t.Errorf("HourLabel(%d) = %q, want %q", tt.hour, got, tt.want)
		}
	}
}

func TestDescribe(t *testing.T) {
	tests := []struct {
		rec  model.Record
		want string
	}{
		{model.Record{Kind: model.KindTicket, TicketNumber: "100"}, "Ticket #100"},
		{model.Record{Kind: model.KindQA, QAName: "Sam", TicketNumber: "42"}, "QA with Sam (Ticket #42)"},
		{model.Record{Kind: model.KindAdHoc, Description: "fix build"}, "Ad Hoc: fix build"},
	}
	for _, tt := range tests {
		got := summary.Describe(tt.rec)
		if got != tt.want {
			t.Errorf("Describe(%s) = %q, want %q", tt.rec.Kind, got, tt.want)
		}
	}
}

func TestDailyTemplateEmpty(t *testing.T) {
	loc := eastern(t)
	now := time.Date(2026, 2, 27, 12, 0, 0, 0, loc)

	rows := summary.DailyTemplate(nil, now, loc)
	if len(rows) != 10 {
		t.Fatalf("rows = %d, want 10", len(rows))
	}
	if rows[0].Label != "8:00–9:00" {
		t.Errorf("first label = %q, want %q", rows[0].Label, "8:00–9:00")
	}
	if rows[9].Label != "17:00–18:00" {
		t.Errorf("last label = %q, want %q", rows[9].Label, "17:00–18:00")
	}
	for _, r := range rows {
		if r.Text != summary.Placeholder {
			t.Errorf("row %q text = %q, want %q", r.Label, r.Text, summary.Placeholder)
		}
	}
}

func TestDailyTemplateScenario(t *testing.T) {
	loc := eastern(t)
	now := time.Date(2026, 2, 27, 12, 0, 0, 0, loc)

	records := []model.Record{
		ticketAt(time.Date(2026, 2, 27, 9, 5, 0, 0, loc), "100"),
		{
			Timestamp:   time.Date(2026, 2, 27, 9, 40, 0, 0, loc),
			Kind:        model.KindAdHoc,
			Description: "fix build",
		},
	}

	rows := summary.DailyTemplate(records, now, loc)
	if len(rows) != 10 {
		t.Fatalf("rows = %d, want 10", len(rows))
	}
	if rows[1].Label != "9:00–10:00" {
		t.Fatalf("rows[1] label = %q, want %q", rows[1].Label, "9:00–10:00")
	}
	want := "Ticket #100 • Ad Hoc: fix build"
	if rows[1].Text != want {
		t.Errorf("9:00 bucket = %q, want %q", rows[1].Text, want)
	}
}

func TestDailyTemplateConcatPreservesOrder(t *testing.T) {
	loc := eastern(t)
	now := time.Date(2026, 2, 27, 12, 0, 0, 0, loc)

	// B logged later in the hour but returned first by the store; the
	// bucket keeps retrieval order, not timestamp order.
	records := []model.Record{
		ticketAt(time.Date(2026, 2, 27, 10, 50, 0, 0, loc), "B"),
		ticketAt(time.Date(2026, 2, 27, 10, 10, 0, 0, loc), "A"),
	}

	rows := summary.DailyTemplate(records, now, loc)
	if rows[2].Text != "Ticket #B • Ticket #A" {
		t.Errorf("10:00 bucket = %q, want %q", rows[2].Text, "Ticket #B • Ticket #A")
	}
}

func TestDailyTemplateWindow(t *testing.T) {
	loc := eastern(t)
	now := time.Date(2026, 2, 27, 12, 0, 0, 0, loc)

	records := []model.Record{
		ticketAt(time.Date(2026, 2, 27, 7, 59, 0, 0, loc), "early"),
		ticketAt(time.Date(2026, 2, 27, 16, 59, 59, 0, loc), "last16"),
		ticketAt(time.Date(2026, 2, 27, 17, 0, 0, 0, loc), "at17"),
		ticketAt(time.Date(2026, 2, 27, 18, 0, 0, 0, loc), "dropped"),
	}

	rows := summary.DailyTemplate(records, now, loc)
	if len(rows) != 10 {
		t.Fatalf("rows = %d, want 10", len(rows))
	}
	if rows[8].Text != "Ticket #last16" {
		t.Errorf("16:00 bucket = %q, want %q", rows[8].Text, "Ticket #last16")
	}
	if rows[9].Text != "Ticket #at17" {
		t.Errorf("17:00 bucket = %q, want %q", rows[9].Text, "Ticket #at17")
	}
	// The 7:59 and 18:00 records must not surface anywhere.
	for _, r := range rows {
		if r.Text == "Ticket #early" || r.Text == "Ticket #dropped" {
			t.Errorf("out-of-window record surfaced in row %q", r.Label)
		}
	}
}

func TestDailyTemplateConvertsTimezone(t *testing.T) {
	loc := eastern(t)
	now := time.Date(2026, 2, 27, 12, 0, 0, 0, loc)

	// 14:05 UTC is 9:05 Eastern in February.
	records := []model.Record{
		ticketAt(time.Date(2026, 2, 27, 14, 5, 0, 0, time.UTC), "100"),
	}

	rows := summary.DailyTemplate(records, now, loc)
	if rows[1].Text != "Ticket #100" {
		t.Errorf("9:00 bucket = %q, want %q", rows[1].Text, "Ticket #100")
	}
}

func TestDailyTemplateFiltersOtherDays(t *testing.T) {
	loc := eastern(t)
	now := time.Date(2026, 2, 27, 12, 0, 0, 0, loc)

	records := []model.Record{
		ticketAt(time.Date(2026, 2, 26, 9, 0, 0, 0, loc), "yesterday"),
		ticketAt(time.Date(2026, 2, 28, 9, 0, 0, 0, loc), "tomorrow"),
	}

	rows := summary.DailyTemplate(records, now, loc)
	if rows[1].Text != summary.Placeholder {
		t.Errorf("9:00 bucket = %q, want placeholder", rows[1].Text)
	}
}

func TestDaily(t *testing.T) {
	now := time.Date(2026, 2, 27, 12, 0, 0, 0, time.UTC)

	records := []model.Record{
		ticketAt(time.Date(2026, 2, 27, 14, 10, 0, 0, time.UTC), "C"),
		ticketAt(time.Date(2026, 2, 27, 9, 5, 0, 0, time.UTC), "A"),
		ticketAt(time.Date(2026, 2, 27, 9, 40, 0, 0, time.UTC), "B"),
		ticketAt(time.Date(2026, 2, 27, 22, 0, 0, 0, time.UTC), "late"),
	}

	rows := summary.Daily(records, now)
	if len(rows) != 3 {
		t.Fatalf("rows = %d, want 3", len(rows))
	}
	if rows[0].Label != "9:00–10:00" || rows[0].Text != "Ticket #A, Ticket #B" {
		t.Errorf("rows[0] = %q / %q, want 9:00–10:00 / %q", rows[0].Label, rows[0].Text, "Ticket #A, Ticket #B")
	}
	if rows[1].Label != "14:00–15:00" {
		t.Errorf("rows[1] label = %q, want %q", rows[1].Label, "14:00–15:00")
	}
	// No 8–17 restriction in the file variant.
	if rows[2].Label != "22:00–23:00" || rows[2].Text != "Ticket #late" {
		t.Errorf("rows[2] = %q / %q, want 22:00–23:00 / Ticket #late", rows[2].Label, rows[2].Text)
	}
}

func TestDailyEmpty(t *testing.T) {
	now := time.Date(2026, 2, 27, 12, 0, 0, 0, time.UTC)
	rows := summary.Daily(nil, now)
	if len(rows) != 0 {
		t.Errorf("rows = %d, want 0", len(rows))
	}
}
