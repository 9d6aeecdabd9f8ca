// Package summary renders the per-hour view of one day's logged activity.
package summary

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/ganot/worklog/internal/model"
)

// Row is one rendered line of the daily summary.
type Row struct {
	Label string
	Text  string
}

// Placeholder fills template slots with no activity.
const Placeholder = "No tasks logged"

// Hosted summaries cover the fixed working window 8:00–18:00; buckets
// outside it are dropped from the view (they stay in the store).
const (
	templateStart = 8
	templateEnd   = 17 // last bucket, inclusive
)

const (
	hostedSeparator = " • "
	fileSeparator   = ", "
)

// HourLabel formats the bucket label for the hour starting at h.
func HourLabel(h int) string {
	return fmt.Sprintf("%d:00–%d:00", h, h+1)
}

// Describe renders the one-line description for a record.
func Describe(rec model.Record) string {
	switch rec.Kind {
	case model.KindQA:
		return fmt.Sprintf("QA with %s (Ticket #%s)", rec.QAName, rec.TicketNumber)
	case model.KindAdHoc:
		return "Ad Hoc: " + rec.Description
	default:
		return "Ticket #" + rec.TicketNumber
	}
}

// bucket keeps the records falling on now's calendar date in loc and
// groups their descriptions by the hour component of the converted
// timestamp. Within a bucket, input order is preserved; records are not
// re-sorted by exact timestamp.
func bucket(records []model.Record, now time.Time, loc *time.Location) map[int][]string {
	today := now.In(loc)
	buckets := map[int][]string{}
	for _, rec := range records {
		ts := rec.Timestamp.In(loc)
		if ts.Year() != today.Year() || ts.Month() != today.Month() || ts.Day() != today.Day() {
			continue
		}
		buckets[ts.Hour()] = append(buckets[ts.Hour()], Describe(rec))
	}
	return buckets
}

// Daily builds the file-variant summary: only hours that actually have
// records, ascending by hour, comma-joined, bucketed in now's own
// location (the machine's local date). A day with no records yields an
// empty result.
func Daily(records []model.Record, now time.Time) []Row {
	buckets := bucket(records, now, now.Location())

	hours := make([]int, 0, len(buckets))
	for h := range buckets {
		hours = append(hours, h)
	}
	sort.Ints(hours)

	rows := make([]Row, 0, len(hours))
	for _, h := range hours {
		rows = append(rows, Row{Label: HourLabel(h), Text: strings.Join(buckets[h], fileSeparator)})
	}
	return rows
}

// DailyTemplate builds the hosted-variant summary: exactly one row per
// working hour 8 through 17, bullet-joined, with Placeholder for empty
// slots. A day with no records still yields the full ten placeholder
// rows.
func DailyTemplate(records []model.Record, now time.Time, loc *time.Location) []Row {
	buckets := bucket(records, now, loc)

	rows := make([]Row, 0, templateEnd-templateStart+1)
	for h := templateStart; h <= templateEnd; h++ {
		text := Placeholder
		if descs := buckets[h]; len(descs) > 0 {
			text = strings.Join(descs, hostedSeparator)
		}
		rows = append(rows, Row{Label: HourLabel(h), Text: text})
	}
	return rows
}

// Eastern returns the reference timezone the hosted variant uses to pick
// "today".
func Eastern() (*time.Location, error) {
	loc, err := time.LoadLocation("America/New_York")
	if err != nil {
		return nil, fmt.Errorf("loading Eastern timezone: %w", err)
	}
	return loc, nil
}
