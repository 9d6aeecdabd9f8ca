package model

import (
	"fmt"
	"time"
)

// Kind identifies what sort of work a record describes.
type Kind string

const (
	KindTicket Kind = "ticket"
	KindQA     Kind = "qa"
	KindAdHoc  Kind = "adhoc"
)

// ParseKind maps a stored kind string back to a Kind.
func ParseKind(s string) (Kind, error) {
	switch Kind(s) {
	case KindTicket, KindQA, KindAdHoc:
		return Kind(s), nil
	}
	return "", fmt.Errorf("unknown activity kind %q", s)
}

// Record is a single logged unit of work. The kind-specific fields are
// always present and stay blank when irrelevant to Kind, so readers never
// branch on kind to reach a column. Records are created once and never
// updated or deleted.
type Record struct {
	Timestamp    time.Time
	UserName     string // blank in the file backend, which has no user concept
	Kind         Kind
	TicketNumber string // ticket and qa
	QAName       string // qa
	Description  string // adhoc
}
