package session

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/ganot/worklog/internal/model"
)

// ErrMissingUserName blocks submission when the acting user is unknown.
var ErrMissingUserName = errors.New("user name is required")

// Field names accepted by SetField.
const (
	FieldUserName     = "user_name"
	FieldTicketNumber = "ticket_number"
	FieldQAName       = "qa_name"
	FieldDescription  = "description"
)

// Draft is the editable pre-persistence form state for one session. It is
// private to that session and thrown away when the session ends; nothing
// is stored until ToRecord + Append.
type Draft struct {
	UserName     string
	Kind         model.Kind
	TicketNumber string
	QAName       string
	Description  string
}

// NewDraft returns a draft with the default kind selected.
func NewDraft() *Draft {
	return &Draft{Kind: model.KindTicket}
}

// SetKind switches the active kind. Values entered for other kinds are
// kept, not cleared; they simply stop being shown or used until the kind
// is switched back.
func (d *Draft) SetKind(k model.Kind) {
	d.Kind = k
}

// SetField updates one named field value in place.
func (d *Draft) SetField(name, value string) error {
	switch name {
	case FieldUserName:
		d.UserName = value
	case FieldTicketNumber:
		d.TicketNumber = value
	case FieldQAName:
		d.QAName = value
	case FieldDescription:
		d.Description = value
	default:
		return fmt.Errorf("unknown draft field %q", name)
	}
	return nil
}

// ToRecord snapshots the draft into an immutable record stamped with now.
// Only the fields belonging to the current kind carry over; retained
// values for other kinds stay in the draft. When requireUser is set (the
// hosted backend partitions rows by user), a blank user name fails with
// ErrMissingUserName before anything reaches a store. There is no other
// validation: ticket numbers, QA names and descriptions may be blank.
func (d *Draft) ToRecord(now time.Time, requireUser bool) (model.Record, error) {
	if requireUser && strings.TrimSpace(d.UserName) == "" {
		return model.Record{}, ErrMissingUserName
	}
	rec := model.Record{
		Timestamp: now,
		UserName:  d.UserName,
		Kind:      d.Kind,
	}
	switch d.Kind {
	case model.KindTicket:
		rec.TicketNumber = d.TicketNumber
	case model.KindQA:
		rec.TicketNumber = d.TicketNumber
		rec.QAName = d.QAName
	case model.KindAdHoc:
		rec.Description = d.Description
	}
	return rec, nil
}
