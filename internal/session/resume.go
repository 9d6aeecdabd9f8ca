package session

import (
	"context"
)

// Resume fetches the user's most recent record and seeds a fresh draft
// from it. A nil draft with a nil error means there is nothing to resume;
// the caller keeps its current draft. The fresh draft mirrors the record,
// so fields for kinds other than the record's own stay at their defaults.
func Resume(ctx context.Context, st Store, userName string) (*Draft, error) {
	rec, err := st.Latest(ctx, userName)
	if err != nil {
		return nil, err
	}
	if rec == nil {
		return nil, nil
	}
	return &Draft{
		UserName:     userName,
		Kind:         rec.Kind,
		TicketNumber: rec.TicketNumber,
		QAName:       rec.QAName,
		Description:  rec.Description,
	}, nil
}
