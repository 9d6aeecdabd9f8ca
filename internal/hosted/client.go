package hosted

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/oauth2"

	"github.com/ganot/worklog/internal/model"
)

// table is the hosted work-log table name.
const table = "work_logs"

// Client talks to the hosted work-log table over its REST interface. Many
// independent sessions may write concurrently; their appends are
// unordered relative to each other and the client makes no attempt to
// coordinate them.
type Client struct {
	httpClient *http.Client
	baseURL    string
	apiKey     string
}

// NewClient builds an authenticated client for the service at serviceURL.
// The access key doubles as the bearer token and the apikey header.
func NewClient(ctx context.Context, serviceURL, accessKey string) *Client {
	src := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: accessKey})
	return &Client{
		httpClient: oauth2.NewClient(ctx, src),
		baseURL:    strings.TrimRight(serviceURL, "/"),
		apiKey:     accessKey,
	}
}

// row mirrors one work_logs table row. Timestamps travel as ISO-8601 with
// offset.
type row struct {
	ID           string `json:"id,omitempty"`
	UserName     string `json:"user_name"`
	ActivityType string `json:"activity_type"`
	TicketNumber string `json:"ticket_number"`
	QAName       string `json:"qa_name"`
	Description  string `json:"description"`
	Timestamp    string `json:"timestamp"`
}

func toRow(rec model.Record) row {
	return row{
		ID:           uuid.NewString(),
		UserName:     rec.UserName,
		ActivityType: string(rec.Kind),
		TicketNumber: rec.TicketNumber,
		QAName:       rec.QAName,
		Description:  rec.Description,
		Timestamp:    rec.Timestamp.Format(time.RFC3339),
	}
}

func toRecord(r row) (model.Record, error) {
	ts, err := time.Parse(time.RFC3339, r.Timestamp)
	if err != nil {
		return model.Record{}, fmt.Errorf("parsing row timestamp %q: %w", r.Timestamp, err)
	}
	kind, err := model.ParseKind(r.ActivityType)
	if err != nil {
		return model.Record{}, err
	}
	return model.Record{
		Timestamp:    ts,
		UserName:     r.UserName,
		Kind:         kind,
		TicketNumber: r.TicketNumber,
		QAName:       r.QAName,
		Description:  r.Description,
	}, nil
}

// Append inserts one row per call. No batching, no retry; a non-2xx
// response is surfaced with the service's own message.
func (c *Client) Append(ctx context.Context, rec model.Record) error {
	body, err := json.Marshal(toRow(rec))
	if err != nil {
		return fmt.Errorf("encoding record: %w", err)
	}

	endpoint := fmt.Sprintf("%s/rest/v1/%s", c.baseURL, table)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("apikey", c.apiKey)
	req.Header.Set("Prefer", "return=minimal")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("work log insert failed: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		msg, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("work log service error %d: %s", resp.StatusCode, string(msg))
	}
	return nil
}

// Query returns every record logged by exactly userName (case-sensitive),
// in whatever order the service returns them.
func (c *Client) Query(ctx context.Context, userName string) ([]model.Record, error) {
	q := url.Values{}
	q.Set("select", "*")
	q.Set("user_name", "eq."+userName)
	return c.get(ctx, q)
}

// Latest returns the user's most recent record, or nil when none exist.
func (c *Client) Latest(ctx context.Context, userName string) (*model.Record, error) {
	q := url.Values{}
	q.Set("select", "*")
	q.Set("user_name", "eq."+userName)
	q.Set("order", "timestamp.desc")
	q.Set("limit", "1")

	recs, err := c.get(ctx, q)
	if err != nil {
		return nil, err
	}
	if len(recs) == 0 {
		return nil, nil
	}
	return &recs[0], nil
}

func (c *Client) get(ctx context.Context, q url.Values) ([]model.Record, error) {
	endpoint := fmt.Sprintf("%s/rest/v1/%s?%s", c.baseURL, table, q.Encode())
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("apikey", c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("work log query failed: %w", err)
	}
	body, err := io.ReadAll(resp.Body)
	resp.Body.Close()
	if err != nil {
		return nil, fmt.Errorf("reading response body: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("work log service error %d: %s", resp.StatusCode, string(body))
	}

	var rows []row
	if err := json.Unmarshal(body, &rows); err != nil {
		return nil, fmt.Errorf("decoding work log response: %w", err)
	}
	recs := make([]model.Record, 0, len(rows))
	for _, r := range rows {
		rec, err := toRecord(r)
		if err != nil {
			return nil, err
		}
		recs = append(recs, rec)
	}
	return recs, nil
}
