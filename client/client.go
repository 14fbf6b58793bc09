// Package client is a thin SDK for the annotation service. Responses are
// decoded through the feedback read-model schemas, so a malformed server
// payload surfaces as fbskema.Issues.
package client

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	json "github.com/goccy/go-json"
	"github.com/google/uuid"

	fbskema "github.com/reoring/fbskema"
	"github.com/reoring/fbskema/feedback"
)

// APIKeyHeader carries the API key on every request.
const APIKeyHeader = "X-Argilla-Api-Key"

// DefaultSearchLimit is the page size used when SearchOptions.Limit is zero.
const DefaultSearchLimit = 50

// Client calls the service at a base URL.
type Client struct {
	baseURL *url.URL
	http    *http.Client
	apiKey  string
}

// Option configures a Client.
type Option func(*Client)

func WithHTTPClient(hc *http.Client) Option { return func(c *Client) { c.http = hc } }

func WithAPIKey(key string) Option { return func(c *Client) { c.apiKey = key } }

// New returns a client for baseURL, e.g. "http://localhost:6900".
func New(baseURL string, opts ...Option) (*Client, error) {
	u, err := url.Parse(strings.TrimRight(baseURL, "/"))
	if err != nil {
		return nil, fmt.Errorf("client: parse base url: %w", err)
	}
	if u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("client: base url %q needs scheme and host", baseURL)
	}
	c := &Client{baseURL: u, http: http.DefaultClient}
	for _, o := range opts {
		o(c)
	}
	return c, nil
}

// APIError is returned for non-2xx responses.
type APIError struct {
	Status int
	Body   []byte
}

func (e *APIError) Error() string {
	return fmt.Sprintf("client: unexpected status %d: %s", e.Status, bytes.TrimSpace(e.Body))
}

// SearchOptions controls record search. Include names relations to load
// (feedback.RelationResponses, feedback.RelationSuggestions); nil loads both,
// an empty non-nil slice loads none.
type SearchOptions struct {
	Include []string
	Limit   int
}

// SearchRecords runs a search over the records of a dataset.
func (c *Client) SearchRecords(ctx context.Context, datasetID uuid.UUID, q feedback.SearchRecordsQuery, opt SearchOptions) (feedback.SearchRecordsResult, error) {
	if err := feedback.SearchRecordsQuerySchema().ValidateValue(ctx, q); err != nil {
		return feedback.SearchRecordsResult{}, err
	}
	include := opt.Include
	if include == nil {
		include = []string{feedback.RelationResponses, feedback.RelationSuggestions}
	}
	params := url.Values{}
	for _, inc := range include {
		params.Add("include", inc)
	}
	limit := opt.Limit
	if limit <= 0 {
		limit = DefaultSearchLimit
	}
	params.Set("limit", strconv.Itoa(limit))
	var out feedback.SearchRecordsResult
	err := c.do(ctx, http.MethodPost, "/api/me/datasets/"+datasetID.String()+"/records/search", params,
		map[string]any{"query": q.Query}, func(body []byte) error {
			return decode(ctx, feedback.SearchRecordsResultSchema(), body, &out)
		})
	return out, err
}

// UpdateRecord sends only the fields present in u.
func (c *Client) UpdateRecord(ctx context.Context, recordID uuid.UUID, u feedback.RecordUpdate) (feedback.Record, error) {
	if err := feedback.RecordUpdateSchema().ValidateValue(ctx, u); err != nil {
		return feedback.Record{}, err
	}
	var out feedback.Record
	err := c.do(ctx, http.MethodPatch, "/api/v1/records/"+recordID.String(), nil, u.Changes(), func(body []byte) error {
		return decode(ctx, feedback.RecordSchema(), body, &out)
	})
	return out, err
}

// UpsertSuggestion creates or replaces the suggestion of a record for
// s.QuestionID.
func (c *Client) UpsertSuggestion(ctx context.Context, recordID uuid.UUID, s feedback.SuggestionCreate) (feedback.Suggestion, error) {
	if err := feedback.SuggestionCreateSchema().ValidateValue(ctx, s); err != nil {
		return feedback.Suggestion{}, err
	}
	var out feedback.Suggestion
	err := c.do(ctx, http.MethodPut, "/api/v1/records/"+recordID.String()+"/suggestions", nil, s, func(body []byte) error {
		return decode(ctx, feedback.SuggestionSchema(), body, &out)
	})
	return out, err
}

// ListMetadataProperties lists the metadata properties of a dataset.
func (c *Client) ListMetadataProperties(ctx context.Context, datasetID uuid.UUID) (feedback.MetadataProperties, error) {
	var out feedback.MetadataProperties
	err := c.do(ctx, http.MethodGet, "/api/v1/me/datasets/"+datasetID.String()+"/metadata-properties", nil, nil, func(body []byte) error {
		return decode(ctx, feedback.MetadataPropertiesSchema(), body, &out)
	})
	return out, err
}

func decode[T any](ctx context.Context, s fbskema.Schema[T], body []byte, out *T) error {
	v, err := fbskema.ParseFrom(ctx, s, fbskema.JSONBytes(body))
	if err != nil {
		return err
	}
	*out = v
	return nil
}

func (c *Client) do(ctx context.Context, method, path string, params url.Values, in any, onOK func([]byte) error) error {
	u := c.baseURL.JoinPath(path)
	if len(params) > 0 {
		u.RawQuery = params.Encode()
	}
	var body io.Reader
	if in != nil {
		b, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("client: encode request: %w", err)
		}
		body = bytes.NewReader(b)
	}
	req, err := http.NewRequestWithContext(ctx, method, u.String(), body)
	if err != nil {
		return fmt.Errorf("client: build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.apiKey != "" {
		req.Header.Set(APIKeyHeader, c.apiKey)
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("client: %s %s: %w", method, path, err)
	}
	defer resp.Body.Close()
	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("client: read response: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &APIError{Status: resp.StatusCode, Body: raw}
	}
	return onOK(raw)
}
