package propertyapi

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"propview/internal/jsonutil"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	oteltrace "go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"
)

const (
	summaryPath = "/properties/summary"
	listPath    = "/properties"
	detailPath  = "/property"

	// RequestIDHeader carries a per-request id for correlating API logs.
	RequestIDHeader = "X-Request-ID"

	// maxErrorBody caps how much of a failed response is kept in the error.
	maxErrorBody = 512
)

// Client talks to the Property API rooted at a fixed base URL.
type Client struct {
	baseURL    string
	httpClient *http.Client
	tracer     oteltrace.Tracer
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the default http.Client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.httpClient = hc
		}
	}
}

// WithTracer sets the tracer used for per-call client spans.
func WithTracer(t oteltrace.Tracer) Option {
	return func(c *Client) {
		if t != nil {
			c.tracer = t
		}
	}
}

// NewClient creates a client for baseURL. Trailing slashes are trimmed.
// The default http.Client has no timeout; the transport and the API decide.
func NewClient(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{},
		tracer:     noop.NewTracerProvider().Tracer(""),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// BaseURL returns the API base the client was built with.
func (c *Client) BaseURL() string { return c.baseURL }

// SummaryURL returns the summary endpoint.
func (c *Client) SummaryURL() string { return c.baseURL + summaryPath }

// ListURL returns the list endpoint.
func (c *Client) ListURL() string { return c.baseURL + listPath }

// DetailURL returns the detail endpoint for zpid. The key is sent as-is
// apart from standard query encoding.
func (c *Client) DetailURL(zpid string) string {
	q := url.Values{"zpid": []string{zpid}}
	return c.baseURL + detailPath + "?" + q.Encode()
}

// Summary fetches the aggregate summary document. Any JSON value is
// accepted; a null body yields a nil Document.
func (c *Client) Summary(ctx context.Context) (Document, error) {
	var doc Document
	err := c.get(ctx, "summary", c.SummaryURL(), nil, func(body []byte) error {
		raw, err := jsonutil.RawValue(body, "decode summary")
		doc = Document(raw)
		return err
	})
	return doc, err
}

// List fetches every property in API order.
func (c *Client) List(ctx context.Context) ([]Property, error) {
	var items []Property
	err := c.get(ctx, "list", c.ListURL(), nil, func(body []byte) error {
		var err error
		items, err = jsonutil.UnmarshalArrayAllowEmpty[Property](body, "decode property list")
		return err
	})
	return items, err
}

// Detail fetches the document for a single zpid, with the same decoding
// rules as Summary.
func (c *Client) Detail(ctx context.Context, zpid string) (Document, error) {
	var doc Document
	attrs := []attribute.KeyValue{attribute.String("propview.zpid", zpid)}
	err := c.get(ctx, "detail", c.DetailURL(zpid), attrs, func(body []byte) error {
		raw, err := jsonutil.RawValue(body, "decode property detail")
		doc = Document(raw)
		return err
	})
	return doc, err
}

// get issues a GET inside a client span and hands a 2xx body to decode.
// Every failure comes back as *FetchError.
func (c *Client) get(ctx context.Context, op, rawURL string, attrs []attribute.KeyValue, decode func([]byte) error) (err error) {
	ctx, span := c.tracer.Start(ctx, "propertyapi."+op,
		oteltrace.WithSpanKind(oteltrace.SpanKindClient),
		oteltrace.WithAttributes(append(attrs,
			attribute.String("http.method", http.MethodGet),
			attribute.String("http.url", rawURL),
		)...),
	)
	defer func() {
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		}
		span.End()
	}()

	fail := func(status int, cause error) error {
		return &FetchError{Op: op, URL: rawURL, StatusCode: status, Err: cause}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return fail(0, fmt.Errorf("create request: %w", err))
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set(RequestIDHeader, uuid.NewString())

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fail(0, err)
	}
	defer resp.Body.Close()

	span.SetAttributes(attribute.Int("http.status_code", resp.StatusCode))

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return fail(resp.StatusCode, fmt.Errorf("non-success status: %s", strings.TrimSpace(string(snippet))))
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fail(resp.StatusCode, fmt.Errorf("read body: %w", err))
	}
	if err := decode(body); err != nil {
		return fail(resp.StatusCode, err)
	}
	return nil
}
