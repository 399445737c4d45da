package visits

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"

	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// MasterKeyHeader carries the document store's API key.
const MasterKeyHeader = "X-Master-Key"

// maxBodySize bounds how much of a response is read.
const maxBodySize = 1 << 20

var tracer = otel.Tracer("github.com/mmynk/gpacalc/internal/visits")

// RemoteCounter keeps the visit count in a JSON document store (jsonbin.io
// style): GET returns {"record": {"visits": N}}, PUT replaces the document.
//
// The increment is a read followed by a write with no concurrency control, so
// two simultaneous visitors can both write N+1 and one visit is lost. The count
// is therefore eventually inconsistent under concurrency. Use StoreCounter
// when exact counts matter.
type RemoteCounter struct {
	client    *http.Client
	url       string
	masterKey string
}

// NewRemoteCounter creates a counter for the document at url.
// A nil client defaults to http.DefaultClient.
func NewRemoteCounter(client *http.Client, url, masterKey string) *RemoteCounter {
	if client == nil {
		client = http.DefaultClient
	}
	return &RemoteCounter{client: client, url: url, masterKey: masterKey}
}

// Increment implements Counter.
func (c *RemoteCounter) Increment(ctx context.Context) (n int64, err error) {
	ctx, span := tracer.Start(ctx, "RemoteCounter.Increment", trace.WithSpanKind(trace.SpanKindClient))
	defer func() {
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		} else {
			span.SetAttributes(attribute.Int64("visits.count", n))
		}
		span.End()
	}()

	current, err := c.fetch(ctx)
	if err != nil {
		return 0, err
	}

	next := current + 1
	if err := c.store(ctx, next); err != nil {
		return 0, err
	}
	return next, nil
}

func (c *RemoteCounter) fetch(ctx context.Context) (int64, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.url, nil)
	if err != nil {
		return 0, fmt.Errorf("failed to build fetch request: %w", err)
	}
	req.Header.Set(MasterKeyHeader, c.masterKey)

	body, err := c.do(req)
	if err != nil {
		return 0, fmt.Errorf("failed to fetch visits: %w", err)
	}

	visits := gjson.GetBytes(body, "record.visits")
	if visits.Type != gjson.Number {
		return 0, fmt.Errorf("failed to fetch visits: record.visits is not a number")
	}
	return visits.Int(), nil
}

func (c *RemoteCounter) store(ctx context.Context, visits int64) error {
	payload, err := sjson.SetBytes([]byte(`{}`), "visits", visits)
	if err != nil {
		return fmt.Errorf("failed to encode visits: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPut, c.url, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("failed to build store request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set(MasterKeyHeader, c.masterKey)

	if _, err := c.do(req); err != nil {
		return fmt.Errorf("failed to store visits: %w", err)
	}
	return nil
}

func (c *RemoteCounter) do(req *http.Request) ([]byte, error) {
	resp, err := c.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
	if err != nil {
		return nil, fmt.Errorf("read body: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("unexpected status %d", resp.StatusCode)
	}
	return body, nil
}
