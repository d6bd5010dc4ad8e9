// Package loader fetches the goods list from the remote data source.
//
// Every Load performs exactly one HTTP request. There is no cache, no retry
// and no fallback data: a failed request is reported to the caller as is.
package loader

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	ssrerrors "github.com/vango-dev/ssrgoods/internal/errors"
	"github.com/vango-dev/ssrgoods/pkg/goods"
)

// DefaultMaxBodyBytes bounds the response body read from the data source.
const DefaultMaxBodyBytes int64 = 1 << 20

const defaultTracerName = "ssrgoods/loader"

// Loader produces the goods list for one page render.
type Loader interface {
	Load(ctx context.Context) (goods.List, error)
}

// LoaderFunc adapts a function to the Loader interface.
type LoaderFunc func(ctx context.Context) (goods.List, error)

// Load implements Loader.
func (f LoaderFunc) Load(ctx context.Context) (goods.List, error) {
	return f(ctx)
}

// HTTPLoader loads the goods list with one GET request per call.
type HTTPLoader struct {
	endpoint     string
	client       *http.Client
	timeout      time.Duration
	maxBodyBytes int64
	tracer       trace.Tracer
}

// Option configures an HTTPLoader.
type Option func(*HTTPLoader)

// WithHTTPClient sets the HTTP client used for requests.
func WithHTTPClient(c *http.Client) Option {
	return func(l *HTTPLoader) {
		if c != nil {
			l.client = c
		}
	}
}

// WithTimeout bounds each Load call. Zero disables the timeout; the caller's
// context still applies.
func WithTimeout(d time.Duration) Option {
	return func(l *HTTPLoader) {
		l.timeout = d
	}
}

// WithMaxBodyBytes sets the largest response body accepted.
func WithMaxBodyBytes(n int64) Option {
	return func(l *HTTPLoader) {
		if n > 0 {
			l.maxBodyBytes = n
		}
	}
}

// WithTracer sets the tracer used for loader spans.
func WithTracer(t trace.Tracer) Option {
	return func(l *HTTPLoader) {
		if t != nil {
			l.tracer = t
		}
	}
}

// NewHTTPLoader creates a loader for endpoint. The endpoint must be an
// absolute http or https URL.
func NewHTTPLoader(endpoint string, opts ...Option) (*HTTPLoader, error) {
	if err := ValidateEndpoint(endpoint); err != nil {
		return nil, err
	}

	l := &HTTPLoader{
		endpoint:     endpoint,
		client:       http.DefaultClient,
		maxBodyBytes: DefaultMaxBodyBytes,
		tracer:       otel.Tracer(defaultTracerName),
	}
	for _, opt := range opts {
		opt(l)
	}
	return l, nil
}

// ValidateEndpoint reports whether endpoint is an absolute http(s) URL.
func ValidateEndpoint(endpoint string) error {
	u, err := url.Parse(endpoint)
	if err != nil {
		return ssrerrors.New(ssrerrors.CodeInvalidEndpoint).WithDetail(endpoint).Wrap(err)
	}
	if (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return ssrerrors.New(ssrerrors.CodeInvalidEndpoint).WithDetailf("%q", endpoint)
	}
	return nil
}

// Endpoint returns the data source URL.
func (l *HTTPLoader) Endpoint() string {
	return l.endpoint
}

// Load fetches and decodes the goods list.
//
// Transport failures and non-2xx answers are fetch errors. A body that is too
// large or not shaped {"data":{"list":[...]}} is a malformed payload error.
func (l *HTTPLoader) Load(ctx context.Context) (list goods.List, err error) {
	ctx, span := l.tracer.Start(ctx, "loader.Load",
		trace.WithSpanKind(trace.SpanKindClient),
		trace.WithAttributes(attribute.String("http.url", l.endpoint)),
	)
	defer func() {
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
			span.SetAttributes(attribute.String("ssr.error.category", string(ssrerrors.CategoryOf(err))))
		} else {
			span.SetAttributes(attribute.Int("goods.count", len(list)))
			span.SetStatus(codes.Ok, "")
		}
		span.End()
	}()

	if l.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, l.timeout)
		defer cancel()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, l.endpoint, nil)
	if err != nil {
		return nil, ssrerrors.New(ssrerrors.CodeSourceUnreachable).WithDetail(l.endpoint).Wrap(err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := l.client.Do(req)
	if err != nil {
		return nil, ssrerrors.New(ssrerrors.CodeSourceUnreachable).
			WithDetailf("GET %s", l.endpoint).
			Wrap(err)
	}
	defer resp.Body.Close()

	span.SetAttributes(attribute.Int("http.status_code", resp.StatusCode))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		// Drain a little so the connection can be reused.
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 4<<10))
		return nil, ssrerrors.New(ssrerrors.CodeSourceStatus).
			WithDetailf("GET %s: %s", l.endpoint, resp.Status).
			WithStatus(resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, l.maxBodyBytes+1))
	if err != nil {
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			return nil, ssrerrors.New(ssrerrors.CodeSourceUnreachable).
				WithDetailf("GET %s: reading body", l.endpoint).
				Wrap(err)
		}
		return nil, ssrerrors.New(ssrerrors.CodeMalformedPayload).
			WithDetailf("reading body from %s", l.endpoint).
			Wrap(err)
	}
	if int64(len(body)) > l.maxBodyBytes {
		return nil, ssrerrors.New(ssrerrors.CodeMalformedPayload).
			WithDetail(fmt.Sprintf("response body exceeds %d bytes", l.maxBodyBytes))
	}

	return goods.Decode(body)
}

// Static returns a Loader that always yields list.
func Static(list goods.List) Loader {
	return LoaderFunc(func(context.Context) (goods.List, error) {
		return list, nil
	})
}
