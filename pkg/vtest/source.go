package vtest

import (
	"io"
	"net"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
)

// GoodsSource is a fake remote data source backed by httptest.Server.
type GoodsSource struct {
	// URL is the goods endpoint.
	URL string

	hits   atomic.Int32
	status atomic.Int32
	body   atomic.Value
}

// NewGoodsSource starts a data source answering body with 200 OK.
// It is closed when the test ends.
func NewGoodsSource(t testing.TB, body string) *GoodsSource {
	t.Helper()
	src := &GoodsSource{}
	src.Set(http.StatusOK, body)

	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		src.hits.Add(1)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(int(src.status.Load()))
		_, _ = io.WriteString(w, src.body.Load().(string))
	}))
	t.Cleanup(ts.Close)

	src.URL = ts.URL + "/mock/ssr/goods"
	return src
}

// Set changes the answer for subsequent requests.
func (s *GoodsSource) Set(status int, body string) {
	s.status.Store(int32(status))
	s.body.Store(body)
}

// Hits returns the number of requests served.
func (s *GoodsSource) Hits() int {
	return int(s.hits.Load())
}

// RefusedURL returns an http URL on a port nothing listens on.
func RefusedURL(t testing.TB) string {
	t.Helper()
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("listen: %v", err)
	}
	addr := ln.Addr().String()
	if err := ln.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}
	return "http://" + addr + "/goods"
}
