package integration_test

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/vango-dev/ssrgoods/pkg/loader"
	"github.com/vango-dev/ssrgoods/pkg/server"
)

// startServer runs a render server on a real listener.
func startServer(t *testing.T, endpoint string, opts ...server.Option) string {
	t.Helper()
	l, err := loader.NewHTTPLoader(endpoint, loader.WithTimeout(5*time.Second))
	require.NoError(t, err)

	ts := httptest.NewServer(server.New(server.DefaultConfig(), l, opts...))
	t.Cleanup(ts.Close)
	return ts.URL
}

func fetch(t *testing.T, url string) (*http.Response, []byte) {
	t.Helper()
	resp, err := http.Get(url)
	require.NoError(t, err)
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp, body
}
