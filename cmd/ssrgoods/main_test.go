package main

import (
	"bytes"
	"io"
	"net"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vango-dev/ssrgoods/internal/errors"
)

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(io.Discard)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func goodsSource(t *testing.T, body string) string {
	t.Helper()
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, body)
	}))
	t.Cleanup(ts.Close)
	return ts.URL
}

func TestVersionShort(t *testing.T) {
	out, err := run(t, "version", "--short")
	require.NoError(t, err)
	assert.Equal(t, version+"\n", out)
}

func TestRender(t *testing.T) {
	endpoint := goodsSource(t, `{"data":{"list":["apple","banana"]}}`)

	out, err := run(t, "render", "--endpoint", endpoint, "--title", "Shop")

	require.NoError(t, err)
	assert.Contains(t, out, "<title>Shop</title>")
	assert.Contains(t, out, "<li>apple</li><li>banana</li>")
	assert.Contains(t, out, `window._initialGoods=["apple","banana"]`)
}

func TestRenderToFile(t *testing.T) {
	endpoint := goodsSource(t, `{"data":{"list":[]}}`)
	path := filepath.Join(t.TempDir(), "index.html")

	_, err := run(t, "render", "--endpoint", endpoint, "-o", path)
	require.NoError(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "window._initialGoods=[]")
}

func TestRenderFailureWritesNothing(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	endpoint := "http://" + ln.Addr().String()
	require.NoError(t, ln.Close())

	out, err := run(t, "render", "--endpoint", endpoint)

	require.Error(t, err)
	assert.True(t, errors.IsFetch(err))
	assert.Empty(t, out)
}

func TestRenderRejectsBadEndpoint(t *testing.T) {
	_, err := run(t, "render", "--endpoint", "not a url")

	se, ok := errors.As(err)
	require.True(t, ok)
	assert.Equal(t, errors.CodeInvalidEndpoint, se.Code)
}

func TestConfig(t *testing.T) {
	out, err := run(t, "config", "--port", "8080")

	require.NoError(t, err)
	assert.Contains(t, out, "port: 8080")
	assert.Contains(t, out, "endpoint:")
}

func TestConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ssrgoods.yaml")
	require.NoError(t, os.WriteFile(path, []byte("page:\n  title: From File\n"), 0o644))

	out, err := run(t, "config", "--config", path)

	require.NoError(t, err)
	assert.Contains(t, out, "# "+path)
	assert.Contains(t, out, "title: From File")
}

// Each root command carries its own --config value.
func TestConfigFilePerCommand(t *testing.T) {
	dir := t.TempDir()
	titles := []string{"First", "Second", "Third"}
	paths := make([]string, len(titles))
	for i, title := range titles {
		paths[i] = filepath.Join(dir, title+".yaml")
		require.NoError(t, os.WriteFile(paths[i], []byte("page:\n  title: "+title+"\n"), 0o644))
	}

	outs := make([]string, len(titles)+1)
	errs := make([]error, len(titles)+1)
	var wg sync.WaitGroup
	for i := range outs {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			if i == len(titles) {
				outs[i], errs[i] = run(t, "config")
				return
			}
			outs[i], errs[i] = run(t, "config", "--config", paths[i])
		}(i)
	}
	wg.Wait()

	for i, title := range titles {
		require.NoError(t, errs[i])
		assert.Contains(t, outs[i], "# "+paths[i])
		assert.Contains(t, outs[i], "title: "+title)
	}
	require.NoError(t, errs[len(titles)])
	assert.NotContains(t, outs[len(titles)], dir)
}
