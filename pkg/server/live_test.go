package server

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vango-dev/ssrgoods/pkg/component"
	"github.com/vango-dev/ssrgoods/pkg/goods"
	"github.com/vango-dev/ssrgoods/pkg/loader"
	"github.com/vango-dev/ssrgoods/pkg/vtest"
)

func dialLive(t *testing.T, srv *Server, header http.Header) (*websocket.Conn, *http.Response, error) {
	t.Helper()
	ts := httptest.NewServer(srv)
	t.Cleanup(ts.Close)

	url := "ws" + strings.TrimPrefix(ts.URL, "http") + LivePath
	return websocket.DefaultDialer.Dial(url, header)
}

func TestLiveReplace(t *testing.T) {
	src := vtest.NewGoodsSource(t, `{"data":{"list":["apple","banana"]}}`)
	srv := New(DefaultConfig(), httpLoader(t, src.URL))

	conn, _, err := dialLive(t, srv, nil)
	require.NoError(t, err)
	defer conn.Close()

	_, data, err := conn.ReadMessage()
	require.NoError(t, err)

	var msg component.Replace
	require.NoError(t, json.Unmarshal(data, &msg))
	assert.True(t, msg.Goods.Equal(goods.Strings("apple", "banana")))
	assert.Equal(t, 1, src.Hits())

	_, _, err = conn.ReadMessage()
	assert.True(t, websocket.IsCloseError(err, websocket.CloseNormalClosure), "got %v", err)
}

func TestLiveError(t *testing.T) {
	src := vtest.NewGoodsSource(t, `{}`)
	srv := New(DefaultConfig(), httpLoader(t, src.URL))

	conn, _, err := dialLive(t, srv, nil)
	require.NoError(t, err)
	defer conn.Close()

	var msg component.ErrorMsg
	require.NoError(t, conn.ReadJSON(&msg))
	assert.Equal(t, component.MsgTypeError, msg.Type)
	assert.Equal(t, "E110", msg.Code)

	_, _, err = conn.ReadMessage()
	assert.True(t, websocket.IsCloseError(err, websocket.CloseNormalClosure), "got %v", err)
}

func TestLiveRejectsCrossOrigin(t *testing.T) {
	srv := New(DefaultConfig(), loader.Static(goods.Strings("a")))

	_, resp, err := dialLive(t, srv, http.Header{"Origin": []string{"http://evil.example"}})

	require.Error(t, err)
	require.NotNil(t, resp)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
}

func TestLiveRequiresUpgrade(t *testing.T) {
	srv := New(DefaultConfig(), loader.Static(nil))

	rec := get(t, srv, LivePath)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
