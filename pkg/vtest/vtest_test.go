package vtest_test

import (
	"io"
	"net/http"
	"testing"

	"github.com/vango-dev/ssrgoods/pkg/goods"
	"github.com/vango-dev/ssrgoods/pkg/vdom"
	"github.com/vango-dev/ssrgoods/pkg/vtest"
)

func TestRenderToString(t *testing.T) {
	node := vdom.Div(vdom.ID("root"), vdom.Ul(vdom.Li("apple")))

	html := vtest.RenderToString(node)

	if html != `<div id="root"><ul><li>apple</li></ul></div>` {
		t.Errorf("RenderToString() = %q", html)
	}
}

func TestRenderToString_Error(t *testing.T) {
	// Void elements cannot have children.
	node := vdom.Meta(vdom.Text("x"))

	if html := vtest.RenderToString(node); html != "" {
		t.Errorf("RenderToString() = %q, want empty", html)
	}
}

func TestExpectHelpers(t *testing.T) {
	node := vdom.Div(vdom.ID("goods"), vdom.Ul(vdom.Li("a")))

	vtest.ExpectContains(t, node, `<div id="goods">`)
	vtest.ExpectContains(t, node, "<li>a</li>")
	vtest.ExpectNotContains(t, node, "<li>b</li>")
	vtest.ExpectElement(t, node, "ul")
}

func TestGoodsSource(t *testing.T) {
	src := vtest.NewGoodsSource(t, `{"data":{"list":["a"]}}`)

	body := getBody(t, src.URL)
	if body != `{"data":{"list":["a"]}}` {
		t.Errorf("body = %q", body)
	}

	src.Set(http.StatusBadGateway, "down")
	resp, err := http.Get(src.URL)
	if err != nil {
		t.Fatal(err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusBadGateway {
		t.Errorf("status = %d, want 502", resp.StatusCode)
	}
	if src.Hits() != 2 {
		t.Errorf("Hits() = %d, want 2", src.Hits())
	}
}

func TestRefusedURL(t *testing.T) {
	if _, err := http.Get(vtest.RefusedURL(t)); err == nil {
		t.Error("expected connection error")
	}
}

func TestListItemsAndInitialGoods(t *testing.T) {
	page := []byte(`<!DOCTYPE html><html><body>` +
		`<ul><li>outside</li></ul>` +
		`<div id="root"><div><ul><li>apple</li><li><b>ba</b>nana</li></ul></div></div>` +
		`<script>window._initialGoods=["apple","banana"]</script>` +
		`</body></html>`)

	items := vtest.ListItems(t, page)
	if len(items) != 2 || items[0] != "apple" || items[1] != "banana" {
		t.Errorf("ListItems() = %q", items)
	}

	list := vtest.InitialGoods(t, page)
	if !list.Equal(goods.Strings("apple", "banana")) {
		t.Errorf("InitialGoods() = %v", list)
	}
}

func getBody(t *testing.T, url string) string {
	t.Helper()
	resp, err := http.Get(url)
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	data, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatal(err)
	}
	return string(data)
}
