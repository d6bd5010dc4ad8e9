package render

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"golang.org/x/net/html"

	"github.com/vango-dev/ssrgoods/pkg/goods"
	"github.com/vango-dev/ssrgoods/pkg/vdom"
)

func TestDocumentShell(t *testing.T) {
	doc := Document{
		Title:        "Goods",
		Markup:       "<div><ul><li>apple</li><li>banana</li></ul></div>",
		InitialGoods: goods.Strings("apple", "banana"),
	}
	out, err := doc.Bytes()
	if err != nil {
		t.Fatal(err)
	}

	want := "<!DOCTYPE html>\n<html>\n" +
		`<head><meta charset="utf-8"><title>Goods</title></head>` + "\n" +
		"<body>\n" +
		`<div id="root"><div><ul><li>apple</li><li>banana</li></ul></div></div>` + "\n" +
		`<script>window._initialGoods=["apple","banana"]</script>` + "\n" +
		`<script src="bundle.js"></script>` + "\n" +
		"</body>\n</html>\n"
	if string(out) != want {
		t.Errorf("document =\n%s\nwant\n%s", out, want)
	}
}

func TestDocumentTree(t *testing.T) {
	doc := Document{Title: "Goods", Markup: "<div></div>", BundleSrc: "/b.js"}
	root := doc.tree([]byte("[]"))

	if root.Tag != "html" {
		t.Fatalf("root = <%s>", root.Tag)
	}
	var head, body *vdom.VNode
	for _, c := range root.Children {
		switch c.Tag {
		case "head":
			head = c
		case "body":
			body = c
		}
	}
	if head == nil || body == nil {
		t.Fatalf("missing head or body: %+v", root.Children)
	}
	if meta := head.Children[0]; meta.Tag != "meta" || meta.Props["charset"] != "utf-8" {
		t.Errorf("head starts with %+v", meta)
	}

	var scripts []*vdom.VNode
	for _, c := range body.Children {
		if c.Tag == "script" {
			scripts = append(scripts, c)
		}
	}
	if len(scripts) != 2 {
		t.Fatalf("found %d scripts, want 2", len(scripts))
	}
	if k := scripts[0].Children[0].Kind; k != vdom.KindRaw {
		t.Errorf("inline script child kind = %s, want Raw", k)
	}
	if src := scripts[1].Props["src"]; src != "/b.js" {
		t.Errorf("bundle src = %q", src)
	}
}

func TestDocumentEmptyList(t *testing.T) {
	out, err := Document{Markup: "<div><ul></ul></div>"}.Bytes()
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(out), "<script>window._initialGoods=[]</script>") {
		t.Errorf("nil list should embed []:\n%s", out)
	}
}

func TestDocumentBundleSrc(t *testing.T) {
	out, err := Document{BundleSrc: `/static/bundle.abc123.js?v="1"`}.Bytes()
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(out), `<script src="/static/bundle.abc123.js?v=&quot;1&quot;"></script>`) {
		t.Errorf("bundle src not escaped:\n%s", out)
	}
}

func TestDocumentTitleEscaped(t *testing.T) {
	out, err := Document{Title: "</title><script>"}.Bytes()
	if err != nil {
		t.Fatal(err)
	}
	if strings.Contains(string(out), "</title><script>") {
		t.Errorf("title not escaped:\n%s", out)
	}
}

func TestDocumentWriteToCount(t *testing.T) {
	var buf bytes.Buffer
	n, err := Document{InitialGoods: goods.Strings("x")}.WriteTo(&buf)
	if err != nil {
		t.Fatal(err)
	}
	if int(n) != buf.Len() {
		t.Errorf("WriteTo returned %d, wrote %d", n, buf.Len())
	}
}

func TestDocumentInvalidInitialGoods(t *testing.T) {
	var buf bytes.Buffer
	_, err := Document{InitialGoods: goods.List{goods.Item("{broken")}}.WriteTo(&buf)
	if err == nil {
		t.Fatal("expected marshal error")
	}
	if buf.Len() != 0 {
		t.Errorf("partial document written: %q", buf.String())
	}
}

// hostile items must not break out of the inline script, and must parse
// back to the same values.
func TestDocumentScriptSafe(t *testing.T) {
	hostile := []string{
		"</script><script>alert(1)</script>",
		"<!--",
		"a & b",
		"line\u2028sep\u2029para",
	}
	list := goods.Strings(hostile...)

	out, err := Document{InitialGoods: list}.Bytes()
	if err != nil {
		t.Fatal(err)
	}

	scripts := inlineScripts(t, out)
	if len(scripts) != 1 {
		t.Fatalf("found %d inline scripts, want 1: %q", len(scripts), scripts)
	}
	payload := strings.TrimPrefix(scripts[0], InitialGoodsVar+"=")
	if payload == scripts[0] {
		t.Fatalf("inline script = %q", scripts[0])
	}
	if strings.ContainsAny(payload, "<>&\u2028\u2029") {
		t.Errorf("unescaped characters in payload: %q", payload)
	}

	var got []string
	if err := json.Unmarshal([]byte(payload), &got); err != nil {
		t.Fatalf("payload is not JSON: %v", err)
	}
	if len(got) != len(hostile) {
		t.Fatalf("got %d items, want %d", len(got), len(hostile))
	}
	for i := range hostile {
		if got[i] != hostile[i] {
			t.Errorf("item %d = %q, want %q", i, got[i], hostile[i])
		}
	}
}

// inlineScripts returns the text of every <script> element without a src.
func inlineScripts(t *testing.T, doc []byte) []string {
	t.Helper()
	root, err := html.Parse(bytes.NewReader(doc))
	if err != nil {
		t.Fatal(err)
	}
	var out []string
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode && n.Data == "script" {
			hasSrc := false
			for _, a := range n.Attr {
				if a.Key == "src" {
					hasSrc = true
				}
			}
			if !hasSrc && n.FirstChild != nil {
				out = append(out, n.FirstChild.Data)
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(root)
	return out
}
