package vtest

import (
	"bytes"
	"encoding/json"
	"regexp"
	"strings"
	"testing"

	"golang.org/x/net/html"

	"github.com/vango-dev/ssrgoods/pkg/goods"
)

// ListItems returns the text of every <li> inside the element with id
// "root", in document order. Without a #root element the whole document is
// searched.
func ListItems(t testing.TB, doc []byte) []string {
	t.Helper()
	parsed, err := html.Parse(bytes.NewReader(doc))
	if err != nil {
		t.Fatalf("parse page: %v", err)
	}

	root := findByID(parsed, "root")
	if root == nil {
		root = parsed
	}

	items := []string{}
	var walk func(n *html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode && n.Data == "li" {
			items = append(items, textOf(n))
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(root)
	return items
}

func textOf(n *html.Node) string {
	var b strings.Builder
	var walk func(n *html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			b.WriteString(n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return b.String()
}

func findByID(n *html.Node, id string) *html.Node {
	if n.Type == html.ElementNode {
		for _, a := range n.Attr {
			if a.Key == "id" && a.Val == id {
				return n
			}
		}
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if found := findByID(c, id); found != nil {
			return found
		}
	}
	return nil
}

var initialGoodsRe = regexp.MustCompile(`<script>window\._initialGoods=(.*?)</script>`)

// InitialGoods decodes the list a page embeds for the client bundle.
func InitialGoods(t testing.TB, doc []byte) goods.List {
	t.Helper()
	m := initialGoodsRe.FindSubmatch(doc)
	if m == nil {
		t.Fatalf("page has no initial goods script")
	}

	var list goods.List
	if err := json.Unmarshal(m[1], &list); err != nil {
		t.Fatalf("decode initial goods: %v", err)
	}
	return list
}
