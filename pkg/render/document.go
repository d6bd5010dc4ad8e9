package render

import (
	"bytes"
	"encoding/json"
	"io"

	"github.com/vango-dev/ssrgoods/pkg/goods"
	"github.com/vango-dev/ssrgoods/pkg/vdom"
)

// DefaultBundleSrc is the client bundle reference used when Document.BundleSrc is empty.
const DefaultBundleSrc = "bundle.js"

// InitialGoodsVar is the global the client bundle reads its initial state from.
const InitialGoodsVar = "window._initialGoods"

// Document is the HTML shell sent for a page request.
type Document struct {
	// Title is the page title.
	Title string

	// Markup is the rendered component HTML placed inside #root.
	Markup string

	// InitialGoods is the list the markup was rendered from.
	InitialGoods goods.List

	// BundleSrc is the client bundle URL. Defaults to DefaultBundleSrc.
	BundleSrc string
}

// WriteTo writes the complete document to w. Nothing is written when the
// initial data cannot be serialized.
func (d Document) WriteTo(w io.Writer) (int64, error) {
	data, err := MarshalInitialGoods(d.InitialGoods)
	if err != nil {
		return 0, err
	}

	var buf bytes.Buffer
	buf.Grow(len(d.Markup) + len(data) + 256)

	buf.WriteString("<!DOCTYPE html>\n")
	if err := NewRenderer().RenderToWriter(&buf, d.tree(data)); err != nil {
		return 0, err
	}
	buf.WriteString("\n")

	return buf.WriteTo(w)
}

// tree builds the page shell around the rendered markup and the serialized
// initial goods.
func (d Document) tree(data []byte) *vdom.VNode {
	src := d.BundleSrc
	if src == "" {
		src = DefaultBundleSrc
	}
	nl := vdom.Text("\n")

	return vdom.Html(nl,
		vdom.Head(vdom.Meta(vdom.Charset("utf-8")), vdom.Title(d.Title)), nl,
		vdom.Body(nl,
			vdom.Div(vdom.ID("root"), vdom.Raw(d.Markup)), nl,
			vdom.Script(vdom.Raw(InitialGoodsVar+"="+string(data))), nl,
			vdom.Script(vdom.Src(src)), nl,
		), nl,
	)
}

// Bytes returns the complete document.
func (d Document) Bytes() ([]byte, error) {
	var buf bytes.Buffer
	if _, err := d.WriteTo(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// MarshalInitialGoods serializes list for inline embedding in a script element.
// encoding/json escapes <, >, & and U+2028/U+2029 by default, so the output
// cannot close the surrounding element and parses back to the same value.
func MarshalInitialGoods(list goods.List) ([]byte, error) {
	return json.Marshal(list)
}
