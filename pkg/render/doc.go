// Package render provides server-side rendering of VNode trees.
//
// The render package converts VNode trees into HTML strings or streams:
//
//   - HTML5 compliant element rendering
//   - Text and attribute escaping
//   - Void element handling (meta, br, img, etc.)
//   - Trusted raw markup for the page shell
//
// # Basic Usage
//
//	renderer := render.NewRenderer()
//	html, err := renderer.RenderToString(node)
//
// # Page Document
//
// Document wraps rendered markup in the page shell, which is itself a VNode
// tree. The shell carries the same goods list the markup was rendered from,
// as an inline script that assigns window._initialGoods, followed by the
// client bundle reference:
//
//	doc := render.Document{Title: "Goods", Markup: html, InitialGoods: list}
//	_, err := doc.WriteTo(w)
//
// The inline JSON has <, >, & and the JavaScript line separators escaped, so
// no item value can terminate the script element early.
package render
