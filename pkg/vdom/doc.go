// Package vdom provides the in-memory node tree that page components render to.
//
// VNode is the building block: elements, escaped text and trusted raw markup.
// Props holds attributes. The tree is built with variadic factory functions
// and turned into HTML by package render.
//
//	Div(ID("root"),
//	    Ul(Li(Key(0), Text("apple")), Li(Key(1), Text("banana"))),
//	)
//
// The Key attribute is recorded on the node for client reconciliation and is
// never written as an HTML attribute.
package vdom
