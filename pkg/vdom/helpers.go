package vdom

import "strconv"

// Text creates a text node. Its content is escaped when rendered.
func Text(content string) *VNode {
	return &VNode{
		Kind: KindText,
		Text: content,
	}
}

// Raw creates a node whose content is written without escaping.
// Only use it for markup the server produced itself.
func Raw(markup string) *VNode {
	return &VNode{
		Kind: KindRaw,
		Text: markup,
	}
}

// Key creates a key attribute for reconciliation.
func Key(index int) Attr {
	return attr("key", strconv.Itoa(index))
}
