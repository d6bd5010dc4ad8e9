package vdom

// createElement creates a new VNode with the given tag and arguments.
// Arguments can be: nil, Attr, []Attr, *VNode, []*VNode, string.
func createElement(tag string, args []any) *VNode {
	node := &VNode{
		Kind:     KindElement,
		Tag:      tag,
		Props:    make(Props),
		Children: make([]*VNode, 0),
	}

	for _, arg := range args {
		switch v := arg.(type) {
		case Attr:
			setAttr(node, v)
		case []Attr:
			for _, a := range v {
				setAttr(node, a)
			}
		default:
			appendChild(node, arg)
		}
	}

	return node
}

func setAttr(node *VNode, a Attr) {
	if a.IsEmpty() {
		return
	}
	if a.Key == "key" {
		node.Key = a.Value
	}
	node.Props[a.Key] = a.Value
}

func appendChild(node *VNode, child any) {
	switch v := child.(type) {
	case nil:
		// Ignore nil (allows conditional children)
	case *VNode:
		if v != nil {
			node.Children = append(node.Children, v)
		}
	case []*VNode:
		for _, c := range v {
			if c != nil {
				node.Children = append(node.Children, c)
			}
		}
	case string:
		node.Children = append(node.Children, Text(v))
	}
}

// Document structure

func Html(args ...any) *VNode   { return createElement("html", args) }
func Head(args ...any) *VNode   { return createElement("head", args) }
func Body(args ...any) *VNode   { return createElement("body", args) }
func Title(args ...any) *VNode  { return createElement("title", args) }
func Meta(args ...any) *VNode   { return createElement("meta", args) }
func Script(args ...any) *VNode { return createElement("script", args) }

// Content

func Div(args ...any) *VNode { return createElement("div", args) }

// Lists

func Ul(args ...any) *VNode { return createElement("ul", args) }
func Li(args ...any) *VNode { return createElement("li", args) }
