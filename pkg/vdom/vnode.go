package vdom

// VKind is the node type discriminator.
type VKind uint8

const (
	KindElement VKind = iota // <div>, <li>, etc.
	KindText                 // Escaped text
	KindRaw                  // Trusted markup written as is
)

// String returns the string representation of the VKind.
func (k VKind) String() string {
	switch k {
	case KindElement:
		return "Element"
	case KindText:
		return "Text"
	case KindRaw:
		return "Raw"
	default:
		return "Unknown"
	}
}

// VNode is the virtual DOM node.
type VNode struct {
	Kind     VKind    // Node type
	Tag      string   // Element tag name (e.g., "ul")
	Props    Props    // Attributes
	Children []*VNode // Child nodes
	Key      string   // Reconciliation key, never rendered
	Text     string   // For KindText and KindRaw
}

// Props holds element attributes.
type Props map[string]string

// Attr represents a single attribute.
type Attr struct {
	Key   string
	Value string
}

// IsEmpty returns true if this is an empty/nil attribute.
func (a Attr) IsEmpty() bool {
	return a.Key == ""
}
