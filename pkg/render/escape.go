package render

import "strings"

var (
	textEscaper = strings.NewReplacer(
		"&", "&amp;",
		"<", "&lt;",
		">", "&gt;",
		`"`, "&quot;",
		"'", "&#39;",
	)

	// Attribute values also keep their whitespace control characters as
	// references so a value never spans lines in the output.
	attrEscaper = strings.NewReplacer(
		"&", "&amp;",
		"<", "&lt;",
		">", "&gt;",
		`"`, "&quot;",
		"'", "&#39;",
		"\n", "&#10;",
		"\r", "&#13;",
		"\t", "&#9;",
	)
)

// escape makes s safe to place in element content, or inside a quoted
// attribute value when inAttr is set.
func escape(s string, inAttr bool) string {
	if inAttr {
		return attrEscaper.Replace(s)
	}
	return textEscaper.Replace(s)
}
