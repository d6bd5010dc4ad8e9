package vdom

// attr creates an attribute.
func attr(key, value string) Attr {
	return Attr{Key: key, Value: value}
}

// ID sets the id attribute.
func ID(id string) Attr { return attr("id", id) }

// Charset sets the charset attribute.
func Charset(charset string) Attr { return attr("charset", charset) }

// Src sets the src attribute.
func Src(url string) Attr { return attr("src", url) }
