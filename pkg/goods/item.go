package goods

import (
	"bytes"
	"encoding/json"
	"math"
	"strconv"
	"strings"

	ssrerrors "github.com/vango-dev/ssrgoods/internal/errors"
)

// Item is one opaque goods entry, held as its raw JSON encoding.
type Item []byte

// NewItem encodes v as an Item.
func NewItem(v any) (Item, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	return Item(data), nil
}

// MarshalJSON implements json.Marshaler. A zero Item encodes as null.
func (i Item) MarshalJSON() ([]byte, error) {
	return i.raw(), nil
}

// UnmarshalJSON implements json.Unmarshaler.
func (i *Item) UnmarshalJSON(data []byte) error {
	*i = append((*i)[:0], data...)
	return nil
}

// String returns the raw JSON of the item.
func (i Item) String() string {
	return string(i.raw())
}

// Display returns the text the item shows as inside a list entry.
//
// Strings show as themselves and numbers as their JavaScript text form.
// Booleans and null show nothing. Arrays show their elements concatenated.
// Objects cannot be shown and return a render error.
func (i Item) Display() (string, error) {
	dec := json.NewDecoder(bytes.NewReader(i.raw()))
	dec.UseNumber()
	var v any
	if err := dec.Decode(&v); err != nil {
		return "", ssrerrors.New(ssrerrors.CodeUnrenderableItem).
			WithDetailf("item %s is not valid JSON", truncate(i.String())).
			Wrap(err)
	}

	var b strings.Builder
	if err := display(&b, v); err != nil {
		return "", ssrerrors.New(ssrerrors.CodeUnrenderableItem).
			WithDetailf("item %s: %v", truncate(i.String()), err)
	}
	return b.String(), nil
}

func (i Item) raw() []byte {
	if len(i) == 0 {
		return []byte("null")
	}
	return i
}

type objectError struct{}

func (objectError) Error() string { return "objects are not valid as list children" }

func display(b *strings.Builder, v any) error {
	switch val := v.(type) {
	case nil, bool:
		return nil
	case string:
		b.WriteString(val)
	case json.Number:
		b.WriteString(formatNumber(val))
	case []any:
		for _, elem := range val {
			if err := display(b, elem); err != nil {
				return err
			}
		}
	default:
		return objectError{}
	}
	return nil
}

// formatNumber renders a JSON number the way JavaScript's Number#toString does.
func formatNumber(n json.Number) string {
	// Out of range literals parse to ±Inf, which JavaScript prints by name.
	f, _ := n.Float64()
	switch {
	case math.IsInf(f, 1):
		return "Infinity"
	case math.IsInf(f, -1):
		return "-Infinity"
	case f == 0:
		return "0"
	}
	abs := math.Abs(f)
	if abs >= 1e21 || abs < 1e-6 {
		s := strconv.FormatFloat(f, 'e', -1, 64)
		// Go pads the exponent to two digits; JavaScript does not.
		mant, exp, _ := strings.Cut(s, "e")
		sign, digits := exp[:1], strings.TrimLeft(exp[1:], "0")
		return mant + "e" + sign + digits
	}
	return strconv.FormatFloat(f, 'f', -1, 64)
}

func truncate(s string) string {
	const max = 64
	if len(s) <= max {
		return s
	}
	return s[:max] + "..."
}
