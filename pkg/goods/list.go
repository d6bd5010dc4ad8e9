package goods

import (
	"encoding/json"

	ssrerrors "github.com/vango-dev/ssrgoods/internal/errors"
)

// List is an ordered goods list. Order is display order.
type List []Item

// Strings builds a List of string items.
func Strings(values ...string) List {
	list := make(List, 0, len(values))
	for _, v := range values {
		item, _ := NewItem(v)
		list = append(list, item)
	}
	return list
}

// FromValues encodes each value as an Item.
func FromValues(values ...any) (List, error) {
	list := make(List, 0, len(values))
	for _, v := range values {
		item, err := NewItem(v)
		if err != nil {
			return nil, err
		}
		list = append(list, item)
	}
	return list, nil
}

// MarshalJSON implements json.Marshaler. A nil List encodes as [].
func (l List) MarshalJSON() ([]byte, error) {
	if l == nil {
		return []byte("[]"), nil
	}
	return json.Marshal([]Item(l))
}

// Equal reports whether both lists hold the same items in the same order.
// Items are compared by their compacted JSON.
func (l List) Equal(other List) bool {
	if len(l) != len(other) {
		return false
	}
	for i := range l {
		a, errA := compact(l[i])
		b, errB := compact(other[i])
		if errA != nil || errB != nil || a != b {
			return false
		}
	}
	return true
}

func compact(i Item) (string, error) {
	var v any
	if err := json.Unmarshal(i.raw(), &v); err != nil {
		return "", err
	}
	data, err := json.Marshal(v)
	return string(data), err
}

type payload struct {
	Data *struct {
		List json.RawMessage `json:"list"`
	} `json:"data"`
}

// Decode parses a data source response body. It accepts exactly
// {"data":{"list":[...]}}; anything else is a malformed payload error.
func Decode(body []byte) (List, error) {
	var p payload
	if err := json.Unmarshal(body, &p); err != nil {
		return nil, ssrerrors.New(ssrerrors.CodeMalformedPayload).
			WithDetail("response is not a JSON object").
			Wrap(err)
	}
	if p.Data == nil {
		return nil, ssrerrors.New(ssrerrors.CodeMalformedPayload).
			WithDetail(`missing "data" object`)
	}

	raw := p.Data.List
	if len(raw) == 0 || string(raw) == "null" {
		return nil, ssrerrors.New(ssrerrors.CodeMalformedPayload).
			WithDetail(`missing "data.list" array`)
	}

	var list List
	if err := json.Unmarshal(raw, &list); err != nil {
		return nil, ssrerrors.New(ssrerrors.CodeMalformedPayload).
			WithDetail(`"data.list" is not an array`).
			Wrap(err)
	}
	if list == nil {
		list = List{}
	}
	return list, nil
}
