package component

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/vango-dev/ssrgoods/pkg/goods"
	"github.com/vango-dev/ssrgoods/pkg/loader"
)

// Mount performs the mount-time refresh: one Load, then Replace.
// On failure s is returned unchanged together with the error.
func Mount(ctx context.Context, s State, l loader.Loader) (State, error) {
	list, err := l.Load(ctx)
	if err != nil {
		return s, err
	}
	return Update(s, Replace{Goods: list}), nil
}

// Live channel message types.
const (
	MsgTypeReplace = "replace"
	MsgTypeError   = "error"
)

// MarshalJSON encodes the message for the live channel as
// {"type":"replace","goods":[...]}.
func (r Replace) MarshalJSON() ([]byte, error) {
	list := r.Goods
	if list == nil {
		list = goods.List{}
	}
	return json.Marshal(struct {
		Type  string     `json:"type"`
		Goods goods.List `json:"goods"`
	}{MsgTypeReplace, list})
}

// UnmarshalJSON decodes a replace message.
func (r *Replace) UnmarshalJSON(data []byte) error {
	var wire struct {
		Type  string     `json:"type"`
		Goods goods.List `json:"goods"`
	}
	if err := json.Unmarshal(data, &wire); err != nil {
		return err
	}
	if wire.Type != MsgTypeReplace {
		return fmt.Errorf("unexpected message type %q", wire.Type)
	}
	r.Goods = wire.Goods
	return nil
}

// ErrorMsg is sent on the live channel when the refresh fails.
type ErrorMsg struct {
	Type    string `json:"type"`
	Code    string `json:"code"`
	Message string `json:"message,omitempty"`
}
