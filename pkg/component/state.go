package component

import (
	"github.com/vango-dev/ssrgoods/pkg/goods"
)

// Phase is the lifecycle phase of a State.
type Phase uint8

const (
	// Initial holds the list the page was rendered from.
	Initial Phase = iota
	// Hydrated holds the list from the mount-time refresh. It is terminal.
	Hydrated
)

// String returns the phase name.
func (p Phase) String() string {
	switch p {
	case Initial:
		return "initial"
	case Hydrated:
		return "hydrated"
	default:
		return "unknown"
	}
}

// State is the component state. Values are never mutated in place.
type State struct {
	Goods goods.List
	Phase Phase
}

// NewState creates an Initial state holding initial. A nil list becomes empty.
func NewState(initial goods.List) State {
	if initial == nil {
		initial = goods.List{}
	}
	return State{Goods: initial, Phase: Initial}
}

// Msg is a message that Update applies to a State.
type Msg interface {
	isMsg()
}

// Replace swaps the goods list wholesale.
type Replace struct {
	Goods goods.List `json:"goods"`
}

func (Replace) isMsg() {}

// Update applies msg to s and returns the next state.
// Replace moves Initial to Hydrated. A Hydrated state ignores every message.
func Update(s State, msg Msg) State {
	if s.Phase == Hydrated {
		return s
	}
	switch m := msg.(type) {
	case Replace:
		return State{Goods: copyList(m.Goods), Phase: Hydrated}
	case *Replace:
		if m == nil {
			return s
		}
		return State{Goods: copyList(m.Goods), Phase: Hydrated}
	default:
		return s
	}
}

func copyList(l goods.List) goods.List {
	out := make(goods.List, len(l))
	copy(out, l)
	return out
}
