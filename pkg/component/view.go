package component

import (
	ssrerrors "github.com/vango-dev/ssrgoods/internal/errors"
	"github.com/vango-dev/ssrgoods/pkg/vdom"
)

// View renders s as <div><ul><li>item</li>...</ul></div>.
// Each <li> is keyed by its index. An item that cannot be shown fails the
// whole view with a render error.
func View(s State) (*vdom.VNode, error) {
	items := make([]*vdom.VNode, 0, len(s.Goods))
	for i, item := range s.Goods {
		text, err := item.Display()
		if err != nil {
			se := ssrerrors.FromError(err, ssrerrors.CodeUnrenderableItem)
			return nil, se.WithDetailf("index %d: %s", i, se.Detail)
		}
		items = append(items, vdom.Li(vdom.Key(i), vdom.Text(text)))
	}
	return vdom.Div(vdom.Ul(items)), nil
}
