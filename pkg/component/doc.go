// Package component implements the goods list component.
//
// The component is an immutable state container driven by messages:
//
//	s := component.NewState(list)            // phase Initial
//	node, err := component.View(s)           // <div><ul><li>..</li></ul></div>
//	s, err = component.Mount(ctx, s, loader) // one Load, then Replace
//
// Server-side rendering only ever calls NewState and View. Mount is the
// mount-time refresh the client runs after hydration; the server runs it on
// behalf of the client over the live channel.
package component
