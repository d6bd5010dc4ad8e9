// Package vtest provides testing helpers for the goods render server.
//
// It reduces boilerplate in tests that render components, run a fake data
// source or inspect a rendered page.
//
// # Render Assertions
//
// Assert on rendered HTML output:
//
//	node, _ := component.View(component.NewState(goods.Strings("apple")))
//	vtest.ExpectContains(t, node, "<li>apple</li>")
//	vtest.ExpectElement(t, node, "ul")
//
// # Data Sources
//
// GoodsSource is a real HTTP endpoint whose answer can be swapped between
// requests:
//
//	src := vtest.NewGoodsSource(t, `{"data":{"list":["apple"]}}`)
//	l, _ := loader.NewHTTPLoader(src.URL)
//	src.Set(http.StatusBadGateway, "")
//
// RefusedURL returns an endpoint nothing listens on.
//
// # Page Inspection
//
// ListItems and InitialGoods read a rendered page document:
//
//	items := vtest.ListItems(t, page)    // text of each <li> under #root
//	list := vtest.InitialGoods(t, page)  // the embedded window._initialGoods
package vtest
