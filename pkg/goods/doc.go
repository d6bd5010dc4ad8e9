// Package goods defines the goods list the page renders and the payload it is
// decoded from.
//
// The remote data source answers
//
//	{"data": {"list": [item, item, ...]}}
//
// Items are opaque JSON values. They are kept as raw JSON so that the list
// embedded in the page is exactly the list the data source sent.
package goods
