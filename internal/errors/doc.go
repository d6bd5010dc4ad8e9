// Package errors provides structured, coded errors for ssrgoods.
//
// Every failure the render server can hit while answering a page request
// belongs to one of three categories:
//
//   - fetch: the remote data source could not be reached or answered non-2xx
//   - payload: the data source answered, but not with {"data":{"list":[...]}}
//   - render: the goods list could not be turned into markup
//
// Configuration and CLI failures have their own categories.
//
// # Error Codes
//
// Each error has a unique code (e.g., "E101") that maps to a short message
// and a fix hint:
//
//	err := errors.New(errors.CodeSourceUnreachable).Wrap(cause)
//	errors.IsFetch(err) // true
//
//	fmt.Println(err.Format())
//	// ERROR E101: Remote data source unreachable
//	//
//	//   Cause: dial tcp 127.0.0.1:9: connect: connection refused
//	//
//	//   Hint: Check source.endpoint and that the data source is running
package errors
