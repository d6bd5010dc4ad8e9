// Package server provides the goods render server.
//
// A Server answers GET / with a fully server-rendered page: it loads the
// goods list, renders the list component to markup and wraps it in the page
// document together with the serialized list and the client bundle. Any
// failure answers 500 with a plain text body and no partial markup.
//
//	l, _ := loader.NewHTTPLoader("http://localhost:8080/goods")
//	srv := server.New(server.DefaultConfig(), l, server.WithLogger(log))
//	err := srv.ListenAndServe(ctx)
//
// The client bundle, other static files, /healthz, /metrics and the
// /_ssr/live websocket are served alongside the page. Servers share no
// global state, so several can run in one process.
package server
