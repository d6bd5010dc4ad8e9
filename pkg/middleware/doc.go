// Package middleware provides HTTP middleware for the render server.
//
// This package includes:
//   - OpenTelemetry request tracing
//   - Prometheus request, fetch and render metrics
//   - zerolog access logging and panic recovery
//
// # OpenTelemetry Middleware
//
//	r.Use(middleware.Tracing(middleware.WithTracerName("ssrgoods")))
//
// # Prometheus Metrics
//
// Metrics are instance based. Each Metrics value owns a registry unless one
// is passed with WithRegistry:
//
//	m := middleware.NewMetrics(middleware.WithNamespace("ssr"))
//	r.Use(m.Handler)
//	r.Method(http.MethodGet, "/metrics", m.ExpositionHandler())
//
// Exported metrics:
//   - ssr_requests_total{route,status}
//   - ssr_request_duration_seconds{route}
//   - ssr_page_errors_total{category}
//   - ssr_fetch_duration_seconds{outcome}
//   - ssr_rendered_items
//
// Route labels come from the chi route pattern, so unmatched paths do not
// create new series.
package middleware
