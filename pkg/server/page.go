package server

import (
	"context"
	"net/http"
	"strconv"
	"time"

	chimw "github.com/go-chi/chi/v5/middleware"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	"github.com/vango-dev/ssrgoods/internal/errors"
	"github.com/vango-dev/ssrgoods/pkg/component"
	"github.com/vango-dev/ssrgoods/pkg/goods"
	"github.com/vango-dev/ssrgoods/pkg/render"
)

// Render loads the goods list and renders the complete page document.
// Nothing is returned unless every step succeeds.
func (s *Server) Render(ctx context.Context) ([]byte, error) {
	ctx, span := s.tracer.Start(ctx, "server.Render")
	defer span.End()

	page, n, err := s.render(ctx)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		span.SetAttributes(attribute.String("error.category", string(errors.CategoryOf(err))))
		return nil, err
	}
	span.SetAttributes(attribute.Int("goods.count", n))
	return page, nil
}

func (s *Server) render(ctx context.Context) ([]byte, int, error) {
	list, err := s.load(ctx)
	if err != nil {
		return nil, 0, err
	}

	node, err := component.View(component.NewState(list))
	if err != nil {
		return nil, 0, errors.FromError(err, errors.CodeRenderFailed)
	}
	markup, err := s.renderer.RenderToString(node)
	if err != nil {
		return nil, 0, errors.FromError(err, errors.CodeRenderFailed)
	}

	doc := render.Document{
		Title:        s.config.Title,
		Markup:       markup,
		InitialGoods: list,
		BundleSrc:    s.resolver.Asset(s.config.Bundle),
	}
	page, err := doc.Bytes()
	if err != nil {
		return nil, 0, errors.FromError(err, errors.CodeDocumentFailed)
	}

	if s.metrics != nil {
		s.metrics.ObserveRenderedItems(len(list))
	}
	return page, len(list), nil
}

// load performs one fetch and records its duration. Errors that carry no
// code are treated as an unreachable source.
func (s *Server) load(ctx context.Context) (goods.List, error) {
	start := time.Now()
	list, err := s.loader.Load(ctx)
	if err != nil {
		err = errors.FromError(err, errors.CodeSourceUnreachable)
	}

	if s.metrics != nil {
		outcome := "ok"
		if err != nil {
			outcome = string(errors.CategoryOf(err))
		}
		s.metrics.ObserveFetch(outcome, time.Since(start))
	}
	return list, err
}

func (s *Server) handlePage(w http.ResponseWriter, r *http.Request) {
	page, err := s.Render(r.Context())
	if err != nil {
		s.fail(w, r, err)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("Content-Length", strconv.Itoa(len(page)))
	w.Header().Set("Cache-Control", "no-store")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(page)
}

// fail answers a failed page request with 500 and a plain text body.
func (s *Server) fail(w http.ResponseWriter, r *http.Request, err error) {
	se := errors.FromError(err, errors.CodeRenderFailed)

	s.logger.Error().
		Err(err).
		Str("code", se.Code).
		Str("category", string(se.Category)).
		Str("request_id", chimw.GetReqID(r.Context())).
		Msg("page render failed")

	if s.metrics != nil {
		s.metrics.ObservePageError(string(se.Category))
	}

	http.Error(w, http.StatusText(se.HTTPStatus()), se.HTTPStatus())
}
