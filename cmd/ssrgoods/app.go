package main

import (
	"context"
	"os"

	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel"

	"github.com/vango-dev/ssrgoods/internal/config"
	"github.com/vango-dev/ssrgoods/internal/logging"
	"github.com/vango-dev/ssrgoods/pkg/assets"
	"github.com/vango-dev/ssrgoods/pkg/loader"
	"github.com/vango-dev/ssrgoods/pkg/middleware"
	"github.com/vango-dev/ssrgoods/pkg/server"
)

func newLogger(cfg *config.Config) zerolog.Logger {
	return logging.New(logging.Config{
		Level:   cfg.Log.Level,
		Format:  cfg.Log.Format,
		Output:  os.Stderr,
		NoColor: os.Getenv("NO_COLOR") != "",
	})
}

// newServer wires a Server from configuration.
func newServer(ctx context.Context, cfg *config.Config, logger zerolog.Logger) (*server.Server, error) {
	loaderOpts := []loader.Option{
		loader.WithTimeout(cfg.Source.Timeout),
		loader.WithMaxBodyBytes(cfg.Source.MaxBodyBytes),
	}
	if cfg.Tracing.Enabled {
		loaderOpts = append(loaderOpts, loader.WithTracer(otel.Tracer(cfg.Tracing.Name)))
	}
	l, err := loader.NewHTTPLoader(cfg.Source.Endpoint, loaderOpts...)
	if err != nil {
		return nil, err
	}

	src := assetSource(cfg)
	manifest, err := assets.LoadManifest(ctx, src, assets.ManifestName)
	if err != nil {
		return nil, err
	}
	if manifest.Len() > 0 {
		logger.Debug().Int("entries", manifest.Len()).Msg("asset manifest loaded")
	}

	opts := []server.Option{
		server.WithLogger(logger),
		server.WithAssets(src, assets.HandlerOptions{
			Prefix:       cfg.Static.Prefix,
			CacheControl: cfg.Static.CacheControl,
		}),
		server.WithResolver(assets.NewResolver(manifest, cfg.Static.Prefix)),
	}
	if cfg.Metrics.Enabled {
		opts = append(opts, server.WithMetrics(middleware.NewMetrics(
			middleware.WithNamespace(cfg.Metrics.Namespace),
		)))
	}
	if cfg.Tracing.Enabled {
		opts = append(opts, server.WithTracer(otel.Tracer(cfg.Tracing.Name)))
	}

	return server.New(server.Config{
		Address:           cfg.Address(),
		Title:             cfg.Page.Title,
		Bundle:            cfg.Page.Bundle,
		ShutdownTimeout:   cfg.Server.ShutdownTimeout,
		ReadHeaderTimeout: cfg.Server.ReadHeaderTimeout,
	}, l, opts...), nil
}

// assetSource picks S3 when a bucket is configured, then a directory, then
// the embedded bundle.
func assetSource(cfg *config.Config) assets.Source {
	switch {
	case cfg.Static.S3.Bucket != "":
		client := assets.NewS3Client(assets.S3Options{
			Region:    cfg.Static.S3.Region,
			Endpoint:  cfg.Static.S3.Endpoint,
			PathStyle: cfg.Static.S3.PathStyle,
		})
		return assets.NewS3Source(client, cfg.Static.S3.Bucket, cfg.Static.S3.Prefix)
	case cfg.Static.Dir != "":
		return assets.Dir(cfg.Static.Dir)
	default:
		return assets.Embedded()
	}
}
