// Package assets serves the client bundle and other static files.
//
// A Source loads named assets. Three are provided:
//
//	assets.Embedded()                 // the bundle compiled into the binary
//	assets.Dir("public")              // a directory on disk
//	assets.NewS3Source(client, b, p)  // an S3 bucket
//
// Handler serves any Source over HTTP with path sanitization, ETags and a
// cache policy. A Manifest maps bundle names to fingerprinted names so the
// page can reference "bundle.a1b2c3d4.js" while code asks for "bundle.js":
//
//	m, _ := assets.LoadManifest(ctx, src, assets.ManifestName)
//	assets.NewResolver(m, "/").Asset("bundle.js")
package assets
