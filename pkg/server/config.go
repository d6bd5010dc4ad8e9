package server

import (
	"net/http"
	"net/url"
	"time"

	"github.com/vango-dev/ssrgoods/pkg/render"
)

// Config holds server settings.
type Config struct {
	// Address is the TCP address to listen on (default: ":3000").
	Address string

	// Title is the page title.
	Title string

	// Bundle is the client bundle asset name, resolved through the
	// server's asset resolver into the script src.
	Bundle string

	// ShutdownTimeout bounds graceful shutdown.
	ShutdownTimeout time.Duration

	// ReadHeaderTimeout bounds reading request headers.
	ReadHeaderTimeout time.Duration

	// CheckOrigin validates the Origin header of live channel upgrades.
	// Default: SameOriginCheck.
	CheckOrigin func(r *http.Request) bool
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		Address:           ":3000",
		Title:             "Goods",
		Bundle:            render.DefaultBundleSrc,
		ShutdownTimeout:   10 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
		CheckOrigin:       SameOriginCheck,
	}
}

// withDefaults fills zero fields from DefaultConfig.
func (c Config) withDefaults() Config {
	d := DefaultConfig()
	if c.Address == "" {
		c.Address = d.Address
	}
	if c.Bundle == "" {
		c.Bundle = d.Bundle
	}
	if c.ShutdownTimeout <= 0 {
		c.ShutdownTimeout = d.ShutdownTimeout
	}
	if c.ReadHeaderTimeout <= 0 {
		c.ReadHeaderTimeout = d.ReadHeaderTimeout
	}
	if c.CheckOrigin == nil {
		c.CheckOrigin = d.CheckOrigin
	}
	return c
}

// SameOriginCheck accepts requests without an Origin header and requests
// whose Origin host equals the request host.
func SameOriginCheck(r *http.Request) bool {
	origin := r.Header.Get("Origin")
	if origin == "" {
		return true
	}

	originURL, err := url.Parse(origin)
	if err != nil {
		return false
	}

	host := r.Host
	if host == "" {
		return false
	}

	return originURL.Host == host
}
