package config

import (
	"github.com/goccy/go-yaml"
)

type yamlView struct {
	Server struct {
		Host              string `yaml:"host"`
		Port              int    `yaml:"port"`
		ShutdownTimeout   string `yaml:"shutdown_timeout"`
		ReadHeaderTimeout string `yaml:"read_header_timeout"`
	} `yaml:"server"`
	Source struct {
		Endpoint     string `yaml:"endpoint"`
		Timeout      string `yaml:"timeout"`
		MaxBodyBytes int64  `yaml:"max_body_bytes"`
	} `yaml:"source"`
	Page struct {
		Title  string `yaml:"title"`
		Bundle string `yaml:"bundle"`
	} `yaml:"page"`
	Static struct {
		Dir          string `yaml:"dir"`
		Prefix       string `yaml:"prefix"`
		CacheControl string `yaml:"cache_control"`
		S3           struct {
			Bucket    string `yaml:"bucket"`
			Region    string `yaml:"region"`
			Endpoint  string `yaml:"endpoint"`
			Prefix    string `yaml:"prefix"`
			PathStyle bool   `yaml:"path_style"`
		} `yaml:"s3"`
	} `yaml:"static"`
	Log struct {
		Level  string `yaml:"level"`
		Format string `yaml:"format"`
	} `yaml:"log"`
	Metrics struct {
		Enabled   bool   `yaml:"enabled"`
		Namespace string `yaml:"namespace"`
	} `yaml:"metrics"`
	Tracing struct {
		Enabled bool   `yaml:"enabled"`
		Name    string `yaml:"name"`
	} `yaml:"tracing"`
}

// YAML renders the effective configuration in the config file format.
func (c *Config) YAML() ([]byte, error) {
	var v yamlView

	v.Server.Host = c.Server.Host
	v.Server.Port = c.Server.Port
	v.Server.ShutdownTimeout = c.Server.ShutdownTimeout.String()
	v.Server.ReadHeaderTimeout = c.Server.ReadHeaderTimeout.String()

	v.Source.Endpoint = c.Source.Endpoint
	v.Source.Timeout = c.Source.Timeout.String()
	v.Source.MaxBodyBytes = c.Source.MaxBodyBytes

	v.Page.Title = c.Page.Title
	v.Page.Bundle = c.Page.Bundle

	v.Static.Dir = c.Static.Dir
	v.Static.Prefix = c.Static.Prefix
	v.Static.CacheControl = c.Static.CacheControl
	v.Static.S3.Bucket = c.Static.S3.Bucket
	v.Static.S3.Region = c.Static.S3.Region
	v.Static.S3.Endpoint = c.Static.S3.Endpoint
	v.Static.S3.Prefix = c.Static.S3.Prefix
	v.Static.S3.PathStyle = c.Static.S3.PathStyle

	v.Log.Level = c.Log.Level
	v.Log.Format = c.Log.Format

	v.Metrics.Enabled = c.Metrics.Enabled
	v.Metrics.Namespace = c.Metrics.Namespace

	v.Tracing.Enabled = c.Tracing.Enabled
	v.Tracing.Name = c.Tracing.Name

	return yaml.Marshal(v)
}
