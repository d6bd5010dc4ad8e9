// Package config loads the server configuration.
//
// Values come from, lowest to highest precedence:
//
//  1. built-in defaults
//  2. ssrgoods.json / ssrgoods.yaml in the working directory, or --config
//  3. .env.local and .env files
//  4. SSR_* environment variables (SSR_SERVER_PORT, SSR_SOURCE_ENDPOINT, ...)
//  5. command-line flags
//
// # Configuration File Structure
//
//	server:
//	  port: 3000
//	  shutdown_timeout: 10s
//	source:
//	  endpoint: https://example.com/goods
//	  timeout: 0s
//	static:
//	  dir: public
//	  cache_control: production
//	log:
//	  level: debug
//
// # Usage
//
//	cfg, err := config.Load(config.LoadOptions{})
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	fmt.Println("Listening on", cfg.Address())
package config
