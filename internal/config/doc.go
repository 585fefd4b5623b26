// Package config loads application configuration from an optional YAML file
// overlaid with SUBPIX_-prefixed environment variables, and loads the static
// activation-key catalogs consumed by the license engine.
package config
