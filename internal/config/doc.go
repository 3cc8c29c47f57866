// Package config provides configuration structures and utilities for dochealth.
// Values are layered: built-in defaults, the YAML config file, the
// environment (optionally seeded from a .env file), then CLI flags.
package config
