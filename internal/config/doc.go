// Package config handles configuration loading, parsing, and validation
// from various sources (flags, environment variables, files). It provides
// type-safe access to settings needed by the study front end while keeping
// configuration details separate from engine logic.
package config
