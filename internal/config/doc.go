// Package config loads, validates, and normalizes Molmine configuration from
// a TOML file. Defaults cover every field so Molmine runs without a config
// file present.
package config
