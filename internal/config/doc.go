// Package config holds wordspider's configuration: documented defaults,
// the flat Config struct populated from CLI flags, validation, and the
// optional .wordspider YAML file with per-host overrides.
package config
