// Package config loads tempo configuration from layered sources.
//
// Values are merged in priority order: built-in defaults, the user
// config file (~/.tempo/tempo.toml or the OS config directory), a
// project config file (tempo.toml or .tempo.toml in the working
// directory), TEMPO_* environment variables, and finally CLI flags.
package config
