// Package config loads typed configuration from environment variables.
//
// Structs describe their variables with caarlos0/env tags:
//
//	type Config struct {
//		AutoValidate bool `env:"FORM_AUTO_VALIDATE" envDefault:"false"`
//	}
//
// Load parses a struct once per type and caches it for the process lifetime.
// Parse always reads the current environment and
// accepts a variable name prefix. A .env file in the working directory is
// read on first use, and LoadEnv adds explicit files.
package config
