// Package config provides configuration loading and validation for rxbridge
// consumers.
//
// It uses Viper to load configuration from files and environment variables,
// and godotenv to pick up .env files. Loaded stream configuration is
// validated with struct tags before use.
//
// # Usage
//
//	var cfg config.StreamConfig
//	if err := config.LoadConfig("ingest", &cfg); err != nil { ... }
//	cfg.ApplyDefaults()
//	if err := cfg.Validate(); err != nil { ... }
package config
