// Package config provides loading and environment overlay for the flake
// service. It exposes a Default() baseline, file loading (JSON or TOML), an
// FLAKE_* environment overlay and conversion into snowflake.Config.
//
// Example:
//
//	_ = config.LoadDotEnv()
//	cfg, err := config.Load(config.DefaultConfigPath())
//	if err != nil { /* handle */ }
//	if err := config.FromEnv(&cfg); err != nil { /* names the bad variable */ }
//	if err := cfg.Validate(); err != nil { /* *snowflake.ConfigError */ }
//	gen, _ := snowflake.NewWithConfig(cfg.SnowflakeConfig())
package config
