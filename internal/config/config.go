package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/BurntSushi/toml"

	logpkg "github.com/lyle8341/flake/pkg/log"
	"github.com/lyle8341/flake/pkg/snowflake"
)

// Config is the top-level configuration loaded from file/env.
type Config struct {
	Generator GeneratorConfig `json:"generator" toml:"generator"`
	Server    ServerConfig    `json:"server" toml:"server"`
	Log       logpkg.Config   `json:"log" toml:"log"`
}

// GeneratorConfig identifies this instance and fixes the id format.
type GeneratorConfig struct {
	WorkerID     int64 `json:"workerId" toml:"worker_id"`
	DatacenterID int64 `json:"datacenterId" toml:"datacenter_id"`
	// EpochMillis must stay the same for the lifetime of the id space.
	EpochMillis  int64            `json:"epochMillis" toml:"epoch_millis"`
	Layout       snowflake.Layout `json:"layout" toml:"layout"`
	SpinInterval Duration         `json:"spinInterval" toml:"spin_interval"`
	MaxWait      Duration         `json:"maxWait" toml:"max_wait"`
}

// ServerConfig holds listen addresses. An empty address disables that server.
type ServerConfig struct {
	GRPCAddr string `json:"grpcAddr" toml:"grpc_addr"`
	HTTPAddr string `json:"httpAddr" toml:"http_addr"`
}

// Duration is a time.Duration written as "125us", "5ms" in files.
type Duration struct {
	time.Duration
}

func (d *Duration) UnmarshalText(b []byte) error {
	v, err := time.ParseDuration(string(b))
	if err != nil {
		return err
	}
	d.Duration = v
	return nil
}

func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.Duration.String()), nil
}

// Default returns built-in defaults.
func Default() Config {
	return Config{
		Generator: GeneratorConfig{
			EpochMillis:  snowflake.DefaultEpoch,
			Layout:       snowflake.DefaultLayout,
			SpinInterval: Duration{snowflake.DefaultSpinInterval},
		},
		Server: ServerConfig{
			GRPCAddr: ":50051",
			HTTPAddr: ":8080",
		},
		Log: logpkg.Config{Level: "info", Format: "text"},
	}
}

// Load reads configuration from a JSON or TOML file (by extension) on top of
// the defaults. If path is empty, returns defaults.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return Config{}, err
	}
	switch filepath.Ext(path) {
	case ".toml":
		if _, err := toml.Decode(string(b), &cfg); err != nil {
			return Config{}, fmt.Errorf("config: %s: %w", path, err)
		}
	default:
		if err := json.Unmarshal(b, &cfg); err != nil {
			return Config{}, fmt.Errorf("config: %s: %w", path, err)
		}
	}
	return cfg, nil
}

// SnowflakeConfig converts the generator section for snowflake.NewWithConfig.
func (c Config) SnowflakeConfig() snowflake.Config {
	return snowflake.Config{
		WorkerID:     c.Generator.WorkerID,
		DatacenterID: c.Generator.DatacenterID,
		Epoch:        c.Generator.EpochMillis,
		Layout:       c.Generator.Layout,
		SpinInterval: c.Generator.SpinInterval.Duration,
		MaxWait:      c.Generator.MaxWait.Duration,
	}
}

// Validate reports the first invalid generator setting as a
// *snowflake.ConfigError.
func (c Config) Validate() error {
	sc := c.SnowflakeConfig()
	return sc.Validate()
}
