package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// LoadDotEnv loads KEY=VALUE pairs from the given files (".env" when none are
// given) into the process environment without overriding variables that are
// already set. Missing files are ignored.
func LoadDotEnv(files ...string) error {
	if len(files) == 0 {
		files = []string{".env"}
	}
	for _, f := range files {
		if err := godotenv.Load(f); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return err
		}
	}
	return nil
}

// FromEnv overlays FLAKE_* environment variables onto cfg. A variable that is
// set but does not parse is an error naming it; cfg may be partially updated.
func FromEnv(cfg *Config) error {
	ints := []struct {
		key string
		dst *int64
	}{
		{"FLAKE_WORKER_ID", &cfg.Generator.WorkerID},
		{"FLAKE_DATACENTER_ID", &cfg.Generator.DatacenterID},
		{"FLAKE_EPOCH_MILLIS", &cfg.Generator.EpochMillis},
	}
	for _, e := range ints {
		if err := envInt64(e.key, e.dst); err != nil {
			return err
		}
	}
	bits := []struct {
		key string
		dst *uint
	}{
		{"FLAKE_TIMESTAMP_BITS", &cfg.Generator.Layout.TimestampBits},
		{"FLAKE_DATACENTER_BITS", &cfg.Generator.Layout.DatacenterBits},
		{"FLAKE_WORKER_BITS", &cfg.Generator.Layout.WorkerBits},
		{"FLAKE_SEQUENCE_BITS", &cfg.Generator.Layout.SequenceBits},
	}
	for _, e := range bits {
		if err := envUint(e.key, e.dst); err != nil {
			return err
		}
	}
	if err := envDuration("FLAKE_SPIN_INTERVAL", &cfg.Generator.SpinInterval.Duration); err != nil {
		return err
	}
	if err := envDuration("FLAKE_MAX_WAIT", &cfg.Generator.MaxWait.Duration); err != nil {
		return err
	}
	if v := os.Getenv("FLAKE_GRPC_ADDR"); v != "" {
		cfg.Server.GRPCAddr = v
	}
	if v := os.Getenv("FLAKE_HTTP_ADDR"); v != "" {
		cfg.Server.HTTPAddr = v
	}
	if v := os.Getenv("FLAKE_LOG_LEVEL"); v != "" {
		cfg.Log.Level = v
	}
	if v := os.Getenv("FLAKE_LOG_FORMAT"); v != "" {
		cfg.Log.Format = v
	}
	return nil
}

func envInt64(key string, dst *int64) error {
	v := os.Getenv(key)
	if v == "" {
		return nil
	}
	n, err := strconv.ParseInt(v, 10, 64)
	if err != nil {
		return fmt.Errorf("config: invalid %s=%q: %w", key, v, err)
	}
	*dst = n
	return nil
}

func envUint(key string, dst *uint) error {
	v := os.Getenv(key)
	if v == "" {
		return nil
	}
	n, err := strconv.ParseUint(v, 10, 8)
	if err != nil {
		return fmt.Errorf("config: invalid %s=%q: %w", key, v, err)
	}
	*dst = uint(n)
	return nil
}

func envDuration(key string, dst *time.Duration) error {
	v := os.Getenv(key)
	if v == "" {
		return nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return fmt.Errorf("config: invalid %s=%q: %w", key, v, err)
	}
	*dst = d
	return nil
}
