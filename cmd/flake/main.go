package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	clientcmd "github.com/lyle8341/flake/internal/cmd/client"
	serverrun "github.com/lyle8341/flake/internal/cmd/server"
	cfgpkg "github.com/lyle8341/flake/internal/config"
	logpkg "github.com/lyle8341/flake/pkg/log"
)

func main() {
	// Respect FLAKE_LOG_LEVEL for CLI output
	level := os.Getenv("FLAKE_LOG_LEVEL")
	parsed, err := logpkg.ParseLevel(level)
	if err != nil || level == "" {
		parsed = logpkg.InfoLevel
	}
	logger := logpkg.NewLogger(
		logpkg.WithLevel(parsed),
		logpkg.WithFormatter(&logpkg.TextFormatter{}),
		logpkg.WithOutput(logpkg.NewConsoleOutput()),
	)
	logpkg.RedirectStdLog(logger)

	rootCmd := &cobra.Command{
		Use:           "flake",
		Short:         "flake id generator",
		Long:          "flake mints 64-bit time-ordered ids. This CLI runs the server and works with ids.",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	serverCmd := &cobra.Command{Use: "server", Short: "Server commands"}
	serverCmd.AddCommand(newServerStartCommand())
	rootCmd.AddCommand(serverCmd)

	rootCmd.AddCommand(clientcmd.NewIDCommand())

	if err := rootCmd.Execute(); err != nil {
		logger.Error("command failed", logpkg.Err(err))
		os.Exit(1)
	}
}

// newServerStartCommand constructs `server start`.
func newServerStartCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "start",
		Short:   "Start flake server (gRPC and HTTP)",
		Aliases: []string{"run"},
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadServerConfig(cmd)
			if err != nil {
				return err
			}
			grpcAddr, _ := cmd.Flags().GetString("grpc")
			httpAddr, _ := cmd.Flags().GetString("http")
			if err := serverrun.Run(cmd.Context(), serverrun.Options{
				GRPCAddr: grpcAddr,
				HTTPAddr: httpAddr,
				Config:   cfg,
			}); err != nil {
				return fmt.Errorf("server error: %w", err)
			}
			return nil
		},
	}
	cmd.Flags().String("config", "", "Config file (.toml or .json); defaults to the first config found in the user or system config dir")
	cmd.Flags().String("env-file", ".env", "Dotenv file with FLAKE_* variables (ignored if missing)")
	cmd.Flags().String("grpc", "", "gRPC listen address (overrides config, default :50051)")
	cmd.Flags().String("http", "", "HTTP listen address (overrides config, default :8080)")
	cmd.Flags().Int64("worker-id", 0, "Worker id (overrides config)")
	cmd.Flags().Int64("datacenter-id", 0, "Datacenter id (overrides config)")
	cmd.Flags().String("log-level", "", "Log level: debug|info|warn|error")
	cmd.Flags().String("log-format", "", "Log format: text|json")
	return cmd
}

// loadServerConfig layers defaults, the config file, .env, FLAKE_* variables
// and finally explicit flags.
func loadServerConfig(cmd *cobra.Command) (cfgpkg.Config, error) {
	flags := cmd.Flags()
	path, _ := flags.GetString("config")
	if path == "" {
		path = cfgpkg.DefaultConfigPath()
	}
	cfg, err := cfgpkg.Load(path)
	if err != nil {
		return cfgpkg.Config{}, err
	}
	envFile, _ := flags.GetString("env-file")
	if envFile != "" {
		if err := cfgpkg.LoadDotEnv(envFile); err != nil {
			return cfgpkg.Config{}, err
		}
	}
	if err := cfgpkg.FromEnv(&cfg); err != nil {
		return cfgpkg.Config{}, err
	}
	if flags.Changed("worker-id") {
		cfg.Generator.WorkerID, _ = flags.GetInt64("worker-id")
	}
	if flags.Changed("datacenter-id") {
		cfg.Generator.DatacenterID, _ = flags.GetInt64("datacenter-id")
	}
	if v, _ := flags.GetString("log-level"); v != "" {
		cfg.Log.Level = v
	}
	if v, _ := flags.GetString("log-format"); v != "" {
		cfg.Log.Format = v
	}
	return cfg, cfg.Validate()
}
