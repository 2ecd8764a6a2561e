package client

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
	"google.golang.org/protobuf/encoding/protojson"

	"github.com/lyle8341/flake/internal/codec"
	cfgpkg "github.com/lyle8341/flake/internal/config"
	idsvc "github.com/lyle8341/flake/internal/services/ids"
	logpkg "github.com/lyle8341/flake/pkg/log"
	"github.com/lyle8341/flake/pkg/snowflake"
)

// NewIDCommand constructs the `id` command group and subcommands.
func NewIDCommand() *cobra.Command {
	idCmd := &cobra.Command{Use: "id", Short: "Id operations"}
	idCmd.AddCommand(
		newIDGenerateCommand(),
		newIDDecodeCommand(),
		newIDInspectCommand(),
		newIDHealthCommand(),
	)
	return idCmd
}

// newIDGenerateCommand constructs the `id generate` subcommand.
func newIDGenerateCommand() *cobra.Command {
	generateCmd := &cobra.Command{
		Use:   "generate",
		Short: "Mint ids on the server",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			count, _ := cmd.Flags().GetInt("count")
			format, _ := cmd.Flags().GetString("format")
			f, err := codec.ParseFormat(format)
			if err != nil {
				return err
			}
			if count < 1 || count > idsvc.MaxBatch {
				return fmt.Errorf("--count must be between 1 and %d", idsvc.MaxBatch)
			}
			ids, err := getTransport().Generate(cmd.Context(), count)
			if err != nil {
				return err
			}
			for _, id := range ids {
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), codec.Encode(id, f))
			}
			return nil
		},
	}
	generateCmd.Flags().IntP("count", "c", 1, "Number of ids")
	generateCmd.Flags().StringP("format", "f", "dec", "Output format: dec|hex|base2|base32|base36|base58|base64")
	return generateCmd
}

// newIDDecodeCommand constructs the `id decode` subcommand.
func newIDDecodeCommand() *cobra.Command {
	decodeCmd := &cobra.Command{
		Use:   "decode <id>...",
		Short: "Split ids into timestamp, datacenter, worker and sequence",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ids, err := parseIDArgs(cmd, args)
			if err != nil {
				return err
			}
			if remote, _ := cmd.Flags().GetBool("remote"); remote {
				for _, id := range ids {
					s, err := getTransport().Decode(cmd.Context(), id)
					if err != nil {
						return err
					}
					b, err := protojson.Marshal(s)
					if err != nil {
						return err
					}
					_, _ = fmt.Fprintln(cmd.OutOrStdout(), string(b))
				}
				return nil
			}
			svc, err := localService(cmd)
			if err != nil {
				return err
			}
			enc := json.NewEncoder(cmd.OutOrStdout())
			for _, id := range ids {
				d, err := svc.Decode(id)
				if err != nil {
					return err
				}
				if err := enc.Encode(d); err != nil {
					return err
				}
			}
			return nil
		},
	}
	addLayoutFlags(decodeCmd)
	decodeCmd.Flags().Bool("remote", false, "Decode on the server (FLAKE_GRPC) with its layout and epoch")
	return decodeCmd
}

// newIDInspectCommand constructs the `id inspect` subcommand.
func newIDInspectCommand() *cobra.Command {
	inspectCmd := &cobra.Command{
		Use:   "inspect --filter EXPR <id>...",
		Short: "Print the decoded ids matching a CEL filter",
		Long: "Variables available to the filter: id, ts_ms, datacenter, worker, sequence,\n" +
			"now_ms, age_ms. Example: --filter 'worker == 3 && age_ms < 60000'",
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ids, err := parseIDArgs(cmd, args)
			if err != nil {
				return err
			}
			filter, _ := cmd.Flags().GetString("filter")
			svc, err := localService(cmd)
			if err != nil {
				return err
			}
			matches, err := svc.Inspect(cmd.Context(), ids, filter)
			if err != nil {
				return err
			}
			enc := json.NewEncoder(cmd.OutOrStdout())
			for _, d := range matches {
				if err := enc.Encode(d); err != nil {
					return err
				}
			}
			return nil
		},
	}
	addLayoutFlags(inspectCmd)
	inspectCmd.Flags().String("filter", "", "CEL expression; empty matches everything")
	return inspectCmd
}

// newIDHealthCommand constructs the `id health` subcommand.
func newIDHealthCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "health",
		Short: "Check the server generator health",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			status, err := getTransport().Health(cmd.Context())
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintln(cmd.OutOrStdout(), "status:", status)
			return nil
		},
	}
}

func addLayoutFlags(cmd *cobra.Command) {
	cmd.Flags().StringP("format", "f", "dec", "Input format: dec|hex|base2|base32|base36|base58|base64")
	cmd.Flags().String("config", "", "Config file (.toml or .json) supplying epoch and layout")
	cmd.Flags().Int64("epoch", snowflake.DefaultEpoch, "Epoch in Unix milliseconds")
	cmd.Flags().Uint("timestamp-bits", snowflake.DefaultLayout.TimestampBits, "Timestamp field width")
	cmd.Flags().Uint("datacenter-bits", snowflake.DefaultLayout.DatacenterBits, "Datacenter field width")
	cmd.Flags().Uint("worker-bits", snowflake.DefaultLayout.WorkerBits, "Worker field width")
	cmd.Flags().Uint("sequence-bits", snowflake.DefaultLayout.SequenceBits, "Sequence field width")
}

func parseIDArgs(cmd *cobra.Command, args []string) ([]int64, error) {
	format, _ := cmd.Flags().GetString("format")
	f, err := codec.ParseFormat(format)
	if err != nil {
		return nil, err
	}
	ids := make([]int64, 0, len(args))
	for _, a := range args {
		id, err := codec.Decode(a, f)
		if err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, nil
}

// localService builds a decode-only service. Precedence, lowest first:
// defaults, --config, FLAKE_* env, explicit flags.
func localService(cmd *cobra.Command) (*idsvc.Service, error) {
	cfg := cfgpkg.Default()
	if path, _ := cmd.Flags().GetString("config"); path != "" {
		var err error
		if cfg, err = cfgpkg.Load(path); err != nil {
			return nil, err
		}
	}
	if err := cfgpkg.FromEnv(&cfg); err != nil {
		return nil, err
	}

	flags := cmd.Flags()
	if flags.Changed("epoch") {
		cfg.Generator.EpochMillis, _ = flags.GetInt64("epoch")
	}
	layout := &cfg.Generator.Layout
	for name, dst := range map[string]*uint{
		"timestamp-bits":  &layout.TimestampBits,
		"datacenter-bits": &layout.DatacenterBits,
		"worker-bits":     &layout.WorkerBits,
		"sequence-bits":   &layout.SequenceBits,
	} {
		if flags.Changed(name) {
			*dst, _ = flags.GetUint(name)
		}
	}

	gen, err := snowflake.New(0, 0, cfg.Generator.EpochMillis, snowflake.WithLayout(cfg.Generator.Layout))
	if err != nil {
		return nil, err
	}
	return idsvc.NewWithGenerator(gen, logpkg.NewLogger(logpkg.WithOutput(logpkg.NullOutput{}))), nil
}
