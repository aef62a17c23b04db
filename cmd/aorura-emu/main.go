package main

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/thiefmaster/aorura/logging"
)

func newRootCmd() *cobra.Command {
	var configPath string

	cmd := &cobra.Command{
		Use:   "aorura-emu <path>",
		Short: "Emulate an AORURA LED over a pty symlinked to path",
		Long: `Emulates an AORURA LED device over a pseudo-terminal symlinked to the
given path. With --listen, the emulated device is also reachable over
websocket at /ws, and its state changes are streamed at /events.`,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := defaultConfig()
			if configPath != "" {
				if err := cfg.load(configPath); err != nil {
					return err
				}
			}
			if len(args) == 1 {
				cfg.Path = args[0]
			}
			if err := cfg.applyFlags(cmd.Flags()); err != nil {
				return err
			}
			if err := cfg.validate(); err != nil {
				return err
			}

			logging.Setup(cfg.Log.Level, cfg.Log.JSON, cfg.Log.Colors)

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()
			return run(ctx, &cfg)
		},
	}

	flags := cmd.Flags()
	flags.StringVarP(&configPath, "config", "c", "", "YAML or TOML configuration file")
	flags.String("listen", "", "address to serve the websocket/events/metrics monitor on")
	flags.Bool("read-only", false, "acknowledge valid commands without changing the state")
	flags.String("state-db", "", "sqlite file to persist the state in")
	flags.String("initial-state", "", "state at startup (default flash:blue)")
	flags.String("log-level", "info", "log level (debug, info, warn, error)")
	flags.Bool("log-json", false, "log as JSON")
	return cmd
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		log.Error().Err(err).Msg("aorura-emu failed")
		os.Exit(1)
	}
}
