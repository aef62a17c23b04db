package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/thiefmaster/aorura/comm"
	"github.com/thiefmaster/aorura/logging"
)

// stateValue lets pflag parse --set directly into a comm.State.
type stateValue struct {
	state *comm.State
	set   bool
}

var _ pflag.Value = (*stateValue)(nil)

func (v *stateValue) String() string {
	if v.state == nil || !v.set {
		return ""
	}
	return v.state.String()
}

func (v *stateValue) Set(s string) error {
	parsed, err := comm.ParseState(s)
	if err != nil {
		return err
	}
	*v.state = parsed
	v.set = true
	return nil
}

func (v *stateValue) Type() string {
	return "STATE"
}

func newRootCmd(dial func(string) (*comm.Client, error)) *cobra.Command {
	var (
		target   comm.State
		setFlag  = &stateValue{state: &target}
		logLevel string
	)

	cmd := &cobra.Command{
		Use:   "aorura-cli <path> [--set STATE]",
		Short: "Get, and optionally set, the AORURA LED state",
		Long: `Gets, and optionally sets, the state of an AORURA LED.

<path> is a serial device (or an emulator pty), or the ws:// URL of an
emulator monitor.

States: aurora, flash:COLOR, off, static:COLOR
Colors: blue, green, orange, purple, red, yellow`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			logging.Setup(logLevel, false, false)

			led, err := dial(args[0])
			if err != nil {
				return err
			}
			defer led.Close()

			state, err := run(led, setFlag.set, target)
			if err != nil {
				return err
			}
			return printState(cmd.OutOrStdout(), state)
		},
	}

	cmd.Flags().Var(setFlag, "set", "set LED to given state")
	cmd.Flags().StringVar(&logLevel, "log-level", "error", "log level (debug, info, warn, error)")
	return cmd
}

func run(led *comm.Client, set bool, state comm.State) (comm.State, error) {
	if set {
		if err := led.Set(state); err != nil {
			return comm.State{}, err
		}
		return state, nil
	}
	return led.Get()
}

func printState(w io.Writer, state comm.State) error {
	_, err := fmt.Fprintln(w, state)
	return err
}

func main() {
	if err := newRootCmd(comm.Dial).Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "aorura-cli: %v\n", err)
		os.Exit(1)
	}
}
