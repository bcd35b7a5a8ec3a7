package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/apex/log"
	"github.com/apex/log/handlers/cli"
	"github.com/spf13/cobra"
)

// ExitError carries the exit code a command wants the process to end with.
type ExitError struct {
	Code    int
	Message string
}

func (e *ExitError) Error() string {
	return e.Message
}

func main() {
	if err := run(os.Stdout, os.Stderr, os.Args[1:]); err != nil {
		var exitErr *ExitError
		if errors.As(err, &exitErr) {
			fmt.Fprintln(os.Stderr, exitErr.Message)
			os.Exit(exitErr.Code)
		}
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(out, errOut io.Writer, args []string) error {
	root := newRootCommand(out, errOut)
	root.SetArgs(args)
	return root.Execute()
}

func newRootCommand(out, errOut io.Writer) *cobra.Command {
	var level string

	root := &cobra.Command{
		Use:           "variantrules",
		Short:         "Load and inspect data-driven chess variant rulesets",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			lvl, err := log.ParseLevel(level)
			if err != nil {
				return &ExitError{Code: 2, Message: err.Error()}
			}
			log.SetHandler(cli.New(errOut))
			log.SetLevel(lvl)
			return nil
		},
	}
	root.SetOut(out)
	root.SetErr(errOut)
	root.PersistentFlags().StringVar(&level, "log-level", "info", "log level: debug, info, warn, error")

	root.AddCommand(
		newCheckCommand(),
		newDecodeCommand(),
		newShowCommand(),
		newServeCommand(),
	)
	return root
}
