package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"snail/internal/preflight"
)

const (
	ansiReset = "\033[0m"
	ansiRed   = "\033[31m"
	ansiGreen = "\033[32m"
)

func newCheckCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "check",
		Short: "Verify workspace directories and input files",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			results := preflight.RunAll(cfg)
			renderPreflight(out, results, shouldColorize(out))
			if preflight.Failed(results) {
				return errors.New("preflight checks failed")
			}
			return nil
		},
	}
}

func renderPreflight(out io.Writer, results []preflight.Result, colorize bool) {
	for _, r := range results {
		label, color := "ok", ansiGreen
		if !r.Passed {
			label, color = "FAIL", ansiRed
		}
		if colorize {
			label = color + label + ansiReset
		}
		fmt.Fprintf(out, "[%s] %s: %s\n", label, r.Name, r.Detail)
	}
}

func shouldColorize(writer io.Writer) bool {
	file, ok := writer.(*os.File)
	if !ok {
		return false
	}
	fd := file.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}
