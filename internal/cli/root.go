package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Makepad-fr/listy/internal/ui"
)

// Options wire the CLI to its environment.
type Options struct {
	Stdout io.Writer
	Stderr io.Writer
}

// App holds the root flags shared by every subcommand.
type App struct {
	ConfigDir   string
	DataDir     string
	Backend     string
	BaseURL     string
	Theme       string
	LogLevel    string
	Verbose     bool
	NoClipboard bool

	stdout io.Writer
	stderr io.Writer
}

// usageError marks bad invocations; they exit with code 2.
type usageError struct{ msg string }

func (e usageError) Error() string { return e.msg }

func usagef(format string, a ...any) error { return usageError{msg: fmt.Sprintf(format, a...)} }

// silentError has already been reported to the user.
type silentError struct{ code int }

func (e silentError) Error() string { return fmt.Sprintf("exit %d", e.code) }

// Run dispatches args and returns an exit code (0 ok, 1 error, 2 usage).
func Run(args []string, opt Options) int {
	if opt.Stdout == nil {
		opt.Stdout = os.Stdout
	}
	if opt.Stderr == nil {
		opt.Stderr = os.Stderr
	}
	cmd := NewRootCmd(opt)
	cmd.SetArgs(args)
	err := cmd.ExecuteContext(context.Background())
	return exitCode(err, opt.Stderr)
}

func exitCode(err error, stderr io.Writer) int {
	if err == nil {
		return 0
	}
	var silent silentError
	if errors.As(err, &silent) {
		return silent.code
	}
	ui.Fail(stderr, err.Error())
	var usage usageError
	if errors.As(err, &usage) || isCobraUsage(err) {
		return 2
	}
	return 1
}

// cobra reports flag and command errors as plain errors.
func isCobraUsage(err error) bool {
	msg := err.Error()
	for _, p := range []string{"unknown command", "unknown flag", "unknown shorthand flag", "flag needs an argument", "invalid argument", "accepts ", "requires at least"} {
		if strings.Contains(msg, p) {
			return true
		}
	}
	return false
}

func NewRootCmd(opt Options) *cobra.Command {
	app := &App{stdout: opt.Stdout, stderr: opt.Stderr}
	var url string

	cmd := &cobra.Command{
		Use:           "listy",
		Short:         "Listy - a local checklist you can share as a link",
		SilenceUsage:  true,
		SilenceErrors: true,
		Example: strings.TrimSpace(`
  # Start the interactive TUI
  listy

  # Open a shared list in the TUI
  listy --url "https://listy.app/?list=eyJ0aXRsZSI6Ikxpc3R5Ii..."

  # Scriptable commands
  listy add "Buy milk"
  listy ls
  listy done 2
  listy edit 1 "Buy oat milk"
  listy rm 3
  listy share
`),
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return app.runTUI(cmd.Context(), url)
		},
	}
	cmd.SetOut(opt.Stdout)
	cmd.SetErr(opt.Stderr)

	cmd.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		cfg, err := app.config()
		if err != nil {
			return err
		}
		ui.SetTheme(cfg.UI.Theme)
		return nil
	}

	pf := cmd.PersistentFlags()
	pf.StringVar(&app.ConfigDir, "config-dir", "", "config directory (default $XDG_CONFIG_HOME/listy)")
	pf.StringVar(&app.DataDir, "data-dir", "", "data directory (default $XDG_DATA_HOME/listy)")
	pf.StringVar(&app.Backend, "backend", "", "storage backend: json, sqlite or memory")
	pf.StringVar(&app.BaseURL, "base-url", "", "page share links point at")
	pf.StringVar(&app.Theme, "theme", "", "output theme: classic, neon or mono")
	pf.StringVar(&app.LogLevel, "log-level", "", "log level: debug, info, warn or error")
	pf.BoolVarP(&app.Verbose, "verbose", "v", false, "shorthand for --log-level debug")
	pf.BoolVar(&app.NoClipboard, "no-clipboard", false, "never touch the system clipboard")
	cmd.Flags().StringVar(&url, "url", "", "start from a share link (or bare token)")

	cmd.AddCommand(
		newListCmd(app),
		newAddCmd(app),
		newEditCmd(app),
		newDoneCmd(app),
		newRemoveCmd(app),
		newShareCmd(app),
		newOpenCmd(app),
		newExportCmd(app),
	)
	return cmd
}
