// Package main is the entry point for the markstyle command.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/dshills/markstyle/internal/app"
	"github.com/dshills/markstyle/internal/config"
)

// Version information (set via ldflags during build).
var (
	version = "dev"
	commit  = "unknown"
)

// errTerminalInput is returned when no file is named and stdin is a terminal.
var errTerminalInput = errors.New("no input: name a file or pipe text on stdin")

func main() {
	os.Exit(run())
}

func run() int {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	root := newRootCmd(os.Stdin, os.Stdout, os.Stderr)
	if err := root.ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	return 0
}

// cli holds the global flags and the streams commands use.
type cli struct {
	configPath string
	debug      bool

	stdin  io.Reader
	stdout io.Writer
	stderr io.Writer
}

func newRootCmd(stdin io.Reader, stdout, stderr io.Writer) *cobra.Command {
	c := &cli{stdin: stdin, stdout: stdout, stderr: stderr}

	root := &cobra.Command{
		Use:   "markstyle",
		Short: "Toggle Markdown inline styles at cursor positions",
		Long: `markstyle wraps or unwraps Markdown inline styles (bold, italics,
highlight, code, ...) around words and selections, the way an editor
command would.

Positions are LINE:COLUMN, zero-based, with columns counted in UTF-16
code units. A selection is LINE:COLUMN-LINE:COLUMN.

  markstyle apply --style bold --select 0:3 notes.md
  markstyle apply -s italics --select 2:0-2:11 --json < notes.md
  markstyle run script.lua notes.md
  markstyle styles`,
		Version:       fmt.Sprintf("%s (%s)", version, commit),
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.SetIn(stdin)
	root.SetOut(stdout)
	root.SetErr(stderr)

	root.PersistentFlags().StringVar(&c.configPath, "config", "", "config file path (default: user config dir markstyle/config.toml)")
	root.PersistentFlags().BoolVar(&c.debug, "debug", false, "enable debug logging")

	root.AddCommand(
		newApplyCmd(c),
		newRunCmd(c),
		newStylesCmd(c),
	)
	return root
}

// loadApp loads configuration and builds the application.
func (c *cli) loadApp() (*app.Application, error) {
	path := c.configPath
	if path == "" {
		path = config.DefaultPath()
	}

	cfg, err := config.Load(path)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}
	if c.debug {
		cfg.Logging.Level = "debug"
	}
	return app.New(cfg, app.WithLogOutput(c.stderr))
}

// readInput returns the text of the named file, or stdin when path is
// empty. An interactive terminal on stdin is refused.
func (c *cli) readInput(path string) (string, error) {
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return "", fmt.Errorf("reading %s: %w", path, err)
		}
		return string(data), nil
	}

	if f, ok := c.stdin.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		return "", errTerminalInput
	}
	data, err := io.ReadAll(c.stdin)
	if err != nil {
		return "", fmt.Errorf("reading stdin: %w", err)
	}
	return string(data), nil
}

// writeOutput writes text back to path when write is set, else to stdout.
func (c *cli) writeOutput(path string, write bool, text string) error {
	if write {
		if path == "" {
			return errors.New("--write needs a file argument")
		}
		info, err := os.Stat(path)
		if err != nil {
			return err
		}
		return os.WriteFile(path, []byte(text), info.Mode().Perm())
	}
	_, err := io.WriteString(c.stdout, text)
	return err
}
