package main

import (
	"github.com/spf13/cobra"

	"github.com/dshills/markstyle/internal/app"
)

func newRunCmd(c *cli) *cobra.Command {
	var write bool

	cmd := &cobra.Command{
		Use:   "run script.lua [file]",
		Short: "Run a Lua script against a text",
		Long: `Run a Lua script with the markstyle module loaded over the text of
file (or stdin). The edited text is written to stdout, or back to the
file with --write. Script print output goes to stderr.

  local m = require("markstyle")
  m.select(0, 2)
  m.toggle("bold")`,
		Args: cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			var path string
			if len(args) > 1 {
				path = args[1]
			}
			text, err := c.readInput(path)
			if err != nil {
				return err
			}

			a, err := c.loadApp()
			if err != nil {
				return err
			}
			defer a.Close()

			res, err := a.RunScript(cmd.Context(), app.ScriptRequest{
				Path:   args[0],
				Text:   text,
				Output: c.stderr,
			})
			if err != nil {
				return err
			}
			return c.writeOutput(path, write, res.Text)
		},
	}

	cmd.Flags().BoolVarP(&write, "write", "w", false, "write the result back to the file")
	return cmd
}
