package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"github.com/tidwall/sjson"

	"github.com/dshills/markstyle/internal/app"
	"github.com/dshills/markstyle/internal/engine/buffer"
	"github.com/dshills/markstyle/internal/engine/cursor"
	"github.com/dshills/markstyle/internal/smartstyle"
)

type applyOptions struct {
	style    string
	selects  []string
	noToggle bool
	json     bool
	show     bool
	write    bool
}

func newApplyCmd(c *cli) *cobra.Command {
	var opts applyOptions

	cmd := &cobra.Command{
		Use:   "apply [file]",
		Short: "Toggle a style around each selection",
		Long: `Toggle a Markdown style around each --select position.

A bare cursor expands to the word under it. A selection grows to cover
partially selected words and any markers around it. Line prefixes such
as headings, list bullets and checkboxes are never styled.

The edited text is written to stdout, or back to the file with --write.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runApply(cmd, c, opts, args)
		},
	}

	cmd.Flags().StringVarP(&opts.style, "style", "s", smartstyle.Bold, "style name (see 'markstyle styles')")
	cmd.Flags().StringArrayVar(&opts.selects, "select", nil, "cursor LINE:COL or selection LINE:COL-LINE:COL (repeatable)")
	cmd.Flags().BoolVar(&opts.noToggle, "no-toggle", false, "always leave the style applied")
	cmd.Flags().BoolVar(&opts.json, "json", false, "print a JSON report instead of the text")
	cmd.Flags().BoolVar(&opts.show, "show", false, "print the resulting selections to stderr")
	cmd.Flags().BoolVarP(&opts.write, "write", "w", false, "write the result back to the file")
	_ = cmd.MarkFlagRequired("select")

	return cmd
}

func runApply(cmd *cobra.Command, c *cli, opts applyOptions, args []string) error {
	sels, err := parseSelections(opts.selects)
	if err != nil {
		return err
	}

	var path string
	if len(args) > 0 {
		path = args[0]
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

	req := app.ApplyRequest{Text: text, Style: opts.style, Selections: sels}
	if cmd.Flags().Changed("no-toggle") {
		toggle := !opts.noToggle
		req.Toggle = &toggle
	}

	res, err := a.Apply(cmd.Context(), req)
	if err != nil {
		return err
	}

	if opts.show {
		showSelections(c.stderr, res.Text, res.Selections)
	}

	if opts.json {
		out, err := reportJSON(res)
		if err != nil {
			return err
		}
		if opts.write {
			if err := c.writeOutput(path, true, res.Text); err != nil {
				return err
			}
		}
		fmt.Fprintln(c.stdout, out)
		return nil
	}
	return c.writeOutput(path, opts.write, res.Text)
}

// parseSelections parses LINE:COL and LINE:COL-LINE:COL arguments.
func parseSelections(args []string) ([]cursor.Selection, error) {
	sels := make([]cursor.Selection, 0, len(args))
	for _, arg := range args {
		sel, err := parseSelection(arg)
		if err != nil {
			return nil, err
		}
		sels = append(sels, sel)
	}
	return sels, nil
}

func parseSelection(arg string) (cursor.Selection, error) {
	from, to, isRange := strings.Cut(arg, "-")
	anchor, err := parsePoint(from)
	if err != nil {
		return cursor.Selection{}, fmt.Errorf("invalid selection %q: %w", arg, err)
	}
	if !isRange {
		return cursor.NewCursorSelection(anchor), nil
	}
	head, err := parsePoint(to)
	if err != nil {
		return cursor.Selection{}, fmt.Errorf("invalid selection %q: %w", arg, err)
	}
	return cursor.NewSelection(anchor, head), nil
}

func parsePoint(s string) (buffer.Point, error) {
	l, c, ok := strings.Cut(strings.TrimSpace(s), ":")
	if !ok {
		return buffer.Point{}, fmt.Errorf("want LINE:COL, got %q", s)
	}
	line, err := strconv.Atoi(l)
	if err != nil || line < 0 {
		return buffer.Point{}, fmt.Errorf("bad line %q", l)
	}
	col, err := strconv.Atoi(c)
	if err != nil || col < 0 {
		return buffer.Point{}, fmt.Errorf("bad column %q", c)
	}
	return buffer.NewPoint(line, col), nil
}

// reportJSON renders the result of an apply as a JSON object.
func reportJSON(res *app.Result) (string, error) {
	out := "{}"
	var err error
	set := func(path string, v any) {
		if err != nil {
			return
		}
		out, err = sjson.Set(out, path, v)
	}

	set("style", res.Report.Style)
	set("toggle", res.Report.Toggle)
	set("changed", res.Report.Changed())
	set("text", res.Text)
	set("changedLines", changedLines(res.ChangedLines))
	set("selections", []any{})
	for i, s := range res.Report.Selections {
		prefix := "selections." + strconv.Itoa(i)
		set(prefix+".action", string(s.Action()))
		set(prefix+".input", rangeJSON(s.Input))
		set(prefix+".result", rangeJSON(s.Result))
	}
	if err != nil {
		return "", fmt.Errorf("encoding report: %w", err)
	}
	return out, nil
}

func changedLines(lines []int) []int {
	if lines == nil {
		return []int{}
	}
	return lines
}

func rangeJSON(r buffer.PointRange) map[string]any {
	return map[string]any{
		"start": map[string]int{"line": r.Start.Line, "column": r.Start.Column},
		"end":   map[string]int{"line": r.End.Line, "column": r.End.Column},
	}
}
