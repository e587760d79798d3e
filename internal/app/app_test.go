package app

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/dshills/markstyle/internal/config"
	"github.com/dshills/markstyle/internal/engine/buffer"
	"github.com/dshills/markstyle/internal/engine/cursor"
	"github.com/dshills/markstyle/internal/smartstyle"
)

func newTestApp(t *testing.T, cfg *config.Config) *Application {
	t.Helper()
	if cfg == nil {
		cfg = config.Default()
	}
	app, err := New(cfg, WithLogger(NullLogger))
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	t.Cleanup(func() { app.Close() })
	return app
}

func sel(l1, c1, l2, c2 int) cursor.Selection {
	return cursor.NewSelection(buffer.Point{Line: l1, Column: c1}, buffer.Point{Line: l2, Column: c2})
}

func TestApply(t *testing.T) {
	app := newTestApp(t, nil)

	res, err := app.Apply(context.Background(), ApplyRequest{
		Text:       "hello world\nsecond line\n",
		Style:      smartstyle.Bold,
		Selections: []cursor.Selection{sel(1, 0, 1, 6)},
	})
	if err != nil {
		t.Fatalf("Apply() error = %v", err)
	}

	if res.Text != "hello world\n**second** line\n" {
		t.Errorf("Text = %q", res.Text)
	}
	if len(res.ChangedLines) != 1 || res.ChangedLines[0] != 1 {
		t.Errorf("ChangedLines = %v, want [1]", res.ChangedLines)
	}
	if len(res.Selections) != 1 || !res.Selections[0].Equals(sel(1, 2, 1, 8)) {
		t.Errorf("Selections = %v", res.Selections)
	}
	if res.Report.Count(smartstyle.ActionApplied) != 1 {
		t.Errorf("Report = %+v", res.Report)
	}
}

func TestApplyToggleOverride(t *testing.T) {
	cfg := config.Default()
	cfg.Editor.Toggle = false
	app := newTestApp(t, cfg)

	req := ApplyRequest{
		Text:       "**word**",
		Style:      smartstyle.Bold,
		Selections: []cursor.Selection{sel(0, 2, 0, 6)},
	}

	res, err := app.Apply(context.Background(), req)
	if err != nil {
		t.Fatal(err)
	}
	if res.Text != "**word**" || res.Report.Selections[0].Action() != smartstyle.ActionReapplied {
		t.Errorf("config toggle=false: text %q, report %+v", res.Text, res.Report)
	}

	on := true
	req.Toggle = &on
	res, err = app.Apply(context.Background(), req)
	if err != nil {
		t.Fatal(err)
	}
	if res.Text != "word" {
		t.Errorf("toggle override: text %q", res.Text)
	}
}

func TestApplyKeepsCRLF(t *testing.T) {
	app := newTestApp(t, nil)

	res, err := app.Apply(context.Background(), ApplyRequest{
		Text:       "one\r\ntwo\r\n",
		Style:      smartstyle.Italics,
		Selections: []cursor.Selection{cursor.NewCursorSelection(buffer.Point{Line: 1, Column: 1})},
	})
	if err != nil {
		t.Fatal(err)
	}
	if res.Text != "one\r\n*two*\r\n" {
		t.Errorf("Text = %q", res.Text)
	}
}

func TestApplyErrors(t *testing.T) {
	app := newTestApp(t, nil)

	_, err := app.Apply(context.Background(), ApplyRequest{Text: "x", Style: smartstyle.Bold})
	if !errors.Is(err, ErrNoSelections) {
		t.Errorf("expected ErrNoSelections, got %v", err)
	}

	_, err = app.Apply(context.Background(), ApplyRequest{
		Text:       "x",
		Style:      "blink",
		Selections: []cursor.Selection{sel(0, 0, 0, 1)},
	})
	if !errors.Is(err, smartstyle.ErrUnknownStyle) {
		t.Errorf("expected ErrUnknownStyle, got %v", err)
	}
	var opErr *OperationError
	if !errors.As(err, &opErr) || opErr.Op != "apply" || opErr.Target != "blink" {
		t.Errorf("expected OperationError for apply blink, got %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := app.Apply(ctx, ApplyRequest{Text: "x", Style: smartstyle.Bold}); !errors.Is(err, context.Canceled) {
		t.Errorf("expected context.Canceled, got %v", err)
	}
}

func TestCustomStyles(t *testing.T) {
	cfg := config.Default()
	cfg.Styles["kbd"] = config.StyleConfig{Prefix: "<kbd>", Suffix: "</kbd>"}
	app := newTestApp(t, cfg)

	found := false
	for _, r := range app.Styles() {
		if r.Name == "kbd" {
			found = true
		}
	}
	if !found {
		t.Fatal("kbd missing from Styles()")
	}

	res, err := app.Apply(context.Background(), ApplyRequest{
		Text:       "press enter",
		Style:      "kbd",
		Selections: []cursor.Selection{cursor.NewCursorSelection(buffer.Point{Column: 7})},
	})
	if err != nil {
		t.Fatal(err)
	}
	if res.Text != "press <kbd>enter</kbd>" {
		t.Errorf("Text = %q", res.Text)
	}
}

func TestNewRejectsBadConfig(t *testing.T) {
	cfg := config.Default()
	cfg.Patterns.TrimAfter = []string{"("}

	if _, err := New(cfg, WithLogger(NullLogger)); !errors.Is(err, ErrInitialization) {
		t.Errorf("expected ErrInitialization, got %v", err)
	}
}

func TestRunScript(t *testing.T) {
	app := newTestApp(t, nil)
	var out bytes.Buffer

	res, err := app.RunScript(context.Background(), ScriptRequest{
		Source: `
local ms = require("markstyle")
ms.cursor(0, 1)
local r = ms.toggle("inlineCode")
print(r.selections[1].action)
`,
		Text:   "code here",
		Output: &out,
	})
	if err != nil {
		t.Fatalf("RunScript() error = %v", err)
	}
	if res.Text != "`code` here" {
		t.Errorf("Text = %q", res.Text)
	}
	if strings.TrimSpace(out.String()) != "applied" {
		t.Errorf("output = %q", out.String())
	}
	if len(res.ChangedLines) != 1 {
		t.Errorf("ChangedLines = %v", res.ChangedLines)
	}
}

func TestRunScriptFile(t *testing.T) {
	app := newTestApp(t, nil)
	path := filepath.Join(t.TempDir(), "strike.lua")
	script := "markstyle.select(0, 0, 0, 3)\nmarkstyle.toggle('strikethrough')\n"
	if err := os.WriteFile(path, []byte(script), 0o644); err != nil {
		t.Fatal(err)
	}

	res, err := app.RunScript(context.Background(), ScriptRequest{Path: path, Text: "old text"})
	if err != nil {
		t.Fatalf("RunScript() error = %v", err)
	}
	if res.Text != "~~old~~ text" {
		t.Errorf("Text = %q", res.Text)
	}

	_, err = app.RunScript(context.Background(), ScriptRequest{Source: "error('boom')", Text: "x"})
	var opErr *OperationError
	if !errors.As(err, &opErr) || opErr.Op != "run" || !strings.Contains(err.Error(), "boom") {
		t.Errorf("expected run OperationError, got %v", err)
	}
}
