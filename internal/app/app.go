// Package app wires configuration, logging, the engine and the style
// transformer into the operations the CLI exposes.
package app

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/dshills/markstyle/internal/config"
	"github.com/dshills/markstyle/internal/engine"
	"github.com/dshills/markstyle/internal/engine/cursor"
	"github.com/dshills/markstyle/internal/plugin/lua"
	"github.com/dshills/markstyle/internal/smartstyle"
)

// inputSnapshot names the snapshot taken before a request edits anything.
const inputSnapshot = "input"

// Application holds the loaded configuration and shared services.
type Application struct {
	cfg    *config.Config
	style  smartstyle.Config
	logger *Logger
	logOut io.Writer
	closer io.Closer
}

// Option configures an Application.
type Option func(*Application)

// WithLogger replaces the logger built from the configuration.
func WithLogger(l *Logger) Option {
	return func(app *Application) {
		app.logger = l
	}
}

// WithLogOutput sets where a stderr logger writes. Ignored when the
// configuration names a log file.
func WithLogOutput(w io.Writer) Option {
	return func(app *Application) {
		app.logOut = w
	}
}

// New creates an application from cfg. A nil cfg uses the defaults.
func New(cfg *config.Config, opts ...Option) (*Application, error) {
	if cfg == nil {
		cfg = config.Default()
	}

	style, err := cfg.Smartstyle()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInitialization, err)
	}

	app := &Application{cfg: cfg, style: style, logOut: os.Stderr}
	for _, opt := range opts {
		opt(app)
	}

	if app.logger == nil {
		logger, closer, err := NewLoggerFromConfig(cfg.Logging, app.logOut)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInitialization, err)
		}
		app.logger, app.closer = logger, closer
	}

	app.logger.Debug("configured %d styles", len(style.Rules))
	return app, nil
}

// Config returns the loaded configuration.
func (app *Application) Config() *config.Config {
	return app.cfg
}

// Logger returns the application's logger.
func (app *Application) Logger() *Logger {
	return app.logger
}

// Styles returns the configured style rules.
func (app *Application) Styles() []smartstyle.Rule {
	out := make([]smartstyle.Rule, len(app.style.Rules))
	copy(out, app.style.Rules)
	return out
}

// Close releases the log file, if any.
func (app *Application) Close() error {
	if app.closer == nil {
		return nil
	}
	return app.closer.Close()
}

// NewEngine returns an engine holding text with the configured line ending.
func (app *Application) NewEngine(text string) (*engine.Engine, error) {
	le, auto, err := app.cfg.LineEnding()
	if err != nil {
		return nil, err
	}
	opts := []engine.Option{engine.WithContent(text)}
	if !auto {
		opts = append(opts, engine.WithLineEnding(le))
	}
	return engine.New(opts...), nil
}

// NewTransformer returns a transformer bound to eng.
func (app *Application) NewTransformer(eng *engine.Engine) (*smartstyle.Transformer, error) {
	return smartstyle.New(app.style,
		smartstyle.WithEditor(eng),
		smartstyle.WithLogger(app.logger.WithComponent("smartstyle")),
	)
}

// ApplyRequest asks for one style toggle over a text.
type ApplyRequest struct {
	Text       string
	Style      string
	Selections []cursor.Selection
	// Toggle overrides editor.toggle when set.
	Toggle *bool
}

// Result is the outcome of a request.
type Result struct {
	Text         string
	Selections   []cursor.Selection
	Report       smartstyle.Report
	ChangedLines []int
}

// Apply runs one style toggle and returns the edited text.
func (app *Application) Apply(ctx context.Context, req ApplyRequest) (*Result, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if len(req.Selections) == 0 {
		return nil, NewOperationError("apply", req.Style, ErrNoSelections)
	}

	toggle := app.cfg.Editor.Toggle
	if req.Toggle != nil {
		toggle = *req.Toggle
	}

	eng, err := app.NewEngine(req.Text)
	if err != nil {
		return nil, NewOperationError("apply", req.Style, err)
	}
	tr, err := app.NewTransformer(eng)
	if err != nil {
		return nil, NewOperationError("apply", req.Style, err)
	}

	eng.SetSelections(req.Selections)
	eng.CreateSnapshot(inputSnapshot)

	log := app.logger.WithFields(map[string]any{"style": req.Style, "toggle": toggle})
	log.Debug("applying to %d selections", len(req.Selections))

	var report smartstyle.Report
	err = eng.Transaction(req.Style, func() error {
		var err error
		report, err = tr.TransformText(req.Style, toggle)
		return err
	})
	if err != nil {
		log.Error("apply failed: %v", err)
		return nil, NewOperationError("apply", req.Style, err)
	}

	res, err := app.result(eng)
	if err != nil {
		return nil, NewOperationError("apply", req.Style, err)
	}
	res.Report = report

	log.Info("applied: %d changed, %d skipped", len(report.Selections)-report.Count(smartstyle.ActionSkipped), report.Count(smartstyle.ActionSkipped))
	return res, nil
}

// ScriptRequest runs a Lua script against a text.
type ScriptRequest struct {
	// Path is the script file. Source is used when Path is empty.
	Path   string
	Source string
	Text   string
	// Output receives the script's print output.
	Output io.Writer
}

// RunScript executes a Lua script with the markstyle module bound to a
// fresh engine holding req.Text.
func (app *Application) RunScript(ctx context.Context, req ScriptRequest) (*Result, error) {
	name := req.Path
	if name == "" {
		name = "<source>"
	}

	eng, err := app.NewEngine(req.Text)
	if err != nil {
		return nil, NewOperationError("run", name, err)
	}
	tr, err := app.NewTransformer(eng)
	if err != nil {
		return nil, NewOperationError("run", name, err)
	}
	eng.CreateSnapshot(inputSnapshot)

	state, err := lua.NewState(lua.WithOutput(req.Output))
	if err != nil {
		return nil, NewOperationError("run", name, err)
	}
	defer state.Close()

	mod := lua.NewModule(eng, tr,
		lua.WithDefaultToggle(app.cfg.Editor.Toggle),
		lua.WithLogger(app.logger.WithComponent("script")),
	)
	if err := mod.Open(state); err != nil {
		return nil, NewOperationError("run", name, err)
	}

	app.logger.Debug("running script %s", name)
	if req.Path != "" {
		err = state.DoFile(ctx, req.Path)
	} else {
		err = state.DoString(ctx, req.Source)
	}
	if err != nil {
		return nil, NewOperationError("run", name, err)
	}

	res, err := app.result(eng)
	if err != nil {
		return nil, NewOperationError("run", name, err)
	}
	return res, nil
}

func (app *Application) result(eng *engine.Engine) (*Result, error) {
	changed, err := eng.ChangedLinesSince(inputSnapshot)
	if err != nil {
		return nil, err
	}
	return &Result{
		Text:         eng.Text(),
		Selections:   eng.ListSelections(),
		ChangedLines: changed,
	}, nil
}
