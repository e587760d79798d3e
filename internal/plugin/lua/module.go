package lua

import (
	"errors"

	lua "github.com/yuin/gopher-lua"

	"github.com/dshills/markstyle/internal/engine"
	"github.com/dshills/markstyle/internal/engine/buffer"
	"github.com/dshills/markstyle/internal/engine/cursor"
	"github.com/dshills/markstyle/internal/smartstyle"
)

// ModuleName is the name scripts require.
const ModuleName = "markstyle"

// Logger receives ms.log output.
type Logger interface {
	Info(msg string, args ...any)
}

type nopLogger struct{}

func (nopLogger) Info(string, ...any) {}

// Module exposes an engine and its transformer to Lua.
type Module struct {
	eng    *engine.Engine
	tr     *smartstyle.Transformer
	toggle bool
	log    Logger
}

// ModuleOption configures a Module.
type ModuleOption func(*Module)

// WithDefaultToggle sets the toggle flag used when a script omits it.
func WithDefaultToggle(toggle bool) ModuleOption {
	return func(m *Module) {
		m.toggle = toggle
	}
}

// WithLogger routes ms.log through l.
func WithLogger(l Logger) ModuleOption {
	return func(m *Module) {
		if l != nil {
			m.log = l
		}
	}
}

// NewModule binds tr to eng and returns the module.
func NewModule(eng *engine.Engine, tr *smartstyle.Transformer, opts ...ModuleOption) *Module {
	m := &Module{
		eng:    eng,
		tr:     tr,
		toggle: true,
		log:    nopLogger{},
	}
	for _, opt := range opts {
		opt(m)
	}
	tr.SetEditor(eng)
	return m
}

// Open preloads the module into s and sets the markstyle global.
func (m *Module) Open(s *State) error {
	return s.Preload(ModuleName, m.Loader)
}

// Loader is the lua.LGFunction that builds the module table.
func (m *Module) Loader(L *lua.LState) int {
	mod := L.SetFuncs(L.NewTable(), map[string]lua.LGFunction{
		"text":          m.text,
		"line":          m.line,
		"line_count":    m.lineCount,
		"select":        m.selectRange,
		"add_selection": m.addSelection,
		"cursor":        m.cursor,
		"selections":    m.selections,
		"selection":     m.selection,
		"insert":        m.insert,
		"toggle":        m.toggleStyle,
		"styles":        m.styles,
		"expand":        m.expand,
		"undo":          m.undo,
		"redo":          m.redo,
		"log":           m.logMessage,
	})
	L.Push(mod)
	return 1
}

func checkPoint(L *lua.LState, n int) buffer.Point {
	return buffer.Point{Line: L.CheckInt(n), Column: L.CheckInt(n + 1)}
}

// checkSpan reads "line, col" or "line, col, line, col" from the first
// argc arguments.
func checkSpan(L *lua.LState, argc int) (anchor, head buffer.Point) {
	anchor = checkPoint(L, 1)
	head = anchor
	if argc >= 4 {
		head = checkPoint(L, 3)
	}
	return anchor, head
}

func (m *Module) text(L *lua.LState) int {
	L.Push(lua.LString(m.eng.Text()))
	return 1
}

func (m *Module) line(L *lua.LState) int {
	L.Push(lua.LString(m.eng.Line(L.CheckInt(1))))
	return 1
}

func (m *Module) lineCount(L *lua.LState) int {
	L.Push(lua.LNumber(m.eng.LineCount()))
	return 1
}

func (m *Module) selectRange(L *lua.LState) int {
	anchor, head := checkSpan(L, L.GetTop())
	m.eng.SetSelection(anchor, head)
	return 0
}

func (m *Module) addSelection(L *lua.LState) int {
	anchor, head := checkSpan(L, L.GetTop())
	m.eng.AddSelection(anchor, head)
	return 0
}

func (m *Module) cursor(L *lua.LState) int {
	m.eng.SetCursor(checkPoint(L, 1))
	return 0
}

func (m *Module) selections(L *lua.LState) int {
	b := NewBridge(L)
	t := L.NewTable()
	for _, sel := range m.eng.ListSelections() {
		t.Append(b.SelectionToTable(sel))
	}
	L.Push(t)
	return 1
}

func (m *Module) selection(L *lua.LState) int {
	L.Push(lua.LString(m.eng.Selection()))
	return 1
}

func (m *Module) insert(L *lua.LState) int {
	p := checkPoint(L, 1)
	if err := m.eng.Insert(p, L.CheckString(3)); err != nil {
		L.RaiseError("insert: %v", err)
	}
	return 0
}

func (m *Module) toggleStyle(L *lua.LState) int {
	style := L.CheckString(1)
	toggle := m.toggle
	if L.GetTop() >= 2 {
		toggle = L.CheckBool(2)
	}

	var rep smartstyle.Report
	err := m.eng.Transaction(style, func() error {
		var err error
		rep, err = m.tr.TransformText(style, toggle)
		return err
	})
	if err != nil {
		L.RaiseError("toggle %s: %v", style, err)
		return 0
	}

	L.Push(NewBridge(L).ReportToTable(rep))
	return 1
}

func (m *Module) styles(L *lua.LState) int {
	t := L.NewTable()
	for _, r := range m.tr.Rules() {
		entry := L.NewTable()
		entry.RawSetString("name", lua.LString(r.Name))
		entry.RawSetString("prefix", lua.LString(r.Prefix))
		entry.RawSetString("suffix", lua.LString(r.Suffix))
		t.Append(entry)
	}
	L.Push(t)
	return 1
}

// expand(line, col [, line, col] [, trim]) returns the range a toggle
// would style.
func (m *Module) expand(L *lua.LState) int {
	argc := L.GetTop()
	trim := true
	if argc == 3 || argc == 5 {
		trim = L.CheckBool(argc)
		argc--
	}
	anchor, head := checkSpan(L, argc)

	r, err := m.tr.SmartRange(cursor.NewSelection(anchor, head).Range(), trim)
	if err != nil {
		L.RaiseError("expand: %v", err)
		return 0
	}
	L.Push(NewBridge(L).RangeToTable(r))
	return 1
}

func (m *Module) undo(L *lua.LState) int {
	return m.history(L, m.eng.Undo, engine.ErrNothingToUndo)
}

func (m *Module) redo(L *lua.LState) int {
	return m.history(L, m.eng.Redo, engine.ErrNothingToRedo)
}

func (m *Module) history(L *lua.LState, step func() error, empty error) int {
	err := step()
	switch {
	case errors.Is(err, empty):
		L.Push(lua.LFalse)
	case err != nil:
		L.RaiseError("%v", err)
		return 0
	default:
		L.Push(lua.LTrue)
	}
	return 1
}

func (m *Module) logMessage(L *lua.LState) int {
	m.log.Info("script: %s", L.CheckString(1))
	return 0
}
