package lua

import (
	"fmt"

	lua "github.com/yuin/gopher-lua"

	"github.com/dshills/markstyle/internal/engine/buffer"
	"github.com/dshills/markstyle/internal/engine/cursor"
	"github.com/dshills/markstyle/internal/smartstyle"
)

// Bridge converts between Go and Lua values.
type Bridge struct {
	L *lua.LState
}

// NewBridge creates a new Bridge for the given Lua state.
func NewBridge(L *lua.LState) *Bridge {
	return &Bridge{L: L}
}

// ToGoValue converts a Lua value to a Go value. Tables become []any when
// their keys are 1..n and map[string]any otherwise.
func (b *Bridge) ToGoValue(lv lua.LValue) any {
	return b.toGoValue(lv, make(map[*lua.LTable]bool))
}

func (b *Bridge) toGoValue(lv lua.LValue, visited map[*lua.LTable]bool) any {
	switch v := lv.(type) {
	case lua.LBool:
		return bool(v)
	case lua.LNumber:
		f := float64(v)
		if f == float64(int64(f)) {
			return int64(f)
		}
		return f
	case lua.LString:
		return string(v)
	case *lua.LTable:
		if visited[v] {
			return nil
		}
		visited[v] = true
		return b.tableToGo(v, visited)
	case *lua.LUserData:
		return v.Value
	default:
		return nil
	}
}

func (b *Bridge) tableToGo(t *lua.LTable, visited map[*lua.LTable]bool) any {
	n := t.Len()
	count := 0
	t.ForEach(func(_, _ lua.LValue) { count++ })

	if n > 0 && n == count {
		arr := make([]any, n)
		for i := 1; i <= n; i++ {
			arr[i-1] = b.toGoValue(t.RawGetInt(i), visited)
		}
		return arr
	}

	m := make(map[string]any, count)
	t.ForEach(func(k, v lua.LValue) {
		var key string
		switch kv := k.(type) {
		case lua.LString:
			key = string(kv)
		case lua.LNumber:
			key = fmt.Sprintf("%v", float64(kv))
		default:
			key = k.String()
		}
		m[key] = b.toGoValue(v, visited)
	})
	return m
}

// ToLuaValue converts a Go value to a Lua value.
func (b *Bridge) ToLuaValue(v any) lua.LValue {
	switch val := v.(type) {
	case nil:
		return lua.LNil
	case bool:
		return lua.LBool(val)
	case int:
		return lua.LNumber(val)
	case int64:
		return lua.LNumber(val)
	case float64:
		return lua.LNumber(val)
	case string:
		return lua.LString(val)
	case []any:
		t := b.L.NewTable()
		for _, item := range val {
			t.Append(b.ToLuaValue(item))
		}
		return t
	case []string:
		t := b.L.NewTable()
		for _, item := range val {
			t.Append(lua.LString(item))
		}
		return t
	case map[string]any:
		t := b.L.NewTable()
		for k, item := range val {
			t.RawSetString(k, b.ToLuaValue(item))
		}
		return t
	case lua.LValue:
		return val
	default:
		return lua.LString(fmt.Sprint(val))
	}
}

// PointToTable converts a point to {line=, column=}.
func (b *Bridge) PointToTable(p buffer.Point) *lua.LTable {
	t := b.L.NewTable()
	t.RawSetString("line", lua.LNumber(p.Line))
	t.RawSetString("column", lua.LNumber(p.Column))
	return t
}

// SelectionToTable converts a selection to {anchor=, head=}.
func (b *Bridge) SelectionToTable(sel cursor.Selection) *lua.LTable {
	t := b.L.NewTable()
	t.RawSetString("anchor", b.PointToTable(sel.Anchor))
	t.RawSetString("head", b.PointToTable(sel.Head))
	return t
}

// RangeToTable converts a range to {start=, finish=}. "end" is a Lua
// keyword, so the upper bound is called finish.
func (b *Bridge) RangeToTable(r buffer.PointRange) *lua.LTable {
	t := b.L.NewTable()
	t.RawSetString("start", b.PointToTable(r.Start))
	t.RawSetString("finish", b.PointToTable(r.End))
	return t
}

// ReportToTable converts a transformation report.
func (b *Bridge) ReportToTable(rep smartstyle.Report) *lua.LTable {
	t := b.L.NewTable()
	t.RawSetString("style", lua.LString(rep.Style))
	t.RawSetString("toggle", lua.LBool(rep.Toggle))
	t.RawSetString("changed", lua.LBool(rep.Changed()))

	sels := b.L.NewTable()
	for _, s := range rep.Selections {
		st := b.RangeToTable(s.Result)
		st.RawSetString("action", lua.LString(s.Action()))
		st.RawSetString("input", b.RangeToTable(s.Input))
		sels.Append(st)
	}
	t.RawSetString("selections", sels)
	return t
}
