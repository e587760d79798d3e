package lua

import (
	"bytes"
	"context"
	"errors"
	"testing"
	"time"

	glua "github.com/yuin/gopher-lua"
)

func newTestState(t *testing.T, opts ...StateOption) *State {
	t.Helper()
	state, err := NewState(opts...)
	if err != nil {
		t.Fatalf("NewState() error = %v", err)
	}
	t.Cleanup(func() { state.Close() })
	return state
}

func TestNewState(t *testing.T) {
	state := newTestState(t)

	if state.IsClosed() {
		t.Error("NewState() returned closed state")
	}
	if state.LuaState() == nil {
		t.Error("NewState() LuaState() is nil")
	}
	if state.Sandbox() == nil {
		t.Error("NewState() Sandbox() is nil")
	}
}

func TestStateDoString(t *testing.T) {
	state := newTestState(t)

	if err := state.DoString(context.Background(), `x = 1 + 1`); err != nil {
		t.Fatalf("DoString() error = %v", err)
	}

	num, ok := state.GetGlobal("x").(glua.LNumber)
	if !ok || float64(num) != 2 {
		t.Errorf("x = %v, want 2", state.GetGlobal("x"))
	}
}

func TestStateDoStringSyntaxError(t *testing.T) {
	state := newTestState(t)

	if err := state.DoString(context.Background(), `invalid lua code !!!`); err == nil {
		t.Error("DoString() should fail on a syntax error")
	}
}

func TestStateTimeout(t *testing.T) {
	state := newTestState(t, WithExecutionTimeout(50*time.Millisecond))

	err := state.DoString(context.Background(), `while true do end`)
	if !errors.Is(err, ErrExecutionTimeout) {
		t.Errorf("DoString() error = %v, want ErrExecutionTimeout", err)
	}

	// the state stays usable
	if err := state.DoString(context.Background(), `y = 3`); err != nil {
		t.Errorf("DoString() after timeout error = %v", err)
	}
}

func TestStateCanceled(t *testing.T) {
	state := newTestState(t, WithExecutionTimeout(0))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := state.DoString(ctx, `while true do end`)
	if !errors.Is(err, context.Canceled) {
		t.Errorf("DoString() error = %v, want context.Canceled", err)
	}
}

func TestStateCall(t *testing.T) {
	state := newTestState(t)
	ctx := context.Background()

	if err := state.DoString(ctx, `function add(a, b) return a + b, "done" end`); err != nil {
		t.Fatal(err)
	}

	results, err := state.Call(ctx, "add", glua.LNumber(2), glua.LNumber(3))
	if err != nil {
		t.Fatalf("Call() error = %v", err)
	}
	if len(results) != 2 {
		t.Fatalf("Call() returned %d values, want 2", len(results))
	}
	if results[0].(glua.LNumber) != 5 || results[1].String() != "done" {
		t.Errorf("Call() = %v", results)
	}

	if _, err := state.Call(ctx, "missing"); err == nil {
		t.Error("Call() of an undefined function should fail")
	}

	if err := state.DoString(ctx, `function noop() end`); err != nil {
		t.Fatal(err)
	}
	results, err = state.Call(ctx, "noop")
	if err != nil || results == nil || len(results) != 0 {
		t.Errorf("Call(noop) = %v, %v, want empty slice", results, err)
	}
}

func TestStateClosed(t *testing.T) {
	state := newTestState(t)
	if err := state.Close(); err != nil {
		t.Fatal(err)
	}
	if err := state.Close(); err != nil {
		t.Errorf("second Close() error = %v", err)
	}

	if err := state.DoString(context.Background(), `x = 1`); !errors.Is(err, ErrStateClosed) {
		t.Errorf("DoString() error = %v, want ErrStateClosed", err)
	}
	if _, err := state.Call(context.Background(), "f"); !errors.Is(err, ErrStateClosed) {
		t.Errorf("Call() error = %v, want ErrStateClosed", err)
	}
	if v := state.GetGlobal("x"); v != glua.LNil {
		t.Errorf("GetGlobal() = %v, want nil", v)
	}
	if err := state.Preload("m", func(L *glua.LState) int { return 0 }); !errors.Is(err, ErrStateClosed) {
		t.Errorf("Preload() error = %v, want ErrStateClosed", err)
	}
}

func TestStateSetGlobalAndPrint(t *testing.T) {
	var out bytes.Buffer
	state := newTestState(t, WithOutput(&out))
	state.SetGlobal("greeting", glua.LString("hi"))
	if err := state.DoString(context.Background(), `print(greeting, 2)`); err != nil {
		t.Fatal(err)
	}
	if out.String() != "hi\t2\n" {
		t.Errorf("print output = %q", out.String())
	}
}
