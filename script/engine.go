// Package script hosts Lua macros over an editor. An Engine owns one Lua
// state with a restricted library set and preloads an "mdedit" module whose
// functions drive the editor's commands. Engines are not goroutine-safe;
// all calls on one Engine must come from a single goroutine.
package script

import (
	"errors"
	"fmt"
	"io"
	"os"

	lua "github.com/yuin/gopher-lua"

	"github.com/dshills/mdedit/edit"
)

// ErrEngineClosed is returned when running a macro on a closed engine.
var ErrEngineClosed = errors.New("script engine is closed")

// ModuleName is the name macros require to reach the editor bindings.
const ModuleName = "mdedit"

// Engine hosts a sandboxed Lua state bound to one editor.
type Engine struct {
	editor *edit.Editor
	L      *lua.LState
	output io.Writer
	closed bool

	// unrestricted keeps the full Lua stdlib available, including io and
	// os. Off by default.
	unrestricted bool
}

// Option configures an Engine.
type Option func(*Engine)

// WithOutput redirects the macro's print output. Defaults to os.Stdout.
func WithOutput(w io.Writer) Option {
	return func(e *Engine) {
		if w != nil {
			e.output = w
		}
	}
}

// WithFullLibraries opens the complete Lua standard library instead of the
// restricted default set. Macros can then touch the filesystem and
// environment; only use this for trusted scripts.
func WithFullLibraries() Option {
	return func(e *Engine) { e.unrestricted = true }
}

// New creates an engine bound to the given editor. The Lua state starts
// with base, string, table and math libraries; dofile, loadfile, load and
// loadstring are removed and package paths are cleared so macros cannot
// pull code from disk. Close releases the state.
func New(editor *edit.Editor, opts ...Option) *Engine {
	e := &Engine{editor: editor, output: os.Stdout}
	for _, opt := range opts {
		opt(e)
	}

	if e.unrestricted {
		e.L = lua.NewState()
	} else {
		e.L = lua.NewState(lua.Options{SkipOpenLibs: true})
		e.openRestrictedLibs()
	}

	e.installPrint()
	e.L.PreloadModule(ModuleName, e.moduleLoader)
	return e
}

func (e *Engine) openRestrictedLibs() {
	for _, lib := range []struct {
		name string
		open lua.LGFunction
	}{
		{lua.LoadLibName, lua.OpenPackage},
		{lua.BaseLibName, lua.OpenBase},
		{lua.TabLibName, lua.OpenTable},
		{lua.StringLibName, lua.OpenString},
		{lua.MathLibName, lua.OpenMath},
	} {
		e.L.Push(e.L.NewFunction(lib.open))
		e.L.Push(lua.LString(lib.name))
		e.L.Call(1, 0)
	}

	for _, name := range []string{"dofile", "loadfile", "load", "loadstring"} {
		e.L.SetGlobal(name, lua.LNil)
	}

	if pkg, ok := e.L.GetGlobal("package").(*lua.LTable); ok {
		e.L.SetField(pkg, "path", lua.LString(""))
		e.L.SetField(pkg, "cpath", lua.LString(""))
	}
}

// installPrint rebinds print to the engine's output writer.
func (e *Engine) installPrint() {
	e.L.SetGlobal("print", e.L.NewFunction(func(L *lua.LState) int {
		top := L.GetTop()
		for i := 1; i <= top; i++ {
			if i > 1 {
				fmt.Fprint(e.output, "\t")
			}
			fmt.Fprint(e.output, L.ToStringMeta(L.Get(i)).String())
		}
		fmt.Fprintln(e.output)
		return 0
	}))
}

// Editor returns the editor the engine drives.
func (e *Engine) Editor() *edit.Editor { return e.editor }

// RunString executes Lua source against the editor.
func (e *Engine) RunString(source string) error {
	if e.closed {
		return ErrEngineClosed
	}
	if err := e.L.DoString(source); err != nil {
		return fmt.Errorf("macro failed: %w", err)
	}
	return nil
}

// RunFile executes a Lua file against the editor.
func (e *Engine) RunFile(path string) error {
	if e.closed {
		return ErrEngineClosed
	}
	if err := e.L.DoFile(path); err != nil {
		return fmt.Errorf("macro %s failed: %w", path, err)
	}
	return nil
}

// Close releases the Lua state. The engine cannot be reused afterwards.
func (e *Engine) Close() {
	if e.closed {
		return
	}
	e.closed = true
	e.L.Close()
}
