// Package lua provides a sandboxed Lua file loader for configuration
// sources. Registered on a FileResolver, it lets config.lua modules
// compute their tree at load time:
//
//	r := config.NewFileResolver()
//	r.Register(lua.Loader())
//
// Scripts run without dofile, loadfile, load, or the os and io
// libraries, and must return a table.
package lua

import (
	"bytes"
	"fmt"
	"math"
	"os"

	glua "github.com/yuin/gopher-lua"
)

// maxScriptSize caps the size of a Lua configuration script.
const maxScriptSize = 10 << 20

// ScriptLoader loads configuration trees from Lua scripts.
type ScriptLoader struct{}

// Loader returns a file loader that executes Lua configuration
// scripts for the "lua" extension.
func Loader() *ScriptLoader {
	return &ScriptLoader{}
}

// Extensions reports the file extensions handled by the loader.
func (*ScriptLoader) Extensions() []string { return []string{"lua"} }

// Load executes the script at path in a sandboxed state and converts
// the returned table into a configuration tree.
func (*ScriptLoader) Load(path string) (map[string]any, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("failed to access config script '%s': %w", path, err)
	}
	if info.Size() > maxScriptSize {
		return nil, fmt.Errorf("config script '%s' exceeds size limit", path)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config script '%s': %w", path, err)
	}

	state := newSandbox()
	defer state.Close()

	fn, err := state.Load(bytes.NewReader(data), path)
	if err != nil {
		return nil, fmt.Errorf("failed to compile config script '%s': %w", path, err)
	}
	state.Push(fn)
	if err := state.PCall(0, 1, nil); err != nil {
		return nil, fmt.Errorf("failed to run config script '%s': %w", path, err)
	}

	table, ok := state.Get(-1).(*glua.LTable)
	if !ok {
		return nil, fmt.Errorf("config script '%s' must return a table", path)
	}
	tree, ok := fromTable(table).(map[string]any)
	if !ok {
		return nil, fmt.Errorf("config script '%s' must return a table with named keys", path)
	}
	return tree, nil
}

// newSandbox builds an LState restricted for configuration use. The
// base, table, string, and math libraries are opened; file access,
// system access, and runtime code loading are unavailable.
func newSandbox() *glua.LState {
	state := glua.NewState(glua.Options{SkipOpenLibs: true})
	for _, lib := range []struct {
		name string
		open glua.LGFunction
	}{
		{glua.BaseLibName, glua.OpenBase},
		{glua.TabLibName, glua.OpenTable},
		{glua.StringLibName, glua.OpenString},
		{glua.MathLibName, glua.OpenMath},
	} {
		state.Push(state.NewFunction(lib.open))
		state.Push(glua.LString(lib.name))
		state.Call(1, 0)
	}
	for _, name := range []string{"dofile", "loadfile", "load", "loadstring"} {
		state.SetGlobal(name, glua.LNil)
	}
	return state
}

// fromValue converts a Lua value to its Go configuration equivalent.
// Numbers become int64 when integral and float64 otherwise; anything
// without a Go counterpart falls back to its string form.
func fromValue(v glua.LValue) any {
	switch t := v.(type) {
	case *glua.LNilType:
		return nil
	case glua.LBool:
		return bool(t)
	case glua.LNumber:
		f := float64(t)
		if f == math.Trunc(f) && f >= math.MinInt64 && f <= math.MaxInt64 {
			return int64(f)
		}
		return f
	case glua.LString:
		return string(t)
	case *glua.LTable:
		return fromTable(t)
	}
	return v.String()
}

// fromTable converts a table to a sequence when its keys are exactly
// the contiguous integers from 1, and to a string-keyed tree
// otherwise.
func fromTable(t *glua.LTable) any {
	maxN := t.MaxN()
	total := 0
	t.ForEach(func(_, _ glua.LValue) { total++ })
	if maxN > 0 && maxN == total {
		seq := make([]any, 0, maxN)
		for i := 1; i <= maxN; i++ {
			seq = append(seq, fromValue(t.RawGetInt(i)))
		}
		return seq
	}
	tree := make(map[string]any, total)
	t.ForEach(func(k, v glua.LValue) {
		tree[k.String()] = fromValue(v)
	})
	return tree
}
