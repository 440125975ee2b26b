// Package luafilter compiles a small Lua expression into a file-name
// predicate. The script sees the globals name (base name) and ext (the
// extension including its dot) and must return a boolean.
package luafilter

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	lua "github.com/yuin/gopher-lua"
	"github.com/yuin/gopher-lua/parse"
)

// DefaultTimeout bounds a single evaluation.
const DefaultTimeout = 200 * time.Millisecond

// Filter is a compiled predicate. The compiled proto is shared; each call
// runs in its own LState so Match is safe for concurrent use.
type Filter struct {
	proto   *lua.FunctionProto
	timeout time.Duration
}

// Compile parses code once. Code that parses as an expression is wrapped as
// `return (<code>)`; anything else is compiled as a chunk.
func Compile(code string, timeout time.Duration) (*Filter, error) {
	if strings.TrimSpace(code) == "" {
		return nil, fmt.Errorf("lua filter: empty script")
	}
	chunk, err := parse.Parse(strings.NewReader("return (\n"+code+"\n)"), "filter")
	if err != nil {
		chunk, err = parse.Parse(strings.NewReader(code), "filter")
	}
	if err != nil {
		return nil, fmt.Errorf("lua filter: %v", err)
	}
	proto, err := lua.Compile(chunk, "filter")
	if err != nil {
		return nil, fmt.Errorf("lua filter: %v", err)
	}
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Filter{proto: proto, timeout: timeout}, nil
}

// Match evaluates the script for one file name.
func (f *Filter) Match(name string) (bool, error) {
	L := newSandboxState()
	defer L.Close()

	ctx, cancel := context.WithTimeout(context.Background(), f.timeout)
	defer cancel()
	L.SetContext(ctx)

	L.SetGlobal("name", lua.LString(name))
	L.SetGlobal("ext", lua.LString(filepath.Ext(name)))
	L.Push(L.NewFunctionFromProto(f.proto))
	if err := L.PCall(0, 1, nil); err != nil {
		if ctx.Err() != nil {
			return false, fmt.Errorf("lua filter: %s: timeout", name)
		}
		return false, fmt.Errorf("lua filter: %s: %v", name, err)
	}
	ret := L.Get(-1)
	L.Pop(1)
	if ret.Type() != lua.LTBool {
		return false, fmt.Errorf("lua filter: %s: expected boolean, got %s", name, ret.Type())
	}
	return lua.LVAsBool(ret), nil
}

// Predicate adapts f to a plain name predicate. Script failures reject the
// name and are logged at warn level.
func (f *Filter) Predicate(log *logrus.Entry) func(string) bool {
	return func(name string) bool {
		ok, err := f.Match(name)
		if err != nil {
			if log != nil {
				log.WithError(err).WithField("name", name).Warn("Lua filter rejected file")
			}
			return false
		}
		return ok
	}
}

// newSandboxState opens only the base, string, table and math libraries.
func newSandboxState() *lua.LState {
	L := lua.NewState(lua.Options{SkipOpenLibs: true})
	openLib := func(name string, fn lua.LGFunction) {
		L.Push(L.NewFunction(fn))
		L.Push(lua.LString(name))
		L.Call(1, 0)
	}
	openLib(lua.BaseLibName, lua.OpenBase)
	openLib(lua.StringLibName, lua.OpenString)
	openLib(lua.TabLibName, lua.OpenTable)
	openLib(lua.MathLibName, lua.OpenMath)
	return L
}
