package scripting

import (
	"fmt"
	"os"
	"path/filepath"

	lua "github.com/yuin/gopher-lua"
	"go.uber.org/zap"
)

// Engine wraps a single gopher-lua VM.
// Single-goroutine access only (host loop).
type Engine struct {
	vm  *lua.LState
	log *zap.Logger
}

// NewEngine creates a Lua engine and loads all scripts from the given
// directory: core/ first, then the directory itself, then systems/.
// Missing directories are skipped.
func NewEngine(scriptsDir string, log *zap.Logger) (*Engine, error) {
	if log == nil {
		log = zap.NewNop()
	}
	vm := lua.NewState(lua.Options{
		SkipOpenLibs: false,
	})
	vm.SetGlobal("API_VERSION", lua.LNumber(1))

	e := &Engine{vm: vm, log: log}
	if scriptsDir == "" {
		return e, nil
	}
	for _, dir := range []string{
		filepath.Join(scriptsDir, "core"),
		scriptsDir,
		filepath.Join(scriptsDir, "systems"),
	} {
		if err := e.loadDir(dir); err != nil {
			vm.Close()
			return nil, fmt.Errorf("load scripts from %s: %w", dir, err)
		}
	}
	return e, nil
}

// loadDir loads all .lua files in a directory.
func (e *Engine) loadDir(dir string) error {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil // skip missing dirs
		}
		return err
	}
	for _, entry := range entries {
		if entry.IsDir() || filepath.Ext(entry.Name()) != ".lua" {
			continue
		}
		path := filepath.Join(dir, entry.Name())
		if err := e.vm.DoFile(path); err != nil {
			return fmt.Errorf("load %s: %w", path, err)
		}
		e.log.Debug("loaded lua script", zap.String("file", path))
	}
	return nil
}

// DoString runs a chunk of Lua source in the engine's VM.
func (e *Engine) DoString(src string) error {
	return e.vm.DoString(src)
}

// HasHook reports whether a global Lua function with the given name exists.
func (e *Engine) HasHook(name string) bool {
	return e.vm.GetGlobal(name).Type() == lua.LTFunction
}

// CallHook calls the global Lua function name with args. A missing hook is
// not an error.
func (e *Engine) CallHook(name string, args ...lua.LValue) error {
	fn := e.vm.GetGlobal(name)
	if fn.Type() != lua.LTFunction {
		return nil
	}
	if err := e.vm.CallByParam(lua.P{
		Fn:      fn,
		NRet:    0,
		Protect: true,
	}, args...); err != nil {
		return fmt.Errorf("lua %s: %w", name, err)
	}
	return nil
}

// Global returns a global Lua value, mainly for inspecting script state.
func (e *Engine) Global(name string) lua.LValue {
	return e.vm.GetGlobal(name)
}

func (e *Engine) Close() {
	e.vm.Close()
}
