package scripting

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/l1jgo/gameworld/internal/core/ecs"
	"github.com/l1jgo/gameworld/internal/data"
	"github.com/l1jgo/gameworld/internal/pool"
	"github.com/l1jgo/gameworld/internal/world"
	lua "github.com/yuin/gopher-lua"
	"go.uber.org/zap"
)

// APIVersion is exposed to scripts as API_VERSION.
const APIVersion = 1

// Engine wraps a single gopher-lua VM that drives a World.
// Single-goroutine access only (game loop).
type Engine struct {
	vm      *lua.LState
	log     *zap.Logger
	world   *world.World
	prefabs *data.PrefabTable
	pools   map[string]*pool.Pool
}

// NewEngine creates a Lua VM bound to w. Scripts see entities as
// (id, version) pairs; destroy is deferred to the world's next flush.
func NewEngine(w *world.World, prefabs *data.PrefabTable, log *zap.Logger) *Engine {
	if log == nil {
		log = zap.NewNop()
	}
	vm := lua.NewState(lua.Options{
		SkipOpenLibs: false,
	})
	e := &Engine{
		vm:      vm,
		log:     log,
		world:   w,
		prefabs: prefabs,
		pools:   make(map[string]*pool.Pool),
	}

	vm.SetGlobal("API_VERSION", lua.LNumber(APIVersion))
	vm.SetGlobal("spawn", vm.NewFunction(e.luaSpawn))
	vm.SetGlobal("acquire", vm.NewFunction(e.luaAcquire))
	vm.SetGlobal("destroy", vm.NewFunction(e.luaDestroy))
	vm.SetGlobal("alive", vm.NewFunction(e.luaAlive))
	vm.SetGlobal("set_active", vm.NewFunction(e.luaSetActive))
	vm.SetGlobal("count", vm.NewFunction(e.luaCount))
	vm.SetGlobal("log", vm.NewFunction(e.luaLog))
	return e
}

// AddPool makes p reachable from scripts via acquire(name).
func (e *Engine) AddPool(p *pool.Pool) {
	e.pools[p.Name()] = p
}

// LoadDir runs every .lua file in dir in name order. A missing dir is not an
// error.
func (e *Engine) LoadDir(dir string) error {
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

// DoString runs a chunk of Lua source.
func (e *Engine) DoString(src string) error {
	return e.vm.DoString(src)
}

// HasTick reports whether scripts defined on_tick.
func (e *Engine) HasTick() bool {
	return e.vm.GetGlobal("on_tick") != lua.LNil
}

// Tick calls the global on_tick(dt) with dt in seconds. Scripts without an
// on_tick are skipped.
func (e *Engine) Tick(dt time.Duration) error {
	fn := e.vm.GetGlobal("on_tick")
	if fn == lua.LNil {
		return nil
	}
	if err := e.vm.CallByParam(lua.P{
		Fn:      fn,
		NRet:    0,
		Protect: true,
	}, lua.LNumber(dt.Seconds())); err != nil {
		return fmt.Errorf("lua on_tick: %w", err)
	}
	return nil
}

// Global reads a Lua global, mostly for tests and debugging.
func (e *Engine) Global(name string) lua.LValue {
	return e.vm.GetGlobal(name)
}

// Close shuts down the Lua VM.
func (e *Engine) Close() {
	e.vm.Close()
}

// --- Lua API ---

// pushHandle returns (id, version) to Lua.
func pushHandle(L *lua.LState, h ecs.EntityHandle) int {
	L.Push(lua.LNumber(h.ID()))
	L.Push(lua.LNumber(h.Version()))
	return 2
}

// pushError follows the Lua convention of returning nil, message.
func pushError(L *lua.LState, err error) int {
	L.Push(lua.LNil)
	L.Push(lua.LString(err.Error()))
	return 2
}

// checkHandle reads an (id, version) pair starting at argument n.
func checkHandle(L *lua.LState, n int) ecs.EntityHandle {
	id := L.CheckInt64(n)
	ver := L.CheckInt64(n + 1)
	if id < 0 || ver < 0 || id > int64(^uint32(0)) || ver > int64(^uint32(0)) {
		return ecs.NilHandle
	}
	return ecs.NewEntityHandle(ecs.EntityID(id), ecs.VersionID(ver))
}

// spawn(prefab) -> id, version | nil, err
func (e *Engine) luaSpawn(L *lua.LState) int {
	name := L.CheckString(1)
	if e.prefabs == nil {
		return pushError(L, fmt.Errorf("no prefab table loaded"))
	}
	obj, err := e.prefabs.Spawn(e.world, name)
	if err != nil {
		return pushError(L, err)
	}
	return pushHandle(L, obj.Handle())
}

// acquire(pool) -> id, version | nil, err
func (e *Engine) luaAcquire(L *lua.LState) int {
	name := L.CheckString(1)
	p, ok := e.pools[name]
	if !ok {
		return pushError(L, fmt.Errorf("unknown pool %q", name))
	}
	obj := p.Acquire()
	if !obj.IsValid() {
		return pushError(L, fmt.Errorf("pool %q produced no object", name))
	}
	return pushHandle(L, obj.Handle())
}

// destroy(id, version) -> bool. The entity stays alive until the world flushes.
func (e *Engine) luaDestroy(L *lua.LState) int {
	h := checkHandle(L, 1)
	if !e.world.Manager().IsValid(h) {
		L.Push(lua.LFalse)
		return 1
	}
	e.world.MarkForDestruction(h)
	L.Push(lua.LTrue)
	return 1
}

// alive(id, version) -> bool
func (e *Engine) luaAlive(L *lua.LState) int {
	h := checkHandle(L, 1)
	L.Push(lua.LBool(e.world.Manager().IsValid(h)))
	return 1
}

// set_active(id, version, active) -> bool
func (e *Engine) luaSetActive(L *lua.LState) int {
	h := checkHandle(L, 1)
	active := L.CheckBool(3)
	obj, ok := e.world.Find(h)
	if !ok {
		L.Push(lua.LFalse)
		return 1
	}
	obj.SetActive(active)
	L.Push(lua.LTrue)
	return 1
}

// count(component) -> int
func (e *Engine) luaCount(L *lua.LState) int {
	name := L.CheckString(1)
	if e.prefabs == nil {
		L.ArgError(1, "no component names registered")
		return 0
	}
	tid, ok := e.prefabs.Components().TypeID(name)
	if !ok {
		L.ArgError(1, fmt.Sprintf("unknown component %q", name))
		return 0
	}
	L.Push(lua.LNumber(e.world.Manager().Count(tid)))
	return 1
}

// log(msg)
func (e *Engine) luaLog(L *lua.LState) int {
	e.log.Info("lua", zap.String("msg", L.CheckString(1)))
	return 0
}
