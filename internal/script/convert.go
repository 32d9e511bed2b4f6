package script

import (
	"fmt"
	"reflect"

	lua "github.com/yuin/gopher-lua"

	"github.com/dshills/bindkit/internal/paths"
	"github.com/dshills/bindkit/internal/suppress"
)

// objectType names the metatable of wrapped Go values.
const objectType = "bindkit.object"

// toLua converts a Go value for use in Lua.
func toLua(l *lua.LState, v any) lua.LValue {
	switch x := v.(type) {
	case nil:
		return lua.LNil
	case lua.LValue:
		return x
	case bool:
		return lua.LBool(x)
	case string:
		return lua.LString(x)
	case int:
		return lua.LNumber(x)
	case int64:
		return lua.LNumber(x)
	case float64:
		return lua.LNumber(x)
	case map[string]any:
		t := l.NewTable()
		for k, item := range x {
			t.RawSetString(k, toLua(l, item))
		}
		return t
	}

	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return lua.LNumber(rv.Int())
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return lua.LNumber(rv.Uint())
	case reflect.Float32:
		return lua.LNumber(rv.Float())
	case reflect.String:
		return lua.LString(rv.String())
	case reflect.Bool:
		return lua.LBool(rv.Bool())
	case reflect.Slice, reflect.Array:
		t := l.CreateTable(rv.Len(), 0)
		for i := 0; i < rv.Len(); i++ {
			t.RawSetInt(i+1, toLua(l, rv.Index(i).Interface()))
		}
		return t
	}
	return wrap(l, v)
}

// wrap exposes v as a read-only userdata whose fields resolve through the
// paths package.
func wrap(l *lua.LState, v any) lua.LValue {
	ud := l.NewUserData()
	ud.Value = v
	l.SetMetatable(ud, objectMetatable(l))
	return ud
}

func objectMetatable(l *lua.LState) lua.LValue {
	return l.GetTypeMetatable(objectType)
}

// registerObjects installs the metatable of wrapped values. host is open
// while field resolution runs Go code.
func registerObjects(l *lua.LState, host *suppress.Suppressor) {
	mt := l.NewTypeMetatable(objectType)
	l.SetField(mt, "__index", l.NewFunction(func(L *lua.LState) int {
		ud := L.CheckUserData(1)
		name := L.CheckString(2)
		v, err := resolveField(host, ud.Value, name)
		if err != nil {
			L.RaiseError("%v", err)
			return 0
		}
		L.Push(toLua(L, v))
		return 1
	}))
	l.SetField(mt, "__newindex", l.NewFunction(func(L *lua.LState) int {
		L.RaiseError("%s is read-only", objectType)
		return 0
	}))
	l.SetField(mt, "__tostring", l.NewFunction(func(L *lua.LState) int {
		L.Push(lua.LString(fmt.Sprint(L.CheckUserData(1).Value)))
		return 1
	}))
}

func resolveField(host *suppress.Suppressor, obj any, name string) (any, error) {
	h := host.Open()
	defer h.Close()
	return paths.Get(obj, name)
}

// toGo converts a Lua value back to Go. Integral numbers become int.
func toGo(lv lua.LValue) any {
	return toGoVisited(lv, map[*lua.LTable]bool{})
}

func toGoVisited(lv lua.LValue, visited map[*lua.LTable]bool) any {
	switch v := lv.(type) {
	case lua.LBool:
		return bool(v)
	case lua.LNumber:
		f := float64(v)
		if f == float64(int(f)) {
			return int(f)
		}
		return f
	case lua.LString:
		return string(v)
	case *lua.LUserData:
		return v.Value
	case *lua.LTable:
		if visited[v] {
			return nil
		}
		visited[v] = true
		return tableToGo(v, visited)
	default:
		return nil
	}
}

// tableToGo returns a []any for sequences and a map[string]any otherwise.
func tableToGo(t *lua.LTable, visited map[*lua.LTable]bool) any {
	n := t.Len()
	count := 0
	t.ForEach(func(_, _ lua.LValue) { count++ })

	if n > 0 && n == count {
		items := make([]any, n)
		for i := 1; i <= n; i++ {
			items[i-1] = toGoVisited(t.RawGetInt(i), visited)
		}
		return items
	}

	m := make(map[string]any, count)
	t.ForEach(func(k, v lua.LValue) {
		m[k.String()] = toGoVisited(v, visited)
	})
	return m
}
