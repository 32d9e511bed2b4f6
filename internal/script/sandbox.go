package script

import (
	"strings"

	lua "github.com/yuin/gopher-lua"

	"github.com/dshills/bindkit/internal/logging"
)

// unsafeGlobals load code from files or strings at run time.
var unsafeGlobals = []string{"dofile", "loadfile", "load", "loadstring", "require", "module"}

// sandbox removes code-loading globals and routes print to the logger.
func sandbox(l *lua.LState, logger *logging.Logger) {
	for _, name := range unsafeGlobals {
		l.SetGlobal(name, lua.LNil)
	}

	l.SetGlobal("print", l.NewFunction(func(L *lua.LState) int {
		parts := make([]string, L.GetTop())
		for i := range parts {
			parts[i] = L.ToStringMeta(L.Get(i + 1)).String()
		}
		logger.Info("%s", strings.Join(parts, "\t"))
		return 0
	}))
}
