package script

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	lua "github.com/yuin/gopher-lua"

	"github.com/dshills/bindkit/internal/logging"
	"github.com/dshills/bindkit/internal/suppress"
)

// DefaultTimeout bounds a single call.
const DefaultTimeout = time.Second

// State wraps a sandboxed Lua interpreter.
type State struct {
	mu      sync.Mutex
	l       *lua.LState
	timeout time.Duration
	logger  *logging.Logger
	closed  bool

	// host is open while a script runs Go code, such as a getter reached
	// through a wrapped value
	host suppress.Suppressor
}

// Option configures a State.
type Option func(*State)

// WithTimeout sets the maximum duration of a single call. Zero or negative
// values disable the limit.
func WithTimeout(d time.Duration) Option {
	return func(s *State) {
		s.timeout = d
	}
}

// WithLogger sets the logger receiving Lua print output.
func WithLogger(l *logging.Logger) Option {
	return func(s *State) {
		if l != nil {
			s.logger = l
		}
	}
}

// NewState creates a sandboxed state.
func NewState(opts ...Option) *State {
	s := &State{
		timeout: DefaultTimeout,
		logger:  logging.Nop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.logger = s.logger.WithComponent("script")

	s.l = lua.NewState(lua.Options{SkipOpenLibs: true})
	for _, open := range []lua.LGFunction{lua.OpenBase, lua.OpenTable, lua.OpenString, lua.OpenMath} {
		open(s.l)
	}
	s.l.SetTop(0)
	sandbox(s.l, s.logger)
	registerObjects(s.l, &s.host)
	return s
}

// DoString runs a chunk for its side effects, such as defining globals.
func (s *State) DoString(code string) error {
	if err := s.lock(); err != nil {
		return err
	}
	defer s.mu.Unlock()

	return s.protect(func() error {
		return s.l.DoString(code)
	})
}

// Compile runs a chunk that returns a function and wraps that function.
//
//	return function(a, b) return a.name < b.name end
func (s *State) Compile(code string) (*Func, error) {
	if err := s.lock(); err != nil {
		return nil, err
	}
	defer s.mu.Unlock()

	fn, err := s.l.LoadString(code)
	if err != nil {
		return nil, err
	}
	var ret lua.LValue
	err = s.protect(func() error {
		if err := s.l.CallByParam(lua.P{Fn: fn, NRet: 1, Protect: true}); err != nil {
			return err
		}
		ret = s.l.Get(-1)
		s.l.Pop(1)
		return nil
	})
	if err != nil {
		return nil, err
	}

	f, ok := ret.(*lua.LFunction)
	if !ok {
		return nil, fmt.Errorf("%w (got %s)", ErrNotFunction, ret.Type())
	}
	return &Func{state: s, fn: f, source: code}, nil
}

// Expression compiles a single expression over the named parameters.
func (s *State) Expression(expr string, params ...string) (*Func, error) {
	return s.Compile(fmt.Sprintf("return function(%s) return %s end", strings.Join(params, ", "), expr))
}

// Global returns a global function defined by an earlier DoString.
func (s *State) Global(name string) (*Func, error) {
	if err := s.lock(); err != nil {
		return nil, err
	}
	defer s.mu.Unlock()
	f, ok := s.l.GetGlobal(name).(*lua.LFunction)
	if !ok {
		return nil, fmt.Errorf("%w: global %q", ErrNotFunction, name)
	}
	return &Func{state: s, fn: f, source: name}, nil
}

// Close releases the interpreter. It fails with ErrReentered when called
// from Go code run by one of the state's scripts.
func (s *State) Close() error {
	if s.host.Active() {
		return ErrReentered
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return nil
	}
	s.closed = true
	s.l.Close()
	return nil
}

// call invokes fn with args converted to Lua values and returns its first
// result converted back to Go.
func (s *State) call(fn *lua.LFunction, args ...any) (any, error) {
	if err := s.lock(); err != nil {
		return nil, err
	}
	defer s.mu.Unlock()

	values := make([]lua.LValue, len(args))
	for i, arg := range args {
		values[i] = toLua(s.l, arg)
	}

	var result any
	err := s.protect(func() error {
		if err := s.l.CallByParam(lua.P{Fn: fn, NRet: 1, Protect: true}, values...); err != nil {
			return err
		}
		result = toGo(s.l.Get(-1))
		s.l.Pop(1)
		return nil
	})
	return result, err
}

// lock acquires the interpreter. Go code reached from a running script
// holds the interpreter already, so it gets ErrReentered instead of
// waiting forever.
func (s *State) lock() error {
	if s.host.Active() {
		return ErrReentered
	}
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return ErrClosed
	}
	return nil
}

// protect runs fn under the call timeout and converts panics and
// cancellation into errors.
func (s *State) protect(fn func() error) (err error) {
	ctx := context.Background()
	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}
	s.l.SetContext(ctx)
	defer s.l.RemoveContext()

	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("lua panic: %v", r)
		}
		if err != nil && errors.Is(ctx.Err(), context.DeadlineExceeded) {
			err = fmt.Errorf("%w after %s", ErrTimeout, s.timeout)
		}
	}()
	return fn()
}
