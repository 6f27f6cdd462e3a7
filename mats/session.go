package mats

import (
	"context"
	"errors"
)

// Session keeps global bindings alive across evaluations, for interactive
// use. It is not safe for concurrent use.
type Session struct {
	engine *Engine
	types  *Env[Type]
	values *Env[Value]
}

func (e *Engine) NewSession() *Session {
	return &Session{engine: e, types: NewEnv[Type](), values: NewEnv[Value]()}
}

// Eval parses, checks and runs source against the session's globals. When
// the checker reports diagnostics nothing runs and no binding changes.
func (s *Session) Eval(ctx context.Context, source string) (Result, []Diagnostic, error) {
	prog, err := s.engine.Parse(source)
	if err != nil {
		return Result{}, nil, err
	}

	diags := newSessionChecker(s.types, s.engine.config.MaxDepth).Check(prog)
	if len(diags) > 0 {
		s.syncTypes()
		return Result{}, diags, nil
	}

	result, err := s.engine.run(ctx, prog, s.values, source)
	s.values.Reset()
	s.syncTypes()
	return result, nil, err
}

// syncTypes rebuilds the checker's globals from the runtime bindings, which
// are the ground truth after a run that stopped part way.
func (s *Session) syncTypes() {
	s.types = NewEnv[Type]()
	for _, name := range s.values.Names() {
		v, _ := s.values.Lookup(name)
		s.types.Bind(name, typeOfValue(v))
	}
}

// Names lists the session's global bindings.
func (s *Session) Names() []string {
	return s.values.Names()
}

func (s *Session) Lookup(name string) (Value, bool) {
	return s.values.Lookup(name)
}

// Reset forgets every binding.
func (s *Session) Reset() {
	s.types = NewEnv[Type]()
	s.values = NewEnv[Value]()
}

// IsIncomplete reports whether err came from input that ended early, such as
// an unclosed block, so an interactive reader can ask for more lines.
func IsIncomplete(err error) bool {
	var joined interface{ Unwrap() []error }
	if errors.As(err, &joined) {
		for _, inner := range joined.Unwrap() {
			if IsIncomplete(inner) {
				return true
			}
		}
		return false
	}
	var pe *ParseError
	return errors.As(err, &pe) && pe.atEOF
}
