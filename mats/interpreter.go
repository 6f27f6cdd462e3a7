package mats

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
)

// Config controls checking and execution bounds.
type Config struct {
	// MaxDepth bounds statement and expression nesting in the parser,
	// checker and interpreter. Zero means 1000.
	MaxDepth int
	// StepQuota bounds executed statements per run. Zero means unlimited.
	StepQuota int
	// Stdout receives print output. Nil means os.Stdout.
	Stdout io.Writer
	// Logger receives debug records about each pipeline stage. Nil discards.
	Logger *slog.Logger
}

// Engine parses, checks and runs MatScript programs. It holds no per-run
// state and may be reused.
type Engine struct {
	config Config
	logger *slog.Logger
}

// Result describes how a run ended. ExitCode is meaningful when Returned.
type Result struct {
	Returned bool
	ExitCode int
}

// NewEngine constructs an Engine, filling in defaults for zero fields.
func NewEngine(cfg Config) (*Engine, error) {
	if cfg.MaxDepth < 0 {
		return nil, fmt.Errorf("max depth must be non-negative, got %d", cfg.MaxDepth)
	}
	if cfg.StepQuota < 0 {
		return nil, fmt.Errorf("step quota must be non-negative, got %d", cfg.StepQuota)
	}
	if cfg.MaxDepth == 0 {
		cfg.MaxDepth = defaultMaxDepth
	}
	if cfg.Stdout == nil {
		cfg.Stdout = os.Stdout
	}
	if cfg.Logger == nil {
		cfg.Logger = slog.New(slog.DiscardHandler)
	}
	return &Engine{config: cfg, logger: cfg.Logger}, nil
}

// MustNewEngine constructs an Engine or panics when cfg is invalid.
func MustNewEngine(cfg Config) *Engine {
	engine, err := NewEngine(cfg)
	if err != nil {
		panic(err)
	}
	return engine
}

func (e *Engine) Config() Config {
	return e.config
}

// Parse parses source into a program tree. All syntax errors are returned
// together, each as a *ParseError.
func (e *Engine) Parse(source string) (*Statements, error) {
	p := newParser(source, e.config.MaxDepth)
	program, errs := p.ParseProgram()
	if len(errs) > 0 {
		e.logger.Debug("parse failed", "errors", len(errs))
		return nil, errors.Join(errs...)
	}
	e.logger.Debug("parse complete", "statements", len(program.List))
	return program, nil
}

// Check runs the static checker over prog with a fresh global scope.
func (e *Engine) Check(prog *Statements) []Diagnostic {
	diags := NewChecker(e.config.MaxDepth).Check(prog)
	e.logger.Debug("check complete", "diagnostics", len(diags))
	return diags
}

// Run executes prog in a fresh global scope. Callers are expected to have
// checked prog first; faults the checker would have caught surface as
// *RuntimeError values.
func (e *Engine) Run(ctx context.Context, prog *Statements) (Result, error) {
	return e.run(ctx, prog, NewEnv[Value](), "")
}

// Diagnose parses and checks source without running it. Syntax errors are
// reported alone since the checker needs a complete tree.
func (e *Engine) Diagnose(source string) []Diagnostic {
	prog, err := e.Parse(source)
	if err != nil {
		return ParseDiagnostics(err)
	}
	return e.Check(prog)
}

// Exec parses, checks and runs source. It stops before running when the
// checker reports diagnostics.
func (e *Engine) Exec(ctx context.Context, source string) (Result, []Diagnostic, error) {
	prog, err := e.Parse(source)
	if err != nil {
		return Result{}, nil, err
	}
	if diags := e.Check(prog); len(diags) > 0 {
		return Result{}, diags, nil
	}
	result, err := e.run(ctx, prog, NewEnv[Value](), source)
	return result, nil, err
}

func (e *Engine) newExecution(ctx context.Context, source string) *Execution {
	if ctx == nil {
		ctx = context.Background()
	}
	return &Execution{
		ctx:      ctx,
		out:      e.config.Stdout,
		source:   source,
		quota:    e.config.StepQuota,
		maxDepth: e.config.MaxDepth,
	}
}

func (e *Engine) run(ctx context.Context, prog *Statements, env *Env[Value], source string) (Result, error) {
	if prog == nil {
		return Result{}, errors.New("run: nil program")
	}
	exec := e.newExecution(ctx, source)
	f, err := exec.runProgram(env, prog)
	if err != nil {
		e.logger.Debug("run failed", "steps", exec.steps, "error", err)
		return Result{}, err
	}
	result := Result{}
	if f.kind == flowReturn {
		result = Result{Returned: true, ExitCode: int(f.value.Int())}
	}
	e.logger.Debug("run complete", "steps", exec.steps, "returned", result.Returned, "exit_code", result.ExitCode)
	return result, nil
}
