package main

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/mgomes/matscript/mats"
)

// replEvaluator feeds interactive input through a session and collects what
// the program printed.
type replEvaluator struct {
	engine  *mats.Engine
	session *mats.Session
	out     *bytes.Buffer
}

func newREPLEvaluator() *replEvaluator {
	out := new(bytes.Buffer)
	engine := mats.MustNewEngine(mats.Config{Stdout: out})
	return &replEvaluator{engine: engine, session: engine.NewSession(), out: out}
}

// source turns one line of input into a program. A missing trailing
// semicolon is supplied, and a bare expression is printed.
func (e *replEvaluator) source(input string) (string, error) {
	src := strings.TrimSpace(input)
	if !strings.HasSuffix(src, ";") && !strings.HasSuffix(src, "}") && !strings.HasSuffix(src, "{") {
		src += ";"
	}
	_, err := e.engine.Parse(src)
	if err == nil {
		return src, nil
	}
	if mats.IsIncomplete(err) {
		return "", err
	}
	if _, printErr := e.engine.Parse("print " + src); printErr == nil {
		return "print " + src, nil
	}
	return "", err
}

// eval runs input. incomplete reports that the input ended inside a block
// and the caller should ask for more lines.
func (e *replEvaluator) eval(input string) (output string, isErr, incomplete bool) {
	src, err := e.source(input)
	if err != nil {
		if mats.IsIncomplete(err) {
			return "", false, true
		}
		return err.Error(), true, false
	}

	e.out.Reset()
	result, diags, err := e.session.Eval(context.Background(), src)
	printed := strings.TrimRight(e.out.String(), "\n")
	switch {
	case len(diags) > 0:
		lines := make([]string, len(diags))
		for i, d := range diags {
			lines[i] = d.String()
		}
		return strings.Join(lines, "\n"), true, false
	case err != nil:
		return joinOutput(printed, err.Error()), true, false
	case result.Returned:
		return joinOutput(printed, fmt.Sprintf("exit code %d", result.ExitCode)), false, false
	default:
		return printed, false, false
	}
}

func (e *replEvaluator) reset() {
	e.session.Reset()
}

// completions lists keywords and bound names starting with prefix.
func (e *replEvaluator) completions(prefix string) []string {
	var out []string
	for _, k := range mats.Keywords {
		if strings.HasPrefix(k, prefix) {
			out = append(out, k)
		}
	}
	for _, name := range e.session.Names() {
		if strings.HasPrefix(name, prefix) {
			out = append(out, name)
		}
	}
	return out
}

// bindings renders each global as "name = value" in name order.
func (e *replEvaluator) bindings() []string {
	names := e.session.Names()
	out := make([]string, 0, len(names))
	for _, name := range names {
		v, _ := e.session.Lookup(name)
		out = append(out, fmt.Sprintf("%s = %s", name, v))
	}
	return out
}

func joinOutput(printed, tail string) string {
	if printed == "" {
		return tail
	}
	return printed + "\n" + tail
}
