package main

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/mgomes/matscript/mats"
)

func TestUpdateQuitCommandReturnsQuit(t *testing.T) {
	m := newREPLModel()
	m.textInput.SetValue(":quit")

	model, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	rm, ok := model.(replModel)
	if !ok {
		t.Fatalf("unexpected model type %T", model)
	}

	if !rm.quitting {
		t.Fatalf("quitting flag not set")
	}
	if rm.textInput.Value() != "" {
		t.Fatalf("input not cleared after quit command")
	}
	if cmd == nil {
		t.Fatalf("expected tea.Quit command")
	}
	if msg := cmd(); msg != nil {
		if _, ok := msg.(tea.QuitMsg); !ok {
			t.Fatalf("expected QuitMsg, got %T", msg)
		}
	}
}

func TestUpdateNonQuitCommandDoesNotReturnCmd(t *testing.T) {
	m := newREPLModel()
	m.textInput.SetValue(":help")

	model, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	rm := model.(replModel)

	if cmd != nil {
		t.Fatalf("expected no command for non-quit input")
	}
	if rm.quitting {
		t.Fatalf("quitting should remain false")
	}
	if !rm.showHelp {
		t.Fatalf("help toggle should be enabled")
	}
	if rm.textInput.Value() != "" {
		t.Fatalf("input not cleared after command")
	}
}

func TestUpdateEvaluatesAndKeepsBindings(t *testing.T) {
	m := newREPLModel()
	m = enterLine(t, m, "A = eye(2)")
	m = enterLine(t, m, "print A .+ A;")

	if len(m.history) != 2 {
		t.Fatalf("expected two history entries, got %d", len(m.history))
	}
	last := m.history[1]
	if last.isErr || last.output != "[[2,0],[0,2]]" {
		t.Fatalf("unexpected entry %#v", last)
	}
	if got := m.eval.bindings(); len(got) != 1 || got[0] != "A = [[1,0],[0,1]]" {
		t.Fatalf("unexpected bindings %v", got)
	}
}

func TestUpdateCollectsUnfinishedBlocks(t *testing.T) {
	m := newREPLModel()
	m = enterLine(t, m, "for i = 0:2 {")
	if len(m.history) != 0 || len(m.pending) != 1 {
		t.Fatalf("expected pending input, got history %d pending %d", len(m.history), len(m.pending))
	}
	if m.textInput.Prompt != promptCont {
		t.Fatalf("expected continuation prompt, got %q", m.textInput.Prompt)
	}

	m = enterLine(t, m, "print i; }")
	if len(m.pending) != 0 {
		t.Fatalf("pending input not cleared")
	}
	if len(m.history) != 1 || m.history[0].output != "0\n1" {
		t.Fatalf("unexpected history %#v", m.history)
	}
	if m.textInput.Prompt != promptMain {
		t.Fatalf("expected main prompt, got %q", m.textInput.Prompt)
	}
}

func TestEvaluateBareExpressionPrintsValue(t *testing.T) {
	eval := newREPLEvaluator()
	if output, isErr, _ := eval.eval("x = 2.5"); isErr || output != "" {
		t.Fatalf("unexpected assignment result %q", output)
	}
	output, isErr, _ := eval.eval("x * 2")
	if isErr || output != "5.0" {
		t.Fatalf("unexpected expression result %q (err %v)", output, isErr)
	}
}

func TestEvaluateDiagnosticsLeaveBindingsAlone(t *testing.T) {
	eval := newREPLEvaluator()
	eval.eval("a = 5;")

	output, isErr, _ := eval.eval(`a = "s" + 1;`)
	if !isErr || !strings.Contains(output, string(mats.TypeError)) {
		t.Fatalf("expected type error, got %q", output)
	}
	v, ok := eval.session.Lookup("a")
	if !ok || v.Int() != 5 {
		t.Fatalf("binding changed after rejected input: %v", v)
	}
}

func TestEvaluateReturnReportsExitCode(t *testing.T) {
	eval := newREPLEvaluator()
	output, isErr, _ := eval.eval("print 1; return 4;")
	if isErr || output != "1\nexit code 4" {
		t.Fatalf("unexpected output %q", output)
	}
}

func TestResetCommandClearsBindings(t *testing.T) {
	m := newREPLModel()
	m = enterLine(t, m, "n = 3;")
	m = enterLine(t, m, ":reset")
	if len(m.eval.bindings()) != 0 {
		t.Fatalf("expected no bindings after reset")
	}
}

func TestAutocompleteSingleMatch(t *testing.T) {
	m := newREPLModel()
	m = enterLine(t, m, "velocity = 1;")
	m.textInput.SetValue("print vel")

	model, _ := m.Update(tea.KeyMsg{Type: tea.KeyTab})
	rm := model.(replModel)
	if rm.textInput.Value() != "print velocity" {
		t.Fatalf("unexpected completion %q", rm.textInput.Value())
	}
}

func enterLine(t *testing.T, m replModel, line string) replModel {
	t.Helper()
	m.textInput.SetValue(line)
	model, _ := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	rm, ok := model.(replModel)
	if !ok {
		t.Fatalf("unexpected model type %T", model)
	}
	return rm
}
