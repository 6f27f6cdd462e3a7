package main

import (
	"strings"
	"testing"

	"github.com/mgomes/matscript/mats"
)

func lintSource(t *testing.T, source string) []lintWarning {
	t.Helper()
	prog, err := mats.MustNewEngine(mats.Config{}).Parse(source)
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	return lintProgram(prog)
}

func TestLintFindsUnreachableStatements(t *testing.T) {
	warnings := lintSource(t, `for i = 0:3 {
  break;
  print i;
}
if 1 == 1 { return 1; } else { return 2; }
print "never";
`)
	if len(warnings) != 2 {
		t.Fatalf("expected 2 warnings, got %#v", warnings)
	}
	if warnings[0].Line != 3 || warnings[0].Column != 3 {
		t.Fatalf("unexpected first warning %#v", warnings[0])
	}
	if warnings[1].Line != 6 || warnings[1].Message != "unreachable statement" {
		t.Fatalf("unexpected second warning %#v", warnings[1])
	}
}

func TestLintIgnoresPartialTermination(t *testing.T) {
	warnings := lintSource(t, `x = 0;
while x < 3 { x += 1; if x == 2 { continue; } print x; }
if x > 1 { return 1; }
print x;
`)
	if len(warnings) != 0 {
		t.Fatalf("expected no warnings, got %#v", warnings)
	}
}

func TestCheckCommandPrintsWarningsWithoutFailing(t *testing.T) {
	scriptPath := writeScript(t, "return 0;\nprint 1;\n")

	out, err := captureStdout(t, func() error {
		return checkCommand([]string{scriptPath})
	})
	if err != nil {
		t.Fatalf("warnings should not fail the check: %v", err)
	}
	if !strings.Contains(out, scriptPath+":2:1: warning: unreachable statement") {
		t.Fatalf("missing warning in %q", out)
	}
}

func TestDiagnosticsForSourceIncludesWarnings(t *testing.T) {
	engine := mats.MustNewEngine(mats.Config{})
	diags := diagnosticsForSource(engine, "return 0;\nprint 1;\n")
	if len(diags) != 1 {
		t.Fatalf("expected one diagnostic, got %d", len(diags))
	}
	if diags[0]["severity"] != lspSeverityWarning {
		t.Fatalf("expected warning severity, got %#v", diags[0]["severity"])
	}
}
