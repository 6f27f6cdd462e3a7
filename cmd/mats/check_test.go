package main

import (
	"strings"
	"testing"

	"github.com/mgomes/matscript/mats"
	"gopkg.in/yaml.v3"
)

func TestCheckCommandCleanScript(t *testing.T) {
	scriptPath := writeScript(t, "A = eye(2);\nprint A .* A;\n")

	out, err := captureStdout(t, func() error {
		return checkCommand([]string{scriptPath})
	})
	if err != nil {
		t.Fatalf("checkCommand failed: %v", err)
	}
	if strings.TrimSpace(out) != "No issues found" {
		t.Fatalf("unexpected stdout: %q", out)
	}
}

func TestCheckCommandReportsDiagnostics(t *testing.T) {
	scriptPath := writeScript(t, "x = 1;\ny = \"a\" + x;\nbreak;\n")

	out, err := captureStdout(t, func() error {
		return checkCommand([]string{scriptPath})
	})
	if err == nil || !strings.Contains(err.Error(), "check found 2 issue(s)") {
		t.Fatalf("expected 2 issues, got %v", err)
	}
	lines := strings.Split(strings.TrimSpace(out), "\n")
	if len(lines) != 2 {
		t.Fatalf("expected 2 lines, got %q", out)
	}
	if !strings.HasPrefix(lines[0], scriptPath+":2:") || !strings.Contains(lines[0], "TypeError:") {
		t.Fatalf("unexpected first diagnostic: %q", lines[0])
	}
	if !strings.HasPrefix(lines[1], scriptPath+":3:1: ScopeError:") {
		t.Fatalf("unexpected second diagnostic: %q", lines[1])
	}
}

func TestCheckCommandYAMLFormat(t *testing.T) {
	scriptPath := writeScript(t, "x = ;\n")

	out, err := captureStdout(t, func() error {
		return checkCommand([]string{"-format", "yaml", scriptPath})
	})
	if err == nil {
		t.Fatalf("expected syntax error to fail the check")
	}

	var report checkReport
	if err := yaml.Unmarshal([]byte(out), &report); err != nil {
		t.Fatalf("decode report: %v\n%s", err, out)
	}
	if report.File != scriptPath {
		t.Fatalf("unexpected file %q", report.File)
	}
	if len(report.Diagnostics) != 1 {
		t.Fatalf("expected one diagnostic, got %#v", report.Diagnostics)
	}
	if report.Diagnostics[0].Kind != mats.SyntaxError || report.Diagnostics[0].Line != 1 {
		t.Fatalf("unexpected diagnostic %#v", report.Diagnostics[0])
	}
}

func TestCheckCommandRejectsUnknownFormat(t *testing.T) {
	scriptPath := writeScript(t, "print 1;\n")
	err := checkCommand([]string{"-format", "json", scriptPath})
	if err == nil || !strings.Contains(err.Error(), "unknown format") {
		t.Fatalf("expected unknown format error, got %v", err)
	}
}

func TestPrintDiagnosticsClampsPositions(t *testing.T) {
	var b strings.Builder
	printDiagnostics(&b, "f.mats", []mats.Diagnostic{{Kind: mats.NameError, Message: "name 'y' is not defined"}}, false)
	if got := b.String(); got != "f.mats:1:1: NameError: name 'y' is not defined\n" {
		t.Fatalf("unexpected output %q", got)
	}
}

func TestASTCommandPrintsTree(t *testing.T) {
	scriptPath := writeScript(t, "x = 1 + 2;\n")

	out, err := captureStdout(t, func() error {
		return astCommand([]string{scriptPath})
	})
	if err != nil {
		t.Fatalf("astCommand failed: %v", err)
	}
	want := "=\n|  x\n|  +\n|  |  1\n|  |  2\n"
	if out != want {
		t.Fatalf("unexpected tree:\n%s", out)
	}
}

func TestASTCommandReportsParseErrors(t *testing.T) {
	scriptPath := writeScript(t, "x = (1;\n")
	err := astCommand([]string{scriptPath})
	if err == nil || !strings.Contains(err.Error(), "parse failed") {
		t.Fatalf("expected parse failure, got %v", err)
	}
}
