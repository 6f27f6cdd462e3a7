package main

import (
	"bytes"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestRunCLIHelp(t *testing.T) {
	if err := runCLI([]string{"mats", "help"}); err != nil {
		t.Fatalf("runCLI help failed: %v", err)
	}
}

func TestRunCLIInvalidCommand(t *testing.T) {
	err := runCLI([]string{"mats", "unknown"})
	if err == nil {
		t.Fatalf("expected invalid command error")
	}
	if !strings.Contains(err.Error(), "invalid command") {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestRunCLIWithoutCommand(t *testing.T) {
	err := runCLI([]string{"mats"})
	if err == nil {
		t.Fatalf("expected invalid command error")
	}
	if !strings.Contains(err.Error(), "invalid command") {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestRunCommandRequiresScript(t *testing.T) {
	err := runCommand(nil)
	if err == nil || !strings.Contains(err.Error(), "script path required") {
		t.Fatalf("expected missing script error, got %v", err)
	}
}

func TestRunCommandPrintsOutputAndSummary(t *testing.T) {
	scriptPath := writeScript(t, `A = [1, 2; 3, 4];
print A';
for i = 0:2 { print i; }
`)

	out, err := captureStdout(t, func() error {
		return runCommand([]string{scriptPath})
	})
	if err != nil {
		t.Fatalf("runCommand failed: %v", err)
	}
	want := "[[1,3],[2,4]]\n0\n1\nNo return statement found during interpretation\n"
	if out != want {
		t.Fatalf("unexpected stdout:\n%s", out)
	}
}

func TestRunCommandReturnBecomesExitCode(t *testing.T) {
	scriptPath := writeScript(t, "print 1;\nreturn 3;\n")

	out, err := captureStdout(t, func() error {
		return runCommand([]string{scriptPath})
	})
	var exit *exitError
	if !errors.As(err, &exit) {
		t.Fatalf("expected exit error, got %v", err)
	}
	if exit.code != 3 {
		t.Fatalf("expected exit code 3, got %d", exit.code)
	}
	if !strings.Contains(out, "Interpretation finished with exit code 3") {
		t.Fatalf("missing summary in stdout: %q", out)
	}
}

func TestRunCommandQuietZeroReturn(t *testing.T) {
	scriptPath := writeScript(t, "return 0;\n")

	out, err := captureStdout(t, func() error {
		return runCommand([]string{"-quiet", scriptPath})
	})
	if err != nil {
		t.Fatalf("runCommand failed: %v", err)
	}
	if out != "" {
		t.Fatalf("expected no output with -quiet, got %q", out)
	}
}

func TestRunCommandStopsOnDiagnostics(t *testing.T) {
	scriptPath := writeScript(t, "print 1;\nx = \"a\" + 1;\n")

	out, err := captureStdout(t, func() error {
		return runCommand([]string{scriptPath})
	})
	if err == nil {
		t.Fatalf("expected diagnostics error")
	}
	if !strings.Contains(err.Error(), "1 problem(s) found") {
		t.Fatalf("unexpected error: %v", err)
	}
	if out != "" {
		t.Fatalf("program should not run, got stdout %q", out)
	}
}

func TestRunCommandReportsRuntimeError(t *testing.T) {
	scriptPath := writeScript(t, "x = 0;\nprint 1 / x;\n")

	_, err := captureStdout(t, func() error {
		return runCommand([]string{scriptPath})
	})
	if err == nil {
		t.Fatalf("expected runtime error")
	}
	if !strings.Contains(err.Error(), "ZeroDivisionError") {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(err.Error(), "--> line 2") {
		t.Fatalf("expected code frame in error: %v", err)
	}
}

func TestRunCommandAppliesConfigFile(t *testing.T) {
	scriptPath := writeScript(t, "x = 0;\nwhile 1 == 1 { x += 1; }\n")
	configPath := filepath.Join(t.TempDir(), "mats.yaml")
	if err := os.WriteFile(configPath, []byte("step_quota: 50\nlog_level: error\n"), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	_, err := captureStdout(t, func() error {
		return runCommand([]string{"-config", configPath, scriptPath})
	})
	if err == nil {
		t.Fatalf("expected step quota error")
	}
	if !strings.Contains(err.Error(), "step quota exceeded (50)") {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestRunCommandRejectsBadConfig(t *testing.T) {
	scriptPath := writeScript(t, "print 1;\n")
	configPath := filepath.Join(t.TempDir(), "mats.yaml")
	if err := os.WriteFile(configPath, []byte("stepquota: 5\n"), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	err := runCommand([]string{"-config", configPath, scriptPath})
	if err == nil {
		t.Fatalf("expected config error")
	}
	if !strings.Contains(err.Error(), "config:") {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestRunCommandMissingFile(t *testing.T) {
	err := runCommand([]string{filepath.Join(t.TempDir(), "missing.mats")})
	if err == nil {
		t.Fatalf("expected read error")
	}
	if !strings.Contains(err.Error(), "read script") {
		t.Fatalf("unexpected error: %v", err)
	}
}

func writeScript(t *testing.T, source string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "script.mats")
	if err := os.WriteFile(path, []byte(source), 0o644); err != nil {
		t.Fatalf("write script: %v", err)
	}
	return path
}

func captureStdout(t *testing.T, fn func() error) (string, error) {
	t.Helper()

	orig := os.Stdout
	r, w, err := os.Pipe()
	if err != nil {
		t.Fatalf("pipe: %v", err)
	}
	os.Stdout = w

	runErr := fn()
	_ = w.Close()
	os.Stdout = orig

	var buf bytes.Buffer
	if _, copyErr := io.Copy(&buf, r); copyErr != nil {
		t.Fatalf("read stdout: %v", copyErr)
	}
	_ = r.Close()
	return buf.String(), runErr
}
