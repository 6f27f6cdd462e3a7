package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/mgomes/matscript/mats"
	"gopkg.in/yaml.v3"
)

var (
	locationStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#6B7280"))
	kindStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#EF4444")).Bold(true)
	warningStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#F59E0B"))
)

type checkReport struct {
	File        string            `yaml:"file"`
	Diagnostics []mats.Diagnostic `yaml:"diagnostics"`
	Warnings    []lintWarning     `yaml:"warnings,omitempty"`
}

func checkCommand(args []string) error {
	fs := flag.NewFlagSet("check", flag.ContinueOnError)
	fs.SetOutput(new(flagErrorSink))
	format := fs.String("format", "text", "output format: text or yaml")
	color := fs.Bool("color", false, "colorize text output")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *format != "text" && *format != "yaml" {
		return fmt.Errorf("mats check: unknown format %q", *format)
	}

	remaining := fs.Args()
	if len(remaining) == 0 {
		return errors.New("mats check: script path required")
	}
	scriptPath, input, err := readScript(remaining[0])
	if err != nil {
		return err
	}

	diags, warnings := checkSource(string(input))

	if *format == "yaml" {
		out, err := yaml.Marshal(checkReport{File: scriptPath, Diagnostics: diags, Warnings: warnings})
		if err != nil {
			return fmt.Errorf("encode report: %w", err)
		}
		if _, err := os.Stdout.Write(out); err != nil {
			return err
		}
	} else if len(diags) == 0 && len(warnings) == 0 {
		fmt.Println("No issues found")
	} else {
		printDiagnostics(os.Stdout, scriptPath, diags, *color)
		printWarnings(os.Stdout, scriptPath, warnings, *color)
	}

	if len(diags) > 0 {
		return fmt.Errorf("check found %d issue(s)", len(diags))
	}
	return nil
}

// checkSource reports syntax errors, or checker diagnostics plus lint
// warnings when the source parses.
func checkSource(source string) ([]mats.Diagnostic, []lintWarning) {
	engine := mats.MustNewEngine(mats.Config{})
	prog, err := engine.Parse(source)
	if err != nil {
		return mats.ParseDiagnostics(err), nil
	}
	return engine.Check(prog), lintProgram(prog)
}

func printWarnings(w io.Writer, path string, warnings []lintWarning, color bool) {
	for _, warning := range warnings {
		location := fmt.Sprintf("%s:%d:%d:", path, max(warning.Line, 1), max(warning.Column, 1))
		label := "warning:"
		if color {
			location = locationStyle.Render(location)
			label = warningStyle.Render(label)
		}
		fmt.Fprintf(w, "%s %s %s\n", location, label, warning.Message)
	}
}

func printDiagnostics(w io.Writer, path string, diags []mats.Diagnostic, color bool) {
	for _, d := range diags {
		line := max(d.Line, 1)
		column := max(d.Column, 1)
		location := fmt.Sprintf("%s:%d:%d:", path, line, column)
		kind := string(d.Kind) + ":"
		if color {
			location = locationStyle.Render(location)
			kind = kindStyle.Render(kind)
		}
		fmt.Fprintf(w, "%s %s %s\n", location, kind, d.Message)
	}
}
