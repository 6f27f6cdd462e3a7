package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/mgomes/matscript/mats"
)

const defaultConfigFile = "mats.yaml"

// exitError carries a program's return code out of runCLI without printing.
type exitError struct {
	code int
}

func (e *exitError) Error() string {
	return fmt.Sprintf("exit code %d", e.code)
}

func main() {
	if err := runCLI(os.Args); err != nil {
		var exit *exitError
		if errors.As(err, &exit) {
			os.Exit(exit.code)
		}
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func runCLI(args []string) error {
	if len(args) < 2 {
		return usageError()
	}
	switch args[1] {
	case "run":
		return runCommand(args[2:])
	case "check":
		return checkCommand(args[2:])
	case "ast":
		return astCommand(args[2:])
	case "repl":
		return replCommand(args[2:])
	case "lsp":
		return runLSP()
	case "help", "-h", "--help":
		printUsage()
		return nil
	default:
		return usageError()
	}
}

func runCommand(args []string) error {
	fs := flag.NewFlagSet("run", flag.ContinueOnError)
	fs.SetOutput(new(flagErrorSink))
	configPath := fs.String("config", "", "read settings from a YAML file (default mats.yaml when present)")
	verbose := fs.Bool("v", false, "log pipeline stages to stderr")
	quiet := fs.Bool("quiet", false, "suppress the exit status summary")
	if err := fs.Parse(args); err != nil {
		return err
	}
	remaining := fs.Args()
	if len(remaining) == 0 {
		return errors.New("mats run: script path required")
	}

	fileCfg, err := loadFileConfig(*configPath)
	if err != nil {
		return err
	}
	if *verbose {
		fileCfg.LogLevel = "debug"
	}
	if *quiet {
		fileCfg.Quiet = true
	}

	scriptPath, input, err := readScript(remaining[0])
	if err != nil {
		return err
	}
	engine, err := newEngine(fileCfg, os.Stdout, os.Stderr)
	if err != nil {
		return err
	}

	result, diags, err := engine.Exec(context.Background(), string(input))
	if err != nil {
		return fmt.Errorf("%s: %w", scriptPath, err)
	}
	if len(diags) > 0 {
		printDiagnostics(os.Stderr, scriptPath, diags, false)
		return fmt.Errorf("mats run: %d problem(s) found", len(diags))
	}

	if !fileCfg.Quiet {
		if result.Returned {
			fmt.Printf("Interpretation finished with exit code %d\n", result.ExitCode)
		} else {
			fmt.Println("No return statement found during interpretation")
		}
	}
	if result.Returned && result.ExitCode != 0 {
		return &exitError{code: result.ExitCode}
	}
	return nil
}

// loadFileConfig reads path, or mats.yaml from the working directory when
// path is empty and the file exists.
func loadFileConfig(path string) (*mats.FileConfig, error) {
	if path == "" {
		if _, err := os.Stat(defaultConfigFile); err != nil {
			return &mats.FileConfig{}, nil
		}
		path = defaultConfigFile
	}
	return mats.LoadConfig(path)
}

func newEngine(fileCfg *mats.FileConfig, stdout, logOut io.Writer) (*mats.Engine, error) {
	level, err := mats.ParseLogLevel(fileCfg.LogLevel)
	if err != nil {
		return nil, err
	}
	cfg := mats.Config{
		Stdout: stdout,
		Logger: slog.New(slog.NewTextHandler(logOut, &slog.HandlerOptions{Level: level})),
	}
	fileCfg.Apply(&cfg)
	return mats.NewEngine(cfg)
}

func readScript(path string) (string, []byte, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", nil, fmt.Errorf("resolve script path: %w", err)
	}
	input, err := os.ReadFile(abs)
	if err != nil {
		return "", nil, fmt.Errorf("read script: %w", err)
	}
	return abs, input, nil
}

func usageError() error {
	printUsage()
	return errors.New("invalid command")
}

func printUsage() {
	prog := filepath.Base(os.Args[0])
	fmt.Fprintf(os.Stderr, "Usage: %s <command> [flags] <script>\n", prog)
	fmt.Fprintln(os.Stderr, "Commands:")
	fmt.Fprintln(os.Stderr, "  run [-config file] [-v] [-quiet] <script>")
	fmt.Fprintln(os.Stderr, "    check and execute a script; its return value becomes the exit code")
	fmt.Fprintln(os.Stderr, "  check [-format text|yaml] [-color] <script>")
	fmt.Fprintln(os.Stderr, "    report type and shape problems without running")
	fmt.Fprintln(os.Stderr, "  ast <script>")
	fmt.Fprintln(os.Stderr, "    print the syntax tree")
	fmt.Fprintln(os.Stderr, "  repl [-plain]")
	fmt.Fprintln(os.Stderr, "    start an interactive session")
	fmt.Fprintln(os.Stderr, "  lsp")
	fmt.Fprintln(os.Stderr, "    serve diagnostics over the language server protocol on stdio")
}

type flagErrorSink struct{}

func (flagErrorSink) Write(p []byte) (int, error) {
	return len(p), nil
}
