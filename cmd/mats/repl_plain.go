package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/mgomes/matscript/mats"
	"github.com/peterh/liner"
)

const historyFile = ".mats_history"

func runPlainREPL() error {
	ln := liner.NewLiner()
	defer ln.Close()
	ln.SetCtrlCAborts(true)

	eval := newREPLEvaluator()
	ln.SetCompleter(func(line string) []string {
		idx := strings.LastIndexAny(line, " \t([,;=+-*/")
		prefix, word := line[:idx+1], line[idx+1:]
		if word == "" {
			return nil
		}
		var out []string
		for _, c := range eval.completions(word) {
			out = append(out, prefix+c)
		}
		return out
	})

	histPath := ""
	if home, err := os.UserHomeDir(); err == nil {
		histPath = filepath.Join(home, historyFile)
		if f, err := os.Open(histPath); err == nil {
			_, _ = ln.ReadHistory(f)
			_ = f.Close()
		}
	}
	defer func() {
		if histPath == "" {
			return
		}
		if f, err := os.Create(histPath); err == nil {
			_, _ = ln.WriteHistory(f)
			_ = f.Close()
		}
	}()

	fmt.Println("MatScript REPL. Ctrl+D exits, :reset clears bindings.")
	for {
		source, ok := readPlainInput(ln, eval)
		if !ok {
			fmt.Println()
			return nil
		}
		switch strings.TrimSpace(source) {
		case "":
			continue
		case ":quit", ":q":
			return nil
		case ":reset", ":r":
			eval.reset()
			fmt.Println("Environment reset")
			continue
		case ":vars", ":v":
			for _, binding := range eval.bindings() {
				fmt.Println(binding)
			}
			continue
		}

		ln.AppendHistory(strings.ReplaceAll(source, "\n", " "))
		output, isErr, _ := eval.eval(source)
		switch {
		case isErr:
			fmt.Fprintln(os.Stderr, output)
		case output != "":
			fmt.Println(output)
		}
	}
}

// readPlainInput prompts until the input is no longer an unfinished block.
// ok is false once the user asks to leave.
func readPlainInput(ln *liner.State, eval *replEvaluator) (string, bool) {
	var lines []string
	for {
		prompt := promptMain
		if len(lines) > 0 {
			prompt = promptCont
		}
		line, err := ln.Prompt(prompt)
		if errors.Is(err, io.EOF) {
			return "", false
		}
		if errors.Is(err, liner.ErrPromptAborted) {
			return "", true
		}
		if err != nil {
			return "", false
		}

		lines = append(lines, line)
		source := strings.Join(lines, "\n")
		if strings.HasPrefix(strings.TrimSpace(source), ":") {
			return source, true
		}
		if _, err := eval.source(source); err == nil || !mats.IsIncomplete(err) {
			return source, true
		}
	}
}
