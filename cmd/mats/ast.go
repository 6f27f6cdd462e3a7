package main

import (
	"errors"
	"flag"
	"fmt"

	"github.com/mgomes/matscript/mats"
)

func astCommand(args []string) error {
	fs := flag.NewFlagSet("ast", flag.ContinueOnError)
	fs.SetOutput(new(flagErrorSink))
	if err := fs.Parse(args); err != nil {
		return err
	}

	remaining := fs.Args()
	if len(remaining) == 0 {
		return errors.New("mats ast: script path required")
	}
	_, input, err := readScript(remaining[0])
	if err != nil {
		return err
	}

	engine := mats.MustNewEngine(mats.Config{})
	prog, err := engine.Parse(string(input))
	if err != nil {
		return fmt.Errorf("parse failed: %w", err)
	}
	fmt.Print(mats.FormatTree(prog))
	return nil
}
