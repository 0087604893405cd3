package main

import (
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
)

var (
	successColor = color.New(color.FgGreen)
	errorColor   = color.New(color.FgRed)
	stepColor    = color.New(color.FgCyan)
	titleColor   = color.New(color.FgMagenta, color.Bold)
)

var stderr io.Writer = os.Stderr

func printSuccess(format string, args ...any) {
	successColor.Fprintln(stderr, "✓ "+fmt.Sprintf(format, args...))
}

func printError(format string, args ...any) {
	errorColor.Fprintln(stderr, "✗ "+fmt.Sprintf(format, args...))
}

func printStep(format string, args ...any) {
	stepColor.Fprintln(stderr, "→ "+fmt.Sprintf(format, args...))
}

// notice prints a workflow notice in the colour of its kind.
func notice(text string, isErr bool) {
	if isErr {
		printError("%s", text)
		return
	}
	printSuccess("%s", text)
}
