// Package ui provides terminal output helpers: colored log lines for
// progress and warnings, and lipgloss styles for the status report.
package ui

import (
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/mattn/go-isatty"
)

var (
	okColor   = color.New(color.FgGreen)
	warnColor = color.New(color.FgYellow)
	failColor = color.New(color.FgRed)
	infoColor = color.New(color.FgCyan)
)

// Piped or redirected output gets plain text without ANSI codes.
func init() {
	if !IsInteractive() {
		color.NoColor = true
	}
}

// Infof prints an informational progress line.
func Infof(format string, args ...any) {
	fmt.Fprintf(os.Stdout, "%s %s\n", infoColor.Sprint("==>"), fmt.Sprintf(format, args...))
}

// Okf prints a success line.
func Okf(format string, args ...any) {
	fmt.Fprintf(os.Stdout, "%s %s\n", okColor.Sprint(CheckMark), fmt.Sprintf(format, args...))
}

// Warnf prints a warning line. Warnings mark benign already-in-desired-state
// conditions; they never change the exit code.
func Warnf(format string, args ...any) {
	fmt.Fprintf(os.Stdout, "%s %s\n", warnColor.Sprint(WarnMark), fmt.Sprintf(format, args...))
}

// Failf prints a failure line to stderr.
func Failf(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "%s %s\n", failColor.Sprint(CrossMark), fmt.Sprintf(format, args...))
}

// IsInteractive reports whether stdout is an interactive terminal.
func IsInteractive() bool {
	return isatty.IsTerminal(os.Stdout.Fd()) || isatty.IsCygwinTerminal(os.Stdout.Fd())
}
