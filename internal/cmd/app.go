// Package cmd implements the gitconf command-line interface.
package cmd

import (
	"io"
	"os"

	"golang.org/x/term"

	"gitconf/internal/config"
	"gitconf/internal/repository"
)

// App holds application state shared across commands.
type App struct {
	Repo   *repository.Repository
	Config *config.Configuration
	Out    io.Writer
	Err    io.Writer
	JSON   bool // output in JSON format
}

// SuccessColor returns the string wrapped in green ANSI codes if stdout is
// a terminal, otherwise returns the string unchanged.
func (a *App) SuccessColor(s string) string {
	if f, ok := a.Out.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		return "\033[32m" + s + "\033[0m"
	}
	return s
}

// WarnColor returns the string wrapped in orange ANSI codes if stdout is a
// terminal, otherwise returns the string unchanged.
func (a *App) WarnColor(s string) string {
	if f, ok := a.Out.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		return "\033[38;5;214m" + s + "\033[0m"
	}
	return s
}
