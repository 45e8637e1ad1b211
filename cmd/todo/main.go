// Package main is the entry point for the todo CLI.
package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/todolist/todo-client/internal/app"
	"github.com/todolist/todo-client/internal/cli"
)

// version is set at build time using -ldflags.
var version = "dev"

func main() {
	rootCmd := cli.NewRootCommand(app.New, version)
	os.Exit(exitCode(rootCmd.Execute(), os.Stderr))
}

// exitCode prints err unless it was already shown as a notification.
func exitCode(err error, stderr io.Writer) int {
	if err == nil {
		return 0
	}
	if !errors.Is(err, cli.ErrReported) {
		_, _ = fmt.Fprintln(stderr, "Error:", err)
	}
	return 1
}
