package main

import (
	"os"

	"github.com/Makepad-fr/listy/internal/cli"
)

func main() {
	// Hand the args to the CLI runner; it picks the exit code.
	code := cli.Run(os.Args[1:], cli.Options{
		Stdout: os.Stdout,
		Stderr: os.Stderr,
	})
	os.Exit(code)
}
