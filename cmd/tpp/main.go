package main

import (
	"fmt"
	"os"

	"github.com/example/tpp/internal/cli"
)

func main() {
	os.Exit(run())
}

func run() int {
	defer func() {
		if err := cli.Shutdown(); err != nil {
			fmt.Fprintln(os.Stderr, "Error:", err)
		}
	}()

	if err := cli.RootCmd().Execute(); err != nil {
		cli.LogCause(err)
		fmt.Fprintln(os.Stderr, "Error:", cli.ErrorMessage(err))
		return 1
	}
	return 0
}
