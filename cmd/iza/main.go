// Command iza is a minimal Linux container runtime: pull images, list
// them, and run a command inside an isolated, resource-limited container.
package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/moby/sys/reexec"
	"github.com/sirupsen/logrus"

	"github.com/Priya00300/iza-container/internal/cli"
)

func main() {
	if reexec.Init() {
		return
	}

	logrus.SetOutput(os.Stderr)

	root := cli.NewRootCommand()
	if err := root.Execute(); err != nil {
		var exitErr *cli.ExitError
		if errors.As(err, &exitErr) {
			os.Exit(exitErr.Code)
		}
		fmt.Fprintln(os.Stderr, "iza:", err)
		os.Exit(1)
	}
}
