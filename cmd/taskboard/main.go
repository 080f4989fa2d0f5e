package main

import (
	"os"

	"github.com/yukikurage/taskboard/internal/cli"
)

// set by -ldflags "-X main.version=..."
var version = "dev"

func main() {
	if err := cli.Execute(version); err != nil {
		os.Exit(1)
	}
}
