package main

import (
	"os"

	"github.com/quillworks/quill/internal/cli/commands"
)

// Version will be set during build with ldflags
var Version = "0.1.0"

func main() {
	if err := commands.NewRootCmd(Version).Execute(); err != nil {
		os.Exit(1)
	}
}
