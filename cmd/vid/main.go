package main

import (
	"fmt"
	"os"

	"github.com/rowkit/vid/internal/app"
	"github.com/rowkit/vid/internal/logger"
)

func main() {
	args := os.Args[1:]
	if len(args) > 0 && args[0] == "--" {
		args = args[1:]
	}
	// a failed logger must not keep the editor from starting
	_ = logger.Init(os.Getenv("VID_DEBUG") != "")
	defer logger.Close()
	if err := app.New(args).Run(); err != nil {
		fmt.Fprintln(os.Stderr, "vid:", err)
		os.Exit(1)
	}
}
