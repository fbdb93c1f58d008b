package main

import (
	"os"

	"github.com/lwd-temp/helang/cmd/helang/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
