package main

import (
	"fmt"
	"os"

	"github.com/arthur-debert/gro/cmd/gro"
	"github.com/arthur-debert/gro/pkg/style"
)

func main() {
	rootCmd := gro.NewRootCmd()
	if err := rootCmd.Execute(); err != nil {
		format := style.DetectFormat(style.FormatAuto, os.Stderr)
		fmt.Fprintln(os.Stderr, style.Render(format, style.Danger, fmt.Sprintf("Error: %v", err)))
		os.Exit(1)
	}
}
