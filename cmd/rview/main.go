package main

import (
	"fmt"
	"os"

	"github.com/gdamore/tcell/v2"
)

// Build information injected via ldflags at build time.
var version = "dev"

func main() {
	// Set UTF-8 as fallback encoding for maximum compatibility
	tcell.SetEncodingFallback(tcell.EncodingFallbackUTF8)

	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
