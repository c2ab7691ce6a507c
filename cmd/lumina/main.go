package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// Version information set at build time.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

const banner = `
  ╦  ┬ ┬┌┬┐┬┌┐┌┌─┐
  ║  │ │││││││││├─┤
  ╩═╝└─┘┴ ┴┴┘└┘┴ ┴
`

func main() {
	rootCmd := &cobra.Command{
		Use:   "lumina",
		Short: "Route tree and hydration payload tooling",
		Long: `Lumina compiles route definitions into deterministic route trees and
moves loader and action data between server and client as a recursive
wire payload.

The CLI inspects payloads captured from rendered pages or from the
payload archive:

  • Decode a payload and list its matches and route data
  • Show how each field decodes (immediate, deferred, rejected)
  • Reconstruct and print route errors`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.AddCommand(
		inspectCmd(),
		versionCmd(),
	)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "\033[31mError:\033[0m %s\n", err)
		os.Exit(1)
	}
}

// printBanner prints the Lumina ASCII art banner.
func printBanner() {
	fmt.Print(banner)
}

// info prints an info message.
func info(format string, args ...any) {
	fmt.Printf("  %s\n", fmt.Sprintf(format, args...))
}

// warn prints a warning message.
func warn(format string, args ...any) {
	fmt.Printf("\033[33m⚠\033[0m %s\n", fmt.Sprintf(format, args...))
}
