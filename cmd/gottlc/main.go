// Command gottlc is the CLI wrapper around the gottl engine: a cobra
// root command with viper-backed config loading (persistent --config
// flag, XDG config fallback) and two subcommands, compile and render.
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
