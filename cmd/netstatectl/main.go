package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "netstatectl",
	Short: "netstatectl - declarative ethernet and SR-IOV state management",
	Long: `netstatectl works with declarative network state documents describing
ethernet interfaces and their SR-IOV configuration.

Examples:
  netstatectl validate desired.yaml          # Validate a state document
  netstatectl show eth0                      # Show observed interface state
  netstatectl plan desired.yaml              # Show the convergence plan`,
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
