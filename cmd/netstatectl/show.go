package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"netstate/pkg/link"
	"netstate/pkg/state"
)

var showCmd = &cobra.Command{
	Use:   "show <interface>...",
	Short: "Show the observed state of ethernet interfaces",
	Long: `Show reads the live link settings and SR-IOV configuration of the
given interfaces and prints them as a state document.

Examples:
  netstatectl show eth0
  netstatectl show ens2f0np0 ens2f1np1`,
	Args: cobra.MinimumNArgs(1),
	RunE: runShow,
}

func init() {
	rootCmd.AddCommand(showCmd)
}

func runShow(cmd *cobra.Command, args []string) error {
	observed := &state.NetworkState{}
	for _, name := range args {
		cur, err := link.CurrentIface(name)
		if err != nil {
			return fmt.Errorf("failed to read %s: %v", name, err)
		}
		observed.Interfaces = append(observed.Interfaces, cur)
	}

	data, err := yaml.Marshal(observed)
	if err != nil {
		return fmt.Errorf("failed to marshal state: %v", err)
	}
	fmt.Print(string(data))
	return nil
}
