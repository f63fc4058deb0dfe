package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"netstate/pkg/link"
	"netstate/pkg/reconcile"
	"netstate/pkg/state"
)

var (
	planCurrentFile string
	planVerbose     bool
)

var planCmd = &cobra.Command{
	Use:   "plan <state-file>",
	Short: "Compute the convergence plan for a desired state document",
	Long: `Plan merges a desired state document over the observed current state
and prints the actions needed to converge: interfaces to apply, VF
interfaces to create, and interface names to delete.

By default the current state is read from the live system; --current reads
it from a second state document instead.

Examples:
  netstatectl plan desired.yaml
  netstatectl plan desired.yaml --current observed.yaml`,
	Args: cobra.ExactArgs(1),
	RunE: runPlan,
}

func init() {
	rootCmd.AddCommand(planCmd)

	planCmd.Flags().StringVar(&planCurrentFile, "current", "", "Read current state from a file instead of the live system")
	planCmd.Flags().BoolVarP(&planVerbose, "verbose", "v", false, "Log reconciliation details")
}

func runPlan(cmd *cobra.Command, args []string) error {
	desired, err := state.Load(args[0])
	if err != nil {
		return err
	}

	current := &state.NetworkState{}
	if planCurrentFile != "" {
		current, err = state.Load(planCurrentFile)
		if err != nil {
			return err
		}
	} else {
		for _, des := range desired.Interfaces {
			cur, err := link.CurrentIface(des.Name)
			if err != nil {
				continue
			}
			current.Interfaces = append(current.Interfaces, cur)
		}
	}

	logger := logrus.New()
	if !planVerbose {
		logger.SetOutput(io.Discard)
	}

	plan, err := reconcile.NewManager(logger).Reconcile(desired, current)
	if err != nil {
		return err
	}

	printPlan(plan)
	return nil
}

func printPlan(plan *reconcile.Plan) {
	fmt.Printf("Apply (%d):\n", len(plan.Apply))
	for _, ifc := range plan.Apply {
		line := fmt.Sprintf("  %s state=%s", ifc.Name, ifc.State)
		if ifc.IsSRIOV() {
			line += fmt.Sprintf(" total-vfs=%d", ifc.SRIOVTotalVFs())
		}
		fmt.Println(line)
	}

	for pf, vfs := range plan.CreateVFs {
		names := make([]string, 0, len(vfs))
		for _, vf := range vfs {
			names = append(names, vf.Name)
		}
		fmt.Printf("Create VFs on %s: %s\n", pf, strings.Join(names, ", "))
	}

	if len(plan.DeleteIfaces) > 0 {
		fmt.Printf("Delete: %s\n", strings.Join(plan.DeleteIfaces, ", "))
	}
}
