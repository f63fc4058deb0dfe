package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"netstate/pkg/state"
)

var validateCmd = &cobra.Command{
	Use:   "validate <state-file>",
	Short: "Validate a desired state document",
	Long: `Validate parses a desired state document and runs the pre-edit
validation chain over every interface. The first invalid field aborts with
an error naming the field.

Examples:
  netstatectl validate desired.yaml`,
	Args: cobra.ExactArgs(1),
	RunE: runValidate,
}

func init() {
	rootCmd.AddCommand(validateCmd)
}

func runValidate(cmd *cobra.Command, args []string) error {
	desired, err := state.Load(args[0])
	if err != nil {
		return err
	}

	for _, ifc := range desired.Interfaces {
		checked := ifc.DeepCopy()
		checked.Canonicalize()
		if err := checked.PreEditValidationAndCleanup(); err != nil {
			return fmt.Errorf("interface %s: %v", ifc.Name, err)
		}
	}

	fmt.Printf("%s: %d interface(s) valid\n", args[0], len(desired.Interfaces))
	return nil
}
