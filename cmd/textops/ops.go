package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/elapouya/go-textops/pipeline"
)

var opsCmd = &cobra.Command{
	Use:   "ops",
	Short: "List registered operations",
	Long:  "Print every operation available to run expressions, with its parameters and shapes.",
	RunE:  listOps,
}

func init() {
	rootCmd.AddCommand(opsCmd)
}

func listOps(cmd *cobra.Command, args []string) error {
	reg := pipeline.DefaultRegistry()
	for _, name := range reg.Names() {
		op, ok := reg.Lookup(name)
		if !ok {
			continue
		}
		fmt.Fprintf(os.Stdout, "%-40s %s -> %s\n", signature(op), op.Input, op.Output)
	}
	return nil
}

// signature renders an operation as name(param, param=default, ...).
func signature(op *pipeline.Operation) string {
	params := make([]string, len(op.Params))
	for i, p := range op.Params {
		if p.Default == nil {
			params[i] = p.Name
			continue
		}
		if s, ok := p.Default.(string); ok {
			params[i] = fmt.Sprintf("%s=%q", p.Name, s)
		} else {
			params[i] = fmt.Sprintf("%s=%v", p.Name, p.Default)
		}
	}
	return fmt.Sprintf("%s(%s)", op.Name, strings.Join(params, ", "))
}
