package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/elapouya/go-textops/opparser"
	"github.com/elapouya/go-textops/pipeline"

	_ "github.com/elapouya/go-textops/ops"
)

var runCmd = &cobra.Command{
	Use:   "run <expression> [file...]",
	Short: "Apply a chain expression",
	Long: `Parse a chain expression and apply it to each named file, or to
standard input when no files are given. Example:

  textops run 'grep("ERROR") | cut(col=2) | uniq' app.log`,
	Args: cobra.MinimumNArgs(1),
	RunE: runExpression,
}

func init() {
	runCmd.Flags().String("policy", "", "Error policy: strict, collecting or tracing (default strict)")
	runCmd.Flags().StringArrayP("env", "e", nil, "Context pair key=value (repeatable)")
	runCmd.Flags().String("sep", "", "Join separator for lines-to-text coercions (default newline)")
	runCmd.Flags().Bool("dry-run", false, "Parse and bind only, do not apply")

	rootCmd.AddCommand(runCmd)
}

func runExpression(cmd *cobra.Command, args []string) error {
	expr := args[0]
	files := args[1:]
	verbose := viper.GetBool("verbose")
	debug := viper.GetBool("debug")
	policyName, _ := cmd.Flags().GetString("policy")
	envPairs, _ := cmd.Flags().GetStringArray("env")
	sep, _ := cmd.Flags().GetString("sep")
	dryRun, _ := cmd.Flags().GetBool("dry-run")

	policy := pipeline.PolicyDefault
	if policyName != "" {
		var ok bool
		policy, ok = pipeline.ParsePolicy(policyName)
		if !ok {
			return fmt.Errorf("unknown policy %q (want strict, collecting or tracing)", policyName)
		}
	}
	configureLogging(debug, policy)

	chain, err := opparser.Parse([]byte(expr), pipeline.DefaultRegistry())
	if err != nil {
		return fmt.Errorf("parsing expression: %w", err)
	}

	if verbose {
		fmt.Fprintf(os.Stderr, "Chain: %s (%d steps)\n", chain, chain.Len())
	}
	if dryRun {
		fmt.Fprintf(os.Stderr, "Dry run: expression bound successfully\n")
		return nil
	}

	opts, err := applyOptions(policy, envPairs, sep)
	if err != nil {
		return err
	}

	if len(files) == 0 {
		res, err := chain.Apply(os.Stdin, opts...)
		if err != nil {
			return err
		}
		reportStepErrors(res)
		printResult(res)
		return nil
	}

	for _, file := range files {
		if verbose {
			fmt.Fprintf(os.Stderr, "Applying to %s\n", file)
		}
		res, err := chain.Apply(pipeline.File(file), opts...)
		if err != nil {
			return fmt.Errorf("%s: %w", file, err)
		}
		reportStepErrors(res)
		printResult(res)
	}
	return nil
}

// configureLogging enables step logging for --debug runs and for the
// tracing policy, whose trace goes through the package logger and would
// otherwise be discarded.
func configureLogging(debug bool, policy pipeline.Policy) {
	if debug || policy == pipeline.PolicyTracing {
		pipeline.SetDebug(true)
	}
}

// applyOptions translates run flags into apply options.
func applyOptions(policy pipeline.Policy, envPairs []string, sep string) ([]pipeline.ApplyOption, error) {
	var opts []pipeline.ApplyOption

	if policy != pipeline.PolicyDefault {
		opts = append(opts, pipeline.WithPolicy(policy))
	}

	if len(envPairs) > 0 {
		env := pipeline.Env{}
		for _, pair := range envPairs {
			key, value, ok := strings.Cut(pair, "=")
			if !ok || key == "" {
				return nil, fmt.Errorf("invalid context pair %q (want key=value)", pair)
			}
			env[key] = value
		}
		opts = append(opts, pipeline.WithEnv(env))
	}

	if sep != "" {
		opts = append(opts, pipeline.WithSeparator(sep))
	}

	return opts, nil
}

// reportStepErrors prints failures collected under the collecting policy.
func reportStepErrors(res *pipeline.Result) {
	for _, se := range res.Errors() {
		fmt.Fprintf(os.Stderr, "step %d (%s): %v\n", se.Step, se.Op, se.Err)
	}
}

// printResult writes the final value to stdout in its natural layout:
// lines one per line, mappings as "key: value" lines, everything else as
// a single line of text.
func printResult(res *pipeline.Result) {
	switch res.Shape() {
	case pipeline.Lines:
		for _, line := range res.Value().Lines() {
			fmt.Println(line)
		}
	case pipeline.Mapping:
		m := res.Value().Map()
		for _, key := range m.Keys() {
			value, _ := m.Get(key)
			fmt.Printf("%s: %s\n", key, value)
		}
	default:
		fmt.Println(res.Text())
	}
}
