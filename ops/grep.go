package ops

import (
	"strings"

	"github.com/elapouya/go-textops/pipeline"
)

// grepFn builds a Lines -> Lines transform keeping (or dropping) lines
// matching a regexp pattern.
func grepFn(invert, ignoreCase bool) pipeline.Transform {
	return func(v pipeline.Value, args pipeline.Args, env pipeline.Env) (pipeline.Value, error) {
		re, err := compile(args.String("pattern"), ignoreCase)
		if err != nil {
			return pipeline.Value{}, err
		}
		var out []string
		for _, line := range v.Lines() {
			if re.MatchString(line) != invert {
				out = append(out, line)
			}
		}
		return pipeline.LinesValue(out), nil
	}
}

// grepCountFn builds a Lines -> Any transform counting matching (or
// non-matching) lines.
func grepCountFn(invert, ignoreCase bool) pipeline.Transform {
	return func(v pipeline.Value, args pipeline.Args, env pipeline.Env) (pipeline.Value, error) {
		re, err := compile(args.String("pattern"), ignoreCase)
		if err != nil {
			return pipeline.Value{}, err
		}
		n := 0
		for _, line := range v.Lines() {
			if re.MatchString(line) != invert {
				n++
			}
		}
		return pipeline.AnyValue(n), nil
	}
}

// hasPatternFn builds a Lines -> Any transform reporting whether any
// line matches.
func hasPatternFn(ignoreCase bool) pipeline.Transform {
	return func(v pipeline.Value, args pipeline.Args, env pipeline.Env) (pipeline.Value, error) {
		re, err := compile(args.String("pattern"), ignoreCase)
		if err != nil {
			return pipeline.Value{}, err
		}
		for _, line := range v.Lines() {
			if re.MatchString(line) {
				return pipeline.AnyValue(true), nil
			}
		}
		return pipeline.AnyValue(false), nil
	}
}

func init() {
	pattern := []pipeline.Param{{Name: "pattern"}}

	// grep keeps lines matching pattern. No match yields empty Lines,
	// never an error.
	register(&pipeline.Operation{
		Name: "grep", Params: pattern,
		Input: pipeline.Lines, Output: pipeline.Lines,
		Fn: grepFn(false, false),
	})
	register(&pipeline.Operation{
		Name: "grepi", Params: pattern,
		Input: pipeline.Lines, Output: pipeline.Lines,
		Fn: grepFn(false, true),
	})
	register(&pipeline.Operation{
		Name: "grepv", Params: pattern,
		Input: pipeline.Lines, Output: pipeline.Lines,
		Fn: grepFn(true, false),
	})
	register(&pipeline.Operation{
		Name: "grepvi", Params: pattern,
		Input: pipeline.Lines, Output: pipeline.Lines,
		Fn: grepFn(true, true),
	})

	register(&pipeline.Operation{
		Name: "grepc", Params: pattern,
		Input: pipeline.Lines, Output: pipeline.Any,
		Fn: grepCountFn(false, false),
	})
	register(&pipeline.Operation{
		Name: "grepci", Params: pattern,
		Input: pipeline.Lines, Output: pipeline.Any,
		Fn: grepCountFn(false, true),
	})
	register(&pipeline.Operation{
		Name: "grepcv", Params: pattern,
		Input: pipeline.Lines, Output: pipeline.Any,
		Fn: grepCountFn(true, false),
	})

	register(&pipeline.Operation{
		Name: "haspattern", Params: pattern,
		Input: pipeline.Lines, Output: pipeline.Any,
		Fn: hasPatternFn(false),
	})
	register(&pipeline.Operation{
		Name: "haspatterni", Params: pattern,
		Input: pipeline.Lines, Output: pipeline.Any,
		Fn: hasPatternFn(true),
	})

	// rmblank drops blank and whitespace-only lines.
	register(&pipeline.Operation{
		Name:  "rmblank",
		Input: pipeline.Lines, Output: pipeline.Lines,
		Fn: func(v pipeline.Value, args pipeline.Args, env pipeline.Env) (pipeline.Value, error) {
			var out []string
			for _, line := range v.Lines() {
				if strings.TrimSpace(line) != "" {
					out = append(out, line)
				}
			}
			return pipeline.LinesValue(out), nil
		},
	})
}
