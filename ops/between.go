package ops

import (
	"github.com/elapouya/go-textops/pipeline"
)

// beforeFn keeps lines up to the first match. The matching line itself
// is excluded unless inclusive. No match keeps everything.
func beforeFn(ignoreCase bool) pipeline.Transform {
	return func(v pipeline.Value, args pipeline.Args, env pipeline.Env) (pipeline.Value, error) {
		re, err := compile(args.String("pattern"), ignoreCase)
		if err != nil {
			return pipeline.Value{}, err
		}
		lines := v.Lines()
		for i, line := range lines {
			if re.MatchString(line) {
				if args.Bool("inclusive") {
					i++
				}
				return pipeline.LinesValue(lines[:i]), nil
			}
		}
		return pipeline.LinesValue(lines), nil
	}
}

// afterFn keeps lines following the first match. The matching line
// itself is excluded unless inclusive. No match keeps nothing.
func afterFn(ignoreCase bool) pipeline.Transform {
	return func(v pipeline.Value, args pipeline.Args, env pipeline.Env) (pipeline.Value, error) {
		re, err := compile(args.String("pattern"), ignoreCase)
		if err != nil {
			return pipeline.Value{}, err
		}
		lines := v.Lines()
		for i, line := range lines {
			if re.MatchString(line) {
				if !args.Bool("inclusive") {
					i++
				}
				return pipeline.LinesValue(lines[i:]), nil
			}
		}
		return pipeline.LinesValue(nil), nil
	}
}

// betweenFn keeps lines between the first begin match and the following
// end match. Boundary lines are excluded unless inclusive. A missing
// begin keeps nothing; a missing end keeps through the last line.
func betweenFn(ignoreCase, inclusive bool) pipeline.Transform {
	return func(v pipeline.Value, args pipeline.Args, env pipeline.Env) (pipeline.Value, error) {
		reBegin, err := compile(args.String("begin"), ignoreCase)
		if err != nil {
			return pipeline.Value{}, err
		}
		reEnd, err := compile(args.String("end"), ignoreCase)
		if err != nil {
			return pipeline.Value{}, err
		}

		lines := v.Lines()
		start := -1
		for i, line := range lines {
			if reBegin.MatchString(line) {
				start = i
				if !inclusive {
					start++
				}
				break
			}
		}
		if start < 0 {
			return pipeline.LinesValue(nil), nil
		}

		for i := start; i < len(lines); i++ {
			if reEnd.MatchString(lines[i]) {
				end := i
				if inclusive {
					end++
				}
				return pipeline.LinesValue(lines[start:end]), nil
			}
		}
		return pipeline.LinesValue(lines[start:]), nil
	}
}

func init() {
	single := []pipeline.Param{
		{Name: "pattern"},
		{Name: "inclusive", Default: false},
	}
	double := []pipeline.Param{{Name: "begin"}, {Name: "end"}}

	register(&pipeline.Operation{
		Name: "before", Params: single,
		Input: pipeline.Lines, Output: pipeline.Lines,
		Fn: beforeFn(false),
	})
	register(&pipeline.Operation{
		Name: "beforei", Params: single,
		Input: pipeline.Lines, Output: pipeline.Lines,
		Fn: beforeFn(true),
	})
	register(&pipeline.Operation{
		Name: "after", Params: single,
		Input: pipeline.Lines, Output: pipeline.Lines,
		Fn: afterFn(false),
	})
	register(&pipeline.Operation{
		Name: "afteri", Params: single,
		Input: pipeline.Lines, Output: pipeline.Lines,
		Fn: afterFn(true),
	})

	register(&pipeline.Operation{
		Name: "between", Params: double,
		Input: pipeline.Lines, Output: pipeline.Lines,
		Fn: betweenFn(false, false),
	})
	register(&pipeline.Operation{
		Name: "betweeni", Params: double,
		Input: pipeline.Lines, Output: pipeline.Lines,
		Fn: betweenFn(true, false),
	})
	register(&pipeline.Operation{
		Name: "betweenb", Params: double,
		Input: pipeline.Lines, Output: pipeline.Lines,
		Fn: betweenFn(false, true),
	})
	register(&pipeline.Operation{
		Name: "betweenbi", Params: double,
		Input: pipeline.Lines, Output: pipeline.Lines,
		Fn: betweenFn(true, true),
	})
}
