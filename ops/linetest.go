package ops

import (
	"github.com/elapouya/go-textops/pipeline"
)

// lineTestFn builds a Lines -> Lines transform keeping lines for which
// test holds. Comparisons are lexicographic on the whole line, matching
// sorted-log filtering (timestamps, versions).
func lineTestFn(test func(line string, args pipeline.Args) bool) pipeline.Transform {
	return func(v pipeline.Value, args pipeline.Args, env pipeline.Env) (pipeline.Value, error) {
		var out []string
		for _, line := range v.Lines() {
			if test(line, args) {
				out = append(out, line)
			}
		}
		return pipeline.LinesValue(out), nil
	}
}

func init() {
	value := []pipeline.Param{{Name: "value"}}
	span := []pipeline.Param{{Name: "begin"}, {Name: "end"}}

	// inrange keeps lines where begin <= line < end.
	register(&pipeline.Operation{
		Name: "inrange", Params: span,
		Input: pipeline.Lines, Output: pipeline.Lines,
		Fn: lineTestFn(func(line string, args pipeline.Args) bool {
			return line >= args.String("begin") && line < args.String("end")
		}),
	})

	// outrange keeps lines outside [begin, end).
	register(&pipeline.Operation{
		Name: "outrange", Params: span,
		Input: pipeline.Lines, Output: pipeline.Lines,
		Fn: lineTestFn(func(line string, args pipeline.Args) bool {
			return line < args.String("begin") || line >= args.String("end")
		}),
	})

	register(&pipeline.Operation{
		Name: "lessthan", Params: value,
		Input: pipeline.Lines, Output: pipeline.Lines,
		Fn: lineTestFn(func(line string, args pipeline.Args) bool {
			return line < args.String("value")
		}),
	})
	register(&pipeline.Operation{
		Name: "lessequal", Params: value,
		Input: pipeline.Lines, Output: pipeline.Lines,
		Fn: lineTestFn(func(line string, args pipeline.Args) bool {
			return line <= args.String("value")
		}),
	})
	register(&pipeline.Operation{
		Name: "greaterthan", Params: value,
		Input: pipeline.Lines, Output: pipeline.Lines,
		Fn: lineTestFn(func(line string, args pipeline.Args) bool {
			return line > args.String("value")
		}),
	})
	register(&pipeline.Operation{
		Name: "greaterequal", Params: value,
		Input: pipeline.Lines, Output: pipeline.Lines,
		Fn: lineTestFn(func(line string, args pipeline.Args) bool {
			return line >= args.String("value")
		}),
	})
}
