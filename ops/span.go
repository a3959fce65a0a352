package ops

import (
	"github.com/elapouya/go-textops/pipeline"
)

// clamp maps an index into [0, n]; negative indexes count from the end.
func clamp(i, n int) int {
	if i < 0 {
		i += n
	}
	if i < 0 {
		return 0
	}
	if i > n {
		return n
	}
	return i
}

func init() {
	// first returns the first line as Text, "" when there are no lines.
	register(&pipeline.Operation{
		Name:  "first",
		Input: pipeline.Lines, Output: pipeline.Text,
		Fn: func(v pipeline.Value, args pipeline.Args, env pipeline.Env) (pipeline.Value, error) {
			lines := v.Lines()
			if len(lines) == 0 {
				return pipeline.TextValue(""), nil
			}
			return pipeline.TextValue(lines[0]), nil
		},
	})

	// last returns the last line as Text, "" when there are no lines.
	register(&pipeline.Operation{
		Name:  "last",
		Input: pipeline.Lines, Output: pipeline.Text,
		Fn: func(v pipeline.Value, args pipeline.Args, env pipeline.Env) (pipeline.Value, error) {
			lines := v.Lines()
			if len(lines) == 0 {
				return pipeline.TextValue(""), nil
			}
			return pipeline.TextValue(lines[len(lines)-1]), nil
		},
	})

	// head keeps the first n lines.
	register(&pipeline.Operation{
		Name: "head", Params: []pipeline.Param{{Name: "n"}},
		Input: pipeline.Lines, Output: pipeline.Lines,
		Fn: func(v pipeline.Value, args pipeline.Args, env pipeline.Env) (pipeline.Value, error) {
			lines := v.Lines()
			n := clamp(args.Int("n"), len(lines))
			return pipeline.LinesValue(lines[:n]), nil
		},
	})

	// tail keeps the last n lines.
	register(&pipeline.Operation{
		Name: "tail", Params: []pipeline.Param{{Name: "n"}},
		Input: pipeline.Lines, Output: pipeline.Lines,
		Fn: func(v pipeline.Value, args pipeline.Args, env pipeline.Env) (pipeline.Value, error) {
			lines := v.Lines()
			n := clamp(args.Int("n"), len(lines))
			return pipeline.LinesValue(lines[len(lines)-n:]), nil
		},
	})

	// skip drops the first n lines.
	register(&pipeline.Operation{
		Name: "skip", Params: []pipeline.Param{{Name: "n"}},
		Input: pipeline.Lines, Output: pipeline.Lines,
		Fn: func(v pipeline.Value, args pipeline.Args, env pipeline.Env) (pipeline.Value, error) {
			lines := v.Lines()
			n := clamp(args.Int("n"), len(lines))
			return pipeline.LinesValue(lines[n:]), nil
		},
	})

	// slice keeps lines[begin:end); negative indexes count from the
	// end, out-of-range indexes clamp, an inverted range is empty.
	register(&pipeline.Operation{
		Name:   "slice",
		Params: []pipeline.Param{{Name: "begin"}, {Name: "end"}},
		Input:  pipeline.Lines, Output: pipeline.Lines,
		Fn: func(v pipeline.Value, args pipeline.Args, env pipeline.Env) (pipeline.Value, error) {
			lines := v.Lines()
			begin := clamp(args.Int("begin"), len(lines))
			end := clamp(args.Int("end"), len(lines))
			if begin > end {
				return pipeline.LinesValue(nil), nil
			}
			return pipeline.LinesValue(lines[begin:end]), nil
		},
	})
}
