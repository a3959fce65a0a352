package ops

import (
	"github.com/elapouya/go-textops/pipeline"
)

func sedFn(ignoreCase bool) pipeline.Transform {
	return func(v pipeline.Value, args pipeline.Args, env pipeline.Env) (pipeline.Value, error) {
		re, err := compile(args.String("pattern"), ignoreCase)
		if err != nil {
			return pipeline.Value{}, err
		}
		repl := args.String("replace")
		lines := v.Lines()
		out := make([]string, len(lines))
		for i, line := range lines {
			out[i] = re.ReplaceAllString(line, repl)
		}
		return pipeline.LinesValue(out), nil
	}
}

func init() {
	params := []pipeline.Param{{Name: "pattern"}, {Name: "replace", Default: ""}}

	// sed replaces every pattern match on each line. Regexp replacement
	// syntax applies ($1 for groups).
	register(&pipeline.Operation{
		Name: "sed", Params: params,
		Input: pipeline.Lines, Output: pipeline.Lines,
		Fn: sedFn(false),
	})
	register(&pipeline.Operation{
		Name: "sedi", Params: params,
		Input: pipeline.Lines, Output: pipeline.Lines,
		Fn: sedFn(true),
	})
}
