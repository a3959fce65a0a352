package ops

import (
	"os"

	"github.com/elapouya/go-textops/pipeline"
)

func init() {
	// cat replaces the current value with a file's content as Lines.
	// Unlike a File input, cat runs as a step: a missing or unreadable
	// file is an OperationError under the active policy, so a
	// collecting pipeline continues with empty Lines.
	register(&pipeline.Operation{
		Name:   "cat",
		Params: []pipeline.Param{{Name: "path"}},
		Input:  pipeline.Any, Output: pipeline.Lines,
		Fn: func(v pipeline.Value, args pipeline.Args, env pipeline.Env) (pipeline.Value, error) {
			data, err := os.ReadFile(args.String("path"))
			if err != nil {
				return pipeline.Value{}, err
			}
			return pipeline.LinesValue(pipeline.SplitLines(string(data))), nil
		},
	})
}
