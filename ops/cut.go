package ops

import (
	"fmt"
	"strings"

	"github.com/elapouya/go-textops/pipeline"
)

func init() {
	// cut splits each line on sep (whitespace runs when sep is empty)
	// and keeps column col. Lines without that column are dropped.
	register(&pipeline.Operation{
		Name: "cut",
		Params: []pipeline.Param{
			{Name: "sep", Default: ""},
			{Name: "col", Default: 0},
		},
		Input: pipeline.Lines, Output: pipeline.Lines,
		Fn: func(v pipeline.Value, args pipeline.Args, env pipeline.Env) (pipeline.Value, error) {
			sep := args.String("sep")
			col := args.Int("col")
			var out []string
			for _, line := range v.Lines() {
				var fields []string
				if sep == "" {
					fields = strings.Fields(line)
				} else {
					fields = strings.Split(line, sep)
				}
				if idx := pickColumn(col, len(fields)); idx >= 0 {
					out = append(out, fields[idx])
				}
			}
			return pipeline.LinesValue(out), nil
		},
	})

	// cutre is cut with a regexp separator.
	register(&pipeline.Operation{
		Name: "cutre",
		Params: []pipeline.Param{
			{Name: "pattern"},
			{Name: "col", Default: 0},
		},
		Input: pipeline.Lines, Output: pipeline.Lines,
		Fn: func(v pipeline.Value, args pipeline.Args, env pipeline.Env) (pipeline.Value, error) {
			re, err := compile(args.String("pattern"), false)
			if err != nil {
				return pipeline.Value{}, err
			}
			col := args.Int("col")
			var out []string
			for _, line := range v.Lines() {
				fields := re.Split(line, -1)
				if idx := pickColumn(col, len(fields)); idx >= 0 {
					out = append(out, fields[idx])
				}
			}
			return pipeline.LinesValue(out), nil
		},
	})

	// todict splits each line on the first sep into a key/value pair,
	// trimming whitespace around both. Blank lines are skipped; a
	// non-blank line without sep is a data error.
	register(&pipeline.Operation{
		Name:   "todict",
		Params: []pipeline.Param{{Name: "sep", Default: ":"}},
		Input:  pipeline.Lines, Output: pipeline.Mapping,
		Fn: func(v pipeline.Value, args pipeline.Args, env pipeline.Env) (pipeline.Value, error) {
			sep := args.String("sep")
			m := pipeline.NewMap()
			for _, line := range v.Lines() {
				if strings.TrimSpace(line) == "" {
					continue
				}
				key, val, found := strings.Cut(line, sep)
				if !found {
					return pipeline.Value{}, fmt.Errorf("line %q has no separator %q", line, sep)
				}
				m.Set(strings.TrimSpace(key), strings.TrimSpace(val))
			}
			return pipeline.MapValue(m), nil
		},
	})
}

// pickColumn maps col (negative counts from the end) to a valid index,
// or -1 when the column does not exist.
func pickColumn(col, n int) int {
	if col < 0 {
		col += n
	}
	if col < 0 || col >= n {
		return -1
	}
	return col
}
