package ops

import (
	"sort"
	"strconv"
	"strings"

	"github.com/elapouya/go-textops/pipeline"
)

// eachLineFn builds a Lines -> Lines transform applying fn to every
// line.
func eachLineFn(fn func(string) string) pipeline.Transform {
	return func(v pipeline.Value, args pipeline.Args, env pipeline.Env) (pipeline.Value, error) {
		lines := v.Lines()
		out := make([]string, len(lines))
		for i, line := range lines {
			out[i] = fn(line)
		}
		return pipeline.LinesValue(out), nil
	}
}

func init() {
	// length measures the input: characters of Text, lines of Lines,
	// pairs of a Mapping.
	register(&pipeline.Operation{
		Name:  "length",
		Input: pipeline.Any, Output: pipeline.Any,
		Fn: func(v pipeline.Value, args pipeline.Args, env pipeline.Env) (pipeline.Value, error) {
			switch v.Shape() {
			case pipeline.Text:
				return pipeline.AnyValue(len(v.Text())), nil
			case pipeline.Lines:
				return pipeline.AnyValue(len(v.Lines())), nil
			case pipeline.Mapping:
				return pipeline.AnyValue(v.Map().Len()), nil
			default:
				return pipeline.AnyValue(0), nil
			}
		},
	})

	// count is the line count (wc -l).
	register(&pipeline.Operation{
		Name:  "count",
		Input: pipeline.Lines, Output: pipeline.Any,
		Fn: func(v pipeline.Value, args pipeline.Args, env pipeline.Env) (pipeline.Value, error) {
			return pipeline.AnyValue(len(v.Lines())), nil
		},
	})

	// toint parses the input as a float and truncates; unparseable
	// input yields 0, never an error.
	register(&pipeline.Operation{
		Name:  "toint",
		Input: pipeline.Text, Output: pipeline.Any,
		Fn: func(v pipeline.Value, args pipeline.Args, env pipeline.Env) (pipeline.Value, error) {
			f, err := strconv.ParseFloat(strings.TrimSpace(v.Text()), 64)
			if err != nil {
				return pipeline.AnyValue(0), nil
			}
			return pipeline.AnyValue(int(f)), nil
		},
	})

	// tofloat parses the input as a float; unparseable input yields 0.
	register(&pipeline.Operation{
		Name:  "tofloat",
		Input: pipeline.Text, Output: pipeline.Any,
		Fn: func(v pipeline.Value, args pipeline.Args, env pipeline.Env) (pipeline.Value, error) {
			f, err := strconv.ParseFloat(strings.TrimSpace(v.Text()), 64)
			if err != nil {
				return pipeline.AnyValue(0.0), nil
			}
			return pipeline.AnyValue(f), nil
		},
	})

	// tostr joins lines into Text with sep.
	register(&pipeline.Operation{
		Name:   "tostr",
		Params: []pipeline.Param{{Name: "sep", Default: "\n"}},
		Input:  pipeline.Lines, Output: pipeline.Text,
		Fn: func(v pipeline.Value, args pipeline.Args, env pipeline.Env) (pipeline.Value, error) {
			return pipeline.TextValue(strings.Join(v.Lines(), args.String("sep"))), nil
		},
	})

	// tolist forces the Lines shape, splitting Text on line boundaries
	// and stringifying mappings and scalars through the standard
	// coercions.
	register(&pipeline.Operation{
		Name:  "tolist",
		Input: pipeline.Any, Output: pipeline.Lines,
		Fn: func(v pipeline.Value, args pipeline.Args, env pipeline.Env) (pipeline.Value, error) {
			switch v.Shape() {
			case pipeline.Lines:
				return v, nil
			case pipeline.Text, pipeline.Mapping:
				return pipeline.Coerce(v, pipeline.Lines)
			default:
				text, err := pipeline.Coerce(v, pipeline.Text)
				if err != nil {
					return pipeline.Value{}, err
				}
				return pipeline.LinesValue([]string{text.Text()}), nil
			}
		},
	})

	// uniq drops duplicate lines, keeping the first occurrence.
	register(&pipeline.Operation{
		Name:  "uniq",
		Input: pipeline.Lines, Output: pipeline.Lines,
		Fn: func(v pipeline.Value, args pipeline.Args, env pipeline.Env) (pipeline.Value, error) {
			seen := make(map[string]struct{})
			var out []string
			for _, line := range v.Lines() {
				if _, dup := seen[line]; dup {
					continue
				}
				seen[line] = struct{}{}
				out = append(out, line)
			}
			return pipeline.LinesValue(out), nil
		},
	})

	// sort orders lines lexicographically.
	register(&pipeline.Operation{
		Name:   "sort",
		Params: []pipeline.Param{{Name: "reverse", Default: false}},
		Input:  pipeline.Lines, Output: pipeline.Lines,
		Fn: func(v pipeline.Value, args pipeline.Args, env pipeline.Env) (pipeline.Value, error) {
			lines := v.Lines()
			out := make([]string, len(lines))
			copy(out, lines)
			if args.Bool("reverse") {
				sort.Sort(sort.Reverse(sort.StringSlice(out)))
			} else {
				sort.Strings(out)
			}
			return pipeline.LinesValue(out), nil
		},
	})

	// reverse flips line order.
	register(&pipeline.Operation{
		Name:  "reverse",
		Input: pipeline.Lines, Output: pipeline.Lines,
		Fn: func(v pipeline.Value, args pipeline.Args, env pipeline.Env) (pipeline.Value, error) {
			lines := v.Lines()
			out := make([]string, len(lines))
			for i, line := range lines {
				out[len(lines)-1-i] = line
			}
			return pipeline.LinesValue(out), nil
		},
	})

	register(&pipeline.Operation{
		Name:  "strip",
		Input: pipeline.Lines, Output: pipeline.Lines,
		Fn:    eachLineFn(strings.TrimSpace),
	})
	register(&pipeline.Operation{
		Name:  "lower",
		Input: pipeline.Lines, Output: pipeline.Lines,
		Fn:    eachLineFn(strings.ToLower),
	})
	register(&pipeline.Operation{
		Name:  "upper",
		Input: pipeline.Lines, Output: pipeline.Lines,
		Fn:    eachLineFn(strings.ToUpper),
	})
}
