package ops

import (
	"github.com/elapouya/go-textops/pipeline"
)

func init() {
	// echo replaces the current value with a literal, substituting
	// {key} placeholders from the env. A missing key is an EnvError;
	// echo has no default substitution.
	register(&pipeline.Operation{
		Name:     "echo",
		Params:   []pipeline.Param{{Name: "text"}},
		Input:    pipeline.Any,
		Output:   pipeline.Text,
		NeedsEnv: true,
		Fn: func(v pipeline.Value, args pipeline.Args, env pipeline.Env) (pipeline.Value, error) {
			s, err := pipeline.Format(args.String("text"), env)
			if err != nil {
				return pipeline.Value{}, err
			}
			return pipeline.TextValue(s), nil
		},
	})

	// render formats the mapping through a template: {key} placeholders
	// resolve from the mapping first, then from the env. Missing keys
	// substitute the default parameter ("-"), never an error.
	register(&pipeline.Operation{
		Name: "render",
		Params: []pipeline.Param{
			{Name: "format"},
			{Name: "default", Default: "-"},
		},
		Input:    pipeline.Mapping,
		Output:   pipeline.Text,
		NeedsEnv: true,
		Fn: func(v pipeline.Value, args pipeline.Args, env pipeline.Env) (pipeline.Value, error) {
			data := env.Merge(mapEnv(v.Map()))
			s := pipeline.FormatDefault(args.String("format"), data, args.String("default"))
			return pipeline.TextValue(s), nil
		},
	})

	// formatitems renders one line per mapping pair through a template
	// with {key} and {val} placeholders.
	register(&pipeline.Operation{
		Name:   "formatitems",
		Params: []pipeline.Param{{Name: "format", Default: "{key} : {val}"}},
		Input:  pipeline.Mapping, Output: pipeline.Lines,
		Fn: func(v pipeline.Value, args pipeline.Args, env pipeline.Env) (pipeline.Value, error) {
			m := v.Map()
			format := args.String("format")
			lines := make([]string, 0, m.Len())
			for _, k := range m.Keys() {
				val, _ := m.Get(k)
				lines = append(lines, pipeline.FormatDefault(format, pipeline.Env{"key": k, "val": val}, "-"))
			}
			return pipeline.LinesValue(lines), nil
		},
	})
}

// mapEnv exposes a mapping's pairs as an Env for template resolution.
func mapEnv(m *pipeline.Map) pipeline.Env {
	env := make(pipeline.Env, m.Len())
	for _, k := range m.Keys() {
		v, _ := m.Get(k)
		env[k] = v
	}
	return env
}
