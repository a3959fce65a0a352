package ops

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/elapouya/go-textops/pipeline"
)

func init() {
	// parsekv extracts key/value pairs from lines matching a regexp
	// with named groups "key" and "val". Non-matching lines are
	// skipped.
	register(&pipeline.Operation{
		Name:   "parsekv",
		Params: []pipeline.Param{{Name: "pattern"}},
		Input:  pipeline.Lines, Output: pipeline.Mapping,
		Fn: func(v pipeline.Value, args pipeline.Args, env pipeline.Env) (pipeline.Value, error) {
			re, err := compile(args.String("pattern"), false)
			if err != nil {
				return pipeline.Value{}, err
			}
			keyIdx, valIdx := re.SubexpIndex("key"), re.SubexpIndex("val")
			if keyIdx < 0 || valIdx < 0 {
				return pipeline.Value{}, fmt.Errorf("pattern must define named groups \"key\" and \"val\"")
			}

			m := pipeline.NewMap()
			for _, line := range v.Lines() {
				groups := re.FindStringSubmatch(line)
				if groups == nil {
					continue
				}
				m.Set(groups[keyIdx], groups[valIdx])
			}
			return pipeline.MapValue(m), nil
		},
	})

	// parseindented reads "key : value" text where nesting is expressed
	// by indentation. Nested keys flatten into dotted paths
	// ("b.c": "val"). The separator is the first sep on the line.
	register(&pipeline.Operation{
		Name:   "parseindented",
		Params: []pipeline.Param{{Name: "sep", Default: ":"}},
		Input:  pipeline.Lines, Output: pipeline.Mapping,
		Fn: func(v pipeline.Value, args pipeline.Args, env pipeline.Env) (pipeline.Value, error) {
			return parseIndented(v.Lines(), args.String("sep"))
		},
	})

	// fromyaml decodes YAML text into a Mapping, flattening nested
	// structures into dotted keys. Map keys sort at each level since
	// YAML mappings carry no reliable order here.
	register(&pipeline.Operation{
		Name:  "fromyaml",
		Input: pipeline.Text, Output: pipeline.Mapping,
		Fn: func(v pipeline.Value, args pipeline.Args, env pipeline.Env) (pipeline.Value, error) {
			var doc map[string]any
			if err := yaml.Unmarshal([]byte(v.Text()), &doc); err != nil {
				return pipeline.Value{}, err
			}
			return flattenDoc(doc), nil
		},
	})

	// fromjson decodes a JSON object like fromyaml.
	register(&pipeline.Operation{
		Name:  "fromjson",
		Input: pipeline.Text, Output: pipeline.Mapping,
		Fn: func(v pipeline.Value, args pipeline.Args, env pipeline.Env) (pipeline.Value, error) {
			var doc map[string]any
			if err := json.Unmarshal([]byte(v.Text()), &doc); err != nil {
				return pipeline.Value{}, err
			}
			return flattenDoc(doc), nil
		},
	})
}

// parseIndented builds dotted keys from an indentation stack.
func parseIndented(lines []string, sep string) (pipeline.Value, error) {
	type level struct {
		indent int
		path   string
	}

	m := pipeline.NewMap()
	var stack []level
	for _, line := range lines {
		if strings.TrimSpace(line) == "" {
			continue
		}
		indent := len(line) - len(strings.TrimLeft(line, " \t"))
		key, val, found := strings.Cut(strings.TrimSpace(line), sep)
		if !found {
			return pipeline.Value{}, fmt.Errorf("line %q has no separator %q", line, sep)
		}
		key = strings.TrimSpace(key)
		val = strings.TrimSpace(val)

		for len(stack) > 0 && indent <= stack[len(stack)-1].indent {
			stack = stack[:len(stack)-1]
		}
		path := key
		if len(stack) > 0 {
			path = stack[len(stack)-1].path + "." + key
		}

		if val == "" {
			stack = append(stack, level{indent: indent, path: path})
			continue
		}
		m.Set(path, val)
	}
	return pipeline.MapValue(m), nil
}

// flattenDoc converts a decoded document into an ordered Mapping with
// dotted keys, sorting sibling keys for determinism.
func flattenDoc(doc map[string]any) pipeline.Value {
	m := pipeline.NewMap()
	flattenInto(m, "", doc)
	return pipeline.MapValue(m)
}

func flattenInto(m *pipeline.Map, prefix string, doc map[string]any) {
	keys := make([]string, 0, len(doc))
	for k := range doc {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, k := range keys {
		path := k
		if prefix != "" {
			path = prefix + "." + k
		}
		switch val := doc[k].(type) {
		case map[string]any:
			flattenInto(m, path, val)
		case []any:
			for i, item := range val {
				itemPath := fmt.Sprintf("%s.%d", path, i)
				if nested, ok := item.(map[string]any); ok {
					flattenInto(m, itemPath, nested)
				} else {
					m.Set(itemPath, fmt.Sprintf("%v", item))
				}
			}
		default:
			m.Set(path, fmt.Sprintf("%v", val))
		}
	}
}
