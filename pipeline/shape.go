package pipeline

// Shape identifies the canonical representation category of a value
// flowing through a chain.
type Shape int

const (
	// Any means no fixed representation. As an input shape it disables
	// coercion; as an output shape it tags scalar results (counts,
	// booleans, parsed numbers).
	Any Shape = iota

	// Text is a single string, possibly spanning multiple lines.
	Text

	// Lines is an ordered sequence of strings.
	Lines

	// Mapping is an insertion-ordered set of string key/value pairs.
	Mapping
)

var shapeNames = map[Shape]string{
	Any:     "any",
	Text:    "text",
	Lines:   "lines",
	Mapping: "mapping",
}

func (s Shape) String() string {
	if name, ok := shapeNames[s]; ok {
		return name
	}
	return "unknown"
}
