package ops

import (
	"regexp"

	"github.com/elapouya/go-textops/pipeline"
)

// Catalog can be referenced to make the registration import explicit:
//
//	var _ = ops.Catalog
var Catalog = struct{}{}

func register(op *pipeline.Operation) {
	pipeline.MustRegister(op)
}

// compile builds the regexp for a pattern parameter, optionally
// case-insensitive. A pattern that fails to compile is a data error
// intrinsic to the operation, surfaced through the engine as an
// OperationError.
func compile(pattern string, ignoreCase bool) (*regexp.Regexp, error) {
	if ignoreCase {
		pattern = "(?i)" + pattern
	}
	return regexp.Compile(pattern)
}
