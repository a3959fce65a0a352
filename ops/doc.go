// Package ops is the standard operation catalog. Importing it registers
// every operation into pipeline.DefaultRegistry, so chains built with
// pipeline.New can use them by name:
//
//	import (
//	    "github.com/elapouya/go-textops/ops"
//	    "github.com/elapouya/go-textops/pipeline"
//	)
//
//	var _ = ops.Catalog // imported for registration
//
//	res, err := pipeline.New().Op("grep", "ERROR").Op("head", 5).Apply(text)
//
// Families:
//
//   - grep family: grep, grepi, grepv, grepvi, grepc, grepci, grepcv,
//     haspattern, haspatterni, rmblank
//   - sed family: sed, sedi
//   - span family: first, last, head, tail, skip, slice
//   - range family: before, beforei, after, afteri, between, betweeni,
//     betweenb, betweenbi
//   - line tests: inrange, outrange, lessthan, lessequal, greaterthan,
//     greaterequal
//   - cut family: cut, cutre, todict
//   - casting and reduction: length, count, toint, tofloat, tostr,
//     tolist, uniq, sort, reverse, strip, lower, upper
//   - formatting: echo, render, formatitems
//   - parsing: parsekv, parseindented, fromyaml, fromjson
//   - input: cat
//
// Per-operation behavior for missing data is documented on each
// operation's registration; there is no catalog-wide rule.
package ops
