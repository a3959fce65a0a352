// Package opparser implements a parser for chain expressions.
//
// A chain expression composes registered operations into an unevaluated
// pipeline.Chain, using a shell-friendly pipe syntax:
//
//	grep("ERROR") | head(5) | tostr(sep=", ")
//
// Grammar:
//
//	chain   := call ('|' call)*
//	call    := IDENT [ '(' [ args ] ')' ]
//	args    := arg (',' arg)*
//	arg     := [ IDENT '=' ] literal
//	literal := STRING | INT | FLOAT | 'true' | 'false'
//
// Strings accept both double and single quotes so expressions can be
// passed inside shell single or double quotes without escaping. A '#'
// starts a comment running to end of line. Keyword arguments must
// follow positional ones, matching Chain.Op binding rules.
//
// The parser is structured as a hand-rolled recursive-descent parser in
// two layers: a Lexer converting source bytes into a token stream, and
// a parser consuming tokens and extending a chain step by step. Binding
// errors from the registry (unknown operation, bad arguments) are
// reported with the source position of the offending call.
//
// Usage:
//
//	chain, err := opparser.Parse([]byte(expr), pipeline.DefaultRegistry())
//	if err != nil {
//	    log.Fatal(err)
//	}
//	res, err := chain.Apply(input)
package opparser
