package opparser

// Position locates a token in the source expression.
type Position struct {
	Line   int // 1-based line number
	Column int // 1-based column number
	Offset int // 0-based byte offset into source
}

// TokenKind identifies the type of a lexical token.
type TokenKind int

const (
	TokenEOF TokenKind = iota
	TokenIdentifier // [A-Za-z_][A-Za-z0-9_]*
	TokenString     // "..." or '...' with escape processing
	TokenInteger    // -?[0-9]+
	TokenFloat      // -?[0-9]*.[0-9]+
	TokenPipe       // |
	TokenLParen     // (
	TokenRParen     // )
	TokenEquals     // =
	TokenComma      // ,

	// Keywords (identifier text checked against keyword map)
	TokenTrue  // true
	TokenFalse // false
)

var tokenNames = map[TokenKind]string{
	TokenEOF:        "EOF",
	TokenIdentifier: "identifier",
	TokenString:     "string",
	TokenInteger:    "integer",
	TokenFloat:      "float",
	TokenPipe:       "'|'",
	TokenLParen:     "'('",
	TokenRParen:     "')'",
	TokenEquals:     "'='",
	TokenComma:      "','",
	TokenTrue:       "'true'",
	TokenFalse:      "'false'",
}

func (k TokenKind) String() string {
	if name, ok := tokenNames[k]; ok {
		return name
	}
	return "unknown"
}

// Token is a single lexical unit produced by the Lexer.
type Token struct {
	Kind    TokenKind
	Literal string // text content (decoded for strings, raw for others)
	Pos     Position
}

// keywords maps keyword strings to their token kinds.
var keywords = map[string]TokenKind{
	"true":  TokenTrue,
	"false": TokenFalse,
}
