package opparser

import (
	"strconv"

	"github.com/elapouya/go-textops/pipeline"
)

// Parse parses a chain expression and binds each call against reg,
// returning the assembled chain. The chain is unevaluated; apply it
// with Chain.Apply.
func Parse(src []byte, reg *pipeline.Registry) (*pipeline.Chain, error) {
	p := &parser{lex: NewLexer(src), chain: pipeline.NewWith(reg)}
	return p.parseChain()
}

// ParseString is a convenience wrapper around Parse for string sources
// bound against the default registry.
func ParseString(src string) (*pipeline.Chain, error) {
	return Parse([]byte(src), pipeline.DefaultRegistry())
}

type parser struct {
	lex   *Lexer
	chain *pipeline.Chain
}

func (p *parser) peek() (Token, error) {
	return p.lex.Peek()
}

func (p *parser) next() (Token, error) {
	return p.lex.Next()
}

// expect consumes the next token and fails unless it has the given kind.
func (p *parser) expect(kind TokenKind) (Token, error) {
	tok, err := p.next()
	if err != nil {
		return Token{}, err
	}
	if tok.Kind != kind {
		return Token{}, &SyntaxError{
			ParseError: ParseError{Pos: tok.Pos},
			Expected:   kind.String(),
			Got:        describeToken(tok),
		}
	}
	return tok, nil
}

// parseChain parses call ('|' call)* EOF.
func (p *parser) parseChain() (*pipeline.Chain, error) {
	if err := p.parseCall(); err != nil {
		return nil, err
	}
	for {
		tok, err := p.next()
		if err != nil {
			return nil, err
		}
		switch tok.Kind {
		case TokenPipe:
			if err := p.parseCall(); err != nil {
				return nil, err
			}
		case TokenEOF:
			return p.chain, nil
		default:
			return nil, &SyntaxError{
				ParseError: ParseError{Pos: tok.Pos},
				Expected:   "'|' or EOF",
				Got:        describeToken(tok),
			}
		}
	}
}

// parseCall parses IDENT ['(' args ')'] and extends the chain with it.
func (p *parser) parseCall() error {
	name, err := p.expect(TokenIdentifier)
	if err != nil {
		return err
	}

	var args []any
	tok, err := p.peek()
	if err != nil {
		return err
	}
	if tok.Kind == TokenLParen {
		if _, err := p.next(); err != nil {
			return err
		}
		args, err = p.parseArgs()
		if err != nil {
			return err
		}
	}

	p.chain = p.chain.Op(name.Literal, args...)
	if bindErr := p.chain.Err(); bindErr != nil {
		return &BindError{
			ParseError: ParseError{
				Message: bindErr.Error(),
				Pos:     name.Pos,
				Cause:   bindErr,
			},
			Op: name.Literal,
		}
	}
	return nil
}

// parseArgs parses arg (',' arg)* ')' after the opening paren has been
// consumed. Keyword arguments are collected into a trailing Kw map.
func (p *parser) parseArgs() ([]any, error) {
	var positional []any
	kw := pipeline.Kw{}

	tok, err := p.peek()
	if err != nil {
		return nil, err
	}
	if tok.Kind == TokenRParen {
		if _, err := p.next(); err != nil {
			return nil, err
		}
		return nil, nil
	}

	for {
		if err := p.parseArg(&positional, kw); err != nil {
			return nil, err
		}
		tok, err := p.next()
		if err != nil {
			return nil, err
		}
		switch tok.Kind {
		case TokenComma:
			continue
		case TokenRParen:
			if len(kw) > 0 {
				return append(positional, kw), nil
			}
			return positional, nil
		default:
			return nil, &SyntaxError{
				ParseError: ParseError{Pos: tok.Pos},
				Expected:   "',' or ')'",
				Got:        describeToken(tok),
			}
		}
	}
}

// parseArg parses a single argument. A bare identifier always starts a
// keyword argument since string literals are quoted.
func (p *parser) parseArg(positional *[]any, kw pipeline.Kw) error {
	tok, err := p.peek()
	if err != nil {
		return err
	}

	if tok.Kind == TokenIdentifier {
		if _, err := p.next(); err != nil {
			return err
		}
		if _, err := p.expect(TokenEquals); err != nil {
			return err
		}
		val, err := p.parseLiteral()
		if err != nil {
			return err
		}
		kw[tok.Literal] = val
		return nil
	}

	if len(kw) > 0 {
		return &SyntaxError{
			ParseError: ParseError{Pos: tok.Pos},
			Expected:   "keyword argument",
			Got:        describeToken(tok),
		}
	}
	val, err := p.parseLiteral()
	if err != nil {
		return err
	}
	*positional = append(*positional, val)
	return nil
}

// parseLiteral parses STRING | INT | FLOAT | true | false into a Go value.
func (p *parser) parseLiteral() (any, error) {
	tok, err := p.next()
	if err != nil {
		return nil, err
	}
	switch tok.Kind {
	case TokenString:
		return tok.Literal, nil
	case TokenInteger:
		n, convErr := strconv.Atoi(tok.Literal)
		if convErr != nil {
			return nil, &SyntaxError{
				ParseError: ParseError{Pos: tok.Pos, Cause: convErr},
				Expected:   "integer",
				Got:        strconv.Quote(tok.Literal),
			}
		}
		return n, nil
	case TokenFloat:
		f, convErr := strconv.ParseFloat(tok.Literal, 64)
		if convErr != nil {
			return nil, &SyntaxError{
				ParseError: ParseError{Pos: tok.Pos, Cause: convErr},
				Expected:   "float",
				Got:        strconv.Quote(tok.Literal),
			}
		}
		return f, nil
	case TokenTrue:
		return true, nil
	case TokenFalse:
		return false, nil
	default:
		return nil, &SyntaxError{
			ParseError: ParseError{Pos: tok.Pos},
			Expected:   "literal value",
			Got:        describeToken(tok),
		}
	}
}

// describeToken renders a token for error messages, quoting literal text
// where it helps.
func describeToken(tok Token) string {
	switch tok.Kind {
	case TokenIdentifier, TokenString:
		return strconv.Quote(tok.Literal)
	case TokenInteger, TokenFloat:
		return tok.Literal
	default:
		return tok.Kind.String()
	}
}
