package lisp

import "strconv"

// Parser is a handwritten recursive-descent s-expression reader,
// grounded on original_source/src/parser.c: a whitespace-and-comment-
// skipping lexer feeding a recursive expr/list grammar, with no string
// escape processing (spec.md §4.4/§9 — an explicit open question the
// spec leaves unresolved, preserved here rather than invented).
type Parser struct {
	src    []byte
	pos    int
	symtab *SymbolTable
	gc     *Collector
}

// NewParser returns a parser over src. Pairs and strings produced while
// parsing are allocated through gc so they participate in collection
// like any other runtime-allocated value.
func NewParser(src []byte, symtab *SymbolTable, gc *Collector) *Parser {
	return &Parser{src: src, symtab: symtab, gc: gc}
}

func isDelim(b byte) bool {
	switch b {
	case '"', '(', ')', ' ', '\t', '\n':
		return true
	default:
		return false
	}
}

func (p *Parser) skipWhitespaceAndComments() {
	for p.pos < len(p.src) {
		c := p.src[p.pos]
		switch {
		case c == ' ' || c == '\t' || c == '\n' || c == '\r':
			p.pos++
		case c == ';':
			for p.pos < len(p.src) && p.src[p.pos] != '\n' {
				p.pos++
			}
		default:
			return
		}
	}
}

// ParseExpr reads the next top-level expression. ok is false (with a
// nil error) at true end-of-input; a non-nil error means malformed
// input was encountered.
func (p *Parser) ParseExpr() (Value, bool, *Error) {
	p.skipWhitespaceAndComments()
	if p.pos >= len(p.src) {
		return nil, false, nil
	}
	switch c := p.src[p.pos]; c {
	case '(':
		p.pos++
		return p.parseList()
	case ')':
		return nil, false, newError(ErrSyntax, Nil, "unexpected ')'")
	case '\'':
		p.pos++
		return p.parsePrefixed("QUOTE")
	case '`':
		p.pos++
		return p.parsePrefixed("QUASIQUOTE")
	case ',':
		p.pos++
		if p.pos < len(p.src) && p.src[p.pos] == '@' {
			p.pos++
			return p.parsePrefixed("UNQUOTE-SPLICING")
		}
		return p.parsePrefixed("UNQUOTE")
	case '"':
		return p.parseString()
	default:
		return p.parseAtom()
	}
}

func (p *Parser) parsePrefixed(formName string) (Value, bool, *Error) {
	inner, ok, err := p.ParseExpr()
	if err != nil {
		return nil, false, err
	}
	if !ok {
		return nil, false, newError(ErrSyntax, Nil, "unexpected end of input after '"+formName+"' prefix")
	}
	sym := p.symtab.Intern(formName)
	return p.gc.NewPair(sym, p.gc.NewPair(inner, Nil)), true, nil
}

// isDotToken reports whether the standalone "." token starts at pos:
// the byte is '.' and the following byte (or end of input) delimits a
// token, so "3.14"-shaped atoms are not mistaken for a dotted-pair
// marker.
func (p *Parser) isDotToken() bool {
	if p.src[p.pos] != '.' {
		return false
	}
	if p.pos+1 >= len(p.src) {
		return true
	}
	return isDelim(p.src[p.pos+1])
}

func (p *Parser) parseList() (Value, bool, *Error) {
	var elems []Value
	var tail Value = Nil

	for {
		p.skipWhitespaceAndComments()
		if p.pos >= len(p.src) {
			return nil, false, newError(ErrSyntax, Nil, "unexpected end of input in list")
		}
		if p.src[p.pos] == ')' {
			p.pos++
			break
		}
		if p.isDotToken() {
			p.pos++
			if len(elems) == 0 {
				return nil, false, newError(ErrSyntax, Nil, "'.' with no preceding list elements")
			}
			p.skipWhitespaceAndComments()
			tailExpr, ok, err := p.ParseExpr()
			if err != nil {
				return nil, false, err
			}
			if !ok {
				return nil, false, newError(ErrSyntax, Nil, "expected expression after '.'")
			}
			tail = tailExpr
			p.skipWhitespaceAndComments()
			if p.pos >= len(p.src) || p.src[p.pos] != ')' {
				return nil, false, newError(ErrSyntax, Nil, "expected ')' after dotted tail")
			}
			p.pos++
			break
		}
		expr, ok, err := p.ParseExpr()
		if err != nil {
			return nil, false, err
		}
		if !ok {
			return nil, false, newError(ErrSyntax, Nil, "unexpected end of input in list")
		}
		elems = append(elems, expr)
	}

	out := tail
	for i := len(elems) - 1; i >= 0; i-- {
		out = p.gc.NewPair(elems[i], out)
	}
	return out, true, nil
}

func (p *Parser) parseString() (Value, bool, *Error) {
	p.pos++ // opening quote
	start := p.pos
	for p.pos < len(p.src) && p.src[p.pos] != '"' {
		p.pos++
	}
	if p.pos >= len(p.src) {
		return nil, false, newError(ErrSyntax, Nil, "unterminated string literal")
	}
	content := p.src[start:p.pos]
	p.pos++ // closing quote
	return p.gc.NewString(content), true, nil
}

func (p *Parser) parseAtom() (Value, bool, *Error) {
	start := p.pos
	for p.pos < len(p.src) && !isDelim(p.src[p.pos]) {
		p.pos++
	}
	tok := string(p.src[start:p.pos])
	if tok == "" {
		return nil, false, newError(ErrSyntax, Nil, "empty token")
	}
	if n, err := strconv.ParseInt(tok, 10, 64); err == nil {
		return Integer(n), true, nil
	}
	if isNilToken(tok) {
		return Nil, true, nil
	}
	return p.symtab.Intern(tok), true, nil
}

func isNilToken(tok string) bool {
	if len(tok) != 3 {
		return false
	}
	return (tok[0] == 'n' || tok[0] == 'N') &&
		(tok[1] == 'i' || tok[1] == 'I') &&
		(tok[2] == 'l' || tok[2] == 'L')
}

// ParseAll reads every top-level expression in src, stopping at the
// first syntax error.
func ParseAll(src []byte, symtab *SymbolTable, gc *Collector) ([]Value, *Error) {
	p := NewParser(src, symtab, gc)
	var out []Value
	for {
		expr, ok, err := p.ParseExpr()
		if err != nil {
			return out, err
		}
		if !ok {
			return out, nil
		}
		out = append(out, expr)
	}
}
