package ast

import (
	"fmt"
)

// Grammar (spec.md §4.E):
//
//	Spec    ::= Ident ( '(' ArgList? ')' )?
//	ArgList ::= Arg (',' Arg)*
//	Arg     ::= Ident '=' Spec | Spec | Number
//
// Identifiers begin [A-Za-z_] and continue [A-Za-z0-9_]. Whitespace is
// insignificant. Numbers are digit runs. Positional arguments must precede
// keyword arguments.

// ParseError reports a malformed configuration string, annotated with the
// byte offset at which parsing failed.
type ParseError struct {
	Pos int
	Msg string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("ast: parse error at offset %d: %s", e.Pos, e.Msg)
}

type parser struct {
	s   string
	pos int
}

// Parse parses s as a Spec and returns its root node. It returns an error if
// s contains a syntax error or trailing garbage after a complete Spec.
func Parse(s string) (Node, error) {
	p := &parser{s: s}
	p.skipSpace()
	n, err := p.parseSpec()
	if err != nil {
		return nil, err
	}
	p.skipSpace()
	if !p.atEnd() {
		return nil, &ParseError{Pos: p.pos, Msg: "unexpected trailing input"}
	}
	return n, nil
}

// ParseList parses a top-level bracketed value list "[ v1, v2, ... ]".
func ParseList(s string) (*Object, error) {
	p := &parser{s: s}
	p.skipSpace()
	n, err := p.parseList()
	if err != nil {
		return nil, err
	}
	p.skipSpace()
	if !p.atEnd() {
		return nil, &ParseError{Pos: p.pos, Msg: "unexpected trailing input"}
	}
	return n, nil
}

func (p *parser) atEnd() bool { return p.pos >= len(p.s) }

func (p *parser) peek() byte {
	if p.atEnd() {
		return 0
	}
	return p.s[p.pos]
}

func (p *parser) skipSpace() {
	for !p.atEnd() {
		switch p.s[p.pos] {
		case ' ', '\t', '\n', '\r':
			p.pos++
		default:
			return
		}
	}
}

func isIdentStart(b byte) bool {
	return b == '_' || (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z')
}

func isIdentCont(b byte) bool {
	return isIdentStart(b) || (b >= '0' && b <= '9')
}

func isDigit(b byte) bool { return b >= '0' && b <= '9' }

// parseSpec parses "Ident ( '(' ArgList? ')' )?".
func (p *parser) parseSpec() (Node, error) {
	p.skipSpace()
	if p.peek() == '[' {
		return p.parseList()
	}
	if isDigit(p.peek()) {
		return p.parseNumber()
	}
	name, err := p.parseIdent()
	if err != nil {
		return nil, err
	}
	p.skipSpace()
	if p.peek() != '(' {
		return NewValue(name), nil
	}
	p.pos++ // consume '('
	p.skipSpace()
	var params []*Param
	if p.peek() != ')' {
		params, err = p.parseArgList()
		if err != nil {
			return nil, err
		}
	}
	p.skipSpace()
	if p.peek() != ')' {
		return nil, &ParseError{Pos: p.pos, Msg: "expected ')'"}
	}
	p.pos++ // consume ')'
	return NewObject(name, params), nil
}

func (p *parser) parseList() (*Object, error) {
	if p.peek() != '[' {
		return nil, &ParseError{Pos: p.pos, Msg: "expected '['"}
	}
	p.pos++
	p.skipSpace()
	var items []Node
	for p.peek() != ']' {
		if !p.atEnd() && len(items) > 0 {
			if p.peek() != ',' {
				return nil, &ParseError{Pos: p.pos, Msg: "expected ',' or ']'"}
			}
			p.pos++
			p.skipSpace()
		}
		n, err := p.parseSpec()
		if err != nil {
			return nil, err
		}
		items = append(items, n)
		p.skipSpace()
	}
	p.pos++ // consume ']'
	return NewList(items), nil
}

func (p *parser) parseIdent() (string, error) {
	start := p.pos
	if !isIdentStart(p.peek()) {
		return "", &ParseError{Pos: p.pos, Msg: "expected identifier"}
	}
	p.pos++
	for !p.atEnd() && isIdentCont(p.s[p.pos]) {
		p.pos++
	}
	return p.s[start:p.pos], nil
}

func (p *parser) parseNumber() (Node, error) {
	start := p.pos
	if !isDigit(p.peek()) {
		return nil, &ParseError{Pos: p.pos, Msg: "expected number"}
	}
	for !p.atEnd() && isDigit(p.s[p.pos]) {
		p.pos++
	}
	return NewValue(p.s[start:p.pos]), nil
}

// parseArgList parses "Arg (',' Arg)*" enforcing that positional args
// precede keyword args.
func (p *parser) parseArgList() ([]*Param, error) {
	var params []*Param
	sawKeyword := false
	for {
		param, err := p.parseArg()
		if err != nil {
			return nil, err
		}
		if param.IsPositional() {
			if sawKeyword {
				return nil, &ParseError{Pos: p.pos, Msg: "positional argument follows keyword argument"}
			}
		} else {
			sawKeyword = true
		}
		params = append(params, param)
		p.skipSpace()
		if p.peek() != ',' {
			break
		}
		p.pos++
		p.skipSpace()
	}
	return params, nil
}

// parseArg parses "Ident '=' Spec | Spec | Number", disambiguating a leading
// "Ident '='" by backtracking if no '=' follows the identifier.
func (p *parser) parseArg() (*Param, error) {
	p.skipSpace()
	if isIdentStart(p.peek()) {
		save := p.pos
		name, err := p.parseIdent()
		if err == nil {
			afterIdent := p.pos
			p.skipSpace()
			if p.peek() == '=' {
				p.pos++
				p.skipSpace()
				val, err := p.parseSpec()
				if err != nil {
					return nil, err
				}
				return &Param{Name: name, Value: val}, nil
			}
			p.pos = afterIdent
		}
		p.pos = save
	}
	val, err := p.parseSpec()
	if err != nil {
		return nil, err
	}
	return &Param{Value: val}, nil
}
