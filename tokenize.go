// Copyright (C) 2025 Michael J. Fromberger. All Rights Reserved.

package jevents

import (
	"errors"
	"fmt"
	"io"
)

// Tokenize scans data and returns a flat array of tokens in source order.
// The token array is the tree of the source value flattened: a composite
// token is followed immediately by its children, and its Size field records
// the number of direct children. In case of a malformed source, Tokenize
// returns a positioned error and no tokens.
func Tokenize(data []byte) ([]Token, error) { return tokenize(data, false) }

func tokenize(data []byte, comments bool) ([]Token, error) {
	p := &parser{lx: &lexer{data: data, comments: comments}}
	if err := p.advance(); err == io.EOF {
		return nil, errors.New("empty input")
	} else if err != nil {
		return nil, err
	}
	if err := p.parseValue(-1); err != nil {
		return nil, err
	}
	if err := p.advance(); err == nil {
		return nil, p.failf("trailing %v after value", p.lx.tok)
	} else if err != io.EOF {
		return nil, err
	}
	return p.toks, nil
}

// A parser assembles the token array from the lexical token stream.
// It enforces the JSON grammar; the resulting array is structurally
// consistent by construction.
type parser struct {
	lx   *lexer
	toks []Token
}

// advance fetches the next lexical token, discarding comments.
func (p *parser) advance() error {
	for {
		if err := p.lx.next(); err != nil {
			return err
		}
		if p.lx.tok == lexComment {
			continue
		}
		return nil
	}
}

// add appends a token for the current lexical token and returns its index.
// If parent is a valid index, the parent's child count is incremented.
func (p *parser) add(kind Kind, parent int) int {
	if parent >= 0 {
		p.toks[parent].Size++
	}
	p.toks = append(p.toks, Token{Kind: kind, Pos: p.lx.pos, End: p.lx.end})
	return len(p.toks) - 1
}

// parseValue consumes a single value of any type as a child of parent.
// Precondition: the lexer is positioned on the value's first token.
func (p *parser) parseValue(parent int) error {
	switch tok := p.lx.tok; tok {
	case lexLBrace:
		return p.parseObject(parent)
	case lexLSquare:
		return p.parseArray(parent)
	case lexString:
		p.add(String, parent)
		return nil
	case lexNumber, lexTrue, lexFalse, lexNull:
		p.add(Primitive, parent)
		return nil
	default:
		return p.failf("unexpected %v", tok)
	}
}

// parseObject consumes zero or more key:value object members.
// Precondition: the current token is LBrace.
func (p *parser) parseObject(parent int) error {
	idx := p.add(Object, parent)
	if err := p.advanceTo("field name or \"}\""); err != nil {
		return err
	}
	if p.lx.tok == lexRBrace {
		p.toks[idx].End = p.lx.end
		return nil
	}
	for {
		// Parse a single member: "key": value
		if p.lx.tok != lexString {
			return p.failf("expected field name, got %v", p.lx.tok)
		}
		p.add(String, idx)
		if err := p.require(lexColon); err != nil {
			return err
		}
		if err := p.advanceTo("value"); err != nil {
			return err
		}
		if err := p.parseValue(idx); err != nil {
			return err
		}

		// Check whether we have more members (",") or are done ("}").
		if err := p.advanceTo(`"," or "}"`); err != nil {
			return err
		}
		if p.lx.tok == lexRBrace {
			p.toks[idx].End = p.lx.end
			return nil
		} else if p.lx.tok != lexComma {
			return p.failf(`expected "," or "}", got %v`, p.lx.tok)
		}
		if err := p.advanceTo("field name"); err != nil {
			return err
		}
	}
}

// parseArray consumes zero or more comma-separated array values.
// Precondition: the current token is LSquare.
func (p *parser) parseArray(parent int) error {
	idx := p.add(Array, parent)
	if err := p.advanceTo(`value or "]"`); err != nil {
		return err
	}
	if p.lx.tok == lexRSquare {
		p.toks[idx].End = p.lx.end
		return nil
	}
	for {
		if err := p.parseValue(idx); err != nil {
			return err
		}
		if err := p.advanceTo(`"," or "]"`); err != nil {
			return err
		}
		if p.lx.tok == lexRSquare {
			p.toks[idx].End = p.lx.end
			return nil
		} else if p.lx.tok != lexComma {
			return p.failf(`expected "," or "]", got %v`, p.lx.tok)
		}
		if err := p.advanceTo("value"); err != nil {
			return err
		}
	}
}

// require advances to the next token and checks that it is tok.
func (p *parser) require(tok lexToken) error {
	if err := p.advanceTo(tok.String()); err != nil {
		return err
	}
	if p.lx.tok != tok {
		return p.failf("expected %v, got %v", tok, p.lx.tok)
	}
	return nil
}

// advanceTo advances to the next token, reporting an error mentioning the
// desired label if the input ends early.
func (p *parser) advanceTo(label string) error {
	if err := p.advance(); err == io.EOF {
		return p.failf("expected %s, got end of input", label)
	} else if err != nil {
		return err
	}
	return nil
}

func (p *parser) failf(msg string, args ...any) error {
	return posError{p.lx.pos, fmt.Errorf(msg, args...)}
}
