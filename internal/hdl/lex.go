// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package hdl

import (
	"strconv"
	"unicode"
	"unicode/utf8"
)

// Type is a token type.
//
type Type int

// Tokens
const (
	EOF Type = iota
	Raw
	Ident
	BracketOpen
	BracketClose
	Comma
	Int
	Range
	Equal
)

var typeNames = [...]string{
	EOF:          "end of input",
	Raw:          "character",
	Ident:        "identifier",
	BracketOpen:  "'['",
	BracketClose: "']'",
	Comma:        "','",
	Int:          "integer",
	Range:        "'..'",
	Equal:        "'='",
}

func (t Type) String() string {
	if t >= 0 && int(t) < len(typeNames) {
		return typeNames[t]
	}
	return "token(" + strconv.Itoa(int(t)) + ")"
}

const maxInt = int(^uint(0) >> 1)

// Item is a lexed token. Pos is the byte offset of the token in the input.
// The Value of an Int token that does not fit in an int is -1.
//
type Item struct {
	Type  Type
	Pos   int
	Value interface{}
}

func (i Item) String() string {
	switch i.Type {
	case Ident:
		return "identifier " + strconv.Quote(i.Value.(string))
	case Int:
		return "integer " + strconv.Itoa(i.Value.(int))
	case Raw:
		return "character " + strconv.QuoteRune(i.Value.(rune))
	}
	return i.Type.String()
}

// Lexer splits i/o specs and connection descriptions into tokens.
//
type Lexer struct {
	input string
	pos   int
	done  bool
}

// NewLexer returns a new lexer for the given input.
//
func NewLexer(input string) *Lexer {
	return &Lexer{input: input}
}

func (l *Lexer) next() (rune, int) {
	if l.pos >= len(l.input) {
		return utf8.RuneError, 0
	}
	return utf8.DecodeRuneInString(l.input[l.pos:])
}

// Lex returns the next token. Once EOF or an invalid character has been
// returned, Lex only returns EOF.
//
func (l *Lexer) Lex() Item {
	if l.done {
		return Item{Type: EOF, Pos: len(l.input)}
	}
	for {
		r, w := l.next()
		if w == 0 {
			l.done = true
			return Item{Type: EOF, Pos: l.pos}
		}
		if !unicode.IsSpace(r) {
			break
		}
		l.pos += w
	}

	start := l.pos
	r, w := l.next()
	switch {
	case unicode.IsLetter(r) || r == '_':
		l.pos += w
		for {
			r, w = l.next()
			if w == 0 || !(unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_') {
				break
			}
			l.pos += w
		}
		return Item{Type: Ident, Pos: start, Value: l.input[start:l.pos]}
	case '0' <= r && r <= '9':
		n := 0
		for w > 0 && '0' <= r && r <= '9' {
			d := int(r - '0')
			if n >= 0 {
				if n > (maxInt-d)/10 {
					n = -1
				} else {
					n = n*10 + d
				}
			}
			l.pos += w
			r, w = l.next()
		}
		return Item{Type: Int, Pos: start, Value: n}
	case r == '[':
		l.pos += w
		return Item{Type: BracketOpen, Pos: start}
	case r == ']':
		l.pos += w
		return Item{Type: BracketClose, Pos: start}
	case r == ',':
		l.pos += w
		return Item{Type: Comma, Pos: start}
	case r == '=':
		l.pos += w
		return Item{Type: Equal, Pos: start}
	case r == '.' && l.pos+1 < len(l.input) && l.input[l.pos+1] == '.':
		l.pos += 2
		return Item{Type: Range, Pos: start}
	}
	l.done = true
	return Item{Type: Raw, Pos: start, Value: r}
}
