// Package lexer implements the hand-written tokenizer: a lossless,
// single-pass lex of query source text into a slice of token.Token
// values, tracking byte offsets for diagnostics.
package lexer

import (
	"strconv"
	"strings"

	"github.com/Olusamimaths/GQL/diagnostic"
	"github.com/Olusamimaths/GQL/token"
)

type tokenizer struct {
	input  string
	pos    int
	tokens []token.Token
}

// Tokenize converts GitQL source text into tokens, or reports the first
// lex error (invalid escape, unterminated string, malformed number) as a
// *diagnostic.Diagnostic.
func Tokenize(input string) ([]token.Token, *diagnostic.Diagnostic) {
	t := &tokenizer{input: input}
	if err := t.run(); err != nil {
		return nil, err
	}
	t.tokens = append(t.tokens, token.Token{
		Kind:     token.EOF,
		Location: token.Location{Start: len(input), End: len(input)},
	})
	return t.tokens, nil
}

func (t *tokenizer) run() *diagnostic.Diagnostic {
	for t.pos < len(t.input) {
		ch := t.input[t.pos]

		if ch == ' ' || ch == '\t' || ch == '\n' || ch == '\r' {
			t.pos++
			continue
		}

		switch {
		case ch == '(':
			t.single(token.LeftParen)
		case ch == ')':
			t.single(token.RightParen)
		case ch == '[':
			t.single(token.LeftBracket)
		case ch == ']':
			t.single(token.RightBracket)
		case ch == ',':
			t.single(token.Comma)
		case ch == ';':
			t.single(token.Semicolon)
		case ch == '+':
			t.single(token.Plus)
		case ch == '*':
			t.single(token.Star)
		case ch == '/':
			t.single(token.Slash)
		case ch == '%':
			t.single(token.Percent)
		case ch == '^':
			t.single(token.BitwiseXor)
		case ch == '~':
			t.single(token.BitwiseNot)
		case ch == '.':
			if t.peekAt(1) == '.' {
				t.multi(token.DotDot, 2)
			} else {
				t.single(token.Dot)
			}
		case ch == ':':
			if t.peekAt(1) == '=' {
				t.multi(token.ColonEqual, 2)
			} else {
				t.single(token.Colon)
			}
		case ch == '=':
			if t.peekAt(1) == '=' {
				t.multi(token.EqualEqual, 2)
			} else {
				t.single(token.Equal)
			}
		case ch == '!':
			if t.peekAt(1) == '=' {
				t.multi(token.BangEqual, 2)
			} else {
				t.single(token.Bang)
			}
		case ch == '<':
			switch {
			case t.peekAt(1) == '=' && t.peekAt(2) == '>':
				t.multi(token.NullSafeEqual, 3)
			case t.peekAt(1) == '>':
				t.multi(token.LessGreater, 2)
			case t.peekAt(1) == '=':
				t.multi(token.LessEqual, 2)
			case t.peekAt(1) == '<':
				t.multi(token.BitwiseShiftLeft, 2)
			default:
				t.single(token.Less)
			}
		case ch == '>':
			switch {
			case t.peekAt(1) == '=':
				t.multi(token.GreaterEqual, 2)
			case t.peekAt(1) == '>':
				t.multi(token.BitwiseShiftRight, 2)
			default:
				t.single(token.Greater)
			}
		case ch == '-':
			t.single(token.Minus)
		case ch == '|':
			t.single(token.BitwiseOr)
		case ch == '&':
			t.single(token.BitwiseAnd)
		case ch == '"' || ch == '\'':
			if err := t.scanString(ch); err != nil {
				return err
			}
		case ch == '@':
			if err := t.scanGlobalVariable(); err != nil {
				return err
			}
		case isDigit(ch):
			if err := t.scanNumber(); err != nil {
				return err
			}
		case isIdentStart(ch):
			t.scanIdentifier()
		default:
			return diagnostic.Newf("unexpected character %q", string(ch)).
				WithLocation(token.Location{Start: t.pos, End: t.pos + 1})
		}
	}
	return nil
}

func (t *tokenizer) peekAt(offset int) byte {
	if t.pos+offset >= len(t.input) {
		return 0
	}
	return t.input[t.pos+offset]
}

func (t *tokenizer) single(kind token.Kind) {
	start := t.pos
	t.pos++
	t.emit(kind, t.input[start:t.pos], start, t.pos)
}

func (t *tokenizer) multi(kind token.Kind, length int) {
	start := t.pos
	t.pos += length
	t.emit(kind, t.input[start:t.pos], start, t.pos)
}

func (t *tokenizer) emit(kind token.Kind, literal string, start, end int) {
	t.tokens = append(t.tokens, token.Token{
		Kind:     kind,
		Literal:  literal,
		Location: token.Location{Start: start, End: end},
	})
}

func isDigit(ch byte) bool { return ch >= '0' && ch <= '9' }

func isIdentStart(ch byte) bool {
	return ch == '_' || (ch >= 'a' && ch <= 'z') || (ch >= 'A' && ch <= 'Z')
}

func isIdentCont(ch byte) bool {
	return isIdentStart(ch) || isDigit(ch)
}

func (t *tokenizer) scanIdentifier() {
	start := t.pos
	for t.pos < len(t.input) && isIdentCont(t.input[t.pos]) {
		t.pos++
	}
	literal := t.input[start:t.pos]
	if kind, ok := token.LookupKeyword(literal); ok {
		t.emit(kind, literal, start, t.pos)
		return
	}
	t.emit(token.Symbol, literal, start, t.pos)
}

func (t *tokenizer) scanGlobalVariable() *diagnostic.Diagnostic {
	start := t.pos
	t.pos++ // consume '@'
	nameStart := t.pos
	for t.pos < len(t.input) && isIdentCont(t.input[t.pos]) {
		t.pos++
	}
	if t.pos == nameStart {
		return diagnostic.New("expect identifier after `@`").
			WithLocation(token.Location{Start: start, End: t.pos})
	}
	t.emit(token.GlobalVariable, t.input[nameStart:t.pos], start, t.pos)
	return nil
}

func (t *tokenizer) scanNumber() *diagnostic.Diagnostic {
	start := t.pos
	for t.pos < len(t.input) && isDigit(t.input[t.pos]) {
		t.pos++
	}

	isFloat := false
	if t.pos < len(t.input) && t.input[t.pos] == '.' && t.peekAt(1) != '.' && isDigit(t.peekAt(1)) {
		isFloat = true
		t.pos++ // consume '.'
		for t.pos < len(t.input) && isDigit(t.input[t.pos]) {
			t.pos++
		}
	}

	literal := t.input[start:t.pos]
	loc := token.Location{Start: start, End: t.pos}

	if isFloat {
		if _, err := strconv.ParseFloat(literal, 64); err != nil {
			return diagnostic.Newf("malformed float literal `%s`", literal).WithLocation(loc)
		}
		t.emit(token.Float, literal, start, t.pos)
		return nil
	}

	if _, err := strconv.ParseInt(literal, 10, 64); err != nil {
		return diagnostic.Newf("malformed integer literal `%s`, must fit in a signed 64-bit integer", literal).
			WithLocation(loc)
	}
	t.emit(token.Integer, literal, start, t.pos)
	return nil
}

func (t *tokenizer) scanString(quote byte) *diagnostic.Diagnostic {
	start := t.pos
	t.pos++ // consume opening quote

	var b strings.Builder
	for {
		if t.pos >= len(t.input) {
			return diagnostic.New("unterminated string literal").
				WithLocation(token.Location{Start: start, End: t.pos}).
				AddHelp("add a closing quote matching the opening one")
		}
		ch := t.input[t.pos]
		if ch == quote {
			t.pos++
			break
		}
		if ch == '\\' {
			t.pos++
			if t.pos >= len(t.input) {
				return diagnostic.New("unterminated escape sequence in string literal").
					WithLocation(token.Location{Start: start, End: t.pos})
			}
			escaped, err := unescape(t.input[t.pos])
			if err != nil {
				return diagnostic.Newf("invalid escape sequence `\\%c`", t.input[t.pos]).
					WithLocation(token.Location{Start: t.pos - 1, End: t.pos + 1})
			}
			b.WriteByte(escaped)
			t.pos++
			continue
		}
		b.WriteByte(ch)
		t.pos++
	}

	t.emit(token.String, b.String(), start, t.pos)
	return nil
}

func unescape(ch byte) (byte, error) {
	switch ch {
	case 'n':
		return '\n', nil
	case 't':
		return '\t', nil
	case 'r':
		return '\r', nil
	case '\\':
		return '\\', nil
	case '\'':
		return '\'', nil
	case '"':
		return '"', nil
	case '0':
		return 0, nil
	default:
		return 0, errUnknownEscape
	}
}

var errUnknownEscape = &unescapeError{}

type unescapeError struct{}

func (*unescapeError) Error() string { return "unknown escape" }
