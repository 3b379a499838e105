package lexer_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Olusamimaths/GQL/lexer"
	"github.com/Olusamimaths/GQL/token"
)

func TestTokenizeBasicSelect(t *testing.T) {
	tokens, err := lexer.Tokenize("SELECT name FROM commits WHERE name = \"bob\"")
	require.Nil(t, err)

	var kinds []token.Kind
	for _, tok := range tokens {
		kinds = append(kinds, tok.Kind)
	}
	assert.Equal(t, []token.Kind{
		token.Select, token.Symbol, token.From, token.Symbol,
		token.Where, token.Symbol, token.Equal, token.String, token.EOF,
	}, kinds)
}

func TestTokenizeOperators(t *testing.T) {
	tokens, err := lexer.Tokenize(":= == != <= >= <=> << >> ..")
	require.Nil(t, err)

	var kinds []token.Kind
	for _, tok := range tokens[:len(tokens)-1] {
		kinds = append(kinds, tok.Kind)
	}
	assert.Equal(t, []token.Kind{
		token.ColonEqual, token.EqualEqual, token.BangEqual, token.LessEqual,
		token.GreaterEqual, token.NullSafeEqual, token.BitwiseShiftLeft,
		token.BitwiseShiftRight, token.DotDot,
	}, kinds)
}

func TestTokenizeGlobalVariable(t *testing.T) {
	tokens, err := lexer.Tokenize("@x")
	require.Nil(t, err)
	require.Len(t, tokens, 2)
	assert.Equal(t, token.GlobalVariable, tokens[0].Kind)
	assert.Equal(t, "x", tokens[0].Literal)
}

func TestTokenizeUnterminatedString(t *testing.T) {
	_, err := lexer.Tokenize(`"unterminated`)
	require.NotNil(t, err)
}

func TestTokenizeMalformedInteger(t *testing.T) {
	_, err := lexer.Tokenize("99999999999999999999")
	require.NotNil(t, err)
}

func TestTokenizeKeywordCaseInsensitive(t *testing.T) {
	tokens, err := lexer.Tokenize("select Select SELECT")
	require.Nil(t, err)
	for _, tok := range tokens[:3] {
		assert.Equal(t, token.Select, tok.Kind)
	}
}
