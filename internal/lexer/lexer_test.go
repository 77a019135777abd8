package lexer_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"pgschemadiff/internal/lexer"
	"pgschemadiff/internal/token"
)

func kinds(toks []token.Token) []token.Kind {
	out := make([]token.Kind, len(toks))
	for i, t := range toks {
		out[i] = t.Kind
	}
	return out
}

func TestTokenizeSimpleCreateTable(t *testing.T) {
	toks := lexer.Tokenize(`CREATE TABLE users (id INTEGER);`)
	require.Equal(t, []token.Kind{
		token.CREATE, token.TABLE, token.IDENT, token.LPAREN,
		token.IDENT, token.IDENT, token.RPAREN, token.SEMICOLON, token.EOF,
	}, kinds(toks))
}

func TestKeywordCaseInsensitive(t *testing.T) {
	for _, variant := range []string{"CREATE", "create", "Create", "cReAtE"} {
		toks := lexer.Tokenize(variant)
		require.Equal(t, token.CREATE, toks[0].Kind, "variant %q", variant)
	}
}

func TestQuotedIdentifierStripsQuotes(t *testing.T) {
	toks := lexer.Tokenize(`"My Table"`)
	require.Equal(t, token.IDENT, toks[0].Kind)
	require.Equal(t, "My Table", toks[0].Text)
}

func TestStringLiteralEscapes(t *testing.T) {
	toks := lexer.Tokenize(`'it''s here'`)
	require.Equal(t, token.STRING, toks[0].Kind)
	require.Equal(t, "it's here", toks[0].Text)
}

func TestUnterminatedStringIsError(t *testing.T) {
	toks := lexer.Tokenize(`'unterminated`)
	require.Equal(t, token.ERROR, toks[0].Kind)
}

func TestCommentsSkipped(t *testing.T) {
	toks := lexer.Tokenize("-- comment\nCREATE /* inline */ TABLE")
	require.Equal(t, []token.Kind{token.CREATE, token.TABLE, token.EOF}, kinds(toks))
}

func TestPositionsOneBasedAndEOFTerminates(t *testing.T) {
	toks := lexer.Tokenize("CREATE\nTABLE")
	for _, tk := range toks {
		require.GreaterOrEqual(t, tk.Line, 1)
		require.GreaterOrEqual(t, tk.Column, 1)
	}
	require.Equal(t, token.EOF, toks[len(toks)-1].Kind)
	// Exactly one EOF in the stream.
	eofCount := 0
	for _, tk := range toks {
		if tk.Kind == token.EOF {
			eofCount++
		}
	}
	require.Equal(t, 1, eofCount)

	tableTok := toks[1]
	require.Equal(t, 2, tableTok.Line)
	require.Equal(t, 1, tableTok.Column)
}

func TestDoubleColonAndBrackets(t *testing.T) {
	toks := lexer.Tokenize(`x::int[]`)
	require.Equal(t, []token.Kind{
		token.IDENT, token.DOUBLECOLON, token.IDENT, token.LBRACKET, token.RBRACKET, token.EOF,
	}, kinds(toks))
}

func TestNumberLiterals(t *testing.T) {
	toks := lexer.Tokenize(`100 3.14`)
	require.Equal(t, token.NUMBER, toks[0].Kind)
	require.Equal(t, "100", toks[0].Text)
	require.Equal(t, token.NUMBER, toks[1].Kind)
	require.Equal(t, "3.14", toks[1].Text)
}

func TestOperatorRunsTokenizeAsOneToken(t *testing.T) {
	toks := lexer.Tokenize(`age >= 0`)
	require.Equal(t, []token.Kind{token.IDENT, token.OPERATOR, token.NUMBER, token.EOF}, kinds(toks))
	require.Equal(t, ">=", toks[1].Text)

	toks = lexer.Tokenize(`a <> b`)
	require.Equal(t, "<>", toks[1].Text)
}

func TestEOFIdempotent(t *testing.T) {
	l := lexer.NewFromString("CREATE")
	_ = l.Next()
	first := l.Next()
	second := l.Next()
	require.Equal(t, token.EOF, first.Kind)
	require.Equal(t, token.EOF, second.Kind)
}
