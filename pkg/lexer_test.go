package syntax

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func allTokens(t *testing.T, src string) []Token {
	t.Helper()
	l := NewLexerFromText(src, UnknownSource{})
	var toks []Token
	for {
		tok, err := l.Token()
		require.NoError(t, err)
		if !tok.IsValid() {
			break
		}
		toks = append(toks, tok)
	}
	return toks
}

func TestLexerSimpleWords(t *testing.T) {
	toks := allTokens(t, "echo hi")
	require.Len(t, toks, 2)
	for _, tok := range toks {
		assert.Equal(t, TokenWord, tok.ID.Kind)
	}
	s, ok := toks[0].Word.StringIfLiteral()
	require.True(t, ok)
	assert.Equal(t, "echo", s)
}

func TestLexerRecognizesKeyword(t *testing.T) {
	toks := allTokens(t, "if")
	require.Len(t, toks, 1)
	assert.Equal(t, TokenKeyword, toks[0].ID.Kind)
	assert.Equal(t, KeywordIf, toks[0].ID.Keyword)
}

func TestLexerRecognizesOperators(t *testing.T) {
	toks := allTokens(t, "a && b || c; d & e | f")
	var kinds []OperatorKind
	for _, tok := range toks {
		if tok.ID.Kind == TokenOperator {
			kinds = append(kinds, tok.ID.Operator)
		}
	}
	assert.Equal(t, []OperatorKind{OpAndIf, OpOrIf, OpSemi, OpAnd, OpPipe}, kinds)
}

func TestLexerLongestOperatorMatchWins(t *testing.T) {
	toks := allTokens(t, "a<<-b")
	var ops []OperatorKind
	for _, tok := range toks {
		if tok.ID.Kind == TokenOperator {
			ops = append(ops, tok.ID.Operator)
		}
	}
	require.Len(t, ops, 1)
	assert.Equal(t, OpDLessDash, ops[0])
}

func TestLexerIoNumberOnlyBeforeRedirection(t *testing.T) {
	toks := allTokens(t, "2> file")
	require.True(t, len(toks) >= 1)
	assert.Equal(t, TokenIoNumber, toks[0].ID.Kind)

	toks2 := allTokens(t, "2 file")
	assert.Equal(t, TokenWord, toks2[0].ID.Kind)
}

func TestLexerSingleQuoteIsFullyLiteral(t *testing.T) {
	toks := allTokens(t, `'a$b\c'`)
	require.Len(t, toks, 1)
	require.Len(t, toks[0].Word.Units, 1)
	sq, ok := toks[0].Word.Units[0].(SingleQuote)
	require.True(t, ok)
	assert.Equal(t, `a$b\c`, string(sq))
}

func TestLexerUnclosedSingleQuoteErrors(t *testing.T) {
	l := NewLexerFromText(`'abc`, UnknownSource{})
	_, err := l.Token()
	require.Error(t, err)
	var synErr *SyntaxError
	require.ErrorAs(t, err, &synErr)
	assert.Equal(t, CauseUnclosedSingleQuote, synErr.Cause)
}

func TestLexerUnclosedDoubleQuoteErrors(t *testing.T) {
	l := NewLexerFromText(`"abc`, UnknownSource{})
	_, err := l.Token()
	require.Error(t, err)
	var synErr *SyntaxError
	require.ErrorAs(t, err, &synErr)
	assert.Equal(t, CauseUnclosedDoubleQuote, synErr.Cause)
}

func TestLexerDoubleQuoteEscapesOnlySpecialChars(t *testing.T) {
	toks := allTokens(t, `"a\$b\"c\\d\q"`)
	require.Len(t, toks, 1)
	dq, ok := toks[0].Word.Units[0].(DoubleQuote)
	require.True(t, ok)
	assert.Equal(t, `a$b"c\d\q`, dq.Content.String())
}

func TestLexerBackquoteCommandSubstitution(t *testing.T) {
	toks := allTokens(t, "`echo hi`")
	require.Len(t, toks, 1)
	uq, ok := toks[0].Word.Units[0].(Unquoted)
	require.True(t, ok)
	bq, ok := uq.Unit.(BackquoteText)
	require.True(t, ok)
	assert.Equal(t, "echo hi", backquoteString(bq.Content))
}

func TestLexerUnclosedBackquoteErrors(t *testing.T) {
	l := NewLexerFromText("`echo hi", UnknownSource{})
	_, err := l.Token()
	require.Error(t, err)
	var synErr *SyntaxError
	require.ErrorAs(t, err, &synErr)
	assert.Equal(t, CauseUnclosedBackquote, synErr.Cause)
}

func TestLexerCommandSubstitution(t *testing.T) {
	toks := allTokens(t, "$(echo hi)")
	require.Len(t, toks, 1)
	uq, ok := toks[0].Word.Units[0].(Unquoted)
	require.True(t, ok)
	cs, ok := uq.Unit.(CommandSubstText)
	require.True(t, ok)
	assert.Equal(t, "echo hi", cs.Content)
}

func TestLexerCommandSubstitutionWithNestedParens(t *testing.T) {
	toks := allTokens(t, "$(echo $(echo hi))")
	require.Len(t, toks, 1)
	uq := toks[0].Word.Units[0].(Unquoted)
	cs := uq.Unit.(CommandSubstText)
	assert.Equal(t, "echo $(echo hi)", cs.Content)
}

func TestLexerUnclosedCommandSubstitutionErrors(t *testing.T) {
	l := NewLexerFromText("$(echo hi", UnknownSource{})
	_, err := l.Token()
	require.Error(t, err)
	var synErr *SyntaxError
	require.ErrorAs(t, err, &synErr)
	assert.Equal(t, CauseUnclosedCommandSubstitution, synErr.Cause)
}

func TestLexerArithmeticExpansion(t *testing.T) {
	toks := allTokens(t, "$((1+2))")
	require.Len(t, toks, 1)
	uq := toks[0].Word.Units[0].(Unquoted)
	arith, ok := uq.Unit.(ArithText)
	require.True(t, ok)
	assert.Equal(t, "1+2", arith.Content.String())
}

func TestLexerArithmeticExpansionWithNestedParens(t *testing.T) {
	toks := allTokens(t, "$(( (1+2) * 3 ))")
	require.Len(t, toks, 1)
	uq := toks[0].Word.Units[0].(Unquoted)
	arith := uq.Unit.(ArithText)
	assert.Equal(t, " (1+2) * 3 ", arith.Content.String())
}

func TestLexerUnclosedArithErrors(t *testing.T) {
	l := NewLexerFromText("$((1+2)", UnknownSource{})
	_, err := l.Token()
	require.Error(t, err)
	var synErr *SyntaxError
	require.ErrorAs(t, err, &synErr)
	assert.Equal(t, CauseUnclosedArith, synErr.Cause)
}

func TestLexerDollarFollowedByOrdinaryParenIsCommandSubst(t *testing.T) {
	// A single '(' with no second '(' must fall through to command
	// substitution, rewinding cleanly past the arithmetic attempt.
	toks := allTokens(t, "$(echo hi)")
	uq := toks[0].Word.Units[0].(Unquoted)
	_, isCmdSubst := uq.Unit.(CommandSubstText)
	assert.True(t, isCmdSubst)
}

func TestLexerLineContinuationInsideWord(t *testing.T) {
	toks := allTokens(t, "ab\\\ncd")
	require.Len(t, toks, 1)
	s, ok := toks[0].Word.StringIfLiteral()
	require.True(t, ok)
	assert.Equal(t, "abcd", s)
}

func TestLexerNewlineIsOperator(t *testing.T) {
	toks := allTokens(t, "a\nb")
	require.Len(t, toks, 3)
	assert.Equal(t, TokenOperator, toks[1].ID.Kind)
	assert.Equal(t, OpNewline, toks[1].ID.Operator)
}

func TestLexerHereDocBodyUnquotedDelimiterRecognizesExpansions(t *testing.T) {
	l := NewLexerFromText("body $(echo x)\nEOF\n", UnknownSource{})
	delim := litWord("EOF")
	text, quoted, err := l.readHereDocBody(delim, false)
	require.NoError(t, err)
	assert.False(t, quoted)
	found := false
	for _, u := range text.Units {
		if _, ok := u.(CommandSubstText); ok {
			found = true
		}
	}
	assert.True(t, found)
}

func TestLexerHereDocBodyQuotedDelimiterIsLiteral(t *testing.T) {
	l := NewLexerFromText("literal $(not a subst)\nEOF\n", UnknownSource{})
	delim := Word{Units: []WordUnit{SingleQuote("EOF")}}
	text, quoted, err := l.readHereDocBody(delim, false)
	require.NoError(t, err)
	assert.True(t, quoted)
	assert.Equal(t, "literal $(not a subst)\n", text.String())
}

func TestLexerHereDocBodyRemovesLeadingTabs(t *testing.T) {
	l := NewLexerFromText("\t\tindented\n\tEOF\n", UnknownSource{})
	delim := litWord("EOF")
	text, _, err := l.readHereDocBody(delim, true)
	require.NoError(t, err)
	assert.Equal(t, "indented\n", text.String())
}

func TestLexerHereDocBodyUnclosedErrors(t *testing.T) {
	l := NewLexerFromText("body\nmore\n", UnknownSource{})
	delim := litWord("EOF")
	_, _, err := l.readHereDocBody(delim, false)
	require.Error(t, err)
	var synErr *SyntaxError
	require.ErrorAs(t, err, &synErr)
	assert.Equal(t, CauseUnclosedHereDoc, synErr.Cause)
}

func TestLexerMarkAndReset(t *testing.T) {
	l := NewLexerFromText("abc", UnknownSource{})
	m := l.mark()

	r, _, ok, err := l.consumeCharIf(func(rune) bool { return true })
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, 'a', r)

	l.reset(m)
	r2, _, ok, err := l.consumeCharIf(func(rune) bool { return true })
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, 'a', r2)
}
