package syntax

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAliasLayerSubstitutesInCommandPosition(t *testing.T) {
	aliases := NewAliasSet()
	aliases.Insert(&Alias{Name: "ll", Replacement: "ls -l"})

	lexer := NewLexerFromText("ll", UnknownSource{})
	layer := NewAliasLayer(lexer, aliases)

	tok, err := layer.Next(true)
	require.NoError(t, err)
	s, ok := tok.Word.StringIfLiteral()
	require.True(t, ok)
	assert.Equal(t, "ls", s)

	tok, err = layer.Next(false)
	require.NoError(t, err)
	s, ok = tok.Word.StringIfLiteral()
	require.True(t, ok)
	assert.Equal(t, "-l", s)
}

func TestAliasLayerDoesNotSubstituteOutsideCommandPositionUnlessGlobal(t *testing.T) {
	aliases := NewAliasSet()
	aliases.Insert(&Alias{Name: "ll", Replacement: "ls -l"})

	lexer := NewLexerFromText("ll", UnknownSource{})
	layer := NewAliasLayer(lexer, aliases)

	tok, err := layer.Next(false)
	require.NoError(t, err)
	s, ok := tok.Word.StringIfLiteral()
	require.True(t, ok)
	assert.Equal(t, "ll", s, "non-command-position lookup of a non-global alias must not substitute")
}

func TestAliasLayerGlobalAliasSubstitutesOutsideCommandPosition(t *testing.T) {
	aliases := NewAliasSet()
	aliases.Insert(&Alias{Name: "ll", Replacement: "ls -l", Global: true})

	lexer := NewLexerFromText("ll", UnknownSource{})
	layer := NewAliasLayer(lexer, aliases)

	tok, err := layer.Next(false)
	require.NoError(t, err)
	s, ok := tok.Word.StringIfLiteral()
	require.True(t, ok)
	assert.Equal(t, "ls", s)
}

func TestAliasLayerTrailingBlankCarriesEligibility(t *testing.T) {
	// "sudo " ends in a blank, so the word immediately following the
	// substitution ("ll") is itself alias-eligible even though the parser
	// only asked for a command-position word once.
	aliases := NewAliasSet()
	aliases.Insert(&Alias{Name: "sudo", Replacement: "sudo ", Global: false})
	aliases.Insert(&Alias{Name: "ll", Replacement: "ls -l"})

	lexer := NewLexerFromText("sudo ll", UnknownSource{})
	layer := NewAliasLayer(lexer, aliases)

	tok, err := layer.Next(true)
	require.NoError(t, err)
	s, _ := tok.Word.StringIfLiteral()
	assert.Equal(t, "sudo", s)
	assert.True(t, layer.IsGlobalEligibleCarry())

	tok, err = layer.Next(false)
	require.NoError(t, err)
	s, _ = tok.Word.StringIfLiteral()
	assert.Equal(t, "ls", s, "trailing blank on sudo's replacement should make ll eligible for substitution")
}

func TestAliasLayerDoesNotReExpandItself(t *testing.T) {
	aliases := NewAliasSet()
	aliases.Insert(&Alias{Name: "ls", Replacement: "ls --color"})

	lexer := NewLexerFromText("ls", UnknownSource{})
	layer := NewAliasLayer(lexer, aliases)

	tok, err := layer.Next(true)
	require.NoError(t, err)
	s, _ := tok.Word.StringIfLiteral()
	assert.Equal(t, "ls", s, "self-referential alias must not recurse forever")

	tok, err = layer.Next(false)
	require.NoError(t, err)
	s, _ = tok.Word.StringIfLiteral()
	assert.Equal(t, "--color", s)
}

func TestAliasLayerNilSetNeverSubstitutes(t *testing.T) {
	lexer := NewLexerFromText("ll", UnknownSource{})
	layer := NewAliasLayer(lexer, nil)

	tok, err := layer.Next(true)
	require.NoError(t, err)
	s, _ := tok.Word.StringIfLiteral()
	assert.Equal(t, "ll", s)
}

func TestEndsInBlank(t *testing.T) {
	assert.True(t, endsInBlank("foo "))
	assert.True(t, endsInBlank("foo\t"))
	assert.False(t, endsInBlank("foo"))
	assert.False(t, endsInBlank(""))
}
