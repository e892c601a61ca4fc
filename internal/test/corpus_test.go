package test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGetRandomTokensReturnsRequestedCount(t *testing.T) {
	s := GetRandomTokens(10)
	toks := strings.Split(s, " ")
	assert.Len(t, toks, 10)
}

func TestGetRandomTokensWithSepUsesSeparator(t *testing.T) {
	s := GetRandomTokensWithSep(5, "\n")
	toks := strings.Split(s, "\n")
	assert.Len(t, toks, 5)
}

func TestGetRandomTokensOnlyDrawsFromVocabulary(t *testing.T) {
	valid := make(map[string]bool)
	for _, tok := range strings.Split(validShellTokens, ";") {
		valid[tok] = true
	}

	s := GetRandomTokens(200)
	for _, tok := range strings.Split(s, " ") {
		assert.True(t, valid[tok], "unexpected token %q not in vocabulary", tok)
	}
}
