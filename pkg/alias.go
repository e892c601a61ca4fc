package syntax

// AliasLayer sits between the Lexer and the parser, performing alias
// substitution: a word token in an alias-eligible position is replaced by
// virtually prepending its alias's replacement text to the lexer's input
// and re-lexing, rather than returning the token as-is.
//
// Eligibility for the NEXT call is tracked across calls by the trailing-
// blank rule: if an alias's replacement text ends in a blank, the token
// immediately following the substitution is eligible even outside command
// position. The parser otherwise controls eligibility by telling Next
// whether the token it is asking for is in command-word position.
type AliasLayer struct {
	lexer        *Lexer
	aliases      *AliasSet
	eligibleNext bool
}

// NewAliasLayer creates an AliasLayer reading tokens from lexer, consulting
// aliases for substitution. aliases may be nil, in which case Next never
// substitutes.
func NewAliasLayer(lexer *Lexer, aliases *AliasSet) *AliasLayer {
	return &AliasLayer{lexer: lexer, aliases: aliases}
}

// Next returns the next token, substituting aliases as long as the word
// keeps landing in an eligible position. commandPosition is true when the
// caller is asking for a word that begins a simple command (or follows a
// control operator / reserved word that itself starts a new command).
func (a *AliasLayer) Next(commandPosition bool) (Token, error) {
	for {
		// carry is the blank-trailing eligibility left over from the
		// previous substitution. It is consumed here (cleared up front) so
		// that, unless one of the paths below explicitly restores it, it
		// does not leak past the token this call is about to produce.
		carry := a.eligibleNext
		a.eligibleNext = false

		tok, err := a.lexer.Token()
		if err != nil {
			return Token{}, err
		}

		// A token still read from inside the blank-ending substitution does
		// not use the carry; it is passed on to the token after it.
		if src, ok := tok.Location.Code.Source.(AliasSource); ok && carry && src.Alias != nil && endsInBlank(src.Alias.Replacement) {
			a.eligibleNext, carry = true, false
		}

		if a.aliases == nil || tok.ID.Kind != TokenWord {
			return tok, nil
		}

		name, ok := tok.Word.StringIfLiteral()
		if !ok {
			return tok, nil
		}

		alias, found := a.aliases.Get(name)
		if !found {
			return tok, nil
		}

		// A global alias is eligible regardless of position; otherwise the
		// word must be in command position, or carrying eligibility from a
		// blank-ending replacement just ahead of it.
		if !commandPosition && !carry && !alias.Global {
			return tok, nil
		}

		if tok.Word.Location.Code.Source.IsAliasFor(name) {
			// Re-entrant: this word already came from a substitution of the
			// same alias, directly or through a chain of others. Leave it
			// as an ordinary word rather than looping forever, but keep
			// the carry alive for whatever follows it.
			a.eligibleNext = a.eligibleNext || carry
			return tok, nil
		}

		a.lexer.pushAliasSubstitution(tok.Word.Location, alias)
		a.eligibleNext = endsInBlank(alias.Replacement)
		// Loop: re-lex the next token, now reading from the substitution.
	}
}

func endsInBlank(s string) bool {
	if s == "" {
		return false
	}
	r := []rune(s)
	last := r[len(r)-1]
	return last == ' ' || last == '\t'
}

// IsGlobalEligibleCarry reports whether the trailing-blank rule has made the
// next token eligible for substitution regardless of its grammatical
// position. Exposed for the parser to decide whether it must still treat
// the upcoming word as command-position for alias purposes even though
// grammatically it is not.
func (a *AliasLayer) IsGlobalEligibleCarry() bool {
	return a.eligibleNext
}
