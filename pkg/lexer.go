package syntax

import (
	"errors"
	"fmt"
	"strings"
)

// frame is one level of the lexer's input stack: a Code being filled from
// an Input (or, for a synthetic alias-substitution fragment, a Code that is
// already fully materialised and whose input is nil). The lexer always
// reads from the top of the stack; when a frame is exhausted and has no
// more lines to give, it is popped and reading resumes from the frame
// beneath it. This is how alias substitution "virtually prepends" synthetic
// text ahead of the rest of the stream without disturbing the underlying
// Input.
type frame struct {
	code *Code
	pos  int
	input Input
}

// Lexer is the character-level reader: lookahead, line-continuation
// handling, and the quoting/dollar-form/operator/keyword recognizers built
// on top of it.
type Lexer struct {
	frames []*frame

	// continuationDepth counts how many unterminated constructs (quotes,
	// backquotes, $(...), $((...)), here-doc bodies) the lexer is currently
	// reading the inside of. While it is nonzero, pulling more input is a
	// continuation of a construct the user hasn't finished yet, so Input
	// implementations that show a prompt should show the secondary one.
	continuationDepth int
}

// beginContinuation and endContinuation bracket the reading of a construct
// that can span multiple lines, so Context.Continuation reflects it.
func (l *Lexer) beginContinuation() { l.continuationDepth++ }
func (l *Lexer) endContinuation()   { l.continuationDepth-- }

// NewLexer creates a Lexer reading from input, with Source source for the
// Code it builds (Stdin, Unknown, ...). Most callers building a top-level
// parse want StdinSource{} or UnknownSource{}; command/arithmetic
// substitution and alias layers construct their own via NewLexerFromText or
// pushAliasSubstitution.
func NewLexer(input Input, source Source) *Lexer {
	return &Lexer{frames: []*frame{{code: NewCode(1, source), pos: 0, input: input}}}
}

// NewLexerFromText creates a Lexer over a fully materialised string, with no
// further Input to pull from. Used for command substitution and arithmetic
// expansion bodies once their raw text has been located, and by tests.
func NewLexerFromText(text string, source Source) *Lexer {
	code := NewCode(1, source)
	code.Append(text)
	return &Lexer{frames: []*frame{{code: code, pos: 0, input: nil}}}
}

// lexMark is an opaque snapshot for speculative parsing: Mark/Reset let a
// caller try to consume characters and back out without losing any input,
// even if consuming popped one or more alias-substitution frames.
type lexMark struct {
	frames    []*frame
	positions []int
}

func (l *Lexer) mark() lexMark {
	frames := make([]*frame, len(l.frames))
	copy(frames, l.frames)
	positions := make([]int, len(frames))
	for i, f := range frames {
		positions[i] = f.pos
	}
	return lexMark{frames: frames, positions: positions}
}

func (l *Lexer) reset(m lexMark) {
	l.frames = m.frames
	for i, f := range l.frames {
		f.pos = m.positions[i]
	}
}

// ensureFrame pulls more input into the top frame if it is exhausted, and
// pops exhausted frames that have a lower frame to fall back to. The bottom
// frame is never popped, so a Lexer permanently at end of input still has a
// valid frame to report a Location from.
func (l *Lexer) ensureFrame(ctx Context) error {
	for len(l.frames) > 0 {
		f := l.frames[len(l.frames)-1]
		if f.pos < f.code.Len() {
			return nil
		}
		if f.input != nil {
			line, err := f.input.NextLine(ctx)
			if err != nil {
				return &IoError{Err: err}
			}
			if line != "" {
				f.code.Append(line)
				continue
			}
		}
		if len(l.frames) > 1 {
			l.frames = l.frames[:len(l.frames)-1]
			continue
		}
		return nil
	}
	return nil
}

// peekChar returns the next character and its Location without consuming
// it. ok is false at end of input.
func (l *Lexer) peekChar() (rune, Location, bool, error) {
	if err := l.ensureFrame(Context{Continuation: l.continuationDepth > 0}); err != nil {
		return 0, Location{}, false, err
	}
	if len(l.frames) == 0 {
		return 0, Location{}, false, nil
	}
	f := l.frames[len(l.frames)-1]
	if f.pos >= f.code.Len() {
		return 0, Location{}, false, nil
	}
	return f.code.RuneAt(f.pos), Location{Code: f.code, Lo: f.pos, Hi: f.pos + 1}, true, nil
}

// consumeChar advances past the character peekChar would return. It must
// only be called once peekChar (or consumeCharIf) has confirmed one exists.
func (l *Lexer) consumeChar() {
	if len(l.frames) == 0 {
		return
	}
	l.frames[len(l.frames)-1].pos++
}

// consumeCharIf consumes and returns the next character if pred holds for
// it, otherwise leaves the position unchanged.
func (l *Lexer) consumeCharIf(pred func(rune) bool) (rune, Location, bool, error) {
	r, loc, ok, err := l.peekChar()
	if err != nil {
		return 0, Location{}, false, err
	}
	if !ok || !pred(r) {
		return 0, Location{}, false, nil
	}
	l.consumeChar()
	return r, loc, true, nil
}

func isChar(want rune) func(rune) bool {
	return func(c rune) bool { return c == want }
}

// currentLocation returns the Location of the next character, or a
// zero-width Location at the current position if input is exhausted.
func (l *Lexer) currentLocation() (Location, error) {
	_, loc, ok, err := l.peekChar()
	if err != nil {
		return Location{}, err
	}
	if ok {
		return loc, nil
	}
	if len(l.frames) == 0 {
		return DummyLocation(""), nil
	}
	f := l.frames[len(l.frames)-1]
	return Location{Code: f.code, Lo: f.pos, Hi: f.pos}, nil
}

func (l *Lexer) unclosedAt(cause Cause, opening Location) error {
	loc, err := l.currentLocation()
	if err != nil {
		return err
	}
	return newUnclosedError(cause, loc, opening)
}

// lineContinuations consumes zero or more backslash-newline pairs. All
// lexer entry points that are not single-quote-aware call this before
// examining the next character.
func (l *Lexer) lineContinuations() error {
	for {
		mark := l.mark()
		_, _, ok, err := l.consumeCharIf(isChar('\\'))
		if err != nil {
			return err
		}
		if !ok {
			return nil
		}
		if _, _, ok, err := l.consumeCharIf(isChar('\n')); err != nil {
			return err
		} else if !ok {
			l.reset(mark)
			return nil
		}
	}
}

// pushAliasSubstitution virtually prepends the replacement text of alias in
// place of the token at original, by pushing a new frame whose Code is
// fully materialised from the replacement and tagged with an AliasSource
// pointing back at original.
func (l *Lexer) pushAliasSubstitution(original Location, alias *Alias) {
	source := AliasSource{Original: original, Alias: alias}
	code := NewCode(original.Code.StartLine, source)
	code.Append(alias.Replacement)
	l.frames = append(l.frames, &frame{code: code, pos: 0, input: nil})
}

// --- Quoting -----------------------------------------------------------

func (l *Lexer) singleQuote(opening Location) (WordUnit, error) {
	l.beginContinuation()
	defer l.endContinuation()

	var b strings.Builder
	for {
		r, _, ok, err := l.consumeCharIf(func(rune) bool { return true })
		if err != nil {
			return nil, err
		}
		if !ok {
			return nil, l.unclosedAt(CauseUnclosedSingleQuote, opening)
		}
		if r == '\'' {
			return SingleQuote(b.String()), nil
		}
		b.WriteRune(r)
	}
}

func (l *Lexer) doubleQuote(opening Location) (WordUnit, error) {
	l.beginContinuation()
	defer l.endContinuation()

	isDelimiter := func(c rune) bool { return c == '"' }
	isEscapable := func(c rune) bool { return c == '$' || c == '`' || c == '"' || c == '\\' }

	content, err := l.text(isDelimiter, isEscapable)
	if err != nil {
		return nil, err
	}
	if _, _, ok, err := l.consumeCharIf(isChar('"')); err != nil {
		return nil, err
	} else if !ok {
		return nil, l.unclosedAt(CauseUnclosedDoubleQuote, opening)
	}
	return DoubleQuote{Content: content}, nil
}

func (l *Lexer) backquoteUnit(doubleQuoteEscapable bool) (BackquoteUnit, bool, error) {
	if err := l.lineContinuations(); err != nil {
		return nil, false, err
	}
	if _, _, ok, err := l.consumeCharIf(isChar('\\')); err != nil {
		return nil, false, err
	} else if ok {
		isEscapable := func(c rune) bool {
			return c == '$' || c == '`' || c == '\\' || (c == '"' && doubleQuoteEscapable)
		}
		if c, _, ok, err := l.consumeCharIf(isEscapable); err != nil {
			return nil, false, err
		} else if ok {
			return BqBackslashed(c), true, nil
		}
		return BqLiteral('\\'), true, nil
	}

	if c, _, ok, err := l.consumeCharIf(func(c rune) bool { return c != '`' }); err != nil {
		return nil, false, err
	} else if ok {
		return BqLiteral(c), true, nil
	}
	return nil, false, nil
}

// backquote parses a `...` command substitution, returning matched=false
// (no error, no characters consumed) if the next character is not a
// backquote.
func (l *Lexer) backquote(doubleQuoteEscapable bool) (TextUnit, bool, error) {
	_, loc, ok, err := l.consumeCharIf(isChar('`'))
	if err != nil {
		return nil, false, err
	}
	if !ok {
		return nil, false, nil
	}

	l.beginContinuation()
	defer l.endContinuation()

	var content []BackquoteUnit
	for {
		u, more, err := l.backquoteUnit(doubleQuoteEscapable)
		if err != nil {
			return nil, false, err
		}
		if !more {
			break
		}
		content = append(content, u)
	}

	if _, _, ok, err := l.consumeCharIf(isChar('`')); err != nil {
		return nil, false, err
	} else if !ok {
		return nil, false, l.unclosedAt(CauseUnclosedBackquote, loc)
	}
	return BackquoteText{Content: content, Location: loc}, true, nil
}

// --- Dollar forms --------------------------------------------------------

// arithmeticExpansion tries to parse $((...)) after the initial '$' has
// been consumed (dollarLoc is its Location). matched is false, with the lexer
// rewound to before any '(' it spent on a failed attempt, if the input does
// not begin with "((".
func (l *Lexer) arithmeticExpansion(dollarLoc Location) (TextUnit, bool, error) {
	mark := l.mark()

	if _, _, ok, err := l.consumeCharIf(isChar('(')); err != nil {
		return nil, false, err
	} else if !ok {
		return nil, false, nil
	}

	if err := l.lineContinuations(); err != nil {
		return nil, false, err
	}
	if _, _, ok, err := l.consumeCharIf(isChar('(')); err != nil {
		return nil, false, err
	} else if !ok {
		l.reset(mark)
		return nil, false, nil
	}

	l.beginContinuation()
	defer l.endContinuation()

	isDelimiter := func(c rune) bool { return c == ')' }
	isEscapable := func(c rune) bool { return c == '$' || c == '`' || c == '\\' }
	content, err := l.textWithParentheses(isDelimiter, isEscapable)
	if err != nil {
		return nil, false, err
	}

	if _, _, ok, err := l.consumeCharIf(isChar(')')); err != nil {
		return nil, false, err
	} else if !ok {
		return nil, false, l.unclosedAt(CauseUnclosedArith, dollarLoc)
	}
	if err := l.lineContinuations(); err != nil {
		return nil, false, err
	}
	if _, _, ok, err := l.consumeCharIf(isChar(')')); err != nil {
		return nil, false, err
	} else if !ok {
		return nil, false, l.unclosedAt(CauseUnclosedArith, dollarLoc)
	}

	return ArithText{Content: content, Location: dollarLoc}, true, nil
}

var errUnterminatedScan = errors.New("unterminated command substitution scan")

// scanCommandSubstitutionBody raw-scans (respecting nested quotes,
// backquotes, and parentheses) for the ')' matching the '(' already
// consumed by the caller, returning everything up to but not including it.
func (l *Lexer) scanCommandSubstitutionBody() (string, error) {
	var b strings.Builder
	depth := 1
	any := func(rune) bool { return true }

	readOrDie := func() (rune, error) {
		r, _, ok, err := l.consumeCharIf(any)
		if err != nil {
			return 0, err
		}
		if !ok {
			return 0, errUnterminatedScan
		}
		return r, nil
	}

	for {
		r, err := readOrDie()
		if err != nil {
			return "", err
		}
		switch r {
		case '\\':
			b.WriteRune(r)
			if r2, _, ok, err := l.consumeCharIf(any); err != nil {
				return "", err
			} else if ok {
				b.WriteRune(r2)
			}
		case '\'':
			b.WriteRune(r)
			for {
				r2, err := readOrDie()
				if err != nil {
					return "", err
				}
				b.WriteRune(r2)
				if r2 == '\'' {
					break
				}
			}
		case '"':
			b.WriteRune(r)
			for {
				r2, err := readOrDie()
				if err != nil {
					return "", err
				}
				b.WriteRune(r2)
				if r2 == '\\' {
					if r3, _, ok, err := l.consumeCharIf(any); err != nil {
						return "", err
					} else if ok {
						b.WriteRune(r3)
					}
					continue
				}
				if r2 == '"' {
					break
				}
			}
		case '`':
			b.WriteRune(r)
			for {
				r2, err := readOrDie()
				if err != nil {
					return "", err
				}
				b.WriteRune(r2)
				if r2 == '\\' {
					if r3, _, ok, err := l.consumeCharIf(any); err != nil {
						return "", err
					} else if ok {
						b.WriteRune(r3)
					}
					continue
				}
				if r2 == '`' {
					break
				}
			}
		case '(':
			depth++
			b.WriteRune(r)
		case ')':
			depth--
			if depth == 0 {
				return b.String(), nil
			}
			b.WriteRune(r)
		default:
			b.WriteRune(r)
		}
	}
}

// commandSubstitution tries to parse $(...) after the initial '$' has been
// consumed. matched is false, with nothing consumed, if the next character
// is not '('.
func (l *Lexer) commandSubstitution(dollarLoc Location) (TextUnit, bool, error) {
	if _, _, ok, err := l.consumeCharIf(isChar('(')); err != nil {
		return nil, false, err
	} else if !ok {
		return nil, false, nil
	}

	l.beginContinuation()
	defer l.endContinuation()

	body, err := l.scanCommandSubstitutionBody()
	if err != nil {
		if errors.Is(err, errUnterminatedScan) {
			return nil, false, l.unclosedAt(CauseUnclosedCommandSubstitution, dollarLoc)
		}
		return nil, false, err
	}
	return CommandSubstText{Content: body, Location: dollarLoc}, true, nil
}

// dollarUnit parses a text unit that starts with '$': an arithmetic
// expansion or a command substitution. If neither matches, the '$' itself
// is un-consumed and matched is false.
func (l *Lexer) dollarUnit() (TextUnit, bool, error) {
	mark := l.mark()
	_, loc, ok, err := l.consumeCharIf(isChar('$'))
	if err != nil {
		return nil, false, err
	}
	if !ok {
		return nil, false, nil
	}

	if u, matched, err := l.arithmeticExpansion(loc); err != nil {
		return nil, false, err
	} else if matched {
		return u, true, nil
	}

	if u, matched, err := l.commandSubstitution(loc); err != nil {
		return nil, false, err
	} else if matched {
		return u, true, nil
	}

	l.reset(mark)
	return nil, false, nil
}

// --- Text and word assembly ---------------------------------------------

func (l *Lexer) textUnit(isDelimiter, isEscapable func(rune) bool) (TextUnit, bool, error) {
	if err := l.lineContinuations(); err != nil {
		return nil, false, err
	}

	if _, _, ok, err := l.consumeCharIf(isChar('\\')); err != nil {
		return nil, false, err
	} else if ok {
		if c, _, ok, err := l.consumeCharIf(isEscapable); err != nil {
			return nil, false, err
		} else if ok {
			return Backslashed(c), true, nil
		}
		return Literal('\\'), true, nil
	}

	if u, matched, err := l.dollarUnit(); err != nil {
		return nil, false, err
	} else if matched {
		return u, true, nil
	}

	if u, matched, err := l.backquote(!isEscapable('_')); err != nil {
		return nil, false, err
	} else if matched {
		return u, true, nil
	}

	if c, _, ok, err := l.consumeCharIf(func(c rune) bool { return !isDelimiter(c) }); err != nil {
		return nil, false, err
	} else if ok {
		return Literal(c), true, nil
	}

	return nil, false, nil
}

func (l *Lexer) text(isDelimiter, isEscapable func(rune) bool) (Text, error) {
	var units []TextUnit
	for {
		u, ok, err := l.textUnit(isDelimiter, isEscapable)
		if err != nil {
			return Text{}, err
		}
		if !ok {
			break
		}
		units = append(units, u)
	}
	return Text{Units: units}, nil
}

// textWithParentheses is like text, but an unquoted '(' opens a nested
// level in which only ')' closes, supporting arbitrarily nested
// parentheses before the real delimiter is recognized again.
func (l *Lexer) textWithParentheses(isDelimiter, isEscapable func(rune) bool) (Text, error) {
	var units []TextUnit
	var openLocs []Location

	for {
		isDelimiterOrParen := func(c rune) bool {
			if c == '(' {
				return true
			}
			if len(openLocs) == 0 {
				return isDelimiter(c)
			}
			return c == ')'
		}

		t, err := l.text(isDelimiterOrParen, isEscapable)
		if err != nil {
			return Text{}, err
		}
		units = append(units, t.Units...)

		if _, loc, ok, err := l.consumeCharIf(isChar('(')); err != nil {
			return Text{}, err
		} else if ok {
			units = append(units, Literal('('))
			openLocs = append(openLocs, loc)
			continue
		}

		if len(openLocs) > 0 {
			opening := openLocs[len(openLocs)-1]
			openLocs = openLocs[:len(openLocs)-1]
			if _, _, ok, err := l.consumeCharIf(isChar(')')); err != nil {
				return Text{}, err
			} else if ok {
				units = append(units, Literal(')'))
				continue
			}
			return Text{}, l.unclosedAt(CauseUnclosedParen, opening)
		}

		break
	}

	return Text{Units: units}, nil
}

func (l *Lexer) wordUnit(isDelimiter func(rune) bool) (WordUnit, bool, error) {
	c, loc, ok, err := l.consumeCharIf(func(c rune) bool { return c == '\'' || c == '"' })
	if err != nil {
		return nil, false, err
	}
	if !ok {
		u, matched, err := l.textUnit(isDelimiter, func(rune) bool { return true })
		if err != nil {
			return nil, false, err
		}
		if !matched {
			return nil, false, nil
		}
		return Unquoted{Unit: u}, true, nil
	}

	switch c {
	case '\'':
		wu, err := l.singleQuote(loc)
		if err != nil {
			return nil, false, err
		}
		return wu, true, nil
	case '"':
		wu, err := l.doubleQuote(loc)
		if err != nil {
			return nil, false, err
		}
		return wu, true, nil
	}
	return nil, false, nil
}

// word parses a Word, ending when an unquoted character satisfies
// isDelimiter or input is exhausted. It performs no tilde recognition; call
// Word.ParseTildeFront or Word.ParseTildeEverywhere afterwards.
func (l *Lexer) word(isDelimiter func(rune) bool) (Word, error) {
	loc, err := l.currentLocation()
	if err != nil {
		return Word{}, err
	}
	var units []WordUnit
	for {
		u, ok, err := l.wordUnit(isDelimiter)
		if err != nil {
			return Word{}, err
		}
		if !ok {
			break
		}
		units = append(units, u)
	}
	return Word{Units: units, Location: loc}, nil
}

// --- Token classification and operators ----------------------------------

func isBlank(c rune) bool { return c == ' ' || c == '\t' }

func isTokenDelimiterChar(c rune) bool {
	return isOperatorStartChar(c) || isBlank(c) || c == '\n'
}

func isAllASCIIDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

func (l *Lexer) tokenID(word Word) (TokenId, error) {
	if word.IsEmpty() {
		return TokenId{Kind: TokenEndOfInput}, nil
	}
	if lit, ok := word.StringIfLiteral(); ok {
		if kw, ok := keywordFrom(lit); ok {
			return TokenId{Kind: TokenKeyword, Keyword: kw}, nil
		}
		if isAllASCIIDigits(lit) {
			r, _, ok, err := l.peekChar()
			if err != nil {
				return TokenId{}, err
			}
			if ok && (r == '<' || r == '>') {
				return TokenId{Kind: TokenIoNumber}, nil
			}
		}
	}
	return TokenId{Kind: TokenWord}, nil
}

// matchLiteral consumes exactly the runes of s if they appear next in the
// input, otherwise leaves the position unchanged.
func (l *Lexer) matchLiteral(s string) (bool, error) {
	mark := l.mark()
	for _, want := range s {
		r, _, ok, err := l.peekChar()
		if err != nil {
			l.reset(mark)
			return false, err
		}
		if !ok || r != want {
			l.reset(mark)
			return false, nil
		}
		l.consumeChar()
	}
	return true, nil
}

func (l *Lexer) operator(startLoc Location) (Token, bool, error) {
	r, _, ok, err := l.peekChar()
	if err != nil {
		return Token{}, false, err
	}
	if !ok {
		return Token{}, false, nil
	}

	if r == '\n' {
		l.consumeChar()
		return Token{ID: TokenId{Kind: TokenOperator, Operator: OpNewline}, Location: startLoc}, true, nil
	}

	if !isOperatorStartChar(r) {
		return Token{}, false, nil
	}

	for _, op := range operators {
		matched, err := l.matchLiteral(op.text)
		if err != nil {
			return Token{}, false, err
		}
		if matched {
			return Token{ID: TokenId{Kind: TokenOperator, Operator: op.kind}, Location: startLoc}, true, nil
		}
	}
	return Token{}, false, fmt.Errorf("invalid operator character %q", r)
}

// --- Here-document bodies --------------------------------------------------

// nextRawLine consumes and returns one line of raw input, including its
// trailing newline if one was present, bypassing all quoting and escaping
// recognition. ok is false only when no characters at all remained.
func (l *Lexer) nextRawLine() (string, bool, error) {
	var b strings.Builder
	for {
		r, _, ok, err := l.consumeCharIf(func(rune) bool { return true })
		if err != nil {
			return "", false, err
		}
		if !ok {
			if b.Len() == 0 {
				return "", false, nil
			}
			return b.String(), true, nil
		}
		b.WriteRune(r)
		if r == '\n' {
			return b.String(), true, nil
		}
	}
}

func literalRun(s string) []TextUnit {
	units := make([]TextUnit, 0, len(s))
	for _, r := range s {
		units = append(units, Literal(r))
	}
	return units
}

// hereDocDelimiterText reduces a here-document delimiter word to the plain
// string its body lines are compared against, and reports whether it
// contained any quoting — per POSIX, a quoted delimiter suppresses
// expansion recognition in the body entirely.
func hereDocDelimiterText(w Word) (string, bool) {
	var b strings.Builder
	quoted := false
	for _, u := range w.Units {
		switch v := u.(type) {
		case Unquoted:
			switch t := v.Unit.(type) {
			case Literal:
				b.WriteRune(rune(t))
			case Backslashed:
				quoted = true
				b.WriteRune(rune(t))
			default:
				quoted = true
			}
		case SingleQuote:
			quoted = true
			b.WriteString(string(v))
		case DoubleQuote:
			quoted = true
			b.WriteString(v.Content.String())
		case TildeUnit:
			b.WriteByte('~')
			b.WriteString(v.Name)
		}
	}
	return b.String(), quoted
}

// readHereDocBody reads raw lines (bypassing tokenization, per
// nextRawLine) up to and including the line that, after optional leading-
// tab removal, exactly matches delimiterWord's literal text, and returns
// the body as a Text. If quoted is true the body is entirely literal (no
// expansion recognized); otherwise it is re-lexed for $, ` and \ the same
// way a double-quoted string's content is.
func (l *Lexer) readHereDocBody(delimiterWord Word, removeLeadingTabs bool) (Text, bool, error) {
	delimText, quoted := hereDocDelimiterText(delimiterWord)

	l.beginContinuation()
	defer l.endContinuation()

	var raw strings.Builder
	for {
		line, ok, err := l.nextRawLine()
		if err != nil {
			return Text{}, false, err
		}
		if !ok {
			return Text{}, false, l.unclosedAt(CauseUnclosedHereDoc, delimiterWord.Location)
		}

		hadNewline := strings.HasSuffix(line, "\n")
		compare := strings.TrimSuffix(line, "\n")
		body := line
		if removeLeadingTabs {
			compare = strings.TrimLeft(compare, "\t")
			body = strings.TrimLeft(body, "\t")
		}
		if compare == delimText {
			break
		}
		raw.WriteString(body)
		if !hadNewline {
			return Text{}, false, l.unclosedAt(CauseUnclosedHereDoc, delimiterWord.Location)
		}
	}

	if quoted {
		return Text{Units: literalRun(raw.String())}, true, nil
	}

	sub := NewLexerFromText(raw.String(), UnknownSource{})
	isDelimiter := func(rune) bool { return false }
	isEscapable := func(c rune) bool { return c == '$' || c == '`' || c == '\\' }
	content, err := sub.text(isDelimiter, isEscapable)
	if err != nil {
		return Text{}, false, err
	}
	return content, false, nil
}

// Token reads the next token from the lexer: an operator, a classified
// word, or an empty EndOfInput token.
func (l *Lexer) Token() (Token, error) {
	for {
		r, _, ok, err := l.peekChar()
		if err != nil {
			return Token{}, err
		}
		if !ok || !isBlank(r) {
			break
		}
		l.consumeChar()
	}

	startLoc, err := l.currentLocation()
	if err != nil {
		return Token{}, err
	}

	if op, matched, err := l.operator(startLoc); err != nil {
		return Token{}, err
	} else if matched {
		return op, nil
	}

	word, err := l.word(isTokenDelimiterChar)
	if err != nil {
		return Token{}, err
	}
	word.ParseTildeFront()

	id, err := l.tokenID(word)
	if err != nil {
		return Token{}, err
	}

	return Token{Word: word, ID: id, Location: startLoc}, nil
}
