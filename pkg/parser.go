package syntax

import "strings"

// pendingHereDoc is a here-document redirection seen since the last
// unquoted newline, awaiting its body.
type pendingHereDoc struct {
	delimiter         Word
	removeLeadingTabs bool
}

// Parser is a recursive-descent parser over the token stream an AliasLayer
// produces, building a PartialAST (here-document bodies deferred) that
// Parse resolves with Fill before returning.
type Parser struct {
	alias *AliasLayer
	lexer *Lexer
	tok   Token

	pendingHereDocs []pendingHereDoc
	bodies          []HereDocBody
}

// NewParser creates a Parser reading from lexer, consulting aliases (which
// may be nil) for substitution.
func NewParser(lexer *Lexer, aliases *AliasSet) *Parser {
	return &Parser{alias: NewAliasLayer(lexer, aliases), lexer: lexer}
}

// Parse reads and parses a complete program from the parser's lexer.
func Parse(lexer *Lexer, aliases *AliasSet) (AST, error) {
	return NewParser(lexer, aliases).Parse()
}

// Parse drives the parser to end of input, returning the fully resolved
// AST (all here-document placeholders filled).
func (p *Parser) Parse() (AST, error) {
	if err := p.advance(true); err != nil {
		return AST{}, err
	}
	list, err := p.parseList(nil)
	if err != nil {
		return AST{}, err
	}
	if err := p.skipNewlines(); err != nil {
		return AST{}, err
	}
	if p.tok.ID.Kind != TokenEndOfInput {
		return AST{}, newSyntaxError(CauseUnexpectedToken, p.tok.Location)
	}
	return Fill(list, p.bodies)
}

// advance fetches the next token into p.tok, telling the alias layer
// whether this token is being requested in command-word position.
func (p *Parser) advance(commandPosition bool) error {
	tok, err := p.alias.Next(commandPosition)
	if err != nil {
		return err
	}
	p.tok = tok
	return nil
}

func (p *Parser) atOperator(op OperatorKind) bool {
	return p.tok.ID.Kind == TokenOperator && p.tok.ID.Operator == op
}

func (p *Parser) atKeyword(kw Keyword) bool {
	return p.tok.ID.Kind == TokenKeyword && p.tok.ID.Keyword == kw
}

// parserMark snapshots everything Parse's speculative function-definition
// lookahead needs to undo: the lexer's character position (across however
// many alias frames are live), the buffered lookahead token, and the
// alias layer's own one bit of cross-call state.
type parserMark struct {
	lex        lexMark
	tok        Token
	aliasCarry bool
}

func (p *Parser) mark() parserMark {
	return parserMark{lex: p.lexer.mark(), tok: p.tok, aliasCarry: p.alias.eligibleNext}
}

func (p *Parser) reset(m parserMark) {
	p.lexer.reset(m.lex)
	p.tok = m.tok
	p.alias.eligibleNext = m.aliasCarry
}

// flushPendingHereDocs reads the body of every here-document redirection
// queued since the last newline, in the order their delimiters were
// parsed, and clears the queue. It must be called exactly once per
// unquoted newline token, before the parser asks the lexer for anything
// past that newline.
func (p *Parser) flushPendingHereDocs() error {
	for _, ph := range p.pendingHereDocs {
		content, quoted, err := p.lexer.readHereDocBody(ph.delimiter, ph.removeLeadingTabs)
		if err != nil {
			return err
		}
		p.bodies = append(p.bodies, HereDocBody{Content: content, Quoted: quoted})
	}
	p.pendingHereDocs = nil
	return nil
}

// consumeNewline flushes any here-documents due on the following lines and
// advances past them to the next real token. p.tok must currently be the
// newline operator.
func (p *Parser) consumeNewline() error {
	if err := p.flushPendingHereDocs(); err != nil {
		return err
	}
	return p.advance(true)
}

func (p *Parser) skipNewlines() error {
	for p.atOperator(OpNewline) {
		if err := p.consumeNewline(); err != nil {
			return err
		}
	}
	return nil
}

// --- Lists, and-or lists, pipelines --------------------------------------

// parseList parses a sequence of and-or lists separated by ';', '&', or
// newlines, stopping at end of input or at a token stop reports true for
// (a closing reserved word the caller is waiting for). stop may be nil at
// the top level, where only end of input ends the list.
func (p *Parser) parseList(stop func(Token) bool) (List[MissingHereDoc], error) {
	var items []ListItem[MissingHereDoc]
	for {
		if err := p.skipNewlines(); err != nil {
			return List[MissingHereDoc]{}, err
		}
		if p.tok.ID.Kind == TokenEndOfInput || (stop != nil && stop(p.tok)) {
			break
		}

		andOr, err := p.parseAndOr()
		if err != nil {
			return List[MissingHereDoc]{}, err
		}

		term := TerminatorNone
		if p.atOperator(OpSemi) {
			term = TerminatorSemi
			if err := p.advance(true); err != nil {
				return List[MissingHereDoc]{}, err
			}
		} else if p.atOperator(OpAnd) {
			term = TerminatorAsync
			if err := p.advance(true); err != nil {
				return List[MissingHereDoc]{}, err
			}
		}
		items = append(items, ListItem[MissingHereDoc]{AndOr: andOr, Terminator: term})

		if p.atOperator(OpNewline) {
			if err := p.consumeNewline(); err != nil {
				return List[MissingHereDoc]{}, err
			}
			continue
		}
		if term == TerminatorNone {
			break
		}
	}
	return List[MissingHereDoc]{Items: items}, nil
}

func (p *Parser) parseAndOr() (AndOrList[MissingHereDoc], error) {
	first, err := p.parsePipeline()
	if err != nil {
		return AndOrList[MissingHereDoc]{}, err
	}
	out := AndOrList[MissingHereDoc]{First: first}

	for {
		var kind AndOrKind
		switch {
		case p.atOperator(OpAndIf):
			kind = AndOrAnd
		case p.atOperator(OpOrIf):
			kind = AndOrOr
		default:
			return out, nil
		}
		if err := p.advance(true); err != nil {
			return AndOrList[MissingHereDoc]{}, err
		}
		if err := p.skipNewlines(); err != nil {
			return AndOrList[MissingHereDoc]{}, err
		}
		pipe, err := p.parsePipeline()
		if err != nil {
			return AndOrList[MissingHereDoc]{}, err
		}
		out.Rest = append(out.Rest, struct {
			Kind     AndOrKind
			Pipeline Pipeline[MissingHereDoc]
		}{Kind: kind, Pipeline: pipe})
	}
}

func (p *Parser) parsePipeline() (Pipeline[MissingHereDoc], error) {
	negated := false
	if p.atKeyword(KeywordBang) {
		negated = true
		if err := p.advance(true); err != nil {
			return Pipeline[MissingHereDoc]{}, err
		}
	}

	var commands []Command[MissingHereDoc]
	for {
		cmd, err := p.parseCommand()
		if err != nil {
			return Pipeline[MissingHereDoc]{}, err
		}
		commands = append(commands, cmd)

		if !p.atOperator(OpPipe) {
			break
		}
		if err := p.advance(true); err != nil {
			return Pipeline[MissingHereDoc]{}, err
		}
		if err := p.skipNewlines(); err != nil {
			return Pipeline[MissingHereDoc]{}, err
		}
	}
	return Pipeline[MissingHereDoc]{Negated: negated, Commands: commands}, nil
}

// --- Commands -------------------------------------------------------------

func (p *Parser) parseCommand() (Command[MissingHereDoc], error) {
	if p.startsCompoundCommand() {
		cc, err := p.parseCompoundCommand()
		if err != nil {
			return nil, err
		}
		redirs, err := p.parseRedirections()
		if err != nil {
			return nil, err
		}
		return CompoundCommandNode[MissingHereDoc]{Command: cc, Redirs: redirs}, nil
	}

	if fn, ok, err := p.tryParseFunctionDefinition(); err != nil {
		return nil, err
	} else if ok {
		return fn, nil
	}

	return p.parseSimpleCommand()
}

func (p *Parser) startsCompoundCommand() bool {
	if p.atOperator(OpLParen) {
		return true
	}
	if p.tok.ID.Kind != TokenKeyword {
		return false
	}
	switch p.tok.ID.Keyword {
	case KeywordOpenBrace, KeywordCase, KeywordIf, KeywordWhile, KeywordUntil, KeywordFor:
		return true
	}
	return false
}

// tryParseFunctionDefinition speculatively consumes "name ( )" and, if that
// is indeed what follows, parses the rest of a function definition. If the
// word is not followed by an empty parameter list, the lexer and parser
// are rewound to exactly where they were and ok is false.
func (p *Parser) tryParseFunctionDefinition() (Command[MissingHereDoc], bool, error) {
	if p.tok.ID.Kind != TokenWord {
		return nil, false, nil
	}
	name, ok := p.tok.Word.StringIfLiteral()
	if !ok || !isValidFunctionName(name) {
		return nil, false, nil
	}

	mark := p.mark()
	nameLoc := p.tok.Word.Location

	if err := p.advance(false); err != nil {
		return nil, false, err
	}
	if !p.atOperator(OpLParen) {
		p.reset(mark)
		return nil, false, nil
	}
	if err := p.advance(false); err != nil {
		return nil, false, err
	}
	if !p.atOperator(OpRParen) {
		p.reset(mark)
		return nil, false, nil
	}
	if err := p.advance(true); err != nil {
		return nil, false, err
	}
	if err := p.skipNewlines(); err != nil {
		return nil, false, err
	}

	body, err := p.parseCompoundCommand()
	if err != nil {
		return nil, false, err
	}
	redirs, err := p.parseRedirections()
	if err != nil {
		return nil, false, err
	}
	return FunctionDefinitionNode[MissingHereDoc]{Definition: FunctionDefinition[MissingHereDoc]{
		Name: name, Body: body, Redirs: redirs, Location: nameLoc,
	}}, true, nil
}

func (p *Parser) parseSimpleCommand() (Command[MissingHereDoc], error) {
	sc := SimpleCommand[MissingHereDoc]{Location: p.tok.Location}
	sawWord := false
	any := false

	for {
		if p.isRedirectionStart() {
			redir, err := p.parseRedirection()
			if err != nil {
				return nil, err
			}
			sc.Redirs = append(sc.Redirs, redir)
			any = true
			continue
		}
		// A reserved word is only special in the grammar positions the
		// parser checks explicitly (compound-command starters, clause
		// terminators); anywhere else in a simple command it is just an
		// ordinary word, already carried in tok.Word.
		if p.tok.ID.Kind != TokenWord && p.tok.ID.Kind != TokenKeyword {
			break
		}

		if !sawWord {
			if name, value, ok := assignmentParts(p.tok.Word); ok {
				sc.Assigns = append(sc.Assigns, Assign{Name: name, Value: value, Location: p.tok.Word.Location})
				any = true
				if err := p.advance(false); err != nil {
					return nil, err
				}
				continue
			}
		}

		sawWord = true
		any = true
		word := p.tok.Word
		word.ParseTildeEverywhere()
		sc.Words = append(sc.Words, word)
		if err := p.advance(false); err != nil {
			return nil, err
		}
	}

	if !any {
		return nil, newSyntaxError(CauseUnexpectedToken, p.tok.Location)
	}
	return SimpleCommandNode[MissingHereDoc]{Command: sc}, nil
}

// assignmentParts recognizes NAME=value at the front of w: a leading run
// of Unquoted Literal characters matching [A-Za-z_][A-Za-z0-9_]* followed
// by an Unquoted Literal '='. Only the first literal run is inspected — a
// quote or substitution anywhere in the name portion disqualifies the
// word as an assignment, per POSIX.
func assignmentParts(w Word) (string, Word, bool) {
	if len(w.Units) == 0 {
		return "", Word{}, false
	}
	first, ok := w.Units[0].(Unquoted)
	if !ok {
		return "", Word{}, false
	}
	lit, ok := first.Unit.(Literal)
	if !ok || !isNameStart(rune(lit)) {
		return "", Word{}, false
	}

	i := 1
	for i < len(w.Units) {
		u, ok := w.Units[i].(Unquoted)
		if !ok {
			return "", Word{}, false
		}
		l, ok := u.Unit.(Literal)
		if !ok {
			return "", Word{}, false
		}
		c := rune(l)
		if c == '=' {
			value := Word{Units: append([]WordUnit(nil), w.Units[i+1:]...), Location: w.Location}
			value.ParseTildeEverywhere()
			return wordPrefixRunes(w, i), value, true
		}
		if !isNameStart(c) && !(c >= '0' && c <= '9') {
			return "", Word{}, false
		}
		i++
	}
	return "", Word{}, false
}

func isNameStart(r rune) bool {
	return r == '_' || (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z')
}

func wordPrefixRunes(w Word, n int) string {
	var b strings.Builder
	for i := 0; i < n; i++ {
		uq := w.Units[i].(Unquoted)
		lit := uq.Unit.(Literal)
		b.WriteRune(rune(lit))
	}
	return b.String()
}

func isValidFunctionName(s string) bool {
	if s == "" {
		return false
	}
	for i, r := range s {
		if isNameStart(r) {
			continue
		}
		if i > 0 && r >= '0' && r <= '9' {
			continue
		}
		return false
	}
	return true
}

// --- Redirections ---------------------------------------------------------

func isRedirectionOperator(k OperatorKind) bool {
	switch k {
	case OpLess, OpGreat, OpDLess, OpDGreat, OpLessAnd, OpGreatAnd, OpLessGreat, OpClobber, OpDLessDash:
		return true
	}
	return false
}

func (p *Parser) isRedirectionStart() bool {
	if p.tok.ID.Kind == TokenIoNumber {
		return true
	}
	return p.tok.ID.Kind == TokenOperator && isRedirectionOperator(p.tok.ID.Operator)
}

func (p *Parser) parseRedirections() ([]Redir[MissingHereDoc], error) {
	var redirs []Redir[MissingHereDoc]
	for p.isRedirectionStart() {
		r, err := p.parseRedirection()
		if err != nil {
			return nil, err
		}
		redirs = append(redirs, r)
	}
	return redirs, nil
}

func defaultFD(op OperatorKind) int {
	switch op {
	case OpGreat, OpDGreat, OpClobber, OpGreatAnd:
		return 1
	default:
		return 0
	}
}

func parseIoNumber(w Word) (int, bool) {
	s, ok := w.StringIfLiteral()
	if !ok || s == "" {
		return 0, false
	}
	n := 0
	for _, r := range s {
		if r < '0' || r > '9' {
			return 0, false
		}
		n = n*10 + int(r-'0')
	}
	return n, true
}

func parseDup(w Word) (RedirDup, bool) {
	s, ok := w.StringIfLiteral()
	if !ok {
		return RedirDup{}, false
	}
	if s == "-" {
		return RedirDup{Close: true, Word: w}, true
	}
	n, ok := parseIoNumber(w)
	if !ok {
		return RedirDup{}, false
	}
	return RedirDup{FD: n, Word: w}, true
}

func (p *Parser) parseRedirection() (Redir[MissingHereDoc], error) {
	loc := p.tok.Location
	fd := -1
	fdGiven := false

	if p.tok.ID.Kind == TokenIoNumber {
		n, ok := parseIoNumber(p.tok.Word)
		if !ok {
			return Redir[MissingHereDoc]{}, newSyntaxError(CauseUnexpectedToken, p.tok.Location)
		}
		fd, fdGiven = n, true
		if err := p.advance(false); err != nil {
			return Redir[MissingHereDoc]{}, err
		}
	}

	op := p.tok.ID.Operator
	if err := p.advance(false); err != nil {
		return Redir[MissingHereDoc]{}, err
	}
	if !fdGiven {
		fd = defaultFD(op)
	}

	switch op {
	case OpDLess, OpDLessDash:
		if p.tok.ID.Kind != TokenWord {
			return Redir[MissingHereDoc]{}, newSyntaxError(CauseMissingHereDocDelimiter, p.tok.Location)
		}
		delim := p.tok.Word
		if err := p.advance(false); err != nil {
			return Redir[MissingHereDoc]{}, err
		}
		removeTabs := op == OpDLessDash
		p.pendingHereDocs = append(p.pendingHereDocs, pendingHereDoc{delimiter: delim, removeLeadingTabs: removeTabs})
		return Redir[MissingHereDoc]{
			FD: fd, FDGiven: fdGiven, Operator: op, Location: loc,
			Body: RedirHereDoc[MissingHereDoc]{Body: MissingHereDoc{Delimiter: delim, RemoveLeadingTabs: removeTabs}},
		}, nil

	case OpLessAnd, OpGreatAnd:
		if p.tok.ID.Kind != TokenWord {
			return Redir[MissingHereDoc]{}, newSyntaxError(CauseMissingRedirectionTarget, p.tok.Location)
		}
		dup, ok := parseDup(p.tok.Word)
		if !ok {
			return Redir[MissingHereDoc]{}, newSyntaxError(CauseMissingRedirectionTarget, p.tok.Location)
		}
		if err := p.advance(false); err != nil {
			return Redir[MissingHereDoc]{}, err
		}
		return Redir[MissingHereDoc]{FD: fd, FDGiven: fdGiven, Operator: op, Location: loc, Body: dup}, nil

	default:
		if p.tok.ID.Kind != TokenWord {
			return Redir[MissingHereDoc]{}, newSyntaxError(CauseMissingRedirectionTarget, p.tok.Location)
		}
		word := p.tok.Word
		if err := p.advance(false); err != nil {
			return Redir[MissingHereDoc]{}, err
		}
		return Redir[MissingHereDoc]{FD: fd, FDGiven: fdGiven, Operator: op, Location: loc, Body: RedirTarget{Word: word}}, nil
	}
}

// --- Compound commands ------------------------------------------------------

func (p *Parser) parseCompoundCommand() (CompoundCommand[MissingHereDoc], error) {
	switch {
	case p.atOperator(OpLParen):
		return p.parseSubshell()
	case p.atKeyword(KeywordOpenBrace):
		return p.parseBraceGroup()
	case p.atKeyword(KeywordFor):
		return p.parseForClause()
	case p.atKeyword(KeywordCase):
		return p.parseCaseClause()
	case p.atKeyword(KeywordIf):
		return p.parseIfClause()
	case p.atKeyword(KeywordWhile), p.atKeyword(KeywordUntil):
		return p.parseWhileClause()
	}
	return nil, newSyntaxError(CauseUnexpectedToken, p.tok.Location)
}

func (p *Parser) parseSubshell() (CompoundCommand[MissingHereDoc], error) {
	if err := p.advance(true); err != nil {
		return nil, err
	}
	body, err := p.parseList(func(t Token) bool { return t.ID.Kind == TokenOperator && t.ID.Operator == OpRParen })
	if err != nil {
		return nil, err
	}
	if !p.atOperator(OpRParen) {
		return nil, newSyntaxError(CauseUnexpectedToken, p.tok.Location)
	}
	if err := p.advance(false); err != nil {
		return nil, err
	}
	return Subshell[MissingHereDoc]{Body: body}, nil
}

func (p *Parser) parseBraceGroup() (CompoundCommand[MissingHereDoc], error) {
	if err := p.advance(true); err != nil {
		return nil, err
	}
	body, err := p.parseList(func(t Token) bool { return t.ID.Kind == TokenKeyword && t.ID.Keyword == KeywordCloseBrace })
	if err != nil {
		return nil, err
	}
	if !p.atKeyword(KeywordCloseBrace) {
		return nil, newSyntaxError(CauseUnexpectedToken, p.tok.Location)
	}
	if err := p.advance(false); err != nil {
		return nil, err
	}
	return BraceGroup[MissingHereDoc]{Body: body}, nil
}

func (p *Parser) parseDoGroup() (List[MissingHereDoc], error) {
	if err := p.advance(true); err != nil {
		return List[MissingHereDoc]{}, err
	}
	body, err := p.parseList(func(t Token) bool { return t.ID.Kind == TokenKeyword && t.ID.Keyword == KeywordDone })
	if err != nil {
		return List[MissingHereDoc]{}, err
	}
	if !p.atKeyword(KeywordDone) {
		return List[MissingHereDoc]{}, newSyntaxError(CauseUnexpectedToken, p.tok.Location)
	}
	if err := p.advance(false); err != nil {
		return List[MissingHereDoc]{}, err
	}
	return body, nil
}

func (p *Parser) parseForClause() (CompoundCommand[MissingHereDoc], error) {
	if err := p.advance(false); err != nil {
		return nil, err
	}
	if p.tok.ID.Kind != TokenWord {
		return nil, newSyntaxError(CauseUnexpectedToken, p.tok.Location)
	}
	name, ok := p.tok.Word.StringIfLiteral()
	if !ok || !isValidFunctionName(name) {
		return nil, newSyntaxError(CauseUnexpectedToken, p.tok.Location)
	}
	if err := p.advance(false); err != nil {
		return nil, err
	}
	if err := p.skipNewlines(); err != nil {
		return nil, err
	}

	var words []Word
	hasIn := false
	if p.atKeyword(KeywordIn) {
		hasIn = true
		if err := p.advance(false); err != nil {
			return nil, err
		}
		for p.tok.ID.Kind == TokenWord {
			w := p.tok.Word
			w.ParseTildeEverywhere()
			words = append(words, w)
			if err := p.advance(false); err != nil {
				return nil, err
			}
		}
	}

	if p.atOperator(OpSemi) {
		if err := p.advance(true); err != nil {
			return nil, err
		}
	}
	if err := p.skipNewlines(); err != nil {
		return nil, err
	}
	if !p.atKeyword(KeywordDo) {
		return nil, newSyntaxError(CauseUnexpectedToken, p.tok.Location)
	}

	body, err := p.parseDoGroup()
	if err != nil {
		return nil, err
	}
	return ForClause[MissingHereDoc]{Name: name, Words: words, HasIn: hasIn, Body: body}, nil
}

func (p *Parser) parseWhileClause() (CompoundCommand[MissingHereDoc], error) {
	until := p.atKeyword(KeywordUntil)
	if err := p.advance(true); err != nil {
		return nil, err
	}
	cond, err := p.parseList(func(t Token) bool { return t.ID.Kind == TokenKeyword && t.ID.Keyword == KeywordDo })
	if err != nil {
		return nil, err
	}
	if !p.atKeyword(KeywordDo) {
		return nil, newSyntaxError(CauseUnexpectedToken, p.tok.Location)
	}
	body, err := p.parseDoGroup()
	if err != nil {
		return nil, err
	}
	return WhileClause[MissingHereDoc]{Condition: cond, Body: body, Until: until}, nil
}

func (p *Parser) parseIfClause() (CompoundCommand[MissingHereDoc], error) {
	if err := p.advance(true); err != nil {
		return nil, err
	}
	cond, err := p.parseList(func(t Token) bool { return t.ID.Kind == TokenKeyword && t.ID.Keyword == KeywordThen })
	if err != nil {
		return nil, err
	}
	if !p.atKeyword(KeywordThen) {
		return nil, newSyntaxError(CauseUnexpectedToken, p.tok.Location)
	}
	if err := p.advance(true); err != nil {
		return nil, err
	}
	body, err := p.parseList(isElseOrFi)
	if err != nil {
		return nil, err
	}

	elseClause, err := p.parseElseClause()
	if err != nil {
		return nil, err
	}

	if !p.atKeyword(KeywordFi) {
		return nil, newSyntaxError(CauseUnexpectedToken, p.tok.Location)
	}
	if err := p.advance(false); err != nil {
		return nil, err
	}
	return IfClause[MissingHereDoc]{Condition: cond, Body: body, Else: elseClause}, nil
}

func isElseOrFi(t Token) bool {
	return t.ID.Kind == TokenKeyword && (t.ID.Keyword == KeywordElif || t.ID.Keyword == KeywordElse || t.ID.Keyword == KeywordFi)
}

func (p *Parser) parseElseClause() (*ElseClause[MissingHereDoc], error) {
	switch {
	case p.atKeyword(KeywordElif):
		if err := p.advance(true); err != nil {
			return nil, err
		}
		cond, err := p.parseList(func(t Token) bool { return t.ID.Kind == TokenKeyword && t.ID.Keyword == KeywordThen })
		if err != nil {
			return nil, err
		}
		if !p.atKeyword(KeywordThen) {
			return nil, newSyntaxError(CauseUnexpectedToken, p.tok.Location)
		}
		if err := p.advance(true); err != nil {
			return nil, err
		}
		body, err := p.parseList(isElseOrFi)
		if err != nil {
			return nil, err
		}
		next, err := p.parseElseClause()
		if err != nil {
			return nil, err
		}
		return &ElseClause[MissingHereDoc]{Condition: &cond, Body: body, Next: next}, nil

	case p.atKeyword(KeywordElse):
		if err := p.advance(true); err != nil {
			return nil, err
		}
		body, err := p.parseList(func(t Token) bool { return t.ID.Kind == TokenKeyword && t.ID.Keyword == KeywordFi })
		if err != nil {
			return nil, err
		}
		return &ElseClause[MissingHereDoc]{Body: body}, nil
	}
	return nil, nil
}

func (p *Parser) parseCaseClause() (CompoundCommand[MissingHereDoc], error) {
	if err := p.advance(false); err != nil {
		return nil, err
	}
	if p.tok.ID.Kind != TokenWord {
		return nil, newSyntaxError(CauseUnexpectedToken, p.tok.Location)
	}
	subject := p.tok.Word
	subject.ParseTildeEverywhere()
	if err := p.advance(false); err != nil {
		return nil, err
	}
	if err := p.skipNewlines(); err != nil {
		return nil, err
	}
	if !p.atKeyword(KeywordIn) {
		return nil, newSyntaxError(CauseUnexpectedToken, p.tok.Location)
	}
	if err := p.advance(true); err != nil {
		return nil, err
	}
	if err := p.skipNewlines(); err != nil {
		return nil, err
	}

	isItemEnd := func(t Token) bool {
		return (t.ID.Kind == TokenOperator && t.ID.Operator == OpDSemi) ||
			(t.ID.Kind == TokenKeyword && t.ID.Keyword == KeywordEsac)
	}

	var items []CaseItem[MissingHereDoc]
	for !p.atKeyword(KeywordEsac) {
		if p.atOperator(OpLParen) {
			if err := p.advance(false); err != nil {
				return nil, err
			}
		}

		var patterns []Word
		for {
			if p.tok.ID.Kind != TokenWord {
				return nil, newSyntaxError(CauseUnexpectedToken, p.tok.Location)
			}
			w := p.tok.Word
			w.ParseTildeEverywhere()
			patterns = append(patterns, w)
			if err := p.advance(false); err != nil {
				return nil, err
			}
			if !p.atOperator(OpPipe) {
				break
			}
			if err := p.advance(false); err != nil {
				return nil, err
			}
		}
		if !p.atOperator(OpRParen) {
			return nil, newSyntaxError(CauseUnexpectedToken, p.tok.Location)
		}
		if err := p.advance(true); err != nil {
			return nil, err
		}
		if err := p.skipNewlines(); err != nil {
			return nil, err
		}

		body, err := p.parseList(isItemEnd)
		if err != nil {
			return nil, err
		}
		items = append(items, CaseItem[MissingHereDoc]{Patterns: patterns, Body: body})

		if p.atOperator(OpDSemi) {
			if err := p.advance(true); err != nil {
				return nil, err
			}
			if err := p.skipNewlines(); err != nil {
				return nil, err
			}
			continue
		}
		break
	}

	if !p.atKeyword(KeywordEsac) {
		return nil, newSyntaxError(CauseUnexpectedToken, p.tok.Location)
	}
	if err := p.advance(false); err != nil {
		return nil, err
	}
	return CaseClause[MissingHereDoc]{Subject: subject, Items: items}, nil
}
