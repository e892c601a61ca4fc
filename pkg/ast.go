package syntax

// The AST types below are generic in H, the representation of a
// here-document body at a redirection site. Immediately after parsing a
// simple command's redirections, a <<, <<- here-document's body is not yet
// known — lines for it are only collected later, when the parser reaches
// the following unquoted newline. H lets the same tree shape represent
// both states:
//
//   - MissingHereDoc: a placeholder recorded at the point the "<<word"
//     operator was parsed, carrying only the delimiter word and the strip-
//     tabs flag.
//   - HereDoc: the final, filled-in body.
//
// The parser first builds a PartialAST (List[MissingHereDoc]); Fill
// (fill.go) walks it once all of a line's pending here-documents have been
// read and produces an AST (List[HereDoc]), which is what Parse returns.
type MissingHereDoc struct {
	// Delimiter is the word that followed << or <<-, before quote removal.
	Delimiter Word

	// RemoveLeadingTabs is true for <<-, which strips leading tab
	// characters from the delimiter line and every body line.
	RemoveLeadingTabs bool
}

// HereDoc is a here-document whose body has been read and attached.
type HereDoc struct {
	// Delimiter is the word that introduced the here-document.
	Delimiter Word

	// RemoveLeadingTabs mirrors MissingHereDoc.RemoveLeadingTabs.
	RemoveLeadingTabs bool

	// Quoted is true if Delimiter contained any quoting (single quotes,
	// double quotes, or a backslash), which per POSIX suppresses parameter,
	// command, and arithmetic expansion in Content — it is then treated as
	// entirely literal text.
	Quoted bool

	// Content is the text of the body, one TextUnit list built the same
	// way a double-quoted string's content is, except that Quoted disables
	// all expansion recognition and every line becomes a single Literal
	// run.
	Content Text
}

// RedirBody is the target of a redirection: either a Word (for <, >, >>,
// etc.), a duplicated file descriptor number or '-' (for <& and >&), or a
// here-document body (possibly still missing, per H).
type RedirBody[H any] interface {
	isRedirBody()
}

type RedirTarget struct{ Word Word }

func (RedirTarget) isRedirBody() {}

// RedirDup is the operand of <& or >&: either a file descriptor (FD) or
// '-' to close the descriptor (Close).
type RedirDup struct {
	FD    int
	Close bool
	Word  Word // the operand word as written, retained for diagnostics
}

func (RedirDup) isRedirBody() {}

type RedirHereDoc[H any] struct{ Body H }

func (RedirHereDoc[H]) isRedirBody() {}

// Redir is a single redirection attached to a command: its target file
// descriptor (defaulting per Operator if FDGiven is false), the operator,
// and the body.
type Redir[H any] struct {
	FD       int
	FDGiven  bool
	Operator OperatorKind
	Body     RedirBody[H]
	Location Location
}

// Assign is a leading NAME=value assignment on a simple command.
type Assign struct {
	Name     string
	Value    Word
	Location Location
}

// SimpleCommand is a command name plus its arguments, leading assignments,
// and redirections, in the order they appeared.
type SimpleCommand[H any] struct {
	Assigns  []Assign
	Words    []Word
	Redirs   []Redir[H]
	Location Location
}

// CompoundCommand is the non-simple-command forms: grouping, subshell, and
// the control-flow constructs. Each variant is its own type implementing
// the marker method; And/Or/pipeline-level composition lives in Pipeline
// and List below.
type CompoundCommand[H any] interface {
	isCompoundCommand()
}

type BraceGroup[H any] struct{ Body List[H] }

func (BraceGroup[H]) isCompoundCommand() {}

type Subshell[H any] struct{ Body List[H] }

func (Subshell[H]) isCompoundCommand() {}

type ForClause[H any] struct {
	Name   string
	Words  []Word // nil when "in" was omitted (HasIn false, iterating over "$@") or had no words
	HasIn  bool
	Body   List[H]
}

func (ForClause[H]) isCompoundCommand() {}

type CaseItem[H any] struct {
	Patterns []Word
	Body     List[H]
}

type CaseClause[H any] struct {
	Subject Word
	Items   []CaseItem[H]
}

func (CaseClause[H]) isCompoundCommand() {}

// ElseClause is one elif/else arm of an IfClause. Condition is nil for a
// plain "else"; set for an "elif". Next chains to the following elif/else
// arm, if any.
type ElseClause[H any] struct {
	Condition *List[H]
	Body      List[H]
	Next      *ElseClause[H]
}

type IfClause[H any] struct {
	Condition List[H]
	Body      List[H]
	Else      *ElseClause[H]
}

func (IfClause[H]) isCompoundCommand() {}

type WhileClause[H any] struct {
	Condition List[H]
	Body      List[H]
	Until     bool // true for "until", false for "while"
}

func (WhileClause[H]) isCompoundCommand() {}

// FunctionDefinition is "name() compound-command".
type FunctionDefinition[H any] struct {
	Name     string
	Body     CompoundCommand[H]
	Redirs   []Redir[H]
	Location Location
}

// Command is one element of a Pipeline: a simple command, a compound
// command with its own trailing redirections, or a function definition.
type Command[H any] interface {
	isCommand()
}

type SimpleCommandNode[H any] struct{ Command SimpleCommand[H] }

func (SimpleCommandNode[H]) isCommand() {}

type CompoundCommandNode[H any] struct {
	Command CompoundCommand[H]
	Redirs  []Redir[H]
}

func (CompoundCommandNode[H]) isCommand() {}

type FunctionDefinitionNode[H any] struct{ Definition FunctionDefinition[H] }

func (FunctionDefinitionNode[H]) isCommand() {}

// Pipeline is a sequence of one or more Commands joined by '|', optionally
// negated by a leading '!'.
type Pipeline[H any] struct {
	Negated  bool
	Commands []Command[H]
}

// AndOrKind distinguishes && from || in an AndOrList.
type AndOrKind int

const (
	AndOrAnd AndOrKind = iota
	AndOrOr
)

// AndOrList is a pipeline followed by zero or more (kind, pipeline) pairs,
// e.g. "a && b || c".
type AndOrList[H any] struct {
	First Pipeline[H]
	Rest  []struct {
		Kind     AndOrKind
		Pipeline Pipeline[H]
	}
}

// ListItemTerminator records which operator (';', '&', or none at end of
// input / before a closing keyword) ended a List item.
type ListItemTerminator int

const (
	TerminatorNone ListItemTerminator = iota
	TerminatorSemi
	TerminatorAsync
)

type ListItem[H any] struct {
	AndOr      AndOrList[H]
	Terminator ListItemTerminator
}

// List is a sequence of AndOrLists, each terminated by ';', '&', or
// implicitly by end of input or a closing reserved word. It is the body of
// a program, a brace group, a subshell, or a control-flow clause.
type List[H any] struct {
	Items []ListItem[H]
}

// PartialAST is the root a single parse produces, before here-documents are
// filled in.
type PartialAST = List[MissingHereDoc]

// AST is a fully resolved program, after Fill has supplied every
// here-document's body.
type AST = List[HereDoc]
