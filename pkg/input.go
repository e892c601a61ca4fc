package syntax

import (
	"bufio"
	"io"
	"os"
)

// Context carries information the Input may use to decide how to fetch the
// next line, such as which prompt to show on an interactive terminal.
type Context struct {
	// Continuation is true when the parser is reading a line in the middle
	// of an unfinished construct (an open quote, an unclosed here-doc, a
	// pending redirection target, ...). An Input may use this to select a
	// secondary ("PS2") prompt instead of the primary one.
	Continuation bool
}

// Input is a lazy line-oriented producer of source text. It is the only
// suspension point in the pipeline: the lexer calls NextLine whenever it has
// consumed all buffered text and needs more, which can be in the middle of a
// token (an open quote, a substitution, a here-document body), and appends
// whatever is returned to the current Code's value in order.
//
// A non-empty returned line ends with '\n' unless it is the final line at
// end of input. An empty return (with a nil error) signals end of input.
type Input interface {
	NextLine(ctx Context) (string, error)
}

// EchoState is a shared on/off cell an Input reads after every successful
// line; when on, the line just read is echoed to stderr. It implements the
// shell's "verbose" option: toggling the cell during parsing takes effect on
// the next line, not retroactively.
type EchoState struct {
	on bool
}

// Set turns echoing on or off.
func (e *EchoState) Set(on bool) { e.on = on }

// On reports the current state.
func (e *EchoState) On() bool { return e.on }

// StringInput feeds the lexer from an in-memory string, split into lines
// that each retain their trailing newline. It is used for -c fragments,
// command substitution bodies, and tests.
type StringInput struct {
	remaining string
	echo      *EchoState
	stderr    io.Writer
}

// NewStringInput creates an Input over all of src.
func NewStringInput(src string) *StringInput {
	return &StringInput{remaining: src}
}

// SetEcho attaches a shared echo cell and the stream lines are echoed to
// when it is on. A nil cell disables echoing.
func (s *StringInput) SetEcho(echo *EchoState, stderr io.Writer) {
	s.echo = echo
	s.stderr = stderr
}

// NextLine implements Input.
func (s *StringInput) NextLine(_ Context) (string, error) {
	if s.remaining == "" {
		return "", nil
	}
	i := indexByteOrEnd(s.remaining, '\n')
	line := s.remaining[:i]
	s.remaining = s.remaining[i:]
	if s.echo != nil && s.echo.On() && s.stderr != nil {
		_, _ = io.WriteString(s.stderr, line)
	}
	return line, nil
}

func indexByteOrEnd(s string, b byte) int {
	for i := 0; i < len(s); i++ {
		if s[i] == b {
			return i + 1
		}
	}
	return len(s)
}

// ReaderInput feeds the lexer line by line from an arbitrary io.Reader, such
// as an open script file or the process's standard input.
type ReaderInput struct {
	r      *bufio.Reader
	echo   *EchoState
	stderr io.Writer
	atEOF  bool
}

// NewReaderInput wraps r as an Input.
func NewReaderInput(r io.Reader) *ReaderInput {
	return &ReaderInput{r: bufio.NewReader(r)}
}

// NewStdinInput is a convenience constructor reading from os.Stdin.
func NewStdinInput() *ReaderInput {
	return NewReaderInput(os.Stdin)
}

// SetEcho attaches a shared echo cell and the stream lines are echoed to.
func (r *ReaderInput) SetEcho(echo *EchoState, stderr io.Writer) {
	r.echo = echo
	r.stderr = stderr
}

// NextLine implements Input.
func (r *ReaderInput) NextLine(_ Context) (string, error) {
	if r.atEOF {
		return "", nil
	}
	line, err := r.r.ReadString('\n')
	if err != nil {
		if err != io.EOF {
			return "", err
		}
		r.atEOF = true
		// line may be a non-empty final partial line; that is fine, it is
		// returned without a trailing newline per the Input contract.
	}
	if r.echo != nil && r.echo.On() && r.stderr != nil && line != "" {
		_, _ = io.WriteString(r.stderr, line)
	}
	return line, nil
}
