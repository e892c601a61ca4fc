package syntax

import "golang.org/x/sync/errgroup"

// ParseAll parses each of inputs independently and concurrently, each
// against its own Lexer and Code (parallel parses, e.g. in subshells, use
// independent Lexers and independent Code buffers), all consulting the
// same aliases set. aliases is read-only for the duration of ParseAll, so
// sharing it across goroutines is safe; it may be nil.
//
// If any parse fails, ParseAll returns the first error errgroup observes
// and cancels nothing else in flight; the other parses still run to
// completion.
func ParseAll(inputs []Input, aliases *AliasSet) ([]AST, error) {
	results := make([]AST, len(inputs))

	var g errgroup.Group
	for i, in := range inputs {
		i, in := i, in
		g.Go(func() error {
			lexer := NewLexer(in, StdinSource{})
			ast, err := Parse(lexer, aliases)
			if err != nil {
				return err
			}
			results[i] = ast
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}
