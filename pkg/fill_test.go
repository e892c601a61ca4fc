package syntax

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func partialWithHereDoc(delim string, removeLeadingTabs bool) PartialAST {
	redir := Redir[MissingHereDoc]{
		Operator: OpDLess,
		Body:     RedirHereDoc[MissingHereDoc]{Body: MissingHereDoc{Delimiter: litWord(delim), RemoveLeadingTabs: removeLeadingTabs}},
	}
	sc := SimpleCommand[MissingHereDoc]{Words: []Word{litWord("cat")}, Redirs: []Redir[MissingHereDoc]{redir}}
	pipe := Pipeline[MissingHereDoc]{Commands: []Command[MissingHereDoc]{SimpleCommandNode[MissingHereDoc]{Command: sc}}}
	return List[MissingHereDoc]{Items: []ListItem[MissingHereDoc]{{AndOr: AndOrList[MissingHereDoc]{First: pipe}}}}
}

func TestFillResolvesSingleHereDoc(t *testing.T) {
	partial := partialWithHereDoc("EOF", false)
	bodies := []HereDocBody{{Content: Text{Units: literalRun("hello\n")}, Quoted: false}}

	ast, err := Fill(partial, bodies)
	require.NoError(t, err)

	node := ast.Items[0].AndOr.First.Commands[0].(SimpleCommandNode[HereDoc])
	hd := node.Command.Redirs[0].Body.(RedirHereDoc[HereDoc])
	assert.Equal(t, "hello\n", hd.Body.Content.String())
	assert.False(t, hd.Body.Quoted)
	assert.Equal(t, "EOF", hd.Body.Delimiter.String())
}

func TestFillPreservesRemoveLeadingTabsFlag(t *testing.T) {
	partial := partialWithHereDoc("EOF", true)
	bodies := []HereDocBody{{Content: Text{Units: literalRun("x\n")}}}

	ast, err := Fill(partial, bodies)
	require.NoError(t, err)
	node := ast.Items[0].AndOr.First.Commands[0].(SimpleCommandNode[HereDoc])
	hd := node.Command.Redirs[0].Body.(RedirHereDoc[HereDoc])
	assert.True(t, hd.Body.RemoveLeadingTabs)
}

func TestFillErrorsOnTooFewBodies(t *testing.T) {
	partial := partialWithHereDoc("EOF", false)
	_, err := Fill(partial, nil)
	assert.Error(t, err)
}

func TestFillErrorsOnTooManyBodies(t *testing.T) {
	partial := partialWithHereDoc("EOF", false)
	bodies := []HereDocBody{
		{Content: Text{Units: literalRun("a\n")}},
		{Content: Text{Units: literalRun("b\n")}},
	}
	_, err := Fill(partial, bodies)
	assert.Error(t, err)
}

func TestFillWithNoHereDocsAndNoBodies(t *testing.T) {
	sc := SimpleCommand[MissingHereDoc]{Words: []Word{litWord("echo"), litWord("hi")}}
	pipe := Pipeline[MissingHereDoc]{Commands: []Command[MissingHereDoc]{SimpleCommandNode[MissingHereDoc]{Command: sc}}}
	partial := List[MissingHereDoc]{Items: []ListItem[MissingHereDoc]{{AndOr: AndOrList[MissingHereDoc]{First: pipe}}}}

	ast, err := Fill(partial, nil)
	require.NoError(t, err)
	node := ast.Items[0].AndOr.First.Commands[0].(SimpleCommandNode[HereDoc])
	assert.Equal(t, []string{"echo", "hi"}, wordStrings(t, node.Command.Words))
}
