package syntax

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func simpleCmd(words ...string) SimpleCommand[MissingHereDoc] {
	ws := make([]Word, len(words))
	for i, w := range words {
		ws[i] = litWord(w)
	}
	return SimpleCommand[MissingHereDoc]{Words: ws}
}

func wrapPipeline(cmd SimpleCommand[MissingHereDoc]) Pipeline[MissingHereDoc] {
	return Pipeline[MissingHereDoc]{Commands: []Command[MissingHereDoc]{SimpleCommandNode[MissingHereDoc]{Command: cmd}}}
}

func TestASTCompoundCommandVariantsSatisfyInterface(t *testing.T) {
	var variants = []CompoundCommand[MissingHereDoc]{
		BraceGroup[MissingHereDoc]{},
		Subshell[MissingHereDoc]{},
		ForClause[MissingHereDoc]{Name: "i"},
		CaseClause[MissingHereDoc]{},
		IfClause[MissingHereDoc]{},
		WhileClause[MissingHereDoc]{},
	}
	assert.Len(t, variants, 6)
}

func TestASTCommandVariantsSatisfyInterface(t *testing.T) {
	var variants = []Command[MissingHereDoc]{
		SimpleCommandNode[MissingHereDoc]{},
		CompoundCommandNode[MissingHereDoc]{},
		FunctionDefinitionNode[MissingHereDoc]{},
	}
	assert.Len(t, variants, 3)
}

func TestASTRedirBodyVariantsSatisfyInterface(t *testing.T) {
	var variants = []RedirBody[MissingHereDoc]{
		RedirTarget{},
		RedirDup{},
		RedirHereDoc[MissingHereDoc]{},
	}
	assert.Len(t, variants, 3)
}

func TestASTIfClauseElifChain(t *testing.T) {
	elif := ElseClause[MissingHereDoc]{
		Condition: &List[MissingHereDoc]{Items: []ListItem[MissingHereDoc]{{AndOr: AndOrList[MissingHereDoc]{First: wrapPipeline(simpleCmd("cond2"))}}}},
		Body:      List[MissingHereDoc]{Items: []ListItem[MissingHereDoc]{{AndOr: AndOrList[MissingHereDoc]{First: wrapPipeline(simpleCmd("body2"))}}}},
	}
	els := ElseClause[MissingHereDoc]{
		Body: List[MissingHereDoc]{Items: []ListItem[MissingHereDoc]{{AndOr: AndOrList[MissingHereDoc]{First: wrapPipeline(simpleCmd("fallback"))}}}},
	}
	elif.Next = &els

	ifc := IfClause[MissingHereDoc]{
		Condition: List[MissingHereDoc]{Items: []ListItem[MissingHereDoc]{{AndOr: AndOrList[MissingHereDoc]{First: wrapPipeline(simpleCmd("cond1"))}}}},
		Body:      List[MissingHereDoc]{Items: []ListItem[MissingHereDoc]{{AndOr: AndOrList[MissingHereDoc]{First: wrapPipeline(simpleCmd("body1"))}}}},
		Else:      &elif,
	}

	assert.NotNil(t, ifc.Else)
	assert.NotNil(t, ifc.Else.Condition)
	assert.NotNil(t, ifc.Else.Next)
	assert.Nil(t, ifc.Else.Next.Condition)
}

func TestASTAndOrListShape(t *testing.T) {
	aol := AndOrList[MissingHereDoc]{
		First: wrapPipeline(simpleCmd("a")),
		Rest: []struct {
			Kind     AndOrKind
			Pipeline Pipeline[MissingHereDoc]
		}{
			{Kind: AndOrAnd, Pipeline: wrapPipeline(simpleCmd("b"))},
			{Kind: AndOrOr, Pipeline: wrapPipeline(simpleCmd("c"))},
		},
	}
	assert.Len(t, aol.Rest, 2)
	assert.Equal(t, AndOrAnd, aol.Rest[0].Kind)
	assert.Equal(t, AndOrOr, aol.Rest[1].Kind)
}
