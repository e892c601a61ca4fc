package syntax

import "fmt"

// HereDocBody is one here-document's body text, collected from the input
// immediately after the line containing its introducing "<<"/"<<-"
// operator. Quoted mirrors HereDoc.Quoted.
type HereDocBody struct {
	Content Text
	Quoted  bool
}

// filler walks a PartialAST and a same-length, in-order slice of
// HereDocBody, replacing each MissingHereDoc with the next body. The
// invariant maintained by the parser is that the number of MissingHereDoc
// placeholders in the tree equals len(bodies); Fill returns an error if
// that invariant was violated.
type filler struct {
	bodies []HereDocBody
	next   int
}

// Fill resolves every here-document placeholder in ast against bodies, in
// the order the placeholders appear in program text (the same order the
// parser collected their delimiters in).
func Fill(ast PartialAST, bodies []HereDocBody) (AST, error) {
	f := &filler{bodies: bodies}
	out, err := f.fillList(ast)
	if err != nil {
		return AST{}, err
	}
	if f.next != len(bodies) {
		return AST{}, fmt.Errorf("syntax: %d here-document bodies supplied but only %d placeholders found", len(bodies), f.next)
	}
	return out, nil
}

func (f *filler) nextBody(delim Word) (HereDoc, error) {
	if f.next >= len(f.bodies) {
		return HereDoc{}, fmt.Errorf("syntax: here-document for %q has no supplied body", delim.String())
	}
	b := f.bodies[f.next]
	f.next++
	return HereDoc{Delimiter: delim, Content: b.Content, Quoted: b.Quoted}, nil
}

func (f *filler) fillList(l List[MissingHereDoc]) (List[HereDoc], error) {
	out := List[HereDoc]{Items: make([]ListItem[HereDoc], len(l.Items))}
	for i, item := range l.Items {
		andOr, err := f.fillAndOr(item.AndOr)
		if err != nil {
			return List[HereDoc]{}, err
		}
		out.Items[i] = ListItem[HereDoc]{AndOr: andOr, Terminator: item.Terminator}
	}
	return out, nil
}

func (f *filler) fillAndOr(a AndOrList[MissingHereDoc]) (AndOrList[HereDoc], error) {
	first, err := f.fillPipeline(a.First)
	if err != nil {
		return AndOrList[HereDoc]{}, err
	}
	out := AndOrList[HereDoc]{First: first}
	for _, r := range a.Rest {
		p, err := f.fillPipeline(r.Pipeline)
		if err != nil {
			return AndOrList[HereDoc]{}, err
		}
		out.Rest = append(out.Rest, struct {
			Kind     AndOrKind
			Pipeline Pipeline[HereDoc]
		}{Kind: r.Kind, Pipeline: p})
	}
	return out, nil
}

func (f *filler) fillPipeline(p Pipeline[MissingHereDoc]) (Pipeline[HereDoc], error) {
	out := Pipeline[HereDoc]{Negated: p.Negated, Commands: make([]Command[HereDoc], len(p.Commands))}
	for i, c := range p.Commands {
		fc, err := f.fillCommand(c)
		if err != nil {
			return Pipeline[HereDoc]{}, err
		}
		out.Commands[i] = fc
	}
	return out, nil
}

func (f *filler) fillCommand(c Command[MissingHereDoc]) (Command[HereDoc], error) {
	switch v := c.(type) {
	case SimpleCommandNode[MissingHereDoc]:
		sc, err := f.fillSimpleCommand(v.Command)
		if err != nil {
			return nil, err
		}
		return SimpleCommandNode[HereDoc]{Command: sc}, nil

	case CompoundCommandNode[MissingHereDoc]:
		cc, err := f.fillCompound(v.Command)
		if err != nil {
			return nil, err
		}
		redirs, err := f.fillRedirs(v.Redirs)
		if err != nil {
			return nil, err
		}
		return CompoundCommandNode[HereDoc]{Command: cc, Redirs: redirs}, nil

	case FunctionDefinitionNode[MissingHereDoc]:
		body, err := f.fillCompound(v.Definition.Body)
		if err != nil {
			return nil, err
		}
		redirs, err := f.fillRedirs(v.Definition.Redirs)
		if err != nil {
			return nil, err
		}
		return FunctionDefinitionNode[HereDoc]{Definition: FunctionDefinition[HereDoc]{
			Name: v.Definition.Name, Body: body, Redirs: redirs, Location: v.Definition.Location,
		}}, nil
	}
	return nil, fmt.Errorf("syntax: unknown command node %T", c)
}

func (f *filler) fillSimpleCommand(sc SimpleCommand[MissingHereDoc]) (SimpleCommand[HereDoc], error) {
	redirs, err := f.fillRedirs(sc.Redirs)
	if err != nil {
		return SimpleCommand[HereDoc]{}, err
	}
	return SimpleCommand[HereDoc]{
		Assigns: sc.Assigns, Words: sc.Words, Redirs: redirs, Location: sc.Location,
	}, nil
}

func (f *filler) fillRedirs(redirs []Redir[MissingHereDoc]) ([]Redir[HereDoc], error) {
	if redirs == nil {
		return nil, nil
	}
	out := make([]Redir[HereDoc], len(redirs))
	for i, r := range redirs {
		body, err := f.fillRedirBody(r.Body)
		if err != nil {
			return nil, err
		}
		out[i] = Redir[HereDoc]{FD: r.FD, FDGiven: r.FDGiven, Operator: r.Operator, Body: body, Location: r.Location}
	}
	return out, nil
}

func (f *filler) fillRedirBody(body RedirBody[MissingHereDoc]) (RedirBody[HereDoc], error) {
	switch v := body.(type) {
	case RedirTarget:
		return RedirTarget{Word: v.Word}, nil
	case RedirDup:
		return RedirDup{FD: v.FD, Close: v.Close, Word: v.Word}, nil
	case RedirHereDoc[MissingHereDoc]:
		heredoc, err := f.nextBody(v.Body.Delimiter)
		if err != nil {
			return nil, err
		}
		heredoc.RemoveLeadingTabs = v.Body.RemoveLeadingTabs
		return RedirHereDoc[HereDoc]{Body: heredoc}, nil
	}
	return nil, fmt.Errorf("syntax: unknown redirection body %T", body)
}

func (f *filler) fillElseClause(e *ElseClause[MissingHereDoc]) (*ElseClause[HereDoc], error) {
	if e == nil {
		return nil, nil
	}
	body, err := f.fillList(e.Body)
	if err != nil {
		return nil, err
	}
	var cond *List[HereDoc]
	if e.Condition != nil {
		c, err := f.fillList(*e.Condition)
		if err != nil {
			return nil, err
		}
		cond = &c
	}
	next, err := f.fillElseClause(e.Next)
	if err != nil {
		return nil, err
	}
	return &ElseClause[HereDoc]{Condition: cond, Body: body, Next: next}, nil
}

func (f *filler) fillCompound(cc CompoundCommand[MissingHereDoc]) (CompoundCommand[HereDoc], error) {
	switch v := cc.(type) {
	case BraceGroup[MissingHereDoc]:
		body, err := f.fillList(v.Body)
		if err != nil {
			return nil, err
		}
		return BraceGroup[HereDoc]{Body: body}, nil

	case Subshell[MissingHereDoc]:
		body, err := f.fillList(v.Body)
		if err != nil {
			return nil, err
		}
		return Subshell[HereDoc]{Body: body}, nil

	case ForClause[MissingHereDoc]:
		body, err := f.fillList(v.Body)
		if err != nil {
			return nil, err
		}
		return ForClause[HereDoc]{Name: v.Name, Words: v.Words, HasIn: v.HasIn, Body: body}, nil

	case CaseClause[MissingHereDoc]:
		items := make([]CaseItem[HereDoc], len(v.Items))
		for i, item := range v.Items {
			body, err := f.fillList(item.Body)
			if err != nil {
				return nil, err
			}
			items[i] = CaseItem[HereDoc]{Patterns: item.Patterns, Body: body}
		}
		return CaseClause[HereDoc]{Subject: v.Subject, Items: items}, nil

	case IfClause[MissingHereDoc]:
		cond, err := f.fillList(v.Condition)
		if err != nil {
			return nil, err
		}
		body, err := f.fillList(v.Body)
		if err != nil {
			return nil, err
		}
		elseClause, err := f.fillElseClause(v.Else)
		if err != nil {
			return nil, err
		}
		return IfClause[HereDoc]{Condition: cond, Body: body, Else: elseClause}, nil

	case WhileClause[MissingHereDoc]:
		cond, err := f.fillList(v.Condition)
		if err != nil {
			return nil, err
		}
		body, err := f.fillList(v.Body)
		if err != nil {
			return nil, err
		}
		return WhileClause[HereDoc]{Condition: cond, Body: body, Until: v.Until}, nil
	}
	return nil, fmt.Errorf("syntax: unknown compound command %T", cc)
}
