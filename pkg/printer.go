package syntax

import "strings"

// Print renders ast back to shell source text. It is not intended to
// reproduce the original formatting (blank lines, comment placement, or
// the exact choice between equivalent operators are not preserved) but
// Parse(Print(ast)) reproduces ast's structure for any AST that contains no
// here-documents, except that the last command of a compound command's body
// always comes back with a ';' terminator; printing has then reached a
// fixed point, which is the round-trip property this package's tests check. Here-documents round-trip in content but not in
// the surrounding newline layout, since Print emits their bodies inline
// after the command rather than deferring them the way real shell source
// does.
func Print(ast AST) string {
	var b strings.Builder
	printList(&b, ast, 0)
	return b.String()
}

func operatorText(k OperatorKind) string {
	for _, op := range operators {
		if op.kind == k {
			return op.text
		}
	}
	return "?"
}

func printList(b *strings.Builder, l List[HereDoc], depth int) {
	for i, item := range l.Items {
		if i > 0 {
			b.WriteByte('\n')
		}
		printAndOr(b, item.AndOr, depth)
		switch item.Terminator {
		case TerminatorSemi:
			b.WriteString(" ;")
		case TerminatorAsync:
			b.WriteString(" &")
		default:
			// Inside a compound command the closing reserved word follows on
			// the same line, so the body's last command needs a ';'.
			if depth > 0 && i == len(l.Items)-1 {
				b.WriteString(" ;")
			}
		}
	}
}

func printAndOr(b *strings.Builder, a AndOrList[HereDoc], depth int) {
	printPipeline(b, a.First, depth)
	for _, r := range a.Rest {
		if r.Kind == AndOrAnd {
			b.WriteString(" && ")
		} else {
			b.WriteString(" || ")
		}
		printPipeline(b, r.Pipeline, depth)
	}
}

func printPipeline(b *strings.Builder, p Pipeline[HereDoc], depth int) {
	if p.Negated {
		b.WriteString("! ")
	}
	for i, c := range p.Commands {
		if i > 0 {
			b.WriteString(" | ")
		}
		printCommand(b, c, depth)
	}
}

func printCommand(b *strings.Builder, c Command[HereDoc], depth int) {
	switch v := c.(type) {
	case SimpleCommandNode[HereDoc]:
		printSimpleCommand(b, v.Command)
	case CompoundCommandNode[HereDoc]:
		printCompound(b, v.Command, depth)
		printRedirs(b, v.Redirs)
	case FunctionDefinitionNode[HereDoc]:
		b.WriteString(v.Definition.Name)
		b.WriteString("() ")
		printCompound(b, v.Definition.Body, depth)
		printRedirs(b, v.Definition.Redirs)
	}
}

func printSimpleCommand(b *strings.Builder, sc SimpleCommand[HereDoc]) {
	first := true
	writeSep := func() {
		if !first {
			b.WriteByte(' ')
		}
		first = false
	}
	for _, a := range sc.Assigns {
		writeSep()
		b.WriteString(a.Name)
		b.WriteByte('=')
		b.WriteString(a.Value.String())
	}
	for _, w := range sc.Words {
		writeSep()
		b.WriteString(w.String())
	}
	for _, r := range sc.Redirs {
		writeSep()
		printRedir(b, r)
	}
}

func printRedirs(b *strings.Builder, redirs []Redir[HereDoc]) {
	for _, r := range redirs {
		b.WriteByte(' ')
		printRedir(b, r)
	}
}

func printRedir(b *strings.Builder, r Redir[HereDoc]) {
	if r.FDGiven {
		b.WriteString(itoa(r.FD))
	}
	b.WriteString(operatorText(r.Operator))
	switch v := r.Body.(type) {
	case RedirTarget:
		b.WriteString(v.Word.String())
	case RedirDup:
		if v.Close {
			b.WriteByte('-')
		} else {
			b.WriteString(itoa(v.FD))
		}
	case RedirHereDoc[HereDoc]:
		b.WriteString(v.Body.Delimiter.String())
		b.WriteByte('\n')
		b.WriteString(v.Body.Content.String())
		b.WriteString(v.Body.Delimiter.String())
		b.WriteByte('\n')
	}
}

func itoa(n int) string {
	if n == 0 {
		return "0"
	}
	neg := n < 0
	if neg {
		n = -n
	}
	var digits [20]byte
	i := len(digits)
	for n > 0 {
		i--
		digits[i] = byte('0' + n%10)
		n /= 10
	}
	if neg {
		i--
		digits[i] = '-'
	}
	return string(digits[i:])
}

func printCompound(b *strings.Builder, cc CompoundCommand[HereDoc], depth int) {
	switch v := cc.(type) {
	case BraceGroup[HereDoc]:
		b.WriteString("{ ")
		printList(b, v.Body, depth+1)
		b.WriteString(" }")

	case Subshell[HereDoc]:
		b.WriteString("( ")
		printList(b, v.Body, depth+1)
		b.WriteString(" )")

	case ForClause[HereDoc]:
		b.WriteString("for ")
		b.WriteString(v.Name)
		if v.HasIn {
			b.WriteString(" in")
			for _, w := range v.Words {
				b.WriteByte(' ')
				b.WriteString(w.String())
			}
		}
		b.WriteString("; do ")
		printList(b, v.Body, depth+1)
		b.WriteString(" done")

	case CaseClause[HereDoc]:
		b.WriteString("case ")
		b.WriteString(v.Subject.String())
		b.WriteString(" in ")
		for _, item := range v.Items {
			for i, pat := range item.Patterns {
				if i > 0 {
					b.WriteByte('|')
				}
				b.WriteString(pat.String())
			}
			b.WriteString(") ")
			printList(b, item.Body, depth+1)
			b.WriteString(" ;; ")
		}
		b.WriteString("esac")

	case IfClause[HereDoc]:
		b.WriteString("if ")
		printList(b, v.Condition, depth+1)
		b.WriteString(" then ")
		printList(b, v.Body, depth+1)
		printElse(b, v.Else, depth)
		b.WriteString(" fi")

	case WhileClause[HereDoc]:
		if v.Until {
			b.WriteString("until ")
		} else {
			b.WriteString("while ")
		}
		printList(b, v.Condition, depth+1)
		b.WriteString(" do ")
		printList(b, v.Body, depth+1)
		b.WriteString(" done")
	}
}

func printElse(b *strings.Builder, e *ElseClause[HereDoc], depth int) {
	if e == nil {
		return
	}
	if e.Condition != nil {
		b.WriteString(" elif ")
		printList(b, *e.Condition, depth+1)
		b.WriteString(" then ")
		printList(b, e.Body, depth+1)
		printElse(b, e.Next, depth)
		return
	}
	b.WriteString(" else ")
	printList(b, e.Body, depth+1)
}
