// Package test provides random shell-source generators used from this
// module's own _test.go files and benchmarks — never imported by
// production code.
package test

import (
	"math/rand"
	"strings"
)

// validShellTokens is a vocabulary of individual shell tokens wide enough
// to exercise keywords, operators, quoting, and dollar-forms when sampled
// and joined with blanks.
const validShellTokens = "if;then;else;elif;fi;for;in;do;done;while;until;case;esac;{;};!;echo;true;false;" +
	"a;b;c;foo;bar;name;|;||;&;&&;;;;;;<;>;<<;<<-;>>;<&;>&;<>;>|;(;);" +
	"'single\tquoted';\"double\tquoted\t$x\";\"literal\";$x;${x};$(echo\tsub);`echo\tsub`;$((1+2));" +
	"VAR=value;PATH=/bin:$HOME;~;~user/bin;1;23;\\n"

// GetRandomTokens returns size tokens sampled (with replacement) from the
// shell vocabulary, joined with single blanks.
func GetRandomTokens(size int) string {
	return GetRandomTokensWithSep(size, " ")
}

// GetRandomTokensWithSep is GetRandomTokens with a caller-chosen separator,
// e.g. "\n" to exercise list/newline handling.
func GetRandomTokensWithSep(size int, sep string) string {
	valid := strings.Split(validShellTokens, ";")

	var toks []string
	for len(toks) < size {
		toks = append(toks, valid[rand.Intn(len(valid))])
	}

	return strings.Join(toks, sep)
}
