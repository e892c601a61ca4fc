package syntax

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCodeAppendAndRuneAt(t *testing.T) {
	code := NewCode(1, StdinSource{})
	code.Append("echo ")
	code.Append("hi\n")

	require.Equal(t, 8, code.Len())
	assert.Equal(t, "echo hi\n", code.Value())
	assert.Equal(t, 'e', code.RuneAt(0))
	assert.Equal(t, '\n', code.RuneAt(7))
}

func TestLocationText(t *testing.T) {
	code := NewCode(1, StdinSource{})
	code.Append("echo hi")
	loc := Location{Code: code, Lo: 5, Hi: 7}
	assert.Equal(t, "hi", loc.Text())
}

func TestLocationLineCol(t *testing.T) {
	code := NewCode(1, StdinSource{})
	code.Append("ab\ncd\nef")
	// 'e' is at index 6: after "ab\n" (3) + "cd\n" (3) = 6.
	loc := Location{Code: code, Lo: 6, Hi: 7}
	assert.Equal(t, "<stdin>:3:1", loc.String())
}

func TestDummyLocation(t *testing.T) {
	loc := DummyLocation("xyz")
	assert.Equal(t, "xyz", loc.Text())
	assert.Equal(t, "<?>:1:1", loc.String())
}

func TestAliasSourceIsAliasForChain(t *testing.T) {
	originalCode := NewCode(1, StdinSource{})
	originalCode.Append("ll")
	original := Location{Code: originalCode, Lo: 0, Hi: 2}

	inner := AliasSource{Original: original, Alias: &Alias{Name: "ll"}}
	innerCode := NewCode(1, inner)
	innerCode.Append("ls -l")
	innerLoc := Location{Code: innerCode, Lo: 0, Hi: 5}

	outer := AliasSource{Original: innerLoc, Alias: &Alias{Name: "ls"}}

	assert.True(t, outer.IsAliasFor("ls"))
	assert.True(t, outer.IsAliasFor("ll"))
	assert.False(t, outer.IsAliasFor("rm"))
}

func TestAliasSetInsertGetRemove(t *testing.T) {
	set := NewAliasSet()

	_, existed := set.Insert(&Alias{Name: "ll", Replacement: "ls -l"})
	assert.False(t, existed)

	a, ok := set.Get("ll")
	require.True(t, ok)
	assert.Equal(t, "ls -l", a.Replacement)

	previous, hadPrevious := set.Insert(&Alias{Name: "ll", Replacement: "ls -la"})
	assert.True(t, hadPrevious)
	assert.Equal(t, "ls -l", previous.Replacement)

	removed, existed := set.Remove("ll")
	assert.True(t, existed)
	assert.Equal(t, "ls -la", removed.Replacement)

	_, ok = set.Get("ll")
	assert.False(t, ok)
}

func TestAliasSetIterIsSortedByName(t *testing.T) {
	set := NewAliasSet()
	set.Insert(&Alias{Name: "zz"})
	set.Insert(&Alias{Name: "aa"})
	set.Insert(&Alias{Name: "mm"})

	names := make([]string, 0, 3)
	for _, a := range set.Iter() {
		names = append(names, a.Name)
	}
	assert.Equal(t, []string{"aa", "mm", "zz"}, names)
}
