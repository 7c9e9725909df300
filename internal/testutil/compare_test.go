package testutil

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSameStructureIgnoresAttributeOrderAndWhitespace(t *testing.T) {
	expected := `<p class="a" id="b">hello</p>`
	actual := "<p id=\"b\" class=\"a\">\n  hello\n</p>"

	same, err := SameStructure(expected, actual)
	require.NoError(t, err)
	require.True(t, same)
}

func TestSameStructureDetectsTagMismatch(t *testing.T) {
	same, err := SameStructure(`<p>hello</p>`, `<div>hello</div>`)
	require.NoError(t, err)
	require.False(t, same)
}

func TestSameStructureDetectsAttributeValueMismatch(t *testing.T) {
	same, err := SameStructure(`<a href="/x">x</a>`, `<a href="/y">x</a>`)
	require.NoError(t, err)
	require.False(t, same)
}

func TestSameStructureDetectsTextMismatch(t *testing.T) {
	same, err := SameStructure(`<p>hello</p>`, `<p>goodbye</p>`)
	require.NoError(t, err)
	require.False(t, same)
}

func TestSameStructureRecursesIntoChildren(t *testing.T) {
	expected := `<div><p>a</p><p>b</p></div>`
	actual := `<div><p>a</p><p>c</p></div>`

	same, err := SameStructure(expected, actual)
	require.NoError(t, err)
	require.False(t, same)
}

func TestDiffHighlightsChange(t *testing.T) {
	out := Diff("hello world", "hello there")
	require.Contains(t, out, "hello")
}
