package lineardoc

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNormalizeSortsAttributes(t *testing.T) {
	out, err := Normalize(`<a class="x" href="/y">text</a>`)
	require.NoError(t, err)
	require.Equal(t, `<a class="x" href="/y">text</a>`, out)
}

func TestNormalizeReordersAttributes(t *testing.T) {
	out, err := Normalize(`<a href="/y" class="x">text</a>`)
	require.NoError(t, err)
	require.Equal(t, `<a class="x" href="/y">text</a>`, out)
}

func TestNormalizeSelfClosesVoidElements(t *testing.T) {
	out, err := Normalize(`<img src="a.jpg">`)
	require.NoError(t, err)
	require.Equal(t, `<img src="a.jpg" />`, out)
}

func TestNormalizeEscapesText(t *testing.T) {
	out, err := Normalize(`<p>a & b</p>`)
	require.NoError(t, err)
	require.Equal(t, `<p>a &#38; b</p>`, out)
}
