package lineardoc

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestBuilderFinishTextBlockEmitsBlockspaceForWhitespaceOnly(t *testing.T) {
	b := NewBuilder()
	b.PushBlockTag(NewTag("body"))
	b.AddTextChunk("   \n ", true)
	b.FinishTextBlock()

	require.Len(t, b.Doc.Items, 2) // open(body), blockspace
	require.Equal(t, ItemBlockspace, b.Doc.Items[1].Type)
	require.Equal(t, "   \n ", b.Doc.Items[1].Space)
}

func TestBuilderFinishTextBlockEmitsTextBlockForContent(t *testing.T) {
	b := NewBuilder()
	b.PushBlockTag(NewTag("body"))
	b.AddTextChunk("hello", true)
	b.FinishTextBlock()

	require.Equal(t, ItemTextBlock, b.Doc.Items[1].Type)
	require.Equal(t, "hello", b.Doc.Items[1].TextBlock.PlainText())
}

func TestBuilderPushBlockTagStampsFigureRel(t *testing.T) {
	b := NewBuilder()
	figure := NewTag("figure")
	b.PushBlockTag(figure)

	got, _ := figure.Attr("rel")
	require.Equal(t, "cx:Figure", got)
}

func TestBuilderCategoryLinkGoesToSidelist(t *testing.T) {
	b := NewBuilder()
	category := NewTagAttrs("link", [2]string{"rel", "mw:PageProp/Category"})
	b.PushBlockTag(category)

	require.Empty(t, b.Doc.Items)
	require.Len(t, b.Doc.Categories, 1)
	require.Same(t, category, b.Doc.Categories[0])
}

func TestBuilderCategoryLinkWithAboutIsNotDiverted(t *testing.T) {
	b := NewBuilder()
	fragment := NewTagAttrs("link",
		[2]string{"rel", "mw:PageProp/Category"},
		[2]string{"about", "#mwt1"})
	b.PushBlockTag(fragment)

	require.Len(t, b.Doc.Items, 1, "a category fragment that's part of a transclusion is not a standalone category")
	require.Empty(t, b.Doc.Categories)
}

func TestBuilderSectionMarkerIsStripped(t *testing.T) {
	b := NewBuilder()
	section := NewTagAttrs("section", [2]string{"data-mw-section-id", "0"})
	b.PushBlockTag(section)

	require.Empty(t, b.Doc.Items)
}

func TestBuilderPopBlockTagMismatchErrors(t *testing.T) {
	b := NewBuilder()
	b.PushBlockTag(NewTag("p"))
	_, err := b.PopBlockTag("div")
	require.ErrorIs(t, err, ErrStructuralMismatch)
}

func TestBuilderPopInlineAnnotationTagMismatchErrors(t *testing.T) {
	b := NewBuilder()
	b.PushInlineAnnotationTag(NewTag("a"))
	err := b.PopInlineAnnotationTag("i")
	require.ErrorIs(t, err, ErrStructuralMismatch)
}

// TestBuilderCollapsesWhitespaceOnlyReference covers the §4.5 rule: an empty
// <ref></ref> (or one containing only whitespace) is re-attached as a
// single whitespace-preserving sub-Doc instead of vanishing as loose text.
func TestBuilderCollapsesWhitespaceOnlyReference(t *testing.T) {
	b := NewBuilder()
	b.PushBlockTag(NewTag("p"))
	b.AddTextChunk("before ", true)

	ref := NewTagAttrs("sup", [2]string{"typeof", "mw:Extension/ref"})
	b.PushInlineAnnotationTag(ref)
	b.AddTextChunk(" ", true)
	require.NoError(t, b.PopInlineAnnotationTag("sup"))

	b.AddTextChunk(" after", true)
	b.FinishTextBlock()

	tb := b.Doc.Items[1].TextBlock
	var sawSubDoc bool
	for _, c := range tb.Chunks {
		if _, ok := c.InlineContent.(*Doc); ok {
			sawSubDoc = true
		}
	}
	require.True(t, sawSubDoc, "whitespace-only reference must collapse into a sub-Doc")
}

func TestCreateChildBuilderWrapperTag(t *testing.T) {
	b := NewBuilder()
	sup := NewTag("sup")
	child := b.CreateChildBuilder(sup)

	require.Same(t, sup, child.Doc.WrapperTag)
	require.Same(t, b, child.parent)
}
