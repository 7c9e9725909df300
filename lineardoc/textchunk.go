package lineardoc

// InlineContent is content that rides along at the tail of a TextChunk
// instead of being linearized as text: either an empty inline tag (br, img,
// ...) or a reference/math sub-document. This is a tagged union, not duck
// typing.
type InlineContent interface {
	inlineContentMarker()
}

func (t *Tag) inlineContentMarker() {}
func (d *Doc) inlineContentMarker() {}

// TextChunk is an immutable-by-convention unit: text plus the ordered stack
// of annotation tags in effect when it was created, plus optional inline
// content. If InlineContent is set, it is understood to follow Text.
//
// Chunks are compared by identity of the Tag pointers in Tags, never by
// structural equality — that identity is what lets rendering collapse
// adjacent chunks under shared open tags, and what the common-tag-prefix
// algorithm walks.
type TextChunk struct {
	Text          string
	Tags          []*Tag
	InlineContent InlineContent
}

// NewTextChunk creates a TextChunk with a snapshot of tags (the caller's
// slice is not retained).
func NewTextChunk(text string, tags []*Tag) *TextChunk {
	return &TextChunk{Text: text, Tags: cloneTagStack(tags)}
}

// NewTextChunkWithContent creates a zero-or-more-text TextChunk carrying
// inline content.
func NewTextChunkWithContent(text string, tags []*Tag, content InlineContent) *TextChunk {
	return &TextChunk{Text: text, Tags: cloneTagStack(tags), InlineContent: content}
}

func cloneTagStack(tags []*Tag) []*Tag {
	out := make([]*Tag, len(tags))
	copy(out, tags)
	return out
}

// withText returns a copy of the chunk with different text (and, if partial,
// no inline content), used when splitting at a sentence boundary. tags is
// copied so the split halves can be mutated independently (spec.md 4.2).
func (c *TextChunk) withText(text string, keepInlineContent bool) *TextChunk {
	nc := &TextChunk{Text: text, Tags: cloneTagStack(c.Tags)}
	if keepInlineContent {
		nc.InlineContent = c.InlineContent
	}
	return nc
}
