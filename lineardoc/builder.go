package lineardoc

import (
	"fmt"
	"strings"
)

// Builder accumulates SAX-style open/text/close events into a Doc, per
// spec.md §4.5. It tracks two independent stacks: block_tags (the tags
// Parser believes are block-level) and inline_annotation_tags (the tags
// applied to whatever text comes next), plus a buffer of pending TextChunks
// that have not yet been flushed into a TextBlock item.
type Builder struct {
	Doc *Doc

	blockTags              []*Tag
	inlineAnnotationTags   []*Tag
	inlineAnnotationsUsed  int
	textChunks             []*TextChunk
	isBlockSegmentable     bool
	parent                 *Builder
}

// NewBuilder creates a root Builder with no wrapper tag.
func NewBuilder() *Builder {
	return &Builder{Doc: NewDoc(nil), isBlockSegmentable: true}
}

// CreateChildBuilder creates a Builder for a reference/math sub-document,
// wrapped in wrapperTag when rendered.
func (b *Builder) CreateChildBuilder(wrapperTag *Tag) *Builder {
	return &Builder{Doc: NewDoc(wrapperTag), isBlockSegmentable: true, parent: b}
}

// IsSection reports whether tag is a MediaWiki section marker, which the
// builder strips back out (WrapSections re-synthesizes sections later).
func (b *Builder) IsSection(tag *Tag) bool {
	if tag.Name != "section" {
		return false
	}
	v, _ := tag.Attr("data-mw-section-id")
	return v != ""
}

// IsCategory reports whether tag is a standalone category link (not part of
// a transclusion fragment, which carries an about id).
func (b *Builder) IsCategory(tag *Tag) bool {
	if tag == nil || tag.Name != "link" {
		return false
	}
	rel := tag.AttrOr("rel", "")
	if !strings.Contains(" "+rel+" ", " mw:PageProp/Category ") {
		return false
	}
	_, hasAbout := tag.Attr("about")
	return !hasAbout
}

func (b *Builder) isIgnoredTag(tag *Tag) bool {
	return b.IsSection(tag) || b.IsCategory(tag)
}

// PushBlockTag opens a block-level tag: it flushes any pending text block,
// then records the tag as open. Figures are stamped rel="cx:Figure" so later
// passes can recognize them without re-deriving context.
func (b *Builder) PushBlockTag(tag *Tag) {
	b.FinishTextBlock()
	b.blockTags = append(b.blockTags, tag)
	if b.IsCategory(tag) {
		b.Doc.Categories = append(b.Doc.Categories, tag)
		return
	}
	if b.IsSection(tag) {
		return
	}
	if tag.Name == "figure" {
		tag.SetAttr("rel", "cx:Figure")
	}
	b.Doc.AddOpen(tag)
}

// PopBlockTag closes the innermost block-level tag, which must match
// tagName, and flushes any pending text block.
func (b *Builder) PopBlockTag(tagName string) (*Tag, error) {
	if len(b.blockTags) == 0 {
		return nil, fmt.Errorf("%w: mismatched block tags: open=<none>, close=%s", ErrStructuralMismatch, tagName)
	}
	tag := b.blockTags[len(b.blockTags)-1]
	b.blockTags = b.blockTags[:len(b.blockTags)-1]
	if tag.Name != tagName {
		return nil, fmt.Errorf("%w: mismatched block tags: open=%s, close=%s", ErrStructuralMismatch, tag.Name, tagName)
	}

	b.FinishTextBlock()

	if !b.isIgnoredTag(tag) {
		b.Doc.AddClose(tag)
	}
	return tag, nil
}

// PushInlineAnnotationTag opens an inline annotation: subsequent text chunks
// carry tag on their stack until it is popped.
func (b *Builder) PushInlineAnnotationTag(tag *Tag) {
	b.inlineAnnotationTags = append(b.inlineAnnotationTags, tag)
}

// PopInlineAnnotationTag closes the innermost inline annotation, which must
// match tagName. If everything accumulated under tag turns out to be
// whitespace-only and tag is a reference, external link or transclusion, the
// whitespace is collapsed into a single sub-Doc holding just that whitespace
// (wrapped in tag) so empty <ref></ref>
// markers survive round-tripping instead of vanishing as untagged text.
func (b *Builder) PopInlineAnnotationTag(tagName string) error {
	if len(b.inlineAnnotationTags) == 0 {
		return fmt.Errorf("%w: mismatched inline tags: open=<none>, close=%s", ErrStructuralMismatch, tagName)
	}
	tag := b.inlineAnnotationTags[len(b.inlineAnnotationTags)-1]
	b.inlineAnnotationTags = b.inlineAnnotationTags[:len(b.inlineAnnotationTags)-1]

	if b.inlineAnnotationsUsed == len(b.inlineAnnotationTags) {
		b.inlineAnnotationsUsed--
	}

	if tag.Name != tagName {
		return fmt.Errorf("%w: mismatched inline tags: open=%s, close=%s", ErrStructuralMismatch, tag.Name, tagName)
	}

	if len(tag.AttrNames()) == 0 {
		return nil
	}

	replace := true
	var whitespace []string
	i := len(b.textChunks) - 1
	for ; i >= 0; i-- {
		chunk := b.textChunks[i]
		var chunkTag *Tag
		if len(chunk.Tags) > 0 {
			chunkTag = chunk.Tags[len(chunk.Tags)-1]
		}
		if chunkTag == nil {
			break
		}
		if strings.TrimSpace(chunk.Text) != "" || chunk.InlineContent != nil || chunkTag != tag {
			replace = false
			break
		}
		whitespace = append(whitespace, chunk.Text)
	}

	if replace && (IsReference(tag) || IsExternalLink(tag) || IsTransclusion(tag)) {
		b.textChunks = b.textChunks[:i+1]
		for l, r := 0, len(whitespace)-1; l < r; l, r = l+1, r-1 {
			whitespace[l], whitespace[r] = whitespace[r], whitespace[l]
		}
		sub := NewDoc(nil).
			AddOpen(tag).
			AddTextBlock(NewTextBlock([]*TextChunk{NewTextChunk(strings.Join(whitespace, ""), nil)}, true)).
			AddClose(tag)
		b.AddInlineContent(sub, true)
	}

	return nil
}

// AddTextChunk appends text carrying a snapshot of the currently open inline
// annotations.
func (b *Builder) AddTextChunk(text string, canSegment bool) {
	b.textChunks = append(b.textChunks, NewTextChunk(text, b.inlineAnnotationTags))
	b.inlineAnnotationsUsed = len(b.inlineAnnotationTags)
	b.isBlockSegmentable = canSegment
}

// AddInlineContent appends non-linearized content (an empty tag or a
// reference/math sub-document) that rides inline with the surrounding text.
// Category links are diverted to Doc.Categories instead.
func (b *Builder) AddInlineContent(content InlineContent, canSegment bool) {
	if tag, ok := content.(*Tag); ok && b.IsCategory(tag) {
		b.Doc.Categories = append(b.Doc.Categories, tag)
		return
	}

	b.textChunks = append(b.textChunks, NewTextChunkWithContent("", b.inlineAnnotationTags, content))
	b.inlineAnnotationsUsed = len(b.inlineAnnotationTags)
	if !canSegment {
		b.isBlockSegmentable = false
	}
}

// FinishTextBlock flushes the pending chunk buffer into the Doc, either as a
// blockspace item (if every chunk turned out whitespace-only) or a textblock
// item.
func (b *Builder) FinishTextBlock() {
	if len(b.textChunks) == 0 {
		return
	}

	var whitespace []string
	whitespaceOnly := true
	for _, chunk := range b.textChunks {
		if chunk.InlineContent != nil || strings.TrimSpace(chunk.Text) != "" {
			whitespaceOnly = false
			break
		}
		whitespace = append(whitespace, chunk.Text)
	}

	if whitespaceOnly {
		b.Doc.AddBlockspace(strings.Join(whitespace, ""))
	} else {
		b.Doc.AddTextBlock(NewTextBlock(b.textChunks, b.isBlockSegmentable))
	}

	b.textChunks = nil
	b.isBlockSegmentable = true
}
