package lineardoc

import (
	"sort"
	"strings"
	"unicode/utf8"
)

// BoundaryFunc maps a text block's plaintext to sorted sentence-boundary
// character offsets. Offset 0 is always ignored by callers. This is the Go
// shape of spec.md §6's external sentence-boundary collaborator, already
// bound to a single language by the caller (see Segmenter in segment.go).
type BoundaryFunc func(plaintext string) []int

// TextBlock is an ordered run of TextChunks between two block boundaries,
// plus whether it is eligible for sentence segmentation at all.
type TextBlock struct {
	Chunks     []*TextChunk
	CanSegment bool
}

// NewTextBlock builds a TextBlock from chunks, computing nothing eagerly:
// offsets are derived on demand from chunk lengths (spec.md's offsets field
// is just a view over the chunks, so we don't duplicate it as state that can
// go stale).
func NewTextBlock(chunks []*TextChunk, canSegment bool) *TextBlock {
	return &TextBlock{Chunks: chunks, CanSegment: canSegment}
}

// PlainText concatenates the text of every chunk.
func (b *TextBlock) PlainText() string {
	var sb strings.Builder
	for _, c := range b.Chunks {
		sb.WriteString(c.Text)
	}
	return sb.String()
}

// commonTagPrefix returns the longest run of identical (by pointer) tags
// shared across every chunk's tag stack, from index 0.
func (b *TextBlock) commonTagPrefix() []*Tag {
	if len(b.Chunks) == 0 {
		return nil
	}
	common := cloneTagStack(b.Chunks[0].Tags)
	for _, c := range b.Chunks[1:] {
		tags := c.Tags
		n := len(common)
		if len(tags) < n {
			n = len(tags)
		}
		j := 0
		for ; j < n; j++ {
			if common[j] != tags[j] {
				break
			}
		}
		common = common[:j]
	}
	return common
}

// GetRootItem walks the chunks depth-first and returns the first tag found:
// either the outermost annotation tag of the first chunk carrying one, or —
// failing that — the root item of the first chunk's inline sub-document.
// Returns nil if the block is (so far) pure untagged text with non-
// whitespace content, since such a block has no identifying tag at all.
func (b *TextBlock) GetRootItem() *Tag {
	for _, c := range b.Chunks {
		if len(c.Tags) == 0 && c.Text != "" && strings.TrimSpace(c.Text) != "" {
			return nil
		}
		if len(c.Tags) > 0 {
			return c.Tags[0]
		}
		if c.InlineContent != nil {
			if subDoc, ok := c.InlineContent.(*Doc); ok {
				if root := subDoc.GetRootItem(); root != nil {
					return root
				}
				continue
			}
			if tag, ok := c.InlineContent.(*Tag); ok {
				return tag
			}
		}
	}
	return nil
}

// GetTagForID is an alias for GetRootItem used by wrap_sections (spec.md
// §4.3); kept as a distinct method name to match the original's vocabulary.
func (b *TextBlock) GetTagForID() *Tag {
	return b.GetRootItem()
}

// RenderHTML writes the block's HTML representation: for each chunk, close
// tags no longer shared with the previous chunk's stack (innermost first),
// open newly-needed tags (outermost first), emit escaped text, then emit
// any inline content.
func (b *TextBlock) RenderHTML(sb *strings.Builder) {
	var openTags []*Tag
	for _, c := range b.Chunks {
		matchTop := -1
		minLen := len(openTags)
		if len(c.Tags) < minLen {
			minLen = len(c.Tags)
		}
		for j := 0; j < minLen; j++ {
			if openTags[j] == c.Tags[j] {
				matchTop = j
			} else {
				break
			}
		}
		for j := len(openTags) - 1; j > matchTop; j-- {
			openTags[j].RenderClose(sb)
		}
		for j := matchTop + 1; j < len(c.Tags); j++ {
			c.Tags[j].RenderOpen(sb)
		}
		openTags = c.Tags

		sb.WriteString(EscapeText(c.Text))
		switch ic := c.InlineContent.(type) {
		case *Doc:
			sb.WriteString(ic.GetHTML())
		case *Tag:
			ic.RenderOpen(sb)
			ic.RenderClose(sb)
		}
	}
	for j := len(openTags) - 1; j >= 0; j-- {
		openTags[j].RenderClose(sb)
	}
}

// GetHTML renders the block to a string.
func (b *TextBlock) GetHTML() string {
	var sb strings.Builder
	b.RenderHTML(&sb)
	return sb.String()
}

// chunkBoundaryGroup is a chunk plus the sentence boundaries (relative to
// the block's plaintext) that fall inside it.
type chunkBoundaryGroup struct {
	chunk      *TextChunk
	boundaries []int
}

// groupBoundariesByChunk assigns each boundary to the latest chunk it could
// lie in (spec.md §4.2: "a boundary at offset B is inside chunk C iff
// offset(C) <= B < offset(C)+len(C.text)"), ignoring boundary 0. Offsets and
// chunk lengths are counted in runes, matching the character-index contract
// a BoundaryFunc operates under (spec.md §6).
func groupBoundariesByChunk(boundaries []int, chunks []*TextChunk) []chunkBoundaryGroup {
	sorted := append([]int(nil), boundaries...)
	sort.Ints(sorted)
	ptr := 0
	for ptr < len(sorted) && sorted[ptr] == 0 {
		ptr++
	}

	groups := make([]chunkBoundaryGroup, len(chunks))
	offset := 0
	for i, chunk := range chunks {
		length := utf8.RuneCountInString(chunk.Text)
		var inside []int
		for ptr < len(sorted) {
			b := sorted[ptr]
			if b > offset+length-1 {
				break
			}
			inside = append(inside, b)
			ptr++
		}
		groups[i] = chunkBoundaryGroup{chunk: chunk, boundaries: inside}
		offset += length
	}
	return groups
}

// addCommonTag inserts tag into every chunk's tag stack at the position of
// the current common-tag-prefix length — above the shared ancestry, below
// whatever is specific to each chunk — returning new chunks (copies).
func addCommonTag(chunks []*TextChunk, tag *Tag) []*TextChunk {
	if len(chunks) == 0 {
		return nil
	}
	common := cloneTagStack(chunks[0].Tags)
	for _, c := range chunks[1:] {
		tags := c.Tags
		n := len(common)
		if len(tags) < n {
			n = len(tags)
		}
		j := 0
		for ; j < n; j++ {
			if common[j] != tags[j] {
				break
			}
		}
		common = common[:j]
	}
	prefixLen := len(common)

	out := make([]*TextChunk, len(chunks))
	for i, c := range chunks {
		newTags := make([]*Tag, 0, len(c.Tags)+1)
		newTags = append(newTags, c.Tags[:prefixLen]...)
		newTags = append(newTags, tag)
		newTags = append(newTags, c.Tags[prefixLen:]...)
		out[i] = &TextChunk{Text: c.Text, Tags: newTags, InlineContent: c.InlineContent}
	}
	return out
}

// setLinkIDsInPlace stamps data-linkid on every not-yet-stamped WikiLink
// anchor found in chunks' tag stacks. Idempotent: an anchor that already has
// data-linkid is left untouched (spec.md §8 property 4).
func setLinkIDsInPlace(chunks []*TextChunk, ids *IDGenerator) {
	for _, c := range chunks {
		for _, tag := range c.Tags {
			if tag.Name != "a" {
				continue
			}
			href, hasHref := tag.Attr("href")
			if !hasHref {
				continue
			}
			rel, hasRel := tag.Attr("rel")
			if !hasRel || !strings.Contains(" "+rel+" ", " mw:WikiLink ") {
				continue
			}
			if _, stamped := tag.Attr("data-linkid"); stamped {
				continue
			}
			if idx := strings.IndexByte(href, '?'); idx != -1 {
				href = href[:idx]
			}
			tag.DeleteAttr("typeof")
			tag.DeleteAttr("href")
			tag.DeleteAttr("data-mw-i18n")
			tag.SetAttr("class", "cx-link")
			tag.SetAttr("data-linkid", ids.Next("link"))
			tag.SetAttr("href", href)
		}
	}
}

// SetLinkIDs stamps link ids across the whole block in place and returns the
// block (for chaining, matching the original's fluent style).
func (b *TextBlock) SetLinkIDs(ids *IDGenerator) *TextBlock {
	setLinkIDsInPlace(b.Chunks, ids)
	return b
}

// Segment splits the block at sentence boundaries (spec.md §4.2). If the
// block's root item is a transclusion, segmentation is skipped and the
// block is returned unchanged (aside from link-id stamping, which the
// caller — Doc.Segment — invokes separately in that case, matching the
// original's "return self" meaning "do not even stamp links here").
func (b *TextBlock) Segment(boundaries BoundaryFunc, ids *IDGenerator) *TextBlock {
	if root := b.GetRootItem(); root != nil && IsTransclusion(root) {
		return b
	}

	groups := groupBoundariesByChunk(boundaries(b.PlainText()), b.Chunks)

	var all []*TextChunk
	var current []*TextChunk

	flush := func() {
		if len(current) == 0 {
			return
		}
		segmentTag := NewTag("span")
		segmentTag.SetAttr("class", "cx-segment")
		segmentTag.SetAttr("data-segmentid", ids.Next("segment"))
		modified := addCommonTag(current, segmentTag)
		setLinkIDsInPlace(modified, ids)
		all = append(all, modified...)
		current = nil
	}

	offset := 0
	for _, group := range groups {
		chunk := group.chunk
		for _, boundary := range group.boundaries {
			relOffset := boundary - offset
			if relOffset == 0 {
				flush()
				continue
			}
			runes := []rune(chunk.Text)
			left := chunk.withText(string(runes[:relOffset]), false)
			right := chunk.withText(string(runes[relOffset:]), true)
			current = append(current, left)
			offset += relOffset
			flush()
			chunk = right
		}
		current = append(current, chunk)
		offset += utf8.RuneCountInString(chunk.Text)
	}
	flush()

	return NewTextBlock(all, true)
}
