package lineardoc

import (
	"fmt"
	"sort"
	"strings"
	"unicode/utf8"
)

// Range is a (start, length) character span, used to describe how machine
// translation output maps back onto the source text.
type Range struct {
	Start  int
	Length int
}

func (r Range) end() int { return r.Start + r.Length }

// RangeMapping pairs a source character range with the target range it
// translates to. SPEC_FULL.md supplemented feature 3.
type RangeMapping struct {
	Source Range
	Target Range
}

// commonTagsByName returns the tags shared by every chunk's stack, matched
// by tag *name* rather than identity — the weaker comparison translate_tags
// originally used to decide what annotation to carry across into untouched
// gaps of translated text.
func (b *TextBlock) commonTagsByName() []*Tag {
	if len(b.Chunks) == 0 {
		return nil
	}
	common := cloneTagStack(b.Chunks[0].Tags)
	for _, c := range b.Chunks {
		tags := c.Tags
		if len(tags) < len(common) {
			common = common[:len(tags)]
		}
		for j := range common {
			if common[j].Name != tags[j].Name {
				common = common[:j]
				break
			}
		}
	}
	return common
}

// getTextChunkAt returns the (last) chunk whose span contains charOffset.
// charOffset and chunk spans are both counted in runes, matching the
// character-range contract RangeMapping documents.
func (b *TextBlock) getTextChunkAt(charOffset int) *TextChunk {
	offset := 0
	idx := 0
	for i := 0; i < len(b.Chunks)-1; i++ {
		nextStart := offset + utf8.RuneCountInString(b.Chunks[i].Text)
		if nextStart > charOffset {
			break
		}
		offset = nextStart
		idx = i + 1
	}
	return b.Chunks[idx]
}

// positionedChunk is a TextChunk with its place in the translated plaintext.
type positionedChunk struct {
	start  int
	length int
	chunk  *TextChunk
}

// ApplyTranslation builds a new TextBlock carrying this block's annotation
// tags over onto externally translated text, given the source/target
// character-range correspondences a translation engine reports. Gaps left
// unmapped between ranges are filled with the common-tag-by-name prefix;
// zero-width (empty-text) chunks are relocated into the translated result
// at the point their enclosing source range maps to; trailing whitespace in
// the translation is split off into its own terminal chunk. SPEC_FULL.md
// supplemented feature 3.
func (b *TextBlock) ApplyTranslation(targetText string, ranges []RangeMapping) (*TextBlock, error) {
	targetRunes := []rune(targetText)

	emptyByOffset := map[int][]*TextChunk{}
	var emptyOffsets []int

	offset := 0
	for _, c := range b.Chunks {
		if len(c.Text) == 0 {
			emptyByOffset[offset] = append(emptyByOffset[offset], c)
		}
		offset += utf8.RuneCountInString(c.Text)
	}
	for off := range emptyByOffset {
		emptyOffsets = append(emptyOffsets, off)
	}
	sort.Ints(emptyOffsets)

	var placed []positionedChunk
	pushEmpty := func(at int, chunks []*TextChunk) {
		for _, c := range chunks {
			placed = append(placed, positionedChunk{start: at, length: 0, chunk: c})
		}
	}

	for _, rm := range ranges {
		sourceEnd := rm.Source.end()
		targetEnd := rm.Target.end()
		sourceChunk := b.getTextChunkAt(rm.Source.Start)
		text := ""
		if rm.Target.Start >= 0 && targetEnd <= len(targetRunes) {
			text = string(targetRunes[rm.Target.Start:targetEnd])
		}
		placed = append(placed, positionedChunk{
			start:  rm.Target.Start,
			length: rm.Target.Length,
			chunk:  &TextChunk{Text: text, Tags: sourceChunk.Tags, InlineContent: sourceChunk.InlineContent},
		})

		for i := 0; i < len(emptyOffsets); {
			off := emptyOffsets[i]
			if off < rm.Source.Start || off > sourceEnd {
				i++
				continue
			}
			pushEmpty(targetEnd, emptyByOffset[off])
			delete(emptyByOffset, off)
			emptyOffsets = append(emptyOffsets[:i], emptyOffsets[i+1:]...)
		}
	}

	sort.SliceStable(placed, func(i, j int) bool { return placed[i].start < placed[j].start })

	commonTags := b.commonTagsByName()

	var result []positionedChunk
	pos := 0
	for _, pc := range placed {
		if pc.start < pos {
			return nil, fmt.Errorf("lineardoc: overlapping chunks at pos=%d start=%d", pos, pc.start)
		}
		if pc.start > pos {
			gapText := ""
			if pos <= len(targetRunes) && pc.start <= len(targetRunes) {
				gapText = string(targetRunes[pos:pc.start])
			}
			result = append(result, positionedChunk{
				start:  pos,
				length: pc.start - pos,
				chunk:  &TextChunk{Text: gapText, Tags: commonTags},
			})
		}
		result = append(result, pc)
		pos = pc.start + pc.length
	}

	tail := ""
	if pos <= len(targetRunes) {
		tail = string(targetRunes[pos:])
	}
	tailSpace := ""
	trimmed := strings.TrimRight(tail, " \t\n\r\f\v")
	if utf8.RuneCountInString(trimmed) < utf8.RuneCountInString(tail) {
		tailSpace = tail[len(trimmed):]
		tail = trimmed
	}

	if tail != "" {
		result = append(result, positionedChunk{start: pos, length: utf8.RuneCountInString(tail), chunk: &TextChunk{Text: tail, Tags: commonTags}})
		pos += utf8.RuneCountInString(tail)
	}

	for _, off := range emptyOffsets {
		for _, c := range emptyByOffset[off] {
			result = append(result, positionedChunk{start: pos, length: 0, chunk: c})
		}
	}

	if tailSpace != "" {
		result = append(result, positionedChunk{start: pos, length: utf8.RuneCountInString(tailSpace), chunk: &TextChunk{Text: tailSpace, Tags: commonTags}})
	}

	out := make([]*TextChunk, len(result))
	for i, pc := range result {
		out[i] = pc.chunk
	}
	return NewTextBlock(out, b.CanSegment), nil
}
