package lineardoc

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strconv"
	"strings"
)

// ItemType discriminates the four shapes an Item can take.
type ItemType int

const (
	// ItemOpen is a block open tag.
	ItemOpen ItemType = iota
	// ItemClose is a block close tag.
	ItemClose
	// ItemBlockspace is whitespace between two block boundaries.
	ItemBlockspace
	// ItemTextBlock is an inline run.
	ItemTextBlock
)

// Item is a tagged union with exactly one populated field per Type, per
// spec.md §3.
type Item struct {
	Type      ItemType
	Tag       *Tag
	Space     string
	TextBlock *TextBlock
}

// Doc is an ordered sequence of Items plus an optional wrapper tag and a
// sidelist of extracted category links. A Doc exclusively owns its items;
// a TextChunk may reference a sub-Doc as inline content, which that chunk
// then owns (spec.md §3).
type Doc struct {
	Items      []Item
	WrapperTag *Tag
	Categories []*Tag
}

// NewDoc creates an empty Doc, optionally wrapped in wrapperTag.
func NewDoc(wrapperTag *Tag) *Doc {
	return &Doc{WrapperTag: wrapperTag}
}

// AddOpen appends a block open item and returns the Doc for chaining.
func (d *Doc) AddOpen(tag *Tag) *Doc {
	d.Items = append(d.Items, Item{Type: ItemOpen, Tag: tag})
	return d
}

// AddClose appends a block close item and returns the Doc for chaining.
func (d *Doc) AddClose(tag *Tag) *Doc {
	d.Items = append(d.Items, Item{Type: ItemClose, Tag: tag})
	return d
}

// AddBlockspace appends a blockspace item and returns the Doc for chaining.
func (d *Doc) AddBlockspace(space string) *Doc {
	d.Items = append(d.Items, Item{Type: ItemBlockspace, Space: space})
	return d
}

// AddTextBlock appends a textblock item and returns the Doc for chaining.
func (d *Doc) AddTextBlock(tb *TextBlock) *Doc {
	d.Items = append(d.Items, Item{Type: ItemTextBlock, TextBlock: tb})
	return d
}

// UndoAdd removes the most recently added item.
func (d *Doc) UndoAdd() {
	d.Items = d.Items[:len(d.Items)-1]
}

// CurrentItem returns the last item, or nil if empty.
func (d *Doc) CurrentItem() *Item {
	if len(d.Items) == 0 {
		return nil
	}
	return &d.Items[len(d.Items)-1]
}

// GetRootItem returns the wrapper tag if present, else the first open tag in
// the item stream, else nil.
func (d *Doc) GetRootItem() *Tag {
	if d.WrapperTag != nil {
		return d.WrapperTag
	}
	for _, item := range d.Items {
		if item.Type == ItemOpen {
			return item.Tag
		}
	}
	return nil
}

// Clone produces a new Doc by running callback over every item, in order.
// callback may return a different item.
func (d *Doc) Clone(callback func(Item) Item) *Doc {
	newDoc := NewDoc(d.WrapperTag)
	for _, item := range d.Items {
		newDoc.Items = append(newDoc.Items, callback(item))
	}
	return newDoc
}

// GetHTML renders the whole document, skipping cx-segment-block isolation
// wrappers (spec.md §4.3).
func (d *Doc) GetHTML() string {
	var sb strings.Builder
	if d.WrapperTag != nil {
		d.WrapperTag.RenderOpen(&sb)
	}
	for _, item := range d.Items {
		if item.Tag != nil && item.Tag.AttrOr("class", "") == "cx-segment-block" {
			continue
		}
		switch item.Type {
		case ItemOpen:
			item.Tag.RenderOpen(&sb)
		case ItemClose:
			item.Tag.RenderClose(&sb)
		case ItemBlockspace:
			sb.WriteString(item.Space)
		case ItemTextBlock:
			item.TextBlock.RenderHTML(&sb)
		default:
			panic(fmt.Sprintf("lineardoc: unknown item type %d", item.Type))
		}
	}
	if d.WrapperTag != nil {
		d.WrapperTag.RenderClose(&sb)
	}
	return sb.String()
}

// Segments extracts the rendered HTML of every textblock item, independent
// of the surrounding document (SPEC_FULL.md supplemented feature 1).
func (d *Doc) Segments() []string {
	var out []string
	for _, item := range d.Items {
		if item.Type == ItemTextBlock {
			out = append(out, item.TextBlock.GetHTML())
		}
	}
	return out
}

// sectionKey is the "stable identifier" from spec.md's glossary: about, else
// id, else tag name.
func sectionKey(tag *Tag) string {
	if about, ok := tag.Attr("about"); ok && about != "" {
		return about
	}
	if id, ok := tag.Attr("id"); ok && id != "" {
		return id
	}
	return tag.Name
}

// WrapSections groups each top-level block inside <body> under
// <section rel="cx:Section">, re-attaching orphan blocks to the previous
// section by sectionKey. This reproduces the algorithm in spec.md §4.3
// exactly, including the blockspace re-attachment quirk spec.md §9 calls
// out as deliberate: it checks only prevSection, never currSection.
func (d *Doc) WrapSections() *Doc {
	newDoc := NewDoc(nil)
	newDoc.Categories = d.Categories

	inBody := false
	var prevSection, currSection *string

	openSection := func() {
		newDoc.AddOpen(NewTagAttrs("section", [2]string{"rel", "cx:Section"}))
	}
	closeSection := func() {
		newDoc.AddClose(NewTag("section"))
		prevSection = currSection
		currSection = nil
	}
	insertToPrevSection := func(item Item) {
		cur := newDoc.CurrentItem()
		if cur == nil || cur.Tag == nil || cur.Tag.Name != "section" {
			panic("lineardoc: wrap_sections attempting to remove a non-section tag")
		}
		newDoc.UndoAdd()
		currSection = prevSection
		newDoc.Items = append(newDoc.Items, item)
		closeSection()
	}

	for _, item := range d.Items {
		if !inBody {
			newDoc.Items = append(newDoc.Items, item)
			if item.Type == ItemOpen && item.Tag.Name == "body" {
				inBody = true
			}
			continue
		}

		switch item.Type {
		case ItemOpen:
			tag := item.Tag
			if currSection == nil {
				key := sectionKey(tag)
				if prevSection != nil && *prevSection == key {
					newDoc.UndoAdd()
					currSection = prevSection
				} else {
					openSection()
					k := key
					currSection = &k
				}
			}
			newDoc.Items = append(newDoc.Items, item)

		case ItemClose:
			tag := item.Tag
			if currSection != nil && tag.Name == "body" {
				closeSection()
				inBody = false
			}
			newDoc.Items = append(newDoc.Items, item)
			key := sectionKey(tag)
			if currSection != nil && *currSection == key {
				closeSection()
			}

		case ItemBlockspace:
			cur := newDoc.CurrentItem()
			if prevSection != nil && cur != nil && cur.Tag != nil && cur.Tag.Name == "section" {
				insertToPrevSection(item)
			} else {
				newDoc.Items = append(newDoc.Items, item)
			}

		case ItemTextBlock:
			tb := item.TextBlock
			tagForID := tb.GetTagForID()

			if tagForID == nil && currSection == nil {
				insertToPrevSection(item)
				continue
			}

			isConnected := tagForID != nil && prevSection != nil && *prevSection == sectionKey(tagForID)
			if isConnected {
				insertToPrevSection(item)
				continue
			}

			if currSection == nil {
				openSection()
				if tagForID == nil {
					panic("lineardoc: wrap_sections found no id for opened section")
				}
				k := sectionKey(tagForID)
				currSection = &k
				newDoc.Items = append(newDoc.Items, item)
				closeSection()
				continue
			}

			newDoc.Items = append(newDoc.Items, item)

		default:
			panic(fmt.Sprintf("lineardoc: unknown item type %d", item.Type))
		}
	}

	return newDoc
}

// Segment walks the document assigning deterministic ids (spec.md §4.3,
// "Whole-document segmentation") and dispatching sentence segmentation to
// each eligible textblock.
func (d *Doc) Segment(boundaries BoundaryFunc, ids *IDGenerator) *Doc {
	newDoc := NewDoc(d.WrapperTag)
	newDoc.Categories = d.Categories

	sectionNumber := 0
	var transclusionContext string
	inTransclusion := false

	for i, item := range d.Items {
		switch item.Type {
		case ItemOpen:
			tag := item.Tag.Clone()

			if id, hasID := tag.Attr("id"); hasID && id != "" {
				if isHeading(tag.Name) && i+1 < len(d.Items) && d.Items[i+1].Type == ItemTextBlock {
					sum := sha256.Sum256([]byte(d.Items[i+1].TextBlock.PlainText()))
					tag.SetAttr("id", hex.EncodeToString(sum[:])[:30])
				} else if len(id) > 30 {
					tag.SetAttr("id", id[:30])
				}
			} else {
				if tag.Name == "section" {
					tag.SetAttr("id", ids.NextSectionID())
				} else {
					tag.SetAttr("id", ids.Next("block"))
				}
				if i+1 < len(d.Items) && d.Items[i+1].Type == ItemOpen && d.Items[i+1].Tag.Name == "h2" {
					sectionNumber++
				}
			}

			if tag.Name == "section" {
				tag.SetAttr("data-mw-section-number", strconv.Itoa(sectionNumber))
			}

			newDoc.AddOpen(tag)

			about, hasAbout := tag.Attr("about")
			_, hasTypeof := tag.Attr("typeof")
			if hasAbout && hasTypeof {
				transclusionContext = about
				inTransclusion = true
			}

		case ItemClose:
			tag := item.Tag
			if about, ok := tag.Attr("about"); ok && inTransclusion && about == transclusionContext {
				inTransclusion = false
				transclusionContext = ""
			}
			newDoc.AddClose(tag)

		case ItemBlockspace:
			newDoc.AddBlockspace(item.Space)

		case ItemTextBlock:
			tb := item.TextBlock
			root := tb.GetRootItem()
			if inTransclusion || !tb.CanSegment || (root != nil && IsTransclusion(root)) {
				newDoc.AddTextBlock(tb.SetLinkIDs(ids))
			} else {
				newDoc.AddTextBlock(tb.Segment(boundaries, ids))
			}

		default:
			panic(fmt.Sprintf("lineardoc: unknown item type %d", item.Type))
		}
	}

	return newDoc
}

func isHeading(name string) bool {
	switch name {
	case "h1", "h2", "h3", "h4", "h5":
		return true
	}
	return false
}

// IsIgnorableBlock reports whether this Doc is a wrapped section (its first
// item is expected to be the <section> open tag) whose only content is a
// block-level transclusion or a references list — nothing left worth
// sending to translation. SPEC_FULL.md supplemented feature 4.
func (d *Doc) IsIgnorableBlock() bool {
	ignorable := false
	var blockStack []*Tag
	var firstBlockTemplate *Tag

	for i := 1; i < len(d.Items); i++ {
		item := d.Items[i]

		switch item.Type {
		case ItemOpen:
			blockStack = append(blockStack, item.Tag)
			if firstBlockTemplate == nil && (IsTransclusion(item.Tag) || IsReferenceList(item.Tag)) {
				firstBlockTemplate = item.Tag
			}

		case ItemClose:
			if len(blockStack) > 0 {
				closeTag := blockStack[len(blockStack)-1]
				blockStack = blockStack[:len(blockStack)-1]
				if closeTag != nil && len(blockStack) == 0 && firstBlockTemplate != nil {
					sameTransclusion := IsTransclusion(closeTag) && closeTag.AttrOr("about", "") == firstBlockTemplate.AttrOr("about", "")
					if sameTransclusion || IsReferenceList(closeTag) {
						return true
					}
				}
			}

		case ItemTextBlock:
			if firstBlockTemplate == nil {
				root := item.TextBlock.GetRootItem()
				if root != nil && IsNonTranslatable(root) {
					firstBlockTemplate = root
					ignorable = true
				} else {
					return false
				}
			}
		}
	}

	return ignorable
}

// DumpXML renders a debugging pseudo-XML view of the linear item stream.
// SPEC_FULL.md supplemented feature 2; intended for troubleshooting, not a
// production code path.
func (d *Doc) DumpXML() string {
	return strings.Join(d.dumpXMLLines(""), "\n")
}

func (d *Doc) dumpXMLLines(pad string) []string {
	var out []string
	if d.WrapperTag != nil {
		out = append(out, pad+"<cxwrapper>")
	}
	for _, item := range d.Items {
		switch item.Type {
		case ItemOpen:
			out = append(out, fmt.Sprintf("%s<%s>", pad, item.Tag.Name))
			if item.Tag.Name == "head" {
				out = append(out, pad+`<meta charset="UTF-8" />`)
				out = append(out, pad+"<style>cxtextblock { border: solid #88f 1px }")
				out = append(out, pad+"cxtextchunk { border-right: solid #f88 1px }</style>")
			}
		case ItemClose:
			out = append(out, fmt.Sprintf("%s</%s>", pad, item.Tag.Name))
		case ItemBlockspace:
			out = append(out, pad+"<cxblockspace/>")
		case ItemTextBlock:
			out = append(out, pad+"<cxtextblock>")
			out = append(out, item.TextBlock.dumpXMLLines(pad+"  ")...)
			out = append(out, pad+"</cxtextblock>")
		}
	}
	if d.WrapperTag != nil {
		out = append(out, pad+"</cxwrapper>")
	}
	return out
}
