// Package lineardoc implements the LinearDoc subsystem: a stream-oriented
// transformation of nested HTML into a flat sequence of block-open,
// block-close, blockspace and text-block items, annotated and segmented for
// sentence-by-sentence machine translation.
package lineardoc

import (
	"regexp"
	"sort"
	"strings"
)

// Tag is a SAX-style open tag: a lowercase name, an ordered-by-insertion
// attribute map, and whether it is a void/self-closing element.
//
// Tag identity matters: the common-tag-prefix logic in TextBlock compares
// tags by pointer identity, not structural equality. Copy a Tag (Clone) when
// a mutation must not be visible to chunks still holding the original.
type Tag struct {
	Name         string
	attrNames    []string
	attrValues   map[string]string
	IsSelfClosing bool
}

// NewTag creates a Tag with the given name and no attributes.
func NewTag(name string) *Tag {
	return &Tag{Name: name, attrValues: map[string]string{}}
}

// NewTagAttrs creates a Tag from an ordered list of name/value pairs.
func NewTagAttrs(name string, attrs ...[2]string) *Tag {
	t := NewTag(name)
	for _, kv := range attrs {
		t.SetAttr(kv[0], kv[1])
	}
	return t
}

// Attr returns an attribute value and whether it was present.
func (t *Tag) Attr(name string) (string, bool) {
	if t == nil || t.attrValues == nil {
		return "", false
	}
	v, ok := t.attrValues[name]
	return v, ok
}

// AttrOr returns an attribute value, or def if absent.
func (t *Tag) AttrOr(name, def string) string {
	if v, ok := t.Attr(name); ok {
		return v
	}
	return def
}

// SetAttr sets an attribute, preserving first-insertion order for attributes
// that are new; updating an existing attribute keeps its original position.
func (t *Tag) SetAttr(name, value string) {
	if t.attrValues == nil {
		t.attrValues = map[string]string{}
	}
	if _, exists := t.attrValues[name]; !exists {
		t.attrNames = append(t.attrNames, name)
	}
	t.attrValues[name] = value
}

// DeleteAttr removes an attribute if present.
func (t *Tag) DeleteAttr(name string) {
	if t.attrValues == nil {
		return
	}
	if _, ok := t.attrValues[name]; !ok {
		return
	}
	delete(t.attrValues, name)
	for i, n := range t.attrNames {
		if n == name {
			t.attrNames = append(t.attrNames[:i], t.attrNames[i+1:]...)
			break
		}
	}
}

// AttrNames returns attribute names in insertion order.
func (t *Tag) AttrNames() []string {
	return t.attrNames
}

// Clone makes an independent copy of the tag (new allocation, same values).
// Used whenever a tag must be mutated without affecting chunks that still
// reference the original by identity (segmentation, section wrapping).
func (t *Tag) Clone() *Tag {
	clone := &Tag{
		Name:          t.Name,
		IsSelfClosing: t.IsSelfClosing,
		attrValues:    make(map[string]string, len(t.attrValues)),
	}
	clone.attrNames = append(clone.attrNames, t.attrNames...)
	for k, v := range t.attrValues {
		clone.attrValues[k] = v
	}
	return clone
}

// voidElements are HTML elements with no closing tag; the parser marks them
// IsSelfClosing on creation.
var voidElements = map[string]bool{
	"area": true, "base": true, "br": true, "col": true, "embed": true,
	"hr": true, "img": true, "input": true, "link": true, "meta": true,
	"param": true, "source": true, "track": true, "wbr": true,
}

// IsVoidElement reports whether name is an HTML void element.
func IsVoidElement(name string) bool {
	return voidElements[name]
}

// EscapeText replaces &, <, > with numeric entities, in that order. It is
// total and idempotent on its own output: the entities it emits are passed
// through unchanged.
func EscapeText(s string) string {
	replacer := strings.NewReplacer(
		"&#38;", "&#38;",
		"&#60;", "&#60;",
		"&#62;", "&#62;",
		"&", "&#38;",
		"<", "&#60;",
		">", "&#62;",
	)
	return replacer.Replace(s)
}

// EscapeAttr escapes text for use inside a double-quoted HTML attribute:
// &, <, > as in EscapeText, plus " and ' as numeric entities. The entities
// either function emits are passed through unchanged, so an & introduced by
// EscapeText or EscapeAttr is never re-escaped here.
func EscapeAttr(s string) string {
	replacer := strings.NewReplacer(
		"&#38;", "&#38;",
		"&#60;", "&#60;",
		"&#62;", "&#62;",
		"&#34;", "&#34;",
		"&#39;", "&#39;",
		"&", "&#38;",
		"<", "&#60;",
		">", "&#62;",
		"\"", "&#34;",
		"'", "&#39;",
	)
	return replacer.Replace(s)
}

// RenderOpen renders the tag's opening HTML: <name attr="value"... /> or
// <name attr="value"...> with attributes sorted ascending by name.
func (t *Tag) RenderOpen(sb *strings.Builder) {
	sb.WriteByte('<')
	sb.WriteString(EscapeText(t.Name))
	names := append([]string(nil), t.attrNames...)
	sort.Strings(names)
	for _, name := range names {
		sb.WriteByte(' ')
		sb.WriteString(EscapeText(name))
		sb.WriteString(`="`)
		sb.WriteString(EscapeAttr(t.attrValues[name]))
		sb.WriteByte('"')
	}
	if t.IsSelfClosing {
		sb.WriteString(" /")
	}
	sb.WriteByte('>')
}

// OpenHTML returns RenderOpen's output as a string.
func (t *Tag) OpenHTML() string {
	var sb strings.Builder
	t.RenderOpen(&sb)
	return sb.String()
}

// RenderClose renders the tag's closing HTML, or nothing for self-closing
// tags.
func (t *Tag) RenderClose(sb *strings.Builder) {
	if t.IsSelfClosing {
		return
	}
	sb.WriteString("</")
	sb.WriteString(EscapeText(t.Name))
	sb.WriteByte('>')
}

// CloseHTML returns RenderClose's output as a string.
func (t *Tag) CloseHTML() string {
	var sb strings.Builder
	t.RenderClose(&sb)
	return sb.String()
}

// --- Tag predicates (spec.md 4.1) ---

var transclusionTypeofRe = regexp.MustCompile(`(^|\s)(mw:Transclusion|mw:Placeholder)\b`)

// IsReference reports whether tag is a MediaWiki reference span.
func IsReference(t *Tag) bool {
	if (t.Name == "span" || t.Name == "sup") && t.AttrOr("typeof", "") == "mw:Extension/ref" {
		return true
	}
	if t.Name == "sup" && t.AttrOr("class", "") == "reference" {
		return true
	}
	return false
}

// IsMath reports whether tag is a MediaWiki math span.
func IsMath(t *Tag) bool {
	return (t.Name == "span" || t.Name == "sup") && t.AttrOr("typeof", "") == "mw:Extension/math"
}

// IsGallery reports whether tag is a MediaWiki gallery list. Not named by
// spec.md's predicate table, but present in the original implementation
// (SPEC_FULL.md supplemented feature 5).
func IsGallery(t *Tag) bool {
	return t.Name == "ul" && t.AttrOr("typeof", "") == "mw:Extension/gallery"
}

// IsReferenceList reports whether tag is a MediaWiki references list block.
func IsReferenceList(t *Tag) bool {
	if t.Name != "div" {
		return false
	}
	if t.AttrOr("typeof", "") != "mw:Extension/references" {
		return false
	}
	_, hasDataMw := t.Attr("data-mw")
	return hasDataMw
}

// IsExternalLink reports whether tag is a MediaWiki external link anchor.
func IsExternalLink(t *Tag) bool {
	rel := t.AttrOr("rel", "")
	return t.Name == "a" && strings.Contains(" "+rel+" ", " mw:ExtLink ")
}

// IsSegment reports whether tag is a cx-segment span.
func IsSegment(t *Tag) bool {
	return t.Name == "span" && t.AttrOr("class", "") == "cx-segment"
}

// IsInlineEmptyTag reports whether tagName is an inline empty element.
func IsInlineEmptyTag(tagName string) bool {
	switch tagName {
	case "br", "img", "source", "track", "link", "meta":
		return true
	}
	return false
}

// IsTransclusion reports whether tag's typeof marks a template expansion or
// placeholder.
func IsTransclusion(t *Tag) bool {
	return transclusionTypeofRe.MatchString(t.AttrOr("typeof", ""))
}

// IsTransclusionFragment reports whether tag is a continuation fragment of a
// transclusion: it has an about id but no data-mw of its own.
func IsTransclusionFragment(t *Tag) bool {
	_, hasAbout := t.Attr("about")
	_, hasDataMw := t.Attr("data-mw")
	return hasAbout && !hasDataMw
}

var nonTranslatableTagNames = map[string]bool{"style": true, "svg": true, "script": true}
var nonTranslatableRDFA = map[string]bool{
	"mw:Entity": true, "mw:Extension/math": true,
	"mw:Extension/references": true, "mw:Transclusion": true,
}

// IsNonTranslatable reports whether tag's content should never be sent to
// an MT service.
func IsNonTranslatable(t *Tag) bool {
	if nonTranslatableTagNames[t.Name] {
		return true
	}
	for _, tok := range strings.Fields(t.AttrOr("rel", "")) {
		if nonTranslatableRDFA[tok] {
			return true
		}
	}
	for _, tok := range strings.Fields(t.AttrOr("typeof", "")) {
		if nonTranslatableRDFA[tok] {
			return true
		}
	}
	return false
}
