package lineardoc

import (
	"fmt"
	"sort"
	"strings"
)

// dumpTags renders an inline tag stack as a single debug attribute value,
// e.g. "a:class=cx-link,href=/x span" (attributes sorted per tag). SPEC_FULL.md supplemented feature 2.
func dumpTags(tags []*Tag) string {
	if len(tags) == 0 {
		return ""
	}
	parts := make([]string, 0, len(tags))
	for _, tag := range tags {
		var attrDumps []string
		for _, name := range tag.AttrNames() {
			v, _ := tag.Attr(name)
			attrDumps = append(attrDumps, fmt.Sprintf("%s=%s", name, EscapeAttr(v)))
		}
		if len(attrDumps) > 0 {
			sort.Strings(attrDumps)
			parts = append(parts, tag.Name+":"+strings.Join(attrDumps, ","))
		} else {
			parts = append(parts, tag.Name)
		}
	}
	return strings.Join(parts, " ")
}

// dumpXMLLines renders the block's chunks as debug pseudo-XML lines, used by
// Doc.DumpXML.
func (b *TextBlock) dumpXMLLines(pad string) []string {
	var out []string
	for _, chunk := range b.Chunks {
		tagsDump := dumpTags(chunk.Tags)
		tagsAttr := ""
		if tagsDump != "" {
			tagsAttr = fmt.Sprintf(` tags="%s"`, tagsDump)
		}

		if chunk.Text != "" {
			escaped := strings.ReplaceAll(EscapeText(chunk.Text), "\n", "&#10;")
			out = append(out, fmt.Sprintf("%s<cxtextchunk%s>%s</cxtextchunk>", pad, tagsAttr, escaped))
		}

		if chunk.InlineContent != nil {
			out = append(out, fmt.Sprintf("%s<cxinlineelement%s>", pad, tagsAttr))
			switch ic := chunk.InlineContent.(type) {
			case *Doc:
				out = append(out, ic.dumpXMLLines(pad+"  ")...)
			case *Tag:
				out = append(out, fmt.Sprintf("%s  <%s/>", pad, ic.Name))
			}
			out = append(out, pad+"</cxinlineelement>")
		}
	}
	return out
}
