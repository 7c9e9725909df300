package lineardoc

import (
	"strings"

	"golang.org/x/net/html"
)

// Normalize reparses html and re-serializes it through Tag's own
// rendering, producing a canonical baseline with sorted attributes and
// numeric-entity escaping. SPEC_FULL.md supplemented feature 7, grounded on
// normalizer.py. It is a standalone helper: Process does not call it (it only
// strips tab/CR/LF before parsing), so the result is a parse-then-reserialize
// baseline independent of the source markup's original attribute order or
// quoting style.
func Normalize(source string) (string, error) {
	tokenizer := html.NewTokenizer(strings.NewReader(source))
	var sb strings.Builder
	var tagStack []*Tag

	for {
		tt := tokenizer.Next()
		switch tt {
		case html.ErrorToken:
			if err := tokenizer.Err(); err != nil && err.Error() != "EOF" {
				return "", err
			}
			return sb.String(), nil

		case html.StartTagToken, html.SelfClosingTagToken:
			tag := tagFromToken(tokenizer.Token())
			tag.RenderOpen(&sb)
			if tt == html.StartTagToken && !IsVoidElement(tag.Name) {
				tagStack = append(tagStack, tag)
			}

		case html.EndTagToken:
			name := strings.ToLower(tokenizer.Token().Data)
			if IsVoidElement(name) || len(tagStack) == 0 {
				continue
			}
			top := tagStack[len(tagStack)-1]
			tagStack = tagStack[:len(tagStack)-1]
			top.RenderClose(&sb)

		case html.TextToken:
			sb.WriteString(EscapeText(tokenizer.Token().Data))
		}
	}
}
