package lineardoc

import (
	"fmt"
	"strings"

	"golang.org/x/net/html"
)

// blockTagNames is the exact BLOCK_TAGS table of spec.md §4.6 / parser.py:
// any tag not in this list is treated as an inline annotation.
var blockTagNames = map[string]bool{
	"html": true, "head": true, "body": true, "script": true,
	"title": true, "style": true, "meta": true, "link": true, "noscript": true, "base": true,
	"audio": true, "data": true, "datagrid": true, "datalist": true, "dialog": true,
	"eventsource": true, "form": true, "iframe": true, "main": true, "menu": true,
	"menuitem": true, "optgroup": true, "option": true,
	"div": true, "p": true,
	"table": true, "tbody": true, "thead": true, "tfoot": true, "caption": true,
	"th": true, "tr": true, "td": true,
	"ul": true, "ol": true, "li": true, "dl": true, "dt": true, "dd": true,
	"h1": true, "h2": true, "h3": true, "h4": true, "h5": true, "h6": true, "hgroup": true,
	"article": true, "aside": true, "nav": true, "section": true, "footer": true,
	"header": true, "figure": true, "figcaption": true, "fieldset": true, "details": true,
	"blockquote": true,
	"hr": true, "button": true, "canvas": true, "center": true, "col": true,
	"colgroup": true, "embed": true, "map": true, "object": true, "pre": true,
	"progress": true, "video": true,
	"img": true, "br": true,
	"wiki-chart": true,
}

// ParserOptions configures Parser.
type ParserOptions struct {
	// IsolateSegments wraps every cx-segment span in a synthetic
	// <div class="cx-segment-block"> block so segments can be isolated
	// for per-segment rendering.
	IsolateSegments bool
}

// Parser drives a stream of open/text/close events (from a
// golang.org/x/net/html.Tokenizer) into a Builder, consulting a
// ContextTracker to decide removability, media context and segmentability
// along the way. Mirrors spec.md §4.6 / parser.py exactly, including the
// reference/math child-builder spawning and the isolateSegments wrapping.
type Parser struct {
	contextualizer ContextTracker
	options        ParserOptions

	rootBuilder *Builder
	builder     *Builder
	allTags     []*Tag
}

// NewParser creates a Parser using contextualizer for context/removability
// decisions.
func NewParser(contextualizer ContextTracker, options ParserOptions) *Parser {
	return &Parser{contextualizer: contextualizer, options: options}
}

// init (re)starts parser state for a fresh document.
func (p *Parser) init() {
	p.rootBuilder = NewBuilder()
	p.builder = p.rootBuilder
}

// Write parses html and returns the resulting Doc.
func (p *Parser) Write(source string) (*Doc, error) {
	p.init()
	if err := p.parse(source); err != nil {
		return nil, err
	}
	return p.rootBuilder.Doc, nil
}

func (p *Parser) parse(source string) error {
	tokenizer := html.NewTokenizer(strings.NewReader(source))

	for {
		tt := tokenizer.Next()
		switch tt {
		case html.ErrorToken:
			if err := tokenizer.Err(); err != nil && err.Error() != "EOF" {
				return fmt.Errorf("%w: %v", ErrMalformedInput, err)
			}
			return nil

		case html.StartTagToken, html.SelfClosingTagToken:
			tok := tokenizer.Token()
			tag := tagFromToken(tok)
			p.onOpenTag(tag)
			if tt == html.SelfClosingTagToken || IsVoidElement(tag.Name) {
				if err := p.onCloseTag(tag.Name); err != nil {
					return err
				}
			}

		case html.EndTagToken:
			tok := tokenizer.Token()
			name := strings.ToLower(tok.Data)
			if IsVoidElement(name) {
				continue
			}
			if err := p.onCloseTag(name); err != nil {
				return err
			}

		case html.TextToken:
			text := tokenizer.Token().Data
			if text == "" {
				continue
			}
			p.onText(text)

		case html.CommentToken, html.DoctypeToken:
			// Dropped: spec.md's item model has no representation for
			// comments or doctypes.
		}
	}
}

func tagFromToken(tok html.Token) *Tag {
	name := strings.ToLower(tok.Data)
	tag := NewTag(name)
	for _, a := range tok.Attr {
		tag.SetAttr(strings.ToLower(a.Key), a.Val)
	}
	if IsVoidElement(name) {
		tag.IsSelfClosing = true
	}
	return tag
}

func (p *Parser) onOpenTag(tag *Tag) {
	if p.contextualizer.GetContext() == ContextRemovable || p.contextualizer.IsRemovable(tag) {
		p.allTags = append(p.allTags, tag)
		p.contextualizer.OnOpenTag(tag)
		return
	}

	if p.options.IsolateSegments && IsSegment(tag) {
		p.builder.PushBlockTag(NewTagAttrs("div", [2]string{"class", "cx-segment-block"}))
	}

	switch {
	case IsReference(tag) || IsMath(tag):
		p.builder = p.builder.CreateChildBuilder(tag)
	case IsInlineEmptyTag(tag.Name):
		p.builder.AddInlineContent(tag, p.contextualizer.CanSegment())
	case p.isInlineAnnotationTag(tag.Name, IsTransclusion(tag)):
		p.builder.PushInlineAnnotationTag(tag)
	default:
		p.builder.PushBlockTag(tag)
	}

	p.allTags = append(p.allTags, tag)
	p.contextualizer.OnOpenTag(tag)
}

func (p *Parser) onCloseTag(tagName string) error {
	if len(p.allTags) == 0 {
		return nil
	}
	tag := p.allTags[len(p.allTags)-1]
	p.allTags = p.allTags[:len(p.allTags)-1]

	isAnn := p.isInlineAnnotationTag(tagName, IsTransclusion(tag))

	if p.contextualizer.IsRemovable(tag) || p.contextualizer.GetContext() == ContextRemovable {
		p.contextualizer.OnCloseTag()
		return nil
	}

	p.contextualizer.OnCloseTag()

	switch {
	case IsInlineEmptyTag(tagName):
		return nil

	case isAnn && len(p.builder.inlineAnnotationTags) > 0:
		if err := p.builder.PopInlineAnnotationTag(tagName); err != nil {
			return err
		}
		if p.options.IsolateSegments && IsSegment(tag) {
			if _, err := p.builder.PopBlockTag("div"); err != nil {
				return err
			}
		}
		return nil

	case isAnn && p.builder.parent != nil:
		if tagName != "span" && tagName != "sup" {
			return fmt.Errorf("%w: expected close reference span/sup, got %q", ErrUnexpectedReferenceClose, tagName)
		}
		p.builder.FinishTextBlock()
		p.builder.parent.AddInlineContent(p.builder.Doc, p.contextualizer.CanSegment())
		p.builder = p.builder.parent
		return nil

	case !isAnn:
		if tagName == "p" && p.contextualizer.CanSegment() {
			p.builder.AddTextChunk("", p.contextualizer.CanSegment())
		}
		_, err := p.builder.PopBlockTag(tagName)
		return err

	default:
		return fmt.Errorf("%w: unexpected close tag %q", ErrStructuralMismatch, tagName)
	}
}

func (p *Parser) onText(text string) {
	if p.contextualizer.GetContext() == ContextRemovable {
		return
	}
	p.builder.AddTextChunk(text, p.contextualizer.CanSegment())
}

// isInlineAnnotationTag reports whether tagName behaves as an inline
// annotation given the contextualizer's current context, per spec.md §4.6.
func (p *Parser) isInlineAnnotationTag(tagName string, isTransclusion bool) bool {
	context := p.contextualizer.GetContext()

	if tagName == "span" && context == ContextMedia {
		return false
	}
	if (tagName == "audio" || tagName == "video") && context == ContextMediaInline {
		return true
	}
	if tagName == "style" && isTransclusion {
		return true
	}
	return !blockTagNames[tagName]
}
