package lineardoc

import (
	"errors"
	"regexp"

	"github.com/wikicx/lineardoc/internal/debug"
)

// ProcessOptions configures Process end to end: the language driving
// sentence segmentation, the removability rules applied during
// contextualization, the segmenter adapter to call out to, and whether
// segments get isolated into synthetic blocks for per-segment rendering.
type ProcessOptions struct {
	// Language is the BCP-47 code passed to Segmenter.
	Language string
	// Removable configures which classes/RDFa/templates MWContextualizer
	// strips. Zero value disables all removal.
	Removable RemovableConfig
	// Segmenter computes sentence boundaries. Required; Process returns
	// an error if it is nil.
	Segmenter Segmenter
	// IsolateSegments wraps cx-segment spans in synthetic block divs
	// (spec.md §4.6, ParserOptions.IsolateSegments).
	IsolateSegments bool
}

var controlWhitespaceRe = regexp.MustCompile(`[\t\r\n]+`)

// Process runs the full pipeline described in spec.md §4 end to end:
// whitespace normalization, SAX parse with MediaWiki contextualization,
// section wrapping, whole-document segmentation, and HTML rendering.
// Grounded on processor.py's process_html, the pipeline's sole entry point.
func Process(sourceHTML string, opts ProcessOptions) (string, error) {
	if opts.Segmenter == nil {
		return "", errNilSegmenter
	}

	cleaned := controlWhitespaceRe.ReplaceAllString(sourceHTML, "")
	debug.DebugLog("process", "normalize", "stripped control whitespace, %d bytes remain", len(cleaned))

	contextualizer := NewMWContextualizer(opts.Removable)
	parser := NewParser(contextualizer, ParserOptions{IsolateSegments: opts.IsolateSegments})

	doc, err := parser.Write(cleaned)
	if err != nil {
		debug.DebugLogError("process", "parse", "parser.Write failed", err)
		return "", err
	}

	doc = doc.WrapSections()

	language := opts.Language
	if language == "" {
		language = "en"
	}
	boundaries := BoundaryFuncFor(opts.Segmenter, language)

	doc = doc.Segment(boundaries, NewIDGenerator())
	debug.DebugLogWithData("process", "segment", "segmentation complete", map[string]interface{}{
		"language": language,
		"segments": len(doc.Segments()),
	})

	return doc.GetHTML(), nil
}

var errNilSegmenter = errors.New("lineardoc: ProcessOptions.Segmenter is required")
