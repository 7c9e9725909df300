package lineardoc

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/require"
)

// wordBoundarySegmenter is a minimal stand-in for the external sentence
// boundary collaborator (spec.md §6): it reports an offset right after
// every ". " it finds, enough to exercise the pipeline's own
// segmentation wiring without depending on a real NLP library.
func wordBoundarySegmenter(plaintext, language string) []int {
	var out []int
	runes := []rune(plaintext)
	for i := 0; i < len(runes)-1; i++ {
		if runes[i] == '.' && runes[i+1] == ' ' {
			out = append(out, i+2)
		}
	}
	return out
}

func processFor(t *testing.T, body string) string {
	t.Helper()
	out, err := Process("<html><body>"+body+"</body></html>", ProcessOptions{
		Language:  "en",
		Segmenter: wordBoundarySegmenter,
	})
	require.NoError(t, err)
	return out
}

// S1: two sentences in a paragraph get wrapped in distinct cx-segment spans
// inside a generated section.
func TestProcessS1SentenceSegmentation(t *testing.T) {
	out := processFor(t, "<p>This is a test. This is another sentence.</p>")

	require.Contains(t, out, `class="cx-segment"`)
	require.Contains(t, out, `data-segmentid=`)
	require.Contains(t, out, "<section")

	ids := distinctAttrValues(out, "data-segmentid")
	require.GreaterOrEqual(t, len(ids), 2, "expected at least two distinct segment ids, got %v", ids)
}

// S2: a WikiLink anchor is stamped cx-link/data-linkid and keeps its href,
// minus any query string.
func TestProcessS2WikiLinkStamping(t *testing.T) {
	out := processFor(t, `<p><a href="/wiki/Link?action=edit" rel="mw:WikiLink">a link</a></p>`)

	require.Contains(t, out, `class="cx-link"`)
	require.Contains(t, out, `data-linkid=`)
	require.Contains(t, out, `href="/wiki/Link"`)
	require.NotContains(t, out, "action=edit")
}

// S3: a figure/figcaption pair gets rel="cx:Figure", the caption is
// segmented, and the img renders as a self-closed void element.
func TestProcessS3Figure(t *testing.T) {
	out := processFor(t, `<figure><img src="image.jpg"/><figcaption>Caption text.</figcaption></figure>`)

	require.Contains(t, out, `rel="cx:Figure"`)
	require.Contains(t, out, `<img src="image.jpg" />`)
	require.Contains(t, out, `class="cx-segment"`)
}

// S4: two h2/p pairs produce ascending section numbers and distinct
// cxSourceSectionN ids.
func TestProcessS4MultipleSections(t *testing.T) {
	out := processFor(t, "<h2>First</h2><p>First para.</p><h2>Second</h2><p>Second para.</p>")

	sectionCount := strings.Count(out, "<section")
	require.GreaterOrEqual(t, sectionCount, 2)

	require.Contains(t, out, `data-mw-section-number="1"`)
	require.Contains(t, out, `data-mw-section-number="2"`)

	sectionIDs := distinctAttrValuesForTag(out, "section", "id")
	require.GreaterOrEqual(t, len(sectionIDs), 2)
	for _, id := range sectionIDs {
		require.True(t, strings.HasPrefix(id, "cxSourceSection"))
	}
}

// S5: a reference sub-document survives as inline content inside the
// paragraph's segment, and the surrounding prose still segments.
func TestProcessS5Reference(t *testing.T) {
	out := processFor(t, `<p>Text<sup class="reference"><a href="#n">[1]</a></sup>.</p>`)

	require.Contains(t, out, `class="reference"`)
	require.Contains(t, out, `[1]`)
	require.Contains(t, out, `class="cx-segment"`)
}

// S6: content under a configured removable class is dropped entirely.
func TestProcessS6RemovableClass(t *testing.T) {
	out, err := Process(`<html><body><div class="navbox">drop me</div><p>Keep this.</p></body></html>`, ProcessOptions{
		Language:  "en",
		Segmenter: wordBoundarySegmenter,
		Removable: RemovableConfig{Classes: []string{"navbox"}},
	})
	require.NoError(t, err)

	require.NotContains(t, out, "drop me")
	require.NotContains(t, out, "navbox")
	require.Contains(t, out, "Keep this.")
}

// TestProcessMultibyteSegmentation is spec.md §8 property 2 (plaintext
// preserved under segmentation) on non-Latin content, the primary case for
// a MediaWiki pipeline: sentence boundaries from the segmenter are character
// offsets, and splitting chunks at those offsets must never cut a multibyte
// UTF-8 rune in half.
func TestProcessMultibyteSegmentation(t *testing.T) {
	out := processFor(t, "<p>Это предложение. Это другое предложение.</p>")

	require.Contains(t, out, `class="cx-segment"`)
	require.Contains(t, out, "Это предложение.")
	require.Contains(t, out, "Это другое предложение.")
	require.True(t, utf8.ValidString(out))

	ids := distinctAttrValues(out, "data-segmentid")
	require.GreaterOrEqual(t, len(ids), 2, "expected at least two distinct segment ids, got %v", ids)
}

func TestProcessRequiresSegmenter(t *testing.T) {
	_, err := Process("<p>hi</p>", ProcessOptions{})
	require.Error(t, err)
}

func TestProcessStripsControlWhitespaceBetweenTags(t *testing.T) {
	out := processFor(t, "<div>\n\t<p>One.</p>\r\n\t<p>Two.</p>\n</div>")
	require.NotContains(t, out, "\n")
	require.NotContains(t, out, "\t")
	require.NotContains(t, out, "\r")
}

// distinctAttrValues collects all distinct values of attr="..." appearing
// anywhere in html, in a form robust enough for test assertions (not a real
// HTML parse).
func distinctAttrValues(html, attr string) []string {
	seen := map[string]bool{}
	var out []string
	needle := attr + `="`
	for {
		idx := strings.Index(html, needle)
		if idx == -1 {
			break
		}
		html = html[idx+len(needle):]
		end := strings.IndexByte(html, '"')
		if end == -1 {
			break
		}
		val := html[:end]
		if !seen[val] {
			seen[val] = true
			out = append(out, val)
		}
		html = html[end:]
	}
	return out
}

// distinctAttrValuesForTag is like distinctAttrValues but only considers
// attr values on opening tags named tagName.
func distinctAttrValuesForTag(html, tagName, attr string) []string {
	seen := map[string]bool{}
	var out []string
	openNeedle := "<" + tagName
	for {
		idx := strings.Index(html, openNeedle)
		if idx == -1 {
			break
		}
		rest := html[idx:]
		end := strings.IndexByte(rest, '>')
		if end == -1 {
			break
		}
		tagText := rest[:end]
		for _, val := range distinctAttrValues(tagText, attr) {
			if !seen[val] {
				seen[val] = true
				out = append(out, val)
			}
		}
		html = rest[end+1:]
	}
	return out
}
