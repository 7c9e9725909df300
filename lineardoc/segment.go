package lineardoc

// Segmenter computes sentence-boundary offsets in plaintext for a given
// BCP-47 language code, per spec.md §4.2's external collaborator contract.
// It is an adapter seam only: lineardoc never implements real sentence
// segmentation itself, it just calls out to one supplied at Process time
// (SPEC_FULL.md SEGMENTER ADAPTER). internal/segment provides a concrete,
// punctuation-based implementation.
type Segmenter func(plaintext, language string) []int

// BoundaryFuncFor binds a Segmenter to a fixed language, producing the
// BoundaryFunc that Doc.Segment and TextBlock.Segment consume.
func BoundaryFuncFor(segmenter Segmenter, language string) BoundaryFunc {
	return func(plaintext string) []int {
		return segmenter(plaintext, language)
	}
}
