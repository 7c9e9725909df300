package segment

import (
	"testing"

	"github.com/stretchr/testify/require"
)

// Boundaries are only reported strictly inside the string: the terminator
// that ends the string itself never yields a boundary index, since there is
// nothing left to split off after it.

func TestPunctuationSegmenterBasicSentences(t *testing.T) {
	boundaries := PunctuationSegmenter("One. Two. Three.", "en")
	require.Equal(t, []int{4, 9}, boundaries)
}

func TestPunctuationSegmenterSingleLetterAbbreviationGuard(t *testing.T) {
	boundaries := PunctuationSegmenter("U.S. economy grew. It was strong.", "en")
	require.Equal(t, []int{18}, boundaries, "a single capital letter before the dot (as in U.S.) must not be treated as a sentence end")
}

func TestPunctuationSegmenterHandlesTrailingQuote(t *testing.T) {
	boundaries := PunctuationSegmenter(`She said "hi." Then left.`, "en")
	require.Equal(t, []int{14}, boundaries)
}

func TestPunctuationSegmenterCJKFullStopRequiresFollowingSpace(t *testing.T) {
	boundaries := PunctuationSegmenter("你好。 再见。", "zh")
	require.Equal(t, []int{3}, boundaries, "a terminator with no following whitespace is not treated as a boundary")
}

func TestPunctuationSegmenterNoBoundaryWithoutTerminator(t *testing.T) {
	boundaries := PunctuationSegmenter("no terminator here", "en")
	require.Empty(t, boundaries)
}

func TestPunctuationSegmenterQuestionAndExclamation(t *testing.T) {
	boundaries := PunctuationSegmenter("Really? Yes! Sure.", "en")
	require.Equal(t, []int{7, 12}, boundaries)
}
