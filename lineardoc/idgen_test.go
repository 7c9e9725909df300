package lineardoc

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestIDGeneratorSharedCounter(t *testing.T) {
	ids := NewIDGenerator()
	require.Equal(t, "0", ids.Next("block"))
	require.Equal(t, "1", ids.Next("segment"))
	require.Equal(t, "2", ids.Next("link"))
	require.Equal(t, "3", ids.Next("block"))
}

func TestIDGeneratorSectionCounterIndependent(t *testing.T) {
	ids := NewIDGenerator()
	ids.Next("block")
	ids.Next("segment")
	require.Equal(t, "cxSourceSection0", ids.NextSectionID())
	require.Equal(t, "2", ids.Next("link"))
	require.Equal(t, "cxSourceSection1", ids.NextSectionID())
}

func TestIDGeneratorUnknownKindPanics(t *testing.T) {
	ids := NewIDGenerator()
	require.Panics(t, func() { ids.Next("heading") })
}
