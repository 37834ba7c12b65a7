package types

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLibraryInterning(t *testing.T) {
	lib := NewLibrary("demo")

	_, ok := lib.InternedMixinApplication("_A&M")
	require.False(t, ok)

	link := &Class{ID: 42, Name: "_A&M"}
	lib.InternMixinApplication("_A&M", link)

	got, ok := lib.InternedMixinApplication("_A&M")
	require.True(t, ok)
	require.Same(t, link, got)
}
