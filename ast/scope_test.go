package ast

import (
	"testing"

	"chaiclass/types"

	"github.com/stretchr/testify/require"
)

func TestScopeLookupFindsOwnTypeParam(t *testing.T) {
	tv := &types.TypeParam{Name: "T"}
	scope := &Scope{TypeParams: map[string]*types.TypeParam{"T": tv}}

	got, ok := scope.Lookup("T")

	require.True(t, ok)
	require.Same(t, tv, got)
}

func TestScopeLookupWalksParentChain(t *testing.T) {
	classTV := &types.TypeParam{Name: "T"}
	parent := &Scope{TypeParams: map[string]*types.TypeParam{"T": classTV}}
	child := &Scope{TypeParams: map[string]*types.TypeParam{}, Parent: parent}

	got, ok := child.Lookup("T")

	require.True(t, ok)
	require.Same(t, classTV, got)
}

func TestScopeLookupInnermostBindingWins(t *testing.T) {
	outer := &types.TypeParam{Name: "T"}
	inner := &types.TypeParam{Name: "T"}
	parent := &Scope{TypeParams: map[string]*types.TypeParam{"T": outer}}
	child := &Scope{TypeParams: map[string]*types.TypeParam{"T": inner}, Parent: parent}

	got, ok := child.Lookup("T")

	require.True(t, ok)
	require.Same(t, inner, got)
}

func TestScopeLookupMissReturnsFalse(t *testing.T) {
	scope := &Scope{TypeParams: map[string]*types.TypeParam{}}

	_, ok := scope.Lookup("Ghost")

	require.False(t, ok)
}

func TestScopeResolveImportPrefixWalksParentChain(t *testing.T) {
	parent := &Scope{Imports: map[string]string{"ui": "gui-lib"}}
	child := &Scope{Parent: parent}

	lib, ok := child.ResolveImportPrefix("ui")

	require.True(t, ok)
	require.Equal(t, "gui-lib", lib)
}

func TestScopeResolveImportPrefixMissReturnsFalse(t *testing.T) {
	scope := &Scope{}

	_, ok := scope.ResolveImportPrefix("nope")

	require.False(t, ok)
}
