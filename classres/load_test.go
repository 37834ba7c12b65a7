package classres

import (
	"testing"

	"chaiclass/ast"
	"chaiclass/report"
	"chaiclass/types"

	"github.com/stretchr/testify/require"
)

func TestSupertypeLoaderIsIdempotentOnDoneClass(t *testing.T) {
	decls, _, root := newHarness()
	scopes := NewStaticScopeProvider(decls, nil)
	loader := NewSupertypeLoader(decls, scopes, root)
	reporter := &RecordingReporter{}

	loader.Load(root, reporter)
	require.Empty(t, reporter.Messages)

	// Loading an already-Done class a second time is a no-op: the switch
	// on SupertypeLoadState short-circuits before touching the class again.
	loader.Load(root, reporter)
	require.Empty(t, reporter.Messages)
}

func TestSupertypeLoaderFollowsExplicitSupertypeChain(t *testing.T) {
	decls, ids, root := newHarness()
	decls.Add(ids, &ast.ClassNode{Name: "Animal", LibraryID: "demo", Kind: ast.ClassKindRegular})
	bird := decls.Add(ids, &ast.ClassNode{
		Name: "Bird", LibraryID: "demo", Kind: ast.ClassKindRegular,
		Superclass: annot("Animal"),
	})

	scopes := NewStaticScopeProvider(decls, nil)
	loader := NewSupertypeLoader(decls, scopes, root)
	reporter := &RecordingReporter{}

	loader.Load(bird, reporter)

	require.Empty(t, reporter.Messages)
	animal, _ := decls.Lookup("demo", "Animal")
	// The loader only walks explicit Superclass/Interfaces/MixinClause
	// annotations; Animal has none, so it never descends into root here.
	require.Equal(t, types.LoadDone, animal.Class.SupertypeLoadState)
	require.Equal(t, types.LoadDone, bird.SupertypeLoadState)
}

func TestSupertypeLoaderDetectsDirectSelfCycle(t *testing.T) {
	decls, ids, root := newHarness()
	loop := decls.Add(ids, &ast.ClassNode{
		Name: "Loop", LibraryID: "demo", Kind: ast.ClassKindRegular,
		Superclass: annot("Loop"),
	})

	scopes := NewStaticScopeProvider(decls, nil)
	loader := NewSupertypeLoader(decls, scopes, root)
	reporter := &RecordingReporter{}

	require.NotPanics(t, func() {
		loader.Load(loop, reporter)
	})

	require.Equal(t, 1, reporter.Count(report.MKIllegalMixinCycle))
	require.True(t, loop.HasIncompleteHierarchy)
	require.Same(t, root, loop.Supertype.Class)
}

func TestSupertypeLoaderDetectsMutualCycle(t *testing.T) {
	decls, ids, root := newHarness()
	a := decls.Add(ids, &ast.ClassNode{
		Name: "A", LibraryID: "demo", Kind: ast.ClassKindRegular,
		Superclass: annot("B"),
	})
	decls.Add(ids, &ast.ClassNode{
		Name: "B", LibraryID: "demo", Kind: ast.ClassKindRegular,
		Superclass: annot("A"),
	})

	scopes := NewStaticScopeProvider(decls, nil)
	loader := NewSupertypeLoader(decls, scopes, root)
	reporter := &RecordingReporter{}

	require.NotPanics(t, func() {
		loader.Load(a, reporter)
	})

	require.Equal(t, 1, reporter.Count(report.MKIllegalMixinCycle))
}

func TestSupertypeLoaderSkipsUnresolvableReference(t *testing.T) {
	decls, ids, root := newHarness()
	orphan := decls.Add(ids, &ast.ClassNode{
		Name: "Orphan", LibraryID: "demo", Kind: ast.ClassKindRegular,
		Superclass: annot("DoesNotExist"),
	})

	scopes := NewStaticScopeProvider(decls, nil)
	loader := NewSupertypeLoader(decls, scopes, root)
	reporter := &RecordingReporter{}

	require.NotPanics(t, func() {
		loader.Load(orphan, reporter)
	})

	// The loader leaves undeclared-name diagnostics to the Class Resolver /
	// Type-Expression Resolver; it only follows reachable declarations.
	require.Empty(t, reporter.Messages)
}
