package classres

import (
	"testing"

	"chaiclass/ast"
	"chaiclass/common"
	"chaiclass/report"
	"chaiclass/types"

	"github.com/stretchr/testify/require"
)

func TestTypeExpressionResolverRawInstantiationDefaultsToDynamic(t *testing.T) {
	decls := NewDeclarations()
	ids := common.NewIDAllocator()
	box := decls.Add(ids, &ast.ClassNode{
		Name: "Box", LibraryID: "app", Kind: ast.ClassKindRegular,
		TypeParams: []*ast.TypeParamNode{{Name: "T"}},
	})
	box.TypeParams = []*types.TypeParam{{Name: "T", Bound: types.Dynamic()}}

	facade := NewNameResolverFacade(decls)
	resolver := NewTypeExpressionResolver(facade)
	scope := &ast.Scope{}
	reporter := &RecordingReporter{}

	rt := resolver.Resolve(&ast.TypeAnnotation{Name: "Box"}, scope, scope, "app", reporter)

	require.Equal(t, types.TagInstantiation, rt.Tag)
	require.Same(t, box, rt.Class)
	require.Len(t, rt.TypeArgs, 1)
	require.Equal(t, types.TagDynamic, rt.TypeArgs[0].Tag)
	require.Empty(t, reporter.Messages)
}

func TestTypeExpressionResolverArityMismatchIsMalformed(t *testing.T) {
	decls := NewDeclarations()
	ids := common.NewIDAllocator()
	box := decls.Add(ids, &ast.ClassNode{
		Name: "Box", LibraryID: "app", Kind: ast.ClassKindRegular,
		TypeParams: []*ast.TypeParamNode{{Name: "T"}},
	})
	box.TypeParams = []*types.TypeParam{{Name: "T", Bound: types.Dynamic()}}

	facade := NewNameResolverFacade(decls)
	resolver := NewTypeExpressionResolver(facade)
	scope := &ast.Scope{}
	reporter := &RecordingReporter{}

	annotation := &ast.TypeAnnotation{
		Name: "Box",
		Args: []*ast.TypeAnnotation{{Name: "int"}, {Name: "string"}},
	}
	rt := resolver.Resolve(annotation, scope, scope, "app", reporter)

	require.True(t, rt.IsMalformed())
	require.Equal(t, 1, reporter.Count(report.MKCannotResolveType))
}

func TestTypeExpressionResolverResolvesNestedGenericArgs(t *testing.T) {
	decls := NewDeclarations()
	ids := common.NewIDAllocator()
	inner := decls.Add(ids, &ast.ClassNode{Name: "Item", LibraryID: "app", Kind: ast.ClassKindRegular})
	outer := decls.Add(ids, &ast.ClassNode{
		Name: "Box", LibraryID: "app", Kind: ast.ClassKindRegular,
		TypeParams: []*ast.TypeParamNode{{Name: "T"}},
	})
	outer.TypeParams = []*types.TypeParam{{Name: "T", Bound: types.Dynamic()}}

	facade := NewNameResolverFacade(decls)
	resolver := NewTypeExpressionResolver(facade)
	scope := &ast.Scope{}
	reporter := &RecordingReporter{}

	annotation := &ast.TypeAnnotation{Name: "Box", Args: []*ast.TypeAnnotation{{Name: "Item"}}}
	rt := resolver.Resolve(annotation, scope, scope, "app", reporter)

	require.Empty(t, reporter.Messages)
	require.Same(t, outer, rt.Class)
	require.Len(t, rt.TypeArgs, 1)
	require.Same(t, inner, rt.TypeArgs[0].Class)
}

func TestTypeExpressionResolverFunctionScopeShadowsClassScope(t *testing.T) {
	decls := NewDeclarations()
	facade := NewNameResolverFacade(decls)
	resolver := NewTypeExpressionResolver(facade)

	classTV := &types.TypeParam{Name: "T"}
	fnTV := &types.TypeParam{Name: "T"}
	classScope := &ast.Scope{TypeParams: map[string]*types.TypeParam{"T": classTV}}
	fnScope := &ast.Scope{TypeParams: map[string]*types.TypeParam{"T": fnTV}, Parent: classScope}

	reporter := &RecordingReporter{}
	rt := resolver.Resolve(&ast.TypeAnnotation{Name: "T"}, classScope, fnScope, "app", reporter)

	require.Equal(t, types.TagTypeVariable, rt.Tag)
	require.Same(t, fnTV, rt.Variable)
}

func TestTypeExpressionResolverNilAnnotationIsDynamic(t *testing.T) {
	decls := NewDeclarations()
	facade := NewNameResolverFacade(decls)
	resolver := NewTypeExpressionResolver(facade)
	scope := &ast.Scope{}
	reporter := &RecordingReporter{}

	rt := resolver.Resolve(nil, scope, scope, "app", reporter)

	require.Equal(t, types.TagDynamic, rt.Tag)
	require.Empty(t, reporter.Messages)
}
