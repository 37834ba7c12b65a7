package classres

import (
	"chaiclass/ast"
	"chaiclass/report"
	"chaiclass/types"
)

// TypeExpressionResolver turns a syntactic nominal type annotation into a
// resolved structural type (spec §4.2).
type TypeExpressionResolver struct {
	Facade *NameResolverFacade
}

// NewTypeExpressionResolver creates a resolver backed by the given façade.
func NewTypeExpressionResolver(facade *NameResolverFacade) *TypeExpressionResolver {
	return &TypeExpressionResolver{Facade: facade}
}

// Resolve resolves annotation against classScope (the enclosing class's
// scope, providing its type parameters) and fnScope (a function-type-
// parameter scope, empty at class level — callers from classres pass the
// same scope twice since the core never resolves inside function bodies).
func (r *TypeExpressionResolver) Resolve(
	annotation *ast.TypeAnnotation,
	classScope, fnScope *ast.Scope,
	currentLibrary string,
	reporter DiagnosticReporter,
) *types.ResolvedType {
	if annotation == nil {
		return types.Dynamic()
	}

	// An unprefixed bare name might be a type variable: check the
	// innermost scope first (fnScope, then classScope) before treating it
	// as a class reference. The façade already does innermost-first
	// lookup across a Scope chain, so only resolve against fnScope when it
	// is distinct from classScope and actually shadows something.
	scope := classScope
	if fnScope != nil && fnScope != classScope {
		if _, ok := fnScope.Lookup(annotation.Name); ok && annotation.Prefix == "" {
			scope = fnScope
		}
	}

	resolved := r.Facade.Resolve(annotation.Prefix, annotation.Name, scope, currentLibrary, annotation.Span, reporter)

	if !resolved.Found {
		// The façade already reported not-a-prefix or cannot-resolve-type
		// for every case it recognizes; a plain lookup miss (no prefix,
		// name simply undeclared) still needs to surface here.
		if annotation.Prefix == "" {
			reporter.Report(report.MKCannotResolveType, annotation.Span, map[string]any{"name": annotation.Name})
		}
		return types.Malformed(report.MKCannotResolveType)
	}

	if resolved.TypeParam != nil {
		return types.TypeVariableRef(resolved.TypeParam)
	}

	class := resolved.Class

	if len(annotation.Args) == 0 {
		// Raw instantiation: every argument defaults to dynamic (spec
		// §4.2, and the Raw Instantiation glossary entry).
		args := make([]*types.ResolvedType, len(class.TypeParams))
		for i := range args {
			args[i] = types.Dynamic()
		}
		return types.Instantiation(class, args)
	}

	if len(annotation.Args) != len(class.TypeParams) {
		reporter.Report(report.MKCannotResolveType, annotation.Span, map[string]any{
			"name": annotation.Name,
		})
		return types.Malformed(report.MKCannotResolveType)
	}

	args := make([]*types.ResolvedType, len(annotation.Args))
	for i, argAnnot := range annotation.Args {
		args[i] = r.Resolve(argAnnot, classScope, fnScope, currentLibrary, reporter)
	}

	return types.Instantiation(class, args)
}
