package classres

import (
	"chaiclass/ast"
	"chaiclass/report"
	"chaiclass/types"
)

// DeclKind distinguishes what a global name in a library resolves to: a
// class-like declaration, or something else (a function, a variable) that
// the Name Resolver Façade must reject with cannot-resolve-type when a type
// annotation asks for it.
type DeclKind int

const (
	DeclKindClass DeclKind = iota
	DeclKindOther
)

// Decl is one entry a DeclTable can hand back: either a class-like
// declaration (with its originating syntax, so the Supertype Loader can
// keep descending into it) or a placeholder for a non-type symbol.
type Decl struct {
	Kind  DeclKind
	Class *types.Class
	Node  *ast.ClassNode
}

// DeclTable indexes the class-like (and other) declarations visible within
// a library, by simple name. It stands in for the global symbol table a
// full compiler would maintain; the resolution core only ever reads it.
type DeclTable interface {
	Lookup(libraryID, name string) (Decl, bool)
}

// ResolvedName is what the Name Resolver Façade (spec §4.1) hands back: a
// class-like declaration, a type-parameter declaration, or neither (Found
// is false).
type ResolvedName struct {
	Found bool

	Class     *types.Class
	TypeParam *types.TypeParam
}

// NameResolverFacade looks up a simple or prefixed identifier against an
// enclosing scope and a declaration table.
type NameResolverFacade struct {
	Decls DeclTable
}

// NewNameResolverFacade creates a façade backed by the given declaration
// table.
func NewNameResolverFacade(decls DeclTable) *NameResolverFacade {
	return &NameResolverFacade{Decls: decls}
}

// Resolve looks up `prefix.name` (or bare `name` when prefix is empty)
// within scope, belonging to currentLibrary. It reports not-a-prefix or
// cannot-resolve-type through reporter and returns Found=false on error —
// spec §4.1 says every façade error additionally "produce[s] a malformed-
// type sentinel so resolution proceeds", which callers build themselves
// from a not-found ResolvedName plus the reported diagnostic.
func (f *NameResolverFacade) Resolve(
	prefix, name string,
	scope *ast.Scope,
	currentLibrary string,
	pos *report.TextPosition,
	reporter DiagnosticReporter,
) ResolvedName {
	if prefix != "" {
		libraryID, ok := scope.ResolveImportPrefix(prefix)
		if !ok {
			reporter.Report(report.MKNotAPrefix, pos, map[string]any{"name": prefix})
			return ResolvedName{}
		}

		decl, ok := f.Decls.Lookup(libraryID, name)
		if !ok || decl.Kind != DeclKindClass {
			reporter.Report(report.MKCannotResolveType, pos, map[string]any{"name": name})
			return ResolvedName{}
		}

		return ResolvedName{Found: true, Class: decl.Class}
	}

	// Unprefixed: type variables in scope shadow global class names,
	// matching ordinary lexical-scoping expectations (innermost binding
	// wins).
	if tv, ok := scope.Lookup(name); ok {
		return ResolvedName{Found: true, TypeParam: tv}
	}

	decl, ok := f.Decls.Lookup(currentLibrary, name)
	if !ok {
		return ResolvedName{}
	}

	if decl.Kind != DeclKindClass {
		reporter.Report(report.MKCannotResolveType, pos, map[string]any{"name": name})
		return ResolvedName{}
	}

	return ResolvedName{Found: true, Class: decl.Class}
}
