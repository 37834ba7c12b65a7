package ast

import "chaiclass/types"

// Scope is the enclosing lexical scope of a declaration: the type
// parameters visible at that point, and the import prefixes that can
// appear on the left of a dotted identifier. The Name Resolver Façade
// (spec §4.1) looks identifiers up against a Scope; the Type-Expression
// Resolver (§4.2) additionally threads a function-type-parameter scope,
// modeled the same way but kept separate since it is always empty at class
// level.
type Scope struct {
	// TypeParams is keyed by name for O(1) lookup and holds the actual
	// *types.TypeParam owned by the enclosing class, so a resolved
	// type-variable reference shares identity with the bound-cycle walk
	// (spec §4.3 step 1) rather than a detached copy. Spec §3 requires
	// duplicate names on one class to collapse to "the first wins", which
	// the builder enforces before installing a scope.
	TypeParams map[string]*types.TypeParam

	// Imports maps an import prefix to the library it names.
	Imports map[string]string

	// Parent is the enclosing scope, if any (e.g. a function-type-parameter
	// scope's parent is the owning class's scope). Nil at the outermost
	// (class) level.
	Parent *Scope
}

// Lookup searches this scope and its ancestors for name, returning the
// nearest enclosing type parameter declaration.
func (s *Scope) Lookup(name string) (*types.TypeParam, bool) {
	for sc := s; sc != nil; sc = sc.Parent {
		if sc.TypeParams != nil {
			if h, ok := sc.TypeParams[name]; ok {
				return h, true
			}
		}
	}
	return nil, false
}

// ResolveImportPrefix searches this scope and its ancestors for an import
// prefix binding.
func (s *Scope) ResolveImportPrefix(prefix string) (string, bool) {
	for sc := s; sc != nil; sc = sc.Parent {
		if sc.Imports != nil {
			if lib, ok := sc.Imports[prefix]; ok {
				return lib, true
			}
		}
	}
	return "", false
}

// ScopeProvider is the collaborator from spec §6 that, given a class
// declaration, yields its enclosing lexical scope. Implemented by whatever
// holds the surrounding module/import graph; the core only ever reads from
// it.
type ScopeProvider interface {
	ScopeFor(class *ClassNode) *Scope
}
