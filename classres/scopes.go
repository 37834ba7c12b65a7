package classres

import (
	"chaiclass/ast"
	"chaiclass/types"
)

// StaticScopeProvider is the concrete ast.ScopeProvider the demo driver and
// test suite wire up (spec §6): one Scope per class declaration, built
// from that class's own type parameters (sharing identity with the
// *types.TypeParam records Declarations.Add already created, per the
// "first wins" duplicate-name rule documented on ast.Scope) plus a
// per-library import-prefix table supplied at construction.
type StaticScopeProvider struct {
	nodeToClass map[*ast.ClassNode]*types.Class
	imports     map[string]map[string]string // libraryID -> prefix -> libraryID
	cache       map[*ast.ClassNode]*ast.Scope
}

// NewStaticScopeProvider builds a scope provider over every declaration
// already registered in decls. imports maps a library id to its own
// prefix-to-library bindings; a library absent from the map simply has no
// import prefixes in scope.
func NewStaticScopeProvider(decls *Declarations, imports map[string]map[string]string) *StaticScopeProvider {
	nodeToClass := make(map[*ast.ClassNode]*types.Class, len(decls.All()))
	for _, decl := range decls.All() {
		if decl.Kind == DeclKindClass && decl.Node != nil {
			nodeToClass[decl.Node] = decl.Class
		}
	}
	return &StaticScopeProvider{
		nodeToClass: nodeToClass,
		imports:     imports,
		cache:       make(map[*ast.ClassNode]*ast.Scope),
	}
}

// ScopeFor implements ast.ScopeProvider.
func (p *StaticScopeProvider) ScopeFor(node *ast.ClassNode) *ast.Scope {
	if sc, ok := p.cache[node]; ok {
		return sc
	}

	scope := &ast.Scope{TypeParams: make(map[string]*types.TypeParam)}

	if cls, ok := p.nodeToClass[node]; ok {
		for _, tv := range cls.TypeParams {
			if _, exists := scope.TypeParams[tv.Name]; !exists {
				scope.TypeParams[tv.Name] = tv
			}
		}
	}

	if prefixes, ok := p.imports[node.LibraryID]; ok {
		scope.Imports = prefixes
	}

	p.cache[node] = scope
	return scope
}
