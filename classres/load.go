package classres

import (
	"chaiclass/ast"
	"chaiclass/report"
	"chaiclass/types"
)

// SupertypeLoader is the first pass described in spec §4.3: before the
// Class Resolver runs on a class, every class it directly names as a
// supertype, mixin, or interface must itself be "loaded" — bound to a
// declaration — so the ordering guarantee in spec §5 holds. It breaks
// cycles in the supertype-naming graph with a depth-first recursive load
// that marks a class load-started before descending.
type SupertypeLoader struct {
	Decls   *Declarations
	Scopes  ast.ScopeProvider
	RootCls *types.Class
}

// NewSupertypeLoader creates a loader for the given declaration table,
// scope provider, and root class.
func NewSupertypeLoader(decls *Declarations, scopes ast.ScopeProvider, root *types.Class) *SupertypeLoader {
	return &SupertypeLoader{Decls: decls, Scopes: scopes, RootCls: root}
}

// Load ensures cls and everything it directly references has reached
// supertype-load-state done, recursing depth-first. It is idempotent: a
// class already Done is a no-op, matching the "don't revisit a black node"
// rule of the three-color algorithm.
func (l *SupertypeLoader) Load(cls *types.Class, reporter DiagnosticReporter) {
	switch cls.SupertypeLoadState {
	case types.LoadDone:
		return
	case types.LoadStarted:
		// Revisiting a load-started class is the cycle: break it here so
		// the Class Resolver never sees an unbound reference. Spec §8's
		// boundary scenario explicitly accepts "illegal-mixin-cycle or
		// equivalent diagnostic" for a class that extends itself.
		reporter.Report(report.MKIllegalMixinCycle, cls.Span, map[string]any{"name": cls.Name})
		cls.HasIncompleteHierarchy = true
		cls.Supertype = types.Instantiation(l.RootCls, nil)
		cls.SupertypeLoadState = types.LoadDone
		return
	}

	cls.SupertypeLoadState = types.LoadStarted

	node, ok := l.Decls.NodeFor(cls)
	if ok {
		scope := l.Scopes.ScopeFor(node)

		if node.MixinClause != nil {
			l.loadRef(node.MixinClause.Super, node.LibraryID, scope, reporter)
			for _, m := range node.MixinClause.Mixins {
				l.loadRef(m, node.LibraryID, scope, reporter)
			}
		} else if node.Superclass != nil {
			l.loadRef(node.Superclass, node.LibraryID, scope, reporter)
		}

		for _, iface := range node.Interfaces {
			l.loadRef(iface, node.LibraryID, scope, reporter)
		}
	}

	cls.SupertypeLoadState = types.LoadDone
}

// loadRef binds one direct type reference to its declaration (if any) and
// recurses into it. Unresolvable references (undeclared names, bad
// prefixes) are left for the Class Resolver / Type-Expression Resolver to
// diagnose properly; the loader only cares about reachable declarations.
func (l *SupertypeLoader) loadRef(annot *ast.TypeAnnotation, currentLibrary string, scope *ast.Scope, reporter DiagnosticReporter) {
	if annot == nil {
		return
	}

	libraryID := currentLibrary
	if annot.Prefix != "" {
		lib, ok := scope.ResolveImportPrefix(annot.Prefix)
		if !ok {
			return
		}
		libraryID = lib
	} else if _, ok := scope.Lookup(annot.Name); ok {
		// Names a type variable, not a class: nothing to load.
		return
	}

	decl, ok := l.Decls.Lookup(libraryID, annot.Name)
	if !ok || decl.Kind != DeclKindClass {
		return
	}

	l.Load(decl.Class, reporter)
}
