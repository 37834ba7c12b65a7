package classres

import (
	"chaiclass/ast"
	"chaiclass/common"
	"chaiclass/types"
)

// Declarations is the concrete, in-memory DeclTable the demo driver and the
// test suite build programs against: every class-like declaration in the
// program, indexed by (library, name), paired with its originating syntax
// node. The resolution core treats it as read-only except for the Class
// records it points to, which the Class Resolver mutates in place.
type Declarations struct {
	byLibrary map[string]map[string]*Decl
	libraries map[string]*types.Library
	all       []*Decl
}

// NewDeclarations creates an empty declaration table.
func NewDeclarations() *Declarations {
	return &Declarations{
		byLibrary: make(map[string]map[string]*Decl),
		libraries: make(map[string]*types.Library),
	}
}

// Add registers a class-like declaration, pairing its syntax node with a
// freshly allocated (but not yet resolved) Class record. It returns the
// Class record so callers can pre-populate it or reference it directly.
func (d *Declarations) Add(ids *common.IDAllocator, node *ast.ClassNode) *types.Class {
	kind := types.KindRegular
	switch node.Kind {
	case ast.ClassKindEnum:
		kind = types.KindEnum
	case ast.ClassKindNamedMixinApplication:
		kind = types.KindNamedMixinApplication
	}

	cls := &types.Class{
		ID:        ids.Next(),
		Name:      node.Name,
		LibraryID: node.LibraryID,
		Kind:      kind,
		Span:      node.Span,
	}

	// Type parameters are built here, not by the Class Resolver, so that
	// the scope provider can share their identity with whatever the
	// resolver later installs as Bound: a type-variable reference resolved
	// anywhere in this class's body must point at the very same
	// *types.TypeParam the bound-cycle walk (spec §4.3 step 1) visits.
	if len(node.TypeParams) > 0 {
		cls.TypeParams = make([]*types.TypeParam, len(node.TypeParams))
		for i, tp := range node.TypeParams {
			cls.TypeParams[i] = &types.TypeParam{
				OwningClassID: cls.ID,
				Index:         i,
				Name:          tp.Name,
			}
		}
	}

	if _, ok := d.byLibrary[node.LibraryID]; !ok {
		d.byLibrary[node.LibraryID] = make(map[string]*Decl)
	}

	decl := &Decl{Kind: DeclKindClass, Class: cls, Node: node}
	d.byLibrary[node.LibraryID][node.Name] = decl
	d.all = append(d.all, decl)

	if _, ok := d.libraries[node.LibraryID]; !ok {
		d.libraries[node.LibraryID] = types.NewLibrary(node.LibraryID)
	}

	return cls
}

// AddOther registers a non-type symbol name, so the façade can exercise
// spec §4.1's cannot-resolve-type path when a type annotation names it.
func (d *Declarations) AddOther(libraryID, name string) {
	if _, ok := d.byLibrary[libraryID]; !ok {
		d.byLibrary[libraryID] = make(map[string]*Decl)
	}
	d.byLibrary[libraryID][name] = &Decl{Kind: DeclKindOther}
}

// Lookup implements DeclTable.
func (d *Declarations) Lookup(libraryID, name string) (Decl, bool) {
	sub, ok := d.byLibrary[libraryID]
	if !ok {
		return Decl{}, false
	}
	decl, ok := sub[name]
	if !ok {
		return Decl{}, false
	}
	return *decl, true
}

// Library returns the interning-table record for a library, creating one on
// first access.
func (d *Declarations) Library(libraryID string) *types.Library {
	lib, ok := d.libraries[libraryID]
	if !ok {
		lib = types.NewLibrary(libraryID)
		d.libraries[libraryID] = lib
	}
	return lib
}

// All returns every registered class-like declaration, in registration
// order — the order the driver walks them in; dependencies between them
// are resolved on demand through ClassResolver.EnsureResolved.
func (d *Declarations) All() []*Decl {
	return d.all
}

// NodeFor returns the syntax node backing a Class record, used by
// components (the Supertype Loader, the Class Resolver) that are handed a
// *types.Class and need to get back to its declaration. Synthetic classes
// (mixin applications) have no syntax node and are never looked up this
// way.
func (d *Declarations) NodeFor(cls *types.Class) (*ast.ClassNode, bool) {
	sub, ok := d.byLibrary[cls.LibraryID]
	if !ok {
		return nil, false
	}
	decl, ok := sub[cls.Name]
	if !ok || decl.Class != cls {
		return nil, false
	}
	return decl.Node, true
}
