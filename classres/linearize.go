package classres

import (
	"chaiclass/common"
	"chaiclass/types"

	"github.com/benbjohnson/immutable"
)

// LinearizationBuilder implements spec §4.5: for each class it accumulates
// an ordered, identity-deduplicated list of every ancestor (self first,
// root last), substituting type arguments through each recursive step so
// that an ancestor reached through two different instantiations of the
// same generic class is recognised as the same entry regardless of which
// path found it first.
//
// Grounded on cottand-ile's util/hset package and its callers in
// frontend/types/type_definition.go: an immutable.Set gives O(1) identity
// membership checks while a plain slice keeps insertion order, the same
// split hset.HSet draws between its underlying map and its iteration
// order.
type LinearizationBuilder struct {
	// Root is the designated root class, compared by identity rather than
	// through Class.IsRoot(): the Class Resolver invokes Linearize before
	// it marks cls done, so IsRoot()'s ResolutionState check would not yet
	// see the root class as itself.
	Root *types.Class
}

// NewLinearizationBuilder creates a Linearization Builder anchored to the
// given root class.
func NewLinearizationBuilder(root *types.Class) *LinearizationBuilder {
	return &LinearizationBuilder{Root: root}
}

// Linearize computes cls.LinearizedSupertypesAndSelf. It assumes every
// class cls's supertype and interfaces transitively name has already been
// linearized. The driver walks declarations in registration order; it is
// the Class Resolver and the Mixin Expander calling EnsureResolved on each
// class they name, before cls itself is linearized, that guarantees this.
func (b *LinearizationBuilder) Linearize(cls *types.Class) {
	if cls == b.Root {
		cls.LinearizedSupertypesAndSelf = []*types.ResolvedType{types.Instantiation(cls, nil)}
		return
	}

	order := make([]*types.ResolvedType, 0, 8)
	seen := immutable.NewSet[common.ID](immutable.NewHasher(common.ID(0)))

	add := func(rt *types.ResolvedType) {
		// The root is held back and appended once at the very end.
		if rt == nil || rt.Tag != types.TagInstantiation || rt.Class == nil || rt.Class == b.Root {
			return
		}
		if seen.Has(rt.Class.ID) {
			return
		}
		seen = seen.Add(rt.Class.ID)
		order = append(order, rt)
	}

	add(types.Instantiation(cls, nil))

	if cls.Supertype != nil {
		add(cls.Supertype)
	}
	for _, iface := range cls.Interfaces {
		add(iface)
	}

	if cls.Supertype != nil {
		for _, ancestor := range reinstantiatedAncestors(cls.Supertype) {
			add(ancestor)
		}
	}
	for _, iface := range cls.Interfaces {
		for _, ancestor := range reinstantiatedAncestors(iface) {
			add(ancestor)
		}
	}

	cls.LinearizedSupertypesAndSelf = append(order, types.Instantiation(b.Root, nil))
}

// reinstantiatedAncestors re-expresses use.Class's own linearization
// (computed in terms of use.Class's own type parameters) in terms of the
// type arguments use actually supplies. Without this, an ancestor shared
// by two differently-instantiated paths would carry whichever path's type
// parameter references happened to be in scope when that ancestor's class
// first linearized itself, rather than the arguments this particular use
// site needs.
func reinstantiatedAncestors(use *types.ResolvedType) []*types.ResolvedType {
	if use == nil || use.Tag != types.TagInstantiation || use.Class == nil {
		return nil
	}
	owner := use.Class
	if len(owner.TypeParams) == 0 || len(use.TypeArgs) == 0 {
		return owner.LinearizedSupertypesAndSelf
	}
	out := make([]*types.ResolvedType, len(owner.LinearizedSupertypesAndSelf))
	for i, ancestor := range owner.LinearizedSupertypesAndSelf {
		out[i] = substituteTypeParams(ancestor, owner.TypeParams, use.TypeArgs)
	}
	return out
}
