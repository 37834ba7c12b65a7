package classres

import "chaiclass/types"

// substituteTypeParams rewrites every type-variable reference to one of
// `from`'s type parameters into the corresponding entry of `to`, recursing
// through instantiation arguments. It is how the non-sharing mixin
// interning strategy (spec §4.4 (a)) re-homes a supertype/mixin annotation
// onto a synthetic intermediate's own, freshly renamed type parameters.
func substituteTypeParams(rt *types.ResolvedType, from []*types.TypeParam, to []*types.ResolvedType) *types.ResolvedType {
	if rt == nil {
		return nil
	}

	switch rt.Tag {
	case types.TagTypeVariable:
		for i, tv := range from {
			if tv == rt.Variable {
				return to[i]
			}
		}
		return rt
	case types.TagInstantiation:
		if len(rt.TypeArgs) == 0 {
			return rt
		}
		args := make([]*types.ResolvedType, len(rt.TypeArgs))
		changed := false
		for i, arg := range rt.TypeArgs {
			args[i] = substituteTypeParams(arg, from, to)
			if args[i] != arg {
				changed = true
			}
		}
		if !changed {
			return rt
		}
		return types.Instantiation(rt.Class, args)
	default:
		return rt
	}
}
