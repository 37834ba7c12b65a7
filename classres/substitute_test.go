package classres

import (
	"testing"

	"chaiclass/types"

	"github.com/stretchr/testify/require"
)

func TestSubstituteTypeParamsReplacesMatchingVariable(t *testing.T) {
	tv := &types.TypeParam{Name: "T"}
	duck := &types.Class{ID: 1, Name: "Duck"}

	rt := types.TypeVariableRef(tv)
	out := substituteTypeParams(rt, []*types.TypeParam{tv}, []*types.ResolvedType{types.Instantiation(duck, nil)})

	require.Equal(t, types.TagInstantiation, out.Tag)
	require.Same(t, duck, out.Class)
}

func TestSubstituteTypeParamsLeavesUnrelatedVariableAlone(t *testing.T) {
	tv := &types.TypeParam{Name: "T"}
	other := &types.TypeParam{Name: "U"}

	rt := types.TypeVariableRef(other)
	out := substituteTypeParams(rt, []*types.TypeParam{tv}, []*types.ResolvedType{types.Dynamic()})

	require.Same(t, other, out.Variable)
}

func TestSubstituteTypeParamsRecursesThroughInstantiationArgs(t *testing.T) {
	tv := &types.TypeParam{Name: "T"}
	duck := &types.Class{ID: 1, Name: "Duck"}
	box := &types.Class{ID: 2, Name: "Box"}

	rt := types.Instantiation(box, []*types.ResolvedType{types.TypeVariableRef(tv)})
	out := substituteTypeParams(rt, []*types.TypeParam{tv}, []*types.ResolvedType{types.Instantiation(duck, nil)})

	require.Same(t, box, out.Class)
	require.Len(t, out.TypeArgs, 1)
	require.Same(t, duck, out.TypeArgs[0].Class)
}

func TestSubstituteTypeParamsReturnsSameInstanceWhenNothingChanges(t *testing.T) {
	tv := &types.TypeParam{Name: "T"}
	box := &types.Class{ID: 1, Name: "Box"}

	rt := types.Instantiation(box, []*types.ResolvedType{types.Dynamic()})
	out := substituteTypeParams(rt, []*types.TypeParam{tv}, []*types.ResolvedType{types.Dynamic()})

	require.Same(t, rt, out)
}

func TestSubstituteTypeParamsHandlesNil(t *testing.T) {
	require.Nil(t, substituteTypeParams(nil, nil, nil))
}
