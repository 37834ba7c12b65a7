package types

import (
	"strings"

	"chaiclass/common"
	"chaiclass/report"
)

// ClassKind distinguishes the four shapes a class-like declaration can take
// after resolution (spec §3's Data Model). Unlike ast.ClassKind, this also
// covers synthetic mixin applications, which never exist in source.
type ClassKind int

const (
	KindRegular ClassKind = iota
	KindEnum
	KindNamedMixinApplication
	KindSyntheticMixinApplication
)

// ResolutionState tracks a Class's progress through the Class Resolver
// pipeline (spec §3, §5).
type ResolutionState int

const (
	StateUnstarted ResolutionState = iota
	StateStarted
	StateDone
)

// LoadState tracks a Class's progress through the Supertype Loader
// (spec §5's ordering guarantee).
type LoadState int

const (
	LoadUnstarted LoadState = iota
	LoadStarted
	LoadDone
)

// TypeParam is one type parameter of a class (spec §3).
type TypeParam struct {
	// OwningClassID + Index together form this type parameter's identity,
	// stable across the synthetic renaming mixin applications perform.
	OwningClassID common.ID
	Index         int

	Name string

	// Bound is the resolved bound; defaults to Dynamic (standing in for the
	// top type) when no bound annotation was present in source.
	Bound *ResolvedType

	// Color supports the bound-cycle walk (spec §4.3 step 1): White until
	// visited, Grey while the current walk has it on the stack, Black once
	// fully checked. A cycle is reported exactly once, at the type
	// parameter the walk started from.
	Color Color
}

// Class is the mutable class-declaration record (spec §3's Data Model).
// It is created once (by whatever plays the parser's role) and thereafter
// mutated only by the Class Resolver, under the single-writer invariant of
// spec §5.
type Class struct {
	ID        common.ID
	Name      string
	LibraryID string
	Kind      ClassKind

	TypeParams []*TypeParam

	ResolutionState    ResolutionState
	SupertypeLoadState LoadState

	// Supertype is set exactly once, except for the root class, which has
	// none.
	Supertype *ResolvedType

	// Interfaces is set exactly once (an empty, non-nil slice for "none").
	Interfaces []*ResolvedType

	// MixinType is set only when Kind is a mixin application (named or
	// synthetic); it is the resolved type of the mixin this link in the
	// chain applies.
	MixinType *ResolvedType

	// MixinColor supports the mixin-chain cycle walk (spec §4.4). Only
	// meaningful on mixin-application classes.
	MixinColor Color

	// LinearizedSupertypesAndSelf is set exactly once by the Linearization
	// Builder (spec §4.5): self first, root last, each class identity once.
	LinearizedSupertypesAndSelf []*ResolvedType

	HasIncompleteHierarchy bool

	Constructors []*Constructor

	// OtherMembers is opaque to this core (spec §3): fields, methods, and
	// anything else member resolution handles downstream.
	OtherMembers []any

	Span *report.TextPosition
}

// IsRoot reports whether this class is the designated root of the
// hierarchy (conventionally "Object"): the one class with no supertype.
func (c *Class) IsRoot() bool {
	return c.Supertype == nil && c.ResolutionState == StateDone
}

// Constructor is a class constructor, declared or synthesized (spec §3,
// §4.3 step 4).
type Constructor struct {
	// Name is empty for the unnamed constructor.
	Name string

	Params []ConstructorParam

	// Generative is false for factory constructors (spec's Generative
	// Constructor glossary entry): a generative constructor always
	// produces a fresh instance of its declaring class.
	Generative bool

	Public bool

	// Synthesized is true when this constructor was not written in source:
	// either a default zero-arg constructor, a mixin-application forwarder,
	// or an erroneous placeholder.
	Synthesized bool

	// Erroneous is true for the placeholder installed when default
	// constructor synthesis failed (spec §4.3 step 4): no usable superclass
	// constructor was found, it was a factory, or it required arguments.
	Erroneous bool

	// ForwardsTo is the superclass constructor this one forwards to, when
	// Synthesized && !Erroneous.
	ForwardsTo *Constructor

	Owner common.ID
}

// ConstructorParam mirrors ast.ConstructorParam's shape (name + named-ness)
// without the types package importing ast: the Class Resolver copies
// parameters over by value when it builds a Constructor record.
type ConstructorParam struct {
	Name  string
	Named bool
}

// -----------------------------------------------------------------------------

// ResolvedTypeTag discriminates the ResolvedType variant (spec §3).
type ResolvedTypeTag int

const (
	// TagInstantiation: a class instantiated with type arguments.
	TagInstantiation ResolvedTypeTag = iota
	// TagTypeVariable: a reference to an in-scope type parameter.
	TagTypeVariable
	// TagDynamic: the dynamic-type sentinel.
	TagDynamic
	// TagMalformed: the malformed-type sentinel, carrying the diagnostic
	// that produced it.
	TagMalformed
)

// ResolvedType is the tagged variant from spec §3: a class instantiation,
// a type-variable reference, dynamic, or malformed.
type ResolvedType struct {
	Tag ResolvedTypeTag

	// Valid when Tag == TagInstantiation.
	Class     *Class
	TypeArgs  []*ResolvedType

	// Valid when Tag == TagTypeVariable.
	Variable *TypeParam

	// Valid when Tag == TagMalformed: the message kind that produced this
	// sentinel, for diagnostics that need to explain why a downstream
	// operation also failed.
	MalformedReason report.MessageKind
}

// Dynamic is the shared dynamic-type sentinel.
func Dynamic() *ResolvedType {
	return &ResolvedType{Tag: TagDynamic}
}

// Malformed builds a malformed-type sentinel carrying the diagnostic kind
// that produced it.
func Malformed(reason report.MessageKind) *ResolvedType {
	return &ResolvedType{Tag: TagMalformed, MalformedReason: reason}
}

// Instantiation builds a class-instantiation ResolvedType.
func Instantiation(class *Class, args []*ResolvedType) *ResolvedType {
	return &ResolvedType{Tag: TagInstantiation, Class: class, TypeArgs: args}
}

// TypeVariableRef builds a type-variable-reference ResolvedType.
func TypeVariableRef(tv *TypeParam) *ResolvedType {
	return &ResolvedType{Tag: TagTypeVariable, Variable: tv}
}

// IsMalformed reports whether this type is the malformed sentinel.
func (rt *ResolvedType) IsMalformed() bool {
	return rt != nil && rt.Tag == TagMalformed
}

// IsInterfaceType reports whether this type is usable as an interface:
// a class instantiation naming a non-enum class. Spec §4.3 invokes this
// same validation for both the supertype and every implements-clause entry.
func (rt *ResolvedType) IsInterfaceType() bool {
	return rt != nil && rt.Tag == TagInstantiation && rt.Class != nil && rt.Class.Kind != KindEnum
}

// Repr renders a resolved type back to source-like notation, used in
// diagnostics and tests.
func (rt *ResolvedType) Repr() string {
	if rt == nil {
		return "<nil>"
	}

	switch rt.Tag {
	case TagDynamic:
		return "dynamic"
	case TagMalformed:
		return "<malformed>"
	case TagTypeVariable:
		return rt.Variable.Name
	case TagInstantiation:
		if len(rt.TypeArgs) == 0 {
			return rt.Class.Name
		}
		var sb strings.Builder
		sb.WriteString(rt.Class.Name)
		sb.WriteByte('<')
		for i, arg := range rt.TypeArgs {
			if i > 0 {
				sb.WriteString(", ")
			}
			sb.WriteString(arg.Repr())
		}
		sb.WriteByte('>')
		return sb.String()
	}
	return "<unknown>"
}

// SameClassIdentity reports whether two instantiations name the same class
// declaration, ignoring type arguments — used by the Class Resolver's
// duplicate-extends-implements and duplicate-implements checks.
func SameClassIdentity(a, b *ResolvedType) bool {
	return a != nil && b != nil && a.Tag == TagInstantiation && b.Tag == TagInstantiation && a.Class == b.Class
}
