package ast

import "chaiclass/report"

// This package is the `ParseTree` collaborator from spec.md §6: a read-only
// tree of declarations produced by a parser that is explicitly out of scope
// for this core (§1). The node shapes here carry exactly the information
// the resolver needs — class name, type-parameter nodes with optional
// bounds, an optional superclass annotation, an optional mixin-application
// clause, an optional interfaces list, and a member list with constructors
// distinguishable from other members — modeled after the teacher's
// `bootstrap/ast/def.go` definition nodes.

// ClassKind distinguishes the surface forms a class-like declaration can
// take in source, before resolution assigns the richer
// `types.ClassKind` (which also covers synthetic mixin applications that
// never appear in source at all).
type ClassKind int

const (
	// ClassKindRegular is an ordinary `class C ...` declaration.
	ClassKindRegular ClassKind = iota
	// ClassKindEnum is an `enum E ...` declaration.
	ClassKindEnum
	// ClassKindNamedMixinApplication is `class N = S with M1, ...;`.
	ClassKindNamedMixinApplication
)

// ClassNode is the parsed shape of one class-like declaration.
type ClassNode struct {
	Name       string
	Kind       ClassKind
	LibraryID  string
	TypeParams []*TypeParamNode

	// Superclass is the plain `extends S` annotation, if present. Mutually
	// exclusive with MixinClause.
	Superclass *TypeAnnotation

	// MixinClause is present when the declaration is (or extends via) a
	// `S with M1, M2, ...` form — anonymous when it appears directly inside
	// an `extends` clause, or as the right-hand side of a named mixin
	// application `class N = S with M1, ..., Mk`.
	MixinClause *MixinClauseNode

	Interfaces []*TypeAnnotation

	Members []*MemberNode

	Span *report.TextPosition
}

// MixinClauseNode is the `S with M1, ..., Mk` clause (spec §4.4).
type MixinClauseNode struct {
	Super  *TypeAnnotation
	Mixins []*TypeAnnotation
}

// TypeParamNode is one `<T>` or `<T: Bound>` declaration.
type TypeParamNode struct {
	Name  string
	Bound *TypeAnnotation // nil when no bound was written
	Span  *report.TextPosition
}

// TypeAnnotation is a syntactic nominal type reference: a simple or
// `prefix.name` identifier, optionally applied to type arguments.
type TypeAnnotation struct {
	Prefix string // empty when the reference is unprefixed
	Name   string
	Args   []*TypeAnnotation // empty for a raw reference
	Span   *report.TextPosition
}

// MemberNode is a class member: either a constructor or "other" (fields,
// methods — opaque to this core per the Data Model in spec §3).
type MemberNode struct {
	IsConstructor bool

	// ConstructorName is empty for the unnamed constructor.
	ConstructorName string

	// Params is the constructor's parameter list, used only to determine
	// arity and to build forwarding calls during mixin-application
	// constructor synthesis (spec §4.4). Nil for non-constructor members.
	Params []ConstructorParam

	// Public indicates whether the member (and for constructors, whether
	// cross-library forwarding is allowed — spec §4.4 "cross-library
	// private constructors are not forwarded") is visible outside its
	// declaring library.
	Public bool

	Span *report.TextPosition
}

// ConstructorParam is one positional or named constructor parameter.
type ConstructorParam struct {
	Name  string
	Named bool
}
