package report

// MessageKind is the closed set of diagnostics the resolution core can
// raise. It mirrors the teacher's LMK* (log-message-kind) enumeration in
// `src/logging/api.go`, but the member names are drawn directly from the
// hierarchy-resolution message catalog rather than chai's own compiler
// stages.
type MessageKind int

const (
	MKDuplicateTypeVariableName MessageKind = iota
	MKCyclicTypeVariable
	MKCannotExtendMalformed
	MKCannotExtendEnum
	MKClassNameExpected
	MKCannotExtend
	MKCannotImplementMalformed
	MKCannotImplementEnum
	MKCannotImplement
	MKDuplicateExtendsImplements
	MKDuplicateImplements
	MKCannotMixin
	MKCannotMixinMalformed
	MKCannotMixinEnum
	MKIllegalMixinCycle
	MKCannotFindUnnamedConstructor
	MKSuperCallToFactory
	MKNoMatchingConstructorForImplicit
	MKEmptyEnumDeclaration
	MKNotAPrefix
	MKCannotResolveType
)

// kindNames gives every message kind its wire name: the hyphenated strings
// spec.md §6 lists as the closed catalog. Keeping them in one table (rather
// than scattering string literals across classres) is what lets
// DiagnosticReporter implementations key off a stable string.
var kindNames = map[MessageKind]string{
	MKDuplicateTypeVariableName:        "duplicate-type-variable-name",
	MKCyclicTypeVariable:               "cyclic-type-variable",
	MKCannotExtendMalformed:            "cannot-extend-malformed",
	MKCannotExtendEnum:                 "cannot-extend-enum",
	MKClassNameExpected:                "class-name-expected",
	MKCannotExtend:                     "cannot-extend",
	MKCannotImplementMalformed:         "cannot-implement-malformed",
	MKCannotImplementEnum:              "cannot-implement-enum",
	MKCannotImplement:                  "cannot-implement",
	MKDuplicateExtendsImplements:       "duplicate-extends-implements",
	MKDuplicateImplements:              "duplicate-implements",
	MKCannotMixin:                      "cannot-mixin",
	MKCannotMixinMalformed:             "cannot-mixin-malformed",
	MKCannotMixinEnum:                  "cannot-mixin-enum",
	MKIllegalMixinCycle:                "illegal-mixin-cycle",
	MKCannotFindUnnamedConstructor:     "cannot-find-unnamed-constructor",
	MKSuperCallToFactory:               "super-call-to-factory",
	MKNoMatchingConstructorForImplicit: "no-matching-constructor-for-implicit",
	MKEmptyEnumDeclaration:             "empty-enum-declaration",
	MKNotAPrefix:                       "not-a-prefix",
	MKCannotResolveType:                "cannot-resolve-type",
}

func (mk MessageKind) String() string {
	if name, ok := kindNames[mk]; ok {
		return name
	}

	return "unknown-message-kind"
}
