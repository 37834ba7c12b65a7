package report

// messageTemplates gives each message kind its human-readable rendering.
// Argument names here are the same ones classres passes in via the
// diagnostic's Args map — kept in one place so wording changes never touch
// resolution logic.
var messageTemplates = map[MessageKind]string{
	MKDuplicateTypeVariableName:        "type parameter `%(name)` is already declared on `%(class)`",
	MKCyclicTypeVariable:               "type parameter `%(name)` has a cyclic bound",
	MKCannotExtendMalformed:            "cannot extend a malformed type",
	MKCannotExtendEnum:                 "cannot extend enum `%(name)`",
	MKClassNameExpected:                "expected a class name, got `%(name)`",
	MKCannotExtend:                     "cannot extend `%(name)`",
	MKCannotImplementMalformed:         "cannot implement a malformed type",
	MKCannotImplementEnum:              "cannot implement enum `%(name)`",
	MKCannotImplement:                  "cannot implement `%(name)`",
	MKDuplicateExtendsImplements:       "`%(name)` is both the superclass and a listed interface",
	MKDuplicateImplements:              "`%(name)` is implemented more than once",
	MKCannotMixin:                      "cannot mix in `%(name)`",
	MKCannotMixinMalformed:             "cannot mix in a malformed type",
	MKCannotMixinEnum:                  "cannot mix in enum `%(name)`",
	MKIllegalMixinCycle:                "mixin application `%(name)` forms a cycle",
	MKCannotFindUnnamedConstructor:     "superclass `%(super)` has no unnamed constructor",
	MKSuperCallToFactory:               "the unnamed constructor of `%(super)` is a factory, not generative",
	MKNoMatchingConstructorForImplicit: "superclass `%(super)`'s unnamed constructor requires arguments",
	MKEmptyEnumDeclaration:             "enum `%(name)` declares no values",
	MKNotAPrefix:                       "`%(name)` is not an import prefix",
	MKCannotResolveType:                "`%(name)` does not name a type",
}
