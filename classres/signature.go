package classres

import (
	"strconv"
	"strings"

	"chaiclass/ast"
	"chaiclass/types"
)

// signatureBuilder accumulates the structural-signature pieces sharing
// interning strategy (b) of spec §4.4 needs to decide whether two mixin
// expansions are interchangeable: an argument that is one of the enclosing
// class's own type parameters is abstracted to "#Ti"; a raw reference to a
// generic class is abstracted to a fresh "#Uj", shared across every
// occurrence of that same raw class name within one expansion; anything
// else gets its own, never-shared "#Uj".
type signatureBuilder struct {
	ownerParams []*types.TypeParam
	decls       *Declarations
	library     string

	rawFreeVars map[string]string // raw class name -> #Uj already minted
	nextFreeVar int
}

func newSignatureBuilder(ownerParams []*types.TypeParam, decls *Declarations, library string) *signatureBuilder {
	return &signatureBuilder{
		ownerParams: ownerParams,
		decls:       decls,
		library:     library,
		rawFreeVars: make(map[string]string),
	}
}

func (b *signatureBuilder) freshFreeVar() string {
	name := "#U" + strconv.Itoa(b.nextFreeVar)
	b.nextFreeVar++
	return name
}

// argSymbol classifies a single type-argument annotation per the rules
// above.
func (b *signatureBuilder) argSymbol(arg *ast.TypeAnnotation) string {
	if arg.Prefix == "" && len(arg.Args) == 0 {
		for i, tv := range b.ownerParams {
			if tv.Name == arg.Name {
				return "#T" + strconv.Itoa(i)
			}
		}
	}

	if len(arg.Args) == 0 {
		libraryID := b.library
		if arg.Prefix != "" {
			libraryID = arg.Prefix
		}
		if decl, ok := b.decls.Lookup(libraryID, arg.Name); ok && decl.Kind == DeclKindClass && len(decl.Class.TypeParams) > 0 {
			key := libraryID + "." + arg.Name
			if v, ok := b.rawFreeVars[key]; ok {
				return v
			}
			v := b.freshFreeVar()
			b.rawFreeVars[key] = v
			return v
		}
	}

	return b.freshFreeVar()
}

// partFor renders one "&"-joined argument list (the signature contribution
// of a single supertype or mixin annotation).
func (b *signatureBuilder) partFor(annot *ast.TypeAnnotation) string {
	if annot == nil || len(annot.Args) == 0 {
		return ""
	}
	parts := make([]string, len(annot.Args))
	for i, arg := range annot.Args {
		parts[i] = b.argSymbol(arg)
	}
	return strings.Join(parts, "&")
}

// Extend appends one more annotation's signature contribution, separated
// from whatever came before by "^".
func (b *signatureBuilder) Extend(sig string, annot *ast.TypeAnnotation) string {
	part := b.partFor(annot)
	if sig == "" {
		return part
	}
	return sig + "^" + part
}
