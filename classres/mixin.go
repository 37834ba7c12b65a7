package classres

import (
	"chaiclass/ast"
	"chaiclass/common"
	"chaiclass/report"
	"chaiclass/types"
)

// Dependency is the hook the Class Resolver gives the Mixin Expander so
// that, before a link in a mixin chain forwards another class's
// constructors, that class is guaranteed to already be fully resolved
// (spec §5's ordering guarantee extended to mixin superclasses, not just
// named ones).
type Dependency interface {
	EnsureResolved(cls *types.Class, reporter DiagnosticReporter)
}

// MixinExpander implements spec §4.4: turning a `S with M1, ..., Mk` clause
// into a chain of (possibly interned) synthetic intermediates, or — for a
// named mixin application — installing the last link directly on the
// user's own named class.
type MixinExpander struct {
	Decls    *Declarations
	Ids      *common.IDAllocator
	TypeExpr *TypeExpressionResolver
	Config   *common.Config
	Deps     Dependency

	// Linear linearizes each synthetic link as soon as it is built: a
	// synthetic mixin-application class has no syntax node, so it never
	// reaches the driver's declaration loop the way named classes do, and
	// nothing else would ever compute its linearized-supertypes-and-self.
	Linear Linearizer
}

// NewMixinExpander creates an expander wired to the given collaborators.
func NewMixinExpander(decls *Declarations, ids *common.IDAllocator, typeExpr *TypeExpressionResolver, cfg *common.Config, deps Dependency, linear Linearizer) *MixinExpander {
	return &MixinExpander{Decls: decls, Ids: ids, TypeExpr: typeExpr, Config: cfg, Deps: deps, Linear: linear}
}

// Expand resolves clause, which belongs to owner (owner's own type
// parameters are ownerParams). For an anonymous clause (owner is a
// perfectly ordinary class extending `S with M1..Mk`), it installs
// len(clause.Mixins) synthetic intermediates and returns the final one as
// the ResolvedType the caller should install as owner.Supertype. For a
// named mixin application (owner.Kind == KindNamedMixinApplication), it
// installs len(clause.Mixins)-1 synthetic intermediates and sets
// owner.Supertype / owner.MixinType directly, returning nil — spec §4.4's
// "the last step *is* the user's named class".
func (m *MixinExpander) Expand(owner *types.Class, ownerParams []*types.TypeParam, clause *ast.MixinClauseNode, scope *ast.Scope, reporter DiagnosticReporter) *types.ResolvedType {
	named := owner.Kind == types.KindNamedMixinApplication
	sig := newSignatureBuilder(ownerParams, m.Decls, owner.LibraryID)
	ownerParamRefs := typeVariableRefs(ownerParams)

	current := m.TypeExpr.Resolve(clause.Super, scope, scope, owner.LibraryID, reporter)
	// The first link is linearized as soon as it is built, so the clause's
	// superclass must already be resolved (and linearized) by then.
	if current.Tag == types.TagInstantiation && current.Class != owner {
		m.Deps.EnsureResolved(current.Class, reporter)
	}
	chainName := clause.Super.Name

	prevSymbolOrder := annotSymbols(sig, clause.Super)
	cumulative := append([]string{}, prevSymbolOrder...)
	values := valuesFor(prevSymbolOrder, current, map[string]*types.ResolvedType{})

	k := len(clause.Mixins)
	linkCount := k
	if named {
		linkCount = k - 1
	}

	for i := 0; i < linkCount; i++ {
		mixinAnnot := clause.Mixins[i]
		mixinResolved := m.TypeExpr.Resolve(mixinAnnot, scope, scope, owner.LibraryID, reporter)

		// A mixin naming owner itself, mid-chain, is a supertype-naming
		// cycle the Supertype Loader has already reported; don't re-enter
		// owner's own in-progress resolution here.
		if mixinResolved.Tag == types.TagInstantiation && mixinResolved.Class != owner {
			m.Deps.EnsureResolved(mixinResolved.Class, reporter)
		}

		thisSymbols := annotSymbols(sig, mixinAnnot)
		cumulative = mergeDedup(cumulative, thisSymbols)
		values = valuesFor(thisSymbols, mixinResolved, values)

		chainName = chainName + "&" + mixinAnnot.Name

		var ok bool
		current, ok = m.buildOrInternLink(owner.LibraryID, chainName, cumulative, current, prevSymbolOrder, mixinResolved, thisSymbols, ownerParams, ownerParamRefs, values, mixinAnnot.Span, reporter)
		prevSymbolOrder = append([]string{}, cumulative...)

		if !ok {
			break
		}
	}

	if !named {
		return current
	}

	lastAnnot := clause.Mixins[k-1]
	mixinResolved := m.TypeExpr.Resolve(lastAnnot, scope, scope, owner.LibraryID, reporter)

	owner.Supertype = current

	valid, validated := m.validateMixinType(mixinResolved, lastAnnot.Span, reporter)
	if !valid {
		owner.HasIncompleteHierarchy = true
		owner.MixinType = nil
		return nil
	}
	owner.MixinType = validated

	if m.checkMixinCycle(owner) {
		reporter.Report(report.MKIllegalMixinCycle, owner.Span, map[string]any{"name": owner.Name})
		owner.HasIncompleteHierarchy = true
		owner.MixinType = nil
		return nil
	}

	// The mixin type's own ancestors must already be linearized by the time
	// owner is linearized right after Expand returns: nothing else forces
	// this, since resolveExplicitInterfaces only ensures the interfaces it
	// walks itself, not the leading mixin Expand hands it. A self-mixin
	// (owner named as its own mixin type) is already caught by
	// checkMixinCycle above and must not re-enter owner's own resolution.
	if validated.Tag == types.TagInstantiation && validated.Class != owner {
		m.Deps.EnsureResolved(validated.Class, reporter)
	}

	if current.Tag == types.TagInstantiation {
		m.Deps.EnsureResolved(current.Class, reporter)
		m.forwardConstructors(owner, current.Class, owner.LibraryID)
	}

	return nil
}

// buildOrInternLink installs (or, under sharing, reuses) one synthetic
// step of the chain, whose supertype is `current` (the previous step,
// with own-symbol-order prevSymbolOrder) and whose mixin type is
// mixinResolved (with own-symbol-order thisSymbols). It returns ok=false
// when mixinResolved fails the interface-typed validation — spec §4.4's
// "flagged hasIncompleteHierarchy and skips further steps".
func (m *MixinExpander) buildOrInternLink(
	libraryID, chainName string,
	cumulative []string,
	current *types.ResolvedType,
	prevSymbolOrder []string,
	mixinResolved *types.ResolvedType,
	thisSymbols []string,
	ownerParams []*types.TypeParam,
	ownerParamRefs []*types.ResolvedType,
	values map[string]*types.ResolvedType,
	pos *report.TextPosition,
	reporter DiagnosticReporter,
) (*types.ResolvedType, bool) {
	name := "_" + chainName

	if m.Config.MixinSharing {
		lib := m.Decls.Library(libraryID)
		key := name + signatureOf(cumulative)

		link, cached := lib.InternedMixinApplication(key)
		if !cached {
			link = m.newSyntheticClass(libraryID, name, symbolTypeParams(cumulative))
			lib.InternMixinApplication(key, link)

			paramBySymbol := make(map[string]*types.TypeParam, len(cumulative))
			for _, p := range link.TypeParams {
				paramBySymbol[p.Name] = p
			}

			abstractedSuper := abstractInstantiation(current, prevSymbolOrder, paramBySymbol)
			abstractedMixin := abstractInstantiation(mixinResolved, thisSymbols, paramBySymbol)
			m.finishLink(link, abstractedSuper, abstractedMixin, pos, reporter)
			if current.Tag == types.TagInstantiation {
				m.Deps.EnsureResolved(current.Class, reporter)
				m.forwardConstructors(link, current.Class, libraryID)
			}
		}

		args := make([]*types.ResolvedType, len(cumulative))
		for i, s := range cumulative {
			args[i] = values[s]
		}
		return types.Instantiation(link, args), !link.HasIncompleteHierarchy
	}

	newParams, newRefs := mirrorTypeParams(ownerParams)
	link := m.newSyntheticClass(libraryID, name, newParams)
	substitutedSuper := substituteTypeParams(current, ownerParams, newRefs)
	substitutedMixin := substituteTypeParams(mixinResolved, ownerParams, newRefs)
	m.finishLink(link, substitutedSuper, substitutedMixin, pos, reporter)
	if current.Tag == types.TagInstantiation {
		m.Deps.EnsureResolved(current.Class, reporter)
		m.forwardConstructors(link, current.Class, libraryID)
	}
	return types.Instantiation(link, ownerParamRefs), !link.HasIncompleteHierarchy
}

// finishLink validates the mixin type and installs Supertype/MixinType/
// Interfaces plus the mixin-chain cycle check — the work shared by both
// interning strategies once a class record has been allocated for one
// chain step.
func (m *MixinExpander) finishLink(link *types.Class, super, mixinType *types.ResolvedType, pos *report.TextPosition, reporter DiagnosticReporter) {
	link.Supertype = super

	valid, validated := m.validateMixinType(mixinType, pos, reporter)
	if !valid {
		link.HasIncompleteHierarchy = true
		link.Interfaces = nil
		m.Linear.Linearize(link)
		return
	}

	link.MixinType = validated
	link.Interfaces = []*types.ResolvedType{validated}

	if m.checkMixinCycle(link) {
		reporter.Report(report.MKIllegalMixinCycle, pos, map[string]any{"name": link.Name})
		link.HasIncompleteHierarchy = true
		link.MixinType = nil
	}

	// A synthetic link never passes through the driver's declaration loop
	// (it has no syntax node to be registered under), so nothing else will
	// ever call Linearize on it; it must happen here, once, right after its
	// Supertype and Interfaces are final.
	m.Linear.Linearize(link)
}

// validateMixinType applies the malformed/enum/non-interface checks spec
// §4.4 requires of a mixin type, reusing the cannot-mixin* diagnostic
// family.
func (m *MixinExpander) validateMixinType(rt *types.ResolvedType, pos *report.TextPosition, reporter DiagnosticReporter) (bool, *types.ResolvedType) {
	if rt.IsMalformed() {
		reporter.Report(report.MKCannotMixinMalformed, pos, nil)
		return false, rt
	}
	if rt.Tag == types.TagInstantiation && rt.Class.Kind == types.KindEnum {
		reporter.Report(report.MKCannotMixinEnum, pos, map[string]any{"name": rt.Class.Name})
		return false, rt
	}
	if !rt.IsInterfaceType() {
		reporter.Report(report.MKCannotMixin, pos, map[string]any{"name": rt.Repr()})
		return false, rt
	}
	return true, rt
}

// checkMixinCycle walks the mixin chain starting at cls using the shared
// three-color algorithm (grounded the same way as the bound-cycle and
// supertype-naming walks): Grey means "on the current walk's stack" —
// reaching a Grey node again is the cycle; Black means already fully
// verified acyclic, so a shared, previously-checked link short-circuits.
func (m *MixinExpander) checkMixinCycle(cls *types.Class) bool {
	switch cls.MixinColor {
	case types.ColorBlack:
		return false
	case types.ColorGrey:
		return true
	}

	cls.MixinColor = types.ColorGrey
	cyclic := false
	if cls.MixinType != nil && cls.MixinType.Tag == types.TagInstantiation {
		cyclic = m.checkMixinCycle(cls.MixinType.Class)
	}
	cls.MixinColor = types.ColorBlack
	return cyclic
}

// forwardConstructors installs one forwarding constructor on link for each
// generative constructor of super that is visible from link's library
// (spec §4.4: "cross-library private constructors are not forwarded").
func (m *MixinExpander) forwardConstructors(link *types.Class, super *types.Class, libraryID string) {
	for _, ctor := range super.Constructors {
		if !ctor.Generative {
			continue
		}
		if !ctor.Public && super.LibraryID != libraryID {
			continue
		}
		link.Constructors = append(link.Constructors, &types.Constructor{
			Name:        ctor.Name,
			Params:      ctor.Params,
			Generative:  true,
			Public:      ctor.Public,
			Synthesized: true,
			ForwardsTo:  ctor,
			Owner:       link.ID,
		})
	}
}

// newSyntheticClass allocates a fresh synthetic-mixin-application Class
// with the given type parameters. It has no syntax node, so nothing else
// ever calls SupertypeLoader.Load on it — both load and resolution state
// start out Done.
func (m *MixinExpander) newSyntheticClass(libraryID, name string, params []*types.TypeParam) *types.Class {
	cls := &types.Class{
		ID:                 m.Ids.Next(),
		Name:               name,
		LibraryID:          libraryID,
		Kind:               types.KindSyntheticMixinApplication,
		TypeParams:         params,
		SupertypeLoadState: types.LoadDone,
		ResolutionState:    types.StateDone,
	}
	for _, p := range params {
		p.OwningClassID = cls.ID
	}
	return cls
}

// mirrorTypeParams builds a fresh set of type parameters with the same
// names (and, once substituted, the same bounds) as ownerParams but a new
// identity — the non-sharing strategy's "renamed identities" (spec §4.4
// (a)).
func mirrorTypeParams(ownerParams []*types.TypeParam) ([]*types.TypeParam, []*types.ResolvedType) {
	newParams := make([]*types.TypeParam, len(ownerParams))
	refs := make([]*types.ResolvedType, len(ownerParams))
	for i, p := range ownerParams {
		newParams[i] = &types.TypeParam{Index: i, Name: p.Name, Bound: types.Dynamic()}
		refs[i] = types.TypeVariableRef(newParams[i])
	}
	for i, p := range ownerParams {
		newParams[i].Bound = substituteTypeParams(p.Bound, ownerParams, refs)
	}
	return newParams, refs
}

// symbolTypeParams builds the type-parameter list for a newly-interned
// shared synthetic class: one parameter per distinct free-variable symbol
// accumulated so far, named by that symbol (spec §4.4 (b)).
func symbolTypeParams(symbols []string) []*types.TypeParam {
	params := make([]*types.TypeParam, len(symbols))
	for i, s := range symbols {
		params[i] = &types.TypeParam{Index: i, Name: s, Bound: types.Dynamic()}
	}
	return params
}

// signatureOf renders a symbol list as the "&"-joined structural signature
// used to key the interning table.
func signatureOf(symbols []string) string {
	s := ""
	for i, sym := range symbols {
		if i > 0 {
			s += "&"
		}
		s += sym
	}
	return s
}

// annotSymbols computes, once and in position order, the free-variable
// symbol each of annot's own type arguments is abstracted to.
func annotSymbols(sig *signatureBuilder, annot *ast.TypeAnnotation) []string {
	if annot == nil || len(annot.Args) == 0 {
		return nil
	}
	symbols := make([]string, len(annot.Args))
	for i, arg := range annot.Args {
		symbols[i] = sig.argSymbol(arg)
	}
	return symbols
}

// mergeDedup appends every entry of additions not already present in
// existing, preserving first-occurrence order — shared free variables
// (the same raw generic class named twice) collapse to one slot.
func mergeDedup(existing, additions []string) []string {
	seen := make(map[string]bool, len(existing))
	for _, s := range existing {
		seen[s] = true
	}
	out := existing
	for _, s := range additions {
		if !seen[s] {
			seen[s] = true
			out = append(out, s)
		}
	}
	return out
}

// valuesFor records, for each symbol newly seen at this step, the actual
// resolved type argument that filled it here — used to instantiate a
// (possibly shared) synthetic link with this call site's concrete
// arguments.
func valuesFor(symbols []string, resolved *types.ResolvedType, values map[string]*types.ResolvedType) map[string]*types.ResolvedType {
	if resolved == nil || resolved.Tag != types.TagInstantiation || len(symbols) == 0 {
		return values
	}
	for i, s := range symbols {
		if _, ok := values[s]; ok {
			continue
		}
		if i < len(resolved.TypeArgs) {
			values[s] = resolved.TypeArgs[i]
		} else {
			values[s] = types.Dynamic()
		}
	}
	return values
}

// abstractInstantiation rewrites resolved's top-level type arguments (in
// symbolOrder, position for position) into references to the matching
// local type parameter — turning a site-concrete instantiation into the
// shape a shared synthetic class stores internally.
func abstractInstantiation(resolved *types.ResolvedType, symbolOrder []string, paramBySymbol map[string]*types.TypeParam) *types.ResolvedType {
	if resolved == nil || resolved.Tag != types.TagInstantiation || len(symbolOrder) == 0 {
		return resolved
	}
	args := make([]*types.ResolvedType, len(symbolOrder))
	for i, s := range symbolOrder {
		args[i] = types.TypeVariableRef(paramBySymbol[s])
	}
	return types.Instantiation(resolved.Class, args)
}

// typeVariableRefs builds a TypeVariableRef for each of params, in order —
// the non-sharing strategy's "pass owner's own parameters straight
// through" instantiation arguments.
func typeVariableRefs(params []*types.TypeParam) []*types.ResolvedType {
	refs := make([]*types.ResolvedType, len(params))
	for i, p := range params {
		refs[i] = types.TypeVariableRef(p)
	}
	return refs
}
