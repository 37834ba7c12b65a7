package classres

import (
	"chaiclass/ast"
	"chaiclass/common"
	"chaiclass/report"
	"chaiclass/types"
)

// Deferrer lets the Class Resolver register a bound-cycle check that can
// only run once every type variable it might touch has a bound installed
// (spec §5's "deferred actions... queued against the subject class and
// flushed after it transitions to done. The queue is flushed by the
// driver, not by the resolver").
type Deferrer interface {
	Defer(fn func(reporter DiagnosticReporter))
}

// Linearizer computes the linearized-supertypes-and-self set for an
// already-supertype/interfaces-resolved class (spec §4.5).
type Linearizer interface {
	Linearize(cls *types.Class)
}

// ClassResolver is the heart of the system (spec §4.3): for one class at a
// time, it resolves type-parameter bounds, the supertype and interfaces
// lists, expands any mixin clause, synthesizes a default constructor when
// none is declared, and invokes linearization.
type ClassResolver struct {
	Decls    *Declarations
	Scopes   ast.ScopeProvider
	TypeExpr *TypeExpressionResolver
	Mixins   *MixinExpander
	Linear   Linearizer
	Config   *common.Config
	Registry common.Registry
	Defer    Deferrer
	Root     *types.Class

	// DefaultSuperclass is the backend hook from spec §6: when a class
	// names no supertype at all, this decides what it extends (normally
	// the root; a backend may override for special classes).
	DefaultSuperclass func(cls *types.Class) *types.Class

	// IsTargetSpecificLibrary is the backend hook exempting additional,
	// backend-declared libraries from the blacklist policy beyond the
	// ones Config already names.
	IsTargetSpecificLibrary func(libraryID string) bool
}

// EnsureResolved implements Dependency: resolves cls if it has not already
// reached state done. A class still Started here would mean a supertype-
// naming cycle slipped past the Supertype Loader — an internal error, since
// spec §5's ordering guarantee is supposed to rule this out entirely.
func (r *ClassResolver) EnsureResolved(cls *types.Class, reporter DiagnosticReporter) {
	switch cls.ResolutionState {
	case types.StateDone:
		return
	case types.StateStarted:
		report.ReportICE("class resolver re-entered %s while it was already in progress", cls.Name)
		return
	}
	r.Resolve(cls, reporter)
}

// Resolve runs the full pipeline on cls, assumed to be in state unstarted.
func (r *ClassResolver) Resolve(cls *types.Class, reporter DiagnosticReporter) {
	cls.ResolutionState = types.StateStarted

	node, hasNode := r.Decls.NodeFor(cls)

	r.resolveTypeParams(cls, node, reporter)

	if cls.Kind == types.KindEnum {
		r.resolveEnum(cls, node, reporter)
	} else if cls.HasIncompleteHierarchy {
		// The Supertype Loader broke a supertype-naming cycle at cls and
		// already installed the root as its supertype; re-deriving cls's
		// annotations would walk back into that cycle.
		cls.Interfaces = []*types.ResolvedType{}
		r.synthesizeConstructor(cls, node, reporter)
	} else if cls.Kind == types.KindNamedMixinApplication {
		r.Mixins.Expand(cls, cls.TypeParams, node.MixinClause, r.Scopes.ScopeFor(node), reporter)
		r.resolveExplicitInterfaces(cls, node, reporter, cls.MixinType)
	} else if node != nil && node.MixinClause != nil {
		// An anonymous `extends S with M1, ..., Mk` clause on an ordinary
		// class expands exactly like a named mixin application's clause,
		// except the final link becomes this class's own Supertype rather
		// than being absorbed into it (spec §4.4).
		cls.Supertype = r.Mixins.Expand(cls, cls.TypeParams, node.MixinClause, r.Scopes.ScopeFor(node), reporter)
		r.resolveExplicitInterfaces(cls, node, reporter, nil)
		r.synthesizeConstructor(cls, node, reporter)
	} else {
		r.resolveSupertype(cls, node, hasNode, reporter)
		r.resolveExplicitInterfaces(cls, node, reporter, nil)
		r.synthesizeConstructor(cls, node, reporter)
	}

	r.Linear.Linearize(cls)

	cls.ResolutionState = types.StateDone
}

// resolveTypeParams is spec §4.3 step 1.
func (r *ClassResolver) resolveTypeParams(cls *types.Class, node *ast.ClassNode, reporter DiagnosticReporter) {
	if node == nil {
		return
	}

	scope := r.Scopes.ScopeFor(node)

	seen := make(map[string]bool, len(cls.TypeParams))
	for i, tv := range cls.TypeParams {
		if seen[tv.Name] {
			reporter.Report(report.MKDuplicateTypeVariableName, node.TypeParams[i].Span, map[string]any{"name": tv.Name, "class": cls.Name})
		} else {
			seen[tv.Name] = true
		}

		boundAnnot := node.TypeParams[i].Bound
		if boundAnnot != nil {
			tv.Bound = r.TypeExpr.Resolve(boundAnnot, scope, scope, cls.LibraryID, reporter)
		} else {
			tv.Bound = types.Dynamic()
		}

		tv := tv
		pos := node.TypeParams[i].Span
		r.Defer.Defer(func(reporter DiagnosticReporter) {
			r.checkBoundCycle(tv, pos, reporter)
		})
	}
}

// checkBoundCycle is the deferred action registered per type parameter:
// walk tv → bound (if another type variable) → its bound → …, reporting
// cyclic-type-variable exactly once per cycle (spec §4.3 step 1).
func (r *ClassResolver) checkBoundCycle(tv *types.TypeParam, pos *report.TextPosition, reporter DiagnosticReporter) {
	if tv.Color != types.ColorWhite {
		return
	}
	if r.walkBound(tv) {
		reporter.Report(report.MKCyclicTypeVariable, pos, map[string]any{"name": tv.Name})
	}
}

func (r *ClassResolver) walkBound(tv *types.TypeParam) bool {
	switch tv.Color {
	case types.ColorBlack:
		return false
	case types.ColorGrey:
		return true
	}
	tv.Color = types.ColorGrey
	cyclic := false
	if tv.Bound != nil && tv.Bound.Tag == types.TagTypeVariable {
		cyclic = r.walkBound(tv.Bound.Variable)
	}
	tv.Color = types.ColorBlack
	return cyclic
}

// resolveEnum is spec §4.3's enum handling: no declared supertype (the
// root is used), empty interfaces, an empty body diagnosed but not fatal.
func (r *ClassResolver) resolveEnum(cls *types.Class, node *ast.ClassNode, reporter DiagnosticReporter) {
	if cls != r.Root {
		cls.Supertype = types.Instantiation(r.Root, nil)
	}
	cls.Interfaces = []*types.ResolvedType{}

	if node != nil {
		hasValues := false
		for _, m := range node.Members {
			if !m.IsConstructor {
				hasValues = true
				break
			}
		}
		if !hasValues {
			reporter.Report(report.MKEmptyEnumDeclaration, node.Span, map[string]any{"name": cls.Name})
		}
	}

	r.synthesizeConstructor(cls, node, reporter)
}

// resolveSupertype is spec §4.3 step 2's non-mixin path.
func (r *ClassResolver) resolveSupertype(cls *types.Class, node *ast.ClassNode, hasNode bool, reporter DiagnosticReporter) {
	if cls == r.Root {
		return
	}

	if hasNode && node.Superclass == nil {
		super := r.Root
		if r.DefaultSuperclass != nil {
			super = r.DefaultSuperclass(cls)
		}
		if super == cls {
			return
		}
		r.EnsureResolved(super, reporter)
		cls.Supertype = types.Instantiation(super, defaultArgs(super))
		return
	}

	if !hasNode {
		cls.Supertype = types.Instantiation(r.Root, nil)
		return
	}

	scope := r.Scopes.ScopeFor(node)
	resolved := r.TypeExpr.Resolve(node.Superclass, scope, scope, cls.LibraryID, reporter)
	validated := r.validateTypeUse(resolved, supertypeKinds, node.Superclass.Name, node.Superclass.Span, reporter)

	if validated.Tag == types.TagInstantiation && validated.Class == cls {
		// Self-extension: the Supertype Loader already reported the cycle
		// while breaking it in its own pass, before the Class Resolver ever
		// started on cls. Fall back to the root here too rather than
		// re-entering this class's own in-progress resolution.
		validated = types.Instantiation(r.Root, nil)
	}

	cls.Supertype = validated

	if validated.Tag == types.TagInstantiation && validated.Class != r.Root {
		r.EnsureResolved(validated.Class, reporter)
	}
}

// resolveExplicitInterfaces is spec §4.3 step 3. leadingMixin, when
// non-nil, is a named mixin application's own mixin type: the Round-trip
// property (spec §8) requires it precede the user-written implements
// clause in cls.Interfaces, so it is prepended here before anything else
// is validated against the accumulated list.
func (r *ClassResolver) resolveExplicitInterfaces(cls *types.Class, node *ast.ClassNode, reporter DiagnosticReporter, leadingMixin *types.ResolvedType) {
	cls.Interfaces = []*types.ResolvedType{}
	if leadingMixin != nil {
		cls.Interfaces = append(cls.Interfaces, leadingMixin)
	}

	if node == nil {
		return
	}

	scope := r.Scopes.ScopeFor(node)

	for _, annot := range node.Interfaces {
		resolved := r.TypeExpr.Resolve(annot, scope, scope, cls.LibraryID, reporter)
		validated := r.validateTypeUse(resolved, interfaceKinds, annot.Name, annot.Span, reporter)

		if validated.Tag == types.TagInstantiation && validated.Class == cls {
			// Self-implementation: same reasoning as resolveSupertype's
			// self-extension guard above — already diagnosed by the
			// Supertype Loader, so just fall back rather than re-entering.
			validated = types.Instantiation(r.Root, nil)
		}

		if cls.Supertype != nil && types.SameClassIdentity(validated, cls.Supertype) {
			reporter.Report(report.MKDuplicateExtendsImplements, annot.Span, map[string]any{"name": annot.Name})
		}
		for _, existing := range cls.Interfaces {
			if types.SameClassIdentity(validated, existing) {
				reporter.Report(report.MKDuplicateImplements, annot.Span, map[string]any{"name": annot.Name})
				break
			}
		}

		if validated.Tag == types.TagInstantiation && validated.Class != r.Root {
			r.EnsureResolved(validated.Class, reporter)
		}

		cls.Interfaces = append(cls.Interfaces, validated)
	}
}

type validationKinds struct {
	malformed, enum, nonInterface, blacklist report.MessageKind
}

var supertypeKinds = validationKinds{
	malformed:    report.MKCannotExtendMalformed,
	enum:         report.MKCannotExtendEnum,
	nonInterface: report.MKClassNameExpected,
	blacklist:    report.MKCannotExtend,
}

var interfaceKinds = validationKinds{
	malformed:    report.MKCannotImplementMalformed,
	enum:         report.MKCannotImplementEnum,
	nonInterface: report.MKCannotImplement,
	blacklist:    report.MKCannotImplement,
}

// validateTypeUse applies the shared malformed/enum/non-interface/
// blacklist checks spec §4.3 requires of both the supertype and every
// implements-clause entry, substituting the root class on failure.
func (r *ClassResolver) validateTypeUse(rt *types.ResolvedType, kinds validationKinds, name string, pos *report.TextPosition, reporter DiagnosticReporter) *types.ResolvedType {
	if rt.IsMalformed() {
		reporter.Report(kinds.malformed, pos, map[string]any{"name": name})
		return types.Instantiation(r.Root, nil)
	}
	if rt.Tag == types.TagInstantiation && rt.Class.Kind == types.KindEnum {
		reporter.Report(kinds.enum, pos, map[string]any{"name": name})
		return types.Instantiation(r.Root, nil)
	}
	if rt.Tag != types.TagInstantiation {
		reporter.Report(kinds.nonInterface, pos, map[string]any{"name": name})
		return types.Instantiation(r.Root, nil)
	}
	if r.isBlacklisted(rt.Class) {
		reporter.Report(kinds.blacklist, pos, map[string]any{"name": name})
		return types.Instantiation(r.Root, nil)
	}
	return rt
}

// isBlacklisted implements spec §4.3's blacklist policy.
func (r *ClassResolver) isBlacklisted(cls *types.Class) bool {
	if !r.Config.IsBlacklisted(cls.Name) {
		return false
	}
	if r.Config.IsExemptLibrary(cls.LibraryID) {
		return false
	}
	if r.IsTargetSpecificLibrary != nil && r.IsTargetSpecificLibrary(cls.LibraryID) {
		return false
	}
	return true
}

// synthesizeConstructor is spec §4.3 step 4. When node declares at least
// one constructor, those declared constructors are recorded on cls and
// nothing is synthesized. The root (no supertype) gets a plain zero-arg
// constructor; named mixin applications never reach here, since
// MixinExpander.Expand forwards their superclass's constructors instead.
func (r *ClassResolver) synthesizeConstructor(cls *types.Class, node *ast.ClassNode, reporter DiagnosticReporter) {
	if node != nil {
		declared := false
		for _, m := range node.Members {
			if !m.IsConstructor {
				continue
			}
			params := make([]types.ConstructorParam, len(m.Params))
			for i, p := range m.Params {
				params[i] = types.ConstructorParam(p)
			}
			cls.Constructors = append(cls.Constructors, &types.Constructor{Name: m.ConstructorName, Params: params, Generative: true, Public: m.Public, Owner: cls.ID})
			declared = true
		}
		if declared {
			return
		}
	}

	if cls.Supertype == nil {
		cls.Constructors = append(cls.Constructors, &types.Constructor{
			Generative:  true,
			Public:      true,
			Synthesized: true,
			Owner:       cls.ID,
		})
		return
	}

	super := cls.Supertype.Class
	var found *types.Constructor
	for _, ctor := range super.Constructors {
		if ctor.Name == "" {
			found = ctor
			break
		}
	}

	pos := cls.Span

	switch {
	case found == nil:
		reporter.Report(report.MKCannotFindUnnamedConstructor, pos, map[string]any{"name": cls.Name, "super": super.Name})
		r.installErroneous(cls)
	case !found.Generative:
		reporter.Report(report.MKSuperCallToFactory, pos, map[string]any{"name": cls.Name, "super": super.Name})
		r.installErroneous(cls)
	case len(found.Params) != 0:
		reporter.Report(report.MKNoMatchingConstructorForImplicit, pos, map[string]any{"name": cls.Name, "super": super.Name})
		r.installErroneous(cls)
	default:
		cls.Constructors = append(cls.Constructors, &types.Constructor{
			Generative:  true,
			Public:      found.Public,
			Synthesized: true,
			ForwardsTo:  found,
			Owner:       cls.ID,
		})
	}
}

func (r *ClassResolver) installErroneous(cls *types.Class) {
	r.Registry.RegisterFeature(common.FeatureThrowNoSuchMethod)
	cls.Constructors = append(cls.Constructors, &types.Constructor{
		Generative:  true,
		Public:      true,
		Synthesized: true,
		Erroneous:   true,
		Owner:       cls.ID,
	})
	r.Registry.AttachConstructorError(cls.ID, "no matching constructor for implicit super call")
}

// defaultArgs builds a raw instantiation's argument list (every argument
// dynamic), used when a default superclass is installed without any
// explicit type arguments to apply.
func defaultArgs(cls *types.Class) []*types.ResolvedType {
	args := make([]*types.ResolvedType, len(cls.TypeParams))
	for i := range args {
		args[i] = types.Dynamic()
	}
	return args
}
