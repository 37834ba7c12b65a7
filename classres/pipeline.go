package classres

import (
	"chaiclass/common"
	"chaiclass/types"
)

// Pipeline bundles every collaborator the System Overview's dependency
// order names — Name Resolver Façade → Type-Expression Resolver →
// Supertype Loader → Class Resolver → Linearization Builder — wired
// exactly that way, plus the driver that walks them over a whole
// declaration table. Building this by hand (rather than through one
// constructor) is what a full compiler front end would otherwise
// duplicate at every call site; the demo CLI and the test suite both use
// this instead.
type Pipeline struct {
	Decls    *Declarations
	Scopes   *StaticScopeProvider
	Facade   *NameResolverFacade
	TypeExpr *TypeExpressionResolver
	Loader   *SupertypeLoader
	Mixins   *MixinExpander
	Linear   *LinearizationBuilder
	Resolver *ClassResolver
	Driver   *Driver
}

// NewPipeline wires a full resolution pipeline over decls, already
// populated with every class-like declaration by the caller, rooted at
// root. imports supplies each library's import-prefix bindings for the
// scope provider (spec §6's ScopeProvider collaborator); ids is the
// driver-owned monotonic id allocator (spec §5); cfg and registry are the
// policy object and feature-registration sink spec §6 and §4.3 describe.
func NewPipeline(
	decls *Declarations,
	imports map[string]map[string]string,
	ids *common.IDAllocator,
	root *types.Class,
	cfg *common.Config,
	registry common.Registry,
) *Pipeline {
	scopes := NewStaticScopeProvider(decls, imports)
	facade := NewNameResolverFacade(decls)
	typeExpr := NewTypeExpressionResolver(facade)
	loader := NewSupertypeLoader(decls, scopes, root)
	linear := NewLinearizationBuilder(root)

	resolver := &ClassResolver{
		Decls:    decls,
		Scopes:   scopes,
		TypeExpr: typeExpr,
		Linear:   linear,
		Config:   cfg,
		Registry: registry,
		Root:     root,
	}
	mixins := NewMixinExpander(decls, ids, typeExpr, cfg, resolver, linear)
	resolver.Mixins = mixins

	driver := NewDriver(decls, loader, resolver)

	return &Pipeline{
		Decls:    decls,
		Scopes:   scopes,
		Facade:   facade,
		TypeExpr: typeExpr,
		Loader:   loader,
		Mixins:   mixins,
		Linear:   linear,
		Resolver: resolver,
		Driver:   driver,
	}
}

// Run executes the pipeline over every declaration, reporting diagnostics
// through reporter.
func (p *Pipeline) Run(reporter DiagnosticReporter) {
	p.Driver.Run(reporter)
}
