package classres

import "chaiclass/ast"

// Driver owns the pieces spec §5 assigns to "the driver" rather than to any
// one resolver component: it walks every registered declaration through the
// Supertype Loader and then the Class Resolver, and it owns and flushes the
// deferred bound-cycle-check queue once every class has reached done.
// Modeled on the teacher's staged-boolean Resolver.Resolve
// (bootstrap/resolve/resolver.go, bootstrap/depm/resolver.go): each phase
// runs to completion over the whole declaration table before the next one
// starts, rather than being interleaved per class.
type Driver struct {
	Decls    *Declarations
	Loader   *SupertypeLoader
	Resolver *ClassResolver

	deferred []func(reporter DiagnosticReporter)
}

// NewDriver creates a driver over decls, wiring itself as resolver's
// Deferrer so resolveTypeParams' bound-cycle checks land in this queue.
func NewDriver(decls *Declarations, loader *SupertypeLoader, resolver *ClassResolver) *Driver {
	d := &Driver{Decls: decls, Loader: loader, Resolver: resolver}
	resolver.Defer = d
	return d
}

// Defer implements Deferrer.
func (d *Driver) Defer(fn func(reporter DiagnosticReporter)) {
	d.deferred = append(d.deferred, fn)
}

// Run executes the full pipeline: load, resolve, then flush deferred
// checks. It is safe to call once per driver; a second call would re-walk
// already-done classes as no-ops but re-run an empty deferred queue, which
// is harmless but pointless.
func (d *Driver) Run(reporter DiagnosticReporter) {
	for _, decl := range d.Decls.All() {
		if decl.Kind == DeclKindClass {
			d.Loader.Load(decl.Class, reporter)
		}
	}

	for _, decl := range d.Decls.All() {
		if decl.Kind == DeclKindClass {
			d.Resolver.EnsureResolved(decl.Class, reporter)
		}
	}

	queue := d.deferred
	d.deferred = nil
	for _, fn := range queue {
		fn(reporter)
	}
}

var _ ast.ScopeProvider = (*StaticScopeProvider)(nil)
