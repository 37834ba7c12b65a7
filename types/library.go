package types

// Library holds the mixin-application interning table for one library
// (spec §3's Data Model, §4.4 strategy (b)): a mapping from a structural
// signature string to the synthetic-mixin-application class it produced.
// Shared synthetic classes live here, scoped per library, to keep the
// generated hierarchy compact when the sharing interning strategy is
// enabled.
type Library struct {
	ID string

	// MixinApplications is the interning table. Only ever written by the
	// mixin expansion under the single-writer invariant (spec §5); reads
	// and writes never interleave because the resolver is single-threaded.
	MixinApplications map[string]*Class
}

// NewLibrary creates an empty library record.
func NewLibrary(id string) *Library {
	return &Library{
		ID:                id,
		MixinApplications: make(map[string]*Class),
	}
}

// InternedMixinApplication looks up a previously-interned synthetic class
// by structural signature.
func (l *Library) InternedMixinApplication(signature string) (*Class, bool) {
	cls, ok := l.MixinApplications[signature]
	return cls, ok
}

// InternMixinApplication records a newly-created synthetic class under its
// structural signature.
func (l *Library) InternMixinApplication(signature string, cls *Class) {
	l.MixinApplications[signature] = cls
}
