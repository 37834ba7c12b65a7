package types

// Color is the three-color marker from the teacher's infinite-type
// checker (`bootstrap/depm/infinite.go`), generalized here into one reusable
// type used independently across three unrelated graphs (spec §1: "cycle
// detection in three independent dimensions"):
//
//   - the supertype-naming graph, where it is embodied by Class's
//     SupertypeLoadState (unstarted/started/done lines up with
//     white/grey/black one-for-one — see the Supertype Loader in
//     classres/load.go);
//   - the mixin-application chain, via Class.MixinColor;
//   - the type-variable bound chain, via TypeParam.Color.
//
// A White node hasn't been visited. Grey means the walk currently has it on
// the stack — revisiting a Grey node is the cycle. Black means it (and
// everything reachable from it) has already been fully checked and should
// not be re-walked.
type Color byte

const (
	ColorWhite Color = iota
	ColorGrey
	ColorBlack
)
