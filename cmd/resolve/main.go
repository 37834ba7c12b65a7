// Command resolve is a thin demo driver for the class-hierarchy resolution
// core: since parsing is explicitly out of scope for the core (spec §1),
// this command builds a small in-memory fixture hierarchy itself rather
// than reading source, runs the full resolution pipeline over it, and
// prints the resolved linearization of every class. It exists to exercise
// the pipeline end to end the way `bootstrap/cmd/execute.go` exercises the
// teacher's compiler, not to replace a real front end.
package main

import (
	"fmt"
	"os"
	"strings"

	"chaiclass/ast"
	"chaiclass/classres"
	"chaiclass/common"
	"chaiclass/report"
	"chaiclass/types"

	"github.com/ComedicChimera/olive"
)

func main() {
	cli := olive.NewCLI("resolve", "resolve a demo class hierarchy and print its linearizations", true)
	logLvlArg := cli.AddSelectorArg("loglevel", "ll", "the resolver log level", false, []string{"silent", "error", "warn", "verbose"})
	logLvlArg.SetDefaultValue("verbose")
	cli.AddStringArg("config", "c", "path to a resolver.toml configuration file", false)
	cli.AddFlag("sharing", "s", "force mixin-application sharing on regardless of config")

	result, err := olive.ParseArgs(cli, os.Args)
	if err != nil {
		fmt.Fprintln(os.Stderr, err.Error())
		os.Exit(1)
	}

	logLevel := logLevelFromName(result.Arguments["loglevel"].(string))

	cfgPath := "resolver.toml"
	if v, ok := result.Arguments["config"]; ok {
		cfgPath = v.(string)
	}
	cfg, err := common.LoadConfig(cfgPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, err.Error())
		os.Exit(1)
	}
	if _, ok := result.Arguments["sharing"]; ok {
		cfg.MixinSharing = true
	}

	reporter := report.NewReporter(logLevel)
	registry := common.NewRecordingRegistry()

	report.BeginPhase("building demo fixture")
	decls, ids, root, order := buildFixture()
	report.EndPhase(true)

	pipeline := classres.NewPipeline(decls, nil, ids, root, cfg, registry)

	report.BeginPhase("resolving hierarchy")
	pipeline.Run(&classres.FileReporter{Reporter: reporter, File: "<demo>"})
	report.EndPhase(reporter.ShouldProceed())
	reporter.FlushWarnings()

	if reporter.ShouldProceed() {
		for _, name := range order {
			decl, _ := decls.Lookup("demo", name)
			if decl.Kind != classres.DeclKindClass {
				continue
			}
			printLinearization(decl.Class)
		}
	}

	report.Summarize(reporter.ErrorCount(), 0)
	if !reporter.ShouldProceed() {
		os.Exit(1)
	}
}

func logLevelFromName(name string) int {
	switch name {
	case "silent":
		return report.LogLevelSilent
	case "error":
		return report.LogLevelError
	case "warn":
		return report.LogLevelWarning
	default:
		return report.LogLevelVerbose
	}
}

func printLinearization(cls *types.Class) {
	names := make([]string, len(cls.LinearizedSupertypesAndSelf))
	for i, rt := range cls.LinearizedSupertypesAndSelf {
		names[i] = rt.Repr()
	}
	fmt.Printf("%s: %s\n", cls.Name, strings.Join(names, " -> "))
}

// buildFixture constructs a small demo hierarchy in library "demo":
//
//	Object (root)
//	Animal                extends Object
//	Flyable, Swimmable    extends Object
//	Duck                  extends Animal with Flyable, Swimmable
//	FlyingFish            = Animal with Swimmable, Flyable (named mixin application)
//	Container<T: Animal>  extends Object
//	DuckPond              extends Container<Duck>
//	Season                enum { spring, summer, fall, winter }
//
// It returns the declaration table, the id allocator used to build it (so
// the pipeline continues minting ids from the same sequence for any
// synthetic mixin-application classes it creates), the root class, and the
// declaration order to print in.
func buildFixture() (*classres.Declarations, *common.IDAllocator, *types.Class, []string) {
	decls := classres.NewDeclarations()
	ids := common.NewIDAllocator()

	const lib = "demo"

	root := decls.Add(ids, &ast.ClassNode{Name: "Object", LibraryID: lib, Kind: ast.ClassKindRegular})

	decls.Add(ids, &ast.ClassNode{Name: "Animal", LibraryID: lib, Kind: ast.ClassKindRegular})
	decls.Add(ids, &ast.ClassNode{Name: "Flyable", LibraryID: lib, Kind: ast.ClassKindRegular})
	decls.Add(ids, &ast.ClassNode{Name: "Swimmable", LibraryID: lib, Kind: ast.ClassKindRegular})

	decls.Add(ids, &ast.ClassNode{
		Name:      "Duck",
		LibraryID: lib,
		Kind:      ast.ClassKindRegular,
		MixinClause: &ast.MixinClauseNode{
			Super: &ast.TypeAnnotation{Name: "Animal"},
			Mixins: []*ast.TypeAnnotation{
				{Name: "Flyable"},
				{Name: "Swimmable"},
			},
		},
	})

	decls.Add(ids, &ast.ClassNode{
		Name:      "FlyingFish",
		LibraryID: lib,
		Kind:      ast.ClassKindNamedMixinApplication,
		MixinClause: &ast.MixinClauseNode{
			Super: &ast.TypeAnnotation{Name: "Animal"},
			Mixins: []*ast.TypeAnnotation{
				{Name: "Swimmable"},
				{Name: "Flyable"},
			},
		},
	})

	decls.Add(ids, &ast.ClassNode{
		Name:      "Container",
		LibraryID: lib,
		Kind:      ast.ClassKindRegular,
		TypeParams: []*ast.TypeParamNode{
			{Name: "T", Bound: &ast.TypeAnnotation{Name: "Animal"}},
		},
	})

	decls.Add(ids, &ast.ClassNode{
		Name:      "DuckPond",
		LibraryID: lib,
		Kind:      ast.ClassKindRegular,
		Superclass: &ast.TypeAnnotation{
			Name: "Container",
			Args: []*ast.TypeAnnotation{{Name: "Duck"}},
		},
	})

	decls.Add(ids, &ast.ClassNode{
		Name:      "Season",
		LibraryID: lib,
		Kind:      ast.ClassKindEnum,
		Members: []*ast.MemberNode{
			{Public: true}, {Public: true}, {Public: true}, {Public: true},
		},
	})

	order := []string{"Object", "Animal", "Flyable", "Swimmable", "Duck", "FlyingFish", "Container", "DuckPond", "Season"}
	return decls, ids, root, order
}
