package build

import (
	"fmt"
	"go/ast"
	"go/importer"
	"go/parser"
	"go/token"
	"go/types"
	"io"
	"log"
	"strings"

	"github.com/nickng/loopinfo/ssa"
	"github.com/pkg/errors"
	"golang.org/x/tools/go/packages"
	gossa "golang.org/x/tools/go/ssa"
	"golang.org/x/tools/go/ssa/ssautil"
)

// Mode is the SSA builder mode used for analysis.
const Mode = gossa.BareInits | gossa.InstantiateGenerics

// ErrLoad is returned when the packages have errors.
var ErrLoad = errors.New("packages contain errors")

type Configurer interface {
	Builder
	Default() Configurer
	AddBadPkg(pkg, reason string) Configurer
	WithBuildLog(l io.Writer, flags int) Configurer
	WithTests(tests bool) Configurer
}

// Config represents a build configuration.
type Config struct {
	badPkgs map[string]string
	tests   bool // Include test files (FileSrc only).

	bldLog    io.Writer // Build log.
	bldLFlags int       // Build log flags.

	src any // src points to the program source, *FileSrc or *CachedSrc.
}

func newConfig(src any) *Config {
	return &Config{
		badPkgs:   make(map[string]string),
		bldLog:    io.Discard,
		bldLFlags: log.LstdFlags,
		src:       src,
	}
}

// WithBuildLog adds build log to config.
func (c *Config) WithBuildLog(l io.Writer, flags int) Configurer {
	c.bldLog = l
	c.bldLFlags = flags
	return c
}

// WithTests includes test files of the packages in the build.
func (c *Config) WithTests(tests bool) Configurer {
	c.tests = tests
	return c
}

// AddBadPkg marks a package 'bad' to avoid loading.
func (c *Config) AddBadPkg(pkg, reason string) Configurer {
	c.badPkgs[pkg] = reason
	return c
}

func (c *Config) Build() (*ssa.Info, error) {
	bldLog := log.New(c.bldLog, "ssabuild: ", c.bldLFlags)

	switch src := c.src.(type) {
	case *FileSrc:
		return c.buildFiles(src, bldLog)
	case *CachedSrc:
		if src.err != nil {
			return nil, src.err
		}
		return c.buildCached(src, bldLog)
	default:
		return nil, fmt.Errorf("unsupported source %T", src)
	}
}

func (c *Config) buildFiles(src *FileSrc, bldLog *log.Logger) (*ssa.Info, error) {
	fset := token.NewFileSet()
	lconf := &packages.Config{
		Mode:  packages.LoadAllSyntax,
		Fset:  fset,
		Tests: c.tests,
	}
	initial, err := packages.Load(lconf, src.Files...)
	if err != nil {
		return nil, errors.Wrap(err, "failed to load packages")
	}
	var loadErrs []string
	packages.Visit(initial, nil, func(p *packages.Package) {
		for _, err := range p.Errors {
			loadErrs = append(loadErrs, err.Error())
		}
	})
	if len(loadErrs) > 0 {
		return nil, errors.Wrap(ErrLoad, strings.Join(loadErrs, "; "))
	}
	bldLog.Print("Program loaded and type checked")

	prog, pkgs := ssautil.AllPackages(initial, Mode)

	var ignoredPkgs []string
	for _, pkg := range prog.AllPackages() {
		if reason, badPkg := c.badPkgs[pkg.Pkg.Path()]; badPkg {
			bldLog.Printf("Skip package: %s (%s)", pkg.Pkg.Path(), reason)
			ignoredPkgs = append(ignoredPkgs, pkg.Pkg.Path())
			continue
		}
		pkg.Build()
	}

	var srcPkgs []*gossa.Package
	for _, pkg := range pkgs {
		if pkg != nil {
			srcPkgs = append(srcPkgs, pkg)
		}
	}

	return &ssa.Info{
		IgnoredPkgs: ignoredPkgs,
		FSet:        fset,
		Prog:        prog,
		SrcPkgs:     srcPkgs,
		BldLog:      c.bldLog,
	}, nil
}

// buildCached builds a single file package. Imported packages are loaded from
// export data and have no function bodies.
func (c *Config) buildCached(src *CachedSrc, bldLog *log.Logger) (*ssa.Info, error) {
	fset := token.NewFileSet()
	f, err := parser.ParseFile(fset, "tmp", src.NewReader(), parser.ParseComments)
	if err != nil {
		return nil, errors.Wrap(err, "failed to parse source")
	}
	name := f.Name.Name
	tconf := &types.Config{Importer: importer.Default()}
	pkg, _, err := ssautil.BuildPackage(tconf, fset, types.NewPackage(name, name), []*ast.File{f}, Mode)
	if err != nil {
		return nil, errors.Wrap(err, "failed to type check source")
	}
	bldLog.Print("Program loaded and type checked")

	var ignoredPkgs []string
	for _, imp := range pkg.Pkg.Imports() {
		if reason, badPkg := c.badPkgs[imp.Path()]; badPkg {
			bldLog.Printf("Skip package: %s (%s)", imp.Path(), reason)
			ignoredPkgs = append(ignoredPkgs, imp.Path())
		}
	}

	return &ssa.Info{
		IgnoredPkgs: ignoredPkgs,
		FSet:        fset,
		Prog:        pkg.Prog,
		SrcPkgs:     []*gossa.Package{pkg},
		BldLog:      c.bldLog,
	}, nil
}

// Default returns a default configuration for static analysis.
func (c *Config) Default() Configurer {
	return c.
		AddBadPkg("reflect", "Reflection is not supported").
		AddBadPkg("runtime", "Runtime is ignored for static analysis")
}
