package ssa

import (
	"regexp"
	"strings"

	"github.com/pkg/errors"
	"golang.org/x/tools/go/ssa"
)

var (
	parenPath = regexp.MustCompile(`\((?P<pkg>[^)]+)\).(?P<fn>.+)`)
	quotePath = regexp.MustCompile(`"(?P<pkg>[^)]+)".(?P<fn>.+)`)
)

// FindFunc parses path (e.g. "github.com/nickng/loopinfo/ssa".MainPkgs) and
// returns Function body in SSA IR.
func (info *Info) FindFunc(path string) (*ssa.Function, error) {
	pkgPath, fnName := parseFuncPath(path)
	for _, f := range info.Functions() {
		if f.Pkg != nil && f.Pkg.Pkg.Path() == pkgPath && f.Name() == fnName {
			return f, nil
		}
	}
	return nil, errors.Wrapf(ErrNoFunc, "find %s", path)
}

// MatchFuncs returns the functions whose name matches the regular expression
// pattern. An empty pattern matches all functions.
func MatchFuncs(fns []*ssa.Function, pattern string) ([]*ssa.Function, error) {
	if pattern == "" {
		return fns, nil
	}
	re, err := regexp.Compile(pattern)
	if err != nil {
		return nil, errors.Wrap(err, "bad function filter")
	}
	var matched []*ssa.Function
	for _, fn := range fns {
		if re.MatchString(fn.String()) {
			matched = append(matched, fn)
		}
	}
	return matched, nil
}

// parseFuncPath splits path to package and function segments.
// Does not handle complex functions with receivers.
func parseFuncPath(path string) (pkgPath, fnName string) {
	if len(path) < 1 {
		return "", ""
	}
	switch path[0] {
	case '(':
		submatches := parenPath.FindStringSubmatch(path)
		if len(submatches) >= 3 {
			return submatches[1], submatches[2]
		}
	case '"':
		submatches := quotePath.FindStringSubmatch(path)
		if len(submatches) >= 3 {
			return submatches[1], submatches[2]
		}
	default:
		if i := strings.LastIndex(path, "."); i > 0 {
			return path[:i], path[i+1:]
		}
	}
	return "", path
}
