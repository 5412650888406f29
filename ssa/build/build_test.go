package build_test

import (
	"bytes"
	"log"
	"os"
	"strings"
	"testing"

	"github.com/nickng/loopinfo/ssa"
	"github.com/nickng/loopinfo/ssa/build"
)

var (
	helloProg = `
	package main
	import "fmt"
	func main() {
		fmt.Println("hello")
	}`
	emptyProg = `package main; func main() {}`

	testdir string
)

func init() {
	testdir, _ = os.Getwd() // Save the dir where the test files are, for the runnable examples.
}

// Test loading from files.
func TestBuildFromFiles(t *testing.T) {
	files := []string{"testdata/main.go", "testdata/foo.go", "testdata/bar.go"}
	conf := build.FromFiles(files)
	info, err := conf.Build()
	if err != nil {
		t.Fatalf("SSA build failed: %v", err)
	}
	mains, err := ssa.MainPkgs(info.Prog)
	if err != nil {
		t.Fatalf("cannot find main package: %v", err)
	}
	for _, main := range mains {
		if main.Func("main") == nil {
			t.Errorf("cannot find main.main()")
		}
		if main.Func("foo") == nil {
			t.Errorf("cannot find main.foo()")
		}
		if main.Func("bar") == nil {
			t.Errorf("cannot find main.bar()")
		}
	}
	if want, got := 1, len(info.SrcPkgs); want != got {
		t.Errorf("expects %d source package but got %d", want, got)
	}
}

// Test loading from files through the full configuration chain.
func TestBuildFromFilesConfigured(t *testing.T) {
	files := []string{"testdata/main.go", "testdata/foo.go", "testdata/bar.go"}
	info, err := build.FromFiles(files).Default().WithTests(false).WithBuildLog(new(bytes.Buffer), 0).Build()
	if err != nil {
		t.Fatalf("SSA build failed: %v", err)
	}
	names := make(map[string]bool)
	for _, fn := range info.Functions() {
		names[fn.Name()] = true
	}
	for _, name := range []string{"main", "foo", "bar"} {
		if !names[name] {
			t.Errorf("cannot find source function %s", name)
		}
	}
}

// Test loading from string/reader.
func TestBuildFromReader(t *testing.T) {
	conf := build.FromReader(strings.NewReader(helloProg))
	info, err := conf.Build()
	if err != nil {
		t.Fatalf("SSA build failed: %v", err)
	}
	mains, err := ssa.MainPkgs(info.Prog)
	if err != nil {
		t.Fatalf("cannot find main package: %v", err)
	}
	for _, main := range mains {
		if main.Func("main") == nil {
			t.Errorf("cannot find main.main()")
		}
	}
}

func TestBuildFromReaderBadSource(t *testing.T) {
	conf := build.FromReader(strings.NewReader(`package main; func main() { undefined() }`))
	if _, err := conf.Build(); err == nil {
		t.Errorf("expects type error from build but got nil")
	}
}

func TestWithBuildLog(t *testing.T) {
	buf := new(bytes.Buffer)
	conf := build.FromReader(strings.NewReader(emptyProg)).WithBuildLog(buf, log.LstdFlags)
	info, err := conf.Build()
	if err != nil {
		t.Fatalf("SSA build failed: %v", err)
	}
	if info.BldLog != buf {
		t.Errorf("Expects build log to propagate to built SSA, but got: %v",
			info.BldLog)
	}
	if !strings.Contains(buf.String(), "Program loaded and type checked") {
		t.Errorf("Build log was set but not written to\nlog contains:\n%s",
			buf.String())
	}
}

func TestAddBadPkg(t *testing.T) {
	confNoFmt := build.FromReader(strings.NewReader(helloProg)).AddBadPkg("fmt", "Fmt adds many pkg dependencies")
	infoNoFmt, err := confNoFmt.Build()
	if err != nil {
		t.Fatalf("SSA build failed: %v", err)
	}
	foundFmt := false
	for _, pkg := range infoNoFmt.IgnoredPkgs {
		if pkg == "fmt" {
			foundFmt = true
		}
	}
	if !foundFmt {
		t.Errorf("Expects fmt to be ignored during build (in config.badPkgs)")
	}
}

func ExampleFromFiles() {
	os.Chdir(testdir)
	files := []string{"testdata/main.go", "testdata/foo.go", "testdata/bar.go"}
	conf := build.FromFiles(files)
	info, err := conf.Build()
	if err != nil {
		log.Fatalf("SSA build failed: %v", err)
	}
	_ = info // Use info here
	// output:
}

func ExampleFromReader() {
	conf := build.FromReader(strings.NewReader("package main; func main() {}"))
	info, err := conf.Build()
	if err != nil {
		log.Fatalf("SSA build failed: %v", err)
	}
	_ = info // Use info here
	// output:
}
