// Command loopinfo reports the loop structure of Go programs.
//
// For every loop of the selected functions loopinfo prints a pre-order
// identifier, its nesting depth and the number of blocks, instructions,
// atomic operations and branches it contains.
package main

import (
	"fmt"
	"io"
	"log"
	"os"

	"github.com/fatih/color"
	"github.com/nickng/loopinfo/instr"
	"github.com/nickng/loopinfo/internal/config"
	"github.com/nickng/loopinfo/loopstat"
	"github.com/nickng/loopinfo/report"
	"github.com/nickng/loopinfo/ssa"
	"github.com/nickng/loopinfo/ssa/build"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	gossa "golang.org/x/tools/go/ssa"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

// flags which are not part of Config.
type options struct {
	configPath string
	buildLog   string
	funcs      []string
}

func newRootCmd() *cobra.Command {
	v := config.New()
	var opts options

	root := &cobra.Command{
		Use:   "loopinfo [flags] file.go [files.go...]",
		Short: "Report the loop structure of Go programs",
		Long: `loopinfo is a tool for reporting loops of Go source code.

Each loop is reported with a run-wide identifier, its nesting depth, whether it
has sub-loops, and the number of blocks, instructions, atomic operations and
branches it contains. Block and branch counts exclude direct sub-loops,
instruction and atomic counts include them.`,
		Args:          cobra.MinimumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return handle(cmd, runLoops(cmd, v, opts, args))
		},
	}

	pf := root.PersistentFlags()
	pf.StringVar(&opts.configPath, "config", "", "Specify config file (default: ./"+config.Name+".yaml)")
	pf.StringVar(&opts.buildLog, "build-log", "", "Specify build log file (use '-' for stderr)")
	pf.StringP("output", "o", "", "Specify output file (default: stdout)")
	pf.Bool("tests", false, "Include test files")
	pf.String("functions", config.AllFuncs, "Functions to analyse (all|reachable)")
	pf.String("callgraph", "static", "Call graph for reachable functions (static|cha|rta)")
	pf.String("filter", "", "Only analyse functions matching regexp")

	f := root.Flags()
	f.StringP("format", "f", report.Text, "Report format (text|json|yaml|msgpack)")
	f.String("log", "", "Specify analysis log file (use '-' for stderr)")
	f.Bool("color", false, "Colour text report")
	f.Bool("summary", false, "Append summary to text report")
	f.Bool("strict", false, "Validate loop forests")
	f.Int("workers", 1, "Number of functions analysed concurrently")
	f.Int("start-id", 0, "First loop identifier")
	f.StringSlice("atomic-pkg", nil, "Additional package of atomic operations")

	bind(v, pf, "output", "tests", "functions", "callgraph", "filter")
	bind(v, f, "format", "log", "color", "summary", "strict", "workers")
	mustBind(v, "start_id", f.Lookup("start-id"))
	mustBind(v, "atomic_packages", f.Lookup("atomic-pkg"))

	ssaCmd := &cobra.Command{
		Use:           "ssa [flags] file.go [files.go...]",
		Short:         "Print SSA IR of Go source code",
		Args:          cobra.MinimumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return handle(cmd, runSSA(cmd, v, opts, args))
		},
	}
	ssaCmd.Flags().StringSliceVar(&opts.funcs, "func", nil, `Specify the function to view (format: "import/path".FuncName)`)
	root.AddCommand(ssaCmd)

	return root
}

func handle(cmd *cobra.Command, err error) error {
	if err != nil {
		fmt.Fprintf(cmd.ErrOrStderr(), "loopinfo: %v\n", err)
	}
	return err
}

// runLoops analyses the loops of the program in files.
func runLoops(cmd *cobra.Command, v *viper.Viper, opts options, files []string) error {
	cfg, err := config.Load(v, opts.configPath)
	if err != nil {
		return err
	}
	color.NoColor = !cfg.Color

	info, closeLog, err := buildSSA(cfg, opts, files)
	if err != nil {
		return err
	}
	defer closeLog()
	fns, err := selectFuncs(info, cfg)
	if err != nil {
		return err
	}

	out, closeOut, err := openOutput(cmd, cfg.Output)
	if err != nil {
		return err
	}
	defer closeOut()
	emitter, err := report.New(cfg.Format, out, report.Options{Color: cfg.Color, Summary: cfg.Summary})
	if err != nil {
		return err
	}

	a := loopstat.New(fns, emitter)
	a.Classifier = instr.New(cfg.AtomicPackages...)
	a.StartID = cfg.StartID
	a.Strict = cfg.Strict
	a.Workers = cfg.Workers
	if cfg.Log != "" {
		if err := a.AddLogFiles(logPath(cfg.Log)); err != nil {
			return err
		}
	}
	return a.Analyse()
}

// runSSA prints the SSA IR of the program in files.
func runSSA(cmd *cobra.Command, v *viper.Viper, opts options, files []string) error {
	cfg, err := config.Load(v, opts.configPath)
	if err != nil {
		return err
	}
	info, closeLog, err := buildSSA(cfg, opts, files)
	if err != nil {
		return err
	}
	defer closeLog()

	out, closeOut, err := openOutput(cmd, cfg.Output)
	if err != nil {
		return err
	}
	defer closeOut()

	if len(opts.funcs) > 0 {
		for _, path := range opts.funcs {
			if _, err := info.WriteFunc(out, path); err != nil {
				return errors.Wrap(err, "cannot write SSA")
			}
		}
		return nil
	}
	if cfg.Filter == "" && cfg.Functions == config.AllFuncs {
		_, err := info.WriteTo(out)
		return errors.Wrap(err, "cannot write SSA")
	}
	fns, err := selectFuncs(info, cfg)
	if err != nil {
		return err
	}
	_, err = ssa.WriteFuncs(out, fns)
	return errors.Wrap(err, "cannot write SSA")
}

func buildSSA(cfg *config.Config, opts options, files []string) (*ssa.Info, func(), error) {
	conf := build.FromFiles(files).Default().WithTests(cfg.Tests)
	closeLog := func() {}
	switch opts.buildLog {
	case "":
	case "-":
		conf = conf.WithBuildLog(os.Stderr, log.LstdFlags)
	default:
		f, err := os.Create(opts.buildLog)
		if err != nil {
			return nil, nil, errors.Wrapf(err, "cannot create build log %s", opts.buildLog)
		}
		closeLog = func() { f.Close() }
		conf = conf.WithBuildLog(f, log.LstdFlags)
	}
	info, err := conf.Build()
	if err != nil {
		closeLog()
		return nil, nil, errors.Wrap(err, "cannot build SSA from files")
	}
	return info, closeLog, nil
}

// selectFuncs returns the functions of info chosen by cfg, in source order.
func selectFuncs(info *ssa.Info, cfg *config.Config) ([]*gossa.Function, error) {
	fns := info.Functions()
	if cfg.Functions == config.ReachableFuncs {
		cg, err := info.BuildCallGraph(cfg.CallGraph)
		if err != nil {
			return nil, err
		}
		if fns, err = cg.Reachable(fns); err != nil {
			return nil, err
		}
	}
	return ssa.MatchFuncs(fns, cfg.Filter)
}

func openOutput(cmd *cobra.Command, path string) (io.Writer, func(), error) {
	if path == "" {
		return cmd.OutOrStdout(), func() {}, nil
	}
	f, err := os.Create(path)
	if err != nil {
		return nil, nil, errors.Wrapf(err, "cannot create output file %s", path)
	}
	return f, func() { f.Close() }, nil
}

func logPath(path string) string {
	if path == "-" {
		return "stderr"
	}
	return path
}
