package main

import (
	"fmt"
	"time"

	flag "github.com/spf13/pflag"
)

// marginSentinel detects whether a per-side margin flag was explicitly set.
// Valid margins are 0 to 3 inches; -1 is safely outside this range.
const marginSentinel = -1.0

// cliFlags holds all parsed command-line flags.
type cliFlags struct {
	config  string
	quiet   bool
	verbose bool
	version bool
	help    bool

	outputDir string
	base64Out bool

	format       string
	margin       float64
	marginTop    float64
	marginRight  float64
	marginBottom float64
	marginLeft   float64
	noHeaders    bool
	smart        bool
	styleMap     string

	workers int
	timeout time.Duration
}

// newFlagSet builds the pflag set bound to f.
func newFlagSet(f *cliFlags) *flag.FlagSet {
	fs := flag.NewFlagSet("docx2pdf", flag.ContinueOnError)

	fs.StringVarP(&f.config, "config", "c", "", "config file name or path")
	fs.BoolVarP(&f.quiet, "quiet", "q", false, "only show errors")
	fs.BoolVarP(&f.verbose, "verbose", "v", false, "show extraction diagnostics and timing")
	fs.BoolVar(&f.version, "version", false, "print version and exit")
	fs.BoolVarP(&f.help, "help", "h", false, "show help")

	fs.StringVarP(&f.outputDir, "output", "o", "", "output directory (default: alongside input)")
	fs.BoolVar(&f.base64Out, "base64", false, "print base64 PDF to stdout instead of writing a file")

	fs.StringVar(&f.format, "format", "", "page format: A4, Letter, Legal (default A4)")
	fs.Float64Var(&f.margin, "margin", marginSentinel, "margin for all sides in inches (default 1)")
	fs.Float64Var(&f.marginTop, "margin-top", marginSentinel, "top margin in inches")
	fs.Float64Var(&f.marginRight, "margin-right", marginSentinel, "right margin in inches")
	fs.Float64Var(&f.marginBottom, "margin-bottom", marginSentinel, "bottom margin in inches")
	fs.Float64Var(&f.marginLeft, "margin-left", marginSentinel, "left margin in inches")
	fs.BoolVar(&f.noHeaders, "no-headers", false, "disable header/footer placeholders")
	fs.BoolVar(&f.smart, "smart", false, "guess page format and headers from document content")
	fs.StringVar(&f.styleMap, "style-map", "", "path to a style map file")

	fs.IntVarP(&f.workers, "workers", "w", 0, "concurrent conversions (0 = auto)")
	fs.DurationVarP(&f.timeout, "timeout", "t", 0, "per-conversion render timeout (0 = default 30s)")

	fs.Usage = func() { fmt.Fprint(fs.Output(), usageText) }
	return fs
}

// parseFlags parses args (excluding the program name) and returns the flags
// plus remaining positional arguments.
func parseFlags(args []string) (*cliFlags, []string, error) {
	f := &cliFlags{}
	fs := newFlagSet(f)
	if err := fs.Parse(args); err != nil {
		return nil, nil, err
	}
	return f, fs.Args(), nil
}
