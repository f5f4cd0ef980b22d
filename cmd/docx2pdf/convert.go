package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	docx2pdf "github.com/alnah/go-docx2pdf"
	"github.com/alnah/go-docx2pdf/internal/config"
)

// Sentinel errors for CLI operations.
var (
	ErrNoInput          = errors.New("no input file specified")
	ErrReadInput        = errors.New("failed to read input file")
	ErrInvalidExtension = errors.New("input file must have .docx extension")
	ErrTooManyInputs    = errors.New("--base64 accepts exactly one input")
)

// conversionParams is the flag/config merge result applied to every input.
type conversionParams struct {
	outputDir string
	base64Out bool
	smart     bool
	format    *docx2pdf.FormatOptions
	timeout   time.Duration
	styleMap  []docx2pdf.StyleRule
	quiet     bool
	verbose   bool
}

// fileResult holds the outcome of a single conversion.
type fileResult struct {
	inputPath  string
	outputPath string
	err        error
	duration   time.Duration
}

// run resolves parameters, converts all inputs, and reports.
func run(flags *cliFlags, inputs []string, stdout, stderr io.Writer) error {
	if len(inputs) == 0 {
		return ErrNoInput
	}
	for _, input := range inputs {
		if strings.ToLower(filepath.Ext(input)) != ".docx" {
			return fmt.Errorf("%w: got %q", ErrInvalidExtension, filepath.Ext(input))
		}
	}

	params, err := resolveParams(flags)
	if err != nil {
		return err
	}

	// Base64 goes to stdout, which only makes sense for a single input.
	if params.base64Out && len(inputs) > 1 {
		return fmt.Errorf("%w: got %d", ErrTooManyInputs, len(inputs))
	}

	opts := []docx2pdf.Option{}
	if params.timeout > 0 {
		opts = append(opts, docx2pdf.WithTimeout(params.timeout))
	}
	if len(params.styleMap) > 0 {
		opts = append(opts, docx2pdf.WithStyleMap(params.styleMap))
	}
	if params.verbose {
		opts = append(opts, docx2pdf.WithLogger(func(format string, args ...any) {
			fmt.Fprintf(stderr, format+"\n", args...)
		}))
	}

	pool := docx2pdf.NewConverterPool(docx2pdf.ResolvePoolSize(flags.workers), opts...)
	defer pool.Close()

	results := convertAll(context.Background(), pool, inputs, params, stdout)

	failures := 0
	var firstErr error
	for _, res := range results {
		if res.err != nil {
			failures++
			if firstErr == nil {
				firstErr = res.err
			}
			fmt.Fprintf(stderr, "error: %s: %v\n", res.inputPath, res.err)
			continue
		}
		if !params.quiet && !params.base64Out {
			fmt.Fprintf(stdout, "Created %s (%s)\n", res.outputPath, res.duration.Round(time.Millisecond))
		}
	}

	if failures > 0 {
		return fmt.Errorf("%d of %d conversions failed: %w", failures, len(results), firstErr)
	}
	return nil
}

// resolveParams merges config file values with flags; flags win.
func resolveParams(flags *cliFlags) (*conversionParams, error) {
	cfg := config.DefaultConfig()
	if flags.config != "" {
		loaded, err := config.Load(flags.config)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}

	format := docx2pdf.DefaultFormatOptions()
	if cfg.Page.Format != "" {
		format.Page.Format = cfg.Page.Format
	}
	format.Page.Margin = docx2pdf.Margin{
		Top:    cfg.Page.Margin.Top,
		Right:  cfg.Page.Margin.Right,
		Bottom: cfg.Page.Margin.Bottom,
		Left:   cfg.Page.Margin.Left,
	}
	format.PreserveHeaders = cfg.PreserveHeaders()

	if flags.format != "" {
		format.Page.Format = flags.format
	}
	if flags.margin != marginSentinel {
		format.Page.Margin = docx2pdf.Margin{
			Top: flags.margin, Right: flags.margin, Bottom: flags.margin, Left: flags.margin,
		}
	}
	if flags.marginTop != marginSentinel {
		format.Page.Margin.Top = flags.marginTop
	}
	if flags.marginRight != marginSentinel {
		format.Page.Margin.Right = flags.marginRight
	}
	if flags.marginBottom != marginSentinel {
		format.Page.Margin.Bottom = flags.marginBottom
	}
	if flags.marginLeft != marginSentinel {
		format.Page.Margin.Left = flags.marginLeft
	}
	if flags.noHeaders {
		format.PreserveHeaders = false
	}
	if err := format.Validate(); err != nil {
		return nil, err
	}

	params := &conversionParams{
		outputDir: flags.outputDir,
		base64Out: flags.base64Out,
		smart:     flags.smart || cfg.Smart,
		format:    format,
		timeout:   flags.timeout,
		quiet:     flags.quiet,
		verbose:   flags.verbose,
	}
	if params.outputDir == "" {
		params.outputDir = cfg.Output.Dir
	}

	styleMapPath := flags.styleMap
	if styleMapPath == "" {
		styleMapPath = cfg.StyleMap
	}
	if styleMapPath != "" {
		data, err := os.ReadFile(styleMapPath) // #nosec G304 -- user-provided path
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrReadInput, err)
		}
		rules, err := docx2pdf.ParseStyleMap(string(data))
		if err != nil {
			return nil, err
		}
		params.styleMap = rules
	}

	return params, nil
}

// convertAll processes inputs concurrently, bounded by the pool size.
func convertAll(ctx context.Context, pool *docx2pdf.ConverterPool, inputs []string, params *conversionParams, stdout io.Writer) []fileResult {
	concurrency := pool.Size()
	if concurrency > len(inputs) {
		concurrency = len(inputs)
	}

	results := make([]fileResult, len(inputs))
	jobs := make(chan int, len(inputs))
	var wg sync.WaitGroup

	for w := 0; w < concurrency; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()

			conv := pool.Acquire()
			defer pool.Release(conv)

			for idx := range jobs {
				results[idx] = convertOne(ctx, conv, inputs[idx], params, stdout)
			}
		}()
	}

	for i := range inputs {
		jobs <- i
	}
	close(jobs)
	wg.Wait()

	return results
}

// convertOne converts a single input file.
func convertOne(ctx context.Context, conv *docx2pdf.Converter, inputPath string, params *conversionParams, stdout io.Writer) fileResult {
	start := time.Now()
	res := fileResult{inputPath: inputPath}

	doc, err := os.ReadFile(inputPath) // #nosec G304 -- user-provided path
	if err != nil {
		res.err = fmt.Errorf("%w: %v", ErrReadInput, err)
		return res
	}

	opts := &docx2pdf.ConvertOptions{
		ReturnType: docx2pdf.ReturnFile,
		OutputDir:  outputDirFor(inputPath, params.outputDir),
	}
	if params.base64Out {
		opts = &docx2pdf.ConvertOptions{ReturnType: docx2pdf.ReturnBase64}
	}

	var result *docx2pdf.Result
	if params.smart {
		result, err = conv.SmartConvert(ctx, doc, filepath.Base(inputPath), opts)
	} else {
		result, err = conv.Convert(ctx, doc, filepath.Base(inputPath), opts, params.format)
	}
	if err != nil {
		res.err = err
		return res
	}

	if params.base64Out {
		// Decode-check is deliberately skipped; the payload goes out as-is.
		fmt.Fprintln(stdout, result.Base64)
		res.outputPath = result.Filename
	} else {
		res.outputPath = result.Filename
	}
	res.duration = time.Since(start)
	return res
}

// outputDirFor resolves where a given input's PDF lands: the explicit
// output dir when set, otherwise next to the input.
func outputDirFor(inputPath, outputDir string) string {
	if outputDir != "" {
		return outputDir
	}
	return filepath.Dir(inputPath)
}
