package main

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	docx2pdf "github.com/alnah/go-docx2pdf"
	"github.com/alnah/go-docx2pdf/internal/config"
)

func mustParse(t *testing.T, args ...string) *cliFlags {
	t.Helper()
	f, _, err := parseFlags(args)
	if err != nil {
		t.Fatalf("parseFlags(%v) error = %v", args, err)
	}
	return f
}

func TestRunNoInput(t *testing.T) {
	err := run(mustParse(t), nil, &bytes.Buffer{}, &bytes.Buffer{})
	if !errors.Is(err, ErrNoInput) {
		t.Errorf("run() with no inputs = %v, want ErrNoInput", err)
	}
}

func TestRunInvalidExtension(t *testing.T) {
	for _, input := range []string{"report.pdf", "notes.txt", "archive"} {
		err := run(mustParse(t), []string{input}, &bytes.Buffer{}, &bytes.Buffer{})
		if !errors.Is(err, ErrInvalidExtension) {
			t.Errorf("run(%q) = %v, want ErrInvalidExtension", input, err)
		}
	}
}

func TestRunAcceptsUppercaseExtensionBeforeParams(t *testing.T) {
	// The extension check is case-insensitive; the bad config file proves
	// REPORT.DOCX got past it and failed at the next stage instead.
	err := run(mustParse(t, "-c", filepath.Join(t.TempDir(), "absent.yaml")),
		[]string{"REPORT.DOCX"}, &bytes.Buffer{}, &bytes.Buffer{})
	if !errors.Is(err, config.ErrConfigNotFound) {
		t.Errorf("run() = %v, want ErrConfigNotFound after passing extension check", err)
	}
}

func TestRunBase64RequiresSingleInput(t *testing.T) {
	err := run(mustParse(t, "--base64"), []string{"a.docx", "b.docx"}, &bytes.Buffer{}, &bytes.Buffer{})
	if !errors.Is(err, ErrTooManyInputs) {
		t.Errorf("run() with --base64 and two inputs = %v, want ErrTooManyInputs", err)
	}
	if exitCodeFor(err) != ExitUsage {
		t.Errorf("exit code = %d, want %d: too many inputs is a usage error", exitCodeFor(err), ExitUsage)
	}
}

func TestResolveParamsDefaults(t *testing.T) {
	params, err := resolveParams(mustParse(t))
	if err != nil {
		t.Fatalf("resolveParams() error = %v", err)
	}

	if params.format.Page.Format != docx2pdf.FormatA4 {
		t.Errorf("format = %q, want A4", params.format.Page.Format)
	}
	m := params.format.Page.Margin
	if m.Top != 1 || m.Right != 1 || m.Bottom != 1 || m.Left != 1 {
		t.Errorf("margin = %+v, want 1 inch all sides", m)
	}
	if !params.format.PreserveHeaders {
		t.Error("PreserveHeaders should default to true")
	}
	if params.smart || params.base64Out {
		t.Error("smart/base64 should default to false")
	}
	if params.outputDir != "" {
		t.Errorf("outputDir = %q, want empty", params.outputDir)
	}
}

func TestResolveParamsFlagsOverrideConfig(t *testing.T) {
	dir := t.TempDir()
	configPath := filepath.Join(dir, "conv.yaml")
	content := `
output:
  dir: /from/config
page:
  format: Legal
  margin:
    top: 2
    right: 2
    bottom: 2
    left: 2
headers:
  preserve: false
`
	if err := os.WriteFile(configPath, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}

	params, err := resolveParams(mustParse(t,
		"-c", configPath,
		"--format", "Letter",
		"--margin-top", "0.5",
		"-o", "/from/flag",
	))
	if err != nil {
		t.Fatalf("resolveParams() error = %v", err)
	}

	if params.format.Page.Format != docx2pdf.FormatLetter {
		t.Errorf("format = %q, flag should beat config", params.format.Page.Format)
	}
	if params.format.Page.Margin.Top != 0.5 {
		t.Errorf("margin top = %v, flag should beat config", params.format.Page.Margin.Top)
	}
	if params.format.Page.Margin.Right != 2 {
		t.Errorf("margin right = %v, config value should survive", params.format.Page.Margin.Right)
	}
	if params.format.PreserveHeaders {
		t.Error("config preserve: false should apply when no flag overrides it")
	}
	if params.outputDir != "/from/flag" {
		t.Errorf("outputDir = %q, flag should beat config", params.outputDir)
	}
}

func TestResolveParamsUniformMarginThenSide(t *testing.T) {
	params, err := resolveParams(mustParse(t, "--margin", "0.25", "--margin-left", "1.5"))
	if err != nil {
		t.Fatalf("resolveParams() error = %v", err)
	}

	m := params.format.Page.Margin
	if m.Top != 0.25 || m.Right != 0.25 || m.Bottom != 0.25 {
		t.Errorf("uniform margin not applied: %+v", m)
	}
	if m.Left != 1.5 {
		t.Errorf("left = %v, per-side flag should beat uniform", m.Left)
	}
}

func TestResolveParamsInvalidFormat(t *testing.T) {
	_, err := resolveParams(mustParse(t, "--format", "Tabloid"))
	if !errors.Is(err, docx2pdf.ErrInvalidPageFormat) {
		t.Errorf("resolveParams() = %v, want ErrInvalidPageFormat", err)
	}
}

func TestResolveParamsInvalidMargin(t *testing.T) {
	_, err := resolveParams(mustParse(t, "--margin", "5"))
	if !errors.Is(err, docx2pdf.ErrInvalidMargin) {
		t.Errorf("resolveParams() = %v, want ErrInvalidMargin", err)
	}
}

func TestResolveParamsStyleMap(t *testing.T) {
	path := filepath.Join(t.TempDir(), "styles.map")
	if err := os.WriteFile(path, []byte("p[style-name='Quote'] => blockquote\n"), 0o600); err != nil {
		t.Fatal(err)
	}

	params, err := resolveParams(mustParse(t, "--style-map", path))
	if err != nil {
		t.Fatalf("resolveParams() error = %v", err)
	}
	if len(params.styleMap) != 1 || params.styleMap[0].Tag != "blockquote" {
		t.Errorf("styleMap = %+v", params.styleMap)
	}
}

func TestResolveParamsStyleMapMissingFile(t *testing.T) {
	_, err := resolveParams(mustParse(t, "--style-map", filepath.Join(t.TempDir(), "absent.map")))
	if !errors.Is(err, ErrReadInput) {
		t.Errorf("resolveParams() = %v, want ErrReadInput", err)
	}
}

func TestResolveParamsStyleMapInvalidRule(t *testing.T) {
	path := filepath.Join(t.TempDir(), "styles.map")
	if err := os.WriteFile(path, []byte("nonsense rule\n"), 0o600); err != nil {
		t.Fatal(err)
	}

	_, err := resolveParams(mustParse(t, "--style-map", path))
	if !errors.Is(err, docx2pdf.ErrInvalidStyleMap) {
		t.Errorf("resolveParams() = %v, want ErrInvalidStyleMap", err)
	}
}

func TestResolveParamsSmartFromConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "conv.yaml")
	if err := os.WriteFile(path, []byte("smart: true\n"), 0o600); err != nil {
		t.Fatal(err)
	}

	params, err := resolveParams(mustParse(t, "-c", path))
	if err != nil {
		t.Fatalf("resolveParams() error = %v", err)
	}
	if !params.smart {
		t.Error("smart = false, config should enable it")
	}
}

func TestResolveParamsTimeout(t *testing.T) {
	params, err := resolveParams(mustParse(t, "-t", "90s"))
	if err != nil {
		t.Fatalf("resolveParams() error = %v", err)
	}
	if params.timeout != 90*time.Second {
		t.Errorf("timeout = %v", params.timeout)
	}
}

func TestOutputDirFor(t *testing.T) {
	tests := []struct {
		inputPath string
		outputDir string
		want      string
	}{
		{"docs/report.docx", "", "docs"},
		{"report.docx", "", "."},
		{"docs/report.docx", "/tmp/out", "/tmp/out"},
	}
	for _, tt := range tests {
		if got := outputDirFor(tt.inputPath, tt.outputDir); got != tt.want {
			t.Errorf("outputDirFor(%q, %q) = %q, want %q", tt.inputPath, tt.outputDir, got, tt.want)
		}
	}
}
