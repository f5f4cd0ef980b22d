package main

import (
	"testing"
	"time"
)

func TestParseFlagsDefaults(t *testing.T) {
	f, args, err := parseFlags([]string{"report.docx"})
	if err != nil {
		t.Fatalf("parseFlags() error = %v", err)
	}

	if len(args) != 1 || args[0] != "report.docx" {
		t.Errorf("positional args = %v", args)
	}
	if f.format != "" {
		t.Errorf("format = %q, want unset", f.format)
	}
	if f.margin != marginSentinel || f.marginTop != marginSentinel {
		t.Errorf("margins should default to the sentinel, got %v / %v", f.margin, f.marginTop)
	}
	if f.workers != 0 || f.timeout != 0 {
		t.Errorf("workers/timeout = %d/%v, want zero defaults", f.workers, f.timeout)
	}
	if f.quiet || f.verbose || f.base64Out || f.noHeaders || f.smart {
		t.Error("boolean flags should default to false")
	}
}

func TestParseFlagsAllSet(t *testing.T) {
	f, args, err := parseFlags([]string{
		"-c", "print",
		"-o", "/tmp/out",
		"--format", "Letter",
		"--margin", "0.5",
		"--margin-top", "1.5",
		"--no-headers",
		"--smart",
		"--style-map", "styles.map",
		"-w", "4",
		"-t", "45s",
		"-q",
		"a.docx", "b.docx",
	})
	if err != nil {
		t.Fatalf("parseFlags() error = %v", err)
	}

	if f.config != "print" {
		t.Errorf("config = %q", f.config)
	}
	if f.outputDir != "/tmp/out" {
		t.Errorf("outputDir = %q", f.outputDir)
	}
	if f.format != "Letter" {
		t.Errorf("format = %q", f.format)
	}
	if f.margin != 0.5 {
		t.Errorf("margin = %v", f.margin)
	}
	if f.marginTop != 1.5 {
		t.Errorf("marginTop = %v", f.marginTop)
	}
	if f.marginRight != marginSentinel {
		t.Errorf("marginRight = %v, want sentinel", f.marginRight)
	}
	if !f.noHeaders || !f.smart || !f.quiet {
		t.Error("boolean flags did not parse")
	}
	if f.styleMap != "styles.map" {
		t.Errorf("styleMap = %q", f.styleMap)
	}
	if f.workers != 4 {
		t.Errorf("workers = %d", f.workers)
	}
	if f.timeout != 45*time.Second {
		t.Errorf("timeout = %v", f.timeout)
	}
	if len(args) != 2 {
		t.Errorf("positional args = %v", args)
	}
}

func TestParseFlagsUnknownFlag(t *testing.T) {
	if _, _, err := parseFlags([]string{"--papersize", "A4"}); err == nil {
		t.Error("parseFlags() should fail on unknown flags")
	}
}

func TestParseFlagsInterspersed(t *testing.T) {
	f, args, err := parseFlags([]string{"a.docx", "--format", "Legal", "b.docx"})
	if err != nil {
		t.Fatalf("parseFlags() error = %v", err)
	}
	if f.format != "Legal" {
		t.Errorf("format = %q", f.format)
	}
	if len(args) != 2 {
		t.Errorf("positional args = %v, want both inputs", args)
	}
}
