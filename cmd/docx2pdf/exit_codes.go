package main

import (
	"errors"
	"os"

	docx2pdf "github.com/alnah/go-docx2pdf"
	"github.com/alnah/go-docx2pdf/internal/config"
)

// Exit codes for the docx2pdf CLI.
// Follows Unix conventions: 0=success, 1=general, 2=usage, and custom codes < 126.
const (
	ExitSuccess = 0 // Successful conversion
	ExitGeneral = 1 // General/unexpected error
	ExitUsage   = 2 // Invalid flags, config, or validation
	ExitIO      = 3 // File not found, permission denied
	ExitBrowser = 4 // Browser/Chrome errors
)

// exitCodeFor returns the appropriate exit code for an error.
// It uses errors.Is to check wrapped errors, so callers must wrap with %w.
func exitCodeFor(err error) int {
	if err == nil {
		return ExitSuccess
	}

	// Browser errors (exit 4)
	if errors.Is(err, docx2pdf.ErrBrowserConnect) ||
		errors.Is(err, docx2pdf.ErrPageCreate) ||
		errors.Is(err, docx2pdf.ErrPageLoad) ||
		errors.Is(err, docx2pdf.ErrPDFGeneration) {
		return ExitBrowser
	}

	// I/O errors (exit 3)
	if errors.Is(err, os.ErrNotExist) ||
		errors.Is(err, os.ErrPermission) ||
		errors.Is(err, docx2pdf.ErrWriteOutput) ||
		errors.Is(err, ErrNoInput) ||
		errors.Is(err, ErrReadInput) {
		return ExitIO
	}

	// Usage/config/validation errors (exit 2)
	if errors.Is(err, config.ErrConfigNotFound) ||
		errors.Is(err, config.ErrConfigParse) ||
		errors.Is(err, config.ErrConfigInvalid) ||
		errors.Is(err, config.ErrEmptyConfigName) ||
		errors.Is(err, docx2pdf.ErrEmptyDocument) ||
		errors.Is(err, docx2pdf.ErrInvalidReturnType) ||
		errors.Is(err, docx2pdf.ErrInvalidPageFormat) ||
		errors.Is(err, docx2pdf.ErrInvalidMargin) ||
		errors.Is(err, docx2pdf.ErrInvalidStyleMap) ||
		errors.Is(err, ErrInvalidExtension) ||
		errors.Is(err, ErrTooManyInputs) {
		return ExitUsage
	}

	return ExitGeneral
}
