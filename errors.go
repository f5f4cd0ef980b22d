package docx2pdf

import "errors"

// Sentinel errors for library operations.
var (
	ErrEmptyDocument     = errors.New("document buffer cannot be empty")
	ErrInvalidReturnType = errors.New("invalid return type")
	ErrConversion        = errors.New("conversion failed")
	ErrExtraction        = errors.New("document extraction failed")
	ErrPDFGeneration     = errors.New("PDF generation failed")
	ErrBrowserConnect    = errors.New("failed to connect to browser")
	ErrPageCreate        = errors.New("failed to create browser page")
	ErrPageLoad          = errors.New("failed to load page")
	ErrWriteOutput       = errors.New("failed to write output file")

	// Format validation errors.
	ErrInvalidPageFormat = errors.New("invalid page format")
	ErrInvalidMargin     = errors.New("invalid margin")

	// Style map errors.
	ErrInvalidStyleMap = errors.New("invalid style map rule")
)
