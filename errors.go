package policypdf

import "errors"

// Sentinel errors for library operations.
var (
	ErrNoSections        = errors.New("at least one section is required")
	ErrEmptySectionTitle = errors.New("section title cannot be empty")
	ErrEmptyParagraph    = errors.New("paragraph cannot be empty")

	ErrPDFGeneration  = errors.New("PDF generation failed")
	ErrBrowserConnect = errors.New("failed to connect to browser")
	ErrPageCreate     = errors.New("failed to create browser page")
	ErrPageLoad       = errors.New("failed to load page")

	// Page settings validation errors.
	ErrInvalidPageSize    = errors.New("invalid page size")
	ErrInvalidOrientation = errors.New("invalid orientation")
	ErrInvalidMargin      = errors.New("invalid margin")

	ErrInvalidFooterPosition = errors.New("invalid footer position")
	ErrEmptyCoverTitle       = errors.New("cover title cannot be empty")
	ErrCoverLogoNotFound     = errors.New("cover logo file not found")
	ErrInvalidTOCDepth       = errors.New("invalid TOC depth")

	ErrStyleNotFound    = errors.New("style not found")
	ErrInvalidAssetPath = errors.New("invalid asset path")
)
