package main

import (
	"errors"
	"os"

	"github.com/rapidophilia/policypdf"
	"github.com/rapidophilia/policypdf/internal/assets"
	"github.com/rapidophilia/policypdf/internal/config"
	"github.com/rapidophilia/policypdf/internal/dateutil"
	"github.com/rapidophilia/policypdf/internal/extract"
)

// Exit codes for the policypdf CLI.
// Follows Unix conventions: 0=success, 1=general, 2=usage, and custom codes < 126.
const (
	ExitSuccess = 0 // Document written (a failed copy still counts)
	ExitGeneral = 1 // General/unexpected error
	ExitUsage   = 2 // Invalid flags, config, or validation
	ExitIO      = 3 // Source not found, output not writable
	ExitBrowser = 4 // Browser/Chrome errors
)

// Sentinel errors for CLI operations.
var (
	ErrUsage          = errors.New("invalid usage")
	ErrUnknownCommand = errors.New("unknown command")
	ErrInvalidEnv     = errors.New("invalid environment")
	ErrWriteOutput    = errors.New("failed to write output")
)

// exitCodeFor returns the appropriate exit code for an error.
// It uses errors.Is to check wrapped errors, so callers must use fmt.Errorf("%w", err).
func exitCodeFor(err error) int {
	if err == nil {
		return ExitSuccess
	}

	// Browser errors (exit 4)
	if errors.Is(err, policypdf.ErrBrowserConnect) ||
		errors.Is(err, policypdf.ErrPageCreate) ||
		errors.Is(err, policypdf.ErrPageLoad) ||
		errors.Is(err, policypdf.ErrPDFGeneration) {
		return ExitBrowser
	}

	// I/O errors (exit 3)
	if errors.Is(err, os.ErrNotExist) ||
		errors.Is(err, os.ErrPermission) ||
		errors.Is(err, extract.ErrReadSource) ||
		errors.Is(err, extract.ErrEmptyPath) ||
		errors.Is(err, policypdf.ErrCoverLogoNotFound) ||
		errors.Is(err, ErrWriteOutput) {
		return ExitIO
	}

	// Usage/config/validation errors (exit 2)
	if errors.Is(err, ErrUsage) ||
		errors.Is(err, ErrUnknownCommand) ||
		errors.Is(err, ErrInvalidEnv) ||
		errors.Is(err, config.ErrConfigNotFound) ||
		errors.Is(err, config.ErrEmptyConfigName) ||
		errors.Is(err, config.ErrConfigParse) ||
		errors.Is(err, config.ErrFieldTooLong) ||
		errors.Is(err, config.ErrInvalidValue) ||
		errors.Is(err, dateutil.ErrInvalidDateFormat) ||
		errors.Is(err, extract.ErrUnsupportedFormat) ||
		errors.Is(err, extract.ErrParseHTML) ||
		errors.Is(err, assets.ErrInvalidAssetName) ||
		errors.Is(err, policypdf.ErrNoSections) ||
		errors.Is(err, policypdf.ErrEmptySectionTitle) ||
		errors.Is(err, policypdf.ErrEmptyParagraph) ||
		errors.Is(err, policypdf.ErrInvalidPageSize) ||
		errors.Is(err, policypdf.ErrInvalidOrientation) ||
		errors.Is(err, policypdf.ErrInvalidMargin) ||
		errors.Is(err, policypdf.ErrInvalidFooterPosition) ||
		errors.Is(err, policypdf.ErrEmptyCoverTitle) ||
		errors.Is(err, policypdf.ErrInvalidTOCDepth) ||
		errors.Is(err, policypdf.ErrStyleNotFound) ||
		errors.Is(err, policypdf.ErrInvalidAssetPath) {
		return ExitUsage
	}

	return ExitGeneral
}
