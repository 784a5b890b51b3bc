// Package hints provides actionable hints appended to error messages.
// Every hint is formatted as "\n  hint: <text>".
package hints

import (
	"os"
	"strings"

	"github.com/rapidophilia/policypdf/internal/fileutil"
)

// IsInContainer reports whether we run inside Docker. Tests override it.
var IsInContainer = func() bool {
	return fileutil.FileExists("/.dockerenv")
}

// ForBrowserConnect returns hints for browser launch failures, tailored to
// CI and container environments.
func ForBrowserConnect() string {
	var hints []string

	inCI := os.Getenv("CI") != "" ||
		os.Getenv("GITHUB_ACTIONS") != "" ||
		os.Getenv("GITLAB_CI") != "" ||
		os.Getenv("JENKINS_URL") != ""

	if (inCI || IsInContainer()) && os.Getenv("ROD_NO_SANDBOX") != "1" {
		hints = append(hints, "set ROD_NO_SANDBOX=1 for Docker/CI")
	}
	if os.Getenv("ROD_BROWSER_BIN") == "" {
		hints = append(hints, "set ROD_BROWSER_BIN to use an installed Chrome")
	}
	return formatHints(hints)
}

// ForTimeout suggests raising the render timeout.
func ForTimeout() string {
	return format("raise the limit with --timeout or POLICYPDF_TIMEOUT")
}

// ForConfigNotFound suggests --config, or the user config location when it
// was among the searched paths.
func ForConfigNotFound(searchedPaths []string) string {
	hint := "use --config /path/to/policypdf.yaml"
	for _, p := range searchedPaths {
		if strings.Contains(filepathSlash(p), "/policypdf/") {
			hint += " or create " + p
			break
		}
	}
	return format(hint)
}

// ForSourceNotFound explains how source paths are resolved.
func ForSourceNotFound(root string) string {
	if root == "" {
		root = "."
	}
	return format("source paths are resolved against --root (" + root + "); point it at the site checkout")
}

// ForNoParagraphs is shown when a page yields no text at all.
func ForNoParagraphs() string {
	return format("run `policypdf extract <file>` to inspect the scraped text, or set format: html for rendered pages")
}

// ForOutputDirectory returns hints for output write errors.
func ForOutputDirectory() string {
	return format("check the parent directory exists and is writable")
}

// ForStyleNotFound lists the available styles.
func ForStyleNotFound(available []string) string {
	if len(available) == 0 {
		return ""
	}
	return format("available: " + strings.Join(available, ", "))
}

func filepathSlash(p string) string {
	return strings.ReplaceAll(p, `\`, "/")
}

func format(hint string) string {
	if hint == "" {
		return ""
	}
	return "\n  hint: " + hint
}

func formatHints(hints []string) string {
	if len(hints) == 0 {
		return ""
	}
	return format(strings.Join(hints, "; "))
}
