package main

import (
	"fmt"
	"io"
)

// printUsage prints the main usage message.
func printUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: policypdf [command] [flags] [sources...]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Commands:")
	fmt.Fprintln(w, "  build      Build the combined policies PDF (default)")
	fmt.Fprintln(w, "  extract    Print the text scraped from each source")
	fmt.Fprintln(w, "  config     Print the effective configuration")
	fmt.Fprintln(w, "  doctor     Check Chrome and the environment")
	fmt.Fprintln(w, "  version    Show version information")
	fmt.Fprintln(w, "  help       Show help for a command")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Run 'policypdf help <command>' for details on a specific command.")
}

// printBuildUsage prints usage for the build command.
func printBuildUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: policypdf build [flags] [sources...]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Scrape the policy pages and build one PDF with a cover, a section per")
	fmt.Fprintln(w, "page and numbered footers, then copy it to the public directory.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Arguments:")
	fmt.Fprintln(w, "  sources    Source files (default: the three src/pages policy pages)")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Input/Output:")
	fmt.Fprintln(w, "  -c, --config <name>       Config file name or path")
	fmt.Fprintln(w, "      --root <dir>          Site root for relative paths (default \".\")")
	fmt.Fprintln(w, "  -o, --output <path>       Output PDF (default policies_combined.pdf)")
	fmt.Fprintln(w, "      --copy-to <path>      Copy target (default public/policies_combined.pdf)")
	fmt.Fprintln(w, "      --no-copy             Skip the copy step")
	fmt.Fprintln(w, "  -t, --timeout <d>         PDF generation timeout (default 30s)")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Page:")
	fmt.Fprintln(w, "  -p, --page-size <s>       Page size: a4, letter, legal")
	fmt.Fprintln(w, "      --orientation <s>     Orientation: portrait, landscape")
	fmt.Fprintln(w, "      --no-footer           Disable page numbers")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Cover:")
	fmt.Fprintln(w, "      --cover-title <s>     Cover title")
	fmt.Fprintln(w, "      --cover-subtitle <s>  Cover subtitle")
	fmt.Fprintln(w, "      --date <s>            Date: \"auto\", \"auto:FORMAT\", or literal")
	fmt.Fprintln(w, "                            Tokens: YYYY, YY, MMMM, MMM, MM, M, DD, D, Do")
	fmt.Fprintln(w, "                            Presets: iso, european, us, long, ordinal")
	fmt.Fprintln(w, "      --no-cover            Disable cover page")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Table of Contents:")
	fmt.Fprintln(w, "      --toc                 Add a table of contents")
	fmt.Fprintln(w, "      --toc-title <s>       TOC heading text")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Styling:")
	fmt.Fprintln(w, "      --style <s>           CSS style name, file path, or inline CSS")
	fmt.Fprintln(w, "      --asset-path <dir>    Directory with styles/ and templates/ overrides")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Debugging:")
	fmt.Fprintln(w, "      --html                Also write the HTML next to the PDF")
	fmt.Fprintln(w, "      --html-only           Write HTML only, skip Chrome")
	fmt.Fprintln(w, "  -q, --quiet               Only show errors")
	fmt.Fprintln(w, "  -v, --verbose             Show detailed timing")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Environment:")
	fmt.Fprintln(w, "  POLICYPDF_CONFIG, POLICYPDF_ROOT, POLICYPDF_OUTPUT, POLICYPDF_COPY_TO,")
	fmt.Fprintln(w, "  POLICYPDF_STYLE, POLICYPDF_TIMEOUT, POLICYPDF_PAGE_SIZE, POLICYPDF_DATE")
	fmt.Fprintln(w, "  are read from the environment and from <root>/.env.")
}

// printExtractUsage prints usage for the extract command.
func printExtractUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: policypdf extract [flags] [sources...]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Print the text scraped from each source.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Flags:")
	fmt.Fprintln(w, "  -c, --config <name>       Config file name or path")
	fmt.Fprintln(w, "      --root <dir>          Site root for relative paths")
	fmt.Fprintln(w, "      --limit <n>           Characters printed per source (default 2000, 0 = all)")
	fmt.Fprintln(w, "      --json                Print sections as JSON")
}

// printConfigUsage prints usage for the config command.
func printConfigUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: policypdf config [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Print the effective configuration as YAML.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Flags:")
	fmt.Fprintln(w, "  -c, --config <name>       Config file name or path")
	fmt.Fprintln(w, "      --root <dir>          Site root for relative paths")
}

// runHelp prints help for a specific command.
func runHelp(args []string, env *Environment) int {
	if len(args) == 0 {
		printUsage(env.Stdout)
		return ExitSuccess
	}

	switch args[0] {
	case "build":
		printBuildUsage(env.Stdout)
	case "extract":
		printExtractUsage(env.Stdout)
	case "config":
		printConfigUsage(env.Stdout)
	case "doctor":
		fmt.Fprintln(env.Stdout, "Usage: policypdf doctor [--json]")
		fmt.Fprintln(env.Stdout)
		fmt.Fprintln(env.Stdout, "Check that Chrome can be found and started.")
	case "version":
		fmt.Fprintln(env.Stdout, "Usage: policypdf version")
		fmt.Fprintln(env.Stdout)
		fmt.Fprintln(env.Stdout, "Show version information.")
	case "help":
		fmt.Fprintln(env.Stdout, "Usage: policypdf help [command]")
		fmt.Fprintln(env.Stdout)
		fmt.Fprintln(env.Stdout, "Show help for a command.")
	default:
		fmt.Fprintf(env.Stderr, "Unknown command: %s\n", args[0])
		printUsage(env.Stderr)
		return ExitUsage
	}
	return ExitSuccess
}
