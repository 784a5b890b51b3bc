// Package pipeline turns extracted policy sections into a printable HTML
// document.
//
// Stages, in order:
//   - section composition into escaped Markdown (one heading per section)
//   - Markdown to HTML conversion via goldmark
//   - CSS injection
//   - cover page injection
//   - table of contents injection
//   - relative image path rewriting
//
// PDF generation lives in the root policypdf package, which drives headless
// Chrome through go-rod. The pipeline only deals with document structure.
package pipeline
