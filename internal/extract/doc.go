// Package extract pulls visible text out of policy source pages.
//
// Two source kinds are supported:
//   - markup: component files mixing UI markup with plain text (.tsx, .jsx,
//     .ts, .js). Text is scraped with a fixed sequence of regular expressions:
//     imports and default exports are dropped, tags become line breaks,
//     embedded {expressions} are removed, and short or label-like lines are
//     filtered out.
//   - html: plain HTML fragments (.html, .htm), walked as a node tree.
//
// Both produce an ordered list of paragraphs. A paragraph is never empty after
// trimming and its internal whitespace is collapsed to single spaces.
package extract
