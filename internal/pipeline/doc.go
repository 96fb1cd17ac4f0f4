// Package pipeline implements the Markdown-to-HTML preview pipeline.
//
// Stages, in order:
//   - Markdown preprocessing: line breaks wrapped between two CJK characters
//     are removed outside fenced blocks (CJKJoiner)
//   - Markdown to HTML via Goldmark, with per-call hooks for headings and
//     fenced code (GoldmarkConverter.Render); headings are collected into a TOC
//   - Page assembly: the page template is rendered (PageBuilder), the
//     fragment is placed in its container (InjectContent), then the CSS
//     and the numbered TOC are injected
//
// PDF output is handled by the root mdpreview package using headless Chrome
// (go-rod). Diagrams and math are typeset in the browser; this package only
// emits the containers and configuration they need.
package pipeline
