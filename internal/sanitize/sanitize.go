// Package sanitize strips templated retrieval artifacts from answer text.
// Dataset rows and vector-store documents were historically assembled from
// prompt templates, and fragments of those templates ("Context:" blocks,
// "Employee:" lines, boilerplate prefixes) occasionally leak into stored
// answers. Every answer passes through Clean before it reaches a caller.
package sanitize

import (
	"regexp"
	"strings"
)

var (
	// leadingBoilerplate matches one or more "According to our HR materials:"
	// prefixes at the start of the text.
	leadingBoilerplate = regexp.MustCompile(`(?i)^\s*(according to our hr materials:\s*)+`)

	// inlineBoilerplate matches the same prefix at the start of a later line.
	inlineBoilerplate = regexp.MustCompile(`(?i)\n[ \t]*according to our hr materials:[ \t]*`)

	// contextTail matches a "Context:" marker and everything after it. Text
	// past the marker is prompt context, not answer content.
	contextTail = regexp.MustCompile(`(?is)\bcontext:.*$`)

	// employeeLine matches whole lines that carry an "Employee:" template
	// field.
	employeeLine = regexp.MustCompile(`(?im)^[ \t]*employee:.*\n?`)

	// pleaseSeeBelow and seeBelow match dangling pointer phrases that refer
	// to content the template never included. pleaseSeeBelow runs first so
	// its "see ... below" span is not half-eaten by the shorter pattern.
	pleaseSeeBelow = regexp.MustCompile(`(?i)please see [^\n]{0,80}? below\.?`)
	seeBelow       = regexp.MustCompile(`(?i)see details below\.?`)

	// whitespaceLine and blankRuns normalize vertical spacing after the
	// removals above leave holes in the text.
	whitespaceLine = regexp.MustCompile(`(?m)^[ \t]+$`)
	blankRuns      = regexp.MustCompile(`\n{3,}`)
)

// Clean removes leaked template artifacts from text and normalizes spacing.
// It is pure and idempotent: Clean(Clean(x)) == Clean(x). The result never
// contains a "Context:" marker or a line starting with "Employee:".
func Clean(text string) string {
	out := leadingBoilerplate.ReplaceAllString(text, "")
	out = inlineBoilerplate.ReplaceAllString(out, "\n")
	out = contextTail.ReplaceAllString(out, "")
	out = employeeLine.ReplaceAllString(out, "")
	out = pleaseSeeBelow.ReplaceAllString(out, "")
	out = seeBelow.ReplaceAllString(out, "")
	out = whitespaceLine.ReplaceAllString(out, "")
	out = blankRuns.ReplaceAllString(out, "\n\n")
	return strings.TrimSpace(out)
}

// Leaky reports whether text still carries a template marker after cleaning.
// Retrieval rejects such candidates and falls back to a canned answer.
func Leaky(text string) bool {
	lower := strings.ToLower(text)
	return strings.Contains(lower, "according to") ||
		strings.Contains(lower, "context:") ||
		strings.Contains(lower, "employee:")
}
